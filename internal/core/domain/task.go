package domain

import (
	"math"
	"slices"
	"time"
)

type Status string

const (
	StatusNew        Status = "NEW"
	StatusInProgress Status = "IN_PROGRESS"
	StatusDone       Status = "DONE"
)

func (s Status) Valid() bool {
	switch s {
	case StatusNew, StatusInProgress, StatusDone:
		return true
	}
	return false
}

type Type string

const (
	TypeTask    Type = "TASK"
	TypeEpic    Type = "EPIC"
	TypeSubtask Type = "SUBTASK"
)

func (t Type) Valid() bool {
	switch t {
	case TypeTask, TypeEpic, TypeSubtask:
		return true
	}
	return false
}

const MinID = 1

// MaxDurationMinutes is the longest duration, in minutes, that fits a
// time.Duration.
const MaxDurationMinutes = int64(math.MaxInt64 / int64(time.Minute))

// DurationFromMinutes converts a stored or requested minute count.
func DurationFromMinutes(minutes int64) (time.Duration, error) {
	if minutes < 0 || minutes > MaxDurationMinutes {
		return 0, ErrInvalidTask
	}
	return time.Duration(minutes) * time.Minute, nil
}

// Task is a tagged union over the three entity kinds. Exactly one of Epic and
// Subtask is set for the matching Type; both are nil for a plain task.
type Task struct {
	ID          int
	Type        Type
	Title       string
	Description string
	Status      Status
	StartTime   *time.Time
	Duration    time.Duration

	Epic    *EpicPayload
	Subtask *SubtaskPayload
}

// EpicPayload holds the child ids and the end time derived from them.
type EpicPayload struct {
	SubtaskIDs []int
	EndTime    *time.Time
}

type SubtaskPayload struct {
	EpicID int
}

func NewTask(title, description string, status Status, startTime *time.Time, duration time.Duration) Task {
	return Task{
		Type:        TypeTask,
		Title:       title,
		Description: description,
		Status:      status,
		StartTime:   copyTime(startTime),
		Duration:    duration,
	}
}

// NewEpic returns an epic with no children. Status and time fields are derived
// by the manager and cannot be supplied here.
func NewEpic(title, description string) Task {
	return Task{
		Type:        TypeEpic,
		Title:       title,
		Description: description,
		Status:      StatusNew,
		Epic:        &EpicPayload{},
	}
}

func NewSubtask(title, description string, status Status, startTime *time.Time, duration time.Duration, epicID int) (Task, error) {
	if epicID < MinID {
		return Task{}, ErrInvalidEpicID
	}
	return Task{
		Type:        TypeSubtask,
		Title:       title,
		Description: description,
		Status:      status,
		StartTime:   copyTime(startTime),
		Duration:    duration,
		Subtask:     &SubtaskPayload{EpicID: epicID},
	}, nil
}

// WithID returns a copy carrying id. Used when restoring persisted entities.
func (t Task) WithID(id int) (Task, error) {
	if id < MinID {
		return Task{}, ErrInvalidID
	}
	c := t.Clone()
	c.ID = id
	return c, nil
}

// EpicID returns the parent epic id of a subtask and 0 for other kinds.
func (t Task) EpicID() int {
	if t.Subtask == nil {
		return 0
	}
	return t.Subtask.EpicID
}

// SubtaskIDs returns a copy of an epic's child ids in insertion order.
func (t Task) SubtaskIDs() []int {
	if t.Epic == nil {
		return nil
	}
	return slices.Clone(t.Epic.SubtaskIDs)
}

// EndTime is StartTime+Duration for tasks and subtasks, and the latest child
// end for epics. It is nil when there is no start time.
func (t Task) EndTime() *time.Time {
	if t.Type == TypeEpic {
		if t.Epic == nil {
			return nil
		}
		return copyTime(t.Epic.EndTime)
	}
	if t.StartTime == nil {
		return nil
	}
	end := t.StartTime.Add(t.Duration)
	return &end
}

func (t Task) Scheduled() bool {
	return t.StartTime != nil
}

// SameAs reports identity. Two entities with the same id are the same task
// whatever their other fields hold.
func (t Task) SameAs(other Task) bool {
	return t.ID == other.ID
}

func (t Task) Clone() Task {
	c := t
	c.StartTime = copyTime(t.StartTime)
	if t.Epic != nil {
		c.Epic = &EpicPayload{
			SubtaskIDs: slices.Clone(t.Epic.SubtaskIDs),
			EndTime:    copyTime(t.Epic.EndTime),
		}
	}
	if t.Subtask != nil {
		payload := *t.Subtask
		c.Subtask = &payload
	}
	return c
}

// Validate checks that the variant payload matches Type and that the status
// is known. Durations must be a non-negative whole number of minutes.
func (t Task) Validate() error {
	if !t.Status.Valid() {
		return ErrInvalidStatus
	}
	if t.Duration < 0 || t.Duration%time.Minute != 0 {
		return ErrInvalidTask
	}
	switch t.Type {
	case TypeTask:
		if t.Epic != nil || t.Subtask != nil {
			return ErrInvalidTask
		}
	case TypeEpic:
		if t.Epic == nil || t.Subtask != nil {
			return ErrInvalidTask
		}
	case TypeSubtask:
		if t.Subtask == nil || t.Epic != nil {
			return ErrInvalidTask
		}
		if t.Subtask.EpicID < MinID {
			return ErrInvalidEpicID
		}
	default:
		return ErrInvalidTask
	}
	return nil
}

func copyTime(value *time.Time) *time.Time {
	if value == nil {
		return nil
	}
	v := *value
	return &v
}
