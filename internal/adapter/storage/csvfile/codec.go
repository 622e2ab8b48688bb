// Package csvfile stores tracker snapshots as CSV.
//
// Layout:
//
//	id,type,title,status,description,startTime,durationMinutes,epicId
//	1,TASK,Write report,NEW,quarterly,2026-03-02T10:00:00Z,90,
//	2,EPIC,Release,IN_PROGRESS,,2026-03-03T09:00:00Z,60,
//	3,SUBTASK,Tag build,DONE,,2026-03-03T09:00:00Z,60,2
//	history,3,1
//
// Epic status and time columns are written for readers but ignored on load.
// Start times keep sub-second precision and durations are stored in whole
// minutes.
package csvfile

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"slices"
	"strconv"
	"time"

	"tasktracker/internal/core/domain"
)

const historyMarker = "history"

var header = []string{"id", "type", "title", "status", "description", "startTime", "durationMinutes", "epicId"}

var ErrMalformed = errors.New("malformed snapshot")

// Encode writes snapshot to w.
func Encode(w io.Writer, snapshot domain.Snapshot) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(header); err != nil {
		return err
	}
	for _, task := range snapshot.All() {
		if err := cw.Write(encodeTask(task)); err != nil {
			return err
		}
	}

	historyRow := make([]string, 0, len(snapshot.History)+1)
	historyRow = append(historyRow, historyMarker)
	for _, id := range snapshot.History {
		historyRow = append(historyRow, strconv.Itoa(id))
	}
	if err := cw.Write(historyRow); err != nil {
		return err
	}

	cw.Flush()
	return cw.Error()
}

// Decode reads a snapshot written by Encode. Empty input decodes to an empty
// snapshot.
func Decode(r io.Reader) (domain.Snapshot, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1

	var snapshot domain.Snapshot
	first, err := cr.Read()
	if errors.Is(err, io.EOF) {
		return snapshot, nil
	}
	if err != nil {
		return domain.Snapshot{}, err
	}
	if !slices.Equal(first, header) {
		return domain.Snapshot{}, fmt.Errorf("%w: unexpected header %v", ErrMalformed, first)
	}

	for line := 2; ; line++ {
		record, err := cr.Read()
		if errors.Is(err, io.EOF) {
			return snapshot, nil
		}
		if err != nil {
			return domain.Snapshot{}, err
		}

		if record[0] == historyMarker {
			ids, err := parseHistory(record[1:])
			if err != nil {
				return domain.Snapshot{}, fmt.Errorf("line %d: %w", line, err)
			}
			snapshot.History = append(snapshot.History, ids...)
			continue
		}

		task, err := decodeTask(record)
		if err != nil {
			return domain.Snapshot{}, fmt.Errorf("line %d: %w", line, err)
		}
		if err := snapshot.Add(task); err != nil {
			return domain.Snapshot{}, fmt.Errorf("line %d: %w", line, err)
		}
	}
}

func encodeTask(task domain.Task) []string {
	var start, minutes, epicID string
	if task.StartTime != nil {
		start = task.StartTime.Format(time.RFC3339Nano)
	}
	if task.StartTime != nil || task.Duration > 0 {
		minutes = strconv.FormatInt(int64(task.Duration/time.Minute), 10)
	}
	if task.Type == domain.TypeSubtask {
		epicID = strconv.Itoa(task.EpicID())
	}
	return []string{
		strconv.Itoa(task.ID),
		string(task.Type),
		task.Title,
		string(task.Status),
		task.Description,
		start,
		minutes,
		epicID,
	}
}

func decodeTask(record []string) (domain.Task, error) {
	if len(record) != len(header) {
		return domain.Task{}, fmt.Errorf("%w: want %d fields, got %d", ErrMalformed, len(header), len(record))
	}

	id, err := strconv.Atoi(record[0])
	if err != nil {
		return domain.Task{}, fmt.Errorf("%w: id %q", ErrMalformed, record[0])
	}
	kind := domain.Type(record[1])
	title, description := record[2], record[4]
	status := domain.Status(record[3])
	if !status.Valid() {
		return domain.Task{}, fmt.Errorf("%w: status %q", domain.ErrInvalidStatus, record[3])
	}

	var start *time.Time
	if record[5] != "" {
		parsed, err := time.Parse(time.RFC3339Nano, record[5])
		if err != nil {
			return domain.Task{}, fmt.Errorf("%w: start time %q", ErrMalformed, record[5])
		}
		start = &parsed
	}

	var duration time.Duration
	if record[6] != "" {
		minutes, err := strconv.ParseInt(record[6], 10, 64)
		if err != nil {
			return domain.Task{}, fmt.Errorf("%w: duration %q", ErrMalformed, record[6])
		}
		if duration, err = domain.DurationFromMinutes(minutes); err != nil {
			return domain.Task{}, fmt.Errorf("%w: duration %q", ErrMalformed, record[6])
		}
	}

	var task domain.Task
	switch kind {
	case domain.TypeTask:
		task = domain.NewTask(title, description, status, start, duration)
	case domain.TypeEpic:
		task = domain.NewEpic(title, description)
	case domain.TypeSubtask:
		epicID, err := strconv.Atoi(record[7])
		if err != nil {
			return domain.Task{}, fmt.Errorf("%w: epic id %q", ErrMalformed, record[7])
		}
		task, err = domain.NewSubtask(title, description, status, start, duration, epicID)
		if err != nil {
			return domain.Task{}, err
		}
	default:
		return domain.Task{}, fmt.Errorf("%w: type %q", domain.ErrInvalidTask, record[1])
	}
	return task.WithID(id)
}

func parseHistory(fields []string) ([]int, error) {
	ids := make([]int, 0, len(fields))
	for _, field := range fields {
		if field == "" {
			continue
		}
		id, err := strconv.Atoi(field)
		if err != nil {
			return nil, fmt.Errorf("%w: history id %q", ErrMalformed, field)
		}
		ids = append(ids, id)
	}
	return ids, nil
}
