package manager

import (
	"time"

	"tasktracker/internal/core/domain"
)

// aggregateStatus derives an epic status from the full set of child statuses:
// NEW when there are no children or all are NEW, DONE when all are DONE,
// IN_PROGRESS otherwise.
func aggregateStatus(children []*domain.Task) domain.Status {
	allNew, allDone := true, true
	for _, child := range children {
		if child.Status != domain.StatusNew {
			allNew = false
		}
		if child.Status != domain.StatusDone {
			allDone = false
		}
	}
	switch {
	case allNew:
		return domain.StatusNew
	case allDone:
		return domain.StatusDone
	default:
		return domain.StatusInProgress
	}
}

// applySchedule sets the epic start to the earliest child start, the end to
// the latest child end and the duration to the sum of child durations.
func applySchedule(epic *domain.Task, children []*domain.Task) {
	var (
		start *time.Time
		end   *time.Time
		total time.Duration
	)
	for _, child := range children {
		total += child.Duration
		if child.StartTime == nil {
			continue
		}
		if start == nil || child.StartTime.Before(*start) {
			value := *child.StartTime
			start = &value
		}
		if childEnd := child.EndTime(); end == nil || childEnd.After(*end) {
			end = childEnd
		}
	}

	epic.StartTime = start
	epic.Duration = total
	epic.Epic.EndTime = end
}
