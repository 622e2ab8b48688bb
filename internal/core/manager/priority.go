package manager

import (
	"cmp"
	"slices"
	"time"

	"tasktracker/internal/core/domain"
)

type scheduledEntry struct {
	id    int
	start time.Time
	end   time.Time
}

// prioritySet keeps scheduled entries sorted by start time, then by id. The
// order depends only on the stored tasks, so a restored set lists the same way.
type prioritySet struct {
	entries []scheduledEntry
}

func compareEntries(a, b scheduledEntry) int {
	if c := a.start.Compare(b.start); c != 0 {
		return c
	}
	return cmp.Compare(a.id, b.id)
}

func (p *prioritySet) add(task *domain.Task) {
	if task.StartTime == nil {
		return
	}
	entry := scheduledEntry{
		id:    task.ID,
		start: *task.StartTime,
		end:   task.StartTime.Add(task.Duration),
	}
	pos, _ := slices.BinarySearchFunc(p.entries, entry, compareEntries)
	p.entries = slices.Insert(p.entries, pos, entry)
}

func (p *prioritySet) remove(id int) {
	p.entries = slices.DeleteFunc(p.entries, func(e scheduledEntry) bool { return e.id == id })
}

func (p *prioritySet) reset() {
	p.entries = nil
}

func (p *prioritySet) len() int {
	return len(p.entries)
}

// intervalsOverlap treats both intervals as half open, so touching endpoints
// do not overlap.
func intervalsOverlap(start1, end1, start2, end2 time.Time) bool {
	return end1.After(start2) && end2.After(start1)
}
