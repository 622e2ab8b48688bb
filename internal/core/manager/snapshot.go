package manager

import (
	"cmp"
	"fmt"
	"slices"

	"tasktracker/internal/core/domain"
)

// Snapshot copies the whole state for storage. Entities are ordered by id and
// the history is least recent first.
func (m *Manager) Snapshot() domain.Snapshot {
	m.mu.Lock()
	defer m.mu.Unlock()

	return domain.Snapshot{
		Tasks:    sortedClones(m.tasks),
		Epics:    sortedClones(m.epics),
		Subtasks: sortedClones(m.subtasks),
		History:  m.history.IDs(),
	}
}

// Restore replaces the current state with snapshot. Entities keep their ids,
// epic children are rebuilt from the subtask epic ids in id order, epic fields
// are recomputed and the next id resumes after the highest id seen. History ids
// that no longer resolve are skipped. A snapshot whose scheduled tasks overlap
// is rejected with ErrTaskOverlap. On error the current state is untouched.
func (m *Manager) Restore(snapshot domain.Snapshot) error {
	if err := validateSnapshot(snapshot); err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	clear(m.tasks)
	clear(m.epics)
	clear(m.subtasks)
	m.prioritized.reset()
	m.history.Clear()

	maxID := 0
	place := func(store map[int]*domain.Task, task domain.Task) *domain.Task {
		stored := task.Clone()
		store[stored.ID] = &stored
		maxID = max(maxID, stored.ID)
		return &stored
	}

	for _, epic := range snapshot.Epics {
		stored := place(m.epics, epic)
		stored.Epic = &domain.EpicPayload{}
	}

	scheduled := make([]*domain.Task, 0, len(snapshot.Tasks)+len(snapshot.Subtasks))
	for _, task := range snapshot.Tasks {
		scheduled = append(scheduled, place(m.tasks, task))
	}
	subtasks := slices.Clone(snapshot.Subtasks)
	slices.SortFunc(subtasks, func(a, b domain.Task) int { return a.ID - b.ID })
	for _, subtask := range subtasks {
		stored := place(m.subtasks, subtask)
		epic := m.epics[stored.EpicID()]
		epic.Epic.SubtaskIDs = append(epic.Epic.SubtaskIDs, stored.ID)
		scheduled = append(scheduled, stored)
	}
	for _, task := range scheduled {
		m.prioritized.add(task)
	}
	for _, epic := range m.epics {
		m.refreshEpicLocked(epic)
	}

	m.nextID = maxID + 1
	for _, id := range snapshot.History {
		if task := m.lookupLocked(id); task != nil {
			m.history.Add(task)
		}
	}
	return nil
}

func validateSnapshot(snapshot domain.Snapshot) error {
	seen := make(map[int]struct{})
	check := func(want domain.Type, tasks []domain.Task) error {
		for _, task := range tasks {
			if task.ID < domain.MinID {
				return fmt.Errorf("restore %s: %w", want, domain.ErrInvalidID)
			}
			if task.Type != want {
				return fmt.Errorf("restore %s %d: %w", want, task.ID, domain.ErrInvalidTask)
			}
			if err := task.Validate(); err != nil {
				return fmt.Errorf("restore %s %d: %w", want, task.ID, err)
			}
			if _, dup := seen[task.ID]; dup {
				return fmt.Errorf("restore %s %d: duplicate id: %w", want, task.ID, domain.ErrInvalidTask)
			}
			seen[task.ID] = struct{}{}
		}
		return nil
	}

	if err := check(domain.TypeTask, snapshot.Tasks); err != nil {
		return err
	}
	if err := check(domain.TypeEpic, snapshot.Epics); err != nil {
		return err
	}
	if err := check(domain.TypeSubtask, snapshot.Subtasks); err != nil {
		return err
	}

	epics := make(map[int]struct{}, len(snapshot.Epics))
	for _, epic := range snapshot.Epics {
		epics[epic.ID] = struct{}{}
	}
	for _, subtask := range snapshot.Subtasks {
		if _, ok := epics[subtask.EpicID()]; !ok {
			return fmt.Errorf("restore subtask %d: %w", subtask.ID, domain.ErrEpicNotFound)
		}
	}
	return checkSchedule(slices.Concat(snapshot.Tasks, snapshot.Subtasks))
}

// checkSchedule sweeps the scheduled items by start time, comparing each one
// with the item that reaches furthest so far. Zero length items sort first
// among equal starts.
func checkSchedule(tasks []domain.Task) error {
	scheduled := slices.DeleteFunc(slices.Clone(tasks), func(t domain.Task) bool { return t.StartTime == nil })
	slices.SortFunc(scheduled, func(a, b domain.Task) int {
		if c := a.StartTime.Compare(*b.StartTime); c != 0 {
			return c
		}
		return cmp.Compare(a.Duration, b.Duration)
	})

	var latest *domain.Task
	for i := range scheduled {
		current := &scheduled[i]
		if latest != nil && intervalsOverlap(*latest.StartTime, *latest.EndTime(), *current.StartTime, *current.EndTime()) {
			return fmt.Errorf("restore %s %d: overlaps %d: %w", current.Type, current.ID, latest.ID, domain.ErrTaskOverlap)
		}
		if latest == nil || current.EndTime().After(*latest.EndTime()) {
			latest = current
		}
	}
	return nil
}
