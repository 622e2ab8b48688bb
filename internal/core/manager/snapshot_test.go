package manager_test

import (
	"testing"
	"time"

	"tasktracker/internal/core/domain"
	"tasktracker/internal/core/manager"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func populated(t *testing.T) *manager.Manager {
	t.Helper()
	m := manager.New(nil)
	task := newTask(t, m, "task", at(5*time.Hour), 30*time.Minute)
	epic := newEpic(t, m, "epic")
	first := newSubtask(t, m, epic.ID, domain.StatusDone, at(0), time.Hour)
	newSubtask(t, m, epic.ID, domain.StatusNew, at(2*time.Hour), time.Hour)
	newEpic(t, m, "empty epic")

	_, _ = m.GetSubtask(first.ID)
	_, _ = m.GetTask(task.ID)
	_, _ = m.GetEpic(epic.ID)
	return m
}

func TestManager_SnapshotRestoreRoundTrip(t *testing.T) {
	source := populated(t)
	snapshot := source.Snapshot()

	target := manager.New(nil)
	require.NoError(t, target.Restore(snapshot))

	assert.Equal(t, source.AllTasks(), target.AllTasks())
	assert.Equal(t, source.AllEpics(), target.AllEpics())
	assert.Equal(t, source.AllSubtasks(), target.AllSubtasks())
	assert.Equal(t, ids(source.History()), ids(target.History()))
	assert.Equal(t, ids(source.Prioritized()), ids(target.Prioritized()))

	created := newTask(t, target, "after restore", nil, 0)
	assert.Equal(t, 6, created.ID)
}

func TestManager_RestoreRecomputesEpicFields(t *testing.T) {
	epic, err := domain.NewEpic("epic", "").WithID(1)
	require.NoError(t, err)
	epic.Status = domain.StatusDone
	epic.Duration = 99 * time.Hour

	sub, err := domain.NewSubtask("sub", "", domain.StatusInProgress, at(0), time.Hour, 1)
	require.NoError(t, err)
	sub, err = sub.WithID(3)
	require.NoError(t, err)

	m := manager.New(nil)
	require.NoError(t, m.Restore(domain.Snapshot{
		Epics:    []domain.Task{epic},
		Subtasks: []domain.Task{sub},
		History:  []int{3, 404, 1},
	}))

	got, ok := m.GetEpic(1)
	require.True(t, ok)
	assert.Equal(t, domain.StatusInProgress, got.Status)
	assert.Equal(t, time.Hour, got.Duration)
	assert.Equal(t, []int{3}, got.SubtaskIDs())
	assert.Equal(t, []int{3, 1}, ids(m.History()))
}

func TestManager_RestoreRejectsInvalidSnapshot(t *testing.T) {
	m := populated(t)
	before := m.Snapshot()

	orphan, err := domain.NewSubtask("orphan", "", domain.StatusNew, nil, 0, 50)
	require.NoError(t, err)
	orphan, err = orphan.WithID(51)
	require.NoError(t, err)
	require.ErrorIs(t, m.Restore(domain.Snapshot{Subtasks: []domain.Task{orphan}}), domain.ErrEpicNotFound)

	dup, err := domain.NewTask("dup", "", domain.StatusNew, nil, 0).WithID(7)
	require.NoError(t, err)
	require.ErrorIs(t, m.Restore(domain.Snapshot{Tasks: []domain.Task{dup, dup}}), domain.ErrInvalidTask)

	noID := domain.NewTask("no id", "", domain.StatusNew, nil, 0)
	require.ErrorIs(t, m.Restore(domain.Snapshot{Tasks: []domain.Task{noID}}), domain.ErrInvalidID)

	misplaced, err := domain.NewEpic("epic", "").WithID(9)
	require.NoError(t, err)
	require.ErrorIs(t, m.Restore(domain.Snapshot{Tasks: []domain.Task{misplaced}}), domain.ErrInvalidTask)

	assert.Equal(t, before, m.Snapshot())
}

func TestManager_RestoreRejectsOverlappingSchedule(t *testing.T) {
	scheduled := func(id int, start *time.Time, duration time.Duration) domain.Task {
		task, err := domain.NewTask("t", "", domain.StatusNew, start, duration).WithID(id)
		require.NoError(t, err)
		return task
	}
	epic, err := domain.NewEpic("epic", "").WithID(10)
	require.NoError(t, err)
	sub, err := domain.NewSubtask("sub", "", domain.StatusNew, at(90*time.Minute), time.Hour, 10)
	require.NoError(t, err)
	sub, err = sub.WithID(11)
	require.NoError(t, err)

	m := populated(t)
	before := m.Snapshot()

	err = m.Restore(domain.Snapshot{
		Tasks:    []domain.Task{scheduled(1, at(0), 2*time.Hour)},
		Epics:    []domain.Task{epic},
		Subtasks: []domain.Task{sub},
	})
	require.ErrorIs(t, err, domain.ErrTaskOverlap)

	// a zero length item inside a longer one still counts
	err = m.Restore(domain.Snapshot{Tasks: []domain.Task{
		scheduled(1, at(0), 3*time.Hour),
		scheduled(2, at(time.Hour), 0),
		scheduled(3, at(time.Hour), 30*time.Minute),
	}})
	require.ErrorIs(t, err, domain.ErrTaskOverlap)
	assert.Equal(t, before, m.Snapshot())

	// touching intervals and a zero length item at a start do not overlap
	require.NoError(t, m.Restore(domain.Snapshot{Tasks: []domain.Task{
		scheduled(1, at(0), time.Hour),
		scheduled(2, at(time.Hour), time.Hour),
		scheduled(3, at(time.Hour), 0),
		scheduled(4, nil, time.Hour),
	}}))
	assert.Equal(t, []int{1, 2, 3}, ids(m.Prioritized()))
}

func TestManager_RestoreKeepsPrioritizedTies(t *testing.T) {
	source := manager.New(nil)
	first := newTask(t, source, "first", at(0), 0)
	second := newTask(t, source, "second", at(0), 0)
	first.Title = "first, edited"
	require.NoError(t, source.UpdateTask(first))
	require.Equal(t, []int{first.ID, second.ID}, ids(source.Prioritized()))

	target := manager.New(nil)
	require.NoError(t, target.Restore(source.Snapshot()))
	assert.Equal(t, ids(source.Prioritized()), ids(target.Prioritized()))
}

func TestManager_RestoreEmptySnapshotResets(t *testing.T) {
	m := populated(t)
	require.NoError(t, m.Restore(domain.Snapshot{}))

	assert.Empty(t, m.AllTasks())
	assert.Empty(t, m.AllEpics())
	assert.Empty(t, m.History())
	assert.Empty(t, m.Prioritized())

	created := newTask(t, m, "fresh", nil, 0)
	assert.Equal(t, 1, created.ID)
}
