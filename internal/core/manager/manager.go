// Package manager owns every task, epic and subtask, assigns ids, keeps epic
// fields derived from their subtasks and rejects overlapping schedules.
//
// All state is guarded by a single mutex: the id counter, the three entity
// maps, the prioritized set and the history must change together. Entities are
// copied on the way in and on the way out, so a caller only changes stored
// state through the Update methods.
package manager

import (
	"fmt"
	"slices"
	"sync"
	"time"

	"tasktracker/internal/core/domain"
	"tasktracker/internal/core/history"
)

type Manager struct {
	mu sync.Mutex

	nextID   int
	tasks    map[int]*domain.Task
	epics    map[int]*domain.Task
	subtasks map[int]*domain.Task

	prioritized prioritySet
	history     *history.Tracker
}

// New returns an empty manager. A nil tracker gets an unbounded history.
func New(tracker *history.Tracker) *Manager {
	if tracker == nil {
		tracker = history.NewTracker(0)
	}
	return &Manager{
		nextID:   domain.MinID,
		tasks:    make(map[int]*domain.Task),
		epics:    make(map[int]*domain.Task),
		subtasks: make(map[int]*domain.Task),
		history:  tracker,
	}
}

func (m *Manager) CreateTask(task domain.Task) (domain.Task, error) {
	if task.Type != domain.TypeTask {
		return domain.Task{}, domain.ErrInvalidTask
	}
	if err := task.Validate(); err != nil {
		return domain.Task{}, err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	task.ID = 0
	if m.overlapsLocked(task) {
		return domain.Task{}, domain.ErrTaskOverlap
	}
	stored := m.storeLocked(m.tasks, task)
	m.prioritized.add(stored)
	return stored.Clone(), nil
}

// CreateEpic stores epic with no children. Caller supplied status and time
// fields are discarded.
func (m *Manager) CreateEpic(epic domain.Task) (domain.Task, error) {
	if epic.Type != domain.TypeEpic {
		return domain.Task{}, domain.ErrInvalidTask
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	fresh := domain.NewEpic(epic.Title, epic.Description)
	stored := m.storeLocked(m.epics, fresh)
	return stored.Clone(), nil
}

func (m *Manager) CreateSubtask(subtask domain.Task) (domain.Task, error) {
	if subtask.Type != domain.TypeSubtask {
		return domain.Task{}, domain.ErrInvalidTask
	}
	if err := subtask.Validate(); err != nil {
		return domain.Task{}, err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	epic, ok := m.epics[subtask.EpicID()]
	if !ok {
		return domain.Task{}, domain.ErrEpicNotFound
	}
	subtask.ID = 0
	if m.overlapsLocked(subtask) {
		return domain.Task{}, domain.ErrTaskOverlap
	}

	stored := m.storeLocked(m.subtasks, subtask)
	m.prioritized.add(stored)
	if !slices.Contains(epic.Epic.SubtaskIDs, stored.ID) {
		epic.Epic.SubtaskIDs = append(epic.Epic.SubtaskIDs, stored.ID)
	}
	m.refreshEpicLocked(epic)
	return stored.Clone(), nil
}

// GetTask returns the task and records the view in the history.
func (m *Manager) GetTask(id int) (domain.Task, bool) {
	return m.view(m.tasks, id)
}

func (m *Manager) GetEpic(id int) (domain.Task, bool) {
	return m.view(m.epics, id)
}

func (m *Manager) GetSubtask(id int) (domain.Task, bool) {
	return m.view(m.subtasks, id)
}

// Peek finds an entity of any kind without recording a view.
func (m *Manager) Peek(id int) (domain.Task, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	task := m.lookupLocked(id)
	if task == nil {
		return domain.Task{}, false
	}
	return task.Clone(), true
}

func (m *Manager) AllTasks() []domain.Task {
	m.mu.Lock()
	defer m.mu.Unlock()
	return sortedClones(m.tasks)
}

func (m *Manager) AllEpics() []domain.Task {
	m.mu.Lock()
	defer m.mu.Unlock()
	return sortedClones(m.epics)
}

func (m *Manager) AllSubtasks() []domain.Task {
	m.mu.Lock()
	defer m.mu.Unlock()
	return sortedClones(m.subtasks)
}

// SubtasksByEpic lists an epic's subtasks in the order they were added. An
// unknown epic yields an empty list.
func (m *Manager) SubtasksByEpic(epicID int) []domain.Task {
	m.mu.Lock()
	defer m.mu.Unlock()

	epic, ok := m.epics[epicID]
	if !ok {
		return []domain.Task{}
	}
	children := m.childrenLocked(epic)
	result := make([]domain.Task, 0, len(children))
	for _, child := range children {
		result = append(result, child.Clone())
	}
	return result
}

func (m *Manager) UpdateTask(task domain.Task) error {
	if task.Type != domain.TypeTask {
		return domain.ErrInvalidTask
	}
	if err := task.Validate(); err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.tasks[task.ID]; !ok {
		return domain.ErrTaskNotFound
	}
	if m.overlapsLocked(task) {
		return domain.ErrTaskOverlap
	}
	m.replaceLocked(m.tasks, task)
	return nil
}

// UpdateEpic copies title and description onto the stored epic. Status and
// time fields stay derived from the subtasks.
func (m *Manager) UpdateEpic(epic domain.Task) error {
	if epic.Type != domain.TypeEpic {
		return domain.ErrInvalidTask
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	stored, ok := m.epics[epic.ID]
	if !ok {
		return domain.ErrTaskNotFound
	}
	stored.Title = epic.Title
	stored.Description = epic.Description
	return nil
}

// UpdateSubtask replaces the stored subtask and refreshes its epic. The parent
// link cannot change: the stored epic id always wins.
func (m *Manager) UpdateSubtask(subtask domain.Task) error {
	if subtask.Type != domain.TypeSubtask {
		return domain.ErrInvalidTask
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	existing, ok := m.subtasks[subtask.ID]
	if !ok {
		return domain.ErrTaskNotFound
	}
	subtask.Subtask = &domain.SubtaskPayload{EpicID: existing.EpicID()}
	if err := subtask.Validate(); err != nil {
		return err
	}
	if m.overlapsLocked(subtask) {
		return domain.ErrTaskOverlap
	}
	m.replaceLocked(m.subtasks, subtask)
	if epic, ok := m.epics[subtask.EpicID()]; ok {
		m.refreshEpicLocked(epic)
	}
	return nil
}

func (m *Manager) DeleteTask(id int) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.tasks[id]; !ok {
		return domain.ErrTaskNotFound
	}
	m.forgetLocked(m.tasks, id)
	return nil
}

// DeleteEpic removes the epic together with all of its subtasks.
func (m *Manager) DeleteEpic(id int) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	epic, ok := m.epics[id]
	if !ok {
		return domain.ErrTaskNotFound
	}
	for _, subtaskID := range epic.Epic.SubtaskIDs {
		m.forgetLocked(m.subtasks, subtaskID)
	}
	m.forgetLocked(m.epics, id)
	return nil
}

func (m *Manager) DeleteSubtask(id int) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	subtask, ok := m.subtasks[id]
	if !ok {
		return domain.ErrTaskNotFound
	}
	epicID := subtask.EpicID()
	m.forgetLocked(m.subtasks, id)
	if epic, ok := m.epics[epicID]; ok {
		epic.Epic.SubtaskIDs = slices.DeleteFunc(epic.Epic.SubtaskIDs, func(v int) bool { return v == id })
		m.refreshEpicLocked(epic)
	}
	return nil
}

func (m *Manager) DeleteAllTasks() {
	m.mu.Lock()
	defer m.mu.Unlock()

	for id := range m.tasks {
		m.forgetLocked(m.tasks, id)
	}
}

// DeleteAllEpics removes every epic and, with them, every subtask.
func (m *Manager) DeleteAllEpics() {
	m.mu.Lock()
	defer m.mu.Unlock()

	for id := range m.subtasks {
		m.forgetLocked(m.subtasks, id)
	}
	for id := range m.epics {
		m.forgetLocked(m.epics, id)
	}
}

// DeleteAllSubtasks removes every subtask and resets each epic to NEW with no
// schedule.
func (m *Manager) DeleteAllSubtasks() {
	m.mu.Lock()
	defer m.mu.Unlock()

	for id := range m.subtasks {
		m.forgetLocked(m.subtasks, id)
	}
	for _, epic := range m.epics {
		epic.Epic.SubtaskIDs = nil
		m.refreshEpicLocked(epic)
	}
}

// IsOverlapping reports whether task's interval intersects any other scheduled
// task or subtask. Unscheduled tasks never overlap.
func (m *Manager) IsOverlapping(task domain.Task) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.overlapsLocked(task)
}

// Prioritized lists scheduled tasks and subtasks by ascending start time.
// Equal start times are listed by id, which is creation order.
func (m *Manager) Prioritized() []domain.Task {
	m.mu.Lock()
	defer m.mu.Unlock()

	result := make([]domain.Task, 0, m.prioritized.len())
	for _, entry := range m.prioritized.entries {
		if task := m.lookupLocked(entry.id); task != nil {
			result = append(result, task.Clone())
		}
	}
	return result
}

// RefreshEpicStatus recomputes the epic status from its subtasks.
func (m *Manager) RefreshEpicStatus(epicID int) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	epic, ok := m.epics[epicID]
	if !ok {
		return domain.ErrEpicNotFound
	}
	epic.Status = aggregateStatus(m.childrenLocked(epic))
	return nil
}

// RefreshEpicTime recomputes the epic start, end and duration from its subtasks.
func (m *Manager) RefreshEpicTime(epicID int) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	epic, ok := m.epics[epicID]
	if !ok {
		return domain.ErrEpicNotFound
	}
	applySchedule(epic, m.childrenLocked(epic))
	return nil
}

// EndTime looks id up across tasks, subtasks and epics. The time is nil when
// the entity has no schedule.
func (m *Manager) EndTime(id int) (*time.Time, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	task := m.lookupLocked(id)
	if task == nil {
		return nil, false
	}
	return task.EndTime(), true
}

// History returns the viewed entities, least recent first.
func (m *Manager) History() []domain.Task {
	m.mu.Lock()
	defer m.mu.Unlock()

	ids := m.history.IDs()
	result := make([]domain.Task, 0, len(ids))
	for _, id := range ids {
		if task := m.lookupLocked(id); task != nil {
			result = append(result, task.Clone())
		}
	}
	return result
}

func (m *Manager) view(store map[int]*domain.Task, id int) (domain.Task, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	task, ok := store[id]
	if !ok {
		return domain.Task{}, false
	}
	m.history.Add(task)
	return task.Clone(), true
}

func (m *Manager) storeLocked(store map[int]*domain.Task, task domain.Task) *domain.Task {
	stored := task.Clone()
	stored.ID = m.nextID
	m.nextID++
	store[stored.ID] = &stored
	return &stored
}

func (m *Manager) replaceLocked(store map[int]*domain.Task, task domain.Task) {
	m.prioritized.remove(task.ID)
	stored := task.Clone()
	store[stored.ID] = &stored
	m.prioritized.add(&stored)
}

func (m *Manager) forgetLocked(store map[int]*domain.Task, id int) {
	delete(store, id)
	m.prioritized.remove(id)
	m.history.Remove(id)
}

func (m *Manager) lookupLocked(id int) *domain.Task {
	if task, ok := m.tasks[id]; ok {
		return task
	}
	if task, ok := m.subtasks[id]; ok {
		return task
	}
	if task, ok := m.epics[id]; ok {
		return task
	}
	return nil
}

func (m *Manager) childrenLocked(epic *domain.Task) []*domain.Task {
	children := make([]*domain.Task, 0, len(epic.Epic.SubtaskIDs))
	for _, id := range epic.Epic.SubtaskIDs {
		if child, ok := m.subtasks[id]; ok {
			children = append(children, child)
		}
	}
	return children
}

func (m *Manager) refreshEpicLocked(epic *domain.Task) {
	children := m.childrenLocked(epic)
	epic.Status = aggregateStatus(children)
	applySchedule(epic, children)
}

func (m *Manager) overlapsLocked(task domain.Task) bool {
	if task.StartTime == nil {
		return false
	}
	start := *task.StartTime
	end := start.Add(task.Duration)
	for _, entry := range m.prioritized.entries {
		if entry.id == task.ID {
			continue
		}
		if intervalsOverlap(start, end, entry.start, entry.end) {
			return true
		}
	}
	return false
}

func sortedClones(store map[int]*domain.Task) []domain.Task {
	result := make([]domain.Task, 0, len(store))
	for _, task := range store {
		result = append(result, task.Clone())
	}
	slices.SortFunc(result, func(a, b domain.Task) int { return a.ID - b.ID })
	return result
}

func (m *Manager) String() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return fmt.Sprintf("manager{tasks:%d epics:%d subtasks:%d scheduled:%d history:%d next:%d}",
		len(m.tasks), len(m.epics), len(m.subtasks), m.prioritized.len(), m.history.Len(), m.nextID)
}
