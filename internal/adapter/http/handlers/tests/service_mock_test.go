package tests

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"tasktracker/internal/core/domain"
	"tasktracker/internal/core/ports"
)

type taskServiceMock struct {
	mock.Mock
}

var _ ports.TaskService = (*taskServiceMock)(nil)

func (m *taskServiceMock) task(args mock.Arguments) (domain.Task, error) {
	var task domain.Task
	if value := args.Get(0); value != nil {
		task = value.(domain.Task)
	}
	return task, args.Error(1)
}

func (m *taskServiceMock) tasks(args mock.Arguments) ([]domain.Task, error) {
	var tasks []domain.Task
	if value := args.Get(0); value != nil {
		tasks = value.([]domain.Task)
	}
	return tasks, args.Error(1)
}

func (m *taskServiceMock) CreateTask(ctx context.Context, task domain.Task) (domain.Task, error) {
	return m.task(m.Called(ctx, task))
}

func (m *taskServiceMock) CreateEpic(ctx context.Context, epic domain.Task) (domain.Task, error) {
	return m.task(m.Called(ctx, epic))
}

func (m *taskServiceMock) CreateSubtask(ctx context.Context, subtask domain.Task) (domain.Task, error) {
	return m.task(m.Called(ctx, subtask))
}

func (m *taskServiceMock) GetTask(ctx context.Context, id int) (domain.Task, error) {
	return m.task(m.Called(ctx, id))
}

func (m *taskServiceMock) GetEpic(ctx context.Context, id int) (domain.Task, error) {
	return m.task(m.Called(ctx, id))
}

func (m *taskServiceMock) GetSubtask(ctx context.Context, id int) (domain.Task, error) {
	return m.task(m.Called(ctx, id))
}

func (m *taskServiceMock) ListTasks(ctx context.Context) ([]domain.Task, error) {
	return m.tasks(m.Called(ctx))
}

func (m *taskServiceMock) ListEpics(ctx context.Context) ([]domain.Task, error) {
	return m.tasks(m.Called(ctx))
}

func (m *taskServiceMock) ListSubtasks(ctx context.Context) ([]domain.Task, error) {
	return m.tasks(m.Called(ctx))
}

func (m *taskServiceMock) ListEpicSubtasks(ctx context.Context, epicID int) ([]domain.Task, error) {
	return m.tasks(m.Called(ctx, epicID))
}

func (m *taskServiceMock) UpdateTask(ctx context.Context, task domain.Task) (domain.Task, error) {
	return m.task(m.Called(ctx, task))
}

func (m *taskServiceMock) UpdateEpic(ctx context.Context, epic domain.Task) (domain.Task, error) {
	return m.task(m.Called(ctx, epic))
}

func (m *taskServiceMock) UpdateSubtask(ctx context.Context, subtask domain.Task) (domain.Task, error) {
	return m.task(m.Called(ctx, subtask))
}

func (m *taskServiceMock) RefreshEpic(ctx context.Context, epicID int) (domain.Task, error) {
	return m.task(m.Called(ctx, epicID))
}

func (m *taskServiceMock) DeleteTask(ctx context.Context, id int) error {
	return m.Called(ctx, id).Error(0)
}

func (m *taskServiceMock) DeleteEpic(ctx context.Context, id int) error {
	return m.Called(ctx, id).Error(0)
}

func (m *taskServiceMock) DeleteSubtask(ctx context.Context, id int) error {
	return m.Called(ctx, id).Error(0)
}

func (m *taskServiceMock) DeleteAllTasks(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}

func (m *taskServiceMock) DeleteAllEpics(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}

func (m *taskServiceMock) DeleteAllSubtasks(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}

func (m *taskServiceMock) History(ctx context.Context) ([]domain.Task, error) {
	return m.tasks(m.Called(ctx))
}

func (m *taskServiceMock) Prioritized(ctx context.Context) ([]domain.Task, error) {
	return m.tasks(m.Called(ctx))
}

func (m *taskServiceMock) EndTime(ctx context.Context, id int) (*time.Time, error) {
	args := m.Called(ctx, id)
	var end *time.Time
	if value := args.Get(0); value != nil {
		end = value.(*time.Time)
	}
	return end, args.Error(1)
}
