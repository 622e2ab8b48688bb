package ports

import (
	"context"
	"time"

	"tasktracker/internal/core/domain"
)

// SnapshotRepository stores the whole tracker state at once. Every error it
// returns is a *domain.PersistenceError.
type SnapshotRepository interface {
	Load(ctx context.Context) (domain.Snapshot, error)
	Save(ctx context.Context, snapshot domain.Snapshot) error
	Ping(ctx context.Context) error
	Close() error
}

type TaskService interface {
	CreateTask(ctx context.Context, task domain.Task) (domain.Task, error)
	CreateEpic(ctx context.Context, epic domain.Task) (domain.Task, error)
	CreateSubtask(ctx context.Context, subtask domain.Task) (domain.Task, error)

	GetTask(ctx context.Context, id int) (domain.Task, error)
	GetEpic(ctx context.Context, id int) (domain.Task, error)
	GetSubtask(ctx context.Context, id int) (domain.Task, error)

	ListTasks(ctx context.Context) ([]domain.Task, error)
	ListEpics(ctx context.Context) ([]domain.Task, error)
	ListSubtasks(ctx context.Context) ([]domain.Task, error)
	ListEpicSubtasks(ctx context.Context, epicID int) ([]domain.Task, error)

	UpdateTask(ctx context.Context, task domain.Task) (domain.Task, error)
	UpdateEpic(ctx context.Context, epic domain.Task) (domain.Task, error)
	UpdateSubtask(ctx context.Context, subtask domain.Task) (domain.Task, error)
	RefreshEpic(ctx context.Context, epicID int) (domain.Task, error)

	DeleteTask(ctx context.Context, id int) error
	DeleteEpic(ctx context.Context, id int) error
	DeleteSubtask(ctx context.Context, id int) error
	DeleteAllTasks(ctx context.Context) error
	DeleteAllEpics(ctx context.Context) error
	DeleteAllSubtasks(ctx context.Context) error

	History(ctx context.Context) ([]domain.Task, error)
	Prioritized(ctx context.Context) ([]domain.Task, error)
	EndTime(ctx context.Context, id int) (*time.Time, error)
}
