package service

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"tasktracker/internal/core/domain"
	"tasktracker/internal/core/manager"
	"tasktracker/internal/core/ports"
)

// TaskService exposes the manager to adapters and, when a repository is set,
// writes a full snapshot after every successful mutation. Views change the
// history without saving; they are persisted with the next mutation.
type TaskService struct {
	manager    *manager.Manager
	repository ports.SnapshotRepository

	// serializes mutate+save so snapshots reach storage in mutation order
	mu sync.Mutex
}

// NewTaskService wires m to repository. A nil repository keeps everything in
// memory.
func NewTaskService(m *manager.Manager, repository ports.SnapshotRepository) *TaskService {
	return &TaskService{manager: m, repository: repository}
}

// Load restores the manager from the repository.
func (s *TaskService) Load(ctx context.Context) error {
	if s.repository == nil {
		return nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	snapshot, err := s.repository.Load(ctx)
	if err != nil {
		return domain.NewPersistenceError("load", err)
	}
	if err := s.manager.Restore(snapshot); err != nil {
		return domain.NewPersistenceError("load", err)
	}
	zap.L().Info("restored tracker state",
		zap.Int("tasks", len(snapshot.Tasks)),
		zap.Int("epics", len(snapshot.Epics)),
		zap.Int("subtasks", len(snapshot.Subtasks)),
		zap.Int("history", len(snapshot.History)),
	)
	return nil
}

func (s *TaskService) CreateTask(ctx context.Context, task domain.Task) (domain.Task, error) {
	return s.create(ctx, "create_task", task, s.manager.CreateTask)
}

func (s *TaskService) CreateEpic(ctx context.Context, epic domain.Task) (domain.Task, error) {
	return s.create(ctx, "create_epic", epic, s.manager.CreateEpic)
}

func (s *TaskService) CreateSubtask(ctx context.Context, subtask domain.Task) (domain.Task, error) {
	return s.create(ctx, "create_subtask", subtask, s.manager.CreateSubtask)
}

func (s *TaskService) GetTask(_ context.Context, id int) (domain.Task, error) {
	return found(s.manager.GetTask(id))
}

func (s *TaskService) GetEpic(_ context.Context, id int) (domain.Task, error) {
	return found(s.manager.GetEpic(id))
}

func (s *TaskService) GetSubtask(_ context.Context, id int) (domain.Task, error) {
	return found(s.manager.GetSubtask(id))
}

func (s *TaskService) ListTasks(context.Context) ([]domain.Task, error) {
	return s.manager.AllTasks(), nil
}

func (s *TaskService) ListEpics(context.Context) ([]domain.Task, error) {
	return s.manager.AllEpics(), nil
}

func (s *TaskService) ListSubtasks(context.Context) ([]domain.Task, error) {
	return s.manager.AllSubtasks(), nil
}

// ListEpicSubtasks fails with domain.ErrEpicNotFound for an unknown epic so
// adapters can tell "no subtasks" from "no epic".
func (s *TaskService) ListEpicSubtasks(_ context.Context, epicID int) ([]domain.Task, error) {
	if epic, ok := s.manager.Peek(epicID); !ok || epic.Type != domain.TypeEpic {
		return nil, domain.ErrEpicNotFound
	}
	return s.manager.SubtasksByEpic(epicID), nil
}

func (s *TaskService) UpdateTask(ctx context.Context, task domain.Task) (domain.Task, error) {
	return s.update(ctx, "update_task", task, s.manager.UpdateTask)
}

func (s *TaskService) UpdateEpic(ctx context.Context, epic domain.Task) (domain.Task, error) {
	return s.update(ctx, "update_epic", epic, s.manager.UpdateEpic)
}

func (s *TaskService) UpdateSubtask(ctx context.Context, subtask domain.Task) (domain.Task, error) {
	return s.update(ctx, "update_subtask", subtask, s.manager.UpdateSubtask)
}

// RefreshEpic forces a recomputation of the epic status and schedule.
func (s *TaskService) RefreshEpic(ctx context.Context, epicID int) (domain.Task, error) {
	err := s.mutate(ctx, "refresh_epic", func() error {
		if err := s.manager.RefreshEpicStatus(epicID); err != nil {
			return err
		}
		return s.manager.RefreshEpicTime(epicID)
	})
	if err != nil {
		return domain.Task{}, err
	}
	return found(s.manager.Peek(epicID))
}

func (s *TaskService) DeleteTask(ctx context.Context, id int) error {
	return s.mutate(ctx, "delete_task", func() error { return s.manager.DeleteTask(id) })
}

func (s *TaskService) DeleteEpic(ctx context.Context, id int) error {
	return s.mutate(ctx, "delete_epic", func() error { return s.manager.DeleteEpic(id) })
}

func (s *TaskService) DeleteSubtask(ctx context.Context, id int) error {
	return s.mutate(ctx, "delete_subtask", func() error { return s.manager.DeleteSubtask(id) })
}

func (s *TaskService) DeleteAllTasks(ctx context.Context) error {
	return s.mutate(ctx, "delete_all_tasks", func() error {
		s.manager.DeleteAllTasks()
		return nil
	})
}

func (s *TaskService) DeleteAllEpics(ctx context.Context) error {
	return s.mutate(ctx, "delete_all_epics", func() error {
		s.manager.DeleteAllEpics()
		return nil
	})
}

func (s *TaskService) DeleteAllSubtasks(ctx context.Context) error {
	return s.mutate(ctx, "delete_all_subtasks", func() error {
		s.manager.DeleteAllSubtasks()
		return nil
	})
}

func (s *TaskService) History(context.Context) ([]domain.Task, error) {
	return s.manager.History(), nil
}

func (s *TaskService) Prioritized(context.Context) ([]domain.Task, error) {
	return s.manager.Prioritized(), nil
}

func (s *TaskService) EndTime(_ context.Context, id int) (*time.Time, error) {
	end, ok := s.manager.EndTime(id)
	if !ok {
		return nil, domain.ErrTaskNotFound
	}
	return end, nil
}

// Snapshot exposes the current state, e.g. for exporting it elsewhere.
func (s *TaskService) Snapshot() domain.Snapshot {
	return s.manager.Snapshot()
}

func (s *TaskService) create(ctx context.Context, op string, task domain.Task, create func(domain.Task) (domain.Task, error)) (domain.Task, error) {
	var created domain.Task
	err := s.mutate(ctx, op, func() error {
		var err error
		created, err = create(task)
		return err
	})
	if err != nil {
		return domain.Task{}, err
	}
	return created, nil
}

func (s *TaskService) update(ctx context.Context, op string, task domain.Task, update func(domain.Task) error) (domain.Task, error) {
	if err := s.mutate(ctx, op, func() error { return update(task) }); err != nil {
		return domain.Task{}, err
	}
	return found(s.manager.Peek(task.ID))
}

func (s *TaskService) mutate(ctx context.Context, op string, fn func() error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := fn(); err != nil {
		return err
	}
	if s.repository == nil {
		return nil
	}
	if err := s.repository.Save(ctx, s.manager.Snapshot()); err != nil {
		zap.L().Error("failed to save snapshot", zap.String("operation", op), zap.Error(err))
		return domain.NewPersistenceError("save", err)
	}
	return nil
}

func found(task domain.Task, ok bool) (domain.Task, error) {
	if !ok {
		return domain.Task{}, domain.ErrTaskNotFound
	}
	return task, nil
}

var _ ports.TaskService = (*TaskService)(nil)
