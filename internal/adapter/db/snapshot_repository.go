package db

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"tasktracker/internal/core/domain"
	"tasktracker/internal/core/ports"
)

// Column types are kept to what mysql, postgres and sqlite all accept. Start
// times are stored as RFC 3339 text so no driver applies its own time zone.
var schema = []string{
	`CREATE TABLE IF NOT EXISTS tracker_tasks (
  id BIGINT NOT NULL PRIMARY KEY,
  type VARCHAR(16) NOT NULL,
  title TEXT NOT NULL,
  status VARCHAR(16) NOT NULL,
  description TEXT NOT NULL,
  start_time VARCHAR(64) NULL,
  duration_minutes BIGINT NULL,
  epic_id BIGINT NULL
)`,
	`CREATE TABLE IF NOT EXISTS tracker_history (
  position BIGINT NOT NULL PRIMARY KEY,
  task_id BIGINT NOT NULL
)`,
}

const (
	selectTasksQuery = `
SELECT id, type, title, status, description, start_time, duration_minutes, epic_id
FROM tracker_tasks
ORDER BY id`
	selectHistoryQuery = `SELECT task_id FROM tracker_history ORDER BY position`
	insertTaskQuery    = `
INSERT INTO tracker_tasks (id, type, title, status, description, start_time, duration_minutes, epic_id)
VALUES (:id, :type, :title, :status, :description, :start_time, :duration_minutes, :epic_id)`
	insertHistoryQuery = `INSERT INTO tracker_history (position, task_id) VALUES (:position, :task_id)`
)

type SnapshotRepository struct {
	db *sqlx.DB
}

type taskRow struct {
	ID              int64          `db:"id"`
	Type            string         `db:"type"`
	Title           string         `db:"title"`
	Status          string         `db:"status"`
	Description     string         `db:"description"`
	StartTime       sql.NullString `db:"start_time"`
	DurationMinutes sql.NullInt64  `db:"duration_minutes"`
	EpicID          sql.NullInt64  `db:"epic_id"`
}

type historyRow struct {
	Position int64 `db:"position"`
	TaskID   int64 `db:"task_id"`
}

var _ ports.SnapshotRepository = (*SnapshotRepository)(nil)

func NewSnapshotRepository(db *sqlx.DB) *SnapshotRepository {
	return &SnapshotRepository{db: db}
}

// Migrate creates the tables when they do not exist yet.
func (r *SnapshotRepository) Migrate(ctx context.Context) error {
	for _, statement := range schema {
		if _, err := r.db.ExecContext(ctx, statement); err != nil {
			return domain.NewPersistenceError("migrate", err)
		}
	}
	return nil
}

func (r *SnapshotRepository) Load(ctx context.Context) (domain.Snapshot, error) {
	var rows []taskRow
	if err := r.db.SelectContext(ctx, &rows, selectTasksQuery); err != nil {
		return domain.Snapshot{}, domain.NewPersistenceError("load", err)
	}

	var snapshot domain.Snapshot
	for _, row := range rows {
		task, err := mapTaskRowToDomainTask(row)
		if err != nil {
			return domain.Snapshot{}, domain.NewPersistenceError("load", fmt.Errorf("task %d: %w", row.ID, err))
		}
		if err := snapshot.Add(task); err != nil {
			return domain.Snapshot{}, domain.NewPersistenceError("load", fmt.Errorf("task %d: %w", row.ID, err))
		}
	}

	var history []int64
	if err := r.db.SelectContext(ctx, &history, selectHistoryQuery); err != nil {
		return domain.Snapshot{}, domain.NewPersistenceError("load", err)
	}
	for _, id := range history {
		snapshot.History = append(snapshot.History, int(id))
	}

	return snapshot, nil
}

// Save replaces every stored row inside one transaction.
func (r *SnapshotRepository) Save(ctx context.Context, snapshot domain.Snapshot) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return domain.NewPersistenceError("save", err)
	}

	if err := writeSnapshot(ctx, tx, snapshot); err != nil {
		_ = tx.Rollback()
		return domain.NewPersistenceError("save", err)
	}
	if err := tx.Commit(); err != nil {
		return domain.NewPersistenceError("save", err)
	}
	return nil
}

func (r *SnapshotRepository) Ping(ctx context.Context) error {
	if err := r.db.PingContext(ctx); err != nil {
		return domain.NewPersistenceError("ping", err)
	}
	return nil
}

func (r *SnapshotRepository) Close() error {
	return r.db.Close()
}

func writeSnapshot(ctx context.Context, tx *sqlx.Tx, snapshot domain.Snapshot) error {
	if _, err := tx.ExecContext(ctx, "DELETE FROM tracker_history"); err != nil {
		return err
	}
	if _, err := tx.ExecContext(ctx, "DELETE FROM tracker_tasks"); err != nil {
		return err
	}

	for _, task := range snapshot.All() {
		if _, err := tx.NamedExecContext(ctx, insertTaskQuery, mapDomainTaskToRow(task)); err != nil {
			return err
		}
	}
	for i, id := range snapshot.History {
		row := historyRow{Position: int64(i), TaskID: int64(id)}
		if _, err := tx.NamedExecContext(ctx, insertHistoryQuery, row); err != nil {
			return err
		}
	}
	return nil
}

func mapDomainTaskToRow(task domain.Task) taskRow {
	row := taskRow{
		ID:          int64(task.ID),
		Type:        string(task.Type),
		Title:       task.Title,
		Status:      string(task.Status),
		Description: task.Description,
	}

	if task.StartTime != nil {
		row.StartTime = sql.NullString{String: task.StartTime.Format(time.RFC3339Nano), Valid: true}
	}
	if task.StartTime != nil || task.Duration > 0 {
		row.DurationMinutes = sql.NullInt64{Int64: int64(task.Duration / time.Minute), Valid: true}
	}
	if task.Type == domain.TypeSubtask {
		row.EpicID = sql.NullInt64{Int64: int64(task.EpicID()), Valid: true}
	}

	return row
}

func mapTaskRowToDomainTask(row taskRow) (domain.Task, error) {
	status := domain.Status(row.Status)
	if !status.Valid() {
		return domain.Task{}, domain.ErrInvalidStatus
	}

	var start *time.Time
	if row.StartTime.Valid {
		value, err := time.Parse(time.RFC3339Nano, row.StartTime.String)
		if err != nil {
			return domain.Task{}, err
		}
		start = &value
	}

	var duration time.Duration
	if row.DurationMinutes.Valid {
		var err error
		if duration, err = domain.DurationFromMinutes(row.DurationMinutes.Int64); err != nil {
			return domain.Task{}, err
		}
	}

	var task domain.Task
	switch domain.Type(row.Type) {
	case domain.TypeTask:
		task = domain.NewTask(row.Title, row.Description, status, start, duration)
	case domain.TypeEpic:
		task = domain.NewEpic(row.Title, row.Description)
	case domain.TypeSubtask:
		var err error
		task, err = domain.NewSubtask(row.Title, row.Description, status, start, duration, int(row.EpicID.Int64))
		if err != nil {
			return domain.Task{}, err
		}
	default:
		return domain.Task{}, domain.ErrInvalidTask
	}

	return task.WithID(int(row.ID))
}
