package csvfile

import (
	"bufio"
	"context"
	"errors"
	"io/fs"
	"os"
	"path/filepath"

	"tasktracker/internal/core/domain"
	"tasktracker/internal/core/ports"
)

// Repository keeps the snapshot in a single CSV file. A missing file loads as
// an empty snapshot.
type Repository struct {
	path string
}

var _ ports.SnapshotRepository = (*Repository)(nil)

func NewRepository(path string) *Repository {
	return &Repository{path: path}
}

func (r *Repository) Path() string {
	return r.path
}

func (r *Repository) Load(_ context.Context) (domain.Snapshot, error) {
	file, err := os.Open(r.path)
	if errors.Is(err, fs.ErrNotExist) {
		return domain.Snapshot{}, nil
	}
	if err != nil {
		return domain.Snapshot{}, domain.NewPersistenceError("load", err)
	}
	defer file.Close()

	snapshot, err := Decode(bufio.NewReader(file))
	if err != nil {
		return domain.Snapshot{}, domain.NewPersistenceError("load", err)
	}
	return snapshot, nil
}

// Save writes the snapshot next to the target and renames it into place, so a
// failed write never leaves a truncated file behind.
func (r *Repository) Save(_ context.Context, snapshot domain.Snapshot) error {
	if err := r.save(snapshot); err != nil {
		return domain.NewPersistenceError("save", err)
	}
	return nil
}

func (r *Repository) save(snapshot domain.Snapshot) error {
	dir := filepath.Dir(r.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}

	tmp, err := os.CreateTemp(dir, filepath.Base(r.path)+".*.tmp")
	if err != nil {
		return err
	}
	defer os.Remove(tmp.Name())

	w := bufio.NewWriter(tmp)
	if err := Encode(w, snapshot); err != nil {
		tmp.Close()
		return err
	}
	if err := w.Flush(); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), r.path)
}

// Ping checks that the directory holding the file is reachable.
func (r *Repository) Ping(_ context.Context) error {
	info, err := os.Stat(filepath.Dir(r.path))
	if err != nil {
		return domain.NewPersistenceError("ping", err)
	}
	if !info.IsDir() {
		return domain.NewPersistenceError("ping", errors.New("not a directory: "+filepath.Dir(r.path)))
	}
	return nil
}

func (r *Repository) Close() error {
	return nil
}
