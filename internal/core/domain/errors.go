package domain

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidID     = errors.New("id must be positive")
	ErrInvalidEpicID = errors.New("epic id must be positive")
	ErrInvalidStatus = errors.New("invalid task status")
	ErrInvalidTask   = errors.New("invalid task")
	ErrTaskNotFound  = errors.New("task not found")
	ErrEpicNotFound  = errors.New("epic not found")
	ErrTaskOverlap   = errors.New("task overlaps a scheduled task")
)

// PersistenceError wraps any storage failure raised while saving or loading a
// snapshot.
type PersistenceError struct {
	Op  string
	Err error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("persistence %s: %v", e.Op, e.Err)
}

func (e *PersistenceError) Unwrap() error {
	return e.Err
}

func NewPersistenceError(op string, err error) error {
	if err == nil {
		return nil
	}
	var pe *PersistenceError
	if errors.As(err, &pe) {
		return err
	}
	return &PersistenceError{Op: op, Err: err}
}
