// Package service defines the backend-agnostic interface for task operations.
package service

import (
	"context"
	"errors"
)

// Sentinel errors backends map their failures onto, checked with errors.Is.
var (
	ErrNotFound     = errors.New("not found")
	ErrUnauthorized = errors.New("unauthorized")
)

// Service defines the interface for task backend operations.
// All HTTP calls go through this interface.
// Commands and the TUI never build requests directly.
type Service interface {
	// Register creates an account.
	Register(ctx context.Context, name, email, password string) (Account, error)

	// Login exchanges credentials for an account record carrying a token.
	Login(ctx context.Context, email, password string) (Account, error)

	// GetAllTasks returns the complete task collection in backend order.
	GetAllTasks(ctx context.Context) ([]Task, error)

	// GetUserTasks returns the tasks owned by the given user id.
	GetUserTasks(ctx context.Context, userID string) ([]Task, error)

	// GetTask returns a single task by id.
	GetTask(ctx context.Context, id string) (Task, error)

	// CreateTask creates a task from a draft.
	CreateTask(ctx context.Context, draft TaskDraft) (Task, error)

	// UpdateTask replaces the draft fields of task id.
	UpdateTask(ctx context.Context, id string, draft TaskDraft) (Task, error)

	// SaveTask sends the full task record to PUT /api/task/{id}.
	SaveTask(ctx context.Context, task Task) (Task, error)

	// DeleteTask deletes task id.
	DeleteTask(ctx context.Context, id string) (Confirmation, error)
}
