// Package service defines the backend-agnostic interface for task operations.
package service

import (
	"strings"
	"time"
)

// Status is the workflow state of a task.
type Status string

const (
	StatusToDo       Status = "to-do"
	StatusInProgress Status = "in-progress"
	StatusDone       Status = "done"
)

// Statuses lists the accepted statuses in display order.
var Statuses = []Status{StatusToDo, StatusInProgress, StatusDone}

// Valid reports whether s is one of the three known statuses.
func (s Status) Valid() bool {
	switch s {
	case StatusToDo, StatusInProgress, StatusDone:
		return true
	}
	return false
}

// Label returns the human-readable name of the status.
func (s Status) Label() string {
	switch s {
	case StatusToDo:
		return "To Do"
	case StatusInProgress:
		return "In Progress"
	case StatusDone:
		return "Done"
	}
	return string(s)
}

// Task represents a single task record as served by the backend.
type Task struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Status      Status `json:"status"`
	DueDate     string `json:"dueDate"` // ISO date, "2006-01-02" or RFC 3339
}

// Due parses DueDate. The second result is false when the value is empty or
// not a recognised ISO date.
func (t Task) Due() (time.Time, bool) {
	s := strings.TrimSpace(t.DueDate)
	if s == "" {
		return time.Time{}, false
	}
	if d, err := time.Parse(time.DateOnly, s); err == nil {
		return d, true
	}
	if d, err := time.Parse(time.RFC3339, s); err == nil {
		return d.UTC(), true
	}
	return time.Time{}, false
}

// DueDay returns the due date as "2006-01-02", or the raw value when it
// cannot be parsed.
func (t Task) DueDay() string {
	if d, ok := t.Due(); ok {
		return d.Format(time.DateOnly)
	}
	return t.DueDate
}

// TaskDraft is the body of create and field-update requests.
type TaskDraft struct {
	Content   string `json:"content"`
	Date      string `json:"date"`
	Important bool   `json:"important"`
}

// Account is the user/token record returned by register and login.
type Account struct {
	ID    string `json:"id,omitempty"`
	Name  string `json:"name,omitempty"`
	Email string `json:"email,omitempty"`
	Token string `json:"token,omitempty"`
}

// Confirmation is the payload returned by a delete.
type Confirmation struct {
	Message string `json:"message"`
}
