// Package testutil provides testing utilities.
package testutil

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"taskgenie/internal/service"
)

// ErrNotFound is returned when a resource is not found.
var ErrNotFound = service.ErrNotFound

// ErrConflict is returned when registering an existing email.
var ErrConflict = errors.New("user already exists")

// ErrUnauthorized is returned for bad credentials.
var ErrUnauthorized = service.ErrUnauthorized

// FakeService is an in-memory implementation of service.Service for testing.
type FakeService struct {
	mu       sync.RWMutex
	tasks    []service.Task
	owners   map[string]string // task id -> user id
	accounts map[string]fakeAccount
	nextID   int

	// Error injection for testing
	RegisterErr     error
	LoginErr        error
	GetAllTasksErr  error
	GetUserTasksErr error
	GetTaskErr      error
	CreateTaskErr   error
	UpdateTaskErr   error
	SaveTaskErr     error
	DeleteTaskErr   error

	// Call counters
	GetAllTasksCalls int
	DeleteTaskCalls  int
	SaveTaskCalls    int

	// Saved holds every record passed to SaveTask, in call order.
	Saved []service.Task
}

type fakeAccount struct {
	service.Account
	password string
}

// NewFakeService creates an empty FakeService.
func NewFakeService() *FakeService {
	return &FakeService{
		owners:   make(map[string]string),
		accounts: make(map[string]fakeAccount),
	}
}

// AddTask appends a task owned by no one.
func (f *FakeService) AddTask(id, title string, status service.Status, due string) {
	f.AddUserTask("", service.Task{ID: id, Title: title, Status: status, DueDate: due})
}

// AddUserTask appends a task owned by userID.
func (f *FakeService) AddUserTask(userID string, t service.Task) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.tasks = append(f.tasks, t)
	f.owners[t.ID] = userID
}

// AddAccount registers an account directly.
func (f *FakeService) AddAccount(acct service.Account, password string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.accounts[strings.ToLower(acct.Email)] = fakeAccount{Account: acct, password: password}
}

// Tasks returns a copy of the stored tasks.
func (f *FakeService) Tasks() []service.Task {
	f.mu.RLock()
	defer f.mu.RUnlock()
	out := make([]service.Task, len(f.tasks))
	copy(out, f.tasks)
	return out
}

// Register implements service.Service.
func (f *FakeService) Register(ctx context.Context, name, email, password string) (service.Account, error) {
	if f.RegisterErr != nil {
		return service.Account{}, f.RegisterErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()

	key := strings.ToLower(email)
	if _, exists := f.accounts[key]; exists {
		return service.Account{}, ErrConflict
	}
	f.nextID++
	acct := service.Account{
		ID:    fmt.Sprintf("user-%d", f.nextID),
		Name:  name,
		Email: email,
		Token: fmt.Sprintf("token-%d", f.nextID),
	}
	f.accounts[key] = fakeAccount{Account: acct, password: password}
	return acct, nil
}

// Login implements service.Service.
func (f *FakeService) Login(ctx context.Context, email, password string) (service.Account, error) {
	if f.LoginErr != nil {
		return service.Account{}, f.LoginErr
	}
	f.mu.RLock()
	defer f.mu.RUnlock()

	acct, ok := f.accounts[strings.ToLower(email)]
	if !ok || acct.password != password {
		return service.Account{}, ErrUnauthorized
	}
	return acct.Account, nil
}

// GetAllTasks implements service.Service.
func (f *FakeService) GetAllTasks(ctx context.Context) ([]service.Task, error) {
	f.mu.Lock()
	f.GetAllTasksCalls++
	f.mu.Unlock()
	if f.GetAllTasksErr != nil {
		return nil, f.GetAllTasksErr
	}
	return f.Tasks(), nil
}

// GetUserTasks implements service.Service.
func (f *FakeService) GetUserTasks(ctx context.Context, userID string) ([]service.Task, error) {
	if f.GetUserTasksErr != nil {
		return nil, f.GetUserTasksErr
	}
	f.mu.RLock()
	defer f.mu.RUnlock()
	var out []service.Task
	for _, t := range f.tasks {
		if f.owners[t.ID] == userID {
			out = append(out, t)
		}
	}
	return out, nil
}

// GetTask implements service.Service.
func (f *FakeService) GetTask(ctx context.Context, id string) (service.Task, error) {
	if f.GetTaskErr != nil {
		return service.Task{}, f.GetTaskErr
	}
	f.mu.RLock()
	defer f.mu.RUnlock()
	if i := f.indexOf(id); i >= 0 {
		return f.tasks[i], nil
	}
	return service.Task{}, ErrNotFound
}

// CreateTask implements service.Service.
func (f *FakeService) CreateTask(ctx context.Context, draft service.TaskDraft) (service.Task, error) {
	if f.CreateTaskErr != nil {
		return service.Task{}, f.CreateTaskErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()

	f.nextID++
	task := service.Task{
		ID:      fmt.Sprintf("task-%d", f.nextID),
		Title:   draft.Content,
		Status:  service.StatusToDo,
		DueDate: draft.Date,
	}
	f.tasks = append(f.tasks, task)
	return task, nil
}

// UpdateTask implements service.Service.
func (f *FakeService) UpdateTask(ctx context.Context, id string, draft service.TaskDraft) (service.Task, error) {
	if f.UpdateTaskErr != nil {
		return service.Task{}, f.UpdateTaskErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()

	i := f.indexOf(id)
	if i < 0 {
		return service.Task{}, ErrNotFound
	}
	f.tasks[i].Title = draft.Content
	f.tasks[i].DueDate = draft.Date
	return f.tasks[i], nil
}

// SaveTask implements service.Service.
func (f *FakeService) SaveTask(ctx context.Context, task service.Task) (service.Task, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.SaveTaskCalls++
	f.Saved = append(f.Saved, task)
	if f.SaveTaskErr != nil {
		return service.Task{}, f.SaveTaskErr
	}

	i := f.indexOf(task.ID)
	if i < 0 {
		return service.Task{}, ErrNotFound
	}
	f.tasks[i] = task
	return task, nil
}

// DeleteTask implements service.Service.
func (f *FakeService) DeleteTask(ctx context.Context, id string) (service.Confirmation, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.DeleteTaskCalls++
	if f.DeleteTaskErr != nil {
		return service.Confirmation{}, f.DeleteTaskErr
	}

	i := f.indexOf(id)
	if i < 0 {
		return service.Confirmation{}, ErrNotFound
	}
	f.tasks = append(f.tasks[:i], f.tasks[i+1:]...)
	delete(f.owners, id)
	return service.Confirmation{Message: "Task deleted"}, nil
}

// indexOf must be called with mu held.
func (f *FakeService) indexOf(id string) int {
	for i, t := range f.tasks {
		if t.ID == id {
			return i
		}
	}
	return -1
}

var _ service.Service = (*FakeService)(nil)
