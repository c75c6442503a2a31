package mocks

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"
	"github.com/taskdeck/taskdeck-api/internal/domain"
	"github.com/taskdeck/taskdeck-api/internal/store"
)

// MockTaskStore implements store.TaskStore for testing
type MockTaskStore struct {
	// Function fields for customizable behavior
	CreateFn  func(ctx context.Context, task *domain.Task) error
	GetByIDFn func(ctx context.Context, ownerID, taskID uuid.UUID) (*domain.Task, error)
	ListFn    func(ctx context.Context, ownerID uuid.UUID, offset, limit int) ([]*domain.Task, error)
	UpdateFn  func(ctx context.Context, ownerID, taskID uuid.UUID, patch store.TaskPatch) (*domain.Task, error)
	DeleteFn  func(ctx context.Context, ownerID, taskID uuid.UUID) error

	// Tasks backs the default implementation, in insertion order so List
	// behaves like the real store's created_at ordering.
	Tasks []*domain.Task

	// Forced errors for the default implementation
	CreateError error
	GetError    error
	ListError   error
	UpdateError error
	DeleteError error
}

const mockListLimit = 100

// NewMockTaskStore creates a new mock store with initialized defaults
func NewMockTaskStore() *MockTaskStore {
	return &MockTaskStore{
		Tasks: make([]*domain.Task, 0),
	}
}

// Ensure MockTaskStore implements store.TaskStore
var _ store.TaskStore = (*MockTaskStore)(nil)

// Create implements the store.TaskStore interface
func (m *MockTaskStore) Create(ctx context.Context, task *domain.Task) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, task)
	}
	if m.CreateError != nil {
		return m.CreateError
	}

	if err := task.Validate(); err != nil {
		return err
	}
	m.Tasks = append(m.Tasks, task)
	return nil
}

// GetByID implements the store.TaskStore interface
func (m *MockTaskStore) GetByID(ctx context.Context, ownerID, taskID uuid.UUID) (*domain.Task, error) {
	if m.GetByIDFn != nil {
		return m.GetByIDFn(ctx, ownerID, taskID)
	}
	if m.GetError != nil {
		return nil, m.GetError
	}

	for _, task := range m.Tasks {
		if task.ID == taskID && task.OwnerID == ownerID {
			return task, nil
		}
	}
	return nil, store.ErrTaskNotFound
}

// List implements the store.TaskStore interface
func (m *MockTaskStore) List(ctx context.Context, ownerID uuid.UUID, offset, limit int) ([]*domain.Task, error) {
	if m.ListFn != nil {
		return m.ListFn(ctx, ownerID, offset, limit)
	}
	if m.ListError != nil {
		return nil, m.ListError
	}

	if offset < 0 {
		offset = 0
	}
	if limit <= 0 {
		limit = mockListLimit
	}

	owned := make([]*domain.Task, 0)
	for _, task := range m.Tasks {
		if task.OwnerID == ownerID {
			owned = append(owned, task)
		}
	}
	if offset >= len(owned) {
		return make([]*domain.Task, 0), nil
	}
	end := offset + limit
	if end > len(owned) {
		end = len(owned)
	}
	return owned[offset:end], nil
}

// Update implements the store.TaskStore interface
func (m *MockTaskStore) Update(ctx context.Context, ownerID, taskID uuid.UUID, patch store.TaskPatch) (*domain.Task, error) {
	if m.UpdateFn != nil {
		return m.UpdateFn(ctx, ownerID, taskID, patch)
	}
	if m.UpdateError != nil {
		return nil, m.UpdateError
	}

	task, err := m.GetByID(ctx, ownerID, taskID)
	if err != nil {
		return nil, err
	}

	// Matches the real store: an empty patch leaves updated_at alone.
	if patch.Empty() {
		return task, nil
	}

	if patch.Title != nil {
		task.Title = *patch.Title
	}
	if patch.Description != nil {
		task.Description = *patch.Description
	}
	if patch.Completed != nil {
		task.Completed = *patch.Completed
	}
	if patch.Priority != nil {
		task.Priority = *patch.Priority
	}
	if patch.Starred != nil {
		task.Starred = *patch.Starred
	}
	if patch.Tags != nil {
		task.Tags = append([]string(nil), (*patch.Tags)...)
	}
	if patch.DueDate != nil {
		task.DueDate = patch.DueDate
	}

	if err := task.Validate(); err != nil {
		return nil, err
	}
	task.UpdatedAt = time.Now().UTC()
	return task, nil
}

// Delete implements the store.TaskStore interface
func (m *MockTaskStore) Delete(ctx context.Context, ownerID, taskID uuid.UUID) error {
	if m.DeleteFn != nil {
		return m.DeleteFn(ctx, ownerID, taskID)
	}
	if m.DeleteError != nil {
		return m.DeleteError
	}

	for i, task := range m.Tasks {
		if task.ID == taskID && task.OwnerID == ownerID {
			m.Tasks = append(m.Tasks[:i], m.Tasks[i+1:]...)
			return nil
		}
	}
	return store.ErrTaskNotFound
}

// WithTx implements the store.TaskStore interface; the mock ignores
// transactions.
func (m *MockTaskStore) WithTx(tx *sql.Tx) store.TaskStore {
	return m
}
