package store

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"
	"github.com/taskdeck/taskdeck-api/internal/domain"
)

// TaskPatch describes a partial task update. Only non-nil fields are
// applied; everything else keeps its stored value. Tags, when provided,
// replace the stored sequence wholesale.
type TaskPatch struct {
	Title       *string
	Description *string
	Completed   *bool
	Priority    *domain.Priority
	Starred     *bool
	Tags        *[]string
	DueDate     *time.Time
}

// Empty reports whether the patch carries no fields at all.
func (p TaskPatch) Empty() bool {
	return p.Title == nil && p.Description == nil && p.Completed == nil &&
		p.Priority == nil && p.Starred == nil && p.Tags == nil && p.DueDate == nil
}

// TaskStore defines the interface for task data persistence. Every method
// is owner-scoped: a task that exists but belongs to a different owner is
// reported exactly like a task that does not exist, so callers cannot leak
// existence information across owners.
type TaskStore interface {
	// Create saves a new task to the store.
	// It validates the domain Task first; returns ErrInvalidEntity when the
	// owner does not reference an existing user.
	Create(ctx context.Context, task *domain.Task) error

	// GetByID retrieves the task with the given ID belonging to ownerID.
	// Returns ErrTaskNotFound whether the task is absent or foreign-owned.
	GetByID(ctx context.Context, ownerID, taskID uuid.UUID) (*domain.Task, error)

	// List returns the owner's tasks in insertion order, sliced by
	// offset/limit. A negative offset is clamped to zero and a
	// non-positive limit falls back to the default page size.
	// Returns an empty slice, never nil, when the owner has no tasks.
	List(ctx context.Context, ownerID uuid.UUID, offset, limit int) ([]*domain.Task, error)

	// Update applies the patch to the owner's task and returns the merged,
	// persisted record. Fields absent from the patch are untouched.
	// Returns ErrTaskNotFound if no task matches for this owner.
	// Concurrent updates race last-write-wins; there is no optimistic
	// concurrency token.
	Update(ctx context.Context, ownerID, taskID uuid.UUID, patch TaskPatch) (*domain.Task, error)

	// Delete removes the owner's task.
	// Returns ErrTaskNotFound if no row was deleted.
	Delete(ctx context.Context, ownerID, taskID uuid.UUID) error

	// WithTx returns a TaskStore bound to the provided transaction.
	WithTx(tx *sql.Tx) TaskStore
}
