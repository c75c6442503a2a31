package domain

import (
	"fmt"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
)

// Task validation errors. Each wraps ErrValidation so the API layer
// classifies all of them as bad requests.
var (
	ErrEmptyTaskID     = NewValidationError("task ID", "cannot be empty", nil)
	ErrEmptyOwnerID    = NewValidationError("task owner ID", "cannot be empty", nil)
	ErrTitleLength     = NewValidationError("title", "must be between 1 and 255 characters", nil)
	ErrDescriptionLong = NewValidationError("description", "must be at most 1000 characters", nil)
	ErrInvalidPriority = NewValidationError("priority", "must be low, medium or high", nil)
	ErrTooManyTags     = NewValidationError("tags", "cannot exceed 10 per task", nil)
)

// Task field limits.
const (
	MaxTitleLength       = 255
	MaxDescriptionLength = 1000
	MaxTagCount          = 10
)

// Priority is the urgency bucket of a task.
type Priority string

// Valid priorities.
const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
)

// Valid reports whether p is one of the known priorities.
func (p Priority) Valid() bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh:
		return true
	}
	return false
}

// Task represents a single to-do item exclusively owned by one user.
// Tags are an ordered sequence; the store persists them as a JSON-encoded
// text column and always presents them decoded.
type Task struct {
	ID          uuid.UUID  `json:"id"`
	OwnerID     uuid.UUID  `json:"owner_id"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Completed   bool       `json:"completed"`
	Priority    Priority   `json:"priority"`
	Starred     bool       `json:"starred"`
	Tags        []string   `json:"tags"`
	DueDate     *time.Time `json:"due_date,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

// NewTask creates a Task for the given owner with a fresh ID, timestamps
// and default field values (medium priority, not starred, not completed).
func NewTask(ownerID uuid.UUID, title string) (*Task, error) {
	now := time.Now().UTC()
	task := &Task{
		ID:        uuid.New(),
		OwnerID:   ownerID,
		Title:     title,
		Priority:  PriorityMedium,
		Tags:      []string{},
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := task.Validate(); err != nil {
		return nil, err
	}

	return task, nil
}

// Validate checks that the Task fields are within the documented limits.
// Text limits count characters, not bytes, so multibyte input is measured
// the same way the request validator measures it.
func (t *Task) Validate() error {
	if t.ID == uuid.Nil {
		return ErrEmptyTaskID
	}
	if t.OwnerID == uuid.Nil {
		return ErrEmptyOwnerID
	}
	if titleLen := utf8.RuneCountInString(t.Title); titleLen < 1 || titleLen > MaxTitleLength {
		return ErrTitleLength
	}
	if utf8.RuneCountInString(t.Description) > MaxDescriptionLength {
		return ErrDescriptionLong
	}
	if !t.Priority.Valid() {
		return fmt.Errorf("%w: %q", ErrInvalidPriority, t.Priority)
	}
	if len(t.Tags) > MaxTagCount {
		return ErrTooManyTags
	}
	return nil
}
