package api

import (
	"time"

	"github.com/google/uuid"
	"github.com/taskdeck/taskdeck-api/internal/domain"
	"github.com/taskdeck/taskdeck-api/internal/store"
)

// Common request/response structures

// RegisterRequest defines the payload for the user registration endpoint.
type RegisterRequest struct {
	Email    string `json:"email"    validate:"required,email,max=255"`
	Name     string `json:"name"     validate:"required,min=1,max=255"`
	Password string `json:"password" validate:"required,min=1,max=72"`
}

// LoginRequest defines the payload for the user login endpoint.
type LoginRequest struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required,min=1"`
}

// UserResponse is the public view of a user returned by auth endpoints.
type UserResponse struct {
	ID    uuid.UUID `json:"id"`
	Email string    `json:"email"`
	Name  string    `json:"name"`
}

// TokenResponse defines the token bundle returned by register, login and
// refresh. TokenType is always "bearer".
type TokenResponse struct {
	AccessToken string       `json:"access_token"`
	TokenType   string       `json:"token_type"`
	User        UserResponse `json:"user"`
}

// MessageResponse carries a human-readable confirmation message.
type MessageResponse struct {
	Message string `json:"message"`
}

// CreateTaskRequest defines the payload for creating a task. Omitted
// optional fields take the documented defaults (medium priority, not
// starred, not completed, no tags).
type CreateTaskRequest struct {
	Title       string   `json:"title"       validate:"required,min=1,max=255"`
	Description string   `json:"description" validate:"max=1000"`
	Completed   bool     `json:"completed"`
	Priority    string   `json:"priority"    validate:"omitempty,oneof=low medium high"`
	Starred     bool     `json:"starred"`
	Tags        []string `json:"tags"        validate:"max=10"`
	DueDate     *string  `json:"due_date"`
}

// UpdateTaskRequest defines the payload for updating a task. Every field is
// optional; only fields present in the JSON body are applied, so a PUT with
// a single field behaves as a partial merge. Tags, when present, replace
// the stored sequence wholesale.
type UpdateTaskRequest struct {
	Title       *string   `json:"title"       validate:"omitempty,min=1,max=255"`
	Description *string   `json:"description" validate:"omitempty,max=1000"`
	Completed   *bool     `json:"completed"`
	Priority    *string   `json:"priority"    validate:"omitempty,oneof=low medium high"`
	Starred     *bool     `json:"starred"`
	Tags        *[]string `json:"tags"        validate:"omitempty,max=10"`
	DueDate     *string   `json:"due_date"`
}

// CompleteTaskRequest defines the payload for the completion-toggle
// endpoint. The field is mandatory; a body without it is rejected.
type CompleteTaskRequest struct {
	Completed *bool `json:"completed" validate:"required"`
}

// TaskResponse is the public view of a task.
type TaskResponse struct {
	ID          uuid.UUID  `json:"id"`
	OwnerID     uuid.UUID  `json:"owner_id"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Completed   bool       `json:"completed"`
	Priority    string     `json:"priority"`
	Starred     bool       `json:"starred"`
	Tags        []string   `json:"tags"`
	DueDate     *time.Time `json:"due_date,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

// dueDateLayouts are the timestamp formats accepted for due dates, tried
// in order.
var dueDateLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02",
}

// parseDueDate parses a caller-supplied due date string. An unparsable
// value yields nil: the field is silently dropped rather than rejected.
// This mirrors the documented create/update quirk.
func parseDueDate(value string) *time.Time {
	for _, layout := range dueDateLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			utc := t.UTC()
			return &utc
		}
	}
	return nil
}

// toTask builds a domain task for the given owner from the request.
func (req *CreateTaskRequest) toTask(ownerID uuid.UUID) (*domain.Task, error) {
	task, err := domain.NewTask(ownerID, req.Title)
	if err != nil {
		return nil, err
	}

	task.Description = req.Description
	task.Completed = req.Completed
	task.Starred = req.Starred
	if req.Priority != "" {
		task.Priority = domain.Priority(req.Priority)
	}
	if req.Tags != nil {
		task.Tags = req.Tags
	}
	if req.DueDate != nil {
		task.DueDate = parseDueDate(*req.DueDate)
	}

	if err := task.Validate(); err != nil {
		return nil, err
	}
	return task, nil
}

// toPatch converts the request into a store-level patch. An unparsable due
// date leaves the patch field nil, skipping the update of that field.
func (req *UpdateTaskRequest) toPatch() store.TaskPatch {
	patch := store.TaskPatch{
		Title:       req.Title,
		Description: req.Description,
		Completed:   req.Completed,
		Starred:     req.Starred,
		Tags:        req.Tags,
	}
	if req.Priority != nil {
		priority := domain.Priority(*req.Priority)
		patch.Priority = &priority
	}
	if req.DueDate != nil {
		patch.DueDate = parseDueDate(*req.DueDate)
	}
	return patch
}

// userToResponse maps a domain user to its public view.
func userToResponse(user *domain.User) UserResponse {
	return UserResponse{
		ID:    user.ID,
		Email: user.Email,
		Name:  user.Name,
	}
}

// taskToResponse maps a domain task to its public view.
func taskToResponse(task *domain.Task) TaskResponse {
	tags := task.Tags
	if tags == nil {
		tags = []string{}
	}
	return TaskResponse{
		ID:          task.ID,
		OwnerID:     task.OwnerID,
		Title:       task.Title,
		Description: task.Description,
		Completed:   task.Completed,
		Priority:    string(task.Priority),
		Starred:     task.Starred,
		Tags:        tags,
		DueDate:     task.DueDate,
		CreatedAt:   task.CreatedAt,
		UpdatedAt:   task.UpdatedAt,
	}
}
