package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/taskdeck/taskdeck-api/internal/domain"
	"github.com/taskdeck/taskdeck-api/internal/platform/logger"
	"github.com/taskdeck/taskdeck-api/internal/store"
)

// defaultListLimit is the page size used when the caller passes a
// non-positive limit.
const defaultListLimit = 100

// TaskStore implements the store.TaskStore interface using a PostgreSQL
// database as the storage backend. Every query is owner-scoped so a task
// belonging to a different owner is indistinguishable from one that does
// not exist.
type TaskStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewTaskStore creates a new PostgreSQL implementation of the TaskStore
// interface. It accepts a database connection or transaction managed by the
// caller. If logger is nil, a default logger will be used.
func NewTaskStore(db store.DBTX, logger *slog.Logger) *TaskStore {
	if db == nil {
		panic("db cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &TaskStore{
		db:     db,
		logger: logger.With(slog.String("component", "task_store")),
	}
}

// Ensure TaskStore implements store.TaskStore
var _ store.TaskStore = (*TaskStore)(nil)

// encodeTags serializes the ordered tag sequence for the text column.
func encodeTags(tags []string) (string, error) {
	if tags == nil {
		tags = []string{}
	}
	encoded, err := json.Marshal(tags)
	if err != nil {
		return "", fmt.Errorf("failed to encode tags: %w", err)
	}
	return string(encoded), nil
}

// decodeTags deserializes the stored tag column. Decode failures degrade to
// an empty sequence rather than surfacing an error to the caller.
func decodeTags(encoded string, log *slog.Logger) []string {
	if encoded == "" {
		return []string{}
	}
	var tags []string
	if err := json.Unmarshal([]byte(encoded), &tags); err != nil {
		log.Warn("failed to decode stored tags, returning empty sequence",
			slog.String("error", err.Error()))
		return []string{}
	}
	if tags == nil {
		return []string{}
	}
	return tags
}

// Create implements store.TaskStore.Create
// It validates the task and inserts it. A foreign key violation on the
// owner column maps to store.ErrInvalidEntity.
func (s *TaskStore) Create(ctx context.Context, task *domain.Task) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := task.Validate(); err != nil {
		log.Warn("task validation failed during create",
			slog.String("error", err.Error()),
			slog.String("task_id", task.ID.String()))
		return fmt.Errorf("%w: %v", store.ErrInvalidEntity, err)
	}

	encodedTags, err := encodeTags(task.Tags)
	if err != nil {
		return fmt.Errorf("%w: %v", store.ErrInvalidEntity, err)
	}

	query := `
		INSERT INTO tasks (id, owner_id, title, description, completed,
		                   priority, starred, tags, due_date, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
	`
	_, err = s.db.ExecContext(
		ctx,
		query,
		task.ID,
		task.OwnerID,
		task.Title,
		task.Description,
		task.Completed,
		task.Priority,
		task.Starred,
		encodedTags,
		task.DueDate,
		task.CreatedAt,
		task.UpdatedAt,
	)

	if err != nil {
		if isForeignKeyViolation(err) {
			log.Warn("owner does not exist for task creation",
				slog.String("task_id", task.ID.String()),
				slog.String("owner_id", task.OwnerID.String()))
			return fmt.Errorf("%w: owner %s not found",
				store.ErrInvalidEntity, task.OwnerID)
		}

		log.Error("failed to create task",
			slog.String("error", err.Error()),
			slog.String("task_id", task.ID.String()),
			slog.String("owner_id", task.OwnerID.String()))
		return err
	}

	log.Info("task created successfully",
		slog.String("task_id", task.ID.String()),
		slog.String("owner_id", task.OwnerID.String()))
	return nil
}

// GetByID implements store.TaskStore.GetByID
// Returns store.ErrTaskNotFound whether the task is absent or owned by a
// different user.
func (s *TaskStore) GetByID(ctx context.Context, ownerID, taskID uuid.UUID) (*domain.Task, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		SELECT id, owner_id, title, description, completed,
		       priority, starred, tags, due_date, created_at, updated_at
		FROM tasks
		WHERE id = $1 AND owner_id = $2
	`

	task, err := scanTask(s.db.QueryRowContext(ctx, query, taskID, ownerID), log)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			log.Debug("task not found for owner",
				slog.String("task_id", taskID.String()),
				slog.String("owner_id", ownerID.String()))
			return nil, store.ErrTaskNotFound
		}
		log.Error("failed to get task by ID",
			slog.String("error", err.Error()),
			slog.String("task_id", taskID.String()))
		return nil, err
	}

	return task, nil
}

// List implements store.TaskStore.List
// Tasks come back in insertion order (created_at, then id for ties).
func (s *TaskStore) List(
	ctx context.Context,
	ownerID uuid.UUID,
	offset, limit int,
) ([]*domain.Task, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if offset < 0 {
		offset = 0
	}
	if limit <= 0 {
		limit = defaultListLimit
	}

	query := `
		SELECT id, owner_id, title, description, completed,
		       priority, starred, tags, due_date, created_at, updated_at
		FROM tasks
		WHERE owner_id = $1
		ORDER BY created_at ASC, id ASC
		LIMIT $2 OFFSET $3
	`

	rows, err := s.db.QueryContext(ctx, query, ownerID, limit, offset)
	if err != nil {
		log.Error("failed to query tasks",
			slog.String("error", err.Error()),
			slog.String("owner_id", ownerID.String()))
		return nil, err
	}
	defer func() {
		if err := rows.Close(); err != nil {
			log.Error("failed to close rows", slog.String("error", err.Error()))
		}
	}()

	var tasks []*domain.Task
	for rows.Next() {
		task, err := scanTask(rows, log)
		if err != nil {
			log.Error("failed to scan task row",
				slog.String("error", err.Error()))
			return nil, err
		}
		tasks = append(tasks, task)
	}

	if err := rows.Err(); err != nil {
		log.Error("error after scanning rows",
			slog.String("error", err.Error()))
		return nil, err
	}

	// Return empty slice instead of nil if no tasks found
	if tasks == nil {
		tasks = []*domain.Task{}
	}

	log.Debug("listed tasks for owner",
		slog.String("owner_id", ownerID.String()),
		slog.Int("count", len(tasks)))
	return tasks, nil
}

// Update implements store.TaskStore.Update
// It loads the owner's task, merges the patch in memory, validates the
// result and writes it back. Absent patch fields keep their stored values;
// tags replace the stored sequence wholesale. Concurrent updates race
// last-write-wins.
//
// When backed by a plain connection the read-merge-write runs inside its
// own transaction; a store already bound to a transaction joins it.
func (s *TaskStore) Update(
	ctx context.Context,
	ownerID, taskID uuid.UUID,
	patch store.TaskPatch,
) (*domain.Task, error) {
	db, ok := s.db.(*sql.DB)
	if !ok {
		return s.update(ctx, ownerID, taskID, patch)
	}

	var task *domain.Task
	err := store.RunInTransaction(ctx, db, func(ctx context.Context, tx *sql.Tx) error {
		txStore := &TaskStore{db: tx, logger: s.logger}
		var txErr error
		task, txErr = txStore.update(ctx, ownerID, taskID, patch)
		return txErr
	})
	if err != nil {
		return nil, err
	}
	return task, nil
}

// update performs the merge against whatever the store is bound to.
func (s *TaskStore) update(
	ctx context.Context,
	ownerID, taskID uuid.UUID,
	patch store.TaskPatch,
) (*domain.Task, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	task, err := s.GetByID(ctx, ownerID, taskID)
	if err != nil {
		return nil, err
	}

	// An empty patch has nothing to write; hand back the stored task
	// without bumping updated_at.
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
		task.Tags = *patch.Tags
	}
	if patch.DueDate != nil {
		task.DueDate = patch.DueDate
	}
	task.UpdatedAt = time.Now().UTC()

	if err := task.Validate(); err != nil {
		log.Warn("task validation failed during update",
			slog.String("error", err.Error()),
			slog.String("task_id", taskID.String()))
		return nil, fmt.Errorf("%w: %v", store.ErrInvalidEntity, err)
	}

	encodedTags, err := encodeTags(task.Tags)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", store.ErrInvalidEntity, err)
	}

	query := `
		UPDATE tasks
		SET title = $1, description = $2, completed = $3, priority = $4,
		    starred = $5, tags = $6, due_date = $7, updated_at = $8
		WHERE id = $9 AND owner_id = $10
	`

	result, err := s.db.ExecContext(
		ctx,
		query,
		task.Title,
		task.Description,
		task.Completed,
		task.Priority,
		task.Starred,
		encodedTags,
		task.DueDate,
		task.UpdatedAt,
		taskID,
		ownerID,
	)

	if err != nil {
		log.Error("failed to update task",
			slog.String("error", err.Error()),
			slog.String("task_id", taskID.String()))
		return nil, err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		log.Error("failed to get rows affected",
			slog.String("error", err.Error()),
			slog.String("task_id", taskID.String()))
		return nil, err
	}

	// The task vanished between the read and the write.
	if rowsAffected == 0 {
		log.Debug("task not found for update",
			slog.String("task_id", taskID.String()))
		return nil, store.ErrTaskNotFound
	}

	log.Info("task updated successfully",
		slog.String("task_id", taskID.String()),
		slog.String("owner_id", ownerID.String()))
	return task, nil
}

// Delete implements store.TaskStore.Delete
// Returns store.ErrTaskNotFound if no row was deleted for this owner, which
// also makes repeated deletes report not-found after the first success.
func (s *TaskStore) Delete(ctx context.Context, ownerID, taskID uuid.UUID) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		DELETE FROM tasks
		WHERE id = $1 AND owner_id = $2
	`

	result, err := s.db.ExecContext(ctx, query, taskID, ownerID)
	if err != nil {
		log.Error("failed to delete task",
			slog.String("error", err.Error()),
			slog.String("task_id", taskID.String()))
		return err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		log.Error("failed to get rows affected",
			slog.String("error", err.Error()),
			slog.String("task_id", taskID.String()))
		return err
	}

	if rowsAffected == 0 {
		log.Debug("task not found for delete",
			slog.String("task_id", taskID.String()),
			slog.String("owner_id", ownerID.String()))
		return store.ErrTaskNotFound
	}

	log.Info("task deleted successfully",
		slog.String("task_id", taskID.String()),
		slog.String("owner_id", ownerID.String()))
	return nil
}

// WithTx implements store.TaskStore.WithTx
func (s *TaskStore) WithTx(tx *sql.Tx) store.TaskStore {
	return &TaskStore{
		db:     tx,
		logger: s.logger,
	}
}

// rowScanner abstracts *sql.Row and *sql.Rows for scanTask.
type rowScanner interface {
	Scan(dest ...any) error
}

// scanTask reads one task row, decoding the tags column and normalizing
// the nullable fields.
func scanTask(row rowScanner, log *slog.Logger) (*domain.Task, error) {
	var task domain.Task
	var description sql.NullString
	var encodedTags sql.NullString
	var dueDate sql.NullTime

	err := row.Scan(
		&task.ID,
		&task.OwnerID,
		&task.Title,
		&description,
		&task.Completed,
		&task.Priority,
		&task.Starred,
		&encodedTags,
		&dueDate,
		&task.CreatedAt,
		&task.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	task.Description = description.String
	task.Tags = decodeTags(encodedTags.String, log)
	if dueDate.Valid {
		due := dueDate.Time
		task.DueDate = &due
	}

	return &task, nil
}
