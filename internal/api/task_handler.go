package api

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-playground/validator/v10"

	"github.com/taskdeck/taskdeck-api/internal/api/shared"
	"github.com/taskdeck/taskdeck-api/internal/domain"
	"github.com/taskdeck/taskdeck-api/internal/platform/logger"
	"github.com/taskdeck/taskdeck-api/internal/store"
)

// TaskHandler handles task CRUD requests. Ownership is enforced before any
// of these handlers run: the RequireOwner middleware has already matched
// the path user ID against the authenticated identity, so the path owner
// is the authenticated owner by the time a handler touches the store.
type TaskHandler struct {
	taskStore store.TaskStore
	validator *validator.Validate
	logger    *slog.Logger
}

// NewTaskHandler creates a new TaskHandler with the given dependencies.
func NewTaskHandler(taskStore store.TaskStore, logger *slog.Logger) *TaskHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &TaskHandler{
		taskStore: taskStore,
		validator: validator.New(),
		logger:    logger.With(slog.String("component", "task_handler")),
	}
}

// queryInt reads an integer query parameter, falling back to def when the
// parameter is absent. A present but non-integer value is an error.
func queryInt(r *http.Request, name string, def int) (int, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return def, nil
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		return 0, domain.NewValidationError(name, "must be an integer", domain.ErrValidation)
	}
	return value, nil
}

// List handles GET /{userID}/tasks?skip=&limit=.
func (h *TaskHandler) List(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	ownerID, ok := getUserIDFromContext(r)
	if !ok {
		log.Warn("user ID not found or invalid in request context")
		HandleAPIError(w, r, domain.ErrUnauthorized, "User ID not found or invalid")
		return
	}

	skip, err := queryInt(r, "skip", 0)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}
	limit, err := queryInt(r, "limit", 0)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	tasks, err := h.taskStore.List(r.Context(), ownerID, skip, limit)
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, http.StatusInternalServerError, "Failed to list tasks", err)
		return
	}

	responses := make([]TaskResponse, 0, len(tasks))
	for _, task := range tasks {
		responses = append(responses, taskToResponse(task))
	}

	shared.RespondWithJSON(w, r, http.StatusOK, responses)
}

// Get handles GET /{userID}/tasks/{taskID}.
// A task owned by someone else reports the same 404 as an absent one.
func (h *TaskHandler) Get(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	ownerID, taskID, ok := handleUserIDAndPathUUID(w, r, "taskID", log)
	if !ok {
		return
	}

	task, err := h.taskStore.GetByID(r.Context(), ownerID, taskID)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, taskToResponse(task))
}

// Create handles POST /{userID}/tasks.
func (h *TaskHandler) Create(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	ownerID, ok := getUserIDFromContext(r)
	if !ok {
		log.Warn("user ID not found or invalid in request context")
		HandleAPIError(w, r, domain.ErrUnauthorized, "User ID not found or invalid")
		return
	}

	var req CreateTaskRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, SanitizeValidationError(err))
		return
	}

	task, err := req.toTask(ownerID)
	if err != nil {
		HandleAPIError(w, r, err, err.Error())
		return
	}

	if err := h.taskStore.Create(r.Context(), task); err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	log.Info("task created",
		slog.String("task_id", task.ID.String()),
		slog.String("owner_id", ownerID.String()))
	shared.RespondWithJSON(w, r, http.StatusCreated, taskToResponse(task))
}

// Update handles PUT /{userID}/tasks/{taskID}.
// Only fields present in the body are applied; the merge is PATCH-style
// even though the method is PUT.
func (h *TaskHandler) Update(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	ownerID, taskID, ok := handleUserIDAndPathUUID(w, r, "taskID", log)
	if !ok {
		return
	}

	var req UpdateTaskRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, SanitizeValidationError(err))
		return
	}

	task, err := h.taskStore.Update(r.Context(), ownerID, taskID, req.toPatch())
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, taskToResponse(task))
}

// Complete handles PATCH /{userID}/tasks/{taskID}/complete.
// The completed field is mandatory; nothing else can be changed here.
func (h *TaskHandler) Complete(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	ownerID, taskID, ok := handleUserIDAndPathUUID(w, r, "taskID", log)
	if !ok {
		return
	}

	var req CompleteTaskRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Completed field is required")
		return
	}

	task, err := h.taskStore.Update(r.Context(), ownerID, taskID, store.TaskPatch{
		Completed: req.Completed,
	})
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, taskToResponse(task))
}

// Delete handles DELETE /{userID}/tasks/{taskID}.
// The first delete succeeds with 204; deleting the same task again is 404.
func (h *TaskHandler) Delete(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	ownerID, taskID, ok := handleUserIDAndPathUUID(w, r, "taskID", log)
	if !ok {
		return
	}

	if err := h.taskStore.Delete(r.Context(), ownerID, taskID); err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	log.Info("task deleted",
		slog.String("task_id", taskID.String()),
		slog.String("owner_id", ownerID.String()))
	w.WriteHeader(http.StatusNoContent)
}
