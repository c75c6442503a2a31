package api_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/taskdeck/taskdeck-api/internal/api"
	"github.com/taskdeck/taskdeck-api/internal/api/shared"
	"github.com/taskdeck/taskdeck-api/internal/domain"
	"github.com/taskdeck/taskdeck-api/internal/mocks"
)

// newTaskRouter mounts the task routes behind a middleware that injects the
// authenticated owner, standing in for the real auth chain.
func newTaskRouter(taskStore *mocks.MockTaskStore, ownerID uuid.UUID) http.Handler {
	handler := api.NewTaskHandler(taskStore, testLogger())

	r := chi.NewRouter()
	r.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
			ctx := context.WithValue(req.Context(), shared.UserIDContextKey, ownerID)
			next.ServeHTTP(w, req.WithContext(ctx))
		})
	})

	r.Route("/{userID}/tasks", func(r chi.Router) {
		r.Get("/", handler.List)
		r.Post("/", handler.Create)
		r.Get("/{taskID}", handler.Get)
		r.Put("/{taskID}", handler.Update)
		r.Patch("/{taskID}/complete", handler.Complete)
		r.Delete("/{taskID}", handler.Delete)
	})
	return r
}

// doJSON runs one request through the router and returns the recorder.
func doJSON(router http.Handler, method, target string, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, target, nil)
	} else {
		req = httptest.NewRequest(method, target, bytes.NewReader([]byte(body)))
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

// seedTask adds a task for the owner to the mock store.
func seedTask(t *testing.T, ts *mocks.MockTaskStore, ownerID uuid.UUID, title string) *domain.Task {
	t.Helper()
	task, err := domain.NewTask(ownerID, title)
	require.NoError(t, err)
	ts.Tasks = append(ts.Tasks, task)
	return task
}

func TestTaskHandler_Create(t *testing.T) {
	t.Parallel()

	ownerID := uuid.New()
	base := "/" + ownerID.String() + "/tasks"

	t.Run("defaults_applied", func(t *testing.T) {
		t.Parallel()

		taskStore := mocks.NewMockTaskStore()
		router := newTaskRouter(taskStore, ownerID)

		w := doJSON(router, http.MethodPost, base, `{"title":"Buy milk"}`)
		require.Equal(t, http.StatusCreated, w.Code)

		var resp api.TaskResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, "Buy milk", resp.Title)
		assert.Equal(t, ownerID, resp.OwnerID)
		assert.False(t, resp.Completed)
		assert.Equal(t, "medium", resp.Priority)
		assert.False(t, resp.Starred)
		assert.NotNil(t, resp.Tags)
		assert.Empty(t, resp.Tags)
		assert.Nil(t, resp.DueDate)
		assert.NotEqual(t, uuid.Nil, resp.ID)

		require.Len(t, taskStore.Tasks, 1)
	})

	t.Run("all_fields", func(t *testing.T) {
		t.Parallel()

		taskStore := mocks.NewMockTaskStore()
		router := newTaskRouter(taskStore, ownerID)

		body := `{
			"title": "Ship release",
			"description": "Cut the tag and publish",
			"completed": false,
			"priority": "high",
			"starred": true,
			"tags": ["work", "release"],
			"due_date": "2026-09-01T10:00:00Z"
		}`
		w := doJSON(router, http.MethodPost, base, body)
		require.Equal(t, http.StatusCreated, w.Code)

		var resp api.TaskResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, "high", resp.Priority)
		assert.True(t, resp.Starred)
		assert.Equal(t, []string{"work", "release"}, resp.Tags)
		require.NotNil(t, resp.DueDate)
		assert.Equal(t,
			time.Date(2026, time.September, 1, 10, 0, 0, 0, time.UTC),
			resp.DueDate.UTC())
	})

	t.Run("date_only_due_date", func(t *testing.T) {
		t.Parallel()

		router := newTaskRouter(mocks.NewMockTaskStore(), ownerID)
		w := doJSON(router, http.MethodPost, base, `{"title":"x","due_date":"2026-09-01"}`)
		require.Equal(t, http.StatusCreated, w.Code)

		var resp api.TaskResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		require.NotNil(t, resp.DueDate)
		assert.Equal(t,
			time.Date(2026, time.September, 1, 0, 0, 0, 0, time.UTC),
			resp.DueDate.UTC())
	})

	t.Run("unparsable_due_date_silently_dropped", func(t *testing.T) {
		t.Parallel()

		router := newTaskRouter(mocks.NewMockTaskStore(), ownerID)
		w := doJSON(router, http.MethodPost, base, `{"title":"x","due_date":"next tuesday"}`)
		require.Equal(t, http.StatusCreated, w.Code)

		var resp api.TaskResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Nil(t, resp.DueDate)
	})

	t.Run("missing_title", func(t *testing.T) {
		t.Parallel()

		router := newTaskRouter(mocks.NewMockTaskStore(), ownerID)
		w := doJSON(router, http.MethodPost, base, `{"description":"no title"}`)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("title_too_long", func(t *testing.T) {
		t.Parallel()

		router := newTaskRouter(mocks.NewMockTaskStore(), ownerID)
		body := `{"title":"` + strings.Repeat("t", domain.MaxTitleLength+1) + `"}`
		w := doJSON(router, http.MethodPost, base, body)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("multibyte_title_within_limit", func(t *testing.T) {
		t.Parallel()

		// 200 characters but 400 bytes; the limit counts characters.
		title := strings.Repeat("é", 200)
		router := newTaskRouter(mocks.NewMockTaskStore(), ownerID)
		w := doJSON(router, http.MethodPost, base, `{"title":"`+title+`"}`)
		require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

		var resp api.TaskResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, title, resp.Title)
	})

	t.Run("multibyte_title_over_limit", func(t *testing.T) {
		t.Parallel()

		title := strings.Repeat("é", domain.MaxTitleLength+1)
		router := newTaskRouter(mocks.NewMockTaskStore(), ownerID)
		w := doJSON(router, http.MethodPost, base, `{"title":"`+title+`"}`)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("invalid_priority", func(t *testing.T) {
		t.Parallel()

		router := newTaskRouter(mocks.NewMockTaskStore(), ownerID)
		w := doJSON(router, http.MethodPost, base, `{"title":"x","priority":"urgent"}`)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("too_many_tags", func(t *testing.T) {
		t.Parallel()

		tags := make([]string, domain.MaxTagCount+1)
		for i := range tags {
			tags[i] = "tag"
		}
		encoded, err := json.Marshal(tags)
		require.NoError(t, err)

		router := newTaskRouter(mocks.NewMockTaskStore(), ownerID)
		w := doJSON(router, http.MethodPost, base, `{"title":"x","tags":`+string(encoded)+`}`)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("malformed_json", func(t *testing.T) {
		t.Parallel()

		router := newTaskRouter(mocks.NewMockTaskStore(), ownerID)
		w := doJSON(router, http.MethodPost, base, `{"title":`)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestTaskHandler_List(t *testing.T) {
	t.Parallel()

	ownerID := uuid.New()
	base := "/" + ownerID.String() + "/tasks"

	t.Run("empty_list_is_array", func(t *testing.T) {
		t.Parallel()

		router := newTaskRouter(mocks.NewMockTaskStore(), ownerID)
		w := doJSON(router, http.MethodGet, base, "")
		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "[]", strings.TrimSpace(w.Body.String()))
	})

	t.Run("insertion_order", func(t *testing.T) {
		t.Parallel()

		taskStore := mocks.NewMockTaskStore()
		first := seedTask(t, taskStore, ownerID, "first")
		second := seedTask(t, taskStore, ownerID, "second")
		third := seedTask(t, taskStore, ownerID, "third")

		router := newTaskRouter(taskStore, ownerID)
		w := doJSON(router, http.MethodGet, base, "")
		require.Equal(t, http.StatusOK, w.Code)

		var resp []api.TaskResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		require.Len(t, resp, 3)
		assert.Equal(t, first.ID, resp[0].ID)
		assert.Equal(t, second.ID, resp[1].ID)
		assert.Equal(t, third.ID, resp[2].ID)
	})

	t.Run("skip_and_limit", func(t *testing.T) {
		t.Parallel()

		taskStore := mocks.NewMockTaskStore()
		seedTask(t, taskStore, ownerID, "first")
		second := seedTask(t, taskStore, ownerID, "second")
		seedTask(t, taskStore, ownerID, "third")

		router := newTaskRouter(taskStore, ownerID)
		w := doJSON(router, http.MethodGet, base+"?skip=1&limit=1", "")
		require.Equal(t, http.StatusOK, w.Code)

		var resp []api.TaskResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		require.Len(t, resp, 1)
		assert.Equal(t, second.ID, resp[0].ID)
	})

	t.Run("non_integer_skip", func(t *testing.T) {
		t.Parallel()

		router := newTaskRouter(mocks.NewMockTaskStore(), ownerID)
		w := doJSON(router, http.MethodGet, base+"?skip=abc", "")
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("foreign_tasks_invisible", func(t *testing.T) {
		t.Parallel()

		taskStore := mocks.NewMockTaskStore()
		seedTask(t, taskStore, uuid.New(), "someone else's task")

		router := newTaskRouter(taskStore, ownerID)
		w := doJSON(router, http.MethodGet, base, "")
		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "[]", strings.TrimSpace(w.Body.String()))
	})
}

func TestTaskHandler_Get(t *testing.T) {
	t.Parallel()

	ownerID := uuid.New()
	base := "/" + ownerID.String() + "/tasks/"

	t.Run("found", func(t *testing.T) {
		t.Parallel()

		taskStore := mocks.NewMockTaskStore()
		task := seedTask(t, taskStore, ownerID, "findable")

		router := newTaskRouter(taskStore, ownerID)
		w := doJSON(router, http.MethodGet, base+task.ID.String(), "")
		require.Equal(t, http.StatusOK, w.Code)

		var resp api.TaskResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, task.ID, resp.ID)
		assert.Equal(t, "findable", resp.Title)
	})

	t.Run("absent_task", func(t *testing.T) {
		t.Parallel()

		router := newTaskRouter(mocks.NewMockTaskStore(), ownerID)
		w := doJSON(router, http.MethodGet, base+uuid.New().String(), "")
		assert.Equal(t, http.StatusNotFound, w.Code)

		var resp shared.ErrorResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, "Task not found", resp.Error)
	})

	// A task that exists but belongs to someone else reports the exact
	// same 404 as one that does not exist at all.
	t.Run("foreign_task_reports_absent", func(t *testing.T) {
		t.Parallel()

		taskStore := mocks.NewMockTaskStore()
		foreign := seedTask(t, taskStore, uuid.New(), "not yours")

		router := newTaskRouter(taskStore, ownerID)
		w := doJSON(router, http.MethodGet, base+foreign.ID.String(), "")
		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("malformed_task_id", func(t *testing.T) {
		t.Parallel()

		router := newTaskRouter(mocks.NewMockTaskStore(), ownerID)
		w := doJSON(router, http.MethodGet, base+"not-a-uuid", "")
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestTaskHandler_Update(t *testing.T) {
	t.Parallel()

	ownerID := uuid.New()
	base := "/" + ownerID.String() + "/tasks/"

	t.Run("partial_update_leaves_other_fields", func(t *testing.T) {
		t.Parallel()

		taskStore := mocks.NewMockTaskStore()
		task := seedTask(t, taskStore, ownerID, "original title")
		task.Description = "original description"
		task.Starred = true
		task.Tags = []string{"keep", "these"}

		router := newTaskRouter(taskStore, ownerID)
		w := doJSON(router, http.MethodPut, base+task.ID.String(), `{"title":"new title"}`)
		require.Equal(t, http.StatusOK, w.Code)

		var resp api.TaskResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, "new title", resp.Title)
		assert.Equal(t, "original description", resp.Description)
		assert.True(t, resp.Starred)
		assert.Equal(t, []string{"keep", "these"}, resp.Tags)
	})

	t.Run("empty_body_returns_task_unchanged", func(t *testing.T) {
		t.Parallel()

		taskStore := mocks.NewMockTaskStore()
		task := seedTask(t, taskStore, ownerID, "untouched")
		before := task.UpdatedAt

		router := newTaskRouter(taskStore, ownerID)
		w := doJSON(router, http.MethodPut, base+task.ID.String(), `{}`)
		require.Equal(t, http.StatusOK, w.Code)

		var resp api.TaskResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, "untouched", resp.Title)
		// A patch with no fields writes nothing, so updated_at holds.
		assert.True(t, resp.UpdatedAt.Equal(before))
	})

	t.Run("tags_replaced_wholesale", func(t *testing.T) {
		t.Parallel()

		taskStore := mocks.NewMockTaskStore()
		task := seedTask(t, taskStore, ownerID, "tagged")
		task.Tags = []string{"old", "tags"}

		router := newTaskRouter(taskStore, ownerID)
		w := doJSON(router, http.MethodPut, base+task.ID.String(), `{"tags":["b","a","c"]}`)
		require.Equal(t, http.StatusOK, w.Code)

		var resp api.TaskResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		// Order is preserved exactly as submitted, no sorting or dedup.
		assert.Equal(t, []string{"b", "a", "c"}, resp.Tags)
	})

	t.Run("clear_tags_with_empty_array", func(t *testing.T) {
		t.Parallel()

		taskStore := mocks.NewMockTaskStore()
		task := seedTask(t, taskStore, ownerID, "tagged")
		task.Tags = []string{"old"}

		router := newTaskRouter(taskStore, ownerID)
		w := doJSON(router, http.MethodPut, base+task.ID.String(), `{"tags":[]}`)
		require.Equal(t, http.StatusOK, w.Code)

		var resp api.TaskResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.NotNil(t, resp.Tags)
		assert.Empty(t, resp.Tags)
	})

	t.Run("absent_task", func(t *testing.T) {
		t.Parallel()

		router := newTaskRouter(mocks.NewMockTaskStore(), ownerID)
		w := doJSON(router, http.MethodPut, base+uuid.New().String(), `{"title":"x"}`)
		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("invalid_priority", func(t *testing.T) {
		t.Parallel()

		taskStore := mocks.NewMockTaskStore()
		task := seedTask(t, taskStore, ownerID, "prioritized")

		router := newTaskRouter(taskStore, ownerID)
		w := doJSON(router, http.MethodPut, base+task.ID.String(), `{"priority":"asap"}`)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("malformed_json", func(t *testing.T) {
		t.Parallel()

		taskStore := mocks.NewMockTaskStore()
		task := seedTask(t, taskStore, ownerID, "target")

		router := newTaskRouter(taskStore, ownerID)
		w := doJSON(router, http.MethodPut, base+task.ID.String(), `{"title"`)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestTaskHandler_Complete(t *testing.T) {
	t.Parallel()

	ownerID := uuid.New()
	base := "/" + ownerID.String() + "/tasks/"

	t.Run("marks_completed", func(t *testing.T) {
		t.Parallel()

		taskStore := mocks.NewMockTaskStore()
		task := seedTask(t, taskStore, ownerID, "finish me")

		router := newTaskRouter(taskStore, ownerID)
		w := doJSON(router, http.MethodPatch, base+task.ID.String()+"/complete", `{"completed":true}`)
		require.Equal(t, http.StatusOK, w.Code)

		var resp api.TaskResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.True(t, resp.Completed)
	})

	t.Run("unmarks_completed", func(t *testing.T) {
		t.Parallel()

		taskStore := mocks.NewMockTaskStore()
		task := seedTask(t, taskStore, ownerID, "reopen me")
		task.Completed = true

		router := newTaskRouter(taskStore, ownerID)
		w := doJSON(router, http.MethodPatch, base+task.ID.String()+"/complete", `{"completed":false}`)
		require.Equal(t, http.StatusOK, w.Code)

		var resp api.TaskResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.False(t, resp.Completed)
	})

	t.Run("missing_completed_field", func(t *testing.T) {
		t.Parallel()

		taskStore := mocks.NewMockTaskStore()
		task := seedTask(t, taskStore, ownerID, "ambiguous")

		router := newTaskRouter(taskStore, ownerID)
		w := doJSON(router, http.MethodPatch, base+task.ID.String()+"/complete", `{}`)
		assert.Equal(t, http.StatusBadRequest, w.Code)

		var resp shared.ErrorResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, "Completed field is required", resp.Error)
	})

	t.Run("absent_task", func(t *testing.T) {
		t.Parallel()

		router := newTaskRouter(mocks.NewMockTaskStore(), ownerID)
		w := doJSON(router, http.MethodPatch, base+uuid.New().String()+"/complete", `{"completed":true}`)
		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}

func TestTaskHandler_Delete(t *testing.T) {
	t.Parallel()

	ownerID := uuid.New()
	base := "/" + ownerID.String() + "/tasks/"

	t.Run("delete_then_repeat_is_not_found", func(t *testing.T) {
		t.Parallel()

		taskStore := mocks.NewMockTaskStore()
		task := seedTask(t, taskStore, ownerID, "doomed")

		router := newTaskRouter(taskStore, ownerID)

		w := doJSON(router, http.MethodDelete, base+task.ID.String(), "")
		assert.Equal(t, http.StatusNoContent, w.Code)
		assert.Empty(t, w.Body.String())

		// The second delete of the same task reports not found.
		w = doJSON(router, http.MethodDelete, base+task.ID.String(), "")
		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("foreign_task_reports_absent", func(t *testing.T) {
		t.Parallel()

		taskStore := mocks.NewMockTaskStore()
		foreign := seedTask(t, taskStore, uuid.New(), "not yours")

		router := newTaskRouter(taskStore, ownerID)
		w := doJSON(router, http.MethodDelete, base+foreign.ID.String(), "")
		assert.Equal(t, http.StatusNotFound, w.Code)

		// The foreign owner's task is untouched.
		assert.Len(t, taskStore.Tasks, 1)
	})
}
