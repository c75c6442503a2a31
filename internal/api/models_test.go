package api

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/taskdeck/taskdeck-api/internal/domain"
)

func TestParseDueDate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input string
		want  *time.Time
	}{
		{
			name:  "rfc3339",
			input: "2026-09-01T10:30:00Z",
			want:  timePtr(time.Date(2026, time.September, 1, 10, 30, 0, 0, time.UTC)),
		},
		{
			name:  "rfc3339_with_offset",
			input: "2026-09-01T12:30:00+02:00",
			want:  timePtr(time.Date(2026, time.September, 1, 10, 30, 0, 0, time.UTC)),
		},
		{
			name:  "naive_datetime",
			input: "2026-09-01T10:30:00",
			want:  timePtr(time.Date(2026, time.September, 1, 10, 30, 0, 0, time.UTC)),
		},
		{
			name:  "date_only",
			input: "2026-09-01",
			want:  timePtr(time.Date(2026, time.September, 1, 0, 0, 0, 0, time.UTC)),
		},
		{name: "garbage", input: "next tuesday", want: nil},
		{name: "empty", input: "", want: nil},
		{name: "wrong_order", input: "01-09-2026", want: nil},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			got := parseDueDate(tc.input)
			if tc.want == nil {
				assert.Nil(t, got)
				return
			}
			require.NotNil(t, got)
			assert.True(t, tc.want.Equal(*got), "want %v, got %v", tc.want, got)
		})
	}
}

func timePtr(t time.Time) *time.Time { return &t }

func TestUpdateTaskRequest_ToPatch(t *testing.T) {
	t.Parallel()

	t.Run("empty_request_is_empty_patch", func(t *testing.T) {
		t.Parallel()
		req := UpdateTaskRequest{}
		assert.True(t, req.toPatch().Empty())
	})

	t.Run("set_fields_carry_over", func(t *testing.T) {
		t.Parallel()

		title := "new title"
		priority := "high"
		tags := []string{"a", "b"}
		due := "2026-09-01"

		req := UpdateTaskRequest{
			Title:    &title,
			Priority: &priority,
			Tags:     &tags,
			DueDate:  &due,
		}
		patch := req.toPatch()

		require.NotNil(t, patch.Title)
		assert.Equal(t, "new title", *patch.Title)
		require.NotNil(t, patch.Priority)
		assert.Equal(t, domain.PriorityHigh, *patch.Priority)
		require.NotNil(t, patch.Tags)
		assert.Equal(t, []string{"a", "b"}, *patch.Tags)
		require.NotNil(t, patch.DueDate)
		assert.Nil(t, patch.Description)
		assert.Nil(t, patch.Completed)
		assert.Nil(t, patch.Starred)
	})

	t.Run("unparsable_due_date_skips_field", func(t *testing.T) {
		t.Parallel()

		due := "whenever"
		req := UpdateTaskRequest{DueDate: &due}
		patch := req.toPatch()
		assert.Nil(t, patch.DueDate)
	})
}

func TestTaskToResponse_TagsNeverNil(t *testing.T) {
	t.Parallel()

	task, err := domain.NewTask(uuid.New(), "tagless")
	require.NoError(t, err)
	task.Tags = nil

	resp := taskToResponse(task)
	assert.NotNil(t, resp.Tags)
	assert.Empty(t, resp.Tags)
}
