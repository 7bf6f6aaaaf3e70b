package handler

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aidar/taskhive/internal/domain"
)

func decodeUpdate(t *testing.T, raw string) UpdateTaskRequest {
	t.Helper()
	var req UpdateTaskRequest
	require.NoError(t, json.Unmarshal([]byte(raw), &req))
	return req
}

func TestUpdateTaskRequest_Patch(t *testing.T) {
	patch, err := decodeUpdate(t, `{"status":"done"}`).patch()
	require.NoError(t, err)
	assert.True(t, patch.Status.Present())
	assert.False(t, patch.Title.Set)
	assert.False(t, patch.AssignedTo.Set)
	assert.False(t, patch.DueDate.Set)

	patch, err = decodeUpdate(t, `{"assigned_to":null,"due_date":""}`).patch()
	require.NoError(t, err)
	assert.True(t, patch.AssignedTo.Cleared())
	assert.True(t, patch.DueDate.Cleared())

	patch, err = decodeUpdate(t, `{"title":"  New title ","due_date":"2030-01-02"}`).patch()
	require.NoError(t, err)
	assert.Equal(t, "New title", patch.Title.Value)
	assert.Equal(t, time.Date(2030, 1, 2, 0, 0, 0, 0, time.UTC), patch.DueDate.Value)
}

func TestUpdateTaskRequest_PatchRejects(t *testing.T) {
	for _, raw := range []string{
		`{"title":null}`,
		`{"title":"x"}`,
		`{"status":null}`,
		`{"status":"blocked"}`,
		`{"priority":"urgent"}`,
		`{"due_date":"tomorrow"}`,
	} {
		t.Run(raw, func(t *testing.T) {
			_, err := decodeUpdate(t, raw).patch()
			assert.ErrorIs(t, err, domain.ErrValidation)
		})
	}
}

func TestCreateTaskRequest_Input(t *testing.T) {
	req := CreateTaskRequest{Title: "Fix bug", ProjectID: "p1", AssignedTo: " u1 ", DueDate: "2030-01-02T10:00:00Z"}

	input, err := req.input()
	require.NoError(t, err)
	assert.Equal(t, "u1", input.AssignedTo)
	require.NotNil(t, input.DueDate)
	assert.Equal(t, 10, input.DueDate.Hour())

	_, err = CreateTaskRequest{Title: " a ", ProjectID: "p1"}.input()
	assert.ErrorIs(t, err, domain.ErrValidation)
}
