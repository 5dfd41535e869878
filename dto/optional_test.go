package dto

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOptionalDistinguishesAbsentNullAndValue(t *testing.T) {
	var req UpdateTaskRequest
	require.NoError(t, json.Unmarshal([]byte(`{"title":"Ship it","description":null,"tags":[]}`), &req))

	assert.True(t, req.Title.Present())
	assert.Equal(t, "Ship it", req.Title.Value)

	assert.True(t, req.Description.Set)
	assert.True(t, req.Description.Null)
	assert.False(t, req.Description.Present())

	assert.False(t, req.Status.Set)
	assert.False(t, req.DueDate.Set)

	assert.True(t, req.Tags.Present())
	assert.Empty(t, req.Tags.Value)
}

func TestOptionalRejectsWrongType(t *testing.T) {
	var req UpdateTaskRequest
	assert.Error(t, json.Unmarshal([]byte(`{"timeSpent":"lots"}`), &req))
}

func TestOptionalMarshal(t *testing.T) {
	out, err := json.Marshal(struct {
		A Optional[int]    `json:"a"`
		B Optional[string] `json:"b"`
		C Optional[string] `json:"c"`
	}{A: Some(3), B: Null[string]()})
	require.NoError(t, err)
	assert.JSONEq(t, `{"a":3,"b":null,"c":null}`, string(out))
}

func TestDateAcceptsBothFormats(t *testing.T) {
	var req UpdateProjectRequest
	require.NoError(t, json.Unmarshal([]byte(`{"startDate":"2024-05-01","endDate":"2024-06-01T12:00:00Z"}`), &req))

	assert.Equal(t, time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC), req.StartDate.Value.Time)
	assert.Equal(t, time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC), req.EndDate.Value.Time)

	assert.Error(t, json.Unmarshal([]byte(`{"startDate":"soon"}`), &req))
}

func TestEmptyDateMeansNoDate(t *testing.T) {
	var create CreateTaskRequest
	require.NoError(t, json.Unmarshal([]byte(`{"projectId":"p","title":"t","dueDate":""}`), &create))
	require.NotNil(t, create.DueDate)
	assert.Nil(t, create.DueDate.TimePtr())

	var update UpdateTaskRequest
	require.NoError(t, json.Unmarshal([]byte(`{"dueDate":""}`), &update))
	assert.True(t, update.DueDate.Set)
	assert.True(t, update.DueDate.Null)

	var project UpdateProjectRequest
	require.NoError(t, json.Unmarshal([]byte(`{"startDate":"  ","endDate":"2024-06-01"}`), &project))
	assert.True(t, project.StartDate.Null)
	assert.True(t, project.EndDate.Present())
}

func TestUpdateUserRequestAdminFields(t *testing.T) {
	var self UpdateUserRequest
	require.NoError(t, json.Unmarshal([]byte(`{"name":"Bob","color":"#fff","avatar":null}`), &self))
	assert.False(t, self.TouchesAdminFields())

	var admin UpdateUserRequest
	require.NoError(t, json.Unmarshal([]byte(`{"allowedPages":["tasks","tasks","bugs"]}`), &admin))
	assert.True(t, admin.TouchesAdminFields())
	assert.Equal(t, []string{"tasks", "bugs"}, admin.NormalizedPages())
}
