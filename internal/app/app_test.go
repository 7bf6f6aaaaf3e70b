package app

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aidar/taskhive/internal/config"
)

type client struct {
	t      *testing.T
	server *httptest.Server
}

func newClient(t *testing.T) *client {
	t.Helper()

	cfg := &config.Config{
		Server:  config.ServerConfig{Host: "127.0.0.1", Port: "0"},
		Storage: config.StorageConfig{Driver: config.StorageDriverMemory},
		JWT:     config.JWTConfig{Secret: "test-secret", ExpirationHours: 1},
		Auth:    config.AuthConfig{BcryptCost: 4},
	}

	application, err := New(cfg)
	require.NoError(t, err)
	require.NoError(t, application.Initialize(context.Background()))

	server := httptest.NewServer(application.Handler())
	t.Cleanup(server.Close)

	return &client{t: t, server: server}
}

// do sends a JSON request and decodes the JSON response into a generic map.
func (c *client) do(method, path, token string, body interface{}) (int, map[string]interface{}) {
	c.t.Helper()

	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(c.t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	req, err := http.NewRequest(method, c.server.URL+path, reader)
	require.NoError(c.t, err)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.server.Client().Do(req)
	require.NoError(c.t, err)
	defer resp.Body.Close()

	out := map[string]interface{}{}
	if resp.StatusCode != http.StatusNoContent {
		var decoded interface{}
		require.NoError(c.t, json.NewDecoder(resp.Body).Decode(&decoded))
		switch v := decoded.(type) {
		case map[string]interface{}:
			out = v
		default:
			out["items"] = v
		}
	}
	return resp.StatusCode, out
}

type account struct {
	id, email, token string
}

func (c *client) register(name string) account {
	c.t.Helper()
	email := name + "@example.com"

	status, body := c.do(http.MethodPost, "/api/auth/register", "", map[string]string{
		"name": name, "email": email, "password": "password123",
	})
	require.Equal(c.t, http.StatusCreated, status, body)

	user := body["user"].(map[string]interface{})
	return account{id: user["user_id"].(string), email: email, token: body["token"].(string)}
}

func errorCode(body map[string]interface{}) string {
	detail, ok := body["error"].(map[string]interface{})
	if !ok {
		return ""
	}
	code, _ := detail["code"].(string)
	return code
}

func TestHealthAndMetrics(t *testing.T) {
	c := newClient(t)

	status, body := c.do(http.MethodGet, "/health", "", nil)
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, "ok", body["status"])

	resp, err := c.server.Client().Get(c.server.URL + "/metrics")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestAuthFlow(t *testing.T) {
	c := newClient(t)
	alice := c.register("alice")

	status, body := c.do(http.MethodPost, "/api/auth/register", "", map[string]string{
		"name": "again", "email": alice.email, "password": "password123",
	})
	assert.Equal(t, http.StatusConflict, status)
	assert.Equal(t, "EMAIL_TAKEN", errorCode(body))

	status, body = c.do(http.MethodPost, "/api/auth/register", "", map[string]string{
		"name": "x", "email": "not-an-email", "password": "123",
	})
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "VALIDATION_FAILED", errorCode(body))

	status, body = c.do(http.MethodPost, "/api/auth/login", "", map[string]string{
		"email": alice.email, "password": "wrong-password",
	})
	assert.Equal(t, http.StatusUnauthorized, status)
	assert.Equal(t, "UNAUTHORIZED", errorCode(body))

	status, body = c.do(http.MethodPost, "/api/auth/login", "", map[string]string{
		"email": alice.email, "password": "password123",
	})
	require.Equal(t, http.StatusOK, status)
	token := body["token"].(string)

	status, body = c.do(http.MethodGet, "/api/auth/me", token, nil)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, alice.id, body["user_id"])
	assert.NotContains(t, body, "password_hash")

	status, _ = c.do(http.MethodGet, "/api/auth/me", "", nil)
	assert.Equal(t, http.StatusUnauthorized, status)
}

func TestBoardWorkflow(t *testing.T) {
	c := newClient(t)
	alice := c.register("alice")
	bob := c.register("bob")
	carol := c.register("carol")

	// alice creates Eng and becomes its creator
	status, body := c.do(http.MethodPost, "/api/teams", alice.token, map[string]string{"team_name": "Eng"})
	require.Equal(t, http.StatusCreated, status, body)
	teamID := body["team"].(map[string]interface{})["team_id"].(string)

	status, body = c.do(http.MethodPost, "/api/teams/"+teamID+"/invite", alice.token, map[string]string{"email": bob.email})
	require.Equal(t, http.StatusOK, status, body)
	assert.Len(t, body["team"].(map[string]interface{})["members"], 2)

	status, body = c.do(http.MethodPost, "/api/teams/"+teamID+"/invite", alice.token, map[string]string{"email": bob.email})
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "ALREADY_MEMBER", errorCode(body))

	status, body = c.do(http.MethodPost, "/api/projects", alice.token, map[string]string{"title": "Site", "team_id": teamID})
	require.Equal(t, http.StatusCreated, status, body)
	projectID := body["project"].(map[string]interface{})["project_id"].(string)
	assert.Equal(t, "Eng", body["project"].(map[string]interface{})["team_name"])

	status, body = c.do(http.MethodPost, "/api/tasks", bob.token, map[string]string{"title": "Fix bug", "project_id": projectID})
	require.Equal(t, http.StatusCreated, status, body)
	task := body["task"].(map[string]interface{})
	taskID := task["task_id"].(string)
	assert.Equal(t, "todo", task["status"])
	assert.Equal(t, "medium", task["priority"])
	assert.Nil(t, task["assigned_to"])

	status, body = c.do(http.MethodPut, "/api/tasks/"+taskID, alice.token, map[string]interface{}{"assigned_to": bob.id})
	require.Equal(t, http.StatusOK, status, body)
	task = body["task"].(map[string]interface{})
	assert.Equal(t, bob.id, task["assigned_to"])
	assert.Equal(t, "bob", task["assignee"].(map[string]interface{})["name"])
	assert.Equal(t, bob.email, task["creator"].(map[string]interface{})["email"])

	status, body = c.do(http.MethodPut, "/api/tasks/"+taskID, alice.token, map[string]interface{}{"assigned_to": carol.id})
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "INVALID_ASSIGNMENT", errorCode(body))

	// Partial updates: omitted fields stay, null clears
	status, body = c.do(http.MethodPut, "/api/tasks/"+taskID, bob.token, map[string]interface{}{"status": "done"})
	require.Equal(t, http.StatusOK, status, body)
	task = body["task"].(map[string]interface{})
	assert.Equal(t, "done", task["status"])
	assert.Equal(t, "Fix bug", task["title"])
	assert.Equal(t, "medium", task["priority"])
	assert.Equal(t, bob.id, task["assigned_to"])

	status, body = c.do(http.MethodPut, "/api/tasks/"+taskID, bob.token, map[string]interface{}{"assigned_to": nil})
	require.Equal(t, http.StatusOK, status, body)
	assert.Nil(t, body["task"].(map[string]interface{})["assigned_to"])

	status, body = c.do(http.MethodPut, "/api/tasks/"+taskID, bob.token, map[string]interface{}{"title": nil})
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "VALIDATION_FAILED", errorCode(body))

	// carol is outside the team
	status, body = c.do(http.MethodGet, "/api/tasks/"+taskID, carol.token, nil)
	assert.Equal(t, http.StatusForbidden, status)
	assert.Equal(t, "FORBIDDEN", errorCode(body))

	status, _ = c.do(http.MethodGet, "/api/tasks/missing", carol.token, nil)
	assert.Equal(t, http.StatusNotFound, status)

	status, body = c.do(http.MethodGet, "/api/projects/"+projectID+"/stats", bob.token, nil)
	require.Equal(t, http.StatusOK, status, body)
	assert.EqualValues(t, 1, body["total_tasks"])

	status, body = c.do(http.MethodGet, "/api/projects/"+projectID+"/members", bob.token, nil)
	require.Equal(t, http.StatusOK, status, body)
	assert.Len(t, body["items"], 2)

	status, body = c.do(http.MethodGet, "/api/tasks/project/"+projectID, alice.token, nil)
	require.Equal(t, http.StatusOK, status, body)
	assert.Len(t, body["items"], 1)

	// Creator cannot be removed; members can only be removed by the creator
	status, body = c.do(http.MethodDelete, "/api/teams/"+teamID+"/members/"+alice.id, alice.token, nil)
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "CANNOT_REMOVE_CREATOR", errorCode(body))

	status, _ = c.do(http.MethodDelete, "/api/teams/"+teamID+"/members/"+alice.id, bob.token, nil)
	assert.Equal(t, http.StatusForbidden, status)

	// The team creator may delete bob's task
	status, _ = c.do(http.MethodDelete, "/api/tasks/"+taskID, alice.token, nil)
	assert.Equal(t, http.StatusNoContent, status)

	status, _ = c.do(http.MethodDelete, "/api/projects/"+projectID, bob.token, nil)
	assert.Equal(t, http.StatusForbidden, status)

	status, _ = c.do(http.MethodDelete, "/api/projects/"+projectID, alice.token, nil)
	assert.Equal(t, http.StatusNoContent, status)

	status, body = c.do(http.MethodGet, "/api/projects", bob.token, nil)
	require.Equal(t, http.StatusOK, status)
	assert.Empty(t, body["items"])
}

func TestValidation(t *testing.T) {
	c := newClient(t)
	alice := c.register("alice")

	status, body := c.do(http.MethodPost, "/api/teams", alice.token, map[string]string{"team_name": " a "})
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "VALIDATION_FAILED", errorCode(body))

	status, body = c.do(http.MethodPost, "/api/projects", alice.token, map[string]string{"title": "Site", "team_id": "not-a-uuid"})
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "VALIDATION_FAILED", errorCode(body))

	status, body = c.do(http.MethodPost, "/api/projects", alice.token, map[string]string{
		"title": "Site", "team_id": "7a1c2a4e-8d3b-4f5e-9a6b-0c1d2e3f4a5b",
	})
	assert.Equal(t, http.StatusNotFound, status)
	assert.Equal(t, "NOT_FOUND", errorCode(body))
}
