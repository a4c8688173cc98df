//go:build integration
// +build integration

package app

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gokatarajesh/trivia-api/internal/config"
)

// newTestApp boots the whole application against the database described by
// the PG_* variables and serves it from an httptest server.
func newTestApp(t *testing.T) string {
	t.Helper()
	if os.Getenv("PG_HOST") == "" {
		t.Skip("PG_HOST not set")
	}
	t.Setenv("MIGRATE_ON_START", "true")
	t.Setenv("REDIS_ENABLED", "false")

	cfg, err := config.Load(context.Background())
	require.NoError(t, err)

	a, err := New(context.Background(), cfg)
	require.NoError(t, err)
	t.Cleanup(a.close)

	srv := httptest.NewServer(a.http.Handler)
	t.Cleanup(srv.Close)
	return srv.URL
}

func call(t *testing.T, method, url, body string) (int, map[string]interface{}) {
	t.Helper()
	req, err := http.NewRequest(method, url, strings.NewReader(body))
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	var out map[string]interface{}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	return resp.StatusCode, out
}

func TestTriviaFlow(t *testing.T) {
	baseURL := newTestApp(t)

	code, body := call(t, http.MethodGet, baseURL+"/categories", "")
	require.Equal(t, http.StatusOK, code)
	assert.Len(t, body["categories"], 6)

	code, body = call(t, http.MethodGet, baseURL+"/questions", "")
	require.Equal(t, http.StatusOK, code)
	before := body["total_questions"].(float64)

	code, body = call(t, http.MethodPost, baseURL+"/questions",
		`{"question":"Color of apples?","answer":"red","difficulty":1,"category":"1"}`)
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, before+1, body["total_questions"])
	created := int64(body["created"].(float64))

	code, body = call(t, http.MethodPost, baseURL+"/questions", `{"searchTerm":"color of APPLES"}`)
	require.Equal(t, http.StatusOK, code)
	assert.NotEmpty(t, body["questions"])

	code, body = call(t, http.MethodPost, baseURL+"/quizzes",
		`{"previous_questions":[],"quiz_category":{"type":"Science","id":"1"}}`)
	require.Equal(t, http.StatusOK, code)
	assert.NotNil(t, body["question"])

	code, body = call(t, http.MethodDelete, fmt.Sprintf("%s/questions/%d", baseURL, created), "")
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, before, body["total_questions"])

	code, body = call(t, http.MethodDelete, fmt.Sprintf("%s/questions/%d", baseURL, created), "")
	assert.Equal(t, http.StatusUnprocessableEntity, code)
	assert.Equal(t, "unprocessable", body["message"])

	code, body = call(t, http.MethodGet, baseURL+"/questions?page=4551", "")
	assert.Equal(t, http.StatusNotFound, code)
	assert.Equal(t, "resource not found", body["message"])

	code, _ = call(t, http.MethodGet, baseURL+"/healthz", "")
	assert.Equal(t, http.StatusOK, code)
}
