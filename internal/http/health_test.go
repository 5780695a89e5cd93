package http

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHealth(t *testing.T) {
	api, cleanup := setupTestAPI(t)
	defer cleanup()

	w := api.request(t, "GET", "/health", nil)

	assert.Equal(t, http.StatusOK, w.Code)
	payload := decodeResponse(t, w)
	assert.Equal(t, "healthy", payload["status"])
	assert.Equal(t, "test", payload["version"])

	checks, ok := payload["checks"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "ok", checks["database"])
}

func TestPing(t *testing.T) {
	api, cleanup := setupTestAPI(t)
	defer cleanup()

	w := api.request(t, "GET", "/ping", nil)

	assert.Equal(t, http.StatusOK, w.Code)
	payload := decodeResponse(t, w)
	assert.Equal(t, "pong", payload["message"])
}

func TestAuditEvents(t *testing.T) {
	api, cleanup := setupTestAPI(t)
	defer cleanup()

	api.request(t, "POST", "/add-member", map[string]string{
		"name":  "Jane Doe",
		"email": "jane@example.com",
		"phone": "555-0101",
	})

	w := api.request(t, "GET", "/audit-events?limit=10", nil)

	assert.Equal(t, http.StatusOK, w.Code)
	payload := decodeResponse(t, w)
	assert.Equal(t, 1.0, payload["total"])
	events, ok := payload["events"].([]any)
	require.True(t, ok)
	require.Len(t, events, 1)
	first, ok := events[0].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "membership", first["event_type"])
}
