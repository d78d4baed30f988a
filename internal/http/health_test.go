package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHealthController_Status(t *testing.T) {
	t.Run("returns healthy when database is connected", func(t *testing.T) {
		app := setupApp(t)

		w := app.get(t, "/health")
		assert.Equal(t, http.StatusOK, w.Code)

		var response HealthResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
		assert.Equal(t, "healthy", response.Status)
		assert.Equal(t, "test", response.Version)
		assert.Equal(t, "ok", response.Checks["database"])
		assert.Equal(t, "ok", response.Checks["tasks"])
		assert.Equal(t, "2030-01-01T03:00:00Z", response.NextExport)
		assert.NotEmpty(t, response.Time)
	})

	t.Run("reports missing database", func(t *testing.T) {
		router := gin.New()
		router.GET("/health", NewHealthController(nil, nil, "").Status)

		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))

		var response HealthResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
		assert.Equal(t, "not configured", response.Checks["database"])
	})

	t.Run("returns unhealthy when the task queue fails", func(t *testing.T) {
		app := setupApp(t)
		app.tasks.pingErr = errors.New("disk I/O error")

		w := app.get(t, "/health")
		assert.Equal(t, http.StatusServiceUnavailable, w.Code)
		assert.Contains(t, w.Body.String(), "error: disk I/O error")
	})

	t.Run("returns unhealthy when database is closed", func(t *testing.T) {
		app := setupApp(t)
		require.NoError(t, app.db.Close())

		w := app.get(t, "/health")
		assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	})
}

func TestPing(t *testing.T) {
	app := setupApp(t)

	w := app.get(t, "/ping")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"message":"pong"}`, w.Body.String())
}
