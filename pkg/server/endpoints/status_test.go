package endpoints

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHandleStatus(t *testing.T) {
	s, err := NewTestServer(TestStores{})
	require.NoError(t, err)
	RegisterStatusEndpoints(s)

	req := httptest.NewRequest("GET", "/", nil)
	w := httptest.NewRecorder()

	s.Router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Header().Get("Content-Type"), "application/json")

	var resp StatusResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "SMS Categorization API is running!", resp.Message)
	assert.Equal(t, "healthy", resp.Status)
	assert.True(t, resp.ModelLoaded)
	assert.Equal(t, []string{"Essentials", "Emergency", "Impulse"}, resp.Categories)
	assert.NotEmpty(t, resp.Time)
}

func TestHandleHealth(t *testing.T) {
	t.Run("healthy", func(t *testing.T) {
		healthStore := NewMockHealthStore()
		healthStore.On("CheckConnectivity").Return(nil)

		s, err := NewTestServer(TestStores{Health: healthStore})
		require.NoError(t, err)
		RegisterStatusEndpoints(s)

		req := httptest.NewRequest("GET", "/health", nil)
		w := httptest.NewRecorder()

		s.Router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)

		var resp HealthResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, "ok", resp.Status)
		assert.Equal(t, "ok", resp.Database)
		assert.True(t, resp.ModelLoaded)
	})

	t.Run("database unreachable", func(t *testing.T) {
		healthStore := NewMockHealthStore()
		healthStore.On("CheckConnectivity").Return(errors.New("connection refused"))

		s, err := NewTestServer(TestStores{Health: healthStore})
		require.NoError(t, err)
		RegisterStatusEndpoints(s)

		req := httptest.NewRequest("GET", "/health", nil)
		w := httptest.NewRecorder()

		s.Router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusServiceUnavailable, w.Code)

		var resp HealthResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, "error", resp.Status)
		assert.Equal(t, "unreachable", resp.Database)
	})
}
