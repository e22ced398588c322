package endpoints

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"smscat/pkg/model"
	"smscat/pkg/server/store"
)

func TestHandleAuthenticate(t *testing.T) {
	clientID := "budget-app"
	apiKey := "super-secret-api-key"

	newClient := func() *store.Client {
		return &store.Client{
			ClientID:     clientID,
			APIKeyDigest: model.DigestAPIKey(apiKey),
		}
	}

	t.Run("issues a token for valid credentials", func(t *testing.T) {
		clients := NewMockClientsStore()
		clients.On("FetchClient", clientID).Return(newClient(), nil)

		s, err := NewTestServer(TestStores{Clients: clients})
		require.NoError(t, err)
		RegisterAuthenticateEndpoint(s)

		body := `{"client_id": "budget-app", "api_key": "super-secret-api-key"}`
		req := httptest.NewRequest("POST", "/authenticate", strings.NewReader(body))
		w := httptest.NewRecorder()

		s.Router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)

		var resp AuthenticateResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		require.NotEmpty(t, resp.Token)

		// The issued token must pass verification
		id, err := s.TokenAuthenticator.Verify(resp.Token)
		require.NoError(t, err)
		assert.Equal(t, clientID, id.ClientID)
	})

	t.Run("rejects a bad API key", func(t *testing.T) {
		clients := NewMockClientsStore()
		clients.On("FetchClient", clientID).Return(newClient(), nil)

		s, err := NewTestServer(TestStores{Clients: clients})
		require.NoError(t, err)
		RegisterAuthenticateEndpoint(s)

		body := `{"client_id": "budget-app", "api_key": "wrong-key"}`
		req := httptest.NewRequest("POST", "/authenticate", strings.NewReader(body))
		w := httptest.NewRecorder()

		s.Router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.NotContains(t, w.Body.String(), "token")
	})

	t.Run("rejects an unknown client", func(t *testing.T) {
		clients := NewMockClientsStore()
		clients.On("FetchClient", "nobody").Return(nil, store.ErrClientNotFound)

		s, err := NewTestServer(TestStores{Clients: clients})
		require.NoError(t, err)
		RegisterAuthenticateEndpoint(s)

		body := `{"client_id": "nobody", "api_key": "whatever"}`
		req := httptest.NewRequest("POST", "/authenticate", strings.NewReader(body))
		w := httptest.NewRecorder()

		s.Router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("requires both fields", func(t *testing.T) {
		s, err := NewTestServer(TestStores{Clients: NewMockClientsStore()})
		require.NoError(t, err)
		RegisterAuthenticateEndpoint(s)

		req := httptest.NewRequest("POST", "/authenticate", strings.NewReader(`{"client_id": "budget-app"}`))
		w := httptest.NewRecorder()

		s.Router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}
