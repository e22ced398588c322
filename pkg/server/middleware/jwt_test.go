package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"smscat/pkg/identity"
)

func testKey() []byte {
	key := make([]byte, 32)
	for i := range key {
		key[i] = byte(i)
	}
	return key
}

func TestIssueAndVerify(t *testing.T) {
	auth := NewTokenAuthenticator(testKey(), time.Hour)

	token, err := auth.Issue("flutter-app")
	require.NoError(t, err)

	id, err := auth.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, "flutter-app", id.ClientID)
	assert.WithinDuration(t, time.Now().Add(time.Hour), id.ExpiresAt, 5*time.Second)
}

func TestVerifyExpired(t *testing.T) {
	auth := NewTokenAuthenticator(testKey(), -time.Minute)

	token, err := auth.Issue("flutter-app")
	require.NoError(t, err)

	_, err = auth.Verify(token)
	assert.Error(t, err)
}

func TestVerifyWrongKey(t *testing.T) {
	auth := NewTokenAuthenticator(testKey(), time.Hour)
	token, err := auth.Issue("flutter-app")
	require.NoError(t, err)

	other := NewTokenAuthenticator([]byte("0123456789abcdef0123456789abcdef"), time.Hour)
	_, err = other.Verify(token)
	assert.Error(t, err)
}

func TestMiddleware(t *testing.T) {
	auth := NewTokenAuthenticator(testKey(), time.Hour)

	var gotClient string
	handler := auth.Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id, ok := identity.Get(r.Context())
		require.True(t, ok)
		gotClient = id.ClientID
		w.WriteHeader(http.StatusOK)
	}))

	t.Run("valid token", func(t *testing.T) {
		token, err := auth.Issue("flutter-app")
		require.NoError(t, err)

		req := httptest.NewRequest("GET", "/messages", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		w := httptest.NewRecorder()
		handler.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "flutter-app", gotClient)
	})

	t.Run("missing header", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/messages", nil)
		w := httptest.NewRecorder()
		handler.ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("malformed header", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/messages", nil)
		req.Header.Set("Authorization", "Token abc")
		w := httptest.NewRecorder()
		handler.ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("garbage token", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/messages", nil)
		req.Header.Set("Authorization", "Bearer not.a.token")
		w := httptest.NewRecorder()
		handler.ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})
}

func TestKeyFromEnv(t *testing.T) {
	t.Run("empty", func(t *testing.T) {
		t.Setenv("SMSCAT_TOKEN_KEY", "")
		_, err := KeyFromEnv()
		assert.Error(t, err)
	})

	t.Run("not base64", func(t *testing.T) {
		t.Setenv("SMSCAT_TOKEN_KEY", "!!!")
		_, err := KeyFromEnv()
		assert.Error(t, err)
	})

	t.Run("too short", func(t *testing.T) {
		t.Setenv("SMSCAT_TOKEN_KEY", "c2hvcnQ=")
		_, err := KeyFromEnv()
		assert.Error(t, err)
	})

	t.Run("valid", func(t *testing.T) {
		t.Setenv("SMSCAT_TOKEN_KEY", "AAECAwQFBgcICQoLDA0ODxAREhMUFRYXGBkaGxwdHh8=")
		key, err := KeyFromEnv()
		require.NoError(t, err)
		assert.Len(t, key, 32)
	})
}
