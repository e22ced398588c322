// Package middleware provides HTTP middleware for the smscat server.
package middleware

import (
	"encoding/base64"
	"fmt"
	"net"
	"net/http"
	"os"
	"regexp"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"smscat/pkg/identity"
)

var bearerRegex = regexp.MustCompile(`^Bearer\s+(\S+)$`)

// TokenAuthenticator issues and validates HS256 service tokens.
type TokenAuthenticator struct {
	key []byte
	ttl time.Duration
}

// NewTokenAuthenticator creates a token authenticator with the given HMAC key
// and token lifetime.
func NewTokenAuthenticator(key []byte, ttl time.Duration) *TokenAuthenticator {
	return &TokenAuthenticator{key: key, ttl: ttl}
}

// KeyFromEnv reads the base64 HMAC key from SMSCAT_TOKEN_KEY.
func KeyFromEnv() ([]byte, error) {
	keyB64, ok := os.LookupEnv("SMSCAT_TOKEN_KEY")
	if !ok {
		return nil, fmt.Errorf("SMSCAT_TOKEN_KEY environment variable is required")
	}
	key, err := base64.StdEncoding.DecodeString(keyB64)
	if err != nil {
		return nil, fmt.Errorf("invalid SMSCAT_TOKEN_KEY: %w", err)
	}
	if len(key) < 32 {
		return nil, fmt.Errorf("SMSCAT_TOKEN_KEY must decode to at least 32 bytes")
	}
	return key, nil
}

// Issue creates a signed token for a client.
func (t *TokenAuthenticator) Issue(clientID string) (string, error) {
	now := time.Now()
	claims := jwt.RegisteredClaims{
		Subject:   clientID,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(t.ttl)),
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(t.key)
}

// Verify parses and validates a token, returning the client identity.
func (t *TokenAuthenticator) Verify(tokenStr string) (*identity.Identity, error) {
	token, err := jwt.ParseWithClaims(tokenStr, &jwt.RegisteredClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return t.key, nil
	})
	if err != nil {
		return nil, err
	}

	claims, ok := token.Claims.(*jwt.RegisteredClaims)
	if !ok || claims.Subject == "" {
		return nil, fmt.Errorf("token has no subject")
	}

	id := &identity.Identity{ClientID: claims.Subject}
	if claims.IssuedAt != nil {
		id.IssuedAt = claims.IssuedAt.Time
	}
	if claims.ExpiresAt != nil {
		id.ExpiresAt = claims.ExpiresAt.Time
	}
	return id, nil
}

// Middleware returns an HTTP middleware that validates bearer tokens and
// stores the client identity in the request context.
func (t *TokenAuthenticator) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		authHeader := r.Header.Get("Authorization")

		if len(authHeader) == 0 {
			w.WriteHeader(http.StatusUnauthorized)
			w.Write([]byte("Authorization missing"))
			return
		}

		tokenMatches := bearerRegex.FindStringSubmatch(authHeader)
		if len(tokenMatches) != 2 {
			w.WriteHeader(http.StatusUnauthorized)
			w.Write([]byte("Malformed authorization header"))
			return
		}

		id, err := t.Verify(tokenMatches[1])
		if err != nil {
			w.WriteHeader(http.StatusUnauthorized)
			w.Write([]byte("Invalid or expired token"))
			return
		}

		if host, _, err := net.SplitHostPort(r.RemoteAddr); err == nil {
			id.WithRemoteIP(net.ParseIP(host))
		}

		next.ServeHTTP(w, r.WithContext(identity.Set(r.Context(), id)))
	})
}
