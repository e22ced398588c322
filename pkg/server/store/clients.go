package store

import (
	"errors"
	"time"
)

// ErrClientNotFound is returned when a client doesn't exist
var ErrClientNotFound = errors.New("client not found")

// Client is an API client record
type Client struct {
	ClientID     string
	APIKeyDigest string
	CreatedAt    time.Time
}

// ClientsStore abstracts API client operations
type ClientsStore interface {
	// CreateClient creates a client with the given API key digest.
	CreateClient(clientID, apiKeyDigest string) error

	// DeleteClient removes a client.
	// Returns ErrClientNotFound if the client doesn't exist.
	DeleteClient(clientID string) error

	// FetchClient retrieves a client by ID.
	// Returns ErrClientNotFound if the client doesn't exist.
	FetchClient(clientID string) (*Client, error)
}
