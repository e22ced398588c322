package store

import (
	"errors"
	"time"
)

// ErrMessageNotFound is returned when a message doesn't exist
var ErrMessageNotFound = errors.New("message not found")

// Message is a categorized SMS message record
type Message struct {
	ID         int64
	Body       string
	Category   string
	Confidence float64
	Amount     float64
	Merchant   string
	ClientID   *string
	CreatedAt  time.Time
}

// MessageFilter narrows message listings
type MessageFilter struct {
	// Category restricts results to a single category ("" matches all)
	Category string
	// Limit caps the number of results (0 means the store default)
	Limit int
}

// MessagesStore abstracts categorized message storage operations
type MessagesStore interface {
	// SaveMessage persists a categorized message and fills in its ID.
	SaveMessage(msg *Message) error

	// ListMessages returns messages matching the filter, newest first.
	ListMessages(filter MessageFilter) ([]Message, error)

	// GetMessage retrieves a message by ID.
	// Returns ErrMessageNotFound if the message doesn't exist.
	GetMessage(id int64) (*Message, error)
}
