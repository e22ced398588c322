package model

import (
	"crypto/sha256"
	"encoding/hex"
	"time"
)

// Client is an API client identified by a client ID and an API key. Only the
// SHA-256 digest of the key is stored.
type Client struct {
	ClientID     string    `gorm:"column:client_id;primaryKey"`
	APIKeyDigest string    `gorm:"column:api_key_digest;not null"`
	CreatedAt    time.Time `gorm:"column:created_at;autoCreateTime"`
}

func (Client) TableName() string {
	return "clients"
}

// DigestAPIKey returns the hex SHA-256 digest of an API key.
func DigestAPIKey(apiKey string) string {
	sum := sha256.Sum256([]byte(apiKey))
	return hex.EncodeToString(sum[:])
}

// VerifyAPIKey reports whether the given API key matches the stored digest.
func (c *Client) VerifyAPIKey(apiKey string) bool {
	return c.APIKeyDigest == DigestAPIKey(apiKey)
}
