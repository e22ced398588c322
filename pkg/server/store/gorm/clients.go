package gorm

import (
	"gorm.io/gorm"

	"smscat/pkg/model"
	"smscat/pkg/server/store"
)

// Ensure ClientsStore implements store.ClientsStore
var _ store.ClientsStore = (*ClientsStore)(nil)

// ClientsStore implements store.ClientsStore using GORM
type ClientsStore struct {
	db *gorm.DB
}

// NewClientsStore creates a new ClientsStore
func NewClientsStore(db *gorm.DB) *ClientsStore {
	return &ClientsStore{db: db}
}

// CreateClient creates a client with the given API key digest.
func (s *ClientsStore) CreateClient(clientID, apiKeyDigest string) error {
	return s.db.Create(&model.Client{
		ClientID:     clientID,
		APIKeyDigest: apiKeyDigest,
	}).Error
}

// DeleteClient removes a client.
func (s *ClientsStore) DeleteClient(clientID string) error {
	tx := s.db.Where("client_id = ?", clientID).Delete(&model.Client{})
	if tx.Error != nil {
		return tx.Error
	}
	if tx.RowsAffected == 0 {
		return store.ErrClientNotFound
	}
	return nil
}

// FetchClient retrieves a client by ID.
func (s *ClientsStore) FetchClient(clientID string) (*store.Client, error) {
	var record model.Client
	tx := s.db.Where("client_id = ?", clientID).First(&record)
	if tx.Error != nil {
		if tx.Error == gorm.ErrRecordNotFound {
			return nil, store.ErrClientNotFound
		}
		return nil, tx.Error
	}

	return &store.Client{
		ClientID:     record.ClientID,
		APIKeyDigest: record.APIKeyDigest,
		CreatedAt:    record.CreatedAt,
	}, nil
}
