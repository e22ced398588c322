package gorm

import (
	"gorm.io/gorm"

	"smscat/pkg/model"
	"smscat/pkg/server/store"
)

const defaultListLimit = 100

// Ensure MessagesStore implements store.MessagesStore
var _ store.MessagesStore = (*MessagesStore)(nil)

// MessagesStore implements store.MessagesStore using GORM
type MessagesStore struct {
	db *gorm.DB
}

// NewMessagesStore creates a new MessagesStore
func NewMessagesStore(db *gorm.DB) *MessagesStore {
	return &MessagesStore{db: db}
}

// SaveMessage persists a categorized message and fills in its ID.
func (s *MessagesStore) SaveMessage(msg *store.Message) error {
	record := model.Message{
		Body:       msg.Body,
		Category:   msg.Category,
		Confidence: msg.Confidence,
		Amount:     msg.Amount,
		Merchant:   msg.Merchant,
		ClientID:   msg.ClientID,
	}
	if err := s.db.Create(&record).Error; err != nil {
		return err
	}
	msg.ID = record.ID
	msg.CreatedAt = record.CreatedAt
	return nil
}

// ListMessages returns messages matching the filter, newest first.
func (s *MessagesStore) ListMessages(filter store.MessageFilter) ([]store.Message, error) {
	limit := filter.Limit
	if limit <= 0 {
		limit = defaultListLimit
	}

	query := s.db.Order("created_at desc, id desc").Limit(limit)
	if filter.Category != "" {
		query = query.Where("category = ?", filter.Category)
	}

	var records []model.Message
	if err := query.Find(&records).Error; err != nil {
		return nil, err
	}

	messages := make([]store.Message, len(records))
	for i, r := range records {
		messages[i] = toStoreMessage(r)
	}
	return messages, nil
}

// GetMessage retrieves a message by ID.
func (s *MessagesStore) GetMessage(id int64) (*store.Message, error) {
	var record model.Message
	tx := s.db.Where("id = ?", id).First(&record)
	if tx.Error != nil {
		if tx.Error == gorm.ErrRecordNotFound {
			return nil, store.ErrMessageNotFound
		}
		return nil, tx.Error
	}

	msg := toStoreMessage(record)
	return &msg, nil
}

func toStoreMessage(r model.Message) store.Message {
	return store.Message{
		ID:         r.ID,
		Body:       r.Body,
		Category:   r.Category,
		Confidence: r.Confidence,
		Amount:     r.Amount,
		Merchant:   r.Merchant,
		ClientID:   r.ClientID,
		CreatedAt:  r.CreatedAt,
	}
}
