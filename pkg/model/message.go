package model

import "time"

// Message is a categorized SMS message.
type Message struct {
	ID         int64     `gorm:"column:id;primaryKey;autoIncrement"`
	Body       string    `gorm:"column:body;not null"`
	Category   string    `gorm:"column:category;not null"`
	Confidence float64   `gorm:"column:confidence;not null"`
	Amount     float64   `gorm:"column:amount"`
	Merchant   string    `gorm:"column:merchant"`
	ClientID   *string   `gorm:"column:client_id"`
	CreatedAt  time.Time `gorm:"column:created_at;autoCreateTime"`
}

func (Message) TableName() string {
	return "messages"
}
