package models

import (
	"time"
)

const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// Message rows are append-only; ordering within a session is created_at
// ascending with the auto-increment id breaking ties.
type Message struct {
	ID        uint   `gorm:"primaryKey"`
	SessionID string `gorm:"type:varchar(255);not null;index"`
	Role      string `gorm:"type:varchar(50);not null"`
	Content   string `gorm:"type:text;not null"`
	CreatedAt time.Time
}

func (Message) TableName() string {
	return "chat_messages"
}
