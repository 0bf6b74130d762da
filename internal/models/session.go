package models

import (
	"time"
)

// Session is a persisted conversation thread. The identifier is generated by
// the client and the title is assigned exactly once, when the session is
// created from its first message.
type Session struct {
	SessionID string `gorm:"primaryKey;type:varchar(255)"`
	Title     string `gorm:"type:varchar(255)"`
	CreatedAt time.Time
}

func (Session) TableName() string {
	return "chat_sessions"
}
