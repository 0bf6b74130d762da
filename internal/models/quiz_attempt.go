package models

import (
	"time"

	"github.com/google/uuid"
)

// QuizAttempt records one scoring event per (user, assistant message). The
// composite unique index is the arbiter for duplicate submissions: the
// gamification service inserts first and interprets a unique-key violation as
// "already scored". Rows are never updated or deleted.
type QuizAttempt struct {
	ID           uint      `gorm:"primaryKey"`
	UserID       uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_quiz_attempts_user_message"`
	MessageID    uint      `gorm:"not null;uniqueIndex:idx_quiz_attempts_user_message"`
	PointsEarned int       `gorm:"not null;default:0"`
	CreatedAt    time.Time
}

func (QuizAttempt) TableName() string {
	return "quiz_attempts"
}
