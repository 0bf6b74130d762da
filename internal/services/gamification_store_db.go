package services

import (
	"securitybot_go_backend/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GamificationStoreDB defines the interface for scoring persistence
type GamificationStoreDB interface {
	InsertAttempt(userID uuid.UUID, messageID uint, points int) error
	GetUser(userID uuid.UUID) (*models.User, error)
	UpdateUserProgress(userID uuid.UUID, points int, level string) error
}

// DefaultGamificationStore implements GamificationStoreDB
type DefaultGamificationStore struct {
	db *gorm.DB
}

// NewGamificationStoreDB creates a new DefaultGamificationStore
func NewGamificationStoreDB(db *gorm.DB) GamificationStoreDB {
	return &DefaultGamificationStore{db: db}
}

// InsertAttempt records one scoring attempt. The composite unique index on
// (user_id, message_id) rejects duplicates with gorm.ErrDuplicatedKey, which
// requires TranslateError to be enabled on the gorm config.
func (s *DefaultGamificationStore) InsertAttempt(userID uuid.UUID, messageID uint, points int) error {
	attempt := &models.QuizAttempt{
		UserID:       userID,
		MessageID:    messageID,
		PointsEarned: points,
	}
	return s.db.Create(attempt).Error
}

func (s *DefaultGamificationStore) GetUser(userID uuid.UUID) (*models.User, error) {
	var user models.User
	result := s.db.Where("id = ?", userID).First(&user)
	if result.Error != nil {
		return nil, result.Error
	}
	return &user, nil
}

func (s *DefaultGamificationStore) UpdateUserProgress(userID uuid.UUID, points int, level string) error {
	return s.db.Model(&models.User{}).
		Where("id = ?", userID).
		Updates(map[string]interface{}{
			"points": points,
			"level":  level,
		}).Error
}
