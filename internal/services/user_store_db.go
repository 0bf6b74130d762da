package services

import (
	"securitybot_go_backend/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// UserStoreDB defines the interface for user persistence
type UserStoreDB interface {
	CreateUser(user *models.User) error
	GetUserByEmail(email string) (*models.User, error)
	GetUserByID(userID uuid.UUID) (*models.User, error)
	UpdateUserInfo(userID uuid.UUID, name, email string) (int64, error)
	UpdatePasswordHash(userID uuid.UUID, hash string) error
}

// DefaultUserStore implements UserStoreDB
type DefaultUserStore struct {
	db *gorm.DB
}

// NewUserStoreDB creates a new DefaultUserStore
func NewUserStoreDB(db *gorm.DB) UserStoreDB {
	return &DefaultUserStore{db: db}
}

func (s *DefaultUserStore) CreateUser(user *models.User) error {
	return s.db.Create(user).Error
}

func (s *DefaultUserStore) GetUserByEmail(email string) (*models.User, error) {
	var user models.User
	if err := s.db.Where("email = ?", email).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (s *DefaultUserStore) GetUserByID(userID uuid.UUID) (*models.User, error) {
	var user models.User
	if err := s.db.Where("id = ?", userID).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// UpdateUserInfo reports the number of matched rows so callers can tell an
// unknown user apart from a successful update.
func (s *DefaultUserStore) UpdateUserInfo(userID uuid.UUID, name, email string) (int64, error) {
	result := s.db.Model(&models.User{}).
		Where("id = ?", userID).
		Updates(map[string]interface{}{
			"name":  name,
			"email": email,
		})
	return result.RowsAffected, result.Error
}

func (s *DefaultUserStore) UpdatePasswordHash(userID uuid.UUID, hash string) error {
	return s.db.Model(&models.User{}).
		Where("id = ?", userID).
		Update("password_hash", hash).Error
}
