package services

import (
	"errors"

	"securitybot_go_backend/internal/models"

	"gorm.io/gorm"
)

// ChatStoreDB defines the interface for conversation persistence
type ChatStoreDB interface {
	SessionExists(sessionID string) (bool, error)
	CreateSessionIfAbsent(sessionID, title string) error
	AppendMessage(sessionID, role, content string) (uint, error)
	ListMessages(sessionID string) ([]models.Message, error)
	RecentMessages(sessionID string, limit int) ([]models.Message, error)
	ListSessions() ([]models.Session, error)
	DeleteSession(sessionID string) error
}

// DefaultChatStore implements ChatStoreDB
type DefaultChatStore struct {
	db *gorm.DB
}

// NewChatStoreDB creates a new DefaultChatStore
func NewChatStoreDB(db *gorm.DB) ChatStoreDB {
	return &DefaultChatStore{db: db}
}

func (s *DefaultChatStore) SessionExists(sessionID string) (bool, error) {
	var count int64
	err := s.db.Model(&models.Session{}).Where("session_id = ?", sessionID).Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// CreateSessionIfAbsent creates the session row with the given title. If the
// row already exists the existing title is kept untouched, so two racing
// first-messages cannot overwrite each other's title.
func (s *DefaultChatStore) CreateSessionIfAbsent(sessionID, title string) error {
	session := models.Session{SessionID: sessionID}
	result := s.db.Where(models.Session{SessionID: sessionID}).
		Attrs(models.Session{Title: title}).
		FirstOrCreate(&session)
	if errors.Is(result.Error, gorm.ErrDuplicatedKey) {
		// a concurrent first message won the insert; its title stands
		return nil
	}
	return result.Error
}

// AppendMessage adds a message to a session and returns its assigned id
func (s *DefaultChatStore) AppendMessage(sessionID, role, content string) (uint, error) {
	message := &models.Message{
		SessionID: sessionID,
		Role:      role,
		Content:   content,
	}
	if err := s.db.Create(message).Error; err != nil {
		return 0, err
	}
	return message.ID, nil
}

// ListMessages retrieves the full ordered history of a session. An unknown
// session id yields an empty slice, indistinguishable from an empty session.
func (s *DefaultChatStore) ListMessages(sessionID string) ([]models.Message, error) {
	var messages []models.Message
	result := s.db.Where("session_id = ?", sessionID).
		Order("created_at asc, id asc").
		Find(&messages)
	if result.Error != nil {
		return nil, result.Error
	}
	return messages, nil
}

// RecentMessages retrieves the trailing window of at most limit messages,
// returned in ascending order.
func (s *DefaultChatStore) RecentMessages(sessionID string, limit int) ([]models.Message, error) {
	var messages []models.Message
	result := s.db.Where("session_id = ?", sessionID).
		Order("created_at desc, id desc").
		Limit(limit).
		Find(&messages)
	if result.Error != nil {
		return nil, result.Error
	}
	// flip newest-first into chronological order
	for i, j := 0, len(messages)-1; i < j; i, j = i+1, j-1 {
		messages[i], messages[j] = messages[j], messages[i]
	}
	return messages, nil
}

// ListSessions retrieves all sessions, newest first
func (s *DefaultChatStore) ListSessions() ([]models.Session, error) {
	var sessions []models.Session
	result := s.db.Order("created_at desc").Find(&sessions)
	if result.Error != nil {
		return nil, result.Error
	}
	return sessions, nil
}

// DeleteSession deletes a session and its messages as a single transaction.
// Deleting an unknown session id is not an error.
func (s *DefaultChatStore) DeleteSession(sessionID string) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("session_id = ?", sessionID).Delete(&models.Message{}).Error; err != nil {
			return err
		}
		return tx.Where("session_id = ?", sessionID).Delete(&models.Session{}).Error
	})
}
