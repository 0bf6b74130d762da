package services_test

import (
	"context"
	"fmt"
	"sync"

	"securitybot_go_backend/internal/models"
	"securitybot_go_backend/internal/services"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
	"gorm.io/gorm"
)

type MockChatStore struct {
	mock.Mock
}

func (m *MockChatStore) SessionExists(sessionID string) (bool, error) {
	args := m.Called(sessionID)
	return args.Bool(0), args.Error(1)
}

func (m *MockChatStore) CreateSessionIfAbsent(sessionID, title string) error {
	args := m.Called(sessionID, title)
	return args.Error(0)
}

func (m *MockChatStore) AppendMessage(sessionID, role, content string) (uint, error) {
	args := m.Called(sessionID, role, content)
	return args.Get(0).(uint), args.Error(1)
}

func (m *MockChatStore) ListMessages(sessionID string) ([]models.Message, error) {
	args := m.Called(sessionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Message), args.Error(1)
}

func (m *MockChatStore) RecentMessages(sessionID string, limit int) ([]models.Message, error) {
	args := m.Called(sessionID, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Message), args.Error(1)
}

func (m *MockChatStore) ListSessions() ([]models.Session, error) {
	args := m.Called()
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Session), args.Error(1)
}

func (m *MockChatStore) DeleteSession(sessionID string) error {
	args := m.Called(sessionID)
	return args.Error(0)
}

type MockTextGenerator struct {
	mock.Mock
}

func (m *MockTextGenerator) GenerateReply(ctx context.Context, history []services.ChatTurn, message string) (string, error) {
	args := m.Called(ctx, history, message)
	return args.String(0), args.Error(1)
}

func (m *MockTextGenerator) GenerateText(ctx context.Context, prompt string) (string, error) {
	args := m.Called(ctx, prompt)
	return args.String(0), args.Error(1)
}

type MockTitleSynthesizer struct {
	mock.Mock
}

func (m *MockTitleSynthesizer) SynthesizeTitle(ctx context.Context, firstMessage string) string {
	args := m.Called(ctx, firstMessage)
	return args.String(0)
}

type MockGamificationStore struct {
	mock.Mock
}

func (m *MockGamificationStore) InsertAttempt(userID uuid.UUID, messageID uint, points int) error {
	args := m.Called(userID, messageID, points)
	return args.Error(0)
}

func (m *MockGamificationStore) GetUser(userID uuid.UUID) (*models.User, error) {
	args := m.Called(userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockGamificationStore) UpdateUserProgress(userID uuid.UUID, points int, level string) error {
	args := m.Called(userID, points, level)
	return args.Error(0)
}

type MockUserStore struct {
	mock.Mock
}

func (m *MockUserStore) CreateUser(user *models.User) error {
	args := m.Called(user)
	return args.Error(0)
}

func (m *MockUserStore) GetUserByEmail(email string) (*models.User, error) {
	args := m.Called(email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserStore) GetUserByID(userID uuid.UUID) (*models.User, error) {
	args := m.Called(userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserStore) UpdateUserInfo(userID uuid.UUID, name, email string) (int64, error) {
	args := m.Called(userID, name, email)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockUserStore) UpdatePasswordHash(userID uuid.UUID, hash string) error {
	args := m.Called(userID, hash)
	return args.Error(0)
}

// fakeAttemptLedger is an in-memory GamificationStoreDB that enforces the
// (user, message) uniqueness the same way the database index does. Used to
// exercise concurrent duplicate submissions.
type fakeAttemptLedger struct {
	mu       sync.Mutex
	attempts map[string]bool
	user     models.User
}

func newFakeAttemptLedger(user models.User) *fakeAttemptLedger {
	return &fakeAttemptLedger{
		attempts: make(map[string]bool),
		user:     user,
	}
}

func (f *fakeAttemptLedger) InsertAttempt(userID uuid.UUID, messageID uint, points int) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	key := fmt.Sprintf("%s/%d", userID, messageID)
	if f.attempts[key] {
		return gorm.ErrDuplicatedKey
	}
	f.attempts[key] = true
	return nil
}

func (f *fakeAttemptLedger) GetUser(userID uuid.UUID) (*models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	user := f.user
	return &user, nil
}

func (f *fakeAttemptLedger) UpdateUserProgress(userID uuid.UUID, points int, level string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.user.Points = points
	f.user.Level = level
	return nil
}

func (f *fakeAttemptLedger) snapshot() models.User {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.user
}
