package services

import (
	"errors"
	"fmt"

	"securitybot_go_backend/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

var (
	ErrAlreadyAwarded = errors.New("quiz already answered for this message")
	ErrUserNotFound   = errors.New("user not found")
)

type AwardResult struct {
	NewPoints int
	NewLevel  string
	LeveledUp bool
}

// GamificationService awards quiz points at most once per (user, assistant
// message) pair and keeps the user's level in sync with their points.
type GamificationService struct {
	store     GamificationStoreDB
	maxPoints int
}

func NewGamificationService(store GamificationStoreDB, maxPoints int) *GamificationService {
	return &GamificationService{
		store:     store,
		maxPoints: maxPoints,
	}
}

// AwardPoints clamps the client-declared amount, records the attempt and bumps
// the user's points and level. Returns ErrAlreadyAwarded when this user has
// already scored this message.
func (s *GamificationService) AwardPoints(userID uuid.UUID, messageID uint, points int) (*AwardResult, error) {
	clamped := points
	if clamped > s.maxPoints {
		clamped = s.maxPoints
	}
	if clamped < 0 {
		clamped = 0
	}

	// Insert first and let the unique index arbitrate. An existence check
	// before the insert would race with a concurrent submission of the same
	// pair.
	if err := s.store.InsertAttempt(userID, messageID, clamped); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrAlreadyAwarded
		}
		return nil, fmt.Errorf("failed to record quiz attempt: %w", err)
	}

	user, err := s.store.GetUser(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to load user: %w", err)
	}

	newPoints := user.Points + clamped
	newLevel := DeriveLevel(newPoints)
	if err := s.store.UpdateUserProgress(userID, newPoints, newLevel); err != nil {
		return nil, fmt.Errorf("failed to update user progress: %w", err)
	}

	return &AwardResult{
		NewPoints: newPoints,
		NewLevel:  newLevel,
		LeveledUp: newLevel != user.Level,
	}, nil
}

// DeriveLevel maps cumulative points onto the fixed ascending tiers. Levels
// are never written from any other source.
func DeriveLevel(points int) string {
	switch {
	case points < 500:
		return models.LevelRookie
	case points < 1500:
		return models.LevelBugHunter
	case points < 3000:
		return models.LevelEthicalHacker
	default:
		return models.LevelMasterCryptographer
	}
}
