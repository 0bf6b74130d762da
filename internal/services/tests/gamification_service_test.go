package services_test

import (
	"sync"
	"testing"

	"securitybot_go_backend/internal/models"
	"securitybot_go_backend/internal/services"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

func TestAwardPoints(t *testing.T) {
	userID := uuid.New()
	messageID := uint(42)

	t.Run("First Award", func(t *testing.T) {
		mockStore := new(MockGamificationStore)
		gamification := services.NewGamificationService(mockStore, 100)

		mockStore.On("InsertAttempt", userID, messageID, 50).Return(nil).Once()
		mockStore.On("GetUser", userID).Return(&models.User{
			ID:     userID,
			Points: 0,
			Level:  models.LevelRookie,
		}, nil).Once()
		mockStore.On("UpdateUserProgress", userID, 50, models.LevelRookie).Return(nil).Once()

		result, err := gamification.AwardPoints(userID, messageID, 50)

		assert.NoError(t, err)
		assert.Equal(t, 50, result.NewPoints)
		assert.Equal(t, models.LevelRookie, result.NewLevel)
		assert.False(t, result.LeveledUp)
		mockStore.AssertExpectations(t)
	})

	t.Run("Duplicate Award", func(t *testing.T) {
		mockStore := new(MockGamificationStore)
		gamification := services.NewGamificationService(mockStore, 100)

		mockStore.On("InsertAttempt", userID, messageID, 50).Return(gorm.ErrDuplicatedKey).Once()

		result, err := gamification.AwardPoints(userID, messageID, 50)

		assert.Nil(t, result)
		assert.ErrorIs(t, err, services.ErrAlreadyAwarded)

		// a rejected attempt must not touch the user row
		mockStore.AssertNotCalled(t, "GetUser", userID)
		mockStore.AssertNotCalled(t, "UpdateUserProgress", userID, 50, models.LevelRookie)
		mockStore.AssertExpectations(t)
	})

	t.Run("Points Clamped To Ceiling", func(t *testing.T) {
		mockStore := new(MockGamificationStore)
		gamification := services.NewGamificationService(mockStore, 100)

		mockStore.On("InsertAttempt", userID, messageID, 100).Return(nil).Once()
		mockStore.On("GetUser", userID).Return(&models.User{
			ID:     userID,
			Points: 450,
			Level:  models.LevelRookie,
		}, nil).Once()
		mockStore.On("UpdateUserProgress", userID, 550, models.LevelBugHunter).Return(nil).Once()

		result, err := gamification.AwardPoints(userID, messageID, 99999)

		assert.NoError(t, err)
		assert.Equal(t, 550, result.NewPoints)
		assert.Equal(t, models.LevelBugHunter, result.NewLevel)
		assert.True(t, result.LeveledUp)
		mockStore.AssertExpectations(t)
	})

	t.Run("Negative Points Clamped To Zero", func(t *testing.T) {
		mockStore := new(MockGamificationStore)
		gamification := services.NewGamificationService(mockStore, 100)

		mockStore.On("InsertAttempt", userID, messageID, 0).Return(nil).Once()
		mockStore.On("GetUser", userID).Return(&models.User{
			ID:     userID,
			Points: 10,
			Level:  models.LevelRookie,
		}, nil).Once()
		mockStore.On("UpdateUserProgress", userID, 10, models.LevelRookie).Return(nil).Once()

		result, err := gamification.AwardPoints(userID, messageID, -25)

		assert.NoError(t, err)
		assert.Equal(t, 10, result.NewPoints)
		mockStore.AssertExpectations(t)
	})

	t.Run("Unknown User", func(t *testing.T) {
		mockStore := new(MockGamificationStore)
		gamification := services.NewGamificationService(mockStore, 100)

		mockStore.On("InsertAttempt", userID, messageID, 50).Return(nil).Once()
		mockStore.On("GetUser", userID).Return(nil, gorm.ErrRecordNotFound).Once()

		result, err := gamification.AwardPoints(userID, messageID, 50)

		assert.Nil(t, result)
		assert.ErrorIs(t, err, services.ErrUserNotFound)
		mockStore.AssertExpectations(t)
	})
}

func TestAwardPointsConcurrentDuplicates(t *testing.T) {
	userID := uuid.New()
	messageID := uint(7)

	ledger := newFakeAttemptLedger(models.User{
		ID:     userID,
		Points: 0,
		Level:  models.LevelRookie,
	})
	gamification := services.NewGamificationService(ledger, 100)

	const submissions = 25
	var wg sync.WaitGroup
	results := make([]error, submissions)

	for i := 0; i < submissions; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, err := gamification.AwardPoints(userID, messageID, 50)
			results[i] = err
		}(i)
	}
	wg.Wait()

	var successes, duplicates int
	for _, err := range results {
		switch {
		case err == nil:
			successes++
		case assert.ErrorIs(t, err, services.ErrAlreadyAwarded):
			duplicates++
		}
	}

	assert.Equal(t, 1, successes)
	assert.Equal(t, submissions-1, duplicates)
	assert.Equal(t, 50, ledger.snapshot().Points)
}

func TestDeriveLevel(t *testing.T) {
	cases := []struct {
		points int
		level  string
	}{
		{0, models.LevelRookie},
		{499, models.LevelRookie},
		{500, models.LevelBugHunter},
		{1499, models.LevelBugHunter},
		{1500, models.LevelEthicalHacker},
		{2999, models.LevelEthicalHacker},
		{3000, models.LevelMasterCryptographer},
		{100000, models.LevelMasterCryptographer},
	}

	for _, tc := range cases {
		assert.Equal(t, tc.level, services.DeriveLevel(tc.points), "points=%d", tc.points)
	}
}
