package services_test

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"securitybot_go_backend/internal/services"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func TestSynthesizeTitle(t *testing.T) {
	ctx := context.Background()

	t.Run("Strips Quotes And Periods", func(t *testing.T) {
		mockGenerator := new(MockTextGenerator)
		titleService := services.NewTitleService(mockGenerator, 50)

		mockGenerator.On("GenerateText", mock.Anything, mock.Anything).
			Return("\"Phishing Explained.\"\n", nil).Once()

		title := titleService.SynthesizeTitle(ctx, "What is phishing?")

		assert.Equal(t, "Phishing Explained", title)
		mockGenerator.AssertExpectations(t)
	})

	t.Run("Truncates To Budget", func(t *testing.T) {
		mockGenerator := new(MockTextGenerator)
		titleService := services.NewTitleService(mockGenerator, 50)

		long := strings.Repeat("Security ", 20)
		mockGenerator.On("GenerateText", mock.Anything, mock.Anything).
			Return(long, nil).Once()

		title := titleService.SynthesizeTitle(ctx, "tell me everything")

		assert.LessOrEqual(t, len([]rune(title)), 50)
		assert.NotEmpty(t, title)
	})

	t.Run("Fallback On Generator Failure", func(t *testing.T) {
		mockGenerator := new(MockTextGenerator)
		titleService := services.NewTitleService(mockGenerator, 50)

		mockGenerator.On("GenerateText", mock.Anything, mock.Anything).
			Return("", fmt.Errorf("quota exceeded")).Once()

		title := titleService.SynthesizeTitle(ctx, "What is phishing?")

		assert.Equal(t, services.TitleFallback, title)
	})

	t.Run("Fallback On Blank Title", func(t *testing.T) {
		mockGenerator := new(MockTextGenerator)
		titleService := services.NewTitleService(mockGenerator, 50)

		mockGenerator.On("GenerateText", mock.Anything, mock.Anything).
			Return("\"...\"", nil).Once()

		title := titleService.SynthesizeTitle(ctx, "What is phishing?")

		assert.Equal(t, services.TitleFallback, title)
	})
}
