package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog/log"
)

const TitleFallback = "New Conversation"

// TitleService labels a brand-new session from its first user message. Title
// synthesis is best effort: any generator failure yields the fallback label so
// message delivery is never blocked by it.
type TitleService struct {
	generator TextGenerator
	maxLen    int
}

func NewTitleService(generator TextGenerator, maxLen int) *TitleService {
	return &TitleService{
		generator: generator,
		maxLen:    maxLen,
	}
}

func (s *TitleService) SynthesizeTitle(ctx context.Context, firstMessage string) string {
	prompt := fmt.Sprintf(
		"Analyze the user message below and create a very short title (at most 4 words) that summarizes the subject.\n"+
			"Answer with ONLY the title, no quotes and no explanations.\n\nMessage: %q",
		firstMessage,
	)

	raw, err := s.generator.GenerateText(ctx, prompt)
	if err != nil {
		log.Warn().Err(err).Msg("Title synthesis failed, using fallback")
		return TitleFallback
	}

	return sanitizeTitle(raw, s.maxLen)
}

// sanitizeTitle strips the quoting and stray periods models like to add, then
// enforces the character budget.
func sanitizeTitle(raw string, maxLen int) string {
	title := strings.TrimSpace(raw)
	title = strings.ReplaceAll(title, "\"", "")
	title = strings.ReplaceAll(title, ".", "")
	title = strings.TrimSpace(title)
	if title == "" {
		return TitleFallback
	}
	if runes := []rune(title); len(runes) > maxLen {
		title = strings.TrimSpace(string(runes[:maxLen]))
	}
	return title
}
