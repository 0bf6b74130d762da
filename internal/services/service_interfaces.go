package services

import (
	"context"
)

// ChatTurn is one role-tagged entry of the bounded context window handed to
// the text generator. Role uses the store vocabulary (user/assistant); the
// generator implementation translates to whatever the backing model expects.
type ChatTurn struct {
	Role string
	Text string
}

type TextGenerator interface {
	GenerateReply(ctx context.Context, history []ChatTurn, message string) (string, error)
	GenerateText(ctx context.Context, prompt string) (string, error)
}

type TitleSynthesizer interface {
	SynthesizeTitle(ctx context.Context, firstMessage string) string
}
