package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"securitybot_go_backend/internal/models"
)

// ErrUpstream marks a failed text-generation call. The user message persisted
// before the call stays in place; the client recovers by resending.
var ErrUpstream = errors.New("text generation failed")

type ChatReply struct {
	Response  string
	MessageID uint
	Title     *string // set only when this message created the session
}

type ChatService struct {
	store           ChatStoreDB
	generator       TextGenerator
	titles          TitleSynthesizer
	historyWindow   int
	generateTimeout time.Duration
}

func NewChatService(
	store ChatStoreDB,
	generator TextGenerator,
	titles TitleSynthesizer,
	historyWindow int,
	generateTimeout time.Duration,
) *ChatService {
	return &ChatService{
		store:           store,
		generator:       generator,
		titles:          titles,
		historyWindow:   historyWindow,
		generateTimeout: generateTimeout,
	}
}

// SendMessage runs one conversation round: ensure the session exists (a brand
// new session gets a synthesized title), persist the user message, assemble
// the trailing context window, ask the generator for a reply and persist it.
// The returned message id is what the quiz layer scores against later.
func (s *ChatService) SendMessage(ctx context.Context, sessionID, message string) (*ChatReply, error) {
	var createdTitle *string

	exists, err := s.store.SessionExists(sessionID)
	if err != nil {
		return nil, fmt.Errorf("failed to check session: %w", err)
	}
	if !exists {
		title := s.titles.SynthesizeTitle(ctx, message)
		if err := s.store.CreateSessionIfAbsent(sessionID, title); err != nil {
			return nil, fmt.Errorf("failed to create session: %w", err)
		}
		createdTitle = &title
	}

	userMessageID, err := s.store.AppendMessage(sessionID, models.RoleUser, message)
	if err != nil {
		return nil, fmt.Errorf("failed to save user message: %w", err)
	}

	window, err := s.store.RecentMessages(sessionID, s.historyWindow)
	if err != nil {
		return nil, fmt.Errorf("failed to load chat history: %w", err)
	}
	turns := make([]ChatTurn, 0, len(window))
	for _, m := range window {
		// the new user message goes in separately, not as history
		if m.ID == userMessageID {
			continue
		}
		turns = append(turns, ChatTurn{Role: m.Role, Text: m.Content})
	}
	// past the window boundary the oldest surviving row can be an assistant
	// reply, and the model API wants histories that open with a user turn
	for len(turns) > 0 && turns[0].Role == models.RoleAssistant {
		turns = turns[1:]
	}

	genCtx, cancel := context.WithTimeout(ctx, s.generateTimeout)
	defer cancel()

	response, err := s.generator.GenerateReply(genCtx, turns, message)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUpstream, err)
	}

	replyID, err := s.store.AppendMessage(sessionID, models.RoleAssistant, response)
	if err != nil {
		return nil, fmt.Errorf("failed to save assistant message: %w", err)
	}

	return &ChatReply{
		Response:  response,
		MessageID: replyID,
		Title:     createdTitle,
	}, nil
}

func (s *ChatService) History(sessionID string) ([]models.Message, error) {
	return s.store.ListMessages(sessionID)
}

func (s *ChatService) Sessions() ([]models.Session, error) {
	return s.store.ListSessions()
}

func (s *ChatService) DeleteSession(sessionID string) error {
	return s.store.DeleteSession(sessionID)
}
