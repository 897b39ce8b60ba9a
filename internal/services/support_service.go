package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"movi/internal/assistant"
	"movi/internal/clock"
	"movi/internal/domain/entities"
	"movi/internal/repository"
)

var ErrEmptyMessage = errors.New("message must not be empty")

// SupportService runs the support chat of each session.
type SupportService struct {
	conversations repository.ConversationRepository
	responder     assistant.SupportResponder
	clock         clock.Clock
	logger        *slog.Logger

	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

func NewSupportService(
	conversations repository.ConversationRepository,
	responder assistant.SupportResponder,
	c clock.Clock,
	logger *slog.Logger,
) *SupportService {
	if logger == nil {
		logger = slog.Default()
	}
	return &SupportService{
		conversations: conversations,
		responder:     responder,
		clock:         c,
		logger:        logger,
		locks:         make(map[string]*sync.Mutex),
	}
}

// sessionLock serializes sends within one session so replies land in the
// order the questions were asked.
func (s *SupportService) sessionLock(sessionID string) *sync.Mutex {
	s.mu.Lock()
	defer s.mu.Unlock()
	l, ok := s.locks[sessionID]
	if !ok {
		l = &sync.Mutex{}
		s.locks[sessionID] = l
	}
	return l
}

// History returns the conversation so far, starting with the greeting.
func (s *SupportService) History(ctx context.Context, sessionID string) ([]entities.Message, error) {
	conv, err := s.conversations.GetOrCreate(ctx, sessionID)
	if err != nil {
		return nil, fmt.Errorf("load conversation: %w", err)
	}
	return conv.History(), nil
}

// Send records the user's message, asks for a reply and records that too.
// The user's message is stored before the reply is requested, so it stays in
// the history even when the reply is a fallback.
func (s *SupportService) Send(ctx context.Context, sessionID, text string) (entities.Message, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return entities.Message{}, ErrEmptyMessage
	}

	l := s.sessionLock(sessionID)
	l.Lock()
	defer l.Unlock()

	conv, err := s.conversations.GetOrCreate(ctx, sessionID)
	if err != nil {
		return entities.Message{}, fmt.Errorf("load conversation: %w", err)
	}
	conv.Append(entities.SenderUser, text, s.clock.Now())
	if err := s.conversations.Update(ctx, conv); err != nil {
		return entities.Message{}, fmt.Errorf("save user message: %w", err)
	}

	answer := s.responder.SupportReply(ctx, conv.History())
	var msg entities.Message
	if answer.Fallback {
		msg = conv.AppendLocal(entities.SenderBot, answer.Text, s.clock.Now())
	} else {
		msg = conv.Append(entities.SenderBot, answer.Text, s.clock.Now())
	}
	if err := s.conversations.Update(ctx, conv); err != nil {
		return entities.Message{}, fmt.Errorf("save reply: %w", err)
	}

	s.logger.Info("support reply sent", "session_id", sessionID, "messages", len(conv.Messages))
	return msg, nil
}

// CloseSession drops the per-session lock once the session is gone.
func (s *SupportService) CloseSession(sessionID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.locks, sessionID)
}
