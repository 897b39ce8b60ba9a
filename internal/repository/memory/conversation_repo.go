package memory

import (
	"context"
	"errors"
	"sync"
	"time"

	"movi/internal/domain/entities"
)

var ErrConversationNotFound = errors.New("conversation not found")

// ConversationRepository keeps one support conversation per session. The
// stored value is private to the repository; GetOrCreate hands out copies and
// Update replaces the stored copy.
type ConversationRepository struct {
	mu            sync.RWMutex
	conversations map[string]*entities.Conversation
	now           func() time.Time
}

func NewConversationRepository(now func() time.Time) *ConversationRepository {
	if now == nil {
		now = time.Now
	}
	return &ConversationRepository{
		conversations: make(map[string]*entities.Conversation),
		now:           now,
	}
}

// GetOrCreate returns the session's conversation, starting a new one with
// the bot greeting on first use.
func (r *ConversationRepository) GetOrCreate(ctx context.Context, sessionID string) (*entities.Conversation, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	conv, exists := r.conversations[sessionID]
	if !exists {
		conv = entities.NewConversation(sessionID, r.now())
		r.conversations[sessionID] = conv
	}
	return &entities.Conversation{SessionID: conv.SessionID, Messages: conv.History()}, nil
}

func (r *ConversationRepository) Update(ctx context.Context, conv *entities.Conversation) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.conversations[conv.SessionID]; !exists {
		return ErrConversationNotFound
	}
	r.conversations[conv.SessionID] = &entities.Conversation{
		SessionID: conv.SessionID,
		Messages:  conv.History(),
	}
	return nil
}

func (r *ConversationRepository) Delete(ctx context.Context, sessionID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.conversations, sessionID)
	return nil
}
