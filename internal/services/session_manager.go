package services

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"movi/internal/domain/entities"
	"movi/internal/repository"
	"movi/pkg/utils"
)

var ErrSessionNotFound = errors.New("session not found")

// Session is one browser tab of the demo: a view mode, a ride and (through
// SupportService) a support conversation.
type Session struct {
	ID        string       `json:"id"`
	CreatedAt time.Time    `json:"created_at"`
	Ride      *RideService `json:"-"`

	mu   sync.RWMutex
	mode entities.ViewMode
}

func (s *Session) Mode() entities.ViewMode {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.mode
}

func (s *Session) SetMode(mode entities.ViewMode) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.mode = mode
}

// SessionCloser releases per-session resources held outside the manager, such
// as WebSocket clients or the support chat lock.
type SessionCloser interface {
	CloseSession(sessionID string)
}

// SessionManager is the registry of live sessions. Sessions never share
// state; the manager's lock only guards the map itself.
type SessionManager struct {
	deps          RideDeps
	conversations repository.ConversationRepository
	closers       []SessionCloser
	logger        *slog.Logger

	mu       sync.RWMutex
	sessions map[string]*Session
}

// NewSessionManager creates the registry. Every closer is told about each
// session that is closed, including the ones closed by CloseAll on shutdown.
func NewSessionManager(deps RideDeps, conversations repository.ConversationRepository, closers ...SessionCloser) *SessionManager {
	if deps.Logger == nil {
		deps.Logger = slog.Default()
	}
	if deps.Notifier == nil {
		deps.Notifier = NewNotificationService(deps.Logger, nil)
	}
	return &SessionManager{
		deps:          deps,
		conversations: conversations,
		closers:       closers,
		logger:        deps.Logger,
		sessions:      make(map[string]*Session),
	}
}

// Create starts a new session in passenger mode with an idle ride.
func (m *SessionManager) Create(ctx context.Context) *Session {
	id := utils.GenerateID()
	session := &Session{
		ID:        id,
		CreatedAt: m.deps.Clock.Now(),
		Ride:      NewRideService(id, m.deps),
		mode:      entities.ViewModePassenger,
	}

	m.mu.Lock()
	m.sessions[id] = session
	m.mu.Unlock()

	m.logger.Info("session created", "session_id", id)
	return session
}

func (m *SessionManager) Get(id string) (*Session, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	session, ok := m.sessions[id]
	if !ok {
		return nil, ErrSessionNotFound
	}
	return session, nil
}

// Close stops the session's timers, forgets its support conversation and
// releases whatever the closers hold for it.
func (m *SessionManager) Close(ctx context.Context, id string) error {
	m.mu.Lock()
	session, ok := m.sessions[id]
	delete(m.sessions, id)
	m.mu.Unlock()

	if !ok {
		return ErrSessionNotFound
	}
	session.Ride.Close()
	if m.conversations != nil {
		if err := m.conversations.Delete(ctx, id); err != nil {
			m.logger.Warn("could not delete support conversation", "session_id", id, "error", err)
		}
	}
	for _, c := range m.closers {
		c.CloseSession(id)
	}
	m.logger.Info("session closed", "session_id", id)
	return nil
}

// CloseAll is called on shutdown.
func (m *SessionManager) CloseAll(ctx context.Context) {
	m.mu.RLock()
	ids := make([]string, 0, len(m.sessions))
	for id := range m.sessions {
		ids = append(ids, id)
	}
	m.mu.RUnlock()

	for _, id := range ids {
		_ = m.Close(ctx, id)
	}
}

func (m *SessionManager) Count() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.sessions)
}
