package services

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"copydesk/models"
)

// titleMaxLen is the truncation length for session titles derived from the
// first user message.
const titleMaxLen = 50

// SessionService owns the session lifecycle: resolution against the expiry
// window, explicit creation, listing and exchange persistence.
type SessionService struct {
	users    UserRepository
	sessions SessionRepository
	messages MessageRepository
	ttl      time.Duration
	now      func() time.Time

	// guards the check-then-create in ResolveOrCreate so two concurrent
	// requests for one user cannot both open a fresh session
	mu sync.Mutex
}

func NewSessionService(users UserRepository, sessions SessionRepository, messages MessageRepository, ttl time.Duration) *SessionService {
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &SessionService{
		users:    users,
		sessions: sessions,
		messages: messages,
		ttl:      ttl,
		now:      time.Now,
	}
}

// ResolveOrCreate returns the user's active session if it was created
// within the expiry window, superseding and replacing it otherwise.
func (s *SessionService) ResolveOrCreate(ctx context.Context, userID string) (*models.Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.users.UpsertByUserID(ctx, userID); err != nil {
		return nil, err
	}

	active, err := s.sessions.FindActiveByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	if active != nil {
		if s.now().Sub(active.StartTime) <= s.ttl {
			return active, nil
		}
		// superseded, not deleted: history stays intact
		if err := s.sessions.Deactivate(ctx, active.SessionID); err != nil {
			return nil, err
		}
	}

	return s.createLocked(ctx, userID)
}

// CreateExplicit forces a fresh session regardless of the expiry state
// (user-initiated "new chat").
func (s *SessionService) CreateExplicit(ctx context.Context, userID string) (*models.Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.users.UpsertByUserID(ctx, userID); err != nil {
		return nil, err
	}

	active, err := s.sessions.FindActiveByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	if active != nil {
		if err := s.sessions.Deactivate(ctx, active.SessionID); err != nil {
			return nil, err
		}
	}

	return s.createLocked(ctx, userID)
}

func (s *SessionService) createLocked(ctx context.Context, userID string) (*models.Session, error) {
	sess := &models.Session{
		SessionID: uuid.NewString(),
		UserID:    userID,
		StartTime: s.now(),
		IsActive:  true,
	}
	if err := s.sessions.Insert(ctx, sess); err != nil {
		return nil, err
	}
	return sess, nil
}

// Get returns a session by token, nil when unknown.
func (s *SessionService) Get(ctx context.Context, sessionID string) (*models.Session, error) {
	return s.sessions.FindBySessionID(ctx, sessionID)
}

// List returns all of a user's sessions, most recent first.
func (s *SessionService) List(ctx context.Context, userID string) ([]models.Session, error) {
	return s.sessions.ListByUser(ctx, userID)
}

// AppendExchange stores one immutable (user, assistant) pair. The first
// exchange of a session also sets the title, derived from the user text.
func (s *SessionService) AppendExchange(ctx context.Context, sessionID, userText, aiText string) error {
	msg := &models.Message{
		SessionID: sessionID,
		Message:   models.ExchangeDoc{User: userText, AI: aiText},
	}
	if err := s.messages.Insert(ctx, msg); err != nil {
		return err
	}
	// no-op for every exchange after the first
	return s.sessions.SetTitleIfEmpty(ctx, sessionID, deriveTitle(userText))
}

// deriveTitle truncates the first user message to titleMaxLen runes.
func deriveTitle(userText string) string {
	rs := []rune(userText)
	if len(rs) <= titleMaxLen {
		return userText
	}
	return string(rs[:titleMaxLen])
}

// TTL exposes the expiry window shared with the conversation cache.
func (s *SessionService) TTL() time.Duration {
	return s.ttl
}
