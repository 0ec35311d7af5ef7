package auth

import (
	"context"
	"fmt"
	"time"

	"github.com/goccy/go-json"

	"neotech/internal/cache"
	"neotech/internal/cart"
)

const sessionKeyPrefix = "session:"

// Principal is the authenticated user attached to a session.
type Principal struct {
	ID      uint   `json:"id"`
	Email   string `json:"email"`
	Name    string `json:"name"`
	IsAdmin bool   `json:"is_admin"`
}

// Session is the server-side record behind the session cookie.
type Session struct {
	ID   string     `json:"id"`
	User *Principal `json:"user,omitempty"`
	Cart cart.Cart  `json:"cart,omitempty"`
}

// Authenticated reports whether a principal is attached.
func (s *Session) Authenticated() bool {
	return s != nil && s.User != nil
}

// SessionStoreInterface defines persistence for session records.
type SessionStoreInterface interface {
	Load(ctx context.Context, id string) (*Session, error)
	Save(ctx context.Context, session *Session, ttl time.Duration) error
	Delete(ctx context.Context, id string) error
}

// SessionStore keeps sessions in a cache.Store (Redis or in-process).
type SessionStore struct {
	cache cache.Store
}

// Ensure SessionStore implements SessionStoreInterface
var _ SessionStoreInterface = (*SessionStore)(nil)

// NewSessionStore creates a new session store.
func NewSessionStore(store cache.Store) *SessionStore {
	return &SessionStore{cache: store}
}

// Load returns the session or nil when it does not exist or has expired.
func (s *SessionStore) Load(ctx context.Context, id string) (*Session, error) {
	data, err := s.cache.Get(ctx, sessionKeyPrefix+id)
	if err != nil {
		return nil, fmt.Errorf("load session: %w", err)
	}
	if data == nil {
		return nil, nil
	}

	var session Session
	if err := json.Unmarshal(data, &session); err != nil {
		return nil, fmt.Errorf("unmarshal session: %w", err)
	}
	session.ID = id
	return &session, nil
}

// Save stores the session with TTL.
func (s *SessionStore) Save(ctx context.Context, session *Session, ttl time.Duration) error {
	payload, err := json.Marshal(session)
	if err != nil {
		return fmt.Errorf("marshal session: %w", err)
	}
	return s.cache.Set(ctx, sessionKeyPrefix+session.ID, payload, ttl)
}

// Delete removes a session.
func (s *SessionStore) Delete(ctx context.Context, id string) error {
	return s.cache.Delete(ctx, sessionKeyPrefix+id)
}
