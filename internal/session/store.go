package session

import (
	"sync"
	"time"

	"github.com/google/uuid"
	gocache "github.com/patrickmn/go-cache"
	"github.com/recipenest/recipenest-web/pkg/metrics"
)

// Session is the server-side state referenced by a visitor's cookie. Identity
// is empty until OTP verification succeeds; having a session is never the same
// as being authenticated.
type Session struct {
	mu      sync.Mutex
	email   string
	flashes map[string]string
}

// SetIdentity marks the session as authenticated for the given email. This is
// the only operation that authenticates a session.
func (s *Session) SetIdentity(email string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.email = email
	metrics.SessionsAuthenticated.Inc()
}

// Identity returns the authenticated email, or "" for an anonymous session.
func (s *Session) Identity() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.email
}

// PushFlash stores a one-shot message under key, replacing any previous value.
func (s *Session) PushFlash(key, text string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.flashes[key] = text
}

// PopFlash returns and consumes the message stored under key.
func (s *Session) PopFlash(key string) (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	text, ok := s.flashes[key]
	if ok {
		delete(s.flashes, key)
	}
	return text, ok
}

// Store maps opaque session IDs to server-side session state. Entries expire
// a fixed window after creation; expiry is not renewed by access, so a visitor
// re-authenticates once the window closes.
type Store struct {
	cache *gocache.Cache
	ttl   time.Duration
}

// NewStore creates a session store with the given fixed lifetime.
func NewStore(ttl time.Duration) *Store {
	return &Store{
		cache: gocache.New(ttl, ttl),
		ttl:   ttl,
	}
}

// Create allocates a new anonymous session and returns its ID.
func (st *Store) Create() (string, *Session) {
	id := uuid.NewString()
	sess := &Session{flashes: make(map[string]string)}
	st.cache.Set(id, sess, gocache.DefaultExpiration)
	metrics.SessionsCreated.Inc()
	return id, sess
}

// Get returns the live session for id, or false if it never existed, expired,
// or was cleared.
func (st *Store) Get(id string) (*Session, bool) {
	val, found := st.cache.Get(id)
	if !found {
		return nil, false
	}
	sess, ok := val.(*Session)
	if !ok {
		st.cache.Delete(id)
		return nil, false
	}
	return sess, true
}

// Delete destroys the session (logout).
func (st *Store) Delete(id string) {
	st.cache.Delete(id)
}

// TTL returns the fixed session lifetime.
func (st *Store) TTL() time.Duration {
	return st.ttl
}
