package store

import (
	"time"

	"github.com/google/uuid"
	gocache "github.com/patrickmn/go-cache"

	"tripplanner/internal/domain"
	domaintypes "tripplanner/internal/domain/types"
)

// DefaultSessionTTL is how long an untouched session is kept.
const DefaultSessionTTL = 12 * time.Hour

// MemorySessionStore holds live sessions keyed by id. Loading a session
// refreshes its expiry.
type MemorySessionStore struct {
	ttl   time.Duration
	cache *gocache.Cache
	now   func() time.Time
}

// NewMemorySessionStore returns a store whose sessions expire after ttl of
// inactivity. A non-positive ttl selects DefaultSessionTTL.
func NewMemorySessionStore(ttl time.Duration) *MemorySessionStore {
	if ttl <= 0 {
		ttl = DefaultSessionTTL
	}
	return &MemorySessionStore{
		ttl:   ttl,
		cache: gocache.New(ttl, ttl/2),
		now:   time.Now,
	}
}

// CreateSession registers a new session with a random id and empty state.
func (s *MemorySessionStore) CreateSession() (*domain.Session, error) {
	id, err := uuid.NewRandom()
	if err != nil {
		return nil, err
	}
	sess := domaintypes.NewSession(domain.SessionID(id.String()), s.now())
	s.cache.Set(id.String(), sess, s.ttl)
	return sess, nil
}

// LoadSession returns the session for id and extends its lifetime.
func (s *MemorySessionStore) LoadSession(id domain.SessionID) (*domain.Session, bool) {
	v, ok := s.cache.Get(id.String())
	if !ok {
		return nil, false
	}
	sess := v.(*domain.Session)
	s.cache.Set(id.String(), sess, s.ttl)
	return sess, true
}

// DeleteSession drops the session for id, if any.
func (s *MemorySessionStore) DeleteSession(id domain.SessionID) {
	s.cache.Delete(id.String())
}

// CountSessions returns the number of live sessions.
func (s *MemorySessionStore) CountSessions() int {
	return s.cache.ItemCount()
}

// Compile-time assertion that MemorySessionStore implements domain.SessionStore.
var _ domain.SessionStore = (*MemorySessionStore)(nil)
