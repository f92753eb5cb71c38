// Package session keeps per-session chat state in memory. A session owns its
// transcript exclusively; expired sessions are dropped by the underlying
// cache, which is the whole lifecycle — nothing is persisted.
package session

import (
	"sync"
	"time"

	gocache "github.com/patrickmn/go-cache"
	"github.com/tnega/gosearch/internal/entity"
)

// Session is the per-session context: the store to query and the capped
// conversation transcript. Message handling holds the session lock for the
// whole exchange, so at most one query per session is in flight and the
// transcript is only touched by the lock holder.
type Session struct {
	ID         string
	StoreName  string
	Transcript []entity.Turn
	CreatedAt  time.Time

	mu sync.Mutex
}

// Lock serializes message handling within the session.
func (s *Session) Lock() {
	s.mu.Lock()
}

func (s *Session) Unlock() {
	s.mu.Unlock()
}

// Store is an expiring in-memory session store, safe for concurrent use
// across sessions.
type Store struct {
	cache *gocache.Cache
}

func NewStore(ttl, cleanupInterval time.Duration) *Store {
	return &Store{
		cache: gocache.New(ttl, cleanupInterval),
	}
}

// Create registers a fresh session with an empty transcript.
func (s *Store) Create(id, storeName string) *Session {
	sess := &Session{
		ID:        id,
		StoreName: storeName,
		CreatedAt: time.Now(),
	}
	s.cache.SetDefault(id, sess)
	return sess
}

// Get returns the session, or false when it never existed or has expired.
func (s *Store) Get(id string) (*Session, bool) {
	v, ok := s.cache.Get(id)
	if !ok {
		return nil, false
	}
	return v.(*Session), true
}

// Save stores the session back, refreshing its expiry.
func (s *Store) Save(sess *Session) {
	s.cache.SetDefault(sess.ID, sess)
}

// Delete ends the session; its transcript is gone with it.
func (s *Store) Delete(id string) {
	s.cache.Delete(id)
}
