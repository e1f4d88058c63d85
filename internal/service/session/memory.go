package session

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	cache "github.com/patrickmn/go-cache"

	"github.com/ryuujih/voice-diary-hackathon/internal/model/diary"
)

const (
	// DefaultTTL keeps finished and stale sessions around for a day.
	DefaultTTL = 24 * time.Hour
	// DefaultPurgeInterval is how often expired sessions are swept.
	DefaultPurgeInterval = 10 * time.Minute
)

// entry wraps a session with its own mutex so all mutations for one
// session id are serialized.
type entry struct {
	mu      sync.Mutex
	session diary.Session
}

// MemoryStore keeps sessions in a TTL cache. Sessions expire instead of
// accumulating for the lifetime of the process.
type MemoryStore struct {
	cache *cache.Cache
	now   func() time.Time
}

// NewMemoryStore builds a store with the given TTL and purge interval;
// non-positive values fall back to the defaults.
func NewMemoryStore(ttl, purgeInterval time.Duration) *MemoryStore {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	if purgeInterval <= 0 {
		purgeInterval = DefaultPurgeInterval
	}
	return &MemoryStore{
		cache: cache.New(ttl, purgeInterval),
		now:   time.Now,
	}
}

// Create provisions a new active session.
func (s *MemoryStore) Create(_ context.Context) (diary.Session, error) {
	sess := diary.Session{
		ID:        uuid.NewString(),
		Status:    diary.StatusActive,
		Messages:  make([]diary.Message, 0, 16),
		StartedAt: s.now().UTC(),
	}
	s.cache.Set(sess.ID, &entry{session: sess}, cache.DefaultExpiration)
	return cloneSession(sess), nil
}

// Get returns a snapshot of a session.
func (s *MemoryStore) Get(_ context.Context, sessionID string) (diary.Session, error) {
	e, err := s.lookup(sessionID)
	if err != nil {
		return diary.Session{}, err
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	return cloneSession(e.session), nil
}

// Append adds a message to the session history and returns the updated
// snapshot. Appends are allowed on completed sessions: wrap-up is not a
// hard stop for the conversation.
func (s *MemoryStore) Append(_ context.Context, sessionID string, message diary.Message) (diary.Session, error) {
	e, err := s.lookup(sessionID)
	if err != nil {
		return diary.Session{}, err
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	if message.CreatedAt.IsZero() {
		message.CreatedAt = s.now().UTC()
	}
	e.session.Messages = append(e.session.Messages, message)

	// Re-set to extend the TTL while the conversation is alive.
	s.cache.Set(sessionID, e, cache.DefaultExpiration)
	return cloneSession(e.session), nil
}

// Complete transitions a session active→completed, recording summary and
// end time. A second completion is rejected.
func (s *MemoryStore) Complete(_ context.Context, sessionID, summary string, mode diary.Mode) (diary.Session, error) {
	e, err := s.lookup(sessionID)
	if err != nil {
		return diary.Session{}, err
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	if e.session.Status == diary.StatusCompleted {
		return diary.Session{}, ErrSessionCompleted
	}
	e.session.Status = diary.StatusCompleted
	e.session.Summary = summary
	e.session.SummaryMode = mode
	e.session.EndedAt = s.now().UTC()

	s.cache.Set(sessionID, e, cache.DefaultExpiration)
	return cloneSession(e.session), nil
}

// List returns snapshots of all live sessions, newest first.
func (s *MemoryStore) List(_ context.Context) ([]diary.Session, error) {
	items := s.cache.Items()
	sessions := make([]diary.Session, 0, len(items))
	for _, item := range items {
		e, ok := item.Object.(*entry)
		if !ok {
			continue
		}
		e.mu.Lock()
		sessions = append(sessions, cloneSession(e.session))
		e.mu.Unlock()
	}

	sort.Slice(sessions, func(i, j int) bool {
		return sessions[i].StartedAt.After(sessions[j].StartedAt)
	})
	return sessions, nil
}

func (s *MemoryStore) lookup(sessionID string) (*entry, error) {
	if sessionID == "" {
		return nil, ErrSessionNotFound
	}
	obj, found := s.cache.Get(sessionID)
	if !found {
		return nil, ErrSessionNotFound
	}
	e, ok := obj.(*entry)
	if !ok {
		return nil, ErrSessionNotFound
	}
	return e, nil
}

func cloneSession(sess diary.Session) diary.Session {
	copied := sess
	copied.Messages = make([]diary.Message, len(sess.Messages))
	copy(copied.Messages, sess.Messages)
	return copied
}
