package repository

import (
	"sync"
	"time"

	"github.com/dskvich/oracai/pkg/domain"
	"github.com/dskvich/oracai/pkg/session"
)

type historyEntry struct {
	history    *session.History
	lastUpdate time.Time
}

type sessionRepository struct {
	mu    sync.Mutex
	items map[string]historyEntry
	ttl   time.Duration
	now   func() time.Time
}

// NewSessionRepository keeps one chat history per session id. Histories idle for longer than
// ttl are dropped; ttl <= 0 keeps them for the process lifetime.
func NewSessionRepository(ttl time.Duration) *sessionRepository {
	return &sessionRepository{
		items: make(map[string]historyEntry),
		ttl:   ttl,
		now:   time.Now,
	}
}

// History returns the history of sessionID, creating an empty one on first use or after expiry.
func (s *sessionRepository) History(sessionID string) *session.History {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	entry, ok := s.items[sessionID]
	if !ok || s.expired(entry, now) {
		entry = historyEntry{history: session.NewHistory()}
	}
	entry.lastUpdate = now
	s.items[sessionID] = entry

	return entry.history
}

// Messages returns a copy of the history of sessionID, or nil when there is none. Reading
// neither creates a history nor extends its lifetime.
func (s *sessionRepository) Messages(sessionID string) []domain.ChatMessage {
	s.mu.Lock()
	defer s.mu.Unlock()

	entry, ok := s.items[sessionID]
	if !ok || s.expired(entry, s.now()) {
		return nil
	}
	return entry.history.Messages()
}

// Delete clears and forgets the history of sessionID.
func (s *sessionRepository) Delete(sessionID string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if entry, ok := s.items[sessionID]; ok {
		entry.history.Clear()
		delete(s.items, sessionID)
	}
}

// EvictExpired drops idle histories and reports how many were removed.
func (s *sessionRepository) EvictExpired() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	var removed int
	for id, entry := range s.items {
		if s.expired(entry, now) {
			delete(s.items, id)
			removed++
		}
	}
	return removed
}

// Len reports how many histories are held, expired ones included until evicted.
func (s *sessionRepository) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	return len(s.items)
}

func (s *sessionRepository) expired(entry historyEntry, now time.Time) bool {
	return s.ttl > 0 && now.Sub(entry.lastUpdate) > s.ttl
}
