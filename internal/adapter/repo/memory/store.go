package memory

import (
	"context"
	"sync"

	"aimapo/internal/app/ports"
)

type Store struct {
	mu        sync.RWMutex
	sessions  map[string]ports.GameSession
	execution map[string]ports.TurnExecutionRecord
	journal   map[string][]ports.JournalEntry
}

func NewStore() *Store {
	return &Store{
		sessions:  make(map[string]ports.GameSession),
		execution: make(map[string]ports.TurnExecutionRecord),
		journal:   make(map[string][]ports.JournalEntry),
	}
}

func execKey(sessionID, key string) string {
	return sessionID + "::" + key
}

type txKey struct{}

func inTx(ctx context.Context) bool {
	v, _ := ctx.Value(txKey{}).(bool)
	return v
}

// read and write take the store lock unless the caller already holds it
// through TxManager.
func (s *Store) read(ctx context.Context, fn func()) {
	if !inTx(ctx) {
		s.mu.RLock()
		defer s.mu.RUnlock()
	}
	fn()
}

func (s *Store) write(ctx context.Context, fn func() error) error {
	if !inTx(ctx) {
		s.mu.Lock()
		defer s.mu.Unlock()
	}
	return fn()
}

func (s *Store) SeedSession(session ports.GameSession) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[session.ID] = session
}
