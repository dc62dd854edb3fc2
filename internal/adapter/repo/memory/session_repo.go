package memory

import (
	"context"

	"aimapo/internal/app/ports"
)

type SessionRepo struct {
	store *Store
}

func NewSessionRepo(store *Store) SessionRepo {
	return SessionRepo{store: store}
}

func (r SessionRepo) Get(ctx context.Context, sessionID string) (ports.GameSession, error) {
	var (
		session ports.GameSession
		ok      bool
	)
	r.store.read(ctx, func() {
		session, ok = r.store.sessions[sessionID]
	})
	if !ok {
		return ports.GameSession{}, ports.ErrNotFound
	}
	return session, nil
}

func (r SessionRepo) Create(ctx context.Context, session ports.GameSession) error {
	return r.store.write(ctx, func() error {
		if _, exists := r.store.sessions[session.ID]; exists {
			return ports.ErrConflict
		}
		r.store.sessions[session.ID] = session
		return nil
	})
}

func (r SessionRepo) SaveWithVersion(ctx context.Context, session ports.GameSession, expectedVersion int64) error {
	return r.store.write(ctx, func() error {
		current, ok := r.store.sessions[session.ID]
		if !ok {
			return ports.ErrNotFound
		}
		if current.Version != expectedVersion {
			return ports.ErrConflict
		}
		r.store.sessions[session.ID] = session
		return nil
	})
}
