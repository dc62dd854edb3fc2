package memory

import (
	"context"

	"aimapo/internal/app/ports"
)

type JournalRepo struct {
	store *Store
}

func NewJournalRepo(store *Store) JournalRepo {
	return JournalRepo{store: store}
}

func (r JournalRepo) Append(ctx context.Context, sessionID string, entries []ports.JournalEntry) error {
	return r.store.write(ctx, func() error {
		r.store.journal[sessionID] = append(r.store.journal[sessionID], entries...)
		return nil
	})
}

// ListBySessionID returns the most recent entries, oldest first. A limit of
// zero or less returns everything.
func (r JournalRepo) ListBySessionID(ctx context.Context, sessionID string, limit int) ([]ports.JournalEntry, error) {
	var out []ports.JournalEntry
	r.store.read(ctx, func() {
		all := r.store.journal[sessionID]
		if limit > 0 && len(all) > limit {
			all = all[len(all)-limit:]
		}
		out = make([]ports.JournalEntry, len(all))
		copy(out, all)
	})
	return out, nil
}
