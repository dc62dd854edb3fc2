package memory

import (
	"context"

	"aimapo/internal/app/ports"
)

type TurnExecutionRepo struct {
	store *Store
}

func NewTurnExecutionRepo(store *Store) TurnExecutionRepo {
	return TurnExecutionRepo{store: store}
}

func (r TurnExecutionRepo) GetByIdempotencyKey(ctx context.Context, sessionID, key string) (*ports.TurnExecutionRecord, error) {
	var (
		rec ports.TurnExecutionRecord
		ok  bool
	)
	r.store.read(ctx, func() {
		rec, ok = r.store.execution[execKey(sessionID, key)]
	})
	if !ok {
		return nil, ports.ErrNotFound
	}
	return &rec, nil
}

func (r TurnExecutionRepo) SaveExecution(ctx context.Context, execution ports.TurnExecutionRecord) error {
	k := execKey(execution.SessionID, execution.IdempotencyKey)
	return r.store.write(ctx, func() error {
		if _, exists := r.store.execution[k]; exists {
			return ports.ErrConflict
		}
		r.store.execution[k] = execution
		return nil
	})
}
