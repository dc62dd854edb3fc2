package ports

import (
	"context"
	"time"

	"aimapo/internal/domain/city"
)

// PendingEvent is a triggered event waiting for a choice. No turn advances
// while one is outstanding.
type PendingEvent struct {
	EventID     string   `json:"event_id"`
	TriggeredAt int      `json:"triggered_at"`
	Districts   []string `json:"districts,omitempty"`
}

type GameSession struct {
	ID          string         `json:"id"`
	Seed        int64          `json:"seed"`
	State       city.GameState `json:"state"`
	Pending     *PendingEvent  `json:"pending,omitempty"`
	EventLedger map[string]int `json:"event_ledger"`
	Version     int64          `json:"version"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
}

type SessionRepository interface {
	Get(ctx context.Context, sessionID string) (GameSession, error)
	Create(ctx context.Context, session GameSession) error
	SaveWithVersion(ctx context.Context, session GameSession, expectedVersion int64) error
}

type TurnExecutionRecord struct {
	SessionID      string
	IdempotencyKey string
	Turn           int
	Result         TurnResult
	State          city.GameState
	AppliedAt      time.Time
}

type TurnResult struct {
	Turn     int             `json:"turn"`
	Record   city.TurnRecord `json:"record"`
	Pending  *PendingEvent   `json:"pending,omitempty"`
	GameOver bool            `json:"game_over"`
}

type TurnExecutionRepository interface {
	GetByIdempotencyKey(ctx context.Context, sessionID, key string) (*TurnExecutionRecord, error)
	SaveExecution(ctx context.Context, execution TurnExecutionRecord) error
}

type JournalEntry struct {
	Type       string         `json:"type"`
	Turn       int            `json:"turn"`
	OccurredAt time.Time      `json:"occurred_at"`
	Payload    map[string]any `json:"payload,omitempty"`
}

type JournalRepository interface {
	Append(ctx context.Context, sessionID string, entries []JournalEntry) error
	ListBySessionID(ctx context.Context, sessionID string, limit int) ([]JournalEntry, error)
}
