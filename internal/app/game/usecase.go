package game

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"aimapo/internal/app/ports"
	"aimapo/internal/domain/calendar"
	"aimapo/internal/domain/city"
)

const MaxPledges = 3

var (
	ErrInvalidRequest = errors.New("invalid new game request")
	ErrUnknownPledge  = errors.New("unknown pledge")
	ErrTooManyPledges = errors.New("too many pledges")
)

var log = logrus.WithField("module", "app/game")

type UseCase struct {
	TxManager ports.TxManager
	Sessions  ports.SessionRepository
	Journal   ports.JournalRepository
	Catalog   ports.CatalogProvider
	Calendar  calendar.Calendar
	NewID     func() string
	Seed      func() int64
	Now       func() time.Time
}

func (u UseCase) Execute(ctx context.Context, req Request) (Response, error) {
	if req.MaxTurns < 0 {
		return Response{}, ErrInvalidRequest
	}
	if len(req.Pledges) > MaxPledges {
		return Response{}, ErrTooManyPledges
	}

	cat, err := u.Catalog.Catalog(ctx)
	if err != nil {
		return Response{}, fmt.Errorf("load catalog: %w", err)
	}

	seen := map[string]struct{}{}
	pledges := make([]city.Pledge, 0, len(req.Pledges))
	for _, id := range req.Pledges {
		id = strings.TrimSpace(id)
		if _, dup := seen[id]; dup {
			continue
		}
		p, ok := cat.Pledge(id)
		if !ok {
			return Response{}, fmt.Errorf("%w: %s", ErrUnknownPledge, id)
		}
		seen[id] = struct{}{}
		pledges = append(pledges, p)
	}

	nowFn := u.Now
	if nowFn == nil {
		nowFn = time.Now
	}
	newID := u.NewID
	if newID == nil {
		newID = uuid.NewString
	}
	now := nowFn()
	var seed int64
	switch {
	case req.Seed != nil:
		seed = *req.Seed
	case u.Seed != nil:
		seed = u.Seed()
	default:
		seed = now.UnixNano()
	}

	session := ports.GameSession{
		ID:          newID(),
		Seed:        seed,
		State:       city.NewGameState(cat.Districts, cat.Finance, pledges, req.MaxTurns, u.Calendar),
		EventLedger: map[string]int{},
		Version:     1,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	err = u.TxManager.RunInTx(ctx, func(txCtx context.Context) error {
		if err := u.Sessions.Create(txCtx, session); err != nil {
			return err
		}
		if u.Journal == nil {
			return nil
		}
		return u.Journal.Append(txCtx, session.ID, []ports.JournalEntry{{
			Type:       "game_started",
			OccurredAt: now,
			Payload: map[string]any{
				"pledges":   req.Pledges,
				"max_turns": session.State.Meta.MaxTurns,
				"districts": len(session.State.Districts),
			},
		}})
	})
	if err != nil {
		return Response{}, err
	}

	log.WithFields(logrus.Fields{
		"session_id": session.ID,
		"pledges":    len(pledges),
		"population": session.State.TotalPopulation(),
	}).Info("game started")
	return Response{Session: session}, nil
}
