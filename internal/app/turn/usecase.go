package turn

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/samber/lo"
	"github.com/sirupsen/logrus"

	"aimapo/internal/app/ports"
	"aimapo/internal/domain/city"
)

const AllocationTolerance = 0.5

var (
	ErrInvalidRequest      = errors.New("invalid turn request")
	ErrInvalidAllocation   = errors.New("invalid budget allocation")
	ErrUnknownPolicy       = errors.New("unknown policy")
	ErrPolicyAlreadyActive = errors.New("policy already active")
	ErrPolicyNotActive     = errors.New("policy not active")
	ErrPolicyCapReached    = errors.New("active policy cap reached")
	ErrEventChoiceRequired = errors.New("pending event requires a choice")
	ErrNoPendingEvent      = errors.New("no pending event")
	ErrUnknownEventChoice  = errors.New("unknown event choice")
	ErrGameOver            = errors.New("game over")
)

var log = logrus.WithField("module", "app/turn")

type UseCase struct {
	TxManager  ports.TxManager
	Sessions   ports.SessionRepository
	Executions ports.TurnExecutionRepository
	Journal    ports.JournalRepository
	Catalog    ports.CatalogProvider
	Metrics    ports.TurnMetrics
	Engine     city.TurnEngine
	Now        func() time.Time
}

func (u UseCase) Execute(ctx context.Context, req Request) (Response, error) {
	req.SessionID = strings.TrimSpace(req.SessionID)
	req.IdempotencyKey = strings.TrimSpace(req.IdempotencyKey)
	if req.SessionID == "" {
		return Response{}, ErrInvalidRequest
	}
	if req.Allocation != nil {
		if err := validateAllocation(*req.Allocation); err != nil {
			return Response{}, err
		}
	}

	cat, err := u.Catalog.Catalog(ctx)
	if err != nil {
		return Response{}, fmt.Errorf("load catalog: %w", err)
	}

	nowFn := u.Now
	if nowFn == nil {
		nowFn = time.Now
	}

	var (
		out      Response
		replayed bool
	)
	err = u.TxManager.RunInTx(ctx, func(txCtx context.Context) error {
		if req.IdempotencyKey != "" && u.Executions != nil {
			exec, err := u.Executions.GetByIdempotencyKey(txCtx, req.SessionID, req.IdempotencyKey)
			if err == nil && exec != nil {
				out = Response{TurnResult: exec.Result, State: exec.State, Replayed: true}
				if exec.Result.GameOver {
					score := city.ScorePledges(exec.State)
					out.Score = &score
				}
				replayed = true
				return nil
			}
			if err != nil && !errors.Is(err, ports.ErrNotFound) {
				return err
			}
		}

		session, err := u.Sessions.Get(txCtx, req.SessionID)
		if err != nil {
			return err
		}
		actions, err := resolveActions(req, session, cat)
		if err != nil {
			return err
		}

		next := u.Engine.Tick(session.State, actions, cat.Adjacency)

		updated := session
		updated.State = next
		updated.Pending = nil
		updated.EventLedger = cloneLedger(session.EventLedger)
		updated.Version = session.Version + 1
		updated.UpdatedAt = nowFn()
		scheduler := Scheduler{Events: cat.Events}
		if pending := scheduler.Next(session.Seed, next, updated.EventLedger); pending != nil {
			updated.Pending = pending
			updated.EventLedger[pending.EventID] = pending.TriggeredAt
		}

		if err := u.Sessions.SaveWithVersion(txCtx, updated, session.Version); err != nil {
			return err
		}

		result := ports.TurnResult{
			Turn:     next.Meta.Turn,
			Record:   next.History[len(next.History)-1],
			Pending:  updated.Pending,
			GameOver: next.GameOver(),
		}
		if u.Executions != nil && req.IdempotencyKey != "" {
			if err := u.Executions.SaveExecution(txCtx, ports.TurnExecutionRecord{
				SessionID:      req.SessionID,
				IdempotencyKey: req.IdempotencyKey,
				Turn:           next.Meta.Turn,
				Result:         result,
				State:          next,
				AppliedAt:      updated.UpdatedAt,
			}); err != nil {
				return err
			}
		}
		if u.Journal != nil {
			if err := u.Journal.Append(txCtx, req.SessionID, journalEntries(req, actions, result, updated.UpdatedAt)); err != nil {
				return err
			}
		}

		out = Response{TurnResult: result, State: next}
		if result.GameOver {
			score := city.ScorePledges(next)
			out.Score = &score
		}
		return nil
	})
	if err != nil {
		if u.Metrics != nil {
			if errors.Is(err, ports.ErrConflict) {
				u.Metrics.RecordConflict()
			} else {
				u.Metrics.RecordFailure()
			}
		}
		log.WithError(err).WithField("session_id", req.SessionID).Warn("turn rejected")
		return Response{}, err
	}
	if u.Metrics != nil {
		switch {
		case replayed:
			u.Metrics.RecordSuccess("replayed")
		default:
			u.Metrics.RecordSuccess(outcome(out.TurnResult))
			if out.Pending != nil {
				u.Metrics.RecordEvent(out.Pending.EventID)
			}
		}
	}

	log.WithFields(logrus.Fields{
		"session_id": req.SessionID,
		"turn":       out.Turn,
		"population": out.Record.TotalPopulation,
		"avg_sat":    out.Record.AvgSatisfaction,
		"pending":    out.Pending != nil,
		"replayed":   replayed,
	}).Info("turn advanced")
	return out, nil
}

func outcome(r ports.TurnResult) string {
	switch {
	case r.GameOver:
		return "game_over"
	case r.Pending != nil:
		return "event_triggered"
	default:
		return "advanced"
	}
}

func validateAllocation(a city.Allocation) error {
	for _, c := range city.AllBudgetCategories {
		v := a.Get(c)
		if v < 0 || math.IsNaN(v) || math.IsInf(v, 0) {
			return fmt.Errorf("%w: %s is %v", ErrInvalidAllocation, c, v)
		}
	}
	if total := a.Total(); math.Abs(total-100) > AllocationTolerance {
		return fmt.Errorf("%w: total %.2f, want 100", ErrInvalidAllocation, total)
	}
	return nil
}

// resolveActions validates the request against the session and catalog and
// turns catalog references into the resolved actions a tick consumes.
func resolveActions(req Request, session ports.GameSession, cat ports.Catalog) (city.Actions, error) {
	state := session.State
	if state.GameOver() {
		return city.Actions{}, ErrGameOver
	}

	actions := city.Actions{Allocation: req.Allocation}

	switch {
	case session.Pending != nil && req.EventChoice == nil:
		return city.Actions{}, fmt.Errorf("%w: %s", ErrEventChoiceRequired, session.Pending.EventID)
	case session.Pending == nil && req.EventChoice != nil:
		return city.Actions{}, ErrNoPendingEvent
	case session.Pending != nil:
		if strings.TrimSpace(req.EventChoice.EventID) != session.Pending.EventID {
			return city.Actions{}, fmt.Errorf("%w: event %s is not pending", ErrUnknownEventChoice, req.EventChoice.EventID)
		}
		ev, ok := cat.Event(session.Pending.EventID)
		if !ok {
			return city.Actions{}, fmt.Errorf("%w: event %s", ErrUnknownEventChoice, session.Pending.EventID)
		}
		choice, ok := ev.Choice(strings.TrimSpace(req.EventChoice.ChoiceID))
		if !ok {
			return city.Actions{}, fmt.Errorf("%w: %s/%s", ErrUnknownEventChoice, ev.ID, req.EventChoice.ChoiceID)
		}
		actions.EventChoice = &city.EventChoice{
			EventID:   ev.ID,
			ChoiceID:  choice.ID,
			Districts: append([]string(nil), session.Pending.Districts...),
			Duration:  choice.Duration,
			Cost:      choice.Cost,
			Effects:   choice.Effects.Clone(),
		}
	}

	activeIDs := lo.Map(state.ActivePolicies, func(ap city.ActivePolicy, _ int) string { return ap.Policy.ID })
	for _, id := range req.Cancel {
		id = strings.TrimSpace(id)
		if !lo.Contains(activeIDs, id) {
			return city.Actions{}, fmt.Errorf("%w: %s", ErrPolicyNotActive, id)
		}
		actions.CancelPolicy = append(actions.CancelPolicy, id)
	}
	remaining := lo.Without(activeIDs, actions.CancelPolicy...)

	for _, id := range req.Activate {
		id = strings.TrimSpace(id)
		def, ok := cat.Policy(id)
		if !ok {
			return city.Actions{}, fmt.Errorf("%w: %s", ErrUnknownPolicy, id)
		}
		if lo.Contains(remaining, id) {
			return city.Actions{}, fmt.Errorf("%w: %s", ErrPolicyAlreadyActive, id)
		}
		if len(remaining) >= city.MaxActivePolicies {
			return city.Actions{}, fmt.Errorf("%w: %d active", ErrPolicyCapReached, len(remaining))
		}
		remaining = append(remaining, id)
		actions.ActivatePolicy = append(actions.ActivatePolicy, def)
	}
	return actions, nil
}

func cloneLedger(in map[string]int) map[string]int {
	out := make(map[string]int, len(in))
	for k, v := range in {
		out[k] = v
	}
	return out
}

func journalEntries(req Request, actions city.Actions, result ports.TurnResult, at time.Time) []ports.JournalEntry {
	var entries []ports.JournalEntry
	if actions.EventChoice != nil {
		entries = append(entries, ports.JournalEntry{
			Type:       "event_resolved",
			Turn:       result.Turn,
			OccurredAt: at,
			Payload:    map[string]any{"event_id": actions.EventChoice.EventID, "choice_id": actions.EventChoice.ChoiceID},
		})
	}
	for _, id := range actions.CancelPolicy {
		entries = append(entries, ports.JournalEntry{Type: "policy_cancelled", Turn: result.Turn, OccurredAt: at, Payload: map[string]any{"policy_id": id}})
	}
	for _, def := range actions.ActivatePolicy {
		entries = append(entries, ports.JournalEntry{Type: "policy_activated", Turn: result.Turn, OccurredAt: at, Payload: map[string]any{"policy_id": def.ID}})
	}
	entries = append(entries, ports.JournalEntry{
		Type:       "turn_advanced",
		Turn:       result.Turn,
		OccurredAt: at,
		Payload: map[string]any{
			"population":       result.Record.TotalPopulation,
			"avg_satisfaction": result.Record.AvgSatisfaction,
			"allocation_set":   req.Allocation != nil,
		},
	})
	if result.Pending != nil {
		entries = append(entries, ports.JournalEntry{
			Type:       "event_triggered",
			Turn:       result.Turn,
			OccurredAt: at,
			Payload:    map[string]any{"event_id": result.Pending.EventID},
		})
	}
	if result.GameOver {
		entries = append(entries, ports.JournalEntry{Type: "game_over", Turn: result.Turn, OccurredAt: at})
	}
	return entries
}
