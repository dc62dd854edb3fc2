package turn

import (
	"golang.org/x/exp/rand"

	"aimapo/internal/app/ports"
	"aimapo/internal/domain/city"
)

// Scheduler decides which catalog event, if any, fires after a tick.
// Randomness comes from a source seeded with the session seed plus the
// turn, so a replayed session triggers the same events.
type Scheduler struct {
	Events []city.GameEvent
}

func (s Scheduler) rng(seed int64, turn int) *rand.Rand {
	return rand.New(rand.NewSource(uint64(seed) + uint64(turn)))
}

// Next returns the first event in catalog order whose trigger, cooldown and
// probability all pass for the state's current turn.
func (s Scheduler) Next(seed int64, state city.GameState, ledger map[string]int) *ports.PendingEvent {
	if state.GameOver() {
		return nil
	}
	turn := state.Meta.Turn
	rng := s.rng(seed, turn)
	for _, ev := range s.Events {
		if !available(ev, turn, ledger) || !triggered(ev.Trigger, state) {
			continue
		}
		if p := ev.Probability; p > 0 && p < 1 && rng.Float64() >= p {
			continue
		}
		return &ports.PendingEvent{
			EventID:     ev.ID,
			TriggeredAt: turn,
			Districts:   append([]string(nil), ev.Districts...),
		}
	}
	return nil
}

func available(ev city.GameEvent, turn int, ledger map[string]int) bool {
	last, fired := ledger[ev.ID]
	if !fired {
		return true
	}
	if ev.OneShot {
		return false
	}
	return turn-last >= ev.Cooldown
}

func triggered(tr city.Trigger, state city.GameState) bool {
	turn := state.Meta.Turn
	switch tr.Kind {
	case city.TriggerPeriodic:
		if tr.Every <= 0 || turn < tr.Offset {
			return false
		}
		return (turn-tr.Offset)%tr.Every == 0
	case city.TriggerThreshold:
		v, ok := state.Metric(tr.Metric)
		if !ok {
			return false
		}
		if tr.Below != nil && v < *tr.Below {
			return true
		}
		return tr.Above != nil && v > *tr.Above
	case city.TriggerRandom:
		return true
	case city.TriggerTurn:
		return turn == tr.Turn
	default:
		return false
	}
}
