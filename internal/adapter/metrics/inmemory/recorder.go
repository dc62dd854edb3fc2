package inmemory

import "sync"

// Snapshot is the /ops/kpi payload. EventsTriggered counts scheduler
// raises per catalog event id.
type Snapshot struct {
	TurnTotal       uint64            `json:"turn_total"`
	TurnSuccess     uint64            `json:"turn_success"`
	TurnConflict    uint64            `json:"turn_conflict"`
	TurnFailure     uint64            `json:"turn_failure"`
	ReplayRate      float64           `json:"replay_rate"`
	ByOutcome       map[string]uint64 `json:"by_outcome"`
	EventsTriggered map[string]uint64 `json:"events_triggered"`
}

type Recorder struct {
	mu        sync.Mutex
	success   uint64
	conflict  uint64
	failure   uint64
	byOutcome map[string]uint64
	events    map[string]uint64
}

func NewRecorder() *Recorder {
	return &Recorder{
		byOutcome: map[string]uint64{},
		events:    map[string]uint64{},
	}
}

func (r *Recorder) RecordSuccess(outcome string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.success++
	r.byOutcome[outcome]++
}

func (r *Recorder) RecordEvent(eventID string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events[eventID]++
}

func (r *Recorder) RecordConflict() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.conflict++
}

func (r *Recorder) RecordFailure() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.failure++
}

func copyCounts(in map[string]uint64) map[string]uint64 {
	out := make(map[string]uint64, len(in))
	for k, v := range in {
		out[k] = v
	}
	return out
}

func (r *Recorder) Snapshot() Snapshot {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := Snapshot{
		TurnSuccess:     r.success,
		TurnConflict:    r.conflict,
		TurnFailure:     r.failure,
		TurnTotal:       r.success + r.conflict + r.failure,
		ByOutcome:       copyCounts(r.byOutcome),
		EventsTriggered: copyCounts(r.events),
	}
	if r.success > 0 {
		out.ReplayRate = float64(r.byOutcome["replayed"]) / float64(r.success)
	}
	return out
}

func (r *Recorder) SnapshotAny() any {
	return r.Snapshot()
}
