package inmemory

import "testing"

func TestRecorderSnapshot(t *testing.T) {
	r := NewRecorder()
	r.RecordSuccess("advanced")
	r.RecordSuccess("event_triggered")
	r.RecordEvent("rainy-season-flood")
	r.RecordSuccess("replayed")
	r.RecordSuccess("game_over")
	r.RecordConflict()
	r.RecordFailure()

	s := r.Snapshot()
	if s.TurnTotal != 6 {
		t.Fatalf("expected total 6, got %d", s.TurnTotal)
	}
	if s.TurnSuccess != 4 {
		t.Fatalf("expected success 4, got %d", s.TurnSuccess)
	}
	if s.TurnConflict != 1 || s.TurnFailure != 1 {
		t.Fatalf("expected one conflict and one failure, got %+v", s)
	}
	if s.ByOutcome["advanced"] != 1 || s.ByOutcome["game_over"] != 1 || s.ByOutcome["replayed"] != 1 {
		t.Fatalf("unexpected outcome counts: %v", s.ByOutcome)
	}
	if s.ReplayRate != 0.25 {
		t.Fatalf("expected replay rate 0.25, got %v", s.ReplayRate)
	}
	if s.EventsTriggered["rainy-season-flood"] != 1 || len(s.EventsTriggered) != 1 {
		t.Fatalf("unexpected event counts: %v", s.EventsTriggered)
	}

	s.ByOutcome["advanced"] = 99
	s.EventsTriggered["rainy-season-flood"] = 99
	again := r.Snapshot()
	if again.ByOutcome["advanced"] != 1 || again.EventsTriggered["rainy-season-flood"] != 1 {
		t.Fatalf("snapshot must not alias recorder state")
	}
}

func TestRecorderEmptySnapshot(t *testing.T) {
	s := NewRecorder().Snapshot()
	if s.TurnTotal != 0 || s.ReplayRate != 0 {
		t.Fatalf("expected zero snapshot, got %+v", s)
	}
	if s.ByOutcome == nil || s.EventsTriggered == nil {
		t.Fatalf("maps must be non-nil so the payload encodes {}")
	}
}
