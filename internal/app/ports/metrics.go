package ports

// TurnMetrics counts turn outcomes. RecordEvent is called once per event
// the scheduler raises, never for replays.
type TurnMetrics interface {
	RecordSuccess(outcome string)
	RecordEvent(eventID string)
	RecordConflict()
	RecordFailure()
}
