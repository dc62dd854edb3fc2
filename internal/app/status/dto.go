package status

import (
	"aimapo/internal/app/ports"
	"aimapo/internal/domain/city"
)

type Request struct {
	SessionID string
}

// Deltas compare the latest turn record with the one before it. On the
// first turn they compare against the starting state.
type Deltas struct {
	Population         int     `json:"population"`
	Businesses         int     `json:"businesses"`
	AvgSatisfaction    float64 `json:"avg_satisfaction"`
	FiscalIndependence float64 `json:"fiscal_independence"`
	FreeBudget         float64 `json:"free_budget"`
}

type Response struct {
	SessionID string              `json:"session_id"`
	State     city.GameState      `json:"state"`
	Pending   *ports.PendingEvent `json:"pending,omitempty"`
	Deltas    *Deltas             `json:"deltas,omitempty"`
	GameOver  bool                `json:"game_over"`
	Score     *city.PledgeScore   `json:"score,omitempty"`
}
