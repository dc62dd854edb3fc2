package turn

import (
	"aimapo/internal/app/ports"
	"aimapo/internal/domain/city"
)

type EventChoiceRequest struct {
	EventID  string
	ChoiceID string
}

// Request is built by the transport; it carries no wire tags.
type Request struct {
	SessionID      string
	IdempotencyKey string
	Allocation     *city.Allocation
	Activate       []string
	Cancel         []string
	EventChoice    *EventChoiceRequest
}

type Response struct {
	ports.TurnResult
	State    city.GameState    `json:"state"`
	Score    *city.PledgeScore `json:"score,omitempty"`
	Replayed bool              `json:"replayed,omitempty"`
}
