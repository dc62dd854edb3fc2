package history

import (
	"aimapo/internal/app/ports"
	"aimapo/internal/domain/city"
)

// Request selects turn records in [FromTurn, ToTurn]. Zero bounds are open.
type Request struct {
	SessionID    string
	FromTurn     int
	ToTurn       int
	JournalLimit int
}

type Response struct {
	Turns   []city.TurnRecord    `json:"turns"`
	Journal []ports.JournalEntry `json:"journal,omitempty"`
}
