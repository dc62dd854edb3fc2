package game

import "aimapo/internal/app/ports"

type Request struct {
	Pledges  []string `json:"pledges"`
	Seed     *int64   `json:"seed,omitempty"`
	MaxTurns int      `json:"max_turns,omitempty"`
}

type Response struct {
	Session ports.GameSession `json:"session"`
}
