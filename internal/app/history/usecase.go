package history

import (
	"context"
	"errors"
	"strings"

	"aimapo/internal/app/ports"
	"aimapo/internal/domain/city"
)

var ErrInvalidRequest = errors.New("invalid history request")

type UseCase struct {
	Sessions ports.SessionRepository
	Journal  ports.JournalRepository
}

func (u UseCase) Execute(ctx context.Context, req Request) (Response, error) {
	id := strings.TrimSpace(req.SessionID)
	if id == "" || req.FromTurn < 0 || req.ToTurn < 0 {
		return Response{}, ErrInvalidRequest
	}
	if req.ToTurn > 0 && req.FromTurn > req.ToTurn {
		return Response{}, ErrInvalidRequest
	}

	session, err := u.Sessions.Get(ctx, id)
	if err != nil {
		return Response{}, err
	}
	out := Response{Turns: filterByTurnWindow(session.State.History, req.FromTurn, req.ToTurn)}

	if u.Journal != nil && req.JournalLimit > 0 {
		entries, err := u.Journal.ListBySessionID(ctx, id, req.JournalLimit)
		if err != nil {
			return Response{}, err
		}
		out.Journal = filterJournal(entries, req.FromTurn, req.ToTurn)
	}
	return out, nil
}

func inWindow(turn, from, to int) bool {
	if from > 0 && turn < from {
		return false
	}
	if to > 0 && turn > to {
		return false
	}
	return true
}

func filterByTurnWindow(records []city.TurnRecord, from, to int) []city.TurnRecord {
	out := make([]city.TurnRecord, 0, len(records))
	for _, r := range records {
		if inWindow(r.Turn, from, to) {
			out = append(out, r)
		}
	}
	return out
}

func filterJournal(entries []ports.JournalEntry, from, to int) []ports.JournalEntry {
	if from <= 0 && to <= 0 {
		return entries
	}
	out := make([]ports.JournalEntry, 0, len(entries))
	for _, e := range entries {
		if inWindow(e.Turn, from, to) {
			out = append(out, e)
		}
	}
	return out
}
