package history

import (
	"context"
	"errors"
	"testing"
	"time"

	"aimapo/internal/app/ports"
	"aimapo/internal/domain/city"
)

func TestUseCase_FiltersTurnWindow(t *testing.T) {
	records := make([]city.TurnRecord, 0, 6)
	for turn := 1; turn <= 6; turn++ {
		records = append(records, city.TurnRecord{Turn: turn, TotalPopulation: 1000 + turn})
	}
	uc := UseCase{Sessions: fakeSessions{session: ports.GameSession{ID: "s1", State: city.GameState{History: records}}}}

	out, err := uc.Execute(context.Background(), Request{SessionID: "s1", FromTurn: 2, ToTurn: 4})
	if err != nil {
		t.Fatalf("Execute error: %v", err)
	}
	if len(out.Turns) != 3 || out.Turns[0].Turn != 2 || out.Turns[2].Turn != 4 {
		t.Fatalf("unexpected window: %+v", out.Turns)
	}

	out, err = uc.Execute(context.Background(), Request{SessionID: "s1", FromTurn: 5})
	if err != nil {
		t.Fatalf("Execute error: %v", err)
	}
	if len(out.Turns) != 2 || out.Turns[0].Turn != 5 {
		t.Fatalf("expected open upper bound, got %+v", out.Turns)
	}

	out, err = uc.Execute(context.Background(), Request{SessionID: "s1"})
	if err != nil {
		t.Fatalf("Execute error: %v", err)
	}
	if len(out.Turns) != 6 {
		t.Fatalf("expected full history, got %d", len(out.Turns))
	}
}

func TestUseCase_ListsJournalWithinWindow(t *testing.T) {
	at := time.Unix(100, 0)
	journal := fakeJournal{entries: []ports.JournalEntry{
		{Type: "game_started", Turn: 0, OccurredAt: at},
		{Type: "turn_advanced", Turn: 1, OccurredAt: at},
		{Type: "event_triggered", Turn: 2, OccurredAt: at},
		{Type: "turn_advanced", Turn: 3, OccurredAt: at},
	}}
	uc := UseCase{Sessions: fakeSessions{session: ports.GameSession{ID: "s1"}}, Journal: journal}

	out, err := uc.Execute(context.Background(), Request{SessionID: "s1", FromTurn: 2, JournalLimit: 10})
	if err != nil {
		t.Fatalf("Execute error: %v", err)
	}
	if len(out.Journal) != 2 || out.Journal[0].Type != "event_triggered" {
		t.Fatalf("unexpected journal: %+v", out.Journal)
	}

	out, err = uc.Execute(context.Background(), Request{SessionID: "s1"})
	if err != nil {
		t.Fatalf("Execute error: %v", err)
	}
	if out.Journal != nil {
		t.Fatalf("journal should only be read when a limit is given")
	}
}

func TestUseCase_RejectsBadWindow(t *testing.T) {
	uc := UseCase{Sessions: fakeSessions{}}
	for _, req := range []Request{
		{},
		{SessionID: "s1", FromTurn: -1},
		{SessionID: "s1", FromTurn: 5, ToTurn: 2},
	} {
		if _, err := uc.Execute(context.Background(), req); !errors.Is(err, ErrInvalidRequest) {
			t.Fatalf("expected ErrInvalidRequest for %+v, got %v", req, err)
		}
	}
}

func TestUseCase_PropagatesNotFound(t *testing.T) {
	uc := UseCase{Sessions: fakeSessions{err: ports.ErrNotFound}}
	if _, err := uc.Execute(context.Background(), Request{SessionID: "gone"}); !errors.Is(err, ports.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

type fakeSessions struct {
	session ports.GameSession
	err     error
}

func (r fakeSessions) Get(_ context.Context, _ string) (ports.GameSession, error) {
	return r.session, r.err
}

func (r fakeSessions) Create(_ context.Context, _ ports.GameSession) error {
	return nil
}

func (r fakeSessions) SaveWithVersion(_ context.Context, _ ports.GameSession, _ int64) error {
	return nil
}

type fakeJournal struct {
	entries []ports.JournalEntry
}

func (r fakeJournal) Append(_ context.Context, _ string, _ []ports.JournalEntry) error {
	return nil
}

func (r fakeJournal) ListBySessionID(_ context.Context, _ string, _ int) ([]ports.JournalEntry, error) {
	return r.entries, nil
}
