package status

import (
	"context"
	"errors"
	"math"
	"strings"

	"aimapo/internal/app/ports"
	"aimapo/internal/domain/city"
)

var ErrInvalidRequest = errors.New("invalid status request")

type UseCase struct {
	TxManager ports.TxManager
	Sessions  ports.SessionRepository
}

func (u UseCase) Execute(ctx context.Context, req Request) (Response, error) {
	id := strings.TrimSpace(req.SessionID)
	if id == "" {
		return Response{}, ErrInvalidRequest
	}

	var session ports.GameSession
	load := func(txCtx context.Context) error {
		var err error
		session, err = u.Sessions.Get(txCtx, id)
		return err
	}
	var err error
	if u.TxManager != nil {
		err = u.TxManager.RunInTx(ctx, load)
	} else {
		err = load(ctx)
	}
	if err != nil {
		return Response{}, err
	}

	state := session.State
	out := Response{
		SessionID: session.ID,
		State:     state,
		Pending:   session.Pending,
		Deltas:    turnDeltas(state),
		GameOver:  state.GameOver(),
	}
	if out.GameOver {
		score := city.ScorePledges(state)
		out.Score = &score
	}
	return out, nil
}

func turnDeltas(s city.GameState) *Deltas {
	n := len(s.History)
	if n == 0 {
		return nil
	}
	last := s.History[n-1]
	if n == 1 {
		// the turn-0 reference is only kept as the captured baseline
		base := s.Finance.Baseline
		return &Deltas{
			Population: last.TotalPopulation - base.TotalPopulation,
			Businesses: last.TotalBusinesses - base.TotalBusinesses,
			FreeBudget: roundDelta(last.FreeBudget - base.FreeBudget),
		}
	}
	prev := s.History[n-2]
	return &Deltas{
		Population:         last.TotalPopulation - prev.TotalPopulation,
		Businesses:         last.TotalBusinesses - prev.TotalBusinesses,
		AvgSatisfaction:    roundDelta(last.AvgSatisfaction - prev.AvgSatisfaction),
		FiscalIndependence: roundDelta(last.FiscalIndependence - prev.FiscalIndependence),
		FreeBudget:         roundDelta(last.FreeBudget - prev.FreeBudget),
	}
}

func roundDelta(v float64) float64 {
	return math.Round(v*100) / 100
}
