package city

import (
	"math"
	"testing"
)

func TestBalancedScenarioStaysStable(t *testing.T) {
	start := fixtureState()
	states := runTurns(start, fixtureAdjacency(), DefaultMaxTurns, func(int) Actions {
		return Actions{Allocation: balanced()}
	})
	final := states[len(states)-1]

	if !final.GameOver() {
		t.Fatalf("expected game over after %d turns, meta=%+v", DefaultMaxTurns, final.Meta)
	}
	base := float64(start.TotalPopulation())
	for turn, s := range states {
		swing := math.Abs(float64(s.TotalPopulation())-base) / base
		if swing > 0.3 {
			t.Fatalf("turn %d: population swing %.3f exceeds 30%%", turn, swing)
		}
		avg := s.AverageSatisfaction()
		if avg <= 20 || avg >= 95 {
			t.Fatalf("turn %d: average satisfaction %v left (20, 95)", turn, avg)
		}
	}
	if len(final.History) != DefaultMaxTurns {
		t.Fatalf("expected %d history rows, got %d", DefaultMaxTurns, len(final.History))
	}
}
