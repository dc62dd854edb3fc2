package city

import (
	"math"
	"testing"
)

func TestRecoveryGainCurve(t *testing.T) {
	cases := map[float64]float64{0: 0, 0.5: 0.35, 1: 0.7, 2: 1.0, 3: 0.7 + 0.6*2.0/3.0}
	for ratio, want := range cases {
		if got := recoveryGain(ratio); math.Abs(got-want) > 1e-9 {
			t.Fatalf("ratio %v: expected %v, got %v", ratio, want, got)
		}
	}
}

func TestBudgetRecoveryAtOptimalOffsetsPartOfDecay(t *testing.T) {
	rec := budgetRecovery(ComputeBudgetEffects(BalancedAllocation(), 4500, 4500))
	for _, f := range AllFactors {
		got := rec.Get(f)
		if math.Abs(got-0.35) > 1e-9 {
			t.Fatalf("%s: expected recovery 0.35, got %v", f, got)
		}
		if got >= SatisfactionDecay {
			t.Fatalf("%s: optimal spend should not fully offset decay", f)
		}
	}
}

func TestDeclinePenalty(t *testing.T) {
	if got := declinePenalty(96, 100); got != 0 {
		t.Fatalf("expected no penalty above threshold, got %v", got)
	}
	if got := declinePenalty(94, 100); math.Abs(got-0.1) > 1e-9 {
		t.Fatalf("expected penalty 0.1, got %v", got)
	}
	if got := declinePenalty(50, 100); got != BaselinePenaltyMax {
		t.Fatalf("expected capped penalty, got %v", got)
	}
	if got := declinePenalty(10, 0); got != 0 {
		t.Fatalf("expected no penalty without a baseline, got %v", got)
	}
}

func TestConvergenceMovesTowardNeighbors(t *testing.T) {
	a := fixtureDistrict("a", AgeGroups{MidAge: 1000}, 10, 10, 50)
	b := fixtureDistrict("b", AgeGroups{MidAge: 1000}, 10, 10, 50)
	a.Factors.Economy = 40
	b.Factors.Economy = 80

	adj := NewAdjacencyGraph(map[string]map[string]float64{"a": {"b": 0.5}})
	out := convergeFactors([]District{a, b}, adj)
	if math.Abs(out[0].Factors.Economy-41) > 1e-9 {
		t.Fatalf("expected economy 41 after convergence, got %v", out[0].Factors.Economy)
	}
	if out[1].Factors.Economy != 80 {
		t.Fatalf("district without outgoing edges must not move, got %v", out[1].Factors.Economy)
	}
}

func TestAggregateSatisfaction(t *testing.T) {
	empty := District{Factors: Factors{Economy: 90}}
	if got := aggregateSatisfaction(empty); got != DefaultSatisfaction {
		t.Fatalf("expected default for empty district, got %v", got)
	}

	d := fixtureDistrict("x", AgeGroups{Child: 100, Youth: 200, Senior: 50, Elderly: 50}, 1, 1, 1)
	d.Factors = Factors{Economy: 60, Transport: 60, Housing: 60, Safety: 60, Culture: 60, Welfare: 60}
	if got := aggregateSatisfaction(d); got != 60 {
		t.Fatalf("expected uniform factors to aggregate to 60, got %v", got)
	}

	d.Factors = Factors{Economy: 100}
	// youth weighs economy .25, midAge .20, senior .15, elderly .10
	want := (200*25.0 + 100*20.0 + 50*15.0 + 50*10.0) / 400
	if got := aggregateSatisfaction(d); math.Abs(got-round(want, 1)) > 1e-9 {
		t.Fatalf("expected %v, got %v", round(want, 1), got)
	}
}

func TestSatisfactionPolicyDeltaAndClamp(t *testing.T) {
	d := fixtureDistrict("x", AgeGroups{MidAge: 1000}, 10, 10, 50)
	d.Factors.Safety = 99
	view := EffectView{ByDistrict: map[string]Effects{"x": {EffectSatSafety: 30, EffectSatHousing: -200}}}

	out := SatisfactionModel{}.Apply([]District{d}, view, NewAdjacencyGraph(nil), nil)
	if out[0].Factors.Safety != 100 {
		t.Fatalf("expected safety clamped to 100, got %v", out[0].Factors.Safety)
	}
	if out[0].Factors.Housing != 0 {
		t.Fatalf("expected housing clamped to 0, got %v", out[0].Factors.Housing)
	}
}
