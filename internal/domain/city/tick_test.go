package city

import (
	"encoding/json"
	"math"
	"testing"
)

func stressPolicies() []PolicyDefinition {
	return []PolicyDefinition{
		{
			ID:       "magnet",
			Cost:     120,
			Duration: 0,
			Targets:  []string{"alpha"},
			Effects: Effects{
				EffectMigration:    0.03,
				EffectNewBizBonus:  0.04,
				EffectRentPressure: 0.02,
			},
		},
		{
			ID:       "clearance",
			Cost:     80,
			Duration: 12,
			Targets:  []string{"charlie"},
			Effects: Effects{
				EffectDisplacement: 0.05,
				EffectSatHousing:   -3,
			},
		},
	}
}

func TestTickConservesPopulationAndBounds(t *testing.T) {
	states := runTurns(fixtureState(), fixtureAdjacency(), 48, func(turn int) Actions {
		if turn == 0 {
			return Actions{Allocation: balanced(), ActivatePolicy: stressPolicies()}
		}
		return Actions{}
	})

	for turn, s := range states {
		for _, d := range s.Districts {
			if d.Population != d.PopulationByAge.Sum() {
				t.Fatalf("turn %d %s: population %d != bucket sum %d", turn, d.ID, d.Population, d.PopulationByAge.Sum())
			}
			for _, f := range AllFactors {
				if v := d.Factors.Get(f); v < 0 || v > 100 {
					t.Fatalf("turn %d %s: factor %s out of range: %v", turn, d.ID, f, v)
				}
			}
			if d.Satisfaction < 0 || d.Satisfaction > 100 {
				t.Fatalf("turn %d %s: satisfaction out of range: %v", turn, d.ID, d.Satisfaction)
			}
			if d.RentPressure < 0 || d.RentPressure > RentMax {
				t.Fatalf("turn %d %s: rent pressure out of range: %v", turn, d.ID, d.RentPressure)
			}
			if d.CommerceCharacter < CharacterMin || d.CommerceCharacter > CharacterMax {
				t.Fatalf("turn %d %s: commerce character out of range: %v", turn, d.ID, d.CommerceCharacter)
			}
			if d.Businesses < 1 {
				t.Fatalf("turn %d %s: businesses dropped below 1", turn, d.ID)
			}
		}
	}
}

func TestTickRespectsTurnCap(t *testing.T) {
	states := runTurns(fixtureState(), fixtureAdjacency(), 48, func(turn int) Actions {
		if turn == 0 {
			return Actions{Allocation: balanced(), ActivatePolicy: stressPolicies()}
		}
		return Actions{}
	})

	for turn := 1; turn < len(states); turn++ {
		for i, d := range states[turn].Districts {
			prev := states[turn-1].Districts[i]
			diff := math.Abs(float64(d.Population - prev.Population))
			if diff > float64(prev.Population)*MaxChangeRate {
				t.Fatalf("turn %d %s: change %v exceeds cap of %v", turn, d.ID, diff, float64(prev.Population)*MaxChangeRate)
			}
		}
	}
}

func TestTickBaselineSnapshotIsIdempotent(t *testing.T) {
	start := fixtureState()
	states := runTurns(start, fixtureAdjacency(), 48, func(turn int) Actions {
		return Actions{Allocation: balanced(), ActivatePolicy: stressPolicies()}
	})

	first := states[1]
	for i, d := range first.Districts {
		if d.InitialPopulation != start.Districts[i].Population {
			t.Fatalf("%s: expected initial population %d, got %d", d.ID, start.Districts[i].Population, d.InitialPopulation)
		}
		if d.InitialBusinesses != start.Districts[i].Businesses {
			t.Fatalf("%s: expected initial businesses %d, got %d", d.ID, start.Districts[i].Businesses, d.InitialBusinesses)
		}
	}
	for turn := 2; turn < len(states); turn++ {
		for i, d := range states[turn].Districts {
			want := first.Districts[i]
			if d.InitialPopulation != want.InitialPopulation || d.InitialBusinesses != want.InitialBusinesses {
				t.Fatalf("turn %d %s: baseline changed", turn, d.ID)
			}
		}
		if states[turn].Finance.Baseline != first.Finance.Baseline {
			t.Fatalf("turn %d: finance baseline changed", turn)
		}
	}
}

func TestTickIsDeterministic(t *testing.T) {
	actions := func(turn int) Actions {
		a := Actions{Allocation: balanced()}
		if turn == 2 {
			a.ActivatePolicy = stressPolicies()
		}
		if turn == 5 {
			a.EventChoice = &EventChoice{
				EventID:  "flood",
				ChoiceID: "repair",
				Duration: 3,
				Cost:     150,
				Effects:  Effects{EffectSatSafety: -6, EffectSatHousing: -3},
			}
		}
		return a
	}
	a := runTurns(fixtureState(), fixtureAdjacency(), 20, actions)
	b := runTurns(fixtureState(), fixtureAdjacency(), 20, actions)

	left, err := json.Marshal(a[len(a)-1])
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	right, err := json.Marshal(b[len(b)-1])
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if string(left) != string(right) {
		t.Fatalf("expected byte-identical output across runs")
	}
}

func TestTickDoesNotMutateInput(t *testing.T) {
	adj := fixtureAdjacency()
	state := Tick(fixtureState(), Actions{Allocation: balanced(), ActivatePolicy: stressPolicies()}, adj)
	before, err := json.Marshal(state)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}

	choice := &EventChoice{EventID: "festival", ChoiceID: "host", Duration: 2, Effects: Effects{EffectSatCulture: 4}}
	_ = Tick(state, Actions{CancelPolicy: []string{"clearance"}, EventChoice: choice}, adj)

	after, err := json.Marshal(state)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if string(before) != string(after) {
		t.Fatalf("tick mutated its input state")
	}
}

func TestTickAdvancesMetaAndHistory(t *testing.T) {
	state := fixtureState()
	if state.Meta.Turn != 0 || state.Meta.Year != 2026 || state.Meta.Month != 1 {
		t.Fatalf("unexpected initial meta: %+v", state.Meta)
	}

	next := Tick(state, Actions{Allocation: balanced()}, fixtureAdjacency())
	if next.Meta.Turn != 1 || next.Meta.Month != 2 || next.Meta.Quarter != 1 {
		t.Fatalf("unexpected meta after one tick: %+v", next.Meta)
	}
	if len(next.History) != 1 {
		t.Fatalf("expected one history row, got %d", len(next.History))
	}
	rec := next.History[0]
	if rec.Turn != 1 || rec.TotalPopulation != next.TotalPopulation() {
		t.Fatalf("unexpected history row: %+v", rec)
	}
	if len(rec.Districts) != len(next.Districts) || len(rec.Pledges) != len(next.Pledges) {
		t.Fatalf("history row should summarize every district and pledge")
	}
	if len(state.History) != 0 {
		t.Fatalf("input history must stay untouched")
	}
}

func TestTickChargesPolicyCostDuringDelay(t *testing.T) {
	delayed := PolicyDefinition{ID: "transit-line", Cost: 200, Delay: 3, Duration: 6, Effects: Effects{EffectSatTransport: 2}}
	next := Tick(fixtureState(), Actions{Allocation: balanced(), ActivatePolicy: []PolicyDefinition{delayed}}, fixtureAdjacency())

	if next.Finance.PolicyCost != 200 {
		t.Fatalf("expected delayed policy to be charged, got %v", next.Finance.PolicyCost)
	}
	want := next.Finance.TotalBudget - next.Finance.MandatorySpend - 200
	if math.Abs(next.Finance.FreeBudget-want) > 0.02 {
		t.Fatalf("expected free budget %v, got %v", want, next.Finance.FreeBudget)
	}
	if len(next.ActivePolicies) != 1 || next.ActivePolicies[0].RemainDelay != 2 {
		t.Fatalf("expected delay to count down, got %+v", next.ActivePolicies)
	}
}

func TestTickEnforcesPolicyCap(t *testing.T) {
	defs := []PolicyDefinition{
		{ID: "p1", Duration: 4},
		{ID: "p2", Duration: 4},
		{ID: "p1", Duration: 4},
		{ID: "p3", Duration: 4},
		{ID: "p4", Duration: 4},
	}
	next := Tick(fixtureState(), Actions{ActivatePolicy: defs}, fixtureAdjacency())
	if len(next.ActivePolicies) != MaxActivePolicies {
		t.Fatalf("expected %d active policies, got %d", MaxActivePolicies, len(next.ActivePolicies))
	}
	ids := []string{next.ActivePolicies[0].Policy.ID, next.ActivePolicies[1].Policy.ID, next.ActivePolicies[2].Policy.ID}
	if ids[0] != "p1" || ids[1] != "p2" || ids[2] != "p3" {
		t.Fatalf("unexpected active policies: %v", ids)
	}
}
