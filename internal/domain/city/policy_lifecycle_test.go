package city

import "testing"

func TestAggregateIsAdditiveOnSharedDistrict(t *testing.T) {
	active := []ActivePolicy{
		NewActivePolicy(PolicyDefinition{ID: "a", Duration: 3, Targets: []string{"alpha"}, Effects: Effects{EffectNewBizBonus: 1}}),
		NewActivePolicy(PolicyDefinition{ID: "b", Duration: 3, Targets: []string{"alpha", "bravo"}, Effects: Effects{EffectNewBizBonus: 2}}),
	}

	_, view := Aggregate(active)
	if got := view.For("alpha").Get(EffectNewBizBonus); got != 3 {
		t.Fatalf("expected merged delta 3 on alpha, got %v", got)
	}
	if got := view.For("bravo").Get(EffectNewBizBonus); got != 2 {
		t.Fatalf("expected delta 2 on bravo, got %v", got)
	}
	if got := view.For("charlie").Get(EffectNewBizBonus); got != 0 {
		t.Fatalf("expected no delta on untargeted district, got %v", got)
	}
}

func TestAggregateCombinesGlobalAndTargeted(t *testing.T) {
	active := []ActivePolicy{
		NewActivePolicy(PolicyDefinition{ID: "city", Effects: Effects{EffectSatCulture: 1.5}}),
		NewActivePolicy(PolicyDefinition{ID: "local", Targets: []string{"alpha"}, Effects: Effects{EffectSatCulture: 2, EffectTaxBonus: 0.01}}),
	}

	_, view := Aggregate(active)
	if got := view.For("alpha").Get(EffectSatCulture); got != 3.5 {
		t.Fatalf("expected 3.5 on alpha, got %v", got)
	}
	if got := view.For("delta").Get(EffectSatCulture); got != 1.5 {
		t.Fatalf("expected global 1.5 on delta, got %v", got)
	}
	if got := view.Citywide().Get(EffectTaxBonus); got != 0.01 {
		t.Fatalf("expected citywide view to include targeted finance effects, got %v", got)
	}
}

func TestAggregateDelayThenExpire(t *testing.T) {
	active := []ActivePolicy{
		NewActivePolicy(PolicyDefinition{ID: "slow", Delay: 2, Duration: 2, Effects: Effects{EffectMigration: 0.01}}),
	}

	var view EffectView
	for turn := 1; turn <= 2; turn++ {
		active, view = Aggregate(active)
		if len(active) != 1 {
			t.Fatalf("turn %d: expected pending policy to be kept", turn)
		}
		if got := view.For("alpha").Get(EffectMigration); got != 0 {
			t.Fatalf("turn %d: pending policy must not contribute, got %v", turn, got)
		}
	}

	active, view = Aggregate(active)
	if view.For("alpha").Get(EffectMigration) != 0.01 || len(active) != 1 {
		t.Fatalf("expected policy to contribute on turn 3 and stay")
	}
	if active[0].TurnsActive != 1 || active[0].RemainDuration != 1 {
		t.Fatalf("unexpected counters: %+v", active[0])
	}

	active, view = Aggregate(active)
	if view.For("alpha").Get(EffectMigration) != 0.01 {
		t.Fatalf("expected contribution on final turn")
	}
	if len(active) != 0 {
		t.Fatalf("expected expired policy to be removed, got %+v", active)
	}
}

func TestAggregateKeepsPermanentPolicies(t *testing.T) {
	active := []ActivePolicy{NewActivePolicy(PolicyDefinition{ID: "forever", Effects: Effects{EffectCharacter: 0.5}})}
	for i := 0; i < 60; i++ {
		active, _ = Aggregate(active)
	}
	if len(active) != 1 || active[0].TurnsActive != 60 {
		t.Fatalf("expected permanent policy active for 60 turns, got %+v", active)
	}
}

func TestApplyPolicyActionsCancelsBeforeActivating(t *testing.T) {
	active := []ActivePolicy{
		NewActivePolicy(PolicyDefinition{ID: "a"}),
		NewActivePolicy(PolicyDefinition{ID: "b"}),
		NewActivePolicy(PolicyDefinition{ID: "c"}),
	}
	out := applyPolicyActions(active, []PolicyDefinition{{ID: "d"}, {ID: "e"}}, []string{"b"})
	if len(out) != 3 {
		t.Fatalf("expected cap of 3, got %d", len(out))
	}
	if out[0].Policy.ID != "a" || out[1].Policy.ID != "c" || out[2].Policy.ID != "d" {
		t.Fatalf("unexpected order after cancel/activate: %s %s %s", out[0].Policy.ID, out[1].Policy.ID, out[2].Policy.ID)
	}
	if len(active) != 3 || active[1].Policy.ID != "b" {
		t.Fatalf("input slice must not be modified")
	}
}
