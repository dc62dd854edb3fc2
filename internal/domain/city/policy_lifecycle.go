package city

import "sort"

const MaxActivePolicies = 3

// EffectView is the aggregated effect set of one turn.
type EffectView struct {
	Global     Effects
	ByDistrict map[string]Effects
}

// For merges the citywide effects with those targeted at id.
func (v EffectView) For(id string) Effects {
	return v.Global.Merge(v.ByDistrict[id])
}

// Citywide sums every contribution regardless of target. City-level models
// such as finance read this view.
func (v EffectView) Citywide() Effects {
	out := v.Global.Clone()
	if out == nil {
		out = Effects{}
	}
	ids := make([]string, 0, len(v.ByDistrict))
	for id := range v.ByDistrict {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	for _, id := range ids {
		out = out.Merge(v.ByDistrict[id])
	}
	return out
}

// Aggregate advances every active policy by one turn and returns the
// survivors together with the effects they contribute this turn.
func Aggregate(active []ActivePolicy) ([]ActivePolicy, EffectView) {
	view := EffectView{Global: Effects{}, ByDistrict: map[string]Effects{}}
	kept := make([]ActivePolicy, 0, len(active))
	for _, ap := range active {
		if ap.RemainDelay > 0 {
			ap.RemainDelay--
			kept = append(kept, ap)
			continue
		}

		if len(ap.Policy.Targets) == 0 {
			view.Global = view.Global.Merge(ap.Policy.Effects)
		} else {
			for _, id := range ap.Policy.Targets {
				view.ByDistrict[id] = view.ByDistrict[id].Merge(ap.Policy.Effects)
			}
		}

		ap.TurnsActive++
		if !ap.Policy.Permanent() {
			ap.RemainDuration--
			if ap.RemainDuration <= 0 {
				continue
			}
		}
		kept = append(kept, ap)
	}
	return kept, view
}

// applyPolicyActions removes cancelled policies and appends new ones,
// skipping ids already active and anything past the cap.
func applyPolicyActions(active []ActivePolicy, activate []PolicyDefinition, cancel []string) []ActivePolicy {
	cancelled := make(map[string]struct{}, len(cancel))
	for _, id := range cancel {
		cancelled[id] = struct{}{}
	}

	out := make([]ActivePolicy, 0, len(active)+len(activate))
	seen := map[string]struct{}{}
	for _, ap := range active {
		if _, ok := cancelled[ap.Policy.ID]; ok {
			continue
		}
		out = append(out, ap)
		seen[ap.Policy.ID] = struct{}{}
	}
	for _, def := range activate {
		if _, dup := seen[def.ID]; dup {
			continue
		}
		if len(out) >= MaxActivePolicies {
			break
		}
		out = append(out, NewActivePolicy(def))
		seen[def.ID] = struct{}{}
	}
	return out
}

func clonePolicies(in []ActivePolicy) []ActivePolicy {
	out := make([]ActivePolicy, len(in))
	for i, ap := range in {
		out[i] = ap
		out[i].Policy = ap.Policy.clone()
	}
	return out
}

func policyCost(active []ActivePolicy) float64 {
	total := 0.0
	for _, ap := range active {
		total += ap.Policy.Cost
	}
	return total
}
