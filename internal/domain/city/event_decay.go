package city

// decayEvents applies one turn of every active event's satisfaction
// effects and returns the events that still have turns left. Each turn
// lands delta/TotalDuration, so the full delta is spread over the event's
// lifetime.
func decayEvents(districts []District, events []ActiveEvent) ([]District, []ActiveEvent) {
	out := make([]District, len(districts))
	copy(out, districts)
	if len(events) == 0 {
		return out, nil
	}

	index := make(map[string]int, len(out))
	for i, d := range out {
		index[d.ID] = i
	}

	kept := make([]ActiveEvent, 0, len(events))
	touched := make([]bool, len(out))
	for _, ev := range events {
		if ev.RemainDuration <= 0 {
			continue
		}
		share := 1 / float64(max(1, ev.TotalDuration))
		targets := make([]int, 0, len(out))
		if len(ev.Districts) == 0 {
			for i := range out {
				targets = append(targets, i)
			}
		} else {
			for _, id := range ev.Districts {
				if i, ok := index[id]; ok {
					targets = append(targets, i)
				}
			}
		}
		for _, i := range targets {
			for _, f := range AllFactors {
				if delta := ev.Effects.Get(SatisfactionEffect(f)); delta != 0 {
					out[i].Factors.Add(f, delta*share)
				}
			}
			touched[i] = true
		}

		ev.RemainDuration--
		if ev.RemainDuration > 0 {
			kept = append(kept, ev)
		}
	}

	for i := range out {
		if !touched[i] {
			continue
		}
		out[i].Factors = clampFactors(out[i].Factors)
		out[i].Satisfaction = aggregateSatisfaction(out[i])
	}
	return out, kept
}

func cloneEvents(in []ActiveEvent) []ActiveEvent {
	if in == nil {
		return nil
	}
	out := make([]ActiveEvent, len(in))
	for i, ev := range in {
		out[i] = ev
		out[i].Districts = append([]string(nil), ev.Districts...)
		out[i].Effects = ev.Effects.Clone()
	}
	return out
}
