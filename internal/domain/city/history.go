package city

type DistrictSummary struct {
	ID               string  `json:"id"`
	Population       int     `json:"population"`
	Businesses       int     `json:"businesses"`
	Satisfaction     float64 `json:"satisfaction"`
	CommerceVitality float64 `json:"commerce_vitality"`
	RentPressure     float64 `json:"rent_pressure"`
}

// TurnRecord is the history row appended after every tick.
type TurnRecord struct {
	Turn               int               `json:"turn"`
	Year               int               `json:"year"`
	Month              int               `json:"month"`
	Quarter            int               `json:"quarter"`
	TotalPopulation    int               `json:"total_population"`
	TotalBusinesses    int               `json:"total_businesses"`
	TotalWorkers       int               `json:"total_workers"`
	AvgSatisfaction    float64           `json:"avg_satisfaction"`
	FiscalIndependence float64           `json:"fiscal_independence"`
	FreeBudget         float64           `json:"free_budget"`
	TotalBudget        float64           `json:"total_budget"`
	ActivePolicies     []string          `json:"active_policies"`
	EventID            string            `json:"event_id,omitempty"`
	EventChoiceID      string            `json:"event_choice_id,omitempty"`
	Districts          []DistrictSummary `json:"districts"`
	Pledges            []PledgeProgress  `json:"pledges"`
}

func buildTurnRecord(s GameState, pledges []PledgeProgress, choice *EventChoice) TurnRecord {
	t := totalsOf(s.Districts)
	rec := TurnRecord{
		Turn:               s.Meta.Turn,
		Year:               s.Meta.Year,
		Month:              s.Meta.Month,
		Quarter:            s.Meta.Quarter,
		TotalPopulation:    t.Population,
		TotalBusinesses:    t.Businesses,
		TotalWorkers:       t.Workers,
		AvgSatisfaction:    averageSatisfaction(s.Districts),
		FiscalIndependence: s.Finance.FiscalIndependence,
		FreeBudget:         s.Finance.FreeBudget,
		TotalBudget:        s.Finance.TotalBudget,
		ActivePolicies:     make([]string, 0, len(s.ActivePolicies)),
		Districts:          make([]DistrictSummary, 0, len(s.Districts)),
		Pledges:            pledges,
	}
	if choice != nil {
		rec.EventID = choice.EventID
		rec.EventChoiceID = choice.ChoiceID
	}
	for _, ap := range s.ActivePolicies {
		rec.ActivePolicies = append(rec.ActivePolicies, ap.Policy.ID)
	}
	for _, d := range s.Districts {
		rec.Districts = append(rec.Districts, DistrictSummary{
			ID:               d.ID,
			Population:       d.Population,
			Businesses:       d.Businesses,
			Satisfaction:     d.Satisfaction,
			CommerceVitality: d.CommerceVitality,
			RentPressure:     d.RentPressure,
		})
	}
	return rec
}

func cloneHistory(in []TurnRecord) []TurnRecord {
	out := make([]TurnRecord, len(in), len(in)+1)
	for i, r := range in {
		out[i] = r
		out[i].ActivePolicies = append([]string(nil), r.ActivePolicies...)
		out[i].Districts = append([]DistrictSummary(nil), r.Districts...)
		out[i].Pledges = append([]PledgeProgress(nil), r.Pledges...)
	}
	return out
}
