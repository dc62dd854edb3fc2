package city

type PledgeKind string

const (
	PledgePopulationGrowth   PledgeKind = "population_growth"
	PledgeBusinessGrowth     PledgeKind = "business_growth"
	PledgeSatisfaction       PledgeKind = "satisfaction"
	PledgeFiscalIndependence PledgeKind = "fiscal_independence"
	PledgeCommerceCharacter  PledgeKind = "commerce_character"
)

// Pledge is a long-horizon goal chosen at game start. Growth kinds take a
// percentage target relative to the first-turn baseline; the others an
// absolute score.
type Pledge struct {
	ID       string     `json:"id" yaml:"id"`
	Name     string     `json:"name" yaml:"name"`
	Kind     PledgeKind `json:"kind" yaml:"kind"`
	Target   float64    `json:"target" yaml:"target"`
	Points   int        `json:"points" yaml:"points"`
	Progress float64    `json:"progress" yaml:"-"`
}

type PledgeProgress struct {
	ID       string  `json:"id"`
	Achieved float64 `json:"achieved"`
	Progress float64 `json:"progress"`
}

// pledgeMetric reports the current value a pledge of the given kind is
// measured against.
func pledgeMetric(kind PledgeKind, s GameState) float64 {
	t := totalsOf(s.Districts)
	base := s.Finance.Baseline
	switch kind {
	case PledgePopulationGrowth:
		return (ratioOr(float64(t.Population), float64(base.TotalPopulation), 1) - 1) * 100
	case PledgeBusinessGrowth:
		return (ratioOr(float64(t.Businesses), float64(base.TotalBusinesses), 1) - 1) * 100
	case PledgeSatisfaction:
		return averageSatisfaction(s.Districts)
	case PledgeFiscalIndependence:
		return s.Finance.FiscalIndependence
	case PledgeCommerceCharacter:
		values := make([]float64, len(s.Districts))
		for i, d := range s.Districts {
			values[i] = d.CommerceCharacter
		}
		return mean(values)
	default:
		return 0
	}
}

func pledgeProgress(p Pledge, achieved float64) float64 {
	if p.Target <= 0 {
		if achieved >= p.Target {
			return 100
		}
		return 0
	}
	return round(clamp(achieved/p.Target*100, 0, 100), 1)
}

// EvaluatePledges returns updated pledges and their progress rows.
func EvaluatePledges(s GameState) ([]Pledge, []PledgeProgress) {
	pledges := make([]Pledge, len(s.Pledges))
	rows := make([]PledgeProgress, len(s.Pledges))
	for i, p := range s.Pledges {
		achieved := round(pledgeMetric(p.Kind, s), 2)
		p.Progress = pledgeProgress(p, achieved)
		pledges[i] = p
		rows[i] = PledgeProgress{ID: p.ID, Achieved: achieved, Progress: p.Progress}
	}
	return pledges, rows
}

type PledgeScore struct {
	Points   int      `json:"points"`
	Possible int      `json:"possible"`
	Achieved []string `json:"achieved"`
	Missed   []string `json:"missed"`
}

// ScorePledges awards each pledge's points when its progress reached 100.
func ScorePledges(s GameState) PledgeScore {
	score := PledgeScore{Achieved: []string{}, Missed: []string{}}
	for _, p := range s.Pledges {
		score.Possible += p.Points
		if p.Progress >= 100-1e-9 {
			score.Points += p.Points
			score.Achieved = append(score.Achieved, p.ID)
			continue
		}
		score.Missed = append(score.Missed, p.ID)
	}
	return score
}

// averageSatisfaction is population weighted; an empty city scores the
// default.
func averageSatisfaction(districts []District) float64 {
	total, sum := 0, 0.0
	for _, d := range districts {
		total += d.Population
		sum += float64(d.Population) * d.Satisfaction
	}
	if total <= 0 {
		return DefaultSatisfaction
	}
	return round(sum/float64(total), 2)
}

func clonePledges(in []Pledge) []Pledge {
	if in == nil {
		return nil
	}
	return append([]Pledge(nil), in...)
}
