package city

import (
	"math"

	"aimapo/internal/domain/calendar"
)

// NewGameState builds the turn-0 state from catalog data. Populations are
// re-derived from the age buckets and aggregate scores from the factors, so
// the returned state satisfies every district invariant.
func NewGameState(districts []District, finance Finance, pledges []Pledge, maxTurns int, cal calendar.Calendar) GameState {
	ds := make([]District, len(districts))
	copy(ds, districts)
	for i := range ds {
		d := &ds[i]
		d.Population = d.PopulationByAge.Sum()
		d.Factors = clampFactors(d.Factors)
		d.Satisfaction = aggregateSatisfaction(*d)
		d.RentPressure = round(clamp(d.RentPressure, 0, RentMax), 4)
		d.CommerceCharacter = clamp(d.CommerceCharacter, CharacterMin, CharacterMax)
		d.CommerceVitality = clamp(d.CommerceVitality, 0, 100)
		d.InitialPopulation, d.InitialBusinesses, d.BaselineCaptured = 0, 0, false
	}

	fin := finance
	if fin.Allocation.Total() <= 0 {
		fin.Allocation = BalancedAllocation()
	}
	total := fin.Revenue.Total()
	fin.TotalBudget = total
	if fin.MandatorySpend <= 0 {
		fin.MandatorySpend = total * MandatoryRatio
	}
	fin.FreeBudget = math.Max(0, total-fin.MandatorySpend)
	if total > 0 {
		fin.FiscalIndependence = math.Round(100 * (fin.Revenue.LocalTax + fin.Revenue.OtherIncome) / total)
	}
	fin.PolicyCost, fin.EventCost = 0, 0
	fin.Baseline = FinanceBaseline{}

	if maxTurns <= 0 {
		maxTurns = DefaultMaxTurns
	}
	date := cal.At(0)
	ps := make([]Pledge, len(pledges))
	copy(ps, pledges)
	for i := range ps {
		ps[i].Progress = 0
	}

	return GameState{
		Meta: Meta{
			Turn:     0,
			MaxTurns: maxTurns,
			Year:     date.Year,
			Month:    date.Month,
			Quarter:  date.Quarter,
		},
		Districts:      ds,
		Finance:        fin,
		ActivePolicies: []ActivePolicy{},
		ActiveEvents:   []ActiveEvent{},
		Pledges:        ps,
		History:        []TurnRecord{},
	}
}

// TotalPopulation sums resident population across districts.
func (s GameState) TotalPopulation() int {
	return totalsOf(s.Districts).Population
}

func (s GameState) TotalBusinesses() int {
	return totalsOf(s.Districts).Businesses
}

func (s GameState) AverageSatisfaction() float64 {
	return averageSatisfaction(s.Districts)
}

// Metric reads a named city-level indicator. Event threshold triggers use it.
func (s GameState) Metric(name string) (float64, bool) {
	switch name {
	case "avg_satisfaction":
		return s.AverageSatisfaction(), true
	case "fiscal_independence":
		return s.Finance.FiscalIndependence, true
	case "free_budget":
		return s.Finance.FreeBudget, true
	case "total_population":
		return float64(s.TotalPopulation()), true
	case "total_businesses":
		return float64(s.TotalBusinesses()), true
	case "max_rent_pressure":
		v := 0.0
		for _, d := range s.Districts {
			v = math.Max(v, d.RentPressure)
		}
		return v, true
	case "avg_commerce_character":
		values := make([]float64, len(s.Districts))
		for i, d := range s.Districts {
			values[i] = d.CommerceCharacter
		}
		return mean(values), true
	case "population_change_pct":
		base := s.Finance.Baseline.TotalPopulation
		if base <= 0 {
			return 0, true
		}
		return (float64(s.TotalPopulation())/float64(base) - 1) * 100, true
	default:
		return 0, false
	}
}

// MetricRange returns the bounds Metric can take for name. Unbounded sides
// are reported as infinities.
func MetricRange(name string) (low, high float64, ok bool) {
	inf := math.Inf(1)
	switch name {
	case "avg_satisfaction", "fiscal_independence":
		return 0, 100, true
	case "free_budget", "total_population", "total_businesses":
		return 0, inf, true
	case "max_rent_pressure":
		return 0, RentMax, true
	case "avg_commerce_character":
		return CharacterMin, CharacterMax, true
	case "population_change_pct":
		return -100, inf, true
	default:
		return 0, 0, false
	}
}
