package city

import "math"

// FinanceModel recomputes the city budget from the updated districts.
type FinanceModel struct{}

type cityTotals struct {
	Population  int
	Businesses  int
	Workers     int
	AvgVitality float64
}

func totalsOf(districts []District) cityTotals {
	var t cityTotals
	vitality := 0.0
	for _, d := range districts {
		t.Population += d.Population
		t.Businesses += d.Businesses
		t.Workers += d.Workers
		vitality += d.CommerceVitality
	}
	if len(districts) > 0 {
		t.AvgVitality = vitality / float64(len(districts))
	}
	return t
}

func captureFinanceBaseline(f Finance, districts []District) FinanceBaseline {
	t := totalsOf(districts)
	return FinanceBaseline{
		Captured:            true,
		LocalTax:            f.Revenue.LocalTax,
		CityGrant:           f.Revenue.CityGrant,
		OtherIncome:         f.Revenue.OtherIncome,
		FreeBudget:          f.FreeBudget,
		TotalPopulation:     t.Population,
		TotalBusinesses:     t.Businesses,
		AvgCommerceVitality: t.AvgVitality,
	}
}

// Apply returns the next finance value. turn is the turn being produced,
// policyCost the charge of every active policy (pending ones included) and
// eventCost the cost of the choice resolved this turn.
func (FinanceModel) Apply(prior Finance, districts []District, fx Effects, turn int, policyCost, eventCost float64) Finance {
	base := prior.Baseline
	t := totalsOf(districts)

	bizGrowth := ratioOr(float64(t.Businesses), float64(base.TotalBusinesses), 1) - 1
	taxFactor := 1 + TaxAccel*(TaxElasticity*bizGrowth+fx.Get(EffectTaxBonus)) + TaxSecularDecline*float64(turn)
	localTax := base.LocalTax * math.Max(LocalTaxFloorRatio, taxFactor)

	grant := base.CityGrant * ratioOr(float64(t.Population), float64(base.TotalPopulation), 1)
	other := base.OtherIncome*ratioOr(t.AvgVitality, base.AvgCommerceVitality, 1) + fx.Get(EffectOtherIncome)
	other = math.Max(0, other)

	rev := Revenue{
		LocalTax:    round(localTax, 2),
		CityGrant:   round(grant, 2),
		Subsidy:     prior.Revenue.Subsidy,
		OtherIncome: round(other, 2),
	}
	total := rev.Total()
	mandatory := math.Max(0, total*MandatoryRatio+fx.Get(EffectMandatory))
	free := math.Max(0, total-mandatory-policyCost-eventCost)

	independence := 0.0
	if total > 0 {
		independence = clamp(math.Round(100*(rev.LocalTax+rev.OtherIncome)/total), 0, 100)
	}

	return Finance{
		TotalBudget:        round(total, 2),
		MandatorySpend:     round(mandatory, 2),
		FreeBudget:         round(free, 2),
		Revenue:            rev,
		Allocation:         prior.Allocation,
		FiscalIndependence: independence,
		PolicyCost:         round(policyCost, 2),
		EventCost:          round(eventCost, 2),
		Baseline:           base,
	}
}
