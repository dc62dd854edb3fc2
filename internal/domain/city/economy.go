package city

import "math"

// EconomyModel updates businesses, workers, rent pressure, vitality and
// commerce character for every district.
type EconomyModel struct{}

func livingTotal(l LivingPopulation) int {
	q := l.quadrants()
	return q[0] + q[1] + q[2] + q[3]
}

// density is businesses per 1,000 residents.
func density(d District) float64 {
	return float64(d.Businesses) * 1000 / math.Max(1, float64(d.Population))
}

// diminishedBonus halves a positive new-business bonus for every
// NewBizBonusHalfGrowth of growth beyond the baseline business count.
func diminishedBonus(bonus float64, businesses, baseline int) float64 {
	if bonus <= 0 || baseline <= 0 {
		return bonus
	}
	growth := float64(businesses)/float64(baseline) - 1
	if growth <= 0 {
		return bonus
	}
	return bonus * math.Pow(0.5, growth/NewBizBonusHalfGrowth)
}

func budgetBonus(economyRatio float64) float64 {
	return clamp(1+BudgetBonusSlope*(economyRatio-1), BudgetBonusMin, BudgetBonusMax)
}

func (EconomyModel) demand(districts []District, adj AdjacencyGraph) map[string]float64 {
	living := make([]float64, len(districts))
	resident := make([]float64, len(districts))
	transit := make([]float64, len(districts))
	for i, d := range districts {
		living[i] = float64(livingTotal(d.Living))
		resident[i] = float64(d.Population)
		transit[i] = d.TransitScore
	}
	avgLiving, avgResident, avgTransit := mean(living), mean(resident), mean(transit)

	local := make(map[string]float64, len(districts))
	for i, d := range districts {
		blend := demandWeights.Living*softCap(ratioOr(living[i], avgLiving, 1)) +
			demandWeights.Resident*softCap(ratioOr(resident[i], avgResident, 1)) +
			demandWeights.Transit*softCap(ratioOr(transit[i], avgTransit, 1))
		local[d.ID] = blend / (demandWeights.Living + demandWeights.Resident + demandWeights.Transit)
	}

	out := make(map[string]float64, len(districts))
	for _, d := range districts {
		spill, ok := adj.weightedNeighborMean(d.ID, local)
		if !ok {
			spill = 1
		}
		raw := (demandWeights.Living+demandWeights.Resident+demandWeights.Transit)*local[d.ID] +
			demandWeights.Spillover*softCap(spill)
		raw = clamp(raw, DemandMin, DemandMax)
		out[d.ID] = 1 + DemandDamping*(raw-1)
	}
	return out
}

// Apply returns updated copies of districts. Rent reads last turn's vitality
// and neighbor rent; vitality is relative to the densest district after the
// business update.
func (m EconomyModel) Apply(districts []District, view EffectView, adj AdjacencyGraph, budget BudgetEffects) []District {
	out := make([]District, len(districts))
	copy(out, districts)

	demand := m.demand(districts, adj)
	bonus := budgetBonus(budget.Ratio(BudgetEconomy))

	densities := make([]float64, len(districts))
	for i, d := range districts {
		densities[i] = density(d)
	}
	avgDensity := mean(densities)

	priorRent := make(map[string]float64, len(districts))
	for _, d := range districts {
		priorRent[d.ID] = d.RentPressure
	}

	for i := range out {
		d := &out[i]
		fx := view.For(d.ID)
		prevBiz := d.Businesses

		competition := 0.0
		if avgDensity > 0 {
			competition = clamp((densities[i]/avgDensity-1)*CompetitionSensitivity, 0, CompetitionCap)
		}
		newRate := BaseNewBizRate + diminishedBonus(fx.Get(EffectNewBizBonus), prevBiz, d.InitialBusinesses)
		closeRate := BaseCloseRate + d.RentPressure + competition + fx.Get(EffectCloseRate)

		biz := float64(prevBiz)
		openings := biz * math.Max(0, newRate) * demand[d.ID] * bonus
		closures := biz * math.Max(0, closeRate)
		next := int(math.Round(biz + openings - closures))
		if prevBiz > 0 || next > 0 {
			next = max(1, next)
		}
		d.Businesses = next

		if prevBiz > 0 {
			d.Workers = int(math.Round(float64(d.Workers) * float64(next) / float64(prevBiz)))
		}
	}

	maxDensity := 0.0
	for _, d := range out {
		maxDensity = math.Max(maxDensity, density(d))
	}

	for i := range out {
		d := &out[i]
		fx := view.For(d.ID)

		vitality := 0.0
		if maxDensity > 0 {
			vitality = 100 * density(*d) / maxDensity
		}
		d.CommerceVitality = round(clamp(vitality+fx.Get(EffectVitality), 0, 100), 2)

		inflow := 0.0
		for _, e := range adj.Neighbors(d.ID) {
			inflow += e.Weight * priorRent[e.To]
		}
		rent := math.Max(0, (districts[i].CommerceVitality-RentThreshold)*RentSensitivity) +
			RentSpillover*inflow + fx.Get(EffectRentPressure)
		d.RentPressure = round(clamp(rent, 0, RentMax), 4)

		char := d.CommerceCharacter
		if d.RentPressure > 0 {
			char -= char * d.RentPressure * CharacterErosion
		} else {
			char += (CharacterTarget - char) * CharacterRecovery
		}
		d.CommerceCharacter = round(clamp(char+fx.Get(EffectCharacter), CharacterMin, CharacterMax), 2)
	}
	return out
}
