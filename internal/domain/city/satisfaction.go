package city

import "math"

// SatisfactionModel updates the six factors of every district and derives
// the aggregate satisfaction score.
type SatisfactionModel struct{}

// recoveryGain maps a budget efficiency ratio onto recovered points per
// unit weight.
func recoveryGain(ratio float64) float64 {
	if ratio <= 1 {
		return RecoveryAtOptimal * math.Max(0, ratio)
	}
	return RecoveryAtOptimal + RecoveryGainMultiplier*(ratio-1)/ratio
}

func budgetRecovery(budget BudgetEffects) Factors {
	var gain, weight Factors
	for _, c := range AllBudgetCategories {
		g := recoveryGain(budget.Ratio(c))
		for _, f := range AllFactors {
			w := budgetFactorWeights[c][f]
			if w == 0 {
				continue
			}
			gain.Add(f, w*g)
			weight.Add(f, w)
		}
	}
	var out Factors
	for _, f := range AllFactors {
		if weight.Get(f) > 0 {
			out.Set(f, RecoveryScale*gain.Get(f)/weight.Get(f))
		}
	}
	return out
}

// declinePenalty is the share taken off a structural target once a count
// falls below BaselineDeclineThreshold of its baseline.
func declinePenalty(current, baseline int) float64 {
	if baseline <= 0 {
		return 0
	}
	r := float64(current) / float64(baseline)
	if r >= BaselineDeclineThreshold {
		return 0
	}
	return math.Min(BaselinePenaltyMax, (BaselineDeclineThreshold-r)*BaselineDeclineSlope)
}

func crowding(d District) float64 {
	if d.Population <= 0 {
		return 0
	}
	return math.Max(0, float64(d.Living.WeekdayDay)/float64(d.Population)-OvercrowdThreshold)
}

type structuralContext struct {
	avgDensity float64
	avgTransit float64
}

func structuralTargets(d District, ctx structuralContext) Factors {
	densityDev := clamp(ratioOr(density(d), ctx.avgDensity, 1)-1, -1, 1)
	economy := (50 + 25*densityDev) * (1 - declinePenalty(d.Businesses, d.InitialBusinesses))

	crowd := crowding(d)
	housing := 65 - math.Min(30, d.RentPressure*1000) - math.Min(15, crowd*10)
	safety := 65 - math.Min(20, crowd*15)

	transitDev := 0.0
	if ctx.avgTransit > 0 {
		transitDev = clamp((d.TransitScore-ctx.avgTransit)/ctx.avgTransit, -1, 1)
	}
	transport := 50 + 30*transitDev

	culture := 30 + 0.4*d.CommerceCharacter

	elderlyShare := ratioOr(float64(d.PopulationByAge.Elderly), float64(d.Population), 0)
	welfare := (60 - 40*math.Max(0, elderlyShare-0.15)) * (1 - declinePenalty(d.Population, d.InitialPopulation))

	return Factors{
		Economy:   economy,
		Transport: transport,
		Housing:   housing,
		Safety:    safety,
		Culture:   culture,
		Welfare:   welfare,
	}
}

func (SatisfactionModel) Apply(districts []District, view EffectView, adj AdjacencyGraph, budget BudgetEffects) []District {
	out := make([]District, len(districts))
	copy(out, districts)

	recovery := budgetRecovery(budget)
	densities := make([]float64, len(out))
	transits := make([]float64, len(out))
	for i, d := range out {
		densities[i] = density(d)
		transits[i] = d.TransitScore
	}
	ctx := structuralContext{avgDensity: mean(densities), avgTransit: mean(transits)}

	for i := range out {
		d := &out[i]
		fx := view.For(d.ID)
		target := structuralTargets(*d, ctx)
		for _, f := range AllFactors {
			v := d.Factors.Get(f) - SatisfactionDecay
			v += recovery.Get(f)
			v += fx.Get(SatisfactionEffect(f))
			v += StructuralRate * (target.Get(f) - v)
			d.Factors.Set(f, v)
		}
	}

	converged := convergeFactors(out, adj)
	for i := range converged {
		converged[i].Factors = clampFactors(converged[i].Factors)
		converged[i].Satisfaction = aggregateSatisfaction(converged[i])
	}
	return converged
}

// convergeFactors moves each factor toward every neighbor's value, reading
// the pre-convergence values of all districts.
func convergeFactors(districts []District, adj AdjacencyGraph) []District {
	index := make(map[string]int, len(districts))
	for i, d := range districts {
		index[d.ID] = i
	}
	out := make([]District, len(districts))
	copy(out, districts)
	for i, d := range districts {
		total := math.Max(1, adj.TotalWeight(d.ID))
		for _, e := range adj.Neighbors(d.ID) {
			j, ok := index[e.To]
			if !ok {
				continue
			}
			k := ConvergenceRate * e.Weight / total
			for _, f := range AllFactors {
				out[i].Factors.Add(f, k*(districts[j].Factors.Get(f)-d.Factors.Get(f)))
			}
		}
	}
	return out
}

func clampFactors(f Factors) Factors {
	var out Factors
	for _, factor := range AllFactors {
		out.Set(factor, round(clamp(f.Get(factor), 0, 100), 1))
	}
	return out
}

func cohortScore(weights, f Factors) float64 {
	score := 0.0
	for _, factor := range AllFactors {
		score += weights.Get(factor) * f.Get(factor)
	}
	return score
}

// aggregateSatisfaction weights the cohort scores by head count; children
// and teens count with midAge.
func aggregateSatisfaction(d District) float64 {
	a := d.PopulationByAge
	counts := map[Cohort]int{
		CohortYouth:   a.Youth,
		CohortMidAge:  a.Child + a.Teen + a.MidAge,
		CohortSenior:  a.Senior,
		CohortElderly: a.Elderly,
	}
	total, sum := 0, 0.0
	for _, c := range []Cohort{CohortYouth, CohortMidAge, CohortSenior, CohortElderly} {
		total += counts[c]
		sum += float64(counts[c]) * cohortScore(cohortWeights[c], d.Factors)
	}
	if total <= 0 {
		return DefaultSatisfaction
	}
	return round(clamp(sum/float64(total), 0, 100), 1)
}
