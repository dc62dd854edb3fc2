package city

// BudgetEffects holds the spend efficiency ratio of every budget category
// for one turn. A ratio of 1.0 means spending exactly the optimal amount.
type BudgetEffects map[BudgetCategory]float64

func (b BudgetEffects) Ratio(c BudgetCategory) float64 {
	if b == nil {
		return 1
	}
	v, ok := b[c]
	if !ok {
		return 1
	}
	return v
}

// effectiveShare applies diminishing returns to the share spent above the
// optimal percentage.
func effectiveShare(raw, optimal float64) float64 {
	if raw <= optimal || optimal <= 0 {
		return raw
	}
	return raw / (1 + DiminishingSlope*(raw/optimal-1))
}

// ComputeBudgetEffects turns an allocation into per-category efficiency
// ratios. priorFree is the free budget of the previous turn and
// baselineFree the free budget captured on the first turn.
func ComputeBudgetEffects(alloc Allocation, priorFree, baselineFree float64) BudgetEffects {
	out := make(BudgetEffects, len(AllBudgetCategories))
	for _, c := range AllBudgetCategories {
		optimal := OptimalAllocation.Get(c)
		spent := max(0, priorFree) * effectiveShare(max(0, alloc.Get(c)), optimal) / 100
		optimalAmount := baselineFree * optimal / 100
		if optimalAmount <= 0 {
			out[c] = 1
			continue
		}
		out[c] = clamp(spent/optimalAmount, 0, EfficiencyCap)
	}
	return out
}
