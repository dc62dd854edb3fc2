package city

import (
	"sort"
	"strings"
)

// EffectKey is one (category, key) pair a policy or event may move.
type EffectKey string

const (
	EffectNewBizBonus   EffectKey = "economy.new_biz_bonus"
	EffectCloseRate     EffectKey = "economy.close_rate"
	EffectRentPressure  EffectKey = "economy.rent_pressure"
	EffectCharacter     EffectKey = "economy.character"
	EffectVitality      EffectKey = "economy.vitality"
	EffectMigration     EffectKey = "population.migration"
	EffectDisplacement  EffectKey = "population.displacement"
	EffectNaturalRate   EffectKey = "population.natural"
	EffectTaxBonus      EffectKey = "finance.tax_bonus"
	EffectMandatory     EffectKey = "finance.mandatory"
	EffectOtherIncome   EffectKey = "finance.other_income"
	EffectSatEconomy    EffectKey = "satisfaction.economy"
	EffectSatTransport  EffectKey = "satisfaction.transport"
	EffectSatHousing    EffectKey = "satisfaction.housing"
	EffectSatSafety     EffectKey = "satisfaction.safety"
	EffectSatCulture    EffectKey = "satisfaction.culture"
	EffectSatWelfare    EffectKey = "satisfaction.welfare"
)

var knownEffects = map[EffectKey]struct{}{
	EffectNewBizBonus:  {},
	EffectCloseRate:    {},
	EffectRentPressure: {},
	EffectCharacter:    {},
	EffectVitality:     {},
	EffectMigration:    {},
	EffectDisplacement: {},
	EffectNaturalRate:  {},
	EffectTaxBonus:     {},
	EffectMandatory:    {},
	EffectOtherIncome:  {},
	EffectSatEconomy:   {},
	EffectSatTransport: {},
	EffectSatHousing:   {},
	EffectSatSafety:    {},
	EffectSatCulture:   {},
	EffectSatWelfare:   {},
}

func IsKnownEffect(k EffectKey) bool {
	_, ok := knownEffects[k]
	return ok
}

// SatisfactionEffect returns the effect key that moves the given factor.
func SatisfactionEffect(f Factor) EffectKey {
	return EffectKey("satisfaction." + string(f))
}

// Effects is an additive set of deltas keyed by EffectKey.
type Effects map[EffectKey]float64

func (e Effects) Get(k EffectKey) float64 {
	if e == nil {
		return 0
	}
	return e[k]
}

func (e Effects) Clone() Effects {
	if e == nil {
		return nil
	}
	out := make(Effects, len(e))
	for k, v := range e {
		out[k] = v
	}
	return out
}

// Merge sums every delta of other into a copy of e. Deltas never overwrite.
func (e Effects) Merge(other Effects) Effects {
	out := make(Effects, len(e)+len(other))
	for k, v := range e {
		out[k] += v
	}
	for k, v := range other {
		out[k] += v
	}
	return out
}

// Scale returns a copy with every delta multiplied by f.
func (e Effects) Scale(f float64) Effects {
	out := make(Effects, len(e))
	for k, v := range e {
		out[k] = v * f
	}
	return out
}

// Satisfaction keeps only the satisfaction.* deltas.
func (e Effects) Satisfaction() Effects {
	out := Effects{}
	for _, f := range AllFactors {
		if v, ok := e[SatisfactionEffect(f)]; ok {
			out[SatisfactionEffect(f)] = v
		}
	}
	return out
}

// ParseEffects converts a nested category → key → delta table into typed
// effects. Unknown pairs are dropped and returned, sorted, so the loader can
// report them.
func ParseEffects(nested map[string]map[string]float64) (Effects, []string) {
	out := Effects{}
	var unknown []string
	for category, keys := range nested {
		for key, delta := range keys {
			k := EffectKey(strings.TrimSpace(category) + "." + strings.TrimSpace(key))
			if !IsKnownEffect(k) {
				unknown = append(unknown, string(k))
				continue
			}
			out[k] += delta
		}
	}
	sort.Strings(unknown)
	return out, unknown
}

// Nested renders effects back into the category → key → delta shape used by
// catalogs and the HTTP surface.
func (e Effects) Nested() map[string]map[string]float64 {
	out := map[string]map[string]float64{}
	for k, v := range e {
		category, key, ok := strings.Cut(string(k), ".")
		if !ok {
			continue
		}
		if out[category] == nil {
			out[category] = map[string]float64{}
		}
		out[category][key] = v
	}
	return out
}
