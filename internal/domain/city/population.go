package city

import "math"

// PopulationModel applies natural change, migration and displacement to the
// age buckets of every district.
type PopulationModel struct{}

var bucketMobility = [AgeGroupCount]float64{
	AgeChild:   ChildFollowFraction * MobilityMidAge,
	AgeTeen:    ChildFollowFraction * MobilityMidAge,
	AgeYouth:   MobilityYouth,
	AgeMidAge:  MobilityMidAge,
	AgeSenior:  MobilitySenior,
	AgeElderly: MobilityElderly,
}

type migrationInputs struct {
	jobs, housing, infrastructure, safety, welfare []float64
}

func (m migrationInputs) scores(i int) float64 {
	field := func(values []float64) float64 {
		return normalizedScore(values[i], mean(values), 2*stddev(values))
	}
	return migrationWeights.Jobs*field(m.jobs) +
		migrationWeights.Housing*field(m.housing) +
		migrationWeights.Infrastructure*field(m.infrastructure) +
		migrationWeights.Safety*field(m.safety) +
		migrationWeights.Welfare*field(m.welfare)
}

func collectMigrationInputs(districts []District, adj AdjacencyGraph) migrationInputs {
	n := len(districts)
	in := migrationInputs{
		jobs:           make([]float64, n),
		housing:        make([]float64, n),
		infrastructure: make([]float64, n),
		safety:         make([]float64, n),
		welfare:        make([]float64, n),
	}
	workerRatio := make(map[string]float64, n)
	for _, d := range districts {
		workerRatio[d.ID] = safeDiv(float64(d.Workers), float64(d.Population))
	}
	for i, d := range districts {
		spill, _ := adj.weightedNeighborMean(d.ID, workerRatio)
		in.jobs[i] = workerRatio[d.ID] + 0.25*spill
		in.housing[i] = d.Factors.Housing - d.RentPressure*1000
		in.infrastructure[i] = (d.TransitScore + d.CommerceVitality + d.Factors.Culture) / 3
		in.safety[i] = d.Factors.Safety
		in.welfare[i] = d.Factors.Welfare
	}
	return in
}

func tippingPull(satisfaction float64) float64 {
	switch {
	case satisfaction > SatisfactionInflowThreshold:
		return TippingInflowMax * (satisfaction - SatisfactionInflowThreshold) / (100 - SatisfactionInflowThreshold)
	case satisfaction < SatisfactionOutflowThreshold:
		return -TippingOutflowMax * (SatisfactionOutflowThreshold - satisfaction) / SatisfactionOutflowThreshold
	default:
		return 0
	}
}

// dampenPull attenuates pull in the direction that would take the district
// further from its baseline once it is past the start thresholds.
func dampenPull(pull float64, pop, baseline int) float64 {
	if baseline <= 0 {
		return pull
	}
	r := float64(pop) / float64(baseline)
	if pull > 0 && r > OvergrowthStart {
		return pull * clamp((OvergrowthStop-r)/(OvergrowthStop-OvergrowthStart), 0, 1)
	}
	if pull < 0 && r < OvercontractStart {
		return pull * clamp((r-OvercontractStop)/(OvercontractStart-OvercontractStop), 0, 1)
	}
	return pull
}

// MigrationPull returns the damped per-turn pull of every district, indexed
// like districts.
func (PopulationModel) MigrationPull(districts []District, view EffectView, adj AdjacencyGraph) []float64 {
	in := collectMigrationInputs(districts, adj)
	out := make([]float64, len(districts))
	for i, d := range districts {
		pull := MigrationPullLimit*in.scores(i) + tippingPull(d.Satisfaction) + view.For(d.ID).Get(EffectMigration)
		pull = clamp(pull, -MigrationPullLimit, MigrationPullLimit)
		out[i] = dampenPull(pull, d.Population, d.InitialPopulation)
	}
	return out
}

func (m PopulationModel) Apply(districts []District, view EffectView, adj AdjacencyGraph) []District {
	out := make([]District, len(districts))
	copy(out, districts)
	pulls := m.MigrationPull(districts, view, adj)

	for i := range out {
		d := &out[i]
		if d.Population <= 0 {
			continue
		}
		fx := view.For(d.ID)
		buckets := d.PopulationByAge.Values()
		deltas := bucketDeltas(buckets, NaturalRate+fx.Get(EffectNaturalRate), pulls[i]*AccelMigration,
			clamp(fx.Get(EffectDisplacement), 0, MaxChangeRate))
		steps := roundDeltas(buckets, deltas, int(math.Floor(float64(d.Population)*MaxChangeRate)))

		prevPop := d.Population
		for b := range buckets {
			buckets[b] += steps[b]
		}
		d.PopulationByAge = AgeGroupsFrom(buckets)
		d.Population = d.PopulationByAge.Sum()

		hh := float64(d.Households) * (1 + HouseholdLag*(float64(d.Population)/float64(prevPop)-1))
		d.Households = int(math.Round(hh))
		if d.Population > 0 {
			d.Households = max(1, d.Households)
		}
	}
	return out
}

// bucketDeltas returns the fractional per-bucket change before rounding.
// Every bucket and the aggregate stay within MaxChangeRate.
func bucketDeltas(buckets [AgeGroupCount]int, natural, migration, displacement float64) [AgeGroupCount]float64 {
	var deltas [AgeGroupCount]float64
	total := 0
	for b, n := range buckets {
		total += n
		v := float64(n)
		limit := v * MaxChangeRate
		deltas[b] = clamp(v*(natural+migration*bucketMobility[b]), -limit, limit)
	}
	limit := float64(total) * MaxChangeRate
	rescale(&deltas, limit)

	if displacement > 0 {
		for b, n := range buckets {
			deltas[b] -= float64(n) * displacement
		}
		rescale(&deltas, limit)
	}
	return deltas
}

// rescale shrinks all deltas by one shared factor so their sum stays within
// ±limit.
func rescale(deltas *[AgeGroupCount]float64, limit float64) {
	sum := 0.0
	for _, v := range deltas {
		sum += v
	}
	if math.Abs(sum) <= limit || sum == 0 {
		return
	}
	f := limit / math.Abs(sum)
	for b := range deltas {
		deltas[b] *= f
	}
}

// roundDeltas rounds per bucket, then walks the largest steps back toward
// zero until the aggregate fits within capacity. No bucket goes negative.
func roundDeltas(buckets [AgeGroupCount]int, deltas [AgeGroupCount]float64, capacity int) [AgeGroupCount]int {
	var steps [AgeGroupCount]int
	sum := 0
	for b := range deltas {
		steps[b] = max(int(math.Round(deltas[b])), -buckets[b])
		sum += steps[b]
	}
	for sum > capacity || sum < -capacity {
		sign := 1
		if sum < 0 {
			sign = -1
		}
		pick := -1
		for b := range steps {
			if steps[b]*sign <= 0 {
				continue
			}
			if pick < 0 || steps[b]*sign > steps[pick]*sign {
				pick = b
			}
		}
		if pick < 0 {
			break
		}
		steps[pick] -= sign
		sum -= sign
	}
	return steps
}
