package city

import (
	"math"

	"github.com/samber/lo"
)

func clamp(v, low, high float64) float64 {
	return lo.Clamp(v, low, high)
}

func round(v float64, places int) float64 {
	p := math.Pow(10, float64(places))
	return math.Round(v*p) / p
}

// softCap leaves ratios up to 1 untouched and compresses larger ones
// logarithmically.
func softCap(ratio float64) float64 {
	if ratio <= 1 {
		return ratio
	}
	return 1 + math.Log(ratio)
}

func safeDiv(num, den float64) float64 {
	return num / math.Max(1, den)
}

// ratioOr returns num/den, or fallback when den is not positive.
func ratioOr(num, den, fallback float64) float64 {
	if den <= 0 {
		return fallback
	}
	return num / den
}

func mean(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	return lo.Sum(values) / float64(len(values))
}

func stddev(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	m := mean(values)
	acc := 0.0
	for _, v := range values {
		acc += (v - m) * (v - m)
	}
	return math.Sqrt(acc / float64(len(values)))
}

// normalizedScore centers v on the city average and scales by the spread,
// returning 0 for a degenerate (all-equal) field.
func normalizedScore(v, avg, spread float64) float64 {
	if spread <= 1e-9 {
		return 0
	}
	return clamp((v-avg)/spread, -1, 1)
}
