package city

import "math"

// updateLiving rescales each living-population quadrant by the resident and
// business change of its district. prior must be index-aligned with next.
func updateLiving(prior, next []District) []District {
	out := make([]District, len(next))
	copy(out, next)
	for i := range out {
		popRatio := ratioOr(float64(out[i].Population), float64(prior[i].Population), 1)
		bizRatio := ratioOr(float64(out[i].Businesses), float64(prior[i].Businesses), 1)
		q := out[i].Living.quadrants()
		for k := range q {
			scale := livingElasticity[k][0]*popRatio + livingElasticity[k][1]*bizRatio
			q[k] = max(0, int(math.Round(float64(q[k])*scale)))
		}
		out[i].Living = livingFrom(q)
	}
	return out
}
