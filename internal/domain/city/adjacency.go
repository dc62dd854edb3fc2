package city

import "sort"

type Edge struct {
	To     string  `json:"to"`
	Weight float64 `json:"weight"`
}

// AdjacencyGraph is an immutable weighted directed graph between districts.
// Weights are not normalized and edges need not be symmetric.
type AdjacencyGraph struct {
	edges map[string][]Edge
}

// NewAdjacencyGraph copies the given weights into sorted edge lists.
// Self loops and non-positive weights are dropped.
func NewAdjacencyGraph(weights map[string]map[string]float64) AdjacencyGraph {
	edges := make(map[string][]Edge, len(weights))
	for from, targets := range weights {
		list := make([]Edge, 0, len(targets))
		for to, w := range targets {
			if to == from || w <= 0 {
				continue
			}
			list = append(list, Edge{To: to, Weight: w})
		}
		sort.Slice(list, func(i, j int) bool { return list[i].To < list[j].To })
		edges[from] = list
	}
	return AdjacencyGraph{edges: edges}
}

// Neighbors returns the outgoing edges of id sorted by target id. The
// returned slice must not be modified.
func (g AdjacencyGraph) Neighbors(id string) []Edge {
	return g.edges[id]
}

func (g AdjacencyGraph) TotalWeight(id string) float64 {
	total := 0.0
	for _, e := range g.edges[id] {
		total += e.Weight
	}
	return total
}

// weightedNeighborMean averages value over id's neighbors. Neighbors missing
// from value are skipped; ok is false when none contributed.
func (g AdjacencyGraph) weightedNeighborMean(id string, value map[string]float64) (float64, bool) {
	sum, weight := 0.0, 0.0
	for _, e := range g.edges[id] {
		v, found := value[e.To]
		if !found {
			continue
		}
		sum += v * e.Weight
		weight += e.Weight
	}
	if weight == 0 {
		return 0, false
	}
	return sum / weight, true
}
