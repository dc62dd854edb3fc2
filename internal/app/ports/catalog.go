package ports

import (
	"context"

	"aimapo/internal/domain/city"
)

// Catalog is the load-once data a game is built from.
type Catalog struct {
	Districts []city.District
	Finance   city.Finance
	Adjacency city.AdjacencyGraph
	Policies  []city.PolicyDefinition
	Events    []city.GameEvent
	Pledges   []city.Pledge
}

func (c Catalog) Policy(id string) (city.PolicyDefinition, bool) {
	for _, p := range c.Policies {
		if p.ID == id {
			return p, true
		}
	}
	return city.PolicyDefinition{}, false
}

func (c Catalog) Event(id string) (city.GameEvent, bool) {
	for _, e := range c.Events {
		if e.ID == id {
			return e, true
		}
	}
	return city.GameEvent{}, false
}

func (c Catalog) Pledge(id string) (city.Pledge, bool) {
	for _, p := range c.Pledges {
		if p.ID == id {
			return p, true
		}
	}
	return city.Pledge{}, false
}

type CatalogProvider interface {
	Catalog(ctx context.Context) (Catalog, error)
}
