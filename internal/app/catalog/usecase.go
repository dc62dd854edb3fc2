package catalog

import (
	"context"
	"fmt"

	"github.com/samber/lo"

	"aimapo/internal/app/ports"
	"aimapo/internal/domain/city"
)

type DistrictView struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	Population int    `json:"population"`
	Businesses int    `json:"businesses"`
}

type EventView struct {
	ID          string                `json:"id"`
	Name        string                `json:"name"`
	Description string                `json:"description,omitempty"`
	Trigger     city.TriggerKind      `json:"trigger"`
	Choices     []city.EventChoiceDef `json:"choices"`
}

type Response struct {
	Districts []DistrictView          `json:"districts"`
	Policies  []city.PolicyDefinition `json:"policies"`
	Events    []EventView             `json:"events"`
	Pledges   []city.Pledge           `json:"pledges"`
}

type UseCase struct {
	Provider ports.CatalogProvider
}

// Execute lists what a player can pick from. Trigger thresholds and
// probabilities stay hidden.
func (u UseCase) Execute(ctx context.Context) (Response, error) {
	cat, err := u.Provider.Catalog(ctx)
	if err != nil {
		return Response{}, fmt.Errorf("load catalog: %w", err)
	}
	return Response{
		Districts: lo.Map(cat.Districts, func(d city.District, _ int) DistrictView {
			return DistrictView{ID: d.ID, Name: d.Name, Population: d.PopulationByAge.Sum(), Businesses: d.Businesses}
		}),
		Policies: cat.Policies,
		Events: lo.Map(cat.Events, func(e city.GameEvent, _ int) EventView {
			return EventView{ID: e.ID, Name: e.Name, Description: e.Description, Trigger: e.Trigger.Kind, Choices: e.Choices}
		}),
		Pledges: cat.Pledges,
	}, nil
}
