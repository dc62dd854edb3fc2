package turn

import (
	"context"

	"aimapo/internal/app/ports"
	"aimapo/internal/domain/calendar"
	"aimapo/internal/domain/city"
)

type stubTxManager struct{}

func (stubTxManager) RunInTx(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type stubSessions struct {
	byID  map[string]ports.GameSession
	saves int
}

func (r *stubSessions) Get(_ context.Context, id string) (ports.GameSession, error) {
	s, ok := r.byID[id]
	if !ok {
		return ports.GameSession{}, ports.ErrNotFound
	}
	return s, nil
}

func (r *stubSessions) Create(_ context.Context, s ports.GameSession) error {
	if _, exists := r.byID[s.ID]; exists {
		return ports.ErrConflict
	}
	r.byID[s.ID] = s
	return nil
}

func (r *stubSessions) SaveWithVersion(_ context.Context, s ports.GameSession, expectedVersion int64) error {
	current, ok := r.byID[s.ID]
	if !ok {
		return ports.ErrNotFound
	}
	if current.Version != expectedVersion {
		return ports.ErrConflict
	}
	r.byID[s.ID] = s
	r.saves++
	return nil
}

type stubExecutions struct {
	byKey map[string]ports.TurnExecutionRecord
}

func (r *stubExecutions) GetByIdempotencyKey(_ context.Context, sessionID, key string) (*ports.TurnExecutionRecord, error) {
	rec, ok := r.byKey[sessionID+"::"+key]
	if !ok {
		return nil, ports.ErrNotFound
	}
	return &rec, nil
}

func (r *stubExecutions) SaveExecution(_ context.Context, rec ports.TurnExecutionRecord) error {
	r.byKey[rec.SessionID+"::"+rec.IdempotencyKey] = rec
	return nil
}

type stubJournal struct {
	entries []ports.JournalEntry
}

func (r *stubJournal) Append(_ context.Context, _ string, entries []ports.JournalEntry) error {
	r.entries = append(r.entries, entries...)
	return nil
}

func (r *stubJournal) ListBySessionID(_ context.Context, _ string, _ int) ([]ports.JournalEntry, error) {
	return r.entries, nil
}

type stubCatalog struct {
	cat ports.Catalog
}

func (p stubCatalog) Catalog(context.Context) (ports.Catalog, error) {
	return p.cat, nil
}

type stubMetrics struct {
	success  []string
	events   []string
	conflict int
	failure  int
}

func (m *stubMetrics) RecordSuccess(outcome string) {
	m.success = append(m.success, outcome)
}

func (m *stubMetrics) RecordEvent(eventID string) {
	m.events = append(m.events, eventID)
}

func (m *stubMetrics) RecordConflict() {
	m.conflict++
}

func (m *stubMetrics) RecordFailure() {
	m.failure++
}

func testDistrict(id string, ages city.AgeGroups, businesses int) city.District {
	pop := ages.Sum()
	return city.District{
		ID:                id,
		Name:              id,
		PopulationByAge:   ages,
		Households:        pop / 2,
		Businesses:        businesses,
		Workers:           businesses * 3,
		CommerceVitality:  60,
		CommerceCharacter: 70,
		Living:            city.LivingPopulation{WeekdayDay: pop, WeekdayNight: pop, WeekendDay: pop, WeekendNight: pop},
		Factors:           city.Factors{Economy: 55, Transport: 55, Housing: 55, Safety: 55, Culture: 55, Welfare: 55},
		TransitScore:      60,
	}
}

func floatPtr(v float64) *float64 { return &v }

func testCatalog() ports.Catalog {
	return ports.Catalog{
		Districts: []city.District{
			testDistrict("east", city.AgeGroups{Child: 800, Teen: 700, Youth: 3000, MidAge: 3500, Senior: 1200, Elderly: 800}, 900),
			testDistrict("west", city.AgeGroups{Child: 900, Teen: 600, Youth: 2500, MidAge: 3600, Senior: 1400, Elderly: 1000}, 700),
		},
		Finance: city.Finance{Revenue: city.Revenue{LocalTax: 2100, CityGrant: 3800, Subsidy: 2680, OtherIncome: 420}},
		Adjacency: city.NewAdjacencyGraph(map[string]map[string]float64{
			"east": {"west": 0.3},
			"west": {"east": 0.3},
		}),
		Policies: []city.PolicyDefinition{
			{ID: "p-market", Name: "Market", Cost: 50, Duration: 6, Effects: city.Effects{city.EffectNewBizBonus: 0.01}},
			{ID: "p-bus", Name: "Bus", Cost: 40, Delay: 1, Duration: 8, Effects: city.Effects{city.EffectSatTransport: 1}},
			{ID: "p-park", Name: "Park", Cost: 30, Effects: city.Effects{city.EffectSatCulture: 0.5}},
			{ID: "p-rent", Name: "Rent cap", Cost: 60, Targets: []string{"east"}, Effects: city.Effects{city.EffectRentPressure: -0.002}},
		},
		Events: []city.GameEvent{
			{
				ID:      "e-festival",
				Name:    "Festival",
				Trigger: city.Trigger{Kind: city.TriggerTurn, Turn: 2},
				OneShot: true,
				Choices: []city.EventChoiceDef{
					{ID: "host", Label: "Host", Cost: 100, Duration: 2, Effects: city.Effects{city.EffectSatCulture: 4}},
					{ID: "skip", Label: "Skip", Duration: 1, Effects: city.Effects{city.EffectSatCulture: -1}},
				},
			},
			{
				ID:      "e-never",
				Name:    "Never",
				Trigger: city.Trigger{Kind: city.TriggerThreshold, Metric: "avg_satisfaction", Below: floatPtr(-1)},
				Choices: []city.EventChoiceDef{{ID: "ok", Label: "OK", Duration: 1}},
			},
		},
		Pledges: []city.Pledge{{ID: "pl-sat", Name: "Content", Kind: city.PledgeSatisfaction, Target: 30, Points: 10}},
	}
}

func newSession(id string, cat ports.Catalog, maxTurns int) ports.GameSession {
	return ports.GameSession{
		ID:          id,
		Seed:        42,
		State:       city.NewGameState(cat.Districts, cat.Finance, cat.Pledges, maxTurns, calendar.Default()),
		EventLedger: map[string]int{},
		Version:     1,
	}
}
