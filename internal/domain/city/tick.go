package city

import "aimapo/internal/domain/calendar"

// TurnEngine advances a game state by one turn. It has no state of its own;
// every call is a pure function of its inputs.
type TurnEngine struct {
	Calendar calendar.Calendar

	economy      EconomyModel
	population   PopulationModel
	finance      FinanceModel
	satisfaction SatisfactionModel
}

func NewTurnEngine(cal calendar.Calendar) TurnEngine {
	return TurnEngine{Calendar: cal}
}

var defaultEngine = NewTurnEngine(calendar.Default())

// Tick advances state by one turn with the default calendar.
func Tick(state GameState, actions Actions, adj AdjacencyGraph) GameState {
	return defaultEngine.Tick(state, actions, adj)
}

// Tick never mutates state or actions. Actions are expected to be
// validated by the caller.
func (e TurnEngine) Tick(state GameState, actions Actions, adj AdjacencyGraph) GameState {
	alloc := state.Finance.Allocation
	if actions.Allocation != nil {
		alloc = *actions.Allocation
	}

	prior := make([]District, len(state.Districts))
	copy(prior, state.Districts)
	for i := range prior {
		if prior[i].BaselineCaptured {
			continue
		}
		prior[i].InitialPopulation = prior[i].Population
		prior[i].InitialBusinesses = prior[i].Businesses
		prior[i].BaselineCaptured = true
	}

	fin := state.Finance
	fin.Allocation = alloc
	if !fin.Baseline.Captured {
		fin.Baseline = captureFinanceBaseline(state.Finance, prior)
	}
	budget := ComputeBudgetEffects(alloc, state.Finance.FreeBudget, fin.Baseline.FreeBudget)

	activate := make([]PolicyDefinition, len(actions.ActivatePolicy))
	for i, def := range actions.ActivatePolicy {
		activate[i] = def.clone()
	}
	policies := applyPolicyActions(clonePolicies(state.ActivePolicies), activate, actions.CancelPolicy)
	charge := policyCost(policies)

	events := cloneEvents(state.ActiveEvents)
	eventCost := 0.0
	if actions.EventChoice != nil {
		events = append(events, newActiveEvent(*actions.EventChoice))
		eventCost = actions.EventChoice.Cost
	}

	policies, view := Aggregate(policies)

	districts := e.economy.Apply(prior, view, adj, budget)
	districts = e.population.Apply(districts, view, adj)
	nextTurn := state.Meta.Turn + 1
	fin = e.finance.Apply(fin, districts, view.Citywide(), nextTurn, charge, eventCost)
	districts = e.satisfaction.Apply(districts, view, adj, budget)
	districts, events = decayEvents(districts, events)
	districts = updateLiving(prior, districts)

	date := e.Calendar.At(nextTurn)
	maxTurns := state.Meta.MaxTurns
	if maxTurns <= 0 {
		maxTurns = DefaultMaxTurns
	}

	next := GameState{
		Meta: Meta{
			Turn:     nextTurn,
			MaxTurns: maxTurns,
			Year:     date.Year,
			Month:    date.Month,
			Quarter:  date.Quarter,
		},
		Districts:      districts,
		Finance:        fin,
		ActivePolicies: policies,
		ActiveEvents:   events,
		Pledges:        clonePledges(state.Pledges),
		History:        cloneHistory(state.History),
	}
	pledges, progress := EvaluatePledges(next)
	next.Pledges = pledges
	next.History = append(next.History, buildTurnRecord(next, progress, actions.EventChoice))
	return next
}
