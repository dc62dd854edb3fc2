package city

import "aimapo/internal/domain/calendar"

func fixtureDistrict(id string, ages AgeGroups, businesses, workers int, transit float64) District {
	pop := ages.Sum()
	return District{
		ID:                id,
		Name:              id,
		Population:        pop,
		PopulationByAge:   ages,
		Households:        pop * 10 / 22,
		Businesses:        businesses,
		Workers:           workers,
		CommerceVitality:  60,
		RentPressure:      0.002,
		CommerceCharacter: 65,
		Living: LivingPopulation{
			WeekdayDay:   pop * 11 / 10,
			WeekdayNight: pop,
			WeekendDay:   pop * 21 / 20,
			WeekendNight: pop * 19 / 20,
		},
		Factors: Factors{
			Economy:   55,
			Transport: 55,
			Housing:   52,
			Safety:    58,
			Culture:   54,
			Welfare:   53,
		},
		TransitScore: transit,
		Blocks:       BlockSummary{Total: 40, Residential: 24, Commercial: 8, Mixed: 6, Green: 2},
	}
}

func fixtureState() GameState {
	districts := []District{
		fixtureDistrict("alpha", AgeGroups{Child: 1500, Teen: 1200, Youth: 5200, MidAge: 7000, Senior: 3300, Elderly: 2800}, 2400, 9000, 72),
		fixtureDistrict("bravo", AgeGroups{Child: 1100, Teen: 900, Youth: 6100, MidAge: 5200, Senior: 2500, Elderly: 2200}, 3100, 11000, 80),
		fixtureDistrict("charlie", AgeGroups{Child: 1700, Teen: 1400, Youth: 3300, MidAge: 6800, Senior: 3600, Elderly: 3700}, 1300, 5200, 55),
		fixtureDistrict("delta", AgeGroups{Child: 1300, Teen: 1000, Youth: 4200, MidAge: 5600, Senior: 3000, Elderly: 2900}, 1700, 6400, 63),
	}
	finance := Finance{
		Revenue: Revenue{LocalTax: 2100, CityGrant: 3800, Subsidy: 2680, OtherIncome: 420},
	}
	pledges := []Pledge{
		{ID: "grow", Name: "Grow", Kind: PledgePopulationGrowth, Target: 2, Points: 20},
		{ID: "happy", Name: "Happy", Kind: PledgeSatisfaction, Target: 40, Points: 10},
	}
	return NewGameState(districts, finance, pledges, DefaultMaxTurns, calendar.Default())
}

func fixtureAdjacency() AdjacencyGraph {
	return NewAdjacencyGraph(map[string]map[string]float64{
		"alpha":   {"bravo": 0.3, "charlie": 0.2},
		"bravo":   {"alpha": 0.3, "delta": 0.25},
		"charlie": {"alpha": 0.2, "delta": 0.2},
		"delta":   {"bravo": 0.25, "charlie": 0.2},
	})
}

func balanced() *Allocation {
	a := BalancedAllocation()
	return &a
}

func runTurns(state GameState, adj AdjacencyGraph, turns int, actions func(turn int) Actions) []GameState {
	out := make([]GameState, 0, turns+1)
	out = append(out, state)
	for i := 0; i < turns; i++ {
		state = Tick(state, actions(i), adj)
		out = append(out, state)
	}
	return out
}
