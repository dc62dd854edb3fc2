package city

type AgeGroup int

const (
	AgeChild AgeGroup = iota
	AgeTeen
	AgeYouth
	AgeMidAge
	AgeSenior
	AgeElderly
	AgeGroupCount
)

type AgeGroups struct {
	Child   int `json:"child" yaml:"child"`
	Teen    int `json:"teen" yaml:"teen"`
	Youth   int `json:"youth" yaml:"youth"`
	MidAge  int `json:"mid_age" yaml:"mid_age"`
	Senior  int `json:"senior" yaml:"senior"`
	Elderly int `json:"elderly" yaml:"elderly"`
}

func (a AgeGroups) Values() [AgeGroupCount]int {
	return [AgeGroupCount]int{a.Child, a.Teen, a.Youth, a.MidAge, a.Senior, a.Elderly}
}

func AgeGroupsFrom(v [AgeGroupCount]int) AgeGroups {
	return AgeGroups{
		Child:   v[AgeChild],
		Teen:    v[AgeTeen],
		Youth:   v[AgeYouth],
		MidAge:  v[AgeMidAge],
		Senior:  v[AgeSenior],
		Elderly: v[AgeElderly],
	}
}

func (a AgeGroups) Sum() int {
	total := 0
	for _, n := range a.Values() {
		total += n
	}
	return total
}

type Cohort string

const (
	CohortYouth   Cohort = "youth"
	CohortMidAge  Cohort = "mid_age"
	CohortSenior  Cohort = "senior"
	CohortElderly Cohort = "elderly"
)

type Factor string

const (
	FactorEconomy   Factor = "economy"
	FactorTransport Factor = "transport"
	FactorHousing   Factor = "housing"
	FactorSafety    Factor = "safety"
	FactorCulture   Factor = "culture"
	FactorWelfare   Factor = "welfare"
)

// AllFactors lists the satisfaction factors in update order.
var AllFactors = []Factor{FactorEconomy, FactorTransport, FactorHousing, FactorSafety, FactorCulture, FactorWelfare}

type Factors struct {
	Economy   float64 `json:"economy" yaml:"economy"`
	Transport float64 `json:"transport" yaml:"transport"`
	Housing   float64 `json:"housing" yaml:"housing"`
	Safety    float64 `json:"safety" yaml:"safety"`
	Culture   float64 `json:"culture" yaml:"culture"`
	Welfare   float64 `json:"welfare" yaml:"welfare"`
}

func (f Factors) Get(factor Factor) float64 {
	switch factor {
	case FactorEconomy:
		return f.Economy
	case FactorTransport:
		return f.Transport
	case FactorHousing:
		return f.Housing
	case FactorSafety:
		return f.Safety
	case FactorCulture:
		return f.Culture
	case FactorWelfare:
		return f.Welfare
	default:
		return 0
	}
}

func (f *Factors) Set(factor Factor, v float64) {
	switch factor {
	case FactorEconomy:
		f.Economy = v
	case FactorTransport:
		f.Transport = v
	case FactorHousing:
		f.Housing = v
	case FactorSafety:
		f.Safety = v
	case FactorCulture:
		f.Culture = v
	case FactorWelfare:
		f.Welfare = v
	}
}

func (f *Factors) Add(factor Factor, delta float64) {
	f.Set(factor, f.Get(factor)+delta)
}

// LivingPopulation is the head count physically present in a district,
// as opposed to the resident population.
type LivingPopulation struct {
	WeekdayDay   int `json:"weekday_day" yaml:"weekday_day"`
	WeekdayNight int `json:"weekday_night" yaml:"weekday_night"`
	WeekendDay   int `json:"weekend_day" yaml:"weekend_day"`
	WeekendNight int `json:"weekend_night" yaml:"weekend_night"`
}

func (l LivingPopulation) quadrants() [4]int {
	return [4]int{l.WeekdayDay, l.WeekdayNight, l.WeekendDay, l.WeekendNight}
}

func livingFrom(q [4]int) LivingPopulation {
	return LivingPopulation{WeekdayDay: q[0], WeekdayNight: q[1], WeekendDay: q[2], WeekendNight: q[3]}
}

type BlockSummary struct {
	Total       int `json:"total" yaml:"total"`
	Residential int `json:"residential" yaml:"residential"`
	Commercial  int `json:"commercial" yaml:"commercial"`
	Mixed       int `json:"mixed" yaml:"mixed"`
	Green       int `json:"green" yaml:"green"`
}

// District holds no references, so a copy is a deep copy.
type District struct {
	ID                string           `json:"id" yaml:"id"`
	Name              string           `json:"name" yaml:"name"`
	Population        int              `json:"population" yaml:"population"`
	PopulationByAge   AgeGroups        `json:"population_by_age" yaml:"population_by_age"`
	Households        int              `json:"households" yaml:"households"`
	Businesses        int              `json:"businesses" yaml:"businesses"`
	Workers           int              `json:"workers" yaml:"workers"`
	CommerceVitality  float64          `json:"commerce_vitality" yaml:"commerce_vitality"`
	RentPressure      float64          `json:"rent_pressure" yaml:"rent_pressure"`
	CommerceCharacter float64          `json:"commerce_character" yaml:"commerce_character"`
	Living            LivingPopulation `json:"living_population" yaml:"living_population"`
	Satisfaction      float64          `json:"satisfaction" yaml:"satisfaction"`
	Factors           Factors          `json:"satisfaction_factors" yaml:"satisfaction_factors"`
	TransitScore      float64          `json:"transit_score" yaml:"transit_score"`
	Blocks            BlockSummary     `json:"blocks" yaml:"blocks"`
	InitialPopulation int              `json:"initial_population" yaml:"-"`
	InitialBusinesses int              `json:"initial_businesses" yaml:"-"`
	BaselineCaptured  bool             `json:"baseline_captured" yaml:"-"`
}

type BudgetCategory string

const (
	BudgetEconomy     BudgetCategory = "economy"
	BudgetTransport   BudgetCategory = "transport"
	BudgetCulture     BudgetCategory = "culture"
	BudgetEnvironment BudgetCategory = "environment"
	BudgetEducation   BudgetCategory = "education"
	BudgetWelfare     BudgetCategory = "welfare"
	BudgetSafety      BudgetCategory = "safety"
)

var AllBudgetCategories = []BudgetCategory{
	BudgetEconomy, BudgetTransport, BudgetCulture, BudgetEnvironment, BudgetEducation, BudgetWelfare, BudgetSafety,
}

type Allocation struct {
	Economy     float64 `json:"economy" yaml:"economy"`
	Transport   float64 `json:"transport" yaml:"transport"`
	Culture     float64 `json:"culture" yaml:"culture"`
	Environment float64 `json:"environment" yaml:"environment"`
	Education   float64 `json:"education" yaml:"education"`
	Welfare     float64 `json:"welfare" yaml:"welfare"`
	Safety      float64 `json:"safety" yaml:"safety"`
}

// BalancedAllocation is the 15/15/10/10/15/20/15 reference split.
func BalancedAllocation() Allocation {
	return OptimalAllocation
}

func (a Allocation) Get(c BudgetCategory) float64 {
	switch c {
	case BudgetEconomy:
		return a.Economy
	case BudgetTransport:
		return a.Transport
	case BudgetCulture:
		return a.Culture
	case BudgetEnvironment:
		return a.Environment
	case BudgetEducation:
		return a.Education
	case BudgetWelfare:
		return a.Welfare
	case BudgetSafety:
		return a.Safety
	default:
		return 0
	}
}

func (a *Allocation) Set(c BudgetCategory, v float64) {
	switch c {
	case BudgetEconomy:
		a.Economy = v
	case BudgetTransport:
		a.Transport = v
	case BudgetCulture:
		a.Culture = v
	case BudgetEnvironment:
		a.Environment = v
	case BudgetEducation:
		a.Education = v
	case BudgetWelfare:
		a.Welfare = v
	case BudgetSafety:
		a.Safety = v
	}
}

func (a Allocation) Total() float64 {
	total := 0.0
	for _, c := range AllBudgetCategories {
		total += a.Get(c)
	}
	return total
}

type Revenue struct {
	LocalTax    float64 `json:"local_tax" yaml:"local_tax"`
	CityGrant   float64 `json:"city_grant" yaml:"city_grant"`
	Subsidy     float64 `json:"subsidy" yaml:"subsidy"`
	OtherIncome float64 `json:"other_income" yaml:"other_income"`
}

func (r Revenue) Total() float64 {
	return r.LocalTax + r.CityGrant + r.Subsidy + r.OtherIncome
}

// FinanceBaseline anchors the finance model; captured on the first tick.
type FinanceBaseline struct {
	Captured            bool    `json:"captured"`
	LocalTax            float64 `json:"local_tax"`
	CityGrant           float64 `json:"city_grant"`
	OtherIncome         float64 `json:"other_income"`
	FreeBudget          float64 `json:"free_budget"`
	TotalPopulation     int     `json:"total_population"`
	TotalBusinesses     int     `json:"total_businesses"`
	AvgCommerceVitality float64 `json:"avg_commerce_vitality"`
}

type Finance struct {
	TotalBudget        float64         `json:"total_budget" yaml:"total_budget"`
	MandatorySpend     float64         `json:"mandatory_spend" yaml:"mandatory_spend"`
	FreeBudget         float64         `json:"free_budget" yaml:"free_budget"`
	Revenue            Revenue         `json:"revenue" yaml:"revenue"`
	Allocation         Allocation      `json:"allocation" yaml:"allocation"`
	FiscalIndependence float64         `json:"fiscal_independence" yaml:"fiscal_independence"`
	PolicyCost         float64         `json:"policy_cost" yaml:"-"`
	EventCost          float64         `json:"event_cost" yaml:"-"`
	Baseline           FinanceBaseline `json:"baseline" yaml:"-"`
}

type Meta struct {
	Turn     int `json:"turn"`
	MaxTurns int `json:"max_turns"`
	Year     int `json:"year"`
	Month    int `json:"month"`
	Quarter  int `json:"quarter"`
}

type GameState struct {
	Meta           Meta           `json:"meta"`
	Districts      []District     `json:"districts"`
	Finance        Finance        `json:"finance"`
	ActivePolicies []ActivePolicy `json:"active_policies"`
	ActiveEvents   []ActiveEvent  `json:"active_events"`
	Pledges        []Pledge       `json:"pledges"`
	History        []TurnRecord   `json:"history"`
}

func (s GameState) District(id string) (District, bool) {
	for _, d := range s.Districts {
		if d.ID == id {
			return d, true
		}
	}
	return District{}, false
}

func (s GameState) GameOver() bool {
	return s.Meta.MaxTurns > 0 && s.Meta.Turn >= s.Meta.MaxTurns
}

// EventChoice is a resolved event choice handed to the tick.
type EventChoice struct {
	EventID   string   `json:"event_id"`
	ChoiceID  string   `json:"choice_id"`
	Districts []string `json:"districts,omitempty"`
	Duration  int      `json:"duration"`
	Cost      float64  `json:"cost"`
	Effects   Effects  `json:"effects"`
}

// Actions bundles one turn of player/AI input. Policy definitions and the
// event choice arrive already resolved against the catalog.
type Actions struct {
	Allocation     *Allocation        `json:"allocation,omitempty"`
	ActivatePolicy []PolicyDefinition `json:"activate_policies,omitempty"`
	CancelPolicy   []string           `json:"cancel_policies,omitempty"`
	EventChoice    *EventChoice       `json:"event_choice,omitempty"`
}
