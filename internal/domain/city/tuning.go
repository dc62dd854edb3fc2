package city

const (
	DefaultMaxTurns = 48

	// Population.
	MaxChangeRate      = 0.02
	NaturalRate        = -0.0015
	AccelMigration     = 1.5
	MigrationPullLimit = 0.03

	SatisfactionInflowThreshold  = 58.0
	SatisfactionOutflowThreshold = 40.0
	TippingInflowMax             = 0.006
	TippingOutflowMax            = 0.008

	OvergrowthStart     = 1.15
	OvergrowthStop      = 1.20
	OvercontractStart   = 0.85
	OvercontractStop    = 0.80
	ChildFollowFraction = 0.8
	HouseholdLag        = 0.3

	MobilityYouth   = 1.4
	MobilityMidAge  = 1.0
	MobilitySenior  = 0.6
	MobilityElderly = 0.3

	// Economy.
	BaseNewBizRate         = 0.012
	BaseCloseRate          = 0.011
	DemandMin              = 0.8
	DemandMax              = 1.3
	DemandDamping          = 0.5
	NewBizBonusHalfGrowth  = 0.05
	CompetitionSensitivity = 0.005
	CompetitionCap         = 0.01
	RentThreshold          = 70.0
	RentSensitivity        = 0.0004
	RentSpillover          = 0.15
	RentMax                = 0.03
	CharacterErosion       = 3.0
	CharacterTarget        = 80.0
	CharacterRecovery      = 0.02
	CharacterMin           = 20.0
	CharacterMax           = 100.0
	BudgetBonusSlope       = 0.2
	BudgetBonusMin         = 0.85
	BudgetBonusMax         = 1.2

	// Finance.
	MandatoryRatio     = 0.5
	TaxElasticity      = 0.8
	TaxSecularDecline  = -0.001
	TaxAccel           = 1.5
	LocalTaxFloorRatio = 0.5

	// Budget.
	DiminishingSlope = 0.3
	EfficiencyCap    = 3.0

	// Satisfaction.
	SatisfactionDecay        = 0.5
	RecoveryScale            = 0.5
	RecoveryAtOptimal        = 0.7
	RecoveryGainMultiplier   = 0.6
	StructuralRate           = 0.1
	ConvergenceRate          = 0.05
	BaselineDeclineThreshold = 0.95
	BaselineDeclineSlope     = 10.0
	BaselinePenaltyMax       = 0.5
	OvercrowdThreshold       = 1.5
	DefaultSatisfaction      = 50.0
)

// OptimalAllocation is the per-category spend share where diminishing
// returns begin. It matches the balanced allocation.
var OptimalAllocation = Allocation{
	Economy:     15,
	Transport:   15,
	Culture:     10,
	Environment: 10,
	Education:   15,
	Welfare:     20,
	Safety:      15,
}

// budgetFactorWeights maps each budget category onto the factors it restores.
var budgetFactorWeights = map[BudgetCategory]map[Factor]float64{
	BudgetEconomy:     {FactorEconomy: 0.7, FactorHousing: 0.2},
	BudgetTransport:   {FactorTransport: 1.0},
	BudgetCulture:     {FactorCulture: 0.8},
	BudgetEnvironment: {FactorHousing: 0.3, FactorSafety: 0.2, FactorCulture: 0.2, FactorWelfare: 0.1},
	BudgetEducation:   {FactorWelfare: 0.4, FactorCulture: 0.2},
	BudgetWelfare:     {FactorWelfare: 0.8, FactorHousing: 0.3},
	BudgetSafety:      {FactorSafety: 1.0},
}

// cohortWeights weights the six factors for each adult cohort. Children and
// teens are counted with midAge.
var cohortWeights = map[Cohort]Factors{
	CohortYouth:   {Economy: 0.25, Transport: 0.20, Housing: 0.25, Safety: 0.10, Culture: 0.15, Welfare: 0.05},
	CohortMidAge:  {Economy: 0.20, Transport: 0.15, Housing: 0.20, Safety: 0.20, Culture: 0.10, Welfare: 0.15},
	CohortSenior:  {Economy: 0.15, Transport: 0.15, Housing: 0.15, Safety: 0.20, Culture: 0.10, Welfare: 0.25},
	CohortElderly: {Economy: 0.10, Transport: 0.15, Housing: 0.10, Safety: 0.25, Culture: 0.10, Welfare: 0.30},
}

var migrationWeights = struct {
	Jobs, Housing, Infrastructure, Safety, Welfare float64
}{0.30, 0.25, 0.20, 0.10, 0.15}

var demandWeights = struct {
	Living, Resident, Transit, Spillover float64
}{0.4, 0.3, 0.2, 0.1}

// livingElasticity is the (resident, commerce) share of each quadrant.
var livingElasticity = [4][2]float64{
	{0.40, 0.60},
	{0.80, 0.20},
	{0.50, 0.50},
	{0.85, 0.15},
}
