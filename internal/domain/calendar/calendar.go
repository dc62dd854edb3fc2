package calendar

type Season string

const (
	SeasonSpring Season = "spring"
	SeasonSummer Season = "summer"
	SeasonAutumn Season = "autumn"
	SeasonWinter Season = "winter"
)

type Config struct {
	StartYear  int
	StartMonth int
}

// Calendar maps turn numbers onto months. Turn 0 is the start month and
// every turn advances one month.
type Calendar struct {
	cfg Config
}

type Date struct {
	Year    int    `json:"year"`
	Month   int    `json:"month"`
	Quarter int    `json:"quarter"`
	Season  Season `json:"season"`
}

func New(cfg Config) Calendar {
	if cfg.StartYear <= 0 {
		cfg.StartYear = 2026
	}
	if cfg.StartMonth < 1 || cfg.StartMonth > 12 {
		cfg.StartMonth = 1
	}
	return Calendar{cfg: cfg}
}

func Default() Calendar {
	return New(Config{})
}

func (c Calendar) At(turn int) Date {
	if c.cfg.StartYear <= 0 || c.cfg.StartMonth < 1 || c.cfg.StartMonth > 12 {
		c = New(c.cfg)
	}
	if turn < 0 {
		turn = 0
	}
	months := c.cfg.StartMonth - 1 + turn
	month := months%12 + 1
	return Date{
		Year:    c.cfg.StartYear + months/12,
		Month:   month,
		Quarter: (month-1)/3 + 1,
		Season:  seasonOf(month),
	}
}

func seasonOf(month int) Season {
	switch month {
	case 3, 4, 5:
		return SeasonSpring
	case 6, 7, 8:
		return SeasonSummer
	case 9, 10, 11:
		return SeasonAutumn
	default:
		return SeasonWinter
	}
}
