package city

type PolicyCategory string

const (
	PolicyEconomy   PolicyCategory = "economy"
	PolicyHousing   PolicyCategory = "housing"
	PolicyTransport PolicyCategory = "transport"
	PolicyCulture   PolicyCategory = "culture"
	PolicyWelfare   PolicyCategory = "welfare"
	PolicySafety    PolicyCategory = "safety"
	PolicyUrban     PolicyCategory = "urban"
)

// PolicyDefinition is an immutable catalog entry. Duration 0 means the
// policy stays until cancelled; an empty Targets list means citywide.
type PolicyDefinition struct {
	ID       string         `json:"id"`
	Name     string         `json:"name"`
	Category PolicyCategory `json:"category"`
	Cost     float64        `json:"cost"`
	Delay    int            `json:"delay"`
	Duration int            `json:"duration"`
	Targets  []string       `json:"targets,omitempty"`
	Effects  Effects        `json:"effects"`
}

func (p PolicyDefinition) Permanent() bool {
	return p.Duration == 0
}

func (p PolicyDefinition) clone() PolicyDefinition {
	out := p
	out.Targets = append([]string(nil), p.Targets...)
	out.Effects = p.Effects.Clone()
	return out
}

type ActivePolicy struct {
	Policy         PolicyDefinition `json:"policy"`
	RemainDelay    int              `json:"remain_delay"`
	RemainDuration int              `json:"remain_duration"`
	TurnsActive    int              `json:"turns_active"`
}

func NewActivePolicy(def PolicyDefinition) ActivePolicy {
	return ActivePolicy{
		Policy:         def.clone(),
		RemainDelay:    max(0, def.Delay),
		RemainDuration: max(0, def.Duration),
	}
}

func (a ActivePolicy) Pending() bool {
	return a.RemainDelay > 0
}

type TriggerKind string

const (
	TriggerPeriodic  TriggerKind = "periodic"
	TriggerThreshold TriggerKind = "threshold"
	TriggerRandom    TriggerKind = "random"
	TriggerTurn      TriggerKind = "turn"
)

// Trigger parameters; only the fields of the chosen Kind are read.
type Trigger struct {
	Kind   TriggerKind `json:"kind"`
	Every  int         `json:"every,omitempty"`
	Offset int         `json:"offset,omitempty"`
	Metric string      `json:"metric,omitempty"`
	Below  *float64    `json:"below,omitempty"`
	Above  *float64    `json:"above,omitempty"`
	Turn   int         `json:"turn,omitempty"`
}

type EventChoiceDef struct {
	ID       string  `json:"id"`
	Label    string  `json:"label"`
	Cost     float64 `json:"cost"`
	Duration int     `json:"duration"`
	Effects  Effects `json:"effects"`
}

type GameEvent struct {
	ID          string           `json:"id"`
	Name        string           `json:"name"`
	Description string           `json:"description,omitempty"`
	Trigger     Trigger          `json:"trigger"`
	Probability float64          `json:"probability"`
	Cooldown    int              `json:"cooldown"`
	OneShot     bool             `json:"one_shot"`
	Districts   []string         `json:"districts,omitempty"`
	Choices     []EventChoiceDef `json:"choices"`
}

func (e GameEvent) Choice(id string) (EventChoiceDef, bool) {
	for _, c := range e.Choices {
		if c.ID == id {
			return c, true
		}
	}
	return EventChoiceDef{}, false
}

// ActiveEvent carries a resolved choice's satisfaction effects, applied
// pro-rated over TotalDuration turns.
type ActiveEvent struct {
	EventID        string   `json:"event_id"`
	ChoiceID       string   `json:"choice_id"`
	Districts      []string `json:"districts,omitempty"`
	TotalDuration  int      `json:"total_duration"`
	RemainDuration int      `json:"remain_duration"`
	Effects        Effects  `json:"effects"`
}

func newActiveEvent(choice EventChoice) ActiveEvent {
	duration := max(1, choice.Duration)
	return ActiveEvent{
		EventID:        choice.EventID,
		ChoiceID:       choice.ChoiceID,
		Districts:      append([]string(nil), choice.Districts...),
		TotalDuration:  duration,
		RemainDuration: duration,
		Effects:        choice.Effects.Satisfaction(),
	}
}
