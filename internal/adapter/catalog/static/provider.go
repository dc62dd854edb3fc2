package staticcatalog

import (
	"context"
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"
	"sync"

	"github.com/samber/lo"
	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"

	"aimapo/internal/app/ports"
	"aimapo/internal/domain/city"
)

//go:embed data/*.yaml
var embeddedData embed.FS

var log = logrus.WithField("module", "adapter/catalog")

var dataFiles = []string{"districts.yaml", "finance.yaml", "adjacency.yaml", "policies.yaml", "events.yaml", "pledges.yaml"}

var ErrInvalidCatalog = errors.New("invalid catalog")

// Provider serves the catalog, loaded once. Files present under Root
// replace their embedded counterparts one by one.
type Provider struct {
	Root string

	once sync.Once
	cat  ports.Catalog
	err  error
}

func (p *Provider) Catalog(_ context.Context) (ports.Catalog, error) {
	p.once.Do(func() {
		data, err := fs.Sub(embeddedData, "data")
		if err != nil {
			p.err = err
			return
		}
		var override fs.FS
		if root := strings.TrimSpace(p.Root); root != "" {
			override = os.DirFS(root)
		}
		p.cat, p.err = Load(overlayFS{base: data, top: override})
		if p.err == nil {
			log.WithFields(logrus.Fields{
				"districts": len(p.cat.Districts),
				"policies":  len(p.cat.Policies),
				"events":    len(p.cat.Events),
				"override":  p.Root,
			}).Info("catalog loaded")
		}
	})
	return p.cat, p.err
}

type overlayFS struct {
	base fs.FS
	top  fs.FS
}

func (o overlayFS) Open(name string) (fs.File, error) {
	if o.top != nil {
		f, err := o.top.Open(name)
		if err == nil {
			return f, nil
		}
		if !errors.Is(err, fs.ErrNotExist) {
			return nil, err
		}
	}
	return o.base.Open(name)
}

type effectsDoc map[string]map[string]float64

type policyDoc struct {
	ID       string              `yaml:"id"`
	Name     string              `yaml:"name"`
	Category city.PolicyCategory `yaml:"category"`
	Cost     float64             `yaml:"cost"`
	Delay    int                 `yaml:"delay"`
	Duration int                 `yaml:"duration"`
	Targets  []string            `yaml:"targets"`
	Effects  effectsDoc          `yaml:"effects"`
}

type triggerDoc struct {
	Kind   city.TriggerKind `yaml:"kind"`
	Every  int              `yaml:"every"`
	Offset int              `yaml:"offset"`
	Metric string           `yaml:"metric"`
	Below  *float64         `yaml:"below"`
	Above  *float64         `yaml:"above"`
	Turn   int              `yaml:"turn"`
}

type choiceDoc struct {
	ID       string     `yaml:"id"`
	Label    string     `yaml:"label"`
	Cost     float64    `yaml:"cost"`
	Duration int        `yaml:"duration"`
	Effects  effectsDoc `yaml:"effects"`
}

type eventDoc struct {
	ID          string      `yaml:"id"`
	Name        string      `yaml:"name"`
	Description string      `yaml:"description"`
	Trigger     triggerDoc  `yaml:"trigger"`
	Probability float64     `yaml:"probability"`
	Cooldown    int         `yaml:"cooldown"`
	OneShot     bool        `yaml:"one_shot"`
	Districts   []string    `yaml:"districts"`
	Choices     []choiceDoc `yaml:"choices"`
}

type catalogDoc struct {
	Districts []city.District               `yaml:"districts"`
	Finance   city.Finance                  `yaml:"finance"`
	Adjacency map[string]map[string]float64 `yaml:"adjacency"`
	Policies  []policyDoc                   `yaml:"policies"`
	Events    []eventDoc                    `yaml:"events"`
	Pledges   []city.Pledge                 `yaml:"pledges"`
}

// Load reads every catalog file from fsys and validates the references
// between them.
func Load(fsys fs.FS) (ports.Catalog, error) {
	var doc catalogDoc
	for _, name := range dataFiles {
		b, err := fs.ReadFile(fsys, name)
		if err != nil {
			return ports.Catalog{}, fmt.Errorf("read catalog %s: %w", name, err)
		}
		var part catalogDoc
		if err := yaml.Unmarshal(b, &part); err != nil {
			return ports.Catalog{}, fmt.Errorf("parse catalog %s: %w", name, err)
		}
		doc.merge(part)
	}
	return build(doc)
}

func (d *catalogDoc) merge(part catalogDoc) {
	if len(part.Districts) > 0 {
		d.Districts = part.Districts
	}
	if part.Finance != (city.Finance{}) {
		d.Finance = part.Finance
	}
	if len(part.Adjacency) > 0 {
		d.Adjacency = part.Adjacency
	}
	if len(part.Policies) > 0 {
		d.Policies = part.Policies
	}
	if len(part.Events) > 0 {
		d.Events = part.Events
	}
	if len(part.Pledges) > 0 {
		d.Pledges = part.Pledges
	}
}

func parseEffects(owner string, nested effectsDoc) (city.Effects, error) {
	fx, unknown := city.ParseEffects(nested)
	if len(unknown) > 0 {
		return nil, fmt.Errorf("%w: %s has unknown effects %s", ErrInvalidCatalog, owner, strings.Join(unknown, ", "))
	}
	if fx.Get(city.EffectDisplacement) < 0 {
		return nil, fmt.Errorf("%w: %s has negative population.displacement", ErrInvalidCatalog, owner)
	}
	return fx, nil
}

// checkTrigger rejects threshold bounds the metric can never cross.
func checkTrigger(owner string, tr city.Trigger) error {
	if tr.Kind != city.TriggerThreshold {
		return nil
	}
	low, high, ok := city.MetricRange(tr.Metric)
	if !ok {
		return fmt.Errorf("%w: %s uses unknown metric %q", ErrInvalidCatalog, owner, tr.Metric)
	}
	if tr.Above == nil && tr.Below == nil {
		return fmt.Errorf("%w: %s threshold has no bound", ErrInvalidCatalog, owner)
	}
	if tr.Above != nil && *tr.Above >= high {
		return fmt.Errorf("%w: %s %s above %v is unreachable (max %v)", ErrInvalidCatalog, owner, tr.Metric, *tr.Above, high)
	}
	if tr.Below != nil && *tr.Below <= low {
		return fmt.Errorf("%w: %s %s below %v is unreachable (min %v)", ErrInvalidCatalog, owner, tr.Metric, *tr.Below, low)
	}
	return nil
}

func build(doc catalogDoc) (ports.Catalog, error) {
	if len(doc.Districts) == 0 {
		return ports.Catalog{}, fmt.Errorf("%w: no districts", ErrInvalidCatalog)
	}
	ids := lo.Map(doc.Districts, func(d city.District, _ int) string { return d.ID })
	if dups := lo.FindDuplicates(ids); len(dups) > 0 {
		return ports.Catalog{}, fmt.Errorf("%w: duplicate districts %v", ErrInvalidCatalog, dups)
	}
	for _, d := range doc.Districts {
		if d.PopulationByAge.Sum() != d.Population {
			return ports.Catalog{}, fmt.Errorf("%w: %s population %d != age buckets %d", ErrInvalidCatalog, d.ID, d.Population, d.PopulationByAge.Sum())
		}
	}
	known := func(owner string, refs []string) error {
		if missing := lo.Without(refs, ids...); len(missing) > 0 {
			return fmt.Errorf("%w: %s references unknown districts %v", ErrInvalidCatalog, owner, missing)
		}
		return nil
	}
	for from, targets := range doc.Adjacency {
		if err := known("adjacency", append([]string{from}, lo.Keys(targets)...)); err != nil {
			return ports.Catalog{}, err
		}
	}

	cat := ports.Catalog{
		Districts: doc.Districts,
		Finance:   doc.Finance,
		Adjacency: city.NewAdjacencyGraph(doc.Adjacency),
		Pledges:   doc.Pledges,
	}

	for _, p := range doc.Policies {
		if err := known("policy "+p.ID, p.Targets); err != nil {
			return ports.Catalog{}, err
		}
		fx, err := parseEffects("policy "+p.ID, p.Effects)
		if err != nil {
			return ports.Catalog{}, err
		}
		cat.Policies = append(cat.Policies, city.PolicyDefinition{
			ID:       p.ID,
			Name:     p.Name,
			Category: p.Category,
			Cost:     p.Cost,
			Delay:    p.Delay,
			Duration: p.Duration,
			Targets:  p.Targets,
			Effects:  fx,
		})
	}

	for _, e := range doc.Events {
		if err := known("event "+e.ID, e.Districts); err != nil {
			return ports.Catalog{}, err
		}
		if len(e.Choices) == 0 {
			return ports.Catalog{}, fmt.Errorf("%w: event %s has no choices", ErrInvalidCatalog, e.ID)
		}
		if err := checkTrigger("event "+e.ID, city.Trigger(e.Trigger)); err != nil {
			return ports.Catalog{}, err
		}
		ev := city.GameEvent{
			ID:          e.ID,
			Name:        e.Name,
			Description: e.Description,
			Trigger:     city.Trigger(e.Trigger),
			Probability: e.Probability,
			Cooldown:    e.Cooldown,
			OneShot:     e.OneShot,
			Districts:   e.Districts,
		}
		for _, c := range e.Choices {
			fx, err := parseEffects("event "+e.ID+"/"+c.ID, c.Effects)
			if err != nil {
				return ports.Catalog{}, err
			}
			ev.Choices = append(ev.Choices, city.EventChoiceDef{ID: c.ID, Label: c.Label, Cost: c.Cost, Duration: c.Duration, Effects: fx})
		}
		cat.Events = append(cat.Events, ev)
	}
	return cat, nil
}
