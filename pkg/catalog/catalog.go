// Package catalog holds the immutable description of the plans and add-on
// packages offered by one business model.
package catalog

import (
	"fmt"
	"math"
	"strings"

	"github.com/samber/lo"

	ierr "revenue-forecast/pkg/errors"
	"revenue-forecast/pkg/models"
)

// ProbabilityTolerance is how far plan probabilities may drift from 1.0.
const ProbabilityTolerance = 0.01

// Group is a resolved mutually exclusive set of add-ons, in catalog order.
type Group struct {
	Name    string   `json:"name" yaml:"name"`
	Members []string `json:"members" yaml:"members"`
}

// Catalog is built once per run and shared read-only by every scenario.
type Catalog struct {
	name         string
	plans        []models.Plan
	addons       []models.AddonPackage
	groups       []Group
	streams      []string
	streamSet    map[string]struct{}
	displayNames map[string]string
	prices       map[string]float64
}

// New validates a business model and freezes it into a Catalog.
func New(m models.BusinessModel) (*Catalog, error) {
	total := lo.SumBy(m.Plans, func(p models.Plan) float64 { return p.Probability })
	if !(math.Abs(total-1.0) <= ProbabilityTolerance) {
		return nil, ierr.NewErrorf("plan probabilities must sum to 1.0, got %g", total).
			WithHintf("adjust the probabilities of the %d plans in model %q", len(m.Plans), m.Name).
			Mark(ierr.ErrConfiguration)
	}

	c := &Catalog{
		name:         m.Name,
		plans:        append([]models.Plan(nil), m.Plans...),
		addons:       make([]models.AddonPackage, 0, len(m.Addons)),
		streamSet:    make(map[string]struct{}, len(m.Plans)+len(m.Addons)),
		displayNames: make(map[string]string, len(m.Plans)+len(m.Addons)),
		prices:       make(map[string]float64, len(m.Plans)+len(m.Addons)),
	}

	for _, p := range c.plans {
		if err := c.register(p.Name, p.DisplayName, p.Price); err != nil {
			return nil, err
		}
	}
	for _, a := range m.Addons {
		if a.MaxQuantity < 1 {
			a.MaxQuantity = 1
		}
		if err := c.register(a.Name, a.DisplayName, a.Price); err != nil {
			return nil, err
		}
		c.addons = append(c.addons, a)
	}

	for _, g := range m.ExclusiveGroups {
		group, err := c.resolveGroup(g)
		if err != nil {
			return nil, err
		}
		c.groups = append(c.groups, group)
	}
	return c, nil
}

func (c *Catalog) register(key, display string, price float64) error {
	if key == "" {
		return ierr.NewError("plan or add-on without a name").
			Mark(ierr.ErrConfiguration)
	}
	if _, dup := c.streamSet[key]; dup {
		return ierr.NewErrorf("duplicate plan or add-on name %q", key).
			WithHint("plan and add-on names share one namespace and must be unique").
			Mark(ierr.ErrConfiguration)
	}
	if display == "" {
		display = key
	}
	c.streams = append(c.streams, key)
	c.streamSet[key] = struct{}{}
	c.displayNames[key] = display
	c.prices[key] = price
	return nil
}

func (c *Catalog) resolveGroup(g models.ExclusiveGroup) (Group, error) {
	explicit := lo.SliceToMap(g.Members, func(name string) (string, struct{}) { return name, struct{}{} })
	for name := range explicit {
		if _, ok := c.Addon(name); !ok {
			return Group{}, ierr.NewErrorf("exclusive group %q references unknown add-on %q", g.Name, name).
				Mark(ierr.ErrConfiguration)
		}
	}

	members := lo.FilterMap(c.addons, func(a models.AddonPackage, _ int) (string, bool) {
		_, listed := explicit[a.Name]
		byPrefix := g.Prefix != "" && strings.HasPrefix(a.Name, g.Prefix)
		return a.Name, listed || byPrefix
	})
	return Group{Name: g.Name, Members: members}, nil
}

// Name returns the business model the catalog was built from.
func (c *Catalog) Name() string { return c.name }

// Plans returns the plans in declaration order.
func (c *Catalog) Plans() []models.Plan {
	return append([]models.Plan(nil), c.plans...)
}

// Addons returns the add-on packages in declaration order.
func (c *Catalog) Addons() []models.AddonPackage {
	return append([]models.AddonPackage(nil), c.addons...)
}

// Groups returns the resolved mutually exclusive groups.
func (c *Catalog) Groups() []Group {
	return lo.Map(c.groups, func(g Group, _ int) Group {
		return Group{Name: g.Name, Members: append([]string(nil), g.Members...)}
	})
}

// BasePlan is the first declared plan; base hosting revenue is priced on it.
func (c *Catalog) BasePlan() models.Plan {
	return c.plans[0]
}

func (c *Catalog) Plan(name string) (models.Plan, bool) {
	return lo.Find(c.plans, func(p models.Plan) bool { return p.Name == name })
}

func (c *Catalog) Addon(name string) (models.AddonPackage, bool) {
	return lo.Find(c.addons, func(a models.AddonPackage) bool { return a.Name == name })
}

// Streams lists every revenue stream key: plans first, then add-ons.
func (c *Catalog) Streams() []string {
	return append([]string(nil), c.streams...)
}

// DisplayName returns the display text for a plan or add-on key.
func (c *Catalog) DisplayName(key string) string {
	if d, ok := c.displayNames[key]; ok {
		return d
	}
	return key
}

// StreamLabel labels a stream with its unit price, e.g. "Analytics ($47.00)".
func (c *Catalog) StreamLabel(key string) string {
	return fmt.Sprintf("%s ($%.2f)", c.DisplayName(key), c.prices[key])
}
