// Package upsell draws the random plan and add-on choices of new customers.
package upsell

import (
	"revenue-forecast/pkg/catalog"
	"revenue-forecast/pkg/models"
)

// Source is the random stream consumed by the draws. *rand.Rand from
// math/rand/v2 satisfies it; each scenario run owns its own Source.
type Source interface {
	Float64() float64
	IntN(n int) int
}

// ChoosePlan picks a plan by walking the cumulative probabilities.
// When rounding leaves the draw above every boundary the first plan is returned.
func ChoosePlan(cat *catalog.Catalog, src Source) models.Plan {
	plans := cat.Plans()
	draw := src.Float64()
	cumulative := 0.0
	for _, p := range plans {
		cumulative += p.Probability
		if draw < cumulative {
			return p
		}
	}
	return plans[0]
}

// SelectBundle draws the add-ons of one new customer.
func SelectBundle(cat *catalog.Catalog, src Source) Bundle {
	qty := make(map[string]int, len(cat.Addons()))
	for _, a := range cat.Addons() {
		n := 0
		// one trial per unit; yes/no add-ons get a single trial
		for i := 0; i < a.MaxQuantity; i++ {
			if src.Float64() < a.Probability && n < a.MaxQuantity {
				n++
			}
		}
		qty[a.Name] = n
	}

	for _, g := range cat.Groups() {
		if len(g.Members) < 2 {
			continue
		}
		adopted := 0
		for _, name := range g.Members {
			if qty[name] > 0 {
				adopted++
			}
		}
		if adopted <= 1 {
			continue
		}
		keep := g.Members[src.IntN(len(g.Members))]
		for _, name := range g.Members {
			if name != keep {
				qty[name] = 0
			}
		}
	}
	return Bundle{qty: qty}
}
