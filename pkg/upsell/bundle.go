package upsell

import (
	"fmt"
	"strings"

	"revenue-forecast/pkg/catalog"
	ierr "revenue-forecast/pkg/errors"
	"revenue-forecast/pkg/models"
)

// Bundle maps add-on names to the quantity a customer adopted.
// It is never modified after the draw.
type Bundle struct {
	qty map[string]int
}

// NewBundle builds a bundle from explicit quantities, checking them against the catalog.
func NewBundle(cat *catalog.Catalog, quantities map[string]int) (Bundle, error) {
	qty := make(map[string]int, len(quantities))
	for name, n := range quantities {
		a, ok := cat.Addon(name)
		if !ok {
			return Bundle{}, ierr.NewErrorf("unknown add-on %q", name).Mark(ierr.ErrValidation)
		}
		if n < 0 || n > a.MaxQuantity {
			return Bundle{}, ierr.NewErrorf("quantity %d for add-on %q outside 0..%d", n, name, a.MaxQuantity).
				Mark(ierr.ErrValidation)
		}
		qty[name] = n
	}
	return Bundle{qty: qty}, nil
}

// Quantity returns the adopted quantity, 0 when the add-on was not taken.
func (b Bundle) Quantity(name string) int {
	return b.qty[name]
}

// Quantities returns a copy of the non-zero quantities.
func (b Bundle) Quantities() map[string]int {
	out := make(map[string]int, len(b.qty))
	for name, n := range b.qty {
		if n > 0 {
			out[name] = n
		}
	}
	return out
}

// Amount is price × quantity for one add-on.
func (b Bundle) Amount(a models.AddonPackage) float64 {
	return a.Price * float64(b.qty[a.Name])
}

// Total sums the bundle's add-on amounts for one billing type.
func (b Bundle) Total(cat *catalog.Catalog, billing models.BillingType) float64 {
	total := 0.0
	for _, a := range cat.Addons() {
		if a.Billing == billing {
			total += b.Amount(a)
		}
	}
	return total
}

// Describe renders the adopted add-ons, e.g. "Extra Pages x2 ($294.00), Analytics x1 ($47.00/mo)".
func (b Bundle) Describe(cat *catalog.Catalog) string {
	var parts []string
	for _, a := range cat.Addons() {
		n := b.qty[a.Name]
		if n == 0 {
			continue
		}
		price := fmt.Sprintf("$%.2f", b.Amount(a))
		if a.Billing == models.BillingRecurring {
			price += "/mo"
		}
		parts = append(parts, fmt.Sprintf("%s x%d (%s)", cat.DisplayName(a.Name), n, price))
	}
	if len(parts) == 0 {
		return "No additional services"
	}
	return strings.Join(parts, ", ")
}
