package calculator

import (
	"revenue-forecast/pkg/catalog"
	"revenue-forecast/pkg/models"
	"revenue-forecast/pkg/upsell"
)

// CustomerRecord is the snapshot of one customer taken at acquisition.
type CustomerRecord struct {
	month           int
	plan            models.Plan
	bundle          upsell.Bundle
	oneTime         float64
	monthly         float64
	upsellRecurring float64
}

// NewCustomer draws the plan then the add-on bundle of a customer acquired in month.
func NewCustomer(cat *catalog.Catalog, params models.SimulationParams, month int, src upsell.Source) CustomerRecord {
	plan := upsell.ChoosePlan(cat, src)
	bundle := upsell.SelectBundle(cat, src)
	return newCustomerRecord(cat, params, month, plan, bundle)
}

func newCustomerRecord(cat *catalog.Catalog, params models.SimulationParams, month int, plan models.Plan, bundle upsell.Bundle) CustomerRecord {
	domain := params.MonthlyDomainCost()

	oneTime := bundle.Total(cat, models.BillingOneTime) + params.SetupFee - domain
	upsellRecurring := bundle.Total(cat, models.BillingRecurring) - domain
	monthly := upsellRecurring
	switch plan.Billing {
	case models.BillingOneTime:
		oneTime += plan.Price
	case models.BillingRecurring:
		monthly += plan.Price
	}

	return CustomerRecord{
		month:           month,
		plan:            plan,
		bundle:          bundle,
		oneTime:         oneTime,
		monthly:         monthly,
		upsellRecurring: upsellRecurring,
	}
}

// Month is the month the customer was acquired in.
func (c CustomerRecord) Month() int { return c.month }

func (c CustomerRecord) Plan() models.Plan { return c.plan }

func (c CustomerRecord) Bundle() upsell.Bundle { return c.bundle }

// OneTimeTotal is recognised once, in the acquisition month: setup fee, one-time
// plan and add-on prices, less one month of domain cost.
func (c CustomerRecord) OneTimeTotal() float64 { return c.oneTime }

// MonthlyRecurringTotal is billed every month: recurring plan and add-on prices
// less the monthly domain cost.
func (c CustomerRecord) MonthlyRecurringTotal() float64 { return c.monthly }

// UpsellRecurring is the recurring add-on revenue less the monthly domain cost.
func (c CustomerRecord) UpsellRecurring() float64 { return c.upsellRecurring }
