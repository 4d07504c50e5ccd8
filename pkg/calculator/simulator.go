package calculator

import (
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"

	"revenue-forecast/pkg/catalog"
	ierr "revenue-forecast/pkg/errors"
	"revenue-forecast/pkg/models"
	"revenue-forecast/pkg/upsell"
)

// Simulator projects one scenario month by month. It owns its cohort and rows.
type Simulator struct {
	cat               *catalog.Catalog
	params            models.SimulationParams
	customersPerMonth int
	src               upsell.Source
	log               *logrus.Logger

	month               int
	cohort              []CustomerRecord
	cumulativeOneTime   float64
	cumulativeRecurring float64
	rows                []models.MonthlyAggregate
}

// NewSimulator prepares an empty run. src must not be shared with another run.
func NewSimulator(cat *catalog.Catalog, params models.SimulationParams, customersPerMonth int, src upsell.Source, log *logrus.Logger) *Simulator {
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &Simulator{
		cat:               cat,
		params:            params,
		customersPerMonth: customersPerMonth,
		src:               src,
		log:               log,
		cohort:            make([]CustomerRecord, 0, max(0, customersPerMonth*params.Months)),
		rows:              make([]models.MonthlyAggregate, 0, max(0, params.Months)),
	}
}

// Done reports whether every month of the horizon has been processed.
func (s *Simulator) Done() bool {
	return s.month >= s.params.Months
}

// Run processes the remaining months and returns every row.
func (s *Simulator) Run() ([]models.MonthlyAggregate, error) {
	for !s.Done() {
		if _, err := s.Step(); err != nil {
			return nil, err
		}
	}
	return s.Rows(), nil
}

// Step processes the next month and returns its row.
func (s *Simulator) Step() (models.MonthlyAggregate, error) {
	if s.Done() {
		return models.MonthlyAggregate{}, ierr.NewErrorf("simulation already ran its %d months", s.params.Months).
			Mark(ierr.ErrInvariantViolation)
	}
	month := s.month + 1

	// cohort n'est publié qu'après une agrégation réussie
	cohort := s.cohort
	newOneTime := 0.0
	for i := 0; i < s.customersPerMonth; i++ {
		c := NewCustomer(s.cat, s.params, month, s.src)
		newOneTime += c.OneTimeTotal()
		cohort = append(cohort, c)

		if s.log.IsLevelEnabled(logrus.TraceLevel) {
			s.log.WithFields(logrus.Fields{
				"month": month,
				"plan":  c.Plan().Name,
			}).Tracef("new customer: %s", c.Bundle().Describe(s.cat))
		}
	}

	row, err := s.aggregate(month, cohort, newOneTime)
	if err != nil {
		return models.MonthlyAggregate{}, err
	}
	s.cohort = cohort
	s.month = month
	s.rows = append(s.rows, row)

	s.log.WithFields(logrus.Fields{
		"month":           month,
		"total_customers": row.TotalCustomers,
		"monthly_revenue": row.TotalMonthlyRevenue.StringFixed(2),
	}).Debug("month processed")
	return row, nil
}

func (s *Simulator) aggregate(month int, cohort []CustomerRecord, newOneTime float64) (models.MonthlyAggregate, error) {
	streams := newTotals(s.cat.Streams())
	packages := newTotals(s.cat.Streams())

	upsellRevenue := 0.0
	totalMonthly := 0.0
	for _, c := range cohort {
		acquired := c.Month() == month
		upsellRevenue += c.UpsellRecurring()
		totalMonthly += c.MonthlyRecurringTotal()

		plan := c.Plan()
		if plan.Billing == models.BillingRecurring || acquired {
			if err := streams.add(plan.Name, plan.Price); err != nil {
				return models.MonthlyAggregate{}, err
			}
		}

		bundle := c.Bundle()
		for name, qty := range bundle.Quantities() {
			a, ok := s.cat.Addon(name)
			if !ok {
				return models.MonthlyAggregate{}, missingKey(name)
			}
			if err := packages.add(name, float64(qty)); err != nil {
				return models.MonthlyAggregate{}, err
			}
			if a.Billing == models.BillingRecurring || acquired {
				if err := streams.add(name, bundle.Amount(a)); err != nil {
					return models.MonthlyAggregate{}, err
				}
			}
		}
	}

	s.cumulativeOneTime += newOneTime
	s.cumulativeRecurring += totalMonthly
	base := float64(len(cohort)) * s.cat.BasePlan().Price

	row := models.MonthlyAggregate{
		Month:                    month,
		TotalCustomers:           len(cohort),
		NewCustomers:             s.customersPerMonth,
		NewOneTimeRevenue:        money(newOneTime),
		OneTimeRevenueCumulative: money(s.cumulativeOneTime),
		BaseHostingRevenue:       money(base),
		UpsellRevenue:            money(upsellRevenue),
		TotalMonthlyRevenue:      money(totalMonthly),
		TotalRevenueCumulative:   money(s.cumulativeOneTime + s.cumulativeRecurring),
		StreamRevenue:            make(map[string]decimal.Decimal, len(streams.keys)),
		PackageCounts:            make(map[string]int, len(s.cat.Addons())),
	}
	for _, key := range streams.keys {
		row.StreamRevenue[key] = money(streams.values[key])
	}
	for _, a := range s.cat.Addons() {
		row.PackageCounts[a.Name] = int(packages.values[a.Name])
	}
	return row, nil
}

// Rows returns the rows emitted so far, in month order.
func (s *Simulator) Rows() []models.MonthlyAggregate {
	return append([]models.MonthlyAggregate(nil), s.rows...)
}

// totals accumulates amounts over a closed key set.
type totals struct {
	keys   []string
	values map[string]float64
}

func newTotals(keys []string) *totals {
	t := &totals{keys: keys, values: make(map[string]float64, len(keys))}
	for _, k := range keys {
		t.values[k] = 0
	}
	return t
}

func (t *totals) add(key string, amount float64) error {
	if _, ok := t.values[key]; !ok {
		return missingKey(key)
	}
	t.values[key] += amount
	return nil
}

func missingKey(key string) error {
	return ierr.NewErrorf("revenue stream %q is not declared by the catalog", key).
		Mark(ierr.ErrInvariantViolation)
}

// money rounds at emission; accumulation stays in float64.
func money(v float64) decimal.Decimal {
	return decimal.NewFromFloat(v).Round(2)
}
