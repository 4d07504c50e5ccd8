package calculator

import (
	"context"
	"fmt"
	"math/rand/v2"

	"github.com/samber/lo"
	"github.com/schollz/progressbar/v3"
	"github.com/sirupsen/logrus"
	"github.com/sourcegraph/conc/pool"

	"revenue-forecast/pkg/catalog"
	ierr "revenue-forecast/pkg/errors"
	"revenue-forecast/pkg/models"
)

// Run simulates every scenario of cfg against the catalog.
// Scenarios are independent: a failing one is reported in the returned error
// while the tables of the others are still returned, in scenario order.
func Run(ctx context.Context, cat *catalog.Catalog, cfg models.Config, log *logrus.Logger) ([]models.ScenarioResult, error) {
	if err := validate(cfg); err != nil {
		return nil, err
	}
	if log == nil {
		log = logrus.StandardLogger()
	}

	total := int64(len(cfg.Scenarios) * cfg.Params.Months)
	var bar *progressbar.ProgressBar
	if cfg.Progress {
		bar = progressbar.Default(total, "simulating")
	} else {
		bar = progressbar.DefaultSilent(total)
	}

	results := make([]*models.ScenarioResult, len(cfg.Scenarios))
	p := pool.New().WithMaxGoroutines(max(1, cfg.Workers)).WithErrors()
	for i, sc := range cfg.Scenarios {
		p.Go(func() error {
			res, err := runScenario(ctx, cat, cfg, i, sc, bar, log)
			if err != nil {
				log.WithField("scenario", sc.Label).Errorf("scenario failed: %v", err)
				return fmt.Errorf("scenario %q: %w", sc.Label, err)
			}
			results[i] = res
			return nil
		})
	}
	err := p.Wait()
	_ = bar.Finish()

	out := lo.FilterMap(results, func(r *models.ScenarioResult, _ int) (models.ScenarioResult, bool) {
		if r == nil {
			return models.ScenarioResult{}, false
		}
		return *r, true
	})
	return out, err
}

func runScenario(ctx context.Context, cat *catalog.Catalog, cfg models.Config, index int, sc models.Scenario, bar *progressbar.ProgressBar, log *logrus.Logger) (*models.ScenarioResult, error) {
	entry := log.WithFields(logrus.Fields{
		"scenario":            sc.Label,
		"customers_per_month": sc.CustomersPerMonth,
	})
	entry.Info("scenario started")

	sim := NewSimulator(cat, cfg.Params, sc.CustomersPerMonth, ScenarioSource(cfg.Seed, index), log)
	for !sim.Done() {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if _, err := sim.Step(); err != nil {
			return nil, err
		}
		_ = bar.Add(1)
	}

	rows := sim.Rows()
	last := rows[len(rows)-1]
	entry.WithField("total_revenue", last.TotalRevenueCumulative.StringFixed(2)).Info("scenario finished")

	return &models.ScenarioResult{
		Scenario:       sc,
		Seed:           cfg.Seed,
		StreamColumns:  StreamColumns(cat),
		PackageColumns: PackageColumns(cat),
		Rows:           rows,
	}, nil
}

// ScenarioSource derives the independent random stream of the index-th scenario.
func ScenarioSource(seed uint64, index int) *rand.Rand {
	return rand.New(rand.NewPCG(seed, uint64(index)))
}

// StreamColumns names one report column per plan and add-on.
func StreamColumns(cat *catalog.Catalog) []models.Column {
	return lo.Map(cat.Streams(), func(key string, _ int) models.Column {
		return models.Column{Key: key, Header: cat.DisplayName(key)}
	})
}

// PackageColumns names one active-quantity column per add-on.
func PackageColumns(cat *catalog.Catalog) []models.Column {
	return lo.Map(cat.Addons(), func(a models.AddonPackage, _ int) models.Column {
		return models.Column{Key: a.Name, Header: "Upsell: " + cat.DisplayName(a.Name)}
	})
}

func validate(cfg models.Config) error {
	if cfg.Params.Months < 1 {
		return ierr.NewErrorf("months must be at least 1, got %d", cfg.Params.Months).
			Mark(ierr.ErrValidation)
	}
	if len(cfg.Scenarios) == 0 {
		return ierr.NewError("no scenario to simulate").
			WithHint("declare at least one scenario with a label and customers_per_month").
			Mark(ierr.ErrValidation)
	}
	for _, sc := range cfg.Scenarios {
		if sc.CustomersPerMonth < 0 {
			return ierr.NewErrorf("scenario %q: customers per month must not be negative", sc.Label).
				Mark(ierr.ErrValidation)
		}
	}
	return nil
}
