package catalog

import (
	"sort"

	"github.com/samber/lo"

	ierr "revenue-forecast/pkg/errors"
	"revenue-forecast/pkg/models"
)

const (
	ModelWebDesign = "web_design"
	ModelBuddy     = "buddy"

	// DefaultModel is used when the configuration names none.
	DefaultModel = ModelBuddy
)

var builtinModels = map[string]models.BusinessModel{
	ModelWebDesign: {
		Name: ModelWebDesign,
		Plans: []models.Plan{
			{Name: "basic", Price: 29.95, Billing: models.BillingRecurring, DisplayName: "Base Hosting", Description: "Basic hosting package", Color: "#1f77b4", Probability: 0.85},
			{Name: "premium", Price: 119.95, Billing: models.BillingRecurring, DisplayName: "Premium Hosting", Description: "Premium hosting package", Color: "#ff7f0e", Probability: 0.15},
		},
		Addons: []models.AddonPackage{
			{Name: "web_dev_care", Price: 247.00, Billing: models.BillingRecurring, DisplayName: "Web Dev Care", Description: "Web development care package", Color: "#2ca02c", Probability: 0.10, MaxQuantity: 1},
			{Name: "extra_pages", Price: 147.00, Billing: models.BillingOneTime, DisplayName: "Extra Pages", Description: "Additional web pages", Color: "#d62728", Probability: 0.25, MaxQuantity: 3},
			{Name: "analytics", Price: 47.00, Billing: models.BillingRecurring, DisplayName: "Analytics", Description: "Analytics dashboard", Color: "#9467bd", Probability: 0.20, MaxQuantity: 1},
			{Name: "seo_updates", Price: 497.00, Billing: models.BillingRecurring, DisplayName: "SEO Updates", Description: "Monthly SEO updates", Color: "#8c564b", Probability: 0.05, MaxQuantity: 1},
			{Name: "seo_articles", Price: 3000.00, Billing: models.BillingRecurring, DisplayName: "SEO Articles", Description: "Monthly SEO articles", Color: "#e377c2", Probability: 0.01, MaxQuantity: 1},
		},
		ExclusiveGroups: []models.ExclusiveGroup{
			{Name: "seo", Prefix: "seo_"},
		},
	},
	ModelBuddy: {
		Name: ModelBuddy,
		Plans: []models.Plan{
			{Name: "basic", Price: 39.00, Billing: models.BillingRecurring, DisplayName: "Basic", Description: "Basic package", Color: "#1f77b4", Probability: 0.70},
			{Name: "pro", Price: 97.00, Billing: models.BillingRecurring, DisplayName: "Pro", Description: "Professional package", Color: "#ff7f0e", Probability: 0.25},
			{Name: "diamond", Price: 177.00, Billing: models.BillingRecurring, DisplayName: "Diamond", Description: "Premium package", Color: "#b4a7d6", Probability: 0.05},
		},
	},
}

// BuiltinModelNames lists the registered business models, sorted.
func BuiltinModelNames() []string {
	names := lo.Keys(builtinModels)
	sort.Strings(names)
	return names
}

// BuiltinModel returns a copy of a registered business model.
func BuiltinModel(name string) (models.BusinessModel, error) {
	m, ok := builtinModels[name]
	if !ok {
		return models.BusinessModel{}, ierr.NewErrorf("unknown business model %q", name).
			WithHintf("available models: %v", BuiltinModelNames()).
			Mark(ierr.ErrConfiguration)
	}
	m.Plans = append([]models.Plan(nil), m.Plans...)
	m.Addons = append([]models.AddonPackage(nil), m.Addons...)
	m.ExclusiveGroups = append([]models.ExclusiveGroup(nil), m.ExclusiveGroups...)
	return m, nil
}

// LoadBuiltin builds the catalog of a registered business model.
func LoadBuiltin(name string) (*Catalog, error) {
	m, err := BuiltinModel(name)
	if err != nil {
		return nil, err
	}
	return New(m)
}
