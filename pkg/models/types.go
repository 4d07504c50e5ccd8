package models

import (
	"github.com/shopspring/decimal"
)

/*
CATALOG → description statique des offres (plans et add-ons) d'un modèle commercial.
*/

// BillingType says whether a price is charged once at acquisition or every month.
type BillingType string

const (
	BillingOneTime   BillingType = "onetime"
	BillingRecurring BillingType = "recurring"
)

// Plan is a base subscription plan. Exactly one is chosen per customer.
type Plan struct {
	Name        string      `yaml:"name" json:"name"`
	Price       float64     `yaml:"price" json:"price"`
	Billing     BillingType `yaml:"type" json:"type"`
	DisplayName string      `yaml:"display_name" json:"display_name"`
	Description string      `yaml:"description,omitempty" json:"description,omitempty"`
	Color       string      `yaml:"color,omitempty" json:"color,omitempty"`
	Probability float64     `yaml:"probability" json:"probability"`
}

// AddonPackage is an optional upsell. MaxQuantity 1 means yes/no, more means quantity-based.
type AddonPackage struct {
	Name        string      `yaml:"name" json:"name"`
	Price       float64     `yaml:"price" json:"price"`
	Billing     BillingType `yaml:"type" json:"type"`
	DisplayName string      `yaml:"display_name" json:"display_name"`
	Description string      `yaml:"description,omitempty" json:"description,omitempty"`
	Color       string      `yaml:"color,omitempty" json:"color,omitempty"`
	Probability float64     `yaml:"probability" json:"probability"`
	MaxQuantity int         `yaml:"max_quantity,omitempty" json:"max_quantity,omitempty"`
}

// QuantityBased reports whether the add-on can be bought more than once.
func (a AddonPackage) QuantityBased() bool {
	return a.MaxQuantity > 1
}

// ExclusiveGroup declares add-ons of which at most one may be active per customer.
// Members are the add-ons whose name starts with Prefix, plus the ones listed explicitly.
type ExclusiveGroup struct {
	Name    string   `yaml:"name" json:"name"`
	Prefix  string   `yaml:"prefix,omitempty" json:"prefix,omitempty"`
	Members []string `yaml:"members,omitempty" json:"members,omitempty"`
}

// BusinessModel is the raw input a catalog is built from.
type BusinessModel struct {
	Name            string           `yaml:"name" json:"name"`
	Plans           []Plan           `yaml:"plans" json:"plans"`
	Addons          []AddonPackage   `yaml:"addons" json:"addons"`
	ExclusiveGroups []ExclusiveGroup `yaml:"exclusive_groups,omitempty" json:"exclusive_groups,omitempty"`
}

/*
CONFIG → paramètres globaux
*/

// Scenario is one customer-acquisition rate to project.
type Scenario struct {
	Label             string `mapstructure:"label" yaml:"label" json:"label" validate:"required"`
	CustomersPerMonth int    `mapstructure:"customers_per_month" yaml:"customers_per_month" json:"customers_per_month" validate:"gte=0"`
}

// SimulationParams holds the business constants shared by every scenario run.
type SimulationParams struct {
	SetupFee         float64 // charged once per new customer
	AnnualDomainCost float64 // domain cost borne by the business, spread monthly
	Months           int     // simulation horizon
}

// MonthlyDomainCost is the annual domain cost spread over twelve months.
func (p SimulationParams) MonthlyDomainCost() float64 {
	return p.AnnualDomainCost / 12
}

/*
COMPUTE → lignes de résultat par scénario et par mois
*/

// Column maps a catalog key to the header it is reported under.
type Column struct {
	Key    string `json:"key" yaml:"key"`
	Header string `json:"header" yaml:"header"`
}

// MonthlyAggregate is one emitted row. Currency values are rounded to 2 decimals.
type MonthlyAggregate struct {
	Month                    int                        `json:"month" yaml:"month"`
	TotalCustomers           int                        `json:"total_customers" yaml:"total_customers"`
	NewCustomers             int                        `json:"new_customers" yaml:"new_customers"`
	NewOneTimeRevenue        decimal.Decimal            `json:"new_one_time_revenue" yaml:"new_one_time_revenue"`
	OneTimeRevenueCumulative decimal.Decimal            `json:"one_time_revenue_cumulative" yaml:"one_time_revenue_cumulative"`
	BaseHostingRevenue       decimal.Decimal            `json:"base_hosting_revenue" yaml:"base_hosting_revenue"`
	UpsellRevenue            decimal.Decimal            `json:"upsell_revenue" yaml:"upsell_revenue"`
	TotalMonthlyRevenue      decimal.Decimal            `json:"total_monthly_revenue" yaml:"total_monthly_revenue"`
	TotalRevenueCumulative   decimal.Decimal            `json:"total_revenue_cumulative" yaml:"total_revenue_cumulative"`
	StreamRevenue            map[string]decimal.Decimal `json:"stream_revenue" yaml:"stream_revenue"`
	PackageCounts            map[string]int             `json:"package_counts" yaml:"package_counts"`
}

// ScenarioResult is the ordered table produced by one scenario run.
type ScenarioResult struct {
	Scenario       Scenario           `json:"scenario" yaml:"scenario"`
	Seed           uint64             `json:"seed" yaml:"seed"`
	StreamColumns  []Column           `json:"stream_columns" yaml:"stream_columns"`
	PackageColumns []Column           `json:"package_columns" yaml:"package_columns"`
	Rows           []MonthlyAggregate `json:"rows" yaml:"rows"`
}

// Config contient les paramètres passés à la fonction de calcul.
type Config struct {
	Params    SimulationParams
	Scenarios []Scenario // ordered; reports keep this order
	Seed      uint64     // base seed, every scenario derives its own stream from it
	Workers   int        // scenarios simulated concurrently, at least 1
	Progress  bool       // render a progress bar on stderr
}
