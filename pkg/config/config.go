// Package config loads the run configuration from config.yaml, .env and
// REVENUE_* environment variables, in increasing order of precedence.
package config

import (
	"errors"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"revenue-forecast/pkg/catalog"
	ierr "revenue-forecast/pkg/errors"
	"revenue-forecast/pkg/models"
)

const EnvPrefix = "REVENUE"

// Config is the full run configuration.
type Config struct {
	Model            string            `mapstructure:"model" validate:"required"`
	CatalogFile      string            `mapstructure:"catalog_file"`
	CatalogDSN       string            `mapstructure:"catalog_dsn"`
	CatalogTables    string            `mapstructure:"catalog_table_prefix"`
	SetupFee         float64           `mapstructure:"setup_fee" validate:"gte=0"`
	AnnualDomainCost float64           `mapstructure:"annual_domain_cost" validate:"gte=0"`
	Months           int               `mapstructure:"months" validate:"gte=1"`
	Seed             uint64            `mapstructure:"seed"`
	Workers          int               `mapstructure:"workers" validate:"gte=1"`
	LogLevel         string            `mapstructure:"log_level"`
	Output           string            `mapstructure:"output" validate:"oneof=table csv json yaml"`
	Progress         bool              `mapstructure:"progress"`
	Scenarios        []models.Scenario `mapstructure:"scenarios" validate:"required,min=1,dive"`
}

// DefaultScenarios are the acquisition rates projected when none are configured.
func DefaultScenarios() []models.Scenario {
	return []models.Scenario{
		{Label: "1 customer per month", CustomersPerMonth: 1},
		{Label: "2 customers per month", CustomersPerMonth: 2},
		{Label: "3 customers per month", CustomersPerMonth: 3},
		{Label: "4 customers per month", CustomersPerMonth: 4},
		{Label: "6 customers per month", CustomersPerMonth: 6},
		{Label: "10 customers per month", CustomersPerMonth: 10},
	}
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("model", catalog.DefaultModel)
	v.SetDefault("catalog_file", "")
	v.SetDefault("catalog_dsn", "")
	v.SetDefault("catalog_table_prefix", "")
	v.SetDefault("setup_fee", 2249)
	v.SetDefault("annual_domain_cost", 150)
	v.SetDefault("months", 36)
	v.SetDefault("seed", 0)
	v.SetDefault("workers", 4)
	v.SetDefault("log_level", "info")
	v.SetDefault("output", "table")
	v.SetDefault("progress", false)
	v.SetDefault("scenarios", DefaultScenarios())
}

// Load reads the configuration. path may be empty, in which case config.yaml is
// looked up in the working directory and ./config, and its absence is not an error.
func Load(path string) (*Config, error) {
	// .env is optional; variables already set in the environment win
	_ = godotenv.Load()

	v := viper.New()
	setDefaults(v)

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("./config")
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return nil, ierr.WithError(err).
				WithMessage("read config").
				Mark(ierr.ErrConfiguration)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, ierr.WithError(err).WithMessage("decode config").Mark(ierr.ErrConfiguration)
	}
	cfg.Output = strings.ToLower(cfg.Output)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks field constraints.
func (c Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return ierr.WithError(err).
			WithHint("see config.example.yaml for the accepted keys").
			Mark(ierr.ErrConfiguration)
	}
	return nil
}

// Simulation converts the configuration into calculator parameters.
func (c Config) Simulation() models.Config {
	return models.Config{
		Params: models.SimulationParams{
			SetupFee:         c.SetupFee,
			AnnualDomainCost: c.AnnualDomainCost,
			Months:           c.Months,
		},
		Scenarios: append([]models.Scenario(nil), c.Scenarios...),
		Seed:      c.Seed,
		Workers:   c.Workers,
		Progress:  c.Progress,
	}
}
