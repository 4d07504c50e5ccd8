package cmd

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"revenue-forecast/pkg/catalog"
	"revenue-forecast/pkg/config"
	"revenue-forecast/pkg/database"
	ierr "revenue-forecast/pkg/errors"
	"revenue-forecast/pkg/logger"
	"revenue-forecast/pkg/output"
)

// app is the state shared by the subcommands, set during PersistentPreRunE.
type app struct {
	// flags
	cfgFile     string
	output      string
	logLevel    string
	model       string
	catalogFile string
	seed        uint64
	months      int
	workers     int
	progress    bool

	cfg       *config.Config
	log       *logrus.Logger
	formatter output.Formatter
}

// NewRootCmd builds the revenue-forecast command tree.
func NewRootCmd() *cobra.Command {
	a := &app{}
	root := &cobra.Command{
		Use:   "revenue-forecast",
		Short: "Project subscription revenue under customer acquisition scenarios",
		Long: `revenue-forecast simulates a growing population of customers who each pick a
plan and a random set of add-on packages, and reports month by month the
one-time, recurring and per-stream revenue of every acquisition scenario.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup(cmd)
		},
	}

	f := root.PersistentFlags()
	f.StringVar(&a.cfgFile, "config", "", "config file (default is ./config.yaml)")
	f.StringVarP(&a.output, "output", "o", "", "output format: table, csv, json, yaml")
	f.StringVar(&a.logLevel, "log-level", "", "log level: trace, debug, info, warn, error")
	f.StringVar(&a.model, "model", "", "business model: "+fmt.Sprint(catalog.BuiltinModelNames()))
	f.StringVar(&a.catalogFile, "catalog", "", "YAML catalog file, overrides --model")

	root.AddCommand(newSimulateCmd(a), newCatalogCmd(a), newModelsCmd(a))
	return root
}

func (a *app) setup(cmd *cobra.Command) error {
	cfg, err := config.Load(a.cfgFile)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	flags := cmd.Flags()
	if flags.Changed("output") {
		cfg.Output = strings.ToLower(a.output)
	}
	if flags.Changed("log-level") {
		cfg.LogLevel = a.logLevel
	}
	if flags.Changed("model") {
		cfg.Model = a.model
	}
	if flags.Changed("catalog") {
		cfg.CatalogFile = a.catalogFile
	}
	if flags.Changed("seed") {
		cfg.Seed = a.seed
	}
	if flags.Changed("months") {
		cfg.Months = a.months
	}
	if flags.Changed("workers") {
		cfg.Workers = a.workers
	}
	if flags.Changed("progress") {
		cfg.Progress = a.progress
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	a.cfg = cfg
	a.log = logger.New(cmd.ErrOrStderr(), cfg.LogLevel)
	a.formatter = output.NewFormatter(cfg.Output)
	return nil
}

// loadCatalog picks the catalog source: file, then database, then built-in model.
func (a *app) loadCatalog(ctx context.Context) (*catalog.Catalog, error) {
	switch {
	case a.cfg.CatalogFile != "":
		a.log.WithField("file", a.cfg.CatalogFile).Info("loading catalog file")
		return catalog.LoadFile(a.cfg.CatalogFile)

	case a.cfg.CatalogDSN != "":
		db, dsnUsed, err := database.Open(a.cfg.CatalogDSN)
		if err != nil {
			return nil, fmt.Errorf("open db: %w", err)
		}
		defer db.Close()
		a.log.WithField("dsn", dsnUsed).Debug("connected to catalog database")

		repo, err := database.NewCatalogRepository(db, a.cfg.CatalogTables)
		if err != nil {
			return nil, err
		}
		return repo.LoadCatalog(ctx, a.cfg.Model)

	default:
		return catalog.LoadBuiltin(a.cfg.Model)
	}
}

// Execute runs the root command.
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		if kind := ierr.KindOf(err); kind != nil {
			fmt.Fprintf(os.Stderr, "Error (%s): %v\n", kind, err)
		} else {
			fmt.Fprintln(os.Stderr, "Error:", err)
		}
		for _, hint := range ierr.Hints(err) {
			fmt.Fprintln(os.Stderr, "Hint:", hint)
		}
		os.Exit(1)
	}
}
