package cmd

import (
	"time"

	"github.com/spf13/cobra"

	"revenue-forecast/pkg/calculator"
)

func newSimulateCmd(a *app) *cobra.Command {
	c := &cobra.Command{
		Use:   "simulate",
		Short: "Run every acquisition scenario and print the monthly tables",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			cat, err := a.loadCatalog(ctx)
			if err != nil {
				return err
			}

			simCfg := a.cfg.Simulation()
			if simCfg.Seed == 0 {
				simCfg.Seed = uint64(time.Now().UnixNano())
			}
			a.log.WithField("seed", simCfg.Seed).Infof("simulating %d scenarios over %d months with model %s",
				len(simCfg.Scenarios), simCfg.Params.Months, cat.Name())

			results, runErr := calculator.Run(ctx, cat, simCfg, a.log)
			// completed scenarios are printed even when another one failed
			if err := a.formatter.Scenarios(cmd.OutOrStdout(), results); err != nil {
				return err
			}
			return runErr
		},
	}

	f := c.Flags()
	f.Uint64Var(&a.seed, "seed", 0, "random seed, 0 picks one from the clock")
	f.IntVar(&a.months, "months", 0, "simulation horizon in months")
	f.IntVar(&a.workers, "workers", 0, "scenarios simulated concurrently")
	f.BoolVar(&a.progress, "progress", false, "show a progress bar on stderr")
	return c
}
