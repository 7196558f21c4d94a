package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"time"

	"github.com/davecgh/go-spew/spew"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	exit "github.com/twitter/lineup/common/errors"
	"github.com/twitter/lineup/common/stats"
	"github.com/twitter/lineup/pool"
	"github.com/twitter/lineup/search"
	"github.com/twitter/lineup/search/config"
)

type optimizeCmd struct {
	poolPath       string
	configSelector string
	overrides      string
	workers        string
	topK           int
	timeBudget     time.Duration
	printAsJSON    bool
	printStats     bool
	dumpConfig     bool
}

func (o *optimizeCmd) registerFlags() *cobra.Command {
	r := &cobra.Command{
		Use:   "optimize",
		Short: "Search a candidate pool for the best diverse rosters",
	}
	r.Flags().StringVar(&o.poolPath, "pool", "", "Candidate pool file (.json, .yaml, .yml or a DraftKings salary .csv)")
	r.Flags().StringVar(&o.configSelector, "config", "default",
		fmt.Sprintf("Search config: one of %v, a .json/.yaml file or JSON text", config.PresetNames()))
	r.Flags().StringVar(&o.overrides, "set", "",
		"Comma separated config overrides applied over --config, e.g. 'budget=60000,minSpend=55000,timeBudget=30s'")
	r.Flags().StringVar(&o.workers, "workers", "", "Number of search workers or 'auto', overrides the config")
	r.Flags().IntVar(&o.topK, "top_k", 0, "Number of rosters to print, overrides the config")
	r.Flags().DurationVar(&o.timeBudget, "time_budget", 0, "Stop searching after this long, overrides the config")
	r.Flags().BoolVar(&o.printAsJSON, "json", false, "Print the result as JSON")
	r.Flags().BoolVar(&o.printStats, "stats", false, "Print search metrics after the result")
	r.Flags().BoolVar(&o.dumpConfig, "dump_config", false, "Print the resolved search config before searching")
	return r
}

func (o *optimizeCmd) resolveConfig() (search.Config, error) {
	cfg, err := config.GetConfig(o.configSelector)
	if err != nil {
		return cfg, err
	}
	if o.overrides != "" {
		if cfg, err = config.ApplyOverrides(cfg, o.overrides); err != nil {
			return cfg, err
		}
	}
	if o.workers != "" {
		wc, err := config.ParseWorkerCount(o.workers)
		if err != nil {
			return cfg, err
		}
		cfg.WorkerCount = int(wc)
	}
	if o.topK > 0 {
		cfg.TopK = o.topK
	}
	if o.timeBudget > 0 {
		cfg.TimeBudget = o.timeBudget
	}
	return cfg, cfg.Validate()
}

func (o *optimizeCmd) run(cl *CLIClient, cmd *cobra.Command, args []string) error {
	cfg, err := o.resolveConfig()
	if err != nil {
		return exit.NewError(errors.Wrap(err, "config"), exit.ConfigErrorExitCode)
	}
	if o.dumpConfig {
		fmt.Fprint(cl.Out, spew.Sdump(cfg))
	}
	log.WithFields(log.Fields{
		"config": cfg.String(),
		"pool":   o.poolPath,
	}).Debug("Resolved search config")

	if o.poolPath == "" {
		return exit.NewError(errors.New("no candidate pool, set --pool"), exit.InputErrorExitCode)
	}
	cands, err := pool.Load(o.poolPath)
	if err != nil {
		return exit.NewError(err, exit.InputErrorExitCode)
	}

	stat := stats.NewCustomStatsReceiver(stats.NewFinagleStatsRegistry)
	engine, err := search.NewEngine(cfg, stat)
	if err != nil {
		return exit.NewError(err, exit.ConfigErrorExitCode)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	res, runErr := engine.Run(ctx, cands)

	var inputErr *search.InputError
	if errors.As(runErr, &inputErr) {
		return exit.NewError(errors.Wrap(runErr, o.poolPath), exit.InputErrorExitCode)
	}
	if err := o.print(cl, res); err != nil {
		return err
	}
	if o.printStats {
		fmt.Fprintf(cl.Out, "%s\n", stat.Render(true))
	}

	if runErr != nil {
		return exit.NewError(runErr, exit.PartialResultExitCode)
	}
	if res.Status == search.StatusInfeasible {
		return exit.NewError(fmt.Errorf("no roster satisfies the constraints: %s", cfg), exit.InfeasibleExitCode)
	}
	return nil
}

func (o *optimizeCmd) print(cl *CLIClient, res *search.Result) error {
	if o.printAsJSON {
		asJSON, err := json.MarshalIndent(res, "", "  ")
		if err != nil {
			return fmt.Errorf("Error converting result to JSON: %v", err)
		}
		fmt.Fprintf(cl.Out, "%s\n", asJSON)
		return nil
	}
	fmt.Fprintln(cl.Out, renderResult(res))
	return nil
}
