package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/rustyeddy/fxhedge/config"
	"github.com/rustyeddy/fxhedge/journal"
	"github.com/rustyeddy/fxhedge/optimizer"
	"github.com/rustyeddy/fxhedge/pkg/id"
)

var optimizeCmd = &cobra.Command{
	Use:   "optimize",
	Short: "Search for the best hedge mix",
	Long: `Run the multi-start hedge optimization for the configured firm and
scenario model, trace the efficient frontier, and record the run in the
configured journal.

The objective comes from the config file (maximize_npm or minimize_variance)
unless overridden on the command line.

Example:
  fxhedge optimize -f exporter.yaml --objective minimize_variance`,
	RunE: runOptimize,
}

var (
	optimizeConfigPath string
	optimizeObjective  string
)

func init() {
	rootCmd.AddCommand(optimizeCmd)

	optimizeCmd.Flags().StringVarP(&optimizeConfigPath, "config", "f", "", "path to config file (YAML or JSON) (required)")
	optimizeCmd.Flags().StringVar(&optimizeObjective, "objective", "", "override objective (maximize_npm or minimize_variance)")
	optimizeCmd.MarkFlagRequired("config")
}

func runOptimize(cmd *cobra.Command, args []string) error {
	cfg, err := config.LoadFromFile(optimizeConfigPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	opts := cfg.Optimizer
	if optimizeObjective != "" {
		switch optimizer.Objective(optimizeObjective) {
		case optimizer.MaximizeNPM, optimizer.MinimizeVariance:
			opts.Objective = optimizer.Objective(optimizeObjective)
		default:
			return fmt.Errorf("unknown objective %q", optimizeObjective)
		}
	}

	fmt.Printf("Optimizing hedge mix: %s, %d trials, %s model, %d paths\n\n",
		opts.Objective, opts.Trials, cfg.Simulation.Model, cfg.Simulation.NPaths)

	start := time.Now()
	result, err := optimizer.Run(cfg.Firm, cfg.Simulation, opts)
	if err != nil {
		return fmt.Errorf("optimize: %w", err)
	}
	elapsed := time.Since(start)

	if !result.Success {
		fmt.Println("No trial converged to a feasible mix; reporting the balanced default.")
	}
	fmt.Printf("Optimal mix (found in %s):\n", elapsed.Round(time.Millisecond))
	fmt.Printf("  Forwards: %5.1f%%\n", result.Hedge.ForwardRatio*100)
	fmt.Printf("  Options:  %5.1f%%\n", result.Hedge.OptionRatio*100)
	fmt.Printf("  Natural:  %5.1f%%\n\n", result.Hedge.NaturalRatio*100)

	fmt.Printf("At the optimum:\n")
	fmt.Printf("  Expected NPM:   %.2f%%\n", result.ExpectedNPM*100)
	fmt.Printf("  Median NPM:     %.2f%%\n", result.MedianNPM*100)
	fmt.Printf("  NPM volatility: %.2f%%\n", result.NPMVolatility*100)
	fmt.Printf("  CVaR 95%%:       %.2f%%\n\n", result.CVaR95*100)

	fmt.Printf("Efficient frontier (%d points):\n", len(result.Frontier))
	fmt.Printf("  %-12s %-14s %-14s %s\n", "hedge level", "expected NPM", "volatility", "CVaR 95%")
	for _, p := range result.Frontier {
		fmt.Printf("  %11.0f%% %13.2f%% %13.2f%% %7.2f%%\n",
			p.HedgeLevel*100, p.ExpectedNPM*100, p.NPMVolatility*100, p.CVaR95*100)
	}

	if cfg.Journal.Type == "" {
		return nil
	}
	return journalRun(cfg, opts, result)
}

func journalRun(cfg *config.Config, opts optimizer.Options, result *optimizer.Result) error {
	var j journal.Journal
	var err error
	if cfg.Journal.Type == "csv" {
		j, err = journal.NewCSV(cfg.Journal.RunsFile, cfg.Journal.FrontierFile)
	} else {
		j, err = journal.NewSQLite(cfg.Journal.DBPath)
	}
	if err != nil {
		return fmt.Errorf("create journal: %w", err)
	}
	defer j.Close()

	runID := id.NewRunID()
	err = j.RecordRun(journal.RunRecord{
		RunID:           runID,
		Time:            time.Now().UTC(),
		Model:           string(cfg.Simulation.Model),
		NPaths:          cfg.Simulation.NPaths,
		HorizonQuarters: cfg.Simulation.HorizonQuarters,
		Objective:       string(opts.Objective),
		Forwards:        result.Hedge.ForwardRatio,
		Options:         result.Hedge.OptionRatio,
		Natural:         result.Hedge.NaturalRatio,
		ExpectedNPM:     result.ExpectedNPM,
		NPMVolatility:   result.NPMVolatility,
		CVaR95:          result.CVaR95,
		Success:         result.Success,
	})
	if err != nil {
		return fmt.Errorf("record run: %w", err)
	}

	points := make([]journal.FrontierRecord, len(result.Frontier))
	for i, p := range result.Frontier {
		points[i] = journal.FrontierRecord{
			RunID:         runID,
			HedgeLevel:    p.HedgeLevel,
			ExpectedNPM:   p.ExpectedNPM,
			NPMVolatility: p.NPMVolatility,
			CVaR95:        p.CVaR95,
		}
	}
	if err := j.RecordFrontier(points); err != nil {
		return fmt.Errorf("record frontier: %w", err)
	}

	fmt.Printf("\nJournaled run %s (%s)\n", runID, cfg.Journal.Type)
	return nil
}
