package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rustyeddy/fxhedge/config"
	"github.com/rustyeddy/fxhedge/fxpath"
)

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Validate a scenario model statistically",
	Long: `Generate paths for the configured model and run distribution-level
sanity checks: positivity, spot alignment, realized versus target
volatility, and extreme-outlier share.

Example:
  fxhedge check -f exporter.yaml --model garch`,
	RunE: runCheck,
}

var (
	checkConfigPath string
	checkModel      string
)

func init() {
	rootCmd.AddCommand(checkCmd)

	checkCmd.Flags().StringVarP(&checkConfigPath, "config", "f", "", "path to config file (YAML or JSON) (required)")
	checkCmd.Flags().StringVar(&checkModel, "model", "", "override the path model (gbm, regime, jump, garch)")
	checkCmd.MarkFlagRequired("config")
}

func runCheck(cmd *cobra.Command, args []string) error {
	cfg, err := config.LoadFromFile(checkConfigPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if checkModel != "" {
		cfg.Simulation.Model = fxpath.Model(checkModel)
	}

	m, err := fxpath.Generate(cfg.Simulation)
	if err != nil {
		return fmt.Errorf("generate paths: %w", err)
	}

	d := fxpath.Check(m, cfg.Simulation.SigmaAnnual)

	fmt.Printf("Model check: %s, %d paths, %d quarters\n\n",
		cfg.Simulation.Model, m.NPaths(), m.Horizon)
	fmt.Printf("  All rates positive:   %v (min %.4f)\n", d.AllPositive, d.MinRate)
	fmt.Printf("  First column at spot: %v\n", d.SpotAligned)
	fmt.Printf("  Realized volatility:  %.2f%% (target %.2f%%)\n", d.RealizedVol*100, d.TargetVol*100)
	fmt.Printf("  Outlier share (>5sd): %.3f%%\n\n", d.OutlierShare*100)

	if !d.Passed {
		return fmt.Errorf("model %s failed statistical checks", cfg.Simulation.Model)
	}
	fmt.Println("All checks passed.")
	return nil
}
