package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rustyeddy/fxhedge/config"
	"github.com/rustyeddy/fxhedge/fxpath"
	"github.com/rustyeddy/fxhedge/hedge"
	"github.com/rustyeddy/fxhedge/profit"
	"github.com/rustyeddy/fxhedge/risk"
)

var simulateCmd = &cobra.Command{
	Use:   "simulate",
	Short: "Simulate firm profitability under a fixed hedge mix",
	Long: `Generate FX scenarios, value the configured hedge overlay, and project
the firm's profitability across all paths.

The report compares the hedged book against the unhedged baseline and
attributes the final profit to FX and hedge components.

Example:
  fxhedge simulate -f examples/configs/exporter.yaml`,
	RunE: runSimulate,
}

var simulateConfigPath string

func init() {
	rootCmd.AddCommand(simulateCmd)

	simulateCmd.Flags().StringVarP(&simulateConfigPath, "config", "f", "", "path to config file (YAML or JSON) (required)")
	simulateCmd.MarkFlagRequired("config")
}

func runSimulate(cmd *cobra.Command, args []string) error {
	cfg, err := config.LoadFromFile(simulateConfigPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	m, err := fxpath.Generate(cfg.Simulation)
	if err != nil {
		return fmt.Errorf("generate paths: %w", err)
	}

	rates := hedge.Rates{Domestic: cfg.Simulation.DomesticRate, Foreign: cfg.Simulation.ForeignRate}
	sigma := cfg.Simulation.SigmaAnnual
	costBps := cfg.Simulation.TransactionCostBps

	hedged := hedge.Value(m, m.Spot, cfg.Hedge, rates, sigma, costBps)
	unhedgedMix := hedge.Config{TenorMonths: cfg.Hedge.TenorMonths}
	unhedged := hedge.Value(m, m.Spot, unhedgedMix, rates, sigma, costBps)

	hedgedProj := profit.Project(m, cfg.Firm, hedged)
	unhedgedProj := profit.Project(m, cfg.Firm, unhedged)

	hedgedRisk := risk.Compute(hedgedProj)
	unhedgedRisk := risk.Compute(unhedgedProj)
	eff := risk.CompareEffectiveness(unhedgedRisk, hedgedRisk)
	wf := profit.ComputeWaterfall(hedgedProj, cfg.Firm)

	fmt.Printf("Simulation: %s model, %d paths, %d quarters\n",
		cfg.Simulation.Model, m.NPaths(), m.Horizon)
	fmt.Printf("  Spot: %.4f  Sigma: %.2f%%  Drift mode: %s\n\n",
		m.Spot, sigma*100, cfg.Simulation.DriftMode)

	fmt.Printf("Hedge mix: forwards %.0f%%, options %.0f%%, natural %.0f%% (tenor %dm)\n",
		cfg.Hedge.ForwardRatio*100, cfg.Hedge.OptionRatio*100, cfg.Hedge.NaturalRatio*100,
		cfg.Hedge.TenorMonths)
	fmt.Printf("  Forward rate: %.4f  Option strike: %.4f  Premium: %.4f\n\n",
		hedged.ForwardRate, hedged.OptionStrike, hedged.OptionPremium)

	printProfitSummary("Hedged", hedgedProj)
	printProfitSummary("Unhedged", unhedgedProj)

	fmt.Printf("Tail risk (final-period NPM):\n")
	printTailRisk("  Hedged  ", hedgedRisk.NPM)
	printTailRisk("  Unhedged", unhedgedRisk.NPM)
	fmt.Println()

	fmt.Printf("Hedge effectiveness:\n")
	fmt.Printf("  CVaR 95%% reduction:  %.1f%%\n", eff.CVaRReductionPct)
	fmt.Printf("  Volatility reduction: %.1f%%\n", eff.VolatilityReductionPct)
	fmt.Printf("  Median NPM change:    %+.1f bps\n\n", eff.MedianNPMChangeBps)

	fmt.Printf("Profit attribution (mean, final period):\n")
	fmt.Printf("  Base profit:        %12.2f\n", wf.BaseProfit)
	fmt.Printf("  FX revenue impact:  %+12.2f\n", wf.FXRevenueImpact)
	fmt.Printf("  FX cost impact:     %+12.2f\n", wf.FXCostImpact)
	fmt.Printf("  Hedge contribution: %+12.2f\n", wf.HedgeContribution)
	fmt.Printf("  Final profit:       %12.2f\n", wf.FinalProfit)

	return nil
}

func printProfitSummary(label string, p *profit.Result) {
	s := p.NPMSummary
	fmt.Printf("%s NPM: mean %.2f%%, median %.2f%%, std %.2f%%, p05 %.2f%%, p95 %.2f%%\n",
		label, s.Mean*100, s.Median*100, s.Std*100, s.P05*100, s.P95*100)
	r := p.ROASummary
	fmt.Printf("%s ROA: mean %.2f%%, p05 %.2f%%\n\n", label, r.Mean*100, r.P05*100)
}

func printTailRisk(label string, m risk.Metrics) {
	fmt.Printf("%s VaR95 %.2f%%  CVaR95 %.2f%%  downside vol %.2f%%  P(loss) %.1f%%\n",
		label, m.VaR[95]*100, m.CVaR[95]*100, m.DownsideVolatility*100, m.ProbNegative*100)
}
