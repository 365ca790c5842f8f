package cmd

import (
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "fxhedge",
	Short: "FX exposure simulator and hedge optimizer for exporting firms",
	Long: `Fxhedge simulates exchange-rate scenarios and finds hedge portfolios for
firms with foreign-currency revenue and costs.

It provides tools for:
  - Generating FX rate paths (GBM, regime-switching, jump-diffusion, GARCH)
  - Valuing forward, option, and natural hedge overlays
  - Projecting net profit margin and return on assets across scenarios
  - Tail-risk reporting (VaR, CVaR, downside volatility)
  - Multi-start hedge ratio optimization with an efficient frontier

Complete documentation is available at https://github.com/rustyeddy/fxhedge`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() error {
	return rootCmd.Execute()
}
