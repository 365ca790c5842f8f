package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

const version = "1.0.0"

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number",
	Long:  `Display the current version of the fxhedge CLI.`,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("fxhedge version %s\n", version)
		fmt.Println("FX exposure simulator and hedge optimizer")
		fmt.Println("https://github.com/rustyeddy/fxhedge")
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
