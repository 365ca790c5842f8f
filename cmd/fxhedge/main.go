package main

import (
	"os"

	"github.com/rustyeddy/fxhedge/cmd/fxhedge/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
