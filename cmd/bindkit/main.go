package main

import (
	"os"

	"github.com/bindkit/bindkit/internal/cli"
)

func main() {
	// Cobra prints the error itself; only the exit code is ours.
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
