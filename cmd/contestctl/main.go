package main

import (
	"os"

	"github.com/osse101/PredictionContest_Go/cmd/contestctl/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		os.Exit(1)
	}
}
