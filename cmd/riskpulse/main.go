package main

import (
	"os"

	"github.com/tomvannes/riskpulse/cmd/riskpulse/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		os.Exit(1)
	}
}
