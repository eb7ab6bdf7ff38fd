package main

import (
	"os"

	"fnct-hackathon.backend/cmd/admctl/commands"
)

func main() {
	// Errors are printed by the commands package.
	if err := commands.Execute(); err != nil {
		os.Exit(1)
	}
}
