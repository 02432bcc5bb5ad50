package main

import (
	"os"

	"github.com/traderscope/journal/backend/cmd/journal/commands"
)

// main is the entry point for the journal CLI
func main() {
	if err := commands.Execute(); err != nil {
		os.Exit(1)
	}
}
