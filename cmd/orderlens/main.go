package main

import (
	"os"

	"github.com/orderlens-dev/orderlens/internal/commands"
)

func main() {
	if err := commands.NewRootCommand().Execute(); err != nil {
		os.Exit(1)
	}
}
