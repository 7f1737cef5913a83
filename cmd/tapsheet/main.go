package main

import (
	"os"

	"github.com/tapsheet-dev/tapsheet/internal/commands"
)

func main() {
	if err := commands.NewRootCommand().Execute(); err != nil {
		os.Exit(1)
	}
}
