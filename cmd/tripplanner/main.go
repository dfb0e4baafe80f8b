package main

import (
	"os"

	"tripplanner/cmd/tripplanner/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		os.Exit(1)
	}
}
