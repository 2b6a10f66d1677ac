package main

import (
	"os"

	"umlwizard/cmd/umlwizard/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		os.Exit(1)
	}
}
