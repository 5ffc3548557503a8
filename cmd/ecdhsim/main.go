package main

import (
	"os"

	"ecdhsim/cmd/ecdhsim/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		os.Exit(1)
	}
}
