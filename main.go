package main

import (
	"os"

	"github.com/skyhaul/dronesim/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
