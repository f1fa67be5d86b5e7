package main

import (
	"os"

	"github.com/dshills/sortviz/pkg/cli"
)

// main is the entry point of the sortviz command line tool.
func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
