// Package main is the entry point for the ductsize CLI.
package main

import (
	"os"

	"Airduct/cmd/ductsize/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
