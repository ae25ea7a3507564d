// Package main is the entry point for the feedlift CLI.
package main

import (
	"os"

	"github.com/feedlift/feedlift/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
