// Package main is the Tonality command-line entrypoint.
package main

import (
	"os"

	"github.com/tonality-labs/tonality/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
