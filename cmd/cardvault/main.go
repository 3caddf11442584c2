// Package main provides the cardvault CLI: a unified local store for
// two tabletop-game card catalogs, with migration from legacy sources
// and stateful deck handling.
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(exitFailure)
	}
}
