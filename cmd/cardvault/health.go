package main

// The health command prints the structured store health report.

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var healthCmd = &cobra.Command{
	Use:   "health",
	Short: "Check store health",
	Long: `Check the store file and its contents: existence, readability,
size, per-game counts, and the count-consistency integrity invariant.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		report := session.HealthCheck()

		fmt.Printf("path:       %s\n", report.Path)
		fmt.Printf("exists:     %v\n", report.Exists)
		fmt.Printf("readable:   %v\n", report.Readable)
		fmt.Printf("size:       %d bytes\n", report.SizeBytes)
		fmt.Printf("cards:      %d\n", report.TotalCards)
		for game, n := range report.CardsByGame {
			fmt.Printf("  %s: %d\n", game, n)
		}
		fmt.Printf("consistent: %v\n", report.CountConsistent)
		for _, w := range report.Warnings {
			fmt.Printf("warning: %s\n", w)
		}
		for _, issue := range report.Issues {
			fmt.Printf("issue: %s\n", issue)
		}

		if !report.Healthy() {
			fmt.Fprintln(os.Stderr, "store is unhealthy")
			os.Exit(exitFailure)
		}
		fmt.Println("store is healthy")
		return nil
	},
}
