package main

// The count command prints card counts.

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/eldermyth/cardvault/pkg/types"
)

var flagAllGames bool

var countCmd = &cobra.Command{
	Use:   "count",
	Short: "Print card counts",
	RunE: func(cmd *cobra.Command, args []string) error {
		if flagAllGames {
			total := session.CardCount("")
			fmt.Printf("total: %d\n", total)
			for _, g := range types.GameTypes() {
				fmt.Printf("%s: %d\n", g, session.CardCount(g))
			}
			return nil
		}
		game, err := selectedGame()
		if err != nil {
			return err
		}
		fmt.Println(session.CardCount(game))
		return nil
	},
}

func init() {
	countCmd.Flags().BoolVar(&flagAllGames, "all", false, "print total and per-game counts")
}
