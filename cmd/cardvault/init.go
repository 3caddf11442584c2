package main

// The init command runs the migration pipeline for both games.

import (
	"fmt"

	"github.com/spf13/cobra"
)

var flagForceReinit bool

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize the store and migrate both card catalogs",
	Long: `Initialize the unified card store, populating each game from the
first usable legacy source: a bundled store image, a legacy per-game
database, the bundled XML corpus (Eldritch), or procedural generation
(Arkham).`,
	RunE: func(cmd *cobra.Command, args []string) error {
		arkham, eldritch, err := session.InitializeDatabase(flagForceReinit)
		if err != nil {
			return err
		}
		fmt.Printf("arkham cards:   %d\n", arkham)
		fmt.Printf("eldritch cards: %d\n", eldritch)
		if arkham == 0 && eldritch == 0 {
			fmt.Println("warning: no cards migrated; run 'cardvault health' for details")
		}
		return nil
	},
}

func init() {
	initCmd.Flags().BoolVar(&flagForceReinit, "force", false, "clear and re-migrate existing game data")
}
