package main

// Deck-facing commands: decks, draw, shuffle, expansions.

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"
)

var expansionsCmd = &cobra.Command{
	Use:   "expansions",
	Short: "List expansion names holding cards for the selected game",
	RunE: func(cmd *cobra.Command, args []string) error {
		game, err := selectedGame()
		if err != nil {
			return err
		}
		for _, name := range session.ExpansionNames(game) {
			fmt.Println(name)
		}
		return nil
	},
}

var decksCmd = &cobra.Command{
	Use:   "decks",
	Short: "List materialized decks and their sizes",
	RunE: func(cmd *cobra.Command, args []string) error {
		game, err := selectedGame()
		if err != nil {
			return err
		}
		manager, err := session.Decks(game)
		if err != nil {
			return err
		}
		names := manager.DeckNames()
		sort.Strings(names)
		for _, name := range names {
			size, err := manager.DeckSize(name)
			if err != nil {
				return err
			}
			fmt.Printf("%s: %d cards\n", name, size)
		}
		fmt.Printf("discard pile: %d cards\n", len(manager.DiscardPile()))
		return nil
	},
}

var flagDiscardAs string

var drawCmd = &cobra.Command{
	Use:   "draw <deck>",
	Short: "Draw the top card of a deck",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		game, err := selectedGame()
		if err != nil {
			return err
		}
		manager, err := session.Decks(game)
		if err != nil {
			return err
		}
		card, err := manager.Draw(args[0])
		if err != nil {
			return err
		}
		fmt.Printf("%s (%s)\n", card.CardID, card.Expansion)
		if card.CardName != "" {
			fmt.Println(card.CardName)
		}
		if flagDiscardAs != "" {
			if err := manager.Discard(card, flagDiscardAs); err != nil {
				return err
			}
			fmt.Printf("discarded as %s\n", flagDiscardAs)
		}
		return nil
	},
}

var flagShuffleFull bool

var shuffleCmd = &cobra.Command{
	Use:   "shuffle <deck>",
	Short: "Shuffle a deck",
	Long: `Shuffle a deck in place. With --full, the whole scope's encountered
status is reset in the store and the decks are rebuilt, bringing
discarded cards back.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		game, err := selectedGame()
		if err != nil {
			return err
		}
		manager, err := session.Decks(game)
		if err != nil {
			return err
		}
		if flagShuffleFull {
			return manager.ShuffleFull(args[0])
		}
		return manager.Shuffle(args[0])
	},
}

var exportCmd = &cobra.Command{
	Use:   "export <path>",
	Short: "Export the store file to a path",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := session.ExportStoreTo(args[0]); err != nil {
			return err
		}
		fmt.Printf("exported to %s\n", args[0])
		return nil
	},
}

func init() {
	drawCmd.Flags().StringVar(&flagDiscardAs, "discard-as", "", "immediately discard the drawn card with this status")
	shuffleCmd.Flags().BoolVar(&flagShuffleFull, "full", false, "reset encountered status for the whole scope and rebuild")
}
