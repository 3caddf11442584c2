package main

// Root command and shared session wiring for the cardvault CLI.

import (
	"fmt"
	"log"
	"os"

	"github.com/spf13/cobra"

	"github.com/eldermyth/cardvault/internal/game"
	"github.com/eldermyth/cardvault/internal/paths"
	"github.com/eldermyth/cardvault/pkg/types"
)

// Version is the CLI version string.
const Version = "0.3.0"

// Exit codes.
const (
	exitSuccess = 0
	exitFailure = 1
)

// Global flag values.
var (
	flagConfigDir string
	flagDataDir   string
	flagGame      string
)

// session is the process-wide game session, built by
// PersistentPreRunE and closed by PersistentPostRunE.
var session *game.Session

var rootCmd = &cobra.Command{
	Use:     "cardvault",
	Short:   "CardVault is a unified local card store for two tabletop catalogs",
	Version: Version,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if cmd.Name() == "version" {
			return nil
		}
		cfg, err := buildConfig()
		if err != nil {
			return err
		}
		logger := log.New(os.Stderr, "", log.LstdFlags)
		session, err = game.NewSession(cfg, logger)
		if err != nil {
			return fmt.Errorf("creating session: %w", err)
		}
		return nil
	},
	PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
		if session != nil {
			return session.Close()
		}
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagConfigDir, "config-dir", "", "configuration directory (default: platform config dir)")
	rootCmd.PersistentFlags().StringVar(&flagDataDir, "data-dir", "", "data directory (default: $(CWD)/"+paths.DefaultDataDirName+")")
	rootCmd.PersistentFlags().StringVar(&flagGame, "game", string(types.GameArkham), "game catalog (ARKHAM or ELDRITCH)")

	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(initCmd)
	rootCmd.AddCommand(countCmd)
	rootCmd.AddCommand(healthCmd)
	rootCmd.AddCommand(expansionsCmd)
	rootCmd.AddCommand(decksCmd)
	rootCmd.AddCommand(drawCmd)
	rootCmd.AddCommand(shuffleCmd)
	rootCmd.AddCommand(exportCmd)
}

// buildConfig resolves directories and loads config.yaml into a
// types.Config.
func buildConfig() (types.Config, error) {
	configDir, err := paths.ResolveConfigDir(flagConfigDir)
	if err != nil {
		return types.Config{}, fmt.Errorf("resolving config dir: %w", err)
	}
	v, err := loadConfig(configDir)
	if err != nil {
		return types.Config{}, fmt.Errorf("loading config: %w", err)
	}
	dataDir, err := paths.ResolveDataDir(flagDataDir, v.GetString(cfgKeyDataDir))
	if err != nil {
		return types.Config{}, fmt.Errorf("resolving data dir: %w", err)
	}
	return types.Config{
		DataDir:             dataDir,
		StoreImagePath:      v.GetString(cfgKeyStoreImage),
		EldritchXMLPath:     v.GetString(cfgKeyEldritchXML),
		LegacyArkhamPaths:   v.GetStringSlice(cfgKeyLegacyArkham),
		LegacyEldritchPaths: v.GetStringSlice(cfgKeyLegacyEldritch),
	}, nil
}

// selectedGame parses the --game flag.
func selectedGame() (types.GameType, error) {
	g := types.GameType(flagGame)
	if !g.Valid() {
		return "", fmt.Errorf("%w: %q", types.ErrInvalidGameType, flagGame)
	}
	return g, nil
}
