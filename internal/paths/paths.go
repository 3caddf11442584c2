// Package paths resolves configuration and data directory locations,
// and enumerates the candidate locations of legacy game databases.
package paths

import (
	"os"
	"path/filepath"
	"runtime"
)

// CWD-relative directory names used when no override is active.
const (
	DefaultConfigDirName = ".cardvault"
	DefaultDataDirName   = ".cardvault-db"
)

// StoreFileName is the name of the unified store file inside the data
// directory.
const StoreFileName = "cardvault.db"

// Environment variable names for directory overrides.
const (
	EnvConfigDir = "CARDVAULT_CONFIG_DIR"
	EnvDataDir   = "CARDVAULT_DATA_DIR"
)

// Legacy database file names searched during migration.
const (
	LegacyArkhamDBName   = "arkhamdb.sqlite"
	LegacyEldritchDBName = "eldritchdb.sqlite"
)

// platformDir holds platform-detection functions that can be
// overridden in tests.
var platformDir = struct {
	homeDir       func() (string, error)
	userConfigDir func() (string, error)
}{
	homeDir:       os.UserHomeDir,
	userConfigDir: os.UserConfigDir,
}

// DefaultConfigDir returns the platform-specific default configuration
// directory.
//
// Linux:   $XDG_CONFIG_HOME/cardvault (fallback ~/.config/cardvault)
// macOS:   ~/Library/Application Support/cardvault
// Windows: %APPDATA%/cardvault
func DefaultConfigDir() (string, error) {
	switch runtime.GOOS {
	case "linux":
		if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
			return filepath.Join(xdg, "cardvault"), nil
		}
		home, err := platformDir.homeDir()
		if err != nil {
			return "", err
		}
		return filepath.Join(home, ".config", "cardvault"), nil
	default:
		dir, err := platformDir.userConfigDir()
		if err != nil {
			return "", err
		}
		return filepath.Join(dir, "cardvault"), nil
	}
}

// DefaultDataDir returns the platform-specific default data directory.
//
// Linux:   $XDG_DATA_HOME/cardvault (fallback ~/.local/share/cardvault)
// macOS:   ~/Library/Application Support/cardvault
// Windows: %APPDATA%/cardvault
func DefaultDataDir() (string, error) {
	switch runtime.GOOS {
	case "linux":
		if xdg := os.Getenv("XDG_DATA_HOME"); xdg != "" {
			return filepath.Join(xdg, "cardvault"), nil
		}
		home, err := platformDir.homeDir()
		if err != nil {
			return "", err
		}
		return filepath.Join(home, ".local", "share", "cardvault"), nil
	default:
		dir, err := platformDir.userConfigDir()
		if err != nil {
			return "", err
		}
		return filepath.Join(dir, "cardvault"), nil
	}
}

// ResolveConfigDir returns the configuration directory following the
// precedence chain: flag > CARDVAULT_CONFIG_DIR env > DefaultConfigDir().
func ResolveConfigDir(flag string) (string, error) {
	if flag != "" {
		return filepath.Abs(flag)
	}
	if env := os.Getenv(EnvConfigDir); env != "" {
		return filepath.Abs(env)
	}
	return DefaultConfigDir()
}

// ResolveDataDir returns the data directory following the precedence
// chain: flag > config.yaml value > CARDVAULT_DATA_DIR env > CWD
// default $(CWD)/.cardvault-db.
func ResolveDataDir(flag, configYAMLValue string) (string, error) {
	if flag != "" {
		return filepath.Abs(flag)
	}
	if configYAMLValue != "" {
		return filepath.Abs(configYAMLValue)
	}
	if env := os.Getenv(EnvDataDir); env != "" {
		return filepath.Abs(env)
	}
	cwd, err := os.Getwd()
	if err != nil {
		return "", err
	}
	return filepath.Join(cwd, DefaultDataDirName), nil
}

// LegacyCandidates returns the ordered candidate paths for a legacy
// database file: any explicitly configured paths first, then the
// app-local data directory, then the sibling installed app's private
// storage when present.
func LegacyCandidates(configured []string, dataDir, fileName string) []string {
	var out []string
	out = append(out, configured...)
	out = append(out, filepath.Join(dataDir, fileName))
	if home, err := platformDir.homeDir(); err == nil {
		out = append(out, filepath.Join(home, ".local", "share", "cardvault", "legacy", fileName))
	}
	return out
}
