package types

import "errors"

// Config holds the store location and the migration inputs probed on
// first run. Zero values disable the corresponding migration tier.
type Config struct {
	// DataDir is the directory holding the store file.
	DataDir string `json:"data_dir" yaml:"data_dir"`

	// StoreImagePath is an optional pre-built store image copied
	// verbatim on first run.
	StoreImagePath string `json:"store_image_path" yaml:"store_image_path"`

	// LegacyArkhamPaths and LegacyEldritchPaths are candidate
	// filesystem locations for the per-game legacy databases, probed
	// in order.
	LegacyArkhamPaths   []string `json:"legacy_arkham_paths" yaml:"legacy_arkham_paths"`
	LegacyEldritchPaths []string `json:"legacy_eldritch_paths" yaml:"legacy_eldritch_paths"`

	// EldritchXMLPath is the bundled XML corpus used when no Eldritch
	// legacy database is found.
	EldritchXMLPath string `json:"eldritch_xml_path" yaml:"eldritch_xml_path"`
}

// Config validation errors.
var ErrDataDirEmpty = errors.New("data_dir must not be empty")

// Validate checks that the Config is well-formed. It returns a
// sentinel error from this package on failure.
func (c Config) Validate() error {
	if c.DataDir == "" {
		return ErrDataDirEmpty
	}
	return nil
}

// LegacyPaths returns the candidate legacy-database paths for the
// given game type.
func (c Config) LegacyPaths(game GameType) []string {
	switch game {
	case GameArkham:
		return c.LegacyArkhamPaths
	case GameEldritch:
		return c.LegacyEldritchPaths
	default:
		return nil
	}
}
