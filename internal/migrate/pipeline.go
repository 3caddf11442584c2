// Package migrate populates the unified card store from legacy
// sources. Each game is migrated independently through an ordered
// fallback chain: pre-built store image, legacy database import, XML
// corpus (Eldritch), procedural generation (Arkham). Missing sources
// are expected and move the pipeline to the next tier; only a chain
// that ends with zero cards is a health problem, never a crash.
package migrate

import (
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"

	"github.com/eldermyth/cardvault/internal/paths"
	"github.com/eldermyth/cardvault/internal/sqlite"
	"github.com/eldermyth/cardvault/pkg/types"
)

// Result summarizes one game's migration.
type Result struct {
	Game     types.GameType
	Source   string
	Inserted int64
	Skipped  int
}

// Migration source labels reported on Result.
const (
	SourceExisting   = "existing"
	SourceImage      = "image"
	SourceLegacyDB   = "legacy-db"
	SourceXML        = "xml"
	SourceProcedural = "procedural"
	SourceNone       = "none"
)

// Runner drives the migration pipeline against one store.
type Runner struct {
	store  *sqlite.Store
	config types.Config
	logger *log.Logger
}

// NewRunner builds a Runner. A nil logger falls back to the standard
// logger.
func NewRunner(store *sqlite.Store, config types.Config, logger *log.Logger) *Runner {
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{store: store, config: config, logger: logger}
}

// CopyStoreImage copies a pre-built store image to destPath when the
// destination does not exist yet. Returns true when the copy happened,
// in which case all further migration tiers are skipped. Run this
// before opening the store.
func CopyStoreImage(imagePath, destPath string) (bool, error) {
	if imagePath == "" {
		return false, nil
	}
	if _, err := os.Stat(destPath); err == nil {
		return false, nil
	}
	src, err := os.Open(imagePath)
	if err != nil {
		// A missing bundled image is an expected condition.
		return false, nil
	}
	defer src.Close()

	if err := os.MkdirAll(filepath.Dir(destPath), 0o755); err != nil {
		return false, fmt.Errorf("creating data dir: %w", err)
	}
	dst, err := os.Create(destPath)
	if err != nil {
		return false, fmt.Errorf("creating store file: %w", err)
	}
	defer dst.Close()

	if _, err := io.Copy(dst, src); err != nil {
		os.Remove(destPath)
		return false, fmt.Errorf("copying store image: %w", err)
	}
	return true, nil
}

// Run migrates one game through the fallback chain. Migration is
// skipped when the game already has cards, unless force is set, in
// which case only that game's rows are cleared first.
func (r *Runner) Run(game types.GameType, force bool) (*Result, error) {
	if !game.Valid() {
		return nil, types.ErrInvalidGameType
	}

	has, err := r.store.HasCards(game)
	if err != nil {
		return nil, fmt.Errorf("checking existing cards: %w", err)
	}
	if has && !force {
		count, err := r.store.CardCount(game)
		if err != nil {
			return nil, fmt.Errorf("counting existing cards: %w", err)
		}
		return &Result{Game: game, Source: SourceExisting, Inserted: count}, nil
	}
	if has {
		r.logger.Printf("migrate: force reinitialize, clearing %s rows", game)
		if err := r.store.ClearGame(game); err != nil {
			return nil, fmt.Errorf("clearing game for reinitialize: %w", err)
		}
	}

	// Tier: legacy database import.
	if result, ok := r.tryLegacyDB(game); ok {
		return result, nil
	}

	// Tier: per-game fallback.
	switch game {
	case types.GameEldritch:
		if result, ok := r.tryXML(); ok {
			return result, nil
		}
	case types.GameArkham:
		inserted, skipped, err := runProceduralFallback(r.config.DataDir, r.store)
		if err != nil {
			r.logger.Printf("migrate: procedural fallback failed: %v", err)
			break
		}
		r.logger.Printf("migrate: %s procedural generation inserted %d cards (%d rows skipped)",
			game, inserted, skipped)
		return &Result{Game: game, Source: SourceProcedural, Inserted: inserted, Skipped: skipped}, nil
	}

	// Every tier came up empty. Zero cards is a health problem for
	// the caller, not an error here.
	r.logger.Printf("migrate: no usable source for %s", game)
	return &Result{Game: game, Source: SourceNone}, nil
}

// tryLegacyDB probes the candidate paths for a legacy database and
// imports the first one that exists and holds cards.
func (r *Runner) tryLegacyDB(game types.GameType) (*Result, bool) {
	fileName := paths.LegacyArkhamDBName
	if game == types.GameEldritch {
		fileName = paths.LegacyEldritchDBName
	}
	candidates := paths.LegacyCandidates(r.config.LegacyPaths(game), r.config.DataDir, fileName)

	for _, candidate := range candidates {
		if _, err := os.Stat(candidate); err != nil {
			continue
		}
		src, err := openLegacy(candidate)
		if err != nil {
			continue
		}
		if !legacyHasCards(src) {
			src.Close()
			continue
		}

		var inserted int64
		var skipped int
		if game == types.GameArkham {
			inserted, skipped, err = importArkhamLegacy(src, r.store)
		} else {
			inserted, skipped, err = importEldritchLegacy(src, r.store)
		}
		src.Close()
		if err != nil {
			r.logger.Printf("migrate: legacy import from %s failed: %v", candidate, err)
			continue
		}
		r.logger.Printf("migrate: %s legacy import from %s inserted %d cards (%d rows skipped)",
			game, candidate, inserted, skipped)
		return &Result{Game: game, Source: SourceLegacyDB, Inserted: inserted, Skipped: skipped}, true
	}
	return nil, false
}

// tryXML imports the bundled Eldritch corpus when configured.
func (r *Runner) tryXML() (*Result, bool) {
	if r.config.EldritchXMLPath == "" {
		return nil, false
	}
	inserted, skipped, err := importEldritchXML(r.config.EldritchXMLPath, r.store)
	if err != nil {
		if err != types.ErrNoLegacySource {
			r.logger.Printf("migrate: XML import failed: %v", err)
		}
		return nil, false
	}
	r.logger.Printf("migrate: eldritch XML import inserted %d cards (%d rows skipped)",
		inserted, skipped)
	return &Result{
		Game: types.GameEldritch, Source: SourceXML, Inserted: inserted, Skipped: skipped,
	}, true
}
