package migrate

// This file implements the procedural fallback tier for the Arkham
// catalog. When no legacy database exists, a disposable scratch store
// with the legacy schema is generated from built-in data, the legacy
// ETL is run against it, and the scratch store is deleted.

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	"github.com/eldermyth/cardvault/internal/sqlite"
)

// builtinNeighborhood is one generated neighborhood with its locations.
type builtinNeighborhood struct {
	name      string
	locations []string
}

// builtinArkhamNeighborhoods is the generated base-set layout.
var builtinArkhamNeighborhoods = []builtinNeighborhood{
	{"Downtown", []string{"Bank of Arkham", "Arkham Asylum", "Independence Square"}},
	{"Easttown", []string{"Hibb's Roadhouse", "Velma's Diner", "Police Station"}},
	{"Merchant District", []string{"Unvisited Isle", "River Docks", "The Unnamable"}},
	{"Northside", []string{"Curiositie Shoppe", "Newspaper", "Train Station"}},
	{"Rivertown", []string{"Black Cave", "General Store", "Graveyard"}},
	{"Miskatonic University", []string{"Administration", "Library", "Science Building"}},
	{"French Hill", []string{"The Witch House", "Silver Twilight Lodge"}},
	{"Uptown", []string{"Hospital", "Woods", "Ye Olde Magick Shoppe"}},
	{"Southside", []string{"Historical Society", "Ma's Boarding House", "South Church"}},
}

// builtinOtherWorlds are the generated other-world locations with
// their color sets.
var builtinOtherWorlds = []struct {
	name   string
	colors []string
}{
	{"Another Dimension", []string{"Blue", "Green", "Red", "Yellow"}},
	{"Abyss", []string{"Blue", "Red"}},
	{"City of the Great Race", []string{"Green", "Yellow"}},
	{"Great Hall of Celeano", []string{"Blue", "Green"}},
	{"Plateau of Leng", []string{"Green", "Red"}},
	{"R'lyeh", []string{"Red", "Yellow"}},
	{"Yuggoth", []string{"Blue", "Yellow"}},
}

// builtinColors is the full color set of the generated base game.
var builtinColors = []string{"Blue", "Green", "Red", "Yellow"}

// cardsPerLocation is the number of generated encounter cards per
// location.
const cardsPerLocation = 2

// generateArkhamScratch creates the scratch store at path, applies the
// legacy schema, and generates the built-in data inside one
// transaction with foreign-key checking disabled so insertion order
// does not matter. Checking is re-enabled afterward for validation.
func generateArkhamScratch(path string) error {
	db, err := sql.Open("sqlite", filepath.Clean(path))
	if err != nil {
		return fmt.Errorf("opening scratch store: %w", err)
	}
	defer db.Close()

	for _, stmt := range legacyArkhamDDL {
		if _, err := db.Exec(stmt); err != nil {
			return fmt.Errorf("creating scratch schema: %w", err)
		}
	}

	if _, err := db.Exec("PRAGMA foreign_keys = OFF"); err != nil {
		return fmt.Errorf("disabling foreign keys: %w", err)
	}

	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("beginning generation: %w", err)
	}
	defer tx.Rollback()

	if err := generateArkhamData(tx); err != nil {
		return fmt.Errorf("generating data: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing generation: %w", err)
	}

	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		return fmt.Errorf("re-enabling foreign keys: %w", err)
	}
	// Validate referential integrity now that checking is back on.
	rows, err := db.Query("PRAGMA foreign_key_check")
	if err != nil {
		return fmt.Errorf("checking foreign keys: %w", err)
	}
	defer rows.Close()
	if rows.Next() {
		return fmt.Errorf("generated scratch store violates referential integrity")
	}
	return rows.Err()
}

// generateArkhamData writes the built-in base-set rows in legacy
// layout: one expansion, the neighborhood grid, other-world locations
// with color links, and cardsPerLocation encounter cards per location.
func generateArkhamData(tx *sql.Tx) error {
	const expansionID = 1
	if _, err := tx.Exec(
		"INSERT INTO expansions (_id, name, icon) VALUES (?, ?, ?)",
		expansionID, ExpansionBase, "",
	); err != nil {
		return fmt.Errorf("inserting expansion: %w", err)
	}

	colorIDs := make(map[string]int64)
	for i, name := range builtinColors {
		id := int64(i + 1)
		if _, err := tx.Exec(
			"INSERT INTO colors (_id, expansion_id, name) VALUES (?, ?, ?)",
			id, expansionID, name,
		); err != nil {
			return fmt.Errorf("inserting color %s: %w", name, err)
		}
		colorIDs[name] = id
	}

	var locationID, encounterID, cardID int64
	for hoodIdx, hood := range builtinArkhamNeighborhoods {
		hoodID := int64(hoodIdx + 1)
		if _, err := tx.Exec(
			"INSERT INTO neighborhoods (_id, expansion_id, name, card_back, button) VALUES (?, ?, ?, ?, ?)",
			hoodID, expansionID, hood.name, "", "",
		); err != nil {
			return fmt.Errorf("inserting neighborhood %s: %w", hood.name, err)
		}

		for locIdx, locName := range hood.locations {
			locationID++
			if _, err := tx.Exec(
				"INSERT INTO locations (_id, neighborhood_id, expansion_id, name, sort_order) VALUES (?, ?, ?, ?, ?)",
				locationID, hoodID, expansionID, locName, locIdx,
			); err != nil {
				return fmt.Errorf("inserting location %s: %w", locName, err)
			}
			for n := 0; n < cardsPerLocation; n++ {
				cardID++
				encounterID++
				if _, err := tx.Exec(
					"INSERT INTO cards (_id, name, neighborhood_id, expansions) VALUES (?, ?, ?, ?)",
					cardID, fmt.Sprintf("%s Encounter %d", locName, n+1), hoodID, ExpansionBase,
				); err != nil {
					return fmt.Errorf("inserting card %d: %w", cardID, err)
				}
				if _, err := tx.Exec(
					"INSERT INTO encounters (_id, location_id, text) VALUES (?, ?, ?)",
					encounterID, locationID, fmt.Sprintf("An encounter at %s.", locName),
				); err != nil {
					return fmt.Errorf("inserting encounter %d: %w", encounterID, err)
				}
				if _, err := tx.Exec(
					"INSERT INTO card_encounters (card_id, encounter_id) VALUES (?, ?)",
					cardID, encounterID,
				); err != nil {
					return fmt.Errorf("linking card encounter: %w", err)
				}
			}
		}
	}

	// Other-world locations sit outside every neighborhood and carry
	// the color links driving the selection mechanic.
	for owIdx, ow := range builtinOtherWorlds {
		locationID++
		if _, err := tx.Exec(
			"INSERT INTO locations (_id, neighborhood_id, expansion_id, name, sort_order) VALUES (?, NULL, ?, ?, ?)",
			locationID, expansionID, ow.name, owIdx,
		); err != nil {
			return fmt.Errorf("inserting other-world location %s: %w", ow.name, err)
		}
		for _, color := range ow.colors {
			if _, err := tx.Exec(
				"INSERT INTO location_colors (location_id, color_id) VALUES (?, ?)",
				locationID, colorIDs[color],
			); err != nil {
				return fmt.Errorf("linking location color: %w", err)
			}
		}
		for n := 0; n < cardsPerLocation; n++ {
			cardID++
			encounterID++
			if _, err := tx.Exec(
				"INSERT INTO cards (_id, name, neighborhood_id, expansions) VALUES (?, ?, 0, ?)",
				cardID, fmt.Sprintf("%s Encounter %d", ow.name, n+1), ExpansionBase,
			); err != nil {
				return fmt.Errorf("inserting other-world card %d: %w", cardID, err)
			}
			if _, err := tx.Exec(
				"INSERT INTO encounters (_id, location_id, text) VALUES (?, ?, ?)",
				encounterID, locationID, fmt.Sprintf("An encounter in %s.", ow.name),
			); err != nil {
				return fmt.Errorf("inserting other-world encounter %d: %w", encounterID, err)
			}
			if _, err := tx.Exec(
				"INSERT INTO card_encounters (card_id, encounter_id) VALUES (?, ?)",
				cardID, encounterID,
			); err != nil {
				return fmt.Errorf("linking other-world card encounter: %w", err)
			}
			for _, color := range ow.colors {
				if _, err := tx.Exec(
					"INSERT INTO card_colors (card_id, color_id) VALUES (?, ?)",
					cardID, colorIDs[color],
				); err != nil {
					return fmt.Errorf("linking card color: %w", err)
				}
			}
		}
	}
	return nil
}

// runProceduralFallback generates the scratch store, imports it via
// the legacy ETL, and deletes the scratch file regardless of outcome.
func runProceduralFallback(dataDir string, dst *sqlite.Store) (int64, int, error) {
	scratch := filepath.Join(dataDir, "scratch-arkham.sqlite")
	defer os.Remove(scratch)

	if err := generateArkhamScratch(scratch); err != nil {
		return 0, 0, fmt.Errorf("generating scratch store: %w", err)
	}

	src, err := openLegacy(scratch)
	if err != nil {
		return 0, 0, fmt.Errorf("reopening scratch store: %w", err)
	}
	defer src.Close()

	return importArkhamLegacy(src, dst)
}
