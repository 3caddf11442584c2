package migrate

// This file implements the legacy-database import tier: a structured
// ETL from a per-game legacy SQLite file into the unified store.
// Malformed rows are skipped and counted; a bad row never aborts the
// import.

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/eldermyth/cardvault/internal/sqlite"
	"github.com/eldermyth/cardvault/pkg/types"
)

// Legacy schema DDL, shared with the procedural fallback's scratch
// store. The column layout mirrors the per-game databases this system
// migrates from.
const (
	legacyCreateExpansions = `CREATE TABLE IF NOT EXISTS expansions (
    _id INTEGER PRIMARY KEY,
    name TEXT NOT NULL,
    icon TEXT NOT NULL DEFAULT ''
);`

	legacyCreateNeighborhoods = `CREATE TABLE IF NOT EXISTS neighborhoods (
    _id INTEGER PRIMARY KEY,
    expansion_id INTEGER NOT NULL,
    name TEXT NOT NULL,
    card_back TEXT NOT NULL DEFAULT '',
    button TEXT NOT NULL DEFAULT '',
    FOREIGN KEY (expansion_id) REFERENCES expansions(_id)
);`

	legacyCreateLocations = `CREATE TABLE IF NOT EXISTS locations (
    _id INTEGER PRIMARY KEY,
    neighborhood_id INTEGER,
    expansion_id INTEGER,
    name TEXT NOT NULL,
    sort_order INTEGER NOT NULL DEFAULT 0,
    FOREIGN KEY (neighborhood_id) REFERENCES neighborhoods(_id)
);`

	legacyCreateColors = `CREATE TABLE IF NOT EXISTS colors (
    _id INTEGER PRIMARY KEY,
    expansion_id INTEGER NOT NULL,
    name TEXT NOT NULL
);`

	legacyCreateLocationColors = `CREATE TABLE IF NOT EXISTS location_colors (
    location_id INTEGER NOT NULL,
    color_id INTEGER NOT NULL,
    PRIMARY KEY (location_id, color_id)
);`

	legacyCreateEncounters = `CREATE TABLE IF NOT EXISTS encounters (
    _id INTEGER PRIMARY KEY,
    location_id INTEGER NOT NULL,
    text TEXT NOT NULL,
    FOREIGN KEY (location_id) REFERENCES locations(_id)
);`

	legacyCreateCards = `CREATE TABLE IF NOT EXISTS cards (
    _id INTEGER PRIMARY KEY,
    name TEXT NOT NULL DEFAULT '',
    neighborhood_id INTEGER NOT NULL DEFAULT 0,
    expansions TEXT NOT NULL DEFAULT ''
);`

	legacyCreateCardEncounters = `CREATE TABLE IF NOT EXISTS card_encounters (
    card_id INTEGER NOT NULL,
    encounter_id INTEGER NOT NULL,
    PRIMARY KEY (card_id, encounter_id)
);`

	legacyCreateCardColors = `CREATE TABLE IF NOT EXISTS card_colors (
    card_id INTEGER NOT NULL,
    color_id INTEGER NOT NULL,
    PRIMARY KEY (card_id, color_id)
);`
)

// legacyArkhamDDL lists the legacy Arkham schema in dependency order.
var legacyArkhamDDL = []string{
	legacyCreateExpansions,
	legacyCreateNeighborhoods,
	legacyCreateLocations,
	legacyCreateColors,
	legacyCreateLocationColors,
	legacyCreateEncounters,
	legacyCreateCards,
	legacyCreateCardEncounters,
	legacyCreateCardColors,
}

// legacyCreateEldritchCards is the single-table legacy Eldritch layout.
const legacyCreateEldritchCards = `CREATE TABLE IF NOT EXISTS cards (
    _id INTEGER PRIMARY KEY,
    card_id TEXT NOT NULL,
    expansions TEXT NOT NULL DEFAULT '',
    region TEXT NOT NULL DEFAULT '',
    top_header TEXT NOT NULL DEFAULT '',
    top TEXT NOT NULL DEFAULT '',
    middle_header TEXT NOT NULL DEFAULT '',
    middle TEXT NOT NULL DEFAULT '',
    bottom_header TEXT NOT NULL DEFAULT '',
    bottom TEXT NOT NULL DEFAULT ''
);`

// openLegacy opens a legacy database file for reading. Returns
// ErrNoLegacySource when the file is missing or cannot be opened.
func openLegacy(path string) (*sql.DB, error) {
	if _, err := os.Stat(path); err != nil {
		return nil, types.ErrNoLegacySource
	}
	db, err := sql.Open("sqlite", filepath.Clean(path))
	if err != nil {
		return nil, types.ErrNoLegacySource
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, types.ErrNoLegacySource
	}
	return db, nil
}

// legacyHasCards reports whether a legacy handle holds at least one
// card row. Missing tables count as empty.
func legacyHasCards(db *sql.DB) bool {
	var n int64
	if err := db.QueryRow("SELECT COUNT(*) FROM cards").Scan(&n); err != nil {
		return false
	}
	return n > 0
}

// importArkhamLegacy runs the Arkham ETL: expansions, neighborhoods,
// locations, colors, location-color links, encounters, cards (exploded
// across comma-joined expansion memberships), card-encounter links,
// and card-color links. Returns the number of cards inserted.
func importArkhamLegacy(src *sql.DB, dst *sqlite.Store) (int64, int, error) {
	skipped := 0

	expansionIDs, err := importLegacyExpansions(src, dst, types.GameArkham)
	if err != nil {
		return 0, 0, err
	}

	hoodIDs := make(map[int64]int64)
	rows, err := src.Query("SELECT _id, expansion_id, name, card_back, button FROM neighborhoods")
	if err != nil {
		return 0, 0, fmt.Errorf("reading legacy neighborhoods: %w", err)
	}
	for rows.Next() {
		var legacyID, legacyExp int64
		var name, back, button string
		if err := rows.Scan(&legacyID, &legacyExp, &name, &back, &button); err != nil {
			skipped++
			continue
		}
		expID := expansionIDs[legacyExp]
		id, err := dst.GetOrCreateNeighborhood(expID, name, back, button)
		if err != nil {
			skipped++
			continue
		}
		hoodIDs[legacyID] = id
	}
	rows.Close()

	locationIDs := make(map[int64]int64)
	rows, err = src.Query("SELECT _id, neighborhood_id, expansion_id, name, sort_order FROM locations")
	if err != nil {
		return 0, 0, fmt.Errorf("reading legacy locations: %w", err)
	}
	for rows.Next() {
		var legacyID int64
		var legacyHood, legacyExp sql.NullInt64
		var name string
		var sortOrder int
		if err := rows.Scan(&legacyID, &legacyHood, &legacyExp, &name, &sortOrder); err != nil {
			skipped++
			continue
		}
		id, err := dst.GetOrCreateLocation(
			hoodIDs[legacyHood.Int64], expansionIDs[legacyExp.Int64], name, sortOrder,
		)
		if err != nil {
			skipped++
			continue
		}
		locationIDs[legacyID] = id
	}
	rows.Close()

	colorIDs := make(map[int64]int64)
	rows, err = src.Query("SELECT _id, expansion_id, name FROM colors")
	if err != nil {
		return 0, 0, fmt.Errorf("reading legacy colors: %w", err)
	}
	for rows.Next() {
		var legacyID, legacyExp int64
		var name string
		if err := rows.Scan(&legacyID, &legacyExp, &name); err != nil {
			skipped++
			continue
		}
		id, err := dst.GetOrCreateColor(expansionIDs[legacyExp], name)
		if err != nil {
			skipped++
			continue
		}
		colorIDs[legacyID] = id
	}
	rows.Close()

	rows, err = src.Query("SELECT location_id, color_id FROM location_colors")
	if err != nil {
		return 0, 0, fmt.Errorf("reading legacy location colors: %w", err)
	}
	for rows.Next() {
		var legacyLoc, legacyColor int64
		if err := rows.Scan(&legacyLoc, &legacyColor); err != nil {
			skipped++
			continue
		}
		loc, okLoc := locationIDs[legacyLoc]
		color, okColor := colorIDs[legacyColor]
		if !okLoc || !okColor {
			skipped++
			continue
		}
		if err := dst.LinkLocationColor(loc, color); err != nil {
			skipped++
		}
	}
	rows.Close()

	encounterIDs := make(map[int64]int64)
	rows, err = src.Query("SELECT _id, location_id, text FROM encounters")
	if err != nil {
		return 0, 0, fmt.Errorf("reading legacy encounters: %w", err)
	}
	for rows.Next() {
		var legacyID, legacyLoc int64
		var body string
		if err := rows.Scan(&legacyID, &legacyLoc, &body); err != nil {
			skipped++
			continue
		}
		loc, ok := locationIDs[legacyLoc]
		if !ok {
			skipped++
			continue
		}
		id, err := dst.InsertEncounter(loc, body)
		if err != nil {
			skipped++
			continue
		}
		encounterIDs[legacyID] = id
	}
	rows.Close()

	// Cards: one legacy row per card, exploded into one unified row
	// per expansion membership.
	var cards []*types.Card
	rows, err = src.Query("SELECT _id, name, neighborhood_id, expansions FROM cards")
	if err != nil {
		return 0, 0, fmt.Errorf("reading legacy cards: %w", err)
	}
	for rows.Next() {
		var legacyID, legacyHood int64
		var name, memberships string
		if err := rows.Scan(&legacyID, &name, &legacyHood, &memberships); err != nil {
			skipped++
			continue
		}
		for _, member := range splitMemberships(memberships) {
			cards = append(cards, &types.Card{
				GameType:       types.GameArkham,
				CardID:         strconv.FormatInt(legacyID, 10),
				Expansion:      CanonicalExpansionName(member),
				CardName:       name,
				Encountered:    types.EncounteredNone,
				NeighborhoodID: hoodIDs[legacyHood],
			})
		}
	}
	rows.Close()

	report, err := dst.InsertCards(cards)
	if err != nil {
		return 0, 0, fmt.Errorf("inserting migrated cards: %w", err)
	}
	skipped += report.Failed

	rows, err = src.Query("SELECT card_id, encounter_id FROM card_encounters")
	if err != nil {
		return 0, 0, fmt.Errorf("reading legacy card encounters: %w", err)
	}
	for rows.Next() {
		var legacyCard, legacyEnc int64
		if err := rows.Scan(&legacyCard, &legacyEnc); err != nil {
			skipped++
			continue
		}
		enc, ok := encounterIDs[legacyEnc]
		if !ok {
			skipped++
			continue
		}
		if err := dst.LinkCardEncounter(strconv.FormatInt(legacyCard, 10), enc, types.GameArkham); err != nil {
			skipped++
		}
	}
	rows.Close()

	// Card colors are optional: the oldest legacy databases predate
	// the table.
	if crows, err := src.Query("SELECT card_id, color_id FROM card_colors"); err == nil {
		for crows.Next() {
			var legacyCard, legacyColor int64
			if err := crows.Scan(&legacyCard, &legacyColor); err != nil {
				skipped++
				continue
			}
			color, ok := colorIDs[legacyColor]
			if !ok {
				skipped++
				continue
			}
			if err := dst.LinkCardColor(strconv.FormatInt(legacyCard, 10), types.GameArkham, color); err != nil {
				skipped++
			}
		}
		crows.Close()
	}

	return int64(report.Inserted), skipped, nil
}

// importEldritchLegacy runs the Eldritch ETL: expansions, then cards
// exploded across their comma-joined expansion memberships.
func importEldritchLegacy(src *sql.DB, dst *sqlite.Store) (int64, int, error) {
	skipped := 0

	if _, err := importLegacyExpansions(src, dst, types.GameEldritch); err != nil {
		return 0, 0, err
	}

	var cards []*types.Card
	rows, err := src.Query(
		`SELECT card_id, expansions, region, top_header, top, middle_header,
         middle, bottom_header, bottom FROM cards`,
	)
	if err != nil {
		return 0, 0, fmt.Errorf("reading legacy cards: %w", err)
	}
	for rows.Next() {
		var c types.Card
		var memberships string
		if err := rows.Scan(
			&c.CardID, &memberships, &c.Region, &c.TopHeader, &c.TopText,
			&c.MiddleHeader, &c.MiddleText, &c.BottomHeader, &c.BottomText,
		); err != nil {
			skipped++
			continue
		}
		c.GameType = types.GameEldritch
		c.Encountered = types.EncounteredNone
		for _, member := range splitMemberships(memberships) {
			exploded := c
			exploded.Expansion = CanonicalExpansionName(member)
			cards = append(cards, &exploded)
		}
	}
	rows.Close()

	report, err := dst.InsertCards(cards)
	if err != nil {
		return 0, 0, fmt.Errorf("inserting migrated cards: %w", err)
	}
	return int64(report.Inserted), skipped + report.Failed, nil
}

// importLegacyExpansions maps legacy expansion rows into the unified
// store and returns legacy-ID to store-ID mappings.
func importLegacyExpansions(src *sql.DB, dst *sqlite.Store, game types.GameType) (map[int64]int64, error) {
	out := make(map[int64]int64)
	rows, err := src.Query("SELECT _id, name, icon FROM expansions")
	if err != nil {
		// A legacy database without an expansions table still has
		// cards declaring memberships by name.
		return out, nil
	}
	defer rows.Close()

	for rows.Next() {
		var legacyID int64
		var name, icon string
		if err := rows.Scan(&legacyID, &name, &icon); err != nil {
			continue
		}
		id, err := dst.GetOrCreateExpansion(
			game, strconv.FormatInt(legacyID, 10), CanonicalExpansionName(name), icon,
		)
		if err != nil {
			continue
		}
		out[legacyID] = id
	}
	return out, rows.Err()
}

// splitMemberships splits a comma-joined expansion membership string,
// dropping empty entries.
func splitMemberships(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
