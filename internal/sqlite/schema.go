// Package sqlite implements the CardVault store engine: the unified
// relational schema for both card catalogs and the CRUD/query surface
// over it. A single readers-writer lock guards the store; many
// concurrent readers, one fully exclusive writer.
package sqlite

// Schema DDL. All statements are additive (CREATE TABLE IF NOT EXISTS)
// so re-applying any version transition is harmless.
const (
	createVersion = `CREATE TABLE IF NOT EXISTS schema_version (
    version INTEGER NOT NULL
);`

	createCards = `CREATE TABLE IF NOT EXISTS cards (
    card_pk INTEGER PRIMARY KEY AUTOINCREMENT,
    game_type TEXT NOT NULL,
    card_id TEXT NOT NULL,
    expansion TEXT NOT NULL,
    card_name TEXT NOT NULL DEFAULT '',
    encountered TEXT NOT NULL DEFAULT 'NONE',
    neighborhood_id INTEGER NOT NULL DEFAULT 0,
    region TEXT NOT NULL DEFAULT '',
    top_header TEXT NOT NULL DEFAULT '',
    top_text TEXT NOT NULL DEFAULT '',
    middle_header TEXT NOT NULL DEFAULT '',
    middle_text TEXT NOT NULL DEFAULT '',
    bottom_header TEXT NOT NULL DEFAULT '',
    bottom_text TEXT NOT NULL DEFAULT '',
    UNIQUE (game_type, card_id, expansion)
);`

	createExpansions = `CREATE TABLE IF NOT EXISTS expansions (
    expansion_id INTEGER PRIMARY KEY AUTOINCREMENT,
    game_type TEXT NOT NULL,
    name TEXT NOT NULL,
    icon_path TEXT NOT NULL DEFAULT '',
    legacy_id TEXT NOT NULL DEFAULT '',
    UNIQUE (game_type, name)
);`

	createNeighborhoods = `CREATE TABLE IF NOT EXISTS neighborhoods (
    neighborhood_id INTEGER PRIMARY KEY AUTOINCREMENT,
    expansion_id INTEGER NOT NULL,
    name TEXT NOT NULL,
    card_back_path TEXT NOT NULL DEFAULT '',
    button_path TEXT NOT NULL DEFAULT '',
    FOREIGN KEY (expansion_id) REFERENCES expansions(expansion_id)
);`

	createLocations = `CREATE TABLE IF NOT EXISTS locations (
    location_id INTEGER PRIMARY KEY AUTOINCREMENT,
    neighborhood_id INTEGER,
    expansion_id INTEGER,
    name TEXT NOT NULL,
    sort_order INTEGER NOT NULL DEFAULT 0,
    FOREIGN KEY (neighborhood_id) REFERENCES neighborhoods(neighborhood_id),
    FOREIGN KEY (expansion_id) REFERENCES expansions(expansion_id)
);`

	createEncounters = `CREATE TABLE IF NOT EXISTS encounters (
    encounter_id INTEGER PRIMARY KEY AUTOINCREMENT,
    location_id INTEGER NOT NULL,
    body TEXT NOT NULL,
    FOREIGN KEY (location_id) REFERENCES locations(location_id)
);`

	createCardEncounters = `CREATE TABLE IF NOT EXISTS card_encounters (
    card_id TEXT NOT NULL,
    encounter_id INTEGER NOT NULL,
    game_type TEXT NOT NULL,
    PRIMARY KEY (card_id, encounter_id, game_type),
    FOREIGN KEY (encounter_id) REFERENCES encounters(encounter_id)
);`

	createColors = `CREATE TABLE IF NOT EXISTS colors (
    color_id INTEGER PRIMARY KEY AUTOINCREMENT,
    expansion_id INTEGER NOT NULL,
    name TEXT NOT NULL,
    UNIQUE (expansion_id, name),
    FOREIGN KEY (expansion_id) REFERENCES expansions(expansion_id)
);`

	createLocationColors = `CREATE TABLE IF NOT EXISTS location_colors (
    location_id INTEGER NOT NULL,
    color_id INTEGER NOT NULL,
    PRIMARY KEY (location_id, color_id),
    FOREIGN KEY (location_id) REFERENCES locations(location_id),
    FOREIGN KEY (color_id) REFERENCES colors(color_id)
);`

	createCardColors = `CREATE TABLE IF NOT EXISTS card_colors (
    card_id TEXT NOT NULL,
    game_type TEXT NOT NULL,
    color_id INTEGER NOT NULL,
    PRIMARY KEY (card_id, game_type, color_id),
    FOREIGN KEY (color_id) REFERENCES colors(color_id)
);`
)

// Index DDL for common queries.
const (
	idxCardsGameType  = `CREATE INDEX IF NOT EXISTS idx_cards_game_type ON cards(game_type);`
	idxCardsExpansion = `CREATE INDEX IF NOT EXISTS idx_cards_expansion ON cards(game_type, expansion);`
	idxCardsRegion    = `CREATE INDEX IF NOT EXISTS idx_cards_region ON cards(game_type, region);`
	idxLocationsHood  = `CREATE INDEX IF NOT EXISTS idx_locations_neighborhood ON locations(neighborhood_id);`
	idxEncountersLoc  = `CREATE INDEX IF NOT EXISTS idx_encounters_location ON encounters(location_id);`
	idxCardEncCard    = `CREATE INDEX IF NOT EXISTS idx_card_encounters_card ON card_encounters(card_id, game_type);`
	idxCardColorsCard = `CREATE INDEX IF NOT EXISTS idx_card_colors_card ON card_colors(card_id, game_type);`
)

// currentSchemaVersion is the schema version written by this build.
const currentSchemaVersion = 2

// schemaUpgrades lists, per target version, the statements applied when
// upgrading to it. No destructive migrations exist: version 2 only adds
// the card_colors junction and its index.
var schemaUpgrades = []struct {
	version    int
	statements []string
}{
	{
		version: 1,
		statements: []string{
			createCards,
			createExpansions,
			createNeighborhoods,
			createLocations,
			createEncounters,
			createCardEncounters,
			createColors,
			createLocationColors,
			idxCardsGameType,
			idxCardsExpansion,
			idxCardsRegion,
			idxLocationsHood,
			idxEncountersLoc,
			idxCardEncCard,
		},
	},
	{
		version: 2,
		statements: []string{
			createCardColors,
			idxCardColorsCard,
		},
	},
}
