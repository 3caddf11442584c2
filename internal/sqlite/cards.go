package sqlite

// This file implements the card table surface: bulk insert with
// per-row outcomes, filtered scans, encountered-status updates, counts,
// and the administrative clear operations.

import (
	"database/sql"
	"fmt"
	"strings"

	"github.com/eldermyth/cardvault/pkg/types"
)

// cardColumns is the stable column list shared by every card query.
const cardColumns = `game_type, card_id, expansion, card_name, encountered,
    neighborhood_id, region, top_header, top_text, middle_header, middle_text,
    bottom_header, bottom_text`

const insertCardSQL = `INSERT OR IGNORE INTO cards
    (game_type, card_id, expansion, card_name, encountered, neighborhood_id,
     region, top_header, top_text, middle_header, middle_text, bottom_header, bottom_text)
    VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`

// InsertCards inserts a batch of cards in one transaction. Duplicates
// of the (game_type, card_id, expansion) uniqueness constraint are
// silently skipped and tagged Ignored; unexpected per-row errors are
// tagged Failed. The call never returns an error for partial failure;
// only transaction-level faults surface as an error.
func (s *Store) InsertCards(cards []*types.Card) (*types.BulkInsertReport, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.checkOpen(); err != nil {
		return nil, err
	}

	report := &types.BulkInsertReport{}
	if len(cards) == 0 {
		return report, nil
	}

	tx, err := s.db.Begin()
	if err != nil {
		return nil, fmt.Errorf("beginning card insert: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.Prepare(insertCardSQL)
	if err != nil {
		return nil, fmt.Errorf("preparing card insert: %w", err)
	}
	defer stmt.Close()

	for _, c := range cards {
		if !c.GameType.Valid() || c.CardID == "" || c.Expansion == "" {
			report.Add(types.InsertOutcome{
				Key:    c.Key(),
				Status: types.InsertFailed,
				Err:    types.ErrInvalidData,
			})
			continue
		}
		encountered := c.Encountered
		if encountered == "" {
			encountered = types.EncounteredNone
		}
		res, err := stmt.Exec(
			string(c.GameType), c.CardID, c.Expansion, c.CardName, encountered,
			c.NeighborhoodID, c.Region, c.TopHeader, c.TopText,
			c.MiddleHeader, c.MiddleText, c.BottomHeader, c.BottomText,
		)
		if err != nil {
			report.Add(types.InsertOutcome{Key: c.Key(), Status: types.InsertFailed, Err: err})
			continue
		}
		affected, err := res.RowsAffected()
		if err != nil {
			report.Add(types.InsertOutcome{Key: c.Key(), Status: types.InsertFailed, Err: err})
			continue
		}
		if affected == 0 {
			report.Add(types.InsertOutcome{
				Key:    c.Key(),
				Status: types.InsertIgnored,
				Reason: "duplicate of existing card",
			})
			continue
		}
		report.Add(types.InsertOutcome{Key: c.Key(), Status: types.InsertInserted})
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("committing card insert: %w", err)
	}
	return report, nil
}

// GetCard retrieves one card by its identity tuple. Returns
// ErrNotFound when no row matches.
func (s *Store) GetCard(game types.GameType, cardID, expansion string) (*types.Card, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if err := s.checkOpen(); err != nil {
		return nil, err
	}

	row := s.db.QueryRow(
		"SELECT "+cardColumns+" FROM cards WHERE game_type = ? AND card_id = ? AND expansion = ?",
		string(game), cardID, expansion,
	)
	card, err := hydrateCard(row.Scan)
	if err == sql.ErrNoRows {
		return nil, types.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("getting card %s/%s/%s: %w", game, cardID, expansion, err)
	}
	return card, nil
}

// CardFilter narrows a card scan. Zero fields are ignored; all set
// fields are ANDed together.
type CardFilter struct {
	GameType   types.GameType
	Expansions []string
	Region     string
	// Encountered filters on exact status when set.
	Encountered string
}

// Cards returns all cards matching the filter, ordered by card_id for
// stable display.
func (s *Store) Cards(filter CardFilter) ([]*types.Card, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if err := s.checkOpen(); err != nil {
		return nil, err
	}

	query := "SELECT " + cardColumns + " FROM cards"
	var conditions []string
	var args []any

	if filter.GameType != "" {
		conditions = append(conditions, "game_type = ?")
		args = append(args, string(filter.GameType))
	}
	if len(filter.Expansions) > 0 {
		placeholders := make([]string, len(filter.Expansions))
		for i, e := range filter.Expansions {
			placeholders[i] = "?"
			args = append(args, e)
		}
		conditions = append(conditions, "expansion IN ("+strings.Join(placeholders, ", ")+")")
	}
	if filter.Region != "" {
		conditions = append(conditions, "region = ?")
		args = append(args, filter.Region)
	}
	if filter.Encountered != "" {
		conditions = append(conditions, "encountered = ?")
		args = append(args, filter.Encountered)
	}

	if len(conditions) > 0 {
		query += " WHERE " + strings.Join(conditions, " AND ")
	}
	query += " ORDER BY card_id ASC"

	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying cards: %w", err)
	}
	defer rows.Close()

	var cards []*types.Card
	for rows.Next() {
		card, err := hydrateCard(rows.Scan)
		if err != nil {
			return nil, fmt.Errorf("scanning card: %w", err)
		}
		cards = append(cards, card)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating cards: %w", err)
	}
	return cards, nil
}

// CardsByGameType returns every card for one catalog.
func (s *Store) CardsByGameType(game types.GameType) ([]*types.Card, error) {
	return s.Cards(CardFilter{GameType: game})
}

// CardsByExpansion returns every card of one catalog inside the given
// expansion.
func (s *Store) CardsByExpansion(game types.GameType, expansion string) ([]*types.Card, error) {
	return s.Cards(CardFilter{GameType: game, Expansions: []string{expansion}})
}

// CardsByRegion returns every Eldritch card grouped under a region.
func (s *Store) CardsByRegion(game types.GameType, region string) ([]*types.Card, error) {
	return s.Cards(CardFilter{GameType: game, Region: region})
}

// CardsByIDs returns cards of one catalog whose card_id is in ids,
// optionally scoped to the given expansions.
func (s *Store) CardsByIDs(game types.GameType, ids []string, expansions []string) ([]*types.Card, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if err := s.checkOpen(); err != nil {
		return nil, err
	}
	if len(ids) == 0 {
		return nil, nil
	}

	placeholders := make([]string, len(ids))
	args := []any{string(game)}
	for i, id := range ids {
		placeholders[i] = "?"
		args = append(args, id)
	}
	query := "SELECT " + cardColumns + " FROM cards WHERE game_type = ? AND card_id IN (" +
		strings.Join(placeholders, ", ") + ")"
	if len(expansions) > 0 {
		expPlaceholders := make([]string, len(expansions))
		for i, e := range expansions {
			expPlaceholders[i] = "?"
			args = append(args, e)
		}
		query += " AND expansion IN (" + strings.Join(expPlaceholders, ", ") + ")"
	}
	query += " ORDER BY card_id ASC"

	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying cards by IDs: %w", err)
	}
	defer rows.Close()

	var cards []*types.Card
	for rows.Next() {
		card, err := hydrateCard(rows.Scan)
		if err != nil {
			return nil, fmt.Errorf("scanning card: %w", err)
		}
		cards = append(cards, card)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating cards: %w", err)
	}
	return cards, nil
}

// UpdateEncountered sets the encountered status of a single card.
// Returns ErrNotFound when the card does not exist; never cascades.
func (s *Store) UpdateEncountered(game types.GameType, cardID, expansion, status string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.checkOpen(); err != nil {
		return err
	}

	res, err := s.db.Exec(
		"UPDATE cards SET encountered = ? WHERE game_type = ? AND card_id = ? AND expansion = ?",
		status, string(game), cardID, expansion,
	)
	if err != nil {
		return fmt.Errorf("updating encountered status: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("reading update result: %w", err)
	}
	if affected == 0 {
		return types.ErrNotFound
	}
	return nil
}

// ResetEncounteredStatus bulk-sets encountered to NONE for a whole
// scope: a game, optionally narrowed to one expansion and/or one
// region. Used to reshuffle an entire pool. Returns the number of
// rows affected.
func (s *Store) ResetEncounteredStatus(game types.GameType, expansion, region string) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.checkOpen(); err != nil {
		return 0, err
	}

	query := "UPDATE cards SET encountered = ? WHERE game_type = ?"
	args := []any{types.EncounteredNone, string(game)}
	if expansion != "" {
		query += " AND expansion = ?"
		args = append(args, expansion)
	}
	if region != "" {
		query += " AND region = ?"
		args = append(args, region)
	}

	res, err := s.db.Exec(query, args...)
	if err != nil {
		return 0, fmt.Errorf("resetting encountered status: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("reading reset result: %w", err)
	}
	return affected, nil
}

// ResetEncounteredForNeighborhood bulk-sets encountered to NONE for
// every Arkham card in one neighborhood.
func (s *Store) ResetEncounteredForNeighborhood(neighborhoodID int64) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.checkOpen(); err != nil {
		return 0, err
	}

	res, err := s.db.Exec(
		"UPDATE cards SET encountered = ? WHERE game_type = ? AND neighborhood_id = ?",
		types.EncounteredNone, string(types.GameArkham), neighborhoodID,
	)
	if err != nil {
		return 0, fmt.Errorf("resetting neighborhood status: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("reading reset result: %w", err)
	}
	return affected, nil
}

// CardCount returns the number of cards in one catalog, or across the
// whole store when game is empty.
func (s *Store) CardCount(game types.GameType) (int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if err := s.checkOpen(); err != nil {
		return 0, err
	}

	var count int64
	var err error
	if game == "" {
		err = s.db.QueryRow("SELECT COUNT(*) FROM cards").Scan(&count)
	} else {
		err = s.db.QueryRow("SELECT COUNT(*) FROM cards WHERE game_type = ?", string(game)).Scan(&count)
	}
	if err != nil {
		return 0, fmt.Errorf("counting cards: %w", err)
	}
	return count, nil
}

// HasCards reports whether the catalog (or the whole store when game
// is empty) holds at least one card.
func (s *Store) HasCards(game types.GameType) (bool, error) {
	count, err := s.CardCount(game)
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// ClearGame removes every row belonging to one catalog, across all
// tables. The other catalog's data is untouched. Used before a forced
// re-migration.
func (s *Store) ClearGame(game types.GameType) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.checkOpen(); err != nil {
		return err
	}

	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("beginning clear: %w", err)
	}
	defer tx.Rollback()

	statements := []struct {
		sql  string
		args []any
	}{
		{"DELETE FROM card_encounters WHERE game_type = ?", []any{string(game)}},
		{"DELETE FROM card_colors WHERE game_type = ?", []any{string(game)}},
		{"DELETE FROM encounters WHERE location_id IN (SELECT location_id FROM locations WHERE expansion_id IN (SELECT expansion_id FROM expansions WHERE game_type = ?))", []any{string(game)}},
		{"DELETE FROM location_colors WHERE color_id IN (SELECT color_id FROM colors WHERE expansion_id IN (SELECT expansion_id FROM expansions WHERE game_type = ?))", []any{string(game)}},
		{"DELETE FROM colors WHERE expansion_id IN (SELECT expansion_id FROM expansions WHERE game_type = ?)", []any{string(game)}},
		{"DELETE FROM locations WHERE expansion_id IN (SELECT expansion_id FROM expansions WHERE game_type = ?)", []any{string(game)}},
		{"DELETE FROM neighborhoods WHERE expansion_id IN (SELECT expansion_id FROM expansions WHERE game_type = ?)", []any{string(game)}},
		{"DELETE FROM expansions WHERE game_type = ?", []any{string(game)}},
		{"DELETE FROM cards WHERE game_type = ?", []any{string(game)}},
	}
	for _, st := range statements {
		if _, err := tx.Exec(st.sql, st.args...); err != nil {
			return fmt.Errorf("clearing game rows: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing clear: %w", err)
	}
	return nil
}

// ClearAll wipes every table. Administrative only.
func (s *Store) ClearAll() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.checkOpen(); err != nil {
		return err
	}

	tables := []string{
		"card_encounters", "card_colors", "location_colors", "encounters",
		"colors", "locations", "neighborhoods", "expansions", "cards",
	}
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("beginning clear all: %w", err)
	}
	defer tx.Rollback()
	for _, t := range tables {
		if _, err := tx.Exec("DELETE FROM " + t); err != nil {
			return fmt.Errorf("clearing %s: %w", t, err)
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing clear all: %w", err)
	}
	return nil
}

// hydrateCard converts one row into a *types.Card. scan is either
// sql.Row.Scan or sql.Rows.Scan.
func hydrateCard(scan func(...any) error) (*types.Card, error) {
	var c types.Card
	var game string
	err := scan(
		&game, &c.CardID, &c.Expansion, &c.CardName, &c.Encountered,
		&c.NeighborhoodID, &c.Region, &c.TopHeader, &c.TopText,
		&c.MiddleHeader, &c.MiddleText, &c.BottomHeader, &c.BottomText,
	)
	if err != nil {
		return nil, err
	}
	c.GameType = types.GameType(game)
	return &c, nil
}
