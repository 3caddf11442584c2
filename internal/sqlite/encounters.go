package sqlite

// This file implements the encounters accessor and the two-stage
// location+color join behind the other-world selection mechanic.

import (
	"fmt"
	"strings"

	"github.com/eldermyth/cardvault/pkg/types"
)

// InsertEncounter adds an encounter body under a location.
func (s *Store) InsertEncounter(locationID int64, body string) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.checkOpen(); err != nil {
		return 0, err
	}
	if locationID == 0 || body == "" {
		return 0, types.ErrInvalidData
	}

	res, err := s.db.Exec(
		"INSERT INTO encounters (location_id, body) VALUES (?, ?)",
		locationID, body,
	)
	if err != nil {
		return 0, fmt.Errorf("inserting encounter: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("reading encounter ID: %w", err)
	}
	return id, nil
}

// LinkCardEncounter records that a card exposes an encounter. The
// junction is keyed by (card_id, encounter_id, game_type); relinking
// is a no-op.
func (s *Store) LinkCardEncounter(cardID string, encounterID int64, game types.GameType) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.checkOpen(); err != nil {
		return err
	}

	_, err := s.db.Exec(
		"INSERT OR IGNORE INTO card_encounters (card_id, encounter_id, game_type) VALUES (?, ?, ?)",
		cardID, encounterID, string(game),
	)
	if err != nil {
		return fmt.Errorf("linking card %s to encounter %d: %w", cardID, encounterID, err)
	}
	return nil
}

// EncountersByLocation returns every encounter owned by one location.
func (s *Store) EncountersByLocation(locationID int64) ([]*types.Encounter, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if err := s.checkOpen(); err != nil {
		return nil, err
	}

	rows, err := s.db.Query(
		"SELECT encounter_id, location_id, body FROM encounters WHERE location_id = ? ORDER BY encounter_id ASC",
		locationID,
	)
	if err != nil {
		return nil, fmt.Errorf("querying encounters: %w", err)
	}
	defer rows.Close()

	var out []*types.Encounter
	for rows.Next() {
		var e types.Encounter
		if err := rows.Scan(&e.EncounterID, &e.LocationID, &e.Body); err != nil {
			return nil, fmt.Errorf("scanning encounter: %w", err)
		}
		out = append(out, &e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating encounters: %w", err)
	}
	return out, nil
}

// CardIDsForEncounter returns the card IDs that expose the encounter.
func (s *Store) CardIDsForEncounter(encounterID int64, game types.GameType) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if err := s.checkOpen(); err != nil {
		return nil, err
	}

	rows, err := s.db.Query(
		"SELECT card_id FROM card_encounters WHERE encounter_id = ? AND game_type = ? ORDER BY card_id ASC",
		encounterID, string(game),
	)
	if err != nil {
		return nil, fmt.Errorf("querying card IDs for encounter: %w", err)
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scanning card ID: %w", err)
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating card IDs: %w", err)
	}
	return ids, nil
}

// FindEncountersByLocationAndColors runs the two-stage join behind the
// other-world mechanic. Stage one finds the card IDs that both own at
// least one encounter at locationID and are linked to at least one of
// colorIDs. Stage two returns all encounters owned by that card set,
// not only the ones at locationID: a drawn card is evaluated in full
// once matched, so encounters at its other locations count too.
func (s *Store) FindEncountersByLocationAndColors(locationID int64, colorIDs []int64, game types.GameType) ([]*types.Encounter, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if err := s.checkOpen(); err != nil {
		return nil, err
	}
	if locationID == 0 || len(colorIDs) == 0 {
		return nil, nil
	}

	placeholders := make([]string, len(colorIDs))
	for i := range colorIDs {
		placeholders[i] = "?"
	}

	query := `SELECT e.encounter_id, e.location_id, e.body
        FROM encounters e
        INNER JOIN card_encounters ce ON ce.encounter_id = e.encounter_id
        WHERE ce.card_id IN (
            SELECT ce2.card_id
            FROM card_encounters ce2
            INNER JOIN encounters e2 ON e2.encounter_id = ce2.encounter_id
            INNER JOIN card_colors cc ON cc.card_id = ce2.card_id AND cc.game_type = ce2.game_type
            WHERE e2.location_id = ?
              AND ce2.game_type = ?
              AND cc.color_id IN (` + strings.Join(placeholders, ", ") + `)
        )
        AND ce.game_type = ?
        ORDER BY e.encounter_id ASC`

	// Bind order: stage-one location and game, the color set, then the
	// stage-two game.
	args := []any{locationID, string(game)}
	for _, id := range colorIDs {
		args = append(args, id)
	}
	args = append(args, string(game))

	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying encounters by location and colors: %w", err)
	}
	defer rows.Close()

	seen := make(map[int64]bool)
	var out []*types.Encounter
	for rows.Next() {
		var e types.Encounter
		if err := rows.Scan(&e.EncounterID, &e.LocationID, &e.Body); err != nil {
			return nil, fmt.Errorf("scanning encounter: %w", err)
		}
		if seen[e.EncounterID] {
			continue
		}
		seen[e.EncounterID] = true
		out = append(out, &e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating encounters: %w", err)
	}
	return out, nil
}
