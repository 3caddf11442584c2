package sqlite

// This file implements the colors accessor and the two color
// junctions (locations and cards).

import (
	"database/sql"
	"fmt"
	"strings"

	"github.com/eldermyth/cardvault/pkg/types"
)

// GetOrCreateColor looks up a color by (expansion, name) and inserts
// it when missing.
func (s *Store) GetOrCreateColor(expansionID int64, name string) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.checkOpen(); err != nil {
		return 0, err
	}
	if name == "" {
		return 0, types.ErrInvalidData
	}

	var id int64
	err := s.db.QueryRow(
		"SELECT color_id FROM colors WHERE expansion_id = ? AND name = ?",
		expansionID, name,
	).Scan(&id)
	if err == nil {
		return id, nil
	}
	if err != sql.ErrNoRows {
		return 0, fmt.Errorf("looking up color: %w", err)
	}

	res, err := s.db.Exec(
		"INSERT INTO colors (expansion_id, name) VALUES (?, ?)",
		expansionID, name,
	)
	if err != nil {
		return 0, fmt.Errorf("inserting color %s: %w", name, err)
	}
	id, err = res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("reading color ID: %w", err)
	}
	return id, nil
}

// LinkLocationColor records that a location carries a color.
// Relinking is a no-op.
func (s *Store) LinkLocationColor(locationID, colorID int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.checkOpen(); err != nil {
		return err
	}

	_, err := s.db.Exec(
		"INSERT OR IGNORE INTO location_colors (location_id, color_id) VALUES (?, ?)",
		locationID, colorID,
	)
	if err != nil {
		return fmt.Errorf("linking location %d to color %d: %w", locationID, colorID, err)
	}
	return nil
}

// LinkCardColor records that a card is linked to a color. Relinking
// is a no-op.
func (s *Store) LinkCardColor(cardID string, game types.GameType, colorID int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.checkOpen(); err != nil {
		return err
	}

	_, err := s.db.Exec(
		"INSERT OR IGNORE INTO card_colors (card_id, game_type, color_id) VALUES (?, ?, ?)",
		cardID, string(game), colorID,
	)
	if err != nil {
		return fmt.Errorf("linking card %s to color %d: %w", cardID, colorID, err)
	}
	return nil
}

// ColorsByExpansion returns every color declared under the given
// expansions, deduplicated by primary key and ordered by name. With no
// scope every color is returned.
func (s *Store) ColorsByExpansion(expansionIDs []int64) ([]*types.Color, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if err := s.checkOpen(); err != nil {
		return nil, err
	}

	query := "SELECT color_id, expansion_id, name FROM colors"
	var args []any
	if len(expansionIDs) > 0 {
		placeholders := make([]string, len(expansionIDs))
		for i, id := range expansionIDs {
			placeholders[i] = "?"
			args = append(args, id)
		}
		query += " WHERE expansion_id IN (" + strings.Join(placeholders, ", ") + ")"
	}
	query += " ORDER BY name ASC"

	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying colors: %w", err)
	}
	defer rows.Close()

	seen := make(map[int64]bool)
	var out []*types.Color
	for rows.Next() {
		var c types.Color
		if err := rows.Scan(&c.ColorID, &c.ExpansionID, &c.Name); err != nil {
			return nil, fmt.Errorf("scanning color: %w", err)
		}
		if seen[c.ColorID] {
			continue
		}
		seen[c.ColorID] = true
		out = append(out, &c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating colors: %w", err)
	}
	return out, nil
}

// ColorsForLocation returns the colors linked to one location.
func (s *Store) ColorsForLocation(locationID int64) ([]*types.Color, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if err := s.checkOpen(); err != nil {
		return nil, err
	}

	rows, err := s.db.Query(
		`SELECT c.color_id, c.expansion_id, c.name
         FROM colors c
         INNER JOIN location_colors lc ON lc.color_id = c.color_id
         WHERE lc.location_id = ?
         ORDER BY c.name ASC`,
		locationID,
	)
	if err != nil {
		return nil, fmt.Errorf("querying colors for location: %w", err)
	}
	defer rows.Close()

	var out []*types.Color
	for rows.Next() {
		var c types.Color
		if err := rows.Scan(&c.ColorID, &c.ExpansionID, &c.Name); err != nil {
			return nil, fmt.Errorf("scanning color: %w", err)
		}
		out = append(out, &c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating colors: %w", err)
	}
	return out, nil
}
