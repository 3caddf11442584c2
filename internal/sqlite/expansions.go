package sqlite

// This file implements the expansions table accessor. Expansions are
// created lazily during migration: legacy sources reference them
// before declaring them, and several legacy ID spaces can point at the
// same logical expansion.

import (
	"database/sql"
	"fmt"

	"github.com/eldermyth/cardvault/pkg/types"
)

// GetOrCreateExpansion looks up an expansion for the given game,
// matching first by legacy identifier and then by name, creating the
// row when neither matches. Later callers may fill in a name or icon
// path that an earlier reference left empty.
func (s *Store) GetOrCreateExpansion(game types.GameType, legacyID, name, iconPath string) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.checkOpen(); err != nil {
		return 0, err
	}
	if !game.Valid() {
		return 0, types.ErrInvalidGameType
	}

	// Legacy identifier wins: two sources spelling the name
	// differently still reconcile to one row.
	if legacyID != "" {
		var id int64
		err := s.db.QueryRow(
			"SELECT expansion_id FROM expansions WHERE game_type = ? AND legacy_id = ?",
			string(game), legacyID,
		).Scan(&id)
		if err == nil {
			s.backfillExpansion(id, name, iconPath)
			return id, nil
		}
		if err != sql.ErrNoRows {
			return 0, fmt.Errorf("looking up expansion by legacy ID: %w", err)
		}
	}

	if name != "" {
		var id int64
		err := s.db.QueryRow(
			"SELECT expansion_id FROM expansions WHERE game_type = ? AND name = ?",
			string(game), name,
		).Scan(&id)
		if err == nil {
			if legacyID != "" {
				_, _ = s.db.Exec(
					"UPDATE expansions SET legacy_id = ? WHERE expansion_id = ? AND legacy_id = ''",
					legacyID, id,
				)
			}
			s.backfillExpansion(id, "", iconPath)
			return id, nil
		}
		if err != sql.ErrNoRows {
			return 0, fmt.Errorf("looking up expansion by name: %w", err)
		}
	}

	if name == "" && legacyID == "" {
		return 0, types.ErrInvalidData
	}
	if name == "" {
		// A bare legacy reference with no declared name yet; hold the
		// legacy ID as a placeholder name until the declaration shows up.
		name = legacyID
	}

	res, err := s.db.Exec(
		"INSERT INTO expansions (game_type, name, icon_path, legacy_id) VALUES (?, ?, ?, ?)",
		string(game), name, iconPath, legacyID,
	)
	if err != nil {
		return 0, fmt.Errorf("inserting expansion %s: %w", name, err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("reading expansion ID: %w", err)
	}
	return id, nil
}

// backfillExpansion writes a name or icon path onto an existing row
// when the stored value is still empty. Best-effort.
func (s *Store) backfillExpansion(id int64, name, iconPath string) {
	if iconPath != "" {
		_, _ = s.db.Exec(
			"UPDATE expansions SET icon_path = ? WHERE expansion_id = ? AND icon_path = ''",
			iconPath, id,
		)
	}
	if name != "" {
		_, _ = s.db.Exec(
			"UPDATE expansions SET name = ? WHERE expansion_id = ? AND name = legacy_id",
			name, id,
		)
	}
}

// Expansion returns one expansion row by ID.
func (s *Store) Expansion(id int64) (*types.Expansion, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if err := s.checkOpen(); err != nil {
		return nil, err
	}

	var e types.Expansion
	var game string
	err := s.db.QueryRow(
		"SELECT expansion_id, game_type, name, icon_path, legacy_id FROM expansions WHERE expansion_id = ?",
		id,
	).Scan(&e.ExpansionID, &game, &e.Name, &e.IconPath, &e.LegacyID)
	if err == sql.ErrNoRows {
		return nil, types.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("getting expansion %d: %w", id, err)
	}
	e.GameType = types.GameType(game)
	return &e, nil
}

// Expansions returns all expansions for one catalog, ordered by name.
func (s *Store) Expansions(game types.GameType) ([]*types.Expansion, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if err := s.checkOpen(); err != nil {
		return nil, err
	}

	rows, err := s.db.Query(
		"SELECT expansion_id, game_type, name, icon_path, legacy_id FROM expansions WHERE game_type = ? ORDER BY name ASC",
		string(game),
	)
	if err != nil {
		return nil, fmt.Errorf("querying expansions: %w", err)
	}
	defer rows.Close()

	var out []*types.Expansion
	for rows.Next() {
		var e types.Expansion
		var g string
		if err := rows.Scan(&e.ExpansionID, &g, &e.Name, &e.IconPath, &e.LegacyID); err != nil {
			return nil, fmt.Errorf("scanning expansion: %w", err)
		}
		e.GameType = types.GameType(g)
		out = append(out, &e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating expansions: %w", err)
	}
	return out, nil
}

// ExpansionNames returns the distinct expansion names that actually
// hold cards for one catalog, ordered by name.
func (s *Store) ExpansionNames(game types.GameType) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if err := s.checkOpen(); err != nil {
		return nil, err
	}

	rows, err := s.db.Query(
		"SELECT DISTINCT expansion FROM cards WHERE game_type = ? ORDER BY expansion ASC",
		string(game),
	)
	if err != nil {
		return nil, fmt.Errorf("querying expansion names: %w", err)
	}
	defer rows.Close()

	var names []string
	for rows.Next() {
		var n string
		if err := rows.Scan(&n); err != nil {
			return nil, fmt.Errorf("scanning expansion name: %w", err)
		}
		names = append(names, n)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating expansion names: %w", err)
	}
	return names, nil
}
