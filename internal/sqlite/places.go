package sqlite

// This file implements the neighborhoods and locations accessors.
// Listing queries deduplicate by primary key: an expansion can
// legitimately reference the same neighborhood from multiple paths and
// callers must never see duplicates.

import (
	"database/sql"
	"fmt"
	"strings"

	"github.com/eldermyth/cardvault/pkg/types"
)

// GetOrCreateNeighborhood looks up a neighborhood by (expansion, name)
// and inserts it when missing.
func (s *Store) GetOrCreateNeighborhood(expansionID int64, name, cardBackPath, buttonPath string) (int64, error) {
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
		"SELECT neighborhood_id FROM neighborhoods WHERE expansion_id = ? AND name = ?",
		expansionID, name,
	).Scan(&id)
	if err == nil {
		return id, nil
	}
	if err != sql.ErrNoRows {
		return 0, fmt.Errorf("looking up neighborhood: %w", err)
	}

	res, err := s.db.Exec(
		"INSERT INTO neighborhoods (expansion_id, name, card_back_path, button_path) VALUES (?, ?, ?, ?)",
		expansionID, name, cardBackPath, buttonPath,
	)
	if err != nil {
		return 0, fmt.Errorf("inserting neighborhood %s: %w", name, err)
	}
	id, err = res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("reading neighborhood ID: %w", err)
	}
	return id, nil
}

// Neighborhoods returns the neighborhoods reachable from the given
// expansions, deduplicated by primary key and ordered by name. With no
// expansion scope every neighborhood is returned.
func (s *Store) Neighborhoods(expansionIDs []int64) ([]*types.Neighborhood, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if err := s.checkOpen(); err != nil {
		return nil, err
	}

	query := "SELECT neighborhood_id, expansion_id, name, card_back_path, button_path FROM neighborhoods"
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
		return nil, fmt.Errorf("querying neighborhoods: %w", err)
	}
	defer rows.Close()

	seen := make(map[int64]bool)
	var out []*types.Neighborhood
	for rows.Next() {
		var n types.Neighborhood
		if err := rows.Scan(&n.NeighborhoodID, &n.ExpansionID, &n.Name, &n.CardBackPath, &n.ButtonPath); err != nil {
			return nil, fmt.Errorf("scanning neighborhood: %w", err)
		}
		if seen[n.NeighborhoodID] {
			continue
		}
		seen[n.NeighborhoodID] = true
		out = append(out, &n)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating neighborhoods: %w", err)
	}
	return out, nil
}

// GetOrCreateLocation looks up a location by name within its
// neighborhood/expansion scope and inserts it when missing. Pass zero
// for neighborhoodID to create an other-world location.
func (s *Store) GetOrCreateLocation(neighborhoodID, expansionID int64, name string, sortOrder int) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.checkOpen(); err != nil {
		return 0, err
	}
	if name == "" {
		return 0, types.ErrInvalidData
	}

	query := "SELECT location_id FROM locations WHERE name = ?"
	args := []any{name}
	if neighborhoodID != 0 {
		query += " AND neighborhood_id = ?"
		args = append(args, neighborhoodID)
	} else {
		query += " AND neighborhood_id IS NULL"
	}
	if expansionID != 0 {
		query += " AND expansion_id = ?"
		args = append(args, expansionID)
	}

	var id int64
	err := s.db.QueryRow(query, args...).Scan(&id)
	if err == nil {
		return id, nil
	}
	if err != sql.ErrNoRows {
		return 0, fmt.Errorf("looking up location: %w", err)
	}

	res, err := s.db.Exec(
		"INSERT INTO locations (neighborhood_id, expansion_id, name, sort_order) VALUES (?, ?, ?, ?)",
		nullableID(neighborhoodID), nullableID(expansionID), name, sortOrder,
	)
	if err != nil {
		return 0, fmt.Errorf("inserting location %s: %w", name, err)
	}
	id, err = res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("reading location ID: %w", err)
	}
	return id, nil
}

// Location returns one location row by ID.
func (s *Store) Location(id int64) (*types.Location, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if err := s.checkOpen(); err != nil {
		return nil, err
	}

	row := s.db.QueryRow(
		"SELECT location_id, neighborhood_id, expansion_id, name, sort_order FROM locations WHERE location_id = ?",
		id,
	)
	loc, err := scanLocation(row.Scan)
	if err == sql.ErrNoRows {
		return nil, types.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("getting location %d: %w", id, err)
	}
	return loc, nil
}

// LocationFilter narrows a location listing.
type LocationFilter struct {
	NeighborhoodID int64
	ExpansionIDs   []int64
	// OtherWorldOnly restricts to locations with no neighborhood.
	OtherWorldOnly bool
	ExcludeIDs     []int64
}

// Locations returns locations matching the filter, deduplicated by
// primary key and ordered by sort_order then name.
func (s *Store) Locations(filter LocationFilter) ([]*types.Location, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if err := s.checkOpen(); err != nil {
		return nil, err
	}

	query := "SELECT location_id, neighborhood_id, expansion_id, name, sort_order FROM locations"
	var conditions []string
	var args []any

	if filter.NeighborhoodID != 0 {
		conditions = append(conditions, "neighborhood_id = ?")
		args = append(args, filter.NeighborhoodID)
	}
	if filter.OtherWorldOnly {
		conditions = append(conditions, "neighborhood_id IS NULL")
	}
	if len(filter.ExpansionIDs) > 0 {
		placeholders := make([]string, len(filter.ExpansionIDs))
		for i, id := range filter.ExpansionIDs {
			placeholders[i] = "?"
			args = append(args, id)
		}
		conditions = append(conditions, "expansion_id IN ("+strings.Join(placeholders, ", ")+")")
	}
	if len(filter.ExcludeIDs) > 0 {
		placeholders := make([]string, len(filter.ExcludeIDs))
		for i, id := range filter.ExcludeIDs {
			placeholders[i] = "?"
			args = append(args, id)
		}
		conditions = append(conditions, "location_id NOT IN ("+strings.Join(placeholders, ", ")+")")
	}

	if len(conditions) > 0 {
		query += " WHERE " + strings.Join(conditions, " AND ")
	}
	query += " ORDER BY sort_order ASC, name ASC"

	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying locations: %w", err)
	}
	defer rows.Close()

	seen := make(map[int64]bool)
	var out []*types.Location
	for rows.Next() {
		loc, err := scanLocation(rows.Scan)
		if err != nil {
			return nil, fmt.Errorf("scanning location: %w", err)
		}
		if seen[loc.LocationID] {
			continue
		}
		seen[loc.LocationID] = true
		out = append(out, loc)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating locations: %w", err)
	}
	return out, nil
}

// OtherWorldLocations returns all locations with no neighborhood,
// optionally scoped to expansions and with explicit exclusions. The
// exclusion applies regardless of expansion filtering.
func (s *Store) OtherWorldLocations(expansionIDs, excludeIDs []int64) ([]*types.Location, error) {
	return s.Locations(LocationFilter{
		OtherWorldOnly: true,
		ExpansionIDs:   expansionIDs,
		ExcludeIDs:     excludeIDs,
	})
}

// scanLocation converts one locations row, mapping NULL foreign keys
// to zero.
func scanLocation(scan func(...any) error) (*types.Location, error) {
	var loc types.Location
	var hood, exp sql.NullInt64
	if err := scan(&loc.LocationID, &hood, &exp, &loc.Name, &loc.SortOrder); err != nil {
		return nil, err
	}
	loc.NeighborhoodID = hood.Int64
	loc.ExpansionID = exp.Int64
	return &loc, nil
}

// nullableID maps a zero ID to NULL for optional foreign keys.
func nullableID(id int64) any {
	if id == 0 {
		return nil
	}
	return id
}
