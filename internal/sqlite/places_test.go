package sqlite

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/eldermyth/cardvault/pkg/types"
)

func TestGetOrCreateNeighborhoodIdempotent(t *testing.T) {
	s := openTestStore(t)
	exp, err := s.GetOrCreateExpansion(types.GameArkham, "", "BASE", "")
	require.NoError(t, err)

	first, err := s.GetOrCreateNeighborhood(exp, "Downtown", "back.png", "btn.png")
	require.NoError(t, err)
	second, err := s.GetOrCreateNeighborhood(exp, "Downtown", "", "")
	require.NoError(t, err)
	assert.Equal(t, first, second)

	hoods, err := s.Neighborhoods([]int64{exp})
	require.NoError(t, err)
	require.Len(t, hoods, 1)
	assert.Equal(t, "Downtown", hoods[0].Name)

	_, err = s.GetOrCreateNeighborhood(exp, "", "", "")
	assert.ErrorIs(t, err, types.ErrInvalidData)
}

func TestGetOrCreateLocationScopes(t *testing.T) {
	s := openTestStore(t)
	exp, err := s.GetOrCreateExpansion(types.GameArkham, "", "BASE", "")
	require.NoError(t, err)
	hood, err := s.GetOrCreateNeighborhood(exp, "Downtown", "", "")
	require.NoError(t, err)

	inHood, err := s.GetOrCreateLocation(hood, exp, "Bank", 1)
	require.NoError(t, err)
	// Same name with no neighborhood is a distinct, other-world row.
	otherWorld, err := s.GetOrCreateLocation(0, exp, "Bank", 1)
	require.NoError(t, err)
	assert.NotEqual(t, inHood, otherWorld)

	again, err := s.GetOrCreateLocation(hood, exp, "Bank", 9)
	require.NoError(t, err)
	assert.Equal(t, inHood, again)

	loc, err := s.Location(otherWorld)
	require.NoError(t, err)
	assert.True(t, loc.OtherWorld())
	assert.Equal(t, int64(0), loc.NeighborhoodID)

	loc, err = s.Location(inHood)
	require.NoError(t, err)
	assert.False(t, loc.OtherWorld())
}

func TestLocationNotFound(t *testing.T) {
	s := openTestStore(t)
	_, err := s.Location(42)
	assert.ErrorIs(t, err, types.ErrNotFound)
}

func TestLocationsOrderedBySortOrderThenName(t *testing.T) {
	s := openTestStore(t)
	exp, err := s.GetOrCreateExpansion(types.GameArkham, "", "BASE", "")
	require.NoError(t, err)
	hood, err := s.GetOrCreateNeighborhood(exp, "Downtown", "", "")
	require.NoError(t, err)

	_, err = s.GetOrCreateLocation(hood, exp, "Tick Tock Club", 2)
	require.NoError(t, err)
	_, err = s.GetOrCreateLocation(hood, exp, "Bank of Arkham", 1)
	require.NoError(t, err)
	_, err = s.GetOrCreateLocation(hood, exp, "Asylum", 2)
	require.NoError(t, err)

	locs, err := s.Locations(LocationFilter{NeighborhoodID: hood})
	require.NoError(t, err)
	require.Len(t, locs, 3)
	assert.Equal(t, "Bank of Arkham", locs[0].Name)
	assert.Equal(t, "Asylum", locs[1].Name)
	assert.Equal(t, "Tick Tock Club", locs[2].Name)
}

func TestOtherWorldLocationsExclusion(t *testing.T) {
	s := openTestStore(t)
	exp, err := s.GetOrCreateExpansion(types.GameArkham, "", "BASE", "")
	require.NoError(t, err)
	hood, err := s.GetOrCreateNeighborhood(exp, "Downtown", "", "")
	require.NoError(t, err)

	_, err = s.GetOrCreateLocation(hood, exp, "Bank", 1)
	require.NoError(t, err)
	abyss, err := s.GetOrCreateLocation(0, exp, "The Abyss", 1)
	require.NoError(t, err)
	carcosa, err := s.GetOrCreateLocation(0, exp, "Lost Carcosa", 2)
	require.NoError(t, err)

	locs, err := s.OtherWorldLocations(nil, nil)
	require.NoError(t, err)
	assert.Len(t, locs, 2, "hood-bound locations excluded")

	// Explicit exclusions are honored both with and without an
	// expansion scope.
	locs, err = s.OtherWorldLocations(nil, []int64{abyss})
	require.NoError(t, err)
	require.Len(t, locs, 1)
	assert.Equal(t, carcosa, locs[0].LocationID)

	locs, err = s.OtherWorldLocations([]int64{exp}, []int64{abyss, carcosa})
	require.NoError(t, err)
	assert.Empty(t, locs)
}
