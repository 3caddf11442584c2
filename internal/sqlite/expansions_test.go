package sqlite

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/eldermyth/cardvault/pkg/types"
)

func TestGetOrCreateExpansionReconcilesByLegacyID(t *testing.T) {
	s := openTestStore(t)

	// A bare legacy reference shows up before the declaration: the
	// legacy ID stands in as the name.
	id, err := s.GetOrCreateExpansion(types.GameArkham, "3", "", "")
	require.NoError(t, err)
	exp, err := s.Expansion(id)
	require.NoError(t, err)
	assert.Equal(t, "3", exp.Name)

	// The declaration arrives later and backfills the real name.
	again, err := s.GetOrCreateExpansion(types.GameArkham, "3", "DUNWICH", "dunwich.png")
	require.NoError(t, err)
	assert.Equal(t, id, again)

	exp, err = s.Expansion(id)
	require.NoError(t, err)
	assert.Equal(t, "DUNWICH", exp.Name)
	assert.Equal(t, "dunwich.png", exp.IconPath)
	assert.Equal(t, "3", exp.LegacyID)
}

func TestGetOrCreateExpansionReconcilesByName(t *testing.T) {
	s := openTestStore(t)

	id, err := s.GetOrCreateExpansion(types.GameArkham, "", "BASE", "")
	require.NoError(t, err)
	again, err := s.GetOrCreateExpansion(types.GameArkham, "1", "BASE", "")
	require.NoError(t, err)
	assert.Equal(t, id, again, "matching name adopts the legacy ID")

	exp, err := s.Expansion(id)
	require.NoError(t, err)
	assert.Equal(t, "1", exp.LegacyID)
}

func TestGetOrCreateExpansionValidation(t *testing.T) {
	s := openTestStore(t)

	_, err := s.GetOrCreateExpansion("CHESS", "", "BASE", "")
	assert.ErrorIs(t, err, types.ErrInvalidGameType)

	_, err = s.GetOrCreateExpansion(types.GameArkham, "", "", "")
	assert.ErrorIs(t, err, types.ErrInvalidData)
}

func TestExpansionsPerGame(t *testing.T) {
	s := openTestStore(t)

	_, err := s.GetOrCreateExpansion(types.GameArkham, "", "BASE", "")
	require.NoError(t, err)
	_, err = s.GetOrCreateExpansion(types.GameEldritch, "", "BASE", "")
	require.NoError(t, err)

	arkham, err := s.Expansions(types.GameArkham)
	require.NoError(t, err)
	require.Len(t, arkham, 1)
	assert.Equal(t, types.GameArkham, arkham[0].GameType)
}

func TestExpansionNamesComeFromCards(t *testing.T) {
	s := openTestStore(t)
	seedCards(t, s,
		arkhamCard("a-1", 1, "DUNWICH"),
		arkhamCard("a-2", 1, "BASE"),
		arkhamCard("a-3", 2, "BASE"),
		eldritchCard("e-1", "AMERICAS", "OMENS"),
	)

	names, err := s.ExpansionNames(types.GameArkham)
	require.NoError(t, err)
	assert.Equal(t, []string{"BASE", "DUNWICH"}, names, "distinct and sorted")
}
