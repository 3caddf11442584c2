package sqlite

import (
	"fmt"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/eldermyth/cardvault/pkg/types"
)

// openTestStore opens a fresh store under a temp directory and closes
// it when the test ends.
func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "cardvault.db"))
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func arkhamCard(id string, hood int64, expansion string) *types.Card {
	return &types.Card{
		GameType:       types.GameArkham,
		CardID:         id,
		Expansion:      expansion,
		CardName:       "Card " + id,
		NeighborhoodID: hood,
	}
}

func eldritchCard(id, region, expansion string) *types.Card {
	return &types.Card{
		GameType:  types.GameEldritch,
		CardID:    id,
		Expansion: expansion,
		CardName:  "Card " + id,
		Region:    region,
		TopHeader: "Top " + id,
		TopText:   "Top body " + id,
	}
}

// seedCards inserts the cards and fails the test unless every row
// landed.
func seedCards(t *testing.T, s *Store, cards ...*types.Card) {
	t.Helper()
	report, err := s.InsertCards(cards)
	require.NoError(t, err)
	require.Equal(t, len(cards), report.Inserted,
		fmt.Sprintf("expected all %d cards inserted", len(cards)))
}
