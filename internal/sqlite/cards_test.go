package sqlite

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/eldermyth/cardvault/pkg/types"
)

func TestInsertCardsTagsEveryRow(t *testing.T) {
	s := openTestStore(t)

	report, err := s.InsertCards([]*types.Card{
		arkhamCard("a-1", 1, "BASE"),
		arkhamCard("a-2", 1, "BASE"),
		arkhamCard("a-1", 1, "BASE"), // duplicate inside the batch
		{GameType: types.GameArkham, Expansion: "BASE"}, // missing card ID
	})
	require.NoError(t, err)

	assert.Equal(t, 2, report.Inserted)
	assert.Equal(t, 1, report.Ignored)
	assert.Equal(t, 1, report.Failed)
	require.Len(t, report.Outcomes, 4)
	assert.Equal(t, types.InsertIgnored, report.Outcomes[2].Status)
	assert.ErrorIs(t, report.Outcomes[3].Err, types.ErrInvalidData)

	count, err := s.CardCount(types.GameArkham)
	require.NoError(t, err)
	assert.Equal(t, int64(2), count, "failed and ignored rows must not count")
}

func TestInsertCardsIgnoresDuplicatesAcrossCalls(t *testing.T) {
	s := openTestStore(t)
	seedCards(t, s, arkhamCard("a-1", 1, "BASE"))

	report, err := s.InsertCards([]*types.Card{arkhamCard("a-1", 1, "BASE")})
	require.NoError(t, err)
	assert.Equal(t, 0, report.Inserted)
	assert.Equal(t, 1, report.Ignored)

	count, err := s.CardCount(types.GameArkham)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)
}

func TestSameCardIDAcrossExpansionsAndGames(t *testing.T) {
	s := openTestStore(t)

	// The identity tuple is (game, card, expansion); reusing an ID in a
	// different expansion or catalog is legitimate.
	seedCards(t, s,
		arkhamCard("1", 1, "BASE"),
		arkhamCard("1", 1, "DUNWICH"),
		eldritchCard("1", "AMERICAS", "BASE"),
	)

	total, err := s.CardCount("")
	require.NoError(t, err)
	assert.Equal(t, int64(3), total)
}

func TestCardCountMatchesPerGameSum(t *testing.T) {
	s := openTestStore(t)
	seedCards(t, s,
		arkhamCard("a-1", 1, "BASE"),
		arkhamCard("a-2", 2, "BASE"),
		eldritchCard("e-1", "AMERICAS", "BASE"),
	)

	total, err := s.CardCount("")
	require.NoError(t, err)
	arkham, err := s.CardCount(types.GameArkham)
	require.NoError(t, err)
	eldritch, err := s.CardCount(types.GameEldritch)
	require.NoError(t, err)

	assert.Equal(t, int64(3), total)
	assert.Equal(t, total, arkham+eldritch)
}

func TestGetCardNotFound(t *testing.T) {
	s := openTestStore(t)
	_, err := s.GetCard(types.GameArkham, "missing", "BASE")
	assert.ErrorIs(t, err, types.ErrNotFound)
}

func TestCardsFilterAndOrdering(t *testing.T) {
	s := openTestStore(t)
	seedCards(t, s,
		eldritchCard("e-2", "EUROPE", "BASE"),
		eldritchCard("e-1", "AMERICAS", "BASE"),
		eldritchCard("e-3", "AMERICAS", "OMENS"),
		arkhamCard("a-1", 1, "BASE"),
	)

	cards, err := s.Cards(CardFilter{GameType: types.GameEldritch, Region: "AMERICAS"})
	require.NoError(t, err)
	require.Len(t, cards, 2)
	assert.Equal(t, "e-1", cards[0].CardID, "results ordered by card_id")
	assert.Equal(t, "e-3", cards[1].CardID)

	cards, err = s.Cards(CardFilter{GameType: types.GameEldritch, Expansions: []string{"OMENS"}})
	require.NoError(t, err)
	require.Len(t, cards, 1)
	assert.Equal(t, "e-3", cards[0].CardID)
}

func TestCardsByIDsScopedToExpansions(t *testing.T) {
	s := openTestStore(t)
	seedCards(t, s,
		arkhamCard("a-1", 1, "BASE"),
		arkhamCard("a-1", 1, "DUNWICH"),
		arkhamCard("a-2", 1, "BASE"),
	)

	cards, err := s.CardsByIDs(types.GameArkham, []string{"a-1"}, []string{"BASE"})
	require.NoError(t, err)
	require.Len(t, cards, 1)
	assert.Equal(t, "BASE", cards[0].Expansion)

	cards, err = s.CardsByIDs(types.GameArkham, []string{"a-1"}, nil)
	require.NoError(t, err)
	assert.Len(t, cards, 2)

	cards, err = s.CardsByIDs(types.GameArkham, nil, nil)
	require.NoError(t, err)
	assert.Empty(t, cards)
}

func TestUpdateEncounteredRoundTrip(t *testing.T) {
	s := openTestStore(t)
	seedCards(t, s, eldritchCard("e-1", "AMERICAS", "BASE"))

	require.NoError(t, s.UpdateEncountered(types.GameEldritch, "e-1", "BASE", "TOP"))

	card, err := s.GetCard(types.GameEldritch, "e-1", "BASE")
	require.NoError(t, err)
	assert.Equal(t, "TOP", card.Encountered)
	assert.False(t, card.Available())

	err = s.UpdateEncountered(types.GameEldritch, "missing", "BASE", "TOP")
	assert.ErrorIs(t, err, types.ErrNotFound)
}

func TestResetEncounteredStatusScope(t *testing.T) {
	s := openTestStore(t)
	seedCards(t, s,
		eldritchCard("e-1", "AMERICAS", "BASE"),
		eldritchCard("e-2", "EUROPE", "BASE"),
	)
	require.NoError(t, s.UpdateEncountered(types.GameEldritch, "e-1", "BASE", types.EncounteredDiscarded))
	require.NoError(t, s.UpdateEncountered(types.GameEldritch, "e-2", "BASE", types.EncounteredDiscarded))

	affected, err := s.ResetEncounteredStatus(types.GameEldritch, "", "AMERICAS")
	require.NoError(t, err)
	assert.Equal(t, int64(1), affected)

	card, err := s.GetCard(types.GameEldritch, "e-1", "BASE")
	require.NoError(t, err)
	assert.Equal(t, types.EncounteredNone, card.Encountered)

	card, err = s.GetCard(types.GameEldritch, "e-2", "BASE")
	require.NoError(t, err)
	assert.Equal(t, types.EncounteredDiscarded, card.Encountered, "other regions untouched")
}

func TestResetEncounteredForNeighborhood(t *testing.T) {
	s := openTestStore(t)
	seedCards(t, s,
		arkhamCard("a-1", 1, "BASE"),
		arkhamCard("a-2", 2, "BASE"),
	)
	require.NoError(t, s.UpdateEncountered(types.GameArkham, "a-1", "BASE", types.EncounteredDiscarded))
	require.NoError(t, s.UpdateEncountered(types.GameArkham, "a-2", "BASE", types.EncounteredDiscarded))

	affected, err := s.ResetEncounteredForNeighborhood(1)
	require.NoError(t, err)
	assert.Equal(t, int64(1), affected)

	card, err := s.GetCard(types.GameArkham, "a-2", "BASE")
	require.NoError(t, err)
	assert.Equal(t, types.EncounteredDiscarded, card.Encountered)
}

func TestClearGameLeavesOtherCatalogIntact(t *testing.T) {
	s := openTestStore(t)
	seedCards(t, s,
		arkhamCard("a-1", 1, "BASE"),
		eldritchCard("e-1", "AMERICAS", "BASE"),
	)

	require.NoError(t, s.ClearGame(types.GameArkham))

	arkham, err := s.CardCount(types.GameArkham)
	require.NoError(t, err)
	eldritch, err := s.CardCount(types.GameEldritch)
	require.NoError(t, err)
	assert.Equal(t, int64(0), arkham)
	assert.Equal(t, int64(1), eldritch)
}

func TestClearAll(t *testing.T) {
	s := openTestStore(t)
	seedCards(t, s, arkhamCard("a-1", 1, "BASE"), eldritchCard("e-1", "AMERICAS", "BASE"))

	require.NoError(t, s.ClearAll())

	total, err := s.CardCount("")
	require.NoError(t, err)
	assert.Equal(t, int64(0), total)
}
