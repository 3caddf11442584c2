package deck

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/eldermyth/cardvault/pkg/types"
)

// selectionFixture wires an other-world deck with two locations, two
// colors, and encounter links exercising every resolver outcome.
type selectionFixture struct {
	manager *Manager

	abyss, carcosa, hauntedLoc int64
	blue, red                  int64
}

// otherWorldDeck is the deck key for Arkham cards outside every
// neighborhood.
var otherWorldDeck = types.NeighborhoodDeckKey(0)

func buildSelectionFixture(t *testing.T) *selectionFixture {
	t.Helper()
	m, store := newTestManager(t, types.GameArkham,
		&types.Card{GameType: types.GameArkham, CardID: "ow-1", Expansion: "BASE"},
		&types.Card{GameType: types.GameArkham, CardID: "ow-2", Expansion: "BASE"},
	)
	f := &selectionFixture{manager: m}

	exp, err := store.GetOrCreateExpansion(types.GameArkham, "", "BASE", "")
	require.NoError(t, err)

	f.abyss, err = store.GetOrCreateLocation(0, exp, "Abyss", 0)
	require.NoError(t, err)
	f.carcosa, err = store.GetOrCreateLocation(0, exp, "Lost Carcosa", 1)
	require.NoError(t, err)
	f.hauntedLoc, err = store.GetOrCreateLocation(0, exp, "Yuggoth", 2)
	require.NoError(t, err)

	f.blue, err = store.GetOrCreateColor(exp, "Blue")
	require.NoError(t, err)
	f.red, err = store.GetOrCreateColor(exp, "Red")
	require.NoError(t, err)

	// ow-1: blue, encounter at the Abyss.
	abyssEnc, err := store.InsertEncounter(f.abyss, "You fall forever.")
	require.NoError(t, err)
	require.NoError(t, store.LinkCardEncounter("ow-1", abyssEnc, types.GameArkham))
	require.NoError(t, store.LinkCardColor("ow-1", types.GameArkham, f.blue))

	// A card that exists only in the store, never dealt into the deck:
	// red, with the only encounter at Yuggoth.
	ghostEnc, err := store.InsertEncounter(f.hauntedLoc, "Fungi whisper.")
	require.NoError(t, err)
	require.NoError(t, store.LinkCardEncounter("ghost", ghostEnc, types.GameArkham))
	require.NoError(t, store.LinkCardColor("ghost", types.GameArkham, f.red))

	require.NoError(t, m.InitializeDecks(nil))
	return f
}

func TestSelectMatchedCard(t *testing.T) {
	f := buildSelectionFixture(t)

	result, err := f.manager.SelectOtherWorldCard(otherWorldDeck, f.abyss, []int64{f.blue})
	require.NoError(t, err)
	assert.False(t, result.Fallback)
	require.Len(t, result.Cards, 1, "a match yields exactly one card")
	assert.Equal(t, "ow-1", result.Cards[0].CardID)
}

func TestSelectEmptySelectionFallsBack(t *testing.T) {
	f := buildSelectionFixture(t)

	result, err := f.manager.SelectOtherWorldCard(otherWorldDeck, 0, []int64{f.blue})
	require.NoError(t, err)
	assert.True(t, result.Fallback)
	assert.Equal(t, types.FallbackEmptySelection, result.Reason)
	assert.Len(t, result.Cards, 2, "fallback carries the full deck")

	result, err = f.manager.SelectOtherWorldCard(otherWorldDeck, f.abyss, nil)
	require.NoError(t, err)
	assert.True(t, result.Fallback)
	assert.Equal(t, types.FallbackEmptySelection, result.Reason)
}

func TestSelectNoMatchFallsBack(t *testing.T) {
	f := buildSelectionFixture(t)

	// Lost Carcosa has no encounters at all.
	result, err := f.manager.SelectOtherWorldCard(otherWorldDeck, f.carcosa, []int64{f.blue, f.red})
	require.NoError(t, err)
	assert.True(t, result.Fallback)
	assert.Equal(t, types.FallbackNoMatch, result.Reason)
	assert.Len(t, result.Cards, 2)

	// The Abyss matches only blue; red alone finds nothing.
	result, err = f.manager.SelectOtherWorldCard(otherWorldDeck, f.abyss, []int64{f.red})
	require.NoError(t, err)
	assert.True(t, result.Fallback)
	assert.Equal(t, types.FallbackNoMatch, result.Reason)
}

func TestSelectMatchedCardNotInDeckFallsBack(t *testing.T) {
	f := buildSelectionFixture(t)

	// Yuggoth's only encounter belongs to a card that was never dealt.
	result, err := f.manager.SelectOtherWorldCard(otherWorldDeck, f.hauntedLoc, []int64{f.red})
	require.NoError(t, err)
	assert.True(t, result.Fallback)
	assert.Equal(t, types.FallbackCardNotInDeck, result.Reason)
	assert.Len(t, result.Cards, 2)
}

func TestSelectUnknownDeck(t *testing.T) {
	f := buildSelectionFixture(t)

	_, err := f.manager.SelectOtherWorldCard("AMERICAS", f.abyss, []int64{f.blue})
	assert.ErrorIs(t, err, types.ErrUnknownDeck)
}
