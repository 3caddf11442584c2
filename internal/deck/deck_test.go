package deck

import (
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/eldermyth/cardvault/pkg/types"
)

func testCards(ids ...string) []*types.Card {
	out := make([]*types.Card, len(ids))
	for i, id := range ids {
		out[i] = &types.Card{
			GameType:  types.GameEldritch,
			CardID:    id,
			Expansion: "BASE",
			Region:    "AMERICAS",
		}
	}
	return out
}

func cardIDs(cards []*types.Card) []string {
	out := make([]string, len(cards))
	for i, c := range cards {
		out[i] = c.CardID
	}
	return out
}

func TestShufflePreservesContents(t *testing.T) {
	ids := []string{"a", "b", "c", "d", "e", "f", "g", "h"}
	d := NewDeck("AMERICAS", testCards(ids...))

	d.Shuffle()

	require.Equal(t, len(ids), d.Len())
	got := cardIDs(d.Cards())
	sort.Strings(got)
	assert.Equal(t, ids, got, "shuffling never adds or drops cards")
}

func TestShuffleTinyDecks(t *testing.T) {
	empty := NewDeck("AMERICAS", nil)
	empty.Shuffle()
	assert.Zero(t, empty.Len())

	single := NewDeck("AMERICAS", testCards("a"))
	single.Shuffle()
	assert.Equal(t, []string{"a"}, cardIDs(single.Cards()))
}

func TestDrawPopsFromTheTop(t *testing.T) {
	d := NewDeck("AMERICAS", testCards("a", "b"))

	card, ok := d.Draw()
	require.True(t, ok)
	assert.Equal(t, "a", card.CardID)
	assert.Equal(t, 1, d.Len())

	card, ok = d.Draw()
	require.True(t, ok)
	assert.Equal(t, "b", card.CardID)

	_, ok = d.Draw()
	assert.False(t, ok)
}

func TestPushAppendsToTheBottom(t *testing.T) {
	d := NewDeck("AMERICAS", testCards("a"))
	d.Push(testCards("b", "c")...)

	assert.Equal(t, []string{"a", "b", "c"}, cardIDs(d.Cards()))
}

func TestContainsAndFind(t *testing.T) {
	cards := testCards("a", "b")
	d := NewDeck("AMERICAS", cards)

	assert.True(t, d.Contains(cards[0].Key()))
	assert.False(t, d.Contains(types.CardKey{
		GameType: types.GameEldritch, CardID: "z", Expansion: "BASE",
	}))

	card, ok := d.Find("b")
	require.True(t, ok)
	assert.Equal(t, "b", card.CardID)
	_, ok = d.Find("z")
	assert.False(t, ok)
}

func TestCardsReturnsACopy(t *testing.T) {
	d := NewDeck("AMERICAS", testCards("a", "b"))
	snapshot := d.Cards()
	d.Draw()

	assert.Len(t, snapshot, 2, "snapshot unaffected by later draws")
}

func TestDiscardPileMostRecentFirst(t *testing.T) {
	p := NewDiscardPile()
	cards := testCards("a", "b", "c")
	for _, c := range cards {
		p.Add(c)
	}

	assert.Equal(t, []string{"c", "b", "a"}, cardIDs(p.Cards()))
	assert.Equal(t, 3, p.Len())
}

func TestTakeMatchingLeavesOtherDecksAlone(t *testing.T) {
	p := NewDiscardPile()
	americas := testCards("a-1", "a-2")
	europe := &types.Card{
		GameType: types.GameEldritch, CardID: "e-1", Expansion: "BASE", Region: "EUROPE",
	}
	p.Add(americas[0])
	p.Add(europe)
	p.Add(americas[1])

	taken := p.TakeMatching("AMERICAS")
	assert.ElementsMatch(t, []string{"a-1", "a-2"}, cardIDs(taken))
	assert.Equal(t, []string{"e-1"}, cardIDs(p.Cards()))

	assert.Empty(t, p.TakeMatching("AMERICAS"), "second take finds nothing")
}
