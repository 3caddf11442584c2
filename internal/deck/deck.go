// Package deck implements the in-memory deck and discard-pile engine
// layered over the card store, plus the other-world selection
// resolver. Decks are keyed by region for the Eldritch catalog and by
// "neighborhood_<id>" for the Arkham catalog.
package deck

import (
	"math/rand/v2"

	"github.com/eldermyth/cardvault/pkg/types"
)

// Deck is a named, ordered, mutable sequence of unencountered cards.
type Deck struct {
	Name  string
	cards []*types.Card
}

// NewDeck creates a deck over the given cards without shuffling.
func NewDeck(name string, cards []*types.Card) *Deck {
	d := &Deck{Name: name, cards: make([]*types.Card, len(cards))}
	copy(d.cards, cards)
	return d
}

// Shuffle randomizes the deck in place: a uniform shuffle followed by
// the legacy restack pass. The second pass is statistically redundant
// but reproduces the behavior of the system this engine replaces.
func (d *Deck) Shuffle() {
	rand.Shuffle(len(d.cards), func(i, j int) {
		d.cards[i], d.cards[j] = d.cards[j], d.cards[i]
	})
	d.legacyRestack()
}

// legacyRestack walks the deck start to end and, for each position,
// moves a uniformly random later-or-same card to it by removal and
// insertion. It does not bias the distribution.
func (d *Deck) legacyRestack() {
	n := len(d.cards)
	for i := 0; i < n-1; i++ {
		j := i + rand.IntN(n-i)
		card := d.cards[j]
		d.cards = append(d.cards[:j], d.cards[j+1:]...)
		d.cards = append(d.cards[:i], append([]*types.Card{card}, d.cards[i:]...)...)
	}
}

// Draw pops the head of the deck. Returns false when the deck is
// empty.
func (d *Deck) Draw() (*types.Card, bool) {
	if len(d.cards) == 0 {
		return nil, false
	}
	card := d.cards[0]
	d.cards = d.cards[1:]
	return card, true
}

// Push appends cards to the bottom of the deck.
func (d *Deck) Push(cards ...*types.Card) {
	d.cards = append(d.cards, cards...)
}

// Len returns the number of cards remaining.
func (d *Deck) Len() int {
	return len(d.cards)
}

// Cards returns a copy of the deck contents in order.
func (d *Deck) Cards() []*types.Card {
	out := make([]*types.Card, len(d.cards))
	copy(out, d.cards)
	return out
}

// Contains reports whether a card with the given identity is in the
// deck.
func (d *Deck) Contains(key types.CardKey) bool {
	for _, c := range d.cards {
		if c.Key() == key {
			return true
		}
	}
	return false
}

// Find returns the first card in the deck with the given card ID.
func (d *Deck) Find(cardID string) (*types.Card, bool) {
	for _, c := range d.cards {
		if c.CardID == cardID {
			return c, true
		}
	}
	return nil, false
}
