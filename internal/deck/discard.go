package deck

import "github.com/eldermyth/cardvault/pkg/types"

// DiscardPile holds the encountered cards, ordered most-recent-first
// for display.
type DiscardPile struct {
	cards []*types.Card
}

// NewDiscardPile creates an empty pile.
func NewDiscardPile() *DiscardPile {
	return &DiscardPile{}
}

// Add prepends a card so the newest discard displays first.
func (p *DiscardPile) Add(card *types.Card) {
	p.cards = append([]*types.Card{card}, p.cards...)
}

// TakeMatching removes and returns every card whose deck key matches,
// leaving other decks' discards untouched.
func (p *DiscardPile) TakeMatching(deckKey string) []*types.Card {
	var taken, kept []*types.Card
	for _, c := range p.cards {
		if c.DeckKey() == deckKey {
			taken = append(taken, c)
		} else {
			kept = append(kept, c)
		}
	}
	p.cards = kept
	return taken
}

// Cards returns a copy of the pile, most recent first.
func (p *DiscardPile) Cards() []*types.Card {
	out := make([]*types.Card, len(p.cards))
	copy(out, p.cards)
	return out
}

// Len returns the number of discarded cards.
func (p *DiscardPile) Len() int {
	return len(p.cards)
}
