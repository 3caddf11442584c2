package types

import "fmt"

// Encountered status markers. Any other non-empty value is a free-form
// marker recording which section of the card was resolved (for example
// "TOP"). Encountered acts as a soft-delete flag: only cards at
// EncounteredNone are eligible for deck membership.
const (
	EncounteredNone      = "NONE"
	EncounteredDiscarded = "DISCARDED"
)

// Card is the unified card row shared by both catalogs. A card is
// identified by (GameType, CardID, Expansion); CardID is numeric for
// the Arkham catalog and alphanumeric for the Eldritch catalog.
//
// The Arkham attribute group (NeighborhoodID) and the Eldritch
// attribute group (Region and the three section pairs) are disjoint:
// only the group matching GameType is ever populated.
type Card struct {
	GameType    GameType
	CardID      string
	Expansion   string
	CardName    string
	Encountered string

	// Arkham group. NeighborhoodID is zero for other-world cards.
	NeighborhoodID int64

	// Eldritch group. Section headers may be empty; some legacy
	// categories carry body text only.
	Region       string
	TopHeader    string
	TopText      string
	MiddleHeader string
	MiddleText   string
	BottomHeader string
	BottomText   string
}

// Key returns the card's unique identity tuple.
func (c *Card) Key() CardKey {
	return CardKey{GameType: c.GameType, CardID: c.CardID, Expansion: c.Expansion}
}

// DeckKey returns the deck-grouping key for this card: the region for
// Eldritch cards, "neighborhood_<id>" for Arkham cards.
func (c *Card) DeckKey() string {
	if c.GameType == GameArkham {
		return NeighborhoodDeckKey(c.NeighborhoodID)
	}
	return c.Region
}

// Available reports whether the card is eligible to be dealt into a
// deck, i.e. it has not been encountered.
func (c *Card) Available() bool {
	return c.Encountered == "" || c.Encountered == EncounteredNone
}

// CardKey is the uniqueness tuple for a card row.
type CardKey struct {
	GameType  GameType
	CardID    string
	Expansion string
}

// String formats the key for log and error messages.
func (k CardKey) String() string {
	return fmt.Sprintf("%s/%s/%s", k.GameType, k.CardID, k.Expansion)
}

// NeighborhoodDeckKey builds the deck key used for Arkham cards
// grouped under the given neighborhood row ID.
func NeighborhoodDeckKey(neighborhoodID int64) string {
	return fmt.Sprintf("neighborhood_%d", neighborhoodID)
}
