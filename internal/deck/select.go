package deck

// This file implements the other-world selection resolver: joint
// location+color matching with explicit fallback to the full deck.
// "No match" is never an error; every failure mode degrades to the
// unfiltered deck so the caller always has a hand to draw from.

import (
	"fmt"
	"math/rand/v2"

	"github.com/eldermyth/cardvault/pkg/types"
)

// SelectOtherWorldCard picks one card from the named deck matching the
// currently selected location and colors. The result is tagged: a
// fallback result carries the deck's full, unfiltered contents, a
// matched result carries exactly one card.
func (m *Manager) SelectOtherWorldCard(deckName string, locationID int64, colorIDs []int64) (*types.SelectionResult, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	d, ok := m.decks[deckName]
	if !ok {
		return nil, types.ErrUnknownDeck
	}

	if locationID == 0 || len(colorIDs) == 0 {
		return &types.SelectionResult{
			Cards:    d.Cards(),
			Fallback: true,
			Reason:   types.FallbackEmptySelection,
		}, nil
	}

	encounters, err := m.store.FindEncountersByLocationAndColors(locationID, colorIDs, m.game)
	if err != nil {
		return nil, fmt.Errorf("matching encounters: %w", err)
	}
	if len(encounters) == 0 {
		return &types.SelectionResult{
			Cards:    d.Cards(),
			Fallback: true,
			Reason:   types.FallbackNoMatch,
		}, nil
	}

	chosen := encounters[rand.IntN(len(encounters))]
	cardIDs, err := m.store.CardIDsForEncounter(chosen.EncounterID, m.game)
	if err != nil {
		return nil, fmt.Errorf("resolving encounter owner: %w", err)
	}
	if len(cardIDs) == 0 {
		return &types.SelectionResult{
			Cards:    d.Cards(),
			Fallback: true,
			Reason:   types.FallbackEncounterOrphans,
		}, nil
	}

	// The owning card may belong to an expansion subset that is not
	// loaded; that is a fallback, not a failure.
	for _, id := range cardIDs {
		if card, ok := d.Find(id); ok {
			return &types.SelectionResult{Cards: []*types.Card{card}}, nil
		}
	}
	return &types.SelectionResult{
		Cards:    d.Cards(),
		Fallback: true,
		Reason:   types.FallbackCardNotInDeck,
	}, nil
}
