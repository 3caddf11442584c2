package deck

// This file implements the deck manager: it materializes per-key
// decks from the store's unencountered cards and manages their
// lifecycle in memory, persisting only encountered-status transitions
// back to the store.

import (
	"fmt"
	"log"
	"strconv"
	"strings"
	"sync"

	"github.com/eldermyth/cardvault/internal/sqlite"
	"github.com/eldermyth/cardvault/pkg/types"
)

// Manager owns the decks and discard pile for one game. A single
// mutex serializes all deck mutations; independent callers may
// therefore interleave discard and draw on the same deck safely.
type Manager struct {
	mu     sync.Mutex
	store  *sqlite.Store
	game   types.GameType
	logger *log.Logger

	decks      map[string]*Deck
	discard    *DiscardPile
	expansions []string // scope passed to InitializeDecks
}

// NewManager builds a Manager over one game's cards. A nil logger
// falls back to the standard logger.
func NewManager(store *sqlite.Store, game types.GameType, logger *log.Logger) *Manager {
	if logger == nil {
		logger = log.Default()
	}
	return &Manager{
		store:   store,
		game:    game,
		logger:  logger,
		decks:   make(map[string]*Deck),
		discard: NewDiscardPile(),
	}
}

// InitializeDecks loads all cards for the game, optionally filtered to
// the given expansions, partitions them into per-key decks
// (unencountered) and the discard pile (everything else), and shuffles
// each deck. Every loaded card lands in exactly one of the two.
func (m *Manager) InitializeDecks(expansions []string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.expansions = expansions
	return m.initializeLocked()
}

// initializeLocked rebuilds decks and discard pile from the store.
// The caller must hold m.mu.
func (m *Manager) initializeLocked() error {
	cards, err := m.store.Cards(sqlite.CardFilter{
		GameType:   m.game,
		Expansions: m.expansions,
	})
	if err != nil {
		return fmt.Errorf("loading cards for decks: %w", err)
	}

	m.decks = make(map[string]*Deck)
	m.discard = NewDiscardPile()

	grouped := make(map[string][]*types.Card)
	for _, c := range cards {
		if c.Available() {
			key := c.DeckKey()
			grouped[key] = append(grouped[key], c)
			continue
		}
		m.discard.Add(c)
	}
	for key, group := range grouped {
		d := NewDeck(key, group)
		d.Shuffle()
		m.decks[key] = d
	}
	return nil
}

// Draw pops the head of the named deck. An empty deck triggers a
// refill from the matching discards first; only when both are empty
// does Draw return ErrEmptyDeck.
func (m *Manager) Draw(deckName string) (*types.Card, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	d, ok := m.decks[deckName]
	if !ok {
		return nil, types.ErrUnknownDeck
	}
	if d.Len() == 0 {
		if err := m.refillLocked(deckName); err != nil {
			return nil, err
		}
	}
	card, ok := d.Draw()
	if !ok {
		return nil, types.ErrEmptyDeck
	}
	return card, nil
}

// Refill moves every discard whose key matches the deck back into it,
// resetting encountered status in memory and in the store, then
// shuffles. Other decks' discards are untouched.
func (m *Manager) Refill(deckName string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.refillLocked(deckName)
}

// refillLocked is Refill without locking. The caller must hold m.mu.
func (m *Manager) refillLocked(deckName string) error {
	d, ok := m.decks[deckName]
	if !ok {
		return types.ErrUnknownDeck
	}

	returned := m.discard.TakeMatching(deckName)
	for _, c := range returned {
		c.Encountered = types.EncounteredNone
		if err := m.store.UpdateEncountered(c.GameType, c.CardID, c.Expansion, types.EncounteredNone); err != nil {
			// The in-memory state is already reset; a persistence miss
			// self-heals on the next full initialize.
			m.logger.Printf("deck: persisting refill for %s: %v", c.Key(), err)
		}
	}
	d.Push(returned...)
	d.Shuffle()
	return nil
}

// Discard persists the card's new encountered status, then prepends
// it to the discard pile.
func (m *Manager) Discard(card *types.Card, status string) error {
	if card == nil {
		return types.ErrInvalidData
	}
	if status == "" || status == types.EncounteredNone {
		status = types.EncounteredDiscarded
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if err := m.store.UpdateEncountered(card.GameType, card.CardID, card.Expansion, status); err != nil {
		return fmt.Errorf("persisting discard: %w", err)
	}
	card.Encountered = status
	m.discard.Add(card)
	return nil
}

// Shuffle randomizes one deck in place.
func (m *Manager) Shuffle(deckName string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	d, ok := m.decks[deckName]
	if !ok {
		return types.ErrUnknownDeck
	}
	d.Shuffle()
	return nil
}

// ShuffleAll randomizes every deck in place.
func (m *Manager) ShuffleAll() {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, d := range m.decks {
		d.Shuffle()
	}
}

// ShuffleFull resets encountered status for the deck's whole scope in
// the store and reinitializes from scratch. Stronger than Shuffle:
// discarded cards of the scope come back.
func (m *Manager) ShuffleFull(deckName string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.decks[deckName]; !ok {
		return types.ErrUnknownDeck
	}

	var err error
	if hoodID, ok := parseNeighborhoodKey(deckName); ok {
		_, err = m.store.ResetEncounteredForNeighborhood(hoodID)
	} else {
		_, err = m.store.ResetEncounteredStatus(m.game, "", deckName)
	}
	if err != nil {
		return fmt.Errorf("resetting scope for full shuffle: %w", err)
	}
	return m.initializeLocked()
}

// Deck returns a copy of the named deck's contents.
func (m *Manager) Deck(deckName string) ([]*types.Card, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	d, ok := m.decks[deckName]
	if !ok {
		return nil, types.ErrUnknownDeck
	}
	return d.Cards(), nil
}

// DeckNames returns the names of all materialized decks.
func (m *Manager) DeckNames() []string {
	m.mu.Lock()
	defer m.mu.Unlock()

	names := make([]string, 0, len(m.decks))
	for name := range m.decks {
		names = append(names, name)
	}
	return names
}

// DeckSize returns the number of cards left in one deck.
func (m *Manager) DeckSize(deckName string) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	d, ok := m.decks[deckName]
	if !ok {
		return 0, types.ErrUnknownDeck
	}
	return d.Len(), nil
}

// DiscardPile returns a copy of the discard pile, most recent first.
func (m *Manager) DiscardPile() []*types.Card {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.discard.Cards()
}

// parseNeighborhoodKey extracts the neighborhood ID from a
// "neighborhood_<id>" deck key.
func parseNeighborhoodKey(deckName string) (int64, bool) {
	const prefix = "neighborhood_"
	if !strings.HasPrefix(deckName, prefix) {
		return 0, false
	}
	id, err := strconv.ParseInt(deckName[len(prefix):], 10, 64)
	if err != nil {
		return 0, false
	}
	return id, true
}
