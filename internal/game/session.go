// Package game exposes the collaborator-facing facade: it owns the
// store handle, tracks selected expansions and the active game, and
// presents the migration pipeline and deck engine to presentation
// code. Reads at this boundary are best-effort: unexpected store
// errors are logged and converted into empty or zero results so the
// caller degrades instead of crashing.
package game

import (
	"fmt"
	"log"
	"path/filepath"
	"sync"

	"github.com/google/uuid"

	"github.com/eldermyth/cardvault/internal/deck"
	"github.com/eldermyth/cardvault/internal/migrate"
	"github.com/eldermyth/cardvault/internal/paths"
	"github.com/eldermyth/cardvault/internal/sqlite"
	"github.com/eldermyth/cardvault/pkg/types"
)

// Session is the explicit handle presentation code holds. It is
// constructed once at process start and passed by reference; opening
// is guarded by sync.Once so a shared Session initializes exactly
// once.
type Session struct {
	config types.Config
	logger *log.Logger

	openOnce sync.Once
	openErr  error
	store    *sqlite.Store

	mu       sync.Mutex
	gameID   string
	selected map[types.GameType][]string
	managers map[types.GameType]*deck.Manager
}

// NewSession builds an unopened Session. A nil logger falls back to
// the standard logger.
func NewSession(config types.Config, logger *log.Logger) (*Session, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Session{
		config:   config,
		logger:   logger,
		gameID:   uuid.NewString(),
		selected: make(map[types.GameType][]string),
		managers: make(map[types.GameType]*deck.Manager),
	}, nil
}

// open lazily opens the store, copying the bundled store image first
// when one is configured and no store exists yet.
func (s *Session) open() error {
	s.openOnce.Do(func() {
		storePath := filepath.Join(s.config.DataDir, paths.StoreFileName)
		copied, err := migrate.CopyStoreImage(s.config.StoreImagePath, storePath)
		if err != nil {
			s.openErr = fmt.Errorf("copying store image: %w", err)
			return
		}
		if copied {
			s.logger.Printf("game: store image copied to %s", storePath)
		}
		s.store, s.openErr = sqlite.Open(storePath)
	})
	return s.openErr
}

// Close releases the store handle. Idempotent.
func (s *Session) Close() error {
	if s.store == nil {
		return nil
	}
	return s.store.Close()
}

// GameID returns the active game identifier.
func (s *Session) GameID() string {
	return s.gameID
}

// NewGame rotates the active game identifier.
func (s *Session) NewGame() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.gameID = uuid.NewString()
	return s.gameID
}

// Store exposes the underlying store handle, opening it on first use.
func (s *Session) Store() (*sqlite.Store, error) {
	if err := s.open(); err != nil {
		return nil, err
	}
	return s.store, nil
}

// InitializeDatabase runs the migration pipeline for both games and
// returns the per-game card counts. With forceReinit set, each game's
// rows are cleared and re-migrated; the two games never touch each
// other's data.
func (s *Session) InitializeDatabase(forceReinit bool) (arkham, eldritch int64, err error) {
	if err := s.open(); err != nil {
		return 0, 0, err
	}

	runner := migrate.NewRunner(s.store, s.config, s.logger)
	for _, game := range types.GameTypes() {
		result, err := runner.Run(game, forceReinit)
		if err != nil {
			return 0, 0, fmt.Errorf("migrating %s: %w", game, err)
		}
		count, err := s.store.CardCount(game)
		if err != nil {
			return 0, 0, fmt.Errorf("counting %s cards: %w", game, err)
		}
		s.logger.Printf("game: %s migration source=%s cards=%d", game, result.Source, count)
		switch game {
		case types.GameArkham:
			arkham = count
		case types.GameEldritch:
			eldritch = count
		}
	}
	return arkham, eldritch, nil
}

// CardCount returns the card count for one game, or for the whole
// store when game is empty. Best-effort: errors yield zero.
func (s *Session) CardCount(game types.GameType) int64 {
	if err := s.open(); err != nil {
		s.logger.Printf("game: card count: %v", err)
		return 0
	}
	count, err := s.store.CardCount(game)
	if err != nil {
		s.logger.Printf("game: card count: %v", err)
		return 0
	}
	return count
}

// HasCards reports whether the game (or whole store) holds cards.
// Best-effort: errors yield false.
func (s *Session) HasCards(game types.GameType) bool {
	if err := s.open(); err != nil {
		s.logger.Printf("game: has cards: %v", err)
		return false
	}
	has, err := s.store.HasCards(game)
	if err != nil {
		s.logger.Printf("game: has cards: %v", err)
		return false
	}
	return has
}

// ExpansionNames returns the expansion names that hold cards for one
// game. Best-effort: errors yield an empty list.
func (s *Session) ExpansionNames(game types.GameType) []string {
	if err := s.open(); err != nil {
		s.logger.Printf("game: expansion names: %v", err)
		return nil
	}
	names, err := s.store.ExpansionNames(game)
	if err != nil {
		s.logger.Printf("game: expansion names: %v", err)
		return nil
	}
	return names
}

// SelectedExpansions returns the expansion scope currently selected
// for one game. Empty means all.
func (s *Session) SelectedExpansions(game types.GameType) []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]string, len(s.selected[game]))
	copy(out, s.selected[game])
	return out
}

// SetSelectedExpansions replaces the expansion scope for one game.
// The next InitializeDecks call uses the new scope.
func (s *Session) SetSelectedExpansions(game types.GameType, expansions []string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.selected[game] = append([]string(nil), expansions...)
}

// Decks returns the deck manager for one game, building and
// initializing it on first use with the selected expansion scope.
func (s *Session) Decks(game types.GameType) (*deck.Manager, error) {
	if !game.Valid() {
		return nil, types.ErrInvalidGameType
	}
	if err := s.open(); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if m, ok := s.managers[game]; ok {
		return m, nil
	}
	m := deck.NewManager(s.store, game, s.logger)
	if err := m.InitializeDecks(s.selected[game]); err != nil {
		return nil, fmt.Errorf("initializing decks: %w", err)
	}
	s.managers[game] = m
	return m, nil
}

// ReinitializeDecks rebuilds one game's decks with the currently
// selected expansion scope.
func (s *Session) ReinitializeDecks(game types.GameType) error {
	m, err := s.Decks(game)
	if err != nil {
		return err
	}
	s.mu.Lock()
	scope := append([]string(nil), s.selected[game]...)
	s.mu.Unlock()
	return m.InitializeDecks(scope)
}

// ExportStoreTo copies the store file to path.
func (s *Session) ExportStoreTo(path string) error {
	if err := s.open(); err != nil {
		return err
	}
	return s.store.ExportTo(path)
}

// HealthCheck builds the structured store health report.
func (s *Session) HealthCheck() *types.HealthReport {
	if err := s.open(); err != nil {
		report := &types.HealthReport{
			Path:        filepath.Join(s.config.DataDir, paths.StoreFileName),
			CardsByGame: make(map[types.GameType]int64),
		}
		report.AddIssue(fmt.Sprintf("opening store: %v", err))
		return report
	}
	return s.store.HealthCheck()
}
