package types

import "errors"

// GameType identifies which of the two supported card catalogs a row
// belongs to. The two games carry disjoint attribute groups on Card.
type GameType string

// Supported game types.
const (
	// GameArkham is the neighborhood/location/encounter-linked game.
	GameArkham GameType = "ARKHAM"
	// GameEldritch is the region/header/body-text game.
	GameEldritch GameType = "ELDRITCH"
)

// validGameTypes is the set of recognized game type values.
var validGameTypes = map[GameType]bool{
	GameArkham:   true,
	GameEldritch: true,
}

// GameTypes lists all supported game types in a stable order.
func GameTypes() []GameType {
	return []GameType{GameArkham, GameEldritch}
}

// Valid reports whether g is a recognized game type.
func (g GameType) Valid() bool {
	return validGameTypes[g]
}

// ErrInvalidGameType is returned when an operation receives a game
// type outside the two supported catalogs.
var ErrInvalidGameType = errors.New("invalid game type")
