package types

// Expansion is a (game type, name) unique pair. LegacyID preserves the
// identifier the expansion carried in whichever legacy source declared
// it, so later references from the same source can be reconciled.
type Expansion struct {
	ExpansionID int64
	GameType    GameType
	Name        string
	IconPath    string
	LegacyID    string
}

// Neighborhood belongs to exactly one expansion and names an Arkham
// deck grouping, with the two asset paths the presentation layer needs.
type Neighborhood struct {
	NeighborhoodID int64
	ExpansionID    int64
	Name           string
	CardBackPath   string
	ButtonPath     string
}

// Location optionally belongs to a neighborhood; a NULL neighborhood
// marks an other-world location. SortOrder gives stable display order.
type Location struct {
	LocationID     int64
	NeighborhoodID int64 // zero = other world
	ExpansionID    int64 // zero = no expansion affinity
	Name           string
	SortOrder      int
}

// OtherWorld reports whether the location has no owning neighborhood.
func (l *Location) OtherWorld() bool {
	return l.NeighborhoodID == 0
}

// Encounter is a free-text body owned by one location. Cards link to
// encounters through a many-to-many junction: one card may expose an
// encounter per location it can appear at, and one encounter may be
// reachable from several cards.
type Encounter struct {
	EncounterID int64
	LocationID  int64
	Body        string
}

// Color belongs to an expansion and drives the other-world selection
// mechanic. Colors link many-to-many to locations and to cards.
type Color struct {
	ColorID     int64
	ExpansionID int64
	Name        string
}

// CardEncounter is the junction row linking a card to an encounter.
type CardEncounter struct {
	CardID      string
	EncounterID int64
	GameType    GameType
}

// CardColor is the junction row linking a card to a color.
type CardColor struct {
	CardID   string
	GameType GameType
	ColorID  int64
}
