package types

import "errors"

// Store operation errors.
var (
	ErrNotFound    = errors.New("entity not found")
	ErrInvalidData = errors.New("invalid entity data")
	ErrStoreClosed = errors.New("store is closed")
	ErrEmptyDeck   = errors.New("deck is empty")
	ErrUnknownDeck = errors.New("unknown deck name")
)

// ErrNoLegacySource marks a missing or unreadable migration source. It
// is expected and triggers the next fallback tier; it never aborts the
// pipeline by itself.
var ErrNoLegacySource = errors.New("no usable legacy source found")
