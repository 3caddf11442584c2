// Package types defines the entity types, tagged result types, and
// standard errors shared by the CardVault store, migration pipeline,
// and deck engine.
package types
