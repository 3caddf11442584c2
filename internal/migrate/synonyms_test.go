package migrate

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCanonicalExpansionName(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want string
	}{
		{"exact canonical", "BASE", ExpansionBase},
		{"lowercase synonym", "base set", ExpansionBase},
		{"core synonym", "Core", ExpansionBase},
		{"legacy misspelling", "Curse of the Dark Pharoah", ExpansionDarkPharaoh},
		{"short misspelling", "dark pharoah", ExpansionDarkPharaoh},
		{"short form", "Dunwich", ExpansionDunwich},
		{"article form", "The Dunwich Horror", ExpansionDunwich},
		{"numeric identifier", "4", ExpansionKingsport},
		{"substring of canonical", "INNSMOUTH HOR", ExpansionInnsmouth},
		{"whitespace trimmed", "  kingsport  ", ExpansionKingsport},
		{"unknown name passes through upper-cased", "Mountains of Madness", "MOUNTAINS OF MADNESS"},
		{"empty", "", ""},
		{"blank", "   ", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CanonicalExpansionName(tt.raw))
		})
	}
}

func TestSplitMemberships(t *testing.T) {
	assert.Equal(t, []string{"BASE", "DUNWICH"}, splitMemberships("BASE, DUNWICH"))
	assert.Equal(t, []string{"BASE"}, splitMemberships("BASE,,  ,"))
	assert.Nil(t, splitMemberships(""))
}
