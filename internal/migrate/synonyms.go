package migrate

// This file holds the expansion-name reconciliation fixture. Legacy
// sources disagree on spelling ("Base" vs "BASE", "Pharoah" vs
// "Pharaoh") and on identifier spaces (numeric IDs in the oldest
// databases). The table is versioned compatibility data, not logic:
// extend it when a new legacy spelling shows up.

import "strings"

// Canonical expansion names.
const (
	ExpansionBase        = "BASE"
	ExpansionDarkPharaoh = "CURSE OF THE DARK PHARAOH"
	ExpansionDunwich     = "DUNWICH HORROR"
	ExpansionKingsport   = "KINGSPORT HORROR"
	ExpansionInnsmouth   = "INNSMOUTH HORROR"
)

// expansionSynonyms maps every known legacy spelling or legacy numeric
// identifier to its canonical name. Keys are matched case-insensitively.
var expansionSynonyms = map[string]string{
	// Spelling drift.
	"base":                      ExpansionBase,
	"base set":                  ExpansionBase,
	"core":                      ExpansionBase,
	"curse of the dark pharoah": ExpansionDarkPharaoh,
	"dark pharoah":              ExpansionDarkPharaoh,
	"curse of the dark pharaoh": ExpansionDarkPharaoh,
	"dunwich":                   ExpansionDunwich,
	"the dunwich horror":        ExpansionDunwich,
	"kingsport":                 ExpansionKingsport,
	"innsmouth":                 ExpansionInnsmouth,

	// Numeric identifiers from the oldest legacy ID space.
	"1": ExpansionBase,
	"2": ExpansionDarkPharaoh,
	"3": ExpansionDunwich,
	"4": ExpansionKingsport,
	"5": ExpansionInnsmouth,
}

// canonicalNames lists the canonical spellings used by the substring
// fallback.
var canonicalNames = []string{
	ExpansionBase,
	ExpansionDarkPharaoh,
	ExpansionDunwich,
	ExpansionKingsport,
	ExpansionInnsmouth,
}

// CanonicalExpansionName canonicalizes a legacy expansion name or
// identifier. Resolution order: exact synonym-table hit, then a
// partial case-insensitive substring match against the canonical set,
// then the trimmed upper-cased input as a brand-new expansion name.
func CanonicalExpansionName(raw string) string {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return ""
	}

	if canonical, ok := expansionSynonyms[strings.ToLower(trimmed)]; ok {
		return canonical
	}

	upper := strings.ToUpper(trimmed)
	for _, name := range canonicalNames {
		if strings.Contains(name, upper) || strings.Contains(upper, name) {
			return name
		}
	}

	return upper
}
