package types

// InsertStatus tags the per-row outcome of a bulk card insert.
type InsertStatus string

// Per-row insert outcomes. Duplicate rows are Ignored, not Failed;
// only unexpected execution errors produce Failed.
const (
	InsertInserted InsertStatus = "inserted"
	InsertIgnored  InsertStatus = "ignored"
	InsertFailed   InsertStatus = "failed"
)

// InsertOutcome records what happened to a single card during a bulk
// insert. Reason is set for Ignored rows, Err for Failed rows.
type InsertOutcome struct {
	Key    CardKey
	Status InsertStatus
	Reason string
	Err    error
}

// BulkInsertReport summarizes a bulk card insert. The operation never
// fails part-way: every row is accounted for in exactly one bucket.
type BulkInsertReport struct {
	Outcomes []InsertOutcome
	Inserted int
	Ignored  int
	Failed   int
}

// Add appends an outcome and bumps the matching counter.
func (r *BulkInsertReport) Add(o InsertOutcome) {
	r.Outcomes = append(r.Outcomes, o)
	switch o.Status {
	case InsertInserted:
		r.Inserted++
	case InsertIgnored:
		r.Ignored++
	case InsertFailed:
		r.Failed++
	}
}

// SelectionResult is the outcome of an other-world card selection.
// When Fallback is true no constrained match was usable and Cards
// holds the full, unfiltered deck; otherwise Cards holds exactly the
// single matched card. Cards is never empty unless the deck itself
// is empty.
type SelectionResult struct {
	Cards    []*Card
	Fallback bool
	Reason   string
}

// Fallback reasons reported on SelectionResult.
const (
	FallbackEmptySelection   = "no location or colors selected"
	FallbackNoMatch          = "no encounter matches location and colors"
	FallbackCardNotInDeck    = "matched card not present in loaded deck"
	FallbackEncounterOrphans = "matched encounter has no owning card"
)
