package types

// HealthReport is the structured result of a store health check. The
// store is never proactively validated; corruption is detected here
// via the count-consistency invariant.
type HealthReport struct {
	Path      string
	Exists    bool
	Readable  bool
	SizeBytes int64

	TotalCards      int64
	CardsByGame     map[GameType]int64
	CountConsistent bool

	Issues   []string
	Warnings []string
}

// Healthy reports whether the store passed every check and has no
// recorded issues. Warnings do not affect health.
func (r *HealthReport) Healthy() bool {
	return r.Exists && r.Readable && r.CountConsistent && len(r.Issues) == 0
}

// AddIssue records a health-check failure.
func (r *HealthReport) AddIssue(msg string) {
	r.Issues = append(r.Issues, msg)
}

// AddWarning records a non-fatal observation.
func (r *HealthReport) AddWarning(msg string) {
	r.Warnings = append(r.Warnings, msg)
}
