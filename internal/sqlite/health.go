package sqlite

// This file implements the store health check and the export
// operation. Corruption is detected only here, via the
// count-consistency invariant; the store never validates proactively.

import (
	"fmt"
	"io"
	"os"

	"github.com/eldermyth/cardvault/pkg/types"
)

// HealthCheck builds a structured report on the store file and its
// contents. The check itself never fails: problems land in the
// report's issue and warning lists.
func (s *Store) HealthCheck() *types.HealthReport {
	s.mu.RLock()
	defer s.mu.RUnlock()

	report := &types.HealthReport{
		Path:        s.path,
		CardsByGame: make(map[types.GameType]int64),
	}

	info, err := os.Stat(s.path)
	if err != nil {
		report.AddIssue(fmt.Sprintf("store file not accessible: %v", err))
		return report
	}
	report.Exists = true
	report.SizeBytes = info.Size()

	if s.db == nil {
		report.AddIssue("store handle is closed")
		return report
	}

	var total int64
	if err := s.db.QueryRow("SELECT COUNT(*) FROM cards").Scan(&total); err != nil {
		report.AddIssue(fmt.Sprintf("counting cards: %v", err))
		return report
	}
	report.Readable = true
	report.TotalCards = total

	var sum int64
	for _, game := range types.GameTypes() {
		var n int64
		if err := s.db.QueryRow(
			"SELECT COUNT(*) FROM cards WHERE game_type = ?", string(game),
		).Scan(&n); err != nil {
			report.AddIssue(fmt.Sprintf("counting %s cards: %v", game, err))
			return report
		}
		report.CardsByGame[game] = n
		sum += n
	}

	report.CountConsistent = total == sum
	if !report.CountConsistent {
		report.AddIssue(fmt.Sprintf(
			"card count mismatch: total %d != per-game sum %d (corrupted store)", total, sum))
	}
	if total == 0 {
		report.AddWarning("store holds no cards; migration may not have run")
	}
	for game, n := range report.CardsByGame {
		if n == 0 {
			report.AddWarning(fmt.Sprintf("no cards for %s", game))
		}
	}
	return report
}

// ExportTo copies the store file to the given path. The shared lock
// is held for the duration to keep writers out of the copy.
func (s *Store) ExportTo(path string) error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if err := s.checkOpen(); err != nil {
		return err
	}

	// Flush WAL pages into the main file before copying it.
	if _, err := s.db.Exec("PRAGMA wal_checkpoint(TRUNCATE)"); err != nil {
		return fmt.Errorf("checkpointing store: %w", err)
	}

	src, err := os.Open(s.path)
	if err != nil {
		return fmt.Errorf("opening store for export: %w", err)
	}
	defer src.Close()

	dst, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating export file: %w", err)
	}
	defer dst.Close()

	if _, err := io.Copy(dst, src); err != nil {
		return fmt.Errorf("copying store: %w", err)
	}
	return nil
}
