package migrate

import (
	"io"
	"log"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/eldermyth/cardvault/internal/paths"
	"github.com/eldermyth/cardvault/internal/sqlite"
	"github.com/eldermyth/cardvault/pkg/types"
)

func newTestRunner(t *testing.T, config types.Config) (*Runner, *sqlite.Store) {
	t.Helper()
	if config.DataDir == "" {
		config.DataDir = t.TempDir()
	}
	store, err := sqlite.Open(filepath.Join(config.DataDir, paths.StoreFileName))
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return NewRunner(store, config, log.New(io.Discard, "", 0)), store
}

func TestRunRejectsInvalidGame(t *testing.T) {
	r, _ := newTestRunner(t, types.Config{})
	_, err := r.Run("CHESS", false)
	assert.ErrorIs(t, err, types.ErrInvalidGameType)
}

func TestRunSkipsPopulatedGame(t *testing.T) {
	r, store := newTestRunner(t, types.Config{})
	_, err := store.InsertCards([]*types.Card{{
		GameType: types.GameArkham, CardID: "a-1", Expansion: ExpansionBase, NeighborhoodID: 1,
	}})
	require.NoError(t, err)

	result, err := r.Run(types.GameArkham, false)
	require.NoError(t, err)
	assert.Equal(t, SourceExisting, result.Source)
	assert.Equal(t, int64(1), result.Inserted)
}

func TestRunArkhamFallsBackToProcedural(t *testing.T) {
	r, store := newTestRunner(t, types.Config{})

	result, err := r.Run(types.GameArkham, false)
	require.NoError(t, err)
	assert.Equal(t, SourceProcedural, result.Source)
	assert.Positive(t, result.Inserted)

	count, err := store.CardCount(types.GameArkham)
	require.NoError(t, err)
	assert.Equal(t, result.Inserted, count)
}

func TestRunForceClearsOnlyThatGame(t *testing.T) {
	r, store := newTestRunner(t, types.Config{})
	_, err := store.InsertCards([]*types.Card{
		{GameType: types.GameArkham, CardID: "stale", Expansion: ExpansionBase, NeighborhoodID: 1},
		{GameType: types.GameEldritch, CardID: "e-1", Expansion: ExpansionBase, Region: "AMERICAS"},
	})
	require.NoError(t, err)

	result, err := r.Run(types.GameArkham, true)
	require.NoError(t, err)
	assert.Equal(t, SourceProcedural, result.Source)

	// The stale Arkham card is gone, replaced by generated data.
	_, err = store.GetCard(types.GameArkham, "stale", ExpansionBase)
	assert.ErrorIs(t, err, types.ErrNotFound)

	eldritch, err := store.CardCount(types.GameEldritch)
	require.NoError(t, err)
	assert.Equal(t, int64(1), eldritch, "the other catalog is untouched")
}

func TestRunEldritchLegacyDBTier(t *testing.T) {
	dataDir := t.TempDir()
	createLegacyDB(t, filepath.Join(dataDir, paths.LegacyEldritchDBName),
		[]string{legacyCreateEldritchCards},
		[]string{
			`INSERT INTO cards (card_id, expansions, region, top_header, top, middle_header, middle, bottom_header, bottom)
			 VALUES ('e-1', 'Base', 'AMERICAS', '', 'Text.', '', '', '', '')`,
		})
	r, store := newTestRunner(t, types.Config{DataDir: dataDir})

	result, err := r.Run(types.GameEldritch, false)
	require.NoError(t, err)
	assert.Equal(t, SourceLegacyDB, result.Source)
	assert.Equal(t, int64(1), result.Inserted)

	count, err := store.CardCount(types.GameEldritch)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)
}

func TestRunEldritchXMLTier(t *testing.T) {
	r, _ := newTestRunner(t, types.Config{EldritchXMLPath: writeTestCorpus(t)})

	result, err := r.Run(types.GameEldritch, false)
	require.NoError(t, err)
	assert.Equal(t, SourceXML, result.Source)
	assert.Equal(t, int64(4), result.Inserted)
}

func TestRunEldritchWithoutSources(t *testing.T) {
	r, _ := newTestRunner(t, types.Config{})

	result, err := r.Run(types.GameEldritch, false)
	require.NoError(t, err)
	assert.Equal(t, SourceNone, result.Source)
	assert.Zero(t, result.Inserted)
}

func TestCopyStoreImage(t *testing.T) {
	dir := t.TempDir()
	image := filepath.Join(dir, "bundled.db")
	require.NoError(t, os.WriteFile(image, []byte("image-bytes"), 0o644))
	dest := filepath.Join(dir, "data", "cardvault.db")

	copied, err := CopyStoreImage(image, dest)
	require.NoError(t, err)
	assert.True(t, copied)

	data, err := os.ReadFile(dest)
	require.NoError(t, err)
	assert.Equal(t, "image-bytes", string(data))

	// An existing destination is never overwritten.
	copied, err = CopyStoreImage(image, dest)
	require.NoError(t, err)
	assert.False(t, copied)
}

func TestCopyStoreImageMissingSources(t *testing.T) {
	dest := filepath.Join(t.TempDir(), "cardvault.db")

	copied, err := CopyStoreImage("", dest)
	require.NoError(t, err)
	assert.False(t, copied)

	copied, err = CopyStoreImage(filepath.Join(t.TempDir(), "missing.db"), dest)
	require.NoError(t, err)
	assert.False(t, copied, "a missing bundled image is an expected condition")
}
