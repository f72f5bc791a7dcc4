package stats

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testSummary(t *testing.T) *Summary {
	t.Helper()

	s := &Summary{
		RunID:            "6f1c7a52-3b0e-4d8a-9a0e-0c4b1f3e2d11",
		CreatedAt:        time.Date(2024, 3, 1, 12, 30, 0, 123456789, time.UTC),
		DataRoot:         "/data/dancetrack",
		Splits:           []string{"train", "val", "test"},
		OverlapThreshold: 0.5,
		Method:           "rectangle",
	}

	require.NoError(t, s.Add(SequenceStats{
		ID: 1, Name: "dancetrack0001", Split: "train", Frames: 3,
		Instances: intPtr(3), Pairs: intPtr(4), Overlaps: intPtr(2),
	}))
	require.NoError(t, s.Add(SequenceStats{
		ID: 3, Name: "dancetrack0003", Split: "test", Frames: 4,
	}))

	s.setPairDensity([]float64{3, 1, 0})

	return s
}

func TestJSONStoreRoundTrip(t *testing.T) {

	path := filepath.Join(t.TempDir(), "out", "summary.json")
	want := testSummary(t)

	require.NoError(t, NewJSONStore(path).Save(context.Background(), want))

	got, err := LoadJSON(path)
	require.NoError(t, err)

	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("summary mismatch (-want +got):\n%s", diff)
	}

	// no temporary files are left next to the summary
	entries, err := os.ReadDir(filepath.Dir(path))
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}

func TestJSONStoreNullSlots(t *testing.T) {

	path := filepath.Join(t.TempDir(), "summary.json")
	require.NoError(t, NewJSONStore(path).Save(context.Background(), testSummary(t)))

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	var raw map[string]interface{}
	require.NoError(t, json.Unmarshal(data, &raw))

	assert.Equal(t, []interface{}{float64(3), nil, float64(4)}, raw["num_frames_in_sequence"])
	assert.Equal(t, []interface{}{float64(4)}, raw["num_pairs_to_annotate_in_sequence"])
	assert.Equal(t, float64(4), raw["total_pairs_to_annotate"])
}

func TestJSONStoreCancelled(t *testing.T) {

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	path := filepath.Join(t.TempDir(), "summary.json")
	assert.ErrorIs(t, NewJSONStore(path).Save(ctx, testSummary(t)), context.Canceled)

	_, err := os.Stat(path)
	assert.True(t, os.IsNotExist(err))
}

func TestLoadJSONMissing(t *testing.T) {
	_, err := LoadJSON(filepath.Join(t.TempDir(), "none.json"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestSQLiteStoreRoundTrip(t *testing.T) {

	ctx := context.Background()

	store, err := OpenSQLite(ctx, filepath.Join(t.TempDir(), "stats.db"))
	require.NoError(t, err)
	defer store.Close()

	want := testSummary(t)
	require.NoError(t, store.Save(ctx, want))

	got, err := store.Load(ctx, want.RunID)
	require.NoError(t, err)

	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("summary mismatch (-want +got):\n%s", diff)
	}

	// a run id is stored once
	assert.Error(t, store.Save(ctx, want))
}

func TestSQLiteStoreUnknownRun(t *testing.T) {

	ctx := context.Background()

	store, err := OpenSQLite(ctx, ":memory:")
	require.NoError(t, err)
	defer store.Close()

	_, err = store.Load(ctx, "missing")
	assert.Error(t, err)
}

func TestStoresImplementStore(t *testing.T) {
	var _ Store = (*JSONStore)(nil)
	var _ Store = (*SQLiteStore)(nil)
}
