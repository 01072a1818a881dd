package sqlite_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/phoenix/attendance-engine/reconcile"
	"github.com/phoenix/attendance-engine/store/sqlite"
)

func newTestStore(t *testing.T) *sqlite.Store {
	store, err := sqlite.New(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return store
}

func sampleResult(day string) *reconcile.Result {
	expected := reconcile.NewBucketTable()
	expected[reconcile.BucketInbound] = reconcile.Counts{AMZN: 4, TEMP: 1, TOTAL: 5}
	present := reconcile.NewBucketTable()
	present[reconcile.BucketInbound] = reconcile.Counts{AMZN: 3, TEMP: 1, TOTAL: 4}

	return &reconcile.Result{
		Day:     day,
		DayName: reconcile.DayName(day),
		Shift:   "Day",
		Rows: map[reconcile.CohortName]reconcile.BucketTable{
			reconcile.CohortRegularExpected: expected,
			reconcile.CohortRegularPresent:  present,
		},
		ShowRatePct: 80,
	}
}

func TestSaveAndGetRun(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	id, err := store.SaveRun(ctx, sampleResult("2026-08-28"))
	require.NoError(t, err)
	require.NotEmpty(t, id)

	run, err := store.GetRun(ctx, id)
	require.NoError(t, err)
	require.NotNil(t, run)
	assert.Equal(t, "2026-08-28", run.Day)
	assert.Equal(t, "Day", run.Shift)
	assert.Equal(t, 5, run.Expected)
	assert.Equal(t, 4, run.Present)
	assert.Equal(t, 80, run.ShowRatePct)

	require.NotNil(t, run.Result)
	assert.Equal(t, 5, run.Result.Rows[reconcile.CohortRegularExpected].SumTotals())
}

func TestGetRun_Missing(t *testing.T) {
	store := newTestStore(t)

	run, err := store.GetRun(context.Background(), "no-such-id")

	require.NoError(t, err)
	assert.Nil(t, run)
}

func TestListRuns_NewestFirstAppendOnly(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	first, err := store.SaveRun(ctx, sampleResult("2026-08-27"))
	require.NoError(t, err)
	second, err := store.SaveRun(ctx, sampleResult("2026-08-27"))
	require.NoError(t, err)

	runs, err := store.ListRuns(ctx, 0)
	require.NoError(t, err)

	// A re-run of the same day is a second row, never an update.
	require.Len(t, runs, 2)
	assert.NotEqual(t, first, second)
	for _, r := range runs {
		assert.Nil(t, r.Result, "list view carries summaries only")
	}

	runs, err = store.ListRuns(ctx, 1)
	require.NoError(t, err)
	assert.Len(t, runs, 1)
}

func TestReset(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	_, err := store.SaveRun(ctx, sampleResult("2026-08-28"))
	require.NoError(t, err)
	require.NoError(t, store.Reset(ctx))

	runs, err := store.ListRuns(ctx, 0)
	require.NoError(t, err)
	assert.Empty(t, runs)
}
