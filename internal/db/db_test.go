package db

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/banshee-data/trilepton/internal/cutflow"
	"github.com/banshee-data/trilepton/internal/monitoring"
)

func setupTestDB(t *testing.T) *DB {
	t.Helper()
	original := monitoring.Logf
	monitoring.SetLogger(nil)
	t.Cleanup(func() { monitoring.Logf = original })

	db, err := NewDB(filepath.Join(t.TempDir(), "runs.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db
}

func sampleManager(t *testing.T) *cutflow.Manager {
	t.Helper()
	m := cutflow.NewManager()
	require.NoError(t, m.AddRegion("SR-low"))
	require.NoError(t, m.AddCut("3Leptons"))
	require.NoError(t, m.AddCut("low-HBoost", "SR-low"))
	require.NoError(t, m.AddHisto("SR-low-HBoost", 4, 200, 600, "SR-low"))

	m.StartEvent(2)
	m.ApplyCut("3Leptons", true)
	m.Fill("SR-low-HBoost", 310)
	m.ApplyCut("low-HBoost", true)

	m.StartEvent(1)
	m.ApplyCut("3Leptons", false)
	return m
}

func TestPragmasApplied(t *testing.T) {
	db := setupTestDB(t)

	var journalMode string
	require.NoError(t, db.QueryRow("PRAGMA journal_mode").Scan(&journalMode))
	assert.Equal(t, "wal", journalMode)

	var busyTimeout int
	require.NoError(t, db.QueryRow("PRAGMA busy_timeout").Scan(&busyTimeout))
	assert.Equal(t, 5000, busyTimeout)

	var fk int
	require.NoError(t, db.QueryRow("PRAGMA foreign_keys").Scan(&fk))
	assert.Equal(t, 1, fk)
}

func TestMigrations(t *testing.T) {
	db := setupTestDB(t)

	version, dirty, err := db.MigrateVersion()
	require.NoError(t, err)
	assert.Equal(t, uint(2), version)
	assert.False(t, dirty)

	require.NoError(t, db.MigrateDown())
	version, _, err = db.MigrateVersion()
	require.NoError(t, err)
	assert.Equal(t, uint(1), version)

	var n int
	require.NoError(t, db.QueryRow(
		`SELECT COUNT(*) FROM sqlite_master WHERE type='table' AND name='run_histogram_bins'`).Scan(&n))
	assert.Equal(t, 0, n)

	require.NoError(t, db.MigrateUp())
	version, _, err = db.MigrateVersion()
	require.NoError(t, err)
	assert.Equal(t, uint(2), version)
}

func TestRecordAndReadRun(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()

	start := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	run := &Run{
		Input:      "events.jsonl",
		Workers:    2,
		Events:     2,
		StartedAt:  start,
		FinishedAt: start.Add(3 * time.Second),
		Version:    "test",
	}
	require.NoError(t, db.RecordRun(ctx, run, sampleManager(t)))
	require.NotEmpty(t, run.ID)

	got, err := db.GetRun(ctx, run.ID)
	require.NoError(t, err)
	assert.Equal(t, "events.jsonl", got.Input)
	assert.Equal(t, "{}", got.ConfigJSON)
	assert.Equal(t, int64(2), got.Events)
	assert.WithinDuration(t, start, got.StartedAt, time.Millisecond)
	assert.WithinDuration(t, start.Add(3*time.Second), got.FinishedAt, time.Millisecond)

	flow, err := db.GetCutflow(ctx, run.ID, "SR-low")
	require.NoError(t, err)
	require.Len(t, flow, 3)
	assert.Equal(t, CutflowRow{Region: "SR-low", Step: 0, Cut: "initial", Events: 2, SumW: 3, SumW2: 5}, flow[0])
	assert.Equal(t, "3Leptons", flow[1].Cut)
	assert.Equal(t, int64(1), flow[1].Events)
	assert.Equal(t, "low-HBoost", flow[2].Cut)
	assert.InDelta(t, 2.0, flow[2].SumW, 1e-12)

	bins, err := db.GetHistogram(ctx, run.ID, "SR-low-HBoost")
	require.NoError(t, err)
	require.Len(t, bins, 4)
	assert.Equal(t, "SR-low", bins[1].Region)
	assert.InDelta(t, 300.0, bins[1].XLow, 1e-9)
	assert.InDelta(t, 400.0, bins[1].XHigh, 1e-9)
	assert.Equal(t, int64(1), bins[1].Entries)
	assert.InDelta(t, 2.0, bins[1].SumW, 1e-12)
	assert.Equal(t, int64(0), bins[0].Entries)
}

func TestListAndDeleteRuns(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()

	base := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	var ids []string
	for i := 0; i < 3; i++ {
		run := &Run{Input: "in.jsonl", Workers: 1, StartedAt: base.Add(time.Duration(i) * time.Hour)}
		require.NoError(t, db.RecordRun(ctx, run, sampleManager(t)))
		ids = append(ids, run.ID)
	}

	runs, err := db.ListRuns(ctx, 2)
	require.NoError(t, err)
	require.Len(t, runs, 2)
	assert.Equal(t, ids[2], runs[0].ID)
	assert.Equal(t, ids[1], runs[1].ID)

	require.NoError(t, db.DeleteRun(ctx, ids[0]))
	_, err = db.GetRun(ctx, ids[0])
	assert.True(t, errors.Is(err, ErrNotFound))

	flow, err := db.GetCutflow(ctx, ids[0], "SR-low")
	require.NoError(t, err)
	assert.Empty(t, flow, "cutflow rows cascade with the run")

	err = db.DeleteRun(ctx, ids[0])
	assert.True(t, errors.Is(err, ErrNotFound))
}

func TestRecordRunDuplicateID(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()

	run := &Run{ID: "fixed", Input: "a", Workers: 1}
	require.NoError(t, db.RecordRun(ctx, run, sampleManager(t)))
	err := db.RecordRun(ctx, &Run{ID: "fixed", Input: "b", Workers: 1}, sampleManager(t))
	assert.Error(t, err)

	got, err := db.GetRun(ctx, "fixed")
	require.NoError(t, err)
	assert.Equal(t, "a", got.Input)
}

func TestRetryOnBusy(t *testing.T) {
	ctx := context.Background()

	calls := 0
	err := retryOnBusy(ctx, func() error {
		calls++
		if calls < 3 {
			return errors.New("database is locked (5) (SQLITE_BUSY)")
		}
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, 3, calls)

	calls = 0
	sentinel := errors.New("constraint failed")
	err = retryOnBusy(ctx, func() error {
		calls++
		return sentinel
	})
	assert.True(t, errors.Is(err, sentinel))
	assert.Equal(t, 1, calls)

	calls = 0
	err = retryOnBusy(ctx, func() error {
		calls++
		return errors.New("SQLITE_BUSY")
	})
	assert.Error(t, err)
	assert.Equal(t, maxBusyTries, calls)
}
