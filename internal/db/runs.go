package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/banshee-data/trilepton/internal/cutflow"
)

// Run is the metadata of one analysis pass over an input.
type Run struct {
	ID         string
	Input      string
	ConfigJSON string
	Workers    int
	Events     int64
	Skipped    int64
	StartedAt  time.Time
	FinishedAt time.Time
	Version    string
}

// CutflowRow is one stored cutflow step. Step 0 is the region's initial
// count, with Cut set to "initial".
type CutflowRow struct {
	Region string
	Step   int
	Cut    string
	Events int64
	SumW   float64
	SumW2  float64
}

// BinRow is one stored histogram bin.
type BinRow struct {
	Histogram string
	Region    string
	Bin       int
	XLow      float64
	XHigh     float64
	Entries   int64
	SumW      float64
	SumW2     float64
}

func unixSeconds(t time.Time) float64 {
	return float64(t.UnixNano()) / 1e9
}

func fromUnixSeconds(s float64) time.Time {
	return time.Unix(0, int64(s*1e9)).UTC()
}

// RecordRun stores run together with every region cutflow and histogram
// bin of m in one transaction. A missing run ID is filled with a new UUID.
func (db *DB) RecordRun(ctx context.Context, run *Run, m *cutflow.Manager) error {
	if run.ID == "" {
		run.ID = uuid.NewString()
	}
	if run.ConfigJSON == "" {
		run.ConfigJSON = "{}"
	}
	return retryOnBusy(ctx, func() error {
		return db.recordRunTx(ctx, run, m)
	})
}

func (db *DB) recordRunTx(ctx context.Context, run *Run, m *cutflow.Manager) error {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx,
		`INSERT INTO runs (
			run_id, input, config_json, workers, events, skipped,
			started_unix, finished_unix, version
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		run.ID, run.Input, run.ConfigJSON, run.Workers, run.Events, run.Skipped,
		unixSeconds(run.StartedAt), unixSeconds(run.FinishedAt), run.Version,
	)
	if err != nil {
		return fmt.Errorf("failed to insert run: %w", err)
	}

	cutStmt, err := tx.PrepareContext(ctx,
		`INSERT INTO run_cutflows (run_id, region, step, cut, events, sum_w, sum_w2)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("failed to prepare cutflow insert: %w", err)
	}
	defer cutStmt.Close()

	for _, region := range m.Regions() {
		flow, _ := m.Cutflow(region)
		rows := append([]cutflow.Step{{Cut: "initial", Pass: flow.Initial}}, flow.Steps...)
		for i, s := range rows {
			if _, err := cutStmt.ExecContext(ctx, run.ID, region, i, s.Cut,
				s.Pass.Events, s.Pass.SumW, s.Pass.SumW2); err != nil {
				return fmt.Errorf("failed to insert cutflow %s/%s: %w", region, s.Cut, err)
			}
		}
	}

	binStmt, err := tx.PrepareContext(ctx,
		`INSERT INTO run_histogram_bins (
			run_id, histogram, region, bin, x_low, x_high, entries, sum_w, sum_w2
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("failed to prepare bin insert: %w", err)
	}
	defer binStmt.Close()

	for _, name := range m.Histograms() {
		h := m.Histogram(name)
		region, _ := m.HistogramRegion(name)
		for i, b := range h.Binning.Bins {
			if _, err := binStmt.ExecContext(ctx, run.ID, name, region, i,
				b.XMin(), b.XMax(), b.Entries(), b.SumW(), b.SumW2()); err != nil {
				return fmt.Errorf("failed to insert bin %s[%d]: %w", name, i, err)
			}
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit run: %w", err)
	}
	return nil
}

const runColumns = `run_id, input, config_json, workers, events, skipped,
	started_unix, finished_unix, version`

func scanRun(row interface{ Scan(...any) error }) (*Run, error) {
	var r Run
	var started, finished float64
	if err := row.Scan(&r.ID, &r.Input, &r.ConfigJSON, &r.Workers, &r.Events, &r.Skipped,
		&started, &finished, &r.Version); err != nil {
		return nil, err
	}
	r.StartedAt = fromUnixSeconds(started)
	r.FinishedAt = fromUnixSeconds(finished)
	return &r, nil
}

// GetRun returns the run with id, or ErrNotFound.
func (db *DB) GetRun(ctx context.Context, id string) (*Run, error) {
	row := db.QueryRowContext(ctx, `SELECT `+runColumns+` FROM runs WHERE run_id = ?`, id)
	r, err := scanRun(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("run %s: %w", id, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query run: %w", err)
	}
	return r, nil
}

// ListRuns returns the most recent runs first, at most limit of them.
func (db *DB) ListRuns(ctx context.Context, limit int) ([]*Run, error) {
	rows, err := db.QueryContext(ctx,
		`SELECT `+runColumns+` FROM runs ORDER BY started_unix DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query runs: %w", err)
	}
	defer rows.Close()

	var runs []*Run
	for rows.Next() {
		r, err := scanRun(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan run: %w", err)
		}
		runs = append(runs, r)
	}
	return runs, rows.Err()
}

// GetCutflow returns the stored cutflow of region for run id, initial row
// first.
func (db *DB) GetCutflow(ctx context.Context, id, region string) ([]CutflowRow, error) {
	rows, err := db.QueryContext(ctx,
		`SELECT region, step, cut, events, sum_w, sum_w2
		 FROM run_cutflows WHERE run_id = ? AND region = ? ORDER BY step`, id, region)
	if err != nil {
		return nil, fmt.Errorf("failed to query cutflow: %w", err)
	}
	defer rows.Close()

	var out []CutflowRow
	for rows.Next() {
		var c CutflowRow
		if err := rows.Scan(&c.Region, &c.Step, &c.Cut, &c.Events, &c.SumW, &c.SumW2); err != nil {
			return nil, fmt.Errorf("failed to scan cutflow: %w", err)
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

// GetHistogram returns the stored bins of histogram name for run id.
func (db *DB) GetHistogram(ctx context.Context, id, name string) ([]BinRow, error) {
	rows, err := db.QueryContext(ctx,
		`SELECT histogram, region, bin, x_low, x_high, entries, sum_w, sum_w2
		 FROM run_histogram_bins WHERE run_id = ? AND histogram = ? ORDER BY bin`, id, name)
	if err != nil {
		return nil, fmt.Errorf("failed to query histogram: %w", err)
	}
	defer rows.Close()

	var out []BinRow
	for rows.Next() {
		var b BinRow
		if err := rows.Scan(&b.Histogram, &b.Region, &b.Bin, &b.XLow, &b.XHigh,
			&b.Entries, &b.SumW, &b.SumW2); err != nil {
			return nil, fmt.Errorf("failed to scan bin: %w", err)
		}
		out = append(out, b)
	}
	return out, rows.Err()
}

// DeleteRun removes a run and, by cascade, its cutflows and bins.
func (db *DB) DeleteRun(ctx context.Context, id string) error {
	return retryOnBusy(ctx, func() error {
		res, err := db.ExecContext(ctx, `DELETE FROM runs WHERE run_id = ?`, id)
		if err != nil {
			return fmt.Errorf("failed to delete run: %w", err)
		}
		n, err := res.RowsAffected()
		if err != nil {
			return err
		}
		if n == 0 {
			return fmt.Errorf("run %s: %w", id, ErrNotFound)
		}
		return nil
	})
}
