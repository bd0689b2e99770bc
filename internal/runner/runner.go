// Package runner drives the selection over an event stream with a pool
// of workers and merges their bookkeeping.
package runner

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sync/atomic"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/banshee-data/trilepton/internal/analysis"
	"github.com/banshee-data/trilepton/internal/cutflow"
	"github.com/banshee-data/trilepton/internal/event"
	"github.com/banshee-data/trilepton/internal/monitoring"
	"github.com/banshee-data/trilepton/internal/timeutil"
)

var logf = monitoring.Prefixed("[runner] ")

// Source yields events until io.EOF. *event.Decoder implements it.
type Source interface {
	Next() (*event.Event, error)
}

// Options configures Run.
type Options struct {
	// Workers is the number of concurrent engines. Values below 1 mean 1.
	Workers int
	Config  analysis.Config
	// ProgressEvery logs a progress line every n decoded events; 0 disables.
	ProgressEvery int64
	// Clock times the run; nil means the wall clock.
	Clock timeutil.Clock
}

// Summary is the merged outcome of a run.
type Summary struct {
	Events  int64
	Skipped int64
	// Selected counts, per region, the events that survived every cut.
	Selected map[string]int64
	Manager  *cutflow.Manager
	Started  time.Time
	Elapsed  time.Duration
}

type worker struct {
	engine   *analysis.Engine
	manager  *cutflow.Manager
	skipped  int64
	selected map[string]int64
}

func newWorker(cfg analysis.Config) (*worker, error) {
	m := cutflow.NewManager()
	e, err := analysis.NewEngine(m, cfg)
	if err != nil {
		return nil, err
	}
	return &worker{engine: e, manager: m, selected: make(map[string]int64)}, nil
}

func (w *worker) run(events <-chan *event.Event) error {
	for ev := range events {
		res, err := w.engine.Process(ev)
		if errors.Is(err, analysis.ErrZeroWeight) {
			w.skipped++
			continue
		}
		if err != nil {
			return fmt.Errorf("event %d: %w", ev.Number, err)
		}
		for _, r := range res.Selected {
			w.selected[r]++
		}
	}
	return nil
}

// Run processes every event of src. Each worker owns a private engine and
// cutflow manager; they are merged once the stream is drained. Cancelling
// ctx stops reading new events, events already handed to a worker finish,
// and the partial Summary is returned with the context error.
func Run(ctx context.Context, src Source, opts Options) (*Summary, error) {
	n := opts.Workers
	if n < 1 {
		n = 1
	}
	workers := make([]*worker, n)
	for i := range workers {
		w, err := newWorker(opts.Config)
		if err != nil {
			return nil, fmt.Errorf("worker %d: %w", i, err)
		}
		workers[i] = w
	}

	clock := timeutil.OrReal(opts.Clock)
	start := clock.Now()
	logf("starting with %d workers", n)

	var decoded atomic.Int64
	events := make(chan *event.Event, 4*n)
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		defer close(events)
		for {
			ev, err := src.Next()
			if err == io.EOF {
				return nil
			}
			if err != nil {
				return fmt.Errorf("read events: %w", err)
			}
			select {
			case events <- ev:
			case <-gctx.Done():
				return gctx.Err()
			}
			if c := decoded.Add(1); opts.ProgressEvery > 0 && c%opts.ProgressEvery == 0 {
				logf("%d events read", c)
			}
		}
	})
	for _, w := range workers {
		g.Go(func() error { return w.run(events) })
	}
	err := g.Wait()

	sum := &Summary{
		Events:   decoded.Load(),
		Selected: make(map[string]int64),
		Manager:  workers[0].manager,
		Started:  start,
		Elapsed:  clock.Since(start),
	}
	for i, w := range workers {
		if i > 0 {
			if mergeErr := sum.Manager.Merge(w.manager); mergeErr != nil {
				return nil, fmt.Errorf("merge worker %d: %w", i, mergeErr)
			}
		}
		sum.Skipped += w.skipped
		for r, c := range w.selected {
			sum.Selected[r] += c
		}
	}

	if err != nil {
		logf("stopped after %d events: %v", sum.Events, err)
		return sum, err
	}
	if sum.Skipped > 0 {
		logf("skipped %d zero-weight events", sum.Skipped)
	}
	logf("processed %d events in %s", sum.Events, sum.Elapsed.Round(time.Millisecond))
	return sum, nil
}
