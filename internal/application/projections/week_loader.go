package projections

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"karting/internal/domain/rack"
)

// ErrSuperseded is returned by a grid load that a newer load replaced.
var ErrSuperseded = errors.New("weekly grid load superseded by a newer request")

// LoadRecorder counts grid load outcomes.
type LoadRecorder interface {
	CountGridLoad(outcome string)
}

// WeekLoader holds the weekly grid one browser is looking at. Loads are
// numbered; only the newest may replace the displayed grid, and starting a
// load cancels the one still in flight.
type WeekLoader struct {
	fetcher  GridFetcher
	recorder LoadRecorder

	mu      sync.Mutex
	seq     uint64
	cancel  context.CancelFunc
	current rack.View
	loaded  bool
}

// NewWeekLoader creates a loader with no grid displayed.
// PRE: fetcher is non-nil; recorder may be nil
func NewWeekLoader(fetcher GridFetcher, recorder LoadRecorder) *WeekLoader {
	return &WeekLoader{fetcher: fetcher, recorder: recorder}
}

// GridResult is what a load leaves on screen.
type GridResult struct {
	View rack.View
	// Stale is set when the load failed and View is the previously shown grid.
	Stale bool
	// Loaded is false when nothing has ever been shown.
	Loaded bool
}

// Load fetches the week containing anchor and, if it is still the newest
// load when the response arrives, makes it the displayed grid.
// PRE: none
// POST: On success the displayed grid is the anchor's week
// POST: On NetworkError/ServerError the displayed grid is unchanged and returned as Stale
// INVARIANT: A load that is not the newest never changes the displayed grid; it returns ErrSuperseded
func (l *WeekLoader) Load(ctx context.Context, anchor time.Time) (GridResult, error) {
	start, end := rack.WeekBounds(anchor)

	l.mu.Lock()
	l.seq++
	seq := l.seq
	if l.cancel != nil {
		l.cancel()
	}
	loadCtx, cancel := context.WithCancel(ctx)
	l.cancel = cancel
	l.mu.Unlock()
	defer cancel()

	grid, err := l.fetcher.WeeklyGrid(loadCtx, start, end)

	l.mu.Lock()
	defer l.mu.Unlock()

	if seq != l.seq {
		l.count("superseded")
		slog.Debug("rack_load_superseded", "seq", seq, "latest", l.seq, "week", start.Format(time.DateOnly))
		return GridResult{View: l.current, Stale: true, Loaded: l.loaded}, ErrSuperseded
	}
	l.cancel = nil

	if err != nil {
		l.count("error")
		slog.Warn("rack_load_failed", "week", start.Format(time.DateOnly), "error", err)
		return GridResult{View: l.current, Stale: l.loaded, Loaded: l.loaded}, err
	}

	l.current = rack.BuildView(start, grid)
	l.loaded = true
	l.count("ok")
	return GridResult{View: l.current, Loaded: true}, nil
}

// Current returns the displayed grid, if any.
func (l *WeekLoader) Current() (rack.View, bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.current, l.loaded
}

func (l *WeekLoader) count(outcome string) {
	if l.recorder != nil {
		l.recorder.CountGridLoad(outcome)
	}
}
