// Package animation ramps the sphere point count up and down on a timer.
package animation

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/Faultbox/golden-sphere/internal/logger"
)

// Interval is the fixed delay between steps.
const Interval = 5 * time.Millisecond

// Walk bounds. Crossing above Upper or below Lower flips the direction.
const (
	Upper = 999
	Lower = 6
)

// Counter is the point count the driver walks.
type Counter interface {
	// Points returns the current point count.
	Points() int
	// SetPoints replaces the point count.
	SetPoints(n int)
	// Applied returns the point count the geometry was last rebuilt for.
	Applied() int
}

// Driver walks a Counter between the bounds one unit per step.
type Driver struct {
	counter   Counter
	interval  time.Duration
	ascending bool

	mu      sync.Mutex
	cancel  context.CancelFunc
	done    chan struct{}
	running bool
}

// New creates a driver that starts out ascending.
func New(counter Counter) *Driver {
	return &Driver{
		counter:   counter,
		interval:  Interval,
		ascending: true,
	}
}

// SetInterval overrides the step delay. Only takes effect on the next Start.
func (d *Driver) SetInterval(interval time.Duration) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.interval = interval
}

// Ascending reports the current direction.
func (d *Driver) Ascending() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.ascending
}

// Step advances the counter by one unit.
//
// Past Upper the walk turns down, past Lower it turns up. If the count at the
// boundary has already been rendered, it takes one extra unit so the turn is
// visible immediately.
func (d *Driver) Step() {
	d.mu.Lock()
	defer d.mu.Unlock()

	n := d.counter.Points()
	switch {
	case n > Upper:
		d.ascending = false
		if n == d.counter.Applied() {
			n--
		}
	case n < Lower:
		d.ascending = true
		if n == d.counter.Applied() {
			n++
		}
	}

	if d.ascending {
		n++
	} else {
		n--
	}
	d.counter.SetPoints(n)
}

// Run steps the counter every interval until ctx is cancelled.
func (d *Driver) Run(ctx context.Context) {
	d.mu.Lock()
	interval := d.interval
	d.mu.Unlock()

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			d.Step()
		}
	}
}

// Running reports whether the background loop is active.
func (d *Driver) Running() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.running
}

// Start launches the stepping loop in the background. It is a no-op when
// already running. The walk resumes from whatever count the Counter holds.
func (d *Driver) Start() {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.running {
		return
	}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	d.cancel = cancel
	d.done = done
	d.running = true

	logger.Debug("animation started",
		zap.Int("points", d.counter.Points()),
		zap.Bool("ascending", d.ascending),
	)

	go func() {
		defer close(done)
		d.Run(ctx)
	}()
}

// Stop halts the loop and waits for it to exit. No step happens after Stop
// returns.
func (d *Driver) Stop() {
	d.mu.Lock()
	if !d.running {
		d.mu.Unlock()
		return
	}
	cancel, done := d.cancel, d.done
	d.running = false
	d.cancel = nil
	d.done = nil
	d.mu.Unlock()

	cancel()
	<-done

	logger.Debug("animation stopped", zap.Int("points", d.counter.Points()))
}
