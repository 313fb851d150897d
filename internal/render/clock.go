package render

import (
	"context"
	"time"
)

// FrameClock decides when the next frame capture is due. The render loop asks
// for the frame after the one it last captured; the clock answers with the
// index of the next frame that is actually due, which may skip ahead when
// capture has fallen behind real time.
type FrameClock interface {
	// Start marks the beginning of playback time.
	Start()
	// Next blocks until a frame after index `after` is due and returns its
	// index. Returns ctx.Err() if the context is cancelled while waiting.
	Next(ctx context.Context, after int) (int, error)
}

// realClock paces capture against the wall clock at a fixed frame interval.
// When compositing overruns one interval, missed indices are skipped rather
// than queued, so the loop drops frames instead of building a backlog.
type realClock struct {
	interval time.Duration
	start    time.Time
}

// NewRealClock returns a wall-clock-driven FrameClock for the given rate.
func NewRealClock(fps float64) FrameClock {
	return &realClock{interval: time.Duration(float64(time.Second) / fps)}
}

func (c *realClock) Start() {
	c.start = time.Now()
}

func (c *realClock) Next(ctx context.Context, after int) (int, error) {
	next := after + 1
	due := c.start.Add(time.Duration(next) * c.interval)

	if wait := time.Until(due); wait <= 0 {
		// Behind schedule: jump to the first index not yet due.
		elapsed := time.Since(c.start)
		next = int(elapsed/c.interval) + 1
		due = c.start.Add(time.Duration(next) * c.interval)
	}

	timer := time.NewTimer(time.Until(due))
	defer timer.Stop()
	select {
	case <-timer.C:
		return next, nil
	case <-ctx.Done():
		return 0, ctx.Err()
	}
}

// VirtualClock advances one frame per call with no relation to wall time.
// It never skips an index, so renderers driven by it emit every frame even
// when compositing runs slower than real time.
type VirtualClock struct{}

// NewVirtualClock returns a simulated FrameClock.
func NewVirtualClock() *VirtualClock { return &VirtualClock{} }

func (c *VirtualClock) Start() {}

func (c *VirtualClock) Next(ctx context.Context, after int) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	return after + 1, nil
}
