package health

import "time"

// Clock measures the wall-clock time between ticks of a running challenge.
// Each Start bumps the generation so hosts can drop ticks scheduled by a
// previous run.
type Clock struct {
	started    time.Time
	last       time.Time
	running    bool
	generation int
}

// Start begins a new run at now, cancelling any previous one, and returns
// the run's generation.
func (c *Clock) Start(now time.Time) int {
	c.generation++
	c.started = now
	c.last = now
	c.running = true
	return c.generation
}

// Stop ends the current run.
func (c *Clock) Stop() {
	c.running = false
}

// Running reports whether a run is active.
func (c *Clock) Running() bool {
	return c.running
}

// Generation returns the generation of the latest run.
func (c *Clock) Generation() int {
	return c.generation
}

// Advance returns the time since the previous tick and records now as the
// latest tick. It returns 0 when stopped or when now is not after the
// previous tick.
func (c *Clock) Advance(now time.Time) time.Duration {
	if !c.running || !now.After(c.last) {
		return 0
	}
	delta := now.Sub(c.last)
	c.last = now
	return delta
}

// Elapsed returns the time since Start.
func (c *Clock) Elapsed(now time.Time) time.Duration {
	if c.started.IsZero() || now.Before(c.started) {
		return 0
	}
	return now.Sub(c.started)
}
