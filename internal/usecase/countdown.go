package usecase

import "fmt"

// Countdown is the once-per-second refresh countdown.
//
// Each Tick shows the current value, then decrements it. Going below zero wraps
// back to the cycle length. The tick that lands exactly on zero is the one that
// asks for a refresh.
type Countdown struct {
	cycle     int
	remaining int
}

// NewCountdown starts a countdown at cycle seconds.
func NewCountdown(cycle int) *Countdown {
	if cycle < 1 {
		cycle = 1
	}
	return &Countdown{cycle: cycle, remaining: cycle}
}

// Tick advances one second. It returns the label for the value shown during
// this tick and whether a refresh should fire.
func (c *Countdown) Tick() (label string, fire bool) {
	label = Label(c.remaining)
	c.remaining--
	if c.remaining < 0 {
		c.remaining = c.cycle
	}
	return label, c.remaining == 0
}

// Remaining is the value the next tick will show.
func (c *Countdown) Remaining() int { return c.remaining }

// Cycle is the configured countdown length.
func (c *Countdown) Cycle() int { return c.cycle }

// Label renders the countdown text for n seconds.
func Label(n int) string {
	return fmt.Sprintf("Refreshing in %ds", n)
}
