package component

import "math"

const countdownEpsilon = 1e-9

// Countdown is a reusable timer ticked with the scaled frame delta. A zero
// Duration is always finished.
type Countdown struct {
	Duration float64
	Elapsed  float64
}

func NewCountdown(seconds float64) Countdown {
	return Countdown{Duration: seconds}
}

// NewFinishedCountdown returns a countdown that has already run out, so a
// weapon with it can fire immediately.
func NewFinishedCountdown(seconds float64) Countdown {
	return Countdown{Duration: seconds, Elapsed: seconds}
}

// Tick advances the countdown by dt seconds and reports whether it finished
// during this call.
func (c *Countdown) Tick(dt float64) bool {
	if c == nil || dt <= 0 {
		return false
	}
	if c.Finished() {
		return false
	}
	c.Elapsed = math.Min(c.Elapsed+dt, c.Duration)
	return c.Finished()
}

func (c *Countdown) Finished() bool {
	if c == nil {
		return true
	}
	return c.Elapsed >= c.Duration-countdownEpsilon
}

func (c *Countdown) Reset() {
	if c == nil {
		return
	}
	c.Elapsed = 0
}

func (c *Countdown) Remaining() float64 {
	if c == nil || c.Finished() {
		return 0
	}
	return c.Duration - c.Elapsed
}
