package common

// TimeCounter is the game clock. Delta is the raw frame delta multiplied by
// Timescale so slow-motion effects reach every timer consistently.
type TimeCounter struct {
	Timescale float64

	delta   float64
	elapsed float64
}

func NewTimeCounter() *TimeCounter {
	return &TimeCounter{Timescale: 1}
}

// Step records the raw (unscaled) duration of the frame about to run.
func (t *TimeCounter) Step(raw float64) {
	if t == nil {
		return
	}
	if raw < 0 {
		raw = 0
	}
	t.delta = raw
	t.elapsed += raw
}

// Delta returns the scaled delta for the current frame in seconds.
func (t *TimeCounter) Delta() float64 {
	if t == nil {
		return 0
	}
	return t.delta * t.Timescale
}

// RawDelta returns the unscaled delta for the current frame.
func (t *TimeCounter) RawDelta() float64 {
	if t == nil {
		return 0
	}
	return t.delta
}

// Elapsed returns unscaled seconds since the clock was created.
func (t *TimeCounter) Elapsed() float64 {
	if t == nil {
		return 0
	}
	return t.elapsed
}
