package common

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRotationRoundTrip(t *testing.T) {
	cases := []struct {
		name string
		dir  Vec2
	}{
		{"up", V(0, 1)},
		{"right", V(1, 0)},
		{"down_left", V(-1, -1)},
		{"left", V(-3, 0)},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			up := Up(RotationTo(c.dir))
			want := c.dir.NormalizeOrZero()
			assert.InDelta(t, want.X, up.X, 1e-9)
			assert.InDelta(t, want.Y, up.Y, 1e-9)
		})
	}
}

func TestClosestPointOnTriangle(t *testing.T) {
	a, b, c := V(0, 0), V(10, 0), V(0, 10)

	assert.Equal(t, V(2, 2), ClosestPointOnTriangle(V(2, 2), a, b, c))
	assert.Equal(t, V(5, 0), ClosestPointOnTriangle(V(5, -4), a, b, c))

	p := ClosestPointOnTriangle(V(10, 10), a, b, c)
	assert.InDelta(t, 5.0, p.X, 1e-9)
	assert.InDelta(t, 5.0, p.Y, 1e-9)
}

func TestTimeCounterScalesDelta(t *testing.T) {
	clock := NewTimeCounter()
	clock.Step(0.1)
	assert.InDelta(t, 0.1, clock.Delta(), 1e-12)

	clock.Timescale = 0.5
	clock.Step(0.1)
	assert.InDelta(t, 0.05, clock.Delta(), 1e-12)
	assert.InDelta(t, 0.2, clock.Elapsed(), 1e-12)
	assert.False(t, math.IsNaN(clock.RawDelta()))
}
