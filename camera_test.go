package main

import (
	"testing"

	"github.com/milk9111/angeldust/common"
	"github.com/stretchr/testify/assert"
)

func TestCameraFlipsYAndRoundTrips(t *testing.T) {
	c := NewCamera(baseWidth, baseHeight, 0.5)
	c.Follow(common.V(100, 100))

	x, y := c.ToScreen(common.V(100, 100))
	assert.Equal(t, float32(baseWidth/2), x)
	assert.Equal(t, float32(baseHeight/2), y)

	_, above := c.ToScreen(common.V(100, 200))
	assert.Less(t, above, y, "larger world y is higher on screen")

	p := c.ToWorld(baseWidth/2+50, baseHeight/2+50)
	assert.InDelta(t, 200, p.X, 1e-9)
	assert.InDelta(t, 0, p.Y, 1e-9)
}
