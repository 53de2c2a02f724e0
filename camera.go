package main

import (
	"github.com/milk9111/angeldust/common"
)

// Camera maps world coordinates (y up) to screen pixels (y down), centred on
// a world position and scaled by zoom.
type Camera struct {
	PosX float64
	PosY float64

	screenW int
	screenH int
	zoom    float64
}

// NewCamera creates a camera with the given logical screen size and zoom.
func NewCamera(screenW, screenH int, zoom float64) *Camera {
	if zoom <= 0 {
		zoom = 1
	}
	return &Camera{screenW: screenW, screenH: screenH, zoom: zoom}
}

func (c *Camera) Zoom() float64 {
	return c.zoom
}

// SetZoom updates the camera zoom.
func (c *Camera) SetZoom(z float64) {
	if z <= 0 {
		return
	}
	c.zoom = z
}

func (c *Camera) Follow(p common.Vec2) {
	c.PosX = p.X
	c.PosY = p.Y
}

// ToScreen converts a world position to screen pixels.
func (c *Camera) ToScreen(p common.Vec2) (float32, float32) {
	x := (p.X-c.PosX)*c.zoom + float64(c.screenW)/2
	y := float64(c.screenH)/2 - (p.Y-c.PosY)*c.zoom
	return float32(x), float32(y)
}

// ToWorld converts screen pixels to a world position.
func (c *Camera) ToWorld(x, y int) common.Vec2 {
	return common.V(
		c.PosX+(float64(x)-float64(c.screenW)/2)/c.zoom,
		c.PosY-(float64(y)-float64(c.screenH)/2)/c.zoom,
	)
}
