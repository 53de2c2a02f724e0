package component

// Collider is the axis-aligned box an entity registers with the physics world.
// Sensors are ignored by sight casts and bullet sweeps.
type Collider struct {
	Width  float64
	Height float64
	Sensor bool
}

func (c Collider) HalfExtents() (float64, float64) {
	return c.Width / 2, c.Height / 2
}

var ColliderComponent = NewComponent[Collider]()
