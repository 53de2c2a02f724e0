package component

// LevelBounds stores the world-space bounds of the current level. Bullets
// leaving them are discarded.
type LevelBounds struct {
	MinX float64
	MinY float64
	MaxX float64
	MaxY float64
}

func (b LevelBounds) Contains(x, y float64) bool {
	return x >= b.MinX && x <= b.MaxX && y >= b.MinY && y <= b.MaxY
}

var LevelBoundsComponent = NewComponent[LevelBounds]()
