package component

// Movement is the walking speed in tiles per second.
type Movement struct {
	Speed float64
}

var MovementComponent = NewComponent[Movement]()
