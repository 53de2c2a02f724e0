package component

// Viewport is the visible world rectangle, centred on the camera. A zero size
// means there is no screen and every point counts as visible.
type Viewport struct {
	CenterX float64
	CenterY float64
	Width   float64
	Height  float64
}

func (v Viewport) Contains(x, y float64) bool {
	if v.Width <= 0 || v.Height <= 0 {
		return true
	}
	return x >= v.CenterX-v.Width/2 && x <= v.CenterX+v.Width/2 &&
		y >= v.CenterY-v.Height/2 && y <= v.CenterY+v.Height/2
}

var ViewportComponent = NewComponent[Viewport]()
