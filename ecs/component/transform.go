package component

import "github.com/milk9111/angeldust/common"

// Transform is a world-space pose. Rotation is measured counter-clockwise from
// +Y, so the facing vector is common.Up(Rotation).
type Transform struct {
	X        float64
	Y        float64
	Rotation float64
}

func (t Transform) Position() common.Vec2 {
	return common.Vec2{X: t.X, Y: t.Y}
}

func (t *Transform) SetPosition(p common.Vec2) {
	t.X = p.X
	t.Y = p.Y
}

func (t Transform) Forward() common.Vec2 {
	return common.Up(t.Rotation)
}

// Face rotates the transform toward target. A target at the current position
// leaves the rotation unchanged.
func (t *Transform) Face(target common.Vec2) {
	dir := target.Sub(t.Position())
	if dir.IsZero() {
		return
	}
	t.Rotation = common.RotationTo(dir)
}

var TransformComponent = NewComponent[Transform]()
