package common

import "math"

// TileSize is the edge length of one level tile in world units.
const TileSize = 50.0

const epsilon = 1e-9

func Lerp(a, b, t float64) float64 {
	return a + t*(b-a)
}

// Vec2 is a 2D world-space vector. Y points up.
type Vec2 struct {
	X float64
	Y float64
}

func V(x, y float64) Vec2 {
	return Vec2{X: x, Y: y}
}

func (v Vec2) Add(o Vec2) Vec2 {
	return Vec2{X: v.X + o.X, Y: v.Y + o.Y}
}

func (v Vec2) Sub(o Vec2) Vec2 {
	return Vec2{X: v.X - o.X, Y: v.Y - o.Y}
}

func (v Vec2) Scale(s float64) Vec2 {
	return Vec2{X: v.X * s, Y: v.Y * s}
}

func (v Vec2) Dot(o Vec2) float64 {
	return v.X*o.X + v.Y*o.Y
}

// Cross returns the z component of the 3D cross product.
func (v Vec2) Cross(o Vec2) float64 {
	return v.X*o.Y - v.Y*o.X
}

func (v Vec2) Len() float64 {
	return math.Hypot(v.X, v.Y)
}

func (v Vec2) LenSq() float64 {
	return v.X*v.X + v.Y*v.Y
}

func (v Vec2) Dist(o Vec2) float64 {
	return v.Sub(o).Len()
}

// NormalizeOrZero returns the unit vector, or the zero vector when v has no length.
func (v Vec2) NormalizeOrZero() Vec2 {
	l := v.Len()
	if l < epsilon {
		return Vec2{}
	}
	return Vec2{X: v.X / l, Y: v.Y / l}
}

func (v Vec2) IsZero() bool {
	return math.Abs(v.X) < epsilon && math.Abs(v.Y) < epsilon
}

// Up returns the facing vector for a rotation measured counter-clockwise from +Y.
func Up(rotation float64) Vec2 {
	return Vec2{X: -math.Sin(rotation), Y: math.Cos(rotation)}
}

// RotationTo returns the rotation whose Up vector points along dir.
func RotationTo(dir Vec2) float64 {
	if dir.IsZero() {
		return 0
	}
	return math.Atan2(-dir.X, dir.Y)
}

// ClosestPointOnSegment projects p onto segment ab.
func ClosestPointOnSegment(p, a, b Vec2) Vec2 {
	ab := b.Sub(a)
	l := ab.LenSq()
	if l < epsilon {
		return a
	}
	t := p.Sub(a).Dot(ab) / l
	t = math.Max(0, math.Min(1, t))
	return a.Add(ab.Scale(t))
}

// ClosestPointOnTriangle returns the point of triangle abc closest to p.
func ClosestPointOnTriangle(p, a, b, c Vec2) Vec2 {
	if PointInTriangle(p, a, b, c) {
		return p
	}
	best := ClosestPointOnSegment(p, a, b)
	bestD := best.Sub(p).LenSq()
	for _, cand := range []Vec2{ClosestPointOnSegment(p, b, c), ClosestPointOnSegment(p, c, a)} {
		if d := cand.Sub(p).LenSq(); d < bestD {
			best, bestD = cand, d
		}
	}
	return best
}

// PointInTriangle reports whether p lies inside or on the boundary of abc,
// regardless of winding.
func PointInTriangle(p, a, b, c Vec2) bool {
	d1 := b.Sub(a).Cross(p.Sub(a))
	d2 := c.Sub(b).Cross(p.Sub(b))
	d3 := a.Sub(c).Cross(p.Sub(c))
	hasNeg := d1 < -epsilon || d2 < -epsilon || d3 < -epsilon
	hasPos := d1 > epsilon || d2 > epsilon || d3 > epsilon
	return !(hasNeg && hasPos)
}
