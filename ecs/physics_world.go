package ecs

import (
	"math"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/angeldust/common"
)

// PhysicsWorld owns the Chipmunk space used for every geometric query of the
// simulation: sight casts, bullet sweeps and overlap tests. Actor bodies are
// kinematic; the simulation moves them and the space only answers queries.
type PhysicsWorld struct {
	space *cp.Space

	shapeToEntity map[*cp.Shape]Entity
	actors        map[Entity]*actorBody
	statics       []*cp.Shape
}

type actorBody struct {
	body   *cp.Body
	shape  *cp.Shape
	halfW  float64
	halfH  float64
	sensor bool
}

// Hit describes the first or an overlapping collider found by a query.
// Entity is zero for static level geometry.
type Hit struct {
	Entity Entity
	Static bool
	Point  common.Vec2
	Normal common.Vec2
	// Alpha is the time of impact as a fraction of the cast length.
	Alpha float64
}

// QueryFilter narrows a query. Sensors are skipped when ExcludeSensors is set.
type QueryFilter struct {
	Exclude        []Entity
	ExcludeSensors bool
}

func (f QueryFilter) excludes(e Entity) bool {
	for _, ex := range f.Exclude {
		if ex == e {
			return true
		}
	}
	return false
}

// NewPhysicsWorld creates an empty collision world.
func NewPhysicsWorld() *PhysicsWorld {
	space := cp.NewSpace()
	space.Iterations = 20
	return &PhysicsWorld{
		space:         space,
		shapeToEntity: make(map[*cp.Shape]Entity),
		actors:        make(map[Entity]*actorBody),
	}
}

// Space returns the underlying Chipmunk space.
func (pw *PhysicsWorld) Space() *cp.Space {
	if pw == nil {
		return nil
	}
	return pw.space
}

// AddStaticBox adds axis-aligned level geometry.
func (pw *PhysicsWorld) AddStaticBox(minX, minY, maxX, maxY float64) {
	if pw == nil || pw.space == nil || maxX <= minX || maxY <= minY {
		return
	}
	bb := cp.BB{L: minX, B: minY, R: maxX, T: maxY}
	shape := cp.NewBox2(pw.space.StaticBody, bb, 0)
	shape.SetFriction(0.8)
	pw.space.AddShape(shape)
	pw.statics = append(pw.statics, shape)
}

// StaticCount returns the number of static shapes.
func (pw *PhysicsWorld) StaticCount() int {
	if pw == nil {
		return 0
	}
	return len(pw.statics)
}

// AddActor registers a box collider of the given size centred on pos.
// Re-adding an entity replaces its previous collider.
func (pw *PhysicsWorld) AddActor(e Entity, pos common.Vec2, width, height float64, sensor bool) {
	if pw == nil || pw.space == nil || !e.Valid() || width <= 0 || height <= 0 {
		return
	}
	pw.RemoveActor(e)

	body := cp.NewKinematicBody()
	body.SetPosition(cp.Vector{X: pos.X, Y: pos.Y})
	pw.space.AddBody(body)

	shape := cp.NewBox(body, width, height, 0)
	shape.SetSensor(sensor)
	pw.space.AddShape(shape)

	pw.shapeToEntity[shape] = e
	pw.actors[e] = &actorBody{body: body, shape: shape, halfW: width / 2, halfH: height / 2, sensor: sensor}
}

// RemoveActor drops the collider of e, if any.
func (pw *PhysicsWorld) RemoveActor(e Entity) {
	if pw == nil || pw.space == nil {
		return
	}
	a, ok := pw.actors[e]
	if !ok {
		return
	}
	pw.space.RemoveShape(a.shape)
	pw.space.RemoveBody(a.body)
	delete(pw.shapeToEntity, a.shape)
	delete(pw.actors, e)
}

// HasActor reports whether e owns a collider.
func (pw *PhysicsWorld) HasActor(e Entity) bool {
	if pw == nil {
		return false
	}
	_, ok := pw.actors[e]
	return ok
}

// SetPosition moves the collider of e so later queries see it at pos.
func (pw *PhysicsWorld) SetPosition(e Entity, pos common.Vec2) {
	if pw == nil || pw.space == nil {
		return
	}
	a, ok := pw.actors[e]
	if !ok {
		return
	}
	cur := a.body.Position()
	if cur.X == pos.X && cur.Y == pos.Y {
		return
	}
	a.body.SetPosition(cp.Vector{X: pos.X, Y: pos.Y})
	// The space is never stepped, so the shape's bounds only refresh when it
	// is re-inserted into the spatial index.
	pw.space.RemoveShape(a.shape)
	pw.space.AddShape(a.shape)
}

// Position returns the collider centre of e.
func (pw *PhysicsWorld) Position(e Entity) (common.Vec2, bool) {
	if pw == nil {
		return common.Vec2{}, false
	}
	a, ok := pw.actors[e]
	if !ok {
		return common.Vec2{}, false
	}
	p := a.body.Position()
	return common.Vec2{X: p.X, Y: p.Y}, true
}

// CastFirst sweeps a circle of the given radius from origin along dir for at
// most maxDist and returns the closest collider it touches. dir need not be
// normalised; a zero direction never hits.
func (pw *PhysicsWorld) CastFirst(origin, dir common.Vec2, maxDist, radius float64, filter QueryFilter) (Hit, bool) {
	if pw == nil || pw.space == nil || maxDist <= 0 {
		return Hit{}, false
	}
	n := dir.NormalizeOrZero()
	if n.IsZero() {
		return Hit{}, false
	}
	end := origin.Add(n.Scale(maxDist))
	return pw.Sweep(origin, end, radius, filter)
}

// Sweep returns the first collider touched by a circle of the given radius
// moving from start to end.
func (pw *PhysicsWorld) Sweep(start, end common.Vec2, radius float64, filter QueryFilter) (Hit, bool) {
	if pw == nil || pw.space == nil {
		return Hit{}, false
	}
	if start == end {
		return Hit{}, false
	}

	best := Hit{Alpha: math.Inf(1)}
	found := false
	a := cp.Vector{X: start.X, Y: start.Y}
	b := cp.Vector{X: end.X, Y: end.Y}
	pw.space.SegmentQuery(a, b, radius, cp.SHAPE_FILTER_ALL, func(shape *cp.Shape, point, normal cp.Vector, alpha float64, _ interface{}) {
		hit, ok := pw.classify(shape, filter)
		if !ok || alpha >= best.Alpha {
			return
		}
		hit.Point = common.Vec2{X: point.X, Y: point.Y}
		hit.Normal = common.Vec2{X: normal.X, Y: normal.Y}
		hit.Alpha = alpha
		best = hit
		found = true
	}, nil)

	if !found {
		return Hit{}, false
	}
	return best, true
}

// Overlaps returns every collider whose box strictly intersects the box of the
// given half extents centred on center. Touching edges do not count.
func (pw *PhysicsWorld) Overlaps(center common.Vec2, halfW, halfH float64, filter QueryFilter) []Hit {
	if pw == nil || pw.space == nil {
		return nil
	}
	query := cp.BB{L: center.X - halfW, B: center.Y - halfH, R: center.X + halfW, T: center.Y + halfH}

	var out []Hit
	pw.space.BBQuery(query, cp.SHAPE_FILTER_ALL, func(shape *cp.Shape, _ interface{}) {
		hit, ok := pw.classify(shape, filter)
		if !ok {
			return
		}
		bb := shape.BB()
		if !(bb.L < query.R && bb.R > query.L && bb.B < query.T && bb.T > query.B) {
			return
		}
		hit.Point = common.Vec2{X: (bb.L + bb.R) / 2, Y: (bb.B + bb.T) / 2}
		out = append(out, hit)
	}, nil)
	return out
}

func (pw *PhysicsWorld) classify(shape *cp.Shape, filter QueryFilter) (Hit, bool) {
	e, isActor := pw.shapeToEntity[shape]
	if !isActor {
		return Hit{Static: true}, true
	}
	if filter.excludes(e) {
		return Hit{}, false
	}
	if filter.ExcludeSensors && pw.actors[e] != nil && pw.actors[e].sensor {
		return Hit{}, false
	}
	return Hit{Entity: e}, true
}

// Close drops every body and shape. Queries after Close find nothing.
func (pw *PhysicsWorld) Close() {
	if pw == nil {
		return
	}
	pw.space = nil
	pw.statics = nil
	pw.shapeToEntity = make(map[*cp.Shape]Entity)
	pw.actors = make(map[Entity]*actorBody)
}
