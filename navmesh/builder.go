// Package navmesh builds a walkable triangle mesh from a tile grid and answers
// shortest-path queries over it.
package navmesh

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/milk9111/angeldust/common"
)

var (
	// ErrNotBaked is the panic value of a query issued before Bake.
	ErrNotBaked = errors.New("navmesh: query before bake")
	// ErrBaked is the panic value of an insert or a second Bake issued after Bake.
	ErrBaked = errors.New("navmesh: insert after bake")
	// ErrInvalidMesh wraps the reason Bake rejected its input.
	ErrInvalidMesh = errors.New("navmesh: invalid mesh")
)

// DefaultMaxSnapDistance is how far, in world units, a query endpoint may lie
// from the mesh and still be snapped onto it.
const DefaultMaxSnapDistance = 2 * common.TileSize

// Triangle references three vertices by index.
type Triangle struct {
	A, B, C uint32
}

// Builder accumulates vertices and triangles during level load. After Bake it
// is read-only and serves FindPath until Clear.
type Builder struct {
	// MaxSnapDistance bounds the snap of query endpoints onto the mesh.
	MaxSnapDistance float64

	vertices  []common.Vec2
	triangles []Triangle
	mesh      *Mesh
}

func NewBuilder() *Builder {
	return &Builder{MaxSnapDistance: DefaultMaxSnapDistance}
}

// InsertVertex returns the index of p, adding it only if no vertex with the
// exact same coordinates exists.
func (b *Builder) InsertVertex(p common.Vec2) uint32 {
	if b.mesh != nil {
		panic(ErrBaked)
	}
	for i, v := range b.vertices {
		if v == p {
			return uint32(i)
		}
	}
	b.vertices = append(b.vertices, p)
	return uint32(len(b.vertices) - 1)
}

func (b *Builder) InsertTriangle(p1, p2, p3 common.Vec2) {
	if b.mesh != nil {
		panic(ErrBaked)
	}
	b.triangles = append(b.triangles, Triangle{
		A: b.InsertVertex(p1),
		B: b.InsertVertex(p2),
		C: b.InsertVertex(p3),
	})
}

// InsertRect registers the quad p1..p4 as the triangles (p1,p2,p3) and
// (p1,p4,p3), which share the p1-p3 diagonal.
func (b *Builder) InsertRect(p1, p2, p3, p4 common.Vec2) {
	b.InsertTriangle(p1, p2, p3)
	b.InsertTriangle(p1, p4, p3)
}

// Vertices returns a copy of the deduplicated vertex list.
func (b *Builder) Vertices() []common.Vec2 {
	out := make([]common.Vec2, len(b.vertices))
	copy(out, b.vertices)
	return out
}

// Triangles returns a copy of the triangle list.
func (b *Builder) Triangles() []Triangle {
	out := make([]Triangle, len(b.triangles))
	copy(out, b.triangles)
	return out
}

// Bake builds the searchable mesh. It panics if the accumulated geometry is
// invalid, since that can only come from a broken level loader, and with
// ErrBaked when called twice. Clear resets the builder for another level.
func (b *Builder) Bake() {
	if b.mesh != nil {
		panic(ErrBaked)
	}
	mesh, err := newMesh(b.vertices, b.triangles)
	if err != nil {
		panic(err)
	}
	b.mesh = mesh
	slog.Debug("navmesh baked", "vertices", len(b.vertices), "triangles", len(b.triangles), "links", mesh.linkCount())
}

func (b *Builder) Baked() bool {
	return b.mesh != nil
}

// Mesh returns the baked mesh, or nil before Bake.
func (b *Builder) Mesh() *Mesh {
	return b.mesh
}

// Clear discards all geometry and the baked mesh.
func (b *Builder) Clear() {
	b.vertices = nil
	b.triangles = nil
	b.mesh = nil
}

// FindPath returns waypoints from start to goal, both snapped onto the mesh.
// ok is false when either endpoint is off the mesh or the two are not
// connected. Calling it before Bake panics with ErrNotBaked.
func (b *Builder) FindPath(start, goal common.Vec2) ([]common.Vec2, bool) {
	if b.mesh == nil {
		panic(ErrNotBaked)
	}
	return b.mesh.FindPath(start, goal, b.MaxSnapDistance)
}

func invalidf(format string, args ...any) error {
	return fmt.Errorf("%w: "+format, append([]any{ErrInvalidMesh}, args...)...)
}
