package navmesh

import (
	"math"
	"sort"

	"github.com/milk9111/angeldust/common"
)

const geomEpsilon = 1e-6

// link connects two triangles through the segment a-b of their common edge.
type link struct {
	to   int
	a, b common.Vec2
	mid  common.Vec2
}

// Mesh is the baked, read-only search structure.
type Mesh struct {
	tris       [][3]common.Vec2
	centroids  []common.Vec2
	neighbours [][]link
}

func newMesh(vertices []common.Vec2, triangles []Triangle) (*Mesh, error) {
	m := &Mesh{
		tris:       make([][3]common.Vec2, len(triangles)),
		centroids:  make([]common.Vec2, len(triangles)),
		neighbours: make([][]link, len(triangles)),
	}
	n := uint32(len(vertices))
	for i, t := range triangles {
		if t.A >= n || t.B >= n || t.C >= n {
			return nil, invalidf("triangle %d references a vertex out of range (%d vertices)", i, n)
		}
		a, b, c := vertices[t.A], vertices[t.B], vertices[t.C]
		if math.Abs(b.Sub(a).Cross(c.Sub(a))) < geomEpsilon {
			return nil, invalidf("triangle %d is degenerate", i)
		}
		m.tris[i] = [3]common.Vec2{a, b, c}
		m.centroids[i] = a.Add(b).Add(c).Scale(1.0 / 3)
	}

	m.connect(vertices, triangles)
	return m, nil
}

type edgeRef struct {
	tri  int
	a, b common.Vec2
}

type lineKey struct {
	vertical bool
	at       float64
}

type triPair struct {
	lo, hi int
}

// connect links triangles that share an edge by vertex indices, or whose
// axis-aligned edges lie on the same line and overlap. The latter joins tile
// quads whose sides meet in a T-junction.
func (m *Mesh) connect(vertices []common.Vec2, triangles []Triangle) {
	portals := make(map[triPair][2]common.Vec2)
	add := func(i, j int, a, b common.Vec2) {
		if i == j {
			return
		}
		key := triPair{lo: min(i, j), hi: max(i, j)}
		if cur, ok := portals[key]; ok && cur[0].Dist(cur[1]) >= a.Dist(b) {
			return
		}
		portals[key] = [2]common.Vec2{a, b}
	}

	shared := make(map[[2]uint32][]int)
	lines := make(map[lineKey][]edgeRef)
	for i, t := range triangles {
		idx := [3]uint32{t.A, t.B, t.C}
		for k := 0; k < 3; k++ {
			u, v := idx[k], idx[(k+1)%3]
			key := [2]uint32{min(u, v), max(u, v)}
			shared[key] = append(shared[key], i)

			a, b := m.tris[i][k], m.tris[i][(k+1)%3]
			switch {
			case a.X == b.X:
				lk := lineKey{vertical: true, at: a.X}
				lines[lk] = append(lines[lk], edgeRef{tri: i, a: a, b: b})
			case a.Y == b.Y:
				lk := lineKey{at: a.Y}
				lines[lk] = append(lines[lk], edgeRef{tri: i, a: a, b: b})
			}
		}
	}

	for key, tris := range shared {
		for x := 0; x < len(tris); x++ {
			for y := x + 1; y < len(tris); y++ {
				add(tris[x], tris[y], vertices[key[0]], vertices[key[1]])
			}
		}
	}

	for key, edges := range lines {
		for x := 0; x < len(edges); x++ {
			for y := x + 1; y < len(edges); y++ {
				e1, e2 := edges[x], edges[y]
				if e1.tri == e2.tri {
					continue
				}
				a, b, ok := overlap(key, e1, e2)
				if !ok || !m.opposite(e1.tri, e2.tri, key) {
					continue
				}
				add(e1.tri, e2.tri, a, b)
			}
		}
	}

	keys := make([]triPair, 0, len(portals))
	for k := range portals {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		if keys[i].lo != keys[j].lo {
			return keys[i].lo < keys[j].lo
		}
		return keys[i].hi < keys[j].hi
	})
	for _, k := range keys {
		p := portals[k]
		mid := p[0].Add(p[1]).Scale(0.5)
		m.neighbours[k.lo] = append(m.neighbours[k.lo], link{to: k.hi, a: p[0], b: p[1], mid: mid})
		m.neighbours[k.hi] = append(m.neighbours[k.hi], link{to: k.lo, a: p[0], b: p[1], mid: mid})
	}
}

// overlap returns the common part of two collinear axis-aligned edges when it
// has positive length.
func overlap(key lineKey, e1, e2 edgeRef) (common.Vec2, common.Vec2, bool) {
	coord := func(p common.Vec2) float64 {
		if key.vertical {
			return p.Y
		}
		return p.X
	}
	lo := math.Max(math.Min(coord(e1.a), coord(e1.b)), math.Min(coord(e2.a), coord(e2.b)))
	hi := math.Min(math.Max(coord(e1.a), coord(e1.b)), math.Max(coord(e2.a), coord(e2.b)))
	if hi-lo < geomEpsilon {
		return common.Vec2{}, common.Vec2{}, false
	}
	if key.vertical {
		return common.V(key.at, lo), common.V(key.at, hi), true
	}
	return common.V(lo, key.at), common.V(hi, key.at), true
}

// opposite reports whether two triangles lie on different sides of the line.
func (m *Mesh) opposite(i, j int, key lineKey) bool {
	side := func(c common.Vec2) float64 {
		if key.vertical {
			return c.X - key.at
		}
		return c.Y - key.at
	}
	return side(m.centroids[i])*side(m.centroids[j]) < 0
}

func (m *Mesh) linkCount() int {
	n := 0
	for _, l := range m.neighbours {
		n += len(l)
	}
	return n / 2
}

// TriangleCount returns the number of triangles in the mesh.
func (m *Mesh) TriangleCount() int {
	return len(m.tris)
}

// Triangle returns the corners of triangle i.
func (m *Mesh) Triangle(i int) [3]common.Vec2 {
	return m.tris[i]
}

// Neighbours returns the indices of the triangles adjacent to i in ascending order.
func (m *Mesh) Neighbours(i int) []int {
	out := make([]int, 0, len(m.neighbours[i]))
	for _, l := range m.neighbours[i] {
		out = append(out, l.to)
	}
	sort.Ints(out)
	return out
}

// snap returns the triangle closest to p and the closest point on it. Ties go
// to the lowest triangle index.
func (m *Mesh) snap(p common.Vec2) (int, common.Vec2, float64) {
	best := -1
	var bestPoint common.Vec2
	bestDist := math.Inf(1)
	for i, t := range m.tris {
		q := common.ClosestPointOnTriangle(p, t[0], t[1], t[2])
		d := q.Dist(p)
		if d < bestDist {
			best, bestPoint, bestDist = i, q, d
			if d == 0 {
				break
			}
		}
	}
	return best, bestPoint, bestDist
}
