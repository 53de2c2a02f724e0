package navmesh

import (
	"container/heap"
	"math"

	"github.com/milk9111/angeldust/common"
)

// FindPath searches the mesh for a path from start to goal. Endpoints farther
// than maxSnap from the mesh make the query fail; a non-positive maxSnap
// disables the limit.
func (m *Mesh) FindPath(start, goal common.Vec2, maxSnap float64) ([]common.Vec2, bool) {
	if m == nil || len(m.tris) == 0 {
		return nil, false
	}
	startTri, startPoint, startDist := m.snap(start)
	goalTri, goalPoint, goalDist := m.snap(goal)
	if maxSnap > 0 && (startDist > maxSnap || goalDist > maxSnap) {
		return nil, false
	}

	corridor, ok := m.search(startTri, startPoint, goalTri, goalPoint)
	if !ok {
		return nil, false
	}
	return stringPull(m.portals(corridor, startPoint, goalPoint)), true
}

type step struct {
	from int
	via  link
}

// search runs A* over the triangle graph. Each triangle is entered at the
// midpoint of the portal used to reach it and edges are weighted by the
// distance between consecutive entry points.
func (m *Mesh) search(startTri int, startPoint common.Vec2, goalTri int, goalPoint common.Vec2) ([]step, bool) {
	n := len(m.tris)
	gScore := make([]float64, n)
	for i := range gScore {
		gScore[i] = math.Inf(1)
	}
	entry := make([]common.Vec2, n)
	cameFrom := make([]step, n)
	for i := range cameFrom {
		cameFrom[i].from = -1
	}
	closed := make([]bool, n)

	open := &openSet{}
	heap.Init(open)
	gScore[startTri] = 0
	entry[startTri] = startPoint
	heap.Push(open, &openItem{tri: startTri, f: startPoint.Dist(goalPoint)})

	for open.Len() > 0 {
		current := heap.Pop(open).(*openItem)
		cur := current.tri
		if closed[cur] {
			continue
		}
		closed[cur] = true

		if cur == goalTri {
			return reconstruct(cameFrom, startTri, goalTri), true
		}

		for _, l := range m.neighbours[cur] {
			if closed[l.to] {
				continue
			}
			tentativeG := gScore[cur] + entry[cur].Dist(l.mid)
			if tentativeG < gScore[l.to] {
				gScore[l.to] = tentativeG
				entry[l.to] = l.mid
				cameFrom[l.to] = step{from: cur, via: l}
				heap.Push(open, &openItem{tri: l.to, g: tentativeG, f: tentativeG + l.mid.Dist(goalPoint)})
			}
		}
	}
	return nil, false
}

func reconstruct(cameFrom []step, startTri, goalTri int) []step {
	var out []step
	for cur := goalTri; cur != startTri; cur = cameFrom[cur].from {
		out = append(out, cameFrom[cur])
	}
	for i, j := 0, len(out)-1; i < j; i, j = i+1, j-1 {
		out[i], out[j] = out[j], out[i]
	}
	return out
}

// portals lists the corridor's crossing segments as (left, right) pairs seen
// in the direction of travel, bracketed by the degenerate start and goal portals.
func (m *Mesh) portals(corridor []step, start, goal common.Vec2) [][2]common.Vec2 {
	out := make([][2]common.Vec2, 0, len(corridor)+2)
	out = append(out, [2]common.Vec2{start, start})
	for _, s := range corridor {
		a, b := s.via.a, s.via.b
		c := m.centroids[s.from]
		if b.Sub(a).Cross(c.Sub(a)) < 0 {
			out = append(out, [2]common.Vec2{a, b})
		} else {
			out = append(out, [2]common.Vec2{b, a})
		}
	}
	out = append(out, [2]common.Vec2{goal, goal})
	return out
}

// stringPull shortens a portal corridor into the taut path through it.
func stringPull(portals [][2]common.Vec2) []common.Vec2 {
	apex, left, right := portals[0][0], portals[0][0], portals[0][1]
	apexIdx, leftIdx, rightIdx := 0, 0, 0
	path := []common.Vec2{apex}

	for i := 1; i < len(portals); i++ {
		l, r := portals[i][0], portals[i][1]

		if triarea2(apex, right, r) <= 0 {
			if near(apex, right) || triarea2(apex, left, r) > 0 {
				right, rightIdx = r, i
			} else {
				path = appendPoint(path, left)
				apex, apexIdx = left, leftIdx
				left, right = apex, apex
				leftIdx, rightIdx = apexIdx, apexIdx
				i = apexIdx
				continue
			}
		}

		if triarea2(apex, left, l) >= 0 {
			if near(apex, left) || triarea2(apex, right, l) < 0 {
				left, leftIdx = l, i
			} else {
				path = appendPoint(path, right)
				apex, apexIdx = right, rightIdx
				left, right = apex, apex
				leftIdx, rightIdx = apexIdx, apexIdx
				i = apexIdx
				continue
			}
		}
	}

	return appendPoint(path, portals[len(portals)-1][0])
}

// triarea2 is twice the signed area of abc, positive when c is to the right
// of a->b.
func triarea2(a, b, c common.Vec2) float64 {
	return -b.Sub(a).Cross(c.Sub(a))
}

func near(a, b common.Vec2) bool {
	return a.Sub(b).LenSq() < geomEpsilon*geomEpsilon
}

func appendPoint(path []common.Vec2, p common.Vec2) []common.Vec2 {
	if len(path) > 0 && near(path[len(path)-1], p) {
		return path
	}
	return append(path, p)
}

type openItem struct {
	tri   int
	f     float64
	g     float64
	index int
}

type openSet []*openItem

func (o openSet) Len() int { return len(o) }
func (o openSet) Less(i, j int) bool {
	if o[i].f != o[j].f {
		return o[i].f < o[j].f
	}
	return o[i].tri < o[j].tri
}
func (o openSet) Swap(i, j int) {
	o[i], o[j] = o[j], o[i]
	o[i].index = i
	o[j].index = j
}
func (o *openSet) Push(x any) {
	item := x.(*openItem)
	item.index = len(*o)
	*o = append(*o, item)
}
func (o *openSet) Pop() any {
	old := *o
	n := len(old)
	item := old[n-1]
	old[n-1] = nil
	*o = old[:n-1]
	return item
}
