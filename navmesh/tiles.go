package navmesh

import "github.com/milk9111/angeldust/common"

// TilePos is an integer tile coordinate. Tile (x, y) is centred at
// (x*tileSize, y*tileSize).
type TilePos struct {
	X int
	Y int
}

// TileSource classifies the level grid.
type TileSource interface {
	IsWall(x, y int) bool
	FloorTiles() []TilePos
}

// BuildFromTiles inserts one quad per floor tile. A side next to a wall is
// inset to a quarter tile from the centre so agents keep clear of it; an open
// side reaches the tile boundary and meets the neighbour's quad.
func BuildFromTiles(b *Builder, src TileSource, tileSize float64) int {
	n := 0
	for _, t := range src.FloorTiles() {
		b.InsertRect(TileQuad(src, t, tileSize))
		n++
	}
	return n
}

// TileQuad returns the quad corners of a floor tile in counter-clockwise order
// starting at the bottom-left corner.
func TileQuad(src TileSource, t TilePos, tileSize float64) (common.Vec2, common.Vec2, common.Vec2, common.Vec2) {
	cx := float64(t.X) * tileSize
	cy := float64(t.Y) * tileSize
	extent := func(wall bool) float64 {
		if wall {
			return tileSize / 4
		}
		return tileSize / 2
	}

	left := cx - extent(src.IsWall(t.X-1, t.Y))
	right := cx + extent(src.IsWall(t.X+1, t.Y))
	bottom := cy - extent(src.IsWall(t.X, t.Y-1))
	top := cy + extent(src.IsWall(t.X, t.Y+1))

	return common.V(left, bottom), common.V(right, bottom), common.V(right, top), common.V(left, top)
}
