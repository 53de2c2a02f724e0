package entity

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/milk9111/angeldust/common"
	"github.com/milk9111/angeldust/ecs"
	"github.com/milk9111/angeldust/ecs/component"
	"github.com/milk9111/angeldust/levels"
	"github.com/milk9111/angeldust/navmesh"
	"github.com/milk9111/angeldust/prefabs"
)

// WallBox is a merged block of wall tiles in world units.
type WallBox struct {
	MinX, MinY, MaxX, MaxY float64
}

// Level is what LoadLevelToWorld spawned.
type Level struct {
	Name    string
	State   ecs.Entity
	Player  ecs.Entity
	Camera  ecs.Entity
	Enemies []ecs.Entity
	Pickups []ecs.Entity
	Walls   []WallBox
	NavMesh *navmesh.Builder
}

// TileCenter returns the world position of tile (x, y).
func TileCenter(t navmesh.TilePos) common.Vec2 {
	return common.V(float64(t.X)*common.TileSize, float64(t.Y)*common.TileSize)
}

// LoadLevelToWorld registers the wall colliders of lvl, bakes its navigation
// mesh and spawns every marker.
func LoadLevelToWorld(w *ecs.World, pw *ecs.PhysicsWorld, lvl *levels.Level, tuning *prefabs.Tuning) (*Level, error) {
	if w == nil || pw == nil || lvl == nil || tuning == nil {
		return nil, fmt.Errorf("level: nil argument")
	}

	out := &Level{Name: lvl.Name}

	out.Walls = mergeWallTiles(lvl, lvl.Width, lvl.Height)
	for _, b := range out.Walls {
		pw.AddStaticBox(b.MinX, b.MinY, b.MaxX, b.MaxY)
	}

	nav := navmesh.NewBuilder()
	if tuning.Game.MaxSnapDistance > 0 {
		nav.MaxSnapDistance = tuning.Game.MaxSnapDistance * common.TileSize
	}
	if n := navmesh.BuildFromTiles(nav, lvl, common.TileSize); n == 0 {
		return nil, fmt.Errorf("level %s: %w: no floor tiles", lvl.Name, levels.ErrInvalidLevel)
	}
	nav.Bake()
	out.NavMesh = nav

	state := ecs.CreateEntity(w)
	half := common.TileSize / 2
	if err := ecs.Add(w, state, component.LevelBoundsComponent.Kind(), &component.LevelBounds{
		MinX: -half,
		MinY: -half,
		MaxX: float64(lvl.Width)*common.TileSize - half,
		MaxY: float64(lvl.Height)*common.TileSize - half,
	}); err != nil {
		return nil, fmt.Errorf("level: add bounds: %w", err)
	}
	if err := ecs.Add(w, state, component.StatsComponent.Kind(), &component.Stats{}); err != nil {
		return nil, fmt.Errorf("level: add stats: %w", err)
	}
	out.State = state

	camera, err := NewCamera(w, tuning.Game.Viewport)
	if err != nil {
		return nil, err
	}
	out.Camera = camera

	for _, marker := range lvl.Entities {
		pos := TileCenter(lvl.Tile(marker.X, marker.Y))
		switch strings.ToLower(marker.Type) {
		case levels.EntityPlayer:
			e, err := NewPlayerAt(w, pw, pos, tuning.Player)
			if err != nil {
				return nil, err
			}
			out.Player = e
		case levels.EntityEnemy:
			props, err := prefabs.DecodeProps[prefabs.EnemyProps](marker.Props)
			if err != nil {
				return nil, fmt.Errorf("level %s: enemy at (%d,%d): %w", lvl.Name, marker.X, marker.Y, err)
			}
			e, err := NewEnemyAt(w, pw, pos, props.Apply(tuning.Enemy))
			if err != nil {
				return nil, err
			}
			out.Enemies = append(out.Enemies, e)
		case levels.EntityPickup:
			props, err := prefabs.DecodeProps[prefabs.PickupProps](marker.Props)
			if err != nil {
				return nil, fmt.Errorf("level %s: pickup at (%d,%d): %w", lvl.Name, marker.X, marker.Y, err)
			}
			kind, err := ParseEffectKind(props.Kind)
			if err != nil {
				return nil, fmt.Errorf("level %s: pickup at (%d,%d): %w", lvl.Name, marker.X, marker.Y, err)
			}
			e, err := NewPickupAt(w, pw, pos, kind, tuning.Game.Pickup)
			if err != nil {
				return nil, err
			}
			out.Pickups = append(out.Pickups, e)
		default:
			slog.Warn("level: ignoring unknown marker", "level", lvl.Name, "type", marker.Type)
		}
	}

	if stats, ok := ecs.Get(w, state, component.StatsComponent.Kind()); ok {
		stats.EnemiesRemaining = len(out.Enemies)
	}

	slog.Debug("level loaded",
		"level", lvl.Name,
		"walls", len(out.Walls),
		"triangles", len(nav.Triangles()),
		"enemies", len(out.Enemies),
		"pickups", len(out.Pickups),
	)

	return out, nil
}

type wallGrid interface {
	IsWall(x, y int) bool
}

// mergeWallTiles greedily merges wall tiles into rectangles: grow right along
// the row, then up while every tile of the next row is a free wall.
func mergeWallTiles(grid wallGrid, width, height int) []WallBox {
	if width <= 0 || height <= 0 {
		return nil
	}
	visited := make([]bool, width*height)
	index := func(x, y int) int { return y*width + x }
	free := func(x, y int) bool { return !visited[index(x, y)] && grid.IsWall(x, y) }

	half := common.TileSize / 2
	var out []WallBox
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			if !free(x, y) {
				continue
			}

			maxW := 0
			for x2 := x; x2 < width && free(x2, y); x2++ {
				maxW++
			}

			maxH := 1
			for y2 := y + 1; y2 < height; y2++ {
				rowOK := true
				for x2 := x; x2 < x+maxW; x2++ {
					if !free(x2, y2) {
						rowOK = false
						break
					}
				}
				if !rowOK {
					break
				}
				maxH++
			}

			for yy := y; yy < y+maxH; yy++ {
				for xx := x; xx < x+maxW; xx++ {
					visited[index(xx, yy)] = true
				}
			}

			out = append(out, WallBox{
				MinX: float64(x)*common.TileSize - half,
				MinY: float64(y)*common.TileSize - half,
				MaxX: float64(x+maxW)*common.TileSize - half,
				MaxY: float64(y+maxH)*common.TileSize - half,
			})
		}
	}
	return out
}
