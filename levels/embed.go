package levels

import (
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/milk9111/angeldust/navmesh"
)

//go:embed *.json
var LevelsFS embed.FS

var ErrInvalidLevel = errors.New("levels: invalid level")

// Level is a tile map stored as JSON. Each layer is a flat row-major array of
// Width*Height tile ids where row 0 is the top of the map; zero is empty.
// A non-zero tile on a physics layer is a wall; a non-zero tile on any other
// layer with no wall over it is floor.
type Level struct {
	Name      string      `json:"name,omitempty"`
	Width     int         `json:"width"`
	Height    int         `json:"height"`
	Layers    [][]int     `json:"layers"`
	LayerMeta []LayerMeta `json:"layer_meta,omitempty"`
	Entities  []Entity    `json:"entities,omitempty"`
}

type LayerMeta struct {
	Physics bool `json:"physics"`
}

// Entity is a spawn marker in tile coordinates, using the same row-major
// convention as the layers.
type Entity struct {
	Type  string                 `json:"type"`
	X     int                    `json:"x"`
	Y     int                    `json:"y"`
	Props map[string]interface{} `json:"props,omitempty"`
}

const (
	EntityPlayer = "player"
	EntityEnemy  = "enemy"
	EntityPickup = "pickup"
)

// LoadLevel reads a level from levels/<name> on disk if present, else from
// the embedded files.
func LoadLevel(name string) (*Level, error) {
	clean := strings.TrimPrefix(filepath.ToSlash(name), "levels/")
	if !strings.HasSuffix(clean, ".json") {
		clean += ".json"
	}
	data, err := os.ReadFile(filepath.Join("levels", filepath.FromSlash(clean)))
	if err != nil {
		data, err = fs.ReadFile(LevelsFS, clean)
		if err != nil {
			return nil, fmt.Errorf("read level: %w", err)
		}
	}
	lvl, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("level %s: %w", clean, err)
	}
	if lvl.Name == "" {
		lvl.Name = strings.TrimSuffix(clean, ".json")
	}
	return lvl, nil
}

func Parse(data []byte) (*Level, error) {
	var lvl Level
	if err := json.Unmarshal(data, &lvl); err != nil {
		return nil, fmt.Errorf("unmarshal level: %w", err)
	}
	if err := lvl.Validate(); err != nil {
		return nil, err
	}
	return &lvl, nil
}

func (l *Level) Validate() error {
	if l.Width <= 0 || l.Height <= 0 {
		return fmt.Errorf("%w: size %dx%d", ErrInvalidLevel, l.Width, l.Height)
	}
	for i, layer := range l.Layers {
		if len(layer) != l.Width*l.Height {
			return fmt.Errorf("%w: layer %d has %d tiles, want %d", ErrInvalidLevel, i, len(layer), l.Width*l.Height)
		}
	}
	players := 0
	for _, e := range l.Entities {
		if e.X < 0 || e.Y < 0 || e.X >= l.Width || e.Y >= l.Height {
			return fmt.Errorf("%w: %s marker at (%d,%d) outside the map", ErrInvalidLevel, e.Type, e.X, e.Y)
		}
		if strings.EqualFold(e.Type, EntityPlayer) {
			players++
		}
	}
	if players != 1 {
		return fmt.Errorf("%w: %d player markers, want 1", ErrInvalidLevel, players)
	}
	return nil
}

// Tile converts a row-major cell to tile coordinates with y pointing up.
func (l *Level) Tile(col, row int) navmesh.TilePos {
	return navmesh.TilePos{X: col, Y: l.Height - 1 - row}
}

func (l *Level) cell(x, y int) (int, bool) {
	row := l.Height - 1 - y
	if x < 0 || x >= l.Width || row < 0 || row >= l.Height {
		return 0, false
	}
	return row*l.Width + x, true
}

func (l *Level) physics(layer int) bool {
	return layer < len(l.LayerMeta) && l.LayerMeta[layer].Physics
}

// IsWall reports whether tile (x, y) blocks movement. Everything outside the
// map is a wall.
func (l *Level) IsWall(x, y int) bool {
	idx, ok := l.cell(x, y)
	if !ok {
		return true
	}
	for i, layer := range l.Layers {
		if l.physics(i) && layer[idx] > 0 {
			return true
		}
	}
	return false
}

func (l *Level) isFloor(x, y int) bool {
	idx, ok := l.cell(x, y)
	if !ok || l.IsWall(x, y) {
		return false
	}
	for i, layer := range l.Layers {
		if !l.physics(i) && layer[idx] > 0 {
			return true
		}
	}
	return false
}

// FloorTiles lists walkable tiles from the bottom row up, left to right.
func (l *Level) FloorTiles() []navmesh.TilePos {
	var out []navmesh.TilePos
	for y := 0; y < l.Height; y++ {
		for x := 0; x < l.Width; x++ {
			if l.isFloor(x, y) {
				out = append(out, navmesh.TilePos{X: x, Y: y})
			}
		}
	}
	return out
}

// WallLayers returns the physics layers.
func (l *Level) WallLayers() [][]int {
	var out [][]int
	for i, layer := range l.Layers {
		if l.physics(i) {
			out = append(out, layer)
		}
	}
	return out
}

// Markers returns the spawn markers of the given type.
func (l *Level) Markers(kind string) []Entity {
	var out []Entity
	for _, e := range l.Entities {
		if strings.EqualFold(e.Type, kind) {
			out = append(out, e)
		}
	}
	return out
}

// FromRows builds a level from an ASCII map, top row first: '#' wall,
// '.' floor, 'P' player, 'E' enemy, 'S' small power-up pickup, 'B' big
// power-up pickup, anything else empty.
func FromRows(name string, rows []string) (*Level, error) {
	height := len(rows)
	width := 0
	for _, r := range rows {
		width = max(width, len(r))
	}
	floor := make([]int, width*height)
	walls := make([]int, width*height)
	lvl := &Level{
		Name:      name,
		Width:     width,
		Height:    height,
		Layers:    [][]int{floor, walls},
		LayerMeta: []LayerMeta{{Physics: false}, {Physics: true}},
	}
	for row, r := range rows {
		for col, ch := range r {
			idx := row*width + col
			switch ch {
			case '#':
				walls[idx] = 1
			case '.':
				floor[idx] = 1
			case 'P':
				floor[idx] = 1
				lvl.Entities = append(lvl.Entities, Entity{Type: EntityPlayer, X: col, Y: row})
			case 'E':
				floor[idx] = 1
				lvl.Entities = append(lvl.Entities, Entity{Type: EntityEnemy, X: col, Y: row})
			case 'S', 'B':
				floor[idx] = 1
				kind := "small"
				if ch == 'B' {
					kind = "big"
				}
				lvl.Entities = append(lvl.Entities, Entity{Type: EntityPickup, X: col, Y: row, Props: map[string]interface{}{"kind": kind}})
			}
		}
	}
	if err := lvl.Validate(); err != nil {
		return nil, err
	}
	return lvl, nil
}
