package prefabs

import (
	"fmt"
	"image/color"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

func LoadSpec[T any](filename string) (T, error) {
	var zero T
	data, err := Load(filename)
	if err != nil {
		return zero, fmt.Errorf("prefabs: load %s: %w", filename, err)
	}

	var spec T
	if err := yaml.Unmarshal(data, &spec); err != nil {
		return zero, fmt.Errorf("prefabs: unmarshal %s: %w", filename, err)
	}

	return spec, nil
}

// Ranges and distances in the specs are in tiles; times are in seconds.

type ColliderSpec struct {
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
	Sensor bool    `yaml:"sensor"`
}

type WeaponSpec struct {
	Cooldown    float64 `yaml:"cooldown"`
	BulletSpeed float64 `yaml:"bullet_speed"`
	Damage      float64 `yaml:"damage"`
	Spread      float64 `yaml:"spread"`
	MeleeRange  float64 `yaml:"melee_range"`
	MaxDistance float64 `yaml:"max_distance"`
}

type InventorySpec struct {
	SmallPowerups int `yaml:"small_powerups"`
	BigPowerups   int `yaml:"big_powerups"`
}

type EffectSpec struct {
	SmallDuration float64 `yaml:"small_duration"`
	BigDuration   float64 `yaml:"big_duration"`
}

type PlayerSpec struct {
	Name      string        `yaml:"name"`
	MoveSpeed float64       `yaml:"move_speed"`
	Health    float64       `yaml:"health"`
	Collider  ColliderSpec  `yaml:"collider"`
	Weapon    WeaponSpec    `yaml:"weapon"`
	Inventory InventorySpec `yaml:"inventory"`
	Effects   EffectSpec    `yaml:"effects"`
}

func LoadPlayerSpec() (*PlayerSpec, error) {
	spec, err := LoadSpec[PlayerSpec]("player.yaml")
	if err != nil {
		return nil, err
	}
	return &spec, nil
}

type EnemySpec struct {
	Name          string       `yaml:"name"`
	MoveSpeed     float64      `yaml:"move_speed"`
	Health        float64      `yaml:"health"`
	SightRange    float64      `yaml:"sight_range"`
	HearingRange  float64      `yaml:"hearing_range"`
	ReactionDelay float64      `yaml:"reaction_delay"`
	Collider      ColliderSpec `yaml:"collider"`
	Weapon        WeaponSpec   `yaml:"weapon"`
}

func LoadEnemySpec() (*EnemySpec, error) {
	spec, err := LoadSpec[EnemySpec]("enemy.yaml")
	if err != nil {
		return nil, err
	}
	return &spec, nil
}

type BulletSpec struct {
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
}

type PickupSpec struct {
	Collider ColliderSpec `yaml:"collider"`
}

type ViewportSpec struct {
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
}

type GameSpec struct {
	Timescale        float64      `yaml:"timescale"`
	Seed             int64        `yaml:"seed"`
	MaxSnapDistance  float64      `yaml:"max_snap_distance"`
	ArrivalTolerance float64      `yaml:"arrival_tolerance"`
	Viewport         ViewportSpec `yaml:"viewport"`
	Bullet           BulletSpec   `yaml:"bullet"`
	Pickup           PickupSpec   `yaml:"pickup"`
}

func LoadGameSpec() (*GameSpec, error) {
	spec, err := LoadSpec[GameSpec]("game.yaml")
	if err != nil {
		return nil, err
	}
	return &spec, nil
}

type ViewerSpec struct {
	Scale  float64     `yaml:"scale"`
	Colors ColorScheme `yaml:"colors"`
}

type ColorScheme struct {
	Background  *YAMLColor `yaml:"background"`
	Wall        *YAMLColor `yaml:"wall"`
	NavMesh     *YAMLColor `yaml:"navmesh"`
	Player      *YAMLColor `yaml:"player"`
	EnemyIdle   *YAMLColor `yaml:"enemy_idle"`
	EnemyAlert  *YAMLColor `yaml:"enemy_alert"`
	EnemyCombat *YAMLColor `yaml:"enemy_combat"`
	Bullet      *YAMLColor `yaml:"bullet"`
	Path        *YAMLColor `yaml:"path"`
	Pickup      *YAMLColor `yaml:"pickup"`
}

func LoadViewerSpec() (*ViewerSpec, error) {
	spec, err := LoadSpec[ViewerSpec]("viewer.yaml")
	if err != nil {
		return nil, err
	}
	return &spec, nil
}

// Or returns the colour, or fallback when it was not set.
func (c *YAMLColor) Or(fallback color.Color) color.Color {
	if c == nil || c.Color == nil {
		return fallback
	}
	return c.Color
}

type YAMLColor struct {
	color.Color
}

func (c *YAMLColor) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind != yaml.ScalarNode {
		return fmt.Errorf("color must be a string")
	}

	s := strings.TrimPrefix(value.Value, "#")

	if len(s) != 6 && len(s) != 8 {
		return fmt.Errorf("invalid color format: %s", value.Value)
	}

	parse := func(start int) (uint8, error) {
		v, err := strconv.ParseUint(s[start:start+2], 16, 8)
		return uint8(v), err
	}

	r, err := parse(0)
	if err != nil {
		return err
	}
	g, err := parse(2)
	if err != nil {
		return err
	}
	b, err := parse(4)
	if err != nil {
		return err
	}

	a := uint8(255)
	if len(s) == 8 {
		a, err = parse(6)
		if err != nil {
			return err
		}
	}

	c.Color = color.NRGBA{R: r, G: g, B: b, A: a}
	return nil
}
