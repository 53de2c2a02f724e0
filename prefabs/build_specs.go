package prefabs

import "gopkg.in/yaml.v3"

// DecodeProps decodes the free-form props of a level marker into a typed spec
// by round-tripping through YAML, so marker props use the same keys as the
// prefab files.
func DecodeProps[T any](raw map[string]any) (T, error) {
	var zero T
	if len(raw) == 0 {
		return zero, nil
	}
	b, err := yaml.Marshal(raw)
	if err != nil {
		return zero, err
	}
	var out T
	if err := yaml.Unmarshal(b, &out); err != nil {
		return zero, err
	}
	return out, nil
}

// PickupProps are the marker props of a power-up pickup.
type PickupProps struct {
	Kind string `yaml:"kind"`
}

// EnemyProps override the enemy prefab for a single marker. Nil fields keep
// the prefab value.
type EnemyProps struct {
	MoveSpeed     *float64 `yaml:"move_speed"`
	Health        *float64 `yaml:"health"`
	SightRange    *float64 `yaml:"sight_range"`
	HearingRange  *float64 `yaml:"hearing_range"`
	ReactionDelay *float64 `yaml:"reaction_delay"`
}

// Apply returns a copy of spec with the overrides applied.
func (p EnemyProps) Apply(spec EnemySpec) EnemySpec {
	if p.MoveSpeed != nil {
		spec.MoveSpeed = *p.MoveSpeed
	}
	if p.Health != nil {
		spec.Health = *p.Health
	}
	if p.SightRange != nil {
		spec.SightRange = *p.SightRange
	}
	if p.HearingRange != nil {
		spec.HearingRange = *p.HearingRange
	}
	if p.ReactionDelay != nil {
		spec.ReactionDelay = *p.ReactionDelay
	}
	return spec
}
