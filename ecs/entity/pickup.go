package entity

import (
	"fmt"
	"strings"

	"github.com/milk9111/angeldust/common"
	"github.com/milk9111/angeldust/ecs"
	"github.com/milk9111/angeldust/ecs/component"
	"github.com/milk9111/angeldust/prefabs"
)

// ParseEffectKind maps a marker's kind prop to an effect.
func ParseEffectKind(s string) (component.EffectKind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "small":
		return component.EffectSmallPowerup, nil
	case "big":
		return component.EffectBigPowerup, nil
	default:
		return component.EffectNone, fmt.Errorf("unknown pickup kind %q", s)
	}
}

// NewPickupAt spawns a power-up lying on the floor. Its collider is a sensor so
// it never blocks sight or bullets.
func NewPickupAt(w *ecs.World, pw *ecs.PhysicsWorld, pos common.Vec2, kind component.EffectKind, spec prefabs.PickupSpec) (ecs.Entity, error) {
	entity := ecs.CreateEntity(w)

	if err := ecs.Add(w, entity, component.TransformComponent.Kind(), &component.Transform{X: pos.X, Y: pos.Y}); err != nil {
		return 0, fmt.Errorf("pickup: add transform: %w", err)
	}

	if err := ecs.Add(w, entity, component.PickupComponent.Kind(), &component.Pickup{
		Kind:            kind,
		CollisionWidth:  spec.Collider.Width,
		CollisionHeight: spec.Collider.Height,
	}); err != nil {
		return 0, fmt.Errorf("pickup: add pickup: %w", err)
	}

	col := spec.Collider
	col.Sensor = true
	if err := addCollider(w, pw, entity, pos, col); err != nil {
		return 0, fmt.Errorf("pickup: %w", err)
	}

	return entity, nil
}
