package entity

import (
	"fmt"

	"github.com/milk9111/angeldust/common"
	"github.com/milk9111/angeldust/ecs"
	"github.com/milk9111/angeldust/ecs/component"
	"github.com/milk9111/angeldust/prefabs"
)

// NewBullet spawns a projectile at pos heading along rotation. Bullets are not
// registered with the physics world; they sweep it as they move.
func NewBullet(w *ecs.World, pos common.Vec2, rotation float64, owner ecs.Entity, weapon component.Shooting, size prefabs.BulletSpec) (ecs.Entity, error) {
	entity := ecs.CreateEntity(w)

	if err := ecs.Add(w, entity, component.TransformComponent.Kind(), &component.Transform{X: pos.X, Y: pos.Y, Rotation: rotation}); err != nil {
		return 0, fmt.Errorf("bullet: add transform: %w", err)
	}

	if err := ecs.Add(w, entity, component.BulletComponent.Kind(), &component.Bullet{
		Speed:       weapon.BulletSpeed,
		Owner:       uint64(owner),
		Width:       size.Width,
		Height:      size.Height,
		Damage:      weapon.Damage,
		MaxDistance: weapon.MaxDistance,
	}); err != nil {
		return 0, fmt.Errorf("bullet: add bullet: %w", err)
	}

	return entity, nil
}
