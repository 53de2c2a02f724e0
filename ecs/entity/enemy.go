package entity

import (
	"fmt"

	"github.com/milk9111/angeldust/common"
	"github.com/milk9111/angeldust/ecs"
	"github.com/milk9111/angeldust/ecs/component"
	"github.com/milk9111/angeldust/prefabs"
)

// NewEnemyAt spawns an idle enemy centred on pos and registers its collider.
// Ranges in EnemySpec are in tiles.
func NewEnemyAt(w *ecs.World, pw *ecs.PhysicsWorld, pos common.Vec2, spec prefabs.EnemySpec) (ecs.Entity, error) {
	entity := ecs.CreateEntity(w)

	if err := ecs.Add(w, entity, component.EnemyTagComponent.Kind(), &component.EnemyTag{}); err != nil {
		return 0, fmt.Errorf("enemy: add enemy tag: %w", err)
	}

	if err := ecs.Add(w, entity, component.EnemyAIComponent.Kind(), &component.EnemyAI{
		State:        component.AIIdle,
		Shock:        component.NewCountdown(spec.ReactionDelay),
		SightRange:   spec.SightRange * common.TileSize,
		HearingRange: spec.HearingRange * common.TileSize,
	}); err != nil {
		return 0, fmt.Errorf("enemy: add ai: %w", err)
	}

	if err := ecs.Add(w, entity, component.TransformComponent.Kind(), &component.Transform{X: pos.X, Y: pos.Y}); err != nil {
		return 0, fmt.Errorf("enemy: add transform: %w", err)
	}

	if err := ecs.Add(w, entity, component.MovementComponent.Kind(), &component.Movement{Speed: spec.MoveSpeed}); err != nil {
		return 0, fmt.Errorf("enemy: add movement: %w", err)
	}

	// The weapon starts cooling down, so a freshly spawned enemy cannot fire at once.
	weapon := shootingFromSpec(spec.Weapon)
	weapon.Cooldown = component.NewCountdown(spec.Weapon.Cooldown)
	if err := ecs.Add(w, entity, component.ShootingComponent.Kind(), &weapon); err != nil {
		return 0, fmt.Errorf("enemy: add shooting: %w", err)
	}

	health := component.NewHealth(spec.Health)
	if err := ecs.Add(w, entity, component.HealthComponent.Kind(), &health); err != nil {
		return 0, fmt.Errorf("enemy: add health: %w", err)
	}

	if err := addCollider(w, pw, entity, pos, spec.Collider); err != nil {
		return 0, fmt.Errorf("enemy: %w", err)
	}

	return entity, nil
}

func shootingFromSpec(spec prefabs.WeaponSpec) component.Shooting {
	return component.Shooting{
		Cooldown:    component.NewFinishedCountdown(spec.Cooldown),
		BulletSpeed: spec.BulletSpeed,
		Damage:      spec.Damage,
		Spread:      spec.Spread,
		MeleeRange:  spec.MeleeRange * common.TileSize,
		MaxDistance: spec.MaxDistance * common.TileSize,
	}
}

func addCollider(w *ecs.World, pw *ecs.PhysicsWorld, e ecs.Entity, pos common.Vec2, spec prefabs.ColliderSpec) error {
	col := component.Collider{Width: spec.Width, Height: spec.Height, Sensor: spec.Sensor}
	if col.Width <= 0 || col.Height <= 0 {
		return nil
	}
	if err := ecs.Add(w, e, component.ColliderComponent.Kind(), &col); err != nil {
		return fmt.Errorf("add collider: %w", err)
	}
	pw.AddActor(e, pos, col.Width, col.Height, col.Sensor)
	return nil
}
