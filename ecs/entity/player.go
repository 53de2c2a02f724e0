package entity

import (
	"fmt"

	"github.com/milk9111/angeldust/common"
	"github.com/milk9111/angeldust/ecs"
	"github.com/milk9111/angeldust/ecs/component"
	"github.com/milk9111/angeldust/prefabs"
)

func NewPlayerAt(w *ecs.World, pw *ecs.PhysicsWorld, pos common.Vec2, spec prefabs.PlayerSpec) (ecs.Entity, error) {
	entity := ecs.CreateEntity(w)

	if err := ecs.Add(w, entity, component.PlayerTagComponent.Kind(), &component.PlayerTag{}); err != nil {
		return 0, fmt.Errorf("player: add player tag: %w", err)
	}

	if err := ecs.Add(w, entity, component.TransformComponent.Kind(), &component.Transform{X: pos.X, Y: pos.Y}); err != nil {
		return 0, fmt.Errorf("player: add transform: %w", err)
	}

	if err := ecs.Add(w, entity, component.MovementComponent.Kind(), &component.Movement{Speed: spec.MoveSpeed}); err != nil {
		return 0, fmt.Errorf("player: add movement: %w", err)
	}

	weapon := shootingFromSpec(spec.Weapon)
	if err := ecs.Add(w, entity, component.ShootingComponent.Kind(), &weapon); err != nil {
		return 0, fmt.Errorf("player: add shooting: %w", err)
	}

	health := component.NewHealth(spec.Health)
	if err := ecs.Add(w, entity, component.HealthComponent.Kind(), &health); err != nil {
		return 0, fmt.Errorf("player: add health: %w", err)
	}

	if err := ecs.Add(w, entity, component.InventoryComponent.Kind(), &component.Inventory{
		SmallPowerups: spec.Inventory.SmallPowerups,
		BigPowerups:   spec.Inventory.BigPowerups,
	}); err != nil {
		return 0, fmt.Errorf("player: add inventory: %w", err)
	}

	if err := ecs.Add(w, entity, component.ActiveEffectComponent.Kind(), &component.ActiveEffect{}); err != nil {
		return 0, fmt.Errorf("player: add effect: %w", err)
	}

	if err := ecs.Add(w, entity, component.InputComponent.Kind(), &component.Input{}); err != nil {
		return 0, fmt.Errorf("player: add input: %w", err)
	}

	if err := addCollider(w, pw, entity, pos, spec.Collider); err != nil {
		return 0, fmt.Errorf("player: %w", err)
	}

	return entity, nil
}
