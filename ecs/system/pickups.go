package system

import (
	"github.com/milk9111/angeldust/ecs"
	"github.com/milk9111/angeldust/ecs/component"
)

// PickupSystem moves power-ups the player touches into its inventory.
type PickupSystem struct {
	physics *ecs.PhysicsWorld
}

func NewPickupSystem(physics *ecs.PhysicsWorld) *PickupSystem {
	return &PickupSystem{physics: physics}
}

func (s *PickupSystem) Update(w *ecs.World) {
	if s == nil || w == nil {
		return
	}

	player, pos, ok := playerPosition(w)
	if !ok {
		return
	}
	inv, ok := ecs.Get(w, player, component.InventoryComponent.Kind())
	if !ok {
		return
	}
	col, ok := ecs.Get(w, player, component.ColliderComponent.Kind())
	if !ok {
		return
	}
	halfW, halfH := col.HalfExtents()

	stats := levelStats(w)
	for _, hit := range s.physics.Overlaps(pos, halfW, halfH, ecs.QueryFilter{Exclude: []ecs.Entity{player}}) {
		if hit.Static {
			continue
		}
		pickup, ok := ecs.Get(w, hit.Entity, component.PickupComponent.Kind())
		if !ok {
			continue
		}
		switch pickup.Kind {
		case component.EffectSmallPowerup:
			inv.SmallPowerups++
		case component.EffectBigPowerup:
			inv.BigPowerups++
		}
		if stats != nil {
			stats.PowerupsCollected++
		}
		s.physics.RemoveActor(hit.Entity)
		ecs.DestroyEntity(w, hit.Entity)
	}
}
