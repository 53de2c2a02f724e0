package system

import (
	"github.com/milk9111/angeldust/ecs"
	"github.com/milk9111/angeldust/ecs/component"
)

// ColliderSyncSystem copies transforms into the physics world so later
// queries in the tick see where entities moved to.
type ColliderSyncSystem struct {
	physics *ecs.PhysicsWorld
}

func NewColliderSyncSystem(physics *ecs.PhysicsWorld) *ColliderSyncSystem {
	return &ColliderSyncSystem{physics: physics}
}

func (s *ColliderSyncSystem) Update(w *ecs.World) {
	if s == nil || w == nil {
		return
	}

	ecs.ForEach2(w, component.TransformComponent.Kind(), component.ColliderComponent.Kind(), func(e ecs.Entity, t *component.Transform, _ *component.Collider) {
		s.physics.SetPosition(e, t.Position())
	})
}
