package system

import (
	"github.com/milk9111/angeldust/common"
	"github.com/milk9111/angeldust/ecs"
	"github.com/milk9111/angeldust/ecs/component"
)

// BulletSystem moves bullets. Each tick a bullet sweeps the segment it is about
// to travel; the first collider it meets stops it. Hitting an entity raises
// TargetHit, hitting level geometry does not.
type BulletSystem struct {
	physics *ecs.PhysicsWorld
	events  *Events
	clock   *common.TimeCounter
}

func NewBulletSystem(physics *ecs.PhysicsWorld, events *Events, clock *common.TimeCounter) *BulletSystem {
	return &BulletSystem{physics: physics, events: events, clock: clock}
}

func (s *BulletSystem) Update(w *ecs.World) {
	if s == nil || w == nil {
		return
	}

	dt := s.clock.Delta()
	var bounds *component.LevelBounds
	if e, ok := ecs.First(w, component.LevelBoundsComponent.Kind()); ok {
		bounds, _ = ecs.Get(w, e, component.LevelBoundsComponent.Kind())
	}

	ecs.ForEach2(w, component.BulletComponent.Kind(), component.TransformComponent.Kind(), func(e ecs.Entity, b *component.Bullet, t *component.Transform) {
		step := b.Speed * dt
		if step <= 0 {
			return
		}

		owner := ecs.Entity(b.Owner)
		start := t.Position()
		end := start.Add(t.Forward().Scale(step))

		hit, ok := s.physics.Sweep(start, end, 0, ecs.QueryFilter{Exclude: []ecs.Entity{owner}, ExcludeSensors: true})
		if ok {
			if !hit.Static {
				s.events.Hits.Push(ecs.TargetHit{Entity: hit.Entity, Source: owner, Damage: b.Damage})
			}
			ecs.DestroyEntity(w, e)
			return
		}

		t.SetPosition(end)
		b.Traveled += step
		if b.MaxDistance > 0 && b.Traveled > b.MaxDistance {
			ecs.DestroyEntity(w, e)
			return
		}
		if bounds != nil && !bounds.Contains(end.X, end.Y) {
			ecs.DestroyEntity(w, e)
		}
	})
}
