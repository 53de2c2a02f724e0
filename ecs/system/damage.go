package system

import (
	"log/slog"

	"github.com/milk9111/angeldust/ecs"
	"github.com/milk9111/angeldust/ecs/component"
)

// DamageSystem applies TargetHit events. Enemies that drop to zero health are
// removed and reported through EnemyKilled; a dead player is flagged in the
// level stats.
type DamageSystem struct {
	physics *ecs.PhysicsWorld
	events  *Events
}

func NewDamageSystem(physics *ecs.PhysicsWorld, events *Events) *DamageSystem {
	return &DamageSystem{physics: physics, events: events}
}

func (s *DamageSystem) Update(w *ecs.World) {
	if s == nil || w == nil || s.events == nil {
		return
	}

	stats := levelStats(w)
	for _, hit := range s.events.Hits.Items() {
		if !ecs.IsAlive(w, hit.Entity) {
			continue
		}
		health, ok := ecs.Get(w, hit.Entity, component.HealthComponent.Kind())
		if !ok || health.Dead() {
			continue
		}
		died := health.TakeDamage(hit.Damage)

		if ecs.Has(w, hit.Entity, component.PlayerTagComponent.Kind()) {
			if stats != nil {
				stats.DamageTaken += hit.Damage
				if died {
					stats.PlayerDead = true
				}
			}
			if died {
				slog.Info("player died", "source", hit.Source)
			}
			continue
		}

		if !died || !ecs.Has(w, hit.Entity, component.EnemyTagComponent.Kind()) {
			continue
		}
		t, _ := ecs.Get(w, hit.Entity, component.TransformComponent.Kind())
		kill := ecs.EnemyKilled{Entity: hit.Entity}
		if t != nil {
			kill.Position = t.Position()
		}
		s.physics.RemoveActor(hit.Entity)
		ecs.DestroyEntity(w, hit.Entity)
		s.events.Kills.Push(kill)
		slog.Debug("enemy killed", "enemy", hit.Entity, "source", hit.Source)
	}
}
