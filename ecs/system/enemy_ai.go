package system

import (
	"log/slog"

	"github.com/milk9111/angeldust/common"
	"github.com/milk9111/angeldust/ecs"
	"github.com/milk9111/angeldust/ecs/component"
)

// EnemyAISystem runs enemy perception: a line of sight check against the
// player each tick, the Combat/Alert transitions it drives, and firing.
type EnemyAISystem struct {
	physics *ecs.PhysicsWorld
	nav     NavQuery
	combat  *Combat
	clock   *common.TimeCounter

	// SightRadius is the radius of the swept sight check. Anything a bullet
	// would clip on its way to the player blocks sight.
	SightRadius float64
}

func NewEnemyAISystem(physics *ecs.PhysicsWorld, nav NavQuery, combat *Combat, clock *common.TimeCounter) *EnemyAISystem {
	s := &EnemyAISystem{physics: physics, nav: nav, combat: combat, clock: clock}
	if combat != nil {
		s.SightRadius = combat.Bullet.Width / 2
	}
	return s
}

func (s *EnemyAISystem) Update(w *ecs.World) {
	if s == nil || w == nil {
		return
	}

	dt := s.clock.Delta()
	player, playerPos, playerFound := playerPosition(w)
	if playerFound {
		if h, ok := ecs.Get(w, player, component.HealthComponent.Kind()); ok && h.Dead() {
			playerFound = false
		}
	}
	view := viewport(w)

	ecs.ForEach3(w, component.EnemyAIComponent.Kind(), component.TransformComponent.Kind(), component.ShootingComponent.Kind(), func(e ecs.Entity, ai *component.EnemyAI, t *component.Transform, weapon *component.Shooting) {
		weapon.Cooldown.Tick(dt)
		if !playerFound {
			return
		}

		pos := t.Position()
		if s.canSee(e, pos, player, playerPos, ai.SightRange) {
			if ai.EnterCombat(playerPos) {
				slog.Debug("enemy entered combat", "enemy", e, "target", playerPos)
			} else if view.Contains(pos.X, pos.Y) {
				ai.Shock.Tick(dt)
			}
			t.Face(playerPos)

			if !view.Contains(pos.X, pos.Y) || !ai.Shock.Finished() || !weapon.Cooldown.Finished() {
				return
			}
			shot := Shot{Shooter: e, Origin: pos, Rotation: t.Rotation, Target: player, TargetPos: playerPos}
			if _, err := FireWeapon(w, s.combat, shot, weapon); err != nil {
				slog.Error("enemy: fire weapon", "enemy", e, "error", err)
				return
			}
			weapon.Cooldown.Reset()
			return
		}

		if ai.State != component.AICombat || ai.Unreachable || s.nav == nil {
			return
		}
		// Lost sight: chase the last known position. Without a path the enemy
		// holds combat until a new sighting or gunshot.
		path, ok := s.nav.FindPath(pos, ai.TargetPosition)
		if !ok {
			ai.Unreachable = true
			return
		}
		ai.EnterAlert(path)
		ai.Shock.Reset()
		slog.Debug("enemy lost sight", "enemy", e, "last_known", ai.TargetPosition, "waypoints", len(path))
	})
}

// canSee reports whether the first thing a cast from the enemy toward the
// player touches is the player itself.
func (s *EnemyAISystem) canSee(self ecs.Entity, from common.Vec2, player ecs.Entity, to common.Vec2, sightRange float64) bool {
	if sightRange <= 0 {
		return false
	}
	hit, ok := s.physics.CastFirst(from, to.Sub(from), sightRange, s.SightRadius, ecs.QueryFilter{
		Exclude:        []ecs.Entity{self},
		ExcludeSensors: true,
	})
	return ok && !hit.Static && hit.Entity == player
}
