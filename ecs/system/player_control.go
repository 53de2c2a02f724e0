package system

import (
	"log/slog"

	"github.com/milk9111/angeldust/common"
	"github.com/milk9111/angeldust/ecs"
	"github.com/milk9111/angeldust/ecs/component"
)

// PlayerControlSystem applies the player's Input: movement with wall
// collision, aiming, and firing.
type PlayerControlSystem struct {
	physics *ecs.PhysicsWorld
	combat  *Combat
	clock   *common.TimeCounter
}

func NewPlayerControlSystem(physics *ecs.PhysicsWorld, combat *Combat, clock *common.TimeCounter) *PlayerControlSystem {
	return &PlayerControlSystem{physics: physics, combat: combat, clock: clock}
}

func (s *PlayerControlSystem) Update(w *ecs.World) {
	if s == nil || w == nil {
		return
	}

	player, ok := playerEntity(w)
	if !ok {
		return
	}
	input, ok := ecs.Get(w, player, component.InputComponent.Kind())
	if !ok {
		return
	}
	t, ok := ecs.Get(w, player, component.TransformComponent.Kind())
	if !ok {
		return
	}
	if h, ok := ecs.Get(w, player, component.HealthComponent.Kind()); ok && h.Dead() {
		return
	}

	dt := s.clock.Delta()

	if m, ok := ecs.Get(w, player, component.MovementComponent.Kind()); ok {
		dir := common.V(input.MoveX, input.MoveY).NormalizeOrZero()
		if !dir.IsZero() {
			s.move(w, player, t, dir.Scale(m.Speed*common.TileSize*dt))
		}
	}

	if input.HasAim {
		t.Face(common.V(input.AimX, input.AimY))
	}

	weapon, ok := ecs.Get(w, player, component.ShootingComponent.Kind())
	if !ok {
		return
	}
	weapon.Cooldown.Tick(dt)
	if !input.Fire || !weapon.Cooldown.Finished() {
		return
	}

	shot := Shot{Shooter: player, Origin: t.Position(), Rotation: t.Rotation}
	filter := ecs.QueryFilter{Exclude: []ecs.Entity{player}, ExcludeSensors: true}
	if hit, ok := s.physics.CastFirst(t.Position(), t.Forward(), weapon.MeleeRange, 0, filter); ok && !hit.Static {
		if target, ok := ecs.Get(w, hit.Entity, component.TransformComponent.Kind()); ok {
			shot.Target = hit.Entity
			shot.TargetPos = target.Position()
		}
	}
	if _, err := FireWeapon(w, s.combat, shot, weapon); err != nil {
		slog.Error("player: fire weapon", "error", err)
		return
	}
	weapon.Cooldown.Reset()
}

// move applies delta one axis at a time so the player slides along walls.
func (s *PlayerControlSystem) move(w *ecs.World, player ecs.Entity, t *component.Transform, delta common.Vec2) {
	halfW, halfH := 0.0, 0.0
	if col, ok := ecs.Get(w, player, component.ColliderComponent.Kind()); ok {
		halfW, halfH = col.HalfExtents()
	}
	filter := ecs.QueryFilter{Exclude: []ecs.Entity{player}, ExcludeSensors: true}

	blocked := func(p common.Vec2) bool {
		if halfW <= 0 || halfH <= 0 {
			return false
		}
		return len(s.physics.Overlaps(p, halfW, halfH, filter)) > 0
	}

	pos := t.Position()
	if delta.X != 0 {
		if next := common.V(pos.X+delta.X, pos.Y); !blocked(next) {
			pos = next
		}
	}
	if delta.Y != 0 {
		if next := common.V(pos.X, pos.Y+delta.Y); !blocked(next) {
			pos = next
		}
	}
	t.SetPosition(pos)
	s.physics.SetPosition(player, pos)
}
