package game

import (
	"github.com/milk9111/angeldust/common"
	"github.com/milk9111/angeldust/ecs"
	"github.com/milk9111/angeldust/ecs/component"
)

type PlayerSnapshot struct {
	Entity    ecs.Entity
	Position  common.Vec2
	Rotation  float64
	Health    float64
	MaxHealth float64
	Inventory component.Inventory
	Effect    component.EffectKind
	Alive     bool
}

type EnemySnapshot struct {
	Entity   ecs.Entity
	Position common.Vec2
	Rotation float64
	State    component.AIStateKind
	Path     []common.Vec2
	Current  int
}

// Active reports whether the enemy is reacting to something, for picking
// between its idle and active sprites.
func (e EnemySnapshot) Active() bool {
	return e.State != component.AIIdle
}

type BulletSnapshot struct {
	Position common.Vec2
	Rotation float64
	Owner    ecs.Entity
}

type PickupSnapshot struct {
	Position common.Vec2
	Kind     component.EffectKind
}

// Snapshot is a read-only copy of the simulation state after a tick.
type Snapshot struct {
	Tick    int
	Time    float64
	Player  PlayerSnapshot
	Enemies []EnemySnapshot
	Bullets []BulletSnapshot
	Pickups []PickupSnapshot
	Stats   component.Stats
}

// Over reports whether the level has ended, won or lost.
func (s Snapshot) Over() bool {
	return s.Stats.PlayerDead || s.Stats.EnemiesRemaining == 0
}

func (g *Game) Snapshot() Snapshot {
	snap := Snapshot{Tick: g.tick, Time: g.clock.Elapsed()}
	if g.closed {
		return snap
	}
	w := g.world

	player := g.level.Player
	snap.Player.Entity = player
	if t, ok := ecs.Get(w, player, component.TransformComponent.Kind()); ok {
		snap.Player.Position = t.Position()
		snap.Player.Rotation = t.Rotation
	}
	if h, ok := ecs.Get(w, player, component.HealthComponent.Kind()); ok {
		snap.Player.Health = h.Current
		snap.Player.MaxHealth = h.Max
		snap.Player.Alive = !h.Dead()
	}
	if inv, ok := ecs.Get(w, player, component.InventoryComponent.Kind()); ok {
		snap.Player.Inventory = *inv
	}
	if fx, ok := ecs.Get(w, player, component.ActiveEffectComponent.Kind()); ok {
		snap.Player.Effect = fx.Kind
	}

	ecs.ForEach2(w, component.EnemyAIComponent.Kind(), component.TransformComponent.Kind(), func(e ecs.Entity, ai *component.EnemyAI, t *component.Transform) {
		snap.Enemies = append(snap.Enemies, EnemySnapshot{
			Entity:   e,
			Position: t.Position(),
			Rotation: t.Rotation,
			State:    ai.State,
			Path:     append([]common.Vec2(nil), ai.Path...),
			Current:  ai.Current,
		})
	})

	ecs.ForEach2(w, component.BulletComponent.Kind(), component.TransformComponent.Kind(), func(_ ecs.Entity, b *component.Bullet, t *component.Transform) {
		snap.Bullets = append(snap.Bullets, BulletSnapshot{Position: t.Position(), Rotation: t.Rotation, Owner: ecs.Entity(b.Owner)})
	})

	ecs.ForEach2(w, component.PickupComponent.Kind(), component.TransformComponent.Kind(), func(_ ecs.Entity, p *component.Pickup, t *component.Transform) {
		snap.Pickups = append(snap.Pickups, PickupSnapshot{Position: t.Position(), Kind: p.Kind})
	})

	if stats, ok := ecs.Get(w, g.level.State, component.StatsComponent.Kind()); ok {
		snap.Stats = *stats
	}
	return snap
}
