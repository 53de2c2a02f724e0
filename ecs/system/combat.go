package system

import (
	"fmt"
	"math/rand/v2"

	"github.com/milk9111/angeldust/common"
	"github.com/milk9111/angeldust/ecs"
	"github.com/milk9111/angeldust/ecs/component"
	"github.com/milk9111/angeldust/ecs/entity"
	"github.com/milk9111/angeldust/prefabs"
)

// Events are the per-tick queues shared by the combat systems.
type Events struct {
	Fired *ecs.EventQueue[ecs.WeaponFired]
	Hits  *ecs.EventQueue[ecs.TargetHit]
	Kills *ecs.EventQueue[ecs.EnemyKilled]
}

func NewEvents(w *ecs.World) *Events {
	return &Events{
		Fired: ecs.NewEventQueue[ecs.WeaponFired](w),
		Hits:  ecs.NewEventQueue[ecs.TargetHit](w),
		Kills: ecs.NewEventQueue[ecs.EnemyKilled](w),
	}
}

// Combat is what firing a weapon needs besides the world.
type Combat struct {
	Events *Events
	Rand   *rand.Rand
	Bullet prefabs.BulletSpec
}

func NewCombat(events *Events, seed uint64, bullet prefabs.BulletSpec) *Combat {
	return &Combat{
		Events: events,
		Rand:   rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)),
		Bullet: bullet,
	}
}

// Shot describes one trigger pull. Target is the entity the shooter means to
// hit, zero when there is none in reach.
type Shot struct {
	Shooter   ecs.Entity
	Origin    common.Vec2
	Rotation  float64
	Target    ecs.Entity
	TargetPos common.Vec2
}

// FireWeapon discharges weapon. A target closer than the weapon's melee range
// is hit directly; otherwise a bullet is spawned one tile ahead of the
// shooter. WeaponFired is raised either way. The caller owns the cooldown.
// The returned entity is zero for a melee hit.
func FireWeapon(w *ecs.World, c *Combat, shot Shot, weapon *component.Shooting) (ecs.Entity, error) {
	if w == nil || c == nil || weapon == nil {
		return 0, fmt.Errorf("fire weapon: missing world, combat or weapon")
	}

	var bullet ecs.Entity
	if shot.Target.Valid() && shot.Origin.Dist(shot.TargetPos) < weapon.MeleeRange {
		c.Events.Hits.Push(ecs.TargetHit{Entity: shot.Target, Source: shot.Shooter, Damage: weapon.Damage})
	} else {
		rotation := shot.Rotation
		if weapon.Spread > 0 && c.Rand != nil {
			rotation += (c.Rand.Float64() - 0.5) * weapon.Spread
		}
		muzzle := shot.Origin.Add(common.Up(shot.Rotation).Scale(common.TileSize))
		e, err := entity.NewBullet(w, muzzle, rotation, shot.Shooter, *weapon, c.Bullet)
		if err != nil {
			return 0, fmt.Errorf("fire weapon: %w", err)
		}
		bullet = e
	}

	c.Events.Fired.Push(ecs.WeaponFired{Position: shot.Origin, Shooter: shot.Shooter})
	return bullet, nil
}

// NavQuery answers shortest-path queries on the baked navigation mesh.
type NavQuery interface {
	FindPath(start, goal common.Vec2) ([]common.Vec2, bool)
}

func playerEntity(w *ecs.World) (ecs.Entity, bool) {
	return ecs.First(w, component.PlayerTagComponent.Kind())
}

func playerPosition(w *ecs.World) (ecs.Entity, common.Vec2, bool) {
	player, ok := playerEntity(w)
	if !ok {
		return 0, common.Vec2{}, false
	}
	t, ok := ecs.Get(w, player, component.TransformComponent.Kind())
	if !ok {
		return 0, common.Vec2{}, false
	}
	return player, t.Position(), true
}

func levelStats(w *ecs.World) *component.Stats {
	e, ok := ecs.First(w, component.StatsComponent.Kind())
	if !ok {
		return nil
	}
	stats, _ := ecs.Get(w, e, component.StatsComponent.Kind())
	return stats
}

func viewport(w *ecs.World) component.Viewport {
	e, ok := ecs.First(w, component.ViewportComponent.Kind())
	if !ok {
		return component.Viewport{}
	}
	v, ok := ecs.Get(w, e, component.ViewportComponent.Kind())
	if !ok {
		return component.Viewport{}
	}
	return *v
}
