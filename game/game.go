// Package game wires the simulation together: one level, its physics and
// navigation mesh, and the systems that run each tick.
package game

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/milk9111/angeldust/common"
	"github.com/milk9111/angeldust/ecs"
	"github.com/milk9111/angeldust/ecs/component"
	"github.com/milk9111/angeldust/ecs/entity"
	"github.com/milk9111/angeldust/ecs/system"
	"github.com/milk9111/angeldust/levels"
	"github.com/milk9111/angeldust/navmesh"
	"github.com/milk9111/angeldust/prefabs"
)

var ErrClosed = errors.New("game: closed")

// System labels, in update order.
const (
	LabelCamera        = "camera"
	LabelPlayerControl = "player_control"
	LabelPickups       = "pickups"
	LabelEffects       = "effects"
	LabelEnemyAI       = "enemy_ai"
	LabelHearing       = "hearing"
	LabelPathFollow    = "path_follow"
	LabelColliderSync  = "collider_sync"
	LabelBullets       = "bullets"
	LabelDamage        = "damage"
	LabelStats         = "stats"
)

type Game struct {
	world   *ecs.World
	physics *ecs.PhysicsWorld
	clock   *common.TimeCounter
	events  *system.Events
	combat  *system.Combat
	level   *entity.Level
	tuning  *prefabs.Tuning

	effects    *system.EffectSystem
	pathFollow *system.PathFollowSystem

	tick   int
	closed bool
}

// New loads lvl into a fresh world. The navigation mesh is baked here, once.
func New(lvl *levels.Level, tuning *prefabs.Tuning) (*Game, error) {
	if lvl == nil {
		return nil, fmt.Errorf("game: nil level")
	}
	if tuning == nil {
		t, err := prefabs.LoadTuning()
		if err != nil {
			return nil, fmt.Errorf("game: %w", err)
		}
		tuning = t
	}
	if err := tuning.Validate(); err != nil {
		return nil, fmt.Errorf("game: %w", err)
	}

	w := ecs.NewWorld()
	physics := ecs.NewPhysicsWorld()
	clock := common.NewTimeCounter()
	clock.Timescale = tuning.Game.Timescale

	loaded, err := entity.LoadLevelToWorld(w, physics, lvl, tuning)
	if err != nil {
		physics.Close()
		return nil, fmt.Errorf("game: %w", err)
	}

	events := system.NewEvents(w)
	g := &Game{
		world:   w,
		physics: physics,
		clock:   clock,
		events:  events,
		combat:  system.NewCombat(events, uint64(tuning.Game.Seed), tuning.Game.Bullet),
		level:   loaded,
		tuning:  tuning,
	}
	if err := g.registerSystems(); err != nil {
		physics.Close()
		return nil, err
	}

	slog.Info("level started",
		"level", loaded.Name,
		"enemies", len(loaded.Enemies),
		"pickups", len(loaded.Pickups),
		"triangles", len(loaded.NavMesh.Triangles()),
	)
	return g, nil
}

func (g *Game) registerSystems() error {
	g.effects = system.NewEffectSystem(g.clock, g.tuning.Player.Effects)
	g.pathFollow = system.NewPathFollowSystem(g.clock)
	g.applyTuning()

	nav := g.level.NavMesh
	steps := []struct {
		label  string
		system ecs.System
	}{
		{LabelCamera, system.NewCameraSystem()},
		{LabelPlayerControl, system.NewPlayerControlSystem(g.physics, g.combat, g.clock)},
		{LabelPickups, system.NewPickupSystem(g.physics)},
		{LabelEffects, g.effects},
		{LabelEnemyAI, system.NewEnemyAISystem(g.physics, nav, g.combat, g.clock)},
		{LabelHearing, system.NewHearingSystem(nav, g.events)},
		{LabelPathFollow, g.pathFollow},
		{LabelColliderSync, system.NewColliderSyncSystem(g.physics)},
		{LabelBullets, system.NewBulletSystem(g.physics, g.events, g.clock)},
		{LabelDamage, system.NewDamageSystem(g.physics, g.events)},
		{LabelStats, system.NewStatsSystem(g.events, g.clock)},
	}

	prev := ""
	for _, s := range steps {
		var after []string
		if prev != "" {
			after = append(after, prev)
		}
		if err := g.world.AddLabeledSystem(s.label, s.system, after...); err != nil {
			return fmt.Errorf("game: register %s: %w", s.label, err)
		}
		prev = s.label
	}
	return nil
}

// applyTuning pushes the parts of the tuning that live outside entities.
func (g *Game) applyTuning() {
	g.clock.Timescale = g.tuning.Game.Timescale
	g.combat.Bullet = g.tuning.Game.Bullet
	if g.effects != nil {
		g.effects.SetDurations(g.tuning.Player.Effects)
	}
	if g.pathFollow != nil && g.tuning.Game.ArrivalTolerance > 0 {
		g.pathFollow.ArrivalTolerance = g.tuning.Game.ArrivalTolerance
	}
	ecs.ForEach(g.world, component.ViewportComponent.Kind(), func(_ ecs.Entity, v *component.Viewport) {
		v.Width = g.tuning.Game.Viewport.Width
		v.Height = g.tuning.Game.Viewport.Height
	})
}

// AddSystem registers a consumer that runs after the built-in systems and
// before the tick's events are cleared.
func (g *Game) AddSystem(s ecs.System) error {
	if g.closed {
		return ErrClosed
	}
	return g.world.AddLabeledSystem("", s, LabelStats)
}

// Update advances the simulation by rawDelta seconds of wall time.
func (g *Game) Update(rawDelta float64) error {
	if g.closed {
		return ErrClosed
	}
	g.clock.Step(rawDelta)
	g.world.Update()
	g.tick++
	return nil
}

// SetInput replaces the player's input for the next tick.
func (g *Game) SetInput(in component.Input) {
	if g.closed {
		return
	}
	if cur, ok := ecs.Get(g.world, g.level.Player, component.InputComponent.Kind()); ok {
		*cur = in
	}
}

// Reload swaps the tuning. Entities already spawned keep their stats; timers,
// the viewport and newly fired bullets pick up the new values.
func (g *Game) Reload(tuning *prefabs.Tuning) error {
	if g.closed {
		return ErrClosed
	}
	if tuning == nil {
		return fmt.Errorf("game: nil tuning")
	}
	if err := tuning.Validate(); err != nil {
		return fmt.Errorf("game: %w", err)
	}
	g.tuning = tuning
	g.applyTuning()
	slog.Info("tuning reloaded", "level", g.level.Name)
	return nil
}

// Close ends the level: the navigation mesh is cleared and the physics world
// dropped. Every later call fails with ErrClosed.
func (g *Game) Close() {
	if g.closed {
		return
	}
	g.closed = true
	g.level.NavMesh.Clear()
	g.physics.Close()
	slog.Info("level closed", "level", g.level.Name, "ticks", g.tick)
}

func (g *Game) Closed() bool {
	return g.closed
}

func (g *Game) World() *ecs.World {
	return g.world
}

func (g *Game) Tuning() *prefabs.Tuning {
	return g.tuning
}

// Walls returns the merged wall boxes of the level.
func (g *Game) Walls() []entity.WallBox {
	return g.level.Walls
}

// NavMesh returns the level's navigation mesh. It is empty after Close.
func (g *Game) NavMesh() *navmesh.Builder {
	return g.level.NavMesh
}
