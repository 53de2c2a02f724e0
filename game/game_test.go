package game

import (
	"testing"

	"github.com/milk9111/angeldust/common"
	"github.com/milk9111/angeldust/ecs"
	"github.com/milk9111/angeldust/ecs/component"
	"github.com/milk9111/angeldust/levels"
	"github.com/milk9111/angeldust/prefabs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestGame(t *testing.T, rows ...string) *Game {
	t.Helper()
	lvl, err := levels.FromRows(t.Name(), rows)
	require.NoError(t, err)
	tuning, err := prefabs.LoadTuning()
	require.NoError(t, err)
	// Headless: every enemy counts as on screen.
	tuning.Game.Viewport = prefabs.ViewportSpec{}

	g, err := New(lvl, tuning)
	require.NoError(t, err)
	t.Cleanup(g.Close)
	return g
}

type counter struct {
	ticks int
}

func (c *counter) Update(*ecs.World) { c.ticks++ }

func TestEnemyShootsVisiblePlayer(t *testing.T) {
	g := newTestGame(t,
		"##########",
		"#P......E#",
		"##########",
	)

	damaged := false
	for i := 0; i < 300 && !damaged; i++ {
		require.NoError(t, g.Update(1.0/60))
		damaged = g.Snapshot().Stats.DamageTaken > 0
	}
	require.True(t, damaged, "the enemy should land a shot within five seconds")

	snap := g.Snapshot()
	require.Len(t, snap.Enemies, 1)
	assert.Equal(t, component.AICombat, snap.Enemies[0].State)
	assert.True(t, snap.Enemies[0].Active())
	assert.Less(t, snap.Player.Health, snap.Player.MaxHealth)
}

func TestPlayerKillsEnemyAndWins(t *testing.T) {
	g := newTestGame(t,
		"##########",
		"#P......E#",
		"##########",
	)

	enemyPos := g.Snapshot().Enemies[0].Position
	g.SetInput(component.Input{AimX: enemyPos.X, AimY: enemyPos.Y, HasAim: true, Fire: true})

	for i := 0; i < 120 && !g.Snapshot().Over(); i++ {
		require.NoError(t, g.Update(1.0/60))
	}

	snap := g.Snapshot()
	require.True(t, snap.Over())
	assert.False(t, snap.Stats.PlayerDead)
	assert.Empty(t, snap.Enemies)
	assert.Equal(t, 1, snap.Stats.EnemiesKilled)
	assert.GreaterOrEqual(t, snap.Stats.ShotsFired, 1)
}

func TestGunshotAlertsEnemyAroundCorner(t *testing.T) {
	g := newTestGame(t,
		"#########",
		"#P......#",
		"#######.#",
		"#######.#",
		"#######E#",
		"#########",
	)

	player := g.Snapshot().Player.Position
	g.SetInput(component.Input{AimX: player.X - 100, AimY: player.Y, HasAim: true, Fire: true})
	require.NoError(t, g.Update(1.0/60))
	g.SetInput(component.Input{})

	snap := g.Snapshot()
	require.Len(t, snap.Enemies, 1)
	enemy := snap.Enemies[0]
	require.Equal(t, component.AIAlert, enemy.State)
	require.NotEmpty(t, enemy.Path)
	assert.InDelta(t, player.X, enemy.Path[len(enemy.Path)-1].X, 1e-6)
	assert.InDelta(t, player.Y, enemy.Path[len(enemy.Path)-1].Y, 1e-6)

	start := enemy.Position.Dist(player)
	for i := 0; i < 60; i++ {
		require.NoError(t, g.Update(1.0/60))
	}
	moved := g.Snapshot().Enemies[0]
	assert.Less(t, moved.Position.Dist(player), start)
}

func TestExternalSystemsRunAfterStats(t *testing.T) {
	g := newTestGame(t,
		"#####",
		"#P.E#",
		"#####",
	)
	c := &counter{}
	require.NoError(t, g.AddSystem(c))

	systems, err := g.World().Scheduler().Systems()
	require.NoError(t, err)
	assert.Same(t, c, systems[len(systems)-1])

	require.NoError(t, g.Update(0.01))
	assert.Equal(t, 1, c.ticks)
}

func TestReloadAppliesTuning(t *testing.T) {
	g := newTestGame(t,
		"#####",
		"#P.E#",
		"#####",
	)

	next := *g.Tuning()
	next.Game.Timescale = 0.5
	next.Game.Viewport = prefabs.ViewportSpec{Width: 640, Height: 360}
	require.NoError(t, g.Reload(&next))

	require.NoError(t, g.Update(0.2))
	assert.InDelta(t, 0.1, g.Snapshot().Stats.Elapsed, 1e-12)

	cam, ok := ecs.First(g.World(), component.ViewportComponent.Kind())
	require.True(t, ok)
	v, ok := ecs.Get(g.World(), cam, component.ViewportComponent.Kind())
	require.True(t, ok)
	assert.Equal(t, 640.0, v.Width)

	bad := next
	bad.Game.Timescale = -1
	assert.ErrorIs(t, g.Reload(&bad), prefabs.ErrInvalidTuning)
}

func TestCloseClearsLevel(t *testing.T) {
	g := newTestGame(t,
		"#####",
		"#P.E#",
		"#####",
	)
	g.Close()

	assert.True(t, g.Closed())
	assert.False(t, g.NavMesh().Baked())
	assert.ErrorIs(t, g.Update(0.1), ErrClosed)
	assert.Panics(t, func() { g.NavMesh().FindPath(common.V(0, 0), common.V(50, 0)) })
}
