package system

import (
	"testing"

	"github.com/milk9111/angeldust/common"
	"github.com/milk9111/angeldust/ecs"
	"github.com/milk9111/angeldust/ecs/component"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func (h *harness) input(t *testing.T, player ecs.Entity) *component.Input {
	t.Helper()
	in, ok := ecs.Get(h.w, player, component.InputComponent.Kind())
	require.True(t, ok)
	return in
}

func TestPlayerMovesAndSlidesAlongWalls(t *testing.T) {
	h := newHarness(t)
	player := h.spawnPlayer(t, common.V(0, 0))
	// Wall directly to the right.
	h.pw.AddStaticBox(20, -100, 70, 100)
	h.run(NewPlayerControlSystem(h.pw, h.combat, h.clock))

	in := h.input(t, player)
	in.MoveX, in.MoveY = 1, 1
	h.step(0.01)

	pos := h.position(t, player)
	assert.InDelta(t, 0, pos.X, 1e-9, "blocked by the wall")
	assert.InDelta(t, 10*common.TileSize*0.01/1.4142135623730951, pos.Y, 1e-6)

	physicsPos, ok := h.pw.Position(player)
	require.True(t, ok)
	assert.Equal(t, pos, physicsPos)
}

func TestPlayerFiresWithCooldown(t *testing.T) {
	h := newHarness(t)
	player := h.spawnPlayer(t, common.V(0, 0))
	h.run(NewPlayerControlSystem(h.pw, h.combat, h.clock))

	in := h.input(t, player)
	in.AimX, in.AimY, in.HasAim = 500, 0, true
	in.Fire = true

	h.step(0.05)
	require.Len(t, h.fired, 1)
	assert.Equal(t, 1, ecs.Count(h.w, component.BulletComponent.Kind()))

	h.step(0.05)
	h.step(0.05)
	assert.Len(t, h.fired, 1, "cooldown still running")

	h.step(0.05)
	assert.Len(t, h.fired, 2)
}

func TestPlayerMeleeHitsAdjacentEnemy(t *testing.T) {
	h := newHarness(t)
	player := h.spawnPlayer(t, common.V(0, 0))
	enemy := h.spawnEnemy(t, common.V(45, 0))
	h.run(NewPlayerControlSystem(h.pw, h.combat, h.clock))

	in := h.input(t, player)
	in.AimX, in.AimY, in.HasAim = 45, 0, true
	in.Fire = true
	h.step(0.05)

	require.Len(t, h.hits, 1)
	assert.Equal(t, enemy, h.hits[0].Entity)
	assert.Equal(t, 0, ecs.Count(h.w, component.BulletComponent.Kind()))
}

func TestEffectLifecycle(t *testing.T) {
	h := newHarness(t)
	stats := h.spawnStats(t, 1)
	player := h.spawnPlayer(t, common.V(0, 0))
	h.run(NewEffectSystem(h.clock, testPlayerSpec().Effects))

	m, ok := ecs.Get(h.w, player, component.MovementComponent.Kind())
	require.True(t, ok)
	health, ok := ecs.Get(h.w, player, component.HealthComponent.Kind())
	require.True(t, ok)

	in := h.input(t, player)
	in.UseBig = true
	h.step(0.1)
	in.UseBig = false

	assert.Equal(t, 50.0, m.Speed)
	assert.Equal(t, 10.0, health.Current)
	assert.Equal(t, 1, stats.BigPowerupsUsed)

	in.UseSmall = true
	h.step(0.1)
	in.UseSmall = false
	assert.Equal(t, 20.0, m.Speed, "the new effect replaces the old one")
	assert.Equal(t, 45.0, health.Current)

	for i := 0; i < 10; i++ {
		h.step(0.1)
	}
	assert.Equal(t, 10.0, m.Speed)

	inv, ok := ecs.Get(h.w, player, component.InventoryComponent.Kind())
	require.True(t, ok)
	assert.Equal(t, component.Inventory{SmallPowerups: 1, BigPowerups: 1}, *inv)
}

func TestPickupCollection(t *testing.T) {
	h := newHarness(t)
	stats := h.spawnStats(t, 1)
	player := h.spawnPlayer(t, common.V(0, 0))
	pickup := h.spawnPickup(t, common.V(30, 0), component.EffectBigPowerup)
	far := h.spawnPickup(t, common.V(300, 0), component.EffectSmallPowerup)
	h.run(NewPickupSystem(h.pw))

	h.step(0.1)

	inv, ok := ecs.Get(h.w, player, component.InventoryComponent.Kind())
	require.True(t, ok)
	assert.Equal(t, 3, inv.BigPowerups)
	assert.Equal(t, 2, inv.SmallPowerups)
	assert.False(t, ecs.IsAlive(h.w, pickup))
	assert.False(t, h.pw.HasActor(pickup))
	assert.True(t, ecs.IsAlive(h.w, far))
	assert.Equal(t, 1, stats.PowerupsCollected)
}
