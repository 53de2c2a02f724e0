package system

import (
	"testing"

	"github.com/milk9111/angeldust/common"
	"github.com/milk9111/angeldust/ecs"
	"github.com/milk9111/angeldust/ecs/component"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEnemyWaitsForReactionDelayBeforeFiring(t *testing.T) {
	h := newHarness(t)
	h.spawnPlayer(t, common.V(0, 0))
	enemy := h.spawnEnemy(t, common.V(300, 0))
	h.run(NewEnemyAISystem(h.pw, &fakeNav{}, h.combat, h.clock))

	h.step(0.1)
	assert.Equal(t, component.AICombat, h.ai(t, enemy).State)
	assert.Empty(t, h.fired, "no shot on the tick the target is acquired")

	for i := 0; i < 4; i++ {
		h.step(0.1)
		require.Empty(t, h.fired, "tick %d", i+2)
	}

	h.step(0.1)
	require.Len(t, h.fired, 1)
	assert.Equal(t, enemy, h.fired[0].Shooter)
	assert.Equal(t, common.V(300, 0), h.fired[0].Position)
	assert.Equal(t, 1, ecs.Count(h.w, component.BulletComponent.Kind()))
}

func TestEnemyFacesTargetInCombat(t *testing.T) {
	h := newHarness(t)
	h.spawnPlayer(t, common.V(0, 300))
	enemy := h.spawnEnemy(t, common.V(0, 0))
	h.run(NewEnemyAISystem(h.pw, &fakeNav{}, h.combat, h.clock))

	h.step(0.1)

	tr, ok := ecs.Get(h.w, enemy, component.TransformComponent.Kind())
	require.True(t, ok)
	fwd := tr.Forward()
	assert.InDelta(t, 0, fwd.X, 1e-9)
	assert.InDelta(t, 1, fwd.Y, 1e-9)
	assert.Equal(t, common.V(0, 300), h.ai(t, enemy).TargetPosition)
}

func TestEnemyOffScreenHoldsFire(t *testing.T) {
	h := newHarness(t)
	h.spawnPlayer(t, common.V(0, 0))
	enemy := h.spawnEnemy(t, common.V(400, 0))

	cam := ecs.CreateEntity(h.w)
	require.NoError(t, ecs.Add(h.w, cam, component.ViewportComponent.Kind(), &component.Viewport{Width: 200, Height: 200}))

	h.run(NewCameraSystem(), NewEnemyAISystem(h.pw, &fakeNav{}, h.combat, h.clock))

	for i := 0; i < 30; i++ {
		h.step(0.1)
	}
	assert.Equal(t, component.AICombat, h.ai(t, enemy).State)
	assert.Empty(t, h.fired)
}

func TestWallBlocksSight(t *testing.T) {
	h := newHarness(t)
	h.spawnPlayer(t, common.V(0, 0))
	enemy := h.spawnEnemy(t, common.V(300, 0))
	h.pw.AddStaticBox(125, -25, 175, 25)
	h.run(NewEnemyAISystem(h.pw, &fakeNav{}, h.combat, h.clock))

	h.step(0.1)
	assert.Equal(t, component.AIIdle, h.ai(t, enemy).State)
}

func TestOutOfSightRange(t *testing.T) {
	h := newHarness(t)
	h.spawnPlayer(t, common.V(0, 0))
	enemy := h.spawnEnemy(t, common.V(13*common.TileSize, 0))
	h.run(NewEnemyAISystem(h.pw, &fakeNav{}, h.combat, h.clock))

	h.step(0.1)
	assert.Equal(t, component.AIIdle, h.ai(t, enemy).State)
}

func TestLostSightSwitchesToAlert(t *testing.T) {
	cases := []struct {
		name      string
		nav       *fakeNav
		wantState component.AIStateKind
	}{
		{"path_found", &fakeNav{ok: true, path: []common.Vec2{common.V(300, 0), common.V(0, 0)}}, component.AIAlert},
		{"unreachable_keeps_state", &fakeNav{}, component.AICombat},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			h := newHarness(t)
			h.spawnPlayer(t, common.V(0, 0))
			enemy := h.spawnEnemy(t, common.V(300, 0))
			h.run(NewEnemyAISystem(h.pw, c.nav, h.combat, h.clock))

			h.step(0.1)
			require.Equal(t, component.AICombat, h.ai(t, enemy).State)

			h.pw.AddStaticBox(125, -25, 175, 25)
			h.step(0.1)

			ai := h.ai(t, enemy)
			assert.Equal(t, c.wantState, ai.State)
			assert.Equal(t, 1, c.nav.calls)
			if c.wantState == component.AIAlert {
				assert.True(t, ai.HasPath)
				assert.Equal(t, 0, ai.Current)
			} else {
				assert.Equal(t, common.V(0, 0), ai.TargetPosition)
				assert.True(t, ai.Unreachable)

				h.step(0.1)
				h.step(0.1)
				assert.Equal(t, 1, c.nav.calls, "chase must not be retried every tick")
				assert.Equal(t, component.AICombat, h.ai(t, enemy).State)
			}
		})
	}
}

func TestUnreachableChaseRetriesOnGunshot(t *testing.T) {
	h := newHarness(t)
	h.spawnPlayer(t, common.V(0, 0))
	enemy := h.spawnEnemy(t, common.V(300, 0))
	nav := &fakeNav{}
	h.run(NewEnemyAISystem(h.pw, nav, h.combat, h.clock), NewHearingSystem(nav, h.events))

	h.step(0.1)
	h.pw.AddStaticBox(125, -25, 175, 25)
	h.step(0.1)
	require.True(t, h.ai(t, enemy).Unreachable)
	require.Equal(t, 1, nav.calls)

	nav.ok = true
	nav.path = []common.Vec2{common.V(300, 0), common.V(0, 0)}
	h.events.Fired.Push(ecs.WeaponFired{Position: common.V(0, 0), Shooter: ecs.CreateEntity(h.w)})
	h.step(0.1)
	assert.False(t, h.ai(t, enemy).Unreachable)
	assert.Equal(t, component.AICombat, h.ai(t, enemy).State)

	h.step(0.1)
	ai := h.ai(t, enemy)
	assert.Equal(t, 2, nav.calls)
	assert.Equal(t, component.AIAlert, ai.State)
	assert.True(t, ai.HasPath)
}

func TestDeadPlayerIsIgnored(t *testing.T) {
	h := newHarness(t)
	player := h.spawnPlayer(t, common.V(0, 0))
	enemy := h.spawnEnemy(t, common.V(300, 0))
	health, ok := ecs.Get(h.w, player, component.HealthComponent.Kind())
	require.True(t, ok)
	health.Current = 0

	h.run(NewEnemyAISystem(h.pw, &fakeNav{}, h.combat, h.clock))
	h.step(0.1)
	assert.Equal(t, component.AIIdle, h.ai(t, enemy).State)
}
