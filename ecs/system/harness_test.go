package system

import (
	"testing"

	"github.com/milk9111/angeldust/common"
	"github.com/milk9111/angeldust/ecs"
	"github.com/milk9111/angeldust/ecs/component"
	"github.com/milk9111/angeldust/ecs/entity"
	"github.com/milk9111/angeldust/prefabs"
	"github.com/stretchr/testify/require"
)

type harness struct {
	w      *ecs.World
	pw     *ecs.PhysicsWorld
	clock  *common.TimeCounter
	events *Events
	combat *Combat

	fired []ecs.WeaponFired
	hits  []ecs.TargetHit
	kills []ecs.EnemyKilled
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	w := ecs.NewWorld()
	events := NewEvents(w)
	h := &harness{
		w:      w,
		pw:     ecs.NewPhysicsWorld(),
		clock:  common.NewTimeCounter(),
		events: events,
		combat: NewCombat(events, 7, prefabs.BulletSpec{Width: 20, Height: 20}),
	}
	t.Cleanup(h.pw.Close)
	return h
}

// run registers the systems under test followed by a recorder that copies
// each tick's events before they are flushed.
func (h *harness) run(systems ...ecs.System) {
	for _, s := range systems {
		h.w.AddSystem(s)
	}
	h.w.AddSystem(recorder{h})
}

func (h *harness) step(dt float64) {
	h.clock.Step(dt)
	h.w.Update()
}

type recorder struct{ h *harness }

func (r recorder) Update(*ecs.World) {
	r.h.fired = append(r.h.fired, r.h.events.Fired.Items()...)
	r.h.hits = append(r.h.hits, r.h.events.Hits.Items()...)
	r.h.kills = append(r.h.kills, r.h.events.Kills.Items()...)
}

func testEnemySpec() prefabs.EnemySpec {
	return prefabs.EnemySpec{
		MoveSpeed:     3,
		Health:        1,
		SightRange:    12,
		HearingRange:  10,
		ReactionDelay: 0.5,
		Collider:      prefabs.ColliderSpec{Width: 40, Height: 40},
		Weapon: prefabs.WeaponSpec{
			Cooldown:    0.2,
			BulletSpeed: 2000,
			Damage:      15,
			Spread:      0.05,
			MeleeRange:  1,
			MaxDistance: 60,
		},
	}
}

func testPlayerSpec() prefabs.PlayerSpec {
	return prefabs.PlayerSpec{
		MoveSpeed: 10,
		Health:    100,
		Collider:  prefabs.ColliderSpec{Width: 40, Height: 40},
		Weapon: prefabs.WeaponSpec{
			Cooldown:    0.15,
			BulletSpeed: 4000,
			Damage:      100,
			MeleeRange:  1,
			MaxDistance: 60,
		},
		Inventory: prefabs.InventorySpec{SmallPowerups: 2, BigPowerups: 2},
		Effects:   prefabs.EffectSpec{SmallDuration: 1, BigDuration: 1},
	}
}

func (h *harness) spawnEnemy(t *testing.T, pos common.Vec2) ecs.Entity {
	t.Helper()
	e, err := entity.NewEnemyAt(h.w, h.pw, pos, testEnemySpec())
	require.NoError(t, err)
	return e
}

func (h *harness) spawnPlayer(t *testing.T, pos common.Vec2) ecs.Entity {
	t.Helper()
	e, err := entity.NewPlayerAt(h.w, h.pw, pos, testPlayerSpec())
	require.NoError(t, err)
	return e
}

func (h *harness) spawnStats(t *testing.T, enemies int) *component.Stats {
	t.Helper()
	e := ecs.CreateEntity(h.w)
	stats := &component.Stats{EnemiesRemaining: enemies}
	require.NoError(t, ecs.Add(h.w, e, component.StatsComponent.Kind(), stats))
	return stats
}

func (h *harness) ai(t *testing.T, e ecs.Entity) *component.EnemyAI {
	t.Helper()
	ai, ok := ecs.Get(h.w, e, component.EnemyAIComponent.Kind())
	require.True(t, ok)
	return ai
}

func (h *harness) position(t *testing.T, e ecs.Entity) common.Vec2 {
	t.Helper()
	tr, ok := ecs.Get(h.w, e, component.TransformComponent.Kind())
	require.True(t, ok)
	return tr.Position()
}

// fakeNav returns a fixed answer and counts queries.
type fakeNav struct {
	path  []common.Vec2
	ok    bool
	calls int
}

func (n *fakeNav) FindPath(start, goal common.Vec2) ([]common.Vec2, bool) {
	n.calls++
	if !n.ok {
		return nil, false
	}
	return append([]common.Vec2(nil), n.path...), true
}

func (h *harness) spawnPickup(t *testing.T, pos common.Vec2, kind component.EffectKind) ecs.Entity {
	t.Helper()
	e, err := entity.NewPickupAt(h.w, h.pw, pos, kind, prefabs.PickupSpec{Collider: prefabs.ColliderSpec{Width: 30, Height: 30}})
	require.NoError(t, err)
	return e
}
