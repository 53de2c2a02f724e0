package ecs

import (
	"testing"

	"github.com/milk9111/angeldust/ecs/component"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type position struct{ X, Y float64 }

type velocity struct{ DX, DY float64 }

type label struct{ Name string }

type frozen struct{}

var (
	positionComponent = component.NewComponent[position]()
	velocityComponent = component.NewComponent[velocity]()
	labelComponent    = component.NewComponent[label]()
	frozenComponent   = component.NewComponent[frozen]()
)

func spawn(t *testing.T, w *World, name string, withVelocity, isFrozen bool) Entity {
	t.Helper()
	e := CreateEntity(w)
	require.NoError(t, Add(w, e, labelComponent.Kind(), &label{Name: name}))
	require.NoError(t, Add(w, e, positionComponent.Kind(), &position{}))
	if withVelocity {
		require.NoError(t, Add(w, e, velocityComponent.Kind(), &velocity{DX: 1}))
	}
	if isFrozen {
		require.NoError(t, Add(w, e, frozenComponent.Kind(), &frozen{}))
	}
	return e
}

func names(t *testing.T, w *World, ents []Entity) []string {
	t.Helper()
	out := make([]string, 0, len(ents))
	for _, e := range ents {
		l, ok := Get(w, e, labelComponent.Kind())
		require.True(t, ok)
		out = append(out, l.Name)
	}
	return out
}

func TestAddRejectsBadInput(t *testing.T) {
	w := NewWorld()
	alive := CreateEntity(w)
	dead := CreateEntity(w)
	require.True(t, DestroyEntity(w, dead))

	cases := []struct {
		name  string
		e     Entity
		value *position
		kind  component.ComponentKind[position]
		want  error
	}{
		{"ok", alive, &position{X: 1}, positionComponent.Kind(), nil},
		{"dead_entity", dead, &position{}, positionComponent.Kind(), component.ErrEntityNotAlive},
		{"zero_handle", 0, &position{}, positionComponent.Kind(), component.ErrEntityNotAlive},
		{"nil_value", alive, nil, positionComponent.Kind(), component.ErrNilComponent},
		{"zero_kind", alive, &position{}, component.ComponentKind[position]{}, component.ErrInvalidComponentKind},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			err := Add(w, c.e, c.kind, c.value)
			if c.want == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, c.want)
		})
	}
}

func TestGetReturnsStoredPointer(t *testing.T) {
	w := NewWorld()
	e := CreateEntity(w)
	require.NoError(t, Add(w, e, positionComponent.Kind(), &position{X: 1}))

	p, ok := Get(w, e, positionComponent.Kind())
	require.True(t, ok)
	p.X = 7

	again, ok := Get(w, e, positionComponent.Kind())
	require.True(t, ok)
	assert.Equal(t, 7.0, again.X)

	require.NoError(t, Add(w, e, positionComponent.Kind(), &position{X: 9}))
	again, _ = Get(w, e, positionComponent.Kind())
	assert.Equal(t, 9.0, again.X, "Add replaces an existing component")
	assert.Equal(t, 1, Count(w, positionComponent.Kind()))

	assert.True(t, Remove(w, e, positionComponent.Kind()))
	assert.False(t, Remove(w, e, positionComponent.Kind()))
	assert.False(t, Has(w, e, positionComponent.Kind()))
	assert.True(t, IsAlive(w, e), "removing a component keeps the entity")
}

func TestEntityHandleReuse(t *testing.T) {
	w := NewWorld()

	e := CreateEntity(w)
	require.NoError(t, Add(w, e, positionComponent.Kind(), &position{X: 1}))
	require.True(t, DestroyEntity(w, e))
	assert.False(t, DestroyEntity(w, e), "second destroy of the same handle")

	reused := CreateEntity(w)
	require.Equal(t, e.id(), reused.id(), "freed slot is reused")
	assert.Equal(t, e.generation()+1, reused.generation())
	assert.NotEqual(t, e, reused)
	assert.False(t, IsAlive(w, e))
	assert.True(t, IsAlive(w, reused))

	assert.False(t, Has(w, reused, positionComponent.Kind()), "components must not leak into the reused slot")
	_, ok := Get(w, e, positionComponent.Kind())
	assert.False(t, ok)
	assert.ErrorIs(t, Add(w, e, positionComponent.Kind(), &position{}), component.ErrEntityNotAlive)
	assert.False(t, Remove(w, e, positionComponent.Kind()))

	assert.Equal(t, []Entity{reused}, Entities(w))
}

func TestForEachMatchesAllKinds(t *testing.T) {
	w := NewWorld()
	spawn(t, w, "rock", false, false)
	spawn(t, w, "bird", true, false)
	spawn(t, w, "statue", true, true)
	spawn(t, w, "ice", false, true)

	collect := func(run func(visit func(Entity))) []string {
		var got []Entity
		run(func(e Entity) { got = append(got, e) })
		return names(t, w, got)
	}

	cases := []struct {
		name string
		run  func(visit func(Entity))
		want []string
	}{
		{"one_kind", func(visit func(Entity)) {
			ForEach(w, positionComponent.Kind(), func(e Entity, _ *position) { visit(e) })
		}, []string{"rock", "bird", "statue", "ice"}},
		{"two_kinds", func(visit func(Entity)) {
			ForEach2(w, positionComponent.Kind(), velocityComponent.Kind(), func(e Entity, _ *position, _ *velocity) { visit(e) })
		}, []string{"bird", "statue"}},
		{"three_kinds", func(visit func(Entity)) {
			ForEach3(w, positionComponent.Kind(), velocityComponent.Kind(), frozenComponent.Kind(), func(e Entity, _ *position, _ *velocity, _ *frozen) { visit(e) })
		}, []string{"statue"}},
		{"four_kinds", func(visit func(Entity)) {
			ForEach4(w, labelComponent.Kind(), positionComponent.Kind(), velocityComponent.Kind(), frozenComponent.Kind(), func(e Entity, _ *label, _ *position, _ *velocity, _ *frozen) { visit(e) })
		}, []string{"statue"}},
		{"unused_kind", func(visit func(Entity)) {
			ForEach(w, component.NewComponent[int]().Kind(), func(e Entity, _ *int) { visit(e) })
		}, nil},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			got := collect(c.run)
			if c.want == nil {
				assert.Empty(t, got)
				return
			}
			assert.ElementsMatch(t, c.want, got)
		})
	}
}

func TestForEachMutatesInPlace(t *testing.T) {
	w := NewWorld()
	e := spawn(t, w, "bird", true, false)

	for range 3 {
		ForEach2(w, positionComponent.Kind(), velocityComponent.Kind(), func(_ Entity, p *position, v *velocity) {
			p.X += v.DX
		})
	}

	p, ok := Get(w, e, positionComponent.Kind())
	require.True(t, ok)
	assert.Equal(t, 3.0, p.X)
}

func TestForEachStructuralChanges(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(w *World, current Entity, all []Entity)
		want   []string
	}{
		{
			name: "destroy_later_entity",
			mutate: func(w *World, current Entity, all []Entity) {
				if current == all[0] {
					DestroyEntity(w, all[2])
				}
			},
			want: []string{"a", "b", "d"},
		},
		{
			name: "destroy_current_entity",
			mutate: func(w *World, current Entity, _ []Entity) {
				DestroyEntity(w, current)
			},
			want: []string{"a", "b", "c", "d"},
		},
		{
			name: "strip_component_of_later_entity",
			mutate: func(w *World, current Entity, all []Entity) {
				if current == all[0] {
					Remove(w, all[3], velocityComponent.Kind())
				}
			},
			want: []string{"a", "b", "c"},
		},
		{
			name: "spawn_during_pass_is_not_visited",
			mutate: func(w *World, current Entity, all []Entity) {
				if current == all[0] {
					e := CreateEntity(w)
					_ = Add(w, e, labelComponent.Kind(), &label{Name: "late"})
					_ = Add(w, e, positionComponent.Kind(), &position{})
					_ = Add(w, e, velocityComponent.Kind(), &velocity{})
				}
			},
			want: []string{"a", "b", "c", "d"},
		},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			w := NewWorld()
			all := []Entity{
				spawn(t, w, "a", true, false),
				spawn(t, w, "b", true, false),
				spawn(t, w, "c", true, false),
				spawn(t, w, "d", true, false),
			}

			var visited []string
			ForEach2(w, positionComponent.Kind(), velocityComponent.Kind(), func(e Entity, _ *position, _ *velocity) {
				l, ok := Get(w, e, labelComponent.Kind())
				require.True(t, ok)
				visited = append(visited, l.Name)
				c.mutate(w, e, all)
			})

			assert.Equal(t, c.want, visited)
		})
	}
}

func TestFirstAndCount(t *testing.T) {
	w := NewWorld()

	_, ok := First(w, velocityComponent.Kind())
	assert.False(t, ok)
	assert.Zero(t, Count(w, velocityComponent.Kind()))

	spawn(t, w, "rock", false, false)
	bird := spawn(t, w, "bird", true, false)
	bat := spawn(t, w, "bat", true, false)

	first, ok := First(w, velocityComponent.Kind())
	require.True(t, ok)
	assert.Equal(t, bird, first)
	assert.Equal(t, 2, Count(w, velocityComponent.Kind()))
	assert.Equal(t, 3, Count(w, positionComponent.Kind()))

	require.True(t, DestroyEntity(w, bird))
	first, ok = First(w, velocityComponent.Kind())
	require.True(t, ok)
	assert.Equal(t, bat, first)
	assert.Equal(t, 1, Count(w, velocityComponent.Kind()))
}

func TestWorldUpdateRunsSystemsThenFlushes(t *testing.T) {
	w := NewWorld()
	hits := NewEventQueue[TargetHit](w)
	var seen []int

	w.AddSystem(funcSystem(func(*World) {
		seen = append(seen, hits.Len())
		hits.Push(TargetHit{Damage: 1})
	}))
	w.AddSystem(funcSystem(func(*World) { seen = append(seen, hits.Len()) }))

	w.Update()
	w.Update()

	assert.Equal(t, []int{0, 1, 0, 1}, seen)
	assert.Zero(t, hits.Len())
}

func TestNilWorldIsInert(t *testing.T) {
	var w *World
	assert.False(t, IsAlive(w, 1))
	assert.False(t, DestroyEntity(w, 1))
	assert.Nil(t, Entities(w))
	assert.Nil(t, w.Scheduler())
	assert.NotPanics(t, w.Update)
}
