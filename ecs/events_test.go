package ecs

import (
	"testing"

	"github.com/milk9111/angeldust/common"
	"github.com/stretchr/testify/assert"
)

type funcSystem func(w *World)

func (f funcSystem) Update(w *World) { f(w) }

func TestEventQueueSameTickConsumers(t *testing.T) {
	w := NewWorld()
	fired := NewEventQueue[WeaponFired](w)

	var first, second []WeaponFired
	w.AddSystem(funcSystem(func(*World) {
		fired.Push(WeaponFired{Position: common.V(1, 2)})
		fired.Push(WeaponFired{Position: common.V(3, 4)})
	}))
	w.AddSystem(funcSystem(func(*World) { first = append(first, fired.Items()...) }))
	w.AddSystem(funcSystem(func(*World) { second = append(second, fired.Items()...) }))

	w.Update()

	want := []WeaponFired{{Position: common.V(1, 2)}, {Position: common.V(3, 4)}}
	assert.Equal(t, want, first)
	assert.Equal(t, want, second)
	assert.Equal(t, 0, fired.Len(), "queue should be flushed after the tick")
}

func TestEventQueueLateConsumerMissesEvents(t *testing.T) {
	w := NewWorld()
	hits := NewEventQueue[TargetHit](w)

	seen := 0
	w.AddSystem(funcSystem(func(*World) { seen += hits.Len() }))
	w.AddSystem(funcSystem(func(*World) { hits.Push(TargetHit{Entity: 7}) }))

	w.Update()
	w.Update()

	assert.Equal(t, 0, seen)
}
