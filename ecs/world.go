package ecs

import "github.com/milk9111/angeldust/ecs/component"

type flusher interface {
	flush()
}

// World owns entities, components, system order and the per-tick event queues.
type World struct {
	entities entityStore
	stores   map[component.ComponentID]storage
	systems  Scheduler
	queues   []flusher
}

// NewWorld creates an empty ECS world.
func NewWorld() *World {
	return &World{stores: make(map[component.ComponentID]storage)}
}

// CreateEntity allocates a new entity.
func CreateEntity(w *World) Entity {
	return w.entities.create()
}

// DestroyEntity removes every component of e and invalidates the handle.
func DestroyEntity(w *World, e Entity) bool {
	if w == nil || !w.entities.isAlive(e) {
		return false
	}
	for _, s := range w.stores {
		s.remove(e.id())
	}
	return w.entities.destroy(e)
}

// IsAlive reports whether an entity handle is valid.
func IsAlive(w *World, e Entity) bool {
	if w == nil {
		return false
	}
	return w.entities.isAlive(e)
}

// Entities returns all alive entities in slot order.
func Entities(w *World) []Entity {
	if w == nil {
		return nil
	}
	return w.entities.list()
}

// AddSystem appends a system to the update order.
func (w *World) AddSystem(s System) {
	if w == nil {
		return
	}
	w.systems.Add(s)
}

// AddLabeledSystem registers a named system that runs after the given labels.
func (w *World) AddLabeledSystem(label string, s System, after ...string) error {
	if w == nil {
		return nil
	}
	return w.systems.AddLabeled(label, s, after...)
}

// Scheduler exposes the world's system order.
func (w *World) Scheduler() *Scheduler {
	if w == nil {
		return nil
	}
	return &w.systems
}

// Update runs all systems once, then clears every event queue.
func (w *World) Update() {
	if w == nil {
		return
	}
	w.systems.Update(w)
	for _, q := range w.queues {
		q.flush()
	}
}

func storeFor[T any](w *World, kind component.ComponentKind[T], create bool) *sparseSet[T] {
	if w == nil || !kind.Valid() {
		return nil
	}
	if w.stores == nil {
		w.stores = make(map[component.ComponentID]storage)
	}
	s, ok := w.stores[kind.ID()]
	if !ok {
		if !create {
			return nil
		}
		set := &sparseSet[T]{}
		w.stores[kind.ID()] = set
		return set
	}
	set, _ := s.(*sparseSet[T])
	return set
}
