package ecs

import "github.com/milk9111/angeldust/common"

// WeaponFired is raised whenever a weapon is discharged, hit or miss.
type WeaponFired struct {
	Position common.Vec2
	Shooter  Entity
}

// TargetHit is raised when a projectile or point-blank shot connects with an entity.
type TargetHit struct {
	Entity Entity
	Source Entity
	Damage float64
}

// EnemyKilled is raised once when an enemy's health reaches zero.
type EnemyKilled struct {
	Entity   Entity
	Position common.Vec2
}

// EventQueue is a single-tick FIFO queue. Every consumer sees every event
// pushed earlier in the same tick; the owning world clears it after its last
// system has run.
type EventQueue[T any] struct {
	items []T
}

// NewEventQueue creates a queue whose contents are flushed at the end of each
// World.Update.
func NewEventQueue[T any](w *World) *EventQueue[T] {
	q := &EventQueue[T]{}
	if w != nil {
		w.queues = append(w.queues, q)
	}
	return q
}

// Push adds an event.
func (q *EventQueue[T]) Push(evt T) {
	if q == nil {
		return
	}
	q.items = append(q.items, evt)
}

// Items returns the events raised so far this tick without consuming them.
func (q *EventQueue[T]) Items() []T {
	if q == nil {
		return nil
	}
	return q.items
}

func (q *EventQueue[T]) Len() int {
	if q == nil {
		return 0
	}
	return len(q.items)
}

func (q *EventQueue[T]) flush() {
	if q == nil {
		return
	}
	clear(q.items)
	q.items = q.items[:0]
}
