package ecs

import (
	"errors"
	"fmt"
)

// System updates a world each frame.
type System interface {
	Update(w *World)
}

var (
	ErrDuplicateLabel = errors.New("ecs: duplicate system label")
	ErrUnknownLabel   = errors.New("ecs: unknown system label")
	ErrSystemCycle    = errors.New("ecs: system ordering cycle")
)

type scheduled struct {
	label  string
	system System
	after  []string
}

// Scheduler runs systems in an order derived from their "after" labels.
// Systems without constraints keep insertion order.
type Scheduler struct {
	entries []scheduled
	order   []System
	dirty   bool
}

func NewScheduler(systems ...System) *Scheduler {
	s := &Scheduler{}
	for _, system := range systems {
		s.Add(system)
	}
	return s
}

// Add appends an unlabeled system that runs after everything added before it.
func (s *Scheduler) Add(system System) {
	if system == nil {
		return
	}
	after := make([]string, 0, 1)
	if n := len(s.entries); n > 0 && s.entries[n-1].label != "" {
		after = append(after, s.entries[n-1].label)
	}
	s.entries = append(s.entries, scheduled{system: system, after: after})
	s.dirty = true
}

// AddLabeled registers a named system that must run after the given labels.
func (s *Scheduler) AddLabeled(label string, system System, after ...string) error {
	if system == nil {
		return nil
	}
	for _, e := range s.entries {
		if label != "" && e.label == label {
			return fmt.Errorf("%w: %s", ErrDuplicateLabel, label)
		}
	}
	s.entries = append(s.entries, scheduled{label: label, system: system, after: append([]string(nil), after...)})
	s.dirty = true
	return nil
}

func (s *Scheduler) Update(w *World) {
	if s.dirty {
		if err := s.resolve(); err != nil {
			panic("scheduler: " + err.Error())
		}
	}
	for _, system := range s.order {
		system.Update(w)
	}
}

// Systems returns the resolved run order.
func (s *Scheduler) Systems() ([]System, error) {
	if s.dirty {
		if err := s.resolve(); err != nil {
			return nil, err
		}
	}
	systems := make([]System, 0, len(s.order))
	return append(systems, s.order...), nil
}

func (s *Scheduler) resolve() error {
	index := make(map[string]int, len(s.entries))
	for i, e := range s.entries {
		if e.label != "" {
			index[e.label] = i
		}
	}

	indegree := make([]int, len(s.entries))
	next := make([][]int, len(s.entries))
	for i, e := range s.entries {
		for _, dep := range e.after {
			j, ok := index[dep]
			if !ok {
				return fmt.Errorf("%w: %q required by %q", ErrUnknownLabel, dep, e.label)
			}
			next[j] = append(next[j], i)
			indegree[i]++
		}
	}

	order := make([]System, 0, len(s.entries))
	done := make([]bool, len(s.entries))
	for len(order) < len(s.entries) {
		picked := -1
		for i := range s.entries {
			if !done[i] && indegree[i] == 0 {
				picked = i
				break
			}
		}
		if picked < 0 {
			return ErrSystemCycle
		}
		done[picked] = true
		order = append(order, s.entries[picked].system)
		for _, n := range next[picked] {
			indegree[n]--
		}
	}

	s.order = order
	s.dirty = false
	return nil
}
