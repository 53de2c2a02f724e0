package ecs

import "github.com/milk9111/angeldust/ecs/component"

// ForEach calls fn for every alive entity holding a component of kind.
// Entities destroyed or stripped by fn earlier in the same pass are skipped.
func ForEach[A any](w *World, a component.ComponentKind[A], fn func(Entity, *A)) {
	sa := storeFor(w, a, false)
	if sa == nil || fn == nil {
		return
	}
	for _, id := range sa.ids() {
		e, ok := w.entities.current(id)
		if !ok {
			continue
		}
		va, ok := sa.get(id)
		if !ok {
			continue
		}
		fn(e, va)
	}
}

func ForEach2[A, B any](w *World, a component.ComponentKind[A], b component.ComponentKind[B], fn func(Entity, *A, *B)) {
	sa := storeFor(w, a, false)
	sb := storeFor(w, b, false)
	if sa == nil || sb == nil || fn == nil {
		return
	}
	for _, id := range smallest(sa, sb).ids() {
		e, ok := w.entities.current(id)
		if !ok {
			continue
		}
		va, okA := sa.get(id)
		vb, okB := sb.get(id)
		if !okA || !okB {
			continue
		}
		fn(e, va, vb)
	}
}

func ForEach3[A, B, C any](w *World, a component.ComponentKind[A], b component.ComponentKind[B], c component.ComponentKind[C], fn func(Entity, *A, *B, *C)) {
	sa := storeFor(w, a, false)
	sb := storeFor(w, b, false)
	sc := storeFor(w, c, false)
	if sa == nil || sb == nil || sc == nil || fn == nil {
		return
	}
	for _, id := range smallest(sa, sb, sc).ids() {
		e, ok := w.entities.current(id)
		if !ok {
			continue
		}
		va, okA := sa.get(id)
		vb, okB := sb.get(id)
		vc, okC := sc.get(id)
		if !okA || !okB || !okC {
			continue
		}
		fn(e, va, vb, vc)
	}
}

func ForEach4[A, B, C, D any](w *World, a component.ComponentKind[A], b component.ComponentKind[B], c component.ComponentKind[C], d component.ComponentKind[D], fn func(Entity, *A, *B, *C, *D)) {
	sa := storeFor(w, a, false)
	sb := storeFor(w, b, false)
	sc := storeFor(w, c, false)
	sd := storeFor(w, d, false)
	if sa == nil || sb == nil || sc == nil || sd == nil || fn == nil {
		return
	}
	for _, id := range smallest(sa, sb, sc, sd).ids() {
		e, ok := w.entities.current(id)
		if !ok {
			continue
		}
		va, okA := sa.get(id)
		vb, okB := sb.get(id)
		vc, okC := sc.get(id)
		vd, okD := sd.get(id)
		if !okA || !okB || !okC || !okD {
			continue
		}
		fn(e, va, vb, vc, vd)
	}
}

// First returns the first alive entity holding a component of kind.
func First[A any](w *World, a component.ComponentKind[A]) (Entity, bool) {
	sa := storeFor(w, a, false)
	if sa == nil {
		return 0, false
	}
	for _, id := range sa.dense {
		if e, ok := w.entities.current(id); ok {
			return e, true
		}
	}
	return 0, false
}

// Count returns how many entities hold a component of kind.
func Count[A any](w *World, a component.ComponentKind[A]) int {
	sa := storeFor(w, a, false)
	if sa == nil {
		return 0
	}
	return sa.len()
}

// iterate smaller set
func smallest(sets ...storage) storage {
	best := sets[0]
	for _, s := range sets[1:] {
		if s.len() < best.len() {
			best = s
		}
	}
	return best
}
