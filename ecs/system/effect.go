package system

import (
	"log/slog"

	"github.com/milk9111/angeldust/common"
	"github.com/milk9111/angeldust/ecs"
	"github.com/milk9111/angeldust/ecs/component"
	"github.com/milk9111/angeldust/prefabs"
)

// EffectSystem starts power-up effects requested through Input and reverts
// them when they run out. A new effect replaces the active one.
type EffectSystem struct {
	clock     *common.TimeCounter
	durations prefabs.EffectSpec
}

func NewEffectSystem(clock *common.TimeCounter, durations prefabs.EffectSpec) *EffectSystem {
	return &EffectSystem{clock: clock, durations: durations}
}

func (s *EffectSystem) SetDurations(d prefabs.EffectSpec) {
	s.durations = d
}

func (s *EffectSystem) duration(kind component.EffectKind) float64 {
	switch kind {
	case component.EffectSmallPowerup:
		return s.durations.SmallDuration
	case component.EffectBigPowerup:
		return s.durations.BigDuration
	default:
		return 0
	}
}

func (s *EffectSystem) Update(w *ecs.World) {
	if s == nil || w == nil {
		return
	}

	dt := s.clock.Delta()
	stats := levelStats(w)

	ecs.ForEach(w, component.ActiveEffectComponent.Kind(), func(e ecs.Entity, effect *component.ActiveEffect) {
		m, _ := ecs.Get(w, e, component.MovementComponent.Kind())
		h, _ := ecs.Get(w, e, component.HealthComponent.Kind())
		if h != nil && h.Dead() {
			return
		}

		if input, ok := ecs.Get(w, e, component.InputComponent.Kind()); ok {
			if inv, ok := ecs.Get(w, e, component.InventoryComponent.Kind()); ok {
				requested := component.EffectNone
				switch {
				case input.UseBig:
					requested = component.EffectBigPowerup
				case input.UseSmall:
					requested = component.EffectSmallPowerup
				}
				if requested != component.EffectNone && inv.Take(requested) {
					if effect.Active() {
						effect.Kind.Revert(m, h)
					}
					requested.Apply(m, h)
					effect.Kind = requested
					effect.Timer = component.NewCountdown(s.duration(requested))
					if stats != nil {
						if requested == component.EffectSmallPowerup {
							stats.SmallPowerupsUsed++
						} else {
							stats.BigPowerupsUsed++
						}
					}
					slog.Debug("effect started", "entity", e, "effect", requested)
					return
				}
			}
		}

		if !effect.Active() {
			return
		}
		effect.Timer.Tick(dt)
		if effect.Timer.Finished() {
			slog.Debug("effect ended", "entity", e, "effect", effect.Kind)
			effect.Kind.Revert(m, h)
			effect.Kind = component.EffectNone
		}
	})
}
