package system

import (
	"log/slog"

	"github.com/milk9111/angeldust/ecs"
	"github.com/milk9111/angeldust/ecs/component"
)

// HearingSystem sends idle and alert enemies toward gunshots within their
// hearing range. Enemies in combat keep their target; a gunshot only lets a
// stuck one retry its chase.
type HearingSystem struct {
	nav    NavQuery
	events *Events
}

func NewHearingSystem(nav NavQuery, events *Events) *HearingSystem {
	return &HearingSystem{nav: nav, events: events}
}

func (s *HearingSystem) Update(w *ecs.World) {
	if s == nil || w == nil || s.nav == nil || s.events == nil {
		return
	}

	for _, shot := range s.events.Fired.Items() {
		ecs.ForEach2(w, component.EnemyAIComponent.Kind(), component.TransformComponent.Kind(), func(e ecs.Entity, ai *component.EnemyAI, t *component.Transform) {
			if e == shot.Shooter {
				return
			}
			pos := t.Position()
			if pos.Dist(shot.Position) > ai.HearingRange {
				return
			}
			if ai.State == component.AICombat {
				ai.Unreachable = false
				return
			}
			path, ok := s.nav.FindPath(pos, shot.Position)
			if !ok {
				return
			}
			ai.EnterAlert(path)
			slog.Debug("enemy heard shot", "enemy", e, "origin", shot.Position, "waypoints", len(path))
		})
	}
}
