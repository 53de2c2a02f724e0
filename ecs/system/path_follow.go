package system

import (
	"math"

	"github.com/milk9111/angeldust/common"
	"github.com/milk9111/angeldust/ecs"
	"github.com/milk9111/angeldust/ecs/component"
)

const defaultArrivalTolerance = 1.0

// PathFollowSystem walks alert enemies along their paths, one waypoint at a
// time, and returns them to idle after the last one.
type PathFollowSystem struct {
	clock *common.TimeCounter

	// ArrivalTolerance is how close to a waypoint counts as reached, in world units.
	ArrivalTolerance float64
}

func NewPathFollowSystem(clock *common.TimeCounter) *PathFollowSystem {
	return &PathFollowSystem{clock: clock, ArrivalTolerance: defaultArrivalTolerance}
}

func (s *PathFollowSystem) Update(w *ecs.World) {
	if s == nil || w == nil {
		return
	}

	dt := s.clock.Delta()
	tolerance := s.ArrivalTolerance
	if tolerance <= 0 {
		tolerance = defaultArrivalTolerance
	}

	ecs.ForEach3(w, component.EnemyAIComponent.Kind(), component.TransformComponent.Kind(), component.MovementComponent.Kind(), func(_ ecs.Entity, ai *component.EnemyAI, t *component.Transform, m *component.Movement) {
		waypoint, ok := ai.Waypoint()
		if !ok {
			return
		}

		pos := t.Position()
		to := waypoint.Sub(pos)
		remaining := to.Len()
		if remaining <= tolerance {
			ai.Advance()
			return
		}

		dir := to.Scale(1 / remaining)
		step := math.Min(m.Speed*common.TileSize*dt, remaining)
		t.SetPosition(pos.Add(dir.Scale(step)))
		t.Rotation = common.RotationTo(dir)

		if remaining-step <= tolerance {
			ai.Advance()
		}
	})
}
