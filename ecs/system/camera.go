package system

import (
	"github.com/milk9111/angeldust/ecs"
	"github.com/milk9111/angeldust/ecs/component"
)

// CameraSystem keeps the viewport centred on the player.
type CameraSystem struct{}

func NewCameraSystem() *CameraSystem {
	return &CameraSystem{}
}

func (s *CameraSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}

	_, pos, ok := playerPosition(w)
	if !ok {
		return
	}

	ecs.ForEach(w, component.ViewportComponent.Kind(), func(_ ecs.Entity, v *component.Viewport) {
		v.CenterX = pos.X
		v.CenterY = pos.Y
	})
}
