package entity

import (
	"fmt"

	"github.com/milk9111/angeldust/ecs"
	"github.com/milk9111/angeldust/ecs/component"
	"github.com/milk9111/angeldust/prefabs"
)

// NewCamera creates the camera entity holding the viewport.
func NewCamera(w *ecs.World, spec prefabs.ViewportSpec) (ecs.Entity, error) {
	entity := ecs.CreateEntity(w)

	if err := ecs.Add(w, entity, component.CameraTagComponent.Kind(), &component.CameraTag{}); err != nil {
		return 0, fmt.Errorf("camera: add camera tag: %w", err)
	}

	if err := ecs.Add(w, entity, component.ViewportComponent.Kind(), &component.Viewport{
		Width:  spec.Width,
		Height: spec.Height,
	}); err != nil {
		return 0, fmt.Errorf("camera: add viewport: %w", err)
	}

	return entity, nil
}
