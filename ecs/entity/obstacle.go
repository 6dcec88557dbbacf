package entity

import (
	"fmt"
	"math"

	"github.com/milk9111/arena/common"
	"github.com/milk9111/arena/ecs"
	"github.com/milk9111/arena/ecs/component"
	"github.com/milk9111/arena/prefabs"
)

func NewObstacle(w *ecs.World, pos common.Vec3, radius float64) (_ ecs.Entity, err error) {
	entity := ecs.CreateEntity(w)
	defer discardOnError(w, entity, &err)

	if err = ecs.Add(w, entity, component.ObstacleTagComponent.Kind(), &component.ObstacleTag{}); err != nil {
		return 0, fmt.Errorf("obstacle: add obstacle tag: %w", err)
	}

	if err = ecs.Add(w, entity, component.TransformComponent.Kind(), &component.Transform{Position: pos, Scale: 1}); err != nil {
		return 0, fmt.Errorf("obstacle: add transform: %w", err)
	}

	if err = ecs.Add(w, entity, component.ColliderComponent.Kind(), &component.Collider{
		Radius: radius,
		Tag:    component.TagOther,
	}); err != nil {
		return 0, fmt.Errorf("obstacle: add collider: %w", err)
	}

	return entity, nil
}

// NewPillars rings the arena with evenly spaced pillars.
func NewPillars(w *ecs.World, spec prefabs.PillarsSpec) ([]ecs.Entity, error) {
	out := make([]ecs.Entity, 0, spec.Count)
	for i := 0; i < spec.Count; i++ {
		angle := 2 * math.Pi * float64(i) / float64(spec.Count)
		pos := common.Vec3{X: math.Cos(angle) * spec.Distance, Z: math.Sin(angle) * spec.Distance}
		e, err := NewObstacle(w, pos, spec.Radius)
		if err != nil {
			return out, fmt.Errorf("obstacle: pillar %d: %w", i, err)
		}
		out = append(out, e)
	}
	return out, nil
}
