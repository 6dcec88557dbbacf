package entity

import (
	"fmt"

	"github.com/milk9111/arena/common"
	"github.com/milk9111/arena/ecs"
	"github.com/milk9111/arena/ecs/component"
	"github.com/milk9111/arena/prefabs"
)

func NewProjectile(w *ecs.World, spec prefabs.ProjectileSpec, origin, direction common.Vec3, damage float64) (_ ecs.Entity, err error) {
	entity := ecs.CreateEntity(w)
	defer discardOnError(w, entity, &err)

	if err = ecs.Add(w, entity, component.ProjectileTagComponent.Kind(), &component.ProjectileTag{}); err != nil {
		return 0, fmt.Errorf("projectile: add projectile tag: %w", err)
	}

	projectile := &component.Projectile{Lifetime: spec.Lifetime}
	projectile.Initialize(direction, spec.Speed, damage)
	if err = ecs.Add(w, entity, component.ProjectileComponent.Kind(), projectile); err != nil {
		return 0, fmt.Errorf("projectile: add projectile component: %w", err)
	}

	if err = ecs.Add(w, entity, component.TransformComponent.Kind(), &component.Transform{
		Position: origin,
		Yaw:      common.YawOf(projectile.Direction),
		Scale:    1,
	}); err != nil {
		return 0, fmt.Errorf("projectile: add transform: %w", err)
	}

	if err = ecs.Add(w, entity, component.ColliderComponent.Kind(), &component.Collider{
		Radius: spec.Radius,
		Tag:    component.TagProjectile,
	}); err != nil {
		return 0, fmt.Errorf("projectile: add collider: %w", err)
	}

	return entity, nil
}
