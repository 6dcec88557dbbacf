package entity

import (
	"fmt"

	"github.com/milk9111/arena/common"
	"github.com/milk9111/arena/ecs"
	"github.com/milk9111/arena/ecs/component"
	"github.com/milk9111/arena/prefabs"
)

// NewEnemy spawns an enemy whose stat block is derived once from its
// archetype.
func NewEnemy(w *ecs.World, spec prefabs.EnemiesSpec, archetype component.Archetype, pos common.Vec3) (_ ecs.Entity, err error) {
	stats := spec.For(archetype).Stats()

	entity := ecs.CreateEntity(w)
	defer discardOnError(w, entity, &err)

	if err = ecs.Add(w, entity, component.EnemyTagComponent.Kind(), &component.EnemyTag{}); err != nil {
		return 0, fmt.Errorf("enemy: add enemy tag: %w", err)
	}

	if err = ecs.Add(w, entity, component.EnemyComponent.Kind(), &component.Enemy{
		Archetype:   archetype,
		Stats:       stats,
		Destination: pos,
	}); err != nil {
		return 0, fmt.Errorf("enemy: add enemy component: %w", err)
	}

	if err = ecs.Add(w, entity, component.TransformComponent.Kind(), &component.Transform{
		Position: pos,
		Yaw:      common.YawOf(common.Vec3{}.Sub(pos)),
		Scale:    stats.Scale,
	}); err != nil {
		return 0, fmt.Errorf("enemy: add transform: %w", err)
	}

	health := component.NewResourcePool(stats.Health)
	if err = ecs.Add(w, entity, component.HealthComponent.Kind(), &health); err != nil {
		return 0, fmt.Errorf("enemy: add health: %w", err)
	}

	cooldowns := component.NewCooldowns()
	if err = ecs.Add(w, entity, component.CooldownsComponent.Kind(), &cooldowns); err != nil {
		return 0, fmt.Errorf("enemy: add cooldowns: %w", err)
	}

	if err = ecs.Add(w, entity, component.ColliderComponent.Kind(), &component.Collider{
		Radius: spec.ColliderRadius * stats.Scale,
		Tag:    component.TagEnemy,
	}); err != nil {
		return 0, fmt.Errorf("enemy: add collider: %w", err)
	}

	return entity, nil
}
