package entity

import (
	"github.com/milk9111/arena/common"
	"github.com/milk9111/arena/ecs"
	"github.com/milk9111/arena/ecs/component"
	"github.com/milk9111/arena/prefabs"
)

// Factory spawns arena entities from one tuning snapshot.
type Factory struct {
	Tuning prefabs.Tuning
}

func (f Factory) SpawnEnemy(w *ecs.World, archetype component.Archetype, pos common.Vec3) (ecs.Entity, error) {
	return NewEnemy(w, f.Tuning.Enemies, archetype, pos)
}

func (f Factory) SpawnProjectile(w *ecs.World, origin, direction common.Vec3, damage float64) (ecs.Entity, error) {
	return NewProjectile(w, f.Tuning.Projectile, origin, direction, damage)
}

// discardOnError destroys a half-built entity when its builder fails.
func discardOnError(w *ecs.World, e ecs.Entity, err *error) {
	if *err != nil {
		ecs.DestroyEntity(w, e)
	}
}
