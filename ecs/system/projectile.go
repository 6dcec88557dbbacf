package system

import (
	"github.com/milk9111/arena/ecs"
	"github.com/milk9111/arena/ecs/component"
)

// ProjectileSystem integrates projectiles in a straight line and resolves
// their first contact. A player contact deals damage; enemies and other
// projectiles are passed through; anything else stops the shot.
type ProjectileSystem struct {
	spatial *SpatialIndex
	combat  *Combat
}

func NewProjectileSystem(spatial *SpatialIndex, combat *Combat) *ProjectileSystem {
	return &ProjectileSystem{spatial: spatial, combat: combat}
}

func (s *ProjectileSystem) Update(w *ecs.World, dt float64) {
	if s == nil || w == nil {
		return
	}

	ecs.ForEach2(w, component.ProjectileComponent.Kind(), component.TransformComponent.Kind(), func(e ecs.Entity, p *component.Projectile, t *component.Transform) {
		if !p.Alive {
			s.destroy(w, e)
			return
		}

		p.Age += dt
		if p.Lifetime > 0 && p.Age >= p.Lifetime {
			p.Alive = false
			s.destroy(w, e)
			return
		}

		t.Position = t.Position.Add(p.Direction.Scale(p.Speed * dt))

		radius := 0.0
		if c, ok := ecs.Get(w, e, component.ColliderComponent.Kind()); ok {
			radius = c.Radius
		}
		if s.resolve(w, e, p, s.spatial.Overlap(w, t.Position, radius)) {
			p.Alive = false
			s.destroy(w, e)
		}
	})
}

// resolve reports whether the projectile is spent. The player takes priority
// over scenery reached on the same tick.
func (s *ProjectileSystem) resolve(w *ecs.World, self ecs.Entity, p *component.Projectile, hits []Overlap) bool {
	blocked := false
	for _, o := range hits {
		if o.Entity == self && o.Tag == component.TagProjectile {
			continue
		}
		switch o.Tag {
		case component.TagPlayer:
			s.combat.DamagePlayer(w, o.Entity, p.Damage)
			return true
		case component.TagEnemy, component.TagProjectile:
		default:
			blocked = true
		}
	}
	return blocked
}

func (s *ProjectileSystem) destroy(w *ecs.World, e ecs.Entity) {
	s.spatial.Remove(e)
	ecs.DestroyEntity(w, e)
}
