package component

import "github.com/milk9111/arena/common"

type Projectile struct {
	Direction common.Vec3
	Speed     float64
	Damage    float64
	Lifetime  float64
	Age       float64
	Alive     bool
}

// Initialize normalizes direction and marks the projectile live.
func (p *Projectile) Initialize(direction common.Vec3, speed, damage float64) {
	p.Direction = direction.Normalize()
	p.Speed = speed
	p.Damage = damage
	p.Age = 0
	p.Alive = true
}

var ProjectileComponent = NewComponent[Projectile]()
