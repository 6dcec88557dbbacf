package component

// ResourcePool is a clamped quantity such as health or stamina.
// Every mutation keeps 0 <= Current <= Max.
type ResourcePool struct {
	Current float64
	Max     float64
}

// NewResourcePool returns a full pool.
func NewResourcePool(capacity float64) ResourcePool {
	if capacity < 0 {
		capacity = 0
	}
	return ResourcePool{Current: capacity, Max: capacity}
}

// Spend subtracts amount if the pool can afford it. It reports false and
// leaves the pool untouched otherwise.
func (p *ResourcePool) Spend(amount float64) bool {
	if amount < 0 || p.Current < amount {
		return false
	}
	p.Current -= amount
	return true
}

func (p *ResourcePool) Restore(amount float64) {
	if amount <= 0 {
		return
	}
	p.Current = min(p.Current+amount, p.Max)
}

// Damage subtracts amount, floored at zero. It reports true only on the call
// that takes the pool from above zero to zero.
func (p *ResourcePool) Damage(amount float64) bool {
	if amount <= 0 || p.Current <= 0 {
		return false
	}
	p.Current = max(p.Current-amount, 0)
	return p.Current == 0
}

func (p *ResourcePool) Regen(rate, dt float64) {
	if rate <= 0 || dt <= 0 {
		return
	}
	p.Current = min(p.Current+rate*dt, p.Max)
}

func (p *ResourcePool) Empty() bool {
	return p.Current <= 0
}

// Fraction is Current/Max, 0 for an empty-capacity pool.
func (p *ResourcePool) Fraction() float64 {
	if p.Max <= 0 {
		return 0
	}
	return p.Current / p.Max
}

var HealthComponent = NewComponent[ResourcePool]()
var StaminaComponent = NewComponent[ResourcePool]()
