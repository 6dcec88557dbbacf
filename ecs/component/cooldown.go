package component

const (
	CooldownDodge  = "dodge"
	CooldownRoll   = "roll"
	CooldownAttack = "attack"
)

// cooldownEpsilon absorbs float drift so a timer triggered for d seconds is
// ready after ticks summing to d.
const cooldownEpsilon = 1e-9

// Cooldowns holds independently named countdown timers in seconds.
type Cooldowns struct {
	remaining map[string]float64
}

func NewCooldowns() Cooldowns {
	return Cooldowns{remaining: make(map[string]float64)}
}

// Tick counts every active timer down by dt, flooring at zero.
func (c *Cooldowns) Tick(dt float64) {
	if dt <= 0 {
		return
	}
	for name, left := range c.remaining {
		left -= dt
		if left <= cooldownEpsilon {
			left = 0
		}
		c.remaining[name] = left
	}
}

// Trigger (re)starts a timer.
func (c *Cooldowns) Trigger(name string, duration float64) {
	if c.remaining == nil {
		c.remaining = make(map[string]float64)
	}
	c.remaining[name] = max(duration, 0)
}

// Ready is true when the timer is zero or was never started.
func (c *Cooldowns) Ready(name string) bool {
	return c.remaining[name] <= 0
}

func (c *Cooldowns) Remaining(name string) float64 {
	return c.remaining[name]
}

var CooldownsComponent = NewComponent[Cooldowns]()
