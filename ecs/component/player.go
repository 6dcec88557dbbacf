package component

import "github.com/milk9111/arena/common"

// Attack is one melee swing profile.
type Attack struct {
	Damage   float64
	Cooldown float64
	Cost     float64
}

type AttackKind int

const (
	AttackLight AttackKind = iota
	AttackHeavy
)

func (k AttackKind) String() string {
	if k == AttackHeavy {
		return "heavy"
	}
	return "light"
}

type Player struct {
	MoveSpeed     float64
	RotationSpeed float64
	DodgeSpeed    float64
	DodgeDuration float64
	DodgeCooldown float64
	DodgeCost     float64
	StaminaRegen  float64
	AttackRange   float64
	Light         Attack
	Heavy         Attack

	Invulnerable bool
	Attacking    bool
	Dead         bool
	DodgeDir     common.Vec3
}

func (p *Player) Attack(kind AttackKind) Attack {
	if kind == AttackHeavy {
		return p.Heavy
	}
	return p.Light
}

var PlayerComponent = NewComponent[Player]()
