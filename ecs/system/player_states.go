package system

import (
	"github.com/milk9111/arena/common"
	"github.com/milk9111/arena/ecs/component"
)

// Player state singletons (avoid allocations on transitions).
var (
	playerStateIdle  component.PlayerState = &playerIdleState{}
	playerStateDodge component.PlayerState = &playerDodgeState{}
	playerStateLight component.PlayerState = &playerAttackState{kind: component.AttackLight}
	playerStateHeavy component.PlayerState = &playerAttackState{kind: component.AttackHeavy}
	playerStateDead  component.PlayerState = &playerDeadState{}
)

// InitialPlayerState is the state a freshly spawned player starts in.
func InitialPlayerState() component.PlayerState { return playerStateIdle }

type playerIdleState struct{}

type playerDodgeState struct{}

type playerAttackState struct {
	kind component.AttackKind
}

type playerDeadState struct{}

// Idle covers both standing and moving.
func (playerIdleState) Name() string                            { return "idle" }
func (playerIdleState) Enter(ctx *component.PlayerStateContext) {}
func (playerIdleState) Exit(ctx *component.PlayerStateContext)  {}
func (playerIdleState) HandleInput(ctx *component.PlayerStateContext) {
	if ctx == nil || ctx.Intent == nil || ctx.ChangeState == nil {
		return
	}
	p := ctx.Player
	if ctx.Intent.Dodge && ctx.Cooldowns.Ready(component.CooldownDodge) && ctx.Stamina.Current >= p.DodgeCost {
		ctx.ChangeState(playerStateDodge)
		return
	}

	var next component.PlayerState
	var attack component.Attack
	switch {
	case ctx.Intent.LightAttack:
		next, attack = playerStateLight, p.Light
	case ctx.Intent.HeavyAttack:
		next, attack = playerStateHeavy, p.Heavy
	default:
		return
	}
	if ctx.Cooldowns.Ready(component.CooldownAttack) && ctx.Stamina.Current >= attack.Cost {
		ctx.ChangeState(next)
	}
}
func (playerIdleState) Update(ctx *component.PlayerStateContext) {
	if ctx == nil || ctx.MoveDir.IsZero() {
		return
	}
	p := ctx.Player
	if ctx.Move != nil {
		ctx.Move(ctx.MoveDir.Scale(p.MoveSpeed * ctx.Dt))
	}
	target := common.YawOf(ctx.MoveDir)
	ctx.Transform.Yaw = common.LerpAngle(ctx.Transform.Yaw, target, p.RotationSpeed*ctx.Dt)
}

func (playerDodgeState) Name() string { return "dodge" }
func (playerDodgeState) Enter(ctx *component.PlayerStateContext) {
	p := ctx.Player
	if !ctx.Stamina.Spend(p.DodgeCost) {
		return
	}
	p.Invulnerable = true
	ctx.Cooldowns.Trigger(component.CooldownRoll, p.DodgeDuration)
	ctx.Cooldowns.Trigger(component.CooldownDodge, p.DodgeCooldown)
	if !ctx.MoveDir.IsZero() {
		p.DodgeDir = ctx.MoveDir
	} else {
		p.DodgeDir = ctx.Transform.Forward()
	}
}
func (playerDodgeState) Exit(ctx *component.PlayerStateContext) {
	ctx.Player.Invulnerable = false
}
func (playerDodgeState) HandleInput(ctx *component.PlayerStateContext) {}
func (playerDodgeState) Update(ctx *component.PlayerStateContext) {
	if ctx.Cooldowns.Ready(component.CooldownRoll) {
		ctx.ChangeState(playerStateIdle)
		return
	}
	p := ctx.Player
	if ctx.Move != nil {
		ctx.Move(p.DodgeDir.Scale(p.DodgeSpeed * ctx.Dt))
	}
}

func (s playerAttackState) Name() string { return s.kind.String() + "_attack" }
func (s playerAttackState) Enter(ctx *component.PlayerStateContext) {
	p := ctx.Player
	attack := p.Attack(s.kind)
	if !ctx.Stamina.Spend(attack.Cost) {
		return
	}
	p.Attacking = true
	ctx.Cooldowns.Trigger(component.CooldownAttack, attack.Cooldown)
	if ctx.StartAttack != nil {
		ctx.StartAttack(s.kind)
	}
}
func (playerAttackState) Exit(ctx *component.PlayerStateContext) {
	ctx.Player.Attacking = false
}
func (playerAttackState) HandleInput(ctx *component.PlayerStateContext) {}
func (playerAttackState) Update(ctx *component.PlayerStateContext)      {}

func (playerDeadState) Name() string                                  { return "dead" }
func (playerDeadState) Enter(ctx *component.PlayerStateContext)       {}
func (playerDeadState) Exit(ctx *component.PlayerStateContext)        {}
func (playerDeadState) HandleInput(ctx *component.PlayerStateContext) {}
func (playerDeadState) Update(ctx *component.PlayerStateContext)      {}
