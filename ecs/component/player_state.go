package component

import "github.com/milk9111/arena/common"

// PlayerState defines the interface for player state machine states.
// Each state owns its own enter/exit, input handling, and update logic.
type PlayerState interface {
	Name() string
	Enter(ctx *PlayerStateContext)
	Exit(ctx *PlayerStateContext)
	HandleInput(ctx *PlayerStateContext)
	Update(ctx *PlayerStateContext)
}

// PlayerStateContext gives a state access to the player's data for one tick.
// Side effects that reach outside the player go through the callbacks.
type PlayerStateContext struct {
	Intent    *PlayerIntent
	Player    *Player
	Transform *Transform
	Stamina   *ResourcePool
	Cooldowns *Cooldowns

	// MoveDir is the camera-relative movement direction for this tick,
	// zero when there is no movement intent.
	MoveDir common.Vec3
	Dt      float64

	ChangeState func(state PlayerState)
	Move        func(delta common.Vec3)
	StartAttack func(kind AttackKind)
}

// PlayerStateMachine stores the active and pending states for the player.
type PlayerStateMachine struct {
	State   PlayerState
	Pending PlayerState
}

var PlayerStateMachineComponent = NewComponent[PlayerStateMachine]()
