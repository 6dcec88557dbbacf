package component

import "github.com/milk9111/arena/common"

// PlayerIntent is the per-tick input for the player. MoveX/MoveY are the raw
// stick or WASD axes (right, forward); the camera basis turns them into a
// world direction. Dodge and attack flags are edge triggered and cleared once
// the player system has consumed them.
type PlayerIntent struct {
	MoveX float64
	MoveY float64

	CameraForward common.Vec3
	CameraRight   common.Vec3

	Dodge       bool
	LightAttack bool
	HeavyAttack bool
}

var PlayerIntentComponent = NewComponent[PlayerIntent]()
