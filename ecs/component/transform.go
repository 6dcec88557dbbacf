package component

import "github.com/milk9111/arena/common"

// Transform is an entity's position in arena space (Y up) and its horizontal
// facing as a yaw angle in radians, 0 facing +Z.
type Transform struct {
	Position common.Vec3
	Yaw      float64
	Scale    float64
}

// Forward returns the horizontal unit vector the entity faces.
func (t *Transform) Forward() common.Vec3 {
	return common.YawForward(t.Yaw)
}

var TransformComponent = NewComponent[Transform]()
