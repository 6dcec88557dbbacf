package common

import "math"

// Vec3 is a position or direction in arena space. Y is up; the arena floor is
// the XZ plane.
type Vec3 struct {
	X, Y, Z float64
}

var (
	Up      = Vec3{Y: 1}
	Forward = Vec3{Z: 1}
	Right   = Vec3{X: 1}
)

func (v Vec3) Add(o Vec3) Vec3      { return Vec3{v.X + o.X, v.Y + o.Y, v.Z + o.Z} }
func (v Vec3) Sub(o Vec3) Vec3      { return Vec3{v.X - o.X, v.Y - o.Y, v.Z - o.Z} }
func (v Vec3) Scale(s float64) Vec3 { return Vec3{v.X * s, v.Y * s, v.Z * s} }

func (v Vec3) Length() float64 {
	return math.Sqrt(v.X*v.X + v.Y*v.Y + v.Z*v.Z)
}

// Normalize returns the unit vector of v, or the zero vector when v has no
// length.
func (v Vec3) Normalize() Vec3 {
	l := v.Length()
	if l <= 1e-9 {
		return Vec3{}
	}
	return Vec3{v.X / l, v.Y / l, v.Z / l}
}

// Flat drops the vertical component.
func (v Vec3) Flat() Vec3 {
	return Vec3{X: v.X, Z: v.Z}
}

func (v Vec3) IsZero() bool {
	return v.X == 0 && v.Y == 0 && v.Z == 0
}

func Distance(a, b Vec3) float64 {
	return b.Sub(a).Length()
}

// FlatDistance is the distance between a and b measured on the arena floor.
func FlatDistance(a, b Vec3) float64 {
	return b.Sub(a).Flat().Length()
}

// Direction returns the unit vector pointing from a to b.
func Direction(a, b Vec3) Vec3 {
	return b.Sub(a).Normalize()
}

// YawOf returns the heading of a horizontal direction. Yaw 0 faces +Z and
// grows toward +X.
func YawOf(dir Vec3) float64 {
	return math.Atan2(dir.X, dir.Z)
}

// YawForward is the inverse of YawOf.
func YawForward(yaw float64) Vec3 {
	return Vec3{X: math.Sin(yaw), Z: math.Cos(yaw)}
}

// LerpAngle interpolates between two angles in radians along the shortest arc.
func LerpAngle(a, b, t float64) float64 {
	t = Clamp(t, 0, 1)
	d := math.Mod(b-a, 2*math.Pi)
	if d > math.Pi {
		d -= 2 * math.Pi
	} else if d < -math.Pi {
		d += 2 * math.Pi
	}
	return Lerp(a, a+d, t)
}

func Lerp(a, b, t float64) float64 {
	return a + t*(b-a)
}

func Clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// ClampToRadius keeps p's floor position within radius of the origin.
func ClampToRadius(p Vec3, radius float64) Vec3 {
	if radius <= 0 {
		return p
	}
	flat := p.Flat()
	d := flat.Length()
	if d <= radius {
		return p
	}
	flat = flat.Scale(radius / d)
	return Vec3{X: flat.X, Y: p.Y, Z: flat.Z}
}
