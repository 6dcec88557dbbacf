package component

// CollisionTag is how an area query classifies what it found.
type CollisionTag int

const (
	TagOther CollisionTag = iota
	TagPlayer
	TagEnemy
	TagProjectile
)

func (t CollisionTag) String() string {
	switch t {
	case TagPlayer:
		return "player"
	case TagEnemy:
		return "enemy"
	case TagProjectile:
		return "projectile"
	default:
		return "other"
	}
}

// Collider is a horizontal circle used for area queries.
type Collider struct {
	Radius float64
	Tag    CollisionTag
}

var ColliderComponent = NewComponent[Collider]()
