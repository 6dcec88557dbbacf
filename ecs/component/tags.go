package component

type PlayerTag struct{}

var PlayerTagComponent = NewComponent[PlayerTag]()

type EnemyTag struct{}

var EnemyTagComponent = NewComponent[EnemyTag]()

type ProjectileTag struct{}

var ProjectileTagComponent = NewComponent[ProjectileTag]()

// ObstacleTag marks static scenery such as pillars.
type ObstacleTag struct{}

var ObstacleTagComponent = NewComponent[ObstacleTag]()

// Despawn marks an entity for removal at the end of the tick.
type Despawn struct{}

var DespawnComponent = NewComponent[Despawn]()
