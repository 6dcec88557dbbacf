package system

import (
	"log"

	"github.com/milk9111/arena/common"
	"github.com/milk9111/arena/ecs"
	"github.com/milk9111/arena/ecs/component"
)

// Spawner creates arena entities on request.
type Spawner interface {
	SpawnEnemy(w *ecs.World, archetype component.Archetype, pos common.Vec3) (ecs.Entity, error)
	SpawnProjectile(w *ecs.World, origin, direction common.Vec3, damage float64) (ecs.Entity, error)
}

// lookThreshold is the shortest horizontal look vector worth turning toward.
const lookThreshold = 0.1

type EnemyConfig struct {
	WindUp       float64
	TurnRate     float64
	RetreatBand  float64
	ApproachBand float64
	RetreatStep  float64
	ArenaRadius  float64

	LaunchHeight  float64
	LaunchForward float64
	AimHeight     float64
}

// EnemySystem positions every live enemy relative to the player and starts
// attacks when in range.
type EnemySystem struct {
	cfg     EnemyConfig
	queue   *DeferredQueue
	combat  *Combat
	spawner Spawner
	logger  *log.Logger
}

func NewEnemySystem(cfg EnemyConfig, queue *DeferredQueue, combat *Combat, spawner Spawner, logger *log.Logger) *EnemySystem {
	if logger == nil {
		logger = log.Default()
	}
	return &EnemySystem{cfg: cfg, queue: queue, combat: combat, spawner: spawner, logger: logger}
}

func (s *EnemySystem) Update(w *ecs.World, dt float64) {
	if s == nil || w == nil {
		return
	}

	var target common.Vec3
	playerEnt, hasPlayer := w.First(component.PlayerTagComponent.Kind())
	if hasPlayer {
		player, ok := ecs.Get(w, playerEnt, component.PlayerComponent.Kind())
		pt, okT := ecs.Get(w, playerEnt, component.TransformComponent.Kind())
		hasPlayer = ok && okT && !player.Dead
		if hasPlayer {
			target = pt.Position
		}
	}

	ecs.ForEach2(w, component.EnemyComponent.Kind(), component.TransformComponent.Kind(), func(e ecs.Entity, enemy *component.Enemy, t *component.Transform) {
		if enemy.Dead {
			return
		}
		cooldowns, ok := ecs.Get(w, e, component.CooldownsComponent.Kind())
		if ok {
			cooldowns.Tick(dt)
		}
		if !hasPlayer {
			return
		}

		enemy.Destination = EnemyDestination(enemy, t, target, s.cfg)
		s.steer(w, e, enemy, t, dt)
		s.face(t, target, dt)

		if cooldowns == nil {
			return
		}
		if common.FlatDistance(t.Position, target) <= enemy.Stats.Range && cooldowns.Ready(component.CooldownAttack) {
			cooldowns.Trigger(component.CooldownAttack, enemy.Stats.Cooldown)
			s.scheduleAttack(w, e, playerEnt)
		}
	})
}

// EnemyDestination picks where an enemy walks this tick. Melee archetypes
// chase the player. Casters back off when closer than the retreat band,
// close to the approach band when out of range, and otherwise hold.
func EnemyDestination(enemy *component.Enemy, t *component.Transform, target common.Vec3, cfg EnemyConfig) common.Vec3 {
	if !enemy.Archetype.Ranged() {
		return target
	}

	pos := t.Position
	dist := common.FlatDistance(pos, target)
	rng := enemy.Stats.Range
	switch {
	case dist < rng*cfg.RetreatBand:
		away := pos.Sub(target).Flat().Normalize()
		if away.IsZero() {
			away = t.Forward().Scale(-1)
		}
		return pos.Add(away.Scale(cfg.RetreatStep))
	case dist > rng:
		toSelf := pos.Sub(target).Flat().Normalize()
		return target.Add(toSelf.Scale(rng * cfg.ApproachBand))
	default:
		return pos
	}
}

// steer walks straight toward the destination without overshooting it.
func (s *EnemySystem) steer(w *ecs.World, e ecs.Entity, enemy *component.Enemy, t *component.Transform, dt float64) {
	to := enemy.Destination.Sub(t.Position).Flat()
	dist := to.Length()
	step := enemy.Stats.Speed * dt
	if dist <= 1e-9 || step <= 0 {
		return
	}
	if step > dist {
		step = dist
	}
	next := t.Position.Add(to.Scale(step / dist))
	if s.cfg.ArenaRadius > 0 {
		limit := s.cfg.ArenaRadius
		if c, ok := ecs.Get(w, e, component.ColliderComponent.Kind()); ok {
			limit -= c.Radius
		}
		next = common.ClampToRadius(next, limit)
	}
	t.Position = next
}

func (s *EnemySystem) face(t *component.Transform, target common.Vec3, dt float64) {
	look := target.Sub(t.Position).Flat()
	if look.Length() <= lookThreshold {
		return
	}
	t.Yaw = common.LerpAngle(t.Yaw, common.YawOf(look), min(1, s.cfg.TurnRate*dt))
}

// scheduleAttack lands the attack after the wind-up. Melee hits re-check
// range at impact; ranged shots aim at where the player is at fire time.
// Nothing happens if the attacker died during the wind-up.
func (s *EnemySystem) scheduleAttack(w *ecs.World, e, playerEnt ecs.Entity) {
	s.queue.Schedule(s.cfg.WindUp, func() {
		enemy, ok := ecs.Get(w, e, component.EnemyComponent.Kind())
		if !ok || enemy.Dead {
			return
		}
		t, ok := ecs.Get(w, e, component.TransformComponent.Kind())
		if !ok {
			return
		}
		pt, ok := ecs.Get(w, playerEnt, component.TransformComponent.Kind())
		if !ok {
			return
		}

		if !enemy.Archetype.Ranged() {
			if common.FlatDistance(t.Position, pt.Position) <= enemy.Stats.Range {
				s.combat.DamagePlayer(w, playerEnt, enemy.Stats.Damage)
			}
			return
		}

		if s.spawner == nil {
			return
		}
		origin := t.Position.Add(common.Up.Scale(s.cfg.LaunchHeight)).Add(t.Forward().Scale(s.cfg.LaunchForward))
		aim := pt.Position.Add(common.Up.Scale(s.cfg.AimHeight))
		if _, err := s.spawner.SpawnProjectile(w, origin, common.Direction(origin, aim), enemy.Stats.Damage); err != nil {
			s.logger.Printf("enemy: %s spawn projectile: %v", enemy.Archetype, err)
		}
	})
}
