package system

import (
	"log"

	"github.com/milk9111/arena/ecs"
	"github.com/milk9111/arena/ecs/component"
)

// Combat applies damage and turns the resulting deaths into events. It is the
// only path by which one entity changes another's health.
type Combat struct {
	queue      *DeferredQueue
	deathGrace float64
	logger     *log.Logger
}

func NewCombat(queue *DeferredQueue, deathGrace float64, logger *log.Logger) *Combat {
	if logger == nil {
		logger = log.Default()
	}
	return &Combat{queue: queue, deathGrace: deathGrace, logger: logger}
}

// DamagePlayer hurts the player unless it is invulnerable or already dead.
// It reports whether health changed.
func (c *Combat) DamagePlayer(w *ecs.World, e ecs.Entity, amount float64) bool {
	player, ok := ecs.Get(w, e, component.PlayerComponent.Kind())
	if !ok || player.Dead || player.Invulnerable || amount <= 0 {
		return false
	}
	health, ok := ecs.Get(w, e, component.HealthComponent.Kind())
	if !ok {
		return false
	}
	if !health.Damage(amount) {
		return true
	}

	player.Dead = true
	player.Attacking = false
	player.Invulnerable = false
	if sm, ok := ecs.Get(w, e, component.PlayerStateMachineComponent.Kind()); ok {
		sm.State = playerStateDead
		sm.Pending = nil
	}
	w.Events().Push(ecs.Event{Type: EventPlayerDied, Entity: e})
	return true
}

// DamageEnemy hurts a live enemy. On the killing blow the enemy turns Dead,
// EnemyDied is published before this returns, and removal is scheduled after
// the death grace period.
func (c *Combat) DamageEnemy(w *ecs.World, e ecs.Entity, amount float64) bool {
	enemy, ok := ecs.Get(w, e, component.EnemyComponent.Kind())
	if !ok || enemy.Dead || amount <= 0 {
		return false
	}
	health, ok := ecs.Get(w, e, component.HealthComponent.Kind())
	if !ok {
		return false
	}
	if !health.Damage(amount) {
		return true
	}

	enemy.Dead = true
	w.Events().Push(ecs.Event{Type: EventEnemyDied, Entity: e, Data: enemy.Archetype})

	despawn := func() {
		if err := ecs.Add(w, e, component.DespawnComponent.Kind(), &component.Despawn{}); err != nil {
			c.logger.Printf("combat: mark enemy %v for removal: %v", e, err)
		}
	}
	if c.queue == nil {
		despawn()
		return true
	}
	c.queue.Schedule(c.deathGrace, despawn)
	return true
}

// DespawnSystem destroys entities marked with Despawn and drops their
// spatial bodies.
type DespawnSystem struct {
	spatial *SpatialIndex
}

func NewDespawnSystem(spatial *SpatialIndex) *DespawnSystem {
	return &DespawnSystem{spatial: spatial}
}

func (s *DespawnSystem) Update(w *ecs.World, _ float64) {
	if w == nil {
		return
	}
	ecs.ForEach(w, component.DespawnComponent.Kind(), func(e ecs.Entity, _ *component.Despawn) {
		s.spatial.Remove(e)
		ecs.DestroyEntity(w, e)
	})
}
