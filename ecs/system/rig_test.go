package system

import (
	"io"
	"log"
	"testing"

	"github.com/milk9111/arena/common"
	"github.com/milk9111/arena/ecs"
	"github.com/milk9111/arena/ecs/component"
	"github.com/milk9111/arena/ecs/entity"
	"github.com/milk9111/arena/prefabs"
)

const testDt = 0.05

// rig is a world with the combat systems wired like the arena, minus the
// wave director and match controller.
type rig struct {
	w           *ecs.World
	tuning      prefabs.Tuning
	queue       *DeferredQueue
	spatial     *SpatialIndex
	combat      *Combat
	players     *PlayerSystem
	enemies     *EnemySystem
	projectiles *ProjectileSystem
	despawn     *DespawnSystem
	factory     entity.Factory
	player      ecs.Entity
}

func quietLogger() *log.Logger {
	return log.New(io.Discard, "", 0)
}

func newRig(t *testing.T) *rig {
	t.Helper()
	tu := prefabs.DefaultTuning()
	r := &rig{
		w:       ecs.NewWorld(),
		tuning:  tu,
		queue:   NewDeferredQueue(),
		spatial: NewSpatialIndex(),
		factory: entity.Factory{Tuning: tu},
	}
	r.combat = NewCombat(r.queue, tu.EnemyAI.DeathGrace, quietLogger())
	r.players = NewPlayerSystem(r.queue, r.combat, r.spatial, tu.Arena.Radius)
	r.enemies = NewEnemySystem(EnemyConfig{
		WindUp:        tu.EnemyAI.WindUp,
		TurnRate:      tu.EnemyAI.TurnRate,
		RetreatBand:   tu.EnemyAI.RetreatBand,
		ApproachBand:  tu.EnemyAI.ApproachBand,
		RetreatStep:   tu.EnemyAI.RetreatStep,
		ArenaRadius:   tu.Arena.Radius,
		LaunchHeight:  tu.Projectile.LaunchHeight,
		LaunchForward: tu.Projectile.LaunchForward,
		AimHeight:     tu.Projectile.AimHeight,
	}, r.queue, r.combat, r.factory, quietLogger())
	r.projectiles = NewProjectileSystem(r.spatial, r.combat)
	r.despawn = NewDespawnSystem(r.spatial)

	p, err := entity.NewPlayer(r.w, tu.Player, common.Vec3{}, InitialPlayerState())
	if err != nil {
		t.Fatalf("spawn player: %v", err)
	}
	r.player = p
	return r
}

// tick runs one frame in arena order.
func (r *rig) tick(dt float64) {
	r.queue.Update(r.w, dt)
	r.enemies.Update(r.w, dt)
	r.players.Update(r.w, dt)
	r.projectiles.Update(r.w, dt)
	r.despawn.Update(r.w, dt)
}

// tickPlayer runs only the clock and the player, so enemies stay put.
func (r *rig) tickPlayer(dt float64) {
	r.queue.Update(r.w, dt)
	r.players.Update(r.w, dt)
	r.despawn.Update(r.w, dt)
}

func (r *rig) spawnEnemy(t *testing.T, a component.Archetype, pos common.Vec3) ecs.Entity {
	t.Helper()
	e, err := r.factory.SpawnEnemy(r.w, a, pos)
	if err != nil {
		t.Fatalf("spawn %s: %v", a, err)
	}
	return e
}

func (r *rig) setIntent(in component.PlayerIntent) {
	if cur, ok := ecs.Get(r.w, r.player, component.PlayerIntentComponent.Kind()); ok {
		*cur = in
	}
}

func (r *rig) playerComp(t *testing.T) *component.Player {
	t.Helper()
	p, ok := ecs.Get(r.w, r.player, component.PlayerComponent.Kind())
	if !ok {
		t.Fatal("player component missing")
	}
	return p
}

func (r *rig) playerTransform(t *testing.T) *component.Transform {
	t.Helper()
	tr, ok := ecs.Get(r.w, r.player, component.TransformComponent.Kind())
	if !ok {
		t.Fatal("player transform missing")
	}
	return tr
}

func (r *rig) health(t *testing.T, e ecs.Entity) float64 {
	t.Helper()
	h, ok := ecs.Get(r.w, e, component.HealthComponent.Kind())
	if !ok {
		t.Fatalf("entity %v has no health", e)
	}
	return h.Current
}

func (r *rig) stamina(t *testing.T) float64 {
	t.Helper()
	s, ok := ecs.Get(r.w, r.player, component.StaminaComponent.Kind())
	if !ok {
		t.Fatal("player stamina missing")
	}
	return s.Current
}

func (r *rig) playerStateName() string {
	sm, ok := ecs.Get(r.w, r.player, component.PlayerStateMachineComponent.Kind())
	if !ok || sm.State == nil {
		return ""
	}
	return sm.State.Name()
}

func (r *rig) position(t *testing.T, e ecs.Entity) common.Vec3 {
	t.Helper()
	tr, ok := ecs.Get(r.w, e, component.TransformComponent.Kind())
	if !ok {
		t.Fatalf("entity %v has no transform", e)
	}
	return tr.Position
}

// tickProjectiles runs only the clock and projectiles.
func (r *rig) tickProjectiles(dt float64) {
	r.queue.Update(r.w, dt)
	r.projectiles.Update(r.w, dt)
	r.despawn.Update(r.w, dt)
}
