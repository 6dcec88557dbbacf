// Package arena wires the combat systems into one steppable simulation.
package arena

import (
	"fmt"
	"log"

	"github.com/milk9111/arena/common"
	"github.com/milk9111/arena/ecs"
	"github.com/milk9111/arena/ecs/component"
	"github.com/milk9111/arena/ecs/entity"
	"github.com/milk9111/arena/ecs/system"
	"github.com/milk9111/arena/prefabs"
)

type Options struct {
	// Tuning defaults to prefabs.DefaultTuning.
	Tuning *prefabs.Tuning
	Seed   int64
	// Random overrides Seed.
	Random system.Random
	// Spawner overrides the prefab-driven entity factory.
	Spawner system.Spawner
	Logger  *log.Logger
}

// Simulation owns one match: the world, its systems and the match and wave
// state. Restart empties the world, the deferred queue and the event queue
// and builds the match again on top of them. Entity handles from an earlier
// match are stale afterwards.
type Simulation struct {
	opts     Options
	tuning   prefabs.Tuning
	logger   *log.Logger
	restarts int64

	world       *ecs.World
	queue       *system.DeferredQueue
	spatial     *system.SpatialIndex
	combat      *system.Combat
	match       *system.MatchController
	waves       *system.WaveDirector
	enemies     *system.EnemySystem
	players     *system.PlayerSystem
	projectiles *system.ProjectileSystem
	despawn     *system.DespawnSystem
	scheduler   *ecs.Scheduler
	spawner     system.Spawner

	player ecs.Entity
}

func New(opts Options) (*Simulation, error) {
	s := &Simulation{opts: opts, logger: opts.Logger}
	if s.logger == nil {
		s.logger = log.Default()
	}
	s.tuning = prefabs.DefaultTuning()
	if opts.Tuning != nil {
		s.tuning = *opts.Tuning
	}
	if err := s.tuning.Validate(); err != nil {
		return nil, fmt.Errorf("arena: tuning: %w", err)
	}
	s.world = ecs.NewWorld()
	s.queue = system.NewDeferredQueue()
	s.spatial = system.NewSpatialIndex()
	if err := s.build(); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *Simulation) build() error {
	t := s.tuning

	s.reset()
	s.spatial.AddWall(t.Arena.Radius, t.Arena.WallSegments)
	s.combat = system.NewCombat(s.queue, t.EnemyAI.DeathGrace, s.logger)

	s.spawner = s.opts.Spawner
	if s.spawner == nil {
		s.spawner = entity.Factory{Tuning: t}
	}

	rng := s.opts.Random
	if rng == nil {
		rng = system.NewRandom(s.opts.Seed + s.restarts)
	}

	s.match = system.NewMatchController(s.world.Events(), s.logger)
	s.waves = system.NewWaveDirector(system.WaveConfig{
		Base:         t.Wave.Base,
		Scaling:      t.Wave.Scaling,
		Cap:          t.Wave.Cap,
		InitialDelay: t.Wave.InitialDelay,
		Interval:     t.Wave.Interval,
		SpawnRadius:  t.Arena.Radius,
		SpawnHeight:  t.Wave.SpawnHeight,
		Weights: [3]float64{
			t.Enemies.Rusher.Weight,
			t.Enemies.Brute.Weight,
			t.Enemies.Caster.Weight,
		},
	}, s.spawner, rng, s.match, s.logger)
	if t.Wave.Script != "" {
		script, err := system.LoadWaveScript(t.Wave.Script)
		if err != nil {
			s.logger.Printf("arena: %v; using formula", err)
		} else {
			s.waves.SetScript(script)
		}
	}
	s.match.SetWaveSource(s.waves.Wave)

	s.enemies = system.NewEnemySystem(system.EnemyConfig{
		WindUp:        t.EnemyAI.WindUp,
		TurnRate:      t.EnemyAI.TurnRate,
		RetreatBand:   t.EnemyAI.RetreatBand,
		ApproachBand:  t.EnemyAI.ApproachBand,
		RetreatStep:   t.EnemyAI.RetreatStep,
		ArenaRadius:   t.Arena.Radius,
		LaunchHeight:  t.Projectile.LaunchHeight,
		LaunchForward: t.Projectile.LaunchForward,
		AimHeight:     t.Projectile.AimHeight,
	}, s.queue, s.combat, s.spawner, s.logger)
	s.players = system.NewPlayerSystem(s.queue, s.combat, s.spatial, t.Arena.Radius)
	s.projectiles = system.NewProjectileSystem(s.spatial, s.combat)
	s.despawn = system.NewDespawnSystem(s.spatial)

	// Death notifications are delivered synchronously, so counters read
	// later in the same tick are already current.
	s.match.Subscribe(s.world.Events())
	s.waves.Subscribe(s.world.Events())

	s.scheduler = ecs.NewScheduler(
		s.match,
		s.queue,
		s.waves,
		s.enemies,
		s.players,
		s.projectiles,
		s.despawn,
	)

	player, err := entity.NewPlayer(s.world, t.Player, common.Vec3{}, system.InitialPlayerState())
	if err != nil {
		return fmt.Errorf("arena: %w", err)
	}
	s.player = player

	if _, err := entity.NewPillars(s.world, t.Arena.Pillars); err != nil {
		return fmt.Errorf("arena: %w", err)
	}
	s.spatial.Sync(s.world)

	s.match.Start()
	return nil
}

// reset drops every entity, pending action, queued event and listener left
// by the previous match.
func (s *Simulation) reset() {
	for _, e := range ecs.Entities(s.world) {
		ecs.DestroyEntity(s.world, e)
	}
	s.world.Events().Reset()
	s.queue.Reset()
	s.spatial.Sync(s.world)
}

// Tick advances the whole simulation by dt seconds. Nothing moves while
// paused.
func (s *Simulation) Tick(dt float64) {
	if dt <= 0 || s.match.Paused() {
		return
	}
	s.scheduler.Update(s.world, dt)
}

// Restart discards the match and builds a fresh one with the same tuning.
func (s *Simulation) Restart() error {
	s.restarts++
	s.logger.Printf("arena: restart")
	return s.build()
}

// Reload swaps in new tuning and restarts. Invalid tuning is rejected and
// the running match is left alone.
func (s *Simulation) Reload(t prefabs.Tuning) error {
	if err := t.Validate(); err != nil {
		return fmt.Errorf("arena: reload: %w", err)
	}
	s.tuning = t
	s.opts.Tuning = &t
	return s.Restart()
}

func (s *Simulation) TogglePause() bool {
	return s.match.TogglePause()
}

// SetIntent replaces the player's input for the next tick.
func (s *Simulation) SetIntent(intent component.PlayerIntent) {
	if in, ok := ecs.Get(s.world, s.player, component.PlayerIntentComponent.Kind()); ok {
		*in = intent
	}
}

// SpawnEnemy adds an enemy outside of any wave.
func (s *Simulation) SpawnEnemy(archetype component.Archetype, pos common.Vec3) (ecs.Entity, error) {
	return s.spawner.SpawnEnemy(s.world, archetype, pos)
}

// Events drains everything published since the last call.
func (s *Simulation) Events() []ecs.Event {
	return s.world.Events().Drain()
}

func (s *Simulation) World() *ecs.World              { return s.world }
func (s *Simulation) Player() ecs.Entity             { return s.player }
func (s *Simulation) Tuning() prefabs.Tuning         { return s.tuning }
func (s *Simulation) Match() *system.MatchController { return s.match }
func (s *Simulation) Waves() *system.WaveDirector    { return s.waves }
func (s *Simulation) Spatial() *system.SpatialIndex  { return s.spatial }
func (s *Simulation) Now() float64                   { return s.queue.Now() }
func (s *Simulation) Pending() int                   { return s.queue.Len() }

func (s *Simulation) PlayerHealth() component.ResourcePool {
	if h, ok := ecs.Get(s.world, s.player, component.HealthComponent.Kind()); ok {
		return *h
	}
	return component.ResourcePool{}
}

func (s *Simulation) PlayerStamina() component.ResourcePool {
	if st, ok := ecs.Get(s.world, s.player, component.StaminaComponent.Kind()); ok {
		return *st
	}
	return component.ResourcePool{}
}

func (s *Simulation) PlayerAlive() bool {
	h := s.PlayerHealth()
	return !h.Empty()
}

// PlayerState is the name of the player's current state.
func (s *Simulation) PlayerState() string {
	if sm, ok := ecs.Get(s.world, s.player, component.PlayerStateMachineComponent.Kind()); ok && sm.State != nil {
		return sm.State.Name()
	}
	return ""
}

func (s *Simulation) Active() bool          { return s.match.Active() }
func (s *Simulation) Paused() bool          { return s.match.Paused() }
func (s *Simulation) Over() bool            { return s.match.Over() }
func (s *Simulation) FormattedTime() string { return s.match.FormattedTime() }
func (s *Simulation) Wave() int             { return s.waves.Wave() }
func (s *Simulation) EnemiesAlive() int     { return s.waves.EnemiesAlive() }
