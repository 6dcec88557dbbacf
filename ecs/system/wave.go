package system

import (
	"log"
	"math"

	"github.com/milk9111/arena/common"
	"github.com/milk9111/arena/ecs"
	"github.com/milk9111/arena/ecs/component"
)

type WavePhase int

const (
	WaveWaiting WavePhase = iota
	WaveActive
)

func (p WavePhase) String() string {
	if p == WaveActive {
		return "active"
	}
	return "waiting"
}

type WaveConfig struct {
	Base         float64
	Scaling      float64
	Cap          int
	InitialDelay float64
	Interval     float64
	SpawnRadius  float64
	SpawnHeight  float64
	// Weights are relative spawn chances indexed by archetype.
	Weights [3]float64
}

// Gate reports whether the match is running.
type Gate interface {
	Active() bool
}

// WaveDirector spawns escalating waves and tracks how many of their enemies
// are still alive.
type WaveDirector struct {
	cfg     WaveConfig
	spawner Spawner
	rng     Random
	gate    Gate
	script  *WaveScript
	logger  *log.Logger

	wave    int
	phase   WavePhase
	timer   float64
	alive   map[ecs.Entity]struct{}
	spawned map[component.Archetype]int
}

func NewWaveDirector(cfg WaveConfig, spawner Spawner, rng Random, gate Gate, logger *log.Logger) *WaveDirector {
	if logger == nil {
		logger = log.Default()
	}
	return &WaveDirector{
		cfg:     cfg,
		spawner: spawner,
		rng:     rng,
		gate:    gate,
		logger:  logger,
		phase:   WaveWaiting,
		timer:   cfg.InitialDelay,
		alive:   make(map[ecs.Entity]struct{}),
		spawned: make(map[component.Archetype]int),
	}
}

// SetScript makes wave sizes come from script, nil restores the formula.
func (d *WaveDirector) SetScript(script *WaveScript) {
	d.script = script
}

// Subscribe hooks the director to enemy deaths on q.
func (d *WaveDirector) Subscribe(q *ecs.EventQueue) {
	q.Subscribe(EventEnemyDied, func(evt ecs.Event) {
		d.OnEnemyDeath(evt.Entity)
	})
}

func (d *WaveDirector) Update(w *ecs.World, dt float64) {
	if d == nil || (d.gate != nil && !d.gate.Active()) {
		return
	}

	switch d.phase {
	case WaveWaiting:
		d.timer -= dt
		if d.timer <= fireTolerance {
			d.timer = 0
			d.StartNextWave(w)
		}
	case WaveActive:
		if len(d.alive) == 0 {
			d.phase = WaveWaiting
			d.timer = d.cfg.Interval
			d.logger.Printf("wave: wave %d cleared, next in %.0fs", d.wave, d.cfg.Interval)
			w.Events().Push(ecs.Event{Type: EventWaveCleared, Data: WaveEvent{Wave: d.wave}})
		}
	}
}

// StartNextWave advances the wave index and spawns its enemies on the arena
// perimeter.
func (d *WaveDirector) StartNextWave(w *ecs.World) {
	d.wave++
	count := d.EnemyCount(d.wave)

	for i := 0; i < count; i++ {
		angle := d.rng.Angle() * math.Pi / 180
		pos := common.Vec3{
			X: math.Cos(angle) * d.cfg.SpawnRadius,
			Y: d.cfg.SpawnHeight,
			Z: math.Sin(angle) * d.cfg.SpawnRadius,
		}
		archetype := d.PickArchetype(d.rng.Float64())
		e, err := d.spawner.SpawnEnemy(w, archetype, pos)
		if err != nil {
			d.logger.Printf("wave: spawn %s: %v", archetype, err)
			continue
		}
		d.alive[e] = struct{}{}
		d.spawned[archetype]++
	}

	d.phase = WaveActive
	d.logger.Printf("wave: starting wave %d (%d enemies)", d.wave, len(d.alive))
	w.Events().Push(ecs.Event{Type: EventWaveStarted, Data: WaveEvent{Wave: d.wave, Enemies: len(d.alive)}})
}

// EnemyCount is the size of wave n, from the script when one is set.
func (d *WaveDirector) EnemyCount(wave int) int {
	if d.script != nil {
		n, err := d.script.Count(wave, d.cfg.Base, d.cfg.Scaling, d.cfg.Cap)
		if err == nil {
			return max(0, min(n, d.cfg.Cap))
		}
		d.logger.Printf("wave: %v; using formula", err)
	}
	return WaveEnemyCount(wave, d.cfg.Base, d.cfg.Scaling, d.cfg.Cap)
}

// WaveEnemyCount is floor(base * scaling^(wave-1)), capped.
func WaveEnemyCount(wave int, base, scaling float64, limit int) int {
	if wave < 1 {
		return 0
	}
	n := math.Floor(base * math.Pow(scaling, float64(wave-1)))
	if n >= float64(limit) || math.IsInf(n, 1) || math.IsNaN(n) {
		return limit
	}
	return max(0, int(n))
}

// PickArchetype maps a uniform roll in [0, 1) onto the weighted archetypes.
func (d *WaveDirector) PickArchetype(roll float64) component.Archetype {
	total := 0.0
	for _, wgt := range d.cfg.Weights {
		total += wgt
	}
	if total <= 0 {
		return component.Rusher
	}
	acc := 0.0
	for i, wgt := range d.cfg.Weights {
		acc += wgt / total
		if roll < acc {
			return component.Archetype(i)
		}
	}
	return component.Archetypes[len(component.Archetypes)-1]
}

// OnEnemyDeath removes e from the live population. Repeat calls for the
// same enemy and enemies from no wave are ignored.
func (d *WaveDirector) OnEnemyDeath(e ecs.Entity) {
	delete(d.alive, e)
}

func (d *WaveDirector) Wave() int {
	return d.wave
}

func (d *WaveDirector) EnemiesAlive() int {
	return len(d.alive)
}

func (d *WaveDirector) Phase() WavePhase {
	return d.phase
}

// TimeUntilNextWave is the remaining wait, zero while a wave is active.
func (d *WaveDirector) TimeUntilNextWave() float64 {
	if d.phase == WaveActive {
		return 0
	}
	return d.timer
}

// Spawned returns per-archetype spawn totals since the director was made.
func (d *WaveDirector) Spawned() map[component.Archetype]int {
	out := make(map[component.Archetype]int, len(d.spawned))
	for k, v := range d.spawned {
		out[k] = v
	}
	return out
}
