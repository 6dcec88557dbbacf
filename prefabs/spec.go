package prefabs

import (
	"errors"
	"fmt"
	"os"

	"github.com/milk9111/arena/ecs/component"
	"gopkg.in/yaml.v3"
)

// TuningFile is the default tuning prefab name.
const TuningFile = "arena.yaml"

type Tuning struct {
	Player     PlayerSpec     `yaml:"player"`
	Enemies    EnemiesSpec    `yaml:"enemies"`
	EnemyAI    EnemyAISpec    `yaml:"enemy_ai"`
	Projectile ProjectileSpec `yaml:"projectile"`
	Wave       WaveSpec       `yaml:"wave"`
	Arena      ArenaSpec      `yaml:"arena"`
}

type AttackSpec struct {
	Damage   float64 `yaml:"damage"`
	Cooldown float64 `yaml:"cooldown"`
	Cost     float64 `yaml:"cost"`
}

type PlayerSpec struct {
	MoveSpeed      float64    `yaml:"move_speed"`
	RotationSpeed  float64    `yaml:"rotation_speed"`
	DodgeSpeed     float64    `yaml:"dodge_speed"`
	DodgeDuration  float64    `yaml:"dodge_duration"`
	DodgeCooldown  float64    `yaml:"dodge_cooldown"`
	DodgeCost      float64    `yaml:"dodge_cost"`
	AttackRange    float64    `yaml:"attack_range"`
	Health         float64    `yaml:"health"`
	Stamina        float64    `yaml:"stamina"`
	StaminaRegen   float64    `yaml:"stamina_regen"`
	ColliderRadius float64    `yaml:"collider_radius"`
	SpawnHeight    float64    `yaml:"spawn_height"`
	Light          AttackSpec `yaml:"light_attack"`
	Heavy          AttackSpec `yaml:"heavy_attack"`
}

type EnemySpec struct {
	Speed    float64 `yaml:"speed"`
	Health   float64 `yaml:"health"`
	Damage   float64 `yaml:"damage"`
	Range    float64 `yaml:"range"`
	Cooldown float64 `yaml:"cooldown"`
	Scale    float64 `yaml:"scale"`
	Weight   float64 `yaml:"weight"`
}

type EnemiesSpec struct {
	ColliderRadius float64   `yaml:"collider_radius"`
	Rusher         EnemySpec `yaml:"rusher"`
	Brute          EnemySpec `yaml:"brute"`
	Caster         EnemySpec `yaml:"caster"`
}

type EnemyAISpec struct {
	WindUp       float64 `yaml:"wind_up"`
	DeathGrace   float64 `yaml:"death_grace"`
	TurnRate     float64 `yaml:"turn_rate"`
	RetreatBand  float64 `yaml:"retreat_band"`
	ApproachBand float64 `yaml:"approach_band"`
	RetreatStep  float64 `yaml:"retreat_step"`
}

type ProjectileSpec struct {
	Speed         float64 `yaml:"speed"`
	Lifetime      float64 `yaml:"lifetime"`
	Radius        float64 `yaml:"radius"`
	LaunchHeight  float64 `yaml:"launch_height"`
	LaunchForward float64 `yaml:"launch_forward"`
	AimHeight     float64 `yaml:"aim_height"`
}

type WaveSpec struct {
	Base         float64 `yaml:"base"`
	Scaling      float64 `yaml:"scaling"`
	Cap          int     `yaml:"cap"`
	InitialDelay float64 `yaml:"initial_delay"`
	Interval     float64 `yaml:"interval"`
	SpawnHeight  float64 `yaml:"spawn_height"`
	Script       string  `yaml:"script"`
}

type PillarsSpec struct {
	Count    int     `yaml:"count"`
	Distance float64 `yaml:"distance"`
	Radius   float64 `yaml:"radius"`
}

type ArenaSpec struct {
	Radius       float64     `yaml:"radius"`
	WallSegments int         `yaml:"wall_segments"`
	Pillars      PillarsSpec `yaml:"pillars"`
}

// DefaultTuning returns the built-in balance values. arena.yaml carries the
// same numbers.
func DefaultTuning() Tuning {
	stat := func(a component.Archetype, weight float64) EnemySpec {
		s := component.DefaultEnemyStats(a)
		return EnemySpec{
			Speed:    s.Speed,
			Health:   s.Health,
			Damage:   s.Damage,
			Range:    s.Range,
			Cooldown: s.Cooldown,
			Scale:    s.Scale,
			Weight:   weight,
		}
	}
	return Tuning{
		Player: PlayerSpec{
			MoveSpeed:      5,
			RotationSpeed:  10,
			DodgeSpeed:     12,
			DodgeDuration:  0.5,
			DodgeCooldown:  1.0,
			DodgeCost:      25,
			AttackRange:    2.5,
			Health:         100,
			Stamina:        100,
			StaminaRegen:   15,
			ColliderRadius: 0.5,
			SpawnHeight:    1,
			Light:          AttackSpec{Damage: 15, Cooldown: 0.5, Cost: 10},
			Heavy:          AttackSpec{Damage: 35, Cooldown: 1.5, Cost: 30},
		},
		Enemies: EnemiesSpec{
			ColliderRadius: 0.5,
			Rusher:         stat(component.Rusher, 0.5),
			Brute:          stat(component.Brute, 0.3),
			Caster:         stat(component.Caster, 0.2),
		},
		EnemyAI: EnemyAISpec{
			WindUp:       0.3,
			DeathGrace:   2.0,
			TurnRate:     5,
			RetreatBand:  0.7,
			ApproachBand: 0.8,
			RetreatStep:  3,
		},
		Projectile: ProjectileSpec{
			Speed:         10,
			Lifetime:      5,
			Radius:        0.15,
			LaunchHeight:  1.5,
			LaunchForward: 0.5,
			AimHeight:     1,
		},
		Wave: WaveSpec{
			Base:         3,
			Scaling:      1.2,
			Cap:          20,
			InitialDelay: 3,
			Interval:     10,
			SpawnHeight:  0.5,
		},
		Arena: ArenaSpec{
			Radius:       15,
			WallSegments: 32,
			Pillars:      PillarsSpec{Count: 8, Distance: 10, Radius: 0.8},
		},
	}
}

func (s EnemiesSpec) For(a component.Archetype) EnemySpec {
	switch a {
	case component.Brute:
		return s.Brute
	case component.Caster:
		return s.Caster
	default:
		return s.Rusher
	}
}

func (s EnemySpec) Stats() component.EnemyStats {
	scale := s.Scale
	if scale <= 0 {
		scale = 1
	}
	return component.EnemyStats{
		Speed:    s.Speed,
		Health:   s.Health,
		Damage:   s.Damage,
		Range:    s.Range,
		Cooldown: s.Cooldown,
		Scale:    scale,
	}
}

func (a AttackSpec) Attack() component.Attack {
	return component.Attack{Damage: a.Damage, Cooldown: a.Cooldown, Cost: a.Cost}
}

func (p PlayerSpec) Player() component.Player {
	return component.Player{
		MoveSpeed:     p.MoveSpeed,
		RotationSpeed: p.RotationSpeed,
		DodgeSpeed:    p.DodgeSpeed,
		DodgeDuration: p.DodgeDuration,
		DodgeCooldown: p.DodgeCooldown,
		DodgeCost:     p.DodgeCost,
		StaminaRegen:  p.StaminaRegen,
		AttackRange:   p.AttackRange,
		Light:         p.Light.Attack(),
		Heavy:         p.Heavy.Attack(),
	}
}

// Validate reports every out-of-range value at once.
func (t Tuning) Validate() error {
	var errs []error
	positive := func(name string, v float64) {
		if v <= 0 {
			errs = append(errs, fmt.Errorf("%s must be > 0, got %v", name, v))
		}
	}
	nonNegative := func(name string, v float64) {
		if v < 0 {
			errs = append(errs, fmt.Errorf("%s must be >= 0, got %v", name, v))
		}
	}

	positive("player.health", t.Player.Health)
	positive("player.stamina", t.Player.Stamina)
	positive("player.move_speed", t.Player.MoveSpeed)
	positive("player.dodge_duration", t.Player.DodgeDuration)
	positive("player.attack_range", t.Player.AttackRange)
	positive("player.collider_radius", t.Player.ColliderRadius)
	nonNegative("player.dodge_cost", t.Player.DodgeCost)
	nonNegative("player.stamina_regen", t.Player.StaminaRegen)
	for name, a := range map[string]AttackSpec{"light_attack": t.Player.Light, "heavy_attack": t.Player.Heavy} {
		nonNegative("player."+name+".damage", a.Damage)
		positive("player."+name+".cooldown", a.Cooldown)
		nonNegative("player."+name+".cost", a.Cost)
	}

	positive("enemies.collider_radius", t.Enemies.ColliderRadius)
	weights := 0.0
	for _, a := range component.Archetypes {
		s := t.Enemies.For(a)
		prefix := "enemies." + a.String()
		positive(prefix+".health", s.Health)
		positive(prefix+".range", s.Range)
		positive(prefix+".cooldown", s.Cooldown)
		nonNegative(prefix+".speed", s.Speed)
		nonNegative(prefix+".damage", s.Damage)
		nonNegative(prefix+".weight", s.Weight)
		weights += s.Weight
	}
	if weights <= 0 {
		errs = append(errs, errors.New("enemies: spawn weights sum to zero"))
	}

	nonNegative("enemy_ai.wind_up", t.EnemyAI.WindUp)
	nonNegative("enemy_ai.death_grace", t.EnemyAI.DeathGrace)
	positive("enemy_ai.turn_rate", t.EnemyAI.TurnRate)
	if t.EnemyAI.RetreatBand <= 0 || t.EnemyAI.RetreatBand >= 1 {
		errs = append(errs, fmt.Errorf("enemy_ai.retreat_band must be in (0, 1), got %v", t.EnemyAI.RetreatBand))
	}
	if t.EnemyAI.ApproachBand <= 0 || t.EnemyAI.ApproachBand > 1 {
		errs = append(errs, fmt.Errorf("enemy_ai.approach_band must be in (0, 1], got %v", t.EnemyAI.ApproachBand))
	}

	positive("projectile.speed", t.Projectile.Speed)
	positive("projectile.lifetime", t.Projectile.Lifetime)
	positive("projectile.radius", t.Projectile.Radius)

	positive("wave.base", t.Wave.Base)
	positive("wave.scaling", t.Wave.Scaling)
	if t.Wave.Cap < 1 {
		errs = append(errs, fmt.Errorf("wave.cap must be >= 1, got %d", t.Wave.Cap))
	}
	nonNegative("wave.initial_delay", t.Wave.InitialDelay)
	nonNegative("wave.interval", t.Wave.Interval)

	positive("arena.radius", t.Arena.Radius)
	if t.Arena.WallSegments < 3 {
		errs = append(errs, fmt.Errorf("arena.wall_segments must be >= 3, got %d", t.Arena.WallSegments))
	}
	if t.Arena.Pillars.Count < 0 {
		errs = append(errs, fmt.Errorf("arena.pillars.count must be >= 0, got %d", t.Arena.Pillars.Count))
	}
	if t.Arena.Pillars.Count > 0 && t.Arena.Pillars.Distance+t.Arena.Pillars.Radius >= t.Arena.Radius {
		errs = append(errs, errors.New("arena.pillars must fit inside arena.radius"))
	}

	return errors.Join(errs...)
}

// ParseTuning decodes data over the defaults, so a file only needs the keys
// it changes.
func ParseTuning(name string, data []byte) (Tuning, error) {
	t := DefaultTuning()
	if err := yaml.Unmarshal(data, &t); err != nil {
		return Tuning{}, fmt.Errorf("prefabs: unmarshal %s: %w", name, err)
	}
	if err := t.Validate(); err != nil {
		return Tuning{}, fmt.Errorf("prefabs: validate %s: %w", name, err)
	}
	return t, nil
}

// LoadTuning reads a tuning prefab, preferring the on-disk copy.
func LoadTuning(name string) (Tuning, error) {
	if name == "" {
		name = TuningFile
	}
	data, err := Load(name)
	if err != nil {
		return Tuning{}, fmt.Errorf("prefabs: load %s: %w", name, err)
	}
	return ParseTuning(name, data)
}

// LoadTuningFile reads tuning from an arbitrary path.
func LoadTuningFile(path string) (Tuning, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Tuning{}, fmt.Errorf("prefabs: read %s: %w", path, err)
	}
	return ParseTuning(path, data)
}

// OpenTuning loads tuning from path, or the arena prefab when path is empty.
func OpenTuning(path string) (Tuning, error) {
	if path == "" {
		return LoadTuning(TuningFile)
	}
	return LoadTuningFile(path)
}
