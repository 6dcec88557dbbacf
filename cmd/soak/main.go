// Command soak plays scripted matches without a window and logs how long
// the bot survives. It is a balance tool for arena.yaml.
package main

import (
	"flag"
	"log"
	"math"
	"os"
	"sort"

	"github.com/milk9111/arena/arena"
	"github.com/milk9111/arena/common"
	"github.com/milk9111/arena/ecs"
	"github.com/milk9111/arena/ecs/component"
	"github.com/milk9111/arena/ecs/system"
	"github.com/milk9111/arena/prefabs"
)

const tickRate = 60

func main() {
	tuningPath := flag.String("tuning", "", "tuning yaml (default: prefabs/arena.yaml)")
	runs := flag.Int("runs", 5, "number of matches")
	seed := flag.Int64("seed", 1, "seed of the first match; later matches add the run index")
	limit := flag.Float64("limit", 600, "longest simulated match in seconds")
	idle := flag.Bool("idle", false, "stand still instead of fighting")
	flag.Parse()

	logger := log.New(os.Stderr, "", log.LstdFlags)

	tuning, err := prefabs.OpenTuning(*tuningPath)
	if err != nil {
		logger.Fatal(err)
	}

	var survived []float64
	for run := 0; run < *runs; run++ {
		sim, err := arena.New(arena.Options{Tuning: &tuning, Seed: *seed + int64(run), Logger: log.New(os.Stderr, "", 0)})
		if err != nil {
			logger.Fatal(err)
		}
		b := &bot{idle: *idle}
		result := play(sim, b, *limit, logger, run)
		survived = append(survived, result)
	}

	sort.Float64s(survived)
	mean := 0.0
	for _, s := range survived {
		mean += s
	}
	mean /= float64(len(survived))
	logger.Printf("soak: %d runs, mean %s, median %s, best %s",
		len(survived),
		system.FormatSurvivalTime(mean),
		system.FormatSurvivalTime(survived[len(survived)/2]),
		system.FormatSurvivalTime(survived[len(survived)-1]))
}

// play runs one match to the player's death or the time limit and returns
// the survival time.
func play(sim *arena.Simulation, b *bot, limit float64, logger *log.Logger, run int) float64 {
	const dt = 1.0 / tickRate
	waveStart := 0.0
	for sim.Active() && sim.Match().SurvivalTime() < limit {
		sim.SetIntent(b.intent(sim))
		sim.Tick(dt)

		for _, evt := range sim.Events() {
			switch evt.Type {
			case system.EventWaveStarted:
				waveStart = sim.Match().SurvivalTime()
			case system.EventWaveCleared:
				data, _ := evt.Data.(system.WaveEvent)
				logger.Printf("soak: run %d wave %d cleared in %.1fs, health %.0f",
					run, data.Wave, sim.Match().SurvivalTime()-waveStart, sim.PlayerHealth().Current)
			}
		}
	}

	spawned := sim.Waves().Spawned()
	logger.Printf("soak: run %d survived %s, wave %d, spawned rusher=%d brute=%d caster=%d",
		run, sim.FormattedTime(), sim.Wave(),
		spawned[component.Rusher], spawned[component.Brute], spawned[component.Caster])
	return sim.Match().SurvivalTime()
}

// bot walks to the nearest living enemy and swings at it, dodging away
// from anything that gets too close while it is low on health.
type bot struct {
	idle bool
}

func (b *bot) intent(sim *arena.Simulation) component.PlayerIntent {
	in := component.PlayerIntent{CameraForward: common.Forward, CameraRight: common.Right}
	if b.idle {
		return in
	}

	w := sim.World()
	tr, ok := ecs.Get(w, sim.Player(), component.TransformComponent.Kind())
	if !ok {
		return in
	}
	self := tr.Position

	target, dist := common.Vec3{}, math.Inf(1)
	ecs.ForEach2(w, component.EnemyComponent.Kind(), component.TransformComponent.Kind(), func(_ ecs.Entity, e *component.Enemy, t *component.Transform) {
		if e.Dead {
			return
		}
		if d := common.FlatDistance(self, t.Position); d < dist {
			target, dist = t.Position, d
		}
	})
	if math.IsInf(dist, 1) {
		return in
	}

	dir := target.Sub(self).Flat().Normalize()
	reach := sim.Tuning().Player.AttackRange
	health := sim.PlayerHealth()
	stamina := sim.PlayerStamina()

	switch {
	case dist < 1.5 && health.Fraction() < 0.3 && stamina.Current >= sim.Tuning().Player.DodgeCost:
		in.MoveX, in.MoveY = -dir.X, -dir.Z
		in.Dodge = true
	case dist > reach:
		in.MoveX, in.MoveY = dir.X, dir.Z
	default:
		// Keep walking in so the swing faces the target.
		in.MoveX, in.MoveY = dir.X, dir.Z
		in.HeavyAttack = stamina.Current >= 60
		in.LightAttack = !in.HeavyAttack
	}
	return in
}
