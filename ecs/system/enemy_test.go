package system

import (
	"errors"
	"math"
	"testing"

	"github.com/milk9111/arena/common"
	"github.com/milk9111/arena/ecs"
	"github.com/milk9111/arena/ecs/component"
)

func testEnemyConfig() EnemyConfig {
	return EnemyConfig{RetreatBand: 0.7, ApproachBand: 0.8, RetreatStep: 3, TurnRate: 5, WindUp: 0.3}
}

func TestCasterDestination(t *testing.T) {
	caster := &component.Enemy{Archetype: component.Caster, Stats: component.DefaultEnemyStats(component.Caster)}
	player := common.Vec3{}
	cases := []struct {
		name  string
		pos   common.Vec3
		check func(t *testing.T, pos, dest common.Vec3)
	}{
		{"too_close_retreats", common.Vec3{X: 3}, func(t *testing.T, pos, dest common.Vec3) {
			if common.FlatDistance(dest, player) <= common.FlatDistance(pos, player) {
				t.Fatalf("destination %v is not farther than %v", dest, pos)
			}
			if math.Abs(common.FlatDistance(dest, pos)-3) > 1e-9 {
				t.Fatalf("retreat step: got %v, want 3", common.FlatDistance(dest, pos))
			}
		}},
		{"on_top_retreats", common.Vec3{}, func(t *testing.T, pos, dest common.Vec3) {
			if common.FlatDistance(dest, player) <= 0 {
				t.Fatalf("destination %v did not leave the player", dest)
			}
		}},
		{"too_far_approaches_band", common.Vec3{Z: 12}, func(t *testing.T, pos, dest common.Vec3) {
			if want := (common.Vec3{Z: 6.4}); common.Distance(dest, want) > 1e-9 {
				t.Fatalf("got %v, want %v", dest, want)
			}
		}},
		{"in_band_holds", common.Vec3{X: 7}, func(t *testing.T, pos, dest common.Vec3) {
			if dest != pos {
				t.Fatalf("got %v, want hold at %v", dest, pos)
			}
		}},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			tr := &component.Transform{Position: c.pos}
			c.check(t, c.pos, EnemyDestination(caster, tr, player, testEnemyConfig()))
		})
	}
}

func TestMeleeDestinationIsPlayer(t *testing.T) {
	for _, a := range []component.Archetype{component.Rusher, component.Brute} {
		enemy := &component.Enemy{Archetype: a, Stats: component.DefaultEnemyStats(a)}
		target := common.Vec3{X: 4, Y: 1, Z: -2}
		got := EnemyDestination(enemy, &component.Transform{Position: common.Vec3{X: 10}}, target, testEnemyConfig())
		if got != target {
			t.Fatalf("%s: got %v, want %v", a, got, target)
		}
	}
}

func TestRusherHitsOncePerCooldown(t *testing.T) {
	r := newRig(t)
	r.spawnEnemy(t, component.Rusher, common.Vec3{Y: 0.5})

	for i := 0; i < 20; i++ {
		r.tick(testDt)
	}
	if got := r.health(t, r.player); got != 92 {
		t.Fatalf("after 1s: got health %v, want 92", got)
	}

	for i := 0; i < 10; i++ {
		r.tick(testDt)
	}
	if got := r.health(t, r.player); got != 84 {
		t.Fatalf("after second cycle: got health %v, want 84", got)
	}
}

func TestMeleeRechecksRangeAtImpact(t *testing.T) {
	r := newRig(t)
	r.spawnEnemy(t, component.Brute, common.Vec3{Y: 0.5, Z: 2})
	r.tick(testDt)

	// Leave during the wind-up; the brute walks at 2 u/s and cannot follow.
	r.playerTransform(t).Position = common.Vec3{Y: 1, Z: -8}
	for i := 0; i < 10; i++ {
		r.tick(testDt)
	}
	if got := r.health(t, r.player); got != 100 {
		t.Fatalf("got health %v, want 100", got)
	}
}

func TestCasterFiresAtPlayerPosition(t *testing.T) {
	r := newRig(t)
	caster := r.spawnEnemy(t, component.Caster, common.Vec3{Y: 0.5, Z: 7})

	r.tick(testDt)
	if n := len(r.w.Query(component.ProjectileComponent.Kind())); n != 0 {
		t.Fatalf("projectile before wind-up: %d", n)
	}
	for i := 0; i < 6; i++ {
		r.tick(testDt)
	}

	shots := r.w.Query(component.ProjectileComponent.Kind())
	if len(shots) != 1 {
		t.Fatalf("got %d projectiles, want 1", len(shots))
	}
	p, _ := ecs.Get(r.w, shots[0], component.ProjectileComponent.Kind())
	if p.Damage != 12 || p.Speed != 10 || !p.Alive {
		t.Fatalf("unexpected projectile %+v", p)
	}
	if p.Direction.Z >= 0 {
		t.Fatalf("projectile should head toward the player (-Z), got %v", p.Direction)
	}
	if math.Abs(p.Direction.Length()-1) > 1e-9 {
		t.Fatalf("direction not normalized: %v", p.Direction)
	}

	ct, _ := ecs.Get(r.w, caster, component.TransformComponent.Kind())
	if d := common.FlatDistance(ct.Position, r.playerTransform(t).Position); d < 5.6 || d > 8 {
		t.Fatalf("caster left its band: distance %v", d)
	}
}

func TestDeadEnemyIsInert(t *testing.T) {
	r := newRig(t)
	e := r.spawnEnemy(t, component.Rusher, common.Vec3{Y: 0.5, Z: 1})
	r.tick(testDt)

	// Dies during its own wind-up.
	if !r.combat.DamageEnemy(r.w, e, 1000) {
		t.Fatal("expected damage to apply")
	}
	enemy, _ := ecs.Get(r.w, e, component.EnemyComponent.Kind())
	pos := r.position(t, e)
	for i := 0; i < 10; i++ {
		r.tick(testDt)
	}
	if got := r.health(t, r.player); got != 100 {
		t.Fatalf("dead enemy dealt damage: health %v", got)
	}
	if !enemy.Dead {
		t.Fatal("enemy should stay dead")
	}
	if now := r.position(t, e); now != pos {
		t.Fatalf("dead enemy moved from %v to %v", pos, now)
	}
}

func TestEnemyDeathDespawnsAfterGrace(t *testing.T) {
	r := newRig(t)
	e := r.spawnEnemy(t, component.Caster, common.Vec3{Y: 0.5, Z: 12})
	r.spatial.Sync(r.w)
	var died []ecs.Entity
	r.w.Events().Subscribe(EventEnemyDied, func(evt ecs.Event) { died = append(died, evt.Entity) })

	r.combat.DamageEnemy(r.w, e, 20)
	r.combat.DamageEnemy(r.w, e, 20)
	if len(died) != 1 || died[0] != e {
		t.Fatalf("got deaths %v, want exactly [%v]", died, e)
	}

	for i := 0; i < 39; i++ {
		r.tick(testDt)
	}
	if !ecs.IsAlive(r.w, e) {
		t.Fatal("enemy removed before the grace period")
	}
	r.tick(testDt)
	r.tick(testDt)
	if ecs.IsAlive(r.w, e) {
		t.Fatal("enemy should be removed after the grace period")
	}
	if r.spatial.Len() != 1 {
		t.Fatalf("spatial index should hold only the player, has %d", r.spatial.Len())
	}
}

func TestEnemyWithoutPlayerIdles(t *testing.T) {
	r := newRig(t)
	e := r.spawnEnemy(t, component.Rusher, common.Vec3{Y: 0.5, Z: 5})
	ecs.DestroyEntity(r.w, r.player)

	before := r.position(t, e)
	r.tick(testDt)
	if got := r.position(t, e); got != before {
		t.Fatalf("enemy moved without a target: %v -> %v", before, got)
	}
}

type failingSpawner struct{}

func (failingSpawner) SpawnEnemy(*ecs.World, component.Archetype, common.Vec3) (ecs.Entity, error) {
	return 0, errors.New("no enemies today")
}

func (failingSpawner) SpawnProjectile(*ecs.World, common.Vec3, common.Vec3, float64) (ecs.Entity, error) {
	return 0, errors.New("no projectiles today")
}

func TestCasterSpawnFailureIsLogged(t *testing.T) {
	r := newRig(t)
	r.enemies.spawner = failingSpawner{}
	r.spawnEnemy(t, component.Caster, common.Vec3{Y: 0.5, Z: 7})
	for i := 0; i < 10; i++ {
		r.tick(testDt)
	}
	if n := len(r.w.Query(component.ProjectileComponent.Kind())); n != 0 {
		t.Fatalf("got %d projectiles, want 0", n)
	}
}
