package system

import (
	"bytes"
	"log"
	"strings"
	"testing"

	"github.com/milk9111/arena/common"
	"github.com/milk9111/arena/ecs"
	"github.com/milk9111/arena/ecs/component"
)

func TestCombatMarksDeadEnemyAfterGrace(t *testing.T) {
	r := newRig(t)
	enemy := r.spawnEnemy(t, component.Rusher, common.Vec3{Y: 0.5, Z: 5})

	if !r.combat.DamageEnemy(r.w, enemy, 1000) {
		t.Fatal("killing blow not applied")
	}
	r.queue.Advance(1.9)
	if ecs.Has(r.w, enemy, component.DespawnComponent.Kind()) {
		t.Fatal("enemy marked before the death grace ran out")
	}
	r.queue.Advance(0.2)
	if !ecs.Has(r.w, enemy, component.DespawnComponent.Kind()) {
		t.Fatal("enemy not marked for removal after the death grace")
	}
}

func TestCombatLogsFailedDespawn(t *testing.T) {
	r := newRig(t)
	var buf bytes.Buffer
	combat := NewCombat(r.queue, 1, log.New(&buf, "", 0))
	enemy := r.spawnEnemy(t, component.Rusher, common.Vec3{Y: 0.5, Z: 5})

	combat.DamageEnemy(r.w, enemy, 1000)
	ecs.DestroyEntity(r.w, enemy)
	r.queue.Advance(1.5)

	got := buf.String()
	if !strings.Contains(got, "mark enemy") || !strings.Contains(got, component.ErrEntityNotAlive.Error()) {
		t.Fatalf("expected the failed removal to be logged, got %q", got)
	}
}
