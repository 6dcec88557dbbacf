package entity

import (
	"errors"
	"fmt"
	"testing"

	"github.com/milk9111/arena/common"
	"github.com/milk9111/arena/ecs"
	"github.com/milk9111/arena/ecs/component"
	"github.com/milk9111/arena/prefabs"
)

type stubState struct{ name string }

func (s stubState) Name() string                                { return s.name }
func (stubState) Enter(ctx *component.PlayerStateContext)       {}
func (stubState) Exit(ctx *component.PlayerStateContext)        {}
func (stubState) HandleInput(ctx *component.PlayerStateContext) {}
func (stubState) Update(ctx *component.PlayerStateContext)      {}

func TestNewPlayerStartsInInitialState(t *testing.T) {
	w := ecs.NewWorld()
	e, err := NewPlayer(w, prefabs.DefaultTuning().Player, common.Vec3{}, stubState{name: "idle"})
	if err != nil {
		t.Fatal(err)
	}
	sm, ok := ecs.Get(w, e, component.PlayerStateMachineComponent.Kind())
	if !ok || sm.State == nil {
		t.Fatal("player spawned without a state")
	}
	if sm.State.Name() != "idle" || sm.Pending != nil {
		t.Fatalf("got state %q pending %v", sm.State.Name(), sm.Pending)
	}
}

func TestNewPlayerWithoutStateLeavesNothing(t *testing.T) {
	w := ecs.NewWorld()
	_, err := NewPlayer(w, prefabs.DefaultTuning().Player, common.Vec3{}, nil)
	if !errors.Is(err, ErrNoInitialState) {
		t.Fatalf("got %v, want ErrNoInitialState", err)
	}
	if n := len(ecs.Entities(w)); n != 0 {
		t.Fatalf("got %d live entities after a failed spawn, want 0", n)
	}
	if _, ok := w.First(component.PlayerTagComponent.Kind()); ok {
		t.Fatal("half-built player is still queryable")
	}
	if got := w.Query(component.TransformComponent.Kind(), component.HealthComponent.Kind()); len(got) != 0 {
		t.Fatalf("orphaned components left behind: %v", got)
	}
}

func TestDiscardOnError(t *testing.T) {
	tests := []struct {
		name  string
		err   error
		alive bool
	}{
		{name: "success keeps entity", err: nil, alive: true},
		{name: "failure destroys entity", err: fmt.Errorf("collider: %w", component.ErrNilComponent), alive: false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := ecs.NewWorld()
			var e ecs.Entity
			build := func() (err error) {
				e = ecs.CreateEntity(w)
				defer discardOnError(w, e, &err)
				if err = ecs.Add(w, e, component.TransformComponent.Kind(), &component.Transform{Scale: 1}); err != nil {
					return err
				}
				return tt.err
			}
			_ = build()

			if ecs.IsAlive(w, e) != tt.alive {
				t.Fatalf("alive = %v, want %v", ecs.IsAlive(w, e), tt.alive)
			}
			if ecs.Has(w, e, component.TransformComponent.Kind()) != tt.alive {
				t.Fatalf("transform present = %v, want %v", !tt.alive, tt.alive)
			}
		})
	}
}

func TestBuildersSpawnComplete(t *testing.T) {
	tu := prefabs.DefaultTuning()
	w := ecs.NewWorld()
	f := Factory{Tuning: tu}

	enemy, err := f.SpawnEnemy(w, component.Brute, common.Vec3{X: 4})
	if err != nil {
		t.Fatal(err)
	}
	shot, err := f.SpawnProjectile(w, common.Vec3{}, common.Forward, 5)
	if err != nil {
		t.Fatal(err)
	}
	pillars, err := NewPillars(w, tu.Arena.Pillars)
	if err != nil {
		t.Fatal(err)
	}
	if len(pillars) != tu.Arena.Pillars.Count {
		t.Fatalf("got %d pillars, want %d", len(pillars), tu.Arena.Pillars.Count)
	}

	for _, e := range append([]ecs.Entity{enemy, shot}, pillars...) {
		if !ecs.Has(w, e, component.TransformComponent.Kind()) || !ecs.Has(w, e, component.ColliderComponent.Kind()) {
			t.Fatalf("entity %v is missing its transform or collider", e)
		}
	}
	c, _ := ecs.Get(w, enemy, component.ColliderComponent.Kind())
	if want := tu.Enemies.ColliderRadius * tu.Enemies.Brute.Scale; c.Radius != want {
		t.Fatalf("brute collider radius %v, want %v", c.Radius, want)
	}
}
