package entity

import (
	"errors"
	"fmt"

	"github.com/milk9111/arena/common"
	"github.com/milk9111/arena/ecs"
	"github.com/milk9111/arena/ecs/component"
	"github.com/milk9111/arena/prefabs"
)

// ErrNoInitialState is returned when a player is spawned without a state.
var ErrNoInitialState = errors.New("no initial state")

// NewPlayer spawns the player at the arena centre, or at pos if given. The
// state machine starts in initial; its Enter is not called.
func NewPlayer(w *ecs.World, spec prefabs.PlayerSpec, pos common.Vec3, initial component.PlayerState) (_ ecs.Entity, err error) {
	entity := ecs.CreateEntity(w)
	defer discardOnError(w, entity, &err)

	if err = ecs.Add(w, entity, component.PlayerTagComponent.Kind(), &component.PlayerTag{}); err != nil {
		return 0, fmt.Errorf("player: add player tag: %w", err)
	}

	player := spec.Player()
	if err = ecs.Add(w, entity, component.PlayerComponent.Kind(), &player); err != nil {
		return 0, fmt.Errorf("player: add player component: %w", err)
	}

	if pos.Y == 0 {
		pos.Y = spec.SpawnHeight
	}
	if err = ecs.Add(w, entity, component.TransformComponent.Kind(), &component.Transform{Position: pos, Scale: 1}); err != nil {
		return 0, fmt.Errorf("player: add transform: %w", err)
	}

	health := component.NewResourcePool(spec.Health)
	if err = ecs.Add(w, entity, component.HealthComponent.Kind(), &health); err != nil {
		return 0, fmt.Errorf("player: add health: %w", err)
	}

	stamina := component.NewResourcePool(spec.Stamina)
	if err = ecs.Add(w, entity, component.StaminaComponent.Kind(), &stamina); err != nil {
		return 0, fmt.Errorf("player: add stamina: %w", err)
	}

	cooldowns := component.NewCooldowns()
	if err = ecs.Add(w, entity, component.CooldownsComponent.Kind(), &cooldowns); err != nil {
		return 0, fmt.Errorf("player: add cooldowns: %w", err)
	}

	if err = ecs.Add(w, entity, component.PlayerIntentComponent.Kind(), &component.PlayerIntent{}); err != nil {
		return 0, fmt.Errorf("player: add intent: %w", err)
	}

	if initial == nil {
		return 0, fmt.Errorf("player: add state machine: %w", ErrNoInitialState)
	}
	if err = ecs.Add(w, entity, component.PlayerStateMachineComponent.Kind(), &component.PlayerStateMachine{State: initial}); err != nil {
		return 0, fmt.Errorf("player: add state machine: %w", err)
	}

	if err = ecs.Add(w, entity, component.ColliderComponent.Kind(), &component.Collider{
		Radius: spec.ColliderRadius,
		Tag:    component.TagPlayer,
	}); err != nil {
		return 0, fmt.Errorf("player: add collider: %w", err)
	}

	return entity, nil
}
