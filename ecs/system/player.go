package system

import (
	"github.com/milk9111/arena/common"
	"github.com/milk9111/arena/ecs"
	"github.com/milk9111/arena/ecs/component"
)

// moveDeadzone is the smallest stick magnitude treated as movement.
const moveDeadzone = 0.1

// attackImpactFraction is how far into the attack cooldown the swing lands.
const attackImpactFraction = 0.7

// PlayerSystem runs the player state machine: movement, dodge and melee.
type PlayerSystem struct {
	queue       *DeferredQueue
	combat      *Combat
	spatial     *SpatialIndex
	arenaRadius float64
}

func NewPlayerSystem(queue *DeferredQueue, combat *Combat, spatial *SpatialIndex, arenaRadius float64) *PlayerSystem {
	return &PlayerSystem{queue: queue, combat: combat, spatial: spatial, arenaRadius: arenaRadius}
}

func (s *PlayerSystem) Update(w *ecs.World, dt float64) {
	if s == nil || w == nil {
		return
	}
	e, ok := w.First(component.PlayerTagComponent.Kind())
	if !ok {
		return
	}
	player, ok := ecs.Get(w, e, component.PlayerComponent.Kind())
	if !ok || player.Dead {
		return
	}
	transform, ok := ecs.Get(w, e, component.TransformComponent.Kind())
	if !ok {
		return
	}
	stamina, ok := ecs.Get(w, e, component.StaminaComponent.Kind())
	if !ok {
		return
	}
	cooldowns, ok := ecs.Get(w, e, component.CooldownsComponent.Kind())
	if !ok {
		return
	}
	sm, ok := ecs.Get(w, e, component.PlayerStateMachineComponent.Kind())
	if !ok || sm.State == nil {
		return
	}
	intent, ok := ecs.Get(w, e, component.PlayerIntentComponent.Kind())
	if !ok {
		intent = &component.PlayerIntent{}
	}

	cooldowns.Tick(dt)

	radius := s.arenaRadius
	if c, ok := ecs.Get(w, e, component.ColliderComponent.Kind()); ok {
		radius -= c.Radius
	}

	ctx := &component.PlayerStateContext{
		Intent:    intent,
		Player:    player,
		Transform: transform,
		Stamina:   stamina,
		Cooldowns: cooldowns,
		MoveDir:   MoveDirection(intent),
		Dt:        dt,
		ChangeState: func(state component.PlayerState) {
			sm.Pending = state
		},
		Move: func(delta common.Vec3) {
			next := transform.Position.Add(delta.Flat())
			if s.arenaRadius > 0 {
				next = common.ClampToRadius(next, radius)
			}
			transform.Position = next
		},
		StartAttack: func(kind component.AttackKind) {
			s.scheduleSwing(w, e, kind)
		},
	}

	applyPending(sm, ctx)

	sm.State.HandleInput(ctx)
	applyPending(sm, ctx)

	sm.State.Update(ctx)
	applyPending(sm, ctx)

	if sm.State == playerStateIdle {
		stamina.Regen(player.StaminaRegen, dt)
	}

	intent.Dodge = false
	intent.LightAttack = false
	intent.HeavyAttack = false
}

func applyPending(sm *component.PlayerStateMachine, ctx *component.PlayerStateContext) {
	if sm.Pending == nil {
		return
	}
	next := sm.Pending
	sm.Pending = nil
	if next == sm.State {
		return
	}
	sm.State.Exit(ctx)
	sm.State = next
	sm.State.Enter(ctx)
}

// scheduleSwing lands the attack part way through its cooldown and then
// releases the player back to idle.
func (s *PlayerSystem) scheduleSwing(w *ecs.World, e ecs.Entity, kind component.AttackKind) {
	player, ok := ecs.Get(w, e, component.PlayerComponent.Kind())
	if !ok {
		return
	}
	attack := player.Attack(kind)
	s.queue.Schedule(attack.Cooldown*attackImpactFraction, func() {
		player, ok := ecs.Get(w, e, component.PlayerComponent.Kind())
		if !ok || player.Dead {
			return
		}
		s.Swing(w, e, attack.Damage)
		if sm, ok := ecs.Get(w, e, component.PlayerStateMachineComponent.Kind()); ok {
			sm.Pending = playerStateIdle
		}
		player.Attacking = false
	})
}

// Swing damages every enemy in the circle centred half the attack range in
// front of the player, with the attack range as radius. It returns how many
// enemies were hit.
func (s *PlayerSystem) Swing(w *ecs.World, e ecs.Entity, damage float64) int {
	player, ok := ecs.Get(w, e, component.PlayerComponent.Kind())
	if !ok {
		return 0
	}
	transform, ok := ecs.Get(w, e, component.TransformComponent.Kind())
	if !ok {
		return 0
	}
	center := transform.Position.Add(transform.Forward().Scale(player.AttackRange * 0.5))

	hits := 0
	for _, o := range s.spatial.Overlap(w, center, player.AttackRange) {
		if o.Tag != component.TagEnemy {
			continue
		}
		if s.combat.DamageEnemy(w, o.Entity, damage) {
			hits++
		}
	}
	return hits
}

// MoveDirection turns the move axes into a world direction on the floor,
// relative to the camera. Missing camera axes default to world forward and
// right.
func MoveDirection(intent *component.PlayerIntent) common.Vec3 {
	if intent == nil {
		return common.Vec3{}
	}
	axes := common.Vec3{X: intent.MoveX, Z: intent.MoveY}
	if axes.Length() <= moveDeadzone {
		return common.Vec3{}
	}

	forward := intent.CameraForward.Flat().Normalize()
	if forward.IsZero() {
		forward = common.Forward
	}
	right := intent.CameraRight.Flat().Normalize()
	if right.IsZero() {
		right = common.Right
	}
	return forward.Scale(intent.MoveY).Add(right.Scale(intent.MoveX)).Normalize()
}
