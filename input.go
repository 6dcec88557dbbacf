package main

import (
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/milk9111/arena/common"
	"github.com/milk9111/arena/ecs/component"
)

const stickDeadzone = 0.2

// Input polls keyboard, mouse and the first gamepad once per frame.
type Input struct {
	MoveX float64
	MoveY float64

	DodgePressed   bool
	LightPressed   bool
	HeavyPressed   bool
	PausePressed   bool
	RestartPressed bool
}

func NewInput() *Input {
	return &Input{}
}

func (i *Input) Update() {
	moveX, moveY := 0.0, 0.0
	if ebiten.IsKeyPressed(ebiten.KeyA) || ebiten.IsKeyPressed(ebiten.KeyArrowLeft) {
		moveX -= 1
	}
	if ebiten.IsKeyPressed(ebiten.KeyD) || ebiten.IsKeyPressed(ebiten.KeyArrowRight) {
		moveX += 1
	}
	if ebiten.IsKeyPressed(ebiten.KeyW) || ebiten.IsKeyPressed(ebiten.KeyArrowUp) {
		moveY += 1
	}
	if ebiten.IsKeyPressed(ebiten.KeyS) || ebiten.IsKeyPressed(ebiten.KeyArrowDown) {
		moveY -= 1
	}

	dodge := inpututil.IsKeyJustPressed(ebiten.KeySpace)
	light := inpututil.IsKeyJustPressed(ebiten.KeyJ) || inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft)
	heavy := inpututil.IsKeyJustPressed(ebiten.KeyK) || inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonRight)
	pause := inpututil.IsKeyJustPressed(ebiten.KeyEscape)
	restart := inpututil.IsKeyJustPressed(ebiten.KeyR)

	if gamepads := ebiten.GamepadIDs(); len(gamepads) > 0 {
		id := gamepads[0]
		lx := ebiten.StandardGamepadAxisValue(id, ebiten.StandardGamepadAxisLeftStickHorizontal)
		ly := ebiten.StandardGamepadAxisValue(id, ebiten.StandardGamepadAxisLeftStickVertical)
		if math.Hypot(lx, ly) > stickDeadzone {
			// Stick up is negative.
			moveX, moveY = lx, -ly
		}

		dodge = dodge || inpututil.IsStandardGamepadButtonJustPressed(id, ebiten.StandardGamepadButtonRightBottom)
		light = light || inpututil.IsStandardGamepadButtonJustPressed(id, ebiten.StandardGamepadButtonRightLeft)
		heavy = heavy || inpututil.IsStandardGamepadButtonJustPressed(id, ebiten.StandardGamepadButtonRightTop)
		pause = pause || inpututil.IsStandardGamepadButtonJustPressed(id, ebiten.StandardGamepadButtonCenterRight)
		restart = restart || inpututil.IsStandardGamepadButtonJustPressed(id, ebiten.StandardGamepadButtonCenterLeft)
	}

	i.MoveX = moveX
	i.MoveY = moveY
	i.DodgePressed = dodge
	i.LightPressed = light
	i.HeavyPressed = heavy
	i.PausePressed = pause
	i.RestartPressed = restart
}

// Intent converts the polled state into player input. The camera looks
// straight down with +Z at the top of the screen.
func (i *Input) Intent() component.PlayerIntent {
	return component.PlayerIntent{
		MoveX:         i.MoveX,
		MoveY:         i.MoveY,
		CameraForward: common.Forward,
		CameraRight:   common.Right,
		Dodge:         i.DodgePressed,
		LightAttack:   i.LightPressed,
		HeavyAttack:   i.HeavyPressed,
	}
}
