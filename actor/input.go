// Package actor implements the input port and the two character ability
// controllers.
package actor

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// Input holds the sampled input state for one frame. Controllers read it;
// only Update writes it, so tests can fill the fields directly.
type Input struct {
	// MoveX/MoveY are -1, 0 or +1.
	MoveX float64
	MoveY float64
	// JumpPressed is true on the frame the jump key is pressed.
	JumpPressed bool
	// DashPressed is true on the frame the dash key is pressed.
	DashPressed bool
	// InteractPressed is true on the frame the interact key is pressed.
	InteractPressed bool
	// ScanPressed is true on the frame the scan key is pressed.
	ScanPressed bool
	// SwapPressed is true on the frame the position-swap key is pressed.
	SwapPressed bool
	// SwitchPressed is true on the frame the character-switch key is pressed.
	SwitchPressed bool
}

func NewInput() *Input {
	return &Input{}
}

// Update polls the keyboard and the first gamepad.
func (i *Input) Update() {
	var moveX, moveY float64
	if ebiten.IsKeyPressed(ebiten.KeyA) || ebiten.IsKeyPressed(ebiten.KeyLeft) {
		moveX -= 1
	}
	if ebiten.IsKeyPressed(ebiten.KeyD) || ebiten.IsKeyPressed(ebiten.KeyRight) {
		moveX += 1
	}
	if ebiten.IsKeyPressed(ebiten.KeyW) || ebiten.IsKeyPressed(ebiten.KeyUp) {
		moveY -= 1
	}
	if ebiten.IsKeyPressed(ebiten.KeyS) || ebiten.IsKeyPressed(ebiten.KeyDown) {
		moveY += 1
	}

	var gpJump, gpDash, gpInteract, gpSwitch bool
	ids := ebiten.GamepadIDs()
	if len(ids) > 0 {
		gid := ids[0]

		leftX := ebiten.StandardGamepadAxisValue(gid, ebiten.StandardGamepadAxisLeftStickHorizontal)
		if leftX < -0.3 {
			moveX = -1
		} else if leftX > 0.3 {
			moveX = 1
		}
		leftY := ebiten.StandardGamepadAxisValue(gid, ebiten.StandardGamepadAxisLeftStickVertical)
		if leftY < -0.3 {
			moveY = -1
		} else if leftY > 0.3 {
			moveY = 1
		}

		gpJump = inpututil.IsStandardGamepadButtonJustPressed(gid, ebiten.StandardGamepadButtonRightBottom)
		gpDash = inpututil.IsStandardGamepadButtonJustPressed(gid, ebiten.StandardGamepadButtonRightLeft)
		gpInteract = inpututil.IsStandardGamepadButtonJustPressed(gid, ebiten.StandardGamepadButtonRightRight)
		gpSwitch = inpututil.IsStandardGamepadButtonJustPressed(gid, ebiten.StandardGamepadButtonFrontTopRight)
	}

	i.MoveX = moveX
	i.MoveY = moveY
	i.JumpPressed = inpututil.IsKeyJustPressed(ebiten.KeySpace) || gpJump
	i.DashPressed = inpututil.IsKeyJustPressed(ebiten.KeyShiftLeft) || gpDash
	i.InteractPressed = inpututil.IsKeyJustPressed(ebiten.KeyE) || gpInteract
	i.ScanPressed = inpututil.IsKeyJustPressed(ebiten.KeyQ)
	i.SwapPressed = inpututil.IsKeyJustPressed(ebiten.KeyF)
	i.SwitchPressed = inpututil.IsKeyJustPressed(ebiten.KeyTab) || gpSwitch
}
