package input

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/milk9111/movingsphere/locomotion"
)

const stickDeadzone = 0.2

// Sampler reads the keyboard and the first standard gamepad.
type Sampler struct {
	// Depth enables the forward axis (W/S, up/down, stick vertical). The
	// side-view demo leaves it off.
	Depth bool
}

func NewSampler() *Sampler {
	return &Sampler{}
}

func (s *Sampler) Intent(Observation) (locomotion.Intent, error) {
	left := ebiten.IsKeyPressed(ebiten.KeyA) || ebiten.IsKeyPressed(ebiten.KeyArrowLeft)
	right := ebiten.IsKeyPressed(ebiten.KeyD) || ebiten.IsKeyPressed(ebiten.KeyArrowRight)
	forward := ebiten.IsKeyPressed(ebiten.KeyW) || ebiten.IsKeyPressed(ebiten.KeyArrowUp)
	back := ebiten.IsKeyPressed(ebiten.KeyS) || ebiten.IsKeyPressed(ebiten.KeyArrowDown)
	jump := inpututil.IsKeyJustPressed(ebiten.KeySpace)

	var stickX, stickY float64
	if gamepads := ebiten.GamepadIDs(); len(gamepads) > 0 {
		id := gamepads[0]
		stickX = ebiten.StandardGamepadAxisValue(id, ebiten.StandardGamepadAxisLeftStickHorizontal)
		// Standard mapping reports up as negative.
		stickY = -ebiten.StandardGamepadAxisValue(id, ebiten.StandardGamepadAxisLeftStickVertical)
		jump = jump || inpututil.IsStandardGamepadButtonJustPressed(id, ebiten.StandardGamepadButtonRightBottom)
	}

	move := combine(left, right, forward, back, stickX, stickY)
	if !s.Depth {
		move[1] = 0
	}
	return locomotion.Intent{Move: move, Jump: jump}, nil
}

// combine merges digital and analog axes. A stick outside the deadzone wins
// over the keys on its axis.
func combine(left, right, forward, back bool, stickX, stickY float64) mgl64.Vec2 {
	var x, y float64
	if left {
		x -= 1
	}
	if right {
		x += 1
	}
	if back {
		y -= 1
	}
	if forward {
		y += 1
	}
	if math.Abs(stickX) > stickDeadzone {
		x = stickX
	}
	if math.Abs(stickY) > stickDeadzone {
		y = stickY
	}
	return mgl64.Vec2{x, y}
}
