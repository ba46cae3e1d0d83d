package locomotion

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// jump consumes the latched request. Ineligible requests are dropped so they
// cannot fire on a later landing.
func (a *Agent) jump() {
	a.desiredJump = false

	var direction mgl64.Vec3
	switch {
	case a.contacts.onGround():
		direction = a.contacts.contactNormal
	case a.contacts.onSteep():
		direction = a.contacts.steepNormal
		a.jumpPhase = 0
	case a.cfg.MaxAirJumps > 0 && a.jumpPhase <= a.cfg.MaxAirJumps:
		if a.jumpPhase == 0 {
			a.jumpPhase = 1
		}
		direction = a.contacts.contactNormal
	default:
		return
	}

	a.stepsSinceLastJump = 0
	a.jumpPhase++

	gravity := a.body.Gravity().Len()
	jumpSpeed := math.Sqrt(2 * gravity * a.cfg.JumpHeight)
	direction = normalizeOr(direction.Add(worldUp), worldUp)
	if alignSpeed := a.velocity.Dot(direction); alignSpeed > 0 {
		jumpSpeed = math.Max(jumpSpeed-alignSpeed, 0)
	}
	a.velocity = a.velocity.Add(direction.Mul(jumpSpeed))
}
