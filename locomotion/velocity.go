package locomotion

import (
	"github.com/go-gl/mathgl/mgl64"
	"github.com/milk9111/movingsphere/common"
)

func (a *Agent) projectOnContactPlane(v mgl64.Vec3) mgl64.Vec3 {
	n := a.contacts.contactNormal
	return v.Sub(n.Mul(v.Dot(n)))
}

// adjustVelocity accelerates toward the desired velocity inside the contact
// plane, so control follows the slope instead of the world horizontal.
func (a *Agent) adjustVelocity(dt float64) {
	xAxis := normalizeOr(a.projectOnContactPlane(worldRight), mgl64.Vec3{})
	zAxis := normalizeOr(a.projectOnContactPlane(worldForward), mgl64.Vec3{})

	currentX := a.velocity.Dot(xAxis)
	currentZ := a.velocity.Dot(zAxis)

	acceleration := a.cfg.MaxAirAcceleration
	if a.contacts.onGround() {
		acceleration = a.cfg.MaxAcceleration
	}
	maxSpeedChange := acceleration * dt

	newX := common.MoveTowards(currentX, a.desiredVelocity.X(), maxSpeedChange)
	newZ := common.MoveTowards(currentZ, a.desiredVelocity.Z(), maxSpeedChange)

	a.velocity = a.velocity.
		Add(xAxis.Mul(newX - currentX)).
		Add(zAxis.Mul(newZ - currentZ))
}
