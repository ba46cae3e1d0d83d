package locomotion

import "github.com/go-gl/mathgl/mgl64"

// updateState resolves ground status for this step from the contacts
// accumulated during the previous physics step. It must run before the
// scratch is cleared: steep promotion reads last step's steep contacts.
func (a *Agent) updateState() {
	a.stepsSinceGrounded++
	a.stepsSinceLastJump++
	a.velocity = a.body.Velocity()

	if a.contacts.onGround() || a.snapOntoGround() || a.checkSteepContacts() {
		a.stepsSinceGrounded = 0
		if a.stepsSinceLastJump > 0 {
			a.jumpPhase = 0
		}
		if a.contacts.groundCount > 1 {
			// Opposing contacts can cancel out; fall back to up for this step.
			a.contacts.contactNormal = normalizeOr(a.contacts.contactNormal, worldUp)
		}
		return
	}
	a.contacts.contactNormal = worldUp
}

// snapOntoGround keeps a sphere that just lost contact glued to the surface
// below it, so running over crests and stair edges does not launch it.
func (a *Agent) snapOntoGround() bool {
	if a.stepsSinceGrounded > 1 || a.stepsSinceLastJump <= 2 {
		return false
	}
	speed := a.velocity.Len()
	if speed > a.cfg.MaxSnapSpeed {
		return false
	}
	hit, ok := a.body.Raycast(a.body.Position(), worldDown, a.cfg.ProbeDistance, a.cfg.ProbeMask)
	if !ok {
		return false
	}
	normal, ok := normalize(hit.Normal)
	if !ok || normal.Y() < a.limits.minDot(hit.Layer) {
		return false
	}

	a.contacts.groundCount = 1
	a.contacts.contactNormal = normal
	if dot := a.velocity.Dot(normal); dot > 0 {
		tangent := normalizeOr(a.velocity.Sub(normal.Mul(dot)), mgl64.Vec3{})
		a.velocity = tangent.Mul(speed)
	}
	return true
}

// checkSteepContacts promotes a crevice of several steep contacts whose
// combined normal is flat enough to stand on.
func (a *Agent) checkSteepContacts() bool {
	if a.contacts.steepCount <= 1 {
		return false
	}
	n, ok := normalize(a.contacts.steepNormal)
	a.contacts.steepNormal = n
	if !ok || n.Y() < a.limits.minGroundDot {
		return false
	}
	a.contacts.groundCount = 1
	a.contacts.contactNormal = n
	return true
}
