package locomotion

import "github.com/go-gl/mathgl/mgl64"

// minSteepY admits near-vertical and slightly overhanging faces as steep
// contacts while rejecting ceilings.
const minSteepY = -0.01

// normalEpsilon is the squared length below which a normal sum carries no
// usable direction.
const normalEpsilon = 1e-12

var (
	worldUp      = mgl64.Vec3{0, 1, 0}
	worldDown    = mgl64.Vec3{0, -1, 0}
	worldRight   = mgl64.Vec3{1, 0, 0}
	worldForward = mgl64.Vec3{0, 0, 1}
)

// contactScratch accumulates contacts between two simulation steps. It is
// consumed by the resolver and zeroed once per step after velocity
// write-back.
type contactScratch struct {
	groundCount   int
	steepCount    int
	contactNormal mgl64.Vec3
	steepNormal   mgl64.Vec3
}

func (s *contactScratch) clear() {
	*s = contactScratch{}
}

func (s *contactScratch) onGround() bool {
	return s.groundCount > 0
}

func (s *contactScratch) onSteep() bool {
	return s.steepCount > 0
}

// OnCollisionStay feeds a sustained contact into the current step's batch.
func (a *Agent) OnCollisionStay(ev ContactEvent) {
	a.evaluateCollision(ev)
}

// OnCollisionExit feeds an ending contact into the current step's batch. The
// manifold is re-evaluated exactly like a sustained contact.
func (a *Agent) OnCollisionExit(ev ContactEvent) {
	a.evaluateCollision(ev)
}

func (a *Agent) evaluateCollision(ev ContactEvent) {
	minDot := a.limits.minDot(ev.Layer)
	for _, raw := range ev.Normals {
		n, ok := normalize(raw)
		if !ok {
			continue
		}
		switch {
		case n.Y() >= minDot:
			a.contacts.groundCount++
			a.contacts.contactNormal = a.contacts.contactNormal.Add(n)
		case n.Y() > minSteepY:
			a.contacts.steepCount++
			a.contacts.steepNormal = a.contacts.steepNormal.Add(n)
		}
	}
}

// normalize returns v scaled to unit length, or false when v is too short to
// carry a direction.
func normalize(v mgl64.Vec3) (mgl64.Vec3, bool) {
	if v.LenSqr() < normalEpsilon {
		return mgl64.Vec3{}, false
	}
	return v.Normalize(), true
}

// normalizeOr returns the unit form of v, or fallback when v is degenerate.
func normalizeOr(v, fallback mgl64.Vec3) mgl64.Vec3 {
	if n, ok := normalize(v); ok {
		return n
	}
	return fallback
}
