package locomotion

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
)

// primeForSnap puts the agent one step after losing ground, well clear of a
// jump.
func primeForSnap(a *Agent) {
	a.stepsSinceGrounded = 0
	a.stepsSinceLastJump = 10
}

func TestSnapReprojectsVelocityOntoGround(t *testing.T) {
	a, body := newTestAgent(t, nil)
	primeForSnap(a)
	body.position = mgl64.Vec3{1, 2, 0}
	body.velocity = mgl64.Vec3{3, 2, 0}
	body.hit = RaycastHit{Normal: mgl64.Vec3{0, 1, 0}, Distance: 0.6}
	body.hitOK = true

	a.SimulateStep(0)

	if body.rayCalls != 1 {
		t.Fatalf("ray calls = %d, want 1", body.rayCalls)
	}
	if !vecNear(body.rayOrigin, mgl64.Vec3{1, 2, 0}) || !vecNear(body.rayDir, worldDown) {
		t.Fatalf("ray = %v -> %v", body.rayOrigin, body.rayDir)
	}
	if body.rayDistance != 1 || body.rayMask != AllLayers {
		t.Fatalf("ray distance/mask = %v/%x", body.rayDistance, body.rayMask)
	}
	if !a.Grounded() || a.StepsSinceGrounded() != 0 {
		t.Fatalf("snap did not ground the agent: %+v", a.Snapshot())
	}
	want := mgl64.Vec3{math.Sqrt(13), 0, 0}
	if !vecNear(body.velocity, want) {
		t.Fatalf("velocity = %v, want %v", body.velocity, want)
	}
}

func TestSnapKeepsVelocityMovingIntoGround(t *testing.T) {
	a, body := newTestAgent(t, nil)
	primeForSnap(a)
	body.velocity = mgl64.Vec3{3, -1, 0}
	body.hit = RaycastHit{Normal: mgl64.Vec3{0, 1, 0}}
	body.hitOK = true

	a.SimulateStep(0)

	if !vecNear(body.velocity, mgl64.Vec3{3, -1, 0}) {
		t.Fatalf("velocity = %v, want unchanged", body.velocity)
	}
}

func TestSnapEligibility(t *testing.T) {
	cases := []struct {
		name     string
		grounded int
		jumped   int
		velocity mgl64.Vec3
		snapMax  float64
		hitOK    bool
		wantRay  bool
		wantSnap bool
	}{
		{"eligible", 0, 10, mgl64.Vec3{1, 0, 0}, 100, true, true, true},
		{"airborne_too_long", 1, 10, mgl64.Vec3{1, 0, 0}, 100, true, false, false},
		{"just_jumped", 0, 1, mgl64.Vec3{1, 0, 0}, 100, true, false, false},
		{"jumped_two_steps_ago", 0, 2, mgl64.Vec3{1, 0, 0}, 100, true, true, true},
		{"too_fast", 0, 10, mgl64.Vec3{3, 0, 0}, 1, true, false, false},
		{"nothing_below", 0, 10, mgl64.Vec3{1, 0, 0}, 100, false, true, false},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			a, body := newTestAgent(t, func(cfg *Config) { cfg.MaxSnapSpeed = c.snapMax })
			a.stepsSinceGrounded = c.grounded
			a.stepsSinceLastJump = c.jumped
			body.velocity = c.velocity
			body.hit = RaycastHit{Normal: mgl64.Vec3{0, 1, 0}}
			body.hitOK = c.hitOK

			a.SimulateStep(0)

			if (body.rayCalls > 0) != c.wantRay {
				t.Fatalf("ray calls = %d, want ray %v", body.rayCalls, c.wantRay)
			}
			if a.Grounded() != c.wantSnap {
				t.Fatalf("grounded = %v, want %v", a.Grounded(), c.wantSnap)
			}
		})
	}
}

func TestSnapUsesStairsThresholdPerLayer(t *testing.T) {
	cases := []struct {
		name     string
		layer    int
		wantSnap bool
	}{
		{"stairs_layer", 3, true},
		{"default_layer", 0, false},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			a, body := newTestAgent(t, func(cfg *Config) { cfg.StairsMask = LayerBit(3) })
			primeForSnap(a)
			body.hit = RaycastHit{Normal: unitFromDegrees(40), Layer: c.layer}
			body.hitOK = true

			a.SimulateStep(0)

			if a.Grounded() != c.wantSnap {
				t.Fatalf("grounded = %v, want %v", a.Grounded(), c.wantSnap)
			}
		})
	}
}

func TestSnapNormalizesHitNormal(t *testing.T) {
	a, body := newTestAgent(t, nil)
	primeForSnap(a)
	body.hit = RaycastHit{Normal: mgl64.Vec3{0, 3, 0}}
	body.hitOK = true

	a.SimulateStep(0)

	if !vecNear(a.ContactNormal(), worldUp) {
		t.Fatalf("contact normal = %v, want unit up", a.ContactNormal())
	}
}

func TestSteepCreviceIsPromotedToGround(t *testing.T) {
	a, _ := newTestAgent(t, nil)
	a.OnCollisionStay(ContactEvent{Normals: []mgl64.Vec3{{0.8, 0.6, 0}, {-0.8, 0.6, 0}}})

	a.SimulateStep(0.02)

	st := a.Snapshot()
	if !st.Grounded || st.GroundContacts != 1 {
		t.Fatalf("crevice not promoted: %+v", st)
	}
	if !vecNear(st.ContactNormal, worldUp) || !vecNear(st.SteepNormal, worldUp) {
		t.Fatalf("normals = %v / %v, want up", st.ContactNormal, st.SteepNormal)
	}
}

func TestSteepPairTooSteepStaysSteep(t *testing.T) {
	a, _ := newTestAgent(t, nil)
	a.OnCollisionStay(ContactEvent{Normals: []mgl64.Vec3{{1, 0, 0}, {1, 0, 0}}})

	a.SimulateStep(0.02)

	st := a.Snapshot()
	if st.Grounded || !st.OnSteep {
		t.Fatalf("wall pair resolved as %+v", st)
	}
	if !vecNear(st.SteepNormal, mgl64.Vec3{1, 0, 0}) {
		t.Fatalf("steep normal = %v, want normalized (1,0,0)", st.SteepNormal)
	}
	if !vecNear(st.ContactNormal, worldUp) {
		t.Fatalf("contact normal = %v, want up", st.ContactNormal)
	}
}

func TestSingleSteepContactIsNotPromoted(t *testing.T) {
	a, _ := newTestAgent(t, nil)
	a.OnCollisionStay(ContactEvent{Normals: []mgl64.Vec3{{0.8, 0.6, 0}}})

	a.SimulateStep(0.02)

	if a.Grounded() {
		t.Fatalf("single steep contact promoted to ground")
	}
	if !vecNear(a.SteepNormal(), mgl64.Vec3{0.8, 0.6, 0}) {
		t.Fatalf("steep normal = %v", a.SteepNormal())
	}
}

func TestMultipleGroundNormalsAreAveraged(t *testing.T) {
	a, _ := newTestAgent(t, nil)
	a.OnCollisionStay(groundContact(mgl64.Vec3{0.1, 0.99, 0}, mgl64.Vec3{-0.1, 0.99, 0}))

	a.SimulateStep(0.02)

	st := a.Snapshot()
	if st.GroundContacts != 2 {
		t.Fatalf("ground contacts = %d, want 2", st.GroundContacts)
	}
	if !vecNear(st.ContactNormal, worldUp) {
		t.Fatalf("contact normal = %v, want up", st.ContactNormal)
	}
}

func TestCancellingGroundNormalsFallBackToUp(t *testing.T) {
	a, _ := newTestAgent(t, func(cfg *Config) { cfg.MaxGroundAngle = 90 })
	// cos(90°) is a hair above zero, so the walls lean up just enough to
	// count as ground while their sum stays too short to normalize.
	a.OnCollisionStay(groundContact(mgl64.Vec3{1, 1e-13, 0}, mgl64.Vec3{-1, 1e-13, 0}))
	if a.contacts.groundCount != 2 {
		t.Fatalf("ground count = %d, want both contacts classified as ground", a.contacts.groundCount)
	}

	a.SimulateStep(0.02)

	st := a.Snapshot()
	if !st.Grounded {
		t.Fatalf("agent lost ground on cancelling normals")
	}
	if !vecNear(st.ContactNormal, worldUp) {
		t.Fatalf("contact normal = %v, want up", st.ContactNormal)
	}
}
