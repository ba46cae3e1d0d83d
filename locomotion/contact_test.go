package locomotion

import (
	"testing"

	"github.com/go-gl/mathgl/mgl64"
)

func TestEvaluateCollisionClassifiesNormals(t *testing.T) {
	cases := []struct {
		name       string
		layer      int
		stairsMask uint32
		normal     mgl64.Vec3
		wantGround int
		wantSteep  int
	}{
		{"flat_ground", 0, 0, mgl64.Vec3{0, 1, 0}, 1, 0},
		{"gentle_slope", 0, 0, unitFromDegrees(20), 1, 0},
		{"too_steep_for_ground", 0, 0, unitFromDegrees(40), 0, 1},
		{"stairs_layer_allows_40_degrees", 2, LayerBit(2), unitFromDegrees(40), 1, 0},
		{"stairs_layer_rejects_60_degrees", 2, LayerBit(2), unitFromDegrees(60), 0, 1},
		{"vertical_wall", 0, 0, mgl64.Vec3{1, 0, 0}, 0, 1},
		{"slight_overhang", 0, 0, mgl64.Vec3{1, -0.005, 0}.Normalize(), 0, 1},
		{"ceiling", 0, 0, mgl64.Vec3{0, -1, 0}, 0, 0},
		{"steep_overhang_rejected", 0, 0, mgl64.Vec3{1, -0.2, 0}.Normalize(), 0, 0},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			a, _ := newTestAgent(t, func(cfg *Config) { cfg.StairsMask = c.stairsMask })
			a.OnCollisionStay(ContactEvent{Layer: c.layer, Normals: []mgl64.Vec3{c.normal}})
			if a.contacts.groundCount != c.wantGround {
				t.Fatalf("ground count = %d, want %d", a.contacts.groundCount, c.wantGround)
			}
			if a.contacts.steepCount != c.wantSteep {
				t.Fatalf("steep count = %d, want %d", a.contacts.steepCount, c.wantSteep)
			}
		})
	}
}

func TestContactNormalsAreNormalized(t *testing.T) {
	a, _ := newTestAgent(t, nil)
	a.OnCollisionStay(groundContact(mgl64.Vec3{0, 3, 0}, mgl64.Vec3{}, mgl64.Vec3{-4, 0, 0}))

	if a.contacts.groundCount != 1 || a.contacts.steepCount != 1 {
		t.Fatalf("counts = %d/%d, want 1/1 with the zero normal skipped", a.contacts.groundCount, a.contacts.steepCount)
	}
	if !vecNear(a.contacts.contactNormal, worldUp) {
		t.Fatalf("contact normal = %v, want unit up", a.contacts.contactNormal)
	}
	if !vecNear(a.contacts.steepNormal, mgl64.Vec3{-1, 0, 0}) {
		t.Fatalf("steep normal = %v, want unit -X", a.contacts.steepNormal)
	}

	a.SimulateStep(0.02)
	if n := a.ContactNormal(); !floatNear(n.Len(), 1) {
		t.Fatalf("resolved contact normal %v is not unit length", n)
	}
}

func TestCollisionExitEvaluatesLikeStay(t *testing.T) {
	a, _ := newTestAgent(t, nil)
	ev := groundContact(mgl64.Vec3{0, 1, 0}, mgl64.Vec3{1, 0, 0})

	a.OnCollisionStay(ev)
	a.OnCollisionExit(ev)

	if a.contacts.groundCount != 2 || a.contacts.steepCount != 2 {
		t.Fatalf("counts = %d/%d, want 2/2", a.contacts.groundCount, a.contacts.steepCount)
	}
	if !vecNear(a.contacts.contactNormal, mgl64.Vec3{0, 2, 0}) {
		t.Fatalf("contact normal sum = %v", a.contacts.contactNormal)
	}
	if !vecNear(a.contacts.steepNormal, mgl64.Vec3{2, 0, 0}) {
		t.Fatalf("steep normal sum = %v", a.contacts.steepNormal)
	}
}

func TestEmptyManifoldContributesNothing(t *testing.T) {
	a, _ := newTestAgent(t, nil)
	a.OnCollisionExit(ContactEvent{Layer: 0})
	if a.contacts != (contactScratch{}) {
		t.Fatalf("scratch changed by empty manifold: %+v", a.contacts)
	}
}

func TestContactsClearedAfterStep(t *testing.T) {
	a, body := newTestAgent(t, nil)
	a.OnCollisionStay(groundContact(mgl64.Vec3{0, 1, 0}))
	a.OnCollisionStay(ContactEvent{Layer: 0, Normals: []mgl64.Vec3{{1, 0, 0}, {-1, 0, 0}}})

	a.SimulateStep(0.02)

	if body.writes != 1 {
		t.Fatalf("velocity writes = %d, want 1", body.writes)
	}
	if a.contacts != (contactScratch{}) {
		t.Fatalf("scratch not cleared after step: %+v", a.contacts)
	}
	if !a.Grounded() || a.Snapshot().SteepContacts != 2 {
		t.Fatalf("snapshot lost the resolved step: %+v", a.Snapshot())
	}
}

func TestNormalizeRejectsDegenerateSums(t *testing.T) {
	if _, ok := normalize(mgl64.Vec3{}); ok {
		t.Fatalf("zero vector normalized")
	}
	if _, ok := normalize(mgl64.Vec3{1e-9, 0, 0}); ok {
		t.Fatalf("near zero vector normalized")
	}
	n, ok := normalize(mgl64.Vec3{0, 1.98, 0})
	if !ok || !vecNear(n, worldUp) {
		t.Fatalf("normalize = %v ok=%v", n, ok)
	}
}
