package locomotion

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
)

// fakeBody is a scripted stand-in for the physics engine.
type fakeBody struct {
	position mgl64.Vec3
	velocity mgl64.Vec3
	gravity  mgl64.Vec3

	hit   RaycastHit
	hitOK bool

	rayCalls    int
	rayOrigin   mgl64.Vec3
	rayDir      mgl64.Vec3
	rayDistance float64
	rayMask     uint32

	writes int
}

func newFakeBody() *fakeBody {
	return &fakeBody{gravity: mgl64.Vec3{0, -9.81, 0}}
}

func (b *fakeBody) Position() mgl64.Vec3 { return b.position }
func (b *fakeBody) Velocity() mgl64.Vec3 { return b.velocity }
func (b *fakeBody) Gravity() mgl64.Vec3  { return b.gravity }

func (b *fakeBody) SetVelocity(v mgl64.Vec3) {
	b.velocity = v
	b.writes++
}

func (b *fakeBody) Raycast(origin, dir mgl64.Vec3, maxDistance float64, mask uint32) (RaycastHit, bool) {
	b.rayCalls++
	b.rayOrigin = origin
	b.rayDir = dir
	b.rayDistance = maxDistance
	b.rayMask = mask
	return b.hit, b.hitOK
}

const testEpsilon = 1e-6

func vecNear(a, b mgl64.Vec3) bool {
	return a.ApproxEqualThreshold(b, testEpsilon)
}

func floatNear(a, b float64) bool {
	return math.Abs(a-b) <= testEpsilon
}

func groundContact(normals ...mgl64.Vec3) ContactEvent {
	return ContactEvent{Layer: 0, Normals: normals}
}

func newTestAgent(t *testing.T, mutate func(*Config)) (*Agent, *fakeBody) {
	t.Helper()
	cfg := DefaultConfig()
	if mutate != nil {
		mutate(&cfg)
	}
	body := newFakeBody()
	return NewAgent(body, cfg), body
}

// unitFromDegrees returns the unit normal of a slope rising toward +X that
// is tilted deg degrees away from up.
func unitFromDegrees(deg float64) mgl64.Vec3 {
	r := mgl64.DegToRad(deg)
	return mgl64.Vec3{-math.Sin(r), math.Cos(r), 0}
}
