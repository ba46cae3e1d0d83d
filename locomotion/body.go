package locomotion

import "github.com/go-gl/mathgl/mgl64"

// Body is the slice of a rigid-body physics engine the controller needs.
// Implementations must answer Raycast against the live world geometry of
// the current step.
type Body interface {
	Position() mgl64.Vec3
	Velocity() mgl64.Vec3
	SetVelocity(v mgl64.Vec3)
	// Gravity returns the world gravity acceleration vector.
	Gravity() mgl64.Vec3
	// Raycast casts a ray from origin along dir (unit length) up to
	// maxDistance, hitting only surfaces whose layer bit is set in mask.
	Raycast(origin, dir mgl64.Vec3, maxDistance float64, mask uint32) (RaycastHit, bool)
}

// RaycastHit describes the first surface hit by Body.Raycast.
type RaycastHit struct {
	Normal   mgl64.Vec3
	Layer    int
	Distance float64
}

// ContactEvent is one collision reported by the physics engine: the layer of
// the other collider and the normals of every contact point in the manifold.
type ContactEvent struct {
	Layer   int
	Normals []mgl64.Vec3
}

// Intent is one frame of directional input. Move is right (X) and forward (Y)
// and is clamped to unit magnitude when sampled.
type Intent struct {
	Move mgl64.Vec2
	Jump bool
}
