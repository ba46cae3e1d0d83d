package terrain

import (
	"github.com/go-gl/mathgl/mgl64"
	"github.com/jakecoffman/cp"
	"github.com/milk9111/movingsphere/locomotion"
)

// contactEvent converts an arbiter touching the sphere into a contact event.
// Every contact point carries the surface normal of the other shape, pointing
// toward the sphere.
func (w *World) contactEvent(arb *cp.Arbiter) (locomotion.ContactEvent, bool) {
	if w.sphere == nil {
		return locomotion.ContactEvent{}, false
	}
	shapeA, shapeB := arb.Shapes()
	n := arb.Normal()
	other := shapeB
	switch w.sphere.shape {
	case shapeA:
		n = n.Neg()
	case shapeB:
		other = shapeA
	default:
		return locomotion.ContactEvent{}, false
	}

	layer, _ := other.UserData.(int)
	normals := make([]mgl64.Vec3, arb.Count())
	for i := range normals {
		normals[i] = mgl64.Vec3{n.X, n.Y, 0}
	}
	return locomotion.ContactEvent{Layer: layer, Normals: normals}, true
}
