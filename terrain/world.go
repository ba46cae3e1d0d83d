// Package terrain hosts a locomotion agent in a Chipmunk2D space. The world
// is a side-view slice: X is right, Y is up and the agent's Z axis is
// dropped.
package terrain

import (
	"errors"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/movingsphere/common"
	"github.com/milk9111/movingsphere/locomotion"
)

const (
	collisionTypeSphere cp.CollisionType = iota + 1
	collisionTypeTerrain
)

// ErrNoSphere is returned when stepping a world that has no sphere yet.
var ErrNoSphere = errors.New("terrain: no sphere attached")

// Controller is driven once per fixed step and told about every contact the
// sphere makes. *locomotion.Agent satisfies it.
type Controller interface {
	OnCollisionStay(ev locomotion.ContactEvent)
	OnCollisionExit(ev locomotion.ContactEvent)
	SimulateStep(dt float64)
}

type World struct {
	space  *cp.Space
	course Course

	sphere     *Sphere
	controller Controller

	handlersReady bool
}

// NewWorld builds a space holding the static shapes of c.
func NewWorld(c Course) (*World, error) {
	space := cp.NewSpace()
	space.Iterations = 20
	g := c.Gravity
	if g <= 0 {
		g = common.Gravity
	}
	space.SetGravity(cp.Vector{X: 0, Y: -g})

	w := &World{space: space, course: c}
	if err := w.buildStaticShapes(c); err != nil {
		return nil, err
	}
	return w, nil
}

func (w *World) Space() *cp.Space {
	if w == nil {
		return nil
	}
	return w.space
}

func (w *World) Course() Course {
	return w.course
}

func (w *World) Sphere() *Sphere {
	return w.sphere
}

// Attach routes contacts and fixed steps to c. Passing nil detaches.
func (w *World) Attach(c Controller) {
	w.controller = c
}

// Step runs one fixed step: the controller resolves the contacts gathered by
// the previous space step and writes its velocity, then the space advances
// and gathers the contacts for the next one.
func (w *World) Step(dt float64) error {
	if w == nil || w.sphere == nil {
		return ErrNoSphere
	}
	if w.controller != nil {
		w.controller.SimulateStep(dt)
	}
	w.space.Step(dt)
	return nil
}

func (w *World) setupHandlers() {
	if w.handlersReady {
		return
	}
	handler := w.space.NewCollisionHandler(collisionTypeSphere, collisionTypeTerrain)
	handler.UserData = w
	handler.PreSolveFunc = func(arb *cp.Arbiter, space *cp.Space, userData interface{}) bool {
		world, ok := userData.(*World)
		if !ok || world == nil || world.controller == nil {
			return true
		}
		if ev, ok := world.contactEvent(arb); ok {
			world.controller.OnCollisionStay(ev)
		}
		return true
	}
	handler.SeparateFunc = func(arb *cp.Arbiter, space *cp.Space, userData interface{}) {
		world, ok := userData.(*World)
		if !ok || world == nil || world.controller == nil {
			return
		}
		if ev, ok := world.contactEvent(arb); ok {
			world.controller.OnCollisionExit(ev)
		}
	}
	w.handlersReady = true
}
