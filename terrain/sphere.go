package terrain

import (
	"errors"
	"fmt"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/jakecoffman/cp"
	"github.com/milk9111/movingsphere/locomotion"
)

// sphereGroup keeps the sphere out of its own ground probe.
const sphereGroup uint = 1

type SphereOptions struct {
	Radius     float64
	Mass       float64
	Friction   float64
	Elasticity float64
	Layer      int
	Spawn      cp.Vector
}

// Sphere is the dynamic body of the agent. It implements locomotion.Body.
type Sphere struct {
	world *World
	body  *cp.Body
	shape *cp.Shape
	opts  SphereOptions
}

// AddSphere creates the world's single dynamic sphere.
func (w *World) AddSphere(opts SphereOptions) (*Sphere, error) {
	if w.sphere != nil {
		return nil, errors.New("terrain: sphere already attached")
	}
	if opts.Radius <= 0 || opts.Mass <= 0 {
		return nil, fmt.Errorf("terrain: sphere needs positive radius and mass, got %v and %v", opts.Radius, opts.Mass)
	}
	if err := checkLayer(opts.Layer); err != nil {
		return nil, fmt.Errorf("terrain: sphere: %w", err)
	}

	body := cp.NewBody(opts.Mass, cp.MomentForCircle(opts.Mass, 0, opts.Radius, cp.Vector{}))
	body.SetPosition(opts.Spawn)
	shape := cp.NewCircle(body, opts.Radius, cp.Vector{})
	shape.SetFriction(opts.Friction)
	shape.SetElasticity(opts.Elasticity)
	shape.SetCollisionType(collisionTypeSphere)
	shape.SetFilter(cp.ShapeFilter{
		Group:      sphereGroup,
		Categories: uint(locomotion.LayerBit(opts.Layer)),
		Mask:       cp.ALL_CATEGORIES,
	})
	shape.UserData = opts.Layer

	w.space.AddBody(body)
	w.space.AddShape(shape)

	s := &Sphere{world: w, body: body, shape: shape, opts: opts}
	w.sphere = s
	w.setupHandlers()
	return s, nil
}

func (s *Sphere) Radius() float64 {
	return s.opts.Radius
}

func (s *Sphere) Body() *cp.Body {
	return s.body
}

func (s *Sphere) Position() mgl64.Vec3 {
	p := s.body.Position()
	return mgl64.Vec3{p.X, p.Y, 0}
}

func (s *Sphere) Velocity() mgl64.Vec3 {
	v := s.body.Velocity()
	return mgl64.Vec3{v.X, v.Y, 0}
}

// SetVelocity writes the X and Y components; Z has no meaning in the slice.
func (s *Sphere) SetVelocity(v mgl64.Vec3) {
	s.body.SetVelocity(v.X(), v.Y())
}

func (s *Sphere) Gravity() mgl64.Vec3 {
	g := s.world.space.Gravity()
	return mgl64.Vec3{g.X, g.Y, 0}
}

// Raycast casts a thin segment query from origin. Shapes whose layer bit is
// not in mask are filtered out by cp itself.
func (s *Sphere) Raycast(origin, dir mgl64.Vec3, maxDistance float64, mask uint32) (locomotion.RaycastHit, bool) {
	if maxDistance <= 0 || mask == 0 {
		return locomotion.RaycastHit{}, false
	}
	start := cp.Vector{X: origin.X(), Y: origin.Y()}
	end := start.Add(cp.Vector{X: dir.X(), Y: dir.Y()}.Mult(maxDistance))
	filter := cp.ShapeFilter{Group: sphereGroup, Categories: cp.ALL_CATEGORIES, Mask: uint(mask)}

	info := s.world.space.SegmentQueryFirst(start, end, 0, filter)
	if info.Shape == nil {
		return locomotion.RaycastHit{}, false
	}
	layer, _ := info.Shape.UserData.(int)
	return locomotion.RaycastHit{
		Normal:   mgl64.Vec3{info.Normal.X, info.Normal.Y, 0},
		Layer:    layer,
		Distance: info.Alpha * maxDistance,
	}, true
}

// Reset moves the sphere to p and stops it.
func (s *Sphere) Reset(p cp.Vector) {
	s.body.SetPosition(p)
	s.body.SetVelocity(0, 0)
	s.body.SetAngularVelocity(0)
}
