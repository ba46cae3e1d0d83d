package terrain

import (
	"errors"
	"fmt"
	"math"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/movingsphere/locomotion"
)

// ErrLayerRange is returned when a terrain piece names a layer a mask cannot
// address.
var ErrLayerRange = errors.New("terrain: layer out of range")

const boundsThickness = 0.1

// Course describes the static terrain of a side-view world. Y is up.
type Course struct {
	Name string
	// Gravity is the downward acceleration. Zero or less selects common.Gravity.
	Gravity  float64
	Friction float64
	// Bounds, when not empty, closes the world with four walls on layer 0.
	Bounds cp.BB

	Segments []Segment
	Boxes    []Box
	Stairs   []Stairs
	Ramps    []Ramp
}

type Segment struct {
	A, B   cp.Vector
	Radius float64
	Layer  int
}

type Box struct {
	Min, Max cp.Vector
	Layer    int
}

// Stairs is a run of solid steps starting at Origin, the bottom corner of the
// first step. A negative StepWidth builds the run toward -X.
//
// With Ramp set, a wedge on the same layer touches the leading corner of
// every step, so a sphere rolls up the run instead of catching on risers
// taller than its radius allows.
type Stairs struct {
	Origin     cp.Vector
	StepWidth  float64
	StepHeight float64
	Steps      int
	Layer      int
	Ramp       bool
}

// Ramp is a solid wedge rising from Origin over Run horizontal units at
// Angle degrees. A negative Run rises toward -X.
type Ramp struct {
	Origin cp.Vector
	Run    float64
	Angle  float64
	Layer  int
}

func checkLayer(layer int) error {
	if layer < 0 || layer > locomotion.MaxLayer {
		return fmt.Errorf("%w: %d", ErrLayerRange, layer)
	}
	return nil
}

func (w *World) buildStaticShapes(c Course) error {
	for i, seg := range c.Segments {
		if err := checkLayer(seg.Layer); err != nil {
			return fmt.Errorf("terrain: segment %d: %w", i, err)
		}
		if seg.A.Distance(seg.B) == 0 {
			return fmt.Errorf("terrain: segment %d: zero length", i)
		}
		w.addStatic(cp.NewSegment(w.space.StaticBody, seg.A, seg.B, seg.Radius), seg.Layer, c.Friction)
	}

	for i, box := range c.Boxes {
		if err := checkLayer(box.Layer); err != nil {
			return fmt.Errorf("terrain: box %d: %w", i, err)
		}
		if box.Max.X <= box.Min.X || box.Max.Y <= box.Min.Y {
			return fmt.Errorf("terrain: box %d: empty extent", i)
		}
		bb := cp.BB{L: box.Min.X, B: box.Min.Y, R: box.Max.X, T: box.Max.Y}
		w.addStatic(cp.NewBox2(w.space.StaticBody, bb, 0), box.Layer, c.Friction)
	}

	for i, st := range c.Stairs {
		if err := checkLayer(st.Layer); err != nil {
			return fmt.Errorf("terrain: stairs %d: %w", i, err)
		}
		if st.Steps < 1 || st.StepWidth == 0 || st.StepHeight <= 0 {
			return fmt.Errorf("terrain: stairs %d: need at least one step of non-zero size", i)
		}
		// Each step is a column reaching down to the run's base so the risers
		// are the only vertical faces.
		for s := 0; s < st.Steps; s++ {
			x0 := st.Origin.X + float64(s)*st.StepWidth
			x1 := x0 + st.StepWidth
			bb := cp.BB{
				L: math.Min(x0, x1),
				B: st.Origin.Y,
				R: math.Max(x0, x1),
				T: st.Origin.Y + float64(s+1)*st.StepHeight,
			}
			w.addStatic(cp.NewBox2(w.space.StaticBody, bb, 0), st.Layer, c.Friction)
		}
		if st.Ramp {
			w.addStatic(stairRamp(w.space.StaticBody, st), st.Layer, c.Friction)
		}
	}

	for i, r := range c.Ramps {
		if err := checkLayer(r.Layer); err != nil {
			return fmt.Errorf("terrain: ramp %d: %w", i, err)
		}
		if r.Run == 0 || r.Angle <= 0 || r.Angle >= 90 {
			return fmt.Errorf("terrain: ramp %d: run must be non-zero and angle in (0, 90)", i)
		}
		rise := math.Abs(r.Run) * math.Tan(r.Angle*math.Pi/180)
		verts := []cp.Vector{
			r.Origin,
			{X: r.Origin.X + r.Run, Y: r.Origin.Y},
			{X: r.Origin.X + r.Run, Y: r.Origin.Y + rise},
		}
		shape := cp.NewPolyShape(w.space.StaticBody, len(verts), verts, cp.NewTransformIdentity(), 0)
		w.addStatic(shape, r.Layer, c.Friction)
	}

	if c.Bounds.R > c.Bounds.L && c.Bounds.T > c.Bounds.B {
		b := c.Bounds
		walls := []struct {
			a cp.Vector
			b cp.Vector
		}{
			{a: cp.Vector{X: b.L, Y: b.B}, b: cp.Vector{X: b.R, Y: b.B}}, // floor
			{a: cp.Vector{X: b.L, Y: b.T}, b: cp.Vector{X: b.R, Y: b.T}}, // ceiling
			{a: cp.Vector{X: b.L, Y: b.B}, b: cp.Vector{X: b.L, Y: b.T}}, // left
			{a: cp.Vector{X: b.R, Y: b.B}, b: cp.Vector{X: b.R, Y: b.T}}, // right
		}
		for _, wall := range walls {
			w.addStatic(cp.NewSegment(w.space.StaticBody, wall.a, wall.b, boundsThickness), 0, c.Friction)
		}
	}
	return nil
}

// stairRamp starts one step width before the run so its slope passes through
// the top leading corner of each step and meets the last tread.
func stairRamp(body *cp.Body, st Stairs) *cp.Shape {
	toe := cp.Vector{X: st.Origin.X - st.StepWidth, Y: st.Origin.Y}
	topX := st.Origin.X + float64(st.Steps-1)*st.StepWidth
	verts := []cp.Vector{
		toe,
		{X: topX, Y: st.Origin.Y},
		{X: topX, Y: st.Origin.Y + float64(st.Steps)*st.StepHeight},
	}
	return cp.NewPolyShape(body, len(verts), verts, cp.NewTransformIdentity(), 0)
}

// addStatic tags shape with its layer, both as the collision category used by
// raycast masks and as user data read back by contact reporting.
func (w *World) addStatic(shape *cp.Shape, layer int, friction float64) {
	shape.SetFriction(friction)
	shape.SetCollisionType(collisionTypeTerrain)
	shape.SetFilter(cp.ShapeFilter{
		Group:      cp.NO_GROUP,
		Categories: uint(locomotion.LayerBit(layer)),
		Mask:       cp.ALL_CATEGORIES,
	})
	shape.UserData = layer
	w.space.AddShape(shape)
}
