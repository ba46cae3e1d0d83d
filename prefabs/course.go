package prefabs

import (
	"fmt"
	"image/color"
	"strings"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/movingsphere/locomotion"
	"github.com/milk9111/movingsphere/terrain"
)

const CourseFile = "course.yaml"

// allLayersName selects every layer in a mask list.
const allLayersName = "all"

type LayerSpec struct {
	Name  string     `yaml:"name"`
	Index int        `yaml:"index"`
	Color *YAMLColor `yaml:"color"`
}

// LayerTable maps layer names to indices. The empty name is layer 0.
type LayerTable map[string]int

func (t LayerTable) Index(name string) (int, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return 0, nil
	}
	idx, ok := t[name]
	if !ok {
		return 0, fmt.Errorf("%w: %q", ErrUnknownLayer, name)
	}
	return idx, nil
}

// Mask ORs the bits of the named layers. "all" selects every layer.
func (t LayerTable) Mask(names []string) (uint32, error) {
	var mask uint32
	for _, name := range names {
		if strings.EqualFold(strings.TrimSpace(name), allLayersName) {
			return locomotion.AllLayers, nil
		}
		idx, err := t.Index(name)
		if err != nil {
			return 0, err
		}
		mask |= locomotion.LayerBit(idx)
	}
	return mask, nil
}

type BoundsSpec struct {
	Min Point `yaml:"min"`
	Max Point `yaml:"max"`
}

type SegmentSpec struct {
	A      Point   `yaml:"a"`
	B      Point   `yaml:"b"`
	Radius float64 `yaml:"radius"`
	Layer  string  `yaml:"layer"`
}

type BoxSpec struct {
	Min   Point  `yaml:"min"`
	Max   Point  `yaml:"max"`
	Layer string `yaml:"layer"`
}

type StairsSpec struct {
	Origin     Point   `yaml:"origin"`
	StepWidth  float64 `yaml:"step_width"`
	StepHeight float64 `yaml:"step_height"`
	Steps      int     `yaml:"steps"`
	Layer      string  `yaml:"layer"`
	Ramp       bool    `yaml:"ramp"`
}

type RampSpec struct {
	Origin Point   `yaml:"origin"`
	Run    float64 `yaml:"run"`
	Angle  float64 `yaml:"angle"`
	Layer  string  `yaml:"layer"`
}

type CourseSpec struct {
	Name     string        `yaml:"name"`
	Gravity  float64       `yaml:"gravity"`
	Friction float64       `yaml:"friction"`
	Layers   []LayerSpec   `yaml:"layers"`
	Bounds   *BoundsSpec   `yaml:"bounds"`
	Segments []SegmentSpec `yaml:"segments"`
	Boxes    []BoxSpec     `yaml:"boxes"`
	Stairs   []StairsSpec  `yaml:"stairs"`
	Ramps    []RampSpec    `yaml:"ramps"`
}

func LoadCourseSpec(filename string) (*CourseSpec, error) {
	if filename == "" {
		filename = CourseFile
	}
	spec, err := LoadSpec[CourseSpec](filename)
	if err != nil {
		return nil, err
	}
	return &spec, nil
}

// LayerTable validates the declared layers and indexes them by name.
func (s *CourseSpec) LayerTable() (LayerTable, error) {
	table := make(LayerTable, len(s.Layers))
	for _, l := range s.Layers {
		name := strings.TrimSpace(l.Name)
		if name == "" {
			return nil, fmt.Errorf("prefabs: course %s: layer without a name", s.Name)
		}
		if strings.EqualFold(name, allLayersName) {
			return nil, fmt.Errorf("prefabs: course %s: layer name %q is reserved", s.Name, name)
		}
		if l.Index < 0 || l.Index > locomotion.MaxLayer {
			return nil, fmt.Errorf("prefabs: course %s: layer %q: %w", s.Name, name, terrain.ErrLayerRange)
		}
		if _, dup := table[name]; dup {
			return nil, fmt.Errorf("prefabs: course %s: duplicate layer %q", s.Name, name)
		}
		table[name] = l.Index
	}
	return table, nil
}

// LayerColors returns the colours declared for layers, keyed by index.
func (s *CourseSpec) LayerColors() map[int]color.Color {
	out := make(map[int]color.Color)
	for _, l := range s.Layers {
		if l.Color != nil && l.Color.Color != nil {
			out[l.Index] = l.Color.Color
		}
	}
	return out
}

// Course resolves layer names and converts the spec into terrain pieces.
func (s *CourseSpec) Course() (terrain.Course, error) {
	layers, err := s.LayerTable()
	if err != nil {
		return terrain.Course{}, err
	}

	c := terrain.Course{Name: s.Name, Gravity: s.Gravity, Friction: s.Friction}
	if s.Bounds != nil {
		c.Bounds = cp.BB{L: s.Bounds.Min.X, B: s.Bounds.Min.Y, R: s.Bounds.Max.X, T: s.Bounds.Max.Y}
	}

	resolve := func(kind string, i int, name string) (int, error) {
		idx, err := layers.Index(name)
		if err != nil {
			return 0, fmt.Errorf("prefabs: course %s: %s %d: %w", s.Name, kind, i, err)
		}
		return idx, nil
	}

	for i, seg := range s.Segments {
		layer, err := resolve("segment", i, seg.Layer)
		if err != nil {
			return terrain.Course{}, err
		}
		c.Segments = append(c.Segments, terrain.Segment{A: seg.A.Vector(), B: seg.B.Vector(), Radius: seg.Radius, Layer: layer})
	}
	for i, box := range s.Boxes {
		layer, err := resolve("box", i, box.Layer)
		if err != nil {
			return terrain.Course{}, err
		}
		c.Boxes = append(c.Boxes, terrain.Box{Min: box.Min.Vector(), Max: box.Max.Vector(), Layer: layer})
	}
	for i, st := range s.Stairs {
		layer, err := resolve("stairs", i, st.Layer)
		if err != nil {
			return terrain.Course{}, err
		}
		c.Stairs = append(c.Stairs, terrain.Stairs{
			Origin:     st.Origin.Vector(),
			StepWidth:  st.StepWidth,
			StepHeight: st.StepHeight,
			Steps:      st.Steps,
			Layer:      layer,
			Ramp:       st.Ramp,
		})
	}
	for i, r := range s.Ramps {
		layer, err := resolve("ramp", i, r.Layer)
		if err != nil {
			return terrain.Course{}, err
		}
		c.Ramps = append(c.Ramps, terrain.Ramp{Origin: r.Origin.Vector(), Run: r.Run, Angle: r.Angle, Layer: layer})
	}
	return c, nil
}
