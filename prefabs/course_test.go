package prefabs

import (
	"errors"
	"testing"

	"github.com/milk9111/movingsphere/locomotion"
	"github.com/milk9111/movingsphere/terrain"
	"gopkg.in/yaml.v3"
)

func parseCourse(t *testing.T, src string) *CourseSpec {
	t.Helper()
	var spec CourseSpec
	if err := yaml.Unmarshal([]byte(src), &spec); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	return &spec
}

func TestEmbeddedCourseBuildsAWorld(t *testing.T) {
	spec, err := LoadCourseSpec("")
	if err != nil {
		t.Fatalf("LoadCourseSpec: %v", err)
	}
	course, err := spec.Course()
	if err != nil {
		t.Fatalf("Course: %v", err)
	}
	if len(course.Stairs) == 0 || len(course.Ramps) == 0 {
		t.Fatalf("embedded course lost its features: %+v", course)
	}
	if _, err := terrain.NewWorld(course); err != nil {
		t.Fatalf("NewWorld: %v", err)
	}
	if len(spec.LayerColors()) == 0 {
		t.Fatalf("embedded course declares no layer colours")
	}
}

func TestCourseResolvesLayerNames(t *testing.T) {
	spec := parseCourse(t, `
name: t
layers:
  - {name: floor, index: 4}
  - {name: steps, index: 7}
segments:
  - {a: [0, 0], b: [5, 0], layer: floor}
  - {a: [0, 1], b: [5, 1]}
stairs:
  - {origin: [1, 0], step_width: 1, step_height: 0.2, steps: 2, layer: steps}
`)
	course, err := spec.Course()
	if err != nil {
		t.Fatalf("Course: %v", err)
	}
	if course.Segments[0].Layer != 4 || course.Segments[1].Layer != 0 {
		t.Fatalf("segment layers = %d, %d", course.Segments[0].Layer, course.Segments[1].Layer)
	}
	if course.Stairs[0].Layer != 7 {
		t.Fatalf("stairs layer = %d, want 7", course.Stairs[0].Layer)
	}
}

func TestCourseErrors(t *testing.T) {
	cases := []struct {
		name    string
		src     string
		wantErr error
	}{
		{"unknown_layer", "boxes: [{min: [0, 0], max: [1, 1], layer: lava}]", ErrUnknownLayer},
		{"layer_out_of_range", "layers: [{name: high, index: 32}]", terrain.ErrLayerRange},
		{"duplicate_layer", "layers: [{name: a, index: 1}, {name: a, index: 2}]", nil},
		{"reserved_name", "layers: [{name: all, index: 1}]", nil},
		{"unnamed_layer", "layers: [{index: 1}]", nil},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			_, err := parseCourse(t, c.src).Course()
			if err == nil {
				t.Fatalf("expected error")
			}
			if c.wantErr != nil && !errors.Is(err, c.wantErr) {
				t.Fatalf("err = %v, want %v", err, c.wantErr)
			}
		})
	}
}

func TestLayerTableMask(t *testing.T) {
	table := LayerTable{"floor": 0, "stairs": 2, "decor": 5}

	cases := []struct {
		name    string
		names   []string
		want    uint32
		wantErr bool
	}{
		{"single", []string{"stairs"}, 1 << 2, false},
		{"several", []string{"floor", "decor"}, 1 | 1<<5, false},
		{"all", []string{"floor", "All"}, locomotion.AllLayers, false},
		{"empty", []string{}, 0, false},
		{"unknown", []string{"water"}, 0, true},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			got, err := table.Mask(c.names)
			if (err != nil) != c.wantErr {
				t.Fatalf("err = %v, wantErr %v", err, c.wantErr)
			}
			if err != nil {
				if !errors.Is(err, ErrUnknownLayer) {
					t.Fatalf("err = %v, want ErrUnknownLayer", err)
				}
				return
			}
			if got != c.want {
				t.Fatalf("mask = %x, want %x", got, c.want)
			}
		})
	}
}
