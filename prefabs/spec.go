package prefabs

import (
	"errors"
	"fmt"
	"image/color"
	"strconv"
	"strings"

	"github.com/jakecoffman/cp"
	"golang.org/x/image/colornames"
	"gopkg.in/yaml.v3"
)

// ErrUnknownLayer is returned when a spec names a layer missing from the
// course's layer table.
var ErrUnknownLayer = errors.New("prefabs: unknown layer")

// LoadSpec reads filename through Load and decodes it over a zero T.
func LoadSpec[T any](filename string) (T, error) {
	var zero T
	data, err := Load(filename)
	if err != nil {
		return zero, fmt.Errorf("prefabs: load %s: %w", filename, err)
	}

	var spec T
	if err := yaml.Unmarshal(data, &spec); err != nil {
		return zero, fmt.Errorf("prefabs: unmarshal %s: %w", filename, err)
	}

	return spec, nil
}

// Point is a 2D position written either as [x, y] or as {x: .., y: ..}.
type Point struct {
	X float64 `yaml:"x"`
	Y float64 `yaml:"y"`
}

func (p Point) Vector() cp.Vector {
	return cp.Vector{X: p.X, Y: p.Y}
}

func (p *Point) UnmarshalYAML(value *yaml.Node) error {
	switch value.Kind {
	case yaml.SequenceNode:
		var xy []float64
		if err := value.Decode(&xy); err != nil {
			return err
		}
		if len(xy) != 2 {
			return fmt.Errorf("point must have 2 components, got %d", len(xy))
		}
		p.X, p.Y = xy[0], xy[1]
		return nil
	case yaml.MappingNode:
		var raw struct {
			X float64 `yaml:"x"`
			Y float64 `yaml:"y"`
		}
		if err := value.Decode(&raw); err != nil {
			return err
		}
		p.X, p.Y = raw.X, raw.Y
		return nil
	}
	return fmt.Errorf("point must be a sequence or a mapping")
}

// YAMLColor accepts "#rrggbb", "#rrggbbaa" or an SVG colour name such as
// "slategray".
type YAMLColor struct {
	color.Color
}

func (c *YAMLColor) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind != yaml.ScalarNode {
		return fmt.Errorf("color must be a string")
	}
	if named, ok := colornames.Map[strings.ToLower(value.Value)]; ok {
		c.Color = named
		return nil
	}

	s := strings.TrimPrefix(value.Value, "#")
	if len(s) != 6 && len(s) != 8 {
		return fmt.Errorf("invalid color format: %s", value.Value)
	}

	var rgba [4]uint8
	rgba[3] = 255
	for i := 0; i < len(s)/2; i++ {
		v, err := strconv.ParseUint(s[i*2:i*2+2], 16, 8)
		if err != nil {
			return fmt.Errorf("invalid color %s: %w", value.Value, err)
		}
		rgba[i] = uint8(v)
	}

	c.Color = color.NRGBA{R: rgba[0], G: rgba[1], B: rgba[2], A: rgba[3]}
	return nil
}
