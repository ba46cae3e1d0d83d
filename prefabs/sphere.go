package prefabs

import (
	"fmt"

	"github.com/milk9111/movingsphere/locomotion"
	"github.com/milk9111/movingsphere/terrain"
	"gopkg.in/yaml.v3"
)

const SphereFile = "sphere.yaml"

// LocomotionSpec mirrors locomotion.Config with masks given as layer names.
// A nil mask list keeps the default mask.
type LocomotionSpec struct {
	MaxSpeed           float64  `yaml:"max_speed"`
	MaxAcceleration    float64  `yaml:"max_acceleration"`
	MaxAirAcceleration float64  `yaml:"max_air_acceleration"`
	MaxGroundAngle     float64  `yaml:"max_ground_angle"`
	MaxStairsAngle     float64  `yaml:"max_stairs_angle"`
	JumpHeight         float64  `yaml:"jump_height"`
	MaxAirJumps        int      `yaml:"max_air_jumps"`
	ProbeDistance      float64  `yaml:"probe_distance"`
	MaxSnapSpeed       float64  `yaml:"max_snap_speed"`
	ProbeMask          []string `yaml:"probe_mask"`
	StairsMask         []string `yaml:"stairs_mask"`
}

type SphereSpec struct {
	Name       string         `yaml:"name"`
	Radius     float64        `yaml:"radius"`
	Mass       float64        `yaml:"mass"`
	Friction   float64        `yaml:"friction"`
	Elasticity float64        `yaml:"elasticity"`
	Layer      string         `yaml:"layer"`
	Spawn      Point          `yaml:"spawn"`
	Locomotion LocomotionSpec `yaml:"locomotion"`
}

// DefaultSphereSpec is the base every sphere file is decoded over, so a file
// only needs the fields it changes.
func DefaultSphereSpec() SphereSpec {
	d := locomotion.DefaultConfig()
	return SphereSpec{
		Name:     "sphere",
		Radius:   0.5,
		Mass:     1,
		Friction: 0.8,
		Locomotion: LocomotionSpec{
			MaxSpeed:           d.MaxSpeed,
			MaxAcceleration:    d.MaxAcceleration,
			MaxAirAcceleration: d.MaxAirAcceleration,
			MaxGroundAngle:     d.MaxGroundAngle,
			MaxStairsAngle:     d.MaxStairsAngle,
			JumpHeight:         d.JumpHeight,
			MaxAirJumps:        d.MaxAirJumps,
			ProbeDistance:      d.ProbeDistance,
			MaxSnapSpeed:       d.MaxSnapSpeed,
		},
	}
}

func ParseSphereSpec(data []byte) (*SphereSpec, error) {
	spec := DefaultSphereSpec()
	if err := yaml.Unmarshal(data, &spec); err != nil {
		return nil, err
	}
	return &spec, nil
}

func LoadSphereSpec(filename string) (*SphereSpec, error) {
	if filename == "" {
		filename = SphereFile
	}
	data, err := Load(filename)
	if err != nil {
		return nil, fmt.Errorf("prefabs: load %s: %w", filename, err)
	}
	spec, err := ParseSphereSpec(data)
	if err != nil {
		return nil, fmt.Errorf("prefabs: unmarshal %s: %w", filename, err)
	}
	return spec, nil
}

// LocomotionConfig resolves the mask names against layers. The result is
// not clamped; the agent does that when it is configured.
func (s *SphereSpec) LocomotionConfig(layers LayerTable) (locomotion.Config, error) {
	l := s.Locomotion
	cfg := locomotion.DefaultConfig()
	cfg.MaxSpeed = l.MaxSpeed
	cfg.MaxAcceleration = l.MaxAcceleration
	cfg.MaxAirAcceleration = l.MaxAirAcceleration
	cfg.MaxGroundAngle = l.MaxGroundAngle
	cfg.MaxStairsAngle = l.MaxStairsAngle
	cfg.JumpHeight = l.JumpHeight
	cfg.MaxAirJumps = l.MaxAirJumps
	cfg.ProbeDistance = l.ProbeDistance
	cfg.MaxSnapSpeed = l.MaxSnapSpeed

	if l.ProbeMask != nil {
		mask, err := layers.Mask(l.ProbeMask)
		if err != nil {
			return locomotion.Config{}, fmt.Errorf("prefabs: sphere %s: probe_mask: %w", s.Name, err)
		}
		cfg.ProbeMask = mask
	}
	if l.StairsMask != nil {
		mask, err := layers.Mask(l.StairsMask)
		if err != nil {
			return locomotion.Config{}, fmt.Errorf("prefabs: sphere %s: stairs_mask: %w", s.Name, err)
		}
		cfg.StairsMask = mask
	}
	return cfg, nil
}

func (s *SphereSpec) SphereOptions(layers LayerTable) (terrain.SphereOptions, error) {
	layer, err := layers.Index(s.Layer)
	if err != nil {
		return terrain.SphereOptions{}, fmt.Errorf("prefabs: sphere %s: %w", s.Name, err)
	}
	return terrain.SphereOptions{
		Radius:     s.Radius,
		Mass:       s.Mass,
		Friction:   s.Friction,
		Elasticity: s.Elasticity,
		Layer:      layer,
		Spawn:      s.Spawn.Vector(),
	}, nil
}
