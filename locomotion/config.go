package locomotion

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/milk9111/movingsphere/common"
)

// AllLayers selects every layer in a layer mask.
const AllLayers uint32 = math.MaxUint32

// MaxLayer is the highest layer index a mask can address.
const MaxLayer = 31

// Config holds the tunables of one agent. Angles are in degrees, masks are
// layer bitmasks where layer n is bit 1<<n.
type Config struct {
	MaxSpeed           float64
	MaxAcceleration    float64
	MaxAirAcceleration float64
	MaxGroundAngle     float64
	MaxStairsAngle     float64
	JumpHeight         float64
	MaxAirJumps        int
	ProbeDistance      float64
	MaxSnapSpeed       float64
	ProbeMask          uint32
	StairsMask         uint32
}

func DefaultConfig() Config {
	return Config{
		MaxSpeed:           10,
		MaxAcceleration:    10,
		MaxAirAcceleration: 1,
		MaxGroundAngle:     25,
		MaxStairsAngle:     50,
		JumpHeight:         2,
		MaxAirJumps:        0,
		ProbeDistance:      1,
		MaxSnapSpeed:       100,
		ProbeMask:          AllLayers,
		StairsMask:         0,
	}
}

// Clamped returns a copy of c with every tunable forced into its valid range.
func (c Config) Clamped() Config {
	c.MaxSpeed = common.Clamp(c.MaxSpeed, 0.1, 100)
	c.MaxAcceleration = common.Clamp(c.MaxAcceleration, 0.1, 100)
	c.MaxAirAcceleration = common.Clamp(c.MaxAirAcceleration, 0.1, 100)
	c.MaxGroundAngle = common.Clamp(c.MaxGroundAngle, 0, 90)
	c.MaxStairsAngle = common.Clamp(c.MaxStairsAngle, 0, 90)
	c.JumpHeight = common.Clamp(c.JumpHeight, 0, 10)
	if c.MaxAirJumps < 0 {
		c.MaxAirJumps = 0
	} else if c.MaxAirJumps > 5 {
		c.MaxAirJumps = 5
	}
	c.ProbeDistance = math.Max(c.ProbeDistance, 0)
	c.MaxSnapSpeed = common.Clamp(c.MaxSnapSpeed, 0, 100)
	return c
}

// thresholds caches the cosine form of the angle tunables.
type thresholds struct {
	minGroundDot float64
	minStairsDot float64
	stairsMask   uint32
}

func newThresholds(c Config) thresholds {
	return thresholds{
		minGroundDot: math.Cos(mgl64.DegToRad(c.MaxGroundAngle)),
		minStairsDot: math.Cos(mgl64.DegToRad(c.MaxStairsAngle)),
		stairsMask:   c.StairsMask,
	}
}

// minDot returns the smallest normal Y a surface on layer may have and still
// count as ground.
func (t thresholds) minDot(layer int) float64 {
	if LayerInMask(layer, t.stairsMask) {
		return t.minStairsDot
	}
	return t.minGroundDot
}

// LayerInMask reports whether layer's bit is set in mask. Out of range layers
// are never in a mask.
func LayerInMask(layer int, mask uint32) bool {
	if layer < 0 || layer > MaxLayer {
		return false
	}
	return mask&(1<<uint(layer)) != 0
}

// LayerBit returns the mask bit of layer, or 0 for an out of range layer.
func LayerBit(layer int) uint32 {
	if layer < 0 || layer > MaxLayer {
		return 0
	}
	return 1 << uint(layer)
}
