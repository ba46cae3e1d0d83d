package locomotion

import (
	"github.com/go-gl/mathgl/mgl64"
	"github.com/milk9111/movingsphere/common"
)

// Zone is an axis aligned rectangle on the XZ plane.
type Zone struct {
	MinX, MinZ   float64
	Width, Depth float64
}

func (z Zone) MaxX() float64 { return z.MinX + z.Width }
func (z Zone) MaxZ() float64 { return z.MinZ + z.Depth }

// BoundedMover moves a point directly, without a physics engine, and keeps it
// inside a zone by bouncing off the edges.
type BoundedMover struct {
	MaxSpeed        float64
	MaxAcceleration float64
	// Bounce scales the reflected velocity when an edge is hit, 0..1.
	Bounce float64
	Zone   Zone

	Position mgl64.Vec3
	Velocity mgl64.Vec3

	desiredVelocity mgl64.Vec3
}

func NewBoundedMover(maxSpeed, maxAcceleration float64, zone Zone, bounce float64) *BoundedMover {
	return &BoundedMover{
		MaxSpeed:        common.Clamp(maxSpeed, 0.1, 100),
		MaxAcceleration: common.Clamp(maxAcceleration, 0.1, 100),
		Bounce:          common.Clamp(bounce, 0, 1),
		Zone:            zone,
	}
}

func (m *BoundedMover) SampleInput(in Intent) {
	x, y := common.ClampMagnitude2(in.Move.X(), in.Move.Y(), 1)
	m.desiredVelocity = mgl64.Vec3{x, 0, y}.Mul(m.MaxSpeed)
}

// Step integrates one frame of dt seconds.
func (m *BoundedMover) Step(dt float64) {
	maxSpeedChange := m.MaxAcceleration * dt
	m.Velocity[0] = common.MoveTowards(m.Velocity[0], m.desiredVelocity[0], maxSpeedChange)
	m.Velocity[2] = common.MoveTowards(m.Velocity[2], m.desiredVelocity[2], maxSpeedChange)

	p := m.Position.Add(m.Velocity.Mul(dt))
	if p[0] < m.Zone.MinX {
		p[0] = m.Zone.MinX
		m.Velocity[0] = -m.Velocity[0] * m.Bounce
	} else if p[0] > m.Zone.MaxX() {
		p[0] = m.Zone.MaxX()
		m.Velocity[0] = -m.Velocity[0] * m.Bounce
	}
	if p[2] < m.Zone.MinZ {
		p[2] = m.Zone.MinZ
		m.Velocity[2] = -m.Velocity[2] * m.Bounce
	} else if p[2] > m.Zone.MaxZ() {
		p[2] = m.Zone.MaxZ()
		m.Velocity[2] = -m.Velocity[2] * m.Bounce
	}
	m.Position = p
}
