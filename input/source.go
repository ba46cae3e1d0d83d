// Package input produces locomotion intents from a player's keyboard and
// gamepad or from a tengo script.
package input

import (
	"github.com/go-gl/mathgl/mgl64"
	"github.com/milk9111/movingsphere/locomotion"
)

// Observation is what an intent source may look at before deciding.
type Observation struct {
	Frame        int
	Position     mgl64.Vec3
	Velocity     mgl64.Vec3
	Grounded     bool
	OnSteep      bool
	AirJumpsUsed int
}

// Observe builds an observation from the agent's last resolved step.
func Observe(frame int, a *locomotion.Agent, b locomotion.Body) Observation {
	st := a.Snapshot()
	return Observation{
		Frame:        frame,
		Position:     b.Position(),
		Velocity:     b.Velocity(),
		Grounded:     st.Grounded,
		OnSteep:      st.OnSteep,
		AirJumpsUsed: st.AirJumpsUsed,
	}
}

// Source yields one intent per rendered frame.
type Source interface {
	Intent(obs Observation) (locomotion.Intent, error)
}
