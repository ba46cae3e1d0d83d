// Package locomotion drives a sphere rigid body from directional intent: it
// classifies terrain contacts, keeps the body glued to the ground over small
// gaps and steps, accelerates along the contact plane and runs the jump
// state machine.
//
// The host calls SampleInput once per rendered frame and SimulateStep once
// per fixed physics step, never concurrently. Contacts reported by the
// physics engine between two steps are pushed with OnCollisionStay and
// OnCollisionExit.
package locomotion

import (
	"github.com/go-gl/mathgl/mgl64"
	"github.com/milk9111/movingsphere/common"
)

// Agent owns the locomotion state of one sphere.
type Agent struct {
	body   Body
	cfg    Config
	limits thresholds

	velocity        mgl64.Vec3
	desiredVelocity mgl64.Vec3
	desiredJump     bool

	contacts contactScratch

	stepsSinceGrounded int
	stepsSinceLastJump int
	jumpPhase          int

	last State
}

// State is a copy of the agent's resolved state at the end of a step.
type State struct {
	Velocity           mgl64.Vec3
	DesiredVelocity    mgl64.Vec3
	ContactNormal      mgl64.Vec3
	SteepNormal        mgl64.Vec3
	GroundContacts     int
	SteepContacts      int
	Grounded           bool
	OnSteep            bool
	StepsSinceGrounded int
	StepsSinceLastJump int
	AirJumpsUsed       int
}

// NewAgent creates an agent controlling body with the given configuration.
func NewAgent(body Body, cfg Config) *Agent {
	a := &Agent{body: body}
	a.Configure(cfg)
	return a
}

// Configure replaces the agent's tunables. Ranges are clamped and the angle
// thresholds recomputed here and nowhere else.
func (a *Agent) Configure(cfg Config) {
	a.cfg = cfg.Clamped()
	a.limits = newThresholds(a.cfg)
}

func (a *Agent) Config() Config {
	return a.cfg
}

// SampleInput latches one frame of input. The jump request stays set until a
// simulation step consumes it.
func (a *Agent) SampleInput(in Intent) {
	x, y := common.ClampMagnitude2(in.Move.X(), in.Move.Y(), 1)
	a.desiredVelocity = mgl64.Vec3{x, 0, y}.Mul(a.cfg.MaxSpeed)
	a.desiredJump = a.desiredJump || in.Jump
}

// SimulateStep advances the controller by one fixed physics step of dt
// seconds and writes the new velocity to the body.
func (a *Agent) SimulateStep(dt float64) {
	a.updateState()
	a.adjustVelocity(dt)
	if a.desiredJump {
		a.jump()
	}
	a.body.SetVelocity(a.velocity)
	a.last = a.snapshot()
	a.contacts.clear()
}

// Reset forgets contacts, counters, the latched jump and the air-jump charge,
// for a body that was just teleported. Tunables and the sampled move intent
// are kept.
func (a *Agent) Reset() {
	a.contacts.clear()
	a.velocity = mgl64.Vec3{}
	a.desiredJump = false
	a.stepsSinceGrounded = 0
	a.stepsSinceLastJump = 0
	a.jumpPhase = 0
	a.last = a.snapshot()
}

func (a *Agent) snapshot() State {
	return State{
		Velocity:           a.velocity,
		DesiredVelocity:    a.desiredVelocity,
		ContactNormal:      a.contacts.contactNormal,
		SteepNormal:        a.contacts.steepNormal,
		GroundContacts:     a.contacts.groundCount,
		SteepContacts:      a.contacts.steepCount,
		Grounded:           a.contacts.onGround(),
		OnSteep:            a.contacts.onSteep(),
		StepsSinceGrounded: a.stepsSinceGrounded,
		StepsSinceLastJump: a.stepsSinceLastJump,
		AirJumpsUsed:       a.AirJumpsUsed(),
	}
}

// Snapshot returns the state resolved by the most recent SimulateStep.
func (a *Agent) Snapshot() State {
	return a.last
}

func (a *Agent) Grounded() bool {
	return a.last.Grounded
}

func (a *Agent) OnSteep() bool {
	return a.last.OnSteep
}

func (a *Agent) ContactNormal() mgl64.Vec3 {
	return a.last.ContactNormal
}

func (a *Agent) SteepNormal() mgl64.Vec3 {
	return a.last.SteepNormal
}

func (a *Agent) Velocity() mgl64.Vec3 {
	return a.velocity
}

func (a *Agent) DesiredVelocity() mgl64.Vec3 {
	return a.desiredVelocity
}

func (a *Agent) JumpRequested() bool {
	return a.desiredJump
}

func (a *Agent) StepsSinceGrounded() int {
	return a.stepsSinceGrounded
}

func (a *Agent) StepsSinceLastJump() int {
	return a.stepsSinceLastJump
}

// AirJumpsUsed returns how many extra air jumps have been spent since the
// agent last stood on ground or pushed off a steep face. Walking off a ledge
// forfeits the ground jump, so the first jump after that already counts.
func (a *Agent) AirJumpsUsed() int {
	if a.jumpPhase <= 1 {
		return 0
	}
	return a.jumpPhase - 1
}
