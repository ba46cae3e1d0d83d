package input

import (
	"context"
	"fmt"
	"time"

	"github.com/d5/tengo/v2"
	"github.com/d5/tengo/v2/stdlib"
	"github.com/go-gl/mathgl/mgl64"
	"github.com/milk9111/movingsphere/locomotion"
	"github.com/milk9111/movingsphere/prefabs"
)

// scriptBudget bounds a single run so a looping script cannot stall a frame.
const scriptBudget = 50 * time.Millisecond

// Script drives the agent from a tengo program run once per frame. The
// program reads frame, agent and state and assigns move_x, move_y and jump.
// state is a map kept across frames.
type Script struct {
	name     string
	compiled *tengo.Compiled
	state    *tengo.Map
}

// LoadScript compiles a script found through prefabs.LoadScript.
func LoadScript(name string) (*Script, error) {
	src, err := prefabs.LoadScript(name)
	if err != nil {
		return nil, fmt.Errorf("input: load script %s: %w", name, err)
	}
	return NewScript(name, src)
}

func NewScript(name string, src []byte) (*Script, error) {
	compiled, err := compileScript(name, src)
	if err != nil {
		return nil, err
	}
	return &Script{
		name:     name,
		compiled: compiled,
		state:    &tengo.Map{Value: map[string]tengo.Object{}},
	}, nil
}

// Reload recompiles the script from its source. The state map carries over;
// on error the running program is left in place.
func (s *Script) Reload() error {
	src, err := prefabs.LoadScript(s.name)
	if err != nil {
		return fmt.Errorf("input: load script %s: %w", s.name, err)
	}
	compiled, err := compileScript(s.name, src)
	if err != nil {
		return err
	}
	s.compiled = compiled
	return nil
}

func compileScript(name string, src []byte) (*tengo.Compiled, error) {
	script := tengo.NewScript(src)
	_ = script.Add("frame", 0)
	_ = script.Add("agent", map[string]interface{}{})
	_ = script.Add("state", map[string]interface{}{})
	_ = script.Add("move_x", 0.0)
	_ = script.Add("move_y", 0.0)
	_ = script.Add("jump", false)
	script.SetImports(stdlib.GetModuleMap("math", "rand", "fmt"))

	compiled, err := script.Compile()
	if err != nil {
		return nil, fmt.Errorf("input: compile script %s: %w", name, err)
	}
	return compiled, nil
}

func (s *Script) Name() string {
	return s.name
}

func (s *Script) Intent(obs Observation) (locomotion.Intent, error) {
	if err := s.compiled.Set("frame", obs.Frame); err != nil {
		return locomotion.Intent{}, err
	}
	if err := s.compiled.Set("agent", observationObject(obs)); err != nil {
		return locomotion.Intent{}, err
	}
	if err := s.compiled.Set("state", s.state); err != nil {
		return locomotion.Intent{}, err
	}
	// Outputs the script leaves untouched fall back to neutral.
	_ = s.compiled.Set("move_x", 0.0)
	_ = s.compiled.Set("move_y", 0.0)
	_ = s.compiled.Set("jump", false)

	ctx, cancel := context.WithTimeout(context.Background(), scriptBudget)
	defer cancel()
	if err := s.compiled.RunContext(ctx); err != nil {
		return locomotion.Intent{}, fmt.Errorf("input: script %s frame %d: %w", s.name, obs.Frame, err)
	}

	return locomotion.Intent{
		Move: mgl64.Vec2{s.compiled.Get("move_x").Float(), s.compiled.Get("move_y").Float()},
		Jump: s.compiled.Get("jump").Bool(),
	}, nil
}

func observationObject(obs Observation) *tengo.ImmutableMap {
	return &tengo.ImmutableMap{Value: map[string]tengo.Object{
		"grounded":       boolObject(obs.Grounded),
		"on_steep":       boolObject(obs.OnSteep),
		"air_jumps_used": &tengo.Int{Value: int64(obs.AirJumpsUsed)},
		"x":              &tengo.Float{Value: obs.Position.X()},
		"y":              &tengo.Float{Value: obs.Position.Y()},
		"velocity_x":     &tengo.Float{Value: obs.Velocity.X()},
		"velocity_y":     &tengo.Float{Value: obs.Velocity.Y()},
	}}
}

func boolObject(b bool) tengo.Object {
	if b {
		return tengo.TrueValue
	}
	return tengo.FalseValue
}
