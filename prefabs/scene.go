package prefabs

import (
	"fmt"

	"github.com/milk9111/movingsphere/locomotion"
	"github.com/milk9111/movingsphere/terrain"
)

// Scene is a course with one locomotion-driven sphere attached, ready to
// step.
type Scene struct {
	Course *CourseSpec
	Sphere *SphereSpec
	Layers LayerTable

	World *terrain.World
	Body  *terrain.Sphere
	Agent *locomotion.Agent
}

// BuildScene loads both specs (empty names select the defaults) and wires
// the agent into a new world.
func BuildScene(courseFile, sphereFile string) (*Scene, error) {
	courseSpec, err := LoadCourseSpec(courseFile)
	if err != nil {
		return nil, err
	}
	layers, err := courseSpec.LayerTable()
	if err != nil {
		return nil, err
	}
	course, err := courseSpec.Course()
	if err != nil {
		return nil, err
	}
	sphereSpec, err := LoadSphereSpec(sphereFile)
	if err != nil {
		return nil, err
	}
	cfg, err := sphereSpec.LocomotionConfig(layers)
	if err != nil {
		return nil, err
	}
	opts, err := sphereSpec.SphereOptions(layers)
	if err != nil {
		return nil, err
	}

	world, err := terrain.NewWorld(course)
	if err != nil {
		return nil, fmt.Errorf("prefabs: course %s: %w", courseSpec.Name, err)
	}
	body, err := world.AddSphere(opts)
	if err != nil {
		return nil, fmt.Errorf("prefabs: sphere %s: %w", sphereSpec.Name, err)
	}
	agent := locomotion.NewAgent(body, cfg)
	world.Attach(agent)

	return &Scene{
		Course: courseSpec,
		Sphere: sphereSpec,
		Layers: layers,
		World:  world,
		Body:   body,
		Agent:  agent,
	}, nil
}

// ReloadSphere re-reads the sphere spec and reconfigures the running agent.
// Body options such as radius only apply to a new scene.
func (s *Scene) ReloadSphere(sphereFile string) error {
	spec, err := LoadSphereSpec(sphereFile)
	if err != nil {
		return err
	}
	cfg, err := spec.LocomotionConfig(s.Layers)
	if err != nil {
		return err
	}
	s.Sphere = spec
	s.Agent.Configure(cfg)
	return nil
}

// Respawn puts the sphere back on the spawn point and drops everything the
// agent learned at the old position.
func (s *Scene) Respawn() {
	s.Body.Reset(s.Sphere.Spawn.Vector())
	s.Agent.Reset()
}
