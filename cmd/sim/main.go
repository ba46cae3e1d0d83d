// Command sim runs a course headless with a scripted driver and logs the
// agent's state as it goes.
package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/milk9111/movingsphere/common"
	"github.com/milk9111/movingsphere/input"
	"github.com/milk9111/movingsphere/locomotion"
	"github.com/milk9111/movingsphere/prefabs"
)

type options struct {
	course    string
	sphere    string
	script    string
	steps     int
	every     int
	kinematic bool
}

type summary struct {
	steps         int
	groundedSteps int
	jumps         int
	final         locomotion.State
	finalX        float64
	finalY        float64
}

func main() {
	var opts options
	flag.StringVar(&opts.course, "course", prefabs.CourseFile, "course spec (yaml)")
	flag.StringVar(&opts.sphere, "sphere", prefabs.SphereFile, "sphere spec (yaml)")
	flag.StringVar(&opts.script, "script", "patrol", "tengo script producing the input")
	flag.IntVar(&opts.steps, "steps", 10*common.PhysicsRate, "number of fixed steps to simulate")
	flag.IntVar(&opts.every, "every", common.PhysicsRate/2, "log the state every N steps, 0 to disable")
	flag.BoolVar(&opts.kinematic, "kinematic", false, "move a bounded kinematic point instead of the physics sphere")
	prefabsDir := flag.String("prefabs", prefabs.Dir, "directory whose specs override the embedded ones")
	flag.Parse()

	prefabs.Dir = *prefabsDir
	logger := log.New(os.Stdout, "", 0)

	if opts.kinematic {
		if err := runKinematic(opts, logger); err != nil {
			log.Fatal(err)
		}
		return
	}

	sum, err := run(opts, logger)
	if err != nil {
		log.Fatal(err)
	}
	logger.Printf("done: steps=%d grounded=%d jumps=%d final=(%.2f, %.2f) air_jumps_used=%d",
		sum.steps, sum.groundedSteps, sum.jumps, sum.finalX, sum.finalY, sum.final.AirJumpsUsed)
}

func run(opts options, logger *log.Logger) (summary, error) {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	scene, err := prefabs.BuildScene(opts.course, opts.sphere)
	if err != nil {
		return summary{}, err
	}
	script, err := input.LoadScript(opts.script)
	if err != nil {
		return summary{}, err
	}

	dt := 1.0 / common.PhysicsRate
	var sum summary
	for step := 0; step < opts.steps; step++ {
		intent, err := script.Intent(input.Observe(step, scene.Agent, scene.Body))
		if err != nil {
			return sum, err
		}
		scene.Agent.SampleInput(intent)
		if err := scene.World.Step(dt); err != nil {
			return sum, err
		}

		st := scene.Agent.Snapshot()
		sum.steps++
		if st.Grounded {
			sum.groundedSteps++
		}
		if st.StepsSinceLastJump == 0 {
			sum.jumps++
		}
		if opts.every > 0 && step%opts.every == 0 {
			p := scene.Body.Position()
			logger.Printf("step=%d pos=(%.2f, %.2f) vel=(%.2f, %.2f) grounded=%v steep=%v normal=(%.2f, %.2f) air_jumps_used=%d",
				step, p.X(), p.Y(), st.Velocity.X(), st.Velocity.Y(), st.Grounded, st.OnSteep,
				st.ContactNormal.X(), st.ContactNormal.Y(), st.AirJumpsUsed)
		}
	}

	sum.final = scene.Agent.Snapshot()
	p := scene.Body.Position()
	sum.finalX, sum.finalY = p.X(), p.Y()
	return sum, nil
}

// runKinematic drives a BoundedMover confined to the course bounds on X and
// a square of the same width on Z.
func runKinematic(opts options, logger *log.Logger) error {
	courseSpec, err := prefabs.LoadCourseSpec(opts.course)
	if err != nil {
		return err
	}
	sphereSpec, err := prefabs.LoadSphereSpec(opts.sphere)
	if err != nil {
		return err
	}
	script, err := input.LoadScript(opts.script)
	if err != nil {
		return err
	}

	zone := locomotion.Zone{MinX: -5, MinZ: -5, Width: 10, Depth: 10}
	if b := courseSpec.Bounds; b != nil && b.Max.X > b.Min.X {
		width := b.Max.X - b.Min.X
		zone = locomotion.Zone{MinX: b.Min.X, MinZ: -width / 2, Width: width, Depth: width}
	}
	l := sphereSpec.Locomotion
	mover := locomotion.NewBoundedMover(l.MaxSpeed, l.MaxAcceleration, zone, 0.5)
	mover.Position[0] = sphereSpec.Spawn.X

	dt := 1.0 / common.PhysicsRate
	for step := 0; step < opts.steps; step++ {
		obs := input.Observation{Frame: step, Position: mover.Position, Velocity: mover.Velocity, Grounded: true}
		intent, err := script.Intent(obs)
		if err != nil {
			return err
		}
		mover.SampleInput(intent)
		mover.Step(dt)
		if opts.every > 0 && step%opts.every == 0 {
			logger.Printf("step=%d pos=%s vel=%s", step, fmtVec(mover.Position), fmtVec(mover.Velocity))
		}
	}
	logger.Printf("done: steps=%d final=%s", opts.steps, fmtVec(mover.Position))
	return nil
}

func fmtVec(v [3]float64) string {
	return fmt.Sprintf("(%.2f, %.2f, %.2f)", v[0], v[1], v[2])
}
