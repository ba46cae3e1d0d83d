package main

import (
	"fmt"
	"image/color"
	"log"
	"path/filepath"

	"github.com/ebitenui/ebitenui"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/jakecoffman/cp"
	"github.com/milk9111/movingsphere/common"
	"github.com/milk9111/movingsphere/input"
	"github.com/milk9111/movingsphere/locomotion"
	"github.com/milk9111/movingsphere/prefabs"
	"golang.org/x/image/colornames"
)

const (
	baseWidth  = 1280
	baseHeight = 720

	// inputRate is the rendered frame rate; the simulation runs at
	// common.PhysicsRate underneath it.
	inputRate = 120

	pixelsPerMetre = 40.0
	// maxStepsPerFrame keeps a long hitch from spiralling.
	maxStepsPerFrame = 5
)

type Options struct {
	Course string
	Sphere string
	Script string
	Debug  bool
	Watch  bool
}

type Game struct {
	opts   Options
	frames int

	scene   *prefabs.Scene
	source  input.Source
	watcher *prefabs.Watcher

	accumulator float64
	steps       int
	killY       float64

	wasGrounded bool
	wasOnSteep  bool
	lastJump    int

	camera camera
	colors map[int]color.Color

	paused   bool
	quitting bool
	pauseUI  *ebitenui.UI
}

func NewGame(opts Options) (*Game, error) {
	scene, err := prefabs.BuildScene(opts.Course, opts.Sphere)
	if err != nil {
		return nil, err
	}

	var source input.Source = input.NewSampler()
	if opts.Script != "" {
		script, err := input.LoadScript(opts.Script)
		if err != nil {
			return nil, err
		}
		source = script
	}

	g := &Game{
		opts:   opts,
		scene:  scene,
		source: source,
		killY:  lowestPoint(scene) - 10,
		colors: scene.Course.LayerColors(),
	}
	g.camera.snap(scene.Body.Position())
	logOrigins(opts.Course, opts.Sphere)

	if opts.Watch {
		w, err := prefabs.NewWatcher()
		if err != nil {
			log.Printf("prefabs: hot reload disabled: %v", err)
		} else {
			g.watcher = w
		}
	}
	return g, nil
}

// logOrigins names the specs that come from disk rather than the embedded
// defaults.
func logOrigins(course, sphere string) {
	for _, name := range []string{orDefault(course, prefabs.CourseFile), orDefault(sphere, prefabs.SphereFile)} {
		if origin, onDisk := prefabs.Origin(name); onDisk {
			log.Printf("prefabs: using %s", origin)
		}
	}
}

func orDefault(name, def string) string {
	if name == "" {
		return def
	}
	return name
}

func (g *Game) Close() {
	if g.watcher != nil {
		_ = g.watcher.Close()
	}
}

func (g *Game) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		g.togglePause()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyR) {
		g.respawn()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyF3) {
		g.toggleDebug()
	}
	if g.paused {
		g.menu().Update()
	}
	if g.quitting {
		return ebiten.Termination
	}
	return g.frame(1.0 / float64(ebiten.TPS()))
}

// frame samples one frame of input and runs the fixed steps that elapsed
// seconds of wall time owe the simulation. Nothing advances while paused.
func (g *Game) frame(elapsed float64) error {
	if g.paused {
		return nil
	}
	g.frames++
	g.applyReloads()

	obs := input.Observe(g.frames, g.scene.Agent, g.scene.Body)
	intent, err := g.source.Intent(obs)
	if err != nil {
		log.Printf("input: %v", err)
		intent = locomotion.Intent{}
	}
	g.scene.Agent.SampleInput(intent)

	dt := 1.0 / common.PhysicsRate
	g.accumulator += elapsed
	for n := 0; g.accumulator >= dt && n < maxStepsPerFrame; n++ {
		if err := g.scene.World.Step(dt); err != nil {
			return err
		}
		g.accumulator -= dt
		g.steps++
		g.logTransitions()
	}
	if g.accumulator > dt {
		g.accumulator = dt
	}

	if g.scene.Body.Position().Y() < g.killY {
		log.Printf("sphere fell out of the course at step %d, respawning", g.steps)
		g.scene.Respawn()
	}
	g.camera.follow(g.scene.Body.Position())
	return nil
}

func (g *Game) logTransitions() {
	if !g.opts.Debug {
		return
	}
	st := g.scene.Agent.Snapshot()
	if st.Grounded != g.wasGrounded {
		if st.Grounded {
			log.Printf("step %d: grounded normal=%.2f contacts=%d", g.steps, st.ContactNormal, st.GroundContacts)
		} else {
			log.Printf("step %d: airborne velocity=%.2f", g.steps, st.Velocity)
		}
	}
	if st.OnSteep != g.wasOnSteep && st.OnSteep {
		log.Printf("step %d: steep contact normal=%.2f", g.steps, st.SteepNormal)
	}
	if st.StepsSinceLastJump == 0 && g.lastJump != g.steps {
		log.Printf("step %d: jump air_jumps_used=%d", g.steps, st.AirJumpsUsed)
		g.lastJump = g.steps
	}
	g.wasGrounded = st.Grounded
	g.wasOnSteep = st.OnSteep
}

func (g *Game) applyReloads() {
	if g.watcher == nil {
		return
	}
	for {
		select {
		case change, ok := <-g.watcher.Events:
			if !ok {
				g.watcher = nil
				return
			}
			g.reload(change)
		case err, ok := <-g.watcher.Errors:
			if !ok {
				g.watcher = nil
				return
			}
			log.Printf("prefabs: watch: %v", err)
		default:
			return
		}
	}
}

func (g *Game) reload(change prefabs.Change) {
	switch change.Kind {
	case prefabs.SpecChanged:
		sphere := orDefault(g.opts.Sphere, prefabs.SphereFile)
		if filepath.Base(change.Name) != filepath.Base(sphere) {
			log.Printf("prefabs: %s changed; restart to apply", change.Name)
			return
		}
		if err := g.scene.ReloadSphere(sphere); err != nil {
			log.Printf("prefabs: reload %s: %v", change.Name, err)
			return
		}
		log.Printf("prefabs: reloaded %s", change.Name)
	case prefabs.ScriptChanged:
		current, ok := g.source.(*input.Script)
		if !ok || prefabs.ScriptName(change.Name) != prefabs.ScriptName(current.Name()) {
			return
		}
		if err := current.Reload(); err != nil {
			log.Printf("%v", err)
			return
		}
		log.Printf("input: reloaded script %s", current.Name())
	}
}

func (g *Game) Draw(screen *ebiten.Image) {
	screen.Fill(colornames.Midnightblue)

	drawWorld(screen, g.scene, g.camera, g.colors, g.opts.Debug)

	st := g.scene.Agent.Snapshot()
	text := fmt.Sprintf(
		"FPS: %.0f  steps: %d\nGrounded: %v  OnSteep: %v\nVelocity: %.2f %.2f\nAirJumpsUsed: %d/%d\nStepsSinceGrounded: %d  StepsSinceLastJump: %d\n\nEsc pause  R respawn  F3 debug",
		ebiten.ActualFPS(), g.steps,
		st.Grounded, st.OnSteep,
		st.Velocity.X(), st.Velocity.Y(),
		st.AirJumpsUsed, g.scene.Agent.Config().MaxAirJumps,
		st.StepsSinceGrounded, st.StepsSinceLastJump,
	)
	ebitenutil.DebugPrintAt(screen, text, 10, 10)

	if g.paused {
		g.menu().Draw(screen)
	}
}

func (g *Game) LayoutF(outsideWidth, outsideHeight float64) (float64, float64) {
	return baseWidth, baseHeight
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	panic("shouldn't use Layout")
}

func lowestPoint(scene *prefabs.Scene) float64 {
	low := scene.Sphere.Spawn.Y
	scene.World.Space().EachShape(func(s *cp.Shape) {
		if b := s.BB(); b.B < low {
			low = b.B
		}
	})
	return low
}
