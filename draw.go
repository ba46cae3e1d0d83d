package main

import (
	"image/color"
	"math"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/jakecoffman/cp"
	"github.com/milk9111/movingsphere/common"
	"github.com/milk9111/movingsphere/prefabs"
	"golang.org/x/image/colornames"
)

const (
	debugCircleSegments = 24
	debugDotSize        = 0.1
	cameraSmoothing     = 0.1
	normalArrowLength   = 1.0
)

// camera centres the view on a world point. World Y is up, screen Y is down.
type camera struct {
	x, y float64
}

func (c *camera) snap(p mgl64.Vec3) {
	c.x, c.y = p.X(), p.Y()
}

func (c *camera) follow(p mgl64.Vec3) {
	c.x = common.Lerp(c.x, p.X(), cameraSmoothing)
	c.y = common.Lerp(c.y, p.Y(), cameraSmoothing)
}

func (c camera) toScreen(v cp.Vector) (float64, float64) {
	return (v.X-c.x)*pixelsPerMetre + baseWidth/2, baseHeight/2 - (v.Y-c.y)*pixelsPerMetre
}

var fallbackLayerColors = []color.Color{
	colornames.Slategray,
	colornames.Gold,
	colornames.Seagreen,
	colornames.Dimgray,
	colornames.Steelblue,
	colornames.Indianred,
}

func layerColor(colors map[int]color.Color, layer int) color.Color {
	if c, ok := colors[layer]; ok {
		return c
	}
	return fallbackLayerColors[layer%len(fallbackLayerColors)]
}

// drawWorld draws every shape in its layer colour. With debug on, cp's
// contact points and the agent's resolved normals are drawn too.
func drawWorld(screen *ebiten.Image, scene *prefabs.Scene, cam camera, colors map[int]color.Color, debug bool) {
	d := &shapeDrawer{screen: screen, cam: cam, colors: colors, debug: debug}
	cp.DrawSpace(scene.World.Space(), d)

	if !debug {
		return
	}
	st := scene.Agent.Snapshot()
	p := scene.Body.Position()
	center := cp.Vector{X: p.X(), Y: p.Y()}
	if st.Grounded {
		n := st.ContactNormal
		d.drawLine(center, center.Add(cp.Vector{X: n.X(), Y: n.Y()}.Mult(normalArrowLength)), colornames.Lime)
	}
	if st.OnSteep {
		n := st.SteepNormal
		d.drawLine(center, center.Add(cp.Vector{X: n.X(), Y: n.Y()}.Mult(normalArrowLength)), colornames.Orange)
	}
	v := st.Velocity
	d.drawLine(center, center.Add(cp.Vector{X: v.X(), Y: v.Y()}.Mult(0.1)), colornames.Deepskyblue)
}

// shapeDrawer implements cp.Drawer on an ebiten image.
type shapeDrawer struct {
	screen *ebiten.Image
	cam    camera
	colors map[int]color.Color
	debug  bool
}

func (d *shapeDrawer) DrawCircle(pos cp.Vector, angle, radius float64, outline, fill cp.FColor, data interface{}) {
	d.drawCircle(pos, radius, toNRGBA(fill))
	end := cp.Vector{X: pos.X + math.Cos(angle)*radius, Y: pos.Y + math.Sin(angle)*radius}
	d.drawLine(pos, end, toNRGBA(fill))
}

func (d *shapeDrawer) DrawSegment(a, b cp.Vector, fill cp.FColor, data interface{}) {
	d.drawLine(a, b, toNRGBA(fill))
}

func (d *shapeDrawer) DrawFatSegment(a, b cp.Vector, radius float64, outline, fill cp.FColor, data interface{}) {
	c := toNRGBA(fill)
	d.drawLine(a, b, c)
	if radius > 0 && d.debug {
		d.drawCircle(a, radius, c)
		d.drawCircle(b, radius, c)
	}
}

func (d *shapeDrawer) DrawPolygon(count int, verts []cp.Vector, radius float64, outline, fill cp.FColor, data interface{}) {
	if count <= 0 {
		return
	}
	d.drawPolygon(verts[:count], toNRGBA(fill))
}

func (d *shapeDrawer) DrawDot(size float64, pos cp.Vector, fill cp.FColor, data interface{}) {
	half := debugDotSize / 2
	c := toNRGBA(fill)
	d.drawLine(cp.Vector{X: pos.X - half, Y: pos.Y}, cp.Vector{X: pos.X + half, Y: pos.Y}, c)
	d.drawLine(cp.Vector{X: pos.X, Y: pos.Y - half}, cp.Vector{X: pos.X, Y: pos.Y + half}, c)
}

func (d *shapeDrawer) Flags() uint {
	if d.debug {
		return cp.DRAW_SHAPES | cp.DRAW_COLLISION_POINTS
	}
	return cp.DRAW_SHAPES
}

func (d *shapeDrawer) OutlineColor() cp.FColor {
	return cp.FColor{R: 0.9, G: 0.9, B: 0.9, A: 1}
}

// ShapeColor colours a shape by the layer stored in its user data.
func (d *shapeDrawer) ShapeColor(shape *cp.Shape, data interface{}) cp.FColor {
	layer, _ := shape.UserData.(int)
	return toFColor(layerColor(d.colors, layer))
}

func (d *shapeDrawer) ConstraintColor() cp.FColor {
	return cp.FColor{R: 1, G: 0.5, B: 0.1, A: 0.9}
}

func (d *shapeDrawer) CollisionPointColor() cp.FColor {
	return cp.FColor{R: 1, G: 0.2, B: 0.2, A: 0.9}
}

func (d *shapeDrawer) Data() interface{} {
	return nil
}

func (d *shapeDrawer) drawLine(a, b cp.Vector, c color.Color) {
	x1, y1 := d.cam.toScreen(a)
	x2, y2 := d.cam.toScreen(b)
	vector.StrokeLine(d.screen, float32(x1), float32(y1), float32(x2), float32(y2), 1, c, true)
}

func (d *shapeDrawer) drawPolygon(verts []cp.Vector, c color.Color) {
	for i := range verts {
		d.drawLine(verts[i], verts[(i+1)%len(verts)], c)
	}
}

func (d *shapeDrawer) drawCircle(center cp.Vector, radius float64, c color.Color) {
	if radius <= 0 {
		return
	}
	points := make([]cp.Vector, 0, debugCircleSegments)
	for i := 0; i < debugCircleSegments; i++ {
		t := (2 * math.Pi) * (float64(i) / float64(debugCircleSegments))
		points = append(points, cp.Vector{X: center.X + math.Cos(t)*radius, Y: center.Y + math.Sin(t)*radius})
	}
	d.drawPolygon(points, c)
}

func toNRGBA(c cp.FColor) color.NRGBA {
	return color.NRGBA{
		R: uint8(clamp01(c.R) * 255),
		G: uint8(clamp01(c.G) * 255),
		B: uint8(clamp01(c.B) * 255),
		A: uint8(clamp01(c.A) * 255),
	}
}

func toFColor(c color.Color) cp.FColor {
	n := color.NRGBAModel.Convert(c).(color.NRGBA)
	return cp.FColor{R: float32(n.R) / 255, G: float32(n.G) / 255, B: float32(n.B) / 255, A: float32(n.A) / 255}
}

func clamp01(v float32) float32 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
