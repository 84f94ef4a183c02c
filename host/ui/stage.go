package ui

import (
	"context"
	"fmt"
	"log"
	"math"
	"time"

	"github.com/mokiat/gog/opt"
	"github.com/mokiat/gomath/dprec"
	"github.com/mokiat/gomath/sprec"
	"github.com/mokiat/lacking/game"
	"github.com/mokiat/lacking/game/graphics"
	"github.com/mokiat/lacking/ui"
	co "github.com/mokiat/lacking/ui/component"
	"github.com/mokiat/lacking/ui/layout"
	"github.com/mokiat/lacking/ui/std"
	"github.com/mokiat/lacking/util/async"

	"github.com/nobonobo/video-stage/stage"
)

var StageScreen = co.Define[*stageScreenComponent]()

type StageScreenData struct {
	App *applicationComponent
}

// keyCodes maps the physical keys the native window reports to the key
// names browsers use, so one KeyMap serves both front ends.
var keyCodes = map[ui.KeyCode]stage.Key{
	ui.KeyCodeW: "w",
	ui.KeyCodeA: "a",
	ui.KeyCodeS: "s",
	ui.KeyCodeD: "d",
}

type stageScreenComponent struct {
	co.BaseComponent

	app *applicationComponent

	engine *game.Engine
	config stage.Config
	input  *stage.Input

	scene      *game.Scene
	camera     *stage.Camera
	controls   *stage.OrbitControls
	panel      *stage.VideoPanel
	overlay    *overlayRenderer
	compositor *stage.Compositor
	loop       *stage.Loop

	textFont *ui.Font

	dragging bool
	dragged  bool
	lastX    int
	lastY    int
}

var (
	_ ui.ElementRenderHandler   = (*stageScreenComponent)(nil)
	_ ui.ElementKeyboardHandler = (*stageScreenComponent)(nil)
	_ ui.ElementMouseHandler    = (*stageScreenComponent)(nil)
)

func (c *stageScreenComponent) OnCreate() {
	globalState := co.TypedValue[GlobalState](c.Scope())
	c.engine = globalState.Engine
	c.config = globalState.Config
	c.input = globalState.Input

	componentData := co.GetData[StageScreenData](c.Properties())
	c.app = componentData.App

	c.textFont = co.OpenFont(c.Scope(), "ui:///roboto-regular.ttf")

	if err := c.createScene(); err != nil {
		log.Println("failed to create stage:", err)
		co.After(c.Scope(), 0, func() {
			failStage(c.app, err)
		})
		return
	}
	c.engine.SetActiveScene(c.scene)
	c.engine.ResetDeltaTime()
}

func (c *stageScreenComponent) OnDelete() {
	c.engine.SetActiveScene(nil)
	c.input.Reset()
}

func (c *stageScreenComponent) createScene() error {
	data := stageData // retrieve from global storage
	if data == nil {
		return stage.ErrNoCharacter
	}
	cfg := c.config

	c.scene = c.engine.CreateScene(game.SceneInfo{
		IncludePhysics: opt.V(false),
		IncludeECS:     opt.V(false),
	})
	stageModel := c.scene.InstantiateModel(game.ModelInfo{
		Template:  data.Stage,
		Name:      opt.V("Stage"),
		IsDynamic: false,
	})

	gfxCamera := c.createCamera(c.scene.Graphics())
	c.scene.Graphics().SetActiveCamera(gfxCamera)
	cameraNode := stageModel.FindNode("Camera")
	if cameraNode.IsNil() {
		return fmt.Errorf("stage model has no %q node", "Camera")
	}
	c.scene.CameraBindingSet().Bind(cameraNode, gfxCamera)

	c.camera = stage.NewCamera(cfg.Camera)
	c.controls = stage.NewOrbitControls(c.camera)
	c.panel = stage.NewVideoPanel(cfg.Video)

	var light stage.Aimer
	if lightNode := stageModel.FindNode("KeyLight"); !lightNode.IsNil() {
		light = sceneNode{node: c.scene.Hierarchy().Wrap(lightNode)}
	}

	loader := stage.ModelLoaderFunc(func(path string) async.Promise[stage.Node] {
		result := async.NewPromise[stage.Node]()
		if data.Character == nil {
			result.Fail(fmt.Errorf("model %s was not fetched", path))
			return result
		}
		model := c.scene.InstantiateModel(game.ModelInfo{
			Template:  data.Character,
			Name:      opt.V("Character"),
			IsDynamic: true,
		})
		result.Deliver(sceneNode{node: c.scene.Hierarchy().Wrap(model.Root())})
		return result
	})

	world := &worldRenderer{
		camera: c.camera,
		node:   sceneNode{node: c.scene.Hierarchy().Wrap(cameraNode)},
	}
	c.overlay = &overlayRenderer{
		camera: c.camera,
		panel:  c.panel,
		grid:   cfg.Grid,
	}
	c.compositor = stage.NewCompositor(world, c.overlay)
	c.compositor.OnResize(c.camera.SetSize)

	loop, err := newStageLoop(stageWiring{
		Config:     cfg,
		Loader:     loader,
		Input:      c.input,
		Controls:   c.controls,
		Light:      light,
		Camera:     c.camera,
		Compositor: c.compositor,
	})
	if err != nil {
		return err
	}
	c.loop = loop
	return nil
}

// stageWiring is what the frame loop is built from once the scene exists.
type stageWiring struct {
	Config     stage.Config
	Loader     stage.ModelLoader
	Input      *stage.Input
	Controls   stage.Controls
	Light      stage.Aimer
	Camera     *stage.Camera
	Compositor *stage.Compositor
}

// newStageLoop loads the character and builds the loop around it. It blocks
// the calling goroutine until the character is placed at its spawn point or
// the load timeout passes, so the node is only handed to the loop on the UI
// goroutine.
func newStageLoop(w stageWiring) (*stage.Loop, error) {
	cfg := w.Config
	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.LoadTimeout))
	defer cancel()
	character, err := stage.Await(ctx, stage.LoadCharacter(
		w.Loader, cfg.Character.Asset, vec(cfg.Character.Spawn),
	))
	if err != nil {
		return nil, err
	}

	loopCfg := stage.LoopConfig{
		Controls:   w.Controls,
		Input:      w.Input,
		Mover:      stage.NewMover(cfg.Keys, cfg.Speed),
		Character:  character,
		Light:      w.Light,
		Compositor: w.Compositor,
	}
	if cfg.Chase.Enabled && w.Camera != nil {
		loopCfg.Chase = &stage.Chase{Offset: vec(cfg.Chase.Offset)}
		loopCfg.View = w.Camera
	}
	return stage.NewLoop(loopCfg)
}

func (c *stageScreenComponent) createCamera(scene *graphics.Scene) *graphics.Camera {
	result := scene.CreateCamera()
	result.SetFoVMode(graphics.FoVModeHorizontalPlus)
	result.SetFoV(sprec.Degrees(c.config.Camera.FoV))
	result.SetAutoExposure(false)
	result.SetExposure(1.0)
	result.SetAutoFocus(false)
	result.SetAutoExposureSpeed(0.1)
	result.SetCascadeDistances([]float32{32.0})
	return result
}

func (c *stageScreenComponent) OnRender(element *ui.Element, canvas *ui.Canvas) {
	if c.loop == nil {
		return
	}
	bounds := element.Bounds()
	if w, h := c.compositor.Size(); w != bounds.Width || h != bounds.Height {
		if err := c.compositor.Resize(bounds.Width, bounds.Height); err != nil {
			return
		}
	}
	c.overlay.canvas = canvas
	c.loop.Tick()
	c.overlay.canvas = nil
	c.Invalidate()
}

func (c *stageScreenComponent) OnKeyboardEvent(element *ui.Element, event ui.KeyboardEvent) bool {
	if event.Code == ui.KeyCodeEscape {
		co.Window(c.Scope()).Close()
		return true
	}
	key, ok := keyCodes[event.Code]
	if !ok {
		return false
	}
	switch event.Action {
	case ui.KeyboardActionDown:
		c.input.Press(key)
	case ui.KeyboardActionUp:
		c.input.Release(key)
	}
	return true
}

func (c *stageScreenComponent) OnMouseEvent(element *ui.Element, event ui.MouseEvent) bool {
	if c.controls == nil {
		return false
	}
	x, y := event.Position.X, event.Position.Y
	switch event.Action {
	case ui.MouseActionDown:
		if event.Button != ui.MouseButtonLeft {
			return false
		}
		c.dragging = true
		c.dragged = false
		c.lastX, c.lastY = x, y
		return true

	case ui.MouseActionMove:
		if !c.dragging {
			return false
		}
		if x != c.lastX || y != c.lastY {
			c.controls.Drag(float32(x-c.lastX), float32(y-c.lastY))
			c.dragged = true
		}
		c.lastX, c.lastY = x, y
		return true

	case ui.MouseActionUp:
		if event.Button != ui.MouseButtonLeft {
			return false
		}
		if c.dragging && !c.dragged && c.overlay.hit(float32(x), float32(y)) {
			log.Println("open video:", c.panel.EmbedURL())
			URLOpen(c.panel.EmbedURL())
		}
		c.dragging = false
		return true

	case ui.MouseActionScroll:
		c.controls.Zoom(-float32(event.ScrollY))
		return true

	default:
		return false
	}
}

func (c *stageScreenComponent) Render() co.Instance {
	return co.New(std.Element, func() {
		co.WithData(std.ElementData{
			Essence:       c,
			CanAutoFocus:  opt.V(true),
			CreateFocused: true,
			Layout:        layout.Anchor(),
		})

		co.WithChild("hint", co.New(std.Label, func() {
			co.WithLayoutData(layout.Data{
				Left:   opt.V(20),
				Bottom: opt.V(20),
			})
			co.WithData(std.LabelData{
				Font:      c.textFont,
				FontSize:  opt.V(float32(18)),
				FontColor: opt.V(ui.RGB(0xDD, 0xDD, 0xDD)),
				Text:      "Click the panel to play " + c.config.Video.ID,
			})
		}))
	})
}

// sceneNode exposes a lacking hierarchy node to the stage package.
type sceneNode struct {
	node hierarchyNode
}

type hierarchyNode interface {
	Position() dprec.Vec3
	SetPosition(position dprec.Vec3)
	SetRotation(rotation dprec.Quat)
}

var (
	_ stage.Node  = sceneNode{}
	_ stage.Aimer = sceneNode{}
)

func (n sceneNode) Position() sprec.Vec3 {
	p := n.node.Position()
	return sprec.NewVec3(float32(p.X), float32(p.Y), float32(p.Z))
}

func (n sceneNode) SetPosition(position sprec.Vec3) {
	n.node.SetPosition(dprec.NewVec3(
		float64(position.X),
		float64(position.Y),
		float64(position.Z),
	))
}

func (n sceneNode) LookAt(target sprec.Vec3) {
	n.node.SetRotation(rotation(stage.Orientation(n.Position(), target)))
}

func rotation(yaw, pitch float64) dprec.Quat {
	return dprec.QuatProd(
		dprec.RotationQuat(dprec.Radians(yaw), dprec.BasisYVec3()),
		dprec.RotationQuat(dprec.Radians(pitch), dprec.BasisXVec3()),
	)
}

func vec(v [3]float32) sprec.Vec3 {
	return sprec.NewVec3(v[0], v[1], v[2])
}

// worldRenderer hands the orbit camera pose to the camera node. The engine
// draws the active scene itself once the game layer renders.
type worldRenderer struct {
	camera *stage.Camera
	node   sceneNode
}

func (r *worldRenderer) Render() {
	r.node.SetPosition(r.camera.Position)
	r.node.node.SetRotation(rotation(r.camera.Orientation()))
}

func (r *worldRenderer) SetSize(width, height int) {}

// overlayRenderer draws the projected video card and ground markers on the
// UI canvas, taking the place of the page layer behind the 3D view.
type overlayRenderer struct {
	camera *stage.Camera
	panel  *stage.VideoPanel
	grid   stage.GridConfig

	canvas        *ui.Canvas
	width, height float32

	card    [4]sprec.Vec2
	visible bool
}

func (r *overlayRenderer) SetSize(width, height int) {
	r.width = float32(width)
	r.height = float32(height)
}

func (r *overlayRenderer) Render() {
	if r.canvas == nil {
		return
	}
	r.renderMarkers()
	r.renderCard()
}

func (r *overlayRenderer) renderMarkers() {
	half := float32(r.grid.Size) / 2
	step := float32(r.grid.Size) / 10
	for gx := -half; gx <= half; gx += step {
		for gz := -half; gz <= half; gz += step {
			x, y, ok := r.camera.Project(sprec.NewVec3(gx, 0, gz), r.width, r.height)
			if !ok {
				continue
			}
			r.canvas.Reset()
			r.canvas.Circle(sprec.Vec2{X: x, Y: y}, 2)
			r.canvas.Fill(ui.Fill{
				Color: ui.RGBA(0x88, 0x88, 0x88, 160),
			})
		}
	}
}

// project updates the card outline from the panel corners. The card is
// hidden when any corner is behind the camera.
func (r *overlayRenderer) project() {
	r.visible = false
	for i, corner := range r.panel.Corners() {
		x, y, ok := r.camera.Project(corner, r.width, r.height)
		if !ok {
			return
		}
		r.card[i] = sprec.Vec2{X: x, Y: y}
	}
	r.visible = true
}

func (r *overlayRenderer) renderCard() {
	r.project()
	if !r.visible {
		return
	}
	r.canvas.Reset()
	r.canvas.MoveTo(r.card[0])
	for _, p := range r.card[1:] {
		r.canvas.LineTo(p)
	}
	r.canvas.CloseLoop()
	r.canvas.Fill(ui.Fill{
		Color: ui.RGBA(0xCC, 0x00, 0x00, 200),
	})
}

// hit reports whether a viewport point falls inside the card's bounding box.
func (r *overlayRenderer) hit(x, y float32) bool {
	if !r.visible {
		return false
	}
	minX, minY := float32(math.Inf(1)), float32(math.Inf(1))
	maxX, maxY := float32(math.Inf(-1)), float32(math.Inf(-1))
	for _, p := range r.card {
		minX, maxX = min(minX, p.X), max(maxX, p.X)
		minY, maxY = min(minY, p.Y), max(maxY, p.Y)
	}
	return x >= minX && x <= maxX && y >= minY && y <= maxY
}
