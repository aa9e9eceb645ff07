package testbed

import (
	"image/color"
	"path/filepath"
	"testing"

	"github.com/spaghettifunk/isocubes/engine"
	"github.com/spaghettifunk/isocubes/engine/assets"
	"github.com/spaghettifunk/isocubes/engine/components"
	"github.com/spaghettifunk/isocubes/engine/entity"
	"github.com/spaghettifunk/isocubes/engine/math"
	"github.com/spaghettifunk/isocubes/engine/platform"
	"github.com/spaghettifunk/isocubes/engine/renderer"
)

const oneCube = `
[application]
start_width = 64
start_height = 48
log_level = "error"
recenter_cursor = false

[camera]
speed = 1.0

[[cubes]]
name = "target"
position = [0.0, 0.0, -5.0]
`

const threeCubes = `
[application]
start_width = 64
start_height = 48
log_level = "error"

[camera]
speed = 3.0
projection = "isometric"
clear_color = [0.0, 0.0, 0.0, 1.0]

[[cubes]]
position = [0.0, 0.0, 0.0]

[[cubes]]
position = [2.0, 0.0, 0.0]
spin = [0.0, 90.0, 0.0]

[[cubes]]
position = [4.0, 0.0, 0.0]
`

func parse(t *testing.T, data string) *assets.Scene {
	t.Helper()
	scene, err := assets.ParseScene([]byte(data))
	if err != nil {
		t.Fatalf("ParseScene: %v", err)
	}
	return scene
}

func TestCubeGameRunsHeadless(t *testing.T) {
	scene := parse(t, oneCube)
	scene.Script = []assets.ScriptEvent{{Frame: 1, Key: "w", Action: "press"}}

	g, err := NewCubeGame(scene, "")
	if err != nil {
		t.Fatal(err)
	}
	p := platform.NewHeadlessPlatform(platform.HeadlessConfig{Frames: 3, Script: platform.ScriptFromScene(scene.Script)})
	e, err := engine.New(g.Game, p)
	if err != nil {
		t.Fatal(err)
	}
	if err := e.Initialize(); err != nil {
		t.Fatal(err)
	}
	defer func() {
		if err := e.Shutdown(); err != nil {
			t.Errorf("Shutdown: %v", err)
		}
	}()
	if err := e.Run(); err != nil {
		t.Fatal(err)
	}

	pos := g.Camera().Transform().Position
	if pos != (math.Vec3{X: 0, Y: 0, Z: -1}) {
		t.Errorf("camera position = %+v, want one step forward", pos)
	}

	frame := p.LastFrame()
	if frame == nil {
		t.Fatal("no frame presented")
	}
	bg := color.RGBA{R: 153, G: 77, B: 77, A: 255}
	if got := frame.RGBAAt(32, 24); got == bg {
		t.Error("frame center shows the clear colour, cube not drawn")
	}
	if got := frame.RGBAAt(0, 0); got != bg {
		t.Errorf("frame corner = %v, want clear colour %v", got, bg)
	}
}

func TestCubeGameRender(t *testing.T) {
	g, err := NewCubeGame(parse(t, threeCubes), "")
	if err != nil {
		t.Fatal(err)
	}
	if err := g.FnInitialize(); err != nil {
		t.Fatal(err)
	}
	if err := g.FnOnResize(64, 48); err != nil {
		t.Fatal(err)
	}

	packet := &renderer.RenderPacket{}
	if err := g.FnRender(packet, 0.016); err != nil {
		t.Fatal(err)
	}
	if packet.Camera.Mode != renderer.PROJECTION_ISOMETRIC {
		t.Errorf("camera mode = %v", packet.Camera.Mode)
	}
	if len(packet.Quads) != 3*6 {
		t.Errorf("quads = %d, want 18", len(packet.Quads))
	}
	if packet.ClearColor != (math.Vec4{X: 0, Y: 0, Z: 0, W: 1}) {
		t.Errorf("clear colour = %+v", packet.ClearColor)
	}

	spinning := 0
	for _, c := range g.Cubes() {
		if c.HasComponent(components.SpinComponentType) {
			spinning++
		}
	}
	if spinning != 1 {
		t.Errorf("spinning cubes = %d, want 1", spinning)
	}

	if name := g.Camera().Name(); name != components.DEFAULT_CAMERA_NAME {
		t.Errorf("camera name = %q", name)
	}
	if !g.Camera().HasComponent(components.CameraComponentType) {
		t.Error("camera has no camera component")
	}
}

func TestMouseLookOnScaledDisplay(t *testing.T) {
	scene := parse(t, oneCube)
	scene.Application.RecenterCursor = true

	g, err := NewCubeGame(scene, "")
	if err != nil {
		t.Fatal(err)
	}
	// framebuffer is twice the window size; cursor positions are window units
	p := platform.NewHeadlessPlatform(platform.HeadlessConfig{
		Frames:       5,
		ContentScale: 2,
		Script: []platform.ScriptedInput{
			{Frame: 1, Kind: platform.InputResize, Width: 80, Height: 60},
			{Frame: 2, Kind: platform.InputMouseMove, X: 50, Y: 30},
		},
	})
	e, err := engine.New(g.Game, p)
	if err != nil {
		t.Fatal(err)
	}
	if err := e.Initialize(); err != nil {
		t.Fatal(err)
	}
	defer func() {
		if err := e.Shutdown(); err != nil {
			t.Errorf("Shutdown: %v", err)
		}
	}()
	if err := e.Run(); err != nil {
		t.Fatal(err)
	}

	if w, h := e.Renderer().Size(); w != 160 || h != 120 {
		t.Errorf("renderer size = %dx%d, want the framebuffer 160x120", w, h)
	}
	movement, ok := entity.ComponentOf[*components.MovementComponent](g.Camera(), components.MovementComponentType)
	if !ok {
		t.Fatal("camera has no movement component")
	}
	if x, y := movement.Center(); x != 40 || y != 30 {
		t.Errorf("center = %v,%v, want the window center 40,30", x, y)
	}
	// one 10px move to the right; every recenter after it must be a no-op
	if got, want := movement.Yaw(), -math.DegToRad(1); got < want-1e-5 || got > want+1e-5 {
		t.Errorf("yaw = %v, want %v", got, want)
	}
	if pitch := movement.Pitch(); pitch != 0 {
		t.Errorf("pitch = %v, want 0", pitch)
	}
}

func TestCubeGameSceneReload(t *testing.T) {
	g, err := NewCubeGame(parse(t, oneCube), "")
	if err != nil {
		t.Fatal(err)
	}
	if err := g.FnInitialize(); err != nil {
		t.Fatal(err)
	}
	g.Camera().Transform().SetPosition(math.Vec3{X: 1, Y: 2, Z: 3})

	if err := g.FnOnSceneReload(parse(t, threeCubes)); err != nil {
		t.Fatal(err)
	}
	if n := len(g.Cubes()); n != 3 {
		t.Errorf("cubes after reload = %d, want 3", n)
	}
	if pos := g.Camera().Transform().Position; pos != (math.Vec3{X: 1, Y: 2, Z: 3}) {
		t.Errorf("camera moved on reload: %+v", pos)
	}
	movement, _ := entity.ComponentOf[*components.MovementComponent](g.Camera(), components.MovementComponentType)
	if s := movement.Config().Speed; s != 3 {
		t.Errorf("speed after reload = %v, want 3", s)
	}

	bad := parse(t, oneCube)
	bad.Camera.Projection = "fisheye"
	if err := g.FnOnSceneReload(bad); err == nil {
		t.Error("reload with an unknown projection succeeded")
	}
	if n := len(g.Cubes()); n != 3 {
		t.Errorf("failed reload replaced the cubes: %d", n)
	}
}

func TestCubeGameStatus(t *testing.T) {
	g, err := NewCubeGame(parse(t, oneCube), "")
	if err != nil {
		t.Fatal(err)
	}
	if err := g.FnInitialize(); err != nil {
		t.Fatal(err)
	}
	if got, want := g.Status(), "camera [0.0, 0.0, 0.0] cubes 1"; got != want {
		t.Errorf("Status() = %q, want %q", got, want)
	}
}

func TestShippedScenesLoad(t *testing.T) {
	paths, err := filepath.Glob(filepath.Join("..", "assets", "scenes", "*.toml"))
	if err != nil {
		t.Fatal(err)
	}
	if len(paths) == 0 {
		t.Fatal("no scenes found")
	}
	for _, path := range paths {
		t.Run(filepath.Base(path), func(t *testing.T) {
			scene, err := assets.LoadSceneFile(path)
			if err != nil {
				t.Fatal(err)
			}
			if len(scene.Cubes) == 0 {
				t.Error("scene has no cubes")
			}
			if _, err := NewCubeGame(scene, path); err != nil {
				t.Error(err)
			}
		})
	}
}
