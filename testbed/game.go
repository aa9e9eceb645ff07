package testbed

import (
	"fmt"
	"path/filepath"

	"github.com/spaghettifunk/isocubes/engine"
	"github.com/spaghettifunk/isocubes/engine/assets"
	"github.com/spaghettifunk/isocubes/engine/components"
	"github.com/spaghettifunk/isocubes/engine/core"
	"github.com/spaghettifunk/isocubes/engine/entity"
	"github.com/spaghettifunk/isocubes/engine/geometry"
	"github.com/spaghettifunk/isocubes/engine/math"
	"github.com/spaghettifunk/isocubes/engine/renderer"
)

// CubeGame flies a mouse-look camera through the cubes of a scene file.
type CubeGame struct {
	*engine.Game
}

type gameState struct {
	scene *assets.Scene

	camera         *entity.GameObject
	movement       *components.MovementComponent
	cameraLens     *components.CameraComponent
	cubes          []*entity.GameObject
	clearColour    geometry.Color
	width, height  uint32
	lastCameraLine string
}

func NewCubeGame(scene *assets.Scene, scenePath string) (*CubeGame, error) {
	level, err := core.ParseLogLevel(scene.Application.LogLevel)
	if err != nil {
		return nil, err
	}

	config := &engine.ApplicationConfig{
		StartPosX:      scene.Application.StartPosX,
		StartPosY:      scene.Application.StartPosY,
		StartWidth:     scene.Application.StartWidth,
		StartHeight:    scene.Application.StartHeight,
		Name:           scene.Application.Name,
		LogLevel:       level,
		RecenterCursor: scene.Application.RecenterCursor,
		CullBackFaces:  scene.Camera.CullBackFaces,
	}
	if scenePath != "" {
		config.AssetsDir = filepath.Dir(scenePath)
		config.ScenePath = scenePath
	}

	g := &CubeGame{
		Game: &engine.Game{
			ApplicationConfig: config,
			State: &gameState{
				scene:  scene,
				width:  scene.Application.StartWidth,
				height: scene.Application.StartHeight,
			},
		},
	}

	g.FnInitialize = g.Initialize
	g.FnUpdate = g.Update
	g.FnRender = g.Render
	g.FnOnResize = g.OnResize
	g.FnOnSceneReload = g.OnSceneReload
	g.FnShutdown = g.Shutdown
	g.FnStatus = g.Status

	return g, nil
}

func (g *CubeGame) state() *gameState {
	return g.State.(*gameState)
}

func (g *CubeGame) Initialize() error {
	core.LogDebug("CubeGame Initialize fn....")
	state := g.state()

	state.camera = entity.NewGameObject(components.DEFAULT_CAMERA_NAME)
	state.movement = components.NewMovementComponent(movementConfig(state.scene.Camera))
	if err := state.camera.AddComponent(state.movement); err != nil {
		return err
	}
	lens, err := cameraConfig(state.scene.Camera)
	if err != nil {
		return err
	}
	state.cameraLens = components.NewCameraComponent(lens)
	if err := state.camera.AddComponent(state.cameraLens); err != nil {
		return err
	}
	state.camera.Transform().SetPosition(state.scene.Camera.PositionVec())
	state.clearColour = state.scene.Camera.Clear()

	if err := g.buildCubes(state.scene); err != nil {
		return err
	}
	core.LogInfo("%s", state.camera)

	core.EventRegister(core.EVENT_CODE_KEY_PRESSED, g, g.onKey)
	core.EventRegister(core.EVENT_CODE_KEY_REPEATED, g, g.onKey)
	core.EventRegister(core.EVENT_CODE_MOUSE_MOVED, g, g.onMouseMove)
	core.EventRegister(core.EVENT_CODE_CURSOR_CENTER_CHANGED, g, g.onCursorCenter)

	return nil
}

func movementConfig(c assets.CameraConfig) components.MovementConfig {
	return components.MovementConfig{
		Speed:            c.Speed,
		MouseSensitivity: c.MouseSensitivity,
		PitchLimit:       c.PitchLimit,
	}
}

func cameraConfig(c assets.CameraConfig) (components.CameraConfig, error) {
	mode, err := c.Mode()
	if err != nil {
		return components.CameraConfig{}, err
	}
	return components.CameraConfig{
		Mode:     mode,
		FOV:      c.FOV,
		Near:     c.Near,
		Far:      c.Far,
		IsoScale: c.IsoScale,
	}, nil
}

// buildCubes replaces every cube GameObject with the scene's list.
func (g *CubeGame) buildCubes(scene *assets.Scene) error {
	state := g.state()
	cubes := make([]*entity.GameObject, 0, len(scene.Cubes))
	for i, c := range scene.Cubes {
		name := c.Name
		if name == "" {
			name = fmt.Sprintf("cube-%d", i)
		}
		obj := entity.NewGameObject(name)
		obj.Transform().SetPositionRotationScale(c.PositionVec(), math.NewQuatIdentity(), math.NewVec3Uniform(c.ScaleValue()))

		if err := obj.AddComponent(components.NewRenderComponent(c.ColorValue(), c.ApplyRotationValue())); err != nil {
			return err
		}
		if spin := c.SpinVec(); spin != math.NewVec3Zero() {
			if err := obj.AddComponent(components.NewSpinComponent(spin)); err != nil {
				return err
			}
		}
		cubes = append(cubes, obj)
	}
	state.cubes = cubes
	core.LogDebug("built %d cubes", len(cubes))
	return nil
}

func (g *CubeGame) Update(deltaTime float64) error {
	state := g.state()
	for _, cube := range state.cubes {
		if err := cube.Update(deltaTime); err != nil {
			return err
		}
	}
	if err := state.camera.Update(deltaTime); err != nil {
		return err
	}

	// log the camera transform whenever it changes
	t := state.camera.Transform()
	axis, angle := t.Rotation.ToAxisAngle()
	line := fmt.Sprintf("Camera Pos: [%.3f, %.3f, %.3f] Rot: %.1f deg about [%.2f, %.2f, %.2f]",
		t.Position.X, t.Position.Y, t.Position.Z, math.RadToDeg(angle), axis.X, axis.Y, axis.Z)
	if line != state.lastCameraLine {
		core.LogDebug("%s", line)
		state.lastCameraLine = line
	}
	return nil
}

func (g *CubeGame) Render(packet *renderer.RenderPacket, deltaTime float64) error {
	state := g.state()

	var aspect float32
	if state.height != 0 {
		aspect = float32(state.width) / float32(state.height)
	}
	camera, err := state.cameraLens.Camera(aspect)
	if err != nil {
		core.LogError("Failed to build the camera for this frame.")
		return err
	}

	packet.DeltaTime = deltaTime
	packet.ClearColor = state.clearColour
	packet.Camera = camera
	packet.Quads = packet.Quads[:0]
	for _, cube := range state.cubes {
		rc, ok := entity.ComponentOf[*components.RenderComponent](cube, components.RenderComponentType)
		if !ok {
			continue
		}
		packet.Quads = append(packet.Quads, rc.Quads()...)
	}
	return nil
}

// OnResize receives the framebuffer size, used for the aspect ratio only.
// The mouse-look center follows EVENT_CODE_CURSOR_CENTER_CHANGED, which is
// in cursor coordinates.
func (g *CubeGame) OnResize(width uint32, height uint32) error {
	state := g.state()
	state.width = width
	state.height = height
	return nil
}

// OnSceneReload rebuilds the cubes and camera settings. The camera keeps
// its current transform.
func (g *CubeGame) OnSceneReload(scene *assets.Scene) error {
	state := g.state()
	lens, err := cameraConfig(scene.Camera)
	if err != nil {
		return err
	}
	if err := g.buildCubes(scene); err != nil {
		return err
	}
	state.scene = scene
	state.movement.SetConfig(movementConfig(scene.Camera))
	state.cameraLens.Config = lens
	state.clearColour = scene.Camera.Clear()
	return nil
}

func (g *CubeGame) Shutdown() error {
	core.EventUnregister(core.EVENT_CODE_KEY_PRESSED, g)
	core.EventUnregister(core.EVENT_CODE_KEY_REPEATED, g)
	core.EventUnregister(core.EVENT_CODE_MOUSE_MOVED, g)
	core.EventUnregister(core.EVENT_CODE_CURSOR_CENTER_CHANGED, g)
	return nil
}

// Status reports the camera position for the title overlay.
func (g *CubeGame) Status() string {
	p := g.state().camera.Transform().Position
	return fmt.Sprintf("camera [%.1f, %.1f, %.1f] cubes %d", p.X, p.Y, p.Z, len(g.state().cubes))
}

// Camera returns the camera GameObject.
func (g *CubeGame) Camera() *entity.GameObject {
	return g.state().camera
}

// Cubes returns the cube GameObjects built from the current scene.
func (g *CubeGame) Cubes() []*entity.GameObject {
	return g.state().cubes
}

func (g *CubeGame) onKey(context core.EventContext) bool {
	ke, ok := context.Data.(*core.KeyEvent)
	if !ok {
		core.LogError("wrong event associated with the event type `%d`", context.Type)
		return false
	}
	return g.state().movement.OnKey(ke.KeyCode, ke.Action)
}

func (g *CubeGame) onMouseMove(context core.EventContext) bool {
	me, ok := context.Data.(*core.MouseEvent)
	if !ok {
		core.LogError("wrong event associated with the event type `%d`", context.Type)
		return false
	}
	g.state().movement.OnMouseMove(me.PosX, me.PosY)
	return false
}

func (g *CubeGame) onCursorCenter(context core.EventContext) bool {
	me, ok := context.Data.(*core.MouseEvent)
	if !ok {
		core.LogError("wrong event associated with the event type `%d`", context.Type)
		return false
	}
	g.state().movement.SetCenter(me.PosX, me.PosY)
	return false
}
