package assets

import (
	"errors"
	"fmt"

	"github.com/spaghettifunk/isocubes/engine/core"
	"github.com/spaghettifunk/isocubes/engine/geometry"
	"github.com/spaghettifunk/isocubes/engine/math"
	"github.com/spaghettifunk/isocubes/engine/renderer"
)

var ErrInvalidScene = errors.New("invalid scene")

// Scene is the on-disk description of a run: window, camera, cubes and,
// for headless runs, a scripted input sequence.
type Scene struct {
	Application ApplicationConfig `toml:"application"`
	Camera      CameraConfig      `toml:"camera"`
	Cubes       []CubeConfig      `toml:"cubes"`
	Script      []ScriptEvent     `toml:"script"`
}

type ApplicationConfig struct {
	Name        string `toml:"name"`
	StartPosX   uint32 `toml:"start_pos_x"`
	StartPosY   uint32 `toml:"start_pos_y"`
	StartWidth  uint32 `toml:"start_width"`
	StartHeight uint32 `toml:"start_height"`
	LogLevel    string `toml:"log_level"`
	// Headless runs without a window, replaying Script.
	Headless bool `toml:"headless"`
	// Frames stops the loop after that many frames. 0 runs until quit.
	Frames uint64 `toml:"frames"`
	// Snapshot is a PNG path the headless platform writes the last frame to.
	Snapshot       string `toml:"snapshot"`
	RecenterCursor bool   `toml:"recenter_cursor"`
}

type CameraConfig struct {
	Position         [3]float32 `toml:"position"`
	Speed            float32    `toml:"speed"`
	MouseSensitivity float32    `toml:"mouse_sensitivity"`
	PitchLimit       float32    `toml:"pitch_limit"`
	Projection       string     `toml:"projection"`
	FOV              float32    `toml:"fov"`
	Near             float32    `toml:"near"`
	Far              float32    `toml:"far"`
	IsoScale         float32    `toml:"iso_scale"`
	ClearColor       [4]float32 `toml:"clear_color"`
	CullBackFaces    bool       `toml:"cull_back_faces"`
}

type CubeConfig struct {
	Name     string     `toml:"name"`
	Position [3]float32 `toml:"position"`
	// optional; nil takes the default
	Scale         *float32    `toml:"scale"`
	Color         *[4]float32 `toml:"color"`
	Spin          [3]float32  `toml:"spin"`
	ApplyRotation *bool       `toml:"apply_rotation"`
}

// ScriptEvent is one input injected by the headless platform before the
// given frame. Exactly one of Key, Mouse or Resize is set.
type ScriptEvent struct {
	Frame  uint64    `toml:"frame"`
	Key    string    `toml:"key"`
	Action string    `toml:"action"`
	Mouse  []float32 `toml:"mouse"`
	Resize []uint32  `toml:"resize"`
}

// DefaultScene holds the values used for anything a scene file leaves out.
func DefaultScene() *Scene {
	return &Scene{
		Application: ApplicationConfig{
			Name:           "Isometric Cubes",
			StartPosX:      100,
			StartPosY:      100,
			StartWidth:     1200,
			StartHeight:    800,
			LogLevel:       "info",
			RecenterCursor: true,
		},
		Camera: CameraConfig{
			Speed:            1.0,
			MouseSensitivity: 0.1,
			PitchLimit:       89.0,
			Projection:       "perspective",
			FOV:              45.0,
			Near:             0.1,
			Far:              1000.0,
			IsoScale:         40.0,
			ClearColor:       [4]float32{0.6, 0.3, 0.3, 1.0},
		},
	}
}

// Validate checks the values that would otherwise fail later in the frame loop.
func (s *Scene) Validate() error {
	if s.Application.StartWidth == 0 || s.Application.StartHeight == 0 {
		return fmt.Errorf("window size %dx%d: %w", s.Application.StartWidth, s.Application.StartHeight, ErrInvalidScene)
	}
	if _, err := core.ParseLogLevel(s.Application.LogLevel); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidScene, err)
	}
	if _, err := s.Camera.Mode(); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidScene, err)
	}
	if s.Camera.PitchLimit < 0 {
		return fmt.Errorf("negative pitch_limit %g: %w", s.Camera.PitchLimit, ErrInvalidScene)
	}
	for i, e := range s.Script {
		if err := e.validate(); err != nil {
			return fmt.Errorf("script[%d]: %w", i, err)
		}
	}
	return nil
}

func (c CameraConfig) Mode() (renderer.ProjectionMode, error) {
	return renderer.ParseProjectionMode(c.Projection)
}

func (c CameraConfig) PositionVec() math.Vec3 {
	return math.NewVec3(c.Position[0], c.Position[1], c.Position[2])
}

func (c CameraConfig) Clear() geometry.Color {
	return geometry.Color{X: c.ClearColor[0], Y: c.ClearColor[1], Z: c.ClearColor[2], W: c.ClearColor[3]}
}

func (c CubeConfig) PositionVec() math.Vec3 {
	return math.NewVec3(c.Position[0], c.Position[1], c.Position[2])
}

func (c CubeConfig) ScaleValue() float32 {
	if c.Scale == nil {
		return 1.0
	}
	return *c.Scale
}

func (c CubeConfig) ColorValue() geometry.Color {
	if c.Color == nil {
		return geometry.DefaultColor
	}
	return geometry.Color{X: c.Color[0], Y: c.Color[1], Z: c.Color[2], W: c.Color[3]}
}

func (c CubeConfig) SpinVec() math.Vec3 {
	return math.NewVec3(c.Spin[0], c.Spin[1], c.Spin[2])
}

func (c CubeConfig) ApplyRotationValue() bool {
	return c.ApplyRotation == nil || *c.ApplyRotation
}

func parseKeyAction(action string) (core.KeyAction, error) {
	switch action {
	case "", "press":
		return core.KEY_ACTION_PRESS, nil
	case "release":
		return core.KEY_ACTION_RELEASE, nil
	case "repeat":
		return core.KEY_ACTION_REPEAT, nil
	}
	return core.KEY_ACTION_RELEASE, fmt.Errorf("unknown key action %q: %w", action, ErrInvalidScene)
}

// KeyEvent resolves a key entry. ok is false for mouse and resize entries.
func (e ScriptEvent) KeyEvent() (core.KeyCode, core.KeyAction, bool) {
	if e.Key == "" {
		return 0, 0, false
	}
	key, ok := core.KeyCodeFromName(e.Key)
	if !ok {
		return 0, 0, false
	}
	action, err := parseKeyAction(e.Action)
	if err != nil {
		return 0, 0, false
	}
	return key, action, true
}

func (e ScriptEvent) validate() error {
	set := 0
	if e.Key != "" {
		set++
		if _, ok := core.KeyCodeFromName(e.Key); !ok {
			return fmt.Errorf("unknown key %q: %w", e.Key, ErrInvalidScene)
		}
		if _, err := parseKeyAction(e.Action); err != nil {
			return err
		}
	}
	if e.Mouse != nil {
		set++
		if len(e.Mouse) != 2 {
			return fmt.Errorf("mouse wants [x, y], got %d values: %w", len(e.Mouse), ErrInvalidScene)
		}
	}
	if e.Resize != nil {
		set++
		if len(e.Resize) != 2 {
			return fmt.Errorf("resize wants [width, height], got %d values: %w", len(e.Resize), ErrInvalidScene)
		}
	}
	if set != 1 {
		return fmt.Errorf("want exactly one of key, mouse or resize: %w", ErrInvalidScene)
	}
	return nil
}
