package engine

import (
	"errors"
	"fmt"
	"path/filepath"
	"sync/atomic"
	"time"

	"github.com/spaghettifunk/isocubes/engine/assets"
	"github.com/spaghettifunk/isocubes/engine/core"
	"github.com/spaghettifunk/isocubes/engine/platform"
	"github.com/spaghettifunk/isocubes/engine/renderer"
)

type Stage uint8

const (
	// Engine is in an uninitialized state
	EngineStageUninitialized Stage = iota
	// Engine is currently initializing
	EngineStageInitializing
	// Engine initialization is complete
	EngineStageInitialized
	// Engine is currently running
	EngineStageRunning
	// Engine is in the process of shutting down
	EngineStageShuttingDown
	// Engine has released everything
	EngineStageShutdown
)

var (
	ErrGameIncomplete   = errors.New("game is missing a required hook")
	ErrEngineNotReady   = errors.New("engine is not initialized")
	ErrEventSystemInUse = errors.New("event system already initialized")
)

// metrics are logged once per this many frames
const metricsLogInterval = 120

// how long a suspended loop waits between pumps
const suspendedPollInterval = 10 * time.Millisecond

// the window title overlay is refreshed once per this many frames
const statusInterval = 30

type Engine struct {
	currentStage Stage
	gameInstance *Game
	isRunning    atomic.Bool
	isSuspended  bool
	platform     platform.Platform
	renderer     *renderer.Renderer
	assetManager *assets.AssetManager
	width        uint32
	height       uint32
	clock        *core.Clock
	metrics      *core.Metrics
	lastTime     float64
	frameCount   uint64

	// last cursor center announced to the game
	centerX, centerY float32
	centerKnown      bool
}

func New(g *Game, p platform.Platform) (*Engine, error) {
	if g == nil || g.ApplicationConfig == nil || g.FnUpdate == nil || g.FnRender == nil {
		return nil, ErrGameIncomplete
	}

	var am *assets.AssetManager
	if g.ApplicationConfig.AssetsDir != "" {
		var err error
		if am, err = assets.NewAssetManager(); err != nil {
			core.LogError(err.Error())
			return nil, err
		}
	}

	r := renderer.New(renderer.NewSoftwareBackend())
	r.SetCullBackFaces(g.ApplicationConfig.CullBackFaces)

	return &Engine{
		currentStage: EngineStageUninitialized,
		gameInstance: g,
		clock:        core.NewClock(),
		metrics:      core.NewMetrics(),
		platform:     p,
		renderer:     r,
		assetManager: am,
		width:        g.ApplicationConfig.StartWidth,
		height:       g.ApplicationConfig.StartHeight,
	}, nil
}

func (e *Engine) Initialize() error {
	e.currentStage = EngineStageInitializing
	config := e.gameInstance.ApplicationConfig

	core.SetLogLevel(config.LogLevel)

	// events first: input fires events
	if !core.EventSystemInitialize() {
		return ErrEventSystemInUse
	}
	if err := core.InputInitialize(); err != nil {
		return err
	}

	// register some events
	core.EventRegister(core.EVENT_CODE_APPLICATION_QUIT, e, e.onEvent)
	core.EventRegister(core.EVENT_CODE_KEY_PRESSED, e, e.onKey)
	core.EventRegister(core.EVENT_CODE_RESIZED, e, e.onResized)

	if err := e.platform.Startup(config.Name, config.StartPosX, config.StartPosY, config.StartWidth, config.StartHeight); err != nil {
		return err
	}
	// the framebuffer can be larger than the requested window on HiDPI displays
	if w, h := e.platform.GetFramebufferSize(); w != 0 && h != 0 {
		e.width, e.height = w, h
	}

	if err := e.renderer.Initialize(config.Name, e.width, e.height); err != nil {
		return err
	}

	if e.assetManager != nil {
		if err := e.assetManager.Initialize(config.AssetsDir); err != nil {
			return err
		}
	}

	if e.gameInstance.FnInitialize != nil {
		if err := e.gameInstance.FnInitialize(); err != nil {
			core.LogError("Game failed to initialize.")
			return err
		}
	}
	if e.gameInstance.FnOnResize != nil {
		if err := e.gameInstance.FnOnResize(e.width, e.height); err != nil {
			return err
		}
	}

	e.syncCursorCenter()

	e.currentStage = EngineStageInitialized
	return nil
}

func (e *Engine) Run() error {
	if e.currentStage != EngineStageInitialized {
		return ErrEngineNotReady
	}
	e.currentStage = EngineStageRunning
	e.isRunning.Store(true)

	e.clock.Start()
	e.clock.Update()
	e.lastTime = e.clock.Elapsed()

	config := e.gameInstance.ApplicationConfig

	for e.isRunning.Load() {
		if !e.platform.PumpMessages() {
			e.isRunning.Store(false)
			break
		}

		e.processReloads()
		e.syncCursorCenter()

		if e.isSuspended {
			time.Sleep(suspendedPollInterval)
			// no time passes for the game while minimized
			e.clock.Update()
			e.lastTime = e.clock.Elapsed()
			continue
		}

		e.clock.Update()
		var currentTime float64 = e.clock.Elapsed()
		var delta float64 = (currentTime - e.lastTime)
		var frameStartTime float64 = e.platform.GetAbsoluteTime()

		if err := e.gameInstance.FnUpdate(delta); err != nil {
			core.LogError("Game update failed, shutting down.")
			return fmt.Errorf("update frame %d: %w", e.frameCount, err)
		}

		packet := &renderer.RenderPacket{DeltaTime: delta}
		if err := e.gameInstance.FnRender(packet, delta); err != nil {
			core.LogError("Game render failed, shutting down.")
			return fmt.Errorf("render frame %d: %w", e.frameCount, err)
		}

		frame, err := e.renderer.DrawFrame(packet)
		if err != nil {
			return fmt.Errorf("draw frame %d: %w", e.frameCount, err)
		}
		if err := e.platform.Present(frame); err != nil {
			return fmt.Errorf("present frame %d: %w", e.frameCount, err)
		}

		var frameElapsedTime float64 = e.platform.GetAbsoluteTime() - frameStartTime
		e.metrics.Update(frameElapsedTime)
		e.frameCount++
		if e.frameCount%metricsLogInterval == 0 {
			fps, frameTime := e.metrics.Frame()
			core.LogDebug("FPS: %5.1f (%4.2fms) frame %d", fps, frameTime, e.frameCount)
		}
		if e.gameInstance.FnStatus != nil && e.frameCount%statusInterval == 0 {
			fps, _ := e.metrics.Frame()
			e.platform.SetTitle(fmt.Sprintf("%s | %.0f fps | %s", config.Name, fps, e.gameInstance.FnStatus()))
		}

		if config.RecenterCursor {
			e.platform.RecenterCursor()
		}

		if err := core.InputUpdate(delta); err != nil {
			return err
		}

		e.lastTime = currentTime
	}

	return nil
}

// RequestQuit stops the loop after the current frame. Safe from any goroutine.
func (e *Engine) RequestQuit() {
	e.isRunning.Store(false)
}

// Shutdown releases everything in reverse initialization order and joins every failure.
func (e *Engine) Shutdown() error {
	if e.currentStage == EngineStageShutdown || e.currentStage == EngineStageUninitialized {
		return nil
	}
	e.currentStage = EngineStageShuttingDown

	var errs []error
	if e.gameInstance.FnShutdown != nil {
		errs = append(errs, e.gameInstance.FnShutdown())
	}
	if e.assetManager != nil {
		errs = append(errs, e.assetManager.Shutdown())
	}
	errs = append(errs,
		e.renderer.Shutdown(),
		e.platform.Shutdown(),
	)

	core.EventUnregister(core.EVENT_CODE_APPLICATION_QUIT, e)
	core.EventUnregister(core.EVENT_CODE_KEY_PRESSED, e)
	core.EventUnregister(core.EVENT_CODE_RESIZED, e)

	errs = append(errs,
		core.InputShutdown(),
		core.EventSystemShutdown(),
	)

	e.currentStage = EngineStageShutdown
	return errors.Join(errs...)
}

func (e *Engine) Stage() Stage {
	return e.currentStage
}

func (e *Engine) FrameCount() uint64 {
	return e.frameCount
}

func (e *Engine) GetFramebufferSize() (uint32, uint32) {
	return e.width, e.height
}

// Renderer exposes the renderer so games can query the viewport aspect.
func (e *Engine) Renderer() *renderer.Renderer {
	return e.renderer
}

// processReloads reloads the game's scene if it changed on disk. A scene
// that fails to parse is reported and the current one is kept.
func (e *Engine) processReloads() {
	if e.assetManager == nil {
		return
	}
	config := e.gameInstance.ApplicationConfig
	for _, path := range e.assetManager.PendingReloads() {
		if config.ScenePath != "" && !samePath(path, config.ScenePath) {
			core.LogDebug("ignoring change to '%s'", path)
			continue
		}
		scene, err := e.assetManager.LoadScene(path)
		if err != nil {
			core.LogWarn("scene reload failed, keeping the current scene: %s", err)
			continue
		}
		core.LogInfo("Scene '%s' reloaded.", path)
		if e.gameInstance.FnOnSceneReload != nil {
			if err := e.gameInstance.FnOnSceneReload(scene); err != nil {
				core.LogError("game rejected reloaded scene: %s", err)
				continue
			}
		}
		core.EventFire(core.EventContext{Type: core.EVENT_CODE_SCENE_RELOADED, Data: scene})
	}
}

// syncCursorCenter tells listeners where the cursor is recentered to,
// whenever that point moves.
func (e *Engine) syncCursorCenter() {
	x, y := e.platform.CursorCenter()
	if e.centerKnown && x == e.centerX && y == e.centerY {
		return
	}
	e.centerX, e.centerY, e.centerKnown = x, y, true
	core.EventFire(core.EventContext{
		Type: core.EVENT_CODE_CURSOR_CENTER_CHANGED,
		Data: &core.MouseEvent{PosX: x, PosY: y},
	})
}

func samePath(a, b string) bool {
	absA, errA := filepath.Abs(a)
	absB, errB := filepath.Abs(b)
	if errA != nil || errB != nil {
		return filepath.Clean(a) == filepath.Clean(b)
	}
	return absA == absB
}

func (e *Engine) onEvent(context core.EventContext) bool {
	switch context.Type {
	case core.EVENT_CODE_APPLICATION_QUIT:
		core.LogInfo("EVENT_CODE_APPLICATION_QUIT received, shutting down.")
		e.isRunning.Store(false)
		return true
	}
	return false
}

func (e *Engine) onKey(context core.EventContext) bool {
	ke, ok := context.Data.(*core.KeyEvent)
	if !ok {
		core.LogError("wrong event associated with the event type `%d`", context.Type)
		return false
	}

	if ke.KeyCode == core.KEY_ESCAPE || ke.KeyCode == core.KEY_Q {
		// NOTE: Technically firing an event to itself, but there may be other listeners.
		core.EventFire(core.EventContext{
			Type: core.EVENT_CODE_APPLICATION_QUIT,
		})
		// Block anything else from processing this.
		return true
	}
	return false
}

func (e *Engine) onResized(context core.EventContext) bool {
	se, ok := context.Data.(*core.SystemEvent)
	if !ok {
		core.LogError("wrong event associated with the event type `%d`", context.Type)
		return false
	}

	width := se.WindowWidth
	height := se.WindowHeight

	// Check if different. If so, trigger a resize event.
	if width == e.width && height == e.height {
		return false
	}
	e.width = width
	e.height = height

	core.LogDebug("Window resize: %d, %d", width, height)

	// Handle minimization
	if width == 0 || height == 0 {
		core.LogInfo("Window minimized, suspending application.")
		e.isSuspended = true
		return true
	}
	if e.isSuspended {
		core.LogInfo("Window restored, resuming application.")
		e.isSuspended = false
	}
	if err := e.renderer.OnResize(width, height); err != nil {
		core.LogError(err.Error())
	}
	if e.gameInstance.FnOnResize != nil {
		if err := e.gameInstance.FnOnResize(width, height); err != nil {
			core.LogError(err.Error())
		}
	}
	// other listeners (the game's camera) still need to see it
	return false
}
