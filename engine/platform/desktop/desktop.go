package desktop

import (
	"image"
	"runtime"

	"github.com/go-gl/glfw/v3.3/glfw"
	"github.com/spaghettifunk/isocubes/engine/core"
	"github.com/spaghettifunk/isocubes/engine/platform"
)

func init() {
	// GLFW event handling must run on the main OS thread
	runtime.LockOSThread()
}

// Platform is a GLFW window. It has no graphics context; frames are kept
// for the snapshot and the window title carries the overlay text.
type Platform struct {
	Window    *glfw.Window
	snapshot  string
	lastFrame *image.RGBA
	startTime float64
}

var _ platform.Platform = (*Platform)(nil)

// New creates the platform. A non-empty snapshot path gets the last frame on shutdown.
func New(snapshot string) *Platform {
	return &Platform{snapshot: snapshot}
}

func (p *Platform) Startup(applicationName string, x, y, width, height uint32) error {
	if err := glfw.Init(); err != nil {
		core.LogError("failed to initialize glfw: %s", err)
		return err
	}

	glfw.WindowHint(glfw.Visible, glfw.False)
	glfw.WindowHint(glfw.Resizable, glfw.True)
	glfw.WindowHint(glfw.ClientAPI, glfw.NoAPI)

	window, err := glfw.CreateWindow(int(width), int(height), applicationName, nil, nil)
	if err != nil {
		core.LogError("failed to create window: %s", err)
		glfw.Terminate()
		return err
	}
	p.Window = window

	p.Window.SetKeyCallback(keyCallback)
	p.Window.SetMouseButtonCallback(mouseButtonCallback)
	p.Window.SetCursorPosCallback(cursorPosCallback)
	p.Window.SetScrollCallback(scrollCallback)
	p.Window.SetFramebufferSizeCallback(framebufferSizeCallback)
	p.Window.SetCloseCallback(closeCallback)
	p.Window.SetPos(int(x), int(y))
	p.Window.Show()

	p.startTime = glfw.GetTime()

	return nil
}

func (p *Platform) Shutdown() error {
	var err error
	if p.snapshot != "" && p.lastFrame != nil {
		err = platform.WritePNG(p.snapshot, p.lastFrame)
	}
	if p.Window != nil {
		p.Window.Destroy()
		p.Window = nil
	}
	glfw.Terminate()
	return err
}

func (p *Platform) PumpMessages() bool {
	glfw.PollEvents()
	return !p.Window.ShouldClose()
}

func (p *Platform) Present(frame *image.RGBA) error {
	p.lastFrame = frame
	return nil
}

func (p *Platform) GetFramebufferSize() (uint32, uint32) {
	w, h := p.Window.GetFramebufferSize()
	return uint32(w), uint32(h)
}

func (p *Platform) GetAbsoluteTime() float64 {
	return glfw.GetTime() - p.startTime
}

// CursorCenter uses the window size, not the framebuffer size: cursor
// positions are in screen coordinates.
func (p *Platform) CursorCenter() (float32, float32) {
	w, h := p.Window.GetSize()
	return float32(w) / 2, float32(h) / 2
}

func (p *Platform) RecenterCursor() {
	cx, cy := p.CursorCenter()
	p.Window.SetCursorPos(float64(cx), float64(cy))
	// SetCursorPos does not always fire the position callback
	_ = core.InputProcessMouseMove(cx, cy)
}

func (p *Platform) SetTitle(title string) {
	p.Window.SetTitle(title)
}

func translateKey(key glfw.Key) (core.KeyCode, bool) {
	switch {
	case key >= glfw.KeyA && key <= glfw.KeyZ:
		return core.KeyCode(key), true
	case key == glfw.KeySpace:
		return core.KEY_SPACE, true
	}
	switch key {
	case glfw.KeyEscape:
		return core.KEY_ESCAPE, true
	case glfw.KeyEnter:
		return core.KEY_ENTER, true
	case glfw.KeyTab:
		return core.KEY_TAB, true
	case glfw.KeyBackspace:
		return core.KEY_BACKSPACE, true
	case glfw.KeyLeft:
		return core.KEY_LEFT, true
	case glfw.KeyRight:
		return core.KEY_RIGHT, true
	case glfw.KeyUp:
		return core.KEY_UP, true
	case glfw.KeyDown:
		return core.KEY_DOWN, true
	case glfw.KeyLeftShift:
		return core.KEY_LSHIFT, true
	case glfw.KeyRightShift:
		return core.KEY_RSHIFT, true
	case glfw.KeyLeftControl:
		return core.KEY_LCONTROL, true
	case glfw.KeyRightControl:
		return core.KEY_RCONTROL, true
	}
	return 0, false
}

func translateAction(action glfw.Action) core.KeyAction {
	switch action {
	case glfw.Press:
		return core.KEY_ACTION_PRESS
	case glfw.Repeat:
		return core.KEY_ACTION_REPEAT
	default:
		return core.KEY_ACTION_RELEASE
	}
}

func keyCallback(w *glfw.Window, key glfw.Key, scancode int, action glfw.Action, mods glfw.ModifierKey) {
	code, ok := translateKey(key)
	if !ok {
		return
	}
	if err := core.InputProcessKey(code, translateAction(action)); err != nil {
		core.LogError(err.Error())
	}
}

func mouseButtonCallback(w *glfw.Window, button glfw.MouseButton, action glfw.Action, mods glfw.ModifierKey) {
	var b core.Button
	switch button {
	case glfw.MouseButtonLeft:
		b = core.BUTTON_LEFT
	case glfw.MouseButtonRight:
		b = core.BUTTON_RIGHT
	case glfw.MouseButtonMiddle:
		b = core.BUTTON_MIDDLE
	default:
		return
	}
	if err := core.InputProcessButton(b, action == glfw.Press); err != nil {
		core.LogError(err.Error())
	}
}

func cursorPosCallback(w *glfw.Window, xpos, ypos float64) {
	if err := core.InputProcessMouseMove(float32(xpos), float32(ypos)); err != nil {
		core.LogError(err.Error())
	}
}

func scrollCallback(w *glfw.Window, xoff, yoff float64) {
	var delta int8
	switch {
	case yoff > 0:
		delta = 1
	case yoff < 0:
		delta = -1
	default:
		return
	}
	if err := core.InputProcessMouseWheel(delta); err != nil {
		core.LogError(err.Error())
	}
}

func framebufferSizeCallback(w *glfw.Window, width, height int) {
	core.EventFire(core.EventContext{
		Type: core.EVENT_CODE_RESIZED,
		Data: &core.SystemEvent{
			WindowWidth:  uint32(width),
			WindowHeight: uint32(height),
		},
	})
}

func closeCallback(w *glfw.Window) {
	core.EventFire(core.EventContext{Type: core.EVENT_CODE_APPLICATION_QUIT})
}
