package platform

import (
	"fmt"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/spaghettifunk/isocubes/engine/assets"
	"github.com/spaghettifunk/isocubes/engine/containers"
	"github.com/spaghettifunk/isocubes/engine/core"
)

type InputKind uint8

const (
	InputKey InputKind = iota
	InputMouseMove
	InputResize
)

// ScriptedInput is one input the headless platform injects before Frame.
type ScriptedInput struct {
	Frame  uint64
	Kind   InputKind
	Key    core.KeyCode
	Action core.KeyAction
	X, Y   float32
	Width  uint32
	Height uint32
}

// ScriptFromScene converts validated scene script entries.
func ScriptFromScene(events []assets.ScriptEvent) []ScriptedInput {
	script := make([]ScriptedInput, 0, len(events))
	for _, e := range events {
		in := ScriptedInput{Frame: e.Frame}
		switch {
		case e.Mouse != nil:
			in.Kind = InputMouseMove
			in.X, in.Y = e.Mouse[0], e.Mouse[1]
		case e.Resize != nil:
			in.Kind = InputResize
			in.Width, in.Height = e.Resize[0], e.Resize[1]
		default:
			key, action, ok := e.KeyEvent()
			if !ok {
				core.LogWarn("skipping unresolvable script key '%s'", e.Key)
				continue
			}
			in.Kind = InputKey
			in.Key, in.Action = key, action
		}
		script = append(script, in)
	}
	return script
}

type HeadlessConfig struct {
	// Frames stops the loop after that many frames. 0 runs until quit.
	Frames uint64
	// Snapshot is a PNG path written with the last presented frame on shutdown.
	Snapshot string
	Script   []ScriptedInput
	// ContentScale is framebuffer pixels per window unit, as on a HiDPI
	// display. Script sizes are window units. 0 means 1.
	ContentScale float32
}

// HeadlessPlatform runs without a window. Input comes from a script
// replayed frame by frame.
type HeadlessPlatform struct {
	config    HeadlessConfig
	queue     *containers.RingQueue[ScriptedInput]
	frame     uint64
	width     uint32
	height    uint32
	lastFrame *image.RGBA
	startTime time.Time
	title     string
}

func NewHeadlessPlatform(config HeadlessConfig) *HeadlessPlatform {
	if config.ContentScale <= 0 {
		config.ContentScale = 1
	}
	script := append([]ScriptedInput(nil), config.Script...)
	sort.SliceStable(script, func(i, j int) bool { return script[i].Frame < script[j].Frame })

	queue := containers.NewRingQueue[ScriptedInput](len(script))
	for _, in := range script {
		// capacity matches the script length
		_ = queue.Enqueue(in)
	}
	return &HeadlessPlatform{config: config, queue: queue}
}

func (p *HeadlessPlatform) Startup(applicationName string, x, y, width, height uint32) error {
	p.width, p.height = width, height
	p.title = applicationName
	p.startTime = time.Now()
	core.LogInfo("Headless platform started (%dx%d, frames=%d).", width, height, p.config.Frames)
	return nil
}

func (p *HeadlessPlatform) Shutdown() error {
	if p.config.Snapshot == "" || p.lastFrame == nil {
		return nil
	}
	if err := WritePNG(p.config.Snapshot, p.lastFrame); err != nil {
		return err
	}
	core.LogInfo("Wrote snapshot to '%s'.", p.config.Snapshot)
	return nil
}

func (p *HeadlessPlatform) PumpMessages() bool {
	if p.config.Frames > 0 && p.frame >= p.config.Frames {
		return false
	}
	for {
		next, err := p.queue.Peek()
		if err != nil || next.Frame > p.frame {
			break
		}
		_, _ = p.queue.Dequeue()
		p.dispatch(next)
	}
	p.frame++
	return true
}

func (p *HeadlessPlatform) dispatch(in ScriptedInput) {
	var err error
	switch in.Kind {
	case InputKey:
		err = core.InputProcessKey(in.Key, in.Action)
	case InputMouseMove:
		err = core.InputProcessMouseMove(in.X, in.Y)
	case InputResize:
		p.width, p.height = in.Width, in.Height
		w, h := p.GetFramebufferSize()
		core.EventFire(core.EventContext{
			Type: core.EVENT_CODE_RESIZED,
			Data: &core.SystemEvent{WindowWidth: w, WindowHeight: h},
		})
	}
	if err != nil {
		core.LogWarn("scripted input at frame %d: %s", in.Frame, err)
	}
}

func (p *HeadlessPlatform) Present(frame *image.RGBA) error {
	p.lastFrame = frame
	return nil
}

// LastFrame returns the most recently presented frame.
func (p *HeadlessPlatform) LastFrame() *image.RGBA {
	return p.lastFrame
}

// FrameCount is the number of frames pumped so far.
func (p *HeadlessPlatform) FrameCount() uint64 {
	return p.frame
}

func (p *HeadlessPlatform) GetFramebufferSize() (uint32, uint32) {
	scale := p.config.ContentScale
	return uint32(float32(p.width) * scale), uint32(float32(p.height) * scale)
}

func (p *HeadlessPlatform) GetAbsoluteTime() float64 {
	return time.Since(p.startTime).Seconds()
}

func (p *HeadlessPlatform) CursorCenter() (float32, float32) {
	return float32(p.width) / 2, float32(p.height) / 2
}

func (p *HeadlessPlatform) RecenterCursor() {
	_ = core.InputProcessMouseMove(p.CursorCenter())
}

func (p *HeadlessPlatform) SetTitle(title string) {
	p.title = title
}

func (p *HeadlessPlatform) Title() string {
	return p.title
}

// WritePNG encodes img to path, creating parent directories.
func WritePNG(path string, img image.Image) error {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := png.Encode(f, img); err != nil {
		f.Close()
		return fmt.Errorf("encode %s: %w", path, err)
	}
	return f.Close()
}
