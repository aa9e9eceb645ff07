package platform

import (
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/spaghettifunk/isocubes/engine/assets"
	"github.com/spaghettifunk/isocubes/engine/core"
)

func withSubsystems(t *testing.T) {
	t.Helper()
	if !core.EventSystemInitialize() {
		t.Fatal("event system already initialized")
	}
	if err := core.InputInitialize(); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() {
		_ = core.InputShutdown()
		_ = core.EventSystemShutdown()
	})
}

func TestScriptFromScene(t *testing.T) {
	script := ScriptFromScene([]assets.ScriptEvent{
		{Frame: 2, Key: "w", Action: "repeat"},
		{Frame: 1, Mouse: []float32{10, 20}},
		{Frame: 3, Resize: []uint32{640, 480}},
		{Frame: 4, Key: "f13"},
	})
	if len(script) != 3 {
		t.Fatalf("len(script) = %d, want 3", len(script))
	}
	if s := script[0]; s.Kind != InputKey || s.Key != core.KEY_W || s.Action != core.KEY_ACTION_REPEAT || s.Frame != 2 {
		t.Errorf("script[0] = %+v", s)
	}
	if s := script[1]; s.Kind != InputMouseMove || s.X != 10 || s.Y != 20 {
		t.Errorf("script[1] = %+v", s)
	}
	if s := script[2]; s.Kind != InputResize || s.Width != 640 || s.Height != 480 {
		t.Errorf("script[2] = %+v", s)
	}
}

func TestHeadlessReplaysScript(t *testing.T) {
	withSubsystems(t)

	var got []core.EventCode
	record := func(ctx core.EventContext) bool {
		got = append(got, ctx.Type)
		return false
	}
	for _, code := range []core.EventCode{core.EVENT_CODE_KEY_PRESSED, core.EVENT_CODE_MOUSE_MOVED, core.EVENT_CODE_RESIZED} {
		core.EventRegister(code, t, record)
	}

	p := NewHeadlessPlatform(HeadlessConfig{
		Frames: 3,
		Script: []ScriptedInput{
			{Frame: 2, Kind: InputResize, Width: 320, Height: 200},
			{Frame: 0, Kind: InputKey, Key: core.KEY_W, Action: core.KEY_ACTION_PRESS},
			{Frame: 1, Kind: InputMouseMove, X: 5, Y: 6},
		},
	})
	if err := p.Startup("test", 0, 0, 64, 48); err != nil {
		t.Fatal(err)
	}

	want := [][]core.EventCode{
		{core.EVENT_CODE_KEY_PRESSED},
		{core.EVENT_CODE_KEY_PRESSED, core.EVENT_CODE_MOUSE_MOVED},
		{core.EVENT_CODE_KEY_PRESSED, core.EVENT_CODE_MOUSE_MOVED, core.EVENT_CODE_RESIZED},
	}
	for frame, w := range want {
		if !p.PumpMessages() {
			t.Fatalf("PumpMessages() = false at frame %d", frame)
		}
		if len(got) != len(w) {
			t.Fatalf("frame %d: events %v, want %v", frame, got, w)
		}
	}
	if p.PumpMessages() {
		t.Error("PumpMessages() = true past the frame limit")
	}
	if p.FrameCount() != 3 {
		t.Errorf("FrameCount() = %d", p.FrameCount())
	}
	if !core.InputIsKeyDown(core.KEY_W) {
		t.Error("W not down after scripted press")
	}
	if w, h := p.GetFramebufferSize(); w != 320 || h != 200 {
		t.Errorf("size after resize = %dx%d", w, h)
	}

	p.RecenterCursor()
	if x, y := core.InputGetMousePosition(); x != 160 || y != 100 {
		t.Errorf("mouse after recenter = %v, %v", x, y)
	}
}

func TestHeadlessUnlimitedFrames(t *testing.T) {
	withSubsystems(t)
	p := NewHeadlessPlatform(HeadlessConfig{})
	_ = p.Startup("test", 0, 0, 8, 8)
	for i := 0; i < 100; i++ {
		if !p.PumpMessages() {
			t.Fatalf("PumpMessages() = false at frame %d", i)
		}
	}
}

func TestHeadlessSnapshot(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out", "frame.png")
	p := NewHeadlessPlatform(HeadlessConfig{Snapshot: path})
	_ = p.Startup("test", 0, 0, 4, 3)

	// nothing presented yet; no file
	if err := p.Shutdown(); err != nil {
		t.Fatal(err)
	}
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Fatalf("snapshot written without a frame: %v", err)
	}

	frame := image.NewRGBA(image.Rect(0, 0, 4, 3))
	frame.SetRGBA(1, 1, color.RGBA{R: 255, A: 255})
	if err := p.Present(frame); err != nil {
		t.Fatal(err)
	}
	if err := p.Shutdown(); err != nil {
		t.Fatalf("Shutdown: %v", err)
	}

	f, err := os.Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	img, err := png.Decode(f)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if img.Bounds() != frame.Bounds() {
		t.Errorf("bounds = %v", img.Bounds())
	}
	if r, _, _, _ := img.At(1, 1).RGBA(); r != 0xffff {
		t.Errorf("pixel (1,1) red = %#x", r)
	}
}

func TestHeadlessContentScale(t *testing.T) {
	withSubsystems(t)

	var resized *core.SystemEvent
	core.EventRegister(core.EVENT_CODE_RESIZED, t, func(ctx core.EventContext) bool {
		resized = ctx.Data.(*core.SystemEvent)
		return false
	})

	p := NewHeadlessPlatform(HeadlessConfig{
		ContentScale: 2,
		Script:       []ScriptedInput{{Frame: 0, Kind: InputResize, Width: 100, Height: 50}},
	})
	if err := p.Startup("test", 0, 0, 64, 48); err != nil {
		t.Fatal(err)
	}
	if w, h := p.GetFramebufferSize(); w != 128 || h != 96 {
		t.Errorf("framebuffer = %dx%d, want 128x96", w, h)
	}
	p.PumpMessages()

	if resized == nil || resized.WindowWidth != 200 || resized.WindowHeight != 100 {
		t.Fatalf("resize event = %+v, want framebuffer 200x100", resized)
	}
	if x, y := p.CursorCenter(); x != 50 || y != 25 {
		t.Errorf("cursor center = %v,%v, want 50,25", x, y)
	}
	p.RecenterCursor()
	if x, y := core.InputGetMousePosition(); x != 50 || y != 25 {
		t.Errorf("mouse after recenter = %v,%v", x, y)
	}
}
