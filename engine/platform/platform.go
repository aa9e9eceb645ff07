package platform

import (
	"image"
)

// Platform owns the window (or its stand-in) and turns OS input into
// core.InputProcess* calls. All methods are called from the frame loop.
type Platform interface {
	Startup(applicationName string, x, y, width, height uint32) error
	Shutdown() error
	// PumpMessages dispatches pending input. It returns false once the
	// platform wants the application to quit.
	PumpMessages() bool
	Present(frame *image.RGBA) error
	GetFramebufferSize() (uint32, uint32)
	// GetAbsoluteTime returns seconds since Startup.
	GetAbsoluteTime() float64
	// CursorCenter is the middle of the window in cursor coordinates.
	CursorCenter() (float32, float32)
	// RecenterCursor puts the cursor back to CursorCenter and records that
	// position as the current mouse position.
	RecenterCursor()
	SetTitle(title string)
}
