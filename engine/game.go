package engine

import (
	"github.com/spaghettifunk/isocubes/engine/assets"
	"github.com/spaghettifunk/isocubes/engine/renderer"
)

type Game struct {
	ApplicationConfig *ApplicationConfig
	State             interface{}
	FnInitialize      Initialize
	FnUpdate          Update
	FnRender          Render
	FnOnResize        OnResize
	FnOnSceneReload   OnSceneReload
	FnShutdown        Shutdown

	// FnStatus is optional; its text is shown in the window title.
	FnStatus Status
}

type Initialize func() error
type Update func(deltaTime float64) error

// Render fills the packet with the camera and the quads to draw this frame.
type Render func(packet *renderer.RenderPacket, deltaTime float64) error
type OnResize func(width uint32, height uint32) error
type OnSceneReload func(scene *assets.Scene) error
type Shutdown func() error

// Status returns a short line describing the game state.
type Status func() string
