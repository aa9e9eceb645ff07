package renderer

import (
	"image"

	"github.com/spaghettifunk/isocubes/engine/geometry"
	"github.com/spaghettifunk/isocubes/engine/math"
)

// RendererBackend rasterizes screen-space polygons into a frame.
type RendererBackend interface {
	Initialize(appName string, width, height uint32) error
	Shutdown() error
	Resized(width, height uint32) error
	BeginFrame(clear geometry.Color) error
	// DrawPolygon fills a convex polygon given in pixel coordinates, blending over the frame.
	DrawPolygon(points []math.Vec2, colour geometry.Color)
	EndFrame() (*image.RGBA, error)
}
