package renderer

import (
	"errors"
	"image"
	"image/color"

	"golang.org/x/image/draw"
	"golang.org/x/image/vector"

	"github.com/spaghettifunk/isocubes/engine/core"
	"github.com/spaghettifunk/isocubes/engine/geometry"
	"github.com/spaghettifunk/isocubes/engine/math"
)

var ErrBackendNotInitialized = errors.New("renderer backend not initialized")

// SoftwareBackend rasterizes into an in-memory RGBA frame with anti-aliased
// polygon fills. The frame is reused across frames and reallocated on resize.
type SoftwareBackend struct {
	frame      *image.RGBA
	rasterizer *vector.Rasterizer
}

func NewSoftwareBackend() *SoftwareBackend {
	return &SoftwareBackend{}
}

func (s *SoftwareBackend) Initialize(appName string, width, height uint32) error {
	s.allocate(width, height)
	core.LogInfo("Software renderer initialized for '%s' (%dx%d).", appName, width, height)
	return nil
}

func (s *SoftwareBackend) Shutdown() error {
	s.frame = nil
	s.rasterizer = nil
	return nil
}

func (s *SoftwareBackend) Resized(width, height uint32) error {
	if s.frame == nil {
		return ErrBackendNotInitialized
	}
	s.allocate(width, height)
	return nil
}

func (s *SoftwareBackend) allocate(width, height uint32) {
	// a minimized window reports 0x0; keep a 1x1 frame so drawing stays valid
	w, h := int(max(width, 1)), int(max(height, 1))
	s.frame = image.NewRGBA(image.Rect(0, 0, w, h))
	s.rasterizer = vector.NewRasterizer(w, h)
}

func (s *SoftwareBackend) BeginFrame(clear geometry.Color) error {
	if s.frame == nil {
		return ErrBackendNotInitialized
	}
	draw.Draw(s.frame, s.frame.Bounds(), image.NewUniform(toNRGBA(clear)), image.Point{}, draw.Src)
	return nil
}

func (s *SoftwareBackend) DrawPolygon(points []math.Vec2, colour geometry.Color) {
	if s.frame == nil || len(points) < 3 {
		return
	}
	b := s.frame.Bounds()
	s.rasterizer.Reset(b.Dx(), b.Dy())
	s.rasterizer.DrawOp = draw.Over
	s.rasterizer.MoveTo(points[0].X, points[0].Y)
	for _, p := range points[1:] {
		s.rasterizer.LineTo(p.X, p.Y)
	}
	s.rasterizer.ClosePath()
	s.rasterizer.Draw(s.frame, b, image.NewUniform(toNRGBA(colour)), image.Point{})
}

func (s *SoftwareBackend) EndFrame() (*image.RGBA, error) {
	if s.frame == nil {
		return nil, ErrBackendNotInitialized
	}
	return s.frame, nil
}

func toNRGBA(c geometry.Color) color.NRGBA {
	return color.NRGBA{
		R: channel(c.X),
		G: channel(c.Y),
		B: channel(c.Z),
		A: channel(c.W),
	}
}

func channel(v float32) uint8 {
	return uint8(math.Clamp(v, 0, 1)*255 + 0.5)
}
