package renderer

import (
	"errors"
	"image"
	"image/color"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/spaghettifunk/isocubes/engine/geometry"
	"github.com/spaghettifunk/isocubes/engine/math"
)

var clearColor = geometry.Color{X: 0.6, Y: 0.3, Z: 0.3, W: 1.0}

// recordingBackend remembers what was drawn instead of rasterizing it.
type recordingBackend struct {
	SoftwareBackend
	colours []geometry.Color
}

func (r *recordingBackend) DrawPolygon(points []math.Vec2, colour geometry.Color) {
	r.colours = append(r.colours, colour)
}

func TestPerspective(t *testing.T) {
	tests := []struct {
		name    string
		fov     float32
		aspect  float32
		near    float32
		far     float32
		wantErr bool
	}{
		{"default", 45, 1.5, 0.1, 1000, false},
		{"near equals far", 45, 1.5, 1, 1, true},
		{"zero aspect", 45, 0, 0.1, 1000, true},
		{"zero fov", 0, 1.5, 0.1, 1000, true},
		{"full turn", 360, 1.5, 0.1, 1000, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Perspective(tt.fov, tt.aspect, tt.near, tt.far)
			if tt.wantErr != (err != nil) {
				t.Fatalf("err = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil && !errors.Is(err, ErrInvalidProjection) {
				t.Errorf("err = %v, want ErrInvalidProjection", err)
			}
		})
	}
}

func TestParseProjectionMode(t *testing.T) {
	tests := []struct {
		in      string
		want    ProjectionMode
		wantErr bool
	}{
		{"", PROJECTION_PERSPECTIVE, false},
		{"perspective", PROJECTION_PERSPECTIVE, false},
		{"Isometric", PROJECTION_ISOMETRIC, false},
		{"orthographic", PROJECTION_PERSPECTIVE, true},
	}
	for _, tt := range tests {
		got, err := ParseProjectionMode(tt.in)
		if got != tt.want || tt.wantErr != (err != nil) {
			t.Errorf("ParseProjectionMode(%q) = %v, %v", tt.in, got, err)
		}
	}
}

func TestViewMatrix(t *testing.T) {
	tr := math.TransformOf(math.NewVec3(1, 2, 3))
	tr.SetRotation(math.YAxisRotation(90))
	view := ViewMatrix(&tr)

	// the eye maps to the origin
	if got := math.MulPoint(view, tr.Position); !got.Compare(math.NewVec3Zero(), 1e-5) {
		t.Errorf("eye in view space = %+v", got)
	}
	// what the camera faces lands on -Z
	ahead := tr.Position.Add(tr.Rotation.RotateVec3(math.NewVec3Forward()))
	if got := math.MulPoint(view, ahead); !got.Compare(math.NewVec3(0, 0, -1), 1e-5) {
		t.Errorf("point ahead in view space = %+v", got)
	}
}

func newTestRenderer(t *testing.T, backend RendererBackend) *Renderer {
	t.Helper()
	r := New(backend)
	if err := r.Initialize("test", 64, 64); err != nil {
		t.Fatalf("Initialize: %v", err)
	}
	t.Cleanup(func() { _ = r.Shutdown() })
	return r
}

func perspectiveCamera(t *testing.T, eye math.Vec3) Camera {
	t.Helper()
	tr := math.TransformOf(eye)
	projection, err := Perspective(45, 1, 0.1, 1000)
	if err != nil {
		t.Fatal(err)
	}
	return Camera{Mode: PROJECTION_PERSPECTIVE, View: ViewMatrix(&tr), Projection: projection, Near: 0.1}
}

func cubeQuads(position math.Vec3, scale float32) []geometry.Quad {
	return geometry.NewCube(math.TransformOfScaled(position, scale), geometry.DefaultColor).Quads()
}

func rgba(c geometry.Color) color.RGBA {
	return color.RGBAModel.Convert(toNRGBA(c)).(color.RGBA)
}

func isClear(frame *image.RGBA, x, y int) bool {
	return frame.RGBAAt(x, y) == rgba(clearColor)
}

func TestDrawFrameClears(t *testing.T) {
	r := newTestRenderer(t, NewSoftwareBackend())
	frame, err := r.DrawFrame(&RenderPacket{ClearColor: clearColor, Camera: perspectiveCamera(t, math.NewVec3Zero())})
	if err != nil {
		t.Fatal(err)
	}
	if frame.Bounds() != image.Rect(0, 0, 64, 64) {
		t.Fatalf("bounds = %v", frame.Bounds())
	}
	for _, p := range []image.Point{{0, 0}, {32, 32}, {63, 63}} {
		if !isClear(frame, p.X, p.Y) {
			t.Errorf("pixel %v = %v, want clear colour", p, frame.RGBAAt(p.X, p.Y))
		}
	}
}

func TestDrawFramePerspective(t *testing.T) {
	r := newTestRenderer(t, NewSoftwareBackend())
	frame, err := r.DrawFrame(&RenderPacket{
		ClearColor: clearColor,
		Camera:     perspectiveCamera(t, math.NewVec3(0, 0, 5)),
		Quads:      cubeQuads(math.NewVec3Zero(), 2),
	})
	if err != nil {
		t.Fatal(err)
	}
	if isClear(frame, 32, 32) {
		t.Error("cube not drawn at the center of the frame")
	}
	if !isClear(frame, 0, 0) {
		t.Error("cube covers the frame corner")
	}
}

func TestDrawFrameSkipsBehindCamera(t *testing.T) {
	backend := &recordingBackend{}
	r := newTestRenderer(t, backend)
	_, err := r.DrawFrame(&RenderPacket{
		ClearColor: clearColor,
		Camera:     perspectiveCamera(t, math.NewVec3Zero()),
		Quads:      cubeQuads(math.NewVec3(0, 0, 10), 2),
	})
	if err != nil {
		t.Fatal(err)
	}
	if len(backend.colours) != 0 {
		t.Errorf("drew %d quads behind the camera", len(backend.colours))
	}
}

func TestDrawFrameIsometric(t *testing.T) {
	r := newTestRenderer(t, NewSoftwareBackend())
	tr := math.TransformCreate()
	frame, err := r.DrawFrame(&RenderPacket{
		ClearColor: clearColor,
		Camera:     Camera{Mode: PROJECTION_ISOMETRIC, View: ViewMatrix(tr), Projection: mgl32.Ident4(), IsoScale: 10},
		Quads:      cubeQuads(math.NewVec3Zero(), 2),
	})
	if err != nil {
		t.Fatal(err)
	}
	if isClear(frame, 32, 32) {
		t.Error("cube not drawn at the center of the frame")
	}
	if !isClear(frame, 0, 0) {
		t.Error("cube covers the frame corner")
	}
}

func TestDrawFramePaintersOrder(t *testing.T) {
	backend := &recordingBackend{}
	r := newTestRenderer(t, backend)

	near := geometry.NewCube(math.TransformOfScaled(math.NewVec3(0, 0, -2), 0.5), geometry.Color{X: 1, Y: 1, Z: 1, W: 1})
	far := geometry.NewCube(math.TransformOfScaled(math.NewVec3(0, 0, -20), 0.5), geometry.Color{X: 1, Y: 1, Z: 1, W: 0.5})
	quads := append(near.Quads(), far.Quads()...)

	_, err := r.DrawFrame(&RenderPacket{Camera: perspectiveCamera(t, math.NewVec3Zero()), Quads: quads})
	if err != nil {
		t.Fatal(err)
	}
	if len(backend.colours) != 2*geometry.FacesPerCube {
		t.Fatalf("drew %d quads", len(backend.colours))
	}
	// the far cube is half as opaque; all of its faces must come first
	for i, c := range backend.colours {
		farFace := c.W < 0.4
		if farFace != (i < geometry.FacesPerCube) {
			t.Fatalf("quad %d (alpha %v) drawn out of depth order", i, c.W)
		}
	}
}

func TestDrawFrameCullBackFaces(t *testing.T) {
	backend := &recordingBackend{}
	r := newTestRenderer(t, backend)
	r.SetCullBackFaces(true)

	_, err := r.DrawFrame(&RenderPacket{
		Camera: perspectiveCamera(t, math.NewVec3(0, 0, 5)),
		Quads:  cubeQuads(math.NewVec3Zero(), 2),
	})
	if err != nil {
		t.Fatal(err)
	}
	// head-on, only the front face is visible
	if len(backend.colours) != 1 {
		t.Errorf("drew %d quads, want 1", len(backend.colours))
	}
}

func TestResize(t *testing.T) {
	r := newTestRenderer(t, NewSoftwareBackend())
	if err := r.OnResize(32, 16); err != nil {
		t.Fatal(err)
	}
	if got := r.Aspect(); got != 2 {
		t.Errorf("Aspect() = %v", got)
	}
	frame, err := r.DrawFrame(&RenderPacket{ClearColor: clearColor, Camera: perspectiveCamera(t, math.NewVec3Zero())})
	if err != nil {
		t.Fatal(err)
	}
	if frame.Bounds().Dx() != 32 || frame.Bounds().Dy() != 16 {
		t.Errorf("bounds after resize = %v", frame.Bounds())
	}

	uninitialized := NewSoftwareBackend()
	if err := uninitialized.Resized(1, 1); !errors.Is(err, ErrBackendNotInitialized) {
		t.Errorf("Resized before Initialize err = %v", err)
	}
}
