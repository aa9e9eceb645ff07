package renderer

import (
	"image"
	"sort"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/spaghettifunk/isocubes/engine/core"
	"github.com/spaghettifunk/isocubes/engine/geometry"
	"github.com/spaghettifunk/isocubes/engine/math"
)

// RenderPacket is the per-frame input to DrawFrame.
type RenderPacket struct {
	DeltaTime  float64
	ClearColor geometry.Color
	Camera     Camera
	Quads      []geometry.Quad
}

type Renderer struct {
	backend       RendererBackend
	width         uint32
	height        uint32
	cullBackFaces bool
}

func New(backend RendererBackend) *Renderer {
	return &Renderer{backend: backend}
}

func (r *Renderer) Initialize(appName string, width, height uint32) error {
	r.width, r.height = width, height
	return r.backend.Initialize(appName, width, height)
}

func (r *Renderer) Shutdown() error {
	return r.backend.Shutdown()
}

func (r *Renderer) OnResize(width, height uint32) error {
	r.width, r.height = width, height
	return r.backend.Resized(width, height)
}

func (r *Renderer) Size() (uint32, uint32) {
	return r.width, r.height
}

// Aspect is width over height, 0 for a collapsed window.
func (r *Renderer) Aspect() float32 {
	if r.height == 0 {
		return 0
	}
	return float32(r.width) / float32(r.height)
}

// SetCullBackFaces drops faces pointing away from the camera. Faces are
// translucent, so it is off by default.
func (r *Renderer) SetCullBackFaces(cull bool) {
	r.cullBackFaces = cull
}

type projectedQuad struct {
	points [geometry.VerticesPerFace]math.Vec2
	colour geometry.Color
	depth  float32
}

// DrawFrame clears the frame, projects every quad through the packet's
// camera and paints them back to front.
func (r *Renderer) DrawFrame(packet *RenderPacket) (*image.RGBA, error) {
	if err := r.backend.BeginFrame(packet.ClearColor); err != nil {
		core.LogError(err.Error())
		return nil, err
	}

	projected := make([]projectedQuad, 0, len(packet.Quads))
	for _, q := range packet.Quads {
		view := toViewSpace(packet.Camera.View, q)
		if r.cullBackFaces && !facesCamera(view) {
			continue
		}
		var (
			pq projectedQuad
			ok bool
		)
		switch packet.Camera.Mode {
		case PROJECTION_ISOMETRIC:
			pq, ok = r.projectIsometric(view, packet.Camera.IsoScale), true
		default:
			pq, ok = r.projectPerspective(view, packet.Camera)
		}
		if !ok {
			continue
		}
		pq.colour = q.Colour()
		projected = append(projected, pq)
	}

	// painter's order, furthest first
	sort.SliceStable(projected, func(i, j int) bool {
		return projected[i].depth > projected[j].depth
	})
	for i := range projected {
		r.backend.DrawPolygon(projected[i].points[:], projected[i].colour)
	}

	frame, err := r.backend.EndFrame()
	if err != nil {
		core.LogError("renderer end frame failed: %s", err)
		return nil, err
	}
	return frame, nil
}

func toViewSpace(view mgl32.Mat4, q geometry.Quad) geometry.Quad {
	var out geometry.Quad
	for i, v := range q.Vertices {
		out.Vertices[i] = geometry.Vertex{
			Position: math.MulPoint(view, v.Position),
			Colour:   v.Colour,
		}
	}
	return out
}

// facesCamera reports whether a view-space quad's front side is toward the
// eye at the origin.
func facesCamera(view geometry.Quad) bool {
	return view.Normal().Dot(view.Center()) < 0
}

func (r *Renderer) projectPerspective(view geometry.Quad, camera Camera) (projectedQuad, bool) {
	var pq projectedQuad
	w, h := float32(r.width), float32(r.height)
	for i, v := range view.Vertices {
		// the camera looks down -Z; anything in front of the near plane is skipped whole
		if -v.Position.Z < camera.Near {
			return pq, false
		}
		clip := camera.Projection.Mul4x1(mgl32.Vec4{v.Position.X, v.Position.Y, v.Position.Z, 1})
		ndcX, ndcY := clip[0]/clip[3], clip[1]/clip[3]
		pq.points[i] = math.NewVec2((ndcX+1)*0.5*w, (1-ndcY)*0.5*h)
		pq.depth += -v.Position.Z
	}
	pq.depth /= geometry.VerticesPerFace
	return pq, true
}

func (r *Renderer) projectIsometric(view geometry.Quad, scale float32) projectedQuad {
	var pq projectedQuad
	h := float32(r.height)
	center := math.NewVec2(float32(r.width)*0.5, h*0.5)

	points := make([]math.Vec3, 0, geometry.VerticesPerFace)
	for _, v := range view.Vertices {
		points = append(points, v.Position)
		pq.depth += math.IsometricDepth(v.Position)
	}
	pq.depth /= geometry.VerticesPerFace

	for i, p := range math.ToIsometricCentered(points, center, scale) {
		// screen Y grows downward
		pq.points[i] = math.NewVec2(p.X, h-p.Y)
	}
	return pq
}
