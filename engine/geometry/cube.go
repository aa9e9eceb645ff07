package geometry

import (
	"github.com/spaghettifunk/isocubes/engine/math"
)

// Color is an RGBA colour with components in [0, 1].
type Color = math.Vec4

/**
 * @brief Represents a single vertex in 3D space with its own colour.
 */
type Vertex struct {
	/** @brief The position of the vertex */
	Position math.Vec3
	/** @brief The colour of the vertex. */
	Colour Color
}

// Quad is four consecutive vertices forming one face.
type Quad struct {
	Vertices [4]Vertex
}

const (
	VerticesPerFace = 4
	FacesPerCube    = 6
)

// DefaultColor tints cubes that were not given a colour.
var DefaultColor = Color{X: 1.0, Y: 0.0, Z: 0.0, W: 0.7}

func v(x, y, z, r, g, b, a float32) Vertex {
	return Vertex{Position: math.Vec3{X: x, Y: y, Z: z}, Colour: Color{X: r, Y: g, Z: b, W: a}}
}

// UnitCube is the 24-vertex cube centred on the origin with half-extent 0.5.
// Corners are repeated per face so every face carries its own gradient.
var UnitCube = [FacesPerCube * VerticesPerFace]Vertex{
	// Front face
	v(-0.5, -0.5, 0.5, 1.0, 1.0, 1.0, 0.6),
	v(0.5, -0.5, 0.5, 0.8, 1.0, 1.0, 0.6),
	v(0.5, 0.5, 0.5, 0.6, 1.0, 1.0, 0.6),
	v(-0.5, 0.5, 0.5, 0.4, 1.0, 1.0, 0.6),

	// Back face
	v(-0.5, -0.5, -0.5, 1.0, 1.0, 1.0, 0.6),
	v(-0.5, 0.5, -0.5, 1.0, 0.8, 1.0, 0.6),
	v(0.5, 0.5, -0.5, 1.0, 0.6, 1.0, 0.6),
	v(0.5, -0.5, -0.5, 1.0, 0.4, 1.0, 0.6),

	// Top face
	v(-0.5, 0.5, -0.5, 1.0, 1.0, 1.0, 0.6),
	v(-0.5, 0.5, 0.5, 1.0, 1.0, 0.8, 0.6),
	v(0.5, 0.5, 0.5, 1.0, 1.0, 0.6, 0.6),
	v(0.5, 0.5, -0.5, 1.0, 1.0, 0.4, 0.6),

	// Bottom face
	v(-0.5, -0.5, -0.5, 1.0, 1.0, 1.0, 0.6),
	v(0.5, -0.5, -0.5, 0.8, 0.8, 1.0, 0.6),
	v(0.5, -0.5, 0.5, 0.6, 0.6, 1.0, 0.6),
	v(-0.5, -0.5, 0.5, 0.4, 0.4, 1.0, 0.6),

	// Right face
	v(0.5, -0.5, -0.5, 1.0, 1.0, 1.0, 0.6),
	v(0.5, 0.5, -0.5, 1.0, 0.8, 0.8, 0.6),
	v(0.5, 0.5, 0.5, 1.0, 0.6, 0.6, 0.6),
	v(0.5, -0.5, 0.5, 1.0, 0.4, 0.4, 0.6),

	// Left face
	v(-0.5, -0.5, -0.5, 1.0, 1.0, 1.0, 0.6),
	v(-0.5, -0.5, 0.5, 0.8, 1.0, 0.8, 0.6),
	v(-0.5, 0.5, 0.5, 0.6, 1.0, 0.6, 0.6),
	v(-0.5, 0.5, -0.5, 0.4, 1.0, 0.4, 0.6),
}

// Cube is an instance of UnitCube placed by its own transform and tinted by its colour.
type Cube struct {
	vertices      []Vertex
	transform     math.Transform
	color         Color
	applyRotation bool
}

// NewCube copies UnitCube. Rotation is applied when emitting quads.
func NewCube(transform math.Transform, color Color) *Cube {
	vertices := make([]Vertex, len(UnitCube))
	copy(vertices, UnitCube[:])
	transform.IsDirty = true
	return &Cube{
		vertices:      vertices,
		transform:     transform,
		color:         color,
		applyRotation: true,
	}
}

// NewDefaultCube is a unit cube at the origin with DefaultColor.
func NewDefaultCube() *Cube {
	return NewCube(math.TransformOfScaled(math.NewVec3Zero(), 1), DefaultColor)
}

func (c *Cube) Vertices() []Vertex {
	return c.vertices
}

func (c *Cube) Transform() *math.Transform {
	return &c.transform
}

func (c *Cube) SetTransform(t math.Transform) {
	t.IsDirty = true
	c.transform = t
}

func (c *Cube) Color() Color {
	return c.color
}

func (c *Cube) SetColor(color Color) {
	c.color = color
}

func (c *Cube) ApplyRotation() bool {
	return c.applyRotation
}

// SetApplyRotation toggles the rotation step when emitting quads.
func (c *Cube) SetApplyRotation(apply bool) {
	c.applyRotation = apply
}

func (c *Cube) Rotate(rotation math.Quaternion) {
	c.transform.Rotate(rotation)
}

func (c *Cube) RotateX(deg float32) {
	c.Rotate(math.XAxisRotation(deg))
}

func (c *Cube) RotateY(deg float32) {
	c.Rotate(math.YAxisRotation(deg))
}

func (c *Cube) RotateZ(deg float32) {
	c.Rotate(math.ZAxisRotation(deg))
}

// Quads returns the world-space faces of the cube: every vertex goes through
// translate, rotate (if enabled) and scale, and its colour is tinted by the
// cube colour.
func (c *Cube) Quads() []Quad {
	return EmitQuads(c.vertices, &c.transform, c.color, c.applyRotation)
}

// EmitQuads transforms vertices in groups of four. A trailing partial group is dropped.
func EmitQuads(vertices []Vertex, transform *math.Transform, tint Color, applyRotation bool) []Quad {
	local := transform.GetLocalUnrotated()
	if applyRotation {
		local = transform.GetLocal()
	}

	quads := make([]Quad, 0, len(vertices)/VerticesPerFace)
	for i := 0; i+VerticesPerFace <= len(vertices); i += VerticesPerFace {
		var q Quad
		for j := 0; j < VerticesPerFace; j++ {
			src := vertices[i+j]
			q.Vertices[j] = Vertex{
				Position: math.MulPoint(local, src.Position),
				Colour:   src.Colour.Mul(tint),
			}
		}
		quads = append(quads, q)
	}
	return quads
}

// Normal returns the face normal from the quad winding.
// NOTE: This just generates a face normal, no smoothing across faces.
func (q Quad) Normal() math.Vec3 {
	edge1 := q.Vertices[1].Position.Sub(q.Vertices[0].Position)
	edge2 := q.Vertices[2].Position.Sub(q.Vertices[0].Position)
	return edge1.Cross(edge2).Normalize()
}

// Center is the average of the four corners.
func (q Quad) Center() math.Vec3 {
	c := math.NewVec3Zero()
	for _, vert := range q.Vertices {
		c = c.Add(vert.Position)
	}
	return c.MulScalar(1.0 / VerticesPerFace)
}

// Colour is the average vertex colour, used for flat shading.
func (q Quad) Colour() Color {
	var c Color
	for _, vert := range q.Vertices {
		c = Color{X: c.X + vert.Colour.X, Y: c.Y + vert.Colour.Y, Z: c.Z + vert.Colour.Z, W: c.W + vert.Colour.W}
	}
	return Color{X: c.X / VerticesPerFace, Y: c.Y / VerticesPerFace, Z: c.Z / VerticesPerFace, W: c.W / VerticesPerFace}
}
