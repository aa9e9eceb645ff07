package geometry

import (
	"testing"

	"github.com/spaghettifunk/isocubes/engine/math"
)

const tolerance = 1e-5

func TestDefaultCubeFaces(t *testing.T) {
	c := NewCube(math.TransformOfScaled(math.NewVec3Zero(), 1), DefaultColor)
	if got := len(c.Vertices()); got != 24 {
		t.Fatalf("vertices = %d, want 24", got)
	}

	quads := c.Quads()
	if len(quads) != FacesPerCube {
		t.Fatalf("quads = %d, want %d", len(quads), FacesPerCube)
	}

	// Each face is flat on one axis at +/-0.5 and the six faces cover every side.
	seen := map[math.Vec3]bool{}
	for i, q := range quads {
		n := q.Normal()
		seen[n] = true
		for _, vert := range q.Vertices {
			if !almost(vert.Position.Dot(n), 0.5) {
				t.Errorf("face %d vertex %+v not on plane with normal %+v", i, vert.Position, n)
			}
			for _, comp := range []float32{vert.Position.X, vert.Position.Y, vert.Position.Z} {
				if comp != 0.5 && comp != -0.5 {
					t.Errorf("face %d vertex %+v not a unit cube corner", i, vert.Position)
				}
			}
		}
	}
	want := []math.Vec3{
		math.NewVec3Back(), math.NewVec3Forward(),
		math.NewVec3Up(), math.NewVec3Down(),
		math.NewVec3Right(), math.NewVec3Left(),
	}
	for _, n := range want {
		if !seen[n] {
			t.Errorf("no face with outward normal %+v", n)
		}
	}
}

func TestCubeVerticesAreCopied(t *testing.T) {
	c := NewDefaultCube()
	c.Vertices()[0].Position = math.NewVec3(9, 9, 9)
	if UnitCube[0].Position == math.NewVec3(9, 9, 9) {
		t.Fatal("cube shares storage with UnitCube")
	}
}

func TestCubeCornersRepeatPerFace(t *testing.T) {
	count := map[math.Vec3]int{}
	for _, vert := range UnitCube {
		count[vert.Position]++
	}
	if len(count) != 8 {
		t.Fatalf("distinct corners = %d, want 8", len(count))
	}
	for p, n := range count {
		if n != 3 {
			t.Errorf("corner %+v used %d times, want 3", p, n)
		}
	}
}

func TestCubeQuadsApplyTransform(t *testing.T) {
	tr := math.TransformOfScaled(math.NewVec3(10, 20, 30), 4)
	c := NewCube(tr, Color{X: 1, Y: 1, Z: 1, W: 1})

	for _, q := range c.Quads() {
		for _, vert := range q.Vertices {
			d := vert.Position.Sub(math.NewVec3(10, 20, 30))
			for _, comp := range []float32{d.X, d.Y, d.Z} {
				if !almost(comp, 2) && !almost(comp, -2) {
					t.Errorf("vertex %+v not at +/-2 from centre", vert.Position)
				}
			}
		}
	}
}

func TestCubeRotation(t *testing.T) {
	c := NewDefaultCube()
	c.RotateY(90)

	front := c.Quads()[0].Normal()
	if !front.Compare(math.NewVec3Right(), tolerance) {
		t.Errorf("front normal after 90 deg yaw = %+v, want +x", front)
	}

	c.SetApplyRotation(false)
	front = c.Quads()[0].Normal()
	if !front.Compare(math.NewVec3Back(), tolerance) {
		t.Errorf("front normal with rotation disabled = %+v, want +z", front)
	}
}

func TestCubeColourTint(t *testing.T) {
	c := NewDefaultCube()
	c.SetColor(Color{X: 0.5, Y: 1, Z: 1, W: 1})
	got := c.Quads()[0].Vertices[0].Colour
	want := UnitCube[0].Colour.Mul(c.Color())
	if !got.Compare(want, tolerance) {
		t.Errorf("colour = %+v, want %+v", got, want)
	}
}

func TestEmitQuadsDropsPartialFace(t *testing.T) {
	tr := math.TransformOf(math.NewVec3Zero())
	quads := EmitQuads(UnitCube[:6], &tr, DefaultColor, true)
	if len(quads) != 1 {
		t.Errorf("quads = %d, want 1", len(quads))
	}
}

func TestQuadCenterAndColour(t *testing.T) {
	q := Quad{Vertices: [4]Vertex{UnitCube[0], UnitCube[1], UnitCube[2], UnitCube[3]}}
	if c := q.Center(); !c.Compare(math.NewVec3(0, 0, 0.5), tolerance) {
		t.Errorf("center = %+v", c)
	}
	if c := q.Colour(); !almost(c.X, 0.7) || !almost(c.W, 0.6) {
		t.Errorf("colour = %+v", c)
	}
}

func almost(a, b float32) bool {
	d := a - b
	return d <= tolerance && d >= -tolerance
}
