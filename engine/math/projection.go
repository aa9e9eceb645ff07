package math

// Isometric view angles. The Y rotation swings the cube corner toward the
// viewer, the X tilt of arctan(1/sqrt(2)) (~35.264 degrees) puts the
// three visible axes at 120 degrees to each other on screen.
var (
	K_ISO_YAW   float32 = K_QUARTER_PI
	K_ISO_PITCH float32 = katan(K_SQRT_ONE_OVER_TWO)
)

type isoBasis struct {
	cosYaw, sinYaw     float32
	cosPitch, sinPitch float32
}

func newIsoBasis() isoBasis {
	return isoBasis{
		cosYaw:   kcos(K_ISO_YAW),
		sinYaw:   ksin(K_ISO_YAW),
		cosPitch: kcos(K_ISO_PITCH),
		sinPitch: ksin(K_ISO_PITCH),
	}
}

func (b isoBasis) project(p Vec3, scale float32) Vec2 {
	// Rotate around Y.
	x1 := p.X*b.cosYaw - p.Z*b.sinYaw
	z1 := p.X*b.sinYaw + p.Z*b.cosYaw

	// Rotate around X; the resulting z is the depth and is dropped.
	y2 := p.Y*b.cosPitch - z1*b.sinPitch

	return Vec2{x1 * scale, y2 * scale}
}

// IsometricDepth returns the view-space depth the projection drops, larger
// values being further from the viewer. Useful for painter's ordering.
func IsometricDepth(p Vec3) float32 {
	b := newIsoBasis()
	z1 := p.X*b.sinYaw + p.Z*b.cosYaw
	return -(p.Y*b.sinPitch + z1*b.cosPitch)
}

// ToIsometric maps each 3D point to the 2D isometric plane, scaled by scale.
// The output has the same length and order as points.
func ToIsometric(points []Vec3, scale float32) []Vec2 {
	b := newIsoBasis()
	projected := make([]Vec2, len(points))
	for i, p := range points {
		projected[i] = b.project(p, scale)
	}
	return projected
}

// ToIsometricCentered is ToIsometric followed by a translation by center.
func ToIsometricCentered(points []Vec3, center Vec2, scale float32) []Vec2 {
	projected := ToIsometric(points, scale)
	for i := range projected {
		projected[i] = projected[i].Add(center)
	}
	return projected
}

// IsometricGrid lays out (width+1)*(height+1) points on the XZ plane, row by row.
func IsometricGrid(width, height int, cellSize float32) []Vec3 {
	if width < 0 || height < 0 {
		return nil
	}
	points := make([]Vec3, 0, (width+1)*(height+1))
	for y := 0; y <= height; y++ {
		for x := 0; x <= width; x++ {
			points = append(points, Vec3{float32(x) * cellSize, 0, float32(y) * cellSize})
		}
	}
	return points
}
