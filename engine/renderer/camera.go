package renderer

import (
	"errors"
	"fmt"
	m "math"
	"strings"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/spaghettifunk/isocubes/engine/math"
)

var ErrInvalidProjection = errors.New("invalid projection parameters")

type ProjectionMode uint8

const (
	PROJECTION_PERSPECTIVE ProjectionMode = iota
	PROJECTION_ISOMETRIC
)

func (p ProjectionMode) String() string {
	switch p {
	case PROJECTION_ISOMETRIC:
		return "isometric"
	default:
		return "perspective"
	}
}

// ParseProjectionMode accepts "perspective" and "isometric". Empty means perspective.
func ParseProjectionMode(mode string) (ProjectionMode, error) {
	switch strings.ToLower(strings.TrimSpace(mode)) {
	case "", "perspective":
		return PROJECTION_PERSPECTIVE, nil
	case "isometric", "iso":
		return PROJECTION_ISOMETRIC, nil
	}
	return PROJECTION_PERSPECTIVE, fmt.Errorf("unknown projection %q: %w", mode, ErrInvalidProjection)
}

/**
 * @brief Builds a right-handed perspective matrix.
 * @param fovDeg Vertical field of view in degrees.
 * @param aspect Width over height.
 * @param near The near clipping plane distance.
 * @param far The far clipping plane distance.
 * @returns ErrInvalidProjection for a zero depth range, a field of view
 * whose sine is zero, or a zero aspect.
 */
func Perspective(fovDeg, aspect, near, far float32) (mgl32.Mat4, error) {
	if far == near {
		return mgl32.Ident4(), fmt.Errorf("near == far (%g): %w", near, ErrInvalidProjection)
	}
	if aspect == 0 {
		return mgl32.Ident4(), fmt.Errorf("zero aspect: %w", ErrInvalidProjection)
	}
	// the matrix divides by tan(fov/2)
	if s := m.Abs(m.Sin(float64(math.DegToRad(fovDeg)) / 2)); s < float64(math.K_FLOAT_EPSILON) {
		return mgl32.Ident4(), fmt.Errorf("fov %g degrees: %w", fovDeg, ErrInvalidProjection)
	}
	return mgl32.Perspective(mgl32.DegToRad(fovDeg), aspect, near, far), nil
}

// ViewMatrix is the inverse of a camera transform with unit scale:
// transpose(R) * Translate(-position).
func ViewMatrix(t *math.Transform) mgl32.Mat4 {
	q := mgl32.Quat{W: t.Rotation.W, V: mgl32.Vec3{t.Rotation.X, t.Rotation.Y, t.Rotation.Z}}
	if q.Len() == 0 {
		q = mgl32.QuatIdent()
	}
	rotation := q.Normalize().Mat4().Transpose()
	return rotation.Mul4(mgl32.Translate3D(-t.Position.X, -t.Position.Y, -t.Position.Z))
}

// Camera is everything the renderer needs to place quads on screen.
type Camera struct {
	Mode       ProjectionMode
	View       mgl32.Mat4
	Projection mgl32.Mat4
	Near       float32
	// IsoScale is pixels per world unit in isometric mode.
	IsoScale float32
}
