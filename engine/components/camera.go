package components

import (
	"github.com/go-gl/mathgl/mgl32"
	"github.com/spaghettifunk/isocubes/engine/entity"
	"github.com/spaghettifunk/isocubes/engine/math"
	"github.com/spaghettifunk/isocubes/engine/renderer"
)

var CameraComponentType = entity.RegisterComponentType("CameraComponent")

/** @brief The name of the default camera. */
const DEFAULT_CAMERA_NAME string = "camera"

type CameraConfig struct {
	Mode renderer.ProjectionMode
	// vertical field of view, in degrees
	FOV      float32
	Near     float32
	Far      float32
	IsoScale float32
}

func DefaultCameraConfig() CameraConfig {
	return CameraConfig{
		Mode:     renderer.PROJECTION_PERSPECTIVE,
		FOV:      45.0,
		Near:     0.1,
		Far:      1000.0,
		IsoScale: 40.0,
	}
}

/**
 * @brief Represents a camera that views the world from its owner's
 * transform. The owner's position and rotation are the eye; the view
 * matrix is the inverse of that transform.
 */
type CameraComponent struct {
	entity.BaseComponent
	Config CameraConfig
}

func NewCameraComponent(config CameraConfig) *CameraComponent {
	return &CameraComponent{Config: config}
}

func (c *CameraComponent) Type() entity.ComponentType {
	return CameraComponentType
}

func (c *CameraComponent) GetPosition() math.Vec3 {
	if owner := c.Owner(); owner != nil {
		return owner.Transform().Position
	}
	return math.NewVec3Zero()
}

func (c *CameraComponent) GetView() mgl32.Mat4 {
	owner := c.Owner()
	if owner == nil {
		return mgl32.Ident4()
	}
	return renderer.ViewMatrix(owner.Transform())
}

func (c *CameraComponent) direction(local math.Vec3) math.Vec3 {
	owner := c.Owner()
	if owner == nil {
		return local
	}
	return owner.Transform().Rotation.RotateVec3(local)
}

func (c *CameraComponent) Forward() math.Vec3 {
	return c.direction(math.NewVec3Forward())
}

func (c *CameraComponent) Backward() math.Vec3 {
	return c.direction(math.NewVec3Back())
}

func (c *CameraComponent) Left() math.Vec3 {
	return c.direction(math.NewVec3Left())
}

func (c *CameraComponent) Right() math.Vec3 {
	return c.direction(math.NewVec3Right())
}

// Camera resolves the renderer camera for a viewport of the given aspect.
// Isometric cameras ignore the perspective parameters.
func (c *CameraComponent) Camera(aspect float32) (renderer.Camera, error) {
	cam := renderer.Camera{
		Mode:       c.Config.Mode,
		View:       c.GetView(),
		Projection: mgl32.Ident4(),
		Near:       c.Config.Near,
		IsoScale:   c.Config.IsoScale,
	}
	if c.Config.Mode == renderer.PROJECTION_ISOMETRIC {
		return cam, nil
	}
	projection, err := renderer.Perspective(c.Config.FOV, aspect, c.Config.Near, c.Config.Far)
	if err != nil {
		return cam, err
	}
	cam.Projection = projection
	return cam, nil
}
