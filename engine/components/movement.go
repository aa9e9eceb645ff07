package components

import (
	"github.com/spaghettifunk/isocubes/engine/core"
	"github.com/spaghettifunk/isocubes/engine/entity"
	"github.com/spaghettifunk/isocubes/engine/math"
)

var MovementComponentType = entity.RegisterComponentType("MovementComponent")

type MovementConfig struct {
	// Speed is the distance moved per key press or repeat.
	Speed float32
	// MouseSensitivity is in degrees per pixel of cursor travel.
	MouseSensitivity float32
	// PitchLimit bounds the accumulated pitch, in degrees.
	PitchLimit float32
}

func DefaultMovementConfig() MovementConfig {
	return MovementConfig{
		Speed:            1.0,
		MouseSensitivity: 0.1,
		PitchLimit:       89.0,
	}
}

/**
 * @brief Free-fly controller for its owner's transform. Keys translate
 * along the owner's local axes, mouse deltas from the window center
 * accumulate yaw (about world Y) and pitch (about local X).
 */
type MovementComponent struct {
	entity.BaseComponent

	config MovementConfig
	// accumulated angles in radians
	yaw   float32
	pitch float32

	centerX float32
	centerY float32
}

func NewMovementComponent(config MovementConfig) *MovementComponent {
	return &MovementComponent{config: config}
}

func (m *MovementComponent) Type() entity.ComponentType {
	return MovementComponentType
}

func (m *MovementComponent) Config() MovementConfig {
	return m.config
}

func (m *MovementComponent) SetConfig(config MovementConfig) {
	m.config = config
	m.pitch = m.clampPitch(m.pitch)
}

// SetCenter sets the reference point mouse deltas are measured from.
// Call it on startup and on every resize.
func (m *MovementComponent) SetCenter(x, y float32) {
	m.centerX = x
	m.centerY = y
}

func (m *MovementComponent) Center() (float32, float32) {
	return m.centerX, m.centerY
}

// Yaw and Pitch return the accumulated angles in radians.
func (m *MovementComponent) Yaw() float32 {
	return m.yaw
}

func (m *MovementComponent) Pitch() float32 {
	return m.pitch
}

func localDirection(key core.KeyCode) (math.Vec3, bool) {
	switch key {
	case core.KEY_W:
		return math.NewVec3Forward(), true
	case core.KEY_S:
		return math.NewVec3Back(), true
	case core.KEY_A:
		return math.NewVec3Left(), true
	case core.KEY_D:
		return math.NewVec3Right(), true
	case core.KEY_SPACE:
		return math.NewVec3Up(), true
	case core.KEY_Z:
		return math.NewVec3Down(), true
	}
	return math.Vec3{}, false
}

// OnKey applies a key action to the owner's transform and reports whether
// the key was consumed. Releases are ignored.
func (m *MovementComponent) OnKey(key core.KeyCode, action core.KeyAction) bool {
	owner := m.Owner()
	if owner == nil || action == core.KEY_ACTION_RELEASE {
		return false
	}

	if key == core.KEY_R {
		if action != core.KEY_ACTION_PRESS {
			return false
		}
		m.Reset()
		return true
	}

	direction, ok := localDirection(key)
	if !ok {
		return false
	}
	transform := owner.Transform()
	world := transform.Rotation.RotateVec3(direction).MulScalar(m.config.Speed)
	transform.Translate(world)
	return true
}

// OnMouseMove turns the cursor offset from the center into yaw and pitch
// and rebuilds the owner's rotation. A cursor sitting on the center is a no-op.
func (m *MovementComponent) OnMouseMove(x, y float32) bool {
	owner := m.Owner()
	if owner == nil {
		return false
	}
	dx := x - m.centerX
	dy := y - m.centerY
	if dx == 0 && dy == 0 {
		return false
	}

	m.yaw = math.WrapAngle(m.yaw - math.DegToRad(dx*m.config.MouseSensitivity))
	m.pitch = m.clampPitch(m.pitch - math.DegToRad(dy*m.config.MouseSensitivity))

	owner.Transform().SetRotation(m.orientation())
	return true
}

// Reset restores the identity transform and clears the accumulated angles.
func (m *MovementComponent) Reset() {
	m.yaw = 0
	m.pitch = 0
	if owner := m.Owner(); owner != nil {
		owner.Transform().Reset()
	}
}

func (m *MovementComponent) orientation() math.Quaternion {
	yaw := math.NewQuatFromAxisAngle(math.NewVec3Up(), m.yaw, true)
	pitch := math.NewQuatFromAxisAngle(math.NewVec3Right(), m.pitch, true)
	return yaw.Mul(pitch).Normalize()
}

func (m *MovementComponent) clampPitch(pitch float32) float32 {
	limit := math.DegToRad(m.config.PitchLimit)
	return math.Clamp(pitch, -limit, limit)
}
