package components

import (
	"github.com/spaghettifunk/isocubes/engine/entity"
	"github.com/spaghettifunk/isocubes/engine/math"
)

var SpinComponentType = entity.RegisterComponentType("SpinComponent")

// SpinComponent rotates its owner at a constant rate every frame.
type SpinComponent struct {
	entity.BaseComponent
	// DegreesPerSecond holds the spin rate about X, Y and Z.
	DegreesPerSecond math.Vec3
}

func NewSpinComponent(degreesPerSecond math.Vec3) *SpinComponent {
	return &SpinComponent{DegreesPerSecond: degreesPerSecond}
}

func (s *SpinComponent) Type() entity.ComponentType {
	return SpinComponentType
}

func (s *SpinComponent) Update(deltaTime float64) error {
	owner := s.Owner()
	if owner == nil {
		return nil
	}
	step := s.DegreesPerSecond.MulScalar(float32(deltaTime))
	if step.X == 0 && step.Y == 0 && step.Z == 0 {
		return nil
	}
	q := math.XAxisRotation(step.X).
		Mul(math.YAxisRotation(step.Y)).
		Mul(math.ZAxisRotation(step.Z))
	owner.Transform().Rotate(q)
	return nil
}
