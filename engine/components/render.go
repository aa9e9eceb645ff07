package components

import (
	"github.com/spaghettifunk/isocubes/engine/entity"
	"github.com/spaghettifunk/isocubes/engine/geometry"
	"github.com/spaghettifunk/isocubes/engine/math"
)

var RenderComponentType = entity.RegisterComponentType("RenderComponent")

// RenderComponent draws a cube placed by its owner's transform.
type RenderComponent struct {
	entity.BaseComponent
	cube *geometry.Cube
}

func NewRenderComponent(color geometry.Color, applyRotation bool) *RenderComponent {
	cube := geometry.NewCube(math.TransformOf(math.NewVec3Zero()), color)
	cube.SetApplyRotation(applyRotation)
	return &RenderComponent{cube: cube}
}

func (r *RenderComponent) Type() entity.ComponentType {
	return RenderComponentType
}

func (r *RenderComponent) Cube() *geometry.Cube {
	return r.cube
}

func (r *RenderComponent) SetColor(color geometry.Color) {
	r.cube.SetColor(color)
}

// Quads emits the cube's world-space faces through the owner's transform,
// reusing its cached local matrix. Without an owner the cube's own
// transform places it.
func (r *RenderComponent) Quads() []geometry.Quad {
	owner := r.Owner()
	if owner == nil {
		return r.cube.Quads()
	}
	return geometry.EmitQuads(r.cube.Vertices(), owner.Transform(), r.cube.Color(), r.cube.ApplyRotation())
}
