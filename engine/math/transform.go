package math

import "github.com/go-gl/mathgl/mgl32"

// TransformCreate returns a transform at the origin with identity rotation and unit scale.
func TransformCreate() *Transform {
	return TransformFromPositionRotationScale(NewVec3Zero(), NewQuatIdentity(), NewVec3One())
}

// TransformOf places a transform at position with identity rotation and unit scale.
func TransformOf(position Vec3) Transform {
	return *TransformFromPositionRotationScale(position, NewQuatIdentity(), NewVec3One())
}

// TransformOfScaled places a transform at position with identity rotation and a
// uniform scale. Zero and negative scales are accepted as-is.
func TransformOfScaled(position Vec3, scale float32) Transform {
	return *TransformFromPositionRotationScale(position, NewQuatIdentity(), NewVec3Uniform(scale))
}

func TransformFromPositionRotationScale(position Vec3, rotation Quaternion, scale Vec3) *Transform {
	t := &Transform{}
	t.SetPositionRotationScale(position, rotation, scale)
	t.Local = mgl32.Ident4()
	return t
}

func (t *Transform) SetPosition(position Vec3) {
	t.Position = position
	t.IsDirty = true
}

func (t *Transform) Translate(translation Vec3) {
	t.Position = t.Position.Add(translation)
	t.IsDirty = true
}

func (t *Transform) SetRotation(rotation Quaternion) {
	t.Rotation = rotation
	t.IsDirty = true
}

// Rotate composes rotation onto the current one (current * rotation) and
// normalizes to keep accumulated error from drifting off unit length.
func (t *Transform) Rotate(rotation Quaternion) {
	t.Rotation = t.Rotation.Mul(rotation).Normalize()
	t.IsDirty = true
}

func (t *Transform) SetScale(scale Vec3) {
	t.Scale = scale
	t.IsDirty = true
}

func (t *Transform) SetPositionRotationScale(position Vec3, rotation Quaternion, scale Vec3) {
	t.Position = position
	t.Rotation = rotation
	t.Scale = scale
	t.IsDirty = true
}

// Reset restores the identity transform.
func (t *Transform) Reset() {
	t.SetPositionRotationScale(NewVec3Zero(), NewQuatIdentity(), NewVec3One())
}

/**
 * @brief Returns the local matrix T * R * S, rebuilding it if the
 * transform changed since the last call. The rotation goes through an
 * axis-angle conversion.
 */
func (t *Transform) GetLocal() mgl32.Mat4 {
	if t == nil {
		return mgl32.Ident4()
	}
	if t.IsDirty {
		t.Local = localMatrix(t.Position, t.Rotation, t.Scale, true)
		t.IsDirty = false
	}
	return t.Local
}

// GetLocalUnrotated returns T * S, ignoring the rotation.
func (t *Transform) GetLocalUnrotated() mgl32.Mat4 {
	if t == nil {
		return mgl32.Ident4()
	}
	return localMatrix(t.Position, t.Rotation, t.Scale, false)
}

// TransformPoint maps a local-space point into world space.
func (t *Transform) TransformPoint(p Vec3) Vec3 {
	return MulPoint(t.GetLocal(), p)
}

// MulPoint multiplies a point (w = 1) by the matrix.
func MulPoint(mat mgl32.Mat4, p Vec3) Vec3 {
	r := mat.Mul4x1(mgl32.Vec4{p.X, p.Y, p.Z, 1})
	return Vec3{r[0], r[1], r[2]}
}

func localMatrix(position Vec3, rotation Quaternion, scale Vec3, rotate bool) mgl32.Mat4 {
	tr := mgl32.Translate3D(position.X, position.Y, position.Z)
	if rotate {
		axis, angle := rotation.ToAxisAngle()
		tr = tr.Mul4(mgl32.HomogRotate3D(angle, mgl32.Vec3{axis.X, axis.Y, axis.Z}))
	}
	return tr.Mul4(mgl32.Scale3D(scale.X, scale.Y, scale.Z))
}
