package math

import "github.com/go-gl/mathgl/mgl32"

// Vec2 represents a 2D vector
type Vec2 struct {
	X, Y float32
}

// Vec3 represents a 3D vector
type Vec3 struct {
	X, Y, Z float32
}

// Vec4 represents a 4D vector, also used for RGBA colours.
type Vec4 struct {
	X, Y, Z, W float32
}

/**
 * @brief A quaternion, used to represent rotational orientation.
 * Only unit quaternions are valid rotations; nothing enforces that at
 * construction, callers normalize after composing.
 */
type Quaternion struct {
	X, Y, Z, W float32
}

/**
 * @brief Represents the transform of an object in the world.
 * The local matrix is cached and rebuilt lazily whenever position,
 * rotation or scale change through the setters in transform.go.
 */
type Transform struct {
	/** @brief The position in the world. */
	Position Vec3
	/** @brief The rotation in the world. */
	Rotation Quaternion
	/** @brief The scale in the world. */
	Scale Vec3
	/**
	 * @brief Indicates if the position, rotation or scale have changed,
	 * indicating that the local matrix needs to be recalculated.
	 */
	IsDirty bool
	/** @brief The cached local transformation matrix. */
	Local mgl32.Mat4
}
