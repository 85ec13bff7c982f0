package common

import (
	"github.com/go-gl/mathgl/mgl32"
)

// BuildModelMatrix constructs a 4x4 model matrix from position, Euler rotation, and scale.
// The rotation order is Y * X * Z (yaw-pitch-roll). The result is column-major, as mgl32 stores it.
//
// Parameters:
//   - pos: translation in world space
//   - rot: rotation angles in radians around each axis
//   - scale: scale factors along each axis
//
// Returns:
//   - mgl32.Mat4: T * Ry * Rx * Rz * S
func BuildModelMatrix(pos, rot, scale mgl32.Vec3) mgl32.Mat4 {
	r := mgl32.HomogRotate3DY(rot.Y()).
		Mul4(mgl32.HomogRotate3DX(rot.X())).
		Mul4(mgl32.HomogRotate3DZ(rot.Z()))
	return mgl32.Translate3D(pos.X(), pos.Y(), pos.Z()).
		Mul4(r).
		Mul4(mgl32.Scale3D(scale.X(), scale.Y(), scale.Z()))
}

// Translation extracts the translation column of a model matrix.
//
// Parameters:
//   - m: a column-major affine transform
//
// Returns:
//   - mgl32.Vec3: the world-space origin of m
func Translation(m mgl32.Mat4) mgl32.Vec3 {
	return m.Col(3).Vec3()
}

// InverseTranspose returns the inverse-transpose of m, used to transform normals.
// A singular matrix yields the zero matrix, matching mgl32.Mat4.Inv.
//
// Parameters:
//   - m: the model matrix
//
// Returns:
//   - mgl32.Mat4: (m^-1)^T
func InverseTranspose(m mgl32.Mat4) mgl32.Mat4 {
	return m.Inv().Transpose()
}

// NormalMatrix returns the upper-left 3x3 block of the inverse-transpose of m.
//
// Parameters:
//   - m: the model or model-view matrix
//
// Returns:
//   - mgl32.Mat3: the normal matrix
func NormalMatrix(m mgl32.Mat4) mgl32.Mat3 {
	return InverseTranspose(m).Mat3()
}

// DistanceSq returns the squared Euclidean distance between a and b.
//
// Parameters:
//   - a, b: points in world space
//
// Returns:
//   - float32: |a - b|^2
func DistanceSq(a, b mgl32.Vec3) float32 {
	d := a.Sub(b)
	return d.Dot(d)
}
