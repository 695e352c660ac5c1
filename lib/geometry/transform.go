package geometry

import "github.com/go-gl/mathgl/mgl32"

var (
	offset = mgl32.Vec3{0.5, -0.5, 0.0}
	scale  = mgl32.Vec3{0.5, 0.5, 0.5}
)

// Transform spins the quad around the z axis by t radians, after it has been
// shrunk to half size and moved to the lower right. Matrices are applied
// right to left, so the scale happens first.
func Transform(t float32) mgl32.Mat4 {
	trans := mgl32.Ident4()
	trans = trans.Mul4(mgl32.HomogRotate3DZ(t))
	trans = trans.Mul4(mgl32.Translate3D(offset.X(), offset.Y(), offset.Z()))
	trans = trans.Mul4(mgl32.Scale3D(scale.X(), scale.Y(), scale.Z()))
	return trans
}
