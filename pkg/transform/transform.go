package transform

import (
	"math"

	"github.com/df07/go-mis-pathtracer/pkg/core"
)

// Transformation is a rigid transform made of a rotation about the up (Y)
// axis followed by a translation. The rotation is kept as its sine and cosine
// so composition and inversion stay algebraic.
type Transformation struct {
	Offset core.Dir3
	Sin    float64
	Cos    float64
}

// Identity returns the transform that leaves everything unchanged
func Identity() Transformation {
	return Transformation{Cos: 1}
}

// Translate returns a pure translation
func Translate(offset core.Dir3) Transformation {
	return Transformation{Offset: offset, Cos: 1}
}

// Rotation returns a pure rotation about the up axis by the given angle in degrees
func Rotation(degrees float64) Transformation {
	sin, cos := math.Sincos(degrees * math.Pi / 180)
	return Transformation{Sin: sin, Cos: cos}
}

// Translate returns t followed by a translation
func (t Transformation) Translate(offset core.Dir3) Transformation {
	return t.Then(Translate(offset))
}

// RotateY returns t followed by a rotation about the up axis. The translation
// part rotates along with everything else.
func (t Transformation) RotateY(degrees float64) Transformation {
	return t.Then(Rotation(degrees))
}

// Then returns the transform equal to applying t and then next
func (t Transformation) Then(next Transformation) Transformation {
	return Transformation{
		Offset: next.ApplyDirection(t.Offset).Add(next.Offset),
		Sin:    t.Sin*next.Cos + t.Cos*next.Sin,
		Cos:    t.Cos*next.Cos - t.Sin*next.Sin,
	}
}

// IsIdentity reports whether t changes nothing
func (t Transformation) IsIdentity() bool {
	return t.Offset == (core.Vec3{}) && t.Sin == 0 && t.Cos == 1
}

// IsTranslation reports whether t carries no rotation
func (t Transformation) IsTranslation() bool {
	return t.Sin == 0 && t.Cos == 1
}

// SplitTranslation separates t into its translation and the remaining
// rotation, so that t == remainder.Then(Translate(offset)).
func (t Transformation) SplitTranslation() (core.Dir3, Transformation) {
	return t.Offset, Transformation{Sin: t.Sin, Cos: t.Cos}
}

func rotate(v core.Vec3, sin, cos float64) core.Vec3 {
	return core.NewVec3(cos*v.X+sin*v.Z, v.Y, -sin*v.X+cos*v.Z)
}

// ApplyPoint rotates then translates p
func (t Transformation) ApplyPoint(p core.Point3) core.Point3 {
	return rotate(p, t.Sin, t.Cos).Add(t.Offset)
}

// ApplyDirection rotates d; translation does not affect directions
func (t Transformation) ApplyDirection(d core.Dir3) core.Dir3 {
	return rotate(d, t.Sin, t.Cos)
}

// ApplyNormal rotates n. Rigid transforms keep normals perpendicular.
func (t Transformation) ApplyNormal(n core.Dir3) core.Dir3 {
	return rotate(n, t.Sin, t.Cos)
}

// ApplyDistance maps a distance; rigid transforms preserve lengths.
func (t Transformation) ApplyDistance(d float64) float64 {
	return d
}

// ReversePoint undoes ApplyPoint
func (t Transformation) ReversePoint(p core.Point3) core.Point3 {
	return rotate(p.Subtract(t.Offset), -t.Sin, t.Cos)
}

// ReverseDirection undoes ApplyDirection
func (t Transformation) ReverseDirection(d core.Dir3) core.Dir3 {
	return rotate(d, -t.Sin, t.Cos)
}

// ReverseNormal undoes ApplyNormal
func (t Transformation) ReverseNormal(n core.Dir3) core.Dir3 {
	return rotate(n, -t.Sin, t.Cos)
}

// ReverseRay moves a world-space ray into the transform's local space
func (t Transformation) ReverseRay(ray core.Ray) core.Ray {
	return core.NewRayAtTime(t.ReversePoint(ray.Origin), t.ReverseDirection(ray.Direction), ray.Time)
}

// ApplyInteraction moves a local-space hit into world space. The ray
// parameter and the face orientation survive a rigid transform unchanged.
func (t Transformation) ApplyInteraction(si core.SurfaceInteraction) core.SurfaceInteraction {
	si.Point = t.ApplyPoint(si.Point)
	si.Normal = t.ApplyNormal(si.Normal)
	return si
}

// ApplyAABB bounds the transformed corners of box
func (t Transformation) ApplyAABB(box core.AABB) core.AABB {
	if t.IsTranslation() {
		return box.Translate(t.Offset)
	}

	corners := box.Corners()
	for i := range corners {
		corners[i] = t.ApplyPoint(corners[i])
	}
	return core.NewAABBFromPoints(corners[:]...)
}
