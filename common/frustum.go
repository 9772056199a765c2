package common

import "github.com/chewxy/math32"

// Plane is a plane in 3D space, ax + by + cz + d = 0, where (a, b, c) is the normal and d the distance.
type Plane struct {
	Normal   [3]float32
	Distance float32
}

// Frustum holds the six clip planes of a view volume.
// Planes are oriented so that the positive half-space is inside.
type Frustum struct {
	Planes [6]Plane // Left, Right, Bottom, Top, Near, Far
}

// Frustum plane indices.
const (
	FrustumLeft   = 0
	FrustumRight  = 1
	FrustumBottom = 2
	FrustumTop    = 3
	FrustumNear   = 4
	FrustumFar    = 5
)

// ExtractFrustum extracts the clip planes from a combined view * projection matrix whose
// clip space has x, y in [-w, w] and z in [0, w]. Uses the Gribb/Hartmann method.
//
// Reference: https://www8.cs.umu.se/kurser/5DV051/HT12/lab/plane_extraction.pdf
//
// Parameters:
//   - viewProj: the view * projection matrix, without the viewport transform
//
// Returns:
//   - Frustum: the extracted frustum with normalized planes
func ExtractFrustum(viewProj Matrix) Frustum {
	// With row vectors clip = v * M, so each clip component is a dot product with a column.
	col := func(c int) Vector4 {
		return Vector4{viewProj[c], viewProj[4+c], viewProj[8+c], viewProj[12+c]}
	}
	cx, cy, cz, cw := col(0), col(1), col(2), col(3)

	var f Frustum
	f.Planes[FrustumLeft] = planeFrom(cw, cx, 1)
	f.Planes[FrustumRight] = planeFrom(cw, cx, -1)
	f.Planes[FrustumBottom] = planeFrom(cw, cy, 1)
	f.Planes[FrustumTop] = planeFrom(cw, cy, -1)
	// Depth is [0, w], so the near plane is z >= 0 alone.
	f.Planes[FrustumNear] = planeFrom(Vector4{}, cz, 1)
	f.Planes[FrustumFar] = planeFrom(cw, cz, -1)

	for i := range f.Planes {
		f.normalizePlane(i)
	}
	return f
}

func planeFrom(base, edge Vector4, sign float32) Plane {
	return Plane{
		Normal:   [3]float32{base[0] + sign*edge[0], base[1] + sign*edge[1], base[2] + sign*edge[2]},
		Distance: base[3] + sign*edge[3],
	}
}

// normalizePlane normalizes a frustum plane so that the normal has unit length.
func (f *Frustum) normalizePlane(index int) {
	p := &f.Planes[index]
	length := math32.Sqrt(p.Normal[0]*p.Normal[0] + p.Normal[1]*p.Normal[1] + p.Normal[2]*p.Normal[2])

	if length > 0 {
		invLen := 1.0 / length
		p.Normal[0] *= invLen
		p.Normal[1] *= invLen
		p.Normal[2] *= invLen
		p.Distance *= invLen
	}
}

// SignedDistance returns the distance from the plane to a point; positive is inside.
func (p Plane) SignedDistance(point Vector4) float32 {
	return p.Normal[0]*point[0] + p.Normal[1]*point[1] + p.Normal[2]*point[2] + p.Distance
}

// ContainsPoint reports whether a world-space point lies inside or on every plane.
//
// Parameters:
//   - point: the point to test, w is ignored
//
// Returns:
//   - bool: true if the point is inside the frustum
func (f Frustum) ContainsPoint(point Vector4) bool {
	return f.ContainsSphere(point, 0)
}

// ContainsSphere reports whether a sphere touches the frustum.
//
// Parameters:
//   - center: the sphere center, w is ignored
//   - radius: the sphere radius
//
// Returns:
//   - bool: false only if the sphere is fully outside one of the planes
func (f Frustum) ContainsSphere(center Vector4, radius float32) bool {
	for _, p := range f.Planes {
		if p.SignedDistance(center) < -radius {
			return false
		}
	}
	return true
}
