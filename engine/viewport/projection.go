package viewport

import (
	"github.com/Carmen-Shannon/oxy-transform/common"
	"github.com/chewxy/math32"
)

// ProjectionModel produces the projection matrix that is composed with the viewport matrix.
type ProjectionModel interface {
	// ProjectionMatrix returns the view-to-clip transform.
	//
	// Returns:
	//   - common.Matrix: the projection matrix
	ProjectionMatrix() common.Matrix
}

// IdentityProjection passes view space through unchanged. It is used when vertices are already
// expressed in normalized device coordinates.
type IdentityProjection struct{}

// PerspectiveProjection is a left-handed perspective projection with depth mapped to [0, 1].
type PerspectiveProjection struct {
	// FovY is the vertical field of view in radians.
	FovY float32
	// Aspect is width / height.
	Aspect float32
	ZNear  float32
	ZFar   float32
}

// OrthographicProjection is a left-handed off-center orthographic projection with depth mapped to [0, 1].
type OrthographicProjection struct {
	Left   float32
	Right  float32
	Top    float32
	Bottom float32
	ZNear  float32
	ZFar   float32
}

var (
	_ ProjectionModel = IdentityProjection{}
	_ ProjectionModel = PerspectiveProjection{}
	_ ProjectionModel = OrthographicProjection{}
)

func (IdentityProjection) ProjectionMatrix() common.Matrix {
	return common.Identity()
}

func (p PerspectiveProjection) ProjectionMatrix() common.Matrix {
	yScale := 1.0 / math32.Tan(p.FovY*0.5)
	xScale := yScale / p.Aspect
	depth := p.ZFar / (p.ZFar - p.ZNear)

	var m common.Matrix
	m[common.M11] = xScale
	m[common.M22] = yScale
	m[common.M33] = depth
	m[common.M34] = 1.0
	m[common.M43] = -p.ZNear * depth
	return m
}

func (p OrthographicProjection) ProjectionMatrix() common.Matrix {
	m := common.Identity()
	m[common.M11] = 2.0 / (p.Right - p.Left)
	m[common.M22] = 2.0 / (p.Top - p.Bottom)
	m[common.M33] = 1.0 / (p.ZFar - p.ZNear)
	m[common.M41] = (p.Left + p.Right) / (p.Left - p.Right)
	m[common.M42] = (p.Top + p.Bottom) / (p.Bottom - p.Top)
	m[common.M43] = p.ZNear / (p.ZNear - p.ZFar)
	return m
}
