package camera

import (
	"errors"
	"fmt"

	"github.com/Carmen-Shannon/oxy-transform/common"
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

// ErrDegenerateOrientation is returned by ValidateOrientation when a look direction and up vector
// cannot form an orientation frame.
var ErrDegenerateOrientation = errors.New("camera: degenerate orientation")

// orientationEpsilon is the smallest accepted length for the look direction and for up × direction.
const orientationEpsilon = 1e-6

// frame is the implementation of Frame. It is owned by a single rendering context and is not
// safe for concurrent use.
type frame struct {
	position common.Vector4
	pose     Pose

	xAxis common.Vector4
	yAxis common.Vector4
	zAxis common.Vector4

	viewMatrix common.Matrix
}

// Frame holds a camera position and derives the view matrix that takes world space into camera space.
// Each setter fully recomputes the view matrix from its arguments; nothing carries over between pose kinds.
type Frame interface {
	// SetPose places the camera at position and orients it with Euler angles in radians.
	// The view matrix is reset to identity, translated by -position and then rotated by the
	// negated angles about Z, Y and X in that order. The w component of rotation is ignored.
	//
	// Parameters:
	//   - position: world-space camera position
	//   - rotation: Euler angles (x, y, z) in radians
	SetPose(position, rotation common.Vector4)

	// SetLookAt orients the camera at position towards lookAtPoint.
	// The direction is lookAtPoint - position with w fixed at 1 and is handed to SetLookTo.
	//
	// Parameters:
	//   - position: world-space camera position
	//   - lookAtPoint: world-space point the camera faces
	//   - up: the world up hint
	SetLookAt(position, lookAtPoint, up common.Vector4)

	// SetLookTo orients the camera at position along direction.
	// direction must be non-zero and not parallel to up; otherwise the view matrix contains NaNs.
	//
	// Parameters:
	//   - position: world-space camera position
	//   - direction: the look direction, need not be normalized
	//   - up: the world up hint
	SetLookTo(position, direction, up common.Vector4)

	// Position returns the camera position stored by the most recent setter.
	//
	// Returns:
	//   - common.Vector4: world-space camera position
	Position() common.Vector4

	// Pose returns the pose that produced the current view matrix.
	//
	// Returns:
	//   - Pose: a PoseRotation or PoseLookTo value
	Pose() Pose

	// Basis returns the orthonormal right, up and forward axes of the current orientation.
	// The view matrix keeps the unnormalized right and up axes; Basis reports them at unit length.
	//
	// Returns:
	//   - x, y, z: the camera axes in world space, w = 1
	Basis() (x, y, z common.Vector4)

	// ViewMatrix returns the current world-to-view matrix.
	//
	// Returns:
	//   - common.Matrix: the view matrix
	ViewMatrix() common.Matrix
}

var _ Frame = &frame{}

// NewFrame creates a Frame at the origin with zero rotation, then applies options.
//
// Parameters:
//   - options: functional options to configure the frame
//
// Returns:
//   - Frame: the newly created camera frame
func NewFrame(options ...FrameBuilderOption) Frame {
	f := &frame{viewMatrix: common.Identity()}
	f.SetPose(common.Vec4(0, 0, 0, 1), common.Vec4(0, 0, 0, 1))
	for _, option := range options {
		option(f)
	}
	return f
}

func (f *frame) SetPose(position, rotation common.Vector4) {
	f.position = position
	f.pose = PoseRotation{Position: position, Rotation: rotation}

	f.viewMatrix = common.Identity()
	f.viewMatrix = common.Mul(f.viewMatrix, worldView(position, rotation))

	f.xAxis = common.Vector4{f.viewMatrix[common.M11], f.viewMatrix[common.M21], f.viewMatrix[common.M31], 1}
	f.yAxis = common.Vector4{f.viewMatrix[common.M12], f.viewMatrix[common.M22], f.viewMatrix[common.M32], 1}
	f.zAxis = common.Vector4{f.viewMatrix[common.M13], f.viewMatrix[common.M23], f.viewMatrix[common.M33], 1}
}

func (f *frame) SetLookAt(position, lookAtPoint, up common.Vector4) {
	direction := common.Vector4{
		lookAtPoint[0] - position[0],
		lookAtPoint[1] - position[1],
		lookAtPoint[2] - position[2],
		1,
	}
	f.SetLookTo(position, direction, up)
}

func (f *frame) SetLookTo(position, direction, up common.Vector4) {
	f.position = position
	f.pose = PoseLookTo{Position: position, Direction: direction, Up: up}

	eye := position.Vec3()
	z := direction.Vec3().Normalize()
	xRaw := up.Vec3().Cross(z)
	// y is built from the unnormalized right axis and the view matrix keeps xRaw, not x.
	y := z.Cross(xRaw)

	f.xAxis = common.FromVec3(xRaw.Normalize(), 1)
	f.yAxis = common.FromVec3(y.Normalize(), 1)
	f.zAxis = common.FromVec3(z, 1)

	f.viewMatrix = common.Matrix{
		xRaw[0], y[0], z[0], 0,
		xRaw[1], y[1], z[1], 0,
		xRaw[2], y[2], z[2], 0,
		-xRaw.Dot(eye), -y.Dot(eye), -z.Dot(eye), 1,
	}
}

func (f *frame) Position() common.Vector4 {
	return f.position
}

func (f *frame) Pose() Pose {
	return f.pose
}

func (f *frame) Basis() (x, y, z common.Vector4) {
	return f.xAxis, f.yAxis, f.zAxis
}

func (f *frame) ViewMatrix() common.Matrix {
	return f.viewMatrix
}

// worldView builds the translate-then-rotate world-to-view transform for a position and Euler rotation.
func worldView(position, rotation common.Vector4) common.Matrix {
	// mgl32 products read right to left, so this applies T, then Rz, Ry, Rx.
	m := mgl32.HomogRotate3DX(-rotation[0]).
		Mul4(mgl32.HomogRotate3DY(-rotation[1])).
		Mul4(mgl32.HomogRotate3DZ(-rotation[2])).
		Mul4(mgl32.Translate3D(-position[0], -position[1], -position[2]))
	return common.FromMat4(m)
}

// ValidateOrientation reports whether direction and up can form a camera orientation.
// SetLookTo does not call this; callers that accept untrusted input should.
//
// Parameters:
//   - direction: the look direction
//   - up: the world up hint
//
// Returns:
//   - error: ErrDegenerateOrientation wrapped with the reason, or nil
func ValidateOrientation(direction, up common.Vector4) error {
	if !direction.IsFinite() || !up.IsFinite() {
		return fmt.Errorf("%w: non-finite direction or up", ErrDegenerateOrientation)
	}
	d := direction.Vec3()
	if d.Len() < orientationEpsilon {
		return fmt.Errorf("%w: zero-length direction", ErrDegenerateOrientation)
	}
	if up.Vec3().Len() < orientationEpsilon {
		return fmt.Errorf("%w: zero-length up", ErrDegenerateOrientation)
	}
	if up.Vec3().Cross(d.Normalize()).Len() < orientationEpsilon*math32.Max(1, up.Vec3().Len()) {
		return fmt.Errorf("%w: up is parallel to direction", ErrDegenerateOrientation)
	}
	return nil
}
