package camera

import "github.com/Carmen-Shannon/oxy-transform/common"

// FrameBuilderOption is a functional option for configuring a Frame at construction.
type FrameBuilderOption func(*frame)

// WithPose places the camera with a position and Euler rotation.
//
// Parameters:
//   - position: world-space camera position
//   - rotation: Euler angles (x, y, z) in radians
//
// Returns:
//   - FrameBuilderOption: functional option that calls SetPose
func WithPose(position, rotation common.Vector4) FrameBuilderOption {
	return func(f *frame) {
		f.SetPose(position, rotation)
	}
}

// WithLookAt orients the camera towards a target point.
//
// Parameters:
//   - position: world-space camera position
//   - lookAtPoint: world-space point the camera faces
//   - up: the world up hint
//
// Returns:
//   - FrameBuilderOption: functional option that calls SetLookAt
func WithLookAt(position, lookAtPoint, up common.Vector4) FrameBuilderOption {
	return func(f *frame) {
		f.SetLookAt(position, lookAtPoint, up)
	}
}

// WithLookTo orients the camera along a direction.
//
// Parameters:
//   - position: world-space camera position
//   - direction: the look direction
//   - up: the world up hint
//
// Returns:
//   - FrameBuilderOption: functional option that calls SetLookTo
func WithLookTo(position, direction, up common.Vector4) FrameBuilderOption {
	return func(f *frame) {
		f.SetLookTo(position, direction, up)
	}
}

// WithInitialPose applies any Pose value.
//
// Parameters:
//   - pose: the pose to apply; nil leaves the default pose in place
//
// Returns:
//   - FrameBuilderOption: functional option that applies the pose
func WithInitialPose(pose Pose) FrameBuilderOption {
	return func(f *frame) {
		if pose != nil {
			pose.Apply(f)
		}
	}
}
