package camera

import "github.com/Carmen-Shannon/oxy-transform/common"

// Pose is the input a Frame last derived its view matrix from.
// It is either a PoseRotation or a PoseLookTo; exactly one is active at a time.
type Pose interface {
	// Apply recomputes the frame's view matrix from this pose.
	//
	// Parameters:
	//   - f: the frame to update
	Apply(f Frame)
}

// PoseRotation places the camera with a position and Euler rotation in radians.
type PoseRotation struct {
	Position common.Vector4
	Rotation common.Vector4
}

// PoseLookTo places the camera with a position, a look direction and an up hint.
type PoseLookTo struct {
	Position  common.Vector4
	Direction common.Vector4
	Up        common.Vector4
}

// PoseLookAt places the camera with a position, a target point and an up hint.
// It reduces to PoseLookTo when applied.
type PoseLookAt struct {
	Position common.Vector4
	Target   common.Vector4
	Up       common.Vector4
}

func (p PoseRotation) Apply(f Frame) {
	f.SetPose(p.Position, p.Rotation)
}

func (p PoseLookTo) Apply(f Frame) {
	f.SetLookTo(p.Position, p.Direction, p.Up)
}

func (p PoseLookAt) Apply(f Frame) {
	f.SetLookAt(p.Position, p.Target, p.Up)
}
