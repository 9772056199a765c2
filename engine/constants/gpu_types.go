package constants

import (
	"github.com/Carmen-Shannon/oxy-transform/common"
)

// SlotBytes is the byte size of one slot index (a vec4<f32>).
const SlotBytes = 16

// Inputs are the live values a pack reads from. The packer never modifies them.
type Inputs struct {
	Model              common.Matrix
	View               common.Matrix
	ProjectionViewport common.Matrix
	CameraPosition     common.Vector4
	// LightDirection is only read by lit layouts.
	LightDirection common.Vector4
}

// Slot is one packed entry. Matrix is set for SlotMatrix entries and Vector for SlotVector entries.
type Slot struct {
	SlotDescriptor
	Matrix common.Matrix
	Vector common.Vector4
}

// Constants is an immutable packed constant block, consumed by a single upload.
type Constants struct {
	layout Layout
	slots  []Slot
}

// Layout returns the layout the block was packed with.
func (c Constants) Layout() Layout {
	return c.layout
}

// Slots returns a copy of the packed entries in slot order.
func (c Constants) Slots() []Slot {
	out := make([]Slot, len(c.slots))
	copy(out, c.slots)
	return out
}

// Len returns the number of slot indices the block occupies.
func (c Constants) Len() int {
	return c.layout.Len()
}

// Size returns the size of the marshaled block in bytes.
//
// Returns:
//   - int: Len() * 16
func (c Constants) Size() int {
	return c.layout.Len() * SlotBytes
}

// Marshal serializes the block into a little-endian byte buffer suitable for GPU upload.
// Each matrix is written row by row, one row per slot.
//
// Returns:
//   - []byte: the serialized constant block
func (c Constants) Marshal() []byte {
	buf := make([]byte, c.Size())
	for _, s := range c.slots {
		off := s.Index * SlotBytes
		if s.Kind == SlotMatrix {
			common.PutFloat32s(buf[off:], s.Matrix[:]...)
		} else {
			common.PutFloat32s(buf[off:], s.Vector[:]...)
		}
	}
	return buf
}
