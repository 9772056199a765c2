package renderer

import (
	"github.com/Carmen-Shannon/oxy-transform/common"
	"github.com/Carmen-Shannon/oxy-transform/engine/renderer/shader"
)

// Uploader receives shader constants. Slot indices count 16 byte vec4 slots; a matrix occupies
// four consecutive slots, one row per slot.
type Uploader interface {
	// SetUniformMatrix4x4 writes a 4x4 matrix starting at slot.
	//
	// Parameters:
	//   - slot: the first slot index
	//   - m: the matrix, written row by row
	SetUniformMatrix4x4(slot int, m common.Matrix)

	// SetUniformVector4 writes a 4 component vector at slot.
	//
	// Parameters:
	//   - slot: the slot index
	//   - v: the vector
	SetUniformVector4(slot int, v common.Vector4)
}

// ProgramLoader receives the vertex program selected for a rendering context.
type ProgramLoader interface {
	// LoadProgram uploads the program. The program carries its own source and length.
	//
	// Parameters:
	//   - program: the program to load
	//
	// Returns:
	//   - error: an error if the program cannot be loaded
	LoadProgram(program shader.Program) error
}

// Renderer is a backend that accepts both programs and constants and pushes staged constants on Flush.
type Renderer interface {
	Uploader
	ProgramLoader

	// Flush pushes constants staged since the last Flush to the device.
	//
	// Returns:
	//   - error: an error if the upload fails
	Flush() error

	// Release frees any device resources held by the renderer.
	Release()
}
