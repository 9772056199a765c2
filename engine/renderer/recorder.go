package renderer

import (
	"github.com/Carmen-Shannon/oxy-transform/common"
	"github.com/Carmen-Shannon/oxy-transform/engine/renderer/shader"
)

// CallKind identifies the kind of call captured by a Recorder.
type CallKind int

const (
	// CallMatrix is a SetUniformMatrix4x4 call.
	CallMatrix CallKind = iota
	// CallVector is a SetUniformVector4 call.
	CallVector
)

// Call is one captured upload call.
type Call struct {
	Kind   CallKind
	Slot   int
	Matrix common.Matrix
	Vector common.Vector4
}

// Recorder is an in-memory Renderer that keeps every call it receives.
// It backs headless tools and tests.
type Recorder struct {
	Programs []shader.Program
	Calls    []Call
	Flushes  int
}

var _ Renderer = &Recorder{}

// NewRecorder creates an empty Recorder.
//
// Returns:
//   - *Recorder: the recorder
func NewRecorder() *Recorder {
	return &Recorder{}
}

func (r *Recorder) SetUniformMatrix4x4(slot int, m common.Matrix) {
	r.Calls = append(r.Calls, Call{Kind: CallMatrix, Slot: slot, Matrix: m})
}

func (r *Recorder) SetUniformVector4(slot int, v common.Vector4) {
	r.Calls = append(r.Calls, Call{Kind: CallVector, Slot: slot, Vector: v})
}

func (r *Recorder) LoadProgram(program shader.Program) error {
	r.Programs = append(r.Programs, program)
	return nil
}

func (r *Recorder) Flush() error {
	r.Flushes++
	return nil
}

func (r *Recorder) Release() {}

// Reset drops all captured calls and programs.
func (r *Recorder) Reset() {
	r.Programs = nil
	r.Calls = nil
	r.Flushes = 0
}

// SlotCount returns the number of slot indices covered by the captured calls.
//
// Returns:
//   - int: 4 per matrix call plus 1 per vector call
func (r *Recorder) SlotCount() int {
	n := 0
	for _, c := range r.Calls {
		if c.Kind == CallMatrix {
			n += 4
		} else {
			n++
		}
	}
	return n
}
