package constants

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/Carmen-Shannon/oxy-transform/common"
	"github.com/Carmen-Shannon/oxy-transform/engine/renderer"
)

// ErrNonFinite is returned by a strict packer when an input contains NaN or Inf.
var ErrNonFinite = errors.New("constants: non-finite shader constant")

// packer is the implementation of Packer.
type packer struct {
	layout       Layout
	strictFinite bool
	logger       *slog.Logger
}

// Packer serializes live matrices and vectors into the slot order of its layout.
type Packer interface {
	// Layout returns the slot layout the packer emits.
	//
	// Returns:
	//   - Layout: the slot layout
	Layout() Layout

	// Pack builds a fresh constant block from in.
	//
	// Parameters:
	//   - in: the live values
	//
	// Returns:
	//   - Constants: the packed block
	//   - error: ErrNonFinite when strict and an input is not finite
	Pack(in Inputs) (Constants, error)

	// Upload packs in and emits one uploader call per slot entry, in layout order.
	//
	// Parameters:
	//   - u: the uniform upload collaborator
	//   - in: the live values
	//
	// Returns:
	//   - error: ErrNonFinite when strict and an input is not finite
	Upload(u renderer.Uploader, in Inputs) error
}

var _ Packer = &packer{}

// NewPacker creates a Packer for layout.
//
// Parameters:
//   - layout: the slot layout, normally from NewLayout or NewLayoutForProgram
//   - options: functional options to configure the packer
//
// Returns:
//   - Packer: the packer
func NewPacker(layout Layout, options ...PackerBuilderOption) Packer {
	p := &packer{
		layout: layout,
		logger: slog.Default(),
	}
	for _, option := range options {
		option(p)
	}
	return p
}

func (p *packer) Layout() Layout {
	return p.layout
}

func (p *packer) Pack(in Inputs) (Constants, error) {
	slots := make([]Slot, 0, len(p.layout.descriptors))
	for _, d := range p.layout.descriptors {
		s := Slot{SlotDescriptor: d}
		switch d.Source {
		case SourceModel:
			s.Matrix = in.Model
		case SourceView:
			s.Matrix = in.View
		case SourceProjectionViewport:
			s.Matrix = in.ProjectionViewport
		case SourceCameraPosition:
			s.Vector = in.CameraPosition
		case SourceLightDirection:
			s.Vector = in.LightDirection
		case SourceReserved:
			s.Vector = common.Vector4{0, 0, 0, 0}
		default:
			return Constants{}, fmt.Errorf("constants: unknown slot source %d", d.Source)
		}

		if !slotFinite(s) {
			if p.strictFinite {
				return Constants{}, fmt.Errorf("%w: %s", ErrNonFinite, d.Name)
			}
			p.logger.Warn("[Constants] non-finite value packed", slog.String("slot", d.Name), slog.Int("index", d.Index))
		}
		slots = append(slots, s)
	}
	return Constants{layout: p.layout, slots: slots}, nil
}

func (p *packer) Upload(u renderer.Uploader, in Inputs) error {
	c, err := p.Pack(in)
	if err != nil {
		return err
	}
	for _, s := range c.slots {
		if s.Kind == SlotMatrix {
			u.SetUniformMatrix4x4(s.Index, s.Matrix)
		} else {
			u.SetUniformVector4(s.Index, s.Vector)
		}
	}
	return nil
}

func slotFinite(s Slot) bool {
	if s.Kind == SlotMatrix {
		return s.Matrix.IsFinite()
	}
	return s.Vector.IsFinite()
}
