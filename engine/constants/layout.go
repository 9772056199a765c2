package constants

import (
	"errors"
	"fmt"
	"slices"

	"github.com/Carmen-Shannon/oxy-transform/engine/renderer/shader"
)

// ErrLayoutMismatch is returned when a program's constant block does not match the slot layout.
var ErrLayoutMismatch = errors.New("constants: program constant block does not match slot layout")

// SlotKind is the shape of a constant slot entry.
type SlotKind int

const (
	// SlotMatrix is a 4x4 matrix spanning four slot indices, one row each.
	SlotMatrix SlotKind = iota
	// SlotVector is a 4 component vector in one slot index.
	SlotVector
)

// Width returns the number of slot indices an entry of this kind occupies.
func (k SlotKind) Width() int {
	if k == SlotMatrix {
		return 4
	}
	return 1
}

// SlotSource names the value a slot entry is read from.
type SlotSource int

const (
	SourceModel SlotSource = iota
	SourceView
	SourceProjectionViewport
	SourceCameraPosition
	SourceLightDirection
	// SourceReserved is the always-present zero vector.
	SourceReserved
)

// SlotDescriptor places one value in the constant block.
type SlotDescriptor struct {
	// Name matches the field name in the program's constant struct.
	Name   string
	Source SlotSource
	Kind   SlotKind
	// Index is the first slot index of the entry.
	Index int
}

// Layout is the ordered slot descriptor list for one program variant. It is built once and
// iterated on every upload, so no index arithmetic happens at emission time.
type Layout struct {
	variant     shader.Variant
	descriptors []SlotDescriptor
	length      int
}

// NewLayout builds the slot layout for a variant:
// model, view, projection-viewport, camera position, light direction (lit only), reserved zero.
//
// Parameters:
//   - variant: the program variant
//
// Returns:
//   - Layout: the slot layout
func NewLayout(variant shader.Variant) Layout {
	entries := []SlotDescriptor{
		{Name: "model", Source: SourceModel, Kind: SlotMatrix},
		{Name: "view", Source: SourceView, Kind: SlotMatrix},
		{Name: "projection_viewport", Source: SourceProjectionViewport, Kind: SlotMatrix},
		{Name: "camera_position", Source: SourceCameraPosition, Kind: SlotVector},
	}
	if variant.Lit() {
		entries = append(entries, SlotDescriptor{Name: "light_direction", Source: SourceLightDirection, Kind: SlotVector})
	}
	entries = append(entries, SlotDescriptor{Name: "constants_0", Source: SourceReserved, Kind: SlotVector})

	index := 0
	for i := range entries {
		entries[i].Index = index
		index += entries[i].Kind.Width()
	}
	return Layout{variant: variant, descriptors: entries, length: index}
}

// NewLayoutForProgram builds the layout for a program's variant and checks it against the
// constant struct the program declares, field by field.
//
// Parameters:
//   - program: the loaded program
//
// Returns:
//   - Layout: the slot layout
//   - error: ErrLayoutMismatch if the program disagrees with the layout
func NewLayoutForProgram(program shader.Program) (Layout, error) {
	layout := NewLayout(program.Variant())

	slots, err := program.ConstantSlots()
	if err != nil {
		return Layout{}, err
	}
	if slots != layout.length {
		return Layout{}, fmt.Errorf("%w: %s declares %d slots, layout has %d",
			ErrLayoutMismatch, program.Key(), slots, layout.length)
	}

	fields, err := program.ConstantFields()
	if err != nil {
		return Layout{}, err
	}
	names := make([]string, 0, len(layout.descriptors))
	for _, d := range layout.descriptors {
		names = append(names, d.Name)
	}
	if !slices.Equal(fields, names) {
		return Layout{}, fmt.Errorf("%w: %s declares %v, layout has %v",
			ErrLayoutMismatch, program.Key(), fields, names)
	}
	return layout, nil
}

// Variant returns the variant the layout was built for.
func (l Layout) Variant() shader.Variant {
	return l.variant
}

// Descriptors returns a copy of the ordered slot descriptors.
func (l Layout) Descriptors() []SlotDescriptor {
	return slices.Clone(l.descriptors)
}

// Len returns the total number of slot indices: 14 unlit, 15 lit.
func (l Layout) Len() int {
	return l.length
}

// Index returns the first slot index of the entry read from source.
//
// Parameters:
//   - source: the slot source to look up
//
// Returns:
//   - int: the slot index
//   - bool: false if the layout has no such entry
func (l Layout) Index(source SlotSource) (int, bool) {
	for _, d := range l.descriptors {
		if d.Source == source {
			return d.Index, true
		}
	}
	return -1, false
}
