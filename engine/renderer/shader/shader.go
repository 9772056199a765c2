package shader

import (
	"embed"
	"fmt"

	"github.com/cogentcore/webgpu/wgpu"
)

//go:embed assets/*.wgsl
var assets embed.FS

// Variant identifies one of the precompiled projection vertex programs.
type Variant int

const (
	// VariantLit transforms positions and applies a directional light.
	VariantLit Variant = iota

	// VariantUnlit transforms positions and passes 2 component texture coordinates through.
	VariantUnlit

	// VariantUnlit4ComponentTexcoord transforms positions and passes 4 component texture coordinates through.
	VariantUnlit4ComponentTexcoord
)

// variantAssets maps each variant to its embedded WGSL source file.
var variantAssets = map[Variant]string{
	VariantLit:                     "assets/projection_vertex.wgsl",
	VariantUnlit:                   "assets/projection_vertex_no_lighting.wgsl",
	VariantUnlit4ComponentTexcoord: "assets/projection_vertex_no_lighting_4c_texcoords.wgsl",
}

// SelectVariant picks the program variant for the lighting and texcoord width flags.
// Lighting takes precedence: the lit program always uses 2 component texcoords.
//
// Parameters:
//   - lighting: whether directional lighting is enabled
//   - texcoords4: whether vertices carry 4 component texture coordinates
//
// Returns:
//   - Variant: the selected variant
func SelectVariant(lighting, texcoords4 bool) Variant {
	if lighting {
		return VariantLit
	}
	if texcoords4 {
		return VariantUnlit4ComponentTexcoord
	}
	return VariantUnlit
}

// Lit reports whether the variant reads a light direction constant.
//
// Returns:
//   - bool: true for VariantLit
func (v Variant) Lit() bool {
	return v == VariantLit
}

func (v Variant) String() string {
	switch v {
	case VariantLit:
		return "projection_vertex"
	case VariantUnlit:
		return "projection_vertex_no_lighting"
	case VariantUnlit4ComponentTexcoord:
		return "projection_vertex_no_lighting_4c_texcoords"
	default:
		return fmt.Sprintf("Variant(%d)", int(v))
	}
}

// Program is a loaded, pre-processed vertex program. The source always belongs to Variant,
// so its length can never be taken from a different variant.
type Program struct {
	variant    Variant
	source     string
	entryPoint string
}

// LoadProgram reads and pre-processes the embedded source for a variant.
//
// Parameters:
//   - variant: the variant to load
//
// Returns:
//   - Program: the loaded program
//   - error: an error if the variant is unknown or its source fails to pre-process
func LoadProgram(variant Variant) (Program, error) {
	path, ok := variantAssets[variant]
	if !ok {
		return Program{}, fmt.Errorf("shader: unknown variant %d", int(variant))
	}
	data, err := assets.ReadFile(path)
	if err != nil {
		return Program{}, fmt.Errorf("shader: failed to read %s: %w", path, err)
	}
	source, err := NewPreProcessor().Process(string(data))
	if err != nil {
		return Program{}, fmt.Errorf("shader: failed to pre-process %s: %w", path, err)
	}
	return Program{
		variant:    variant,
		source:     source,
		entryPoint: parseVertexEntryPoint(source),
	}, nil
}

// MustLoadProgram is LoadProgram for the embedded variants, which are known to be valid.
// It panics on error.
//
// Parameters:
//   - variant: the variant to load
//
// Returns:
//   - Program: the loaded program
func MustLoadProgram(variant Variant) Program {
	p, err := LoadProgram(variant)
	if err != nil {
		panic(err)
	}
	return p
}

// Variant returns the program's variant.
func (p Program) Variant() Variant {
	return p.variant
}

// Key returns the program's unique name.
func (p Program) Key() string {
	return p.variant.String()
}

// Source returns the pre-processed WGSL source.
func (p Program) Source() string {
	return p.source
}

// Bytes returns the pre-processed source as bytes. Its length is the program's byte length.
func (p Program) Bytes() []byte {
	return []byte(p.source)
}

// EntryPoint returns the name of the @vertex function.
func (p Program) EntryPoint() string {
	return p.entryPoint
}

// Module returns the wgpu shader module descriptor for this program.
//
// Returns:
//   - *wgpu.ShaderModuleDescriptor: the descriptor containing the WGSL code and label
func (p Program) Module() *wgpu.ShaderModuleDescriptor {
	return &wgpu.ShaderModuleDescriptor{
		Label: p.Key(),
		WGSLDescriptor: &wgpu.ShaderModuleWGSLDescriptor{
			Code: p.source,
		},
	}
}

// ConstantSlots returns the number of 16 byte constant slots the program's uniform block occupies.
// A mat4x4 counts as 4 slots and a vec4 as 1.
//
// Returns:
//   - int: the slot count
//   - error: an error if the uniform struct cannot be found or laid out
func (p Program) ConstantSlots() (int, error) {
	layout, err := parseUniformLayout(p.source)
	if err != nil {
		return 0, fmt.Errorf("shader: %s: %w", p.Key(), err)
	}
	return int(layout.size / slotSize), nil
}

// ConstantFields returns the uniform struct's field names in declaration order.
//
// Returns:
//   - []string: the field names
//   - error: an error if the uniform struct cannot be found
func (p Program) ConstantFields() ([]string, error) {
	ps, err := findUniformStruct(stripComments(p.source))
	if err != nil {
		return nil, fmt.Errorf("shader: %s: %w", p.Key(), err)
	}
	names := make([]string, 0, len(ps.fields))
	for _, f := range ps.fields {
		names = append(names, f.name)
	}
	return names, nil
}
