package shader

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSelectVariant(t *testing.T) {
	tests := []struct {
		lighting   bool
		texcoords4 bool
		want       Variant
	}{
		{true, false, VariantLit},
		{true, true, VariantLit},
		{false, false, VariantUnlit},
		{false, true, VariantUnlit4ComponentTexcoord},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, SelectVariant(tt.lighting, tt.texcoords4), "lighting=%v texcoords4=%v", tt.lighting, tt.texcoords4)
	}
	assert.True(t, VariantLit.Lit())
	assert.False(t, VariantUnlit.Lit())
	assert.False(t, VariantUnlit4ComponentTexcoord.Lit())
}

func TestLoadProgram(t *testing.T) {
	tests := []struct {
		variant Variant
		slots   int
		fields  []string
	}{
		{VariantLit, 15, []string{"model", "view", "projection_viewport", "camera_position", "light_direction", "constants_0"}},
		{VariantUnlit, 14, []string{"model", "view", "projection_viewport", "camera_position", "constants_0"}},
		{VariantUnlit4ComponentTexcoord, 14, []string{"model", "view", "projection_viewport", "camera_position", "constants_0"}},
	}

	for _, tt := range tests {
		t.Run(tt.variant.String(), func(t *testing.T) {
			p, err := LoadProgram(tt.variant)
			require.NoError(t, err)

			assert.Equal(t, tt.variant, p.Variant())
			assert.Equal(t, tt.variant.String(), p.Key())
			assert.Equal(t, "vs_main", p.EntryPoint())
			assert.NotContains(t, p.Source(), "@oxy:")
			assert.Len(t, p.Bytes(), len(p.Source()))

			slots, err := p.ConstantSlots()
			require.NoError(t, err)
			assert.Equal(t, tt.slots, slots)

			fields, err := p.ConstantFields()
			require.NoError(t, err)
			assert.Equal(t, tt.fields, fields)

			mod := p.Module()
			require.NotNil(t, mod.WGSLDescriptor)
			assert.Equal(t, p.Key(), mod.Label)
			assert.Equal(t, p.Source(), mod.WGSLDescriptor.Code)
		})
	}
}

func TestProgramsOwnTheirSource(t *testing.T) {
	unlit := MustLoadProgram(VariantUnlit)
	unlit4 := MustLoadProgram(VariantUnlit4ComponentTexcoord)
	lit := MustLoadProgram(VariantLit)

	assert.NotEqual(t, unlit.Source(), unlit4.Source())
	assert.NotEqual(t, len(unlit.Bytes()), len(lit.Bytes()))
	assert.Contains(t, unlit4.Source(), "texcoord: vec4<f32>")
	assert.Contains(t, unlit.Source(), "texcoord: vec2<f32>")
	assert.Contains(t, lit.Source(), "light_direction")
	assert.NotContains(t, unlit.Source(), "light_direction")
}

func TestLoadProgramUnknownVariant(t *testing.T) {
	_, err := LoadProgram(Variant(42))
	assert.Error(t, err)
	assert.Equal(t, "Variant(42)", Variant(42).String())
	assert.Panics(t, func() { MustLoadProgram(Variant(42)) })
}

func TestPreProcessor(t *testing.T) {
	pp := NewPreProcessor()

	out, err := pp.Process("// header\n//@oxy:include constants\nfn f() {}")
	require.NoError(t, err)
	assert.Equal(t, []string{"constants"}, pp.Includes())
	assert.True(t, strings.HasPrefix(out, "// header\nstruct Constants {"))
	assert.True(t, strings.HasSuffix(out, "\nfn f() {}"))

	_, err = pp.Process("//@oxy:include missing")
	assert.ErrorContains(t, err, "unknown @oxy:include argument")

	_, err = pp.Process("// @oxy:include")
	assert.ErrorContains(t, err, "malformed annotation")
}

func TestParseUniformLayout(t *testing.T) {
	src := `
struct Inner {
    a: vec3<f32>,
    b: f32,
}
struct Block {
    m: mat4x4<f32>,
    inner: Inner,
    arr: array<vec4<f32>, 3>,
    // trailing: f32,
}
@group(0) @binding(0) var<uniform> block: Block;
`
	layout, err := parseUniformLayout(src)
	require.NoError(t, err)
	// 64 (mat) + 16 (Inner) + 48 (array)
	assert.Equal(t, uint64(128), layout.size)
	assert.Equal(t, uint64(16), layout.align)

	_, err = parseUniformLayout("struct A { x: f32, }")
	assert.ErrorIs(t, err, errNoUniform)

	_, err = parseUniformLayout("@group(0) @binding(0) var<uniform> u: Missing;")
	assert.ErrorContains(t, err, "struct Missing not found")

	_, err = parseUniformLayout("struct U { x: texture_2d<f32>, }\n@group(0) @binding(0) var<uniform> u: U;")
	assert.ErrorContains(t, err, "unknown type")
}
