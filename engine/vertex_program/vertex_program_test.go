package vertex_program

import (
	"bytes"
	"errors"
	"log/slog"
	"testing"

	"github.com/chewxy/math32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Carmen-Shannon/oxy-transform/common"
	"github.com/Carmen-Shannon/oxy-transform/engine/camera"
	"github.com/Carmen-Shannon/oxy-transform/engine/constants"
	"github.com/Carmen-Shannon/oxy-transform/engine/renderer"
	"github.com/Carmen-Shannon/oxy-transform/engine/renderer/shader"
	"github.com/Carmen-Shannon/oxy-transform/engine/viewport"
)

type failingLoader struct{}

func (failingLoader) LoadProgram(shader.Program) error {
	return errors.New("device lost")
}

func TestDefaults(t *testing.T) {
	vp, err := NewVertexProgram()
	require.NoError(t, err)

	assert.Equal(t, shader.VariantUnlit, vp.Program().Variant())
	assert.Equal(t, 14, vp.Layout().Len())
	assert.Equal(t, common.Identity(), vp.Camera().ViewMatrix())
	assert.Equal(t, common.Vec4(0, 0, 0, 1), vp.Camera().Position())
	assert.Equal(t, common.Identity(), vp.ModelMatrix())
	assert.Equal(t, common.Vector4{}, vp.LightDirection())
	assert.IsType(t, viewport.GenericViewport{}, vp.Projector().Convention())
}

func TestVariantSelection(t *testing.T) {
	tests := []struct {
		name    string
		options []VertexProgramBuilderOption
		want    shader.Variant
		slots   int
	}{
		{"unlit", nil, shader.VariantUnlit, 14},
		{"unlit 4c", []VertexProgramBuilderOption{WithTexcoords4(true)}, shader.VariantUnlit4ComponentTexcoord, 14},
		{"lit", []VertexProgramBuilderOption{WithLighting(true)}, shader.VariantLit, 15},
		{"lit wins", []VertexProgramBuilderOption{WithLighting(true), WithTexcoords4(true)}, shader.VariantLit, 15},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			vp, err := NewVertexProgram(tt.options...)
			require.NoError(t, err)

			rec := renderer.NewRecorder()
			require.NoError(t, vp.LoadShader(rec))
			require.Len(t, rec.Programs, 1)
			assert.Equal(t, tt.want, rec.Programs[0].Variant())

			vp.Activate()
			require.NoError(t, vp.LoadConstants(rec))
			assert.Equal(t, tt.slots, rec.SlotCount())
		})
	}
}

func TestActivateGenericViewport(t *testing.T) {
	vp, err := NewVertexProgram(
		WithFramebufferSize(640, 480),
		WithDepthRange(0, 65535),
	)
	require.NoError(t, err)
	vp.Activate()

	m := vp.Projector().ViewportMatrix()
	assert.Equal(t, float32(320), m[common.M11])
	assert.Equal(t, float32(320), m[common.M41])
	assert.Equal(t, float32(240), m[common.M42])
	assert.Equal(t, float32(-240), m[common.M22])
	assert.Equal(t, float32(32767.5), m[common.M33])
	assert.Equal(t, float32(32767.5), m[common.M43])
	assert.Equal(t, m, vp.Projector().ProjectionViewportMatrix())
}

func TestActivateHardwareViewport(t *testing.T) {
	vp, err := NewVertexProgram(
		WithFramebufferSize(640, 480),
		WithDepthRange(0, 1),
		WithConvention(ConventionHardware),
	)
	require.NoError(t, err)
	vp.Activate()

	m := vp.Projector().ProjectionViewportMatrix()
	assert.Equal(t, float32(320), m[common.M11])
	assert.Equal(t, float32(-240), m[common.M22])
	assert.Equal(t, float32(320), m[common.M41])
	assert.Equal(t, float32(240), m[common.M42])
	assert.Equal(t, float32(1), m[common.M33])
	assert.Equal(t, float32(0), m[common.M43])
}

func TestInvalidViewport(t *testing.T) {
	_, err := NewVertexProgram(WithConvention(ConventionHardware), WithDepthRange(0.25, 1))
	assert.ErrorIs(t, err, viewport.ErrHardwareDepthRange)

	_, err = NewVertexProgram(WithFramebufferSize(0, 480))
	assert.ErrorIs(t, err, viewport.ErrInvalidFramebuffer)

	_, err = NewVertexProgram(WithDepthRange(1, 0))
	assert.ErrorIs(t, err, viewport.ErrInvalidDepthRange)
}

func TestLoadConstantsLit(t *testing.T) {
	vp, err := NewVertexProgram(
		WithLighting(true),
		WithCameraOptions(camera.WithLookAt(common.Vec4(0, 0, 5, 1), common.Vec4(0, 0, 0, 1), common.Vec4(0, 1, 0, 1))),
	)
	require.NoError(t, err)
	light := common.Vec4(0, -1, 0, 0)
	vp.SetDirectionalLightDirection(light)
	vp.Activate()

	rec := renderer.NewRecorder()
	require.NoError(t, vp.LoadConstants(rec))
	require.Len(t, rec.Calls, 6)

	assert.Equal(t, common.Identity(), rec.Calls[0].Matrix)
	assert.Equal(t, vp.Camera().ViewMatrix(), rec.Calls[1].Matrix)
	assert.Equal(t, vp.Projector().ProjectionViewportMatrix(), rec.Calls[2].Matrix)
	assert.Equal(t, common.Vec4(0, 0, 5, 1), rec.Calls[3].Vector)
	assert.Equal(t, 13, rec.Calls[4].Slot)
	assert.Equal(t, light, rec.Calls[4].Vector)
	assert.Equal(t, 14, rec.Calls[5].Slot)
	assert.Equal(t, common.Vector4{}, rec.Calls[5].Vector)
}

func TestCameraChangesAreUploaded(t *testing.T) {
	vp, err := NewVertexProgram()
	require.NoError(t, err)
	vp.Camera().SetPose(common.Vec4(1, 2, 3, 1), common.Vec4(0, 0, 0, 1))
	vp.Activate()

	in := vp.Inputs()
	assert.Equal(t, common.Vec4(-1, -2, -3, 1), in.View.Row(3))
	assert.Equal(t, common.Vec4(1, 2, 3, 1), in.CameraPosition)
}

func TestProjectionOption(t *testing.T) {
	persp := viewport.PerspectiveProjection{FovY: math32.Pi / 3, Aspect: 4.0 / 3.0, ZNear: 1, ZFar: 100}
	vp, err := NewVertexProgram(WithProjection(persp), WithDepthRange(0, 1))
	require.NoError(t, err)
	vp.Activate()

	assert.Equal(t, persp.ProjectionMatrix(), vp.Projector().ProjectionMatrix())
	assert.Equal(t,
		common.Mul(persp.ProjectionMatrix(), vp.Projector().ViewportMatrix()),
		vp.Projector().ProjectionViewportMatrix())
}

func TestPlatformViewportOption(t *testing.T) {
	called := false
	platform := func(width, height, maxDepth, near, far float32) common.Matrix {
		called = true
		return viewport.D3DViewport(width, height, maxDepth, near, far)
	}
	_, err := NewVertexProgram(WithConvention(ConventionHardware), WithPlatformViewport(platform))
	require.NoError(t, err)
	assert.True(t, called)
}

func TestStrictFinite(t *testing.T) {
	vp, err := NewVertexProgram(
		WithStrictFinite(),
		WithCameraOptions(camera.WithLookTo(common.Vec4(0, 0, 0, 1), common.Vec4(0, 0, 0, 1), common.Vec4(0, 1, 0, 1))),
	)
	require.NoError(t, err)
	vp.Activate()

	rec := renderer.NewRecorder()
	assert.ErrorIs(t, vp.LoadConstants(rec), constants.ErrNonFinite)
	assert.Empty(t, rec.Calls)

	_, err = vp.Pack()
	assert.ErrorIs(t, err, constants.ErrNonFinite)
}

func TestPackMatchesUpload(t *testing.T) {
	vp, err := NewVertexProgram(WithLighting(true))
	require.NoError(t, err)
	vp.Activate()

	c, err := vp.Pack()
	require.NoError(t, err)
	assert.Equal(t, 15, c.Len())
	assert.Len(t, c.Marshal(), 240)
}

func TestLoadShaderError(t *testing.T) {
	vp, err := NewVertexProgram()
	require.NoError(t, err)
	err = vp.LoadShader(failingLoader{})
	assert.ErrorContains(t, err, "device lost")
	assert.ErrorContains(t, err, shader.VariantUnlit.String())
}

func TestActivateResetsModelAndProfiles(t *testing.T) {
	var logs bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&logs, &slog.HandlerOptions{Level: slog.LevelDebug}))
	vp, err := NewVertexProgram(WithProfiling(true), WithLogger(logger))
	require.NoError(t, err)
	assert.Contains(t, logs.String(), "[VertexProgram] created")

	vp.Activate()
	vp.Activate()
	assert.Equal(t, common.Identity(), vp.ModelMatrix())
}

func TestViewFrustum(t *testing.T) {
	vp, err := NewVertexProgram(
		WithProjection(viewport.PerspectiveProjection{FovY: math32.Pi / 2, Aspect: 1, ZNear: 1, ZFar: 100}),
		WithCameraOptions(camera.WithLookAt(common.Vec4(0, 0, -10, 1), common.Vec4(0, 0, 0, 1), common.Vec4(0, 1, 0, 1))),
	)
	require.NoError(t, err)
	vp.Activate()

	f := vp.ViewFrustum()
	assert.True(t, f.ContainsPoint(common.Vec4(0, 0, 0, 1)))
	assert.False(t, f.ContainsPoint(common.Vec4(0, 0, -20, 1)))
	assert.False(t, f.ContainsPoint(common.Vec4(50, 0, 0, 1)))
}
