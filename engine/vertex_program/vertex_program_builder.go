package vertex_program

import (
	"log/slog"

	"github.com/Carmen-Shannon/oxy-transform/engine/camera"
	"github.com/Carmen-Shannon/oxy-transform/engine/viewport"
)

// ConventionKind selects the viewport convention built by NewVertexProgram.
type ConventionKind int

const (
	// ConventionGeneric maps z in [-1, 1] onto [zMin, zMax].
	ConventionGeneric ConventionKind = iota
	// ConventionHardware uses the platform viewport primitive and requires zMin == 0.
	ConventionHardware
)

// builder collects options; the components are constructed once every option has been applied
// so the viewport convention is validated as a whole.
type builder struct {
	width, height uint32
	zMin, zMax    float32
	kind          ConventionKind
	platform      viewport.PlatformViewportFunc
	projection    viewport.ProjectionModel

	lighting     bool
	texcoords4   bool
	strictFinite bool
	profiling    bool

	frameOptions []camera.FrameBuilderOption
	logger       *slog.Logger
}

func (b *builder) convention() (viewport.Convention, error) {
	if b.kind == ConventionHardware {
		return viewport.NewHardwareViewport(b.width, b.height, b.zMin, b.zMax)
	}
	return viewport.NewGenericViewport(b.width, b.height, b.zMin, b.zMax)
}

// VertexProgramBuilderOption is a functional option for configuring a VertexProgram during construction.
type VertexProgramBuilderOption func(*builder)

// WithFramebufferSize sets the framebuffer dimensions.
//
// Parameters:
//   - width: framebuffer width in pixels
//   - height: framebuffer height in pixels
//
// Returns:
//   - VertexProgramBuilderOption: functional option to set the framebuffer size
func WithFramebufferSize(width, height uint32) VertexProgramBuilderOption {
	return func(b *builder) {
		b.width = width
		b.height = height
	}
}

// WithDepthRange sets the depth range. For the hardware convention zMin must be 0 and zMax is the
// maximum depth buffer value.
//
// Parameters:
//   - zMin: lower depth bound
//   - zMax: upper depth bound
//
// Returns:
//   - VertexProgramBuilderOption: functional option to set the depth range
func WithDepthRange(zMin, zMax float32) VertexProgramBuilderOption {
	return func(b *builder) {
		b.zMin = zMin
		b.zMax = zMax
	}
}

// WithConvention selects the viewport convention.
func WithConvention(kind ConventionKind) VertexProgramBuilderOption {
	return func(b *builder) {
		b.kind = kind
	}
}

// WithPlatformViewport replaces the hardware viewport primitive.
func WithPlatformViewport(fn viewport.PlatformViewportFunc) VertexProgramBuilderOption {
	return func(b *builder) {
		b.platform = fn
	}
}

// WithProjection sets the projection model. The default is viewport.IdentityProjection.
func WithProjection(projection viewport.ProjectionModel) VertexProgramBuilderOption {
	return func(b *builder) {
		b.projection = projection
	}
}

// WithLighting enables the lit program variant and the light direction slot.
//
// Parameters:
//   - enabled: true to select the lit variant
//
// Returns:
//   - VertexProgramBuilderOption: functional option to set lighting
func WithLighting(enabled bool) VertexProgramBuilderOption {
	return func(b *builder) {
		b.lighting = enabled
	}
}

// WithTexcoords4 selects 4 component texture coordinates. Ignored when lighting is enabled.
func WithTexcoords4(enabled bool) VertexProgramBuilderOption {
	return func(b *builder) {
		b.texcoords4 = enabled
	}
}

// WithStrictFinite makes LoadConstants fail on NaN or Inf inputs instead of logging a warning.
func WithStrictFinite() VertexProgramBuilderOption {
	return func(b *builder) {
		b.strictFinite = true
	}
}

// WithProfiling logs activation rate and memory stats once per second.
func WithProfiling(enabled bool) VertexProgramBuilderOption {
	return func(b *builder) {
		b.profiling = enabled
	}
}

// WithCameraOptions forwards options to the camera frame, applied after the initial pose.
//
// Parameters:
//   - options: camera frame options such as camera.WithLookAt
//
// Returns:
//   - VertexProgramBuilderOption: functional option to configure the camera
func WithCameraOptions(options ...camera.FrameBuilderOption) VertexProgramBuilderOption {
	return func(b *builder) {
		b.frameOptions = append(b.frameOptions, options...)
	}
}

// WithLogger sets the logger used by the program, its packer and its profiler.
func WithLogger(logger *slog.Logger) VertexProgramBuilderOption {
	return func(b *builder) {
		if logger != nil {
			b.logger = logger
		}
	}
}
