package vertex_program

import (
	"fmt"
	"log/slog"

	"github.com/Carmen-Shannon/oxy-transform/common"
	"github.com/Carmen-Shannon/oxy-transform/engine/camera"
	"github.com/Carmen-Shannon/oxy-transform/engine/constants"
	"github.com/Carmen-Shannon/oxy-transform/engine/profiler"
	"github.com/Carmen-Shannon/oxy-transform/engine/renderer"
	"github.com/Carmen-Shannon/oxy-transform/engine/renderer/shader"
	"github.com/Carmen-Shannon/oxy-transform/engine/viewport"
)

// vertexProgram is the implementation of VertexProgram. It is owned by a single rendering context
// and is not safe for concurrent use.
type vertexProgram struct {
	frame     camera.Frame
	projector viewport.Projector
	packer    constants.Packer
	program   shader.Program
	logger    *slog.Logger
	profiler  *profiler.Profiler

	modelMatrix    common.Matrix
	lightDirection common.Vector4
}

// VertexProgram drives one projection vertex program: it owns the camera frame and projector,
// recomputes the matrices on activation and pushes them as shader constants.
type VertexProgram interface {
	// Activate recomputes the projection, viewport and projection-viewport matrices
	// and resets the model matrix to identity.
	Activate()

	// UpdateMatrices is the recompute performed by Activate.
	UpdateMatrices()

	// LoadShader hands the program variant chosen at construction to loader.
	//
	// Parameters:
	//   - loader: the shader program loader
	//
	// Returns:
	//   - error: the loader's error, or nil
	LoadShader(loader renderer.ProgramLoader) error

	// LoadConstants packs the current matrices and vectors and uploads them in slot order.
	//
	// Parameters:
	//   - uploader: the uniform upload collaborator
	//
	// Returns:
	//   - error: constants.ErrNonFinite in strict mode, or nil
	LoadConstants(uploader renderer.Uploader) error

	// SetDirectionalLightDirection stores the light direction. It is only uploaded by the lit variant.
	//
	// Parameters:
	//   - direction: the light direction
	SetDirectionalLightDirection(direction common.Vector4)

	// LightDirection returns the stored light direction.
	//
	// Returns:
	//   - common.Vector4: the light direction
	LightDirection() common.Vector4

	// Camera returns the camera frame.
	//
	// Returns:
	//   - camera.Frame: the frame whose view matrix is uploaded
	Camera() camera.Frame

	// Projector returns the viewport projector.
	//
	// Returns:
	//   - viewport.Projector: the projector whose projection-viewport matrix is uploaded
	Projector() viewport.Projector

	// ModelMatrix returns the model matrix.
	//
	// Returns:
	//   - common.Matrix: the model matrix, identity after Activate
	ModelMatrix() common.Matrix

	// Program returns the program variant selected at construction.
	//
	// Returns:
	//   - shader.Program: the loaded program
	Program() shader.Program

	// Layout returns the constant slot layout of the selected program.
	//
	// Returns:
	//   - constants.Layout: the slot layout
	Layout() constants.Layout

	// ViewFrustum returns the clip planes of the current view and projection matrices in world space.
	// The planes assume a clip depth of [0, w], which holds for the perspective and orthographic
	// models. Under viewport.IdentityProjection the near plane sits at view-space z = 0 and the result
	// should not be read as a visibility test.
	//
	// Returns:
	//   - common.Frustum: the view frustum
	ViewFrustum() common.Frustum

	// Pack returns the constant block LoadConstants would upload, without uploading it.
	//
	// Returns:
	//   - constants.Constants: the packed block
	//   - error: constants.ErrNonFinite in strict mode, or nil
	Pack() (constants.Constants, error)

	// Inputs returns the values the next LoadConstants call will pack.
	//
	// Returns:
	//   - constants.Inputs: the current inputs
	Inputs() constants.Inputs
}

var _ VertexProgram = &vertexProgram{}

// NewVertexProgram creates a VertexProgram. The variant is chosen once from the lighting and
// texcoord options; the camera starts at the origin with zero rotation.
//
// Parameters:
//   - options: functional options to configure the program
//
// Returns:
//   - VertexProgram: the newly created vertex program
//   - error: an error if the viewport configuration is invalid or the program's constant block
//     does not match its slot layout
func NewVertexProgram(options ...VertexProgramBuilderOption) (VertexProgram, error) {
	b := &builder{
		width:  640,
		height: 480,
		zMin:   0,
		zMax:   1,
		logger: slog.Default(),
	}
	for _, option := range options {
		option(b)
	}

	convention, err := b.convention()
	if err != nil {
		return nil, err
	}

	projectorOptions := []viewport.ProjectorBuilderOption{viewport.WithProjection(b.projection)}
	if b.platform != nil {
		projectorOptions = append(projectorOptions, viewport.WithPlatformViewport(b.platform))
	}
	proj, err := viewport.NewProjector(convention, projectorOptions...)
	if err != nil {
		return nil, err
	}

	program, err := shader.LoadProgram(shader.SelectVariant(b.lighting, b.texcoords4))
	if err != nil {
		return nil, err
	}
	layout, err := constants.NewLayoutForProgram(program)
	if err != nil {
		return nil, err
	}

	packerOptions := []constants.PackerBuilderOption{constants.WithLogger(b.logger)}
	if b.strictFinite {
		packerOptions = append(packerOptions, constants.WithStrictFinite())
	}

	vp := &vertexProgram{
		frame:       camera.NewFrame(b.frameOptions...),
		projector:   proj,
		packer:      constants.NewPacker(layout, packerOptions...),
		program:     program,
		logger:      b.logger,
		modelMatrix: common.Identity(),
	}
	if b.profiling {
		vp.profiler = profiler.NewProfiler(
			profiler.WithName(program.Key()),
			profiler.WithLogger(b.logger),
		)
	}

	vp.logger.Debug("[VertexProgram] created",
		slog.String("variant", program.Key()),
		slog.Int("slots", layout.Len()),
		slog.String("convention", fmt.Sprintf("%T", convention)),
	)
	return vp, nil
}

func (vp *vertexProgram) Activate() {
	vp.UpdateMatrices()
	if vp.profiler != nil {
		vp.profiler.Tick()
	}
}

func (vp *vertexProgram) UpdateMatrices() {
	vp.projector.Update()
	vp.modelMatrix = common.Identity()
}

func (vp *vertexProgram) LoadShader(loader renderer.ProgramLoader) error {
	if err := loader.LoadProgram(vp.program); err != nil {
		return fmt.Errorf("vertex program: failed to load %s: %w", vp.program.Key(), err)
	}
	return nil
}

func (vp *vertexProgram) LoadConstants(uploader renderer.Uploader) error {
	return vp.packer.Upload(uploader, vp.Inputs())
}

func (vp *vertexProgram) ViewFrustum() common.Frustum {
	return common.ExtractFrustum(common.Mul(vp.frame.ViewMatrix(), vp.projector.ProjectionMatrix()))
}

func (vp *vertexProgram) Pack() (constants.Constants, error) {
	return vp.packer.Pack(vp.Inputs())
}

func (vp *vertexProgram) SetDirectionalLightDirection(direction common.Vector4) {
	vp.lightDirection = direction
}

func (vp *vertexProgram) LightDirection() common.Vector4 {
	return vp.lightDirection
}

func (vp *vertexProgram) Camera() camera.Frame {
	return vp.frame
}

func (vp *vertexProgram) Projector() viewport.Projector {
	return vp.projector
}

func (vp *vertexProgram) ModelMatrix() common.Matrix {
	return vp.modelMatrix
}

func (vp *vertexProgram) Program() shader.Program {
	return vp.program
}

func (vp *vertexProgram) Layout() constants.Layout {
	return vp.packer.Layout()
}

func (vp *vertexProgram) Inputs() constants.Inputs {
	return constants.Inputs{
		Model:              vp.modelMatrix,
		View:               vp.frame.ViewMatrix(),
		ProjectionViewport: vp.projector.ProjectionViewportMatrix(),
		CameraPosition:     vp.frame.Position(),
		LightDirection:     vp.lightDirection,
	}
}
