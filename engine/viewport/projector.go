package viewport

import (
	"errors"
	"fmt"

	"github.com/Carmen-Shannon/oxy-transform/common"
)

// projector is the implementation of Projector. It is owned by a single rendering context and is
// not safe for concurrent use.
type projector struct {
	convention Convention
	projection ProjectionModel
	platform   PlatformViewportFunc

	projectionMatrix         common.Matrix
	viewportMatrix           common.Matrix
	projectionViewportMatrix common.Matrix
}

// Projector derives the projection and viewport matrices from framebuffer geometry and depth range
// and composes them into the single projection-viewport matrix the vertex shader consumes.
// There is no dirty tracking: every compute call works from the current configuration.
type Projector interface {
	// Convention returns the active viewport convention.
	//
	// Returns:
	//   - Convention: GenericViewport or HardwareViewport
	Convention() Convention

	// SetConvention replaces the viewport convention as a whole after validating it.
	//
	// Parameters:
	//   - convention: the new convention
	//
	// Returns:
	//   - error: the convention's validation error, or nil
	SetConvention(convention Convention) error

	// Projection returns the active projection model.
	//
	// Returns:
	//   - ProjectionModel: the projection model
	Projection() ProjectionModel

	// SetProjection replaces the projection model.
	//
	// Parameters:
	//   - projection: the new model; nil selects IdentityProjection
	SetProjection(projection ProjectionModel)

	// ComputeViewportMatrix recomputes and returns the viewport matrix.
	// Panics if a HardwareViewport with a non-zero z_min reaches this point.
	//
	// Returns:
	//   - common.Matrix: the viewport matrix
	ComputeViewportMatrix() common.Matrix

	// ComputeProjectionMatrix recomputes and returns the projection matrix.
	//
	// Returns:
	//   - common.Matrix: the projection matrix
	ComputeProjectionMatrix() common.Matrix

	// ComposeProjectionViewport multiplies the current projection and viewport matrices,
	// projection applied first, and returns the result.
	//
	// Returns:
	//   - common.Matrix: the projection-viewport matrix
	ComposeProjectionViewport() common.Matrix

	// Update recomputes the projection, viewport and projection-viewport matrices.
	Update()

	// ProjectionMatrix returns the last computed projection matrix.
	//
	// Returns:
	//   - common.Matrix: the projection matrix
	ProjectionMatrix() common.Matrix

	// ViewportMatrix returns the last computed viewport matrix.
	//
	// Returns:
	//   - common.Matrix: the viewport matrix
	ViewportMatrix() common.Matrix

	// ProjectionViewportMatrix returns the last composed projection-viewport matrix.
	//
	// Returns:
	//   - common.Matrix: the projection-viewport matrix
	ProjectionViewportMatrix() common.Matrix
}

var _ Projector = &projector{}

// NewProjector creates a Projector for the given convention and computes its matrices once.
//
// Parameters:
//   - convention: the viewport convention
//   - options: functional options to configure the projector
//
// Returns:
//   - Projector: the newly created projector
//   - error: the convention's validation error, or nil
func NewProjector(convention Convention, options ...ProjectorBuilderOption) (Projector, error) {
	if convention == nil {
		return nil, errors.New("viewport: convention is required")
	}
	if err := convention.Validate(); err != nil {
		return nil, fmt.Errorf("viewport: invalid convention: %w", err)
	}
	p := &projector{
		convention:               convention,
		projection:               IdentityProjection{},
		platform:                 D3DViewport,
		projectionMatrix:         common.Identity(),
		viewportMatrix:           common.Identity(),
		projectionViewportMatrix: common.Identity(),
	}
	for _, option := range options {
		option(p)
	}
	p.Update()
	return p, nil
}

func (p *projector) Convention() Convention {
	return p.convention
}

func (p *projector) SetConvention(convention Convention) error {
	if convention == nil {
		return errors.New("viewport: convention is required")
	}
	if err := convention.Validate(); err != nil {
		return err
	}
	p.convention = convention
	return nil
}

func (p *projector) Projection() ProjectionModel {
	return p.projection
}

func (p *projector) SetProjection(projection ProjectionModel) {
	if projection == nil {
		projection = IdentityProjection{}
	}
	p.projection = projection
}

func (p *projector) ComputeViewportMatrix() common.Matrix {
	p.viewportMatrix = p.convention.viewportMatrix(p.platform)
	return p.viewportMatrix
}

func (p *projector) ComputeProjectionMatrix() common.Matrix {
	p.projectionMatrix = p.projection.ProjectionMatrix()
	return p.projectionMatrix
}

func (p *projector) ComposeProjectionViewport() common.Matrix {
	p.projectionViewportMatrix = common.Mul(p.projectionMatrix, p.viewportMatrix)
	return p.projectionViewportMatrix
}

func (p *projector) Update() {
	p.ComputeProjectionMatrix()
	p.ComputeViewportMatrix()
	p.ComposeProjectionViewport()
}

func (p *projector) ProjectionMatrix() common.Matrix {
	return p.projectionMatrix
}

func (p *projector) ViewportMatrix() common.Matrix {
	return p.viewportMatrix
}

func (p *projector) ProjectionViewportMatrix() common.Matrix {
	return p.projectionViewportMatrix
}
