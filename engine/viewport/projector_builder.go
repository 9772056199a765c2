package viewport

// ProjectorBuilderOption is a functional option for configuring a Projector.
type ProjectorBuilderOption func(*projector)

// WithProjection sets the projection model. The default is IdentityProjection.
//
// Parameters:
//   - projection: the projection model; nil keeps the default
//
// Returns:
//   - ProjectorBuilderOption: functional option to set the projection model
func WithProjection(projection ProjectionModel) ProjectorBuilderOption {
	return func(p *projector) {
		if projection != nil {
			p.projection = projection
		}
	}
}

// WithPlatformViewport replaces the platform primitive used by HardwareViewport.
// The default is D3DViewport.
//
// Parameters:
//   - platform: the platform viewport function; nil keeps the default
//
// Returns:
//   - ProjectorBuilderOption: functional option to set the platform primitive
func WithPlatformViewport(platform PlatformViewportFunc) ProjectorBuilderOption {
	return func(p *projector) {
		if platform != nil {
			p.platform = platform
		}
	}
}
