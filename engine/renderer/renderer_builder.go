package renderer

import "log/slog"

// RendererBuilderOption is a functional option applied to a wgpu renderer during construction via NewWGPURenderer.
type RendererBuilderOption func(*wgpuRendererBackendImpl)

// WithLabel sets the debug label prefix for created GPU resources.
//
// Parameters:
//   - label: the label prefix
//
// Returns:
//   - RendererBuilderOption: a function that applies the label option to a renderer
func WithLabel(label string) RendererBuilderOption {
	return func(b *wgpuRendererBackendImpl) {
		b.label = label
	}
}

// WithLogger sets the logger used for diagnostics.
//
// Parameters:
//   - logger: the logger; nil keeps slog.Default()
//
// Returns:
//   - RendererBuilderOption: a function that applies the logger option to a renderer
func WithLogger(logger *slog.Logger) RendererBuilderOption {
	return func(b *wgpuRendererBackendImpl) {
		if logger != nil {
			b.logger = logger
		}
	}
}
