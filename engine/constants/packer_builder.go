package constants

import "log/slog"

// PackerBuilderOption is a functional option for configuring a Packer.
type PackerBuilderOption func(*packer)

// WithStrictFinite makes Pack and Upload fail with ErrNonFinite instead of logging a warning.
//
// Returns:
//   - PackerBuilderOption: functional option to enable strict checking
func WithStrictFinite() PackerBuilderOption {
	return func(p *packer) {
		p.strictFinite = true
	}
}

// WithLogger sets the logger used for non-finite warnings.
//
// Parameters:
//   - logger: the logger; nil keeps slog.Default()
//
// Returns:
//   - PackerBuilderOption: functional option to set the logger
func WithLogger(logger *slog.Logger) PackerBuilderOption {
	return func(p *packer) {
		if logger != nil {
			p.logger = logger
		}
	}
}
