package viewport

import (
	"errors"
	"fmt"

	"github.com/Carmen-Shannon/oxy-transform/common"
)

var (
	// ErrInvalidFramebuffer is returned when a framebuffer dimension is not positive.
	ErrInvalidFramebuffer = errors.New("viewport: framebuffer width and height must be positive")

	// ErrInvalidDepthRange is returned when z_min is not below z_max.
	ErrInvalidDepthRange = errors.New("viewport: z_min must be less than z_max")

	// ErrHardwareDepthRange is returned when a hardware viewport is configured with a non-zero z_min.
	ErrHardwareDepthRange = errors.New("viewport: hardware viewport only supports z_min == 0")
)

// PlatformViewportFunc builds a viewport matrix for the hardware convention.
// maxDepth is the largest depth buffer value; near and far bound the normalized depth range.
type PlatformViewportFunc func(width, height, maxDepth, near, far float32) common.Matrix

// Convention maps normalized device coordinates into framebuffer pixel and depth space.
// Implementations are GenericViewport and HardwareViewport.
type Convention interface {
	// Size returns the framebuffer dimensions in pixels.
	//
	// Returns:
	//   - width, height: framebuffer size
	Size() (width, height uint32)

	// DepthRange returns the depth range bounds.
	//
	// Returns:
	//   - zMin, zMax: depth range
	DepthRange() (zMin, zMax float32)

	// Validate checks the convention's preconditions.
	//
	// Returns:
	//   - error: a wrapped sentinel error, or nil
	Validate() error

	// viewportMatrix computes the matrix. platform is only consulted by HardwareViewport.
	viewportMatrix(platform PlatformViewportFunc) common.Matrix
}

// GenericViewport is the orthographic-style convention: x and y map to pixel space with the origin
// at the framebuffer center and Y flipped, z maps [-1, 1] onto [ZMin, ZMax].
type GenericViewport struct {
	Width  uint32
	Height uint32
	ZMin   float32
	ZMax   float32
}

// HardwareViewport is the platform viewport convention. Only a [0, 1] normalized depth range is
// supported, so ZMin must be 0 and ZMax is the maximum depth buffer value.
type HardwareViewport struct {
	Width  uint32
	Height uint32
	ZMin   float32
	ZMax   float32
}

var (
	_ Convention = GenericViewport{}
	_ Convention = HardwareViewport{}
)

// NewGenericViewport validates and returns a GenericViewport.
//
// Parameters:
//   - width, height: framebuffer size in pixels
//   - zMin, zMax: depth range, zMin < zMax
//
// Returns:
//   - GenericViewport: the convention
//   - error: ErrInvalidFramebuffer or ErrInvalidDepthRange
func NewGenericViewport(width, height uint32, zMin, zMax float32) (GenericViewport, error) {
	v := GenericViewport{Width: width, Height: height, ZMin: zMin, ZMax: zMax}
	if err := v.Validate(); err != nil {
		return GenericViewport{}, err
	}
	return v, nil
}

// NewHardwareViewport validates and returns a HardwareViewport.
//
// Parameters:
//   - width, height: framebuffer size in pixels
//   - zMin: must be 0
//   - zMax: the maximum depth buffer value
//
// Returns:
//   - HardwareViewport: the convention
//   - error: ErrInvalidFramebuffer, ErrInvalidDepthRange or ErrHardwareDepthRange
func NewHardwareViewport(width, height uint32, zMin, zMax float32) (HardwareViewport, error) {
	v := HardwareViewport{Width: width, Height: height, ZMin: zMin, ZMax: zMax}
	if err := v.Validate(); err != nil {
		return HardwareViewport{}, err
	}
	return v, nil
}

func (v GenericViewport) Size() (width, height uint32) {
	return v.Width, v.Height
}

func (v GenericViewport) DepthRange() (zMin, zMax float32) {
	return v.ZMin, v.ZMax
}

func (v GenericViewport) Validate() error {
	return validate(v.Width, v.Height, v.ZMin, v.ZMax)
}

func (v GenericViewport) viewportMatrix(PlatformViewportFunc) common.Matrix {
	m := common.Identity()
	m[common.M11] = float32(v.Width) * 0.5
	m[common.M41] = m[common.M11]
	m[common.M42] = float32(v.Height) * 0.5
	m[common.M22] = -1.0 * m[common.M42]

	m[common.M33] = (v.ZMax - v.ZMin) * 0.5
	m[common.M43] = (v.ZMin + v.ZMax) * 0.5
	return m
}

func (v HardwareViewport) Size() (width, height uint32) {
	return v.Width, v.Height
}

func (v HardwareViewport) DepthRange() (zMin, zMax float32) {
	return v.ZMin, v.ZMax
}

func (v HardwareViewport) Validate() error {
	if err := validate(v.Width, v.Height, v.ZMin, v.ZMax); err != nil {
		return err
	}
	if v.ZMin != 0 {
		return fmt.Errorf("%w: got z_min %g", ErrHardwareDepthRange, v.ZMin)
	}
	return nil
}

func (v HardwareViewport) viewportMatrix(platform PlatformViewportFunc) common.Matrix {
	if v.ZMin != 0 {
		panic(fmt.Sprintf("viewport: hardware viewport z-range only implemented for 0..1, got z_min %g", v.ZMin))
	}
	if platform == nil {
		platform = D3DViewport
	}
	// ZMax carries the maximum depth buffer value.
	return platform(float32(v.Width), float32(v.Height), v.ZMax, 0.0, 1.0)
}

// D3DViewport is the default PlatformViewportFunc. It maps x to [0, width], y to [height, 0] and
// z in [0, 1] onto [maxDepth*near, maxDepth*far].
//
// Parameters:
//   - width, height: framebuffer size in pixels
//   - maxDepth: largest depth buffer value
//   - near, far: normalized depth bounds
//
// Returns:
//   - common.Matrix: the viewport matrix
func D3DViewport(width, height, maxDepth, near, far float32) common.Matrix {
	m := common.Identity()
	m[common.M11] = width / 2.0
	m[common.M41] = width / 2.0
	m[common.M22] = height / -2.0
	m[common.M42] = height / 2.0
	m[common.M33] = maxDepth * (far - near)
	m[common.M43] = maxDepth * near
	return m
}

func validate(width, height uint32, zMin, zMax float32) error {
	if width == 0 || height == 0 {
		return fmt.Errorf("%w: got %dx%d", ErrInvalidFramebuffer, width, height)
	}
	if !(zMin < zMax) {
		return fmt.Errorf("%w: got [%g, %g]", ErrInvalidDepthRange, zMin, zMax)
	}
	return nil
}
