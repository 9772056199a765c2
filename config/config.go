// Package config loads vertex program settings from TOML and maps them onto
// vertex_program options.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"os"

	"github.com/chewxy/math32"
	"github.com/pelletier/go-toml/v2"

	"github.com/Carmen-Shannon/oxy-transform/common"
	"github.com/Carmen-Shannon/oxy-transform/engine/camera"
	"github.com/Carmen-Shannon/oxy-transform/engine/vertex_program"
	"github.com/Carmen-Shannon/oxy-transform/engine/viewport"
)

var (
	// ErrUnknownConvention is returned for a viewport convention other than "generic" or "hardware".
	ErrUnknownConvention = errors.New("config: unknown viewport convention")

	// ErrUnknownProjection is returned for a projection kind other than "identity", "perspective" or "orthographic".
	ErrUnknownProjection = errors.New("config: unknown projection kind")

	// ErrUnknownCameraMode is returned for a camera mode other than "pose", "look_at", "look_to" or "orbit".
	ErrUnknownCameraMode = errors.New("config: unknown camera mode")
)

// Convention names.
const (
	ConventionGeneric  = "generic"
	ConventionHardware = "hardware"
)

// Projection kinds.
const (
	ProjectionIdentity     = "identity"
	ProjectionPerspective  = "perspective"
	ProjectionOrthographic = "orthographic"
)

// Camera modes.
const (
	CameraPose   = "pose"
	CameraLookAt = "look_at"
	CameraLookTo = "look_to"
	CameraOrbit  = "orbit"
)

// Vec3 is a TOML array of three numbers.
type Vec3 [3]float32

// Point returns v as a position (w = 1).
func (v Vec3) Point() common.Vector4 {
	return common.Vec4(v[0], v[1], v[2], 1)
}

// Config is the file form of a vertex program setup.
type Config struct {
	Framebuffer Framebuffer `toml:"framebuffer"`
	Viewport    Viewport    `toml:"viewport"`
	Projection  Projection  `toml:"projection"`
	Camera      Camera      `toml:"camera"`
	Lighting    Lighting    `toml:"lighting"`
	Program     Program     `toml:"program"`
}

// Framebuffer holds the target size in pixels.
type Framebuffer struct {
	Width  uint32 `toml:"width"`
	Height uint32 `toml:"height"`
}

// Viewport holds the convention and depth range.
type Viewport struct {
	Convention string  `toml:"convention"`
	ZMin       float32 `toml:"z_min"`
	ZMax       float32 `toml:"z_max"`
}

// Projection selects a projection model. Angles are in degrees.
type Projection struct {
	Kind       string  `toml:"kind"`
	FovYDegree float32 `toml:"fov_y_degrees"`
	// Aspect defaults to width / height when zero.
	Aspect float32 `toml:"aspect"`
	ZNear  float32 `toml:"z_near"`
	ZFar   float32 `toml:"z_far"`
	Left   float32 `toml:"left"`
	Right  float32 `toml:"right"`
	Top    float32 `toml:"top"`
	Bottom float32 `toml:"bottom"`
}

// Camera selects how the initial pose is built. Angles are in degrees.
type Camera struct {
	Mode      string `toml:"mode"`
	Position  Vec3   `toml:"position"`
	Rotation  Vec3   `toml:"rotation"`
	Target    Vec3   `toml:"target"`
	Direction Vec3   `toml:"direction"`
	Up        Vec3   `toml:"up"`

	Radius    float32 `toml:"radius"`
	Azimuth   float32 `toml:"azimuth"`
	Elevation float32 `toml:"elevation"`
}

// Lighting enables the lit variant and sets the light direction.
type Lighting struct {
	Enabled   bool `toml:"enabled"`
	Direction Vec3 `toml:"direction"`
}

// Program holds variant and runtime flags.
type Program struct {
	Texcoords4   bool `toml:"texcoords4"`
	StrictFinite bool `toml:"strict_finite"`
	Profiling    bool `toml:"profiling"`
}

// Default returns the configuration used when no file is given: a 640x480 generic viewport
// over a 16 bit depth range with the camera at the origin.
//
// Returns:
//   - Config: the default configuration
func Default() Config {
	return Config{
		Framebuffer: Framebuffer{Width: 640, Height: 480},
		Viewport:    Viewport{Convention: ConventionGeneric, ZMin: 0, ZMax: 65535},
		Projection:  Projection{Kind: ProjectionIdentity},
		Camera:      Camera{Mode: CameraPose, Up: Vec3{0, 1, 0}},
		Lighting:    Lighting{Direction: Vec3{0, 0, 1}},
	}
}

// Load reads and validates a TOML file. Missing keys keep their Default values.
//
// Parameters:
//   - path: the file to read
//
// Returns:
//   - Config: the loaded configuration
//   - error: a read, decode or validation error
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("config: failed to read %s: %w", path, err)
	}
	cfg, err := Parse(data)
	if err != nil {
		return Config{}, fmt.Errorf("config: %s: %w", path, err)
	}
	return cfg, nil
}

// Parse decodes and validates TOML text. Unknown keys are rejected.
//
// Parameters:
//   - data: the TOML document
//
// Returns:
//   - Config: the parsed configuration
//   - error: a decode or validation error
func Parse(data []byte) (Config, error) {
	cfg := Default()
	dec := toml.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&cfg); err != nil {
		var strict *toml.StrictMissingError
		if errors.As(err, &strict) {
			return Config{}, fmt.Errorf("config: unknown keys:\n%s", strict.String())
		}
		return Config{}, fmt.Errorf("config: decode: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Marshal encodes the configuration as TOML.
//
// Returns:
//   - []byte: the TOML document
//   - error: an encode error
func (c Config) Marshal() ([]byte, error) {
	return toml.Marshal(c)
}

// Validate checks the configuration without building any component.
// Look directions are checked with camera.ValidateOrientation.
//
// Returns:
//   - error: the first problem found, or nil
func (c Config) Validate() error {
	if _, err := c.convention(); err != nil {
		return err
	}
	if _, err := c.projection(); err != nil {
		return err
	}

	switch c.Camera.Mode {
	case CameraPose:
	case CameraLookAt:
		dir := lookDirection(c.Camera.Position.Point(), c.Camera.Target.Point())
		if err := camera.ValidateOrientation(dir, c.Camera.Up.Point()); err != nil {
			return fmt.Errorf("config: camera: %w", err)
		}
	case CameraLookTo:
		if err := camera.ValidateOrientation(c.Camera.Direction.Point(), c.Camera.Up.Point()); err != nil {
			return fmt.Errorf("config: camera: %w", err)
		}
	case CameraOrbit:
		if !(c.Camera.Radius > 0) {
			return fmt.Errorf("config: camera: orbit radius must be positive, got %g", c.Camera.Radius)
		}
		pose := c.orbitPose()
		if err := camera.ValidateOrientation(lookDirection(pose.Position, pose.Target), pose.Up); err != nil {
			return fmt.Errorf("config: camera: %w", err)
		}
	default:
		return fmt.Errorf("%w: %q", ErrUnknownCameraMode, c.Camera.Mode)
	}
	return nil
}

// Pose returns the initial camera pose described by the configuration.
//
// Returns:
//   - camera.Pose: the pose
//   - error: ErrUnknownCameraMode
func (c Config) Pose() (camera.Pose, error) {
	switch c.Camera.Mode {
	case CameraPose:
		r := c.Camera.Rotation
		return camera.PoseRotation{
			Position: c.Camera.Position.Point(),
			Rotation: common.Vec4(radians(r[0]), radians(r[1]), radians(r[2]), 1),
		}, nil
	case CameraLookAt:
		return camera.PoseLookAt{
			Position: c.Camera.Position.Point(),
			Target:   c.Camera.Target.Point(),
			Up:       c.Camera.Up.Point(),
		}, nil
	case CameraLookTo:
		return camera.PoseLookTo{
			Position:  c.Camera.Position.Point(),
			Direction: c.Camera.Direction.Point(),
			Up:        c.Camera.Up.Point(),
		}, nil
	case CameraOrbit:
		return c.orbitPose(), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownCameraMode, c.Camera.Mode)
	}
}

// Options maps the configuration onto vertex program options.
//
// Returns:
//   - []vertex_program.VertexProgramBuilderOption: the options
//   - error: a validation error
func (c Config) Options() ([]vertex_program.VertexProgramBuilderOption, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}
	kind, _ := c.convention()
	projection, _ := c.projection()
	pose, err := c.Pose()
	if err != nil {
		return nil, err
	}

	options := []vertex_program.VertexProgramBuilderOption{
		vertex_program.WithFramebufferSize(c.Framebuffer.Width, c.Framebuffer.Height),
		vertex_program.WithDepthRange(c.Viewport.ZMin, c.Viewport.ZMax),
		vertex_program.WithConvention(kind),
		vertex_program.WithProjection(projection),
		vertex_program.WithLighting(c.Lighting.Enabled),
		vertex_program.WithTexcoords4(c.Program.Texcoords4),
		vertex_program.WithProfiling(c.Program.Profiling),
		vertex_program.WithCameraOptions(camera.WithInitialPose(pose)),
	}
	if c.Program.StrictFinite {
		options = append(options, vertex_program.WithStrictFinite())
	}
	return options, nil
}

// LightDirection returns the configured light direction with w = 0.
func (c Config) LightDirection() common.Vector4 {
	d := c.Lighting.Direction
	return common.Vec4(d[0], d[1], d[2], 0)
}

func (c Config) convention() (vertex_program.ConventionKind, error) {
	switch c.Viewport.Convention {
	case ConventionGeneric, "":
		_, err := viewport.NewGenericViewport(c.Framebuffer.Width, c.Framebuffer.Height, c.Viewport.ZMin, c.Viewport.ZMax)
		return vertex_program.ConventionGeneric, err
	case ConventionHardware:
		_, err := viewport.NewHardwareViewport(c.Framebuffer.Width, c.Framebuffer.Height, c.Viewport.ZMin, c.Viewport.ZMax)
		return vertex_program.ConventionHardware, err
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnknownConvention, c.Viewport.Convention)
	}
}

func (c Config) projection() (viewport.ProjectionModel, error) {
	p := c.Projection
	switch p.Kind {
	case ProjectionIdentity, "":
		return viewport.IdentityProjection{}, nil
	case ProjectionPerspective:
		// convention() has already rejected a zero height.
		aspect := common.Coalesce(p.Aspect, float32(c.Framebuffer.Width)/float32(c.Framebuffer.Height))
		if !(p.FovYDegree > 0 && p.FovYDegree < 180) {
			return nil, fmt.Errorf("config: projection: fov_y_degrees must be in (0, 180), got %g", p.FovYDegree)
		}
		if !(p.ZNear > 0 && p.ZNear < p.ZFar) {
			return nil, fmt.Errorf("config: projection: need 0 < z_near < z_far, got %g, %g", p.ZNear, p.ZFar)
		}
		return viewport.PerspectiveProjection{
			FovY:   radians(p.FovYDegree),
			Aspect: aspect,
			ZNear:  p.ZNear,
			ZFar:   p.ZFar,
		}, nil
	case ProjectionOrthographic:
		if p.Left == p.Right || p.Top == p.Bottom || p.ZNear == p.ZFar {
			return nil, errors.New("config: projection: orthographic bounds must not be empty")
		}
		return viewport.OrthographicProjection{
			Left: p.Left, Right: p.Right, Top: p.Top, Bottom: p.Bottom,
			ZNear: p.ZNear, ZFar: p.ZFar,
		}, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownProjection, p.Kind)
	}
}

func (c Config) orbitPose() camera.PoseLookAt {
	target := c.Camera.Target.Point()
	return camera.PoseLookAt{
		Position: camera.OrbitPosition(target, c.Camera.Radius, radians(c.Camera.Azimuth), radians(c.Camera.Elevation)),
		Target:   target,
		Up:       c.Camera.Up.Point(),
	}
}

func lookDirection(from, to common.Vector4) common.Vector4 {
	return common.Vec4(to[0]-from[0], to[1]-from[1], to[2]-from[2], 1)
}

func radians(deg float32) float32 {
	return deg * math32.Pi / 180
}
