package camera

import (
	"github.com/Carmen-Shannon/oxy-transform/common"
	"github.com/chewxy/math32"
)

// OrbitPosition places a point on a sphere around target using spherical coordinates.
// Azimuth is measured around the Y axis from +Z, elevation from the horizontal plane.
// Combined with SetLookAt towards target this gives a third-person orbit camera.
//
// Parameters:
//   - target: the pivot point
//   - radius: distance from target
//   - azimuth: horizontal angle in radians
//   - elevation: vertical angle in radians
//
// Returns:
//   - common.Vector4: the orbit position with w = 1
func OrbitPosition(target common.Vector4, radius, azimuth, elevation float32) common.Vector4 {
	cosElev := math32.Cos(elevation)
	sinElev := math32.Sin(elevation)
	cosAzim := math32.Cos(azimuth)
	sinAzim := math32.Sin(azimuth)

	return common.Vector4{
		target[0] + radius*cosElev*sinAzim,
		target[1] + radius*sinElev,
		target[2] + radius*cosElev*cosAzim,
		1,
	}
}
