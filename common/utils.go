package common

import (
	"encoding/binary"
	"math"
)

// Coalesce returns the first value that is not the zero value of T. Config uses it to fall back to
// derived settings, such as an aspect ratio taken from the framebuffer when none is given.
//
// Parameters:
//   - values: candidates in order of preference
//
// Returns:
//   - T: the first non-zero candidate, or the zero value when every candidate is zero
func Coalesce[T comparable](values ...T) T {
	var zero T
	for _, v := range values {
		if v != zero {
			return v
		}
	}
	return zero
}

// PutFloat32s writes each float as little-endian IEEE-754 bits into buf, 4 bytes per value.
// buf must hold at least 4*len(values) bytes.
//
// Parameters:
//   - buf: destination byte slice
//   - values: the floats to encode
//
// Returns:
//   - int: the number of bytes written
func PutFloat32s(buf []byte, values ...float32) int {
	for i, f := range values {
		binary.LittleEndian.PutUint32(buf[i*4:], math.Float32bits(f))
	}
	return len(values) * 4
}
