package common

import (
	"fmt"

	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

// Matrix cell indices. Matrices are stored row-major and transform row vectors (v' = v * M),
// so M41, M42, M43 hold the translation. The memory layout is identical to a column-major,
// column-vector mgl32.Mat4, which lets the two convert with a plain type conversion.
const (
	M11 = iota
	M12
	M13
	M14
	M21
	M22
	M23
	M24
	M31
	M32
	M33
	M34
	M41
	M42
	M43
	M44
)

// Matrix is a 4x4 transform in row-major order.
type Matrix [16]float32

// Vector4 is a homogeneous 4 component vector (x, y, z, w).
type Vector4 [4]float32

// Identity returns the 4x4 identity matrix.
//
// Returns:
//   - Matrix: the identity matrix
func Identity() Matrix {
	return Matrix{
		1, 0, 0, 0,
		0, 1, 0, 0,
		0, 0, 1, 0,
		0, 0, 0, 1,
	}
}

// Vec4 builds a Vector4 from its components.
//
// Parameters:
//   - x, y, z, w: vector components
//
// Returns:
//   - Vector4: the assembled vector
func Vec4(x, y, z, w float32) Vector4 {
	return Vector4{x, y, z, w}
}

// Mul multiplies two row-major matrices and returns a * b.
// With row vectors this applies a first, then b.
//
// Parameters:
//   - a: the transform applied first
//   - b: the transform applied second
//
// Returns:
//   - Matrix: the product a * b
func Mul(a, b Matrix) Matrix {
	var out Matrix
	for r := 0; r < 4; r++ {
		for c := 0; c < 4; c++ {
			var sum float32
			for k := 0; k < 4; k++ {
				sum += a[r*4+k] * b[k*4+c]
			}
			out[r*4+c] = sum
		}
	}
	return out
}

// FromMat4 converts an mgl32 matrix into a Matrix without reordering cells.
//
// Parameters:
//   - m: the mgl32 matrix
//
// Returns:
//   - Matrix: the same transform in row-major, row-vector form
func FromMat4(m mgl32.Mat4) Matrix {
	return Matrix(m)
}

// Mat4 converts the matrix into its mgl32 form.
//
// Returns:
//   - mgl32.Mat4: the same transform in column-major, column-vector form
func (m Matrix) Mat4() mgl32.Mat4 {
	return mgl32.Mat4(m)
}

// At returns the cell at the 1-based (row, col) position.
//
// Parameters:
//   - row: row number 1..4
//   - col: column number 1..4
//
// Returns:
//   - float32: the cell value
func (m Matrix) At(row, col int) float32 {
	return m[(row-1)*4+(col-1)]
}

// Row returns the 0-based row r as a Vector4.
//
// Parameters:
//   - r: row index 0..3
//
// Returns:
//   - Vector4: the four cells of the row
func (m Matrix) Row(r int) Vector4 {
	return Vector4{m[r*4], m[r*4+1], m[r*4+2], m[r*4+3]}
}

// Transform applies the matrix to a row vector (v * m).
//
// Parameters:
//   - v: the vector to transform
//
// Returns:
//   - Vector4: the transformed vector
func (m Matrix) Transform(v Vector4) Vector4 {
	var out Vector4
	for c := 0; c < 4; c++ {
		out[c] = v[0]*m[c] + v[1]*m[4+c] + v[2]*m[8+c] + v[3]*m[12+c]
	}
	return out
}

// IsFinite reports whether every cell is neither NaN nor infinite.
//
// Returns:
//   - bool: true if the matrix is well-formed
func (m Matrix) IsFinite() bool {
	for _, f := range m {
		if !isFinite(f) {
			return false
		}
	}
	return true
}

func (m Matrix) String() string {
	return fmt.Sprintf("[%g %g %g %g | %g %g %g %g | %g %g %g %g | %g %g %g %g]",
		m[M11], m[M12], m[M13], m[M14],
		m[M21], m[M22], m[M23], m[M24],
		m[M31], m[M32], m[M33], m[M34],
		m[M41], m[M42], m[M43], m[M44])
}

// Vec3 returns the xyz part of the vector.
//
// Returns:
//   - mgl32.Vec3: the x, y, z components
func (v Vector4) Vec3() mgl32.Vec3 {
	return mgl32.Vec3{v[0], v[1], v[2]}
}

// FromVec3 builds a Vector4 from an mgl32.Vec3 and an explicit w.
//
// Parameters:
//   - v: the xyz components
//   - w: the w component
//
// Returns:
//   - Vector4: the assembled vector
func FromVec3(v mgl32.Vec3, w float32) Vector4 {
	return Vector4{v[0], v[1], v[2], w}
}

// IsFinite reports whether every component is neither NaN nor infinite.
//
// Returns:
//   - bool: true if the vector is well-formed
func (v Vector4) IsFinite() bool {
	for _, f := range v {
		if !isFinite(f) {
			return false
		}
	}
	return true
}

func isFinite(f float32) bool {
	return !math32.IsNaN(f) && !math32.IsInf(f, 0)
}
