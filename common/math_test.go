package common

import (
	"encoding/binary"
	"math"
	"testing"

	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
)

func TestIdentity(t *testing.T) {
	m := Identity()
	for r := 1; r <= 4; r++ {
		for c := 1; c <= 4; c++ {
			want := float32(0)
			if r == c {
				want = 1
			}
			assert.Equal(t, want, m.At(r, c), "cell %d%d", r, c)
		}
	}
	assert.Equal(t, mgl32.Ident4(), m.Mat4())
}

func TestMulAppliesLeftFirst(t *testing.T) {
	translate := Identity()
	translate[M41] = 1
	scale := Identity()
	scale[M11] = 2

	// (0,0,0) -> translate -> (1,0,0) -> scale -> (2,0,0)
	assert.Equal(t, Vec4(2, 0, 0, 1), Mul(translate, scale).Transform(Vec4(0, 0, 0, 1)))
	// (0,0,0) -> scale -> (0,0,0) -> translate -> (1,0,0)
	assert.Equal(t, Vec4(1, 0, 0, 1), Mul(scale, translate).Transform(Vec4(0, 0, 0, 1)))
}

func TestMat4RoundTripKeepsTranslation(t *testing.T) {
	m := FromMat4(mgl32.Translate3D(3, 4, 5))
	assert.Equal(t, float32(3), m[M41])
	assert.Equal(t, float32(4), m[M42])
	assert.Equal(t, float32(5), m[M43])
	assert.Equal(t, Vec4(3, 4, 5, 1), m.Row(3))
	assert.Equal(t, mgl32.Translate3D(3, 4, 5), m.Mat4())
}

func TestIsFinite(t *testing.T) {
	assert.True(t, Identity().IsFinite())
	assert.True(t, Vec4(1, 2, 3, 4).IsFinite())

	m := Identity()
	m[M23] = math32.NaN()
	assert.False(t, m.IsFinite())

	v := Vec4(0, math32.Inf(-1), 0, 1)
	assert.False(t, v.IsFinite())
}

func TestVec3RoundTrip(t *testing.T) {
	v := Vec4(1, 2, 3, 9)
	assert.Equal(t, mgl32.Vec3{1, 2, 3}, v.Vec3())
	assert.Equal(t, Vec4(1, 2, 3, 0), FromVec3(v.Vec3(), 0))
}

func TestPutFloat32s(t *testing.T) {
	buf := make([]byte, 8)
	n := PutFloat32s(buf, 1.5, -2)
	assert.Equal(t, 8, n)
	assert.Equal(t, float32(1.5), math.Float32frombits(binary.LittleEndian.Uint32(buf[0:])))
	assert.Equal(t, float32(-2), math.Float32frombits(binary.LittleEndian.Uint32(buf[4:])))
}

func TestCoalesce(t *testing.T) {
	assert.Equal(t, "b", Coalesce("", "b", "c"))
	assert.Equal(t, 0, Coalesce(0, 0))
}
