package renderer

import (
	"bytes"
	"encoding/binary"
	"log/slog"
	"math"
	"sync"
	"testing"

	"github.com/cogentcore/webgpu/wgpu"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Carmen-Shannon/oxy-transform/common"
	"github.com/Carmen-Shannon/oxy-transform/engine/renderer/shader"
)

func TestRecorder(t *testing.T) {
	r := NewRecorder()
	p := shader.MustLoadProgram(shader.VariantUnlit)

	require.NoError(t, r.LoadProgram(p))
	r.SetUniformMatrix4x4(0, common.Identity())
	r.SetUniformVector4(4, common.Vec4(1, 2, 3, 4))
	require.NoError(t, r.Flush())

	assert.Equal(t, []shader.Program{p}, r.Programs)
	assert.Equal(t, []Call{
		{Kind: CallMatrix, Slot: 0, Matrix: common.Identity()},
		{Kind: CallVector, Slot: 4, Vector: common.Vec4(1, 2, 3, 4)},
	}, r.Calls)
	assert.Equal(t, 5, r.SlotCount())
	assert.Equal(t, 1, r.Flushes)

	r.Reset()
	assert.Empty(t, r.Calls)
	assert.Empty(t, r.Programs)
	assert.Zero(t, r.Flushes)
	assert.Zero(t, r.SlotCount())
}

func TestNewWGPURendererRequiresDevice(t *testing.T) {
	_, err := NewWGPURenderer(nil)
	assert.Error(t, err)
}

func TestWGPUConstantBufferDescriptor(t *testing.T) {
	b := &wgpuRendererBackendImpl{mu: &sync.Mutex{}, label: "projection_vertex", logger: slog.Default()}
	for _, option := range []RendererBuilderOption{WithLabel("lit"), WithLogger(nil)} {
		option(b)
	}
	require.NotNil(t, b.logger)

	tests := []struct {
		name  string
		slots int
		size  uint64
	}{
		{name: "unlit", slots: 14, size: 224},
		{name: "lit", slots: 15, size: 240},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			desc := b.constantBufferDescriptor(tt.slots)
			assert.Equal(t, "lit Constants", desc.Label)
			assert.Equal(t, tt.size, desc.Size)
			assert.Equal(t, wgpu.BufferUsageUniform|wgpu.BufferUsageCopyDst, desc.Usage)
			assert.False(t, desc.MappedAtCreation)
		})
	}
}

func newStagedBackend(slots int, logger *slog.Logger) *wgpuRendererBackendImpl {
	return &wgpuRendererBackendImpl{
		mu:      &sync.Mutex{},
		logger:  logger,
		staging: make([]byte, slots*slotSize),
	}
}

func TestWGPUStagingLayout(t *testing.T) {
	b := newStagedBackend(14, slog.Default())

	m := common.Identity()
	m[common.M41] = 9
	b.SetUniformMatrix4x4(4, m)
	b.SetUniformVector4(13, common.Vec4(0.5, 0, 0, 0))
	assert.True(t, b.dirty)

	at := func(slot, component int) float32 {
		return math.Float32frombits(binary.LittleEndian.Uint32(b.staging[slot*slotSize+component*4:]))
	}
	assert.Equal(t, float32(1), at(4, 0))
	assert.Equal(t, float32(9), at(7, 0))
	assert.Equal(t, float32(1), at(7, 3))
	assert.Equal(t, float32(0.5), at(13, 0))
	assert.Equal(t, float32(0), at(0, 0))
}

func TestWGPUOutOfRangeWritesAreDropped(t *testing.T) {
	var logs bytes.Buffer
	b := newStagedBackend(14, slog.New(slog.NewTextHandler(&logs, nil)))

	b.SetUniformVector4(14, common.Vec4(1, 1, 1, 1))
	b.SetUniformMatrix4x4(11, common.Identity())
	b.SetUniformVector4(-1, common.Vec4(1, 1, 1, 1))

	assert.False(t, b.dirty)
	assert.Equal(t, make([]byte, 14*slotSize), b.staging)
	assert.Equal(t, 3, bytes.Count(logs.Bytes(), []byte("out of range")))
}

func TestWGPUFlushWithoutProgram(t *testing.T) {
	b := newStagedBackend(0, slog.Default())
	assert.Error(t, b.Flush())
	assert.Nil(t, b.ShaderModule())
	assert.Nil(t, b.UniformBuffer())
	b.Release()
}
