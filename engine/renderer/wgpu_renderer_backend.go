package renderer

import (
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/Carmen-Shannon/oxy-transform/common"
	"github.com/Carmen-Shannon/oxy-transform/engine/renderer/shader"
	"github.com/cogentcore/webgpu/wgpu"
)

// slotSize is the byte size of one constant slot.
const slotSize = 16

// wgpuRendererBackendImpl uploads programs and constants through a caller-owned wgpu device.
// Device, adapter and surface setup belong to the caller.
type wgpuRendererBackendImpl struct {
	mu *sync.Mutex

	label  string
	logger *slog.Logger

	device *wgpu.Device
	queue  *wgpu.Queue

	module        *wgpu.ShaderModule
	uniformBuffer *wgpu.Buffer

	// staging holds the constant image; dirty tracks whether it changed since the last Flush.
	staging []byte
	dirty   bool
}

// WGPURenderer is a Renderer backed by a wgpu device.
type WGPURenderer interface {
	Renderer

	// ShaderModule returns the module created by the last LoadProgram, or nil.
	//
	// Returns:
	//   - *wgpu.ShaderModule: the shader module or nil
	ShaderModule() *wgpu.ShaderModule

	// UniformBuffer returns the constant buffer sized for the loaded program, or nil.
	//
	// Returns:
	//   - *wgpu.Buffer: the uniform buffer or nil
	UniformBuffer() *wgpu.Buffer
}

var _ WGPURenderer = &wgpuRendererBackendImpl{}

// NewWGPURenderer creates a renderer on an existing device.
//
// Parameters:
//   - device: the wgpu device to create resources on
//   - options: functional options to configure the renderer
//
// Returns:
//   - WGPURenderer: the renderer
//   - error: an error if device is nil
func NewWGPURenderer(device *wgpu.Device, options ...RendererBuilderOption) (WGPURenderer, error) {
	if device == nil {
		return nil, errors.New("renderer: device is required")
	}
	b := &wgpuRendererBackendImpl{
		mu:     &sync.Mutex{},
		label:  "projection_vertex",
		logger: slog.Default(),
		device: device,
		queue:  device.GetQueue(),
	}
	for _, option := range options {
		option(b)
	}
	return b, nil
}

func (b *wgpuRendererBackendImpl) LoadProgram(program shader.Program) error {
	slots, err := program.ConstantSlots()
	if err != nil {
		return err
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	module, err := b.device.CreateShaderModule(program.Module())
	if err != nil {
		return fmt.Errorf("renderer: failed to create shader module %s: %w", program.Key(), err)
	}

	desc := b.constantBufferDescriptor(slots)
	buf, err := b.device.CreateBuffer(desc)
	if err != nil {
		module.Release()
		return fmt.Errorf("renderer: failed to create constant buffer: %w", err)
	}

	b.releaseLocked()
	b.module = module
	b.uniformBuffer = buf
	b.staging = make([]byte, desc.Size)
	b.dirty = false

	b.logger.Debug("[Renderer] program loaded",
		slog.String("program", program.Key()),
		slog.Int("slots", slots),
		slog.Int("source_bytes", len(program.Bytes())),
	)
	return nil
}

func (b *wgpuRendererBackendImpl) SetUniformMatrix4x4(slot int, m common.Matrix) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if !b.fitsLocked(slot, 4) {
		return
	}
	common.PutFloat32s(b.staging[slot*slotSize:], m[:]...)
	b.dirty = true
}

func (b *wgpuRendererBackendImpl) SetUniformVector4(slot int, v common.Vector4) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if !b.fitsLocked(slot, 1) {
		return
	}
	common.PutFloat32s(b.staging[slot*slotSize:], v[:]...)
	b.dirty = true
}

func (b *wgpuRendererBackendImpl) Flush() error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.uniformBuffer == nil {
		return errors.New("renderer: no program loaded")
	}
	if !b.dirty {
		return nil
	}
	b.queue.WriteBuffer(b.uniformBuffer, 0, b.staging)
	b.dirty = false
	return nil
}

func (b *wgpuRendererBackendImpl) ShaderModule() *wgpu.ShaderModule {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.module
}

func (b *wgpuRendererBackendImpl) UniformBuffer() *wgpu.Buffer {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.uniformBuffer
}

func (b *wgpuRendererBackendImpl) Release() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.releaseLocked()
}

// releaseLocked frees the module and buffer. Caller must hold the mutex.
func (b *wgpuRendererBackendImpl) releaseLocked() {
	if b.module != nil {
		b.module.Release()
		b.module = nil
	}
	if b.uniformBuffer != nil {
		b.uniformBuffer.Release()
		b.uniformBuffer = nil
	}
	b.staging = nil
}

// fitsLocked reports whether count slots starting at slot lie inside the staged buffer.
// Out of range writes are logged and dropped. Caller must hold the mutex.
// constantBufferDescriptor describes the uniform buffer backing a program with the given slot count.
func (b *wgpuRendererBackendImpl) constantBufferDescriptor(slots int) *wgpu.BufferDescriptor {
	return &wgpu.BufferDescriptor{
		Label:            b.label + " Constants",
		Size:             uint64(slots * slotSize),
		Usage:            wgpu.BufferUsageUniform | wgpu.BufferUsageCopyDst,
		MappedAtCreation: false,
	}
}

func (b *wgpuRendererBackendImpl) fitsLocked(slot, count int) bool {
	if slot >= 0 && (slot+count)*slotSize <= len(b.staging) {
		return true
	}
	b.logger.Warn("[Renderer] constant write out of range",
		slog.Int("slot", slot),
		slog.Int("count", count),
		slog.Int("slots", len(b.staging)/slotSize),
	)
	return false
}
