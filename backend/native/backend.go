// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

//go:build !nogpu

package native

import (
	"errors"
	"sync"

	"github.com/gogpu/wgpu/hal"

	"github.com/gogpu/compositor"
	"github.com/gogpu/compositor/backend"
)

// Name is the identifier of the native GPU backend.
const Name = "native"

// Errors.
var (
	// ErrNoDevice is returned when the backend is created without a
	// usable HAL device.
	ErrNoDevice = errors.New("native: no HAL device provided")
)

func init() {
	backend.Register(Name, 100, func(opts backend.Options) (backend.TextureBackend, error) {
		return New(opts)
	}, nil)
}

// Backend allocates textures on a gogpu/wgpu HAL device.
//
// The device is shared with the host application: Backend receives it
// through Options.Device and never destroys it. Only textures the
// backend creates are owned by their callers.
type Backend struct {
	mu     sync.Mutex
	device hal.Device
	queue  hal.Queue
	names  map[string]struct{}
	closed bool

	// resolveOnce lazily compiles the multisample resolve shader the
	// first time an FSAA texture is created.
	resolveOnce   sync.Once
	resolveModule hal.ShaderModule
	resolveErr    error
}

// New creates a native backend over the HAL device supplied through
// opts.Device. The provider must expose HalDevice() any and
// HalQueue() any returning hal.Device and hal.Queue, the convention
// gpucontext device providers follow.
func New(opts backend.Options) (*Backend, error) {
	type halProvider interface {
		HalDevice() any
		HalQueue() any
	}
	hp, ok := opts.Device.(halProvider)
	if !ok {
		return nil, ErrNoDevice
	}
	device, ok := hp.HalDevice().(hal.Device)
	if !ok || device == nil {
		return nil, ErrNoDevice
	}
	queue, ok := hp.HalQueue().(hal.Queue)
	if !ok || queue == nil {
		return nil, ErrNoDevice
	}

	compositor.Logger().Info("native texture backend ready")
	return &Backend{
		device: device,
		queue:  queue,
		names:  make(map[string]struct{}),
	}, nil
}

// Name returns "native".
func (b *Backend) Name() string { return Name }

// CreateManualTexture allocates a render-target-capable 2D texture on
// the HAL device.
func (b *Backend) CreateManualTexture(desc *backend.TextureDescriptor) (backend.Texture, error) {
	d, err := backend.NormalizeDescriptor(desc)
	if err != nil {
		return nil, &backend.AllocationError{Name: desc.Name, Err: err}
	}

	b.mu.Lock()
	if b.closed {
		b.mu.Unlock()
		return nil, &backend.AllocationError{Name: d.Name, Err: backend.ErrClosed}
	}
	if _, taken := b.names[d.Name]; taken {
		b.mu.Unlock()
		return nil, &backend.DuplicateNameError{Name: d.Name}
	}
	b.names[d.Name] = struct{}{}
	b.mu.Unlock()

	if d.Samples > 1 {
		// FSAA targets may be resolved explicitly later; make sure the
		// resolve shader is usable before committing GPU memory.
		if err := b.ensureResolveShader(); err != nil {
			b.release(d.Name)
			return nil, &backend.AllocationError{Name: d.Name, Err: err}
		}
	}

	tex, err := createHALTexture(b, &d)
	if err != nil {
		b.release(d.Name)
		return nil, &backend.AllocationError{Name: d.Name, Err: err}
	}

	compositor.Logger().Debug("native texture created",
		"name", d.Name, "width", d.Width, "height", d.Height, "samples", d.Samples)
	return tex, nil
}

// CreateMultiRenderTarget creates an empty MRT container. Surfaces are
// attached with BindSurface; the HAL binds them as color attachments of
// one render pass at draw time.
func (b *Backend) CreateMultiRenderTarget(name string) (backend.MultiRenderTarget, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.closed {
		return nil, &backend.AllocationError{Name: name, Err: backend.ErrClosed}
	}
	return &multiRenderTarget{name: name}, nil
}

// Close releases backend-level resources. The shared HAL device is not
// destroyed; it belongs to the host.
func (b *Backend) Close() {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.closed {
		return
	}
	b.closed = true

	if b.resolveModule != nil {
		b.device.DestroyShaderModule(b.resolveModule)
		b.resolveModule = nil
	}
}

// release frees a reserved texture name.
func (b *Backend) release(name string) {
	b.mu.Lock()
	delete(b.names, name)
	b.mu.Unlock()
}

// multiRenderTarget tracks the ordinal-ordered color attachments of an
// MRT pass. Binding rules: contiguous ordinals, agreeing dimensions and
// sample counts.
type multiRenderTarget struct {
	name     string
	surfaces []backend.RenderTarget
}

func (m *multiRenderTarget) Name() string { return m.name }

func (m *multiRenderTarget) Width() uint32 {
	if len(m.surfaces) == 0 {
		return 0
	}
	return m.surfaces[0].Width()
}

func (m *multiRenderTarget) Height() uint32 {
	if len(m.surfaces) == 0 {
		return 0
	}
	return m.surfaces[0].Height()
}

func (m *multiRenderTarget) Samples() uint32 {
	if len(m.surfaces) == 0 {
		return 1
	}
	return m.surfaces[0].Samples()
}

func (m *multiRenderTarget) BindSurface(ordinal int, target backend.RenderTarget) error {
	if ordinal != len(m.surfaces) {
		return backend.ErrSurfaceOrdinal
	}
	if len(m.surfaces) > 0 {
		first := m.surfaces[0]
		if target.Width() != first.Width() || target.Height() != first.Height() ||
			target.Samples() != first.Samples() {
			return backend.ErrSurfaceMismatch
		}
	}
	m.surfaces = append(m.surfaces, target)
	return nil
}

func (m *multiRenderTarget) BoundSurfaces() []backend.RenderTarget { return m.surfaces }

func (m *multiRenderTarget) Destroy() { m.surfaces = nil }
