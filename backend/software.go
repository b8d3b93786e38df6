// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package backend

import (
	"image"
	"sync"

	"github.com/gogpu/gputypes"
	"golang.org/x/image/draw"
)

// SoftwareName is the name of the built-in CPU backend.
const SoftwareName = "software"

func init() {
	Register(SoftwareName, 10, func(opts Options) (TextureBackend, error) {
		return NewSoftware(opts), nil
	}, nil)
}

// Software is a CPU texture backend backed by image.RGBA buffers.
//
// It exists for tests, headless tools and as a reference for backend
// semantics: name uniqueness, allocation failure modes and MRT binding
// rules behave exactly as GPU backends. FSAA is simulated by
// supersampling: a texture with Samples > 1 renders into a buffer
// scaled up per side, and Resolve downsamples it to the nominal size.
type Software struct {
	mu       sync.Mutex
	textures map[string]*softwareTexture
	closed   bool
}

// NewSoftware creates a software backend. The options are accepted for
// interface symmetry; the software backend has no device to configure.
func NewSoftware(_ Options) *Software {
	return &Software{textures: make(map[string]*softwareTexture)}
}

// Name returns "software".
func (s *Software) Name() string { return SoftwareName }

// CreateManualTexture allocates a CPU-backed texture. The name must be
// unique among the backend's live textures.
func (s *Software) CreateManualTexture(desc *TextureDescriptor) (Texture, error) {
	d, err := NormalizeDescriptor(desc)
	if err != nil {
		return nil, &AllocationError{Name: desc.Name, Err: err}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return nil, &AllocationError{Name: d.Name, Err: ErrClosed}
	}
	if _, taken := s.textures[d.Name]; taken {
		return nil, &DuplicateNameError{Name: d.Name}
	}

	scale := supersampleScale(d.Samples)
	tex := &softwareTexture{
		backend: s,
		desc:    d,
		buf: image.NewRGBA(image.Rect(0, 0,
			int(d.Width)*scale, int(d.Height)*scale)),
	}
	tex.target = &softwareTarget{tex: tex}
	s.textures[d.Name] = tex
	return tex, nil
}

// CreateMultiRenderTarget creates an empty MRT container.
func (s *Software) CreateMultiRenderTarget(name string) (MultiRenderTarget, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return nil, &AllocationError{Name: name, Err: ErrClosed}
	}
	return &softwareMRT{name: name}, nil
}

// Close marks the backend closed. Live textures stay valid; new
// allocations fail with ErrClosed.
func (s *Software) Close() {
	s.mu.Lock()
	s.closed = true
	s.mu.Unlock()
}

// release removes a destroyed texture's name from the namespace.
func (s *Software) release(name string) {
	s.mu.Lock()
	delete(s.textures, name)
	s.mu.Unlock()
}

// supersampleScale returns the per-side buffer scale simulating the
// given sample count (4 samples = 2x per side).
func supersampleScale(samples uint32) int {
	scale := 1
	for uint32(scale*scale) < samples {
		scale++
	}
	return scale
}

// softwareTexture implements Texture over an image.RGBA buffer.
type softwareTexture struct {
	backend *Software
	desc    TextureDescriptor

	// buf holds the render contents at supersampled resolution.
	buf *image.RGBA

	target    *softwareTarget
	destroyed bool
}

func (t *softwareTexture) Name() string                     { return t.desc.Name }
func (t *softwareTexture) Width() uint32                    { return t.desc.Width }
func (t *softwareTexture) Height() uint32                   { return t.desc.Height }
func (t *softwareTexture) Format() gputypes.TextureFormat   { return t.desc.Format }
func (t *softwareTexture) RenderTarget() RenderTarget       { return t.target }

// Buffer returns the raw render buffer at supersampled resolution.
// Rendering code writes here.
func (t *softwareTexture) Buffer() *image.RGBA { return t.buf }

// Resolve downsamples the supersampled buffer to the texture's nominal
// size. For Samples <= 1 it returns the buffer as-is. This is the
// software analogue of an FSAA resolve; callers honoring explicit
// resolve semantics call it from a dedicated pass instead of on read.
func (t *softwareTexture) Resolve() *image.RGBA {
	if t.desc.Samples <= 1 {
		return t.buf
	}
	dst := image.NewRGBA(image.Rect(0, 0, int(t.desc.Width), int(t.desc.Height)))
	draw.ApproxBiLinear.Scale(dst, dst.Bounds(), t.buf, t.buf.Bounds(), draw.Src, nil)
	return dst
}

// Destroy releases the texture and frees its name for reuse.
func (t *softwareTexture) Destroy() {
	if t.destroyed {
		return
	}
	t.destroyed = true
	t.buf = nil
	t.backend.release(t.desc.Name)
}

// softwareTarget is the render target of a single software texture.
type softwareTarget struct {
	tex *softwareTexture
}

func (rt *softwareTarget) Name() string    { return rt.tex.desc.Name }
func (rt *softwareTarget) Width() uint32   { return rt.tex.desc.Width }
func (rt *softwareTarget) Height() uint32  { return rt.tex.desc.Height }
func (rt *softwareTarget) Samples() uint32 { return rt.tex.desc.Samples }

// softwareMRT aggregates software targets. Binding rules match GPU
// backends: contiguous ordinals, agreeing size and sample count.
type softwareMRT struct {
	name     string
	surfaces []RenderTarget
}

func (m *softwareMRT) Name() string { return m.name }

func (m *softwareMRT) Width() uint32 {
	if len(m.surfaces) == 0 {
		return 0
	}
	return m.surfaces[0].Width()
}

func (m *softwareMRT) Height() uint32 {
	if len(m.surfaces) == 0 {
		return 0
	}
	return m.surfaces[0].Height()
}

func (m *softwareMRT) Samples() uint32 {
	if len(m.surfaces) == 0 {
		return 1
	}
	return m.surfaces[0].Samples()
}

func (m *softwareMRT) BindSurface(ordinal int, target RenderTarget) error {
	if ordinal != len(m.surfaces) {
		return ErrSurfaceOrdinal
	}
	if len(m.surfaces) > 0 {
		first := m.surfaces[0]
		if target.Width() != first.Width() || target.Height() != first.Height() ||
			target.Samples() != first.Samples() {
			return ErrSurfaceMismatch
		}
	}
	m.surfaces = append(m.surfaces, target)
	return nil
}

func (m *softwareMRT) BoundSurfaces() []RenderTarget { return m.surfaces }

func (m *softwareMRT) Destroy() { m.surfaces = nil }
