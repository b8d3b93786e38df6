// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package backend

import (
	"errors"
	"fmt"

	"github.com/gogpu/gpucontext"
	"github.com/gogpu/gputypes"
)

// Common backend errors.
var (
	// ErrInvalidTextureSize is returned when a descriptor has a zero
	// width or height.
	ErrInvalidTextureSize = errors.New("backend: invalid texture size")

	// ErrNoFormat is returned when a descriptor carries an undefined
	// pixel format.
	ErrNoFormat = errors.New("backend: texture format is undefined")

	// ErrClosed is returned when operations are called after Close.
	ErrClosed = errors.New("backend: closed")

	// ErrSurfaceOrdinal is returned when an MRT surface is bound out of
	// order or to an already-occupied slot.
	ErrSurfaceOrdinal = errors.New("backend: MRT surface ordinal out of sequence")

	// ErrSurfaceMismatch is returned when an MRT surface disagrees with
	// the already-bound surfaces on size or sample count.
	ErrSurfaceMismatch = errors.New("backend: MRT surface size or sample mismatch")
)

// AllocationError wraps a failure to create a texture or MRT container.
// Name identifies the resource whose allocation failed.
type AllocationError struct {
	Name string
	Err  error
}

func (e *AllocationError) Error() string {
	return fmt.Sprintf("backend: allocating %q: %v", e.Name, e.Err)
}

func (e *AllocationError) Unwrap() error { return e.Err }

// DuplicateNameError indicates a manual texture name is already in use
// within the backend's namespace.
type DuplicateNameError struct {
	Name string
}

func (e *DuplicateNameError) Error() string {
	return "backend: texture name already in use: " + e.Name
}

// DeviceHandle provides GPU device access from the host application.
//
// The host (e.g. a gogpu app) implements gpucontext.DeviceProvider and
// passes it through Options.Device, allowing GPU backends to share the
// host's device instead of creating their own. CPU backends ignore it.
type DeviceHandle = gpucontext.DeviceProvider

// DefaultResourceGroup is the resource group manual textures are
// created in when the descriptor leaves ResourceGroup empty.
const DefaultResourceGroup = "internal"

// TextureDescriptor describes a render-target-capable 2D texture to
// create. Width, Height and Format are required; everything else has a
// usable zero value.
type TextureDescriptor struct {
	// Name is the backend-wide unique resource name.
	Name string

	// ResourceGroup namespaces the resource for bulk lifetime
	// management. Empty means DefaultResourceGroup.
	ResourceGroup string

	// Width and Height are the texture dimensions in pixels.
	Width  uint32
	Height uint32

	// MipLevels is the number of mipmap levels. 0 means 1.
	MipLevels uint32

	// Format is the texture pixel format.
	Format gputypes.TextureFormat

	// GammaWrite enables sRGB gamma correction on write for 8-bit
	// per channel formats.
	GammaWrite bool

	// Samples is the multisample count. 0 and 1 both mean no FSAA.
	Samples uint32
}

// RenderTarget is a surface that can be rendered to: either a single
// texture's target or an MRT container.
type RenderTarget interface {
	// Name returns the resource name of the target.
	Name() string

	// Width returns the target width in pixels.
	Width() uint32

	// Height returns the target height in pixels.
	Height() uint32

	// Samples returns the multisample count (1 for non-FSAA targets).
	Samples() uint32
}

// Texture is a GPU (or CPU-simulated) texture created by a backend.
type Texture interface {
	// Name returns the backend-wide unique resource name.
	Name() string

	// Width returns the texture width in pixels.
	Width() uint32

	// Height returns the texture height in pixels.
	Height() uint32

	// Format returns the texture pixel format.
	Format() gputypes.TextureFormat

	// RenderTarget returns the target that renders into this texture.
	RenderTarget() RenderTarget

	// Destroy releases the texture and its render target.
	// The texture must not be used afterwards.
	Destroy()
}

// MultiRenderTarget is a render target aggregating several textures so
// one pass can write all of them. Surfaces are bound contiguously
// starting at ordinal 0; the ordinal determines the bind point.
type MultiRenderTarget interface {
	RenderTarget

	// BindSurface attaches a texture's render target as surface
	// `ordinal`. Ordinals must be bound in sequence (0, 1, 2, ...).
	BindSurface(ordinal int, target RenderTarget) error

	// BoundSurfaces returns the currently bound surfaces in ordinal
	// order.
	BoundSurfaces() []RenderTarget

	// Destroy releases the container. Bound surfaces are not destroyed;
	// they belong to their textures.
	Destroy()
}

// TextureBackend allocates textures and MRT containers. Implementations
// are responsible for physical memory allocation, format validation and
// name uniqueness; the compositor treats every operation as fallible.
type TextureBackend interface {
	// Name returns the backend identifier (e.g. "software", "native").
	Name() string

	// CreateManualTexture allocates a render-target-capable 2D texture.
	// Fails with a *DuplicateNameError if the name is taken and a
	// *AllocationError for resource failures.
	CreateManualTexture(desc *TextureDescriptor) (Texture, error)

	// CreateMultiRenderTarget creates an empty MRT container with the
	// given name. Surfaces are attached via BindSurface.
	CreateMultiRenderTarget(name string) (MultiRenderTarget, error)

	// Close releases backend-level resources. Textures created by the
	// backend must be destroyed by their owners before Close.
	Close()
}

// NormalizeDescriptor validates desc and returns a copy with defaulted
// fields filled in (resource group, mip levels, sample count). Backend
// implementations call this before allocating.
func NormalizeDescriptor(desc *TextureDescriptor) (TextureDescriptor, error) {
	if desc.Width == 0 || desc.Height == 0 {
		return TextureDescriptor{}, fmt.Errorf("%w: %dx%d", ErrInvalidTextureSize, desc.Width, desc.Height)
	}
	if desc.Format == gputypes.TextureFormatUndefined {
		return TextureDescriptor{}, ErrNoFormat
	}

	out := *desc
	if out.ResourceGroup == "" {
		out.ResourceGroup = DefaultResourceGroup
	}
	if out.MipLevels == 0 {
		out.MipLevels = 1
	}
	if out.Samples == 0 {
		out.Samples = 1
	}
	return out, nil
}
