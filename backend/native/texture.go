// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

//go:build !nogpu

package native

import (
	"fmt"
	"sync"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"
	types "github.com/gogpu/gputypes"

	"github.com/gogpu/compositor/backend"
)

// texture implements backend.Texture over a hal.Texture.
//
// The default view is created lazily with sync.Once, following the wgpu
// pattern where textures get an on-demand default view.
type texture struct {
	mu      sync.Mutex
	backend *Backend
	desc    backend.TextureDescriptor

	halTexture hal.Texture
	target     *renderTarget

	viewOnce sync.Once
	view     hal.TextureView
	viewErr  error

	destroyed bool
}

// createHALTexture allocates the HAL texture for a normalized
// descriptor and wraps it.
func createHALTexture(b *Backend, desc *backend.TextureDescriptor) (*texture, error) {
	usage := types.TextureUsageRenderAttachment |
		types.TextureUsageTextureBinding |
		types.TextureUsageCopySrc

	halDesc := &hal.TextureDescriptor{
		Label: desc.Name,
		Size: hal.Extent3D{
			Width:              desc.Width,
			Height:             desc.Height,
			DepthOrArrayLayers: 1,
		},
		MipLevelCount: desc.MipLevels,
		SampleCount:   desc.Samples,
		Dimension:     types.TextureDimension2D,
		Format:        halFormat(desc.Format, desc.GammaWrite),
		Usage:         usage,
	}

	halTexture, err := b.device.CreateTexture(halDesc)
	if err != nil {
		return nil, fmt.Errorf("HAL texture creation failed: %w", err)
	}

	tex := &texture{
		backend:    b,
		desc:       *desc,
		halTexture: halTexture,
	}
	tex.target = &renderTarget{tex: tex}
	return tex, nil
}

func (t *texture) Name() string                   { return t.desc.Name }
func (t *texture) Width() uint32                  { return t.desc.Width }
func (t *texture) Height() uint32                 { return t.desc.Height }
func (t *texture) Format() gputypes.TextureFormat { return t.desc.Format }

func (t *texture) RenderTarget() backend.RenderTarget { return t.target }

// View returns the texture's default HAL view, creating it on first
// use. Pass execution binds this view as a color attachment or shader
// input.
func (t *texture) View() (hal.TextureView, error) {
	t.viewOnce.Do(func() {
		t.view, t.viewErr = t.backend.device.CreateTextureView(t.halTexture, &hal.TextureViewDescriptor{
			Label: t.desc.Name,
		})
	})
	return t.view, t.viewErr
}

// Destroy releases the HAL texture and frees its name for reuse.
func (t *texture) Destroy() {
	t.mu.Lock()
	if t.destroyed {
		t.mu.Unlock()
		return
	}
	t.destroyed = true
	t.mu.Unlock()

	if t.view != nil {
		t.backend.device.DestroyTextureView(t.view)
		t.view = nil
	}
	t.backend.device.DestroyTexture(t.halTexture)
	t.backend.release(t.desc.Name)
}

// renderTarget is the render target of a single native texture.
type renderTarget struct {
	tex *texture
}

func (rt *renderTarget) Name() string    { return rt.tex.desc.Name }
func (rt *renderTarget) Width() uint32   { return rt.tex.desc.Width }
func (rt *renderTarget) Height() uint32  { return rt.tex.desc.Height }
func (rt *renderTarget) Samples() uint32 { return rt.tex.desc.Samples }

// halFormat maps a gputypes format to the HAL format, substituting the
// sRGB variant when gamma-corrected writes are requested on an 8-bit
// format.
func halFormat(format gputypes.TextureFormat, gammaWrite bool) types.TextureFormat {
	switch format {
	case gputypes.TextureFormatRGBA8Unorm:
		if gammaWrite {
			return types.TextureFormatRGBA8UnormSrgb
		}
		return types.TextureFormatRGBA8Unorm
	case gputypes.TextureFormatBGRA8Unorm:
		if gammaWrite {
			return types.TextureFormatBGRA8UnormSrgb
		}
		return types.TextureFormatBGRA8Unorm
	case gputypes.TextureFormatR8Unorm:
		return types.TextureFormatR8Unorm
	case gputypes.TextureFormatR32Float:
		return types.TextureFormatR32Float
	case gputypes.TextureFormatDepth24PlusStencil8:
		return types.TextureFormatDepth24PlusStencil8
	default:
		return types.TextureFormatRGBA8Unorm
	}
}
