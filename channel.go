// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package compositor

import (
	"fmt"
	"strconv"

	"github.com/gogpu/compositor/backend"
)

// Channel is a resolved render target: one texture, or several for MRT,
// plus the target handle a pass renders into.
//
// A Channel is owned by whichever node or workspace created it.
// Consumers holding a Channel reference share it and must not destroy
// its textures.
type Channel struct {
	// Target is the render target handle: the single texture's target,
	// or the MRT container when Textures has more than one entry.
	Target backend.RenderTarget

	// Textures lists the channel's textures in bind-point order.
	Textures []backend.Texture
}

// IsMRT reports whether the channel aggregates multiple textures.
func (c *Channel) IsMRT() bool { return len(c.Textures) > 1 }

// destroy releases the channel's textures and, for MRT, the container.
// Only the channel's owner calls this.
func (c *Channel) destroy() {
	if mrt, ok := c.Target.(backend.MultiRenderTarget); ok {
		mrt.Destroy()
	}
	for _, tex := range c.Textures {
		tex.Destroy()
	}
	c.Target = nil
	c.Textures = nil
}

// buildOptions carries everything channel construction needs beyond the
// definitions themselves.
type buildOptions struct {
	backend backend.TextureBackend

	// refWidth and refHeight are the reference target dimensions that
	// size-adapting definitions (Width or Height == 0) resolve against.
	refWidth  uint32
	refHeight uint32

	// gammaWrite is the default an Undefined GammaWrite resolves to.
	gammaWrite bool

	// fsaaSamples is the sample count used when a definition enables
	// FSAA. 0 and 1 both disable multisampling.
	fsaaSamples uint32
}

// buildChannel creates the concrete channel for one definition.
// name is the backend-wide unique resource name; for MRT the sub-texture
// at bind point i is named name+itoa(i).
func buildChannel(def *TextureDefinition, name string, opts buildOptions) (Channel, error) {
	if len(def.Formats) == 0 {
		return Channel{}, fmt.Errorf("compositor: definition %q has no formats", def.Name())
	}

	width, height := def.ResolveSize(opts.refWidth, opts.refHeight)
	samples := uint32(1)
	if def.FSAA && opts.fsaaSamples > 1 {
		samples = opts.fsaaSamples
	}
	gamma := def.GammaWrite.Resolve(opts.gammaWrite)

	if !def.IsMRT() {
		tex, err := opts.backend.CreateManualTexture(&backend.TextureDescriptor{
			Name:       name,
			Width:      width,
			Height:     height,
			Format:     def.Formats[0],
			GammaWrite: gamma,
			Samples:    samples,
		})
		if err != nil {
			return Channel{}, err
		}
		Logger().Debug("created texture",
			"name", name, "width", width, "height", height, "samples", samples)
		return Channel{
			Target:   tex.RenderTarget(),
			Textures: []backend.Texture{tex},
		}, nil
	}

	mrt, err := opts.backend.CreateMultiRenderTarget(name)
	if err != nil {
		return Channel{}, err
	}

	ch := Channel{Target: mrt}
	for i, format := range def.Formats {
		tex, err := opts.backend.CreateManualTexture(&backend.TextureDescriptor{
			Name:       name + strconv.Itoa(i),
			Width:      width,
			Height:     height,
			Format:     format,
			GammaWrite: gamma,
			Samples:    samples,
		})
		if err != nil {
			ch.destroy()
			return Channel{}, err
		}
		ch.Textures = append(ch.Textures, tex)
		if err := mrt.BindSurface(i, tex.RenderTarget()); err != nil {
			ch.destroy()
			return Channel{}, err
		}
	}
	Logger().Debug("created MRT",
		"name", name, "surfaces", len(def.Formats), "width", width, "height", height)
	return ch, nil
}

// buildChannels creates one channel per definition, in definition order.
// Construction is atomic: on any failure every channel created so far is
// destroyed and the error is returned with nothing exposed.
//
// nameFor derives the backend-wide unique resource name for a
// definition; node instantiation combines the definition name with the
// node's instance identifier there.
func buildChannels(defs []*TextureDefinition, nameFor func(*TextureDefinition) string, opts buildOptions) ([]Channel, error) {
	if opts.backend == nil {
		return nil, ErrNilBackend
	}

	channels := make([]Channel, 0, len(defs))
	for _, def := range defs {
		ch, err := buildChannel(def, nameFor(def), opts)
		if err != nil {
			for i := range channels {
				channels[i].destroy()
			}
			Logger().Warn("channel construction rolled back",
				"definition", def.Name(), "err", err)
			return nil, err
		}
		channels = append(channels, ch)
	}
	return channels, nil
}
