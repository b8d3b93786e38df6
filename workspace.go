// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package compositor

import (
	"fmt"

	"github.com/gogpu/compositor/backend"
)

// GlobalTextureProvider resolves workspace-wide texture names to live
// channels. Ownership of the returned channel stays with the provider;
// callers only borrow it.
type GlobalTextureProvider interface {
	GlobalTexture(name string) (*Channel, error)
}

// WorkspaceOptions configures workspace instantiation.
type WorkspaceOptions struct {
	// Backend allocates the workspace's global textures. Required.
	Backend backend.TextureBackend

	// RefWidth and RefHeight are the final output target dimensions
	// that size-adapting global definitions resolve against.
	RefWidth  uint32
	RefHeight uint32

	// GammaWrite is the default an Undefined GammaWrite setting
	// resolves to.
	GammaWrite bool

	// FSAASamples is the sample count used for definitions with FSAA
	// enabled. 0 and 1 both disable multisampling.
	FSAASamples uint32
}

// Workspace owns the global textures a compositor graph shares. Nodes
// reference them by name (weakly, via GlobalTextureProvider); only the
// workspace creates and destroys them.
//
// Global textures must exist before any node that consumes them is
// instantiated, so build the workspace first.
type Workspace struct {
	registry *TextureDefRegistry
	channels []Channel
}

// NewWorkspaceRegistry creates the registry global texture definitions
// are declared in. AddTextureDefinition on it registers names under
// TextureGlobal, which makes the global_ prefix mandatory.
func NewWorkspaceRegistry() *TextureDefRegistry {
	return NewTextureDefRegistry(TextureGlobal)
}

// NewWorkspace materializes every definition in reg into a channel the
// workspace owns. reg must have been created with NewWorkspaceRegistry;
// global textures are named exactly by their definition name, which the
// registry already guarantees unique.
//
// Construction is atomic: a failed allocation destroys everything
// created so far and returns only the error.
func NewWorkspace(reg *TextureDefRegistry, opts WorkspaceOptions) (*Workspace, error) {
	if reg.DefaultSource() != TextureGlobal {
		return nil, fmt.Errorf("compositor: workspace registry must default to %v textures, got %v",
			TextureGlobal, reg.DefaultSource())
	}

	channels, err := buildChannels(reg.Definitions(), func(td *TextureDefinition) string {
		return td.Name()
	}, buildOptions{
		backend:     opts.Backend,
		refWidth:    opts.RefWidth,
		refHeight:   opts.RefHeight,
		gammaWrite:  opts.GammaWrite,
		fsaaSamples: opts.FSAASamples,
	})
	if err != nil {
		return nil, err
	}

	Logger().Info("workspace instantiated", "globalTextures", len(channels))
	return &Workspace{registry: reg, channels: channels}, nil
}

// Registry returns the workspace's definition registry.
func (w *Workspace) Registry() *TextureDefRegistry { return w.registry }

// GlobalTexture resolves a global texture name to its channel. The
// channel remains owned by the workspace.
func (w *Workspace) GlobalTexture(name string) (*Channel, error) {
	index, source, err := w.registry.GetTextureSource(name)
	if err != nil {
		return nil, err
	}
	if source != TextureGlobal {
		return nil, &NameNotFoundError{Name: name}
	}
	if index >= len(w.channels) {
		return nil, &ChannelRangeError{Name: name, Index: index, Channels: len(w.channels)}
	}
	return &w.channels[index], nil
}

// Destroy releases every global texture the workspace owns. Nodes
// borrowing global channels must be destroyed first.
func (w *Workspace) Destroy() {
	for i := range w.channels {
		w.channels[i].destroy()
	}
	w.channels = nil
}

// Ensure Workspace implements GlobalTextureProvider.
var _ GlobalTextureProvider = (*Workspace)(nil)
