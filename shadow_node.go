// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package compositor

import (
	"strconv"

	"github.com/gogpu/compositor/backend"
)

// ShadowTextureDefinition is a TextureDefinition plus the shadow-map
// metadata needed to tell same-shaped maps apart: which light the map
// belongs to and which PSSM split it covers.
type ShadowTextureDefinition struct {
	TextureDefinition

	// Light is the index of the light this shadow map renders.
	Light int

	// Split is the PSSM split index within the light, 0 for
	// non-split techniques.
	Split int
}

// ShadowNodeDef is the authoring-time description of a shadow node: an
// ordered list of shadow-map texture definitions built atop a name
// registry. Instantiate it any number of times with NewShadowNode.
type ShadowNodeDef struct {
	name       string
	registry   *TextureDefRegistry
	shadowMaps []*ShadowTextureDefinition
}

// NewShadowNodeDef creates an empty shadow node definition.
func NewShadowNodeDef(name string) *ShadowNodeDef {
	return &ShadowNodeDef{
		name:     name,
		registry: NewTextureDefRegistry(TextureLocal),
	}
}

// Name returns the definition name.
func (d *ShadowNodeDef) Name() string { return d.name }

// Registry returns the definition's name registry.
func (d *ShadowNodeDef) Registry() *TextureDefRegistry { return d.registry }

// Reserve pre-allocates space for n shadow-map definitions.
func (d *ShadowNodeDef) Reserve(n int) {
	d.registry.Reserve(n)
	if n > cap(d.shadowMaps) {
		maps := make([]*ShadowTextureDefinition, len(d.shadowMaps), n)
		copy(maps, d.shadowMaps)
		d.shadowMaps = maps
	}
}

// AddShadowTextureDefinition appends a shadow-map definition with
// default texture values and registers its name as a local texture at
// the next index. The caller fills in formats and dimensions on the
// returned definition.
//
// Fails exactly as TextureDefRegistry.AddTextureSourceName does on a
// duplicate name or a global_ prefix violation.
func (d *ShadowNodeDef) AddShadowTextureDefinition(name string, light, split int) (*ShadowTextureDefinition, error) {
	if err := d.registry.AddTextureSourceName(name, len(d.shadowMaps), TextureLocal); err != nil {
		return nil, err
	}

	def := &ShadowTextureDefinition{
		TextureDefinition: *newTextureDefinition(name),
		Light:             light,
		Split:             split,
	}
	d.shadowMaps = append(d.shadowMaps, def)
	return def, nil
}

// ShadowMapDefinitions returns the ordered shadow-map definitions.
// The slice is owned by the definition; callers must not modify it.
func (d *ShadowNodeDef) ShadowMapDefinitions() []*ShadowTextureDefinition {
	return d.shadowMaps
}

// NodeOptions configures node instantiation.
type NodeOptions struct {
	// Backend allocates the node's textures. Required.
	Backend backend.TextureBackend

	// RefWidth and RefHeight are the output target dimensions that
	// size-adapting definitions resolve against.
	RefWidth  uint32
	RefHeight uint32

	// GammaWrite is the default an Undefined GammaWrite setting
	// resolves to.
	GammaWrite bool

	// FSAASamples is the sample count used for definitions with FSAA
	// enabled. 0 and 1 both disable multisampling.
	FSAASamples uint32

	// Globals resolves TextureGlobal references. May be nil if the
	// node references no global textures.
	Globals GlobalTextureProvider

	// InitPasses is invoked exactly once, after every channel exists.
	// A non-nil error aborts construction. May be nil.
	InitPasses func() error
}

// ShadowNode is a live shadow node instance: one owned channel per
// shadow-map definition, in definition order.
//
// Channel index equals definition index. Downstream pass definitions
// reference shadow channels positionally, so the ordering is part of
// the contract.
type ShadowNode struct {
	id       uint64
	def      *ShadowNodeDef
	channels []Channel
	globals  GlobalTextureProvider
}

// NewShadowNode instantiates def, allocating one channel per shadow-map
// definition through opts.Backend.
//
// Resource names combine the definition's texture name with id, so two
// instances of the same definition never collide in the backend's
// namespace. Definitions with a single format become plain render
// textures; definitions with several formats become MRT channels with
// one texture per format, bound in list order starting at surface 0.
//
// Construction is atomic: if any allocation or the InitPasses hook
// fails, everything created so far is destroyed and only the error is
// returned. InitPasses runs exactly once, after all channels exist;
// passes may reference any shadow channel regardless of position.
func NewShadowNode(id uint64, def *ShadowNodeDef, opts NodeOptions) (*ShadowNode, error) {
	if opts.Backend == nil {
		return nil, ErrNilBackend
	}

	suffix := "_" + strconv.FormatUint(id, 10)
	defs := make([]*TextureDefinition, len(def.shadowMaps))
	for i, sm := range def.shadowMaps {
		defs[i] = &sm.TextureDefinition
	}

	channels, err := buildChannels(defs, func(td *TextureDefinition) string {
		return td.Name() + suffix
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

	node := &ShadowNode{
		id:       id,
		def:      def,
		channels: channels,
		globals:  opts.Globals,
	}

	// Shadow nodes have no input channels, and global textures exist
	// before any node is instantiated. All outputs are ready, so pass
	// initialization is safe now and must not happen earlier.
	if opts.InitPasses != nil {
		if err := opts.InitPasses(); err != nil {
			node.Destroy()
			return nil, err
		}
	}

	Logger().Info("shadow node instantiated",
		"definition", def.name, "id", id, "channels", len(channels))
	return node, nil
}

// ID returns the node's unique instance identifier.
func (n *ShadowNode) ID() uint64 { return n.id }

// Definition returns the definition the node was instantiated from.
func (n *ShadowNode) Definition() *ShadowNodeDef { return n.def }

// LocalChannels returns the node's channels in definition order. The
// slice and the channels' textures are owned by the node.
func (n *ShadowNode) LocalChannels() []Channel { return n.channels }

// ChannelByName resolves a registered texture name to a live channel:
// local names to the node's own channels, global names through the
// node's GlobalTextureProvider. Shadow nodes have no input channels, so
// input bindings fail with ErrNoInputChannels. A local alias whose
// index points past the node's channels fails with a
// *ChannelRangeError.
func (n *ShadowNode) ChannelByName(name string) (*Channel, error) {
	index, source, err := n.def.registry.GetTextureSource(name)
	if err != nil {
		return nil, err
	}
	switch source {
	case TextureLocal:
		if index >= len(n.channels) {
			return nil, &ChannelRangeError{Name: name, Index: index, Channels: len(n.channels)}
		}
		return &n.channels[index], nil
	case TextureGlobal:
		if n.globals == nil {
			return nil, ErrNoGlobalProvider
		}
		return n.globals.GlobalTexture(name)
	case TextureInput:
		return nil, ErrNoInputChannels
	default:
		return nil, &NameNotFoundError{Name: name}
	}
}

// Destroy releases every channel the node owns. The node must not be
// used afterwards.
func (n *ShadowNode) Destroy() {
	for i := range n.channels {
		n.channels[i].destroy()
	}
	n.channels = nil
}
