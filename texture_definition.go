// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package compositor

import (
	"strings"

	"github.com/gogpu/gputypes"
)

// GlobalTexturePrefix is the reserved name prefix for workspace-wide
// textures. A name carries the prefix if and only if it is registered
// under TextureGlobal; the rule is enforced at registration time.
const GlobalTexturePrefix = "global_"

// BoolSetting is a three-way boolean: Undefined defers to a
// caller-supplied default at resolution time.
type BoolSetting uint8

const (
	// BoolUndefined defers to the default in effect when the setting
	// is resolved.
	BoolUndefined BoolSetting = iota

	// BoolFalse forces the setting off.
	BoolFalse

	// BoolTrue forces the setting on.
	BoolTrue
)

// Resolve collapses the tri-state into a concrete value, substituting
// fallback for Undefined.
func (b BoolSetting) Resolve(fallback bool) bool {
	switch b {
	case BoolFalse:
		return false
	case BoolTrue:
		return true
	default:
		return fallback
	}
}

// DefaultDepthBufferPool is the depth-buffer pool new definitions are
// assigned to. Pool 0 means "no depth buffer".
const DefaultDepthBufferPool uint16 = 1

// TextureDefinition is the declarative description of one render
// texture. The registry creates it with default values; callers fill in
// formats and dimensions afterwards. Definitions must not be mutated
// once channels have been instantiated from them.
type TextureDefinition struct {
	// name is fixed at registration; it identifies the definition
	// within its owning registry.
	name string

	// Width and Height in pixels. 0 means adapt to the reference
	// target's dimension, scaled by the corresponding factor.
	Width  uint32
	Height uint32

	// WidthFactor and HeightFactor are multipliers applied to the
	// reference target's size when the corresponding dimension is 0.
	WidthFactor  float32
	HeightFactor float32

	// Formats lists the pixel formats to allocate. More than one entry
	// means MRT: one texture per format, bound in list order.
	Formats []gputypes.TextureFormat

	// FSAA enables multisampling using the build-time sample count.
	FSAA bool

	// ExplicitResolve leaves FSAA surfaces unresolved when read as a
	// texture; resolving must then be done by a dedicated pass. The
	// flag is interpreted at pass construction, not during channel
	// allocation.
	ExplicitResolve bool

	// GammaWrite selects sRGB gamma correction on write for 8-bit
	// formats. Undefined defers to the build-time default.
	GammaWrite BoolSetting

	// DepthBufferID is the depth-buffer pool this texture attaches to.
	// 0 disables the depth buffer.
	DepthBufferID uint16
}

// newTextureDefinition returns a definition with the documented default
// field values.
func newTextureDefinition(name string) *TextureDefinition {
	return &TextureDefinition{
		name:          name,
		WidthFactor:   1.0,
		HeightFactor:  1.0,
		FSAA:          true,
		GammaWrite:    BoolUndefined,
		DepthBufferID: DefaultDepthBufferPool,
	}
}

// Name returns the name the definition was registered under.
func (d *TextureDefinition) Name() string { return d.name }

// IsMRT reports whether the definition declares more than one format.
func (d *TextureDefinition) IsMRT() bool { return len(d.Formats) > 1 }

// ResolveSize returns the concrete dimensions for a given reference
// target size. A zero Width or Height adapts to the reference dimension
// scaled by the corresponding factor.
func (d *TextureDefinition) ResolveSize(refWidth, refHeight uint32) (width, height uint32) {
	width = d.Width
	if width == 0 {
		width = uint32(d.WidthFactor * float32(refWidth))
	}
	height = d.Height
	if height == 0 {
		height = uint32(d.HeightFactor * float32(refHeight))
	}
	return width, height
}

// TextureDefRegistry is the single source of truth for which textures a
// node or workspace definition declares and where a logical name points.
//
// It stores ordered texture definitions and maps names to (index,
// source) bindings. Names are unique within one registry; independent
// registries do not share a namespace.
//
// Definitions are stored behind pointers, so the *TextureDefinition
// returned by AddTextureDefinition stays valid as the registry grows.
type TextureDefRegistry struct {
	// defaultSource is the source AddTextureDefinition registers names
	// under: TextureLocal for node definitions, TextureGlobal for
	// workspace definitions.
	defaultSource TextureSource

	defs []*TextureDefinition

	// nameToChannel stores encodeTexSource(index, source) per name.
	nameToChannel map[string]uint32
}

// NewTextureDefRegistry creates an empty registry. defaultSource selects
// whether AddTextureDefinition declares local or global textures.
func NewTextureDefRegistry(defaultSource TextureSource) *TextureDefRegistry {
	return &TextureDefRegistry{
		defaultSource: defaultSource,
		nameToChannel: make(map[string]uint32),
	}
}

// DefaultSource returns the source kind AddTextureDefinition uses.
func (r *TextureDefRegistry) DefaultSource() TextureSource { return r.defaultSource }

// AddTextureSourceName registers a name-to-(index, source) binding,
// whether for a real texture or an alias.
//
// This is the generic way to declare input channels:
//
//	r.AddTextureSourceName("rt_scene", 0, compositor.TextureInput)
//
// assigns the alias "rt_scene" to input channel #0. For local or global
// textures use AddTextureDefinition instead.
//
// Returns a *NameConflictError if the name already exists, a
// *NamingConventionError if the global_ prefix rule is violated, and
// ErrTextureIndexRange if index exceeds MaxTextureIndex.
func (r *TextureDefRegistry) AddTextureSourceName(name string, index int, source TextureSource) error {
	if index < 0 || index > MaxTextureIndex {
		return ErrTextureIndexRange
	}
	if strings.HasPrefix(name, GlobalTexturePrefix) != (source == TextureGlobal) {
		return &NamingConventionError{Name: name, Source: source}
	}
	if _, exists := r.nameToChannel[name]; exists {
		return &NameConflictError{Name: name}
	}

	r.nameToChannel[name] = encodeTexSource(index, source)
	return nil
}

// GetTextureSource looks up a previously registered name and returns
// which container to look in (source) and where in it (index).
//
// Returns a *NameNotFoundError if the name was never registered.
func (r *TextureDefRegistry) GetTextureSource(name string) (index int, source TextureSource, err error) {
	encoded, ok := r.nameToChannel[name]
	if !ok {
		return 0, 0, &NameNotFoundError{Name: name}
	}
	index, source = decodeTexSource(encoded)
	return index, source, nil
}

// Reserve pre-allocates space for n texture definitions. Calling it is
// never required for correctness; it only avoids reallocation of the
// definitions container during a batch of additions.
func (r *TextureDefRegistry) Reserve(n int) {
	if n > cap(r.defs) {
		defs := make([]*TextureDefinition, len(r.defs), n)
		copy(defs, r.defs)
		r.defs = defs
	}
}

// AddTextureDefinition appends a definition with default field values,
// registers its name under the registry's default source, and returns
// it for the caller to fill in formats and dimensions.
//
// Fails exactly as AddTextureSourceName does on a duplicate name or a
// global_ prefix violation.
func (r *TextureDefRegistry) AddTextureDefinition(name string) (*TextureDefinition, error) {
	if err := r.AddTextureSourceName(name, len(r.defs), r.defaultSource); err != nil {
		return nil, err
	}

	def := newTextureDefinition(name)
	r.defs = append(r.defs, def)
	return def, nil
}

// Definitions returns the ordered texture definitions. The slice is
// owned by the registry; callers must not modify it.
func (r *TextureDefRegistry) Definitions() []*TextureDefinition { return r.defs }

// NumInputChannels returns how many names are bound to input channels.
//
// This has O(N) complexity over all bindings. Input channels are rare
// and the count is only needed at graph-construction time, so it is not
// cached.
func (r *TextureDefRegistry) NumInputChannels() int {
	n := 0
	for _, encoded := range r.nameToChannel {
		if _, source := decodeTexSource(encoded); source == TextureInput {
			n++
		}
	}
	return n
}
