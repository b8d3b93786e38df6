// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package compositor

import (
	"errors"
	"fmt"
)

// Errors.
var (
	// ErrNoInputChannels is returned when a name bound to an input
	// channel is resolved on a node kind that takes no inputs.
	ErrNoInputChannels = errors.New("compositor: node has no input channels")

	// ErrTextureIndexRange is returned when a binding index exceeds
	// MaxTextureIndex and cannot be encoded.
	ErrTextureIndexRange = errors.New("compositor: texture index out of range")

	// ErrNilBackend is returned when a node or workspace is instantiated
	// without a texture backend.
	ErrNilBackend = errors.New("compositor: texture backend is nil")

	// ErrNoGlobalProvider is returned when a global texture is referenced
	// but no global-texture provider was supplied.
	ErrNoGlobalProvider = errors.New("compositor: no global texture provider")
)

// NameConflictError indicates a texture name is already registered in
// the same registry.
type NameConflictError struct {
	Name string
}

func (e *NameConflictError) Error() string {
	return "compositor: texture name already registered: " + e.Name
}

// NamingConventionError indicates misuse of the reserved "global_"
// prefix: the prefix is present but the source is not global, or the
// source is global but the prefix is missing.
type NamingConventionError struct {
	Name   string
	Source TextureSource
}

func (e *NamingConventionError) Error() string {
	if e.Source == TextureGlobal {
		return "compositor: global texture must use the global_ prefix: " + e.Name
	}
	return "compositor: global_ prefix is reserved for global textures: " + e.Name
}

// ChannelRangeError indicates a name whose binding index lies outside
// the materialized channel container. Aliases registered through
// AddTextureSourceName carry arbitrary indices; resolution fails when
// the index points past the channels that actually exist.
type ChannelRangeError struct {
	Name     string
	Index    int
	Channels int
}

func (e *ChannelRangeError) Error() string {
	return fmt.Sprintf("compositor: texture name %q is bound to channel %d, but only %d channel(s) exist",
		e.Name, e.Index, e.Channels)
}

// NameNotFoundError indicates a lookup for a name that was never
// registered.
type NameNotFoundError struct {
	Name string
}

func (e *NameNotFoundError) Error() string {
	return "compositor: texture name not found: " + e.Name
}
