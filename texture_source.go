// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package compositor

// TextureSource identifies where a resolved texture physically lives.
//
// The source kind together with an integer index is the whole resource
// locator: channel resolution is an encode/decode pair over the two, not
// a type hierarchy. The set is closed.
type TextureSource uint8

const (
	// TextureInput is a channel passed in from a parent node.
	// The consuming node borrows it and never destroys it.
	TextureInput TextureSource = iota

	// TextureLocal is a texture owned by the node itself.
	TextureLocal

	// TextureGlobal is a workspace-wide texture. Ask the workspace for it.
	TextureGlobal

	numTextureSources
)

// String returns the source name for logging and error messages.
func (s TextureSource) String() string {
	switch s {
	case TextureInput:
		return "input"
	case TextureLocal:
		return "local"
	case TextureGlobal:
		return "global"
	default:
		return "unknown"
	}
}

// Channel bindings are stored as one 32-bit word: the source kind in the
// low bits, the container index in the rest.
//
//	 31                    2 1  0
//	+-----------------------+----+
//	|        index          | src|
//	+-----------------------+----+
const (
	texSourceBits = 2
	texSourceMask = 1<<texSourceBits - 1

	// MaxTextureIndex is the largest container index a binding can hold.
	MaxTextureIndex = 1<<(32-texSourceBits) - 1
)

// encodeTexSource packs a container index and a source kind into a
// single word. The index must not exceed MaxTextureIndex; callers
// validate before encoding.
func encodeTexSource(index int, source TextureSource) uint32 {
	return uint32(index)<<texSourceBits | uint32(source)
}

// decodeTexSource is the exact inverse of encodeTexSource.
func decodeTexSource(encoded uint32) (index int, source TextureSource) {
	return int(encoded >> texSourceBits), TextureSource(encoded & texSourceMask)
}
