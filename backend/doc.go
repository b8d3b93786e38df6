// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

// Package backend defines the texture-allocation abstraction the
// compositor builds channels on, plus a registry of named backend
// implementations.
//
// # Backends
//
// A TextureBackend turns texture descriptors into concrete textures and
// multi-render-target containers. Two implementations ship with the
// module:
//
//   - "software" (this package): CPU-backed textures over image.RGBA,
//     always available, priority 10. Useful for tests and headless
//     tools.
//   - "native" (backend/native): GPU allocation via gogpu/wgpu HAL,
//     priority 100. Import it for its registration side effect:
//
//     import _ "github.com/gogpu/compositor/backend/native"
//
// # Selection
//
// Backends register themselves with a priority; New picks the best
// available one, NewByName selects explicitly:
//
//	tb, err := backend.New(backend.Options{})
//	tb, err := backend.NewByName("software", backend.Options{})
//
// # Ownership
//
// The caller owns every Texture and MultiRenderTarget a backend
// returns and must Destroy them; Close releases only backend-level
// resources.
package backend
