// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package compositor provides the texture-definition and node resource
// model of a compositing pipeline.
//
// # Overview
//
// A compositor graph is described declaratively: node definitions list
// the render textures they need ("local texture of 2048x2048 R32Float",
// "shadow map #2", "global texture shared across the workspace"), and at
// instantiation time those declarations are turned into concrete
// GPU-backed render targets wired to named channels.
//
// This package owns the declarative side and the instantiation logic.
// It does not render anything: it resolves what resources exist and
// where a logical name points.
//
// # Quick Start
//
//	def := compositor.NewShadowNodeDef("shadows")
//	td, _ := def.AddShadowTextureDefinition("shadowmap0", 0, 0)
//	td.Width, td.Height = 2048, 2048
//	td.Formats = []gputypes.TextureFormat{gputypes.TextureFormatR32Float}
//
//	node, err := compositor.NewShadowNode(1, def, compositor.NodeOptions{
//	    Backend: tb, RefWidth: 1920, RefHeight: 1080,
//	})
//
// # Architecture
//
// The library is organized into:
//   - Root package: texture definitions, name registry, channels,
//     shadow-node and workspace instantiation
//   - backend: the texture-allocation abstraction and its registry,
//     with a built-in software implementation
//   - backend/native: GPU allocation via gogpu/wgpu HAL
//
// # Resource Ownership
//
// Channels a node allocates as local are owned by that node and released
// by its Destroy. Global channels are owned by the Workspace. Input
// channels are borrowed from a parent node and never destroyed by the
// consumer.
//
// # Concurrency
//
// Graph construction is single-threaded per workspace build: a registry
// or node must not be mutated from multiple goroutines. Instantiated
// channels may be read concurrently.
package compositor

// Version information
const (
	// Version is the current version of the library
	Version = "0.1.0-alpha.1"
)
