// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

// Package native provides a Pure Go GPU texture backend using gogpu/wgpu.
//
// Import it for its registration side effect:
//
//	import _ "github.com/gogpu/compositor/backend/native"
//
// The backend registers itself at priority 100 and is selected by
// backend.New whenever a HAL device is supplied through Options.Device.
// The provider must expose the HAL handles the way gpucontext hosts do,
// via HalDevice() any and HalQueue() any.
//
// Textures are allocated render-attachment capable and bindable as
// shader inputs. Multisampled textures additionally get a SPIR-V
// resolve shader (compiled from WGSL via gogpu/naga) so explicit
// resolves can run as a dedicated pass.
//
// Build with the nogpu tag to exclude this package's GPU code paths.
package native
