// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

//go:build !nogpu

package native

import (
	"fmt"

	"github.com/gogpu/naga"
	"github.com/gogpu/wgpu/hal"
)

// resolveShaderWGSL averages the samples of a multisampled color
// texture into a single-sample target. Pass execution uses it for
// explicit FSAA resolves (a fullscreen triangle per resolve).
const resolveShaderWGSL = `
struct VertexOutput {
    @builtin(position) position: vec4<f32>,
};

@vertex
fn vs_main(@builtin(vertex_index) index: u32) -> VertexOutput {
    // Fullscreen triangle from the vertex index alone.
    var out: VertexOutput;
    let x = f32(i32(index) / 2) * 4.0 - 1.0;
    let y = f32(i32(index) % 2) * 4.0 - 1.0;
    out.position = vec4<f32>(x, y, 0.0, 1.0);
    return out;
}

@group(0) @binding(0) var msaa_tex: texture_multisampled_2d<f32>;

@fragment
fn fs_main(@builtin(position) position: vec4<f32>) -> @location(0) vec4<f32> {
    let coord = vec2<i32>(position.xy);
    let count = i32(textureNumSamples(msaa_tex));
    var color = vec4<f32>(0.0);
    for (var i = 0; i < count; i = i + 1) {
        color = color + textureLoad(msaa_tex, coord, i);
    }
    return color / f32(count);
}
`

// ensureResolveShader compiles the resolve shader once and creates its
// HAL module. Called before the first multisampled texture is handed
// out, so a backend that cannot resolve fails early instead of at
// frame time.
func (b *Backend) ensureResolveShader() error {
	b.resolveOnce.Do(func() {
		spirv, err := compileWGSL(resolveShaderWGSL)
		if err != nil {
			b.resolveErr = fmt.Errorf("native: compiling resolve shader: %w", err)
			return
		}

		module, err := b.device.CreateShaderModule(&hal.ShaderModuleDescriptor{
			Label: "compositor-fsaa-resolve",
			Source: hal.ShaderSource{
				SPIRV: spirv,
			},
		})
		if err != nil {
			b.resolveErr = fmt.Errorf("native: creating resolve shader module: %w", err)
			return
		}

		b.mu.Lock()
		b.resolveModule = module
		b.mu.Unlock()
	})
	return b.resolveErr
}

// compileWGSL compiles WGSL source to SPIR-V uint32 words.
func compileWGSL(source string) ([]uint32, error) {
	spirvBytes, err := naga.Compile(source)
	if err != nil {
		return nil, err
	}

	// SPIR-V is little-endian 32-bit words.
	spirv := make([]uint32, len(spirvBytes)/4)
	for i := range spirv {
		spirv[i] = uint32(spirvBytes[i*4]) |
			uint32(spirvBytes[i*4+1])<<8 |
			uint32(spirvBytes[i*4+2])<<16 |
			uint32(spirvBytes[i*4+3])<<24
	}
	return spirv, nil
}
