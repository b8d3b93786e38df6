// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package compositor

import (
	"errors"
	"testing"

	"github.com/gogpu/gputypes"
)

func TestAddTextureDefinitionDefaults(t *testing.T) {
	r := NewTextureDefRegistry(TextureLocal)

	def, err := r.AddTextureDefinition("rt0")
	if err != nil {
		t.Fatalf("AddTextureDefinition: %v", err)
	}

	if def.Name() != "rt0" {
		t.Errorf("Name() = %q, want rt0", def.Name())
	}
	if def.Width != 0 || def.Height != 0 {
		t.Errorf("Width, Height = %d, %d, want 0, 0", def.Width, def.Height)
	}
	if def.WidthFactor != 1.0 || def.HeightFactor != 1.0 {
		t.Errorf("factors = %v, %v, want 1, 1", def.WidthFactor, def.HeightFactor)
	}
	if !def.FSAA {
		t.Error("FSAA should default to enabled")
	}
	if def.ExplicitResolve {
		t.Error("ExplicitResolve should default to false")
	}
	if def.GammaWrite != BoolUndefined {
		t.Errorf("GammaWrite = %v, want BoolUndefined", def.GammaWrite)
	}
	if def.DepthBufferID != DefaultDepthBufferPool {
		t.Errorf("DepthBufferID = %d, want %d", def.DepthBufferID, DefaultDepthBufferPool)
	}
}

func TestAddTextureDefinitionConflict(t *testing.T) {
	r := NewTextureDefRegistry(TextureLocal)

	if _, err := r.AddTextureDefinition("rt0"); err != nil {
		t.Fatalf("first AddTextureDefinition: %v", err)
	}

	_, err := r.AddTextureDefinition("rt0")
	var conflict *NameConflictError
	if !errors.As(err, &conflict) {
		t.Fatalf("duplicate AddTextureDefinition = %v, want *NameConflictError", err)
	}
	if conflict.Name != "rt0" {
		t.Errorf("conflict.Name = %q, want rt0", conflict.Name)
	}
}

func TestSameNameInDifferentRegistries(t *testing.T) {
	a := NewTextureDefRegistry(TextureLocal)
	b := NewTextureDefRegistry(TextureLocal)

	if _, err := a.AddTextureDefinition("rt0"); err != nil {
		t.Fatalf("registry a: %v", err)
	}
	if _, err := b.AddTextureDefinition("rt0"); err != nil {
		t.Errorf("registry b should accept the same name: %v", err)
	}
}

func TestGlobalPrefixConvention(t *testing.T) {
	tests := []struct {
		name    string
		texName string
		source  TextureSource
		wantErr bool
	}{
		{"global prefix with global source", "global_depth", TextureGlobal, false},
		{"no prefix with local source", "depth", TextureLocal, false},
		{"no prefix with input source", "depth_in", TextureInput, false},
		{"global prefix with local source", "global_depth", TextureLocal, true},
		{"global prefix with input source", "global_depth", TextureInput, true},
		{"no prefix with global source", "depth", TextureGlobal, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := NewTextureDefRegistry(TextureLocal)
			err := r.AddTextureSourceName(tt.texName, 0, tt.source)
			if tt.wantErr {
				var violation *NamingConventionError
				if !errors.As(err, &violation) {
					t.Fatalf("AddTextureSourceName = %v, want *NamingConventionError", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("AddTextureSourceName: %v", err)
			}
		})
	}
}

func TestGetTextureSource(t *testing.T) {
	r := NewTextureDefRegistry(TextureLocal)

	if err := r.AddTextureSourceName("rt_in", 3, TextureInput); err != nil {
		t.Fatalf("AddTextureSourceName: %v", err)
	}
	if err := r.AddTextureSourceName("global_shared", 7, TextureGlobal); err != nil {
		t.Fatalf("AddTextureSourceName: %v", err)
	}

	index, source, err := r.GetTextureSource("rt_in")
	if err != nil {
		t.Fatalf("GetTextureSource: %v", err)
	}
	if index != 3 || source != TextureInput {
		t.Errorf("GetTextureSource(rt_in) = (%d, %v), want (3, input)", index, source)
	}

	index, source, err = r.GetTextureSource("global_shared")
	if err != nil {
		t.Fatalf("GetTextureSource: %v", err)
	}
	if index != 7 || source != TextureGlobal {
		t.Errorf("GetTextureSource(global_shared) = (%d, %v), want (7, global)", index, source)
	}

	_, _, err = r.GetTextureSource("missing")
	var notFound *NameNotFoundError
	if !errors.As(err, &notFound) {
		t.Fatalf("GetTextureSource(missing) = %v, want *NameNotFoundError", err)
	}
}

func TestAddTextureSourceNameIndexRange(t *testing.T) {
	r := NewTextureDefRegistry(TextureLocal)

	if err := r.AddTextureSourceName("rt_max", MaxTextureIndex, TextureLocal); err != nil {
		t.Errorf("index MaxTextureIndex should be accepted: %v", err)
	}
	if err := r.AddTextureSourceName("rt_over", MaxTextureIndex+1, TextureLocal); !errors.Is(err, ErrTextureIndexRange) {
		t.Errorf("index over range = %v, want ErrTextureIndexRange", err)
	}
	if err := r.AddTextureSourceName("rt_neg", -1, TextureLocal); !errors.Is(err, ErrTextureIndexRange) {
		t.Errorf("negative index = %v, want ErrTextureIndexRange", err)
	}
}

func TestNumInputChannels(t *testing.T) {
	r := NewTextureDefRegistry(TextureLocal)

	if got := r.NumInputChannels(); got != 0 {
		t.Errorf("NumInputChannels() = %d, want 0 for empty registry", got)
	}

	if err := r.AddTextureSourceName("in0", 0, TextureInput); err != nil {
		t.Fatal(err)
	}
	if err := r.AddTextureSourceName("in1", 1, TextureInput); err != nil {
		t.Fatal(err)
	}
	if _, err := r.AddTextureDefinition("rt0"); err != nil {
		t.Fatal(err)
	}
	if err := r.AddTextureSourceName("global_shared", 0, TextureGlobal); err != nil {
		t.Fatal(err)
	}

	if got := r.NumInputChannels(); got != 2 {
		t.Errorf("NumInputChannels() = %d, want 2", got)
	}
}

func TestDefinitionOrderAndReserve(t *testing.T) {
	r := NewTextureDefRegistry(TextureLocal)
	r.Reserve(3)

	first, err := r.AddTextureDefinition("rt0")
	if err != nil {
		t.Fatal(err)
	}
	for _, name := range []string{"rt1", "rt2"} {
		if _, err := r.AddTextureDefinition(name); err != nil {
			t.Fatal(err)
		}
	}

	defs := r.Definitions()
	if len(defs) != 3 {
		t.Fatalf("len(Definitions()) = %d, want 3", len(defs))
	}
	for i, name := range []string{"rt0", "rt1", "rt2"} {
		if defs[i].Name() != name {
			t.Errorf("Definitions()[%d].Name() = %q, want %q", i, defs[i].Name(), name)
		}
	}

	// The pointer returned before growth still refers to the stored
	// definition.
	if first != defs[0] {
		t.Error("definition reference invalidated by later additions")
	}

	// Registered index matches position.
	index, source, err := r.GetTextureSource("rt2")
	if err != nil {
		t.Fatal(err)
	}
	if index != 2 || source != TextureLocal {
		t.Errorf("GetTextureSource(rt2) = (%d, %v), want (2, local)", index, source)
	}
}

func TestResolveSize(t *testing.T) {
	tests := []struct {
		name                  string
		width, height         uint32
		wFactor, hFactor      float32
		refW, refH            uint32
		wantW, wantH          uint32
	}{
		{"explicit size", 512, 256, 1, 1, 1920, 1080, 512, 256},
		{"full adapt", 0, 0, 1, 1, 1920, 1080, 1920, 1080},
		{"half adapt", 0, 0, 0.5, 0.5, 1920, 1080, 960, 540},
		{"mixed", 0, 768, 0.25, 1, 1920, 1080, 480, 768},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			def := newTextureDefinition("rt")
			def.Width, def.Height = tt.width, tt.height
			def.WidthFactor, def.HeightFactor = tt.wFactor, tt.hFactor

			w, h := def.ResolveSize(tt.refW, tt.refH)
			if w != tt.wantW || h != tt.wantH {
				t.Errorf("ResolveSize(%d, %d) = (%d, %d), want (%d, %d)",
					tt.refW, tt.refH, w, h, tt.wantW, tt.wantH)
			}
		})
	}
}

func TestBoolSettingResolve(t *testing.T) {
	tests := []struct {
		setting  BoolSetting
		fallback bool
		want     bool
	}{
		{BoolUndefined, true, true},
		{BoolUndefined, false, false},
		{BoolFalse, true, false},
		{BoolFalse, false, false},
		{BoolTrue, true, true},
		{BoolTrue, false, true},
	}

	for _, tt := range tests {
		if got := tt.setting.Resolve(tt.fallback); got != tt.want {
			t.Errorf("BoolSetting(%d).Resolve(%v) = %v, want %v",
				tt.setting, tt.fallback, got, tt.want)
		}
	}
}

func TestIsMRT(t *testing.T) {
	def := newTextureDefinition("rt")
	if def.IsMRT() {
		t.Error("no formats should not be MRT")
	}
	def.Formats = []gputypes.TextureFormat{gputypes.TextureFormatRGBA8Unorm}
	if def.IsMRT() {
		t.Error("one format should not be MRT")
	}
	def.Formats = append(def.Formats, gputypes.TextureFormatR32Float)
	if !def.IsMRT() {
		t.Error("two formats should be MRT")
	}
}
