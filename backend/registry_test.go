// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package backend

import (
	"errors"
	"testing"
)

// TestRegistryRegister tests backend registration.
func TestRegistryRegister(t *testing.T) {
	r := NewRegistry()

	factory := func(opts Options) (TextureBackend, error) {
		return NewSoftware(opts), nil
	}

	r.Register("test", 50, factory, nil)

	entry, ok := r.Get("test")
	if !ok {
		t.Fatal("registered backend not found")
	}

	if entry.Name != "test" {
		t.Errorf("Name = %s, want test", entry.Name)
	}
	if entry.Priority != 50 {
		t.Errorf("Priority = %d, want 50", entry.Priority)
	}
	if !entry.Available() {
		t.Error("backend should be available (nil Available func)")
	}
}

// TestRegistryUnregister tests backend removal.
func TestRegistryUnregister(t *testing.T) {
	r := NewRegistry()

	r.Register("temp", 10, func(opts Options) (TextureBackend, error) {
		return NewSoftware(opts), nil
	}, nil)

	if _, ok := r.Get("temp"); !ok {
		t.Fatal("backend should exist before unregister")
	}

	r.Unregister("temp")

	if _, ok := r.Get("temp"); ok {
		t.Error("backend should not exist after unregister")
	}
}

// TestRegistryList tests priority ordering.
func TestRegistryList(t *testing.T) {
	r := NewRegistry()

	factory := func(opts Options) (TextureBackend, error) {
		return NewSoftware(opts), nil
	}
	r.Register("low", 10, factory, nil)
	r.Register("high", 100, factory, nil)
	r.Register("mid", 50, factory, nil)

	list := r.List()
	if len(list) != 3 {
		t.Fatalf("expected 3 backends, got %d", len(list))
	}

	// Sorted by priority, highest first.
	want := []string{"high", "mid", "low"}
	for i, name := range want {
		if list[i] != name {
			t.Errorf("list[%d] = %s, want %s", i, list[i], name)
		}
	}
}

// TestRegistryAvailable tests filtering by availability.
func TestRegistryAvailable(t *testing.T) {
	r := NewRegistry()

	factory := func(opts Options) (TextureBackend, error) {
		return NewSoftware(opts), nil
	}
	r.Register("available", 100, factory, func() bool { return true })
	r.Register("unavailable", 200, factory, func() bool { return false })

	available := r.Available()
	if len(available) != 1 {
		t.Fatalf("expected 1 available backend, got %d", len(available))
	}
	if available[0] != "available" {
		t.Errorf("expected 'available', got %s", available[0])
	}
}

// TestRegistryNew tests best-available selection.
func TestRegistryNew(t *testing.T) {
	r := NewRegistry()

	r.Register("broken", 100, func(opts Options) (TextureBackend, error) {
		return nil, errors.New("boom")
	}, nil)
	r.Register("working", 50, func(opts Options) (TextureBackend, error) {
		return NewSoftware(opts), nil
	}, nil)

	tb, err := r.New(Options{})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	defer tb.Close()

	// Falls through the failing high-priority backend.
	if tb.Name() != SoftwareName {
		t.Errorf("Name() = %s, want %s", tb.Name(), SoftwareName)
	}
}

// TestRegistryNewEmpty tests behavior with no registered backends.
func TestRegistryNewEmpty(t *testing.T) {
	r := NewRegistry()

	if _, err := r.New(Options{}); !errors.Is(err, ErrNoBackendAvailable) {
		t.Errorf("New on empty registry = %v, want ErrNoBackendAvailable", err)
	}
}

// TestRegistryNewByName tests explicit selection and its errors.
func TestRegistryNewByName(t *testing.T) {
	r := NewRegistry()

	r.Register("test", 50, func(opts Options) (TextureBackend, error) {
		return NewSoftware(opts), nil
	}, nil)
	r.Register("down", 50, func(opts Options) (TextureBackend, error) {
		return NewSoftware(opts), nil
	}, func() bool { return false })

	if _, err := r.NewByName("test", Options{}); err != nil {
		t.Errorf("NewByName(test): %v", err)
	}

	var notFound *NotFoundError
	if _, err := r.NewByName("nope", Options{}); !errors.As(err, &notFound) {
		t.Errorf("NewByName(nope) = %v, want *NotFoundError", err)
	}

	var unavailable *UnavailableError
	if _, err := r.NewByName("down", Options{}); !errors.As(err, &unavailable) {
		t.Errorf("NewByName(down) = %v, want *UnavailableError", err)
	}
}

// TestGlobalRegistryHasSoftware verifies the built-in registration.
func TestGlobalRegistryHasSoftware(t *testing.T) {
	entry, ok := Get(SoftwareName)
	if !ok {
		t.Fatal("software backend should be registered in the global registry")
	}
	if entry.Priority != 10 {
		t.Errorf("software priority = %d, want 10", entry.Priority)
	}

	tb, err := NewByName(SoftwareName, Options{})
	if err != nil {
		t.Fatalf("NewByName(software): %v", err)
	}
	tb.Close()
}
