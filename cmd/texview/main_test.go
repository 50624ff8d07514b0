package main

import (
	"testing"

	"gltex/libgl"
	"gltex/libgl/gltest"
	"gltex/libtex"
)

func newViewerContext(t *testing.T) (*libtex.Context, *gltest.Backend) {
	t.Helper()
	b := gltest.NewBackend()
	ctx := libtex.NewContext(libgl.NewContext(b))
	b.Reset()
	return ctx, b
}

func TestApplyBlur2D(t *testing.T) {
	ctx, b := newViewerContext(t)
	tex, err := libtex.New(ctx, 8, 8, libtex.Options{})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	b.Reset()

	if err := applyBlur(ctx, tex, 2); err != nil {
		t.Fatalf("applyBlur: %v", err)
	}
	// Horizontal and vertical pass.
	if n := len(b.Named("DrawArrays")); n != 2 {
		t.Errorf("DrawArrays called %d times, want 2", n)
	}
}

func TestApplyBlurCubemapUsesScratchTexture(t *testing.T) {
	ctx, b := newViewerContext(t)
	tex, err := libtex.New(ctx, 8, 8, libtex.Options{Kind: libtex.Cubemap})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	b.Reset()

	if err := applyBlur(ctx, tex, 2); err != nil {
		t.Fatalf("applyBlur: %v", err)
	}

	// One directional pass per face into the scratch cube, then the copy
	// back onto the source.
	if n := len(b.Named("DrawArrays")); n != 12 {
		t.Errorf("DrawArrays called %d times, want 12", n)
	}
	if n := len(b.Named("DeleteTexture")); n != 1 {
		t.Errorf("scratch texture deletions = %d, want 1", n)
	}
}
