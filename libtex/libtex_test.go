package libtex

import (
	"testing"

	"gltex/libgl"
	"gltex/libgl/gltest"
)

func newTestContext(t *testing.T) (*Context, *gltest.Backend) {
	t.Helper()
	backend := gltest.NewBackend()
	ctx := NewContext(libgl.NewContext(backend))
	backend.Reset()
	return ctx, backend
}
