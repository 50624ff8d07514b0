package libtex

import (
	"errors"
	"fmt"
	"testing"

	"gltex/libgl"
)

func TestDrawToInvokesCallbackOnce(t *testing.T) {
	ctx, b := newTestContext(t)
	tex, err := New(ctx, 64, 64, Options{})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	b.Reset()

	var faces []Face
	err = tex.DrawTo(func(target *Texture, face Face) error {
		if target != tex {
			t.Errorf("callback received a different texture")
		}
		faces = append(faces, face)
		return nil
	})
	if err != nil {
		t.Fatalf("DrawTo: %v", err)
	}
	if len(faces) != 1 || faces[0] != FaceNone {
		t.Errorf("got faces %v, want [FaceNone]", faces)
	}
	if ctx.GL.ViewportRect != [4]int{0, 0, 0, 0} {
		t.Errorf("viewport not restored, got %v", ctx.GL.ViewportRect)
	}
}

func TestDrawToCubeVisitsFacesInOrder(t *testing.T) {
	ctx, b := newTestContext(t)
	tex, err := New(ctx, 64, 64, Options{Kind: Cubemap})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	b.Reset()

	var faces []Face
	err = tex.DrawTo(func(_ *Texture, face Face) error {
		faces = append(faces, face)
		return nil
	})
	if err != nil {
		t.Fatalf("DrawTo: %v", err)
	}
	want := []Face{FacePositiveX, FaceNegativeX, FacePositiveY, FaceNegativeY, FacePositiveZ, FaceNegativeZ}
	if len(faces) != len(want) {
		t.Fatalf("got %d face callbacks, want 6", len(faces))
	}
	for i := range want {
		if faces[i] != want[i] {
			t.Errorf("face %d = %v, want %v", i, faces[i], want[i])
		}
	}

	attaches := b.Named("NamedFramebufferTextureLayer")
	if len(attaches) != 6 {
		t.Fatalf("got %d face attachments, want 6", len(attaches))
	}
	for i, call := range attaches {
		if layer := call.Args[4].(int); layer != i {
			t.Errorf("attachment %d bound layer %d", i, layer)
		}
	}
}

func TestDrawToRestoresTargetOnCallbackError(t *testing.T) {
	ctx, _ := newTestContext(t)
	tex, err := New(ctx, 64, 64, Options{})
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	ctx.GL.BindFramebuffer(libgl.FRAMEBUFFER, 42)
	ctx.GL.Viewport(0, 0, 800, 600)

	fail := fmt.Errorf("draw failed")
	err = tex.DrawTo(func(_ *Texture, _ Face) error {
		return fail
	})
	if !errors.Is(err, fail) {
		t.Fatalf("got %v, want the callback error", err)
	}
	if ctx.GL.DrawFramebuffer != 42 || ctx.GL.ReadFramebuffer != 42 {
		t.Errorf("framebuffer not restored, draw=%d read=%d", ctx.GL.DrawFramebuffer, ctx.GL.ReadFramebuffer)
	}
	if ctx.GL.ViewportRect != [4]int{0, 0, 800, 600} {
		t.Errorf("viewport not restored, got %v", ctx.GL.ViewportRect)
	}
}

func TestDrawToAttachesPooledDepth(t *testing.T) {
	ctx, b := newTestContext(t)
	tex, err := New(ctx, 64, 64, Options{})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	b.Reset()

	if err := tex.DrawTo(func(_ *Texture, _ Face) error { return nil }); err != nil {
		t.Fatalf("DrawTo: %v", err)
	}

	attaches := b.Named("NamedFramebufferRenderbuffer")
	// Attach before the draw, detach after.
	if len(attaches) != 2 {
		t.Fatalf("got %d renderbuffer attachments, want attach+detach", len(attaches))
	}
	if rb := attaches[0].Args[2].(uint32); rb == 0 {
		t.Errorf("depth attach bound renderbuffer 0")
	}
	if rb := attaches[1].Args[2].(uint32); rb != 0 {
		t.Errorf("depth was not detached after the draw")
	}
	if n := ctx.PooledRenderbuffers(); n != 1 {
		t.Errorf("pooled %d renderbuffers, want 1", n)
	}
}

func TestDrawToRejectsDepthAndDeferredTargets(t *testing.T) {
	ctx, _ := newTestContext(t)

	depth, err := New(ctx, 64, 64, Options{Format: FormatDepth, Type: TypeFloat})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	err = depth.DrawTo(func(_ *Texture, _ Face) error { return nil })
	if !errors.Is(err, ErrInvalidConfiguration) {
		t.Errorf("depth target: got %v, want ErrInvalidConfiguration", err)
	}

	deferred, err := New(ctx, 0, 0, Options{})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	err = deferred.DrawTo(func(_ *Texture, _ Face) error { return nil })
	if !errors.Is(err, ErrInvalidDimensions) {
		t.Errorf("deferred target: got %v, want ErrInvalidDimensions", err)
	}
}

func TestDrawToDepthValidatesPair(t *testing.T) {
	ctx, _ := newTestContext(t)

	color, _ := New(ctx, 64, 64, Options{})
	depth, _ := New(ctx, 64, 64, Options{Format: FormatDepth, Type: TypeFloat})
	smallDepth, _ := New(ctx, 32, 32, Options{Format: FormatDepth, Type: TypeFloat})

	err := color.DrawToDepth(color, func(_ *Texture, _ Face) error { return nil })
	if !errors.Is(err, ErrInvalidConfiguration) {
		t.Errorf("color as depth: got %v, want ErrInvalidConfiguration", err)
	}

	err = color.DrawToDepth(smallDepth, func(_ *Texture, _ Face) error { return nil })
	if !errors.Is(err, ErrInvalidConfiguration) {
		t.Errorf("size mismatch: got %v, want ErrInvalidConfiguration", err)
	}

	ran := false
	err = color.DrawToDepth(depth, func(_ *Texture, _ Face) error {
		ran = true
		return nil
	})
	if err != nil {
		t.Fatalf("DrawToDepth: %v", err)
	}
	if !ran {
		t.Errorf("callback did not run")
	}
}

func TestDrawToMultiValidatesBeforeTouchingState(t *testing.T) {
	ctx, b := newTestContext(t)
	caps := ctx.GL.Caps()
	caps.MaxDrawBuffers = 2
	ctx.GL.SetCaps(caps)

	t1, _ := New(ctx, 64, 64, Options{})
	t2, _ := New(ctx, 64, 64, Options{})
	t3, _ := New(ctx, 64, 64, Options{})
	small, _ := New(ctx, 32, 32, Options{})
	half, _ := New(ctx, 64, 64, Options{Type: TypeHalfFloat})
	b.Reset()

	err := DrawToMulti([]*Texture{t1, t2, t3}, func(_ []*Texture) error { return nil })
	if !errors.Is(err, ErrCapabilityMissing) {
		t.Errorf("over limit: got %v, want ErrCapabilityMissing", err)
	}
	err = DrawToMulti([]*Texture{t1, small}, func(_ []*Texture) error { return nil })
	if !errors.Is(err, ErrInvalidConfiguration) {
		t.Errorf("size mismatch: got %v, want ErrInvalidConfiguration", err)
	}
	err = DrawToMulti([]*Texture{t1, half}, func(_ []*Texture) error { return nil })
	if !errors.Is(err, ErrInvalidConfiguration) {
		t.Errorf("type mismatch: got %v, want ErrInvalidConfiguration", err)
	}
	err = DrawToMulti(nil, func(_ []*Texture) error { return nil })
	if !errors.Is(err, ErrInvalidConfiguration) {
		t.Errorf("no targets: got %v, want ErrInvalidConfiguration", err)
	}
	if len(b.Calls) != 0 {
		t.Errorf("failed validation still touched the backend: %v", b.Calls)
	}
}

func TestDrawToMultiBindsAllTargets(t *testing.T) {
	ctx, b := newTestContext(t)

	t1, _ := New(ctx, 64, 64, Options{})
	t2, _ := New(ctx, 64, 64, Options{})
	b.Reset()

	err := DrawToMulti([]*Texture{t1, t2}, func(targets []*Texture) error {
		if len(targets) != 2 {
			t.Errorf("callback got %d targets", len(targets))
		}
		return nil
	})
	if err != nil {
		t.Fatalf("DrawToMulti: %v", err)
	}

	attaches := b.Named("NamedFramebufferTexture")
	// Two attaches for the draw plus the detach of the extra attachment.
	if len(attaches) != 3 {
		t.Fatalf("got %d color attachment calls, want 3", len(attaches))
	}
	last := attaches[2]
	if att := last.Args[1].(uint32); att != libgl.COLOR_ATTACHMENT0+1 {
		t.Errorf("detach targeted attachment %d, want 1", att-libgl.COLOR_ATTACHMENT0)
	}
	if texId := last.Args[2].(uint32); texId != 0 {
		t.Errorf("extra color attachment still bound to texture %d", texId)
	}
	buffers := b.Named("NamedFramebufferDrawBuffers")
	if len(buffers) != 1 {
		t.Fatalf("draw buffers were not selected")
	}
	if atts := buffers[0].Args[1].([]uint32); len(atts) != 2 {
		t.Errorf("selected %d draw buffers, want 2", len(atts))
	}
}
