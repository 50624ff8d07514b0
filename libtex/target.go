package libtex

import (
	"fmt"

	"gltex/libgl"
)

// Face selects a cube map face. Render callbacks for 2D textures receive
// FaceNone; cube map callbacks are invoked once per face in the fixed
// +X, -X, +Y, -Y, +Z, -Z order.
type Face int

const (
	FaceNone      Face = -1
	FacePositiveX Face = 0
	FaceNegativeX Face = 1
	FacePositiveY Face = 2
	FaceNegativeY Face = 3
	FacePositiveZ Face = 4
	FaceNegativeZ Face = 5
)

// RenderFunc issues the draw calls for one render-to-texture pass. It must
// not rebind the framebuffer; the surrounding call owns that state.
type RenderFunc func(t *Texture, face Face) error

// DrawTo renders into the texture through the context's shared framebuffer,
// borrowing a pooled depth renderbuffer of matching size. The previously
// bound framebuffer and viewport are restored on every exit path, including
// a failing callback.
func (t *Texture) DrawTo(fn RenderFunc) error {
	if err := t.validateColorTarget(); err != nil {
		return err
	}

	guard := t.ctx.GL.PushTarget()
	defer guard.Restore()

	fb := t.ctx.drawFramebuffer()
	depth := t.ctx.acquireRenderbuffer(t.width, t.height)
	defer fb.DetachDepth()

	t.ctx.GL.Viewport(0, 0, t.width, t.height)
	fb.Bind(libgl.FRAMEBUFFER)
	fb.AttachDepthRenderbuffer(depth.Id())
	fb.BindTargets(0)

	if t.kind == Cubemap {
		for face := FacePositiveX; face <= FaceNegativeZ; face++ {
			fb.AttachColorFace(0, t.glId, int(face))
			if err := fn(t, face); err != nil {
				return err
			}
		}
		return nil
	}

	fb.AttachColor(0, t.glId)
	return fn(t, FaceNone)
}

// DrawToDepth renders into a color texture and a caller supplied depth
// texture instead of a pooled renderbuffer. Both must be 2D and share
// dimensions.
func (t *Texture) DrawToDepth(depth *Texture, fn RenderFunc) error {
	if err := t.validateColorTarget(); err != nil {
		return err
	}
	if err := t.sameContext(depth); err != nil {
		return err
	}
	if depth.format != FormatDepth {
		return fmt.Errorf("%w: depth attachment must have depth format", ErrInvalidConfiguration)
	}
	if t.kind != Texture2D || depth.kind != Texture2D {
		return fmt.Errorf("%w: depth pair rendering needs 2D textures", ErrInvalidConfiguration)
	}
	if t.width != depth.width || t.height != depth.height {
		return fmt.Errorf("%w: color is %dx%d but depth is %dx%d", ErrInvalidConfiguration, t.width, t.height, depth.width, depth.height)
	}

	guard := t.ctx.GL.PushTarget()
	defer guard.Restore()

	fb := t.ctx.drawFramebuffer()
	defer fb.DetachDepth()

	t.ctx.GL.Viewport(0, 0, t.width, t.height)
	fb.Bind(libgl.FRAMEBUFFER)
	fb.AttachColor(0, t.glId)
	fb.AttachDepthTexture(depth.glId)
	fb.BindTargets(0)

	return fn(t, FaceNone)
}

// DrawToMulti renders into several color textures at once. All targets must
// be 2D, agree in width, height and component type, and fit within the
// context's draw buffer limit. Validation completes before any GL state is
// touched.
func DrawToMulti(targets []*Texture, fn func(targets []*Texture) error) error {
	if len(targets) == 0 {
		return fmt.Errorf("%w: no render targets", ErrInvalidConfiguration)
	}
	first := targets[0]
	ctx := first.ctx
	caps := ctx.GL.Caps()
	if len(targets) > caps.MaxDrawBuffers || len(targets) > caps.MaxAttachments {
		return fmt.Errorf("%w: %d render targets, at most %d supported", ErrCapabilityMissing, len(targets), minInt(caps.MaxDrawBuffers, caps.MaxAttachments))
	}
	for _, t := range targets {
		if err := t.validateColorTarget(); err != nil {
			return err
		}
		if err := first.sameContext(t); err != nil {
			return err
		}
		if t.kind != Texture2D {
			return fmt.Errorf("%w: multi target rendering needs 2D textures", ErrInvalidConfiguration)
		}
		if t.width != first.width || t.height != first.height {
			return fmt.Errorf("%w: render targets differ in size, %dx%d vs %dx%d", ErrInvalidConfiguration, t.width, t.height, first.width, first.height)
		}
		if t.typ != first.typ {
			return fmt.Errorf("%w: render targets differ in component type", ErrInvalidConfiguration)
		}
	}

	guard := ctx.GL.PushTarget()
	defer guard.Restore()

	fb := ctx.drawFramebuffer()
	depth := ctx.acquireRenderbuffer(first.width, first.height)
	defer fb.DetachDepth()
	// The shared framebuffer must not keep the extra color attachments past
	// this draw; single target draws only rebind attachment 0.
	defer func() {
		for i := 1; i < len(targets); i++ {
			fb.AttachColor(i, 0)
		}
	}()

	ctx.GL.Viewport(0, 0, first.width, first.height)
	fb.Bind(libgl.FRAMEBUFFER)
	fb.AttachDepthRenderbuffer(depth.Id())
	indices := make([]int, len(targets))
	for i, t := range targets {
		fb.AttachColor(i, t.glId)
		indices[i] = i
	}
	fb.BindTargets(indices...)

	return fn(targets)
}

func (t *Texture) validateColorTarget() error {
	if t.format == FormatDepth {
		return fmt.Errorf("%w: depth texture cannot be a color target", ErrInvalidConfiguration)
	}
	if t.glId == 0 || t.width == 0 || t.height == 0 {
		return fmt.Errorf("%w: texture has no storage", ErrInvalidDimensions)
	}
	return nil
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}
