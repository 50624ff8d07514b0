package libtex

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl32"

	"gltex/libgl"
)

// CopyTo renders this texture into dst with a full target quad draw through
// the context's copy framebuffer. A nil prog selects the builtin copy shader
// for the texture kind. Extra uniforms are applied on top of u_texture and,
// for cube maps, u_orientation. Source and target kinds must match: 2D
// targets get a single quad copy, cube maps one draw per face.
func (t *Texture) CopyTo(dst *Texture, prog *libgl.Program, uniforms map[string]any) error {
	if err := t.validateBlitSource(); err != nil {
		return err
	}
	if err := t.sameContext(dst); err != nil {
		return err
	}
	if err := dst.validateColorTarget(); err != nil {
		return err
	}
	if t.kind != dst.kind {
		return fmt.Errorf("%w: cannot copy between texture kinds", ErrInvalidConfiguration)
	}

	if prog == nil {
		var err error
		if t.kind == Cubemap {
			prog, err = t.ctx.cubeCopyProgram()
		} else {
			prog, err = t.ctx.copyProgram()
		}
		if err != nil {
			return err
		}
	}

	return t.blitTo(dst, prog, uniforms)
}

// blitTo is the shared draw behind CopyTo and ApplyBlur: bind dst to the
// copy framebuffer, sample t and draw the fullscreen quad into it.
func (t *Texture) blitTo(dst *Texture, prog *libgl.Program, uniforms map[string]any) error {
	ctx := t.ctx
	guard := ctx.GL.PushTarget()
	defer guard.Restore()

	fb := ctx.copyFramebuffer()
	ctx.GL.Viewport(0, 0, dst.width, dst.height)
	fb.Bind(libgl.FRAMEBUFFER)
	fb.BindTargets(0)

	t.Bind(0)
	prog.Use()
	prog.SetUniform("u_texture", 0)
	for name, value := range uniforms {
		prog.SetUniform(name, value)
	}

	quad := ctx.sharedQuad()
	if dst.kind == Cubemap {
		for face := FacePositiveX; face <= FaceNegativeZ; face++ {
			fb.AttachColorFace(0, dst.glId, int(face))
			prog.SetUniform("u_orientation", faceOrientation(face))
			quad.Draw()
		}
	} else {
		fb.AttachColor(0, dst.glId)
		quad.Draw()
	}

	dst.regenerateMipmaps()
	return nil
}

// Fill clears every face of the texture to a solid color.
func (t *Texture) Fill(r, g, b, a float32) error {
	if err := t.validateColorTarget(); err != nil {
		return err
	}

	ctx := t.ctx
	guard := ctx.GL.PushTarget()
	defer guard.Restore()

	fb := ctx.drawFramebuffer()
	ctx.GL.Viewport(0, 0, t.width, t.height)
	fb.Bind(libgl.FRAMEBUFFER)
	fb.BindTargets(0)

	backend := ctx.GL.Backend()
	backend.ClearColor(r, g, b, a)
	if t.kind == Cubemap {
		for face := FacePositiveX; face <= FaceNegativeZ; face++ {
			fb.AttachColorFace(0, t.glId, int(face))
			backend.Clear(libgl.COLOR_BUFFER_BIT)
		}
	} else {
		fb.AttachColor(0, t.glId)
		backend.Clear(libgl.COLOR_BUFFER_BIT)
	}

	t.regenerateMipmaps()
	return nil
}

// ApplyBlur blurs the texture by (offsetX, offsetY) texels. 2D textures get
// the usual separable two pass blur and need one intermediate texture, which
// is created (and released) on demand when temp is nil. Cube maps get a
// single directional pass per face; blurring a cube map onto itself without
// a temp texture would read and write the same face in one pass and is
// rejected. The result lands in out, which defaults to the receiver.
func (t *Texture) ApplyBlur(offsetX, offsetY, intensity float32, temp, out *Texture) (*Texture, error) {
	if err := t.validateBlitSource(); err != nil {
		return nil, err
	}
	if out == nil {
		out = t
	}
	if err := t.sameContext(out); err != nil {
		return nil, err
	}
	if out.kind != t.kind {
		return nil, fmt.Errorf("%w: blur output kind differs from source", ErrInvalidConfiguration)
	}
	if temp != nil {
		if err := t.sameContext(temp); err != nil {
			return nil, err
		}
		if temp.kind != t.kind {
			return nil, fmt.Errorf("%w: blur temp kind differs from source", ErrInvalidConfiguration)
		}
	}

	if t.kind == Cubemap {
		return t.applyCubeBlur(offsetX, offsetY, intensity, temp, out)
	}
	return t.applyQuadBlur(offsetX, offsetY, intensity, temp, out)
}

func (t *Texture) applyQuadBlur(offsetX, offsetY, intensity float32, temp, out *Texture) (*Texture, error) {
	prog, err := t.ctx.blurProgram()
	if err != nil {
		return nil, err
	}

	if temp == nil {
		temp, err = New(t.ctx, t.width, t.height, Options{
			Format: t.format,
			Type:   t.typ,
			Filter: FilterLinear,
		})
		if err != nil {
			return nil, err
		}
		defer temp.Delete()
	}

	err = t.blitTo(temp, prog, map[string]any{
		"u_offset":    mgl32.Vec2{offsetX / float32(t.width), 0},
		"u_intensity": float32(1),
	})
	if err != nil {
		return nil, err
	}
	err = temp.blitTo(out, prog, map[string]any{
		"u_offset":    mgl32.Vec2{0, offsetY / float32(t.height)},
		"u_intensity": intensity,
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (t *Texture) applyCubeBlur(offsetX, offsetY, intensity float32, temp, out *Texture) (*Texture, error) {
	if out == t && temp == nil {
		return nil, fmt.Errorf("%w: cube map blur onto itself needs a temp texture", ErrInvalidConfiguration)
	}

	prog, err := t.ctx.cubeBlurProgram()
	if err != nil {
		return nil, err
	}

	uniforms := map[string]any{
		"u_offset":    mgl32.Vec3{offsetX / float32(t.width), offsetY / float32(t.height), 0},
		"u_intensity": intensity,
	}

	if out != t {
		if err := t.blitTo(out, prog, uniforms); err != nil {
			return nil, err
		}
		return out, nil
	}

	if err := t.blitTo(temp, prog, uniforms); err != nil {
		return nil, err
	}
	if err := temp.CopyTo(t, nil, nil); err != nil {
		return nil, err
	}
	return t, nil
}

func (t *Texture) validateBlitSource() error {
	if t.format == FormatDepth {
		return fmt.Errorf("%w: depth textures have no color sampling path", ErrInvalidConfiguration)
	}
	if t.glId == 0 || t.width == 0 || t.height == 0 {
		return fmt.Errorf("%w: texture has no storage", ErrInvalidDimensions)
	}
	return nil
}
