package libgl

import "fmt"

// Framebuffer wraps one framebuffer object. Attachments are rebound freely;
// nothing is assumed to persist between uses.
type Framebuffer struct {
	ctx  *Context
	glId uint32
}

func NewFramebuffer(ctx *Context) *Framebuffer {
	return &Framebuffer{
		ctx:  ctx,
		glId: ctx.backend.CreateFramebuffer(),
	}
}

func (fb *Framebuffer) Id() uint32 {
	return fb.glId
}

// Bind makes fb the target for target, one of FRAMEBUFFER,
// DRAW_FRAMEBUFFER or READ_FRAMEBUFFER.
func (fb *Framebuffer) Bind(target uint32) {
	fb.ctx.BindFramebuffer(target, fb.glId)
}

// AttachColor attaches texture to color attachment index.
func (fb *Framebuffer) AttachColor(index int, texture uint32) {
	fb.ctx.backend.NamedFramebufferTexture(fb.glId, COLOR_ATTACHMENT0+uint32(index), texture, 0)
}

// AttachColorFace attaches one cube map face to color attachment index.
func (fb *Framebuffer) AttachColorFace(index int, texture uint32, face int) {
	fb.ctx.backend.NamedFramebufferTextureLayer(fb.glId, COLOR_ATTACHMENT0+uint32(index), texture, 0, face)
}

func (fb *Framebuffer) AttachDepthTexture(texture uint32) {
	fb.ctx.backend.NamedFramebufferTexture(fb.glId, DEPTH_ATTACHMENT, texture, 0)
}

func (fb *Framebuffer) AttachDepthRenderbuffer(renderbuffer uint32) {
	fb.ctx.backend.NamedFramebufferRenderbuffer(fb.glId, DEPTH_ATTACHMENT, renderbuffer)
}

// DetachDepth clears the depth attachment so a pooled renderbuffer does not
// stay referenced after a draw.
func (fb *Framebuffer) DetachDepth() {
	fb.ctx.backend.NamedFramebufferRenderbuffer(fb.glId, DEPTH_ATTACHMENT, 0)
}

// BindTargets selects the color attachments fragment outputs are written to.
func (fb *Framebuffer) BindTargets(indices ...int) {
	attachments := make([]uint32, len(indices))
	for i, v := range indices {
		attachments[i] = COLOR_ATTACHMENT0 + uint32(v)
	}
	fb.ctx.backend.NamedFramebufferDrawBuffers(fb.glId, attachments)
}

// ReadBuffer selects the color attachment ReadPixels reads from.
func (fb *Framebuffer) ReadBuffer(index int) {
	fb.ctx.backend.NamedFramebufferReadBuffer(fb.glId, COLOR_ATTACHMENT0+uint32(index))
}

// Check maps the completeness status for target to a descriptive error.
func (fb *Framebuffer) Check(target uint32) error {
	status := fb.ctx.backend.CheckNamedFramebufferStatus(fb.glId, target)
	switch status {
	case FRAMEBUFFER_COMPLETE:
		return nil
	case FRAMEBUFFER_INCOMPLETE_ATTACHMENT:
		return fmt.Errorf("an attachment is framebuffer incomplete (GL_FRAMEBUFFER_INCOMPLETE_ATTACHMENT)")
	case FRAMEBUFFER_INCOMPLETE_MISSING_ATTACHMENT:
		return fmt.Errorf("the framebuffer has no attachments (GL_FRAMEBUFFER_INCOMPLETE_MISSING_ATTACHMENT)")
	case FRAMEBUFFER_INCOMPLETE_DRAW_BUFFER:
		return fmt.Errorf("the object type of a draw attachment is none (GL_FRAMEBUFFER_INCOMPLETE_DRAW_BUFFER)")
	case FRAMEBUFFER_INCOMPLETE_READ_BUFFER:
		return fmt.Errorf("the object type of the read attachment is none (GL_FRAMEBUFFER_INCOMPLETE_READ_BUFFER)")
	case FRAMEBUFFER_UNSUPPORTED:
		return fmt.Errorf("the combination of internal formats of the attachments is not supported (GL_FRAMEBUFFER_UNSUPPORTED)")
	case FRAMEBUFFER_INCOMPLETE_MULTISAMPLE:
		return fmt.Errorf("the attachments have different sampling (GL_FRAMEBUFFER_INCOMPLETE_MULTISAMPLE)")
	case FRAMEBUFFER_INCOMPLETE_LAYER_TARGETS:
		return fmt.Errorf("GL_FRAMEBUFFER_INCOMPLETE_LAYER_TARGETS")
	}
	return fmt.Errorf("unknown framebuffer status: %X", status)
}

func (fb *Framebuffer) Delete() {
	fb.ctx.backend.DeleteFramebuffer(fb.glId)
	fb.glId = 0
}

// Renderbuffer wraps one renderbuffer object, used here only as transient
// depth storage for render-to-texture.
type Renderbuffer struct {
	ctx           *Context
	glId          uint32
	Width, Height int
}

func NewRenderbuffer(ctx *Context) *Renderbuffer {
	return &Renderbuffer{
		ctx:  ctx,
		glId: ctx.backend.CreateRenderbuffer(),
	}
}

func (rb *Renderbuffer) Id() uint32 {
	return rb.glId
}

// AllocateDepth sizes the renderbuffer as a 24 bit depth buffer.
func (rb *Renderbuffer) AllocateDepth(width, height int) {
	rb.ctx.backend.NamedRenderbufferStorage(rb.glId, DEPTH_COMPONENT24, width, height)
	rb.Width = width
	rb.Height = height
}

func (rb *Renderbuffer) Delete() {
	rb.ctx.backend.DeleteRenderbuffer(rb.glId)
	rb.glId = 0
}
