package libtex

import (
	"time"

	"gltex/libgl"
)

// Context carries the per GL context resources the texture operations share:
// the draw and copy framebuffers, the fullscreen quad, the builtin shader
// programs and the depth renderbuffer pool. Textures are bound to the
// Context that created them.
type Context struct {
	GL *libgl.Context

	drawFB *libgl.Framebuffer
	copyFB *libgl.Framebuffer

	quad *libgl.Quad

	copyProg     *libgl.Program
	cubeCopyProg *libgl.Program
	blurProg     *libgl.Program
	cubeBlurProg *libgl.Program

	pool           map[rbKey]*pooledRenderbuffer
	poolingEnabled bool
	poolTTL        time.Duration
	scratch        *libgl.Renderbuffer

	now func() time.Time
}

// DefaultRenderbufferTTL is how long an unused pooled depth renderbuffer
// survives before a sweep releases it.
const DefaultRenderbufferTTL = 60 * time.Second

func NewContext(gl *libgl.Context) *Context {
	return &Context{
		GL:             gl,
		pool:           map[rbKey]*pooledRenderbuffer{},
		poolingEnabled: true,
		poolTTL:        DefaultRenderbufferTTL,
		now:            time.Now,
	}
}

// SetRenderbufferPooling toggles reuse of depth renderbuffers across
// render-to-texture calls. With pooling off a single scratch renderbuffer is
// resized on demand instead.
func (ctx *Context) SetRenderbufferPooling(enabled bool) {
	ctx.poolingEnabled = enabled
}

// SetRenderbufferTTL adjusts the idle eviction threshold of the pool.
func (ctx *Context) SetRenderbufferTTL(ttl time.Duration) {
	ctx.poolTTL = ttl
}

func (ctx *Context) drawFramebuffer() *libgl.Framebuffer {
	if ctx.drawFB == nil {
		ctx.drawFB = libgl.NewFramebuffer(ctx.GL)
	}
	return ctx.drawFB
}

func (ctx *Context) copyFramebuffer() *libgl.Framebuffer {
	if ctx.copyFB == nil {
		ctx.copyFB = libgl.NewFramebuffer(ctx.GL)
	}
	return ctx.copyFB
}

func (ctx *Context) sharedQuad() *libgl.Quad {
	if ctx.quad == nil {
		ctx.quad = libgl.NewQuad(ctx.GL)
	}
	return ctx.quad
}

// Delete releases every shared resource the context created. Textures are
// owned by their callers and stay untouched.
func (ctx *Context) Delete() {
	for key, rb := range ctx.pool {
		rb.rb.Delete()
		delete(ctx.pool, key)
	}
	if ctx.scratch != nil {
		ctx.scratch.Delete()
		ctx.scratch = nil
	}
	for _, fb := range []*libgl.Framebuffer{ctx.drawFB, ctx.copyFB} {
		if fb != nil {
			fb.Delete()
		}
	}
	ctx.drawFB, ctx.copyFB = nil, nil
	if ctx.quad != nil {
		ctx.quad.Delete()
		ctx.quad = nil
	}
	for _, prog := range []*libgl.Program{ctx.copyProg, ctx.cubeCopyProg, ctx.blurProg, ctx.cubeBlurProg} {
		if prog != nil {
			prog.Delete()
		}
	}
	ctx.copyProg, ctx.cubeCopyProg, ctx.blurProg, ctx.cubeBlurProg = nil, nil, nil, nil
}
