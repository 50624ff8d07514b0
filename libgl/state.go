package libgl

import (
	"strings"
	"sync"
)

// Context tracks the binding state of one GL context so redundant binds are
// skipped and the current target can be captured and restored. All methods
// must be called from the thread that owns the GL context; only Schedule is
// safe to call from other goroutines.
type Context struct {
	backend Backend

	TextureUnits      []uint32
	ActiveTextureUnit int
	DrawFramebuffer   uint32
	ReadFramebuffer   uint32
	VertexArray       uint32
	Program           uint32
	ViewportRect      [4]int

	caps Caps
	env  Environment

	pendingMu sync.Mutex
	pending   []func()
}

// Caps are the limits and optional features of the active context, queried
// once at context creation.
type Caps struct {
	MaxTextureSize    int
	MaxTextureUnits   int
	MaxDrawBuffers    int
	MaxAttachments    int
	MaxAnisotropy     float32
	DepthTextures     bool
	FloatTextures     bool
	HalfFloatTextures bool
}

type Environment struct {
	Vendor   string
	Renderer string
	Version  string
}

const (
	VendorIntel   = "intel"
	VendorNvidia  = "nvidia"
	VendorAmd     = "amd"
	VendorUnknown = "unknown"
)

// NewContext wraps a backend and queries its capabilities. The returned
// Context assumes it is the only writer of GL binding state; callers that
// bind objects behind its back must go through the Bind* methods afterwards.
func NewContext(backend Backend) *Context {
	ctx := &Context{backend: backend}
	ctx.caps = Caps{
		MaxTextureSize:  backend.GetInteger(MAX_TEXTURE_SIZE),
		MaxTextureUnits: backend.GetInteger(MAX_COMBINED_TEXTURE_IMAGE_UNITS),
		MaxDrawBuffers:  backend.GetInteger(MAX_DRAW_BUFFERS),
		MaxAttachments:  backend.GetInteger(MAX_COLOR_ATTACHMENTS),
		MaxAnisotropy:   backend.GetFloat(MAX_TEXTURE_MAX_ANISOTROPY),
		// Core since 3.0, which is the minimum the glow backend loads.
		DepthTextures:     true,
		FloatTextures:     true,
		HalfFloatTextures: true,
	}
	ctx.env = Environment{
		Vendor:   normalizeVendor(backend.GetString(VENDOR)),
		Renderer: backend.GetString(RENDERER),
		Version:  backend.GetString(VERSION),
	}
	// Track one binding slot per reported unit, with a floor in case the
	// context under-reports.
	units := ctx.caps.MaxTextureUnits
	if units < 32 {
		units = 32
	}
	ctx.TextureUnits = make([]uint32, units)
	return ctx
}

func normalizeVendor(vendor string) string {
	vendor = strings.ToLower(strings.TrimSuffix(vendor, "\x00"))
	switch {
	case strings.Contains(vendor, "intel"):
		return VendorIntel
	case strings.Contains(vendor, "nvidia"):
		return VendorNvidia
	case strings.Contains(vendor, "ati "), strings.Contains(vendor, "amd"):
		return VendorAmd
	}
	return VendorUnknown
}

func (ctx *Context) Backend() Backend {
	return ctx.backend
}

func (ctx *Context) Caps() Caps {
	return ctx.caps
}

func (ctx *Context) Env() Environment {
	return ctx.env
}

// SetCaps overrides the queried capabilities, for contexts that are known to
// lack features the version string advertises.
func (ctx *Context) SetCaps(caps Caps) {
	ctx.caps = caps
}

func (ctx *Context) ActiveTexture(unit int) {
	if ctx.ActiveTextureUnit == unit {
		return
	}
	ctx.backend.ActiveTexture(unit)
	ctx.ActiveTextureUnit = unit
}

func (ctx *Context) BindTexture(target, texture uint32, unit int) {
	ctx.ActiveTexture(unit)
	if ctx.TextureUnits[unit] == texture {
		return
	}
	ctx.backend.BindTexture(target, texture)
	ctx.TextureUnits[unit] = texture
}

func (ctx *Context) BindFramebuffer(target, framebuffer uint32) {
	switch target {
	case DRAW_FRAMEBUFFER:
		ctx.BindDrawFramebuffer(framebuffer)
	case READ_FRAMEBUFFER:
		ctx.BindReadFramebuffer(framebuffer)
	default:
		if framebuffer == ctx.DrawFramebuffer && framebuffer == ctx.ReadFramebuffer {
			return
		}
		ctx.backend.BindFramebuffer(FRAMEBUFFER, framebuffer)
		ctx.DrawFramebuffer = framebuffer
		ctx.ReadFramebuffer = framebuffer
	}
}

func (ctx *Context) BindDrawFramebuffer(framebuffer uint32) {
	if ctx.DrawFramebuffer == framebuffer {
		return
	}
	ctx.backend.BindFramebuffer(DRAW_FRAMEBUFFER, framebuffer)
	ctx.DrawFramebuffer = framebuffer
}

func (ctx *Context) BindReadFramebuffer(framebuffer uint32) {
	if ctx.ReadFramebuffer == framebuffer {
		return
	}
	ctx.backend.BindFramebuffer(READ_FRAMEBUFFER, framebuffer)
	ctx.ReadFramebuffer = framebuffer
}

func (ctx *Context) BindVertexArray(array uint32) {
	if ctx.VertexArray == array {
		return
	}
	ctx.backend.BindVertexArray(array)
	ctx.VertexArray = array
}

func (ctx *Context) UseProgram(program uint32) {
	if ctx.Program == program {
		return
	}
	ctx.backend.UseProgram(program)
	ctx.Program = program
}

func (ctx *Context) Viewport(x, y, w, h int) {
	if ctx.ViewportRect == [4]int{x, y, w, h} {
		return
	}
	ctx.backend.Viewport(x, y, w, h)
	ctx.ViewportRect = [4]int{x, y, w, h}
}

// TargetGuard captures the bound framebuffers and viewport so a nested
// render-to-texture or copy call can put them back on every exit path.
type TargetGuard struct {
	ctx      *Context
	draw     uint32
	read     uint32
	viewport [4]int
}

// PushTarget captures the current target state. Callers are expected to
// defer guard.Restore() immediately.
func (ctx *Context) PushTarget() TargetGuard {
	return TargetGuard{
		ctx:      ctx,
		draw:     ctx.DrawFramebuffer,
		read:     ctx.ReadFramebuffer,
		viewport: ctx.ViewportRect,
	}
}

func (g TargetGuard) Restore() {
	g.ctx.BindDrawFramebuffer(g.draw)
	g.ctx.BindReadFramebuffer(g.read)
	g.ctx.Viewport(g.viewport[0], g.viewport[1], g.viewport[2], g.viewport[3])
}

// Schedule queues fn to run on the context thread at the next ProcessPending
// call. It is the only Context method safe to call from other goroutines.
func (ctx *Context) Schedule(fn func()) {
	ctx.pendingMu.Lock()
	ctx.pending = append(ctx.pending, fn)
	ctx.pendingMu.Unlock()
}

// ProcessPending runs scheduled work. Call once per frame, or whenever
// asynchronously loaded resources should become visible.
func (ctx *Context) ProcessPending() {
	ctx.pendingMu.Lock()
	pending := ctx.pending
	ctx.pending = nil
	ctx.pendingMu.Unlock()
	for _, fn := range pending {
		fn()
	}
}
