// Package gltest provides a recording libgl.Backend so binding, target and
// texture logic can be exercised without a GPU or window system.
package gltest

import (
	"fmt"

	"gltex/libgl"
)

// Call is one recorded backend invocation.
type Call struct {
	Name string
	Args []any
}

func (c Call) String() string {
	return fmt.Sprintf("%s%v", c.Name, c.Args)
}

// Backend records every GL command it receives and answers queries from
// configurable tables. Object ids are handed out from one shared counter so
// they are unique across object kinds, which keeps call traces unambiguous.
type Backend struct {
	Calls []Call

	Integers map[uint32]int
	Floats   map[uint32]float32
	Strings  map[uint32]string

	// CompileErr and LinkErr make shader builds fail on demand.
	CompileErr error
	LinkErr    error

	// OnReadPixels, when set, fills the destination of a ReadPixels call.
	OnReadPixels func(x, y, width, height int, format, typ uint32, pixels any)

	nextId   uint32
	uniforms map[string]int32
}

func NewBackend() *Backend {
	return &Backend{
		Integers: map[uint32]int{
			libgl.MAX_TEXTURE_SIZE:                 16384,
			libgl.MAX_COMBINED_TEXTURE_IMAGE_UNITS: 32,
			libgl.MAX_DRAW_BUFFERS:                 8,
			libgl.MAX_COLOR_ATTACHMENTS:            8,
		},
		Floats: map[uint32]float32{
			libgl.MAX_TEXTURE_MAX_ANISOTROPY: 16,
		},
		Strings: map[uint32]string{
			libgl.VENDOR:   "gltest",
			libgl.RENDERER: "recorder",
			libgl.VERSION:  "4.5.0 gltest",
		},
		uniforms: map[string]int32{},
	}
}

func (b *Backend) record(name string, args ...any) {
	b.Calls = append(b.Calls, Call{Name: name, Args: args})
}

func (b *Backend) newId() uint32 {
	b.nextId++
	return b.nextId
}

// Named returns the recorded calls with the given name, in order.
func (b *Backend) Named(name string) []Call {
	var calls []Call
	for _, c := range b.Calls {
		if c.Name == name {
			calls = append(calls, c)
		}
	}
	return calls
}

// Reset drops the recorded calls but keeps handed out ids and query tables.
func (b *Backend) Reset() {
	b.Calls = nil
}

func (b *Backend) CreateTexture(target uint32) uint32 {
	id := b.newId()
	b.record("CreateTexture", target, id)
	return id
}

func (b *Backend) DeleteTexture(id uint32) { b.record("DeleteTexture", id) }
func (b *Backend) ActiveTexture(unit int)  { b.record("ActiveTexture", unit) }

func (b *Backend) BindTexture(target, id uint32) { b.record("BindTexture", target, id) }

func (b *Backend) TextureStorage2D(id uint32, levels int, internalFormat uint32, width, height int) {
	b.record("TextureStorage2D", id, levels, internalFormat, width, height)
}

func (b *Backend) TextureSubImage2D(id uint32, level, x, y, width, height int, format, typ uint32, pixels any) {
	b.record("TextureSubImage2D", id, level, x, y, width, height, format, typ, pixels)
}

func (b *Backend) TextureSubImage3D(id uint32, level, x, y, z, width, height, depth int, format, typ uint32, pixels any) {
	b.record("TextureSubImage3D", id, level, x, y, z, width, height, depth, format, typ, pixels)
}

func (b *Backend) TextureParameteri(id, pname uint32, param int32) {
	b.record("TextureParameteri", id, pname, param)
}

func (b *Backend) TextureParameterf(id, pname uint32, param float32) {
	b.record("TextureParameterf", id, pname, param)
}

func (b *Backend) GenerateTextureMipmap(id uint32) { b.record("GenerateTextureMipmap", id) }

func (b *Backend) CreateFramebuffer() uint32 {
	id := b.newId()
	b.record("CreateFramebuffer", id)
	return id
}

func (b *Backend) DeleteFramebuffer(id uint32) { b.record("DeleteFramebuffer", id) }

func (b *Backend) BindFramebuffer(target, id uint32) { b.record("BindFramebuffer", target, id) }

func (b *Backend) NamedFramebufferTexture(fb, attachment, texture uint32, level int) {
	b.record("NamedFramebufferTexture", fb, attachment, texture, level)
}

func (b *Backend) NamedFramebufferTextureLayer(fb, attachment, texture uint32, level, layer int) {
	b.record("NamedFramebufferTextureLayer", fb, attachment, texture, level, layer)
}

func (b *Backend) NamedFramebufferRenderbuffer(fb, attachment, renderbuffer uint32) {
	b.record("NamedFramebufferRenderbuffer", fb, attachment, renderbuffer)
}

func (b *Backend) NamedFramebufferDrawBuffers(fb uint32, attachments []uint32) {
	b.record("NamedFramebufferDrawBuffers", fb, attachments)
}

func (b *Backend) NamedFramebufferReadBuffer(fb, mode uint32) {
	b.record("NamedFramebufferReadBuffer", fb, mode)
}

func (b *Backend) CheckNamedFramebufferStatus(fb, target uint32) uint32 {
	b.record("CheckNamedFramebufferStatus", fb, target)
	return libgl.FRAMEBUFFER_COMPLETE
}

func (b *Backend) CreateRenderbuffer() uint32 {
	id := b.newId()
	b.record("CreateRenderbuffer", id)
	return id
}

func (b *Backend) DeleteRenderbuffer(id uint32) { b.record("DeleteRenderbuffer", id) }

func (b *Backend) NamedRenderbufferStorage(id, internalFormat uint32, width, height int) {
	b.record("NamedRenderbufferStorage", id, internalFormat, width, height)
}

func (b *Backend) PixelStorei(pname uint32, param int32) { b.record("PixelStorei", pname, param) }

func (b *Backend) ReadPixels(x, y, width, height int, format, typ uint32, pixels any) {
	b.record("ReadPixels", x, y, width, height, format, typ)
	if b.OnReadPixels != nil {
		b.OnReadPixels(x, y, width, height, format, typ, pixels)
	}
}

func (b *Backend) CreateShader(stage uint32) uint32 {
	id := b.newId()
	b.record("CreateShader", stage, id)
	return id
}

func (b *Backend) ShaderSource(id uint32, source string) { b.record("ShaderSource", id) }

func (b *Backend) CompileShader(id uint32) error {
	b.record("CompileShader", id)
	return b.CompileErr
}

func (b *Backend) DeleteShader(id uint32) { b.record("DeleteShader", id) }

func (b *Backend) CreateProgram() uint32 {
	id := b.newId()
	b.record("CreateProgram", id)
	return id
}

func (b *Backend) AttachShader(program, shader uint32) { b.record("AttachShader", program, shader) }

func (b *Backend) LinkProgram(id uint32) error {
	b.record("LinkProgram", id)
	return b.LinkErr
}

func (b *Backend) DeleteProgram(id uint32) { b.record("DeleteProgram", id) }
func (b *Backend) UseProgram(id uint32)    { b.record("UseProgram", id) }

func (b *Backend) GetUniformLocation(program uint32, name string) int32 {
	key := fmt.Sprintf("%d/%s", program, name)
	loc, ok := b.uniforms[key]
	if !ok {
		loc = int32(len(b.uniforms))
		b.uniforms[key] = loc
	}
	return loc
}

func (b *Backend) Uniform1i(location int32, v int32)   { b.record("Uniform1i", location, v) }
func (b *Backend) Uniform1f(location int32, v float32) { b.record("Uniform1f", location, v) }

func (b *Backend) Uniform2f(location int32, v0, v1 float32) {
	b.record("Uniform2f", location, v0, v1)
}

func (b *Backend) Uniform3f(location int32, v0, v1, v2 float32) {
	b.record("Uniform3f", location, v0, v1, v2)
}

func (b *Backend) Uniform4f(location int32, v0, v1, v2, v3 float32) {
	b.record("Uniform4f", location, v0, v1, v2, v3)
}

func (b *Backend) UniformMatrix4fv(location int32, v *float32) {
	b.record("UniformMatrix4fv", location)
}

func (b *Backend) CreateBuffer() uint32 {
	id := b.newId()
	b.record("CreateBuffer", id)
	return id
}

func (b *Backend) DeleteBuffer(id uint32) { b.record("DeleteBuffer", id) }

func (b *Backend) NamedBufferStorage(id uint32, size int, data any, flags uint32) {
	b.record("NamedBufferStorage", id, size, flags)
}

func (b *Backend) CreateVertexArray() uint32 {
	id := b.newId()
	b.record("CreateVertexArray", id)
	return id
}

func (b *Backend) DeleteVertexArray(id uint32) { b.record("DeleteVertexArray", id) }
func (b *Backend) BindVertexArray(id uint32)   { b.record("BindVertexArray", id) }

func (b *Backend) EnableVertexArrayAttrib(vao uint32, index int) {
	b.record("EnableVertexArrayAttrib", vao, index)
}

func (b *Backend) VertexArrayAttribFormat(vao uint32, index, size int, typ uint32, normalized bool, offset int) {
	b.record("VertexArrayAttribFormat", vao, index, size, typ, normalized, offset)
}

func (b *Backend) VertexArrayAttribBinding(vao uint32, attribIndex, bindingIndex int) {
	b.record("VertexArrayAttribBinding", vao, attribIndex, bindingIndex)
}

func (b *Backend) VertexArrayVertexBuffer(vao uint32, bindingIndex int, buffer uint32, offset, stride int) {
	b.record("VertexArrayVertexBuffer", vao, bindingIndex, buffer, offset, stride)
}

func (b *Backend) Viewport(x, y, width, height int) { b.record("Viewport", x, y, width, height) }
func (b *Backend) Clear(mask uint32)                { b.record("Clear", mask) }

func (b *Backend) ClearColor(r, g, bl, a float32) { b.record("ClearColor", r, g, bl, a) }

func (b *Backend) DrawArrays(mode uint32, first, count int) {
	b.record("DrawArrays", mode, first, count)
}

func (b *Backend) GetInteger(pname uint32) int   { return b.Integers[pname] }
func (b *Backend) GetFloat(pname uint32) float32 { return b.Floats[pname] }
func (b *Backend) GetString(pname uint32) string { return b.Strings[pname] }

var _ libgl.Backend = (*Backend)(nil)
