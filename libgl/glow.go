package libgl

import (
	"fmt"
	"strings"

	"github.com/go-gl/gl/v4.5-core/gl"
)

// glowBackend issues commands through go-gl. It assumes a current GL 4.5
// context on the calling thread.
type glowBackend struct{}

// NewGlowBackend returns the go-gl backed Backend. gl.Init (or
// CreateWindowContext) must have run first.
func NewGlowBackend() Backend {
	return glowBackend{}
}

func (glowBackend) CreateTexture(target uint32) uint32 {
	var id uint32
	gl.CreateTextures(target, 1, &id)
	return id
}

func (glowBackend) DeleteTexture(id uint32) {
	gl.DeleteTextures(1, &id)
}

func (glowBackend) ActiveTexture(unit int) {
	gl.ActiveTexture(TEXTURE0 + uint32(unit))
}

func (glowBackend) BindTexture(target, id uint32) {
	gl.BindTexture(target, id)
}

func (glowBackend) TextureStorage2D(id uint32, levels int, internalFormat uint32, width, height int) {
	gl.TextureStorage2D(id, int32(levels), internalFormat, int32(width), int32(height))
}

func (glowBackend) TextureSubImage2D(id uint32, level, x, y, width, height int, format, typ uint32, pixels any) {
	gl.TextureSubImage2D(id, int32(level), int32(x), int32(y), int32(width), int32(height), format, typ, gl.Ptr(pixels))
}

func (glowBackend) TextureSubImage3D(id uint32, level, x, y, z, width, height, depth int, format, typ uint32, pixels any) {
	gl.TextureSubImage3D(id, int32(level), int32(x), int32(y), int32(z), int32(width), int32(height), int32(depth), format, typ, gl.Ptr(pixels))
}

func (glowBackend) TextureParameteri(id, pname uint32, param int32) {
	gl.TextureParameteri(id, pname, param)
}

func (glowBackend) TextureParameterf(id, pname uint32, param float32) {
	gl.TextureParameterf(id, pname, param)
}

func (glowBackend) GenerateTextureMipmap(id uint32) {
	gl.GenerateTextureMipmap(id)
}

func (glowBackend) CreateFramebuffer() uint32 {
	var id uint32
	gl.CreateFramebuffers(1, &id)
	return id
}

func (glowBackend) DeleteFramebuffer(id uint32) {
	gl.DeleteFramebuffers(1, &id)
}

func (glowBackend) BindFramebuffer(target, id uint32) {
	gl.BindFramebuffer(target, id)
}

func (glowBackend) NamedFramebufferTexture(fb, attachment, texture uint32, level int) {
	gl.NamedFramebufferTexture(fb, attachment, texture, int32(level))
}

func (glowBackend) NamedFramebufferTextureLayer(fb, attachment, texture uint32, level, layer int) {
	gl.NamedFramebufferTextureLayer(fb, attachment, texture, int32(level), int32(layer))
}

func (glowBackend) NamedFramebufferRenderbuffer(fb, attachment, renderbuffer uint32) {
	gl.NamedFramebufferRenderbuffer(fb, attachment, RENDERBUFFER, renderbuffer)
}

func (glowBackend) NamedFramebufferDrawBuffers(fb uint32, attachments []uint32) {
	gl.NamedFramebufferDrawBuffers(fb, int32(len(attachments)), &attachments[0])
}

func (glowBackend) NamedFramebufferReadBuffer(fb, mode uint32) {
	gl.NamedFramebufferReadBuffer(fb, mode)
}

func (glowBackend) CheckNamedFramebufferStatus(fb, target uint32) uint32 {
	return gl.CheckNamedFramebufferStatus(fb, target)
}

func (glowBackend) CreateRenderbuffer() uint32 {
	var id uint32
	gl.CreateRenderbuffers(1, &id)
	return id
}

func (glowBackend) DeleteRenderbuffer(id uint32) {
	gl.DeleteRenderbuffers(1, &id)
}

func (glowBackend) NamedRenderbufferStorage(id, internalFormat uint32, width, height int) {
	gl.NamedRenderbufferStorage(id, internalFormat, int32(width), int32(height))
}

func (glowBackend) PixelStorei(pname uint32, param int32) {
	gl.PixelStorei(pname, param)
}

func (glowBackend) ReadPixels(x, y, width, height int, format, typ uint32, pixels any) {
	gl.ReadPixels(int32(x), int32(y), int32(width), int32(height), format, typ, gl.Ptr(pixels))
}

func (glowBackend) CreateShader(stage uint32) uint32 {
	return gl.CreateShader(stage)
}

func (glowBackend) ShaderSource(id uint32, source string) {
	cstrs, free := gl.Strs(source + "\x00")
	gl.ShaderSource(id, 1, cstrs, nil)
	free()
}

func (glowBackend) CompileShader(id uint32) error {
	gl.CompileShader(id)
	var ok int32
	gl.GetShaderiv(id, COMPILE_STATUS, &ok)
	if ok == gl.FALSE {
		var logLength int32
		gl.GetShaderiv(id, INFO_LOG_LENGTH, &logLength)
		infoLog := strings.Repeat("\x00", int(logLength+1))
		gl.GetShaderInfoLog(id, logLength, nil, gl.Str(infoLog))
		return fmt.Errorf("shader compilation failed: %v", strings.TrimRight(infoLog, "\x00"))
	}
	return nil
}

func (glowBackend) DeleteShader(id uint32) {
	gl.DeleteShader(id)
}

func (glowBackend) CreateProgram() uint32 {
	return gl.CreateProgram()
}

func (glowBackend) AttachShader(program, shader uint32) {
	gl.AttachShader(program, shader)
}

func (glowBackend) LinkProgram(id uint32) error {
	gl.LinkProgram(id)
	var ok int32
	gl.GetProgramiv(id, LINK_STATUS, &ok)
	if ok == gl.FALSE {
		var logLength int32
		gl.GetProgramiv(id, INFO_LOG_LENGTH, &logLength)
		infoLog := strings.Repeat("\x00", int(logLength+1))
		gl.GetProgramInfoLog(id, logLength, nil, gl.Str(infoLog))
		return fmt.Errorf("program link failed: %v", strings.TrimRight(infoLog, "\x00"))
	}
	return nil
}

func (glowBackend) DeleteProgram(id uint32) {
	gl.DeleteProgram(id)
}

func (glowBackend) UseProgram(id uint32) {
	gl.UseProgram(id)
}

func (glowBackend) GetUniformLocation(program uint32, name string) int32 {
	return gl.GetUniformLocation(program, gl.Str(name+"\x00"))
}

func (glowBackend) Uniform1i(location, v int32) {
	gl.Uniform1i(location, v)
}

func (glowBackend) Uniform1f(location int32, v float32) {
	gl.Uniform1f(location, v)
}

func (glowBackend) Uniform2f(location int32, v0, v1 float32) {
	gl.Uniform2f(location, v0, v1)
}

func (glowBackend) Uniform3f(location int32, v0, v1, v2 float32) {
	gl.Uniform3f(location, v0, v1, v2)
}

func (glowBackend) Uniform4f(location int32, v0, v1, v2, v3 float32) {
	gl.Uniform4f(location, v0, v1, v2, v3)
}

func (glowBackend) UniformMatrix4fv(location int32, v *float32) {
	gl.UniformMatrix4fv(location, 1, false, v)
}

func (glowBackend) CreateBuffer() uint32 {
	var id uint32
	gl.CreateBuffers(1, &id)
	return id
}

func (glowBackend) DeleteBuffer(id uint32) {
	gl.DeleteBuffers(1, &id)
}

func (glowBackend) NamedBufferStorage(id uint32, size int, data any, flags uint32) {
	gl.NamedBufferStorage(id, size, gl.Ptr(data), flags)
}

func (glowBackend) CreateVertexArray() uint32 {
	var id uint32
	gl.CreateVertexArrays(1, &id)
	return id
}

func (glowBackend) DeleteVertexArray(id uint32) {
	gl.DeleteVertexArrays(1, &id)
}

func (glowBackend) BindVertexArray(id uint32) {
	gl.BindVertexArray(id)
}

func (glowBackend) EnableVertexArrayAttrib(vao uint32, index int) {
	gl.EnableVertexArrayAttrib(vao, uint32(index))
}

func (glowBackend) VertexArrayAttribFormat(vao uint32, index, size int, typ uint32, normalized bool, offset int) {
	gl.VertexArrayAttribFormat(vao, uint32(index), int32(size), typ, normalized, uint32(offset))
}

func (glowBackend) VertexArrayAttribBinding(vao uint32, attribIndex, bindingIndex int) {
	gl.VertexArrayAttribBinding(vao, uint32(attribIndex), uint32(bindingIndex))
}

func (glowBackend) VertexArrayVertexBuffer(vao uint32, bindingIndex int, buffer uint32, offset, stride int) {
	gl.VertexArrayVertexBuffer(vao, uint32(bindingIndex), buffer, offset, int32(stride))
}

func (glowBackend) Viewport(x, y, width, height int) {
	gl.Viewport(int32(x), int32(y), int32(width), int32(height))
}

func (glowBackend) Clear(mask uint32) {
	gl.Clear(mask)
}

func (glowBackend) ClearColor(r, g, b, a float32) {
	gl.ClearColor(r, g, b, a)
}

func (glowBackend) DrawArrays(mode uint32, first, count int) {
	gl.DrawArrays(mode, int32(first), int32(count))
}

func (glowBackend) GetInteger(pname uint32) int {
	var v int32
	gl.GetIntegerv(pname, &v)
	return int(v)
}

func (glowBackend) GetFloat(pname uint32) float32 {
	var v float32
	gl.GetFloatv(pname, &v)
	return v
}

func (glowBackend) GetString(pname uint32) string {
	return gl.GoStr(gl.GetString(pname))
}
