package libgl

// Backend is the raw GL function surface the module issues commands through.
// The canonical implementation wraps go-gl (see glow.go); tests substitute a
// recording fake so binding and target logic can run without a GPU.
//
// Pixel and vertex payloads are passed as slices (or nil) and converted to
// client pointers by the implementation.
type Backend interface {
	// Textures
	CreateTexture(target uint32) uint32
	DeleteTexture(id uint32)
	ActiveTexture(unit int)
	BindTexture(target, id uint32)
	TextureStorage2D(id uint32, levels int, internalFormat uint32, width, height int)
	TextureSubImage2D(id uint32, level, x, y, width, height int, format, typ uint32, pixels any)
	TextureSubImage3D(id uint32, level, x, y, z, width, height, depth int, format, typ uint32, pixels any)
	TextureParameteri(id, pname uint32, param int32)
	TextureParameterf(id, pname uint32, param float32)
	GenerateTextureMipmap(id uint32)

	// Framebuffers
	CreateFramebuffer() uint32
	DeleteFramebuffer(id uint32)
	BindFramebuffer(target, id uint32)
	NamedFramebufferTexture(fb, attachment, texture uint32, level int)
	NamedFramebufferTextureLayer(fb, attachment, texture uint32, level, layer int)
	NamedFramebufferRenderbuffer(fb, attachment, renderbuffer uint32)
	NamedFramebufferDrawBuffers(fb uint32, attachments []uint32)
	NamedFramebufferReadBuffer(fb, mode uint32)
	CheckNamedFramebufferStatus(fb, target uint32) uint32

	// Renderbuffers
	CreateRenderbuffer() uint32
	DeleteRenderbuffer(id uint32)
	NamedRenderbufferStorage(id, internalFormat uint32, width, height int)

	// Pixel transfer
	PixelStorei(pname uint32, param int32)
	ReadPixels(x, y, width, height int, format, typ uint32, pixels any)

	// Shaders
	CreateShader(stage uint32) uint32
	ShaderSource(id uint32, source string)
	CompileShader(id uint32) error
	DeleteShader(id uint32)
	CreateProgram() uint32
	AttachShader(program, shader uint32)
	LinkProgram(id uint32) error
	DeleteProgram(id uint32)
	UseProgram(id uint32)
	GetUniformLocation(program uint32, name string) int32
	Uniform1i(location int32, v int32)
	Uniform1f(location int32, v float32)
	Uniform2f(location int32, v0, v1 float32)
	Uniform3f(location int32, v0, v1, v2 float32)
	Uniform4f(location int32, v0, v1, v2, v3 float32)
	UniformMatrix4fv(location int32, v *float32)

	// Geometry
	CreateBuffer() uint32
	DeleteBuffer(id uint32)
	NamedBufferStorage(id uint32, size int, data any, flags uint32)
	CreateVertexArray() uint32
	DeleteVertexArray(id uint32)
	BindVertexArray(id uint32)
	EnableVertexArrayAttrib(vao uint32, index int)
	VertexArrayAttribFormat(vao uint32, index, size int, typ uint32, normalized bool, offset int)
	VertexArrayAttribBinding(vao uint32, attribIndex, bindingIndex int)
	VertexArrayVertexBuffer(vao uint32, bindingIndex int, buffer uint32, offset, stride int)

	// Drawing and global state
	Viewport(x, y, width, height int)
	Clear(mask uint32)
	ClearColor(r, g, b, a float32)
	DrawArrays(mode uint32, first, count int)

	// Queries
	GetInteger(pname uint32) int
	GetFloat(pname uint32) float32
	GetString(pname uint32) string
}
