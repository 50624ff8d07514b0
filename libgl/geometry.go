package libgl

// Quad is a fullscreen triangle strip used by the copy, fill and blur draws.
// One is created lazily per context.
type Quad struct {
	ctx *Context
	vao uint32
	vbo uint32
}

func NewQuad(ctx *Context) *Quad {
	b := ctx.backend

	vertices := []float32{-1, -1, 1, -1, -1, 1, 1, 1}
	vbo := b.CreateBuffer()
	b.NamedBufferStorage(vbo, len(vertices)*4, vertices, 0)

	vao := b.CreateVertexArray()
	b.EnableVertexArrayAttrib(vao, 0)
	b.VertexArrayAttribFormat(vao, 0, 2, FLOAT, false, 0)
	b.VertexArrayAttribBinding(vao, 0, 0)
	b.VertexArrayVertexBuffer(vao, 0, vbo, 0, 2*4)

	return &Quad{ctx: ctx, vao: vao, vbo: vbo}
}

func (q *Quad) Draw() {
	q.ctx.BindVertexArray(q.vao)
	q.ctx.backend.DrawArrays(TRIANGLE_STRIP, 0, 4)
}

func (q *Quad) Delete() {
	q.ctx.backend.DeleteVertexArray(q.vao)
	q.ctx.backend.DeleteBuffer(q.vbo)
	q.vao = 0
	q.vbo = 0
}
