package libgl

import (
	"fmt"
	"log"

	"github.com/go-gl/mathgl/mgl32"
)

// Program is a linked vertex+fragment shader pair with a uniform location
// cache.
type Program struct {
	ctx              *Context
	glId             uint32
	name             string
	uniformLocations map[string]int32
}

// NewProgram compiles and links a vertex and fragment shader. The name only
// shows up in error messages.
func NewProgram(ctx *Context, name, vertexSrc, fragmentSrc string) (*Program, error) {
	b := ctx.backend

	vert, err := compileStage(b, VERTEX_SHADER, vertexSrc)
	if err != nil {
		return nil, fmt.Errorf("%v vertex stage: %w", name, err)
	}
	defer b.DeleteShader(vert)

	frag, err := compileStage(b, FRAGMENT_SHADER, fragmentSrc)
	if err != nil {
		return nil, fmt.Errorf("%v fragment stage: %w", name, err)
	}
	defer b.DeleteShader(frag)

	id := b.CreateProgram()
	b.AttachShader(id, vert)
	b.AttachShader(id, frag)
	if err := b.LinkProgram(id); err != nil {
		b.DeleteProgram(id)
		return nil, fmt.Errorf("%v: %w", name, err)
	}

	return &Program{
		ctx:              ctx,
		glId:             id,
		name:             name,
		uniformLocations: map[string]int32{},
	}, nil
}

func compileStage(b Backend, stage uint32, source string) (uint32, error) {
	id := b.CreateShader(stage)
	b.ShaderSource(id, source)
	if err := b.CompileShader(id); err != nil {
		b.DeleteShader(id)
		return 0, err
	}
	return id, nil
}

func (prog *Program) Id() uint32 {
	return prog.glId
}

func (prog *Program) Name() string {
	return prog.name
}

func (prog *Program) Use() {
	prog.ctx.UseProgram(prog.glId)
}

func (prog *Program) GetUniformLocation(name string) int32 {
	if location, ok := prog.uniformLocations[name]; ok {
		return location
	}

	location := prog.ctx.backend.GetUniformLocation(prog.glId, name)
	prog.uniformLocations[name] = location

	if location == -1 {
		log.Printf("%v shader: could not get location of %q\n", prog.name, name)
	}

	return location
}

// SetUniform uploads value to the named uniform. The program must be in use.
func (prog *Program) SetUniform(name string, value any) {
	location := prog.GetUniformLocation(name)
	if location == -1 {
		return
	}

	b := prog.ctx.backend
	switch v := value.(type) {
	case bool:
		i := int32(0)
		if v {
			i = 1
		}
		b.Uniform1i(location, i)
	case int:
		b.Uniform1i(location, int32(v))
	case int32:
		b.Uniform1i(location, v)
	case float32:
		b.Uniform1f(location, v)
	case float64:
		b.Uniform1f(location, float32(v))
	case mgl32.Vec2:
		b.Uniform2f(location, v.X(), v.Y())
	case mgl32.Vec3:
		b.Uniform3f(location, v.X(), v.Y(), v.Z())
	case mgl32.Vec4:
		b.Uniform4f(location, v.X(), v.Y(), v.Z(), v.W())
	case mgl32.Mat4:
		b.UniformMatrix4fv(location, &v[0])
	case [4]float32:
		b.Uniform4f(location, v[0], v[1], v[2], v[3])
	default:
		log.Panicf("unsupported uniform type %T", value)
	}
}

func (prog *Program) Delete() {
	prog.ctx.backend.DeleteProgram(prog.glId)
	prog.glId = 0
}
