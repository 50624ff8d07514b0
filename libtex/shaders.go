package libtex

import (
	_ "embed"

	"github.com/go-gl/mathgl/mgl32"

	"gltex/libgl"
)

//go:embed shaders/quad.vert
var resQuadVshSrc string

//go:embed shaders/copy.frag
var resCopyFshSrc string

//go:embed shaders/copy_cube.frag
var resCopyCubeFshSrc string

//go:embed shaders/blur.frag
var resBlurFshSrc string

//go:embed shaders/blur_cube.frag
var resBlurCubeFshSrc string

func (ctx *Context) copyProgram() (*libgl.Program, error) {
	if ctx.copyProg == nil {
		prog, err := libgl.NewProgram(ctx.GL, "copy", resQuadVshSrc, resCopyFshSrc)
		if err != nil {
			return nil, err
		}
		ctx.copyProg = prog
	}
	return ctx.copyProg, nil
}

func (ctx *Context) cubeCopyProgram() (*libgl.Program, error) {
	if ctx.cubeCopyProg == nil {
		prog, err := libgl.NewProgram(ctx.GL, "copy_cube", resQuadVshSrc, resCopyCubeFshSrc)
		if err != nil {
			return nil, err
		}
		ctx.cubeCopyProg = prog
	}
	return ctx.cubeCopyProg, nil
}

func (ctx *Context) blurProgram() (*libgl.Program, error) {
	if ctx.blurProg == nil {
		prog, err := libgl.NewProgram(ctx.GL, "blur", resQuadVshSrc, resBlurFshSrc)
		if err != nil {
			return nil, err
		}
		ctx.blurProg = prog
	}
	return ctx.blurProg, nil
}

func (ctx *Context) cubeBlurProgram() (*libgl.Program, error) {
	if ctx.cubeBlurProg == nil {
		prog, err := libgl.NewProgram(ctx.GL, "blur_cube", resQuadVshSrc, resBlurCubeFshSrc)
		if err != nil {
			return nil, err
		}
		ctx.cubeBlurProg = prog
	}
	return ctx.cubeBlurProg, nil
}

// Per face basis mapping quad coordinates (s,t) to a cube sampling
// direction, in GL face order.
var cubeFaceBases = [6][3]mgl32.Vec3{
	{{0, 0, -1}, {0, -1, 0}, {1, 0, 0}},   // +X
	{{0, 0, 1}, {0, -1, 0}, {-1, 0, 0}},   // -X
	{{1, 0, 0}, {0, 0, 1}, {0, 1, 0}},     // +Y
	{{1, 0, 0}, {0, 0, -1}, {0, -1, 0}},   // -Y
	{{1, 0, 0}, {0, -1, 0}, {0, 0, 1}},    // +Z
	{{-1, 0, 0}, {0, -1, 0}, {0, 0, -1}},  // -Z
}

func faceOrientation(face Face) mgl32.Mat4 {
	b := cubeFaceBases[face]
	return mgl32.Mat4{
		b[0].X(), b[0].Y(), b[0].Z(), 0,
		b[1].X(), b[1].Y(), b[1].Z(), 0,
		b[2].X(), b[2].Y(), b[2].Z(), 0,
		0, 0, 0, 1,
	}
}
