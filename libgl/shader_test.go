package libgl_test

import (
	"errors"
	"testing"

	"github.com/go-gl/mathgl/mgl32"

	"gltex/libgl"
)

const (
	testVertSrc = "#version 450 core\nvoid main() {}\n"
	testFragSrc = "#version 450 core\nvoid main() {}\n"
)

func TestNewProgramCompilesAndLinks(t *testing.T) {
	ctx, b := newContext()

	prog, err := libgl.NewProgram(ctx, "test", testVertSrc, testFragSrc)
	if err != nil {
		t.Fatalf("NewProgram: %v", err)
	}
	if prog.Id() == 0 {
		t.Errorf("program has no id")
	}
	if len(b.Named("CompileShader")) != 2 {
		t.Errorf("expected 2 compiled stages")
	}
	if len(b.Named("LinkProgram")) != 1 {
		t.Errorf("expected 1 link")
	}
	// Both stages are attach-and-release.
	if len(b.Named("DeleteShader")) != 2 {
		t.Errorf("stage shaders were not released")
	}
}

func TestNewProgramCompileError(t *testing.T) {
	ctx, b := newContext()
	b.CompileErr = errors.New("syntax error")

	_, err := libgl.NewProgram(ctx, "broken", testVertSrc, testFragSrc)
	if err == nil {
		t.Fatalf("expected compile error")
	}
	if !errors.Is(err, b.CompileErr) {
		t.Errorf("error %v does not wrap the compile failure", err)
	}
}

func TestSetUniformDispatch(t *testing.T) {
	ctx, b := newContext()
	prog, err := libgl.NewProgram(ctx, "test", testVertSrc, testFragSrc)
	if err != nil {
		t.Fatalf("NewProgram: %v", err)
	}

	b.Reset()
	prog.SetUniform("u_flag", true)
	prog.SetUniform("u_index", 3)
	prog.SetUniform("u_scale", float32(0.5))
	prog.SetUniform("u_offset", mgl32.Vec2{1, 2})
	prog.SetUniform("u_color", mgl32.Vec4{1, 0, 0, 1})
	prog.SetUniform("u_orientation", mgl32.Ident4())

	for name, want := range map[string]int{
		"Uniform1i":        2,
		"Uniform1f":        1,
		"Uniform2f":        1,
		"Uniform4f":        1,
		"UniformMatrix4fv": 1,
	} {
		if got := len(b.Named(name)); got != want {
			t.Errorf("%s called %d times, want %d", name, got, want)
		}
	}
}

func TestUniformLocationIsCached(t *testing.T) {
	ctx, _ := newContext()
	prog, err := libgl.NewProgram(ctx, "test", testVertSrc, testFragSrc)
	if err != nil {
		t.Fatalf("NewProgram: %v", err)
	}

	first := prog.GetUniformLocation("u_texture")
	second := prog.GetUniformLocation("u_texture")
	if first != second {
		t.Errorf("locations differ: %d vs %d", first, second)
	}
}
