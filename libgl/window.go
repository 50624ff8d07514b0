package libgl

import (
	"fmt"
	"unsafe"

	"github.com/go-gl/gl/v4.5-core/gl"
	"github.com/go-gl/glfw/v3.3/glfw"
)

// CreateWindowContext initializes glfw, opens a window with a GL 4.5 core
// context, loads the GL functions and wraps everything in a Context. Pass
// visible=false for offscreen use. The caller must have locked the OS thread
// and must keep using that thread for all GL work.
func CreateWindowContext(width, height int, title string, visible bool) (*glfw.Window, *Context, error) {
	if err := glfw.Init(); err != nil {
		return nil, nil, fmt.Errorf("could not initialize glfw: %w", err)
	}

	glfw.DefaultWindowHints()
	glfw.WindowHint(glfw.OpenGLForwardCompatible, glfw.True)
	glfw.WindowHint(glfw.ContextVersionMajor, 4)
	glfw.WindowHint(glfw.ContextVersionMinor, 5)
	glfw.WindowHint(glfw.OpenGLProfile, glfw.OpenGLCoreProfile)
	if !visible {
		glfw.WindowHint(glfw.Visible, glfw.False)
	}

	win, err := glfw.CreateWindow(width, height, title, nil, nil)
	if err != nil {
		glfw.Terminate()
		return nil, nil, fmt.Errorf("could not create window: %w", err)
	}
	win.MakeContextCurrent()

	err = gl.InitWithProcAddrFunc(func(name string) unsafe.Pointer {
		addr := glfw.GetProcAddress(name)
		if addr == nil {
			return unsafe.Pointer(uintptr(0xffff_ffff_ffff_ffff))
		}
		return addr
	})
	if err != nil {
		win.Destroy()
		glfw.Terminate()
		return nil, nil, fmt.Errorf("could not load gl functions: %w", err)
	}

	return win, NewContext(NewGlowBackend()), nil
}
