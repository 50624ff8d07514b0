package main

import (
	_ "embed"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/go-gl/gl/v4.5-core/gl"
	"github.com/go-gl/glfw/v3.3/glfw"
	im "github.com/inkyblackness/imgui-go/v4"

	"gltex/libgl"
	"gltex/libio"
	"gltex/libtex"
)

//go:embed assets/shaders/imgui.vert
var Res_ImguiVshSrc string

//go:embed assets/shaders/imgui.frag
var Res_ImguiFshSrc string

var Arguments struct {
	Width  int
	Height int
	Float  bool
}

// viewItem is one loaded texture plus its view state. Cube maps get a 2D
// proxy texture holding the currently selected face, since the gui can only
// sample flat textures.
type viewItem struct {
	name  string
	tex   *libtex.Texture
	proxy *libtex.Texture
	face  int32
	blur  float32
	note  string
}

func main() {
	flag.IntVar(&Arguments.Width, "width", 1280, "window width")
	flag.IntVar(&Arguments.Height, "height", 720, "window height")
	flag.BoolVar(&Arguments.Float, "float", false, "load images as 16 bit float textures")
	flag.Parse()

	if flag.NArg() == 0 {
		fmt.Fprintln(os.Stderr, "usage: texview [flags] <image|url|snapshot>...")
		flag.PrintDefaults()
		os.Exit(2)
	}

	runtime.LockOSThread()
	win, glctx, err := libgl.CreateWindowContext(Arguments.Width, Arguments.Height, "texview", true)
	check(err)
	log.Printf("gl: %s on %s\n", glctx.Env().Version, glctx.Env().Renderer)

	ctx := libtex.NewContext(glctx)
	items := loadItems(ctx, flag.Args())

	gui, err := NewImGui(glctx)
	check(err)

	gl.ClearColor(0.12, 0.12, 0.14, 1)
	for !win.ShouldClose() {
		glfw.PollEvents()
		glctx.ProcessPending()

		gl.Clear(gl.COLOR_BUFFER_BIT)

		im.NewFrame()
		for _, item := range items {
			drawItemWindow(ctx, item)
		}
		gui.Draw()

		win.SwapBuffers()
	}
}

func loadItems(ctx *libtex.Context, args []string) []*viewItem {
	opts := libtex.Options{Filter: libtex.FilterLinear}
	if Arguments.Float {
		opts.Type = libtex.TypeHalfFloat
	}

	var items []*viewItem
	for _, arg := range args {
		item := &viewItem{name: filepath.Base(arg), face: int32(libtex.FacePositiveX)}

		var err error
		switch {
		case strings.HasPrefix(arg, "http://"), strings.HasPrefix(arg, "https://"):
			item.tex, err = libtex.FromURL(ctx, arg, opts, func(_ *libtex.Texture, err error) {
				if err != nil {
					log.Printf("could not load %v: %v\n", arg, err)
				}
			})
		case strings.HasSuffix(arg, ".txs"):
			var f *os.File
			if f, err = os.Open(arg); err == nil {
				item.tex, err = libtex.LoadSnapshot(ctx, f)
				f.Close()
			}
		default:
			item.tex, err = libtex.FromImageFile(ctx, arg, opts)
		}
		if err != nil {
			log.Printf("could not load %v: %v\n", arg, err)
			continue
		}

		if item.tex.Kind() == libtex.Cubemap {
			if err := updateProxy(ctx, item); err != nil {
				log.Printf("could not preview %v: %v\n", arg, err)
			}
		}
		items = append(items, item)
	}
	return items
}

// updateProxy refreshes the 2D stand-in for the selected cube map face.
func updateProxy(ctx *libtex.Context, item *viewItem) error {
	img, err := item.tex.ToImage(libtex.Face(item.face))
	if err != nil {
		return err
	}
	if item.proxy == nil {
		item.proxy, err = libtex.New(ctx, 0, 0, libtex.Options{Filter: libtex.FilterLinear})
		if err != nil {
			return err
		}
	}
	return item.proxy.UploadImage(img)
}

func drawItemWindow(ctx *libtex.Context, item *viewItem) {
	im.Begin(item.name)
	defer im.End()

	tex := item.tex
	im.Text(fmt.Sprintf("%dx%d %v", tex.Width(), tex.Height(), tex.Type()))
	if !tex.Ready() {
		im.Text("loading...")
	}

	display := tex
	if tex.Kind() == libtex.Cubemap {
		if im.SliderInt("face", &item.face, 0, 5) {
			if err := updateProxy(ctx, item); err != nil {
				item.note = err.Error()
			}
		}
		display = item.proxy
	}

	im.SliderFloat("blur", &item.blur, 0, 4)
	if im.Button("apply blur") {
		if err := applyBlur(ctx, tex, item.blur); err != nil {
			item.note = err.Error()
		} else if tex.Kind() == libtex.Cubemap {
			updateProxy(ctx, item)
		}
	}
	im.SameLine()
	if im.Button("export png") {
		item.note = exportPNG(item)
	}
	im.SameLine()
	if im.Button("save snapshot") {
		item.note = saveSnapshot(item)
	}
	if item.note != "" {
		im.Text(item.note)
	}

	if display != nil {
		size := fitPreview(display.Width(), display.Height(), 512)
		// GL textures have a bottom left origin, flip the V axis.
		im.ImageV(im.TextureID(display.Id()), size,
			im.Vec2{X: 0, Y: 1}, im.Vec2{X: 1, Y: 0},
			im.Vec4{X: 1, Y: 1, Z: 1, W: 1}, im.Vec4{})
	}
}

// applyBlur blurs the texture in place. A cube map cannot be blurred onto
// itself in one pass, so it goes through a scratch cube texture.
func applyBlur(ctx *libtex.Context, tex *libtex.Texture, amount float32) error {
	var temp *libtex.Texture
	if tex.Kind() == libtex.Cubemap {
		var err error
		temp, err = libtex.New(ctx, tex.Width(), tex.Height(), libtex.Options{
			Kind:   libtex.Cubemap,
			Type:   tex.Type(),
			Filter: libtex.FilterLinear,
		})
		if err != nil {
			return err
		}
		defer temp.Delete()
	}
	_, err := tex.ApplyBlur(amount, amount, 1, temp, nil)
	return err
}

func fitPreview(width, height, max int) im.Vec2 {
	scale := float32(1)
	if width > max || height > max {
		scale = float32(max) / float32(maxOf(width, height))
	}
	return im.Vec2{X: float32(width) * scale, Y: float32(height) * scale}
}

func exportPNG(item *viewItem) string {
	face := libtex.FaceNone
	if item.tex.Kind() == libtex.Cubemap {
		face = libtex.Face(item.face)
	}
	path := item.name + ".png"
	f, err := os.Create(path)
	if err != nil {
		return err.Error()
	}
	defer f.Close()
	if err := item.tex.EncodePNG(f, face); err != nil {
		return err.Error()
	}
	return "wrote " + path
}

func saveSnapshot(item *viewItem) string {
	path := item.name + ".txs"
	f, err := os.Create(path)
	if err != nil {
		return err.Error()
	}
	defer f.Close()
	if err := item.tex.SaveSnapshot(f, libio.SnapshotCompressionFixedPoint16Lz4); err != nil {
		return err.Error()
	}
	return "wrote " + path
}

func maxOf(a, b int) int {
	if a > b {
		return a
	}
	return b
}

func check(err error) {
	if err != nil {
		log.Panic(err)
	}
}
