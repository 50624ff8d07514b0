package libtex

import (
	"fmt"
	goimg "image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"net/http"
	"os"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"

	"gltex/libgl"
)

// FromData creates a texture of the given size filled from a raw pixel
// payload, see UploadData for the accepted slice types.
func FromData(ctx *Context, width, height int, data any, opts Options) (*Texture, error) {
	opts.Pixels = data
	return New(ctx, width, height, opts)
}

// FromImage creates a 2D texture sized and filled from an image source.
func FromImage(ctx *Context, img goimg.Image, opts Options) (*Texture, error) {
	opts.Kind = Texture2D
	bounds := img.Bounds()
	tex, err := New(ctx, bounds.Dx(), bounds.Dy(), opts)
	if err != nil {
		return nil, err
	}
	if err := tex.UploadImage(img); err != nil {
		tex.Delete()
		return nil, err
	}
	return tex, nil
}

// FromImageFile creates a 2D texture from an image file. PNG, JPEG, GIF, BMP,
// TIFF and WebP sources decode out of the box.
func FromImageFile(ctx *Context, path string, opts Options) (*Texture, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSourceUnavailable, err)
	}
	defer f.Close()
	img, _, err := goimg.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("%w: could not decode %q: %v", ErrSourceUnavailable, path, err)
	}
	return FromImage(ctx, img, opts)
}

// FromCubeImages creates a cube map from six image sources in
// +X, -X, +Y, -Y, +Z, -Z order. All faces must be square and equally sized.
func FromCubeImages(ctx *Context, imgs [6]goimg.Image, opts Options) (*Texture, error) {
	opts.Kind = Cubemap
	bounds := imgs[0].Bounds()
	tex, err := New(ctx, bounds.Dx(), bounds.Dy(), opts)
	if err != nil {
		return nil, err
	}
	for face, img := range imgs {
		if err := tex.UploadFaceImage(Face(face), img); err != nil {
			tex.Delete()
			return nil, err
		}
	}
	tex.ready = true
	return tex, nil
}

// FromShader creates a texture and renders prog into it once, over the full
// target, with the given uniforms. Cube map targets additionally receive the
// per face u_orientation matrix.
func FromShader(ctx *Context, width, height int, prog *libgl.Program, uniforms map[string]any, opts Options) (*Texture, error) {
	tex, err := New(ctx, width, height, opts)
	if err != nil {
		return nil, err
	}
	err = tex.DrawTo(func(t *Texture, face Face) error {
		prog.Use()
		for name, value := range uniforms {
			prog.SetUniform(name, value)
		}
		if face != FaceNone {
			prog.SetUniform("u_orientation", faceOrientation(face))
		}
		ctx.sharedQuad().Draw()
		return nil
	})
	if err != nil {
		tex.Delete()
		return nil, err
	}
	return tex, nil
}

// FromURL creates a 1x1 placeholder texture and fills it asynchronously from
// a URL. The fetch and decode run on their own goroutine; the GL upload is
// scheduled onto the context thread and applied at the next
// libgl.Context.ProcessPending call, after which Ready reports true. The done
// callback, if any, also runs on the context thread. When several loads
// target the same texture the one completing last determines its content.
func FromURL(ctx *Context, url string, opts Options, done func(*Texture, error)) (*Texture, error) {
	opts.Kind = Texture2D
	tex, err := New(ctx, 1, 1, opts)
	if err != nil {
		return nil, err
	}
	if err := tex.UploadData(placeholderPayload(tex.typ, tex.Channels())); err != nil {
		tex.Delete()
		return nil, err
	}
	tex.ready = false

	go func() {
		img, err := fetchImage(url)
		ctx.GL.Schedule(func() {
			if err == nil {
				err = tex.UploadImage(img)
			}
			if done != nil {
				done(tex, err)
			}
		})
	}()

	return tex, nil
}

func fetchImage(url string) (goimg.Image, error) {
	resp, err := http.Get(url)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSourceUnavailable, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: %q returned %s", ErrSourceUnavailable, url, resp.Status)
	}
	img, _, err := goimg.Decode(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: could not decode %q: %v", ErrSourceUnavailable, url, err)
	}
	return img, nil
}

func placeholderPayload(typ Type, channels int) any {
	switch typ {
	case TypeHalfFloat:
		return make([]uint16, channels)
	case TypeFloat:
		return make([]float32, channels)
	}
	return make([]uint8, channels)
}
