package libtex

import (
	"fmt"
	goimg "image"

	"golang.org/x/image/draw"

	"gltex/libgl"
	"gltex/libio"
)

// Upload payloads accepted per component type:
//
//	TypeUnsignedByte  []uint8
//	TypeHalfFloat     []uint16 (raw bits) or []float32 (converted)
//	TypeFloat         []float32
//
// Slice lengths are validated against width*height*channels before anything
// crosses the GL boundary; handing an undersized slice to the driver would
// not be memory safe.

// UploadData uploads a raw pixel buffer. For cube maps the buffer holds all
// six faces back to back in face order.
func (t *Texture) UploadData(data any) error {
	if t.glId == 0 {
		return fmt.Errorf("%w: texture has no storage", ErrInvalidDimensions)
	}
	faces := 1
	if t.kind == Cubemap {
		faces = 6
	}
	payload, err := t.preparePayload(data, faces)
	if err != nil {
		return err
	}
	if t.kind == Cubemap {
		for face := 0; face < 6; face++ {
			t.uploadPixels(Face(face), slicePayload(payload, face, t.width*t.height*t.Channels()))
		}
	} else {
		t.uploadPixels(FaceNone, payload)
	}
	t.regenerateMipmaps()
	t.ready = true
	return nil
}

// UploadFace uploads one cube map face.
func (t *Texture) UploadFace(face Face, data any) error {
	if t.kind != Cubemap {
		return fmt.Errorf("%w: face upload needs a cube map", ErrInvalidConfiguration)
	}
	if face < FacePositiveX || face > FaceNegativeZ {
		return fmt.Errorf("%w: face %d", ErrInvalidConfiguration, face)
	}
	if t.glId == 0 {
		return fmt.Errorf("%w: texture has no storage", ErrInvalidDimensions)
	}
	payload, err := t.preparePayload(data, 1)
	if err != nil {
		return err
	}
	t.uploadPixels(face, payload)
	t.regenerateMipmaps()
	t.ready = true
	return nil
}

// UploadImage uploads a 2D image source, re-deriving the texture size from
// the source's own dimensions. Flip and premultiply behavior follows the
// options the texture was created with.
func (t *Texture) UploadImage(img goimg.Image) error {
	if t.kind != Texture2D {
		return fmt.Errorf("%w: image upload needs a 2D texture, use UploadFaceImage for cube maps", ErrInvalidConfiguration)
	}
	if t.format == FormatDepth {
		return fmt.Errorf("%w: cannot upload image data to a depth texture", ErrInvalidConfiguration)
	}
	bounds := img.Bounds()
	t.ensureStorage(bounds.Dx(), bounds.Dy())
	t.uploadPixels(FaceNone, t.convertImage(img))
	t.regenerateMipmaps()
	t.ready = true
	return nil
}

// UploadFaceImage uploads one cube map face from an image source. All faces
// must match the texture's size; the first upload into a deferred-storage
// cube map fixes it.
func (t *Texture) UploadFaceImage(face Face, img goimg.Image) error {
	if t.kind != Cubemap {
		return fmt.Errorf("%w: face upload needs a cube map", ErrInvalidConfiguration)
	}
	if face < FacePositiveX || face > FaceNegativeZ {
		return fmt.Errorf("%w: face %d", ErrInvalidConfiguration, face)
	}
	bounds := img.Bounds()
	if bounds.Dx() != bounds.Dy() {
		return fmt.Errorf("%w: cube faces must be square, got %dx%d", ErrInvalidDimensions, bounds.Dx(), bounds.Dy())
	}
	if t.glId == 0 {
		t.ensureStorage(bounds.Dx(), bounds.Dy())
	} else if bounds.Dx() != t.width || bounds.Dy() != t.height {
		return fmt.Errorf("%w: face is %dx%d but texture is %dx%d", ErrInvalidDimensions, bounds.Dx(), bounds.Dy(), t.width, t.height)
	}
	t.uploadPixels(face, t.convertImage(img))
	t.regenerateMipmaps()
	return nil
}

// convertImage turns any image source into an upload payload matching the
// texture's format and type, applying flip and premultiplication.
func (t *Texture) convertImage(img goimg.Image) any {
	bounds := img.Bounds()
	nrgba, ok := img.(*goimg.NRGBA)
	if !ok || bounds.Min != (goimg.Point{}) {
		nrgba = goimg.NewNRGBA(goimg.Rect(0, 0, bounds.Dx(), bounds.Dy()))
		draw.Copy(nrgba, goimg.Point{}, img, bounds, draw.Src, nil)
	}

	buf := libio.FromNRGBA(nrgba, t.flipVertically)
	if t.premultiplyAlpha {
		buf.Premultiply()
	}
	buf = buf.ToChannels(t.Channels(), 0, 0, 0, 0xff)

	if t.typ == TypeUnsignedByte {
		return buf.Pix
	}
	pix := make([]float32, len(buf.Pix))
	for i, v := range buf.Pix {
		pix[i] = float32(v) / 0xff
	}
	if t.typ == TypeHalfFloat {
		return libio.NewFloatBuffer(pix, t.Channels(), t.width, t.height).Half()
	}
	return pix
}

// preparePayload validates the payload length and converts it to the layout
// the GL upload expects.
func (t *Texture) preparePayload(data any, faces int) (any, error) {
	want := t.width * t.height * t.Channels() * faces
	switch d := data.(type) {
	case []uint8:
		if t.typ != TypeUnsignedByte {
			return nil, fmt.Errorf("%w: byte payload on a %s texture", ErrInvalidConfiguration, t.typ)
		}
		if len(d) != want {
			return nil, fmt.Errorf("%w: payload has %d components, want %d", ErrInvalidDimensions, len(d), want)
		}
		return d, nil
	case []uint16:
		if t.typ != TypeHalfFloat {
			return nil, fmt.Errorf("%w: half float payload on a %s texture", ErrInvalidConfiguration, t.typ)
		}
		if len(d) != want {
			return nil, fmt.Errorf("%w: payload has %d components, want %d", ErrInvalidDimensions, len(d), want)
		}
		return d, nil
	case []float32:
		if t.typ != TypeFloat && t.typ != TypeHalfFloat {
			return nil, fmt.Errorf("%w: float payload on a %s texture", ErrInvalidConfiguration, t.typ)
		}
		if len(d) != want {
			return nil, fmt.Errorf("%w: payload has %d components, want %d", ErrInvalidDimensions, len(d), want)
		}
		if t.typ == TypeHalfFloat {
			return libio.NewFloatBuffer(d, t.Channels(), t.width, t.height*faces).Half(), nil
		}
		return d, nil
	}
	return nil, fmt.Errorf("%w: unsupported payload type %T", ErrInvalidConfiguration, data)
}

func slicePayload(payload any, index, size int) any {
	switch p := payload.(type) {
	case []uint8:
		return p[index*size : (index+1)*size]
	case []uint16:
		return p[index*size : (index+1)*size]
	case []float32:
		return p[index*size : (index+1)*size]
	}
	return payload
}

// uploadPixels issues the GL upload. The unpack alignment is set for the
// duration of the call and reset afterwards so no pixel store state leaks
// into unrelated uploads.
func (t *Texture) uploadPixels(face Face, data any) {
	b := t.ctx.GL.Backend()
	b.PixelStorei(libgl.UNPACK_ALIGNMENT, 1)
	if t.kind == Cubemap {
		b.TextureSubImage3D(t.glId, 0, 0, 0, int(face), t.width, t.height, 1, t.glFormat(), t.glType(), data)
	} else {
		b.TextureSubImage2D(t.glId, 0, 0, 0, t.width, t.height, t.glFormat(), t.glType(), data)
	}
	b.PixelStorei(libgl.UNPACK_ALIGNMENT, 4)
}

func (t *Texture) glFormat() uint32 {
	return uint32(t.format)
}

func (t *Texture) glType() uint32 {
	return uint32(t.typ)
}

func (t *Texture) regenerateMipmaps() {
	if !t.minFilter.MipmapCapable() || !t.mipmapped() {
		return
	}
	t.ctx.GL.Backend().GenerateTextureMipmap(t.glId)
	t.hasMipmaps = true
}

func (typ Type) String() string {
	switch typ {
	case TypeUnsignedByte:
		return "unsigned byte"
	case TypeHalfFloat:
		return "half float"
	case TypeFloat:
		return "float"
	}
	return fmt.Sprintf("Type(%d)", uint32(typ))
}
