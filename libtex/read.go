package libtex

import (
	"bytes"
	"encoding/base64"
	"fmt"
	goimg "image"
	"image/png"
	"io"

	"gltex/libgl"
	"gltex/libio"
)

// Readback always yields 4 component RGBA tuples regardless of the stored
// format; the driver expands missing channels. Depth textures cannot be read
// through the color path.

// Pixels reads one face (FaceNone for 2D textures) back as 8 bit RGBA, rows
// in bottom left origin order.
func (t *Texture) Pixels(face Face) ([]uint8, error) {
	if err := t.validateReadSource(face); err != nil {
		return nil, err
	}
	pix := make([]uint8, t.width*t.height*4)
	t.readPixels(face, libgl.UNSIGNED_BYTE, pix)
	return pix, nil
}

// FloatPixels reads one face back as float RGBA, rows in bottom left origin
// order. Works for every component type; 8 bit contents come back normalized
// to [0,1].
func (t *Texture) FloatPixels(face Face) ([]float32, error) {
	if err := t.validateReadSource(face); err != nil {
		return nil, err
	}
	pix := make([]float32, t.width*t.height*4)
	t.readPixels(face, libgl.FLOAT, pix)
	return pix, nil
}

func (t *Texture) readPixels(face Face, typ uint32, dst any) {
	ctx := t.ctx
	guard := ctx.GL.PushTarget()
	defer guard.Restore()

	fb := ctx.copyFramebuffer()
	if t.kind == Cubemap {
		fb.AttachColorFace(0, t.glId, int(face))
	} else {
		fb.AttachColor(0, t.glId)
	}
	fb.Bind(libgl.READ_FRAMEBUFFER)
	fb.ReadBuffer(0)

	b := ctx.GL.Backend()
	b.PixelStorei(libgl.PACK_ALIGNMENT, 1)
	b.ReadPixels(0, 0, t.width, t.height, libgl.RGBA, typ, dst)
	b.PixelStorei(libgl.PACK_ALIGNMENT, 4)
}

func (t *Texture) validateReadSource(face Face) error {
	if t.format == FormatDepth {
		return fmt.Errorf("%w: depth textures have no color readback path", ErrInvalidConfiguration)
	}
	if t.glId == 0 || t.width == 0 || t.height == 0 {
		return fmt.Errorf("%w: texture has no storage", ErrInvalidDimensions)
	}
	if t.kind == Cubemap {
		if face < FacePositiveX || face > FaceNegativeZ {
			return fmt.Errorf("%w: cube map readback needs a face", ErrInvalidConfiguration)
		}
	} else if face != FaceNone {
		return fmt.Errorf("%w: 2D readback takes FaceNone", ErrInvalidConfiguration)
	}
	return nil
}

// ToImage reads one face into a Go image, top left origin.
func (t *Texture) ToImage(face Face) (*goimg.NRGBA, error) {
	pix, err := t.Pixels(face)
	if err != nil {
		return nil, err
	}
	return libio.NewPixelBuffer(pix, 4, t.width, t.height).ToNRGBA(), nil
}

// EncodePNG reads one face and writes it as PNG.
func (t *Texture) EncodePNG(w io.Writer, face Face) error {
	img, err := t.ToImage(face)
	if err != nil {
		return err
	}
	return png.Encode(w, img)
}

// ToBase64 reads one face and returns it as a PNG data URL.
func (t *Texture) ToBase64(face Face) (string, error) {
	buf := bytes.NewBuffer(nil)
	if err := t.EncodePNG(buf, face); err != nil {
		return "", err
	}
	return "data:image/png;base64," + base64.StdEncoding.EncodeToString(buf.Bytes()), nil
}

// SaveSnapshot reads the full texture (all faces, full precision) and writes
// it as a snapshot stream.
func (t *Texture) SaveSnapshot(w io.Writer, compression libio.SnapshotCompression) error {
	faceCount := 1
	first := FaceNone
	if t.kind == Cubemap {
		faceCount = 6
		first = FacePositiveX
	}
	faces := make([]*libio.FloatBuffer, faceCount)
	for i := range faces {
		pix, err := t.FloatPixels(first + Face(i))
		if err != nil {
			return err
		}
		faces[i] = libio.NewFloatBuffer(pix, 4, t.width, t.height)
	}
	return libio.EncodeSnapshot(w, faces, compression)
}

// LoadSnapshot decodes a snapshot stream into a new float texture, 2D or cube
// map depending on the face count of the stream.
func LoadSnapshot(ctx *Context, r io.Reader) (*Texture, error) {
	faces, err := libio.DecodeSnapshot(r)
	if err != nil {
		return nil, err
	}
	first := faces[0]

	opts := Options{
		Type: TypeFloat,
		// Snapshot rows are already in GL order.
		NoVerticalFlip: true,
	}
	switch len(faces) {
	case 1:
		opts.Kind = Texture2D
	case 6:
		opts.Kind = Cubemap
	default:
		return nil, fmt.Errorf("%w: snapshot has %d faces", ErrInvalidConfiguration, len(faces))
	}
	switch first.Channels {
	case 3:
		opts.Format = FormatRGB
	case 4:
		opts.Format = FormatRGBA
	default:
		opts.Format = FormatRGBA
		for i, f := range faces {
			faces[i] = f.ToChannels(4, 0, 0, 0, 1)
		}
	}

	tex, err := New(ctx, first.Width, first.Height, opts)
	if err != nil {
		return nil, err
	}

	pix := make([]float32, 0, len(faces)*len(faces[0].Pix))
	for _, f := range faces {
		pix = append(pix, f.Pix...)
	}
	if err := tex.UploadData(pix); err != nil {
		tex.Delete()
		return nil, err
	}
	return tex, nil
}
