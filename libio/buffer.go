// Package libio holds pixel buffer utilities shared by the texture upload,
// readback and snapshot paths: channel conversion, image interop, half float
// conversion and the compressed snapshot codec.
package libio

import goimg "image"

type buffer struct {
	Channels      int
	Width, Height int
}

// Index returns the tuple index of (x,y) into the buffer data.
//
// Note that the origin (0,0) is in the bottom left, matching GL's coordinate
// convention, as opposed to Go's top left origin.
func (b *buffer) Index(x, y int) int {
	return x*b.Channels + y*b.Channels*b.Width
}

func (b *buffer) Count() int {
	return b.Width * b.Height
}

// PixelBuffer is a tightly packed 8 bit pixel rectangle.
type PixelBuffer struct {
	buffer
	Pix []uint8
}

func NewPixelBuffer(pix []uint8, channels, width, height int) *PixelBuffer {
	return &PixelBuffer{
		Pix: pix,
		buffer: buffer{
			Channels: channels,
			Width:    width,
			Height:   height,
		},
	}
}

func (b *PixelBuffer) Bytes() int {
	return b.Width * b.Height * b.Channels
}

func (b *PixelBuffer) ToChannels(nr int, defaults ...uint8) *PixelBuffer {
	return NewPixelBuffer(toChannels(b.Channels, nr, b.Count(), b.Pix, defaults...), nr, b.Width, b.Height)
}

// Premultiply scales the color channels by alpha in place. Only meaningful
// for 4 channel buffers.
func (b *PixelBuffer) Premultiply() {
	if b.Channels != 4 {
		return
	}
	for i := 0; i < len(b.Pix); i += 4 {
		a := uint32(b.Pix[i+3])
		b.Pix[i+0] = uint8(uint32(b.Pix[i+0]) * a / 0xff)
		b.Pix[i+1] = uint8(uint32(b.Pix[i+1]) * a / 0xff)
		b.Pix[i+2] = uint8(uint32(b.Pix[i+2]) * a / 0xff)
	}
}

// FlipVertical reverses the row order in place.
func (b *PixelBuffer) FlipVertical() {
	stride := b.Width * b.Channels
	row := make([]uint8, stride)
	for y := 0; y < b.Height/2; y++ {
		top := b.Pix[y*stride : (y+1)*stride]
		bottom := b.Pix[(b.Height-y-1)*stride : (b.Height-y)*stride]
		copy(row, top)
		copy(top, bottom)
		copy(bottom, row)
	}
}

// ToNRGBA converts to a Go image, flipping back to the top left origin.
func (b *PixelBuffer) ToNRGBA() *goimg.NRGBA {
	nrgba := goimg.NewNRGBA(goimg.Rect(0, 0, b.Width, b.Height))
	for y := 0; y < b.Height; y++ {
		for x := 0; x < b.Width; x++ {
			i := (x + y*b.Width) * b.Channels
			j := (x + (b.Height-y-1)*b.Width) * 4
			for c := 0; c < b.Channels && c < 4; c++ {
				nrgba.Pix[j+c] = b.Pix[i+c]
			}
			if b.Channels < 4 {
				nrgba.Pix[j+3] = 0xff
			}
		}
	}
	return nrgba
}

// FromNRGBA packs a Go image into a bottom left origin pixel buffer.
func FromNRGBA(img *goimg.NRGBA, flip bool) *PixelBuffer {
	w, h := img.Rect.Dx(), img.Rect.Dy()
	pix := make([]uint8, w*h*4)
	for y := 0; y < h; y++ {
		src := img.Pix[y*img.Stride : y*img.Stride+w*4]
		dy := y
		if flip {
			dy = h - y - 1
		}
		copy(pix[dy*w*4:(dy+1)*w*4], src)
	}
	return NewPixelBuffer(pix, 4, w, h)
}

// FloatBuffer is a tightly packed float32 pixel rectangle.
type FloatBuffer struct {
	buffer
	Pix []float32
}

func NewFloatBuffer(pix []float32, channels, width, height int) *FloatBuffer {
	return &FloatBuffer{
		Pix: pix,
		buffer: buffer{
			Channels: channels,
			Width:    width,
			Height:   height,
		},
	}
}

func (b *FloatBuffer) Bytes() int {
	return b.Width * b.Height * b.Channels * 4
}

func (b *FloatBuffer) ToChannels(nr int, defaults ...float32) *FloatBuffer {
	return NewFloatBuffer(toChannels(b.Channels, nr, b.Count(), b.Pix, defaults...), nr, b.Width, b.Height)
}

// Half returns the buffer converted to IEEE 754 half precision bits.
func (b *FloatBuffer) Half() []uint16 {
	half := make([]uint16, len(b.Pix))
	for i, f := range b.Pix {
		half[i] = Float16bits(f)
	}
	return half
}

// FloatBufferFromHalf expands half precision bits to a float buffer.
func FloatBufferFromHalf(half []uint16, channels, width, height int) *FloatBuffer {
	pix := make([]float32, len(half))
	for i, h := range half {
		pix[i] = Float16frombits(h)
	}
	return NewFloatBuffer(pix, channels, width, height)
}

func toChannels[P ~[]E, E any](srcCh, dstCh int, count int, pix P, defaults ...E) P {
	if srcCh == dstCh {
		return pix
	}

	if len(defaults) < dstCh {
		missing := dstCh - len(defaults)
		defaults = append(defaults, make([]E, missing)...)
	}

	dst := make([]E, count*dstCh)

	if dstCh > srcCh {
		for i := 0; i < count; i++ {
			for c := 0; c < srcCh; c++ {
				dst[i*dstCh+c] = pix[i*srcCh+c]
			}
			for c := srcCh; c < dstCh; c++ {
				dst[i*dstCh+c] = defaults[c]
			}
		}
	}

	if dstCh < srcCh {
		for i := 0; i < count; i++ {
			for c := 0; c < dstCh; c++ {
				dst[i*dstCh+c] = pix[i*srcCh+c]
			}
		}
	}

	return dst
}
