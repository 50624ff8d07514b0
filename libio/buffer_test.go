package libio

import (
	goimg "image"
	"image/color"
	"testing"
)

func TestPixelBufferIndex(t *testing.T) {
	buf := NewPixelBuffer(make([]uint8, 4*4*3), 3, 4, 4)
	if got := buf.Index(0, 0); got != 0 {
		t.Errorf("Index(0,0) = %d, want 0", got)
	}
	if got := buf.Index(2, 1); got != 2*3+1*3*4 {
		t.Errorf("Index(2,1) = %d, want %d", got, 2*3+1*3*4)
	}
}

func TestToChannelsExpands(t *testing.T) {
	rgb := NewPixelBuffer([]uint8{1, 2, 3, 4, 5, 6}, 3, 2, 1)
	rgba := rgb.ToChannels(4, 0, 0, 0, 0xff)

	want := []uint8{1, 2, 3, 0xff, 4, 5, 6, 0xff}
	if len(rgba.Pix) != len(want) {
		t.Fatalf("got %d components, want %d", len(rgba.Pix), len(want))
	}
	for i := range want {
		if rgba.Pix[i] != want[i] {
			t.Errorf("component %d = %d, want %d", i, rgba.Pix[i], want[i])
		}
	}
}

func TestToChannelsShrinks(t *testing.T) {
	rgba := NewPixelBuffer([]uint8{1, 2, 3, 4, 5, 6, 7, 8}, 4, 2, 1)
	rgb := rgba.ToChannels(3)

	want := []uint8{1, 2, 3, 5, 6, 7}
	for i := range want {
		if rgb.Pix[i] != want[i] {
			t.Errorf("component %d = %d, want %d", i, rgb.Pix[i], want[i])
		}
	}
}

func TestToChannelsWithoutDefaults(t *testing.T) {
	r := NewPixelBuffer([]uint8{9}, 1, 1, 1)
	rgba := r.ToChannels(4)

	want := []uint8{9, 0, 0, 0}
	for i := range want {
		if rgba.Pix[i] != want[i] {
			t.Errorf("component %d = %d, want %d", i, rgba.Pix[i], want[i])
		}
	}
}

func TestToChannelsSameCountIsPassthrough(t *testing.T) {
	buf := NewPixelBuffer([]uint8{1, 2, 3, 4}, 4, 1, 1)
	if out := buf.ToChannels(4); &out.Pix[0] != &buf.Pix[0] {
		t.Errorf("same channel count reallocated the pixel data")
	}
}

func TestPremultiply(t *testing.T) {
	buf := NewPixelBuffer([]uint8{0xff, 0x80, 0x00, 0x80}, 4, 1, 1)
	buf.Premultiply()

	if buf.Pix[0] != 0x80 || buf.Pix[1] != 0x40 || buf.Pix[2] != 0 {
		t.Errorf("premultiplied to %v", buf.Pix[:3])
	}
	if buf.Pix[3] != 0x80 {
		t.Errorf("alpha changed to %d", buf.Pix[3])
	}
}

func TestFlipVertical(t *testing.T) {
	buf := NewPixelBuffer([]uint8{1, 2, 3, 4, 5, 6}, 1, 2, 3)
	buf.FlipVertical()

	want := []uint8{5, 6, 3, 4, 1, 2}
	for i := range want {
		if buf.Pix[i] != want[i] {
			t.Errorf("component %d = %d, want %d", i, buf.Pix[i], want[i])
		}
	}
}

func TestNRGBARoundTrip(t *testing.T) {
	img := goimg.NewNRGBA(goimg.Rect(0, 0, 2, 2))
	img.SetNRGBA(0, 0, color.NRGBA{R: 0xff, A: 0xff})
	img.SetNRGBA(1, 1, color.NRGBA{B: 0xff, A: 0xff})

	buf := FromNRGBA(img, true)
	// The top left source pixel ends up in the last row of the GL buffer.
	if i := buf.Index(0, 1); buf.Pix[i] != 0xff {
		t.Errorf("flipped buffer misplaced the red pixel")
	}

	back := buf.ToNRGBA()
	if got := back.NRGBAAt(0, 0); got != img.NRGBAAt(0, 0) {
		t.Errorf("round trip pixel (0,0) = %v, want %v", got, img.NRGBAAt(0, 0))
	}
	if got := back.NRGBAAt(1, 1); got != img.NRGBAAt(1, 1) {
		t.Errorf("round trip pixel (1,1) = %v, want %v", got, img.NRGBAAt(1, 1))
	}
}

func TestFromNRGBAWithoutFlipKeepsRowOrder(t *testing.T) {
	img := goimg.NewNRGBA(goimg.Rect(0, 0, 1, 2))
	img.SetNRGBA(0, 0, color.NRGBA{R: 0xff, A: 0xff})

	buf := FromNRGBA(img, false)
	if buf.Pix[0] != 0xff {
		t.Errorf("unflipped buffer moved the first row")
	}
}

func TestFloatBufferHalfRoundTrip(t *testing.T) {
	src := NewFloatBuffer([]float32{0, 0.5, 1, -2}, 4, 1, 1)
	back := FloatBufferFromHalf(src.Half(), 4, 1, 1)

	for i, want := range src.Pix {
		if back.Pix[i] != want {
			t.Errorf("component %d = %v, want %v", i, back.Pix[i], want)
		}
	}
}
