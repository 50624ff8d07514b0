package libio

import (
	"bytes"
	"testing"

	"github.com/chewxy/math32"
)

func gradientFace(channels, width, height int, offset float32) *FloatBuffer {
	pix := make([]float32, width*height*channels)
	for i := range pix {
		pix[i] = offset + float32(i)*0.125
	}
	return NewFloatBuffer(pix, channels, width, height)
}

func TestSnapshotRoundTripUncompressed(t *testing.T) {
	face := gradientFace(4, 4, 2, 0)

	buf := bytes.NewBuffer(nil)
	if err := EncodeSnapshot(buf, []*FloatBuffer{face}, SnapshotCompressionNone); err != nil {
		t.Fatalf("EncodeSnapshot: %v", err)
	}

	faces, err := DecodeSnapshot(buf)
	if err != nil {
		t.Fatalf("DecodeSnapshot: %v", err)
	}
	if len(faces) != 1 {
		t.Fatalf("got %d faces, want 1", len(faces))
	}
	got := faces[0]
	if got.Width != 4 || got.Height != 2 || got.Channels != 4 {
		t.Fatalf("decoded %dx%d/%d, want 4x2/4", got.Width, got.Height, got.Channels)
	}
	for i, want := range face.Pix {
		if got.Pix[i] != want {
			t.Errorf("component %d = %v, want %v", i, got.Pix[i], want)
			break
		}
	}
}

func TestSnapshotRoundTripCompressed(t *testing.T) {
	faces := make([]*FloatBuffer, 6)
	for i := range faces {
		faces[i] = gradientFace(3, 8, 8, float32(i))
	}

	buf := bytes.NewBuffer(nil)
	if err := EncodeSnapshot(buf, faces, SnapshotCompressionFixedPoint16Lz4); err != nil {
		t.Fatalf("EncodeSnapshot: %v", err)
	}

	decoded, err := DecodeSnapshot(buf)
	if err != nil {
		t.Fatalf("DecodeSnapshot: %v", err)
	}
	if len(decoded) != 6 {
		t.Fatalf("got %d faces, want 6", len(decoded))
	}

	// 16 bit quantization over the face's value range.
	for f, face := range faces {
		min, max := face.Pix[0], face.Pix[len(face.Pix)-1]
		tolerance := (max - min) / 0xffff * 2
		for i, want := range face.Pix {
			if diff := math32.Abs(decoded[f].Pix[i] - want); diff > tolerance {
				t.Errorf("face %d component %d = %v, want %v within %v", f, i, decoded[f].Pix[i], want, tolerance)
				break
			}
		}
	}
}

func TestSnapshotCompressedConstantChannel(t *testing.T) {
	// A constant channel has a zero value range, which must not divide by
	// zero on either side.
	pix := make([]float32, 4*4)
	for i := range pix {
		pix[i] = 3
	}
	face := NewFloatBuffer(pix, 1, 4, 4)

	buf := bytes.NewBuffer(nil)
	if err := EncodeSnapshot(buf, []*FloatBuffer{face}, SnapshotCompressionFixedPoint16Lz4); err != nil {
		t.Fatalf("EncodeSnapshot: %v", err)
	}
	decoded, err := DecodeSnapshot(buf)
	if err != nil {
		t.Fatalf("DecodeSnapshot: %v", err)
	}
	for i, v := range decoded[0].Pix {
		if v != 3 {
			t.Errorf("component %d = %v, want 3", i, v)
			break
		}
	}
}

func TestSnapshotRejectsMismatchedFaces(t *testing.T) {
	faces := []*FloatBuffer{
		gradientFace(4, 4, 4, 0),
		gradientFace(4, 8, 8, 0),
	}
	if err := EncodeSnapshot(bytes.NewBuffer(nil), faces, SnapshotCompressionNone); err == nil {
		t.Errorf("mismatched faces were accepted")
	}
	if err := EncodeSnapshot(bytes.NewBuffer(nil), nil, SnapshotCompressionNone); err == nil {
		t.Errorf("empty face list was accepted")
	}
}

func TestSnapshotRejectsCorruptHeader(t *testing.T) {
	face := gradientFace(4, 2, 2, 0)
	buf := bytes.NewBuffer(nil)
	if err := EncodeSnapshot(buf, []*FloatBuffer{face}, SnapshotCompressionNone); err != nil {
		t.Fatalf("EncodeSnapshot: %v", err)
	}

	data := buf.Bytes()
	data[0] ^= 0xff
	if _, err := DecodeSnapshot(bytes.NewBuffer(data)); err == nil {
		t.Errorf("corrupt magic number was accepted")
	}

	if _, err := DecodeSnapshot(bytes.NewBuffer(nil)); err == nil {
		t.Errorf("empty stream was accepted")
	}
}
