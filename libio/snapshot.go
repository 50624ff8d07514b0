package libio

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"io"

	"github.com/chewxy/math32"
	"github.com/pierrec/lz4/v4"
)

// Snapshot container for float texture contents: one buffer per face, all
// faces with identical dimensions and channel count. 2D textures have one
// face, cube maps six.

const MagicNumberTxs = 0x74786d67

type SnapshotVersion uint32

const (
	TxsVersion1_000_000 = SnapshotVersion(1_000_000)
)

type SnapshotCompression uint32

const (
	SnapshotCompressionNone = SnapshotCompression(iota)
	SnapshotCompressionFixedPoint16Lz4
)

type snapshotHeader struct {
	Check       uint32
	Version     SnapshotVersion
	Width       uint32
	Height      uint32
	Channels    uint8
	Faces       uint8
	Compression SnapshotCompression
}

// EncodeSnapshot writes faces as one snapshot stream. All faces must share
// the dimensions and channel count of the first.
func EncodeSnapshot(w io.Writer, faces []*FloatBuffer, compression SnapshotCompression) (err error) {
	if len(faces) == 0 {
		return fmt.Errorf("snapshot needs at least one face")
	}
	first := faces[0]
	for _, f := range faces {
		if f.Width != first.Width || f.Height != first.Height || f.Channels != first.Channels {
			return fmt.Errorf("snapshot faces must agree in size and channels")
		}
	}

	bw := &BinaryWriter{
		Dst:   w,
		Order: binary.LittleEndian,
	}

	defer func() {
		if bw.Err != nil && err == nil {
			err = bw.Err
		}
	}()

	header := snapshotHeader{
		Check:       MagicNumberTxs,
		Version:     TxsVersion1_000_000,
		Width:       uint32(first.Width),
		Height:      uint32(first.Height),
		Channels:    uint8(first.Channels),
		Faces:       uint8(len(faces)),
		Compression: compression,
	}

	if !bw.WriteRef(header) {
		return fmt.Errorf("could not write txs header: %w", bw.Err)
	}

	switch compression {
	case SnapshotCompressionNone:
		for _, f := range faces {
			if !bw.WriteRef(f.Pix) {
				return fmt.Errorf("could not write txs pixels: %w", bw.Err)
			}
		}
	case SnapshotCompressionFixedPoint16Lz4:
		buf := bytes.NewBuffer(nil)
		lzw := lz4.NewWriter(buf)
		lzw.Apply(lz4.CompressionLevelOption(lz4.Fast))
		for _, f := range faces {
			data, cerr := compressFixedPoint16(f.Channels, f.Count(), f.Pix)
			if cerr != nil {
				return fmt.Errorf("could not compress txs pixels: %w", cerr)
			}
			if _, cerr = lzw.Write(data); cerr != nil {
				return fmt.Errorf("could not compress txs pixels: %w", cerr)
			}
		}
		if cerr := lzw.Flush(); cerr != nil {
			return fmt.Errorf("could not compress txs pixels: %w", cerr)
		}
		if !bw.WriteBytes(buf.Bytes()) {
			return fmt.Errorf("could not write txs encoded pixels: %w", bw.Err)
		}
	default:
		return fmt.Errorf("unknown txs compression %d", compression)
	}

	return nil
}

// DecodeSnapshot reads a snapshot stream back into per face float buffers.
func DecodeSnapshot(r io.Reader) (faces []*FloatBuffer, err error) {
	br := &BinaryReader{
		Src:   r,
		Order: binary.LittleEndian,
	}

	defer func() {
		if br.Err != nil && err == nil {
			err = br.Err
		}
	}()

	header := snapshotHeader{}
	if !br.ReadRef(&header) {
		return nil, fmt.Errorf("expected txs header; byte 0x%08x", br.LastIndex)
	}

	if header.Check != MagicNumberTxs {
		return nil, fmt.Errorf("txs header is corrupt; byte 0x%08x", br.LastIndex)
	}

	if header.Version != TxsVersion1_000_000 {
		return nil, fmt.Errorf("txs version %d unsupported; byte 0x%08x", header.Version, br.LastIndex)
	}

	width, height := int(header.Width), int(header.Height)
	channels := int(header.Channels)
	count := width * height

	faces = make([]*FloatBuffer, header.Faces)

	switch header.Compression {
	case SnapshotCompressionNone:
		for i := range faces {
			data := make([]float32, count*channels)
			if !br.ReadRef(data) {
				return nil, fmt.Errorf("could not read txs pixels: %w", br.Err)
			}
			faces[i] = NewFloatBuffer(data, channels, width, height)
		}
	case SnapshotCompressionFixedPoint16Lz4:
		rangeBytes := 4 * 2 * channels
		dataBytes := count * channels * 2
		lzr := lz4.NewReader(br.Src)
		for i := range faces {
			buf := make([]byte, rangeBytes+dataBytes)
			if _, rerr := io.ReadFull(lzr, buf); rerr != nil {
				return nil, fmt.Errorf("could not decompress txs pixels: %w", rerr)
			}
			data, derr := decompressFixedPoint16(channels, count, buf)
			if derr != nil {
				return nil, fmt.Errorf("could not decompress txs pixels: %w", derr)
			}
			faces[i] = NewFloatBuffer(data, channels, width, height)
		}
	default:
		return nil, fmt.Errorf("unknown txs compression %d", header.Compression)
	}

	return faces, nil
}

func compressFixedPoint16(channels int, count int, pix []float32) ([]byte, error) {
	rangeBytes := 4 * 2 * channels
	dataBytes := count * channels * 2
	buf := bytes.NewBuffer(make([]byte, 0, rangeBytes+dataBytes))
	bw := &BinaryWriter{Order: binary.LittleEndian, Dst: buf}
	for ch := 0; ch < channels; ch++ {
		compressChannelFixedPoint16(channels, count, pix, bw, ch)
		if bw.Err != nil {
			return nil, bw.Err
		}
	}
	return buf.Bytes(), nil
}

func compressChannelFixedPoint16(channels int, count int, pix []float32, bw *BinaryWriter, ch int) {
	var min, max float32 = math32.Inf(1), math32.Inf(-1)

	for i := 0; i < count; i++ {
		v := pix[i*channels+ch]
		if v < min {
			min = v
		}
		if v > max {
			max = v
		}
	}

	bw.WriteUInt32(math32.Float32bits(min))
	bw.WriteUInt32(math32.Float32bits(max))

	r := max - min
	if r == 0 {
		r = 1
	}
	for i := 0; i < count; i++ {
		flt := pix[i*channels+ch]
		fix := uint16(((flt - min) / r) * 0xffff)
		bw.WriteUInt16(fix)
	}
}

func decompressFixedPoint16(channels, count int, data []byte) ([]float32, error) {
	result := make([]float32, count*channels)
	br := &BinaryReader{
		Src:   bytes.NewBuffer(data),
		Order: binary.LittleEndian,
	}
	for ch := 0; ch < channels; ch++ {
		decompressChannelFixedPoint16(channels, count, result, br, ch)
		if br.Err != nil {
			return nil, br.Err
		}
	}
	return result, nil
}

func decompressChannelFixedPoint16(channels, count int, pix []float32, br *BinaryReader, ch int) {
	var imin, imax int
	br.ReadUInt32(&imin)
	br.ReadUInt32(&imax)

	min := math32.Float32frombits(uint32(imin))
	max := math32.Float32frombits(uint32(imax))

	data := make([]uint16, count)
	br.ReadRef(data)

	r := max - min
	if r == 0 {
		r = 1
	}
	for i := 0; i < count; i++ {
		fix := data[i]
		flt := (float32(fix)/0xffff)*r + min
		pix[i*channels+ch] = flt
	}
}
