// Package libtex implements GPU resident 2D and cube map textures on top of
// libgl: creation and parameter setup, pixel uploads, render-to-texture with
// pooled depth renderbuffers, copy/blur, readback and export.
package libtex

import (
	"fmt"
	"math/bits"

	"gltex/libgl"
)

type Kind uint32

const (
	Texture2D Kind = libgl.TEXTURE_2D
	Cubemap   Kind = libgl.TEXTURE_CUBE_MAP
)

type Format uint32

const (
	FormatRGB   Format = libgl.RGB
	FormatRGBA  Format = libgl.RGBA
	FormatDepth Format = libgl.DEPTH_COMPONENT
)

type Type uint32

const (
	TypeUnsignedByte Type = libgl.UNSIGNED_BYTE
	TypeHalfFloat    Type = libgl.HALF_FLOAT
	TypeFloat        Type = libgl.FLOAT
)

type Filter int32

const (
	FilterNearest              Filter = libgl.NEAREST
	FilterLinear               Filter = libgl.LINEAR
	FilterNearestMipmapNearest Filter = libgl.NEAREST_MIPMAP_NEAREST
	FilterLinearMipmapNearest  Filter = libgl.LINEAR_MIPMAP_NEAREST
	FilterNearestMipmapLinear  Filter = libgl.NEAREST_MIPMAP_LINEAR
	FilterLinearMipmapLinear   Filter = libgl.LINEAR_MIPMAP_LINEAR
)

// MipmapCapable reports whether sampling through f reads mipmap levels.
func (f Filter) MipmapCapable() bool {
	switch f {
	case FilterNearestMipmapNearest, FilterLinearMipmapNearest,
		FilterNearestMipmapLinear, FilterLinearMipmapLinear:
		return true
	}
	return false
}

type Wrap int32

const (
	WrapClamp          Wrap = libgl.CLAMP_TO_EDGE
	WrapRepeat         Wrap = libgl.REPEAT
	WrapMirroredRepeat Wrap = libgl.MIRRORED_REPEAT
)

// Options configure a new texture. Zero values select the defaults: 2D,
// RGBA, unsigned byte, nearest filtering, clamp to edge wrapping, vertical
// flip on upload, no premultiplication.
type Options struct {
	Kind   Kind
	Format Format
	Type   Type

	// Filter sets both filters, MagFilter/MinFilter override it.
	Filter    Filter
	MagFilter Filter
	MinFilter Filter

	// Wrap sets both axes, WrapS/WrapT override it.
	Wrap  Wrap
	WrapS Wrap
	WrapT Wrap

	// Pixels optionally fills the texture at construction. Accepts the
	// same payloads as UploadData and requires a non zero size.
	Pixels any

	PremultiplyAlpha bool
	// Uploads flip rows by default so the bottom left GL origin lines up
	// with Go's top left image origin. NoVerticalFlip keeps source order.
	NoVerticalFlip bool

	AnisotropicSamples float32

	// AllowNonPowerOfTwo downgrades mipmap filters and non clamp wraps to
	// linear/clamp on non power of two sizes instead of failing.
	AllowNonPowerOfTwo bool
}

func (opts Options) withDefaults() Options {
	if opts.Kind == 0 {
		opts.Kind = Texture2D
	}
	if opts.Format == 0 {
		opts.Format = FormatRGBA
	}
	if opts.Type == 0 {
		opts.Type = TypeUnsignedByte
	}
	if opts.Filter == 0 {
		opts.Filter = FilterNearest
	}
	if opts.MagFilter == 0 {
		opts.MagFilter = opts.Filter
	}
	if opts.MinFilter == 0 {
		opts.MinFilter = opts.Filter
	}
	if opts.Wrap == 0 {
		opts.Wrap = WrapClamp
	}
	if opts.WrapS == 0 {
		opts.WrapS = opts.Wrap
	}
	if opts.WrapT == 0 {
		opts.WrapT = opts.Wrap
	}
	return opts
}

// Texture owns one GPU image resource, 2D or cube map. It must only be used
// with the context that created it.
type Texture struct {
	ctx  *Context
	glId uint32

	kind          Kind
	width, height int
	format        Format
	typ           Type
	magFilter     Filter
	minFilter     Filter
	wrapS, wrapT  Wrap
	anisotropy    float32

	hasMipmaps       bool
	premultiplyAlpha bool
	flipVertically   bool
	ready            bool
}

// New validates opts against the context capabilities and creates a texture.
// A 0x0 size defers storage allocation to the first upload; otherwise storage
// (all six faces, for cube maps) is allocated immediately. No GPU resource is
// touched before validation passes.
func New(ctx *Context, width, height int, opts Options) (*Texture, error) {
	if width < 0 || height < 0 {
		return nil, fmt.Errorf("%w: %dx%d", ErrInvalidDimensions, width, height)
	}
	opts = opts.withDefaults()

	caps := ctx.GL.Caps()
	if opts.Format == FormatDepth && !caps.DepthTextures {
		return nil, fmt.Errorf("%w: depth textures", ErrCapabilityMissing)
	}
	switch opts.Type {
	case TypeFloat:
		if !caps.FloatTextures {
			return nil, fmt.Errorf("%w: float textures", ErrCapabilityMissing)
		}
	case TypeHalfFloat:
		if !caps.HalfFloatTextures {
			return nil, fmt.Errorf("%w: half float textures", ErrCapabilityMissing)
		}
	}
	if opts.AnisotropicSamples > caps.MaxAnisotropy {
		return nil, fmt.Errorf("%w: %v anisotropic samples, at most %v supported", ErrCapabilityMissing, opts.AnisotropicSamples, caps.MaxAnisotropy)
	}

	if opts.Pixels != nil && (width == 0 || height == 0) {
		return nil, fmt.Errorf("%w: initial pixels need a sized texture", ErrInvalidConfiguration)
	}

	if width > 0 && height > 0 && !(isPowerOfTwo(width) && isPowerOfTwo(height)) {
		unsafeFilter := opts.MinFilter.MipmapCapable()
		unsafeWrap := opts.WrapS != WrapClamp || opts.WrapT != WrapClamp
		if unsafeFilter || unsafeWrap {
			if !opts.AllowNonPowerOfTwo {
				return nil, fmt.Errorf("%w: %dx%d is not power of two, needs clamp wrap and a non mipmap filter", ErrInvalidConfiguration, width, height)
			}
			if unsafeFilter {
				opts.MinFilter = FilterLinear
			}
			opts.WrapS = WrapClamp
			opts.WrapT = WrapClamp
		}
	}

	tex := &Texture{
		ctx:              ctx,
		kind:             opts.Kind,
		format:           opts.Format,
		typ:              opts.Type,
		magFilter:        opts.MagFilter,
		minFilter:        opts.MinFilter,
		wrapS:            opts.WrapS,
		wrapT:            opts.WrapT,
		anisotropy:       opts.AnisotropicSamples,
		premultiplyAlpha: opts.PremultiplyAlpha,
		flipVertically:   !opts.NoVerticalFlip,
	}

	if width > 0 && height > 0 {
		tex.allocate(width, height)
		if opts.Pixels != nil {
			if err := tex.UploadData(opts.Pixels); err != nil {
				tex.Delete()
				return nil, err
			}
		} else if tex.mipmapped() {
			tex.ctx.GL.Backend().GenerateTextureMipmap(tex.glId)
			tex.hasMipmaps = true
		}
	}

	return tex, nil
}

// allocate creates the GL object and immutable storage. Callers have
// validated the configuration already.
func (t *Texture) allocate(width, height int) {
	b := t.ctx.GL.Backend()
	t.glId = b.CreateTexture(uint32(t.kind))
	t.width = width
	t.height = height

	levels := 1
	if t.mipmapped() {
		levels = bits.Len(uint(maxInt(width, height)))
	}
	b.TextureStorage2D(t.glId, levels, t.internalFormat(), width, height)
	t.applyParameters()
	t.hasMipmaps = false
	t.ready = true
}

// ensureStorage (re)allocates for a new size. Immutable storage cannot be
// resized, so a size change replaces the GL object.
func (t *Texture) ensureStorage(width, height int) {
	if t.ready && t.width == width && t.height == height {
		return
	}
	// Image sourced sizes bypass construction, apply the same non power of
	// two downgrade New does.
	if !(isPowerOfTwo(width) && isPowerOfTwo(height)) {
		if t.minFilter.MipmapCapable() {
			t.minFilter = FilterLinear
		}
		t.wrapS = WrapClamp
		t.wrapT = WrapClamp
	}
	if t.glId != 0 {
		t.ctx.GL.Backend().DeleteTexture(t.glId)
	}
	t.allocate(width, height)
}

// mipmapped reports whether this texture carries a full mipmap chain:
// mipmap capable min filter on a power of two size.
func (t *Texture) mipmapped() bool {
	return t.minFilter.MipmapCapable() && isPowerOfTwo(t.width) && isPowerOfTwo(t.height)
}

func (t *Texture) applyParameters() {
	b := t.ctx.GL.Backend()
	b.TextureParameteri(t.glId, libgl.TEXTURE_MAG_FILTER, int32(t.magFilter))
	b.TextureParameteri(t.glId, libgl.TEXTURE_MIN_FILTER, int32(t.minFilter))
	b.TextureParameteri(t.glId, libgl.TEXTURE_WRAP_S, int32(t.wrapS))
	b.TextureParameteri(t.glId, libgl.TEXTURE_WRAP_T, int32(t.wrapT))
	if t.anisotropy > 0 {
		b.TextureParameterf(t.glId, libgl.TEXTURE_MAX_ANISOTROPY, t.anisotropy)
	}
}

func (t *Texture) internalFormat() uint32 {
	switch t.format {
	case FormatDepth:
		return libgl.DEPTH_COMPONENT24
	case FormatRGB:
		switch t.typ {
		case TypeHalfFloat:
			return libgl.RGB16F
		case TypeFloat:
			return libgl.RGB32F
		}
		return libgl.RGB8
	default:
		switch t.typ {
		case TypeHalfFloat:
			return libgl.RGBA16F
		case TypeFloat:
			return libgl.RGBA32F
		}
		return libgl.RGBA8
	}
}

// Channels returns the component count of the stored format.
func (t *Texture) Channels() int {
	switch t.format {
	case FormatRGB:
		return 3
	case FormatDepth:
		return 1
	}
	return 4
}

// BytesPerPixel returns the upload payload size of one pixel.
func (t *Texture) BytesPerPixel() int {
	size := 1
	switch t.typ {
	case TypeHalfFloat:
		size = 2
	case TypeFloat:
		size = 4
	}
	return size * t.Channels()
}

func (t *Texture) Id() uint32        { return t.glId }
func (t *Texture) Kind() Kind        { return t.kind }
func (t *Texture) Width() int        { return t.width }
func (t *Texture) Height() int       { return t.height }
func (t *Texture) Format() Format    { return t.format }
func (t *Texture) Type() Type        { return t.typ }
func (t *Texture) MagFilter() Filter { return t.magFilter }
func (t *Texture) MinFilter() Filter { return t.minFilter }
func (t *Texture) WrapS() Wrap       { return t.wrapS }
func (t *Texture) WrapT() Wrap       { return t.wrapT }
func (t *Texture) HasMipmaps() bool  { return t.hasMipmaps }

// Ready reports whether the texture has storage and, for asynchronously
// loaded textures, whether the real pixels have arrived.
func (t *Texture) Ready() bool { return t.ready }

// Bind makes the texture current on the given texture unit.
func (t *Texture) Bind(unit int) {
	t.ctx.GL.BindTexture(uint32(t.kind), t.glId, unit)
}

// Unbind detaches whatever texture is bound to the unit.
func (t *Texture) Unbind(unit int) {
	t.ctx.GL.BindTexture(uint32(t.kind), 0, unit)
}

// Parameter names accepted by SetParameter.
type Parameter int

const (
	ParamMagFilter Parameter = iota
	ParamMinFilter
	ParamWrapS
	ParamWrapT
	ParamAnisotropy
)

// SetParameter updates one sampler parameter and the corresponding cached
// attribute. The texture is rebound to unit 0 first.
func (t *Texture) SetParameter(param Parameter, value any) error {
	if t.glId == 0 {
		return fmt.Errorf("%w: texture has no storage", ErrInvalidDimensions)
	}
	t.Bind(0)
	b := t.ctx.GL.Backend()
	switch param {
	case ParamMagFilter:
		f, ok := value.(Filter)
		if !ok {
			return fmt.Errorf("%w: mag filter needs a Filter, got %T", ErrInvalidConfiguration, value)
		}
		b.TextureParameteri(t.glId, libgl.TEXTURE_MAG_FILTER, int32(f))
		t.magFilter = f
	case ParamMinFilter:
		f, ok := value.(Filter)
		if !ok {
			return fmt.Errorf("%w: min filter needs a Filter, got %T", ErrInvalidConfiguration, value)
		}
		b.TextureParameteri(t.glId, libgl.TEXTURE_MIN_FILTER, int32(f))
		t.minFilter = f
	case ParamWrapS:
		w, ok := value.(Wrap)
		if !ok {
			return fmt.Errorf("%w: wrap needs a Wrap, got %T", ErrInvalidConfiguration, value)
		}
		b.TextureParameteri(t.glId, libgl.TEXTURE_WRAP_S, int32(w))
		t.wrapS = w
	case ParamWrapT:
		w, ok := value.(Wrap)
		if !ok {
			return fmt.Errorf("%w: wrap needs a Wrap, got %T", ErrInvalidConfiguration, value)
		}
		b.TextureParameteri(t.glId, libgl.TEXTURE_WRAP_T, int32(w))
		t.wrapT = w
	case ParamAnisotropy:
		a, ok := value.(float32)
		if !ok {
			return fmt.Errorf("%w: anisotropy needs a float32, got %T", ErrInvalidConfiguration, value)
		}
		if a > t.ctx.GL.Caps().MaxAnisotropy {
			return fmt.Errorf("%w: %v anisotropic samples, at most %v supported", ErrCapabilityMissing, a, t.ctx.GL.Caps().MaxAnisotropy)
		}
		b.TextureParameterf(t.glId, libgl.TEXTURE_MAX_ANISOTROPY, a)
		t.anisotropy = a
	default:
		return fmt.Errorf("%w: unknown parameter %d", ErrInvalidConfiguration, param)
	}
	return nil
}

// Delete releases the GPU resource. The texture must not be used afterwards.
func (t *Texture) Delete() {
	if t.glId != 0 {
		t.ctx.GL.Backend().DeleteTexture(t.glId)
		t.glId = 0
	}
	t.ready = false
}

func (t *Texture) sameContext(other *Texture) error {
	if other.ctx != t.ctx {
		return fmt.Errorf("%w: textures belong to different contexts", ErrInvalidConfiguration)
	}
	return nil
}

func isPowerOfTwo(v int) bool {
	return v > 0 && v&(v-1) == 0
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
