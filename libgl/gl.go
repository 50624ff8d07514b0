// Package libgl is the low level OpenGL layer: a Backend interface over the
// subset of GL the module issues, a Context that tracks binding state and
// capabilities, and thin wrappers for framebuffers, renderbuffers, shader
// programs and geometry.
package libgl

// GL enum values, declared locally so the package core has no hard dependency
// on a specific binding. The glow backend passes them through unchanged.
const (
	TEXTURE_2D                  = 0x0DE1
	TEXTURE_CUBE_MAP            = 0x8513
	TEXTURE_CUBE_MAP_POSITIVE_X = 0x8515

	NEAREST                = 0x2600
	LINEAR                 = 0x2601
	NEAREST_MIPMAP_NEAREST = 0x2700
	LINEAR_MIPMAP_NEAREST  = 0x2701
	NEAREST_MIPMAP_LINEAR  = 0x2702
	LINEAR_MIPMAP_LINEAR   = 0x2703

	TEXTURE_MAG_FILTER     = 0x2800
	TEXTURE_MIN_FILTER     = 0x2801
	TEXTURE_WRAP_S         = 0x2802
	TEXTURE_WRAP_T         = 0x2803
	TEXTURE_MAX_ANISOTROPY = 0x84FE

	CLAMP_TO_EDGE   = 0x812F
	REPEAT          = 0x2901
	MIRRORED_REPEAT = 0x8370

	RGB             = 0x1907
	RGBA            = 0x1908
	DEPTH_COMPONENT = 0x1902

	RGB8              = 0x8051
	RGBA8             = 0x8058
	RGB16F            = 0x881B
	RGBA16F           = 0x881A
	RGB32F            = 0x8815
	RGBA32F           = 0x8814
	DEPTH_COMPONENT16 = 0x81A5
	DEPTH_COMPONENT24 = 0x81A6

	UNSIGNED_BYTE = 0x1401
	HALF_FLOAT    = 0x140B
	FLOAT         = 0x1406

	FRAMEBUFFER      = 0x8D40
	READ_FRAMEBUFFER = 0x8CA8
	DRAW_FRAMEBUFFER = 0x8CA9
	RENDERBUFFER     = 0x8D41

	COLOR_ATTACHMENT0 = 0x8CE0
	DEPTH_ATTACHMENT  = 0x8D00

	FRAMEBUFFER_COMPLETE                      = 0x8CD5
	FRAMEBUFFER_INCOMPLETE_ATTACHMENT         = 0x8CD6
	FRAMEBUFFER_INCOMPLETE_MISSING_ATTACHMENT = 0x8CD7
	FRAMEBUFFER_INCOMPLETE_DRAW_BUFFER        = 0x8CDB
	FRAMEBUFFER_INCOMPLETE_READ_BUFFER        = 0x8CDC
	FRAMEBUFFER_UNSUPPORTED                   = 0x8CDD
	FRAMEBUFFER_INCOMPLETE_MULTISAMPLE        = 0x8D56
	FRAMEBUFFER_INCOMPLETE_LAYER_TARGETS      = 0x8DA8

	VIEWPORT                         = 0x0BA2
	MAX_TEXTURE_SIZE                 = 0x0D33
	MAX_COMBINED_TEXTURE_IMAGE_UNITS = 0x8B4C
	MAX_DRAW_BUFFERS                 = 0x8824
	MAX_COLOR_ATTACHMENTS            = 0x8CDF
	MAX_TEXTURE_MAX_ANISOTROPY       = 0x84FF

	UNPACK_ALIGNMENT = 0x0CF5
	PACK_ALIGNMENT   = 0x0D05

	VERTEX_SHADER   = 0x8B31
	FRAGMENT_SHADER = 0x8B30
	COMPILE_STATUS  = 0x8B81
	LINK_STATUS     = 0x8B82
	INFO_LOG_LENGTH = 0x8B84

	ARRAY_BUFFER        = 0x8892
	DYNAMIC_STORAGE_BIT = 0x0100

	TRIANGLE_STRIP = 0x0005

	COLOR_BUFFER_BIT = 0x4000
	DEPTH_BUFFER_BIT = 0x0100

	VENDOR   = 0x1F00
	RENDERER = 0x1F01
	VERSION  = 0x1F02

	TEXTURE0 = 0x84C0

	NONE = 0
)
