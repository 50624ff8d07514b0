package libtex

import "errors"

var (
	// ErrCapabilityMissing is returned when a requested format, type or
	// anisotropy level exceeds what the active context supports.
	ErrCapabilityMissing = errors.New("capability missing")
	// ErrInvalidDimensions is returned for negative sizes and for
	// operations on textures without storage.
	ErrInvalidDimensions = errors.New("invalid dimensions")
	// ErrInvalidConfiguration is returned for requests that can never
	// work: depth textures as color targets, mismatched render target
	// sets, self aliased cube map blurs, foreign context textures.
	ErrInvalidConfiguration = errors.New("invalid configuration")
	// ErrSourceUnavailable wraps failures of the underlying image source,
	// such as a denied or failed URL fetch.
	ErrSourceUnavailable = errors.New("source unavailable")
)
