package domain

import "errors"

var (
	ErrEncoding          = errors.New("malformed encoded image text")
	ErrUnknownFormat     = errors.New("cannot detect image format")
	ErrUnsupportedFormat = errors.New("unsupported image format")
	ErrInvalidImage      = errors.New("invalid or corrupted image")
	ErrConversion        = errors.New("vector markup conversion failed")
	ErrShape             = errors.New("toolpaths must be non-empty and of equal length")

	// ErrProcessing wraps unexpected internal faults so they stay
	// distinguishable from the client-input errors above.
	ErrProcessing = errors.New("processing failed")
)

var clientFaults = []error{
	ErrEncoding,
	ErrUnknownFormat,
	ErrUnsupportedFormat,
	ErrInvalidImage,
	ErrConversion,
	ErrShape,
}

// IsClientFault reports whether err originates from bad client input rather
// than an internal failure.
func IsClientFault(err error) bool {
	for _, kind := range clientFaults {
		if errors.Is(err, kind) {
			return true
		}
	}

	return false
}
