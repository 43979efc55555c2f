package domain

import "image"

type DetectedFormat string

const (
	FormatPNG     DetectedFormat = "PNG"
	FormatJPEG    DetectedFormat = "JPEG"
	FormatBMP     DetectedFormat = "BMP"
	FormatGIF     DetectedFormat = "GIF"
	FormatTIFF    DetectedFormat = "TIFF"
	FormatWEBP    DetectedFormat = "WEBP"
	FormatSVG     DetectedFormat = "SVG"
	FormatUnknown DetectedFormat = "UNKNOWN"
)

// Default raster size for vector input that declares no usable dimensions.
const (
	DefaultSVGWidth  = 800
	DefaultSVGHeight = 600
)

type InputKind string

const (
	InputBytes       InputKind = "bytes"
	InputEncodedText InputKind = "encoded_text"
)

// RawImageInput carries one submitted image, either as raw file bytes or as
// base64 text with an optional data-URL header. The variant is fixed at
// construction so downstream code dispatches on Kind exactly once.
type RawImageInput struct {
	kind        InputKind
	bytes       []byte
	encodedText string
}

func BytesInput(data []byte) RawImageInput {
	return RawImageInput{kind: InputBytes, bytes: data}
}

func EncodedTextInput(text string) RawImageInput {
	return RawImageInput{kind: InputEncodedText, encodedText: text}
}

func (i RawImageInput) Kind() InputKind {
	return i.kind
}

func (i RawImageInput) Bytes() []byte {
	return i.bytes
}

func (i RawImageInput) EncodedText() string {
	return i.encodedText
}

type ChannelLayout string

const (
	LayoutGrayscale ChannelLayout = "grayscale"
	LayoutTruecolor ChannelLayout = "truecolor"
)

// CanonicalImage is a normalized raster: single-channel grayscale or
// three-channel truecolor, any transparency already flattened onto white.
type CanonicalImage struct {
	Pixels image.Image
	Layout ChannelLayout
}

func (c *CanonicalImage) Width() int {
	return c.Pixels.Bounds().Dx()
}

func (c *CanonicalImage) Height() int {
	return c.Pixels.Bounds().Dy()
}

// TemporaryArtifact is the on-disk PNG handle for one canonical image. It is
// owned by the caller of the ingestion pipeline for the duration of a single
// evaluation and must be released when that evaluation completes.
type TemporaryArtifact struct {
	Path string
}
