package domain

import "bytes"

const minSniffLen = 16

// SVG markup may be preceded by an XML declaration, so the opening tag is
// searched for within this window rather than only at offset zero.
const svgScanWindow = 100

var (
	pngSignature  = []byte("\x89PNG\r\n\x1a\n")
	jpegSignature = []byte{0xFF, 0xD8, 0xFF}
	bmpSignature  = []byte("BM")
	gif87aHeader  = []byte("GIF87a")
	gif89aHeader  = []byte("GIF89a")
	tiffLittleEnd = []byte("II*\x00")
	tiffBigEnd    = []byte("MM\x00*")
	riffHeader    = []byte("RIFF")
	webpMarker    = []byte("WEBP")
	svgOpenTag    = []byte("<svg")
)

// DetectFormat classifies image content by its leading bytes. It is total:
// any input, including nil or short slices, yields a DetectedFormat, with
// FormatUnknown as the fail-closed outcome. Filenames and declared content
// types are never consulted.
func DetectFormat(data []byte) DetectedFormat {
	if len(data) < minSniffLen {
		return FormatUnknown
	}

	head := data
	if len(head) > svgScanWindow {
		head = head[:svgScanWindow]
	}
	if bytes.Contains(head, svgOpenTag) {
		return FormatSVG
	}

	switch {
	case bytes.HasPrefix(data, pngSignature):
		return FormatPNG
	case bytes.HasPrefix(data, jpegSignature):
		return FormatJPEG
	case bytes.HasPrefix(data, bmpSignature):
		return FormatBMP
	case bytes.HasPrefix(data, gif87aHeader), bytes.HasPrefix(data, gif89aHeader):
		return FormatGIF
	case bytes.HasPrefix(data, tiffLittleEnd), bytes.HasPrefix(data, tiffBigEnd):
		return FormatTIFF
	case bytes.HasPrefix(data, riffHeader) && bytes.Equal(data[8:12], webpMarker):
		return FormatWEBP
	}

	return FormatUnknown
}
