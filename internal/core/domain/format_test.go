package domain

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
)

func padded(prefix []byte) []byte {
	out := make([]byte, 0, 32)
	out = append(out, prefix...)
	for len(out) < 32 {
		out = append(out, 0)
	}
	return out
}

func TestDetectFormat(t *testing.T) {
	tests := []struct {
		name string
		data []byte
		want DetectedFormat
	}{
		{
			name: "png",
			data: padded([]byte("\x89PNG\r\n\x1a\n")),
			want: FormatPNG,
		},
		{
			name: "jpeg",
			data: padded([]byte{0xFF, 0xD8, 0xFF, 0xE0}),
			want: FormatJPEG,
		},
		{
			name: "bmp",
			data: padded([]byte("BM")),
			want: FormatBMP,
		},
		{
			name: "gif87a",
			data: padded([]byte("GIF87a")),
			want: FormatGIF,
		},
		{
			name: "gif89a",
			data: padded([]byte("GIF89a")),
			want: FormatGIF,
		},
		{
			name: "tiff little endian",
			data: padded([]byte("II*\x00")),
			want: FormatTIFF,
		},
		{
			name: "tiff big endian",
			data: padded([]byte("MM\x00*")),
			want: FormatTIFF,
		},
		{
			name: "webp",
			data: padded([]byte("RIFF\x10\x00\x00\x00WEBP")),
			want: FormatWEBP,
		},
		{
			name: "svg at offset zero",
			data: []byte(`<svg xmlns="http://www.w3.org/2000/svg"></svg>`),
			want: FormatSVG,
		},
		{
			name: "svg after xml declaration",
			data: []byte(`<?xml version="1.0" encoding="UTF-8"?><svg width="10" height="10"></svg>`),
			want: FormatSVG,
		},
		{
			name: "svg tag beyond scan window",
			data: append(bytes.Repeat([]byte(" "), 120), []byte("<svg></svg>")...),
			want: FormatUnknown,
		},
		{
			name: "riff without webp marker",
			data: padded([]byte("RIFF\x10\x00\x00\x00WAVE")),
			want: FormatUnknown,
		},
		{
			name: "unknown",
			data: padded([]byte("this is not an image")),
			want: FormatUnknown,
		},
		{
			name: "empty",
			data: nil,
			want: FormatUnknown,
		},
		{
			name: "under sixteen bytes",
			data: []byte("\x89PNG\r\n\x1a\n"),
			want: FormatUnknown,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, DetectFormat(tc.data))
		})
	}
}

func TestDetectFormatSVGWinsOverOtherSignatures(t *testing.T) {
	// Content sniffing is ordered: markup containing <svg early is SVG
	// even when other leading bytes are present.
	data := []byte("BM <svg width=\"10\" height=\"10\"></svg>")
	assert.Equal(t, FormatSVG, DetectFormat(data))
}
