package imageproc

import (
	"bytes"
	"errors"
	"fmt"
	"image"

	"github.com/disintegration/imaging"

	_ "image/gif"
	_ "image/png"

	_ "golang.org/x/image/webp"
)

// Sentinel errors distinguishing decode failures (bad input) from encode
// failures (internal). Wrapped errors carry the underlying cause.
var (
	ErrDecode = errors.New("decode image")
	ErrEncode = errors.New("encode image")
)

// DetectFormat inspects the raw bytes and returns the image format:
// "jpeg", "png", "gif", "webp", or "" if unknown.
func DetectFormat(data []byte) string {
	// JPEG: starts with FF D8 FF
	if len(data) >= 3 && data[0] == 0xFF && data[1] == 0xD8 && data[2] == 0xFF {
		return "jpeg"
	}
	// PNG: starts with 89 50 4E 47 0D 0A 1A 0A
	if len(data) >= 8 && data[0] == 0x89 && data[1] == 0x50 && data[2] == 0x4E && data[3] == 0x47 &&
		data[4] == 0x0D && data[5] == 0x0A && data[6] == 0x1A && data[7] == 0x0A {
		return "png"
	}
	// GIF: starts with GIF87a or GIF89a
	if len(data) >= 6 && data[0] == 'G' && data[1] == 'I' && data[2] == 'F' {
		return "gif"
	}
	// WebP: starts with RIFF....WEBP
	if len(data) >= 12 && data[0] == 'R' && data[1] == 'I' && data[2] == 'F' && data[3] == 'F' &&
		data[8] == 'W' && data[9] == 'E' && data[10] == 'B' && data[11] == 'P' {
		return "webp"
	}
	return ""
}

// Transcode re-encodes raw image bytes under the given profile: the image
// is resized to fit within MaxWidth x MaxHeight preserving aspect ratio
// (never enlarged), then encoded as JPEG at the profile quality. Pure
// transform, no I/O.
func Transcode(raw []byte, p Profile) ([]byte, error) {
	if DetectFormat(raw) == "" {
		return nil, fmt.Errorf("%w: unsupported or unrecognized format", ErrDecode)
	}

	img, _, err := image.Decode(bytes.NewReader(raw))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDecode, err)
	}

	img = fitInside(img, p.MaxWidth, p.MaxHeight)

	var buf bytes.Buffer
	if err := imaging.Encode(&buf, img, imaging.JPEG, imaging.JPEGQuality(p.Quality)); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrEncode, err)
	}
	return buf.Bytes(), nil
}

// fitInside resizes to fit within maxW x maxH, preserving aspect ratio.
// Only shrinks, never enlarges.
func fitInside(img image.Image, maxW, maxH int) image.Image {
	if img.Bounds().Dx() <= maxW && img.Bounds().Dy() <= maxH {
		// Already fits; do not enlarge.
		return img
	}
	return imaging.Fit(img, maxW, maxH, imaging.Lanczos)
}
