package resize

import (
	"bytes"
	"image"
	"image/jpeg"
	"math"

	_ "image/gif"
	_ "image/png"

	"golang.org/x/image/draw"

	_ "golang.org/x/image/webp"
)

const (
	jpegQuality = 85
	maxAttempts = 8
)

// ToFit re-encodes an oversized image as JPEG, downscaling progressively
// until it fits under maxBytes. The second return value reports whether the
// bytes were re-encoded, which changes their content type to image/jpeg.
// Returns nil when the image cannot be made to fit; callers drop it. Data
// already under the ceiling passes through untouched, preserving the
// original bytes.
func ToFit(data []byte, maxBytes int64) ([]byte, bool) {
	if int64(len(data)) <= maxBytes {
		return data, false
	}

	src, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, false
	}

	// First try a plain JPEG re-encode; exports often carry PNGs that
	// compress well below the ceiling without losing pixels.
	scale := 1.0
	for attempt := 0; attempt < maxAttempts; attempt++ {
		encoded, err := encodeScaled(src, scale)
		if err != nil {
			return nil, false
		}
		if int64(len(encoded)) <= maxBytes {
			return encoded, true
		}
		// Shrink area roughly proportionally to the overshoot.
		ratio := float64(maxBytes) / float64(len(encoded))
		scale *= math.Sqrt(ratio) * 0.95
	}

	return nil, false
}

func encodeScaled(src image.Image, scale float64) ([]byte, error) {
	img := src
	if scale < 1.0 {
		b := src.Bounds()
		w := int(float64(b.Dx()) * scale)
		h := int(float64(b.Dy()) * scale)
		if w < 1 || h < 1 {
			w, h = 1, 1
		}
		dst := image.NewRGBA(image.Rect(0, 0, w, h))
		draw.CatmullRom.Scale(dst, dst.Bounds(), src, b, draw.Over, nil)
		img = dst
	}

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: jpegQuality}); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
