package probe

import (
	"context"

	"github.com/marcomaroni-github/instagram-to-bluesky-sub000/internal/domain"
)

// ImageMeta resolves the pixel dimensions of an image payload. Absence is
// not an error; the unit just ships without an aspect ratio.
type ImageMeta interface {
	Dimensions(data []byte) (domain.AspectRatio, bool)
}

// VideoMeta resolves the frame dimensions of a video file on disk. Probing
// may fail; callers fall back to a placeholder instead of blocking the
// pipeline.
type VideoMeta interface {
	Dimensions(ctx context.Context, path string) (domain.AspectRatio, error)
}
