package processor

import (
	"context"

	"github.com/marcomaroni-github/instagram-to-bluesky-sub000/internal/domain"
)

// Image converts one exported photo into a normalized media unit. Failures
// never surface as errors: an unsupported or unreadable item comes back with
// absent content type and bytes and is dropped downstream.
type Image interface {
	Process(ctx context.Context, item domain.SourceMediaItem) domain.NormalizedMediaUnit
}

// Video does the same for exported videos, additionally rejecting items over
// the platform's size ceiling.
type Video interface {
	Process(ctx context.Context, item domain.SourceMediaItem) domain.NormalizedMediaUnit
}
