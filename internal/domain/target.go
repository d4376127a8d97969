package domain

import "time"

// Structural limits of the destination platform.
const (
	MaxTextRunes     = 300 // Per post and per media caption, ellipsis included
	MaxImagesPerPost = 4
)

// TargetPost is one post ready for the destination platform.
//
// Media is always present, possibly empty, and kind-pure: either 1..4 image
// units or exactly one video unit. Never both kinds, never more than four
// images, never more than one video.
type TargetPost struct {
	CreatedAt time.Time
	Text      string
	Media     []NormalizedMediaUnit
}

// UploadedPost is the ledger record of a source post that has already been
// migrated, so re-runs and watch mode skip it.
type UploadedPost struct {
	ID        int
	SourceKey string // First media URI (or "text") + "@" + source unix timestamp
	RecordURI string // Record URI returned by the destination, empty in simulate mode
	CreatedAt time.Time
}
