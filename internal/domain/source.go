package domain

import "time"

// GeoTag holds the coordinates attached to an exported media item.
type GeoTag struct {
	Latitude  float64
	Longitude float64
}

// SourceMediaItem is one physical photo or video inside the export archive.
type SourceMediaItem struct {
	URI               string  // Path relative to the archive folder
	CreationTimestamp int64   // Unix seconds, 0 when the export omits it
	Caption           string  // Raw export text, still mis-encoded
	Geo               *GeoTag // Present only when the export carries EXIF coordinates
}

// SourcePost is one exported post: a title plus its ordered media list.
// It is parsed once per run and never mutated.
type SourcePost struct {
	Title             string
	CreationTimestamp int64
	Media             []SourceMediaItem
}

// CreatedAt returns the post-level timestamp, or false when the export omits it.
func (p SourcePost) CreatedAt() (time.Time, bool) {
	if p.CreationTimestamp == 0 {
		return time.Time{}, false
	}
	return time.Unix(p.CreationTimestamp, 0).UTC(), true
}
