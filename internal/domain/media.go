package domain

// MediaKind classifies a media item by its payload type.
type MediaKind int

const (
	KindUnknown MediaKind = iota
	KindImage
	KindVideo
)

func (k MediaKind) String() string {
	switch k {
	case KindImage:
		return "image"
	case KindVideo:
		return "video"
	default:
		return "unknown"
	}
}

// AspectRatio is the pixel width and height of a media item.
type AspectRatio struct {
	Width  int
	Height int
}

// NormalizedMediaUnit is the output of an item processor: caption decoded,
// annotated and truncated, content type resolved, raw bytes loaded.
//
// ContentType and Bytes are both set or both absent. A unit with either
// absent never reaches a TargetPost.
type NormalizedMediaUnit struct {
	Text        string
	ContentType string // empty means the item is unsupported
	Bytes       []byte // nil means the item is unreadable or rejected
	Ratio       *AspectRatio
	Kind        MediaKind
}

// Usable reports whether the unit can be embedded in a TargetPost.
func (u NormalizedMediaUnit) Usable() bool {
	return u.ContentType != "" && len(u.Bytes) > 0
}
