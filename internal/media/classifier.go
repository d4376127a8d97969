package media

import (
	"path/filepath"
	"strings"

	"github.com/marcomaroni-github/instagram-to-bluesky-sub000/internal/domain"
)

// Classification is the normalized type of a media file.
type Classification struct {
	Kind        domain.MediaKind
	ContentType string
}

var byExtension = map[string]Classification{
	".jpg":  {domain.KindImage, "image/jpeg"},
	".jpeg": {domain.KindImage, "image/jpeg"},
	".png":  {domain.KindImage, "image/png"},
	".gif":  {domain.KindImage, "image/gif"},
	".webp": {domain.KindImage, "image/webp"},
	".heic": {domain.KindImage, "image/heic"},
	".mp4":  {domain.KindVideo, "video/mp4"},
	".mov":  {domain.KindVideo, "video/quicktime"},
}

// Classify maps a file name or URI to its media kind and content type.
// The second return value is false for unsupported extensions.
func Classify(uri string) (Classification, bool) {
	ext := strings.ToLower(filepath.Ext(uri))
	c, ok := byExtension[ext]
	return c, ok
}

// Kind returns just the media kind of a URI, KindUnknown when unsupported.
func Kind(uri string) domain.MediaKind {
	c, ok := Classify(uri)
	if !ok {
		return domain.KindUnknown
	}
	return c.Kind
}
