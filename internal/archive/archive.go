package archive

import (
	"errors"

	"github.com/marcomaroni-github/instagram-to-bluesky-sub000/internal/domain"
)

var ErrNotFound = errors.New("media file not found in archive")

// Reader gives the engine access to the raw export: the parsed post list and
// the media bytes referenced by it.
type Reader interface {
	LoadPosts() ([]domain.SourcePost, error)
	ReadBytes(relativeURI string) ([]byte, error)
	Folder() string
}
