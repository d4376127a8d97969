package archiveimpl

import (
	"os"
	"path/filepath"

	"github.com/marcomaroni-github/instagram-to-bluesky-sub000/internal/archive"
	"github.com/marcomaroni-github/instagram-to-bluesky-sub000/pkg/config"
	"github.com/marcomaroni-github/instagram-to-bluesky-sub000/pkg/logger"
	"go.uber.org/fx"
)

type Opts struct {
	fx.In

	Config *config.Config
	Logger logger.Logger
}

type ArchiveImpl struct {
	folder string
	logger logger.Logger
}

func New(opts Opts) *ArchiveImpl {
	return &ArchiveImpl{
		folder: opts.Config.Archive.Folder,
		logger: opts.Logger.WithComponent("Archive"),
	}
}

var _ archive.Reader = (*ArchiveImpl)(nil)

func (a *ArchiveImpl) Folder() string {
	return a.folder
}

// ReadBytes loads one media file relative to the archive folder. A missing
// file maps to archive.ErrNotFound so processors can drop the item.
func (a *ArchiveImpl) ReadBytes(relativeURI string) ([]byte, error) {
	data, err := os.ReadFile(filepath.Join(a.folder, relativeURI))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, archive.ErrNotFound
		}
		return nil, err
	}
	return data, nil
}
