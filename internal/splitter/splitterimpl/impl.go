package splitterimpl

import (
	"go.uber.org/fx"

	"github.com/marcomaroni-github/instagram-to-bluesky-sub000/internal/domain"
	"github.com/marcomaroni-github/instagram-to-bluesky-sub000/internal/processor"
	"github.com/marcomaroni-github/instagram-to-bluesky-sub000/internal/splitter"
	"github.com/marcomaroni-github/instagram-to-bluesky-sub000/internal/textcodec"
	"github.com/marcomaroni-github/instagram-to-bluesky-sub000/pkg/formatter"
	"github.com/marcomaroni-github/instagram-to-bluesky-sub000/pkg/logger"
)

type Opts struct {
	fx.In

	Images processor.Image
	Videos processor.Video
	Codec  *textcodec.Codec
	Logger logger.Logger
}

type SplitterImpl struct {
	Images processor.Image
	Videos processor.Video
	Codec  *textcodec.Codec
	Logger logger.Logger
}

func New(opts Opts) *SplitterImpl {
	return &SplitterImpl{
		Images: opts.Images,
		Videos: opts.Videos,
		Codec:  opts.Codec,
		Logger: opts.Logger.WithComponent("PostSplitter"),
	}
}

var _ splitter.Client = (*SplitterImpl)(nil)

// resolveTitle picks the post's text: the post title, else the caption of a
// single lone media item, else empty. Truncated to the post text budget,
// which is separate from each item's caption budget. The second return
// value reports a promoted lone-media caption, which then serves as the
// post text instead of a per-item caption.
func (s *SplitterImpl) resolveTitle(post domain.SourcePost) (string, bool) {
	title := post.Title
	promoted := false
	if title == "" && len(post.Media) == 1 {
		title = post.Media[0].Caption
		promoted = title != ""
	}
	return formatter.Ellipsis(s.Codec.DecodeString(title), domain.MaxTextRunes), promoted
}
