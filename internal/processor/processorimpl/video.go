package processorimpl

import (
	"context"
	"path/filepath"

	"go.uber.org/fx"

	"github.com/marcomaroni-github/instagram-to-bluesky-sub000/internal/archive"
	"github.com/marcomaroni-github/instagram-to-bluesky-sub000/internal/domain"
	"github.com/marcomaroni-github/instagram-to-bluesky-sub000/internal/media"
	"github.com/marcomaroni-github/instagram-to-bluesky-sub000/internal/probe"
	"github.com/marcomaroni-github/instagram-to-bluesky-sub000/internal/processor"
	"github.com/marcomaroni-github/instagram-to-bluesky-sub000/internal/textcodec"
	"github.com/marcomaroni-github/instagram-to-bluesky-sub000/pkg/config"
	"github.com/marcomaroni-github/instagram-to-bluesky-sub000/pkg/logger"
)

// squarePlaceholder stands in when the frame size cannot be probed.
var squarePlaceholder = domain.AspectRatio{Width: 640, Height: 640}

type VideoOpts struct {
	fx.In

	Archive archive.Reader
	Probe   probe.VideoMeta
	Codec   *textcodec.Codec
	Config  *config.Config
	Logger  logger.Logger
}

type VideoImpl struct {
	Archive  archive.Reader
	Probe    probe.VideoMeta
	Codec    *textcodec.Codec
	Logger   logger.Logger
	MaxBytes int64
}

func NewVideo(opts VideoOpts) *VideoImpl {
	return &VideoImpl{
		Archive:  opts.Archive,
		Probe:    opts.Probe,
		Codec:    opts.Codec,
		Logger:   opts.Logger.WithComponent("VideoProcessor"),
		MaxBytes: opts.Config.Bluesky.MaxVideoBytes,
	}
}

var _ processor.Video = (*VideoImpl)(nil)

func (p *VideoImpl) Process(ctx context.Context, item domain.SourceMediaItem) domain.NormalizedMediaUnit {
	unit := domain.NormalizedMediaUnit{
		Kind: domain.KindVideo,
		Text: buildCaption(p.Codec, item),
	}

	cls, ok := media.Classify(item.URI)
	if !ok || cls.Kind != domain.KindVideo {
		p.Logger.Warn("Unsupported video type, dropping item", "uri", item.URI)
		return unit
	}

	data, err := p.Archive.ReadBytes(item.URI)
	if err != nil {
		p.Logger.Warn("Could not read video from archive, dropping item", "uri", item.URI, "error", err)
		return unit
	}

	// Hard platform ceiling, not a soft warning.
	if int64(len(data)) > p.MaxBytes {
		p.Logger.Warn("Video exceeds size ceiling, dropping item",
			"uri", item.URI, "size", len(data), "max", p.MaxBytes)
		return unit
	}

	unit.ContentType = cls.ContentType
	unit.Bytes = data

	ratio, err := p.Probe.Dimensions(ctx, filepath.Join(p.Archive.Folder(), item.URI))
	if err != nil {
		p.Logger.Debug("Could not probe video dimensions, using placeholder", "uri", item.URI, "error", err)
		ratio = squarePlaceholder
	}
	unit.Ratio = &ratio

	return unit
}
