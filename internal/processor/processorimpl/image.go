package processorimpl

import (
	"context"

	"go.uber.org/fx"

	"github.com/marcomaroni-github/instagram-to-bluesky-sub000/internal/archive"
	"github.com/marcomaroni-github/instagram-to-bluesky-sub000/internal/domain"
	"github.com/marcomaroni-github/instagram-to-bluesky-sub000/internal/media"
	"github.com/marcomaroni-github/instagram-to-bluesky-sub000/internal/probe"
	"github.com/marcomaroni-github/instagram-to-bluesky-sub000/internal/processor"
	"github.com/marcomaroni-github/instagram-to-bluesky-sub000/internal/textcodec"
	"github.com/marcomaroni-github/instagram-to-bluesky-sub000/pkg/logger"
)

type ImageOpts struct {
	fx.In

	Archive archive.Reader
	Probe   probe.ImageMeta
	Codec   *textcodec.Codec
	Logger  logger.Logger
}

type ImageImpl struct {
	Archive archive.Reader
	Probe   probe.ImageMeta
	Codec   *textcodec.Codec
	Logger  logger.Logger
}

func NewImage(opts ImageOpts) *ImageImpl {
	return &ImageImpl{
		Archive: opts.Archive,
		Probe:   opts.Probe,
		Codec:   opts.Codec,
		Logger:  opts.Logger.WithComponent("ImageProcessor"),
	}
}

var _ processor.Image = (*ImageImpl)(nil)

// Process never resizes: oversized originals ship as-is and the uploader
// decides whether to apply the resize fallback.
func (p *ImageImpl) Process(ctx context.Context, item domain.SourceMediaItem) domain.NormalizedMediaUnit {
	unit := domain.NormalizedMediaUnit{
		Kind: domain.KindImage,
		Text: buildCaption(p.Codec, item),
	}

	cls, ok := media.Classify(item.URI)
	if !ok || cls.Kind != domain.KindImage {
		p.Logger.Warn("Unsupported image type, dropping item", "uri", item.URI)
		return unit
	}

	data, err := p.Archive.ReadBytes(item.URI)
	if err != nil {
		p.Logger.Warn("Could not read image from archive, dropping item", "uri", item.URI, "error", err)
		return unit
	}

	unit.ContentType = cls.ContentType
	unit.Bytes = data

	if ratio, ok := p.Probe.Dimensions(data); ok {
		unit.Ratio = &ratio
	}

	return unit
}
