package probeimpl

import (
	"bytes"
	"image"

	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	_ "golang.org/x/image/webp"

	"github.com/marcomaroni-github/instagram-to-bluesky-sub000/internal/domain"
	"github.com/marcomaroni-github/instagram-to-bluesky-sub000/internal/probe"
	"github.com/marcomaroni-github/instagram-to-bluesky-sub000/pkg/logger"
)

type ImageProbe struct {
	logger logger.Logger
}

func NewImageProbe(log logger.Logger) *ImageProbe {
	return &ImageProbe{logger: log.WithComponent("ImageProbe")}
}

var _ probe.ImageMeta = (*ImageProbe)(nil)

// Dimensions reads just the image header, never the full pixel data.
func (p *ImageProbe) Dimensions(data []byte) (domain.AspectRatio, bool) {
	cfg, format, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		p.logger.Debug("Could not read image dimensions", "error", err)
		return domain.AspectRatio{}, false
	}
	p.logger.Debug("Probed image", "format", format, "width", cfg.Width, "height", cfg.Height)
	return domain.AspectRatio{Width: cfg.Width, Height: cfg.Height}, true
}
