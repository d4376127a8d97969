package probeimpl

import (
	"context"
	"encoding/json"
	"fmt"
	"os/exec"

	"github.com/marcomaroni-github/instagram-to-bluesky-sub000/internal/domain"
	"github.com/marcomaroni-github/instagram-to-bluesky-sub000/internal/probe"
	"github.com/marcomaroni-github/instagram-to-bluesky-sub000/pkg/logger"
)

type VideoProbe struct {
	ffprobePath string
	logger      logger.Logger
}

// NewVideoProbe locates ffprobe in PATH. When it is missing the probe still
// constructs and every lookup fails, which callers handle with a placeholder
// aspect ratio.
func NewVideoProbe(log logger.Logger) *VideoProbe {
	path, err := exec.LookPath("ffprobe")
	if err != nil {
		log.Warn("ffprobe not found in PATH, video dimensions will use a placeholder")
	}
	return &VideoProbe{
		ffprobePath: path,
		logger:      log.WithComponent("VideoProbe"),
	}
}

var _ probe.VideoMeta = (*VideoProbe)(nil)

func (p *VideoProbe) Dimensions(ctx context.Context, path string) (domain.AspectRatio, error) {
	if p.ffprobePath == "" {
		return domain.AspectRatio{}, fmt.Errorf("ffprobe unavailable")
	}

	cmd := exec.CommandContext(ctx, p.ffprobePath,
		"-v", "quiet",
		"-print_format", "json",
		"-show_streams",
		path,
	)
	output, err := cmd.Output()
	if err != nil {
		return domain.AspectRatio{}, fmt.Errorf("ffprobe: %w", err)
	}

	type ffprobeStream struct {
		CodecType string `json:"codec_type"`
		Width     int    `json:"width"`
		Height    int    `json:"height"`
	}
	var parsed struct {
		Streams []ffprobeStream `json:"streams"`
	}
	if err := json.Unmarshal(output, &parsed); err != nil {
		return domain.AspectRatio{}, fmt.Errorf("parsing ffprobe output: %w", err)
	}

	for _, s := range parsed.Streams {
		if s.CodecType == "video" && s.Width > 0 && s.Height > 0 {
			return domain.AspectRatio{Width: s.Width, Height: s.Height}, nil
		}
	}
	return domain.AspectRatio{}, fmt.Errorf("no video stream with dimensions in %s", path)
}
