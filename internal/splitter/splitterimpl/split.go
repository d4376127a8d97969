package splitterimpl

import (
	"context"
	"fmt"
	"time"
	"unicode/utf8"

	"golang.org/x/sync/errgroup"

	"github.com/marcomaroni-github/instagram-to-bluesky-sub000/internal/dates"
	"github.com/marcomaroni-github/instagram-to-bluesky-sub000/internal/domain"
	"github.com/marcomaroni-github/instagram-to-bluesky-sub000/internal/media"
	"github.com/marcomaroni-github/instagram-to-bluesky-sub000/internal/splitter"
	"github.com/marcomaroni-github/instagram-to-bluesky-sub000/pkg/formatter"
)

// mediaChunk is one prospective target post's media: either up to four
// images or a single video.
type mediaChunk struct {
	kind  domain.MediaKind
	items []domain.SourceMediaItem
}

// Split implements the splitting algorithm: resolve the base timestamp and
// title, partition media into kind runs, chunk image runs by four, give each
// video its own post, then suffix and offset the result when it splits.
func (s *SplitterImpl) Split(ctx context.Context, post domain.SourcePost) ([]domain.TargetPost, error) {
	base, ok := dates.EffectiveTimestamp(post)
	if !ok {
		return nil, splitter.ErrNoTimestamp
	}

	title, promoted := s.resolveTitle(post)

	// A post with no media is still a post.
	if len(post.Media) == 0 {
		return []domain.TargetPost{{
			CreatedAt: base,
			Text:      title,
			Media:     []domain.NormalizedMediaUnit{},
		}}, nil
	}

	out := make([]domain.TargetPost, 0, len(post.Media))
	for _, chunk := range chunkMedia(post.Media) {
		units, err := s.processChunk(ctx, chunk)
		if err != nil {
			return nil, err
		}
		if len(units) == 0 {
			s.Logger.Warn("Chunk produced no usable media, dropping it", "kind", chunk.kind.String(), "items", len(chunk.items))
			continue
		}
		// A promoted caption is the post text now, not an alt text.
		if promoted {
			for i := range units {
				units[i].Text = ""
			}
		}
		out = append(out, domain.TargetPost{
			CreatedAt: base,
			Text:      title,
			Media:     units,
		})
	}

	// Split posts get a part suffix and one-second offsets so the
	// destination never sees two posts on the same timestamp. The suffix
	// counts against the same text budget, so the title shrinks to make
	// room for it.
	if m := len(out); m > 1 {
		for i := range out {
			suffix := fmt.Sprintf(" (Part %d/%d)", i+1, m)
			room := domain.MaxTextRunes - utf8.RuneCountInString(suffix)
			out[i].Text = formatter.Ellipsis(title, room) + suffix
			out[i].CreatedAt = base.Add(time.Duration(i) * time.Second)
		}
	}

	return out, nil
}

// chunkMedia partitions the media list into maximal contiguous kind runs,
// then cuts image runs into groups of at most four and video runs into
// single-item chunks. Exports are not supposed to interleave kinds inside
// one gallery, but interleaved input still comes out kind-pure.
func chunkMedia(items []domain.SourceMediaItem) []mediaChunk {
	var chunks []mediaChunk

	for start := 0; start < len(items); {
		kind := groupKind(items[start])
		end := start
		for end < len(items) && groupKind(items[end]) == kind {
			end++
		}
		run := items[start:end]

		if kind == domain.KindVideo {
			for _, item := range run {
				chunks = append(chunks, mediaChunk{kind: kind, items: []domain.SourceMediaItem{item}})
			}
		} else {
			for len(run) > 0 {
				n := min(len(run), domain.MaxImagesPerPost)
				chunks = append(chunks, mediaChunk{kind: kind, items: run[:n]})
				run = run[n:]
			}
		}

		start = end
	}

	return chunks
}

// groupKind routes an item for run grouping. Unsupported extensions travel
// with the surrounding image run so the processor can drop them one by one
// without breaking the chunk around them.
func groupKind(item domain.SourceMediaItem) domain.MediaKind {
	if media.Kind(item.URI) == domain.KindVideo {
		return domain.KindVideo
	}
	return domain.KindImage
}

// processChunk runs the items of one chunk through their processor, images
// concurrently, and keeps only the usable units in original order.
func (s *SplitterImpl) processChunk(ctx context.Context, chunk mediaChunk) ([]domain.NormalizedMediaUnit, error) {
	if chunk.kind == domain.KindVideo {
		unit := s.Videos.Process(ctx, chunk.items[0])
		if !unit.Usable() {
			return nil, nil
		}
		return []domain.NormalizedMediaUnit{unit}, nil
	}

	results := make([]domain.NormalizedMediaUnit, len(chunk.items))
	g, gctx := errgroup.WithContext(ctx)
	for i, item := range chunk.items {
		g.Go(func() error {
			results[i] = s.Images.Process(gctx, item)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	units := make([]domain.NormalizedMediaUnit, 0, len(results))
	for _, u := range results {
		if u.Usable() {
			units = append(units, u)
		}
	}
	return units, nil
}
