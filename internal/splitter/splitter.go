package splitter

import (
	"context"
	"errors"

	"github.com/marcomaroni-github/instagram-to-bluesky-sub000/internal/domain"
)

// ErrNoTimestamp marks a post that cannot be dated from any field. It is
// fatal to that post only; callers skip it and keep going.
var ErrNoTimestamp = errors.New("post has no resolvable timestamp")

// Client turns one source post into the ordered target posts that respect
// the destination's structural limits: at most four images per post, one
// video per post, never mixed kinds.
type Client interface {
	Split(ctx context.Context, post domain.SourcePost) ([]domain.TargetPost, error)
}
