package bluesky

import (
	"context"
	"errors"

	"github.com/marcomaroni-github/instagram-to-bluesky-sub000/internal/domain"
)

var ErrNotLoggedIn = errors.New("no active session, call Login first")

// Client publishes target posts to the destination platform. Implementations
// own authentication, pacing and retries; callers just hand posts over in
// emission order and wait for each one before sending the next.
type Client interface {
	Login(ctx context.Context) error
	CreatePost(ctx context.Context, post domain.TargetPost) (string, error)
}
