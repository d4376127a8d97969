package uploadedpost

import (
	"context"
	"errors"
	"time"

	"github.com/marcomaroni-github/instagram-to-bluesky-sub000/internal/domain"
)

var (
	ErrAlreadyExists = errors.New("uploaded post already recorded")
	ErrNotFound      = errors.New("uploaded post not found")
)

// Repository is the ledger of source posts that were already migrated, so a
// re-run or the watch scheduler never uploads the same post twice.
type Repository interface {
	// Create records one migrated post
	Create(ctx context.Context, rec domain.UploadedPost) error

	// Exists checks whether a source post was already migrated
	Exists(ctx context.Context, sourceKey string) (bool, error)

	// GetBySourceKey returns the ledger entry for a source post
	GetBySourceKey(ctx context.Context, sourceKey string) (*domain.UploadedPost, error)

	// CleanupOldRecords deletes entries older than the specified duration
	CleanupOldRecords(ctx context.Context, olderThan time.Duration) (int64, error)
}
