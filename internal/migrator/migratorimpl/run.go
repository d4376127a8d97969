package migratorimpl

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/marcomaroni-github/instagram-to-bluesky-sub000/internal/dates"
	"github.com/marcomaroni-github/instagram-to-bluesky-sub000/internal/domain"
	"github.com/marcomaroni-github/instagram-to-bluesky-sub000/internal/migrator"
	"github.com/marcomaroni-github/instagram-to-bluesky-sub000/internal/repositories/uploadedpost"
	"github.com/marcomaroni-github/instagram-to-bluesky-sub000/pkg/errors"
	"github.com/marcomaroni-github/instagram-to-bluesky-sub000/pkg/formatter"
)

// Run executes one import over the whole archive. Per-post failures are
// absorbed so one broken post never stops the batch; only archive-level
// failures surface as errors.
func (m *MigratorImpl) Run(ctx context.Context) (*migrator.Summary, error) {
	minBound, err := dates.ParseBound(m.Config.Archive.MinDate)
	if err != nil {
		return nil, errors.Wrap(err, "invalid MIN_DATE")
	}
	maxBound, err := dates.ParseBound(m.Config.Archive.MaxDate)
	if err != nil {
		return nil, errors.Wrap(err, "invalid MAX_DATE")
	}

	posts, err := m.Archive.LoadPosts()
	if err != nil {
		return nil, errors.Wrap(err, "loading archive")
	}

	dates.SortChronologically(posts)

	summary := &migrator.Summary{PostsInArchive: len(posts)}
	m.Logger.Info("Import run started",
		"posts", len(posts),
		"simulate", m.Config.App.Simulate,
	)
	m.Notifier.Notify(fmt.Sprintf("Import started: %s posts in archive", formatter.FormatNumber(len(posts))))

	for _, post := range posts {
		m.migrateOne(ctx, post, minBound, maxBound, summary)
	}

	m.Logger.Info("Import run finished",
		"migrated", summary.PostsMigrated,
		"targets", summary.TargetsCreated,
		"skipped", summary.PostsSkipped,
		"failed", summary.PostsFailed,
	)
	m.Notifier.Notify(fmt.Sprintf(
		"Import finished: %s posts migrated into %s, %s skipped, %s failed",
		formatter.FormatNumber(summary.PostsMigrated),
		formatter.FormatNumber(summary.TargetsCreated),
		formatter.FormatNumber(summary.PostsSkipped),
		formatter.FormatNumber(summary.PostsFailed),
	))

	return summary, nil
}

// migrateOne handles a single source post: window check, dedup against the
// ledger, split, serial upload in emission order, ledger record.
func (m *MigratorImpl) migrateOne(ctx context.Context, post domain.SourcePost, minBound, maxBound *time.Time, summary *migrator.Summary) {
	ts, ok := dates.EffectiveTimestamp(post)
	if !ok {
		m.Logger.Warn("Post has no resolvable timestamp, skipping it", "title", post.Title)
		summary.PostsSkipped++
		return
	}

	if !dates.WithinRange(ts, minBound, maxBound) {
		summary.PostsSkipped++
		return
	}

	key := sourceKey(post, ts)
	exists, err := m.Ledger.Exists(ctx, key)
	if err != nil {
		m.Logger.Error("Ledger lookup failed", "key", key, "error", err)
		summary.PostsFailed++
		return
	}
	if exists {
		m.Logger.Debug("Post already migrated", "key", key)
		summary.PostsSkipped++
		return
	}

	targets, err := m.Splitter.Split(ctx, post)
	if err != nil {
		m.Logger.Error("Split failed, skipping post", "key", key, "error", err)
		summary.PostsFailed++
		return
	}

	uploaded := 0
	for _, target := range targets {
		if len(target.Media) > 0 && target.Media[0].Kind == domain.KindVideo && !m.Config.Bluesky.VideoUpload {
			m.Logger.Info("Video upload disabled, skipping video post", "key", key)
			continue
		}

		uri, err := m.Bluesky.CreatePost(ctx, target)
		if err != nil {
			m.Logger.Error("Upload failed", "key", key, "text", target.Text, "error", err)
			m.Notifier.Notify("Upload failed for post " + strconv.Quote(target.Text) + ": " + err.Error())
			summary.PostsFailed++
			return
		}
		uploaded++

		// The ledger entry goes in with the first successful part, so a
		// failure later in a split post cannot duplicate the earlier
		// parts on the next run.
		if uploaded == 1 {
			rec := domain.UploadedPost{SourceKey: key, RecordURI: uri}
			if err := m.Ledger.Create(ctx, rec); err != nil && !errors.Is(err, uploadedpost.ErrAlreadyExists) {
				m.Logger.Error("Failed to record post in ledger", "key", key, "error", err)
			}
		}
	}

	if uploaded == 0 {
		summary.PostsSkipped++
		return
	}

	summary.PostsMigrated++
	summary.TargetsCreated += uploaded
}

// sourceKey identifies a source post across runs: the first media URI, or
// "text" for media-less posts, plus the effective timestamp.
func sourceKey(post domain.SourcePost, ts time.Time) string {
	uri := "text"
	if len(post.Media) > 0 {
		uri = post.Media[0].URI
	}
	return uri + "@" + strconv.FormatInt(ts.Unix(), 10)
}
