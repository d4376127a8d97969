package migratorimpl

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/marcomaroni-github/instagram-to-bluesky-sub000/internal/domain"
	"github.com/marcomaroni-github/instagram-to-bluesky-sub000/internal/repositories/uploadedpost"
	"github.com/marcomaroni-github/instagram-to-bluesky-sub000/pkg/config"
	"github.com/marcomaroni-github/instagram-to-bluesky-sub000/pkg/logger"
)

type fakeReader struct {
	posts []domain.SourcePost
	err   error
}

func (f *fakeReader) LoadPosts() ([]domain.SourcePost, error) { return f.posts, f.err }
func (f *fakeReader) ReadBytes(string) ([]byte, error)        { return nil, nil }
func (f *fakeReader) Folder() string                          { return "/archive" }

// fakeSplitter turns every source post into one text target per media item,
// or a single text-only target for media-less posts.
type fakeSplitter struct {
	err error
}

func (f *fakeSplitter) Split(_ context.Context, post domain.SourcePost) ([]domain.TargetPost, error) {
	if f.err != nil {
		return nil, f.err
	}
	created, _ := post.CreatedAt()
	if len(post.Media) == 0 {
		return []domain.TargetPost{{CreatedAt: created, Text: post.Title}}, nil
	}
	targets := make([]domain.TargetPost, 0, len(post.Media))
	for _, item := range post.Media {
		kind := domain.KindImage
		if item.URI == "video.mp4" {
			kind = domain.KindVideo
		}
		targets = append(targets, domain.TargetPost{
			CreatedAt: created,
			Text:      post.Title,
			Media: []domain.NormalizedMediaUnit{
				{ContentType: "image/jpeg", Bytes: []byte{1}, Kind: kind},
			},
		})
	}
	return targets, nil
}

type fakeUploader struct {
	uploads []string
	calls   int
	failOn  int // 1-based index of the call that errors, 0 for none
}

func (f *fakeUploader) Login(context.Context) error { return nil }

func (f *fakeUploader) CreatePost(_ context.Context, post domain.TargetPost) (string, error) {
	f.calls++
	if f.failOn > 0 && f.calls == f.failOn {
		return "", errors.New("upload rejected")
	}
	f.uploads = append(f.uploads, post.Text)
	return "at://did:plc:test/app.bsky.feed.post/abc", nil
}

type fakeNotifier struct {
	messages []string
}

func (f *fakeNotifier) Notify(text string) { f.messages = append(f.messages, text) }

func newMigrator(reader *fakeReader, split *fakeSplitter, up *fakeUploader, cfg *config.Config) (*MigratorImpl, *uploadedpost.Memory, *fakeNotifier) {
	if cfg == nil {
		cfg = &config.Config{}
		cfg.Bluesky.VideoUpload = true
	}
	ledger := uploadedpost.NewMemory()
	notes := &fakeNotifier{}
	return &MigratorImpl{
		Archive:  reader,
		Splitter: split,
		Bluesky:  up,
		Ledger:   ledger,
		Notifier: notes,
		Logger:   logger.New(logger.Opts{}),
		Config:   cfg,
	}, ledger, notes
}

func post(title string, ts int64, uris ...string) domain.SourcePost {
	media := make([]domain.SourceMediaItem, 0, len(uris))
	for _, uri := range uris {
		media = append(media, domain.SourceMediaItem{URI: uri})
	}
	return domain.SourcePost{Title: title, CreationTimestamp: ts, Media: media}
}

func TestRunUploadsInChronologicalOrder(t *testing.T) {
	reader := &fakeReader{posts: []domain.SourcePost{
		post("newer", 1700000100, "b.jpg"),
		post("older", 1700000000, "a.jpg"),
	}}
	up := &fakeUploader{}
	m, _, _ := newMigrator(reader, &fakeSplitter{}, up, nil)

	summary, err := m.Run(context.Background())

	require.NoError(t, err)
	assert.Equal(t, []string{"older", "newer"}, up.uploads)
	assert.Equal(t, 2, summary.PostsMigrated)
	assert.Equal(t, 2, summary.TargetsCreated)
	assert.Equal(t, 0, summary.PostsFailed)
}

func TestRunSkipsUndatedPosts(t *testing.T) {
	reader := &fakeReader{posts: []domain.SourcePost{
		post("undated", 0, "a.jpg"),
		post("dated", 1700000000, "b.jpg"),
	}}
	up := &fakeUploader{}
	m, _, _ := newMigrator(reader, &fakeSplitter{}, up, nil)

	summary, err := m.Run(context.Background())

	require.NoError(t, err)
	assert.Equal(t, []string{"dated"}, up.uploads)
	assert.Equal(t, 1, summary.PostsSkipped)
	assert.Equal(t, 1, summary.PostsMigrated)
}

func TestRunHonorsDateWindow(t *testing.T) {
	cfg := &config.Config{}
	cfg.Bluesky.VideoUpload = true
	cfg.Archive.MinDate = "2023-11-15" // 1700006400
	reader := &fakeReader{posts: []domain.SourcePost{
		post("before", 1700000000, "a.jpg"),
		post("after", 1700100000, "b.jpg"),
	}}
	up := &fakeUploader{}
	m, _, _ := newMigrator(reader, &fakeSplitter{}, up, cfg)

	summary, err := m.Run(context.Background())

	require.NoError(t, err)
	assert.Equal(t, []string{"after"}, up.uploads)
	assert.Equal(t, 1, summary.PostsSkipped)
}

func TestRunRejectsBadDateBound(t *testing.T) {
	cfg := &config.Config{}
	cfg.Archive.MinDate = "yesterday-ish"
	m, _, _ := newMigrator(&fakeReader{}, &fakeSplitter{}, &fakeUploader{}, cfg)

	_, err := m.Run(context.Background())

	require.Error(t, err)
}

func TestRunSkipsAlreadyMigratedPosts(t *testing.T) {
	reader := &fakeReader{posts: []domain.SourcePost{post("dup", 1700000000, "a.jpg")}}
	up := &fakeUploader{}
	m, ledger, _ := newMigrator(reader, &fakeSplitter{}, up, nil)
	require.NoError(t, ledger.Create(context.Background(), domain.UploadedPost{
		SourceKey: "a.jpg@1700000000",
	}))

	summary, err := m.Run(context.Background())

	require.NoError(t, err)
	assert.Empty(t, up.uploads)
	assert.Equal(t, 1, summary.PostsSkipped)
	assert.Equal(t, 0, summary.PostsMigrated)
}

func TestRunRecordsMigratedPostInLedger(t *testing.T) {
	reader := &fakeReader{posts: []domain.SourcePost{post("fresh", 1700000000, "a.jpg")}}
	m, ledger, _ := newMigrator(reader, &fakeSplitter{}, &fakeUploader{}, nil)

	_, err := m.Run(context.Background())

	require.NoError(t, err)
	exists, err := ledger.Exists(context.Background(), "a.jpg@1700000000")
	require.NoError(t, err)
	assert.True(t, exists)
}

func TestRunSkipsVideoTargetsWhenDisabled(t *testing.T) {
	cfg := &config.Config{}
	cfg.Bluesky.VideoUpload = false
	reader := &fakeReader{posts: []domain.SourcePost{
		post("mixed", 1700000000, "video.mp4"),
		post("photo", 1700000100, "a.jpg"),
	}}
	up := &fakeUploader{}
	m, _, _ := newMigrator(reader, &fakeSplitter{}, up, cfg)

	summary, err := m.Run(context.Background())

	require.NoError(t, err)
	assert.Equal(t, []string{"photo"}, up.uploads)
	// the video-only post produced no uploads, so it counts as skipped
	assert.Equal(t, 1, summary.PostsSkipped)
	assert.Equal(t, 1, summary.PostsMigrated)
}

func TestRunCountsUploadFailures(t *testing.T) {
	reader := &fakeReader{posts: []domain.SourcePost{
		post("bad", 1700000000, "a.jpg"),
		post("good", 1700000100, "b.jpg"),
	}}
	up := &fakeUploader{failOn: 1}
	m, _, notes := newMigrator(reader, &fakeSplitter{}, up, nil)

	summary, err := m.Run(context.Background())

	require.NoError(t, err)
	assert.Equal(t, []string{"good"}, up.uploads)
	assert.Equal(t, 1, summary.PostsFailed)
	assert.Equal(t, 1, summary.PostsMigrated)
	assert.NotEmpty(t, notes.messages)
}

func TestRunRecordsLedgerEntryBeforePartialFailure(t *testing.T) {
	reader := &fakeReader{posts: []domain.SourcePost{
		post("split", 1700000000, "a.jpg", "b.jpg"),
	}}
	up := &fakeUploader{failOn: 2}
	m, ledger, _ := newMigrator(reader, &fakeSplitter{}, up, nil)

	summary, err := m.Run(context.Background())

	require.NoError(t, err)
	assert.Equal(t, 1, summary.PostsFailed)

	// The first part went out, so a re-run must not upload it again.
	exists, err := ledger.Exists(context.Background(), "a.jpg@1700000000")
	require.NoError(t, err)
	assert.True(t, exists)
}

func TestRunCountsSplitFailures(t *testing.T) {
	reader := &fakeReader{posts: []domain.SourcePost{post("broken", 1700000000, "a.jpg")}}
	m, _, _ := newMigrator(reader, &fakeSplitter{err: errors.New("corrupt media list")}, &fakeUploader{}, nil)

	summary, err := m.Run(context.Background())

	require.NoError(t, err)
	assert.Equal(t, 1, summary.PostsFailed)
	assert.Equal(t, 0, summary.PostsMigrated)
}

func TestRunSurfacesArchiveErrors(t *testing.T) {
	reader := &fakeReader{err: errors.New("no posts file")}
	m, _, _ := newMigrator(reader, &fakeSplitter{}, &fakeUploader{}, nil)

	_, err := m.Run(context.Background())

	require.Error(t, err)
}
