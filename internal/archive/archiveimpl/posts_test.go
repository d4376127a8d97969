package archiveimpl_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/marcomaroni-github/instagram-to-bluesky-sub000/internal/archive"
	"github.com/marcomaroni-github/instagram-to-bluesky-sub000/internal/archive/archiveimpl"
	"github.com/marcomaroni-github/instagram-to-bluesky-sub000/pkg/config"
	"github.com/marcomaroni-github/instagram-to-bluesky-sub000/pkg/logger"
)

const samplePosts = `[
  {
    "media": [
      {
        "uri": "media/posts/201805/one.jpg",
        "creation_timestamp": 1526205107,
        "title": "First photo",
        "media_metadata": {
          "photo_metadata": {
            "exif_data": [{"latitude": 45.4642, "longitude": 9.19}]
          }
        }
      },
      {"uri": "media/posts/201805/two.mp4", "creation_timestamp": 1526205200, "title": ""}
    ],
    "title": "Trip",
    "creation_timestamp": 1526205300
  },
  {
    "media": [{"uri": "media/posts/201806/solo.jpg", "creation_timestamp": 1527000000, "title": "Solo caption"}],
    "title": ""
  }
]`

func newReader(t *testing.T) archive.Reader {
	t.Helper()
	dir := t.TempDir()
	postsDir := filepath.Join(dir, "your_instagram_activity", "media")
	require.NoError(t, os.MkdirAll(postsDir, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(postsDir, "posts_1.json"), []byte(samplePosts), 0o644))

	mediaDir := filepath.Join(dir, "media", "posts", "201805")
	require.NoError(t, os.MkdirAll(mediaDir, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(mediaDir, "one.jpg"), []byte("jpegbytes"), 0o644))

	cfg := &config.Config{}
	cfg.Archive.Folder = dir
	return archiveimpl.New(archiveimpl.Opts{
		Config: cfg,
		Logger: logger.New(logger.Opts{}),
	})
}

func TestLoadPosts(t *testing.T) {
	r := newReader(t)

	posts, err := r.LoadPosts()
	require.NoError(t, err)
	require.Len(t, posts, 2)

	trip := posts[0]
	assert.Equal(t, "Trip", trip.Title)
	assert.Equal(t, int64(1526205300), trip.CreationTimestamp)
	require.Len(t, trip.Media, 2)
	assert.Equal(t, "media/posts/201805/one.jpg", trip.Media[0].URI)
	assert.Equal(t, "First photo", trip.Media[0].Caption)
	require.NotNil(t, trip.Media[0].Geo)
	assert.InDelta(t, 45.4642, trip.Media[0].Geo.Latitude, 1e-9)
	assert.Nil(t, trip.Media[1].Geo)

	solo := posts[1]
	assert.Empty(t, solo.Title)
	assert.Zero(t, solo.CreationTimestamp)
	require.Len(t, solo.Media, 1)
	assert.Equal(t, "Solo caption", solo.Media[0].Caption)
}

func TestReadBytes(t *testing.T) {
	r := newReader(t)

	data, err := r.ReadBytes("media/posts/201805/one.jpg")
	require.NoError(t, err)
	assert.Equal(t, []byte("jpegbytes"), data)

	_, err = r.ReadBytes("media/posts/201805/missing.jpg")
	assert.ErrorIs(t, err, archive.ErrNotFound)
}
