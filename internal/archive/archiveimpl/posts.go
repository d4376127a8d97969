package archiveimpl

import (
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/marcomaroni-github/instagram-to-bluesky-sub000/internal/domain"
	"github.com/marcomaroni-github/instagram-to-bluesky-sub000/pkg/errors"
)

// Known locations of the posts file across export format revisions.
var postsFileCandidates = []string{
	filepath.Join("your_instagram_activity", "media", "posts_1.json"),
	filepath.Join("content", "posts_1.json"),
	"posts_1.json",
}

type exportExif struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

type exportMediaMetadata struct {
	PhotoMetadata *struct {
		ExifData []exportExif `json:"exif_data"`
	} `json:"photo_metadata"`
	VideoMetadata *struct {
		ExifData []exportExif `json:"exif_data"`
	} `json:"video_metadata"`
}

type exportMedia struct {
	URI               string               `json:"uri"`
	CreationTimestamp int64                `json:"creation_timestamp"`
	Title             string               `json:"title"`
	MediaMetadata     *exportMediaMetadata `json:"media_metadata"`
}

type exportPost struct {
	Media             []exportMedia `json:"media"`
	Title             string        `json:"title"`
	CreationTimestamp int64         `json:"creation_timestamp"`
}

// LoadPosts parses the export's posts file into source posts. Text stays in
// its raw mis-encoded form here; decoding happens in the processors.
func (a *ArchiveImpl) LoadPosts() ([]domain.SourcePost, error) {
	path, err := a.findPostsFile()
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, "reading posts file")
	}

	var raw []exportPost
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, errors.Wrap(err, "parsing posts file")
	}

	posts := make([]domain.SourcePost, 0, len(raw))
	for _, rp := range raw {
		post := domain.SourcePost{
			Title:             rp.Title,
			CreationTimestamp: rp.CreationTimestamp,
			Media:             make([]domain.SourceMediaItem, 0, len(rp.Media)),
		}
		for _, rm := range rp.Media {
			post.Media = append(post.Media, domain.SourceMediaItem{
				URI:               rm.URI,
				CreationTimestamp: rm.CreationTimestamp,
				Caption:           rm.Title,
				Geo:               geoTagOf(rm.MediaMetadata),
			})
		}
		posts = append(posts, post)
	}

	a.logger.Info("Loaded posts from archive", "path", path, "count", len(posts))
	return posts, nil
}

func (a *ArchiveImpl) findPostsFile() (string, error) {
	for _, candidate := range postsFileCandidates {
		path := filepath.Join(a.folder, candidate)
		if _, err := os.Stat(path); err == nil {
			return path, nil
		}
	}
	return "", errors.New("no posts file found in archive folder " + a.folder)
}

func geoTagOf(meta *exportMediaMetadata) *domain.GeoTag {
	if meta == nil {
		return nil
	}
	var exif []exportExif
	switch {
	case meta.PhotoMetadata != nil:
		exif = meta.PhotoMetadata.ExifData
	case meta.VideoMetadata != nil:
		exif = meta.VideoMetadata.ExifData
	}
	for _, e := range exif {
		if e.Latitude != 0 || e.Longitude != 0 {
			return &domain.GeoTag{Latitude: e.Latitude, Longitude: e.Longitude}
		}
	}
	return nil
}
