package blueskyimpl

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/marcomaroni-github/instagram-to-bluesky-sub000/internal/bluesky"
	"github.com/marcomaroni-github/instagram-to-bluesky-sub000/internal/domain"
	"github.com/marcomaroni-github/instagram-to-bluesky-sub000/internal/resize"
	"github.com/marcomaroni-github/instagram-to-bluesky-sub000/pkg/retry"
)

type aspectRatio struct {
	Width  int `json:"width"`
	Height int `json:"height"`
}

type imageEmbed struct {
	Type   string          `json:"$type"`
	Images []embeddedImage `json:"images"`
}

type embeddedImage struct {
	Image json.RawMessage `json:"image"`
	Alt   string          `json:"alt"`
	Ratio *aspectRatio    `json:"aspectRatio,omitempty"`
}

type videoEmbed struct {
	Type  string          `json:"$type"`
	Video json.RawMessage `json:"video"`
	Alt   string          `json:"alt"`
	Ratio *aspectRatio    `json:"aspectRatio,omitempty"`
}

type postRecord struct {
	Type      string `json:"$type"`
	Text      string `json:"text"`
	CreatedAt string `json:"createdAt"`
	Embed     any    `json:"embed,omitempty"`
}

// CreatePost uploads the post's media as blobs and creates the feed record.
// In simulate mode it only logs what it would publish.
func (b *BlueskyImpl) CreatePost(ctx context.Context, post domain.TargetPost) (string, error) {
	if b.Config.App.Simulate {
		b.Logger.Info("Simulate: would create post",
			"text", post.Text,
			"createdAt", post.CreatedAt.Format(time.RFC3339),
			"media", len(post.Media),
		)
		return "", nil
	}

	if b.accessJwt == "" {
		return "", bluesky.ErrNotLoggedIn
	}

	record := postRecord{
		Type:      "app.bsky.feed.post",
		Text:      post.Text,
		CreatedAt: post.CreatedAt.UTC().Format(time.RFC3339),
	}

	embed, err := b.buildEmbed(ctx, post)
	if err != nil {
		return "", err
	}
	record.Embed = embed

	payload, err := json.Marshal(map[string]any{
		"repo":       b.did,
		"collection": "app.bsky.feed.post",
		"record":     record,
	})
	if err != nil {
		return "", err
	}

	var created struct {
		URI string `json:"uri"`
		CID string `json:"cid"`
	}
	err = retry.Do(ctx, b.Logger, "createRecord", func() error {
		return b.doXRPC(ctx, "com.atproto.repo.createRecord", payload, "", true, &created)
	}, retry.DefaultConfig())
	if err != nil {
		return "", err
	}

	b.Logger.Info("Created post", "uri", created.URI, "createdAt", record.CreatedAt)
	return created.URI, nil
}

// buildEmbed uploads the media blobs and assembles the matching embed
// variant: nil for text-only, images for 1..4 image units, video for one
// video unit.
func (b *BlueskyImpl) buildEmbed(ctx context.Context, post domain.TargetPost) (any, error) {
	if len(post.Media) == 0 {
		return nil, nil
	}

	if post.Media[0].Kind == domain.KindVideo {
		unit := post.Media[0]
		blob, err := b.uploadBlob(ctx, unit.Bytes, unit.ContentType)
		if err != nil {
			return nil, err
		}
		return videoEmbed{
			Type:  "app.bsky.embed.video",
			Video: blob,
			Alt:   unit.Text,
			Ratio: ratioOf(unit),
		}, nil
	}

	embed := imageEmbed{Type: "app.bsky.embed.images"}
	for _, unit := range post.Media {
		data, reencoded := resize.ToFit(unit.Bytes, b.Config.Bluesky.MaxImageBytes)
		if data == nil {
			b.Logger.Warn("Image cannot fit under upload ceiling even after resize, dropping it",
				"size", len(unit.Bytes), "max", b.Config.Bluesky.MaxImageBytes)
			continue
		}
		contentType := unit.ContentType
		if reencoded {
			// The resize fallback always re-encodes as JPEG.
			contentType = "image/jpeg"
		}

		blob, err := b.uploadBlob(ctx, data, contentType)
		if err != nil {
			return nil, err
		}
		embed.Images = append(embed.Images, embeddedImage{
			Image: blob,
			Alt:   unit.Text,
			Ratio: ratioOf(unit),
		})
	}

	if len(embed.Images) == 0 {
		return nil, nil
	}
	return embed, nil
}

func (b *BlueskyImpl) uploadBlob(ctx context.Context, data []byte, contentType string) (json.RawMessage, error) {
	var uploaded struct {
		Blob json.RawMessage `json:"blob"`
	}
	err := retry.Do(ctx, b.Logger, "uploadBlob", func() error {
		return b.doXRPC(ctx, "com.atproto.repo.uploadBlob", data, contentType, true, &uploaded)
	}, retry.DefaultConfig())
	if err != nil {
		return nil, err
	}
	if len(uploaded.Blob) == 0 {
		return nil, fmt.Errorf("uploadBlob returned no blob reference")
	}
	return uploaded.Blob, nil
}

func ratioOf(unit domain.NormalizedMediaUnit) *aspectRatio {
	if unit.Ratio == nil {
		return nil
	}
	return &aspectRatio{Width: unit.Ratio.Width, Height: unit.Ratio.Height}
}
