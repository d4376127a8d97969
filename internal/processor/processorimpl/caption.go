package processorimpl

import (
	"strconv"

	"github.com/marcomaroni-github/instagram-to-bluesky-sub000/internal/domain"
	"github.com/marcomaroni-github/instagram-to-bluesky-sub000/internal/textcodec"
	"github.com/marcomaroni-github/instagram-to-bluesky-sub000/pkg/formatter"
)

// buildCaption decodes an item's caption, appends the coordinate annotation
// when a northern-hemisphere geotag is present, and truncates to the
// per-item text budget. This budget is independent from the post title's.
func buildCaption(codec *textcodec.Codec, item domain.SourceMediaItem) string {
	text := codec.DecodeString(item.Caption)
	if item.Geo != nil && item.Geo.Latitude > 0 {
		text += "\nPhoto taken at these geographical coordinates: geo:" +
			strconv.FormatFloat(item.Geo.Latitude, 'f', -1, 64) + "," +
			strconv.FormatFloat(item.Geo.Longitude, 'f', -1, 64)
	}
	return formatter.Ellipsis(text, domain.MaxTextRunes)
}
