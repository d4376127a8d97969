package textcodec

import (
	"unicode/utf8"

	"github.com/marcomaroni-github/instagram-to-bluesky-sub000/pkg/logger"
)

// Codec repairs the export's double-encoded text. The export writes every
// UTF-8 byte of a multi-byte character as its own \u00XX escape, so after
// JSON parsing an emoji shows up as a run of U+0080..U+00FF runes instead of
// one code point. Repair maps those runes back to single bytes and decodes
// the byte stream as UTF-8.
type Codec struct {
	Logger logger.Logger
}

func New(log logger.Logger) *Codec {
	return &Codec{Logger: log.WithComponent("TextCodec")}
}

// DecodeString repairs one string. Strings that contain any rune above
// U+00FF are already correctly decoded and come back unchanged, as does any
// string whose remapped bytes are not valid UTF-8.
func (c *Codec) DecodeString(s string) string {
	raw := make([]byte, 0, len(s))
	for _, r := range s {
		if r > 0xFF {
			return s
		}
		raw = append(raw, byte(r))
	}

	if !utf8.Valid(raw) {
		c.Logger.Debug("Remapped text is not valid UTF-8, keeping original", "text", s)
		return s
	}

	return string(raw)
}

// Decode repairs v recursively: strings are decoded, slices and string-keyed
// maps are walked, anything else passes through unchanged.
func (c *Codec) Decode(v any) any {
	switch t := v.(type) {
	case string:
		return c.DecodeString(t)
	case []string:
		out := make([]string, len(t))
		for i, s := range t {
			out[i] = c.DecodeString(s)
		}
		return out
	case []any:
		out := make([]any, len(t))
		for i, e := range t {
			out[i] = c.Decode(e)
		}
		return out
	case map[string]any:
		out := make(map[string]any, len(t))
		for k, e := range t {
			out[k] = c.Decode(e)
		}
		return out
	default:
		return v
	}
}
