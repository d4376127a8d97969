package dates

import (
	"fmt"
	"sort"
	"time"

	"github.com/marcomaroni-github/instagram-to-bluesky-sub000/internal/domain"
)

// EffectiveTimestamp resolves the timestamp of a source post: the post-level
// timestamp when present, otherwise the first media item's. The second
// return value is false when neither exists.
func EffectiveTimestamp(p domain.SourcePost) (time.Time, bool) {
	if t, ok := p.CreatedAt(); ok {
		return t, true
	}
	for _, m := range p.Media {
		if m.CreationTimestamp != 0 {
			return time.Unix(m.CreationTimestamp, 0).UTC(), true
		}
	}
	return time.Time{}, false
}

// WithinRange reports whether t falls inside [min, max). A nil bound is open.
func WithinRange(t time.Time, min, max *time.Time) bool {
	if min != nil && t.Before(*min) {
		return false
	}
	if max != nil && !t.Before(*max) {
		return false
	}
	return true
}

// SortChronologically orders posts ascending by effective timestamp. Posts
// with no resolvable timestamp sort last, keeping their original order.
func SortChronologically(posts []domain.SourcePost) {
	sort.SliceStable(posts, func(i, j int) bool {
		ti, iok := EffectiveTimestamp(posts[i])
		tj, jok := EffectiveTimestamp(posts[j])
		if !iok {
			return false
		}
		if !jok {
			return true
		}
		return ti.Before(tj)
	})
}

// ParseBound parses a configured date window bound, accepting either a bare
// date or a full RFC 3339 timestamp. An empty string is an open bound.
func ParseBound(s string) (*time.Time, error) {
	if s == "" {
		return nil, nil
	}
	for _, layout := range []string{time.RFC3339, "2006-01-02"} {
		if t, err := time.Parse(layout, s); err == nil {
			t = t.UTC()
			return &t, nil
		}
	}
	return nil, fmt.Errorf("unparseable date %q, want YYYY-MM-DD or RFC 3339", s)
}
