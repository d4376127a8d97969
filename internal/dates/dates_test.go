package dates_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/marcomaroni-github/instagram-to-bluesky-sub000/internal/dates"
	"github.com/marcomaroni-github/instagram-to-bluesky-sub000/internal/domain"
)

func TestEffectiveTimestamp(t *testing.T) {
	postLevel := domain.SourcePost{CreationTimestamp: 1700000000}
	ts, ok := dates.EffectiveTimestamp(postLevel)
	assert.True(t, ok)
	assert.Equal(t, time.Unix(1700000000, 0).UTC(), ts)

	mediaLevel := domain.SourcePost{
		Media: []domain.SourceMediaItem{{URI: "a.jpg"}, {URI: "b.jpg", CreationTimestamp: 1600000000}},
	}
	ts, ok = dates.EffectiveTimestamp(mediaLevel)
	assert.True(t, ok)
	assert.Equal(t, time.Unix(1600000000, 0).UTC(), ts)

	_, ok = dates.EffectiveTimestamp(domain.SourcePost{})
	assert.False(t, ok)
}

func TestWithinRange(t *testing.T) {
	min := time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC)
	max := time.Date(2021, 1, 1, 0, 0, 0, 0, time.UTC)

	assert.True(t, dates.WithinRange(min, &min, &max), "min bound is inclusive")
	assert.False(t, dates.WithinRange(max, &min, &max), "max bound is exclusive")
	assert.True(t, dates.WithinRange(min.AddDate(0, 6, 0), &min, &max))
	assert.False(t, dates.WithinRange(min.AddDate(-1, 0, 0), &min, &max))
	assert.True(t, dates.WithinRange(min.AddDate(-1, 0, 0), nil, &max))
	assert.True(t, dates.WithinRange(max, &min, nil))
	assert.True(t, dates.WithinRange(max, nil, nil))
}

func TestSortChronologicallyUndatedLast(t *testing.T) {
	posts := []domain.SourcePost{
		{Title: "undated-a"},
		{Title: "late", CreationTimestamp: 2000},
		{Title: "undated-b"},
		{Title: "early", CreationTimestamp: 1000},
	}

	dates.SortChronologically(posts)

	assert.Equal(t, "early", posts[0].Title)
	assert.Equal(t, "late", posts[1].Title)
	assert.Equal(t, "undated-a", posts[2].Title)
	assert.Equal(t, "undated-b", posts[3].Title)
}

func TestParseBound(t *testing.T) {
	b, err := dates.ParseBound("2020-05-01")
	assert.NoError(t, err)
	assert.Equal(t, time.Date(2020, 5, 1, 0, 0, 0, 0, time.UTC), *b)

	b, err = dates.ParseBound("2020-05-01T12:30:00Z")
	assert.NoError(t, err)
	assert.Equal(t, time.Date(2020, 5, 1, 12, 30, 0, 0, time.UTC), *b)

	b, err = dates.ParseBound("")
	assert.NoError(t, err)
	assert.Nil(t, b)

	_, err = dates.ParseBound("May 1st")
	assert.Error(t, err)
}
