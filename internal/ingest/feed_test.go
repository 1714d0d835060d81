package ingest

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/mvidali/newsbrief/internal/domain"
	"github.com/mvidali/newsbrief/internal/storage/in_mem"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const validFeed = `
items:
  - title: "Wimbledon draw announced"
    url: https://example.com/wimbledon
    description: Tournament draw and predictions
    source: Gazzetta dello Sport
    content_type: news
    published_at: 2025-06-27T06:00:00Z
    topics:
      - slug: tennis
  - title: "AI in healthcare"
    url: https://example.com/ai-healthcare
    content_type: article
    published_at: 2025-06-27T05:30:00Z
    topics:
      - slug: artificial-intelligence
      - slug: medicine
        relevance: 0.8
`

func TestParseFeed(t *testing.T) {
	t.Run("parses a valid feed", func(t *testing.T) {
		feed, err := ParseFeed([]byte(validFeed))
		require.NoError(t, err)
		require.Len(t, feed.Items, 2)

		first := feed.Items[0]
		assert.Equal(t, "Wimbledon draw announced", first.Title)
		assert.Equal(t, "news", first.ContentType)
		require.NotNil(t, first.PublishedAt)
		assert.Equal(t, time.Date(2025, 6, 27, 6, 0, 0, 0, time.UTC), first.PublishedAt.UTC())
		require.Len(t, first.Topics, 1)
		assert.Equal(t, "tennis", first.Topics[0].Slug)

		second := feed.Items[1]
		require.Len(t, second.Topics, 2)
		assert.Equal(t, 0.8, second.Topics[1].Relevance)
	})

	t.Run("rejects empty feed", func(t *testing.T) {
		_, err := ParseFeed([]byte(`items: []`))
		assert.ErrorContains(t, err, "no items")
	})

	t.Run("rejects unknown content type", func(t *testing.T) {
		_, err := ParseFeed([]byte(`
items:
  - title: Something
    content_type: podcast
    topics:
      - slug: music
`))
		assert.ErrorContains(t, err, "unknown content type")
	})

	t.Run("rejects item without topics", func(t *testing.T) {
		_, err := ParseFeed([]byte(`
items:
  - title: Something
    content_type: article
`))
		assert.ErrorContains(t, err, "no topics")
	})

	t.Run("rejects topic without slug", func(t *testing.T) {
		_, err := ParseFeed([]byte(`
items:
  - title: Something
    content_type: article
    topics:
      - relevance: 0.5
`))
		assert.ErrorContains(t, err, "without a slug")
	})
}

func TestImporter_Import(t *testing.T) {
	ctx := context.Background()

	seedTopics := func(t *testing.T) *in_mem.Store {
		t.Helper()
		store := in_mem.NewStore()
		_, err := store.SeedTopics(ctx, []domain.Topic{
			{Slug: "tennis", Name: "Tennis", Category: "sports"},
			{Slug: "artificial-intelligence", Name: "Artificial Intelligence", Category: "technology"},
			{Slug: "medicine", Name: "Medicine", Category: "science"},
		})
		require.NoError(t, err)
		return store
	}

	t.Run("imports items and links", func(t *testing.T) {
		store := seedTopics(t)
		feed, err := ParseFeed([]byte(validFeed))
		require.NoError(t, err)

		report, err := NewImporter(store, store).Import(ctx, feed)
		require.NoError(t, err)
		assert.Equal(t, 2, report.Imported)
		assert.Equal(t, 0, report.Skipped)
		assert.Equal(t, 3, report.Links)

		tennis, err := store.GetTopicBySlug(ctx, "tennis")
		require.NoError(t, err)

		recent, err := store.RecentLinks(ctx, []uuid.UUID{tennis.ID}, time.Date(2025, 6, 27, 0, 0, 0, 0, time.UTC), 10)
		require.NoError(t, err)
		require.Len(t, recent, 1)
		assert.Equal(t, "Wimbledon draw announced", recent[0].Content.Title)
	})

	t.Run("reimport skips existing URLs", func(t *testing.T) {
		store := seedTopics(t)
		feed, err := ParseFeed([]byte(validFeed))
		require.NoError(t, err)

		importer := NewImporter(store, store)
		_, err = importer.Import(ctx, feed)
		require.NoError(t, err)

		report, err := importer.Import(ctx, feed)
		require.NoError(t, err)
		assert.Equal(t, 0, report.Imported)
		assert.Equal(t, 2, report.Skipped)
		assert.Equal(t, 0, report.Links)
	})

	t.Run("unknown slug fails before writing", func(t *testing.T) {
		store := in_mem.NewStore()
		feed, err := ParseFeed([]byte(validFeed))
		require.NoError(t, err)

		_, err = NewImporter(store, store).Import(ctx, feed)
		assert.ErrorContains(t, err, "tennis")
	})

	t.Run("missing relevance defaults to one", func(t *testing.T) {
		store := seedTopics(t)
		feed, err := ParseFeed([]byte(validFeed))
		require.NoError(t, err)

		_, err = NewImporter(store, store).Import(ctx, feed)
		require.NoError(t, err)

		tennis, err := store.GetTopicBySlug(ctx, "tennis")
		require.NoError(t, err)
		recent, err := store.RecentLinks(ctx, []uuid.UUID{tennis.ID}, time.Time{}, 10)
		require.NoError(t, err)
		require.Len(t, recent, 1)
		assert.Equal(t, domain.DefaultRelevance, recent[0].Relevance)
	})
}
