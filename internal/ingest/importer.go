package ingest

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/mvidali/newsbrief/internal/domain"
	"github.com/mvidali/newsbrief/internal/storage"
)

// Importer writes feed items into the content pool. Items already present
// (matched by URL) are skipped along with their topic links.
type Importer struct {
	topics  storage.TopicReader
	content storage.ContentWriter
}

type ImportReport struct {
	Imported int
	Skipped  int
	Links    int
}

func NewImporter(topics storage.TopicReader, content storage.ContentWriter) *Importer {
	return &Importer{
		topics:  topics,
		content: content,
	}
}

func (imp *Importer) Import(ctx context.Context, feed *FeedFile) (ImportReport, error) {
	slugs, err := imp.resolveSlugs(ctx, feed)
	if err != nil {
		return ImportReport{}, err
	}

	var report ImportReport
	for _, item := range feed.Items {
		id, created, err := imp.content.SaveContent(ctx, domain.ContentItem{
			Title:       item.Title,
			Description: item.Description,
			URL:         item.URL,
			Source:      item.Source,
			Type:        domain.ContentType(item.ContentType),
			PublishedAt: item.PublishedAt,
		})
		if err != nil {
			return report, fmt.Errorf("save content %q: %w", item.Title, err)
		}
		if !created {
			slog.Info("Content already exists, skipping", "title", item.Title)
			report.Skipped++
			continue
		}
		report.Imported++

		links := make([]domain.ContentLink, 0, len(item.Topics))
		for _, ft := range item.Topics {
			relevance := ft.Relevance
			if relevance == 0 {
				relevance = domain.DefaultRelevance
			}
			links = append(links, domain.ContentLink{
				ContentID: id,
				TopicID:   slugs[ft.Slug],
				Relevance: relevance,
			})
		}
		if err := imp.content.SaveLinks(ctx, links); err != nil {
			return report, fmt.Errorf("link content %q: %w", item.Title, err)
		}
		report.Links += len(links)
	}
	return report, nil
}

// resolveSlugs maps every topic slug the feed references to its id up front,
// so an unknown slug fails the import before any row is written.
func (imp *Importer) resolveSlugs(ctx context.Context, feed *FeedFile) (map[string]uuid.UUID, error) {
	resolved := make(map[string]uuid.UUID)
	for _, item := range feed.Items {
		for _, ft := range item.Topics {
			if _, ok := resolved[ft.Slug]; ok {
				continue
			}
			topic, err := imp.topics.GetTopicBySlug(ctx, ft.Slug)
			if err != nil {
				return nil, fmt.Errorf("resolve topic slug %q: %w", ft.Slug, err)
			}
			resolved[ft.Slug] = topic.ID
		}
	}
	return resolved, nil
}
