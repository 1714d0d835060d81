package ingest

import (
	"fmt"
	"os"
	"time"

	"github.com/mvidali/newsbrief/internal/domain"
	"gopkg.in/yaml.v3"
)

// FeedFile is the on-disk content feed: curated items with the topics each
// one belongs to, referenced by slug.
type FeedFile struct {
	Items []FeedItem `yaml:"items"`
}

type FeedItem struct {
	Title       string      `yaml:"title"`
	URL         string      `yaml:"url"`
	Description string      `yaml:"description,omitempty"`
	Source      string      `yaml:"source,omitempty"`
	ContentType string      `yaml:"content_type"`
	PublishedAt *time.Time  `yaml:"published_at,omitempty"`
	Topics      []FeedTopic `yaml:"topics"`
}

type FeedTopic struct {
	Slug      string  `yaml:"slug"`
	Relevance float64 `yaml:"relevance,omitempty"`
}

func LoadFeed(path string) (*FeedFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read feed file: %w", err)
	}
	return ParseFeed(data)
}

func ParseFeed(data []byte) (*FeedFile, error) {
	var ff FeedFile
	if err := yaml.Unmarshal(data, &ff); err != nil {
		return nil, fmt.Errorf("parse feed YAML: %w", err)
	}
	if len(ff.Items) == 0 {
		return nil, fmt.Errorf("feed has no items")
	}

	for i, item := range ff.Items {
		if item.Title == "" {
			return nil, fmt.Errorf("item %d has no title", i)
		}
		if !domain.ContentType(item.ContentType).Valid() {
			return nil, fmt.Errorf("item %q has unknown content type %q", item.Title, item.ContentType)
		}
		if len(item.Topics) == 0 {
			return nil, fmt.Errorf("item %q has no topics", item.Title)
		}
		for _, ft := range item.Topics {
			if ft.Slug == "" {
				return nil, fmt.Errorf("item %q references a topic without a slug", item.Title)
			}
			if ft.Relevance < 0 {
				return nil, fmt.Errorf("item %q has negative relevance for topic %q", item.Title, ft.Slug)
			}
		}
	}
	return &ff, nil
}
