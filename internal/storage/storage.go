package storage

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/mvidali/newsbrief/internal/domain"
)

type Type string

const (
	PG    Type = "pg"
	InMem Type = "in_mem"
)

// PreferenceReader resolves a user's active topic interests. An empty result
// means no personalization is configured and is not an error.
type PreferenceReader interface {
	GetPreferences(ctx context.Context, userID uuid.UUID) ([]domain.Preference, error)
}

// PreferenceWriter mutates a user's interest set. ReplacePreferences is the
// replace-all save path: the existing set is deleted and the given one
// inserted in a single transaction.
type PreferenceWriter interface {
	ReplacePreferences(ctx context.Context, userID uuid.UUID, prefs []domain.Preference) error
	DeletePreference(ctx context.Context, userID uuid.UUID, topicID uuid.UUID) error
}

// ContentReader serves the content pool. RecentLinks returns content-topic
// links whose topic is in topicIDs and whose item was published at or after
// since, most recent first, capped at limit. Items without a publication
// timestamp are never returned.
type ContentReader interface {
	RecentLinks(ctx context.Context, topicIDs []uuid.UUID, since time.Time, limit int) ([]domain.ContentLink, error)
}

// ContentWriter ingests curated content. SaveContent dedupes by URL and
// reports whether the item was inserted; SaveLinks bulk-inserts topic links.
type ContentWriter interface {
	SaveContent(ctx context.Context, item domain.ContentItem) (uuid.UUID, bool, error)
	SaveLinks(ctx context.Context, links []domain.ContentLink) error
}

type TopicReader interface {
	ListTopics(ctx context.Context) ([]domain.Topic, error)
	GetTopic(ctx context.Context, id uuid.UUID) (*domain.Topic, error)
	GetTopicBySlug(ctx context.Context, slug string) (*domain.Topic, error)
}

// TopicWriter seeds the taxonomy. Existing slugs are skipped; the returned
// count is the number of newly inserted topics.
type TopicWriter interface {
	SeedTopics(ctx context.Context, topics []domain.Topic) (int, error)
}

// UserReader lists digest recipients: users with a delivery address.
type UserReader interface {
	ListRecipients(ctx context.Context) ([]domain.User, error)
}

type PreferenceStore interface {
	PreferenceReader
	PreferenceWriter
}

type ContentStore interface {
	ContentReader
	ContentWriter
}

type TopicStore interface {
	TopicReader
	TopicWriter
}
