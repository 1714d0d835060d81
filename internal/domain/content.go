package domain

import (
	"time"

	"github.com/google/uuid"
)

// DefaultRelevance is applied at the data-access boundary when a content-topic
// link carries a NULL relevance score.
const DefaultRelevance = 1.0

type ContentType string

const (
	ContentTypeArticle      ContentType = "article"
	ContentTypeVideo        ContentType = "video"
	ContentTypeRedditThread ContentType = "reddit_thread"
	ContentTypeDiscussion   ContentType = "discussion"
	ContentTypeNews         ContentType = "news"
)

func (t ContentType) Valid() bool {
	switch t {
	case ContentTypeArticle, ContentTypeVideo, ContentTypeRedditThread, ContentTypeDiscussion, ContentTypeNews:
		return true
	}
	return false
}

// ContentItem is a curated piece of content. Items are immutable after
// ingestion; the digest path only reads them.
type ContentItem struct {
	ID          uuid.UUID   `json:"id"`
	Title       string      `json:"title"`
	Description string      `json:"description,omitempty"`
	URL         string      `json:"url,omitempty"`
	Source      string      `json:"source,omitempty"`
	Type        ContentType `json:"contentType"`
	PublishedAt *time.Time  `json:"publishedAt,omitempty"`
	CreatedAt   time.Time   `json:"createdAt"`
}

// ContentLink associates a content item with a topic. The relevance score is
// independent of any user; a single item may link to several topics. No
// uniqueness is enforced per (content, topic) pair, so consumers must
// tolerate duplicate edges.
type ContentLink struct {
	ContentID uuid.UUID   `json:"contentId"`
	TopicID   uuid.UUID   `json:"topicId"`
	Relevance float64     `json:"relevanceScore"`
	Content   ContentItem `json:"content"`
}
