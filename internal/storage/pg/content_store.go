package pg

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/mvidali/newsbrief/internal/domain"
)

type ContentStore struct {
	db *pgxpool.Pool
}

func NewContentStore(pool *ConnectionPool) *ContentStore {
	return &ContentStore{db: pool.conn}
}

// RecentLinks joins content-topic links against the content table for the
// given topics. Rows without a publication timestamp are filtered out here:
// they cannot be judged recent. Ordering is most-recent-first so the limit
// acts as the pre-filter bound.
func (s *ContentStore) RecentLinks(ctx context.Context, topicIDs []uuid.UUID, since time.Time, limit int) ([]domain.ContentLink, error) {
	if len(topicIDs) == 0 {
		return nil, nil
	}

	sql := `
		SELECT ct.content_id, ct.topic_id, ct.relevance_score,
		       c.id, c.title, c.description, c.url, c.source, c.content_type, c.published_at, c.created_at
		FROM content_topics ct
		JOIN content c ON c.id = ct.content_id
		WHERE ct.topic_id = ANY($1)
		  AND c.published_at IS NOT NULL
		  AND c.published_at >= $2
		ORDER BY c.published_at DESC
		LIMIT $3;
	`
	dbRows, err := s.db.Query(ctx, sql, topicIDs, since, limit)
	if err != nil {
		return nil, err
	}
	defer dbRows.Close()

	var links []domain.ContentLink
	for dbRows.Next() {
		var link domain.ContentLink
		var relevance *float64
		var description, url, source *string
		var contentType string
		if err := dbRows.Scan(
			&link.ContentID,
			&link.TopicID,
			&relevance,
			&link.Content.ID,
			&link.Content.Title,
			&description,
			&url,
			&source,
			&contentType,
			&link.Content.PublishedAt,
			&link.Content.CreatedAt,
		); err != nil {
			return nil, err
		}

		link.Relevance = domain.DefaultRelevance
		if relevance != nil {
			link.Relevance = *relevance
		}
		if description != nil {
			link.Content.Description = *description
		}
		if url != nil {
			link.Content.URL = *url
		}
		if source != nil {
			link.Content.Source = *source
		}
		link.Content.Type = domain.ContentType(contentType)

		links = append(links, link)
	}
	if err := dbRows.Err(); err != nil {
		return nil, err
	}
	return links, nil
}

// SaveContent inserts a content item, deduplicating by URL. The second return
// reports whether a new row was written.
func (s *ContentStore) SaveContent(ctx context.Context, item domain.ContentItem) (uuid.UUID, bool, error) {
	if item.URL != "" {
		var existingID uuid.UUID
		err := s.db.QueryRow(ctx, `SELECT id FROM content WHERE url = $1`, item.URL).Scan(&existingID)
		if err == nil {
			return existingID, false, nil
		}
		if !errors.Is(err, pgx.ErrNoRows) {
			return uuid.UUID{}, false, fmt.Errorf("check existing content: %w", err)
		}
	}

	if item.ID == uuid.Nil {
		item.ID = uuid.New()
	}
	if item.CreatedAt.IsZero() {
		item.CreatedAt = time.Now()
	}

	_, err := s.db.Exec(ctx, `
		INSERT INTO content (id, title, description, url, source, content_type, published_at, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`,
		item.ID,
		item.Title,
		nullable(item.Description),
		nullable(item.URL),
		nullable(item.Source),
		string(item.Type),
		item.PublishedAt,
		item.CreatedAt,
	)
	if err != nil {
		return uuid.UUID{}, false, fmt.Errorf("insert content: %w", err)
	}
	return item.ID, true, nil
}

// SaveLinks bulk-inserts content-topic links.
func (s *ContentStore) SaveLinks(ctx context.Context, links []domain.ContentLink) error {
	rows := make([][]interface{}, len(links))
	for i, link := range links {
		relevance := link.Relevance
		if relevance == 0 {
			relevance = domain.DefaultRelevance
		}
		rows[i] = []interface{}{uuid.New(), link.ContentID, link.TopicID, relevance}
	}

	_, err := s.db.CopyFrom(
		ctx,
		pgx.Identifier{"content_topics"},
		[]string{"id", "content_id", "topic_id", "relevance_score"},
		pgx.CopyFromRows(rows),
	)
	if err != nil {
		return fmt.Errorf("failed to bulk insert content links: %w", err)
	}
	return nil
}

func nullable(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
