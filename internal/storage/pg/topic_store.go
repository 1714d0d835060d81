package pg

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/mvidali/newsbrief/internal/apperr"
	"github.com/mvidali/newsbrief/internal/domain"
)

type TopicStore struct {
	db *pgxpool.Pool
}

func NewTopicStore(pool *ConnectionPool) *TopicStore {
	return &TopicStore{db: pool.conn}
}

const topicColumns = `id, slug, name, category, parent_category, description`

func (s *TopicStore) ListTopics(ctx context.Context) ([]domain.Topic, error) {
	dbRows, err := s.db.Query(ctx, `
		SELECT `+topicColumns+` FROM topics ORDER BY category, name;
	`)
	if err != nil {
		return nil, err
	}
	defer dbRows.Close()

	var topics []domain.Topic
	for dbRows.Next() {
		t, err := scanTopic(dbRows)
		if err != nil {
			return nil, err
		}
		topics = append(topics, t)
	}
	if err := dbRows.Err(); err != nil {
		return nil, err
	}
	return topics, nil
}

func (s *TopicStore) GetTopic(ctx context.Context, id uuid.UUID) (*domain.Topic, error) {
	row := s.db.QueryRow(ctx, `SELECT `+topicColumns+` FROM topics WHERE id = $1`, id)
	return getTopic(row)
}

func (s *TopicStore) GetTopicBySlug(ctx context.Context, slug string) (*domain.Topic, error) {
	row := s.db.QueryRow(ctx, `SELECT `+topicColumns+` FROM topics WHERE slug = $1`, slug)
	return getTopic(row)
}

func getTopic(row pgx.Row) (*domain.Topic, error) {
	t, err := scanTopic(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, apperr.NewNotFound("topic not found")
	}
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func scanTopic(row pgx.Row) (domain.Topic, error) {
	var t domain.Topic
	var parentCategory, description *string
	if err := row.Scan(&t.ID, &t.Slug, &t.Name, &t.Category, &parentCategory, &description); err != nil {
		return domain.Topic{}, err
	}
	if parentCategory != nil {
		t.ParentCategory = *parentCategory
	}
	if description != nil {
		t.Description = *description
	}
	return t, nil
}

// SeedTopics inserts taxonomy rows, skipping slugs that already exist.
// Reseeding is idempotent; it never rewrites an existing topic.
func (s *TopicStore) SeedTopics(ctx context.Context, topics []domain.Topic) (int, error) {
	inserted := 0
	for _, t := range topics {
		if t.ID == uuid.Nil {
			t.ID = uuid.New()
		}
		tag, err := s.db.Exec(ctx, `
			INSERT INTO topics (id, slug, name, category, parent_category, description)
			VALUES ($1, $2, $3, $4, $5, $6)
			ON CONFLICT (slug) DO NOTHING
		`, t.ID, t.Slug, t.Name, t.Category, nullable(t.ParentCategory), nullable(t.Description))
		if err != nil {
			return inserted, fmt.Errorf("seed topic %q: %w", t.Slug, err)
		}
		inserted += int(tag.RowsAffected())
	}
	return inserted, nil
}
