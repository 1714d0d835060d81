package pg

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/mvidali/newsbrief/internal/domain"
)

type PreferenceStore struct {
	db *pgxpool.Pool
}

func NewPreferenceStore(pool *ConnectionPool) *PreferenceStore {
	return &PreferenceStore{db: pool.conn}
}

func (s *PreferenceStore) GetPreferences(ctx context.Context, userID uuid.UUID) ([]domain.Preference, error) {
	sql := `
		SELECT up.topic_id, up.weight,
		       t.id, t.slug, t.name, t.category, t.parent_category, t.description
		FROM user_preferences up
		JOIN topics t ON t.id = up.topic_id
		WHERE up.user_id = $1;
	`
	dbRows, err := s.db.Query(ctx, sql, userID)
	if err != nil {
		return nil, err
	}
	defer dbRows.Close()

	var prefs []domain.Preference
	for dbRows.Next() {
		p := domain.Preference{UserID: userID}
		var weight *float64
		var parentCategory, description *string
		if err := dbRows.Scan(
			&p.TopicID,
			&weight,
			&p.Topic.ID,
			&p.Topic.Slug,
			&p.Topic.Name,
			&p.Topic.Category,
			&parentCategory,
			&description,
		); err != nil {
			return nil, err
		}

		// Defaults are applied here, at the boundary, never in scoring.
		p.Weight = domain.DefaultWeight
		if weight != nil {
			p.Weight = *weight
		}
		if parentCategory != nil {
			p.Topic.ParentCategory = *parentCategory
		}
		if description != nil {
			p.Topic.Description = *description
		}

		prefs = append(prefs, p)
	}
	if err := dbRows.Err(); err != nil {
		return nil, err
	}
	return prefs, nil
}

// ReplacePreferences implements the replace-all save: the caller observes the
// preference set swap atomically.
func (s *PreferenceStore) ReplacePreferences(ctx context.Context, userID uuid.UUID, prefs []domain.Preference) error {
	tx, err := s.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin preference replace: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if _, err := tx.Exec(ctx, `DELETE FROM user_preferences WHERE user_id = $1`, userID); err != nil {
		return fmt.Errorf("delete existing preferences: %w", err)
	}

	for _, p := range prefs {
		weight := p.Weight
		if weight == 0 {
			weight = domain.DefaultWeight
		}
		if _, err := tx.Exec(ctx, `
			INSERT INTO user_preferences (id, user_id, topic_id, weight)
			VALUES ($1, $2, $3, $4)
		`, uuid.New(), userID, p.TopicID, weight); err != nil {
			return fmt.Errorf("insert preference for topic %s: %w", p.TopicID, err)
		}
	}

	return tx.Commit(ctx)
}

func (s *PreferenceStore) DeletePreference(ctx context.Context, userID uuid.UUID, topicID uuid.UUID) error {
	_, err := s.db.Exec(ctx, `
		DELETE FROM user_preferences WHERE user_id = $1 AND topic_id = $2
	`, userID, topicID)
	return err
}
