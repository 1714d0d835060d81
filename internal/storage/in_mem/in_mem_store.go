package in_mem

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/mvidali/newsbrief/internal/apperr"
	"github.com/mvidali/newsbrief/internal/domain"
)

// Store is a map-backed implementation of every storage interface, used by
// tests and by the in_mem storage type for local runs.
type Store struct {
	mu sync.RWMutex

	topics      map[uuid.UUID]domain.Topic
	preferences map[uuid.UUID][]domain.Preference
	content     map[uuid.UUID]domain.ContentItem
	links       []domain.ContentLink
	users       []domain.User
}

func NewStore() *Store {
	return &Store{
		topics:      make(map[uuid.UUID]domain.Topic),
		preferences: make(map[uuid.UUID][]domain.Preference),
		content:     make(map[uuid.UUID]domain.ContentItem),
	}
}

func (s *Store) GetPreferences(ctx context.Context, userID uuid.UUID) ([]domain.Preference, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	prefs := s.preferences[userID]
	out := make([]domain.Preference, len(prefs))
	copy(out, prefs)
	return out, nil
}

func (s *Store) ReplacePreferences(ctx context.Context, userID uuid.UUID, prefs []domain.Preference) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	replaced := make([]domain.Preference, 0, len(prefs))
	for _, p := range prefs {
		p.UserID = userID
		if p.Weight == 0 {
			p.Weight = domain.DefaultWeight
		}
		if t, ok := s.topics[p.TopicID]; ok {
			p.Topic = t
		}
		replaced = append(replaced, p)
	}
	s.preferences[userID] = replaced
	return nil
}

func (s *Store) DeletePreference(ctx context.Context, userID uuid.UUID, topicID uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	prefs := s.preferences[userID]
	kept := prefs[:0]
	for _, p := range prefs {
		if p.TopicID != topicID {
			kept = append(kept, p)
		}
	}
	s.preferences[userID] = kept
	return nil
}

func (s *Store) RecentLinks(ctx context.Context, topicIDs []uuid.UUID, since time.Time, limit int) ([]domain.ContentLink, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	wanted := make(map[uuid.UUID]struct{}, len(topicIDs))
	for _, id := range topicIDs {
		wanted[id] = struct{}{}
	}

	var out []domain.ContentLink
	for _, link := range s.links {
		if _, ok := wanted[link.TopicID]; !ok {
			continue
		}
		item, ok := s.content[link.ContentID]
		if !ok || item.PublishedAt == nil || item.PublishedAt.Before(since) {
			continue
		}
		link.Content = item
		out = append(out, link)
	}

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Content.PublishedAt.After(*out[j].Content.PublishedAt)
	})
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (s *Store) SaveContent(ctx context.Context, item domain.ContentItem) (uuid.UUID, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if item.URL != "" {
		for _, existing := range s.content {
			if existing.URL == item.URL {
				return existing.ID, false, nil
			}
		}
	}

	if item.ID == uuid.Nil {
		item.ID = uuid.New()
	}
	if item.CreatedAt.IsZero() {
		item.CreatedAt = time.Now()
	}
	s.content[item.ID] = item
	return item.ID, true, nil
}

func (s *Store) SaveLinks(ctx context.Context, links []domain.ContentLink) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, link := range links {
		if link.Relevance == 0 {
			link.Relevance = domain.DefaultRelevance
		}
		link.Content = domain.ContentItem{}
		s.links = append(s.links, link)
	}
	return nil
}

func (s *Store) ListTopics(ctx context.Context) ([]domain.Topic, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]domain.Topic, 0, len(s.topics))
	for _, t := range s.topics {
		out = append(out, t)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Category != out[j].Category {
			return out[i].Category < out[j].Category
		}
		return out[i].Name < out[j].Name
	})
	return out, nil
}

func (s *Store) GetTopic(ctx context.Context, id uuid.UUID) (*domain.Topic, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if t, ok := s.topics[id]; ok {
		return &t, nil
	}
	return nil, apperr.NewNotFound("topic not found")
}

func (s *Store) GetTopicBySlug(ctx context.Context, slug string) (*domain.Topic, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, t := range s.topics {
		if t.Slug == slug {
			return &t, nil
		}
	}
	return nil, apperr.NewNotFound("topic not found")
}

func (s *Store) SeedTopics(ctx context.Context, topics []domain.Topic) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	existing := make(map[string]struct{}, len(s.topics))
	for _, t := range s.topics {
		existing[t.Slug] = struct{}{}
	}

	inserted := 0
	for _, t := range topics {
		if _, ok := existing[t.Slug]; ok {
			continue
		}
		if t.ID == uuid.Nil {
			t.ID = uuid.New()
		}
		s.topics[t.ID] = t
		existing[t.Slug] = struct{}{}
		inserted++
	}
	return inserted, nil
}

func (s *Store) ListRecipients(ctx context.Context) ([]domain.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]domain.User, 0, len(s.users))
	for _, u := range s.users {
		if u.Email != "" {
			out = append(out, u)
		}
	}
	return out, nil
}

// AddUser registers a recipient. Test helper and local-mode seeding.
func (s *Store) AddUser(u domain.User) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	s.users = append(s.users, u)
}
