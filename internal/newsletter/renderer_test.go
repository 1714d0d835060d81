package newsletter

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/mvidali/newsbrief/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleDigest() *domain.Digest {
	publishedAt := time.Date(2025, 6, 27, 6, 0, 0, 0, time.UTC)
	return &domain.Digest{
		UserID:      uuid.New(),
		GeneratedAt: time.Date(2025, 6, 27, 7, 0, 0, 0, time.UTC),
		Items: []domain.DigestItem{
			{
				Content: domain.ContentItem{
					ID:          uuid.New(),
					Title:       "Wimbledon: sorteggio Sinner",
					Description: "Il sorteggio del tabellone principale",
					URL:         "https://example.com/wimbledon",
					Source:      "Gazzetta dello Sport",
					Type:        domain.ContentTypeNews,
					PublishedAt: &publishedAt,
				},
				Score:     1.8,
				TopicName: "Tennis",
			},
			{
				Content: domain.ContentItem{
					ID:    uuid.New(),
					Title: "Market Analysis",
					URL:   "https://example.com/markets",
					Type:  domain.ContentTypeArticle,
				},
				Score: 0.9,
			},
		},
	}
}

func TestRenderer_Render(t *testing.T) {
	renderer, err := NewRenderer()
	require.NoError(t, err)

	user := domain.User{ID: uuid.New(), Email: "mario@example.com", FirstName: "Mario"}

	t.Run("renders items with topic attribution", func(t *testing.T) {
		email, err := renderer.Render(user, sampleDigest())
		require.NoError(t, err)

		assert.Equal(t, "La tua newsletter personalizzata - 27/06/2025", email.Subject)
		assert.Contains(t, email.HTMLBody, "Wimbledon: sorteggio Sinner")
		assert.Contains(t, email.HTMLBody, "https://example.com/wimbledon")
		assert.Contains(t, email.HTMLBody, "Tennis")
		assert.Contains(t, email.HTMLBody, "Ciao Mario!")
		// Items without a topic name fall back to the generic label.
		assert.Contains(t, email.HTMLBody, "Generale")

		assert.Contains(t, email.PlainBody, "1. Wimbledon: sorteggio Sinner [Tennis]")
		assert.Contains(t, email.PlainBody, "2. Market Analysis [Generale]")
	})

	t.Run("greeting falls back to email local part", func(t *testing.T) {
		anonymous := domain.User{ID: uuid.New(), Email: "reader@example.com"}
		email, err := renderer.Render(anonymous, sampleDigest())
		require.NoError(t, err)
		assert.Contains(t, email.HTMLBody, "Ciao reader!")
	})

	t.Run("titles are escaped", func(t *testing.T) {
		d := sampleDigest()
		d.Items[0].Content.Title = `<script>alert("x")</script>`
		email, err := renderer.Render(user, d)
		require.NoError(t, err)
		assert.NotContains(t, email.HTMLBody, "<script>")
	})

	t.Run("empty digest is rejected", func(t *testing.T) {
		_, err := renderer.Render(user, &domain.Digest{UserID: user.ID})
		assert.Error(t, err)
	})
}

func TestNotifier_Deliver(t *testing.T) {
	renderer, err := NewRenderer()
	require.NoError(t, err)

	t.Run("sends the rendered email", func(t *testing.T) {
		sender := &fakeSender{}
		notifier := NewNotifier(renderer, sender)
		user := domain.User{ID: uuid.New(), Email: "mario@example.com", FirstName: "Mario"}

		require.NoError(t, notifier.Deliver(context.Background(), user, sampleDigest()))
		require.Len(t, sender.sent, 1)
		assert.Equal(t, "mario@example.com", sender.sent[0].to)
		assert.True(t, strings.HasPrefix(sender.sent[0].subject, "La tua newsletter personalizzata"))
	})

	t.Run("sender failure propagates", func(t *testing.T) {
		sender := &fakeSender{err: errors.New("smtp unavailable")}
		notifier := NewNotifier(renderer, sender)

		err := notifier.Deliver(context.Background(), domain.User{Email: "a@b.c"}, sampleDigest())
		assert.Error(t, err)
	})
}

type sentMail struct {
	to      string
	subject string
}

type fakeSender struct {
	sent []sentMail
	err  error
}

func (s *fakeSender) Send(to, subject, htmlBody, plainBody string) error {
	if s.err != nil {
		return s.err
	}
	s.sent = append(s.sent, sentMail{to: to, subject: subject})
	return nil
}
