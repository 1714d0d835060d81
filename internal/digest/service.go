package digest

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/mvidali/newsbrief/internal/apperr"
	"github.com/mvidali/newsbrief/internal/domain"
	"github.com/mvidali/newsbrief/internal/storage"
)

// Service builds per-user digests from the preference store and the content
// pool. Both collaborators are read-only here; the service performs no
// writes.
type Service struct {
	prefs   storage.PreferenceReader
	content storage.ContentReader
	opts    Options

	now func() time.Time
}

func NewService(prefs storage.PreferenceReader, content storage.ContentReader, opts Options) *Service {
	return &Service{
		prefs:   prefs,
		content: content,
		opts:    opts.withDefaults(),
		now:     time.Now,
	}
}

// WithClock overrides the time source. Tests use it to pin the window.
func (s *Service) WithClock(now func() time.Time) *Service {
	s.now = now
	return s
}

func (s *Service) Options() Options {
	return s.opts
}

// BuildForUser computes the ranked digest for one user. A user with no
// preferences, or with no recent content for their topics, gets an empty
// digest and no error; only collaborator failures surface, wrapped as
// UpstreamError so the batch driver can isolate them.
func (s *Service) BuildForUser(ctx context.Context, userID uuid.UUID) (*domain.Digest, error) {
	return s.BuildForUserWindow(ctx, userID, s.opts.Window)
}

// BuildForUserWindow is BuildForUser with a per-call window override, used by
// the preview endpoint.
func (s *Service) BuildForUserWindow(ctx context.Context, userID uuid.UUID, window time.Duration) (*domain.Digest, error) {
	if window <= 0 {
		window = s.opts.Window
	}
	generatedAt := s.now()

	d := &domain.Digest{
		UserID:      userID,
		GeneratedAt: generatedAt,
	}

	prefs, err := s.prefs.GetPreferences(ctx, userID)
	if err != nil {
		return nil, apperr.NewUpstream("fetch preferences", err)
	}
	if len(prefs) == 0 {
		slog.Debug("No preferences configured", "user_id", userID)
		return d, nil
	}

	since := generatedAt.Add(-window)
	links, err := s.content.RecentLinks(ctx, domain.TopicIDs(prefs), since, s.opts.FetchLimit)
	if err != nil {
		return nil, apperr.NewUpstream("fetch recent content", err)
	}

	d.Items = Rank(prefs, links, since, s.opts)
	return d, nil
}
