package digest

import (
	"bytes"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/mvidali/newsbrief/internal/domain"
)

type CombinePolicy string

const (
	// CombineMax keeps the single best link score per content item.
	CombineMax CombinePolicy = "max"
	// CombineSum adds the scores of all qualifying links per content item.
	CombineSum CombinePolicy = "sum"
)

const (
	DefaultWindow     = 24 * time.Hour
	DefaultMaxItems   = 5
	DefaultFetchLimit = 20
)

// Options tune digest selection. Window and Combine are deliberate knobs, not
// constants: the observed deployments ran both a 24h and a 7d window.
type Options struct {
	// Window is the trailing duration within which published_at must fall.
	Window time.Duration
	// MaxItems caps the ranked output.
	MaxItems int
	// FetchLimit bounds the pre-filter fetch from the content pool. It is a
	// work bound, not a correctness requirement.
	FetchLimit int
	// Combine picks the representative score when an item matches several of
	// the user's topics.
	Combine CombinePolicy
}

func DefaultOptions() Options {
	return Options{
		Window:     DefaultWindow,
		MaxItems:   DefaultMaxItems,
		FetchLimit: DefaultFetchLimit,
		Combine:    CombineMax,
	}
}

func (o Options) withDefaults() Options {
	if o.Window <= 0 {
		o.Window = DefaultWindow
	}
	if o.MaxItems <= 0 {
		o.MaxItems = DefaultMaxItems
	}
	if o.FetchLimit <= 0 {
		o.FetchLimit = DefaultFetchLimit
	}
	if o.Combine != CombineSum {
		o.Combine = CombineMax
	}
	return o
}

// candidate accumulates the links seen for one content item.
type candidate struct {
	content   domain.ContentItem
	score     float64
	bestLink  float64
	topicName string
}

// Rank scores the fetched content links against the user's preferences and
// returns the top distinct items, highest score first.
//
// item_score = preference_weight(topic) * link.relevance_score. Links outside
// the window, links without a published_at, and links whose topic is not in
// the preference set are skipped. A content item surfacing through several
// links appears once, with the representative score given by opts.Combine and
// the topic name of its best single link. Ties order by published_at desc,
// then id asc, so the output is a strict total order for a fixed snapshot.
func Rank(prefs []domain.Preference, links []domain.ContentLink, since time.Time, opts Options) []domain.DigestItem {
	opts = opts.withDefaults()
	if len(prefs) == 0 || len(links) == 0 {
		return nil
	}

	weights := make(map[uuid.UUID]float64, len(prefs))
	names := make(map[uuid.UUID]string, len(prefs))
	for _, p := range prefs {
		weights[p.TopicID] = p.Weight
		names[p.TopicID] = p.Topic.Name
	}

	seen := make(map[uuid.UUID]*candidate)
	var order []uuid.UUID

	for _, link := range links {
		weight, ok := weights[link.TopicID]
		if !ok {
			continue
		}
		if link.Content.PublishedAt == nil || link.Content.PublishedAt.Before(since) {
			// Items without a publication timestamp cannot be judged recent.
			continue
		}

		score := weight * link.Relevance

		cand, ok := seen[link.ContentID]
		if !ok {
			seen[link.ContentID] = &candidate{
				content:   link.Content,
				score:     score,
				bestLink:  score,
				topicName: names[link.TopicID],
			}
			order = append(order, link.ContentID)
			continue
		}

		if opts.Combine == CombineSum {
			cand.score += score
		} else if score > cand.score {
			cand.score = score
		}
		if score > cand.bestLink {
			cand.bestLink = score
			cand.topicName = names[link.TopicID]
		}
	}

	items := make([]domain.DigestItem, 0, len(order))
	for _, id := range order {
		c := seen[id]
		items = append(items, domain.DigestItem{
			Content:   c.content,
			Score:     c.score,
			TopicName: c.topicName,
		})
	}

	sort.Slice(items, func(i, j int) bool {
		a, b := items[i], items[j]
		if a.Score != b.Score {
			return a.Score > b.Score
		}
		if !a.Content.PublishedAt.Equal(*b.Content.PublishedAt) {
			return a.Content.PublishedAt.After(*b.Content.PublishedAt)
		}
		return bytes.Compare(a.Content.ID[:], b.Content.ID[:]) < 0
	})

	if len(items) > opts.MaxItems {
		items = items[:opts.MaxItems]
	}
	return items
}
