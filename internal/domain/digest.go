package domain

import (
	"time"

	"github.com/google/uuid"
)

// DigestItem is one ranked entry of a user's digest. TopicName is the name of
// the best-scoring topic link that surfaced the item, kept for display.
type DigestItem struct {
	Content   ContentItem `json:"content"`
	Score     float64     `json:"score"`
	TopicName string      `json:"topicName,omitempty"`
}

// Digest is the ranked, size-capped selection for one user and one run.
type Digest struct {
	UserID      uuid.UUID    `json:"userId"`
	Items       []DigestItem `json:"items"`
	GeneratedAt time.Time    `json:"generatedAt"`
}

func (d *Digest) IsEmpty() bool {
	return d == nil || len(d.Items) == 0
}
