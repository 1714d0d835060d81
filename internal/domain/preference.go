package domain

import (
	"github.com/google/uuid"
)

// DefaultWeight is applied at the data-access boundary when a preference row
// carries a NULL weight.
const DefaultWeight = 1.0

// Preference is a user's declared interest in a topic. At most one row exists
// per (user, topic) pair; saving a selection replaces the whole set.
type Preference struct {
	UserID  uuid.UUID `json:"userId"`
	TopicID uuid.UUID `json:"topicId"`
	Weight  float64   `json:"weight"`
	Topic   Topic     `json:"topic"`
}

// TopicIDs collects the distinct topic ids of a preference set.
func TopicIDs(prefs []Preference) []uuid.UUID {
	seen := make(map[uuid.UUID]struct{}, len(prefs))
	ids := make([]uuid.UUID, 0, len(prefs))
	for _, p := range prefs {
		if _, ok := seen[p.TopicID]; ok {
			continue
		}
		seen[p.TopicID] = struct{}{}
		ids = append(ids, p.TopicID)
	}
	return ids
}
