package domain

import (
	"github.com/google/uuid"
)

// User is a digest recipient. Identity and session management live outside
// this service; only the stable id and delivery fields are consumed here.
type User struct {
	ID        uuid.UUID `json:"id"`
	Email     string    `json:"email"`
	FirstName string    `json:"firstName,omitempty"`
	LastName  string    `json:"lastName,omitempty"`
}

// DisplayName returns the greeting name for a user, falling back to the
// email local part when no first name is set.
func (u User) DisplayName() string {
	if u.FirstName != "" {
		return u.FirstName
	}
	for i := 0; i < len(u.Email); i++ {
		if u.Email[i] == '@' {
			return u.Email[:i]
		}
	}
	return u.Email
}
