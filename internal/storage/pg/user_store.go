package pg

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/mvidali/newsbrief/internal/domain"
)

type UserStore struct {
	db *pgxpool.Pool
}

func NewUserStore(pool *ConnectionPool) *UserStore {
	return &UserStore{db: pool.conn}
}

// ListRecipients returns every profile with a delivery address. Eligibility
// is nothing more than having an email, matching the observed behavior.
func (s *UserStore) ListRecipients(ctx context.Context) ([]domain.User, error) {
	dbRows, err := s.db.Query(ctx, `
		SELECT id, email, first_name, last_name
		FROM profiles
		WHERE email IS NOT NULL;
	`)
	if err != nil {
		return nil, err
	}
	defer dbRows.Close()

	var users []domain.User
	for dbRows.Next() {
		var u domain.User
		var firstName, lastName *string
		if err := dbRows.Scan(&u.ID, &u.Email, &firstName, &lastName); err != nil {
			return nil, err
		}
		if firstName != nil {
			u.FirstName = *firstName
		}
		if lastName != nil {
			u.LastName = *lastName
		}
		users = append(users, u)
	}
	if err := dbRows.Err(); err != nil {
		return nil, err
	}
	return users, nil
}
