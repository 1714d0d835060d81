package batch_test

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/mvidali/newsbrief/internal/batch"
	"github.com/mvidali/newsbrief/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type staticUserReader struct {
	users []domain.User
	err   error
}

func (r staticUserReader) ListRecipients(ctx context.Context) ([]domain.User, error) {
	return r.users, r.err
}

type fakeBuilder struct {
	failFor  map[uuid.UUID]bool
	emptyFor map[uuid.UUID]bool

	inFlight    atomic.Int32
	maxInFlight atomic.Int32
}

func (b *fakeBuilder) BuildForUser(ctx context.Context, userID uuid.UUID) (*domain.Digest, error) {
	cur := b.inFlight.Add(1)
	defer b.inFlight.Add(-1)
	for {
		observed := b.maxInFlight.Load()
		if cur <= observed || b.maxInFlight.CompareAndSwap(observed, cur) {
			break
		}
	}
	time.Sleep(time.Millisecond)

	if b.failFor[userID] {
		return nil, errors.New("content pool unreachable")
	}

	d := &domain.Digest{UserID: userID, GeneratedAt: time.Now()}
	if !b.emptyFor[userID] {
		publishedAt := time.Now()
		d.Items = []domain.DigestItem{{
			Content: domain.ContentItem{ID: uuid.New(), Title: "item", PublishedAt: &publishedAt},
			Score:   1.0,
		}}
	}
	return d, nil
}

type recordingDeliverer struct {
	mu        sync.Mutex
	delivered []uuid.UUID
	err       error
}

func (d *recordingDeliverer) Deliver(ctx context.Context, user domain.User, dig *domain.Digest) error {
	if d.err != nil {
		return d.err
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	d.delivered = append(d.delivered, user.ID)
	return nil
}

func makeUsers(n int) []domain.User {
	users := make([]domain.User, n)
	for i := range users {
		users[i] = domain.User{ID: uuid.New(), Email: "user@example.com"}
	}
	return users
}

func TestRunner_Run(t *testing.T) {
	ctx := context.Background()

	t.Run("one failing user does not affect the rest", func(t *testing.T) {
		users := makeUsers(10)
		failing := users[3].ID

		builder := &fakeBuilder{failFor: map[uuid.UUID]bool{failing: true}}
		deliverer := &recordingDeliverer{}

		report, err := batch.NewRunner(staticUserReader{users: users}, builder, deliverer, 3).Run(ctx)
		require.NoError(t, err)

		assert.Equal(t, 10, report.Processed)
		assert.Equal(t, 9, report.Delivered)
		assert.Equal(t, 1, report.Failed)
		assert.Len(t, deliverer.delivered, 9)
		assert.NotContains(t, deliverer.delivered, failing)
		require.Len(t, report.Failures, 1)
		assert.Equal(t, failing.String(), report.Failures[0].UserID)
	})

	t.Run("empty digests are counted and not delivered", func(t *testing.T) {
		users := makeUsers(4)
		builder := &fakeBuilder{emptyFor: map[uuid.UUID]bool{
			users[0].ID: true,
			users[2].ID: true,
		}}
		deliverer := &recordingDeliverer{}

		report, err := batch.NewRunner(staticUserReader{users: users}, builder, deliverer, 2).Run(ctx)
		require.NoError(t, err)

		assert.Equal(t, 4, report.Processed)
		assert.Equal(t, 2, report.Delivered)
		assert.Equal(t, 2, report.Empty)
		assert.Zero(t, report.Failed)
		assert.Len(t, deliverer.delivered, 2)
	})

	t.Run("delivery failure is a per-user failure", func(t *testing.T) {
		users := makeUsers(3)
		builder := &fakeBuilder{}
		deliverer := &recordingDeliverer{err: errors.New("smtp unavailable")}

		report, err := batch.NewRunner(staticUserReader{users: users}, builder, deliverer, 2).Run(ctx)
		require.NoError(t, err)

		assert.Equal(t, 3, report.Processed)
		assert.Equal(t, 3, report.Failed)
		assert.Zero(t, report.Delivered)
	})

	t.Run("parallelism stays within the worker bound", func(t *testing.T) {
		builder := &fakeBuilder{}
		deliverer := &recordingDeliverer{}

		_, err := batch.NewRunner(staticUserReader{users: makeUsers(20)}, builder, deliverer, 3).Run(ctx)
		require.NoError(t, err)

		assert.LessOrEqual(t, builder.maxInFlight.Load(), int32(3))
	})

	t.Run("recipient listing failure aborts the run", func(t *testing.T) {
		_, err := batch.NewRunner(
			staticUserReader{err: errors.New("profiles unreachable")},
			&fakeBuilder{}, &recordingDeliverer{}, 2,
		).Run(ctx)

		require.Error(t, err)
	})

	t.Run("no recipients is an empty report", func(t *testing.T) {
		report, err := batch.NewRunner(staticUserReader{}, &fakeBuilder{}, &recordingDeliverer{}, 2).Run(ctx)
		require.NoError(t, err)
		assert.Zero(t, report.Processed)
	})
}
