package batch

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/google/uuid"
	"github.com/mvidali/newsbrief/internal/domain"
	"github.com/mvidali/newsbrief/internal/storage"
)

const DefaultWorkerCount = 4

// DigestBuilder computes one user's digest. Satisfied by digest.Service.
type DigestBuilder interface {
	BuildForUser(ctx context.Context, userID uuid.UUID) (*domain.Digest, error)
}

// Deliverer hands a non-empty digest to the delivery collaborator.
type Deliverer interface {
	Deliver(ctx context.Context, user domain.User, d *domain.Digest) error
}

// Result is the per-user outcome of a run. Exactly one of Digest or Err is
// meaningful; a nil Err with an empty digest means "nothing new".
type Result struct {
	User   domain.User
	Digest *domain.Digest
	Err    error
}

// Runner executes one digest pass over all eligible recipients. Users are
// independent, so they are processed by a bounded worker pool; a failure for
// one user never aborts the batch.
type Runner struct {
	users     storage.UserReader
	builder   DigestBuilder
	deliverer Deliverer
	workers   int
}

func NewRunner(users storage.UserReader, builder DigestBuilder, deliverer Deliverer, workers int) *Runner {
	if workers <= 0 {
		workers = DefaultWorkerCount
	}
	return &Runner{
		users:     users,
		builder:   builder,
		deliverer: deliverer,
		workers:   workers,
	}
}

// Run processes every recipient and aggregates per-user results into a
// Report. Only the recipient listing itself is a fatal error; everything
// downstream is logged, counted and skipped.
func (r *Runner) Run(ctx context.Context) (*Report, error) {
	users, err := r.users.ListRecipients(ctx)
	if err != nil {
		return nil, fmt.Errorf("list recipients: %w", err)
	}

	slog.Info("Starting digest batch", "recipients", len(users), "workers", r.workers)

	jobs := make(chan domain.User, r.workers*2)
	results := make(chan Result)

	var wg sync.WaitGroup
	wg.Add(r.workers)
	for w := 0; w < r.workers; w++ {
		go func() {
			defer wg.Done()
			for {
				select {
				case <-ctx.Done():
					return
				case user, ok := <-jobs:
					if !ok {
						return
					}
					res := r.processUser(ctx, user)
					select {
					case results <- res:
					case <-ctx.Done():
						return
					}
				}
			}
		}()
	}

	go func() {
		defer close(jobs)
		for _, u := range users {
			select {
			case jobs <- u:
			case <-ctx.Done():
				return
			}
		}
	}()

	go func() {
		wg.Wait()
		close(results)
	}()

	report := &Report{}
	for res := range results {
		report.add(res)
	}

	slog.Info("Digest batch finished",
		"processed", report.Processed,
		"delivered", report.Delivered,
		"empty", report.Empty,
		"failed", report.Failed,
	)
	return report, nil
}

func (r *Runner) processUser(ctx context.Context, user domain.User) Result {
	d, err := r.builder.BuildForUser(ctx, user.ID)
	if err != nil {
		slog.Error("Digest computation failed, skipping user", "user_id", user.ID, "error", err)
		return Result{User: user, Err: err}
	}

	if d.IsEmpty() {
		slog.Info("No recent content for user", "user_id", user.ID)
		return Result{User: user, Digest: d}
	}

	if err := r.deliverer.Deliver(ctx, user, d); err != nil {
		slog.Error("Digest delivery failed", "user_id", user.ID, "error", err)
		return Result{User: user, Digest: d, Err: fmt.Errorf("deliver digest: %w", err)}
	}

	slog.Info("Digest delivered", "user_id", user.ID, "items", len(d.Items))
	return Result{User: user, Digest: d}
}
