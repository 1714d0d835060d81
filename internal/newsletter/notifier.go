package newsletter

import (
	"context"
	"log/slog"

	"github.com/mvidali/newsbrief/internal/domain"
)

// Notifier renders digests and hands them to a Sender. It is the delivery
// collaborator the batch runner talks to.
type Notifier struct {
	renderer *Renderer
	sender   Sender
}

func NewNotifier(renderer *Renderer, sender Sender) *Notifier {
	return &Notifier{
		renderer: renderer,
		sender:   sender,
	}
}

func (n *Notifier) Deliver(ctx context.Context, user domain.User, d *domain.Digest) error {
	email, err := n.renderer.Render(user, d)
	if err != nil {
		return err
	}
	return n.sender.Send(user.Email, email.Subject, email.HTMLBody, email.PlainBody)
}

// LogDeliverer is the dry-run delivery collaborator: it logs what would have
// been sent and sends nothing.
type LogDeliverer struct{}

func (LogDeliverer) Deliver(ctx context.Context, user domain.User, d *domain.Digest) error {
	slog.Info("Dry run, skipping email delivery",
		"user_id", user.ID,
		"email", user.Email,
		"items", len(d.Items),
	)
	return nil
}
