package notification

import (
	"context"

	"medibook/models"
)

// Mailer delivers a single email. Implementations must not retain the context.
type Mailer interface {
	Send(ctx context.Context, to, subject, body string) error
}

// Enqueuer hands outgoing emails to the background queue. Enqueueing is
// decoupled from delivery: callers treat a returned error as log-and-continue,
// never as a reason to unwind their own state change.
type Enqueuer interface {
	EnqueueEmail(ctx context.Context, payload models.EmailPayload) error
}
