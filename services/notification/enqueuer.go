package notification

import (
	"context"
	"encoding/json"
	"fmt"

	"medibook/models"

	"github.com/hibiken/asynq"
)

// TypeEmailSend is the asynq task type for outgoing email.
const TypeEmailSend = "email:send"

// AsynqEnqueuer queues emails on Redis for the background worker.
type AsynqEnqueuer struct {
	Client *asynq.Client
}

// NewAsynqEnqueuer wraps an asynq client.
func NewAsynqEnqueuer(client *asynq.Client) *AsynqEnqueuer {
	return &AsynqEnqueuer{Client: client}
}

// EnqueueEmail queues one email for delivery. Retries are bounded; a task
// that keeps failing is dropped by the worker, not bounced back to the caller.
func (e *AsynqEnqueuer) EnqueueEmail(ctx context.Context, payload models.EmailPayload) error {
	data, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal email payload: %w", err)
	}

	task := asynq.NewTask(TypeEmailSend, data)
	if _, err := e.Client.EnqueueContext(ctx, task, asynq.MaxRetry(3)); err != nil {
		return fmt.Errorf("failed to enqueue email task: %w", err)
	}
	return nil
}
