// Package notification is the outbound message boundary for operations
// staff. Delivery is fire-and-forget: enqueue failures are logged and never
// surface to the booking flow.
package notification

import (
	"context"
	"encoding/json"

	"github.com/hibiken/asynq"
	"go.uber.org/zap"
)

// TypeOpsNotify is the asynq task type for ops broadcast messages.
const TypeOpsNotify = "notify:ops"

// OpsPayload is the queued message body.
type OpsPayload struct {
	Text string `json:"text"`
}

// Notifier accepts pre-formatted text for broadcast to operations staff.
type Notifier interface {
	Notify(ctx context.Context, text string)
}

// QueueNotifier enqueues messages onto the asynq-backed outbound queue; the
// background worker owns delivery and retries.
type QueueNotifier struct {
	client *asynq.Client
	logger *zap.Logger
}

func NewQueueNotifier(redisOpt asynq.RedisClientOpt, logger *zap.Logger) *QueueNotifier {
	return &QueueNotifier{
		client: asynq.NewClient(redisOpt),
		logger: logger,
	}
}

func (n *QueueNotifier) Notify(ctx context.Context, text string) {
	payload, err := json.Marshal(OpsPayload{Text: text})
	if err != nil {
		n.logger.Error("failed to marshal ops notification", zap.Error(err))
		return
	}
	task := asynq.NewTask(TypeOpsNotify, payload)
	if _, err := n.client.EnqueueContext(ctx, task, asynq.MaxRetry(3)); err != nil {
		n.logger.Warn("failed to enqueue ops notification",
			zap.String("text", text), zap.Error(err))
	}
}
