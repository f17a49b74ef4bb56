package notification

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/hibiken/asynq"
	"go.uber.org/zap"
)

// StartWorker runs the asynq worker that drains the ops notification queue
// and delivers each message to the configured webhook. When no webhook is
// configured, messages are logged and dropped.
func StartWorker(redisOpt asynq.RedisClientOpt, webhookURL string, logger *zap.Logger) {
	srv := asynq.NewServer(redisOpt, asynq.Config{
		Concurrency: 5,
		Queues: map[string]int{
			"default": 1,
		},
	})

	mux := asynq.NewServeMux()
	mux.HandleFunc(TypeOpsNotify, handleOpsNotify(webhookURL, logger))

	go func() {
		logger.Info("starting notification worker")
		if err := srv.Run(mux); err != nil {
			logger.Error("notification worker stopped", zap.Error(err))
		}
	}()
}

func handleOpsNotify(webhookURL string, logger *zap.Logger) asynq.HandlerFunc {
	client := &http.Client{Timeout: 10 * time.Second}

	return func(ctx context.Context, task *asynq.Task) error {
		var p OpsPayload
		if err := json.Unmarshal(task.Payload(), &p); err != nil {
			logger.Error("invalid ops notification payload", zap.Error(err))
			return err
		}

		if webhookURL == "" {
			logger.Info("ops notification (no webhook configured)", zap.String("text", p.Text))
			return nil
		}

		body, _ := json.Marshal(map[string]string{"text": p.Text})
		req, err := http.NewRequestWithContext(ctx, http.MethodPost, webhookURL, bytes.NewBuffer(body))
		if err != nil {
			return err
		}
		req.Header.Set("Content-Type", "application/json")

		resp, err := client.Do(req)
		if err != nil {
			logger.Warn("ops webhook delivery failed", zap.Error(err))
			return err
		}
		defer resp.Body.Close()

		if resp.StatusCode >= 300 {
			logger.Warn("ops webhook rejected message", zap.Int("status", resp.StatusCode))
			return fmt.Errorf("ops webhook returned status %d", resp.StatusCode)
		}
		return nil
	}
}
