package queue

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/hibiken/asynq"
	"github.com/rs/zerolog/log"

	"bookstore-catalog/internal/shared"
)

// TaskEnqueuer schedules background work for the worker process.
type TaskEnqueuer interface {
	EnqueueProcessCover(ctx context.Context, isbn, key string) error
	EnqueueDeleteCover(ctx context.Context, isbn string) error
}

// AsynqEnqueuer pushes cover tasks onto the book queue.
type AsynqEnqueuer struct {
	client *asynq.Client
}

var _ TaskEnqueuer = (*AsynqEnqueuer)(nil)

func NewAsynqEnqueuer(client *asynq.Client) *AsynqEnqueuer {
	return &AsynqEnqueuer{client: client}
}

func (e *AsynqEnqueuer) EnqueueProcessCover(ctx context.Context, isbn, key string) error {
	return e.enqueue(ctx, shared.TypeProcessBookCover, shared.CoverPayload{Isbn: isbn, Key: key})
}

func (e *AsynqEnqueuer) EnqueueDeleteCover(ctx context.Context, isbn string) error {
	return e.enqueue(ctx, shared.TypeDeleteBookCover, shared.CoverPayload{Isbn: isbn})
}

func (e *AsynqEnqueuer) enqueue(ctx context.Context, taskType string, payload shared.CoverPayload) error {
	task, err := NewCoverTask(taskType, payload)
	if err != nil {
		return err
	}

	info, err := e.client.EnqueueContext(ctx, task, asynq.Queue(shared.QueueBook), asynq.MaxRetry(2))
	if err != nil {
		return fmt.Errorf("enqueue %s: %w", taskType, err)
	}

	log.Debug().
		Str("task_id", info.ID).
		Str("type", taskType).
		Str("isbn", payload.Isbn).
		Msg("[Queue] Task enqueued")
	return nil
}

// NewCoverTask builds an asynq task carrying a CoverPayload.
func NewCoverTask(taskType string, payload shared.CoverPayload) (*asynq.Task, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("marshal %s payload: %w", taskType, err)
	}
	return asynq.NewTask(taskType, data), nil
}

// NoopEnqueuer drops every task. Used when no worker is deployed.
type NoopEnqueuer struct{}

func (NoopEnqueuer) EnqueueProcessCover(context.Context, string, string) error { return nil }
func (NoopEnqueuer) EnqueueDeleteCover(context.Context, string) error         { return nil }
