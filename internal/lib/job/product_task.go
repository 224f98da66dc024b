package job

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/hibiken/asynq"
)

const (
	// TaskProductChanged is the job type name stored in Redis.
	// Asynq uses task type strings to route to handlers.
	TaskProductChanged = "product:changed"
)

// ProductAction names the mutation that produced an event.
type ProductAction string

const (
	ProductCreated ProductAction = "created"
	ProductUpdated ProductAction = "updated"
	ProductDeleted ProductAction = "deleted"
)

// ProductChangedPayload is the JSON payload of a product:changed task.
type ProductChangedPayload struct {
	Action     ProductAction `json:"action"`
	ProductID  string        `json:"product_id"`
	SKU        string        `json:"sku,omitempty"`
	OccurredAt time.Time     `json:"occurred_at"`
}

// NewProductChangedTask constructs an Asynq task for a product change.
//
// Task options:
//   - MaxRetry(3): retry up to 3 times on failure
//   - Queue(queue): the configured job queue
//   - Timeout(30s): kill the task if handler runs longer than 30 seconds
func NewProductChangedTask(p ProductChangedPayload, queue string) (*asynq.Task, error) {
	payload, err := json.Marshal(p)
	if err != nil {
		return nil, err
	}

	return asynq.NewTask(
		TaskProductChanged,
		payload,
		asynq.MaxRetry(3),
		asynq.Queue(queue),
		asynq.Timeout(30*time.Second),
	), nil
}

// PublishProductChanged enqueues a product:changed task.
func (j *JobService) PublishProductChanged(ctx context.Context, p ProductChangedPayload) error {
	task, err := NewProductChangedTask(p, j.queue)
	if err != nil {
		return fmt.Errorf("failed to build product changed task: %w", err)
	}

	info, err := j.Client.EnqueueContext(ctx, task)
	if err != nil {
		return fmt.Errorf("failed to enqueue product changed task: %w", err)
	}

	j.logger.Debug().
		Str("task_id", info.ID).
		Str("queue", info.Queue).
		Str("action", string(p.Action)).
		Str("product_id", p.ProductID).
		Msg("Enqueued product changed task")

	return nil
}
