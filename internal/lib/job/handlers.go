package job

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/hibiken/asynq"
)

// handleProductChangedTask records a product change as an audit log entry.
//
// A payload that cannot be decoded will never succeed, so it is skipped
// instead of being retried.
func (j *JobService) handleProductChangedTask(ctx context.Context, t *asynq.Task) error {
	var p ProductChangedPayload
	if err := json.Unmarshal(t.Payload(), &p); err != nil {
		return fmt.Errorf("failed to unmarshal product changed payload: %v: %w", err, asynq.SkipRetry)
	}

	if p.ProductID == "" {
		return fmt.Errorf("product changed payload has no product_id: %w", asynq.SkipRetry)
	}

	j.logger.Info().
		Str("type", TaskProductChanged).
		Str("action", string(p.Action)).
		Str("product_id", p.ProductID).
		Str("sku", p.SKU).
		Time("occurred_at", p.OccurredAt).
		Msg("product audit")

	return nil
}
