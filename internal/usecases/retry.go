package usecases

import (
	"context"
	"errors"
	"time"

	domainerrors "fnct-hackathon.backend/internal/domain/errors"
	"fnct-hackathon.backend/internal/infrastructure/metrics"
	"fnct-hackathon.backend/pkg/logger"
	"go.uber.org/zap"
)

var now = time.Now

// retryOnConflict reruns fn, each time in a fresh transaction, while it fails
// with ErrConcurrencyConflict. Other outcomes are returned as is.
func retryOnConflict(ctx context.Context, retries int, m *metrics.Metrics, op string, fn func(ctx context.Context) error) error {
	if retries < 0 {
		retries = 0
	}
	var err error
	for attempt := 0; attempt <= retries; attempt++ {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}
		err = fn(ctx)
		if !errors.Is(err, domainerrors.ErrConcurrencyConflict) {
			return err
		}
		if attempt < retries {
			m.Retry(op)
			logger.Debug(ctx, "retrying after concurrency conflict",
				zap.String("operation", op),
				zap.Int("attempt", attempt+1),
			)
		}
	}
	return err
}
