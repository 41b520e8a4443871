package retry

import (
	"context"
	"fmt"
	"time"
)

// Config задает стратегию повторов: фиксированная задержка между попытками.
type Config struct {
	MaxAttempts int
	Delay       time.Duration
}

// Do выполняет fn до первого успеха, но не более MaxAttempts раз.
// Между попытками ждет Delay, уважая отмену контекста.
func Do(ctx context.Context, cfg Config, operationName string, fn func() error) error {
	if cfg.MaxAttempts < 1 {
		cfg.MaxAttempts = 1
	}

	var lastErr error
	for attempt := 1; attempt <= cfg.MaxAttempts; attempt++ {
		lastErr = fn()
		if lastErr == nil {
			return nil
		}

		if attempt < cfg.MaxAttempts {
			select {
			case <-ctx.Done():
				return fmt.Errorf("%s canceled after attempt %d: %w", operationName, attempt, ctx.Err())
			case <-time.After(cfg.Delay):
			}
		}
	}

	return fmt.Errorf("%s failed after %d attempts: %w", operationName, cfg.MaxAttempts, lastErr)
}
