//go:build !tinygo

package hal

import (
	"context"
	"strings"
	"time"

	"go.uber.org/zap"
)

// HeadlessConfig controls the no-window board runner.
type HeadlessConfig struct {
	// Interval between LED strip log lines. Zero disables the ticker and
	// RunHeadless only waits for the context.
	LogEvery time.Duration
	// Duration ends the run after a fixed time. Zero runs until the
	// context is cancelled.
	Duration time.Duration
}

// RunHeadless observes the board without a window, logging the LED strip at
// a fixed interval until the context ends. The application's tasks keep
// running on their own goroutines. The return is nil on a timed or
// cancelled exit.
func RunHeadless(ctx context.Context, b *HostBoard, logger *zap.Logger, cfg HeadlessConfig) error {
	if logger == nil {
		logger = zap.NewNop()
	}
	if cfg.Duration > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, cfg.Duration)
		defer cancel()
	}

	var tick <-chan time.Time
	if cfg.LogEvery > 0 {
		t := time.NewTicker(cfg.LogEvery)
		defer t.Stop()
		tick = t.C
	}

	for {
		select {
		case <-ctx.Done():
			if ctx.Err() == context.DeadlineExceeded && cfg.Duration > 0 {
				return nil
			}
			return ctx.Err()
		case <-tick:
			logger.Info("board", zap.String("leds", stripString(b.levels())))
		}
	}
}

func stripString(levels []bool) string {
	var sb strings.Builder
	for _, lit := range levels {
		if lit {
			sb.WriteByte('#')
		} else {
			sb.WriteByte('.')
		}
	}
	return sb.String()
}
