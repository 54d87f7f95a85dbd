package kernel

import (
	"fmt"
	"sync"
	"sync/atomic"

	"go.uber.org/zap"
)

var (
	logger     atomic.Pointer[zap.Logger]
	loggerOnce sync.Once
)

// Logger returns the kernel's logger instance.
// It uses a no-op logger by default.
func Logger() *zap.Logger {
	loggerOnce.Do(func() {
		if logger.Load() == nil {
			logger.Store(zap.NewNop())
		}
	})
	return logger.Load()
}

// SetLogger installs a process-wide kernel logger.
func SetLogger(l *zap.Logger) {
	if l == nil {
		l = zap.NewNop()
	}
	loggerOnce.Do(func() {})
	logger.Store(l)
}

// Fatalf reports a contract violation and halts.
//
// Recoverable conditions (timeouts, exhaustion) are returned values everywhere
// in this module; Fatalf is reserved for programming errors such as operating
// on an uncreated or destroyed object, where continuing would corrupt kernel
// state.
func Fatalf(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	Logger().Error("kernel contract violation", zap.String("detail", msg))
	panic("kernel: " + msg)
}
