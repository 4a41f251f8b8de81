package recovery

import (
	"context"
	"log/slog"
	"os"
	"os/signal"

	"github.com/aretw0/statusbar/internal/logging"
	"github.com/aretw0/statusbar/pkg/domain"
)

// Notify starts capturing the refresh and restart signals. Call it before
// anything can fail so that a restart request sent early is queued rather
// than killing the process. The returned stop func releases the signals.
func Notify() (<-chan os.Signal, func()) {
	ch := make(chan os.Signal, 4)
	signal.Notify(ch, domain.RefreshSignal, domain.RestartSignal)
	return ch, func() { signal.Stop(ch) }
}

// Waiter blocks until the operator asks for a restart.
type Waiter interface {
	Wait(ctx context.Context) error
}

// SignalWaiter waits on a channel fed by Notify.
type SignalWaiter struct {
	signals <-chan os.Signal
	logger  *slog.Logger
}

// NewSignalWaiter wraps ch. A nil logger discards.
func NewSignalWaiter(ch <-chan os.Signal, logger *slog.Logger) *SignalWaiter {
	if logger == nil {
		logger = logging.NewNop()
	}
	return &SignalWaiter{signals: ch, logger: logger}
}

// Wait returns once domain.RestartSignal arrives. Every other signal is
// consumed and ignored.
func (w *SignalWaiter) Wait(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case sig := <-w.signals:
			if sig == domain.RestartSignal {
				return nil
			}
			w.logger.Debug("ignoring signal while waiting for restart", "signal", sig)
		}
	}
}
