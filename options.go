package statusbar

import (
	"log/slog"
	"os"

	"github.com/aretw0/statusbar/internal/metrics"
	"github.com/aretw0/statusbar/pkg/async"
	"github.com/aretw0/statusbar/pkg/blocks"
	"github.com/aretw0/statusbar/pkg/protocol"
)

// DefaultUpdateBuffer is the number of block updates queued for the event loop.
const DefaultUpdateBuffer = 64

// Option defines a functional option for configuring the Bar.
type Option func(*Bar)

// WithChannel sets the protocol channel updates are written to.
func WithChannel(ch *protocol.Channel) Option {
	return func(b *Bar) {
		b.channel = ch
	}
}

// WithPool sets the pool blocks use for blocking calls.
func WithPool(p *async.Pool) Option {
	return func(b *Bar) {
		b.pool = p
	}
}

// WithRegistry sets the block kinds available to SpawnBlock.
func WithRegistry(r *blocks.Registry) Option {
	return func(b *Bar) {
		b.registry = r
	}
}

// WithLogger sets a custom structured logger.
func WithLogger(logger *slog.Logger) Option {
	return func(b *Bar) {
		b.logger = logger
	}
}

// WithMetrics records spawns, writes and restarts.
func WithMetrics(m *metrics.Metrics) Option {
	return func(b *Bar) {
		b.metrics = m
	}
}

// WithSignals feeds operator signals to the event loop.
// domain.RefreshSignal refreshes every block, domain.RestartSignal calls the restart func.
func WithSignals(ch <-chan os.Signal) Option {
	return func(b *Bar) {
		b.signals = ch
	}
}

// WithRestart sets what the event loop does on domain.RestartSignal.
// The function replaces the process and only returns on failure.
func WithRestart(fn func() error) Option {
	return func(b *Bar) {
		b.restart = fn
	}
}
