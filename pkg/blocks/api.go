package blocks

import (
	"context"
	"log/slog"
	"time"

	"github.com/aretw0/statusbar/pkg/async"
	"github.com/aretw0/statusbar/pkg/widget"
)

// Block is one independently scheduled unit of status computation.
type Block interface {
	// Run publishes widgets until ctx ends or the block fails.
	// Returning nil means the block has nothing more to publish.
	Run(ctx context.Context, api API) error
}

// BlockFunc adapts a function to Block.
type BlockFunc func(ctx context.Context, api API) error

func (f BlockFunc) Run(ctx context.Context, api API) error {
	return f(ctx, api)
}

// API is what the bar gives each block.
type API interface {
	// Set replaces the widgets of the block. It blocks until the event loop
	// accepts the update or ctx ends.
	Set(ctx context.Context, widgets ...widget.Widget) error
	// Refresh fires when the operator asks for an immediate update.
	Refresh() <-chan struct{}
	// Pool runs blocking calls.
	Pool() *async.Pool
	// Interval is the bar-wide default refresh interval.
	Interval() time.Duration
	Logger() *slog.Logger
}

// Every calls fn immediately and then on every tick of interval or refresh
// request, until ctx ends or fn fails.
func Every(ctx context.Context, api API, interval time.Duration, fn func(context.Context) error) error {
	if interval <= 0 {
		interval = api.Interval()
	}
	if err := fn(ctx); err != nil {
		if ctx.Err() != nil {
			return nil
		}
		return err
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
		case <-api.Refresh():
			ticker.Reset(interval)
		}
		if err := fn(ctx); err != nil {
			if ctx.Err() != nil {
				return nil
			}
			return err
		}
	}
}
