package statusbar

import (
	"context"
	"log/slog"
	"os"
	"sync"
	"time"

	"github.com/aretw0/statusbar/internal/logging"
	"github.com/aretw0/statusbar/internal/metrics"
	"github.com/aretw0/statusbar/pkg/async"
	"github.com/aretw0/statusbar/pkg/blocks"
	"github.com/aretw0/statusbar/pkg/config"
	"github.com/aretw0/statusbar/pkg/domain"
	"github.com/aretw0/statusbar/pkg/protocol"
	"github.com/aretw0/statusbar/pkg/widget"
)

// Bar is the running bar: settings, spawned blocks and the event loop.
type Bar struct {
	settings config.Settings
	channel  *protocol.Channel
	pool     *async.Pool
	registry *blocks.Registry
	logger   *slog.Logger
	metrics  *metrics.Metrics
	signals  <-chan os.Signal
	restart  func() error

	slots    []*slot
	updates  chan update
	failures chan error
	running  sync.WaitGroup
}

// slot is the event loop's view of one spawned block.
type slot struct {
	ref     domain.BlockRef
	widgets []widget.Widget
	refresh chan struct{}
}

type update struct {
	id      int
	widgets []widget.Widget
}

// New creates a Bar retaining settings. Blocks are added with SpawnBlock.
func New(settings config.Settings, opts ...Option) *Bar {
	b := &Bar{
		settings: settings,
		updates:  make(chan update, DefaultUpdateBuffer),
		failures: make(chan error, 1),
	}
	for _, opt := range opts {
		opt(b)
	}

	if b.channel == nil {
		b.channel = protocol.NewChannel(os.Stdout)
	}
	if b.pool == nil {
		b.pool = async.NewPool(async.DefaultBlockingThreads)
	}
	if b.registry == nil {
		b.registry = blocks.DefaultRegistry()
	}
	if b.logger == nil {
		b.logger = logging.NewNop()
	}
	if b.settings.Interval <= 0 {
		b.settings.Interval = config.DefaultInterval
	}
	return b
}

// SpawnBlock builds the block described by def and starts it. Blocks are
// displayed in the order they are spawned. A construction failure is a
// domain.Error tagged with the block; SpawnBlock never waits on the block.
func (b *Bar) SpawnBlock(ctx context.Context, def config.BlockDefinition) error {
	ref := domain.BlockRef{ID: len(b.slots), Name: def.Kind}

	blk, err := b.registry.New(def.Kind, def.Params)
	if err != nil {
		return domain.BlockError(ref, "Failed to create block", err)
	}

	s := &slot{ref: ref, refresh: make(chan struct{}, 1)}
	b.slots = append(b.slots, s)
	b.metrics.BlockSpawned(def.Kind)
	b.logger.Debug("block spawned", "block", ref.Name, "id", ref.ID)

	api := &blockAPI{bar: b, slot: s, logger: b.logger.With("block", ref.Name, "id", ref.ID)}
	b.running.Add(1)
	go b.runBlock(ctx, s, blk, api)
	return nil
}

// Spawned lists the spawned blocks in display order.
func (b *Bar) Spawned() []domain.BlockRef {
	refs := make([]domain.BlockRef, len(b.slots))
	for i, s := range b.slots {
		refs[i] = s.ref
	}
	return refs
}

// Wait blocks until every spawned block has returned, or ctx ends.
// Blocks stop once the context given to SpawnBlock is cancelled.
func (b *Bar) Wait(ctx context.Context) error {
	done := make(chan struct{})
	go func() {
		b.running.Wait()
		close(done)
	}()
	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (b *Bar) runBlock(ctx context.Context, s *slot, blk blocks.Block, api *blockAPI) {
	defer b.running.Done()
	err := blk.Run(ctx, api)
	if err == nil || ctx.Err() != nil {
		api.logger.Debug("block finished", "error", err)
		return
	}
	select {
	case b.failures <- domain.TagBlock(s.ref, err):
	case <-ctx.Done():
	}
}

// RunEventLoop aggregates block updates into protocol writes. It only returns
// on a fatal condition, always with a non-nil *domain.Error.
func (b *Bar) RunEventLoop(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			return domain.Wrap("event loop cancelled", ctx.Err())

		case err := <-b.failures:
			return domain.AsError(err)

		case u := <-b.updates:
			b.apply(u)
			b.drain()
			if err := b.render(); err != nil {
				return domain.Wrap("failed to write to the bar", err)
			}

		case sig := <-b.signals:
			if err := b.handleSignal(sig); err != nil {
				return err
			}
		}
	}
}

func (b *Bar) apply(u update) {
	b.slots[u.id].widgets = u.widgets
}

// drain applies every queued update so one write covers them all.
func (b *Bar) drain() {
	for {
		select {
		case u := <-b.updates:
			b.apply(u)
		default:
			return
		}
	}
}

func (b *Bar) render() error {
	out := make([]protocol.Block, 0, len(b.slots))
	for _, s := range b.slots {
		for _, w := range s.widgets {
			out = append(out, w.Data(b.settings.Theme, s.ref.Name, s.ref.ID))
		}
	}
	if err := b.channel.WriteUpdate(out); err != nil {
		return err
	}
	b.metrics.UpdateWritten()
	return nil
}

func (b *Bar) handleSignal(sig os.Signal) error {
	switch sig {
	case domain.RefreshSignal:
		b.logger.Debug("refreshing all blocks")
		for _, s := range b.slots {
			select {
			case s.refresh <- struct{}{}:
			default:
			}
		}
	case domain.RestartSignal:
		if b.restart == nil {
			return nil
		}
		b.logger.Info("restarting in place")
		b.metrics.Restart("signal")
		if err := b.restart(); err != nil {
			return domain.Wrap("failed to restart", err)
		}
	}
	return nil
}

// blockAPI implements blocks.API for one slot.
type blockAPI struct {
	bar    *Bar
	slot   *slot
	logger *slog.Logger
}

func (a *blockAPI) Set(ctx context.Context, widgets ...widget.Widget) error {
	u := update{id: a.slot.ref.ID, widgets: append([]widget.Widget(nil), widgets...)}
	select {
	case a.bar.updates <- u:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (a *blockAPI) Refresh() <-chan struct{} {
	return a.slot.refresh
}

func (a *blockAPI) Pool() *async.Pool {
	return a.bar.pool
}

func (a *blockAPI) Interval() time.Duration {
	return a.bar.settings.Interval
}

func (a *blockAPI) Logger() *slog.Logger {
	return a.logger
}
