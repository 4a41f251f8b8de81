package cli

import (
	"context"
	"io"
	"log/slog"
	"os"

	"github.com/aretw0/statusbar"
	"github.com/aretw0/statusbar/internal/logging"
	"github.com/aretw0/statusbar/internal/metrics"
	"github.com/aretw0/statusbar/pkg/async"
	"github.com/aretw0/statusbar/pkg/blocks"
	"github.com/aretw0/statusbar/pkg/config"
	"github.com/aretw0/statusbar/pkg/domain"
	"github.com/aretw0/statusbar/pkg/protocol"
	"github.com/aretw0/statusbar/pkg/widget"
)

// Session is one bootstrap of the bar inside a process image.
type Session struct {
	Args    Args
	Channel *protocol.Channel
	// Stdin is the configuration source for "-". Nil means not connected.
	Stdin    io.Reader
	Signals  <-chan os.Signal
	Restart  func() error
	Registry *blocks.Registry
	Finder   *config.Finder
	Logger   *slog.Logger
	Metrics  *metrics.Metrics

	theme widget.Theme
	bar   *statusbar.Bar
}

// Bootstrap initializes the protocol, loads the configuration, spawns the
// blocks and runs the event loop. It only returns on a fatal error.
func (s *Session) Bootstrap(ctx context.Context) error {
	logger := s.Logger
	if logger == nil {
		logger = logging.NewNop()
	}
	s.theme = widget.DefaultTheme()

	if !s.Args.NoInit {
		if err := s.Channel.Init(s.Args.NeverPause); err != nil {
			return domain.Wrap("failed to initialize the bar protocol", err)
		}
		logger.Debug("protocol initialized", "never_pause", s.Args.NeverPause)
	}

	pool := async.NewPool(s.Args.BlockingThreads, async.WithObserver(s.Metrics.ObserveBlockingCall))
	loader := &config.Loader{
		Stdin:  s.Stdin,
		Pool:   pool,
		Finder: s.Finder,
		Logger: logger,
	}
	cfg, err := loader.Load(ctx, s.Args.Config)
	if err != nil {
		return err
	}

	defs := cfg.TakeBlocks()
	s.theme = cfg.Settings.Theme
	s.bar = statusbar.New(cfg.Settings,
		statusbar.WithChannel(s.Channel),
		statusbar.WithPool(pool),
		statusbar.WithRegistry(s.Registry),
		statusbar.WithLogger(logger),
		statusbar.WithMetrics(s.Metrics),
		statusbar.WithSignals(s.Signals),
		statusbar.WithRestart(s.Restart),
	)

	for _, def := range defs {
		if err := s.bar.SpawnBlock(ctx, def); err != nil {
			return err
		}
	}
	logger.Info("bar started", "blocks", len(defs), "threads", pool.Size())

	return s.bar.RunEventLoop(ctx)
}

// Theme is the theme of the loaded configuration, or the default one when
// loading failed.
func (s *Session) Theme() widget.Theme {
	if s.theme == (widget.Theme{}) {
		return widget.DefaultTheme()
	}
	return s.theme
}

// Wait blocks until the spawned blocks have stopped or ctx ends.
func (s *Session) Wait(ctx context.Context) error {
	if s.bar == nil {
		return nil
	}
	return s.bar.Wait(ctx)
}

// Spawned lists the blocks started so far.
func (s *Session) Spawned() []domain.BlockRef {
	if s.bar == nil {
		return nil
	}
	return s.bar.Spawned()
}
