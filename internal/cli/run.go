package cli

import (
	"context"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/aretw0/statusbar/internal/logging"
	"github.com/aretw0/statusbar/internal/metrics"
	"github.com/aretw0/statusbar/pkg/blocks"
	"github.com/aretw0/statusbar/pkg/protocol"
	"github.com/aretw0/statusbar/pkg/recovery"
)

// blockStopTimeout bounds how long recovery waits for blocks to return.
const blockStopTimeout = time.Second

// Execute runs the bar for this process image. It returns only when crash
// recovery itself failed; a successful recovery replaces the process.
func Execute(args Args) error {
	if err := args.Validate(); err != nil {
		return err
	}

	logger := logging.New(logging.Level(args.Debug))
	ctx := context.Background()

	// Armed before anything can fail so an early restart request is queued.
	signals, stop := recovery.Notify()
	defer stop()

	m := metrics.New()
	if args.MetricsAddr != "" {
		if err := m.Serve(ctx, args.MetricsAddr, logger); err != nil {
			logger.Warn("metrics endpoint disabled", "addr", args.MetricsAddr, "error", err)
		}
	}

	channel := protocol.NewChannel(os.Stdout)
	replacer := recovery.NewExecReplacer()
	session := &Session{
		Args:     args,
		Channel:  channel,
		Stdin:    stdinReader(),
		Signals:  signals,
		Restart:  func() error { return replacer.Replace(recovery.RestartArgs(os.Args)) },
		Registry: blocks.DefaultRegistry(),
		Logger:   logger,
		Metrics:  m,
	}
	return runImage(ctx, session,
		recovery.NewSignalWaiter(signals, logger),
		recovery.WithReplacer(replacer),
		recovery.WithLogger(logger),
		recovery.WithMetrics(m),
	)
}

// runImage bootstraps session and hands its fatal error to crash recovery.
// The blocks are stopped before the error is shown, so while recovery waits
// only the restart signal can wake the process.
func runImage(ctx context.Context, session *Session, waiter recovery.Waiter, opts ...recovery.Option) error {
	bootCtx, cancel := context.WithCancel(ctx)
	err := session.Bootstrap(bootCtx)
	cancel()

	stopCtx, stopCancel := context.WithTimeout(ctx, blockStopTimeout)
	if werr := session.Wait(stopCtx); werr != nil {
		sessionLogger(session).Warn("blocks still running after fatal error", "error", werr)
	}
	stopCancel()

	opts = append([]recovery.Option{recovery.WithTheme(session.Theme())}, opts...)
	return recovery.NewSupervisor(session.Channel, waiter, opts...).Recover(ctx, err)
}

func sessionLogger(s *Session) *slog.Logger {
	if s.Logger == nil {
		return logging.NewNop()
	}
	return s.Logger
}

// stdinReader returns nil when standard input is not connected.
func stdinReader() io.Reader {
	if _, err := os.Stdin.Stat(); err != nil {
		return nil
	}
	return os.Stdin
}
