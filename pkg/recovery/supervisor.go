package recovery

import (
	"context"
	"log/slog"
	"os"
	"sync"

	"github.com/aretw0/statusbar/internal/logging"
	"github.com/aretw0/statusbar/internal/metrics"
	"github.com/aretw0/statusbar/internal/presentation/diag"
	"github.com/aretw0/statusbar/pkg/domain"
	"github.com/aretw0/statusbar/pkg/protocol"
	"github.com/aretw0/statusbar/pkg/widget"
)

// Phase is the position of a Supervisor in the recovery sequence.
type Phase int

const (
	PhaseIdle Phase = iota
	PhaseRender
	PhaseAwait
	PhaseReplace
	PhaseFailed
)

func (p Phase) String() string {
	switch p {
	case PhaseRender:
		return "render"
	case PhaseAwait:
		return "await"
	case PhaseReplace:
		return "replace"
	case PhaseFailed:
		return "failed"
	default:
		return "idle"
	}
}

// Reporter writes the long form of a fatal error.
type Reporter interface {
	Report(err *domain.Error) error
}

// Supervisor runs Render, Await and Replace for a fatal error.
type Supervisor struct {
	channel  *protocol.Channel
	waiter   Waiter
	theme    widget.Theme
	reporter Reporter
	replacer Replacer
	argv     []string
	logger   *slog.Logger
	metrics  *metrics.Metrics

	mu    sync.Mutex
	phase Phase
}

// Option configures a Supervisor.
type Option func(*Supervisor)

// WithTheme sets the colors of the error widget.
func WithTheme(t widget.Theme) Option {
	return func(s *Supervisor) { s.theme = t }
}

// WithReporter replaces the stderr report.
func WithReporter(r Reporter) Option {
	return func(s *Supervisor) { s.reporter = r }
}

// WithReplacer replaces execve(2), mainly for tests.
func WithReplacer(r Replacer) Option {
	return func(s *Supervisor) { s.replacer = r }
}

// WithArgs sets the argv the replacement is derived from. Defaults to os.Args.
func WithArgs(argv []string) Option {
	return func(s *Supervisor) { s.argv = argv }
}

func WithLogger(logger *slog.Logger) Option {
	return func(s *Supervisor) { s.logger = logger }
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(s *Supervisor) { s.metrics = m }
}

// NewSupervisor builds a supervisor writing to ch and waiting on waiter.
func NewSupervisor(ch *protocol.Channel, waiter Waiter, opts ...Option) *Supervisor {
	s := &Supervisor{
		channel: ch,
		waiter:  waiter,
		theme:   widget.DefaultTheme(),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.reporter == nil {
		s.reporter = diag.NewReporter(os.Stderr)
	}
	if s.replacer == nil {
		s.replacer = NewExecReplacer()
	}
	if s.argv == nil {
		s.argv = os.Args
	}
	if s.logger == nil {
		s.logger = logging.NewNop()
	}
	return s
}

// Phase reports the current phase.
func (s *Supervisor) Phase() Phase {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.phase
}

func (s *Supervisor) enter(p Phase) {
	s.mu.Lock()
	s.phase = p
	s.mu.Unlock()
	s.logger.Debug("recovery phase", "phase", p)
}

// Recover shows err, waits for the restart signal and replaces the process.
// On success it does not return. Any returned error is itself fatal.
func (s *Supervisor) Recover(ctx context.Context, err error) error {
	fatal := domain.AsError(err)
	if fatal == nil {
		fatal = domain.Wrap("event loop stopped", nil)
	}
	s.metrics.FatalError(fatal.Kind.String())
	s.logger.Error("fatal error", "error", fatal, "kind", fatal.Kind)

	s.enter(PhaseRender)
	if err := s.render(fatal); err != nil {
		return s.fail(domain.Wrap("failed to display the error", err))
	}

	s.enter(PhaseAwait)
	if err := s.waiter.Wait(ctx); err != nil {
		return s.fail(domain.Wrap("failed to wait for the restart signal", err))
	}

	s.enter(PhaseReplace)
	s.metrics.Restart("recovery")
	if err := s.replacer.Replace(RestartArgs(s.argv)); err != nil {
		return s.fail(domain.Wrap("failed to restart", err))
	}
	return nil
}

func (s *Supervisor) render(fatal *domain.Error) error {
	w := widget.New().
		WithText(protocol.PangoEscape(fatal.Error())).
		WithState(widget.StateCritical)
	if err := s.channel.WriteUpdate([]protocol.Block{w.Data(s.theme, "", 0)}); err != nil {
		return err
	}
	if err := s.reporter.Report(fatal); err != nil {
		s.logger.Warn("could not write error report", "error", err)
	}
	return nil
}

func (s *Supervisor) fail(err *domain.Error) error {
	s.enter(PhaseFailed)
	return err
}
