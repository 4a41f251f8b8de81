package config

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/aretw0/statusbar/internal/logging"
	"github.com/aretw0/statusbar/pkg/async"
	"github.com/aretw0/statusbar/pkg/domain"
)

// StdinDesignator is the configuration source meaning "read from standard input".
const StdinDesignator = "-"

// DefaultExtension is appended to configuration names without one.
const DefaultExtension = "toml"

// Loader turns a configuration source identifier into a Config.
type Loader struct {
	Stdin  io.Reader
	Pool   *async.Pool
	Finder *Finder
	Logger *slog.Logger
}

// Load resolves source and parses it. Every failure is a KindConfig domain.Error.
func (l *Loader) Load(ctx context.Context, source string) (*Config, error) {
	logger := l.Logger
	if logger == nil {
		logger = logging.NewNop()
	}

	if source == StdinDesignator {
		logger.Debug("reading configuration from stdin")
		return l.loadStdin()
	}

	finder := l.Finder
	if finder == nil {
		finder = NewFinder()
	}
	path, err := finder.FindFile(source, "", DefaultExtension)
	if err != nil {
		return nil, domain.ConfigError(fmt.Sprintf("Configuration file '%s' not found", source), nil)
	}
	logger.Debug("reading configuration file", "path", path, "source", source)

	pool := l.Pool
	if pool == nil {
		pool = async.NewPool(async.DefaultBlockingThreads)
	}
	data, err := async.ReadFile(ctx, pool, path)
	if err != nil {
		return nil, domain.ConfigError(fmt.Sprintf("Configuration file '%s' not found", source), err)
	}
	return Parse(string(data), path)
}

func (l *Loader) loadStdin() (*Config, error) {
	if l.Stdin == nil {
		return nil, domain.ConfigError("", nil)
	}
	data, err := io.ReadAll(l.Stdin)
	if err != nil {
		return nil, domain.ConfigError("Configuration file could not be read from stdin", err)
	}
	if len(data) == 0 {
		return nil, domain.ConfigError("", nil)
	}
	return Parse(string(data), "")
}
