package cli

import (
	"fmt"

	"github.com/aretw0/statusbar/pkg/async"
)

// DefaultConfig is the configuration source used when none is given.
const DefaultConfig = "config.toml"

// Args holds the parsed command line of one process image.
type Args struct {
	// Config is a file name or "-" for stdin.
	Config string
	// NoInit is set on re-executed images whose protocol stream is already open.
	NoInit     bool
	NeverPause bool
	// BlockingThreads bounds concurrent blocking calls.
	BlockingThreads int

	Debug       bool
	MetricsAddr string
}

// DefaultArgs returns the values used for unset flags.
func DefaultArgs() Args {
	return Args{
		Config:          DefaultConfig,
		BlockingThreads: async.DefaultBlockingThreads,
	}
}

// Validate rejects values the bootstrap cannot work with.
func (a Args) Validate() error {
	if a.BlockingThreads < 1 {
		return fmt.Errorf("--threads must be at least 1, got %d", a.BlockingThreads)
	}
	if a.Config == "" {
		return fmt.Errorf("configuration source must not be empty")
	}
	return nil
}
