// Package config resolves, reads and parses the bar configuration.
package config

import (
	"time"

	"github.com/aretw0/statusbar/pkg/widget"
)

// DefaultInterval is the block refresh interval when the file sets none.
const DefaultInterval = 5 * time.Second

// Config is the parsed configuration file.
// Blocks is consumed by TakeBlocks; Settings stay with the bar.
type Config struct {
	Settings Settings
	Blocks   []BlockDefinition
}

// Settings holds everything that is not a block definition.
type Settings struct {
	Interval time.Duration
	Theme    widget.Theme
}

// BlockDefinition describes one block to spawn: its kind and the remaining keys.
type BlockDefinition struct {
	Kind   string
	Params map[string]any
}

// TakeBlocks returns the block definitions in declaration order and removes
// them from c, so each definition is spawned at most once.
func (c *Config) TakeBlocks() []BlockDefinition {
	blocks := c.Blocks
	c.Blocks = nil
	return blocks
}
