package config

import (
	"errors"
	"fmt"
	"io"
	"math"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/aretw0/statusbar/pkg/domain"
	"github.com/aretw0/statusbar/pkg/widget"
	"gopkg.in/yaml.v3"
)

// maxIntervalSeconds is the longest interval a time.Duration can hold.
const maxIntervalSeconds = float64(math.MaxInt64) / float64(time.Second)

// blockKey names the block kind inside a [[block]] entry.
const blockKey = "block"

// fileConfig is the on-disk shape shared by the TOML and YAML formats.
type fileConfig struct {
	Interval *float64         `toml:"interval" yaml:"interval"`
	Theme    map[string]any   `toml:"theme" yaml:"theme"`
	Blocks   []map[string]any `toml:"block" yaml:"block"`
}

// Parse decodes text into a Config. path is only used to pick the format and
// to point error messages at the file; pass "" when the text has no file.
func Parse(text string, path string) (*Config, error) {
	var raw fileConfig
	if isYAML(path) {
		dec := yaml.NewDecoder(strings.NewReader(text))
		dec.KnownFields(true)
		if err := dec.Decode(&raw); err != nil && !errors.Is(err, io.EOF) {
			return nil, domain.ConfigError(parseFailure(path), err)
		}
	} else {
		meta, err := toml.Decode(text, &raw)
		if err != nil {
			return nil, domain.ConfigError(parseFailure(path), err)
		}
		if undecoded := meta.Undecoded(); len(undecoded) > 0 {
			return nil, domain.ConfigError(fmt.Sprintf("%s: unknown key '%s'", parseFailure(path), undecoded[0]), nil)
		}
	}
	return build(raw, path)
}

func build(raw fileConfig, path string) (*Config, error) {
	cfg := &Config{
		Settings: Settings{
			Interval: DefaultInterval,
			Theme:    widget.DefaultTheme(),
		},
	}

	if raw.Interval != nil {
		if math.IsNaN(*raw.Interval) || *raw.Interval <= 0 {
			return nil, domain.ConfigError(fmt.Sprintf("%s: interval must be positive", parseFailure(path)), nil)
		}
		if *raw.Interval >= maxIntervalSeconds {
			return nil, domain.ConfigError(fmt.Sprintf("%s: interval must be below %.0f seconds", parseFailure(path), maxIntervalSeconds), nil)
		}
		cfg.Settings.Interval = time.Duration(*raw.Interval * float64(time.Second))
	}

	theme, err := cfg.Settings.Theme.ApplyOverrides(raw.Theme)
	if err != nil {
		return nil, domain.ConfigError(parseFailure(path), err)
	}
	cfg.Settings.Theme = theme

	for i, entry := range raw.Blocks {
		kind, ok := entry[blockKey].(string)
		if !ok || strings.TrimSpace(kind) == "" {
			return nil, domain.ConfigError(fmt.Sprintf("%s: block #%d has no '%s' key", parseFailure(path), i+1, blockKey), nil)
		}
		params := make(map[string]any, len(entry))
		for k, v := range entry {
			if k != blockKey {
				params[k] = v
			}
		}
		cfg.Blocks = append(cfg.Blocks, BlockDefinition{Kind: strings.TrimSpace(kind), Params: params})
	}
	return cfg, nil
}

func isYAML(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return true
	}
	return false
}

// parseFailure names the source of a parse error; stdin has no path.
func parseFailure(path string) string {
	if path == "" {
		return "Failed to parse configuration from stdin"
	}
	return fmt.Sprintf("Failed to parse configuration file '%s'", path)
}
