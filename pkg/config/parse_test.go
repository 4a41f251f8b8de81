package config

import (
	"testing"
	"time"

	"github.com/aretw0/statusbar/pkg/domain"
	"github.com/aretw0/statusbar/pkg/widget"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleTOML = `
interval = 2.5

[theme]
critical_bg = "#000000"

[[block]]
block = "text"
text = "A"

[[block]]
block = "time"
format = "15:04"
interval = 1
`

func TestParse_TOML(t *testing.T) {
	cfg, err := Parse(sampleTOML, "")
	require.NoError(t, err)

	assert.Equal(t, 2500*time.Millisecond, cfg.Settings.Interval)
	assert.Equal(t, "#000000", cfg.Settings.Theme.Critical.Bg)
	assert.Equal(t, widget.DefaultTheme().Critical.Fg, cfg.Settings.Theme.Critical.Fg)

	require.Len(t, cfg.Blocks, 2)
	assert.Equal(t, "text", cfg.Blocks[0].Kind)
	assert.Equal(t, map[string]any{"text": "A"}, cfg.Blocks[0].Params)
	assert.Equal(t, "time", cfg.Blocks[1].Kind)
	assert.Equal(t, "15:04", cfg.Blocks[1].Params["format"])
	assert.NotContains(t, cfg.Blocks[1].Params, "block")
}

func TestParse_YAML(t *testing.T) {
	text := `
interval: 10
block:
  - block: text
    text: B
  - block: text
    text: A
`
	cfg, err := Parse(text, "/etc/bar.yaml")
	require.NoError(t, err)
	assert.Equal(t, 10*time.Second, cfg.Settings.Interval)
	require.Len(t, cfg.Blocks, 2)
	assert.Equal(t, "B", cfg.Blocks[0].Params["text"])
	assert.Equal(t, "A", cfg.Blocks[1].Params["text"])
}

func TestParse_Defaults(t *testing.T) {
	cfg, err := Parse("", "")
	require.NoError(t, err)
	assert.Equal(t, DefaultInterval, cfg.Settings.Interval)
	assert.Equal(t, widget.DefaultTheme(), cfg.Settings.Theme)
	assert.Empty(t, cfg.Blocks)

	cfg, err = Parse("", "empty.yml")
	require.NoError(t, err)
	assert.Empty(t, cfg.Blocks)
}

func TestParse_Errors(t *testing.T) {
	tests := []struct {
		name     string
		text     string
		path     string
		contains string
	}{
		{"syntax with path", "interval = = 1", "/home/u/.config/statusbar/config.toml", "'/home/u/.config/statusbar/config.toml'"},
		{"syntax from stdin", "interval = = 1", "", "from stdin"},
		{"unknown top-level key", "intervall = 1", "", "unknown key 'intervall'"},
		{"block without kind", "[[block]]\ntext = \"x\"", "", "block #1 has no 'block' key"},
		{"negative interval", "interval = -1", "", "interval must be positive"},
		{"nan interval", "interval = nan", "", "interval must be positive"},
		{"huge interval", "interval = 1e300", "", "interval must be below"},
		{"infinite interval", "interval = inf", "", "interval must be below"},
		{"yaml nan interval", "interval: .nan", "/etc/statusbar.yaml", "interval must be positive"},
		{"bad theme key", "[theme]\nbogus = \"#fff\"", "", "theme"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse(tt.text, tt.path)
			require.Error(t, err)
			assert.Equal(t, domain.KindConfig, domain.KindOf(err))
			assert.Contains(t, err.Error(), tt.contains)
		})
	}
}

func TestConfig_TakeBlocks(t *testing.T) {
	cfg, err := Parse(sampleTOML, "")
	require.NoError(t, err)

	blocks := cfg.TakeBlocks()
	require.Len(t, blocks, 2)
	assert.Empty(t, cfg.Blocks)
	assert.Empty(t, cfg.TakeBlocks(), "definitions are handed out once")
}
