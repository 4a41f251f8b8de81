package blocks

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os/exec"
	"strings"
	"time"

	"github.com/aretw0/statusbar/pkg/async"
	"github.com/aretw0/statusbar/pkg/widget"
)

type commandConfig struct {
	Command  string            `mapstructure:"command"`
	Shell    string            `mapstructure:"shell"`
	Format   string            `mapstructure:"format"`
	JSON     bool              `mapstructure:"json"`
	Interval time.Duration     `mapstructure:"interval"`
	Env      map[string]string `mapstructure:"env"`
	Dir      string            `mapstructure:"dir"`
}

// commandOutput is the shape accepted from commands run with json = true.
type commandOutput struct {
	Text      string `json:"text"`
	ShortText string `json:"short_text"`
	State     string `json:"state"`
}

type commandBlock struct {
	cfg commandConfig
}

// NewCommand builds a block that periodically runs a shell command and shows
// its standard output.
func NewCommand(params map[string]any) (Block, error) {
	cfg := commandConfig{Shell: "sh"}
	if err := Decode(params, &cfg); err != nil {
		return nil, err
	}
	if strings.TrimSpace(cfg.Command) == "" {
		return nil, fmt.Errorf("'command' is required")
	}
	return &commandBlock{cfg: cfg}, nil
}

func (b *commandBlock) Run(ctx context.Context, api API) error {
	return Every(ctx, api, b.cfg.Interval, func(ctx context.Context) error {
		out, err := async.Run(ctx, api.Pool(), func() (string, error) {
			return b.execute(ctx)
		})
		if err != nil {
			return err
		}
		w, err := b.render(out)
		if err != nil {
			return err
		}
		return api.Set(ctx, w)
	})
}

// execute runs the command and returns its trimmed stdout.
// Environment entries from the config are added to the inherited environment.
func (b *commandBlock) execute(ctx context.Context) (string, error) {
	cmd := exec.CommandContext(ctx, b.cfg.Shell, "-c", b.cfg.Command)
	cmd.Dir = b.cfg.Dir
	if len(b.cfg.Env) > 0 {
		env := cmd.Environ()
		for k, v := range b.cfg.Env {
			env = append(env, fmt.Sprintf("%s=%s", k, v))
		}
		cmd.Env = env
	}

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		msg := strings.TrimSpace(stderr.String())
		if msg == "" {
			return "", fmt.Errorf("command %q: %w", b.cfg.Command, err)
		}
		return "", fmt.Errorf("command %q: %w: %s", b.cfg.Command, err, msg)
	}
	return strings.TrimSpace(stdout.String()), nil
}

func (b *commandBlock) render(out string) (widget.Widget, error) {
	if !b.cfg.JSON {
		return widget.New().WithText(applyFormat(b.cfg.Format, out)), nil
	}

	var parsed commandOutput
	if err := json.Unmarshal([]byte(out), &parsed); err != nil {
		return widget.Widget{}, fmt.Errorf("command %q: invalid JSON output: %w", b.cfg.Command, err)
	}
	state, err := widget.ParseState(parsed.State)
	if err != nil {
		return widget.Widget{}, fmt.Errorf("command %q: %w", b.cfg.Command, err)
	}
	return widget.New().
		WithText(applyFormat(b.cfg.Format, parsed.Text)).
		WithShortText(applyFormat("", parsed.ShortText)).
		WithState(state), nil
}
