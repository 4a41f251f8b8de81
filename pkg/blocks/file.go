package blocks

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/aretw0/statusbar/pkg/async"
	"github.com/aretw0/statusbar/pkg/widget"
)

type fileConfig struct {
	Path     string        `mapstructure:"path"`
	Format   string        `mapstructure:"format"`
	Interval time.Duration `mapstructure:"interval"`
	// Field selects one whitespace-separated field of the first line, 1-based.
	Field int `mapstructure:"field"`
}

type fileBlock struct {
	cfg fileConfig
}

// NewFile builds a block that shows the first line of a file.
func NewFile(params map[string]any) (Block, error) {
	var cfg fileConfig
	if err := Decode(params, &cfg); err != nil {
		return nil, err
	}
	if cfg.Path == "" {
		return nil, fmt.Errorf("'path' is required")
	}
	if cfg.Field < 0 {
		return nil, fmt.Errorf("'field' must not be negative")
	}
	return &fileBlock{cfg: cfg}, nil
}

func (b *fileBlock) Run(ctx context.Context, api API) error {
	return Every(ctx, api, b.cfg.Interval, func(ctx context.Context) error {
		data, err := async.ReadFile(ctx, api.Pool(), b.cfg.Path)
		if err != nil {
			return err
		}
		value, err := b.extract(string(data))
		if err != nil {
			return err
		}
		return api.Set(ctx, widget.New().WithText(applyFormat(b.cfg.Format, value)))
	})
}

func (b *fileBlock) extract(content string) (string, error) {
	line, _, _ := strings.Cut(content, "\n")
	line = strings.TrimSpace(line)
	if b.cfg.Field == 0 {
		return line, nil
	}
	fields := strings.Fields(line)
	if b.cfg.Field > len(fields) {
		return "", fmt.Errorf("%s: field %d out of range (%d fields)", b.cfg.Path, b.cfg.Field, len(fields))
	}
	return fields[b.cfg.Field-1], nil
}
