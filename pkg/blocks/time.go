package blocks

import (
	"context"
	"fmt"
	"time"

	"github.com/aretw0/statusbar/pkg/widget"
)

// DefaultTimeLayout renders like "Mon 02/01 15:04".
const DefaultTimeLayout = "Mon 02/01 15:04"

type timeConfig struct {
	Format   string        `mapstructure:"format"`
	Timezone string        `mapstructure:"timezone"`
	Interval time.Duration `mapstructure:"interval"`
}

type timeBlock struct {
	layout   string
	location *time.Location
	interval time.Duration
	now      func() time.Time
}

// NewTime builds a clock block. format is a Go reference-time layout.
func NewTime(params map[string]any) (Block, error) {
	cfg := timeConfig{Format: DefaultTimeLayout}
	if err := Decode(params, &cfg); err != nil {
		return nil, err
	}
	loc := time.Local
	if cfg.Timezone != "" {
		l, err := time.LoadLocation(cfg.Timezone)
		if err != nil {
			return nil, fmt.Errorf("timezone %q: %w", cfg.Timezone, err)
		}
		loc = l
	}
	return &timeBlock{
		layout:   cfg.Format,
		location: loc,
		interval: cfg.Interval,
		now:      time.Now,
	}, nil
}

func (b *timeBlock) Run(ctx context.Context, api API) error {
	return Every(ctx, api, b.interval, func(ctx context.Context) error {
		text := b.now().In(b.location).Format(b.layout)
		return api.Set(ctx, widget.New().WithText(applyFormat("", text)))
	})
}
