package blocks

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/aretw0/statusbar/pkg/async"
	"github.com/aretw0/statusbar/pkg/widget"
	backend "github.com/redis/go-redis/v9"
)

type redisConfig struct {
	Addr     string        `mapstructure:"addr"`
	Password string        `mapstructure:"password"`
	DB       int           `mapstructure:"db"`
	Key      string        `mapstructure:"key"`
	Format   string        `mapstructure:"format"`
	Missing  string        `mapstructure:"missing"`
	Interval time.Duration `mapstructure:"interval"`
}

type redisBlock struct {
	cfg    redisConfig
	client *backend.Client
}

// NewRedis builds a block that shows the value stored at a Redis key.
// A missing key shows the 'missing' text instead of failing.
func NewRedis(params map[string]any) (Block, error) {
	cfg := redisConfig{Addr: "localhost:6379", Missing: "n/a"}
	if err := Decode(params, &cfg); err != nil {
		return nil, err
	}
	if cfg.Key == "" {
		return nil, fmt.Errorf("'key' is required")
	}
	client := backend.NewClient(&backend.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})
	return &redisBlock{cfg: cfg, client: client}, nil
}

func (b *redisBlock) Run(ctx context.Context, api API) error {
	defer b.client.Close()

	return Every(ctx, api, b.cfg.Interval, func(ctx context.Context) error {
		value, err := async.Run(ctx, api.Pool(), func() (string, error) {
			v, err := b.client.Get(ctx, b.cfg.Key).Result()
			if errors.Is(err, backend.Nil) {
				return b.cfg.Missing, nil
			}
			return v, err
		})
		if err != nil {
			return fmt.Errorf("redis %s: %w", b.cfg.Key, err)
		}
		return api.Set(ctx, widget.New().
			WithText(applyFormat(b.cfg.Format, value)).
			WithInstance(b.cfg.Key))
	})
}
