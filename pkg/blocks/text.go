package blocks

import (
	"context"

	"github.com/aretw0/statusbar/pkg/widget"
)

type textConfig struct {
	Text      string `mapstructure:"text"`
	ShortText string `mapstructure:"short_text"`
	State     string `mapstructure:"state"`
	// Markup keeps Text as pango markup instead of escaping it.
	Markup bool `mapstructure:"markup"`
}

type textBlock struct {
	widget widget.Widget
}

// NewText builds a block that shows fixed text.
func NewText(params map[string]any) (Block, error) {
	var cfg textConfig
	if err := Decode(params, &cfg); err != nil {
		return nil, err
	}
	state, err := widget.ParseState(cfg.State)
	if err != nil {
		return nil, err
	}

	text, short := cfg.Text, cfg.ShortText
	if !cfg.Markup {
		text, short = applyFormat("", text), applyFormat("", short)
	}
	return &textBlock{
		widget: widget.New().WithText(text).WithShortText(short).WithState(state),
	}, nil
}

func (b *textBlock) Run(ctx context.Context, api API) error {
	return api.Set(ctx, b.widget)
}
