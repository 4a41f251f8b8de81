package widget

import (
	"strconv"

	"github.com/aretw0/statusbar/pkg/protocol"
)

// Widget is the smallest displayable unit a block publishes.
// Text is pango markup; callers escape untrusted content with protocol.PangoEscape.
type Widget struct {
	Text      string
	ShortText string
	State     State
	Instance  string
}

// New returns an empty Idle widget.
func New() Widget {
	return Widget{}
}

func (w Widget) WithText(text string) Widget {
	w.Text = text
	return w
}

func (w Widget) WithShortText(text string) Widget {
	w.ShortText = text
	return w
}

func (w Widget) WithState(s State) Widget {
	w.State = s
	return w
}

func (w Widget) WithInstance(instance string) Widget {
	w.Instance = instance
	return w
}

// Data converts the widget into a protocol block for the block with the
// given name and id. The id becomes the instance unless the widget sets one.
func (w Widget) Data(theme Theme, name string, id int) protocol.Block {
	colors := theme.Colors(w.State)
	instance := w.Instance
	if instance == "" {
		instance = strconv.Itoa(id)
	}
	return protocol.Block{
		FullText:   w.Text,
		ShortText:  w.ShortText,
		Color:      colors.Fg,
		Background: colors.Bg,
		Name:       name,
		Instance:   instance,
		Urgent:     w.State == StateCritical,
		Markup:     "pango",
	}
}
