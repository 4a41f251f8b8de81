package protocol

// Block is one element of an update line, as understood by i3bar and swaybar.
type Block struct {
	FullText            string `json:"full_text"`
	ShortText           string `json:"short_text,omitempty"`
	Color               string `json:"color,omitempty"`
	Background          string `json:"background,omitempty"`
	Border              string `json:"border,omitempty"`
	MinWidth            int    `json:"min_width,omitempty"`
	Align               string `json:"align,omitempty"`
	Name                string `json:"name,omitempty"`
	Instance            string `json:"instance,omitempty"`
	Urgent              bool   `json:"urgent,omitempty"`
	Separator           *bool  `json:"separator,omitempty"`
	SeparatorBlockWidth int    `json:"separator_block_width,omitempty"`
	Markup              string `json:"markup,omitempty"`
}

// Header is the first line of the protocol stream.
type Header struct {
	Version     int  `json:"version"`
	ClickEvents bool `json:"click_events"`
	// StopSignal set to 0 tells the host never to pause the producer.
	StopSignal *int `json:"stop_signal,omitempty"`
}

// NewHeader returns the handshake header. With neverPause the host is told
// not to send SIGSTOP when the bar is hidden.
func NewHeader(neverPause bool) Header {
	h := Header{Version: 1}
	if neverPause {
		zero := 0
		h.StopSignal = &zero
	}
	return h
}
