package protocol

import (
	"bufio"
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"sync"
)

// ErrAlreadyInitialized is returned by Init when the handshake was already written.
var ErrAlreadyInitialized = errors.New("protocol already initialized")

// Channel is the single writer of the protocol stream.
// Every method writes complete elements under a lock and flushes them, so
// concurrent callers never interleave partial lines.
type Channel struct {
	mu          sync.Mutex
	w           *bufio.Writer
	initialized bool
}

// NewChannel wraps w (usually os.Stdout).
func NewChannel(w io.Writer) *Channel {
	return &Channel{w: bufio.NewWriter(w)}
}

// Init writes the header and opens the infinite array.
func (c *Channel) Init(neverPause bool) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.initialized {
		return ErrAlreadyInitialized
	}
	header, err := encode(NewHeader(neverPause))
	if err != nil {
		return fmt.Errorf("encode header: %w", err)
	}
	c.w.Write(header)
	c.w.WriteString("\n[\n")
	if err := c.w.Flush(); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	c.initialized = true
	return nil
}

// WriteUpdate writes one incremental update element: the blocks as a JSON
// array followed by a comma and a newline.
func (c *Channel) WriteUpdate(blocks []Block) error {
	if blocks == nil {
		blocks = []Block{}
	}
	line, err := encode(blocks)
	if err != nil {
		return fmt.Errorf("encode update: %w", err)
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	c.w.Write(line)
	c.w.WriteString(",\n")
	if err := c.w.Flush(); err != nil {
		return fmt.Errorf("write update: %w", err)
	}
	return nil
}

// encode marshals v without HTML escaping, so pango markup stays readable.
func encode(v any) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	return bytes.TrimRight(buf.Bytes(), "\n"), nil
}
