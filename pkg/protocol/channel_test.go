package protocol

import (
	"bytes"
	"errors"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestChannel_Init(t *testing.T) {
	var buf bytes.Buffer
	ch := NewChannel(&buf)

	require.NoError(t, ch.Init(false))
	assert.Equal(t, "{\"version\":1,\"click_events\":false}\n[\n", buf.String())

	err := ch.Init(false)
	assert.ErrorIs(t, err, ErrAlreadyInitialized)
	assert.Equal(t, 1, strings.Count(buf.String(), "\"version\""), "header must be written once")
}

func TestChannel_Init_NeverPause(t *testing.T) {
	var buf bytes.Buffer
	ch := NewChannel(&buf)

	require.NoError(t, ch.Init(true))
	assert.Equal(t, "{\"version\":1,\"click_events\":false,\"stop_signal\":0}\n[\n", buf.String())
}

func TestChannel_WriteUpdate(t *testing.T) {
	var buf bytes.Buffer
	ch := NewChannel(&buf)

	err := ch.WriteUpdate([]Block{
		{FullText: "a &amp; b", Name: "text", Instance: "0", Markup: "pango"},
		{FullText: "B", Color: "#ff0000"},
	})
	require.NoError(t, err)
	require.NoError(t, ch.WriteUpdate(nil))

	lines := strings.Split(strings.TrimSuffix(buf.String(), "\n"), "\n")
	require.Len(t, lines, 2)
	assert.Equal(t, `[{"full_text":"a &amp; b","name":"text","instance":"0","markup":"pango"},{"full_text":"B","color":"#ff0000"}],`, lines[0])
	assert.Equal(t, "[],", lines[1])
}

func TestChannel_ConcurrentWritesDoNotInterleave(t *testing.T) {
	var buf bytes.Buffer
	ch := NewChannel(&buf)

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = ch.WriteUpdate([]Block{{FullText: strings.Repeat("x", 512)}})
		}()
	}
	wg.Wait()

	lines := strings.Split(strings.TrimSuffix(buf.String(), "\n"), "\n")
	assert.Len(t, lines, 20)
	for _, line := range lines {
		assert.True(t, strings.HasPrefix(line, `[{"full_text":"`), line)
		assert.True(t, strings.HasSuffix(line, `"}],`), line)
	}
}

type failingWriter struct{}

func (failingWriter) Write(p []byte) (int, error) { return 0, errors.New("broken pipe") }

func TestChannel_WriteError(t *testing.T) {
	ch := NewChannel(failingWriter{})
	assert.Error(t, ch.Init(false))
	err := ch.Init(false)
	assert.Error(t, err)
	assert.NotErrorIs(t, err, ErrAlreadyInitialized, "a failed handshake can be retried")
	assert.Error(t, ch.WriteUpdate([]Block{{FullText: "x"}}))
}

func TestPangoEscape(t *testing.T) {
	assert.Equal(t, "a &lt;b&gt; &amp; &#39;c&#39; &quot;d&quot;", PangoEscape(`a <b> & 'c' "d"`))
	assert.Equal(t, "plain", PangoEscape("plain"))
}
