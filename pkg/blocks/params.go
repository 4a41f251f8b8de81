package blocks

import (
	"fmt"
	"math"
	"reflect"
	"strings"
	"time"

	"github.com/aretw0/statusbar/pkg/protocol"
	"github.com/mitchellh/mapstructure"
)

// Decode copies params into out, which must be a pointer to a struct with
// mapstructure tags. Unknown keys are rejected. Durations accept either a
// number of seconds or a Go duration string.
func Decode(params map[string]any, out any) error {
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           out,
		ErrorUnused:      true,
		WeaklyTypedInput: true,
		DecodeHook: mapstructure.ComposeDecodeHookFunc(
			secondsHook,
			mapstructure.StringToTimeDurationHookFunc(),
		),
	})
	if err != nil {
		return err
	}
	if err := dec.Decode(params); err != nil {
		return fmt.Errorf("invalid parameters: %w", err)
	}
	return nil
}

var durationType = reflect.TypeOf(time.Duration(0))

// secondsHook turns plain numbers into durations measured in seconds.
func secondsHook(from reflect.Type, to reflect.Type, data any) (any, error) {
	if to != durationType {
		return data, nil
	}
	switch v := data.(type) {
	case int:
		return secondsToDuration(float64(v))
	case int64:
		return secondsToDuration(float64(v))
	case float64:
		return secondsToDuration(v)
	}
	return data, nil
}

// maxSeconds is the longest duration, in seconds, a time.Duration can hold.
const maxSeconds = float64(math.MaxInt64) / float64(time.Second)

func secondsToDuration(v float64) (time.Duration, error) {
	if math.IsNaN(v) || v < 0 {
		return 0, fmt.Errorf("duration must not be negative, got %v", v)
	}
	if v >= maxSeconds {
		return 0, fmt.Errorf("duration must be below %.0f seconds, got %v", maxSeconds, v)
	}
	return time.Duration(v * float64(time.Second)), nil
}

// valuePlaceholder is replaced by the escaped block value in format strings.
const valuePlaceholder = "{value}"

// applyFormat substitutes the pango-escaped value into format.
// An empty format shows the value alone.
func applyFormat(format, value string) string {
	escaped := protocol.PangoEscape(value)
	if format == "" {
		return escaped
	}
	return strings.ReplaceAll(format, valuePlaceholder, escaped)
}
