package widget

import (
	"fmt"

	"github.com/mitchellh/mapstructure"
)

// Colors is a foreground/background pair. Empty means "host default".
type Colors struct {
	Fg string
	Bg string
}

// Theme maps every State to its colors.
type Theme struct {
	Idle     Colors
	Info     Colors
	Good     Colors
	Warning  Colors
	Critical Colors
}

// DefaultTheme leaves idle blocks uncolored and paints the other states.
func DefaultTheme() Theme {
	return Theme{
		Info:     Colors{Fg: "#93a1a1"},
		Good:     Colors{Fg: "#859900"},
		Warning:  Colors{Fg: "#b58900"},
		Critical: Colors{Fg: "#dc322f"},
	}
}

// Colors returns the pair for s.
func (t Theme) Colors(s State) Colors {
	switch s {
	case StateInfo:
		return t.Info
	case StateGood:
		return t.Good
	case StateWarning:
		return t.Warning
	case StateCritical:
		return t.Critical
	default:
		return t.Idle
	}
}

// themeOverrides is the flat shape of the [theme] table in the configuration file.
type themeOverrides struct {
	IdleFg     *string `mapstructure:"idle_fg"`
	IdleBg     *string `mapstructure:"idle_bg"`
	InfoFg     *string `mapstructure:"info_fg"`
	InfoBg     *string `mapstructure:"info_bg"`
	GoodFg     *string `mapstructure:"good_fg"`
	GoodBg     *string `mapstructure:"good_bg"`
	WarningFg  *string `mapstructure:"warning_fg"`
	WarningBg  *string `mapstructure:"warning_bg"`
	CriticalFg *string `mapstructure:"critical_fg"`
	CriticalBg *string `mapstructure:"critical_bg"`
}

// ApplyOverrides returns a copy of t with the keys present in raw replaced.
// Unknown keys are an error so typos surface as configuration errors.
func (t Theme) ApplyOverrides(raw map[string]any) (Theme, error) {
	if len(raw) == 0 {
		return t, nil
	}
	var o themeOverrides
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:      &o,
		ErrorUnused: true,
	})
	if err != nil {
		return t, err
	}
	if err := dec.Decode(raw); err != nil {
		return t, fmt.Errorf("theme: %w", err)
	}

	set := func(dst *string, v *string) {
		if v != nil {
			*dst = *v
		}
	}
	set(&t.Idle.Fg, o.IdleFg)
	set(&t.Idle.Bg, o.IdleBg)
	set(&t.Info.Fg, o.InfoFg)
	set(&t.Info.Bg, o.InfoBg)
	set(&t.Good.Fg, o.GoodFg)
	set(&t.Good.Bg, o.GoodBg)
	set(&t.Warning.Fg, o.WarningFg)
	set(&t.Warning.Bg, o.WarningBg)
	set(&t.Critical.Fg, o.CriticalFg)
	set(&t.Critical.Bg, o.CriticalBg)
	return t, nil
}
