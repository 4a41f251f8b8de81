package widget

import (
	"fmt"
	"strings"
)

// State is the severity marker of a widget. It selects the theme colors.
type State int

const (
	StateIdle State = iota
	StateInfo
	StateGood
	StateWarning
	StateCritical
)

func (s State) String() string {
	switch s {
	case StateInfo:
		return "Info"
	case StateGood:
		return "Good"
	case StateWarning:
		return "Warning"
	case StateCritical:
		return "Critical"
	default:
		return "Idle"
	}
}

// ParseState accepts the state names case-insensitively. An empty string is Idle.
func ParseState(s string) (State, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "idle":
		return StateIdle, nil
	case "info":
		return StateInfo, nil
	case "good":
		return StateGood, nil
	case "warning":
		return StateWarning, nil
	case "critical":
		return StateCritical, nil
	default:
		return StateIdle, fmt.Errorf("unknown state %q", s)
	}
}
