package recovery

import "slices"

// NoInitFlag marks a process image that inherits an initialized protocol stream.
const NoInitFlag = "--no-init"

// RestartArgs returns argv with NoInitFlag appended once.
// The input slice is never modified.
func RestartArgs(argv []string) []string {
	out := slices.Clone(argv)
	if slices.Contains(out, NoInitFlag) {
		return out
	}
	return append(out, NoInitFlag)
}
