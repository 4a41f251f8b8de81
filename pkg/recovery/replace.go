package recovery

import (
	"fmt"
	"os"

	"golang.org/x/sys/unix"
)

// Replacer swaps the running process image for a new one.
type Replacer interface {
	// Replace does not return on success.
	Replace(argv []string) error
}

// ExecReplacer re-executes the current binary via execve(2).
// The environment and open descriptors, including stdout, are inherited.
type ExecReplacer struct {
	Executable func() (string, error)
	Environ    func() []string
	Exec       func(path string, argv []string, env []string) error
}

// NewExecReplacer returns a replacer bound to the real process.
func NewExecReplacer() *ExecReplacer {
	return &ExecReplacer{
		Executable: os.Executable,
		Environ:    os.Environ,
		Exec:       unix.Exec,
	}
}

func (r *ExecReplacer) Replace(argv []string) error {
	path, err := r.Executable()
	if err != nil {
		return fmt.Errorf("resolve executable: %w", err)
	}
	if err := r.Exec(path, argv, r.Environ()); err != nil {
		return fmt.Errorf("exec %s: %w", path, err)
	}
	return nil
}
