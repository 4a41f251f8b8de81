// Package diag writes the human-readable report of a fatal error to the
// diagnostic stream while the bar itself shows the short form.
package diag

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/aretw0/statusbar/pkg/domain"
	"github.com/muesli/termenv"
	"golang.org/x/term"
)

const defaultWidth = 60

// Reporter renders fatal errors. Colors are used only on a terminal.
type Reporter struct {
	out     io.Writer
	profile termenv.Profile
	width   int
}

// NewReporter detects whether w is a terminal and picks a color profile.
func NewReporter(w io.Writer) *Reporter {
	r := &Reporter{out: w, profile: termenv.Ascii, width: defaultWidth}
	if f, ok := w.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		r.profile = termenv.NewOutput(f).ColorProfile()
		if cols, _, err := term.GetSize(int(f.Fd())); err == nil && cols > 0 && cols < defaultWidth {
			r.width = cols
		}
	}
	return r
}

// NewPlainReporter never colors its output.
func NewPlainReporter(w io.Writer) *Reporter {
	return &Reporter{out: w, profile: termenv.Ascii, width: defaultWidth}
}

// Report writes "\n\n<error>\n\n" followed by a dump of the error fields.
func (r *Reporter) Report(err *domain.Error) error {
	headline := r.profile.String(err.Error()).Foreground(r.profile.Color("#f87171")).Bold()

	var b strings.Builder
	fmt.Fprintf(&b, "\n\n%s\n\n", headline)
	b.WriteString(r.rule())
	r.field(&b, "kind", err.Kind.String())
	if err.Message != "" {
		r.field(&b, "message", fmt.Sprintf("%q", err.Message))
	}
	if err.Block != nil {
		r.field(&b, "block", fmt.Sprintf("%s (id %d)", err.Block.Name, err.Block.ID))
	}
	for i, cause := 0, err.Cause; cause != nil; i, cause = i+1, unwrap(cause) {
		r.field(&b, fmt.Sprintf("cause[%d]", i), fmt.Sprintf("%s (%T)", cause, cause))
	}
	b.WriteString(r.rule())

	_, werr := io.WriteString(r.out, b.String())
	return werr
}

func (r *Reporter) field(b *strings.Builder, name, value string) {
	label := r.profile.String(fmt.Sprintf("%-9s", name)).Foreground(r.profile.Color("#a78bfa"))
	fmt.Fprintf(b, "  %s %s\n", label, value)
}

func (r *Reporter) rule() string {
	return r.profile.String(strings.Repeat("-", r.width)).Faint().String() + "\n"
}

func unwrap(err error) error {
	u, ok := err.(interface{ Unwrap() error })
	if !ok {
		return nil
	}
	return u.Unwrap()
}
