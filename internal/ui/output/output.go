// Package output creates termenv outputs for redo's terminal reporting.
package output

import (
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"go.trai.ch/redo/internal/ui/style"
)

// ForceColorEnv forces ANSI colors even when the output is not a terminal.
const ForceColorEnv = "REDO_FORCE_COLOR"

// ColorProfile returns the color profile for terminal output. NO_COLOR wins
// over REDO_FORCE_COLOR; otherwise the terminal's capabilities are detected.
func ColorProfile() termenv.Profile {
	if os.Getenv("NO_COLOR") != "" {
		return termenv.Ascii
	}
	if os.Getenv(ForceColorEnv) != "" {
		return termenv.ANSI
	}
	return termenv.EnvColorProfile()
}

// New creates a termenv.Output for w using ColorProfile.
func New(w io.Writer, opts ...termenv.OutputOption) *termenv.Output {
	if w == nil {
		w = os.Stderr
	}

	opts = append(opts,
		termenv.WithProfile(ColorProfile()),
		termenv.WithTTY(true),
	)

	return termenv.NewOutput(w, opts...)
}

// Printer writes styled one-line reports.
type Printer struct {
	out *termenv.Output
}

// NewPrinter creates a Printer writing to w.
func NewPrinter(w io.Writer) *Printer {
	return &Printer{out: New(w)}
}

// Removed reports a file deleted by a sweep.
func (p *Printer) Removed(path string) error {
	return p.line(style.Slate, style.Tilde+" removed "+path)
}

func (p *Printer) line(color lipgloss.Color, msg string) error {
	styled := p.out.String(msg).Foreground(termenv.RGBColor(string(color)))
	_, err := p.out.WriteString(styled.String() + "\n")
	return err
}
