// Package report renders hook diagnostics for the console.
//
// Styles come from a lipgloss renderer bound to the output writer, so colors
// appear on a terminal and collapse to plain text everywhere else (pipes,
// CI logs, tests).
package report

import (
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"

	"github.com/Iron-Ham/hookkit/internal/checks"
)

var (
	errorColor   = lipgloss.Color("#F87171")
	warningColor = lipgloss.Color("#F59E0B")
	successColor = lipgloss.Color("#10B981")
	mutedColor   = lipgloss.Color("#9CA3AF")
)

// Printer writes diagnostics to an output stream.
type Printer struct {
	out io.Writer

	heading lipgloss.Style
	path    lipgloss.Style
	errTag  lipgloss.Style
	warn    lipgloss.Style
	success lipgloss.Style
	muted   lipgloss.Style
}

// NewPrinter creates a Printer writing to w.
func NewPrinter(w io.Writer) *Printer {
	r := lipgloss.NewRenderer(w)
	return &Printer{
		out:     w,
		heading: r.NewStyle().Bold(true),
		path:    r.NewStyle().Bold(true),
		errTag:  r.NewStyle().Foreground(errorColor).Bold(true),
		warn:    r.NewStyle().Foreground(warningColor),
		success: r.NewStyle().Foreground(successColor),
		muted:   r.NewStyle().Foreground(mutedColor),
	}
}

// Heading prints a blank line followed by text.
func (p *Printer) Heading(text string) {
	fmt.Fprintf(p.out, "\n%s\n", p.heading.Render(text))
}

// Findings prints heading and one line per finding. Nothing is printed when
// findings is empty.
func (p *Printer) Findings(heading string, findings []checks.Finding) {
	if len(findings) == 0 {
		return
	}
	p.Heading(heading)
	for _, f := range findings {
		p.Finding(f)
	}
}

// Finding prints a single finding as "path:line: error: 'content'".
func (p *Printer) Finding(f checks.Finding) {
	fmt.Fprintf(p.out, "%s %s '%s'\n",
		p.path.Render(fmt.Sprintf("%s:%d:", f.Path, f.Line)),
		p.errTag.Render("error:"),
		f.Content)
}

// Error prints "Error: " followed by the message.
func (p *Printer) Error(message string) {
	fmt.Fprintf(p.out, "%s %s\n", p.errTag.Render("Error:"), message)
}

// Errorf formats and prints an error line.
func (p *Printer) Errorf(format string, args ...any) {
	p.Error(fmt.Sprintf(format, args...))
}

// Warning prints "Warning: " followed by the message.
func (p *Printer) Warning(message string) {
	fmt.Fprintf(p.out, "%s %s\n", p.warn.Render("Warning:"), message)
}

// Success prints a confirmation line.
func (p *Printer) Success(message string) {
	fmt.Fprintln(p.out, p.success.Render(message))
}

// Line prints text verbatim.
func (p *Printer) Line(text string) {
	fmt.Fprintln(p.out, text)
}

// KeyValue prints "key: value" with the value muted when it is a placeholder
// such as "no owner".
func (p *Printer) KeyValue(key, value string, placeholder bool) {
	if placeholder {
		value = p.muted.Render(value)
	}
	fmt.Fprintf(p.out, "%s: %s\n", key, value)
}
