package errors

import (
	stderrors "errors"
	"fmt"
	"io"
	"strings"

	"github.com/muesli/termenv"
)

// palette styles the parts of a formatted error for one color profile.
type palette struct {
	p termenv.Profile
}

func (c palette) fg(color, text string) termenv.Style {
	return c.p.String(text).Foreground(c.p.Color(color))
}

func (c palette) heading(text string) string { return c.fg("1", text).Bold().String() }
func (c palette) code(text string) string    { return c.fg("7", text).Bold().String() }
func (c palette) message(text string) string { return c.fg("7", text).String() }
func (c palette) label(text string) string   { return c.fg("8", text).String() }
func (c palette) hint(text string) string    { return c.fg("6", text).String() }

// Format returns a multi-line error message without styling.
func (e *GameError) Format() string {
	return e.Styled(termenv.Ascii)
}

// Styled returns the multi-line error message colored for profile p.
func (e *GameError) Styled(p termenv.Profile) string {
	c := palette{p: p}
	var b strings.Builder

	b.WriteString("\n")
	if e.Code != "" {
		b.WriteString(c.heading("ERROR "))
		b.WriteString(c.code(e.Code + ": "))
	} else {
		b.WriteString(c.heading("ERROR: "))
	}
	b.WriteString(c.message(e.Message))
	b.WriteString("\n\n")

	if e.Detail != "" {
		for _, line := range wrapText(e.Detail, 70) {
			b.WriteString("  ")
			b.WriteString(line)
			b.WriteString("\n")
		}
		b.WriteString("\n")
	}

	if e.Wrapped != nil {
		b.WriteString("  ")
		b.WriteString(c.label("Cause: "))
		b.WriteString(e.Wrapped.Error())
		b.WriteString("\n\n")
	}

	if e.Suggestion != "" {
		b.WriteString("  ")
		b.WriteString(c.hint("Hint: "))
		b.WriteString(e.Suggestion)
		b.WriteString("\n\n")
	}

	return b.String()
}

// FormatCompact returns a compact single-line error format.
func (e *GameError) FormatCompact() string {
	var b strings.Builder
	if e.Code != "" {
		b.WriteString(e.Code)
		b.WriteString(": ")
	}
	b.WriteString(e.Message)
	if e.Detail != "" {
		b.WriteString(" (")
		b.WriteString(e.Detail)
		b.WriteString(")")
	}
	return b.String()
}

// wrapText wraps text to the specified width.
func wrapText(text string, width int) []string {
	if text == "" {
		return nil
	}
	if len(text) <= width {
		return []string{text}
	}

	var lines []string
	var current strings.Builder
	for _, word := range strings.Fields(text) {
		if current.Len()+len(word)+1 > width && current.Len() > 0 {
			lines = append(lines, current.String())
			current.Reset()
		}
		if current.Len() > 0 {
			current.WriteString(" ")
		}
		current.WriteString(word)
	}
	if current.Len() > 0 {
		lines = append(lines, current.String())
	}
	return lines
}

// Fprint writes a formatted error to w, colored when w is a terminal that
// supports it. Errors that are not GameErrors (and do not wrap one) are
// printed on a single line.
func Fprint(w io.Writer, err error) {
	p := termenv.NewOutput(w).Profile
	var ge *GameError
	if stderrors.As(err, &ge) {
		fmt.Fprint(w, ge.Styled(p))
		return
	}
	fmt.Fprintf(w, "\n%s %s\n\n", palette{p: p}.heading("ERROR:"), err.Error())
}
