package errors

import (
	"fmt"
	"io"
	"os"
	"strings"
)

// ansi wraps text in an escape sequence unless colors are off.
type ansi string

const (
	red   ansi = "\033[1;31m"
	cyan  ansi = "\033[36m"
	dim   ansi = "\033[90m"
	reset      = "\033[0m"
)

var colorEnabled = true

// DisableColors turns off ANSI colors in Format and PrintError.
func DisableColors() { colorEnabled = false }

// EnableColors turns ANSI colors back on.
func EnableColors() { colorEnabled = true }

func (a ansi) paint(text string) string {
	if !colorEnabled {
		return text
	}
	return string(a) + text + reset
}

// Format renders the error for a terminal: the code and message, then the
// offending source lines with a caret under the column, then the detail,
// cause, hint and documentation link when present.
func (e *SoarError) Format() string {
	var b strings.Builder

	head := "ERROR"
	if e.Code != "" {
		head += " " + e.Code
	}
	fmt.Fprintf(&b, "\n%s %s\n\n", red.paint(head+":"), e.Message)

	if e.Location != nil {
		fmt.Fprintf(&b, "  %s\n\n", cyan.paint(e.Location.String()))
		if len(e.Context) > 0 {
			e.writeExcerpt(&b)
			b.WriteString("\n")
		}
	}

	for _, part := range []struct {
		label, text string
	}{
		{"", e.Detail},
		{dim.paint("Cause: "), e.cause()},
		{cyan.paint("Hint: "), e.Suggestion},
		{dim.paint("Learn more: "), e.DocURL},
	} {
		if part.text != "" {
			fmt.Fprintf(&b, "  %s%s\n\n", part.label, part.text)
		}
	}

	return strings.TrimRight(b.String(), "\n") + "\n"
}

// writeExcerpt prints the context lines kept by WithSource. The window
// starts where contextLines started it.
func (e *SoarError) writeExcerpt(w io.Writer) {
	line := e.Location.Line
	first := line - contextRadius
	if first < 1 {
		first = 1
	}
	for i, text := range e.Context {
		n := first + i
		if n != line {
			fmt.Fprintf(w, "    %4d %s %s\n", n, dim.paint("│"), text)
			continue
		}
		fmt.Fprintf(w, "  %s%4d %s %s\n", red.paint("→ "), n, dim.paint("│"), text)
		if col := e.Location.Column; col > 0 {
			fmt.Fprintf(w, "       %s %s%s\n", dim.paint("│"), strings.Repeat(" ", col-1), red.paint("^"))
		}
	}
}

func (e *SoarError) cause() string {
	if e.Wrapped == nil {
		return ""
	}
	return e.Wrapped.Error()
}

// PrintError writes err to stderr, formatted when it is a *SoarError.
func PrintError(err error) {
	if se, ok := err.(*SoarError); ok {
		fmt.Fprint(os.Stderr, se.Format())
		return
	}
	fmt.Fprintf(os.Stderr, "\n%s %s\n\n", red.paint("ERROR:"), err)
}
