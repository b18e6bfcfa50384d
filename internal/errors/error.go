package errors

import (
	"fmt"
	"strings"
)

// Category represents the type of error.
type Category string

const (
	CategoryRender Category = "render"
	CategoryStyle  Category = "style"
	CategoryConfig Category = "config"
	CategorySite   Category = "site"
	CategoryCLI    Category = "cli"
)

// Location represents a position inside a source text (a style block,
// a config file, ...).
type Location struct {
	File   string
	Line   int
	Column int
}

// String returns the location as a formatted string.
func (l *Location) String() string {
	if l == nil {
		return ""
	}
	if l.Column > 0 {
		return fmt.Sprintf("%s:%d:%d", l.File, l.Line, l.Column)
	}
	return fmt.Sprintf("%s:%d", l.File, l.Line)
}

// SoarError is a structured error with source location, suggestions, and documentation.
type SoarError struct {
	// Code is a unique error identifier (e.g., "E001").
	Code string

	// Category is the error type (render, style, etc.).
	Category Category

	// Message is a short description of the error.
	Message string

	// Detail is a longer explanation of the error.
	Detail string

	// Location is the source location where the error occurred.
	Location *Location

	// Context contains surrounding source lines.
	Context []string

	// Suggestion is a hint on how to fix the error.
	Suggestion string

	// DocURL is a link to documentation about this error.
	DocURL string

	// Wrapped is the underlying error, if any.
	Wrapped error
}

// Error implements the error interface.
func (e *SoarError) Error() string {
	msg := e.Message
	if e.Code != "" {
		msg = fmt.Sprintf("%s: %s", e.Code, e.Message)
	}
	if e.Wrapped != nil {
		msg += ": " + e.Wrapped.Error()
	}
	return msg
}

// Unwrap returns the wrapped error for errors.Is/As support.
func (e *SoarError) Unwrap() error {
	return e.Wrapped
}

// WithSource records a location inside an in-memory source text, keeping a
// few lines around it for Format.
func (e *SoarError) WithSource(name, source string, line, column int) *SoarError {
	e.Location = &Location{File: name, Line: line, Column: column}
	e.Context = contextLines(source, line)
	return e
}

// WithLocation adds a location without context lines.
func (e *SoarError) WithLocation(file string, line, column int) *SoarError {
	e.Location = &Location{File: file, Line: line, Column: column}
	return e
}

// WithSuggestion adds a fix suggestion to the error.
func (e *SoarError) WithSuggestion(s string) *SoarError {
	e.Suggestion = s
	return e
}

// WithDetail adds a detailed explanation to the error.
func (e *SoarError) WithDetail(d string) *SoarError {
	e.Detail = d
	return e
}

// Wrap wraps another error.
func (e *SoarError) Wrap(err error) *SoarError {
	e.Wrapped = err
	return e
}

// contextRadius is how many lines WithSource keeps on each side of the
// error line.
const contextRadius = 2

// contextLines returns the lines around targetLine (1-based).
func contextLines(source string, targetLine int) []string {
	if targetLine <= 0 {
		return nil
	}
	all := strings.Split(source, "\n")
	start := targetLine - contextRadius
	if start < 1 {
		start = 1
	}
	end := targetLine + contextRadius
	if end > len(all) {
		end = len(all)
	}
	if start > end {
		return nil
	}
	return all[start-1 : end]
}

// New creates a SoarError from a registered error code.
func New(code string) *SoarError {
	template, ok := registry[code]
	if !ok {
		return &SoarError{
			Code:    code,
			Message: "Unknown error",
		}
	}
	return &SoarError{
		Code:     code,
		Category: template.Category,
		Message:  template.Message,
		Detail:   template.Detail,
		DocURL:   template.DocURL,
	}
}

// Newf creates a new SoarError with a formatted message (no code).
func Newf(category Category, format string, args ...any) *SoarError {
	return &SoarError{
		Category: category,
		Message:  fmt.Sprintf(format, args...),
	}
}

// FromError wraps a standard error in a SoarError.
func FromError(err error, code string) *SoarError {
	if err == nil {
		return nil
	}
	if se, ok := err.(*SoarError); ok {
		return se
	}
	return New(code).Wrap(err)
}

// HasCode reports whether err or anything it wraps is a SoarError with the
// given code.
func HasCode(err error, code string) bool {
	for err != nil {
		if se, ok := err.(*SoarError); ok && se.Code == code {
			return true
		}
		u, ok := err.(interface{ Unwrap() error })
		if !ok {
			return false
		}
		err = u.Unwrap()
	}
	return false
}
