// Package errs defines the error kinds shared by the analysis pipeline.
//
// Every failure surfaced by the core carries one of four kinds so that the
// batch runner can decide its scope: configuration errors abort a run before
// any file is touched, the others are recovered at file, channel or window
// granularity.
package errs

import (
	"errors"
	"fmt"
	"strings"
)

// Kind classifies an error by how far it propagates.
type Kind int

const (
	// Configuration covers bad window, overlap, band or filter parameters.
	Configuration Kind = iota + 1
	// MissingColumn means a requested channel is absent from a file.
	MissingColumn
	// Numerical covers degenerate windows or signals (too short, non-finite).
	Numerical
	// IO covers unreadable inputs and unwritable outputs.
	IO
)

func (k Kind) String() string {
	switch k {
	case Configuration:
		return "configuration"
	case MissingColumn:
		return "missing column"
	case Numerical:
		return "numerical"
	case IO:
		return "io"
	default:
		return "unknown"
	}
}

// Error is a classified error with optional file and channel context.
type Error struct {
	Kind    Kind
	Op      string
	File    string
	Channel string
	Err     error
}

func (e *Error) Error() string {
	var b strings.Builder
	b.WriteString(e.Kind.String())
	b.WriteString(" error")
	if e.Op != "" {
		b.WriteString(" in ")
		b.WriteString(e.Op)
	}
	if e.File != "" {
		b.WriteString(" [file ")
		b.WriteString(e.File)
		if e.Channel != "" {
			b.WriteString(", channel ")
			b.WriteString(e.Channel)
		}
		b.WriteString("]")
	} else if e.Channel != "" {
		b.WriteString(" [channel ")
		b.WriteString(e.Channel)
		b.WriteString("]")
	}
	if e.Err != nil {
		b.WriteString(": ")
		b.WriteString(e.Err.Error())
	}
	return b.String()
}

func (e *Error) Unwrap() error { return e.Err }

// Is matches another *Error by kind so that errors.Is(err, &Error{Kind: k})
// works without comparing messages.
func (e *Error) Is(target error) bool {
	var t *Error
	if !errors.As(target, &t) {
		return false
	}
	return t.Kind == e.Kind && t.Op == "" && t.Err == nil
}

// New wraps err with kind and operation name.
func New(kind Kind, op string, err error) *Error {
	return &Error{Kind: kind, Op: op, Err: err}
}

// Configf builds a Configuration error from a format string.
func Configf(op, format string, args ...any) *Error {
	return New(Configuration, op, fmt.Errorf(format, args...))
}

// Numericalf builds a Numerical error from a format string.
func Numericalf(op, format string, args ...any) *Error {
	return New(Numerical, op, fmt.Errorf(format, args...))
}

// IOf builds an IO error from a format string.
func IOf(op, format string, args ...any) *Error {
	return New(IO, op, fmt.Errorf(format, args...))
}

// Missing builds a MissingColumn error for channel.
func Missing(op, channel string) *Error {
	return &Error{Kind: MissingColumn, Op: op, Channel: channel, Err: fmt.Errorf("column %q not found", channel)}
}

// Is reports whether any error in err's chain has the given kind.
func Is(err error, kind Kind) bool {
	return KindOf(err) == kind
}

// KindOf returns the kind of the first classified error in err's chain, or 0.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return 0
}

// WithContext returns a copy of err annotated with file and channel. Errors
// that are not classified are wrapped with fallback.
func WithContext(err error, fallback Kind, file, channel string) *Error {
	var e *Error
	if errors.As(err, &e) {
		cp := *e
		if cp.File == "" {
			cp.File = file
		}
		if cp.Channel == "" {
			cp.Channel = channel
		}
		return &cp
	}
	return &Error{Kind: fallback, File: file, Channel: channel, Err: err}
}
