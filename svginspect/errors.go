package svginspect

import (
	"errors"
	"fmt"
)

var (
	// ErrSourceUnavailable is matched by errors raised when reading the document bytes.
	ErrSourceUnavailable = errors.New("svginspect: source unavailable")

	// ErrMalformedDocument is matched by errors raised when building the tree.
	ErrMalformedDocument = errors.New("svginspect: malformed document")

	// ErrExtractionFailure is matched by unexpected failures of the analysis itself.
	// It denotes a bug rather than an invalid input.
	ErrExtractionFailure = errors.New("svginspect: extraction failure")
)

// ErrorKind classifies the failures of an inspection.
type ErrorKind uint8

const (
	SourceUnavailable ErrorKind = iota + 1
	MalformedDocument
	ExtractionFailure
)

func (k ErrorKind) String() string {
	switch k {
	case SourceUnavailable:
		return "SourceUnavailable"
	case MalformedDocument:
		return "MalformedDocument"
	case ExtractionFailure:
		return "ExtractionFailure"
	default:
		return "<unknown ErrorKind>"
	}
}

// MarshalText implements encoding.TextMarshaler.
func (k ErrorKind) MarshalText() ([]byte, error) { return []byte(k.String()), nil }

func (k ErrorKind) sentinel() error {
	switch k {
	case SourceUnavailable:
		return ErrSourceUnavailable
	case MalformedDocument:
		return ErrMalformedDocument
	case ExtractionFailure:
		return ErrExtractionFailure
	default:
		return nil
	}
}

// Error is returned by every failed inspection.
// Use errors.Is with the ErrXXX variables to check its kind,
// and errors.Unwrap to access the underlying cause.
type Error struct {
	Kind   ErrorKind
	Source string // file name, may be empty
	Err    error
}

func (e *Error) Error() string {
	msg := "svginspect: " + e.Kind.String()
	if s := e.Kind.sentinel(); s != nil {
		msg = s.Error()
	}
	if e.Source != "" {
		msg += " (" + e.Source + ")"
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *Error) Unwrap() error { return e.Err }

func (e *Error) Is(target error) bool {
	return target != nil && target == e.Kind.sentinel()
}

// KindOf returns the kind of `err`, or 0 if it is not an inspection error.
func KindOf(err error) ErrorKind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return 0
}

func newError(kind ErrorKind, source string, err error) *Error {
	return &Error{Kind: kind, Source: source, Err: err}
}

// panicError wraps a recovered value.
func panicError(v interface{}) error {
	if err, ok := v.(error); ok {
		return fmt.Errorf("unexpected panic: %w", err)
	}
	return fmt.Errorf("unexpected panic: %v", v)
}
