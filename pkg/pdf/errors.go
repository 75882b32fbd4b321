package pdf

import (
	"fmt"

	"github.com/pkg/errors"
)

// Kind classifies the failures surfaced by the PDF operations.
type Kind int

const (
	Unknown Kind = iota
	ParseError
	BadPassword
	InvalidStateError
	PageRangeError
	MergeError
	IOError
)

func (k Kind) String() string {
	switch k {
	case ParseError:
		return "parse error"
	case BadPassword:
		return "bad password"
	case InvalidStateError:
		return "invalid state"
	case PageRangeError:
		return "page range error"
	case MergeError:
		return "merge error"
	case IOError:
		return "i/o error"
	}
	return "unknown error"
}

// Error is the error type returned by every operation in this module.
type Error struct {
	Kind Kind
	Op   string
	Err  error
}

func (e *Error) Error() string {
	switch {
	case e.Op != "" && e.Err != nil:
		return fmt.Sprintf("%s: %s: %v", e.Op, e.Kind, e.Err)
	case e.Err != nil:
		return fmt.Sprintf("%s: %v", e.Kind, e.Err)
	case e.Op != "":
		return fmt.Sprintf("%s: %s", e.Op, e.Kind)
	}
	return e.Kind.String()
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Is matches any *Error of the same kind, so the sentinels below can be
// used with errors.Is.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return t.Kind == e.Kind && (t.Op == "" || t.Op == e.Op)
}

var (
	ErrParse        = &Error{Kind: ParseError}
	ErrBadPassword  = &Error{Kind: BadPassword}
	ErrInvalidState = &Error{Kind: InvalidStateError}
	ErrPageRange    = &Error{Kind: PageRangeError}
	ErrMerge        = &Error{Kind: MergeError}
	ErrIO           = &Error{Kind: IOError}
)

// E builds an *Error. A cause that already carries a kind keeps it.
func E(kind Kind, op string, err error) error {
	if err == nil {
		return &Error{Kind: kind, Op: op}
	}
	var pe *Error
	if errors.As(err, &pe) && kind != MergeError {
		return err
	}
	return &Error{Kind: kind, Op: op, Err: err}
}

// Errorf is E with a formatted cause.
func Errorf(kind Kind, op string, format string, args ...interface{}) error {
	return &Error{Kind: kind, Op: op, Err: errors.Errorf(format, args...)}
}

// KindOf returns the kind of the first *Error in err's chain.
func KindOf(err error) Kind {
	var pe *Error
	if errors.As(err, &pe) {
		return pe.Kind
	}
	return Unknown
}
