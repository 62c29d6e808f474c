package arith

import (
	"errors"
	"fmt"
)

// Sentinel errors for broad classification.
var (
	ErrType     = errors.New("operands must be whole numbers")
	ErrOverflow = errors.New("result may exceed integer limits")
)

// ErrorKind is a coarse-grained categorization for arithmetic failures.
type ErrorKind string

const (
	KindType     ErrorKind = "type"
	KindOverflow ErrorKind = "overflow"
)

// Error wraps an underlying error with the failing operation and its kind.
type Error struct {
	Op   string
	Kind ErrorKind
	Err  error
}

func (e *Error) Error() string {
	if e == nil {
		return "<nil>"
	}
	if e.Err == nil {
		return fmt.Sprintf("%s: %s", e.Op, e.Kind)
	}
	return fmt.Sprintf("%s: %s: %v", e.Op, e.Kind, e.Err)
}

func (e *Error) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// Is lets errors.Is match the kind sentinel even when Err carries more detail.
func (e *Error) Is(target error) bool {
	if e == nil {
		return false
	}
	switch target {
	case ErrType:
		return e.Kind == KindType
	case ErrOverflow:
		return e.Kind == KindOverflow
	}
	return false
}

// IsKind reports whether err, or anything it wraps, is an *Error of the given kind.
func IsKind(err error, kind ErrorKind) bool {
	var ae *Error
	if errors.As(err, &ae) {
		return ae.Kind == kind
	}
	return false
}

// KindOf returns the kind of the first *Error in err's chain, or "" if none.
func KindOf(err error) ErrorKind {
	var ae *Error
	if errors.As(err, &ae) {
		return ae.Kind
	}
	return ""
}

func typeError(op string, detail error) error {
	return &Error{Op: op, Kind: KindType, Err: detail}
}

func overflowError(op string) error {
	return &Error{Op: op, Kind: KindOverflow, Err: ErrOverflow}
}
