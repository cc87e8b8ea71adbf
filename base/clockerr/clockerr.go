// Package clockerr classifies the errors returned by clock operations.
package clockerr

import (
	"errors"
	"fmt"
)

type Kind int

const (
	KindUnknown Kind = iota
	KindUsage
	KindFormat
	KindScan
	KindEngineContract
)

var (
	ErrUsage          = errors.New("usage error")
	ErrFormat         = errors.New("format error")
	ErrScan           = errors.New("scan error")
	ErrEngineContract = errors.New("engine contract violation")
)

func (k Kind) String() string {
	switch k {
	case KindUsage:
		return "usage"
	case KindFormat:
		return "format"
	case KindScan:
		return "scan"
	case KindEngineContract:
		return "engine"
	default:
		return "unknown"
	}
}

// ParseKind is the inverse of Kind.String. Unrecognized names yield
// KindUnknown.
func ParseKind(s string) Kind {
	for k := KindUsage; k <= KindEngineContract; k++ {
		if k.String() == s {
			return k
		}
	}
	return KindUnknown
}

func (k Kind) sentinel() error {
	switch k {
	case KindUsage:
		return ErrUsage
	case KindFormat:
		return ErrFormat
	case KindScan:
		return ErrScan
	case KindEngineContract:
		return ErrEngineContract
	default:
		return nil
	}
}

// Error is a classified clock error. Subject holds the offending input
// (template, date text, argument) for diagnostics.
type Error struct {
	Kind    Kind
	Msg     string
	Subject string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil && e.Kind == KindEngineContract {
		return fmt.Sprintf("%s: %v", e.Msg, e.Err)
	}
	return e.Msg
}

func (e *Error) Unwrap() error { return e.Err }

// Is reports whether target is the sentinel matching e's kind.
func (e *Error) Is(target error) bool {
	s := e.Kind.sentinel()
	return s != nil && s == target
}

func Usage(format string, args ...any) error {
	return &Error{Kind: KindUsage, Msg: fmt.Sprintf(format, args...)}
}

func Format(template string, err error) error {
	return &Error{
		Kind:    KindFormat,
		Msg:     fmt.Sprintf("bad format string %q", template),
		Subject: template,
		Err:     err,
	}
}

func Scan(text string, err error) error {
	return &Error{
		Kind:    KindScan,
		Msg:     fmt.Sprintf("unable to convert date-time string %q", text),
		Subject: text,
		Err:     err,
	}
}

func EngineContract(subject string, err error) error {
	return &Error{
		Kind:    KindEngineContract,
		Msg:     "engine contract violated",
		Subject: subject,
		Err:     err,
	}
}

// KindOf returns the kind of the first classified error in err's chain.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindUnknown
}
