package runtime

import (
	"errors"
	"fmt"

	"github.com/nukata/r6-scheme-in-go/datum"
	"github.com/nukata/r6-scheme-in-go/number"
)

// ErrorKind discriminates evaluation errors.
type ErrorKind int

// Error kinds
const (
	UnboundVariable ErrorKind = iota + 1
	NotCallable
	NotList
	ArgNumError
	TypeError
	DivideByZeroError
	NilEval
	SyntaxError
	DepthExceeded
)

var kindNames = [...]string{
	UnboundVariable:   "unbound variable",
	NotCallable:       "not callable",
	NotList:           "not list",
	ArgNumError:       "bad number of arguments",
	TypeError:         "type error",
	DivideByZeroError: "divide by zero",
	NilEval:           "() cannot be evaluated",
	SyntaxError:       "bad syntax",
	DepthExceeded:     "recursion depth exceeded",
}

func (k ErrorKind) String() string {
	if k > 0 && int(k) < len(kindNames) {
		return kindNames[k]
	}
	return fmt.Sprintf("ErrorKind(%d)", int(k))
}

// Error is an evaluation error. Name is the unbound variable for
// UnboundVariable and the primitive or special form otherwise.
type Error struct {
	Kind   ErrorKind
	Name   string
	Min    int // ArgNumError: minimum argument count
	Max    int // ArgNumError: maximum argument count, -1 if unbounded
	Got    int // ArgNumError: actual argument count
	Detail string
}

// Sentinels for errors.Is; they match any Error of the same kind.
var (
	ErrUnboundVariable = &Error{Kind: UnboundVariable}
	ErrNotCallable     = &Error{Kind: NotCallable}
	ErrNotList         = &Error{Kind: NotList}
	ErrArgNum          = &Error{Kind: ArgNumError}
	ErrType            = &Error{Kind: TypeError}
	ErrDivideByZero    = &Error{Kind: DivideByZeroError}
	ErrNilEval         = &Error{Kind: NilEval}
	ErrSyntax          = &Error{Kind: SyntaxError}
	ErrDepthExceeded   = &Error{Kind: DepthExceeded}
)

func (e *Error) Error() string {
	var msg string
	switch e.Kind {
	case UnboundVariable:
		return "unbound variable: " + e.Name
	case ArgNumError:
		msg = fmt.Sprintf("expected %s, received %d", arity(e.Min, e.Max), e.Got)
	case NilEval:
		return e.Kind.String()
	default:
		msg = e.Kind.String()
		if e.Detail != "" {
			msg += ": " + e.Detail
		}
	}
	if e.Name != "" {
		return e.Name + ": " + msg
	}
	return msg
}

// Is reports whether target is an Error of the same kind.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	return ok && t.Kind == e.Kind
}

func arity(min, max int) string {
	plural := func(n int) string {
		if n == 1 {
			return "1 argument"
		}
		return fmt.Sprintf("%d arguments", n)
	}
	switch {
	case max < 0:
		return "at least " + plural(min)
	case min == max:
		return plural(min)
	}
	return fmt.Sprintf("%d to %s", min, plural(max))
}

//----------------------------------------------------------------------

func unbound(sym datum.Symbol) error {
	return &Error{Kind: UnboundVariable, Name: string(sym)}
}

func notCallable(d datum.Datum) error {
	return &Error{Kind: NotCallable, Detail: datum.Stringify(d, true)}
}

func notList(d datum.Datum) error {
	return &Error{Kind: NotList, Detail: datum.Stringify(d, true)}
}

func argNum(name string, min, max, got int) error {
	return &Error{Kind: ArgNumError, Name: name, Min: min, Max: max, Got: got}
}

func typeError(format string, args ...any) error {
	return &Error{Kind: TypeError, Detail: fmt.Sprintf(format, args...)}
}

func badSyntax(form datum.Symbol, exp datum.Datum) error {
	return &Error{Kind: SyntaxError, Name: string(form), Detail: datum.Stringify(exp, true)}
}

// withName attributes err to the named primitive, converting errors of
// the lower layers to their kinds.
func withName(name string, err error) error {
	var e *Error
	if errors.As(err, &e) {
		if e.Name != "" {
			return e
		}
		named := *e
		named.Name = name
		return &named
	}
	switch {
	case errors.Is(err, number.ErrDivideByZero):
		return &Error{Kind: DivideByZeroError, Name: name}
	case errors.Is(err, datum.ErrImproperList):
		return &Error{Kind: NotList, Name: name}
	}
	return &Error{Kind: TypeError, Name: name, Detail: err.Error()}
}
