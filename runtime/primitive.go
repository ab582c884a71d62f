package runtime

import (
	"github.com/nukata/r6-scheme-in-go/datum"
	"github.com/nukata/r6-scheme-in-go/number"
)

// PrimFunc is the body of a primitive. It is implemented only by the
// shapes below, each of which checks the argument count, converts the
// arguments, calls a plain Go function and wraps its result.
type PrimFunc interface {
	call(in *Interpreter, args []datum.Datum) (datum.Datum, error)
}

// Conv converts between data and Go values of type T.
type Conv[T any] struct {
	Name   string // type name used in error messages
	Unwrap func(datum.Datum) (T, bool)
	Wrap   func(T) datum.Datum
}

func (c Conv[T]) unwrap(i int, d datum.Datum) (T, error) {
	v, ok := c.Unwrap(d)
	if !ok {
		return v, typeError("argument %d: expected %s, got %s", i+1, c.Name, datum.Stringify(d, true))
	}
	return v, nil
}

func unwrapAll[T any](c Conv[T], args []datum.Datum) ([]T, error) {
	vs := make([]T, len(args))
	for i, a := range args {
		v, err := c.unwrap(i, a)
		if err != nil {
			return nil, err
		}
		vs[i] = v
	}
	return vs, nil
}

func checkArity(args []datum.Datum, min, max int) error {
	if len(args) < min || (max >= 0 && len(args) > max) {
		return argNum("", min, max, len(args))
	}
	return nil
}

// Conversions
var (
	AnyConv = Conv[datum.Datum]{
		Name:   "any",
		Unwrap: func(d datum.Datum) (datum.Datum, bool) { return d, true },
		Wrap:   func(d datum.Datum) datum.Datum { return d },
	}
	NumConv = Conv[number.Number]{
		Name: "number",
		Unwrap: func(d datum.Datum) (number.Number, bool) {
			n, ok := d.(datum.Num)
			return n.Number, ok
		},
		Wrap: func(n number.Number) datum.Datum { return datum.NumOf(n) },
	}
	RealConv = Conv[number.Real]{
		Name: "real",
		Unwrap: func(d datum.Datum) (number.Real, bool) {
			n, ok := d.(datum.Num)
			if !ok {
				return number.Real{}, false
			}
			return n.GetReal()
		},
		Wrap: func(r number.Real) datum.Datum { return datum.NumOf(number.FromReal(r)) },
	}
	IntConv = Conv[int64]{
		Name: "exact integer",
		Unwrap: func(d datum.Datum) (int64, bool) {
			n, ok := d.(datum.Num)
			if !ok {
				return 0, false
			}
			return n.GetInt()
		},
		Wrap: func(i int64) datum.Datum { return datum.Int(i) },
	}
	BoolConv = Conv[bool]{
		Name: "boolean",
		Unwrap: func(d datum.Datum) (bool, bool) {
			b, ok := d.(datum.Bool)
			return bool(b), ok
		},
		Wrap: func(b bool) datum.Datum { return datum.Bool(b) },
	}
	PairConv = Conv[*datum.Pair]{
		Name: "pair",
		Unwrap: func(d datum.Datum) (*datum.Pair, bool) {
			p, ok := d.(*datum.Pair)
			return p, ok
		},
		Wrap: func(p *datum.Pair) datum.Datum { return p },
	}
	SymbolConv = Conv[datum.Symbol]{
		Name: "symbol",
		Unwrap: func(d datum.Datum) (datum.Symbol, bool) {
			s, ok := d.(datum.Symbol)
			return s, ok
		},
		Wrap: func(s datum.Symbol) datum.Datum { return s },
	}
	StringConv = Conv[string]{
		Name: "string",
		Unwrap: func(d datum.Datum) (string, bool) {
			s, ok := d.(datum.String)
			return string(s), ok
		},
		Wrap: func(s string) datum.Datum { return datum.String(s) },
	}
	VectorConv = Conv[*datum.Vector]{
		Name: "vector",
		Unwrap: func(d datum.Datum) (*datum.Vector, bool) {
			v, ok := d.(*datum.Vector)
			return v, ok
		},
		Wrap: func(v *datum.Vector) datum.Datum { return v },
	}
	BytesConv = Conv[*datum.Bytes]{
		Name: "bytevector",
		Unwrap: func(d datum.Datum) (*datum.Bytes, bool) {
			b, ok := d.(*datum.Bytes)
			return b, ok
		},
		Wrap: func(b *datum.Bytes) datum.Datum { return b },
	}
)

//----------------------------------------------------------------------

// Fold takes any number of arguments, as + and list do.
type Fold[T any] struct {
	Arg Conv[T]
	Fn  func(xs []T) T
}

func (f Fold[T]) call(_ *Interpreter, args []datum.Datum) (datum.Datum, error) {
	xs, err := unwrapAll(f.Arg, args)
	if err != nil {
		return nil, err
	}
	return f.Arg.Wrap(f.Fn(xs)), nil
}

// Fold1 takes at least one argument, as - does.
type Fold1[T any] struct {
	Arg Conv[T]
	Fn  func(x T, rest []T) T
}

func (f Fold1[T]) call(_ *Interpreter, args []datum.Datum) (datum.Datum, error) {
	if err := checkArity(args, 1, -1); err != nil {
		return nil, err
	}
	xs, err := unwrapAll(f.Arg, args)
	if err != nil {
		return nil, err
	}
	return f.Arg.Wrap(f.Fn(xs[0], xs[1:])), nil
}

// Fold1Err is Fold1 for functions that can fail, such as /.
type Fold1Err[T any] struct {
	Arg Conv[T]
	Fn  func(x T, rest []T) (T, error)
}

func (f Fold1Err[T]) call(_ *Interpreter, args []datum.Datum) (datum.Datum, error) {
	if err := checkArity(args, 1, -1); err != nil {
		return nil, err
	}
	xs, err := unwrapAll(f.Arg, args)
	if err != nil {
		return nil, err
	}
	v, err := f.Fn(xs[0], xs[1:])
	if err != nil {
		return nil, err
	}
	return f.Arg.Wrap(v), nil
}

// Fold2 takes at least two arguments. Arguments are converted before
// the count is checked.
type Fold2[T, R any] struct {
	Arg Conv[T]
	Ret Conv[R]
	Fn  func(x, y T, rest []T) R
}

func (f Fold2[T, R]) call(_ *Interpreter, args []datum.Datum) (datum.Datum, error) {
	xs, err := unwrapAll(f.Arg, args)
	if err != nil {
		return nil, err
	}
	if err := checkArity(args, 2, -1); err != nil {
		return nil, err
	}
	return f.Ret.Wrap(f.Fn(xs[0], xs[1], xs[2:])), nil
}

// FoldR2 is Fold2 with the count checked first.
type FoldR2[T, R any] struct {
	Arg Conv[T]
	Ret Conv[R]
	Fn  func(x, y T, rest []T) R
}

func (f FoldR2[T, R]) call(_ *Interpreter, args []datum.Datum) (datum.Datum, error) {
	if err := checkArity(args, 2, -1); err != nil {
		return nil, err
	}
	xs, err := unwrapAll(f.Arg, args)
	if err != nil {
		return nil, err
	}
	return f.Ret.Wrap(f.Fn(xs[0], xs[1], xs[2:])), nil
}

// F1 takes exactly one argument.
type F1[T, R any] struct {
	Arg Conv[T]
	Ret Conv[R]
	Fn  func(T) R
}

func (f F1[T, R]) call(_ *Interpreter, args []datum.Datum) (datum.Datum, error) {
	if err := checkArity(args, 1, 1); err != nil {
		return nil, err
	}
	x, err := f.Arg.unwrap(0, args[0])
	if err != nil {
		return nil, err
	}
	return f.Ret.Wrap(f.Fn(x)), nil
}

// R1 takes exactly one argument and can fail.
type R1[T, R any] struct {
	Arg Conv[T]
	Ret Conv[R]
	Fn  func(T) (R, error)
}

func (f R1[T, R]) call(_ *Interpreter, args []datum.Datum) (datum.Datum, error) {
	if err := checkArity(args, 1, 1); err != nil {
		return nil, err
	}
	x, err := f.Arg.unwrap(0, args[0])
	if err != nil {
		return nil, err
	}
	v, err := f.Fn(x)
	if err != nil {
		return nil, err
	}
	return f.Ret.Wrap(v), nil
}

// F2 takes exactly two arguments and can fail.
type F2[A, B, R any] struct {
	Arg1 Conv[A]
	Arg2 Conv[B]
	Ret  Conv[R]
	Fn   func(A, B) (R, error)
}

func (f F2[A, B, R]) call(_ *Interpreter, args []datum.Datum) (datum.Datum, error) {
	if err := checkArity(args, 2, 2); err != nil {
		return nil, err
	}
	a, err := f.Arg1.unwrap(0, args[0])
	if err != nil {
		return nil, err
	}
	b, err := f.Arg2.unwrap(1, args[1])
	if err != nil {
		return nil, err
	}
	v, err := f.Fn(a, b)
	if err != nil {
		return nil, err
	}
	return f.Ret.Wrap(v), nil
}

// Fixed takes between Min and Max unconverted arguments; Max < 0 means
// no upper bound.
type Fixed struct {
	Min, Max int
	Fn       func(args []datum.Datum) (datum.Datum, error)
}

func (f Fixed) call(_ *Interpreter, args []datum.Datum) (datum.Datum, error) {
	if err := checkArity(args, f.Min, f.Max); err != nil {
		return nil, err
	}
	return f.Fn(args)
}

// WithInterp is Fixed for primitives that need the interpreter.
type WithInterp struct {
	Min, Max int
	Fn       func(in *Interpreter, args []datum.Datum) (datum.Datum, error)
}

func (f WithInterp) call(in *Interpreter, args []datum.Datum) (datum.Datum, error) {
	if err := checkArity(args, f.Min, f.Max); err != nil {
		return nil, err
	}
	return f.Fn(in, args)
}
