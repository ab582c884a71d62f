package runtime

import (
	"fmt"
	"unicode/utf8"

	"github.com/nukata/r6-scheme-in-go/datum"
	"github.com/nukata/r6-scheme-in-go/number"
)

// Binding is an entry of the prelude.
type Binding struct {
	Name  datum.Symbol
	Value datum.Datum
}

func prim(name string, fn PrimFunc) Binding {
	return Binding{datum.Symbol(name), NewPrimitive(name, fn)}
}

// Prelude returns the primitives every interpreter starts with.
func Prelude() []Binding {
	return []Binding{
		prim("+", Fold[number.Number]{NumConv, sum}),
		prim("*", Fold[number.Number]{NumConv, product}),
		prim("-", Fold1[number.Number]{NumConv, difference}),
		prim("/", Fold1Err[number.Number]{NumConv, divide}),

		prim("=", Fold2[number.Real, bool]{RealConv, BoolConv, chain(number.Real.NumEq)}),
		prim("<", FoldR2[number.Real, bool]{RealConv, BoolConv, chain(number.Real.Less)}),
		prim(">", FoldR2[number.Real, bool]{RealConv, BoolConv, chain(number.Real.Greater)}),
		prim("<=", FoldR2[number.Real, bool]{RealConv, BoolConv, chain(number.Real.LessEq)}),
		prim(">=", FoldR2[number.Real, bool]{RealConv, BoolConv, chain(number.Real.GreaterEq)}),

		prim("number?", F1[datum.Datum, bool]{AnyConv, BoolConv, is[datum.Num]}),
		prim("complex?", F1[datum.Datum, bool]{AnyConv, BoolConv, is[datum.Num]}),
		prim("real?", F1[datum.Datum, bool]{AnyConv, BoolConv, isNumber(number.Number.IsReal)}),
		prim("rational?", F1[datum.Datum, bool]{AnyConv, BoolConv, isNumber(number.Number.IsRational)}),
		prim("integer?", F1[datum.Datum, bool]{AnyConv, BoolConv, isNumber(number.Number.IsInteger)}),
		prim("exact?", F1[number.Number, bool]{NumConv, BoolConv, number.Number.IsExact}),
		prim("inexact?", F1[number.Number, bool]{NumConv, BoolConv, number.Number.IsInexact}),
		prim("zero?", F1[number.Number, bool]{NumConv, BoolConv, number.Number.IsZero}),
		prim("positive?", F1[number.Real, bool]{RealConv, BoolConv, func(r number.Real) bool { return r.Sign() > 0 }}),
		prim("negative?", F1[number.Real, bool]{RealConv, BoolConv, func(r number.Real) bool { return r.Sign() < 0 }}),

		prim("exp", F1[number.Number, number.Number]{NumConv, NumConv, number.Number.Exp}),
		prim("log", Fixed{1, 2, logarithm}),
		prim("sqrt", F1[number.Number, number.Number]{NumConv, NumConv, number.Number.Sqrt}),
		prim("sin", F1[number.Number, number.Number]{NumConv, NumConv, number.Number.Sin}),
		prim("cos", F1[number.Number, number.Number]{NumConv, NumConv, number.Number.Cos}),
		prim("tan", F1[number.Number, number.Number]{NumConv, NumConv, number.Number.Tan}),
		prim("asin", F1[number.Number, number.Number]{NumConv, NumConv, number.Number.Asin}),
		prim("acos", F1[number.Number, number.Number]{NumConv, NumConv, number.Number.Acos}),
		prim("atan", Fixed{1, 2, arctangent}),
		prim("sinh", F1[number.Number, number.Number]{NumConv, NumConv, number.Number.Sinh}),
		prim("cosh", F1[number.Number, number.Number]{NumConv, NumConv, number.Number.Cosh}),
		prim("tanh", F1[number.Number, number.Number]{NumConv, NumConv, number.Number.Tanh}),
		prim("expt", F2[number.Number, number.Number, number.Number]{NumConv, NumConv, NumConv, number.Number.Pow}),

		prim("exact", R1[number.Number, number.Number]{NumConv, NumConv, number.Number.ToExact}),
		prim("inexact->exact", R1[number.Number, number.Number]{NumConv, NumConv, number.Number.ToExact}),
		prim("inexact", F1[number.Number, number.Number]{NumConv, NumConv, number.Number.ToInexact}),
		prim("exact->inexact", F1[number.Number, number.Number]{NumConv, NumConv, number.Number.ToInexact}),
		prim("floor", F1[number.Real, number.Real]{RealConv, RealConv, number.Real.Floor}),
		prim("ceiling", F1[number.Real, number.Real]{RealConv, RealConv, number.Real.Ceil}),
		prim("round", F1[number.Real, number.Real]{RealConv, RealConv, number.Real.Round}),
		prim("truncate", F1[number.Real, number.Real]{RealConv, RealConv, number.Real.Trunc}),
		prim("abs", F1[number.Real, number.Real]{RealConv, RealConv, number.Real.Abs}),
		prim("min", Fold1[number.Real]{RealConv, extremum(number.Real.Min)}),
		prim("max", Fold1[number.Real]{RealConv, extremum(number.Real.Max)}),
		prim("quotient", F2[number.Real, number.Real, number.Real]{RealConv, RealConv, RealConv, number.Real.Quotient}),
		prim("remainder", F2[number.Real, number.Real, number.Real]{RealConv, RealConv, RealConv, number.Real.Remainder}),
		prim("modulo", F2[number.Real, number.Real, number.Real]{RealConv, RealConv, RealConv, number.Real.Modulo}),
		prim("numerator", R1[number.Real, number.Real]{RealConv, RealConv, number.Real.Numerator}),
		prim("denominator", R1[number.Real, number.Real]{RealConv, RealConv, number.Real.Denominator}),
		prim("magnitude", F1[number.Number, number.Number]{NumConv, NumConv, number.Number.Magnitude}),
		prim("angle", F1[number.Number, number.Number]{NumConv, NumConv, number.Number.Angle}),
		prim("real-part", F1[number.Number, number.Number]{NumConv, NumConv, number.Number.RealPart}),
		prim("imag-part", F1[number.Number, number.Number]{NumConv, NumConv, number.Number.ImagPart}),
		prim("make-rectangular", F2[number.Real, number.Real, number.Number]{RealConv, RealConv, NumConv,
			func(re, im number.Real) (number.Number, error) { return number.MakeRectangular(re, im), nil }}),
		prim("make-polar", F2[number.Real, number.Real, number.Number]{RealConv, RealConv, NumConv,
			func(mag, ang number.Real) (number.Number, error) { return number.Polar(mag.Float64(), ang.Float64()), nil }}),
		prim("number->string", F1[number.Number, string]{NumConv, StringConv, number.Number.String}),

		prim("car", F1[*datum.Pair, datum.Datum]{PairConv, AnyConv, (*datum.Pair).Car}),
		prim("cdr", F1[*datum.Pair, datum.Datum]{PairConv, AnyConv, (*datum.Pair).Cdr}),
		prim("cons", F2[datum.Datum, datum.Datum, datum.Datum]{AnyConv, AnyConv, AnyConv,
			func(a, b datum.Datum) (datum.Datum, error) { return datum.Cons(a, b), nil }}),
		prim("list", Fold[datum.Datum]{AnyConv, func(xs []datum.Datum) datum.Datum { return datum.List(xs...) }}),
		prim("length", R1[datum.Datum, int64]{AnyConv, IntConv, length}),
		prim("append", Fixed{0, -1, appendLists}),
		prim("eqv?", F2[datum.Datum, datum.Datum, bool]{AnyConv, AnyConv, BoolConv, relation(Eqv)}),
		prim("eq?", F2[datum.Datum, datum.Datum, bool]{AnyConv, AnyConv, BoolConv, relation(Eqv)}),
		prim("equal?", F2[datum.Datum, datum.Datum, bool]{AnyConv, AnyConv, BoolConv, relation(datum.Equal)}),
		prim("not", F1[datum.Datum, bool]{AnyConv, BoolConv, func(d datum.Datum) bool { return d == datum.Bool(false) }}),

		prim("pair?", F1[datum.Datum, bool]{AnyConv, BoolConv, is[*datum.Pair]}),
		prim("null?", F1[datum.Datum, bool]{AnyConv, BoolConv, is[datum.Empty]}),
		prim("symbol?", F1[datum.Datum, bool]{AnyConv, BoolConv, is[datum.Symbol]}),
		prim("boolean?", F1[datum.Datum, bool]{AnyConv, BoolConv, is[datum.Bool]}),
		prim("char?", F1[datum.Datum, bool]{AnyConv, BoolConv, is[datum.Char]}),
		prim("string?", F1[datum.Datum, bool]{AnyConv, BoolConv, is[datum.String]}),
		prim("vector?", F1[datum.Datum, bool]{AnyConv, BoolConv, is[*datum.Vector]}),
		prim("bytevector?", F1[datum.Datum, bool]{AnyConv, BoolConv, is[*datum.Bytes]}),
		prim("procedure?", F1[datum.Datum, bool]{AnyConv, BoolConv, IsProcedure}),

		prim("vector", Fold[datum.Datum]{AnyConv, func(xs []datum.Datum) datum.Datum { return datum.NewVector(xs...) }}),
		prim("vector-length", F1[*datum.Vector, int64]{VectorConv, IntConv, func(v *datum.Vector) int64 { return int64(v.Len()) }}),
		prim("vector-ref", F2[*datum.Vector, int64, datum.Datum]{VectorConv, IntConv, AnyConv, vectorRef}),
		prim("bytevector-length", F1[*datum.Bytes, int64]{BytesConv, IntConv, func(b *datum.Bytes) int64 { return int64(b.Len()) }}),
		prim("bytevector-u8-ref", F2[*datum.Bytes, int64, int64]{BytesConv, IntConv, IntConv, bytesRef}),
		prim("string-length", F1[string, int64]{StringConv, IntConv, func(s string) int64 { return int64(utf8.RuneCountInString(s)) }}),
		prim("symbol->string", F1[datum.Symbol, string]{SymbolConv, StringConv, func(s datum.Symbol) string { return string(s) }}),
		prim("string->symbol", F1[string, datum.Symbol]{StringConv, SymbolConv, func(s string) datum.Symbol { return datum.Symbol(s) }}),

		prim("eval", WithInterp{1, 1, func(in *Interpreter, args []datum.Datum) (datum.Datum, error) {
			return in.Eval(args[0])
		}}),
		prim("apply", WithInterp{2, -1, apply}),
		prim("display", WithInterp{1, 1, func(in *Interpreter, args []datum.Datum) (datum.Datum, error) {
			fmt.Fprint(in.out, datum.Stringify(args[0], false))
			return Void, nil
		}}),
		prim("newline", WithInterp{0, 0, func(in *Interpreter, _ []datum.Datum) (datum.Datum, error) {
			fmt.Fprintln(in.out)
			return Void, nil
		}}),
	}
}

//----------------------------------------------------------------------

func sum(xs []number.Number) number.Number {
	result := number.Int(0)
	for _, x := range xs {
		result = result.Add(x)
	}
	return result
}

func product(xs []number.Number) number.Number {
	result := number.Int(1)
	for _, x := range xs {
		result = result.Mul(x)
	}
	return result
}

func difference(x number.Number, rest []number.Number) number.Number {
	if len(rest) == 0 {
		return x.Neg()
	}
	for _, y := range rest {
		x = x.Sub(y)
	}
	return x
}

func divide(x number.Number, rest []number.Number) (number.Number, error) {
	if len(rest) == 0 {
		return x.Recip()
	}
	for _, y := range rest {
		var err error
		if x, err = x.Div(y); err != nil {
			return number.Number{}, err
		}
	}
	return x, nil
}

// chain makes a relation hold for every adjacent pair of arguments.
func chain[T any](rel func(a, b T) bool) func(x, y T, rest []T) bool {
	return func(x, y T, rest []T) bool {
		if !rel(x, y) {
			return false
		}
		for _, z := range rest {
			if !rel(y, z) {
				return false
			}
			y = z
		}
		return true
	}
}

func extremum(pick func(a, b number.Real) number.Real) func(number.Real, []number.Real) number.Real {
	return func(x number.Real, rest []number.Real) number.Real {
		for _, y := range rest {
			x = pick(x, y)
		}
		return x
	}
}

func relation(rel func(a, b datum.Datum) bool) func(a, b datum.Datum) (bool, error) {
	return func(a, b datum.Datum) (bool, error) { return rel(a, b), nil }
}

// isNumber makes a type predicate for numbers satisfying pred.
func isNumber(pred func(number.Number) bool) func(datum.Datum) bool {
	return func(d datum.Datum) bool {
		n, ok := d.(datum.Num)
		return ok && pred(n.Number)
	}
}

func is[T datum.Datum](d datum.Datum) bool {
	_, ok := d.(T)
	return ok
}

func logarithm(args []datum.Datum) (datum.Datum, error) {
	ns, err := unwrapAll(NumConv, args)
	if err != nil {
		return nil, err
	}
	if len(ns) == 2 {
		if base, ok := ns[1].GetInt(); ok {
			switch base {
			case 2:
				return datum.NumOf(ns[0].Log2()), nil
			case 10:
				return datum.NumOf(ns[0].Log10()), nil
			}
		}
		return datum.NumOf(ns[0].LogBase(ns[1])), nil
	}
	return datum.NumOf(ns[0].Log()), nil
}

func arctangent(args []datum.Datum) (datum.Datum, error) {
	ns, err := unwrapAll(NumConv, args)
	if err != nil {
		return nil, err
	}
	if len(ns) == 1 {
		return datum.NumOf(ns[0].Atan()), nil
	}
	v, err := ns[0].Atan2(ns[1])
	if err != nil {
		return nil, err
	}
	return datum.NumOf(v), nil
}

func length(d datum.Datum) (int64, error) {
	n, err := datum.Length(d)
	if err != nil {
		return 0, notList(d)
	}
	return int64(n), nil
}

func appendLists(args []datum.Datum) (datum.Datum, error) {
	if len(args) == 0 {
		return datum.Nil, nil
	}
	result := args[len(args)-1]
	for i := len(args) - 2; i >= 0; i-- {
		var err error
		if result, err = datum.Append(args[i], result); err != nil {
			return nil, notList(args[i])
		}
	}
	return result, nil
}

func vectorRef(v *datum.Vector, i int64) (datum.Datum, error) {
	if i < 0 || i >= int64(v.Len()) {
		return nil, typeError("index %d out of range", i)
	}
	return v.At(int(i)), nil
}

func bytesRef(b *datum.Bytes, i int64) (int64, error) {
	if i < 0 || i >= int64(b.Len()) {
		return 0, typeError("index %d out of range", i)
	}
	return int64(b.At(int(i))), nil
}

// apply calls (apply f a ... list).
func apply(in *Interpreter, args []datum.Datum) (datum.Datum, error) {
	last := args[len(args)-1]
	rest, err := datum.ToSlice(last)
	if err != nil {
		return nil, notList(last)
	}
	spread := append(append([]datum.Datum(nil), args[1:len(args)-1]...), rest...)
	return in.Apply(args[0], spread)
}
