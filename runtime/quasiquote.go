package runtime

import (
	"github.com/nukata/r6-scheme-in-go/datum"
)

// quasiquote expands a template at nesting depth, which is 1 for the
// operand of the outermost quasiquote. Nested quasiquote raises the
// depth and unquote lowers it; operands are evaluated only at depth 1.
func (in *Interpreter) quasiquote(x datum.Datum, depth int, env *Environment) (datum.Datum, error) {
	switch t := x.(type) {
	case *datum.Pair:
		if op, arg, ok := quasiForm(t); ok {
			switch op {
			case datum.Unquote: // ,e
				if depth == 1 {
					return in.eval(arg, env)
				}
				return in.rebuild(op, arg, depth-1, env)
			case datum.QuasiQuote: // `e
				return in.rebuild(op, arg, depth+1, env)
			}
		}
		if head, ok := t.Car().(*datum.Pair); ok {
			if op, arg, ok := quasiForm(head); ok && op == datum.UnquoteSplicing { // ,@e
				return in.splice(arg, t.Cdr(), depth, env)
			}
		}
		car, err := in.quasiquote(t.Car(), depth, env)
		if err != nil {
			return nil, err
		}
		cdr, err := in.quasiquote(t.Cdr(), depth, env)
		if err != nil {
			return nil, err
		}
		return datum.Cons(car, cdr), nil
	case *datum.Vector:
		list, err := in.quasiquote(datum.List(t.Items()...), depth, env)
		if err != nil {
			return nil, err
		}
		items, err := datum.ToSlice(list)
		if err != nil {
			return nil, notList(list)
		}
		return datum.NewVector(items...), nil
	}
	return x, nil
}

// rebuild keeps a nested (op arg) form, expanding arg at depth.
func (in *Interpreter) rebuild(op datum.Symbol, arg datum.Datum, depth int, env *Environment) (datum.Datum, error) {
	v, err := in.quasiquote(arg, depth, env)
	if err != nil {
		return nil, err
	}
	return datum.List(op, v), nil
}

// splice expands (,@arg . rest).
func (in *Interpreter) splice(arg, rest datum.Datum, depth int, env *Environment) (datum.Datum, error) {
	if depth > 1 {
		head, err := in.rebuild(datum.UnquoteSplicing, arg, depth-1, env)
		if err != nil {
			return nil, err
		}
		tail, err := in.quasiquote(rest, depth, env)
		if err != nil {
			return nil, err
		}
		return datum.Cons(head, tail), nil
	}
	v, err := in.eval(arg, env)
	if err != nil {
		return nil, err
	}
	tail, err := in.quasiquote(rest, depth, env)
	if err != nil {
		return nil, err
	}
	spliced, err := datum.Append(v, tail)
	if err != nil {
		return nil, &Error{Kind: NotList, Name: string(datum.UnquoteSplicing), Detail: datum.Stringify(v, true)}
	}
	return spliced, nil
}

// quasiForm reports whether p is (op arg) for one of the quasiquote
// keywords.
func quasiForm(p *datum.Pair) (datum.Symbol, datum.Datum, bool) {
	sym, ok := p.Car().(datum.Symbol)
	if !ok {
		return "", nil, false
	}
	switch sym {
	case datum.QuasiQuote, datum.Unquote, datum.UnquoteSplicing:
	default:
		return "", nil, false
	}
	rest, ok := p.Cdr().(*datum.Pair)
	if !ok || rest.Cdr() != datum.Nil {
		return "", nil, false
	}
	return sym, rest.Car(), true
}
