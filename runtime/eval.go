package runtime

import (
	"log/slog"

	"github.com/nukata/r6-scheme-in-go/datum"
)

var specialForms = []datum.Symbol{
	datum.Quote, datum.If, datum.Begin, datum.Lambda, datum.Define,
	datum.SetQ, datum.QuasiQuote, datum.Unquote, datum.UnquoteSplicing,
}

// eval evaluates exp in env. Tail positions continue the loop instead
// of recursing, so only nested evaluations count against maxDepth.
func (in *Interpreter) eval(exp datum.Datum, env *Environment) (datum.Datum, error) {
	if in.maxDepth > 0 {
		in.depth++
		defer func() { in.depth-- }()
		if in.depth > in.maxDepth {
			return nil, &Error{Kind: DepthExceeded, Detail: datum.Stringify(exp, true)}
		}
	}
	for {
		switch x := exp.(type) {
		case datum.Symbol:
			v, err := env.Lookup(x)
			if err != nil {
				return nil, err
			}
			if kw, ok := keywordOf(v); ok { // a keyword is not a value
				return nil, badSyntax(kw, x)
			}
			return v, nil
		case datum.Empty:
			return nil, &Error{Kind: NilEval}
		case *datum.Pair:
		default: // as a number, #t, #f, a string etc.
			return exp, nil
		}
		form := exp.(*datum.Pair)
		kw, isKeyword := in.keyword(form.Car(), env)
		if !isKeyword {
			fn, args, err := in.evalApplication(form, env)
			if err != nil {
				return nil, err
			}
			c, ok := fn.(datum.Ext).Value.(*Closure)
			if !ok {
				return in.callPrimitive(fn.(datum.Ext).Value.(*Primitive), args)
			}
			frame, err := c.Env.PrependDefs(c.Name, c.Params, args)
			if err != nil {
				return nil, err
			}
			in.log.Debug("Function call", slog.String("closure", c.Name), slog.Int("argc", len(args)))
			last, err := in.evalAllButLast(c.Body, frame)
			if err != nil {
				return nil, err
			}
			exp, env = last, frame
			continue
		}
		operands, err := datum.ToSlice(form.Cdr())
		if err != nil {
			return nil, badSyntax(kw, form)
		}
		switch kw {
		case datum.Quote: // (quote e)
			if len(operands) != 1 {
				return nil, badSyntax(kw, form)
			}
			return operands[0], nil
		case datum.If: // (if e1 e2 e3) or (if e1 e2)
			if len(operands) != 2 && len(operands) != 3 {
				return nil, badSyntax(kw, form)
			}
			test, err := in.eval(operands[0], env)
			if err != nil {
				return nil, err
			}
			switch {
			case datum.IsTrue(test):
				exp = operands[1]
			case len(operands) == 3:
				exp = operands[2]
			default:
				return Void, nil
			}
		case datum.Begin: // (begin e...)
			if len(operands) == 0 {
				return Void, nil
			}
			last, err := in.evalAllButLast(operands, env)
			if err != nil {
				return nil, err
			}
			exp = last
		case datum.Lambda: // (lambda params e...)
			return in.lambda(form, "", operands, env)
		case datum.Define: // (define var e) or (define (var . params) e...)
			return in.define(form, operands, env)
		case datum.SetQ: // (set! var e)
			if len(operands) != 2 {
				return nil, badSyntax(kw, form)
			}
			sym, ok := operands[0].(datum.Symbol)
			if !ok {
				return nil, badSyntax(kw, form)
			}
			if env.LookFor(sym) == nil {
				return nil, unbound(sym)
			}
			v, err := in.eval(operands[1], env)
			if err != nil {
				return nil, err
			}
			if err := env.Set(sym, v); err != nil {
				return nil, err
			}
			return Void, nil
		case datum.QuasiQuote: // (quasiquote e)
			if len(operands) != 1 {
				return nil, badSyntax(kw, form)
			}
			return in.quasiquote(operands[0], 1, env)
		default: // unquote and unquote-splicing outside quasiquote
			return nil, badSyntax(kw, form)
		}
	}
}

// keyword reports whether head names a special form in env.
func (in *Interpreter) keyword(head datum.Datum, env *Environment) (datum.Symbol, bool) {
	sym, ok := head.(datum.Symbol)
	if !ok {
		return "", false
	}
	frame := env.LookFor(sym)
	if frame == nil {
		return "", false
	}
	return keywordOf(frame.vars[sym])
}

// evalApplication evaluates the head of form to a procedure and then
// its arguments from left to right.
func (in *Interpreter) evalApplication(form *datum.Pair, env *Environment) (datum.Datum, []datum.Datum, error) {
	fn, err := in.eval(form.Car(), env)
	if err != nil {
		return nil, nil, err
	}
	if !IsProcedure(fn) {
		return nil, nil, notCallable(fn)
	}
	exps, err := datum.ToSlice(form.Cdr())
	if err != nil {
		return nil, nil, notList(form)
	}
	args := make([]datum.Datum, len(exps))
	for i, e := range exps {
		if args[i], err = in.eval(e, env); err != nil {
			return nil, nil, err
		}
	}
	return fn, args, nil
}

// evalAllButLast evaluates body except its last form, which it returns
// unevaluated for the caller to evaluate in tail position.
func (in *Interpreter) evalAllButLast(body []datum.Datum, env *Environment) (datum.Datum, error) {
	for _, e := range body[:len(body)-1] {
		if _, err := in.eval(e, env); err != nil {
			return nil, err
		}
	}
	return body[len(body)-1], nil
}

func (in *Interpreter) lambda(form datum.Datum, name string, operands []datum.Datum, env *Environment) (datum.Datum, error) {
	if len(operands) < 2 || !checkParams(operands[0]) {
		return nil, badSyntax(datum.Lambda, form)
	}
	c := &Closure{Name: name, Params: operands[0], Body: operands[1:], Env: env}
	return datum.Ext{Value: c}, nil
}

func (in *Interpreter) define(form datum.Datum, operands []datum.Datum, env *Environment) (datum.Datum, error) {
	if len(operands) == 0 {
		return nil, badSyntax(datum.Define, form)
	}
	var (
		sym datum.Symbol
		val datum.Datum
		err error
	)
	switch target := operands[0].(type) {
	case datum.Symbol:
		sym = target
		switch len(operands) {
		case 1:
			val = Void
		case 2:
			if val, err = in.eval(operands[1], env); err != nil {
				return nil, err
			}
		default:
			return nil, badSyntax(datum.Define, form)
		}
	case *datum.Pair:
		var ok bool
		if sym, ok = target.Car().(datum.Symbol); !ok {
			return nil, badSyntax(datum.Define, form)
		}
		lambda := append([]datum.Datum{target.Cdr()}, operands[1:]...)
		if val, err = in.lambda(form, string(sym), lambda, env); err != nil {
			return nil, err
		}
	default:
		return nil, badSyntax(datum.Define, form)
	}
	in.log.Debug("Define", slog.String("name", string(sym)))
	env.Define(sym, val)
	return Void, nil
}
