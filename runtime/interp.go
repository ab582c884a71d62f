// Package runtime evaluates data as Scheme expressions. An Interpreter
// owns a global environment holding the special forms and the prelude
// of primitives.
package runtime

import (
	"io"
	"log/slog"
	"os"

	"github.com/nukata/r6-scheme-in-go/datum"
)

// Interpreter evaluates expressions. It is not safe for concurrent use.
type Interpreter struct {
	global   *Environment
	log      *slog.Logger
	out      io.Writer
	maxDepth int
	depth    int
}

// Option configures an Interpreter.
type Option func(*Interpreter)

// WithLogger sets the logger for debug records. By default nothing is
// logged.
func WithLogger(l *slog.Logger) Option {
	return func(in *Interpreter) { in.log = l }
}

// WithOutput sets where display and newline write. The default is
// os.Stdout.
func WithOutput(w io.Writer) Option {
	return func(in *Interpreter) { in.out = w }
}

// WithMaxDepth bounds the nesting of non-tail evaluations; 0 means no
// bound.
func WithMaxDepth(n int) Option {
	return func(in *Interpreter) { in.maxDepth = n }
}

// New returns an interpreter whose global environment holds the
// special forms and Prelude().
func New(opts ...Option) *Interpreter {
	in := &Interpreter{
		log: slog.New(slog.DiscardHandler),
		out: os.Stdout,
	}
	for _, opt := range opts {
		opt(in)
	}
	in.global = NewEnvironment(nil)
	for _, sym := range specialForms {
		in.global.Define(sym, datum.Ext{Value: keyword(sym)})
	}
	for _, b := range Prelude() {
		in.global.Define(b.Name, b.Value)
	}
	return in
}

// Global returns the global environment.
func (in *Interpreter) Global() *Environment { return in.global }

// Eval evaluates exp in the global environment.
func (in *Interpreter) Eval(exp datum.Datum) (datum.Datum, error) {
	return in.EvalIn(exp, in.global)
}

// EvalIn evaluates exp in env.
func (in *Interpreter) EvalIn(exp datum.Datum, env *Environment) (datum.Datum, error) {
	v, err := in.eval(exp, env)
	if err != nil {
		in.log.Debug("Evaluation failed",
			slog.String("exp", datum.Stringify(exp, true)),
			slog.Any("error", err))
		return nil, err
	}
	return v, nil
}

// Apply applies the procedure fn to already evaluated arguments.
func (in *Interpreter) Apply(fn datum.Datum, args []datum.Datum) (datum.Datum, error) {
	if x, ok := fn.(datum.Ext); ok {
		switch p := x.Value.(type) {
		case *Primitive:
			return in.callPrimitive(p, args)
		case *Closure:
			env, err := p.Env.PrependDefs(p.Name, p.Params, args)
			if err != nil {
				return nil, err
			}
			in.log.Debug("Function call", slog.String("closure", p.Name), slog.Int("argc", len(args)))
			return in.evalBody(p.Body, env)
		}
	}
	return nil, notCallable(fn)
}

func (in *Interpreter) callPrimitive(p *Primitive, args []datum.Datum) (datum.Datum, error) {
	v, err := p.Func.call(in, args)
	if err != nil {
		return nil, withName(p.Name, err)
	}
	return v, nil
}

func (in *Interpreter) evalBody(body []datum.Datum, env *Environment) (datum.Datum, error) {
	result := Void
	for _, exp := range body {
		v, err := in.eval(exp, env)
		if err != nil {
			return nil, err
		}
		result = v
	}
	return result, nil
}
