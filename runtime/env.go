package runtime

import (
	"github.com/nukata/r6-scheme-in-go/datum"
)

// Environment represents Scheme's environment: a frame of bindings and
// the frame it extends. The outermost frame is the interpreter's global
// environment.
type Environment struct {
	vars   map[datum.Symbol]datum.Datum
	parent *Environment
}

// NewEnvironment returns an empty frame extending parent.
func NewEnvironment(parent *Environment) *Environment {
	return &Environment{vars: make(map[datum.Symbol]datum.Datum), parent: parent}
}

// Parent returns the enclosing frame, or nil for the global frame.
func (env *Environment) Parent() *Environment { return env.parent }

// LookFor searches the environment chain, innermost frame first, and
// returns the frame that binds key, or nil.
func (env *Environment) LookFor(key datum.Symbol) *Environment {
	for ; env != nil; env = env.parent {
		if _, ok := env.vars[key]; ok {
			return env
		}
	}
	return nil
}

// Lookup returns the value bound to key.
func (env *Environment) Lookup(key datum.Symbol) (datum.Datum, error) {
	frame := env.LookFor(key)
	if frame == nil {
		return nil, unbound(key)
	}
	return frame.vars[key], nil
}

// Define binds key in this frame, replacing any binding it had here.
func (env *Environment) Define(key datum.Symbol, val datum.Datum) {
	env.vars[key] = val
}

// Set rebinds the existing binding of key found by Lookup's rule.
func (env *Environment) Set(key datum.Symbol, val datum.Datum) error {
	frame := env.LookFor(key)
	if frame == nil {
		return unbound(key)
	}
	frame.vars[key] = val
	return nil
}

// PrependDefs builds a new frame on env which binds params to args.
// params is a proper list of symbols, a single symbol taking all the
// arguments, or an improper list whose tail symbol takes the rest.
func (env *Environment) PrependDefs(name string, params datum.Datum, args []datum.Datum) (*Environment, error) {
	names, rest := datum.ImproperList(params)
	switch {
	case len(args) < len(names):
		return nil, argNum(name, len(names), maxArgs(len(names), rest), len(args))
	case rest == nil && len(args) > len(names):
		return nil, argNum(name, len(names), len(names), len(args))
	}
	frame := NewEnvironment(env)
	for i, p := range names {
		frame.vars[p.(datum.Symbol)] = args[i]
	}
	if rest != nil {
		frame.vars[rest.(datum.Symbol)] = datum.List(args[len(names):]...)
	}
	return frame, nil
}

func maxArgs(n int, rest datum.Datum) int {
	if rest != nil {
		return -1
	}
	return n
}

// checkParams verifies that params has the shape PrependDefs accepts.
func checkParams(params datum.Datum) bool {
	names, rest := datum.ImproperList(params)
	seen := make(map[datum.Symbol]bool)
	if rest != nil {
		names = append(names, rest)
	}
	for _, p := range names {
		sym, ok := p.(datum.Symbol)
		if !ok || seen[sym] {
			return false
		}
		seen[sym] = true
	}
	return true
}
