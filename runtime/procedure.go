package runtime

import (
	"github.com/nukata/r6-scheme-in-go/datum"
)

// Closure represents a compound procedure.
type Closure struct {
	Name   string // set by (define (name ...) ...), empty for lambda
	Params datum.Datum
	Body   []datum.Datum
	Env    *Environment
}

func (c *Closure) String() string {
	if c.Name == "" {
		return "#<closure>"
	}
	return "#<closure " + c.Name + ">"
}

// Primitive is a built-in procedure.
type Primitive struct {
	Name string
	Func PrimFunc
}

func (p *Primitive) String() string { return "#<primitive " + p.Name + ">" }

// keyword is the value bound to the name of a special form.
type keyword datum.Symbol

func (k keyword) String() string { return "#<syntax " + string(k) + ">" }

type voidValue struct{}

func (voidValue) String() string { return "#<void>" }

// Void is the value of forms whose result is unspecified.
var Void datum.Datum = datum.Ext{Value: voidValue{}}

// NewPrimitive returns a procedure value for fn.
func NewPrimitive(name string, fn PrimFunc) datum.Datum {
	return datum.Ext{Value: &Primitive{name, fn}}
}

// IsProcedure reports whether d can be applied.
func IsProcedure(d datum.Datum) bool {
	x, ok := d.(datum.Ext)
	if !ok {
		return false
	}
	switch x.Value.(type) {
	case *Closure, *Primitive:
		return true
	}
	return false
}

func keywordOf(d datum.Datum) (datum.Symbol, bool) {
	x, ok := d.(datum.Ext)
	if !ok {
		return "", false
	}
	k, ok := x.Value.(keyword)
	return datum.Symbol(k), ok
}

// Eqv reports whether a and b are equivalent as eqv? does: numbers
// agree in exactness and value, pairs vectors and bytevectors are the
// same object, and other atoms compare by content.
func Eqv(a, b datum.Datum) bool {
	switch x := a.(type) {
	case datum.Num:
		y, ok := b.(datum.Num)
		return ok && x.Equal(y.Number)
	case datum.Ext:
		return datum.Equal(a, b)
	}
	return a == b
}
