// Package datum defines the values shared by the reader, the evaluator
// and the printer. All values are immutable after construction; lists
// share structure freely.
package datum

import (
	"reflect"

	"github.com/nukata/r6-scheme-in-go/number"
)

// Datum is a Scheme value. The set of implementations is closed.
type Datum interface {
	isDatum()
}

// Symbol represents Scheme's symbol. Symbols compare by name.
type Symbol string

// Keyword symbols
var (
	Quote            = Symbol("quote")
	QuasiQuote       = Symbol("quasiquote")
	Unquote          = Symbol("unquote")
	UnquoteSplicing  = Symbol("unquote-splicing")
	Syntax           = Symbol("syntax")
	QuasiSyntax      = Symbol("quasisyntax")
	Unsyntax         = Symbol("unsyntax")
	UnsyntaxSplicing = Symbol("unsyntax-splicing")
	If               = Symbol("if")
	Begin            = Symbol("begin")
	Lambda           = Symbol("lambda")
	Define           = Symbol("define")
	SetQ             = Symbol("set!")
)

// Bool is #t or #f.
type Bool bool

// Char is a character.
type Char rune

// String is an immutable string.
type String string

// Num is a number.
type Num struct {
	number.Number
}

// Empty is the type of Nil.
type Empty struct{}

// Nil is the empty list.
var Nil Datum = Empty{}

// Pair represents a cons-cell.
type Pair struct {
	car Datum
	cdr Datum
}

// Vector is an immutable sequence of values.
type Vector struct {
	items []Datum
}

// Bytes is an immutable byte vector.
type Bytes struct {
	data []byte
}

// Ext carries values that exist only at run time, such as procedures
// and ports. Value should be comparable.
type Ext struct {
	Value any
}

func (Symbol) isDatum()  {}
func (Bool) isDatum()    {}
func (Char) isDatum()    {}
func (String) isDatum()  {}
func (Num) isDatum()     {}
func (Empty) isDatum()   {}
func (*Pair) isDatum()   {}
func (*Vector) isDatum() {}
func (*Bytes) isDatum()  {}
func (Ext) isDatum()     {}

//----------------------------------------------------------------------

// Cons returns a new pair.
func Cons(car, cdr Datum) *Pair {
	return &Pair{car, cdr}
}

// Car returns the head of the pair.
func (p *Pair) Car() Datum { return p.car }

// Cdr returns the tail of the pair.
func (p *Pair) Cdr() Datum { return p.cdr }

// Int returns an exact integer.
func Int(i int64) Num { return Num{number.Int(i)} }

// Float returns an inexact real.
func Float(f float64) Num { return Num{number.Float(f)} }

// NumOf wraps a number.
func NumOf(n number.Number) Num { return Num{n} }

// NewVector returns a vector holding a copy of items.
func NewVector(items ...Datum) *Vector {
	return &Vector{append([]Datum(nil), items...)}
}

// Len returns the number of elements.
func (v *Vector) Len() int { return len(v.items) }

// At returns the i-th element.
func (v *Vector) At(i int) Datum { return v.items[i] }

// Items returns a copy of the elements.
func (v *Vector) Items() []Datum { return append([]Datum(nil), v.items...) }

// NewBytes returns a byte vector holding a copy of b.
func NewBytes(b []byte) *Bytes {
	return &Bytes{append([]byte(nil), b...)}
}

// Len returns the number of bytes.
func (b *Bytes) Len() int { return len(b.data) }

// At returns the i-th byte.
func (b *Bytes) At(i int) byte { return b.data[i] }

// Slice returns a copy of the bytes.
func (b *Bytes) Slice() []byte { return append([]byte(nil), b.data...) }

//----------------------------------------------------------------------

// Equal reports whether a and b are structurally equal, as equal? does.
// Numbers are equal only if both exactness and value agree.
func Equal(a, b Datum) bool {
	for {
		switch x := a.(type) {
		case *Pair:
			y, ok := b.(*Pair)
			if !ok {
				return false
			}
			if x == y {
				return true
			}
			if !Equal(x.car, y.car) {
				return false
			}
			a, b = x.cdr, y.cdr
			continue
		case Num:
			y, ok := b.(Num)
			return ok && x.Equal(y.Number)
		case *Vector:
			y, ok := b.(*Vector)
			if !ok || len(x.items) != len(y.items) {
				return false
			}
			for i := range x.items {
				if !Equal(x.items[i], y.items[i]) {
					return false
				}
			}
			return true
		case *Bytes:
			y, ok := b.(*Bytes)
			return ok && string(x.data) == string(y.data)
		case Ext:
			y, ok := b.(Ext)
			return ok && sameValue(x.Value, y.Value)
		}
		return a == b
	}
}

func sameValue(x, y any) bool {
	if x == nil || y == nil {
		return x == y
	}
	if reflect.TypeOf(x) != reflect.TypeOf(y) || !reflect.TypeOf(x).Comparable() {
		return false
	}
	return x == y
}

// IsTrue reports whether d counts as true: anything but #f.
func IsTrue(d Datum) bool {
	return d != Bool(false)
}
