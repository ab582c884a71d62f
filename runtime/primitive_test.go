package runtime

import (
	"errors"
	"strings"
	"testing"

	"github.com/nukata/r6-scheme-in-go/datum"
	"github.com/nukata/r6-scheme-in-go/number"
)

func call(t *testing.T, fn PrimFunc, args ...datum.Datum) (datum.Datum, error) {
	t.Helper()
	return New().Apply(NewPrimitive("test", fn), args)
}

func TestShapeArity(t *testing.T) {
	tests := []struct {
		name     string
		fn       PrimFunc
		args     []datum.Datum
		min, max int
	}{
		{"Fold1", Fold1[number.Number]{NumConv, difference}, nil, 1, -1},
		{"Fold1Err", Fold1Err[number.Number]{NumConv, divide}, nil, 1, -1},
		{"FoldR2", FoldR2[number.Real, bool]{RealConv, BoolConv, chain(number.Real.Less)},
			[]datum.Datum{datum.Int(1)}, 2, -1},
		{"F1", F1[*datum.Pair, datum.Datum]{PairConv, AnyConv, (*datum.Pair).Car}, nil, 1, 1},
		{"F2", F2[datum.Datum, datum.Datum, bool]{AnyConv, AnyConv, BoolConv, relation(Eqv)},
			[]datum.Datum{datum.Int(1), datum.Int(2), datum.Int(3)}, 2, 2},
		{"Fixed", Fixed{1, 2, logarithm}, nil, 1, 2},
	}
	for _, tt := range tests {
		_, err := call(t, tt.fn, tt.args...)
		var e *Error
		if !errors.As(err, &e) || e.Kind != ArgNumError {
			t.Errorf("%s: got %v", tt.name, err)
			continue
		}
		if e.Name != "test" || e.Min != tt.min || e.Max != tt.max || e.Got != len(tt.args) {
			t.Errorf("%s: got %+v", tt.name, e)
		}
	}
}

func TestShapeConversion(t *testing.T) {
	fn := F1[int64, int64]{IntConv, IntConv, func(i int64) int64 { return i * 2 }}
	v, err := call(t, fn, datum.Int(21))
	if err != nil {
		t.Fatal(err)
	}
	if !datum.Equal(v, datum.Int(42)) {
		t.Errorf("got %s", datum.Stringify(v, true))
	}

	_, err = call(t, fn, datum.Float(1.5))
	if !errors.Is(err, ErrType) {
		t.Fatalf("got %v", err)
	}
	if msg := err.Error(); !strings.Contains(msg, "expected exact integer") || !strings.HasPrefix(msg, "test:") {
		t.Errorf("message = %q", msg)
	}
}

// Fold2 converts before checking the count; FoldR2 checks the count
// first.
func TestFoldOrder(t *testing.T) {
	fold2 := Fold2[number.Real, bool]{RealConv, BoolConv, chain(number.Real.NumEq)}
	foldR2 := FoldR2[number.Real, bool]{RealConv, BoolConv, chain(number.Real.NumEq)}
	arg := datum.Symbol("a")
	if _, err := call(t, fold2, arg); !errors.Is(err, ErrType) {
		t.Errorf("Fold2: %v", err)
	}
	if _, err := call(t, foldR2, arg); !errors.Is(err, ErrArgNum) {
		t.Errorf("FoldR2: %v", err)
	}
}

func TestChain(t *testing.T) {
	less := chain(func(a, b int) bool { return a < b })
	if !less(1, 2, []int{3, 4}) {
		t.Error("1 < 2 < 3 < 4")
	}
	if less(1, 2, []int{2}) {
		t.Error("1 < 2 < 2")
	}
	if less(2, 1, nil) {
		t.Error("2 < 1")
	}
}

func TestWithInterp(t *testing.T) {
	in := New()
	in.Global().Define("twice", NewPrimitive("twice", WithInterp{2, 2,
		func(in *Interpreter, args []datum.Datum) (datum.Datum, error) {
			v, err := in.Apply(args[0], args[1:])
			if err != nil {
				return nil, err
			}
			return in.Apply(args[0], []datum.Datum{v})
		}}))
	v, err := evalString(in, "(twice (lambda (x) (* x 3)) 2)")
	if err != nil {
		t.Fatal(err)
	}
	if !datum.Equal(v, datum.Int(18)) {
		t.Errorf("got %s", datum.Stringify(v, true))
	}
}

func TestPrelude(t *testing.T) {
	seen := make(map[datum.Symbol]bool)
	for _, b := range Prelude() {
		if seen[b.Name] {
			t.Errorf("%s bound twice", b.Name)
		}
		seen[b.Name] = true
		if !IsProcedure(b.Value) {
			t.Errorf("%s is not a procedure", b.Name)
		}
	}
	for _, name := range []datum.Symbol{"+", "-", "*", "/", "car", "cdr", "eqv?", "equal?",
		"number?", "real?", "integer?", "exact?", "inexact?", "=", "<", ">", "<=", ">=", "eval"} {
		if !seen[name] {
			t.Errorf("%s is missing", name)
		}
	}
}
