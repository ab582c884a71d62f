package runtime

import (
	"errors"
	"testing"

	"github.com/nukata/r6-scheme-in-go/datum"
	"github.com/nukata/r6-scheme-in-go/reader"
)

func TestEnvironmentLookup(t *testing.T) {
	global := NewEnvironment(nil)
	global.Define("x", datum.Int(1))
	global.Define("y", datum.Int(2))
	inner := NewEnvironment(global)
	inner.Define("x", datum.Int(10))

	if v, err := inner.Lookup("x"); err != nil || !datum.Equal(v, datum.Int(10)) {
		t.Errorf("inner x = %v, %v", v, err)
	}
	if v, err := inner.Lookup("y"); err != nil || !datum.Equal(v, datum.Int(2)) {
		t.Errorf("inner y = %v, %v", v, err)
	}
	if inner.LookFor("y") != global {
		t.Error("y should be found in the global frame")
	}
	if inner.Parent() != global || global.Parent() != nil {
		t.Error("bad parent links")
	}
	_, err := inner.Lookup("z")
	var e *Error
	if !errors.As(err, &e) || e.Kind != UnboundVariable || e.Name != "z" {
		t.Errorf("Lookup(z) = %v", err)
	}
}

func TestEnvironmentSet(t *testing.T) {
	global := NewEnvironment(nil)
	global.Define("x", datum.Int(1))
	inner := NewEnvironment(global)
	if err := inner.Set("x", datum.Int(5)); err != nil {
		t.Fatal(err)
	}
	if v, _ := global.Lookup("x"); !datum.Equal(v, datum.Int(5)) {
		t.Errorf("global x = %v", v)
	}
	if inner.LookFor("x") != global {
		t.Error("Set created a binding in the inner frame")
	}
	if err := inner.Set("nope", datum.Nil); !errors.Is(err, ErrUnboundVariable) {
		t.Errorf("Set(nope) = %v", err)
	}
}

func TestPrependDefs(t *testing.T) {
	params := func(s string) datum.Datum {
		t.Helper()
		d, err := reader.ReadString(s)
		if err != nil {
			t.Fatal(err)
		}
		return d
	}
	args := []datum.Datum{datum.Int(1), datum.Int(2), datum.Int(3)}
	tests := []struct {
		params string
		want   map[datum.Symbol]string
	}{
		{"(a b c)", map[datum.Symbol]string{"a": "1", "b": "2", "c": "3"}},
		{"all", map[datum.Symbol]string{"all": "(1 2 3)"}},
		{"(a . rest)", map[datum.Symbol]string{"a": "1", "rest": "(2 3)"}},
		{"(a b c . rest)", map[datum.Symbol]string{"rest": "()"}},
	}
	for _, tt := range tests {
		frame, err := NewEnvironment(nil).PrependDefs("f", params(tt.params), args)
		if err != nil {
			t.Errorf("%s: %v", tt.params, err)
			continue
		}
		for name, want := range tt.want {
			v, err := frame.Lookup(name)
			if err != nil || datum.Stringify(v, true) != want {
				t.Errorf("%s: %s = %v, want %s", tt.params, name, v, want)
			}
		}
	}

	_, err := NewEnvironment(nil).PrependDefs("f", params("(a b)"), args)
	var e *Error
	if !errors.As(err, &e) || e.Kind != ArgNumError || e.Name != "f" || e.Min != 2 || e.Max != 2 || e.Got != 3 {
		t.Errorf("too many arguments: %v", err)
	}
}

func TestCheckParams(t *testing.T) {
	for _, s := range []string{"()", "x", "(x y)", "(x . y)"} {
		d, _ := reader.ReadString(s)
		if !checkParams(d) {
			t.Errorf("%s rejected", s)
		}
	}
	for _, s := range []string{"1", "(1)", "(x x)", "(x . x)", "(x . 1)"} {
		d, _ := reader.ReadString(s)
		if checkParams(d) {
			t.Errorf("%s accepted", s)
		}
	}
}
