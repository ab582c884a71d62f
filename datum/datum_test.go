package datum

import (
	"errors"
	"testing"

	"github.com/nukata/r6-scheme-in-go/number"
)

func sym(s string) Symbol { return Symbol(s) }

func compareFmt(t *testing.T, want string, d Datum) {
	t.Helper()
	if got := Stringify(d, true); got != want {
		t.Errorf("got %s, want %s", got, want)
	}
}

func TestFmt(t *testing.T) {
	compareFmt(t, "a", sym("a"))
	compareFmt(t, "()", List())
	compareFmt(t, "(a)", List(sym("a")))
	compareFmt(t, "(a b)", List(sym("a"), sym("b")))
	compareFmt(t, "(a . b)", Cons(sym("a"), sym("b")))
	compareFmt(t, "(a b . c)", ListWithTail([]Datum{sym("a"), sym("b")}, sym("c")))
	compareFmt(t, "(1 1/2 2.5)", List(Int(1), NumOf(number.Rat(1, 2)), Float(2.5)))
	compareFmt(t, "#t", Bool(true))
	compareFmt(t, `"a\"b\n"`, String("a\"b\n"))
}

func TestStringFmt(t *testing.T) {
	compareFmt(t, `"\x1;;"`, String("\x01;"))
	compareFmt(t, `"\x1f;ab"`, String("\x1fab"))
	compareFmt(t, `"\x7f;\t\\é"`, String("\x7f\t\\é"))
	compareFmt(t, `"\x2028;"`, String("\u2028"))
	if got := Stringify(String("\x01"), false); got != "\x01" {
		t.Errorf("display form = %q", got)
	}
}

func TestSymbolFmt(t *testing.T) {
	tests := []struct {
		s, want string
	}{
		{"abc", "abc"},
		{"set!", "set!"},
		{"+", "+"},
		{"...", "..."},
		{"a b", "|a b|"},
		{"1", "|1|"},
		{"+i", "|+i|"},
		{"", "||"},
		{".", "|.|"},
		{"#foo", "|#foo|"},
		{"a|b", `|a\|b|`},
		{"(x)", "|(x)|"},
		{"\x01", `|\x1;|`},
	}
	for _, tt := range tests {
		compareFmt(t, tt.want, sym(tt.s))
	}
	if got := Stringify(sym("a b"), false); got != "a b" {
		t.Errorf("display form = %q", got)
	}
}

func TestVectorFmt(t *testing.T) {
	compareFmt(t, "#(a b)", NewVector(sym("a"), sym("b")))
	compareFmt(t, "#()", NewVector())
	compareFmt(t, "#((1) #(2))", NewVector(List(Int(1)), NewVector(Int(2))))
}

func TestBytesFmt(t *testing.T) {
	compareFmt(t, "#vu8(1 2 3)", NewBytes([]byte{1, 2, 3}))
	compareFmt(t, "#vu8()", NewBytes(nil))
}

func TestCharFmt(t *testing.T) {
	tests := []struct {
		c    rune
		want string
	}{
		{'a', `#\a`},
		{' ', `#\space`},
		{0, `#\nul`},
		{'\t', `#\tab`},
		{'\n', `#\newline`},
		{'\r', `#\return`},
		{0x7f, `#\delete`},
		{'λ', `#\λ`},
		{0x85, `#\x85`},
		{'(', `#\(`},
	}
	for _, tt := range tests {
		compareFmt(t, tt.want, Char(tt.c))
	}
}

func TestQuoteAbbrev(t *testing.T) {
	compareFmt(t, "'a", List(Quote, sym("a")))
	compareFmt(t, "'(a b)", List(Quote, List(sym("a"), sym("b"))))
	compareFmt(t, "`a", List(QuasiQuote, sym("a")))
	compareFmt(t, ",a", List(Unquote, sym("a")))
	compareFmt(t, ",@a", List(UnquoteSplicing, sym("a")))

	compareFmt(t, "#'a", List(Syntax, sym("a")))
	compareFmt(t, "#'(a b)", List(Syntax, List(sym("a"), sym("b"))))
	compareFmt(t, "#`a", List(QuasiSyntax, sym("a")))
	compareFmt(t, "#,a", List(Unsyntax, sym("a")))
	compareFmt(t, "#,@a", List(UnsyntaxSplicing, sym("a")))

	// Only exact two-element forms are abbreviated.
	compareFmt(t, "(quote a b)", List(Quote, sym("a"), sym("b")))
	compareFmt(t, "(quote . a)", Cons(Quote, sym("a")))
	compareFmt(t, "(quote)", List(Quote))
	compareFmt(t, "(quote a . b)", ListWithTail([]Datum{Quote, sym("a")}, sym("b")))
	compareFmt(t, "(a 'b)", List(sym("a"), List(Quote, sym("b"))))
}

func TestDisplay(t *testing.T) {
	d := List(String("hi"), Char('x'), sym("s"))
	if got := Stringify(d, false); got != "(hi x s)" {
		t.Errorf("display = %s", got)
	}
}

func TestIter(t *testing.T) {
	xs, err := ToSlice(List(Int(1), Int(2)))
	if err != nil {
		t.Fatal(err)
	}
	if len(xs) != 2 || !Equal(xs[0], Int(1)) || !Equal(xs[1], Int(2)) {
		t.Errorf("ToSlice = %v", xs)
	}

	it := Iter(ListWithTail([]Datum{Int(1)}, Int(2)))
	if !it.Next() || !Equal(it.Value(), Int(1)) {
		t.Fatal("expected first element")
	}
	if it.Next() {
		t.Fatal("expected the walk to stop at the improper tail")
	}
	if !errors.Is(it.Err(), ErrImproperList) {
		t.Errorf("Err() = %v", it.Err())
	}
	if it.Next() {
		t.Error("iterator restarted after an error")
	}

	it = Iter(Nil)
	if it.Next() || it.Err() != nil {
		t.Error("empty list should yield nothing")
	}
	if _, err := ToSlice(sym("a")); !errors.Is(err, ErrImproperList) {
		t.Errorf("ToSlice(a) = %v", err)
	}
}

func TestImproperList(t *testing.T) {
	data := Cons(sym("a"), Cons(sym("b"), sym("c")))
	xs, tail := ImproperList(data)
	if len(xs) != 2 || xs[0] != sym("a") || xs[1] != sym("b") || tail != sym("c") {
		t.Errorf("ImproperList = %v, %v", xs, tail)
	}
	xs, tail = ImproperList(List(sym("a")))
	if len(xs) != 1 || tail != nil {
		t.Errorf("ImproperList of a proper list = %v, %v", xs, tail)
	}
}

func TestAppend(t *testing.T) {
	y := List(Int(3))
	got, err := Append(List(Int(1), Int(2)), y)
	if err != nil {
		t.Fatal(err)
	}
	compareFmt(t, "(1 2 3)", got)
	if _, err := Append(Cons(Int(1), Int(2)), y); !errors.Is(err, ErrImproperList) {
		t.Errorf("Append of improper list: %v", err)
	}
	if n, _ := Length(got); n != 3 {
		t.Errorf("Length = %d", n)
	}
}

func TestEqual(t *testing.T) {
	tests := []struct {
		a, b Datum
		want bool
	}{
		{List(Int(1), sym("a")), List(Int(1), sym("a")), true},
		{List(Int(1)), List(Float(1)), false},
		{NewVector(String("x")), NewVector(String("x")), true},
		{NewBytes([]byte{1}), NewBytes([]byte{2}), false},
		{Nil, List(), true},
		{Char('a'), Char('a'), true},
		{Cons(Int(1), Int(2)), Cons(Int(1), Int(3)), false},
		{Ext{Value: 1}, Ext{Value: 1}, true},
		{Ext{Value: []int{1}}, Ext{Value: []int{1}}, false},
	}
	for _, tt := range tests {
		if got := Equal(tt.a, tt.b); got != tt.want {
			t.Errorf("Equal(%s, %s) = %v", Stringify(tt.a, true), Stringify(tt.b, true), got)
		}
	}
}

func TestImmutableCopies(t *testing.T) {
	src := []Datum{Int(1)}
	v := NewVector(src...)
	src[0] = Int(2)
	if !Equal(v.At(0), Int(1)) {
		t.Error("vector shares caller's slice")
	}
	raw := []byte{1}
	b := NewBytes(raw)
	raw[0] = 9
	b.Slice()[0] = 7
	if b.At(0) != 1 {
		t.Error("bytes were modified")
	}
}
