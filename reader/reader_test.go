package reader

import (
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/nukata/r6-scheme-in-go/datum"
)

func testRead(t *testing.T, input, expected string) {
	t.Helper()
	d, err := ReadString(input)
	if err != nil {
		t.Fatalf("ReadString(%q): %v", input, err)
	}
	if got := datum.Stringify(d, true); got != expected {
		t.Errorf("ReadString(%q) = %s, want %s", input, got, expected)
	}
}

func TestAtoms(t *testing.T) {
	testRead(t, "abc", "abc")
	testRead(t, "42", "42")
	testRead(t, "-7/14", "-1/2")
	testRead(t, "2.5", "2.5")
	testRead(t, "#e1.5", "3/2")
	testRead(t, "1+2i", "1+2i")
	testRead(t, "+", "+")
	testRead(t, "...", "...")
	testRead(t, "#t", "#t")
	testRead(t, "#false", "#f")
	testRead(t, `"a\nb"`, `"a\nb"`)
}

func TestLists(t *testing.T) {
	testRead(t, "()", "()")
	testRead(t, "(a b c)", "(a b c)")
	testRead(t, "(a . b)", "(a . b)")
	testRead(t, "(a b . (c d))", "(a b c d)")
	testRead(t, "((1 2) (3))", "((1 2) (3))")
	testRead(t, "(a\n  ; a comment\n  b)", "(a b)")
}

func TestAbbreviations(t *testing.T) {
	testRead(t, "'a", "'a")
	testRead(t, "(quote a)", "'a")
	testRead(t, "`(a ,b ,@c)", "`(a ,b ,@c)")
	testRead(t, "#'x", "#'x")
	testRead(t, "#`(x #,y #,@z)", "#`(x #,y #,@z)")

	d, err := ReadString(",@x")
	if err != nil {
		t.Fatal(err)
	}
	p := d.(*datum.Pair)
	if p.Car() != datum.UnquoteSplicing {
		t.Errorf("head = %v", p.Car())
	}
}

func TestVectors(t *testing.T) {
	testRead(t, "#(1 #(2) (3))", "#(1 #(2) (3))")
	testRead(t, "#vu8(1 2 255)", "#vu8(1 2 255)")
	testRead(t, "#vu8()", "#vu8()")
	if _, err := ReadString("#vu8(256)"); !errors.Is(err, ErrSyntax) {
		t.Errorf("#vu8(256): %v", err)
	}
}

func TestChars(t *testing.T) {
	tests := []struct {
		input string
		want  rune
	}{
		{`#\a`, 'a'},
		{`#\space`, ' '},
		{`#\newline`, '\n'},
		{`#\x41`, 'A'},
		{`#\x`, 'x'},
		{`#\(`, '('},
		{`#\λ`, 'λ'},
	}
	for _, tt := range tests {
		d, err := ReadString(tt.input)
		if err != nil {
			t.Errorf("%s: %v", tt.input, err)
			continue
		}
		if d != datum.Char(tt.want) {
			t.Errorf("%s = %v, want %q", tt.input, d, tt.want)
		}
	}
}

func TestStrings(t *testing.T) {
	tests := []struct {
		input, want string
	}{
		{`"plain"`, "plain"},
		{`"tab\there"`, "tab\there"},
		{`"\x41;B"`, "AB"},
		{`"\x0;ab"`, "\x00ab"},
		{`"\x1fab;"`, "\u1fab"},
		{`"\u00e9"`, "é"},
		{`"say \"hi\""`, `say "hi"`},
		{"\"two\nlines\"", "two\nlines"},
		{"\"joined \\\n   here\"", "joined here"},
	}
	for _, tt := range tests {
		d, err := ReadString(tt.input)
		if err != nil {
			t.Errorf("%s: %v", tt.input, err)
			continue
		}
		if d != datum.String(tt.want) {
			t.Errorf("%s = %q, want %q", tt.input, d, tt.want)
		}
	}
}

func TestBarSymbols(t *testing.T) {
	tests := []struct {
		input, want string
	}{
		{"|a b|", "a b"},
		{"||", ""},
		{"|1|", "1"},
		{`|a\|b|`, "a|b"},
		{`|\x41;\\|`, `A\`},
	}
	for _, tt := range tests {
		d, err := ReadString(tt.input)
		if err != nil {
			t.Errorf("%s: %v", tt.input, err)
			continue
		}
		if d != datum.Symbol(tt.want) {
			t.Errorf("%s = %#v, want %q", tt.input, d, tt.want)
		}
	}
	testRead(t, "(a|b c|)", "(a |b c|)")
}

func TestDatumComment(t *testing.T) {
	testRead(t, "(a #;(b c) d)", "(a d)")
	testRead(t, "(a #;b)", "(a)")
	testRead(t, "#;skipped kept", "kept")
	testRead(t, "(a . #;b c)", "(a . c)")
}

func TestReadAll(t *testing.T) {
	data, err := ReadAll(strings.NewReader("(define x 1) x ; trailing\n'y"))
	if err != nil {
		t.Fatal(err)
	}
	if len(data) != 3 {
		t.Fatalf("got %d data", len(data))
	}

	r, err := NewReader(strings.NewReader("1 2"))
	if err != nil {
		t.Fatal(err)
	}
	for _, want := range []string{"1", "2"} {
		d, err := r.Read()
		if err != nil || datum.Stringify(d, true) != want {
			t.Errorf("Read() = %v, %v, want %s", d, err, want)
		}
	}
	if _, err := r.Read(); err != io.EOF {
		t.Errorf("Read() at end = %v", err)
	}
}

func TestIncomplete(t *testing.T) {
	for _, input := range []string{"(a b", "'", `"abc`, "#(1", "(a . ", `#\`, `"\x41`, "|a b"} {
		if _, err := ReadString(input); !errors.Is(err, ErrIncomplete) {
			t.Errorf("%q: %v, want ErrIncomplete", input, err)
		}
	}
}

func TestSyntaxErrors(t *testing.T) {
	for _, input := range []string{")", "(. a)", "(a . b c)", "#q", `#\bogus`, `"\q"`, `"\x41"`, `|\q|`, "1 2"} {
		if _, err := ReadString(input); !errors.Is(err, ErrSyntax) {
			t.Errorf("%q: %v, want ErrSyntax", input, err)
		}
	}
}

// Printed data read back as equal data.
func TestRoundTrip(t *testing.T) {
	inputs := []string{
		"(a (b . c) #(1 2/3 -4.5) \"s\\\"q\" #\\space #vu8(7))",
		"`(x ,y ,@(z))",
		"(1+2i -0.5i +inf.0 #t #f ())",
		"(#\\x0 \"\\x01;\")",
	}
	for _, input := range inputs {
		d, err := ReadString(input)
		if err != nil {
			t.Fatalf("%s: %v", input, err)
		}
		printed := datum.Stringify(d, true)
		again, err := ReadString(printed)
		if err != nil {
			t.Fatalf("reading back %s: %v", printed, err)
		}
		if !datum.Equal(d, again) {
			t.Errorf("%s printed as %s read back as %s", input, printed, datum.Stringify(again, true))
		}
	}

	data := []datum.Datum{
		datum.String("\x01;"),
		datum.String("\x1fab;"),
		datum.String("\x7f;x"),
		datum.String("tab\tnul\x00 bell\a \u2028 \"q\" \\"),
		datum.Symbol("a b"),
		datum.Symbol("1"),
		datum.Symbol("|x|"),
		datum.Symbol(""),
		datum.Symbol("#t"),
		datum.List(datum.Quote, datum.Symbol("( )")),
	}
	for _, d := range data {
		printed := datum.Stringify(d, true)
		again, err := ReadString(printed)
		if err != nil {
			t.Errorf("reading back %s: %v", printed, err)
			continue
		}
		if !datum.Equal(d, again) {
			t.Errorf("%#v printed as %s read back as %#v", d, printed, again)
		}
	}
}
