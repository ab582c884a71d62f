package datum

import (
	"fmt"
	"strconv"
	"strings"
	"unicode"

	"github.com/nukata/r6-scheme-in-go/number"
)

var abbreviations = map[Symbol]string{
	Quote:            "'",
	QuasiQuote:       "`",
	Unquote:          ",",
	UnquoteSplicing:  ",@",
	Syntax:           "#'",
	QuasiSyntax:      "#`",
	Unsyntax:         "#,",
	UnsyntaxSplicing: "#,@",
}

var charNames = map[rune]string{
	0x00: "nul",
	0x07: "alarm",
	0x08: "backspace",
	0x09: "tab",
	0x0a: "newline",
	0x0b: "vtab",
	0x0c: "page",
	0x0d: "return",
	0x1b: "escape",
	0x20: "space",
	0x7f: "delete",
}

// CharName returns the name of a named character such as "space".
func CharName(c rune) (string, bool) {
	name, ok := charNames[c]
	return name, ok
}

// CharByName returns the character with the given name.
func CharByName(name string) (rune, bool) {
	for c, n := range charNames {
		if n == name {
			return c, true
		}
	}
	return 0, false
}

// Abbreviation reports whether p is a two-element list headed by one of
// the quotation keywords, and if so returns its prefix and operand.
// (quote x) is abbreviated, (quote x y) and (quote . x) are not.
func Abbreviation(p *Pair) (prefix string, operand Datum, ok bool) {
	sym, isSym := p.car.(Symbol)
	if !isSym {
		return "", nil, false
	}
	prefix, ok = abbreviations[sym]
	if !ok {
		return "", nil, false
	}
	tail, isPair := p.cdr.(*Pair)
	if !isPair || tail.cdr != Nil {
		return "", nil, false
	}
	return prefix, tail.car, true
}

// Stringify returns the string representation of a value.
// Strings and characters in the value will be written in reader syntax
// if quote is true, and as their raw contents otherwise.
func Stringify(d Datum, quote bool) string {
	var b strings.Builder
	write(&b, d, quote)
	return b.String()
}

func write(b *strings.Builder, d Datum, quote bool) {
	switch x := d.(type) {
	case Symbol:
		if quote && needsBars(string(x)) {
			writeBarSymbol(b, string(x))
		} else {
			b.WriteString(string(x))
		}
	case Bool:
		if x {
			b.WriteString("#t")
		} else {
			b.WriteString("#f")
		}
	case Char:
		if quote {
			writeChar(b, rune(x))
		} else {
			b.WriteRune(rune(x))
		}
	case String:
		if quote {
			writeString(b, string(x))
		} else {
			b.WriteString(string(x))
		}
	case Num:
		b.WriteString(x.String())
	case Empty:
		b.WriteString("()")
	case *Pair:
		if prefix, operand, ok := Abbreviation(x); ok {
			b.WriteString(prefix)
			write(b, operand, quote)
			return
		}
		b.WriteByte('(')
		write(b, x.car, quote)
		rest := x.cdr
		for {
			if p, ok := rest.(*Pair); ok {
				b.WriteByte(' ')
				write(b, p.car, quote)
				rest = p.cdr
				continue
			}
			break
		}
		if rest != Nil {
			b.WriteString(" . ")
			write(b, rest, quote)
		}
		b.WriteByte(')')
	case *Vector:
		b.WriteString("#(")
		for i, item := range x.items {
			if i > 0 {
				b.WriteByte(' ')
			}
			write(b, item, quote)
		}
		b.WriteByte(')')
	case *Bytes:
		b.WriteString("#vu8(")
		for i, c := range x.data {
			if i > 0 {
				b.WriteByte(' ')
			}
			b.WriteString(strconv.Itoa(int(c)))
		}
		b.WriteByte(')')
	case Ext:
		if s, ok := x.Value.(fmt.Stringer); ok {
			b.WriteString(s.String())
		} else {
			fmt.Fprintf(b, "#<ext %T>", x.Value)
		}
	default:
		fmt.Fprintf(b, "%v", d)
	}
}

// needsBars reports whether the symbol s would not read back as itself
// unless written between bars.
func needsBars(s string) bool {
	if s == "" || s == "." || s[0] == '#' {
		return true
	}
	for _, c := range s {
		if !unicode.IsPrint(c) || unicode.IsSpace(c) || strings.ContainsRune(";()'`,\"|", c) {
			return true
		}
	}
	_, isNumber := number.Parse(s)
	return isNumber
}

func writeBarSymbol(b *strings.Builder, s string) {
	b.WriteByte('|')
	for _, c := range s {
		switch {
		case c == '|' || c == '\\':
			b.WriteByte('\\')
			b.WriteRune(c)
		case unicode.IsPrint(c):
			b.WriteRune(c)
		default:
			fmt.Fprintf(b, `\x%x;`, c)
		}
	}
	b.WriteByte('|')
}

var stringEscapes = map[rune]string{
	'"':  `\"`,
	'\\': `\\`,
	'\a': `\a`,
	'\b': `\b`,
	'\t': `\t`,
	'\n': `\n`,
	'\v': `\v`,
	'\f': `\f`,
	'\r': `\r`,
}

// writeString writes s as a string literal. Other non-printable runes
// become \x<hex>; escapes, and invalid UTF-8 bytes are written as
// U+FFFD.
func writeString(b *strings.Builder, s string) {
	b.WriteByte('"')
	for _, c := range s {
		if esc, ok := stringEscapes[c]; ok {
			b.WriteString(esc)
		} else if unicode.IsPrint(c) {
			b.WriteRune(c)
		} else {
			fmt.Fprintf(b, `\x%x;`, c)
		}
	}
	b.WriteByte('"')
}

func writeChar(b *strings.Builder, c rune) {
	b.WriteString(`#\`)
	if name, ok := charNames[c]; ok {
		b.WriteString(name)
	} else if unicode.IsPrint(c) {
		b.WriteRune(c)
	} else {
		fmt.Fprintf(b, "x%x", c)
	}
}

func (p *Pair) String() string   { return Stringify(p, true) }
func (v *Vector) String() string { return Stringify(v, true) }
func (b *Bytes) String() string  { return Stringify(b, true) }
func (c Char) String() string    { return Stringify(c, true) }
func (x Bool) String() string    { return Stringify(x, true) }
func (Empty) String() string     { return "()" }
