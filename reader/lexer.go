package reader

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"text/scanner"
	"unicode"
	"unicode/utf8"

	"github.com/nukata/r6-scheme-in-go/datum"
	"github.com/nukata/r6-scheme-in-go/number"
)

type tokenKind int

const (
	tokAtom tokenKind = iota
	tokOpen
	tokClose
	tokDot
	tokVector       // #(
	tokBytes        // #vu8(
	tokAbbrev       // ' ` , ,@ #' #` #, #,@
	tokDatumComment // #;
)

// token is a lexical unit. atom holds the value of a tokAtom and the
// keyword symbol of a tokAbbrev.
type token struct {
	kind tokenKind
	atom datum.Datum
	pos  scanner.Position
}

var prefixes = map[string]datum.Symbol{
	"'":   datum.Quote,
	"`":   datum.QuasiQuote,
	",":   datum.Unquote,
	",@":  datum.UnquoteSplicing,
	"#'":  datum.Syntax,
	"#`":  datum.QuasiSyntax,
	"#,":  datum.Unsyntax,
	"#,@": datum.UnsyntaxSplicing,
}

func isIdentRune(ch rune, i int) bool {
	return unicode.IsPrint(ch) && !unicode.IsSpace(ch) && !strings.ContainsRune(";()'`,\"|", ch)
}

// splitIntoTokens splits a source text into tokens.
func splitIntoTokens(src io.Reader) ([]token, error) {
	var (
		scn    scanner.Scanner
		result []token
		err    error
	)
	scn.Init(src)
	scn.Mode = scanner.ScanIdents
	scn.IsIdentRune = isIdentRune
	scn.Error = func(s *scanner.Scanner, msg string) {
		if err == nil {
			err = fmt.Errorf("%w: %s at %s", ErrSyntax, msg, s.Position)
		}
	}
	scn.Whitespace ^= 1 << '\n' // Don't skip new lines.
	scn.Whitespace |= 1 << '\f'
	add := func(kind tokenKind, atom datum.Datum) {
		result = append(result, token{kind, atom, scn.Position})
	}
	for tok := scn.Scan(); tok != scanner.EOF && err == nil; tok = scn.Scan() {
		switch tok {
		case ';': // Skip ;-comment
			for ch := scn.Next(); ch != scanner.EOF && ch != '\n'; ch = scn.Next() {
			}
		case '\n':
		case '(':
			add(tokOpen, nil)
		case ')':
			add(tokClose, nil)
		case '\'', '`':
			add(tokAbbrev, prefixes[string(tok)])
		case ',':
			if scn.Peek() == '@' {
				scn.Next()
				add(tokAbbrev, datum.UnquoteSplicing)
			} else {
				add(tokAbbrev, datum.Unquote)
			}
		case '"':
			s, e := scanString(&scn)
			if e != nil {
				return nil, e
			}
			add(tokAtom, datum.String(s))
		case '|':
			s, e := scanBarSymbol(&scn)
			if e != nil {
				return nil, e
			}
			add(tokAtom, datum.Symbol(s))
		case scanner.Ident:
			kind, atom, e := classify(&scn, scn.TokenText())
			if e != nil {
				return nil, fmt.Errorf("%w at %s", e, scn.Position)
			}
			add(kind, atom)
		default:
			return nil, fmt.Errorf("%w: illegal char %q at %s", ErrSyntax, tok, scn.Position)
		}
	}
	return result, err
}

// classify turns an identifier-like token into a token, consuming the
// delimiter that follows # where it belongs to the token.
func classify(scn *scanner.Scanner, text string) (tokenKind, datum.Datum, error) {
	switch text {
	case ".":
		return tokDot, nil, nil
	case "#t", "#true":
		return tokAtom, datum.Bool(true), nil
	case "#f", "#false":
		return tokAtom, datum.Bool(false), nil
	case "#":
		switch scn.Peek() {
		case '(':
			scn.Next()
			return tokVector, nil, nil
		case '\'', '`':
			return tokAbbrev, prefixes["#"+string(scn.Next())], nil
		case ',':
			scn.Next()
			if scn.Peek() == '@' {
				scn.Next()
				return tokAbbrev, datum.UnsyntaxSplicing, nil
			}
			return tokAbbrev, datum.Unsyntax, nil
		case ';':
			scn.Next()
			return tokDatumComment, nil, nil
		}
	case "#vu8":
		if scn.Peek() == '(' {
			scn.Next()
			return tokBytes, nil, nil
		}
	case `#\`: // a delimiter character such as #\( or #\space written as #\
		ch := scn.Next()
		if ch == scanner.EOF {
			return 0, nil, ErrIncomplete
		}
		return tokAtom, datum.Char(ch), nil
	}
	if name, ok := strings.CutPrefix(text, `#\`); ok {
		c, err := charLiteral(name)
		return tokAtom, c, err
	}
	if n, ok := number.Parse(text); ok {
		return tokAtom, datum.NumOf(n), nil
	}
	if strings.HasPrefix(text, "#") {
		return 0, nil, fmt.Errorf("%w: bad syntax %s", ErrSyntax, text)
	}
	return tokAtom, datum.Symbol(text), nil
}

func charLiteral(name string) (datum.Datum, error) {
	if utf8.RuneCountInString(name) == 1 {
		r, _ := utf8.DecodeRuneInString(name)
		return datum.Char(r), nil
	}
	if c, ok := datum.CharByName(name); ok {
		return datum.Char(c), nil
	}
	if hex, ok := strings.CutPrefix(name, "x"); ok {
		if n, err := strconv.ParseUint(hex, 16, 32); err == nil && utf8.ValidRune(rune(n)) {
			return datum.Char(rune(n)), nil
		}
	}
	return nil, fmt.Errorf(`%w: unknown character #\%s`, ErrSyntax, name)
}

// scanString reads the rest of a string literal after its opening quote.
// Escapes are those of R6RS, where \x<hex>; needs its semicolon, plus
// \uHHHH and \UHHHHHHHH.
func scanString(scn *scanner.Scanner) (string, error) {
	var b strings.Builder
	for {
		ch := scn.Next()
		switch ch {
		case scanner.EOF:
			return "", ErrIncomplete
		case '"':
			return b.String(), nil
		case '\\':
		default:
			b.WriteRune(ch)
			continue
		}
		ch = scn.Next()
		switch ch {
		case scanner.EOF:
			return "", ErrIncomplete
		case 'a':
			b.WriteByte('\a')
		case 'b':
			b.WriteByte('\b')
		case 't':
			b.WriteByte('\t')
		case 'n':
			b.WriteByte('\n')
		case 'v':
			b.WriteByte('\v')
		case 'f':
			b.WriteByte('\f')
		case 'r':
			b.WriteByte('\r')
		case '"', '\\':
			b.WriteRune(ch)
		case '\n': // line continuation
			for scn.Peek() == ' ' || scn.Peek() == '\t' {
				scn.Next()
			}
		case 'x', 'u', 'U':
			r, err := scanHex(scn, ch)
			if err != nil {
				return "", err
			}
			b.WriteRune(r)
		default:
			return "", fmt.Errorf("%w: unknown escape \\%c at %s", ErrSyntax, ch, scn.Pos())
		}
	}
}

// scanBarSymbol reads the rest of a |...| symbol after its opening bar.
func scanBarSymbol(scn *scanner.Scanner) (string, error) {
	var b strings.Builder
	for {
		ch := scn.Next()
		switch ch {
		case scanner.EOF:
			return "", ErrIncomplete
		case '|':
			return b.String(), nil
		case '\\':
			switch esc := scn.Next(); esc {
			case scanner.EOF:
				return "", ErrIncomplete
			case '|', '\\':
				b.WriteRune(esc)
			case 'x':
				r, err := scanHex(scn, esc)
				if err != nil {
					return "", err
				}
				b.WriteRune(r)
			default:
				return "", fmt.Errorf("%w: unknown escape \\%c at %s", ErrSyntax, esc, scn.Pos())
			}
		default:
			b.WriteRune(ch)
		}
	}
}

// scanHex reads the digits of \x<hex>; \uHHHH or \UHHHHHHHH.
func scanHex(scn *scanner.Scanner, kind rune) (rune, error) {
	limit := 8
	if kind == 'u' {
		limit = 4
	}
	var digits []rune
	for len(digits) < limit && isHexDigit(scn.Peek()) {
		digits = append(digits, scn.Next())
	}
	if kind == 'x' {
		switch scn.Peek() {
		case scanner.EOF:
			return 0, ErrIncomplete
		case ';':
		default:
			return 0, fmt.Errorf("%w: \\x escape without ; at %s", ErrSyntax, scn.Pos())
		}
		scn.Next()
	}
	n, err := strconv.ParseUint(string(digits), 16, 32)
	if err != nil || !utf8.ValidRune(rune(n)) {
		return 0, fmt.Errorf("%w: bad \\%c escape at %s", ErrSyntax, kind, scn.Pos())
	}
	return rune(n), nil
}

func isHexDigit(ch rune) bool {
	return '0' <= ch && ch <= '9' || 'a' <= ch && ch <= 'f' || 'A' <= ch && ch <= 'F'
}
