// Package reader reads Scheme data from source text.
package reader

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/nukata/r6-scheme-in-go/datum"
)

var (
	// ErrIncomplete is reported when the text ends inside a datum.
	ErrIncomplete = errors.New("incomplete expression")
	// ErrSyntax is reported for malformed text.
	ErrSyntax = errors.New("syntax error")
)

// Reader reads data one by one from a tokenized source.
type Reader struct {
	tokens []token
}

// NewReader tokenizes all of src.
func NewReader(src io.Reader) (*Reader, error) {
	tokens, err := splitIntoTokens(src)
	if err != nil {
		return nil, err
	}
	return &Reader{tokens}, nil
}

// Read returns the next datum, or io.EOF if there is none.
func (r *Reader) Read() (datum.Datum, error) {
	if err := r.skipComments(); err != nil {
		return nil, err
	}
	if len(r.tokens) == 0 {
		return nil, io.EOF
	}
	return r.readFromTokens()
}

// ReadAll reads all data in src.
func ReadAll(src io.Reader) ([]datum.Datum, error) {
	r, err := NewReader(src)
	if err != nil {
		return nil, err
	}
	var result []datum.Datum
	for {
		d, err := r.Read()
		if errors.Is(err, io.EOF) {
			return result, nil
		}
		if err != nil {
			return nil, err
		}
		result = append(result, d)
	}
}

// ReadString reads the single datum in s.
func ReadString(s string) (datum.Datum, error) {
	data, err := ReadAll(strings.NewReader(s))
	if err != nil {
		return nil, err
	}
	switch len(data) {
	case 0:
		return nil, io.EOF
	case 1:
		return data[0], nil
	}
	return nil, fmt.Errorf("%w: %d data in %q", ErrSyntax, len(data), s)
}

//----------------------------------------------------------------------

func (r *Reader) peek() (token, error) {
	if len(r.tokens) == 0 {
		return token{}, ErrIncomplete
	}
	return r.tokens[0], nil
}

func (r *Reader) pop() (token, error) {
	t, err := r.peek()
	if err == nil {
		r.tokens = r.tokens[1:]
	}
	return t, err
}

// skipComments drops #; together with the datum it comments out.
func (r *Reader) skipComments() error {
	for len(r.tokens) != 0 && r.tokens[0].kind == tokDatumComment {
		r.tokens = r.tokens[1:]
		if _, err := r.readFromTokens(); err != nil {
			return err
		}
	}
	return nil
}

// readFromTokens reads a datum from the tokens, leaving the rest.
func (r *Reader) readFromTokens() (datum.Datum, error) {
	if err := r.skipComments(); err != nil {
		return nil, err
	}
	t, err := r.pop()
	if err != nil {
		return nil, err
	}
	switch t.kind {
	case tokOpen:
		return r.readList()
	case tokClose:
		return nil, fmt.Errorf("%w: unexpected ) at %s", ErrSyntax, t.pos)
	case tokDot:
		return nil, fmt.Errorf("%w: unexpected . at %s", ErrSyntax, t.pos)
	case tokVector:
		items, err := r.readItems()
		if err != nil {
			return nil, err
		}
		return datum.NewVector(items...), nil
	case tokBytes:
		return r.readBytes(t)
	case tokAbbrev: // 'e => (quote e)
		e, err := r.readFromTokens()
		if err != nil {
			return nil, err
		}
		return datum.List(t.atom, e), nil
	}
	return t.atom, nil
}

func (r *Reader) readList() (datum.Datum, error) {
	var items []datum.Datum
	for {
		if err := r.skipComments(); err != nil {
			return nil, err
		}
		t, err := r.peek()
		if err != nil {
			return nil, err
		}
		switch t.kind {
		case tokClose:
			r.tokens = r.tokens[1:]
			return datum.List(items...), nil
		case tokDot:
			if len(items) == 0 {
				return nil, fmt.Errorf("%w: unexpected . at %s", ErrSyntax, t.pos)
			}
			r.tokens = r.tokens[1:]
			tail, err := r.readFromTokens()
			if err != nil {
				return nil, err
			}
			if err := r.skipComments(); err != nil {
				return nil, err
			}
			t, err := r.pop()
			if err != nil {
				return nil, err
			}
			if t.kind != tokClose {
				return nil, fmt.Errorf("%w: ) is expected at %s", ErrSyntax, t.pos)
			}
			return datum.ListWithTail(items, tail), nil
		}
		e, err := r.readFromTokens()
		if err != nil {
			return nil, err
		}
		items = append(items, e)
	}
}

// readItems reads data up to the closing parenthesis.
func (r *Reader) readItems() ([]datum.Datum, error) {
	var items []datum.Datum
	for {
		if err := r.skipComments(); err != nil {
			return nil, err
		}
		t, err := r.peek()
		if err != nil {
			return nil, err
		}
		if t.kind == tokClose {
			r.tokens = r.tokens[1:]
			return items, nil
		}
		e, err := r.readFromTokens()
		if err != nil {
			return nil, err
		}
		items = append(items, e)
	}
}

func (r *Reader) readBytes(start token) (datum.Datum, error) {
	items, err := r.readItems()
	if err != nil {
		return nil, err
	}
	data := make([]byte, len(items))
	for i, e := range items {
		n, ok := e.(datum.Num)
		if !ok {
			return nil, fmt.Errorf("%w: bad byte %s in #vu8 at %s", ErrSyntax, datum.Stringify(e, true), start.pos)
		}
		b, ok := n.GetUint()
		if !ok || b > 255 {
			return nil, fmt.Errorf("%w: bad byte %s in #vu8 at %s", ErrSyntax, n, start.pos)
		}
		data[i] = byte(b)
	}
	return datum.NewBytes(data), nil
}
