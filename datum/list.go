package datum

import "errors"

// ErrImproperList is reported when a proper list was required but the
// chain of pairs ended in something other than Nil.
var ErrImproperList = errors.New("improper list")

// List builds a proper list.
func List(xs ...Datum) Datum {
	return ListWithTail(xs, Nil)
}

// ListWithTail builds a list of xs ending in tail.
func ListWithTail(xs []Datum, tail Datum) Datum {
	result := tail
	for i := len(xs) - 1; i >= 0; i-- {
		result = Cons(xs[i], result)
	}
	return result
}

// Iterator walks a list lazily. It stops at Nil, or reports
// ErrImproperList the first time it meets a tail that is neither a pair
// nor Nil. An Iterator cannot be restarted.
//
//	it := datum.Iter(list)
//	for it.Next() {
//		use(it.Value())
//	}
//	if err := it.Err(); err != nil { ... }
type Iterator struct {
	ptr Datum
	cur Datum
	err error
}

// Iter returns an iterator over the elements of d.
func Iter(d Datum) *Iterator {
	return &Iterator{ptr: d}
}

// Next advances to the next element and reports whether there is one.
func (it *Iterator) Next() bool {
	if it.err != nil || it.ptr == nil {
		return false
	}
	switch p := it.ptr.(type) {
	case *Pair:
		it.cur, it.ptr = p.car, p.cdr
		return true
	case Empty:
		it.ptr = nil
		return false
	}
	it.err = ErrImproperList
	it.ptr = nil
	return false
}

// Value returns the current element.
func (it *Iterator) Value() Datum { return it.cur }

// Err returns ErrImproperList if the walk stopped at a non-Nil tail.
func (it *Iterator) Err() error { return it.err }

// ToSlice collects the elements of a proper list.
func ToSlice(d Datum) ([]Datum, error) {
	var xs []Datum
	it := Iter(d)
	for it.Next() {
		xs = append(xs, it.Value())
	}
	return xs, it.Err()
}

// ImproperList collects the elements of a possibly improper list and
// returns the final tail if it is not Nil, or nil otherwise.
func ImproperList(d Datum) ([]Datum, Datum) {
	var xs []Datum
	for {
		switch p := d.(type) {
		case *Pair:
			xs = append(xs, p.car)
			d = p.cdr
			continue
		case Empty:
			return xs, nil
		}
		return xs, d
	}
}

// Append returns a list of the elements of x followed by y, sharing y.
func Append(x, y Datum) (Datum, error) {
	xs, err := ToSlice(x)
	if err != nil {
		return nil, err
	}
	return ListWithTail(xs, y), nil
}

// Length returns the length of a proper list.
func Length(d Datum) (int, error) {
	n := 0
	it := Iter(d)
	for it.Next() {
		n++
	}
	return n, it.Err()
}
