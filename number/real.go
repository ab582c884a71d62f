package number

import (
	"math"
	"math/big"
)

// Real is an exact rational or an inexact float64.
type Real struct {
	inexact bool
	r       *big.Rat
	f       float64
}

// RealRat returns an exact real.
func RealRat(r *big.Rat) Real {
	return Real{r: copyRat(r)}
}

// RealFloat returns an inexact real.
func RealFloat(f float64) Real {
	return Real{inexact: true, f: f}
}

func (r Real) rat() *big.Rat {
	if r.r == nil {
		return zeroRat
	}
	return r.r
}

// IsExact reports whether r is exact.
func (r Real) IsExact() bool { return !r.inexact }

// Float64 returns the nearest float64 to r.
func (r Real) Float64() float64 {
	if r.inexact {
		return r.f
	}
	f, _ := r.rat().Float64()
	return f
}

// Rat returns a copy of the exact value of r, or nil if r is inexact.
func (r Real) Rat() *big.Rat {
	if r.inexact {
		return nil
	}
	return new(big.Rat).Set(r.rat())
}

// Number returns r as a Number.
func (r Real) Number() Number { return FromReal(r) }

// Sign returns -1, 0 or +1. NaN has sign 0.
func (r Real) Sign() int {
	if r.inexact {
		switch {
		case r.f < 0:
			return -1
		case r.f > 0:
			return 1
		}
		return 0
	}
	return r.rat().Sign()
}

// Coerce applies a binary operation to two reals. Two exact operands go
// to onRat; otherwise the exact side is converted to float64 and both go
// to onFloat.
func Coerce[T any](a, b Real, onRat func(x, y *big.Rat) T, onFloat func(x, y float64) T) T {
	switch {
	case !a.inexact && !b.inexact:
		return onRat(a.rat(), b.rat())
	case !a.inexact:
		return onFloat(a.Float64(), b.f)
	case !b.inexact:
		return onFloat(a.f, b.Float64())
	}
	return onFloat(a.f, b.f)
}

// dispatch is the unary counterpart of Coerce.
func dispatch(a Real, onRat func(x *big.Rat) *big.Rat, onFloat func(x float64) float64) Real {
	if a.inexact {
		return RealFloat(onFloat(a.f))
	}
	return Real{r: onRat(a.rat())}
}

// NumEq reports whether r = s.
func (r Real) NumEq(s Real) bool {
	return Coerce(r, s,
		func(x, y *big.Rat) bool { return x.Cmp(y) == 0 },
		func(x, y float64) bool { return x == y })
}

// Less reports whether r < s.
func (r Real) Less(s Real) bool {
	return Coerce(r, s,
		func(x, y *big.Rat) bool { return x.Cmp(y) < 0 },
		func(x, y float64) bool { return x < y })
}

// LessEq reports whether r <= s.
func (r Real) LessEq(s Real) bool {
	return Coerce(r, s,
		func(x, y *big.Rat) bool { return x.Cmp(y) <= 0 },
		func(x, y float64) bool { return x <= y })
}

// Greater reports whether r > s.
func (r Real) Greater(s Real) bool {
	return Coerce(r, s,
		func(x, y *big.Rat) bool { return x.Cmp(y) > 0 },
		func(x, y float64) bool { return x > y })
}

// GreaterEq reports whether r >= s.
func (r Real) GreaterEq(s Real) bool {
	return Coerce(r, s,
		func(x, y *big.Rat) bool { return x.Cmp(y) >= 0 },
		func(x, y float64) bool { return x >= y })
}

// Min returns the smaller of r and s; it is inexact if either is.
func (r Real) Min(s Real) Real {
	return Coerce(r, s,
		func(x, y *big.Rat) Real {
			if x.Cmp(y) <= 0 {
				return Real{r: x}
			}
			return Real{r: y}
		},
		func(x, y float64) Real { return RealFloat(math.Min(x, y)) })
}

// Max returns the larger of r and s; it is inexact if either is.
func (r Real) Max(s Real) Real {
	return Coerce(r, s,
		func(x, y *big.Rat) Real {
			if x.Cmp(y) >= 0 {
				return Real{r: x}
			}
			return Real{r: y}
		},
		func(x, y float64) Real { return RealFloat(math.Max(x, y)) })
}

// Atan2 returns the angle of the point (s, r), always inexact.
func (r Real) Atan2(s Real) Real {
	return RealFloat(math.Atan2(r.Float64(), s.Float64()))
}

// Abs returns |r|.
func (r Real) Abs() Real {
	return dispatch(r, func(x *big.Rat) *big.Rat { return new(big.Rat).Abs(x) }, math.Abs)
}

// Floor returns the largest integer not greater than r.
func (r Real) Floor() Real { return dispatch(r, ratFloor, math.Floor) }

// Ceil returns the smallest integer not less than r.
func (r Real) Ceil() Real { return dispatch(r, ratCeil, math.Ceil) }

// Trunc returns the integer part of r.
func (r Real) Trunc() Real { return dispatch(r, ratTrunc, math.Trunc) }

// Round returns the nearest integer to r, rounding halves to even.
func (r Real) Round() Real { return dispatch(r, ratRound, math.RoundToEven) }

func ratFloor(x *big.Rat) *big.Rat {
	// Euclidean division by a positive denominator rounds toward -inf.
	q := new(big.Int).Div(x.Num(), x.Denom())
	return new(big.Rat).SetInt(q)
}

func ratCeil(x *big.Rat) *big.Rat {
	return new(big.Rat).Neg(ratFloor(new(big.Rat).Neg(x)))
}

func ratTrunc(x *big.Rat) *big.Rat {
	q := new(big.Int).Quo(x.Num(), x.Denom())
	return new(big.Rat).SetInt(q)
}

var half = big.NewRat(1, 2)

func ratRound(x *big.Rat) *big.Rat {
	f := ratFloor(x)
	switch new(big.Rat).Sub(x, f).Cmp(half) {
	case -1:
		return f
	case 1:
		return f.Add(f, big.NewRat(1, 1))
	}
	if f.Num().Bit(0) == 0 {
		return f
	}
	return f.Add(f, big.NewRat(1, 1))
}

//----------------------------------------------------------------------

func isIntFloat(f float64) bool {
	return !math.IsInf(f, 0) && f == math.Trunc(f)
}

type realResult struct {
	r   Real
	err error
}

// integerOp applies an integer division family operation through Coerce.
func integerOp(a, b Real, onInt func(x, y *big.Int) *big.Int, onFloat func(x, y float64) float64) (Real, error) {
	res := Coerce(a, b,
		func(x, y *big.Rat) realResult {
			if !x.IsInt() || !y.IsInt() {
				return realResult{err: ErrNotInteger}
			}
			if y.Sign() == 0 {
				return realResult{err: ErrDivideByZero}
			}
			return realResult{r: Real{r: new(big.Rat).SetInt(onInt(x.Num(), y.Num()))}}
		},
		func(x, y float64) realResult {
			if !isIntFloat(x) || !isIntFloat(y) {
				return realResult{err: ErrNotInteger}
			}
			return realResult{r: RealFloat(onFloat(x, y))}
		})
	return res.r, res.err
}

// Quotient returns r/s truncated toward zero. Both must be integers.
func (r Real) Quotient(s Real) (Real, error) {
	return integerOp(r, s,
		func(x, y *big.Int) *big.Int { return new(big.Int).Quo(x, y) },
		func(x, y float64) float64 { return math.Trunc(x / y) })
}

// Remainder returns the remainder of r/s with the sign of r.
func (r Real) Remainder(s Real) (Real, error) {
	return integerOp(r, s,
		func(x, y *big.Int) *big.Int { return new(big.Int).Rem(x, y) },
		math.Mod)
}

// Modulo returns the remainder of r/s with the sign of s.
func (r Real) Modulo(s Real) (Real, error) {
	return integerOp(r, s,
		func(x, y *big.Int) *big.Int {
			m := new(big.Int).Rem(x, y)
			if m.Sign() != 0 && m.Sign() != y.Sign() {
				m.Add(m, y)
			}
			return m
		},
		func(x, y float64) float64 {
			m := math.Mod(x, y)
			if m != 0 && (m < 0) != (y < 0) {
				m += y
			}
			return m
		})
}

// Numerator returns the numerator of r in lowest terms.
func (r Real) Numerator() (Real, error) {
	return r.ratPart(func(x *big.Rat) *big.Int { return x.Num() })
}

// Denominator returns the denominator of r in lowest terms.
func (r Real) Denominator() (Real, error) {
	return r.ratPart(func(x *big.Rat) *big.Int { return x.Denom() })
}

func (r Real) ratPart(part func(x *big.Rat) *big.Int) (Real, error) {
	if !r.inexact {
		return Real{r: new(big.Rat).SetInt(part(r.rat()))}, nil
	}
	x := new(big.Rat).SetFloat64(r.f)
	if x == nil {
		return Real{}, ErrNoExact
	}
	f, _ := new(big.Rat).SetInt(part(x)).Float64()
	return RealFloat(f), nil
}

// String returns the external representation of r.
func (r Real) String() string {
	return FromReal(r).String()
}
