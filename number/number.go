// Package number implements the numeric tower of the interpreter:
// exact complex numbers over rationals and inexact complex numbers over
// float64, with exactness contagion between them.
package number

import (
	"errors"
	"math"
	"math/big"
)

var (
	// ErrDivideByZero is returned when dividing by an exact zero.
	ErrDivideByZero = errors.New("divide by zero")

	// ErrComplexAtan2 is returned by the two-argument arctangent of
	// non-real numbers.
	ErrComplexAtan2 = errors.New("atan2 is not defined for complex numbers")

	// ErrNotInteger is returned when an integer is required.
	ErrNotInteger = errors.New("not an integer")

	// ErrNoExact is returned when an infinity or NaN is made exact.
	ErrNoExact = errors.New("no exact representation")
)

var zeroRat = new(big.Rat)

// Number is an exact or an inexact complex number.
// Exactness belongs to the whole value, not to each component.
// The zero value is an exact zero.
//
// Rationals held by a Number are never modified after construction.
type Number struct {
	inexact bool
	re, im  *big.Rat   // exact parts; nil means zero
	z       complex128 // inexact value
}

// Int returns an exact integer.
func Int(i int64) Number {
	return Number{re: big.NewRat(i, 1)}
}

// BigInt returns an exact integer.
func BigInt(i *big.Int) Number {
	return Number{re: new(big.Rat).SetInt(i)}
}

// Rat returns the exact rational num/den. It panics if den is 0.
func Rat(num, den int64) Number {
	return Number{re: big.NewRat(num, den)}
}

// Exact returns the exact complex number re+im*i.
// Either part may be nil, meaning zero.
func Exact(re, im *big.Rat) Number {
	return exact(copyRat(re), copyRat(im))
}

func exact(re, im *big.Rat) Number {
	return Number{re: re, im: im}
}

func copyRat(x *big.Rat) *big.Rat {
	if x == nil {
		return nil
	}
	return new(big.Rat).Set(x)
}

// Float returns an inexact real number.
func Float(f float64) Number {
	return Number{inexact: true, z: complex(f, 0)}
}

// Inexact returns the inexact complex number re+im*i.
func Inexact(re, im float64) Number {
	return Number{inexact: true, z: complex(re, im)}
}

// Complex returns the inexact complex number z.
func Complex(z complex128) Number {
	return Number{inexact: true, z: z}
}

// Polar returns the inexact complex number with the given magnitude and angle.
func Polar(mag, ang float64) Number {
	if ang == 0 {
		return Float(mag)
	}
	return Inexact(mag*math.Cos(ang), mag*math.Sin(ang))
}

// FromReal returns r as a Number of the same exactness.
func FromReal(r Real) Number {
	if r.inexact {
		return Float(r.f)
	}
	return exact(r.rat(), nil)
}

func (n Number) reRat() *big.Rat {
	if n.re == nil {
		return zeroRat
	}
	return n.re
}

func (n Number) imRat() *big.Rat {
	if n.im == nil {
		return zeroRat
	}
	return n.im
}

// IsExact reports whether n is exact.
func (n Number) IsExact() bool { return !n.inexact }

// IsInexact reports whether n is inexact.
func (n Number) IsInexact() bool { return n.inexact }

// IsReal reports whether the imaginary part of n is zero.
func (n Number) IsReal() bool {
	if n.inexact {
		return imag(n.z) == 0
	}
	return n.imRat().Sign() == 0
}

// IsZero reports whether n is zero.
func (n Number) IsZero() bool {
	if n.inexact {
		return n.z == 0
	}
	return n.reRat().Sign() == 0 && n.imRat().Sign() == 0
}

// IsRational reports whether n is real and finite.
func (n Number) IsRational() bool {
	if !n.IsReal() {
		return false
	}
	if n.inexact {
		f := real(n.z)
		return !math.IsInf(f, 0) && !math.IsNaN(f)
	}
	return true
}

// IsInteger reports whether n is a real integer of either exactness.
func (n Number) IsInteger() bool {
	if !n.IsReal() {
		return false
	}
	if n.inexact {
		f := real(n.z)
		return !math.IsInf(f, 0) && f == math.Trunc(f)
	}
	return n.reRat().IsInt()
}

// Complex128 converts n to a floating complex number.
func (n Number) Complex128() complex128 {
	if n.inexact {
		return n.z
	}
	re, _ := n.reRat().Float64()
	im, _ := n.imRat().Float64()
	return complex(re, im)
}

// ToInexact returns the inexact counterpart of n.
func (n Number) ToInexact() Number {
	if n.inexact {
		return n
	}
	return Complex(n.Complex128())
}

// ToExact returns the exact counterpart of n.
func (n Number) ToExact() (Number, error) {
	if !n.inexact {
		return n, nil
	}
	re := new(big.Rat).SetFloat64(real(n.z))
	im := new(big.Rat).SetFloat64(imag(n.z))
	if re == nil || im == nil {
		return Number{}, ErrNoExact
	}
	return exact(re, im), nil
}

// GetReal returns the real value of n, if n is real.
func (n Number) GetReal() (Real, bool) {
	if !n.IsReal() {
		return Real{}, false
	}
	if n.inexact {
		return RealFloat(real(n.z)), true
	}
	return Real{r: n.reRat()}, true
}

// GetInt returns n as an int64 if n is an exact integer that fits.
// "Not an integer" is reported as false, never as an error.
func (n Number) GetInt() (int64, bool) {
	if n.inexact || n.imRat().Sign() != 0 {
		return 0, false
	}
	re := n.reRat()
	if !re.IsInt() || !re.Num().IsInt64() {
		return 0, false
	}
	return re.Num().Int64(), true
}

// GetUint returns n as a uint64 if n is a non-negative exact integer
// that fits.
func (n Number) GetUint() (uint64, bool) {
	if n.inexact || n.imRat().Sign() != 0 {
		return 0, false
	}
	re := n.reRat()
	if !re.IsInt() || re.Sign() < 0 || !re.Num().IsUint64() {
		return 0, false
	}
	return re.Num().Uint64(), true
}

// Equal reports whether n and m have the same exactness and value.
func (n Number) Equal(m Number) bool {
	if n.inexact != m.inexact {
		return false
	}
	if n.inexact {
		return n.z == m.z
	}
	return n.reRat().Cmp(m.reRat()) == 0 && n.imRat().Cmp(m.imRat()) == 0
}

// ApproxEqual reports whether |n-m| < eps.
func (n Number) ApproxEqual(m Number, eps float64) bool {
	d := n.Complex128() - m.Complex128()
	return math.Hypot(real(d), imag(d)) < eps
}

//----------------------------------------------------------------------

func bothReal(a, b complex128) bool {
	return imag(a) == 0 && imag(b) == 0
}

// Add returns n+m.
func (n Number) Add(m Number) Number {
	if !n.inexact && !m.inexact {
		return exact(
			new(big.Rat).Add(n.reRat(), m.reRat()),
			new(big.Rat).Add(n.imRat(), m.imRat()))
	}
	return Complex(n.Complex128() + m.Complex128())
}

// Sub returns n-m.
func (n Number) Sub(m Number) Number {
	if !n.inexact && !m.inexact {
		return exact(
			new(big.Rat).Sub(n.reRat(), m.reRat()),
			new(big.Rat).Sub(n.imRat(), m.imRat()))
	}
	return Complex(n.Complex128() - m.Complex128())
}

// Mul returns n*m.
func (n Number) Mul(m Number) Number {
	if !n.inexact && !m.inexact {
		a, b := n.reRat(), n.imRat()
		c, d := m.reRat(), m.imRat()
		if b.Sign() == 0 && d.Sign() == 0 {
			return exact(new(big.Rat).Mul(a, c), nil)
		}
		re := new(big.Rat).Sub(new(big.Rat).Mul(a, c), new(big.Rat).Mul(b, d))
		im := new(big.Rat).Add(new(big.Rat).Mul(a, d), new(big.Rat).Mul(b, c))
		return exact(re, im)
	}
	x, y := n.Complex128(), m.Complex128()
	if bothReal(x, y) {
		return Float(real(x) * real(y))
	}
	return Complex(x * y)
}

// Div returns n/m. Dividing by an exact zero fails with ErrDivideByZero;
// dividing by an inexact zero follows IEEE 754.
func (n Number) Div(m Number) (Number, error) {
	if !m.inexact && m.IsZero() {
		return Number{}, ErrDivideByZero
	}
	if !n.inexact && !m.inexact {
		a, b := n.reRat(), n.imRat()
		c, d := m.reRat(), m.imRat()
		if d.Sign() == 0 {
			return exact(new(big.Rat).Quo(a, c), new(big.Rat).Quo(b, c)), nil
		}
		// (a+bi)/(c+di) = ((ac+bd) + (bc-ad)i) / (c^2+d^2)
		den := new(big.Rat).Add(new(big.Rat).Mul(c, c), new(big.Rat).Mul(d, d))
		re := new(big.Rat).Add(new(big.Rat).Mul(a, c), new(big.Rat).Mul(b, d))
		im := new(big.Rat).Sub(new(big.Rat).Mul(b, c), new(big.Rat).Mul(a, d))
		return exact(re.Quo(re, den), im.Quo(im, den)), nil
	}
	return Complex(cdiv(n.Complex128(), m.Complex128())), nil
}

// Neg returns -n.
func (n Number) Neg() Number {
	if n.inexact {
		return Complex(-n.z)
	}
	return exact(new(big.Rat).Neg(n.reRat()), new(big.Rat).Neg(n.imRat()))
}

// Recip returns 1/n.
func (n Number) Recip() (Number, error) {
	return Int(1).Div(n)
}

//----------------------------------------------------------------------

// Magnitude returns |n|. The magnitude of an exact real stays exact.
func (n Number) Magnitude() Number {
	if r, ok := n.GetReal(); ok {
		return FromReal(r.Abs())
	}
	z := n.Complex128()
	return Float(math.Hypot(real(z), imag(z)))
}

// Angle returns the argument of n.
func (n Number) Angle() Number {
	if r, ok := n.GetReal(); ok && r.IsExact() && r.Sign() >= 0 {
		return Int(0)
	}
	z := n.Complex128()
	return Float(math.Atan2(imag(z), real(z)))
}

// RealPart returns the real part of n.
func (n Number) RealPart() Number {
	if n.inexact {
		return Float(real(n.z))
	}
	return exact(n.reRat(), nil)
}

// ImagPart returns the imaginary part of n.
func (n Number) ImagPart() Number {
	if n.inexact {
		return Float(imag(n.z))
	}
	return exact(n.imRat(), nil)
}

// MakeRectangular returns re+im*i. The result is exact only if both
// parts are exact.
func MakeRectangular(re, im Real) Number {
	if !re.inexact && !im.inexact {
		return exact(re.rat(), im.rat())
	}
	return Inexact(re.Float64(), im.Float64())
}
