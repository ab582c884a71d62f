package number

import "math"

// The transcendental functions below always work on the inexact complex
// representation, whatever the exactness of their argument.

var imagUnit = complex(0, 1)

// cdiv divides two floating complex numbers, staying on the real line
// when both are real so that x/0.0 is an infinity rather than a NaN pair.
func cdiv(a, b complex128) complex128 {
	if bothReal(a, b) {
		return complex(real(a)/real(b), 0)
	}
	return a / b
}

// cexp computes e^(a+bi) = e^a (cos b + i sin b).
func cexp(z complex128) complex128 {
	e := math.Exp(real(z))
	if imag(z) == 0 {
		return complex(e, 0)
	}
	return complex(e*math.Cos(imag(z)), e*math.Sin(imag(z)))
}

// cln computes the principal branch ln z = ln|z| + i arg z.
func cln(z complex128) complex128 {
	return complex(math.Log(math.Hypot(real(z), imag(z))), math.Atan2(imag(z), real(z)))
}

// csqrt computes sqrt(|z|) (cos(arg/2) + i sin(arg/2)).
func csqrt(z complex128) complex128 {
	if imag(z) == 0 {
		if real(z) >= 0 {
			return complex(math.Sqrt(real(z)), 0)
		}
		return complex(0, math.Copysign(math.Sqrt(-real(z)), imag(z)))
	}
	n := math.Sqrt(math.Hypot(real(z), imag(z)))
	a := math.Atan2(imag(z), real(z)) / 2
	return complex(n*math.Cos(a), n*math.Sin(a))
}

// csin computes sin(x+iy) = sin x cosh y + i cos x sinh y.
func csin(z complex128) complex128 {
	x, y := real(z), imag(z)
	return complex(math.Sin(x)*math.Cosh(y), math.Cos(x)*math.Sinh(y))
}

// ccos computes cos(x+iy) = cos x cosh y - i sin x sinh y.
func ccos(z complex128) complex128 {
	x, y := real(z), imag(z)
	return complex(math.Cos(x)*math.Cosh(y), -(math.Sin(x) * math.Sinh(y)))
}

func inDomain(z complex128) bool {
	return imag(z) == 0 && real(z) >= -1 && real(z) <= 1
}

// Exp returns e^n.
func (n Number) Exp() Number { return Complex(cexp(n.Complex128())) }

// Log returns the natural logarithm of n.
func (n Number) Log() Number { return Complex(cln(n.Complex128())) }

// LogBase returns the logarithm of n in the given base.
func (n Number) LogBase(base Number) Number {
	return Complex(cdiv(cln(n.Complex128()), cln(base.Complex128())))
}

// Log2 returns the base 2 logarithm of n.
func (n Number) Log2() Number {
	if z := n.Complex128(); imag(z) == 0 && real(z) > 0 {
		return Float(math.Log2(real(z)))
	}
	l := cln(n.Complex128())
	return Inexact(real(l)/math.Ln2, imag(l)/math.Ln2)
}

// Log10 returns the base 10 logarithm of n.
func (n Number) Log10() Number {
	if z := n.Complex128(); imag(z) == 0 && real(z) > 0 {
		return Float(math.Log10(real(z)))
	}
	l := cln(n.Complex128())
	return Inexact(real(l)/math.Ln10, imag(l)/math.Ln10)
}

// Sqrt returns the principal square root of n.
func (n Number) Sqrt() Number { return Complex(csqrt(n.Complex128())) }

// Sin returns the sine of n.
func (n Number) Sin() Number { return Complex(csin(n.Complex128())) }

// Cos returns the cosine of n.
func (n Number) Cos() Number { return Complex(ccos(n.Complex128())) }

// Tan returns the tangent of n.
func (n Number) Tan() Number {
	z := n.Complex128()
	return Complex(cdiv(csin(z), ccos(z)))
}

// Asin returns the arcsine of n: -i ln(iz + sqrt(1 - z^2)).
func (n Number) Asin() Number {
	z := n.Complex128()
	if inDomain(z) {
		return Float(math.Asin(real(z)))
	}
	return Complex(-imagUnit * cln(imagUnit*z+csqrt(1-z*z)))
}

// Acos returns the arccosine of n: -i ln(z + i sqrt(1 - z^2)).
func (n Number) Acos() Number {
	z := n.Complex128()
	if inDomain(z) {
		return Float(math.Acos(real(z)))
	}
	return Complex(-imagUnit * cln(z+imagUnit*csqrt(1-z*z)))
}

// Atan returns the arctangent of n: i/2 (ln(1 - iz) - ln(1 + iz)).
func (n Number) Atan() Number {
	z := n.Complex128()
	if imag(z) == 0 {
		return Float(math.Atan(real(z)))
	}
	return Complex(complex(0, 0.5) * (cln(1-imagUnit*z) - cln(1+imagUnit*z)))
}

// Atan2 returns the angle of the point (m, n). It is only defined for
// reals; complex operands fail with ErrComplexAtan2.
func (n Number) Atan2(m Number) (Number, error) {
	y, ok1 := n.GetReal()
	x, ok2 := m.GetReal()
	if !ok1 || !ok2 {
		return Number{}, ErrComplexAtan2
	}
	return FromReal(y.Atan2(x)), nil
}

// Sinh returns the hyperbolic sine of n.
func (n Number) Sinh() Number {
	z := n.Complex128()
	return Complex((cexp(z) - cexp(-z)) / 2)
}

// Cosh returns the hyperbolic cosine of n.
func (n Number) Cosh() Number {
	z := n.Complex128()
	return Complex((cexp(z) + cexp(-z)) / 2)
}

// Tanh returns the hyperbolic tangent of n.
func (n Number) Tanh() Number {
	z := n.Complex128()
	if imag(z) == 0 {
		return Float(math.Tanh(real(z)))
	}
	return Complex(cdiv(cexp(z)-cexp(-z), cexp(z)+cexp(-z)))
}

// Pow returns n raised to the power m. An exact base with an exact
// integer exponent gives an exact result; otherwise the result is
// exp(m ln n).
func (n Number) Pow(m Number) (Number, error) {
	if e, ok := m.GetInt(); ok && n.IsExact() {
		return n.Expt(e)
	}
	z, w := n.Complex128(), m.Complex128()
	if bothReal(z, w) && (real(z) > 0 || isIntFloat(real(w))) {
		return Float(math.Pow(real(z), real(w))), nil
	}
	if z == 0 {
		switch {
		case w == 0:
			return Float(1), nil
		case real(w) > 0:
			return Float(0), nil
		}
	}
	return Complex(cexp(w * cln(z))), nil
}
