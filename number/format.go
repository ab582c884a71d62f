package number

import (
	"math"
	"strconv"
	"strings"
)

// String returns the external representation of n. Exact numbers print
// as integers or n/d fractions; inexact numbers always carry a decimal
// point or an exponent so that they read back as inexact.
func (n Number) String() string {
	var re, im string
	var reZero, imZero bool
	if n.inexact {
		re, im = formatFloat(real(n.z)), formatFloat(imag(n.z))
		reZero, imZero = real(n.z) == 0, imag(n.z) == 0
	} else {
		re, im = n.reRat().RatString(), n.imRat().RatString()
		reZero, imZero = n.reRat().Sign() == 0, n.imRat().Sign() == 0
	}
	switch {
	case imZero:
		return re
	case reZero:
		return signed(im) + "i"
	}
	return re + signed(im) + "i"
}

func signed(s string) string {
	if s[0] == '-' || s[0] == '+' {
		return s
	}
	return "+" + s
}

func formatFloat(f float64) string {
	switch {
	case math.IsNaN(f):
		return "+nan.0"
	case math.IsInf(f, 1):
		return "+inf.0"
	case math.IsInf(f, -1):
		return "-inf.0"
	}
	s := strconv.FormatFloat(f, 'g', -1, 64)
	if !strings.ContainsAny(s, ".e") {
		s += ".0"
	}
	return s
}
